package artemis

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/bnema/artemis-companion-cli/internal/domain"
)

var testNow = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type staticSessions struct {
	token domain.SessionToken
	err   error
}

func (s staticSessions) SessionToken(context.Context) (domain.SessionToken, error) {
	return s.token, s.err
}

func signedToken(t *testing.T, subject string, expires time.Time) string {
	t.Helper()

	claims := jwt.RegisteredClaims{Subject: subject, ExpiresAt: jwt.NewNumericDate(expires)}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return raw
}
