package artemis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bnema/artemis-companion-cli/internal/domain"
	"github.com/bnema/artemis-companion-cli/internal/ports"
)

// SessionStore reads the stored session cookie and extracts the token it
// carries. The signature is not verified; only the server can do that.
type SessionStore struct {
	secrets ports.SecretStore
	key     string
	clock   ports.Clock
	parser  *jwt.Parser
}

var _ ports.SessionProvider = (*SessionStore)(nil)

func NewSessionStore(secrets ports.SecretStore, key string, clock ports.Clock) *SessionStore {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &SessionStore{secrets: secrets, key: key, clock: clock, parser: jwt.NewParser()}
}

func (s *SessionStore) SessionToken(ctx context.Context) (domain.SessionToken, error) {
	cookie, err := s.secrets.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, domain.ErrSecretNotFound) {
			return domain.SessionToken{}, domain.ErrNotAuthenticated
		}
		return domain.SessionToken{}, fmt.Errorf("read session cookie: %w", err)
	}

	token, err := ParseSessionCookie(s.parser, cookie)
	if err != nil {
		return domain.SessionToken{}, err
	}
	if token.Expired(s.clock.Now()) {
		return domain.SessionToken{}, domain.ErrSessionExpired
	}
	return token, nil
}

// ParseSessionCookie accepts either the bare cookie value or a
// "jwt=<value>" pair.
func ParseSessionCookie(parser *jwt.Parser, cookie string) (domain.SessionToken, error) {
	raw := strings.TrimSpace(cookie)
	if name, value, ok := strings.Cut(raw, "="); ok && name == SessionCookieName {
		raw = value
	}
	raw, _, _ = strings.Cut(raw, ";")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.SessionToken{}, domain.ErrSessionTokenMissing
	}

	var claims jwt.RegisteredClaims
	if _, _, err := parser.ParseUnverified(raw, &claims); err != nil {
		return domain.SessionToken{}, fmt.Errorf("parse session token: %w: %w", domain.ErrSessionTokenMissing, err)
	}

	token := domain.SessionToken{Raw: raw, Username: claims.Subject}
	if claims.ExpiresAt != nil {
		token.ExpiresAt = claims.ExpiresAt.Time
	}
	return token, nil
}
