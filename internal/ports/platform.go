package ports

import (
	"context"

	"github.com/bnema/artemis-companion-cli/internal/domain"
)

type PlatformClient interface {
	Authenticate(ctx context.Context, username, password string) (string, error)
	Courses(ctx context.Context) ([]domain.Course, error)
	Account(ctx context.Context) (domain.Account, error)
	VCSAccessToken(ctx context.Context, participationID domain.ParticipationID) (string, error)
	CreateVCSAccessToken(ctx context.Context, participationID domain.ParticipationID) (string, error)
}

// SessionProvider yields the token extracted from the stored session cookie.
type SessionProvider interface {
	SessionToken(ctx context.Context) (domain.SessionToken, error)
}
