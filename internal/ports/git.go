package ports

import (
	"context"

	"github.com/bnema/artemis-companion-cli/internal/domain"
)

// Git runs git commands inside dir. Failures are *domain.GitError values.
type Git interface {
	RemoteURL(ctx context.Context, dir string) (string, error)
	StatusPorcelain(ctx context.Context, dir string) (string, error)
	AddAll(ctx context.Context, dir string) error
	Commit(ctx context.Context, dir, message string) error
	PullRebase(ctx context.Context, dir string) (domain.PullSummary, error)
	Push(ctx context.Context, dir string) error
}

// Terminal hands a command to an interactive terminal; output is not captured.
type Terminal interface {
	Run(ctx context.Context, dir string, name string, args ...string) error
}
