package ports

import (
	"context"

	"github.com/bnema/artemis-companion-cli/internal/domain"
)

type StateRepository interface {
	LoadTracker(ctx context.Context) (domain.TrackerState, error)
	SaveTracker(ctx context.Context, state domain.TrackerState) error
	LoadRegistry(ctx context.Context) ([]domain.ExerciseIdentity, error)
	SaveRegistry(ctx context.Context, identities []domain.ExerciseIdentity) error
}

type CloneNoticeRepository interface {
	GetCloneNotice(ctx context.Context, id domain.ExerciseID) (domain.CloneNotice, bool, error)
	PutCloneNotice(ctx context.Context, notice domain.CloneNotice) error
	DeleteCloneNotice(ctx context.Context, id domain.ExerciseID) error
}
