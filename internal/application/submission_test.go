package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/artemis-companion-cli/internal/domain"
	"github.com/bnema/artemis-companion-cli/internal/ports/mocks"
)

const workspace = "/work/sort"

func newTestSubmitter(git *mocks.MockGit) *Submitter {
	return NewSubmitter(git, SubmitterOptions{
		DefaultMessage: "Submit via companion",
		NewRunID:       func() string { return "run-1" },
	})
}

func TestSubmitSuccessWalksEveryPhase(t *testing.T) {
	git := mocks.NewMockGit(t)
	git.EXPECT().StatusPorcelain(mockAnyContext(), workspace).Return(" M Sort.java\n", nil)
	git.EXPECT().AddAll(mockAnyContext(), workspace).Return(nil)
	git.EXPECT().Commit(mockAnyContext(), workspace, "Submit via companion").Return(nil)
	git.EXPECT().PullRebase(mockAnyContext(), workspace).Return(domain.PullSummary{UpToDate: true}, nil)
	git.EXPECT().Push(mockAnyContext(), workspace).Return(nil)

	var phases []domain.SubmissionPhase
	result := newTestSubmitter(git).Submit(context.Background(), workspace, domain.SubmissionRequest{ExerciseID: 42}, func(runID string, phase domain.SubmissionPhase) {
		assert.Equal(t, "run-1", runID)
		phases = append(phases, phase)
	})

	require.NoError(t, result.Err)
	assert.True(t, result.Success)
	assert.Equal(t, domain.PhaseSuccess, result.Phase)
	assert.Equal(t, "run-1", result.RunID)
	assert.Equal(t, []domain.SubmissionPhase{
		domain.PhaseCheckingChanges,
		domain.PhaseStaging,
		domain.PhaseCommitting,
		domain.PhaseSyncing,
		domain.PhasePushing,
		domain.PhaseSuccess,
	}, phases)
}

func TestSubmitUsesCallerCommitMessage(t *testing.T) {
	git := mocks.NewMockGit(t)
	git.EXPECT().StatusPorcelain(mockAnyContext(), workspace).Return("?? New.java\n", nil)
	git.EXPECT().AddAll(mockAnyContext(), workspace).Return(nil)
	git.EXPECT().Commit(mockAnyContext(), workspace, "Fix off by one").Return(nil)
	git.EXPECT().PullRebase(mockAnyContext(), workspace).Return(domain.PullSummary{}, nil)
	git.EXPECT().Push(mockAnyContext(), workspace).Return(nil)

	result := newTestSubmitter(git).Submit(context.Background(), workspace, domain.SubmissionRequest{CommitMessage: "  Fix off by one "}, nil)
	assert.True(t, result.Success)
}

func TestSubmitNothingToSubmitRunsNoMutatingCommand(t *testing.T) {
	git := mocks.NewMockGit(t)
	git.EXPECT().StatusPorcelain(mockAnyContext(), workspace).Return("\n", nil)

	result := newTestSubmitter(git).Submit(context.Background(), workspace, domain.SubmissionRequest{ExerciseID: 42}, nil)

	assert.False(t, result.Success)
	assert.True(t, result.NothingToSubmit)
	assert.ErrorIs(t, result.Err, domain.ErrNothingToSubmit)
	git.AssertNotCalled(t, "AddAll", mockAnyContext(), workspace)
	git.AssertNotCalled(t, "Commit", mockAnyContext(), workspace, mockAnyContext())
	git.AssertNotCalled(t, "Push", mockAnyContext(), workspace)
}

func TestSubmitWithoutWorkspaceFailsImmediately(t *testing.T) {
	git := mocks.NewMockGit(t)

	result := newTestSubmitter(git).Submit(context.Background(), "", domain.SubmissionRequest{}, nil)

	assert.Equal(t, domain.PhaseFailure, result.Phase)
	assert.ErrorIs(t, result.Err, domain.ErrNoWorkspace)
	assert.Equal(t, domain.KindUserActionable, domain.Classify(result.Err))
}

func TestSubmitConflictNeverPushes(t *testing.T) {
	git := mocks.NewMockGit(t)
	git.EXPECT().StatusPorcelain(mockAnyContext(), workspace).Return(" M Sort.java\n", nil)
	git.EXPECT().AddAll(mockAnyContext(), workspace).Return(nil)
	git.EXPECT().Commit(mockAnyContext(), workspace, "Submit via companion").Return(nil)
	git.EXPECT().PullRebase(mockAnyContext(), workspace).Return(domain.PullSummary{}, &domain.GitError{
		Op:     "pull",
		Kind:   domain.GitConflict,
		Output: "CONFLICT (content): Merge conflict in Sort.java",
		Err:    errors.New("exit status 1"),
	})

	result := newTestSubmitter(git).Submit(context.Background(), workspace, domain.SubmissionRequest{}, nil)

	assert.Equal(t, domain.PhaseConflictError, result.Phase)
	assert.False(t, result.Success)
	assert.ErrorIs(t, result.Err, domain.ErrMergeConflict)
	git.AssertNotCalled(t, "Push", mockAnyContext(), workspace)
}

func TestSubmitOtherPullFailureStillPushes(t *testing.T) {
	git := mocks.NewMockGit(t)
	git.EXPECT().StatusPorcelain(mockAnyContext(), workspace).Return(" M Sort.java\n", nil)
	git.EXPECT().AddAll(mockAnyContext(), workspace).Return(nil)
	git.EXPECT().Commit(mockAnyContext(), workspace, "Submit via companion").Return(nil)
	git.EXPECT().PullRebase(mockAnyContext(), workspace).Return(domain.PullSummary{}, &domain.GitError{Op: "pull", Kind: domain.GitNetwork, Err: errors.New("exit status 1")})
	git.EXPECT().Push(mockAnyContext(), workspace).Return(nil)

	result := newTestSubmitter(git).Submit(context.Background(), workspace, domain.SubmissionRequest{}, nil)

	assert.True(t, result.Success)
}

func TestSubmitPushFailureIsReported(t *testing.T) {
	git := mocks.NewMockGit(t)
	pushErr := &domain.GitError{Op: "push", Kind: domain.GitAuth, Err: errors.New("exit status 128")}
	git.EXPECT().StatusPorcelain(mockAnyContext(), workspace).Return(" M Sort.java\n", nil)
	git.EXPECT().AddAll(mockAnyContext(), workspace).Return(nil)
	git.EXPECT().Commit(mockAnyContext(), workspace, "Submit via companion").Return(nil)
	git.EXPECT().PullRebase(mockAnyContext(), workspace).Return(domain.PullSummary{}, nil)
	git.EXPECT().Push(mockAnyContext(), workspace).Return(pushErr)

	result := newTestSubmitter(git).Submit(context.Background(), workspace, domain.SubmissionRequest{}, nil)

	assert.Equal(t, domain.PhaseFailure, result.Phase)
	assert.ErrorIs(t, result.Err, pushErr)
	assert.Equal(t, domain.KindAuthentication, domain.Classify(result.Err))
}

func TestPullClassifiesOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		summary domain.PullSummary
		err     error
		want    domain.PullOutcome
	}{
		{name: "updated", want: domain.PullUpdated},
		{name: "up to date", summary: domain.PullSummary{UpToDate: true}, want: domain.PullUpToDate},
		{name: "conflict", err: &domain.GitError{Op: "pull", Kind: domain.GitConflict, Err: errors.New("exit status 1")}, want: domain.PullConflict},
		{name: "other", err: &domain.GitError{Op: "pull", Kind: domain.GitOther, Err: errors.New("exit status 1")}, want: domain.PullFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			git := mocks.NewMockGit(t)
			git.EXPECT().PullRebase(mockAnyContext(), workspace).Return(tt.summary, tt.err)

			result := NewPuller(git, nil).Pull(context.Background(), workspace)
			assert.Equal(t, tt.want, result.Outcome)
			if tt.err != nil {
				assert.Error(t, result.Err)
			}
		})
	}
}
