package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bnema/artemis-companion-cli/internal/domain"
	"github.com/bnema/artemis-companion-cli/internal/ports"
)

const DefaultCommitMessage = "Submit exercise"

// PhaseObserver is told about every phase a submission run enters.
type PhaseObserver func(runID string, phase domain.SubmissionPhase)

type SubmitterOptions struct {
	DefaultMessage string
	Logger         *zap.Logger
	NewRunID       func() string
}

// Submitter drives check, stage, commit, sync and push for one workspace.
// Every call is an independent run.
type Submitter struct {
	git            ports.Git
	defaultMessage string
	logger         *zap.Logger
	newRunID       func() string
}

func NewSubmitter(git ports.Git, opts SubmitterOptions) *Submitter {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	message := strings.TrimSpace(opts.DefaultMessage)
	if message == "" {
		message = DefaultCommitMessage
	}
	newRunID := opts.NewRunID
	if newRunID == nil {
		newRunID = func() string { return uuid.NewString() }
	}

	return &Submitter{
		git:            git,
		defaultMessage: message,
		logger:         logger.Named("submit"),
		newRunID:       newRunID,
	}
}

type submissionRun struct {
	id       string
	phase    domain.SubmissionPhase
	observer PhaseObserver
	logger   *zap.Logger
}

func (r *submissionRun) enter(phase domain.SubmissionPhase) {
	r.phase = phase
	r.logger.Debug("submission phase", zap.String("phase", string(phase)))
	if r.observer != nil {
		r.observer(r.id, phase)
	}
}

func (r *submissionRun) finish(phase domain.SubmissionPhase, err error) domain.SubmissionResult {
	r.enter(phase)
	return domain.SubmissionResult{
		RunID:   r.id,
		Phase:   phase,
		Success: phase == domain.PhaseSuccess,
		Err:     err,
	}
}

// Submit runs the submission state machine in workspaceRoot. No mutating git
// command runs before the working tree is known to have changes.
func (s *Submitter) Submit(ctx context.Context, workspaceRoot string, req domain.SubmissionRequest, observer PhaseObserver) domain.SubmissionResult {
	runID := s.newRunID()
	run := &submissionRun{
		id:       runID,
		phase:    domain.PhaseIdle,
		observer: observer,
		logger: s.logger.With(
			zap.String("run_id", runID),
			zap.Int64("exercise_id", int64(req.ExerciseID)),
		),
	}

	run.enter(domain.PhaseCheckingChanges)
	if strings.TrimSpace(workspaceRoot) == "" {
		return run.finish(domain.PhaseFailure, domain.ErrNoWorkspace)
	}

	porcelain, err := s.git.StatusPorcelain(ctx, workspaceRoot)
	if err != nil {
		var gitErr *domain.GitError
		if errors.As(err, &gitErr) && gitErr.Kind == domain.GitNotRepository {
			return run.finish(domain.PhaseFailure, fmt.Errorf("check changes: %w", errors.Join(domain.ErrNoWorkspace, err)))
		}
		return run.finish(domain.PhaseFailure, fmt.Errorf("check changes: %w", err))
	}
	if strings.TrimSpace(porcelain) == "" {
		result := run.finish(domain.PhaseFailure, domain.ErrNothingToSubmit)
		result.NothingToSubmit = true
		return result
	}

	run.enter(domain.PhaseStaging)
	if err := s.git.AddAll(ctx, workspaceRoot); err != nil {
		return run.finish(domain.PhaseFailure, fmt.Errorf("stage changes: %w", err))
	}

	run.enter(domain.PhaseCommitting)
	message := strings.TrimSpace(req.CommitMessage)
	if message == "" {
		message = s.defaultMessage
	}
	if err := s.git.Commit(ctx, workspaceRoot, message); err != nil {
		return run.finish(domain.PhaseFailure, fmt.Errorf("commit changes: %w", err))
	}

	run.enter(domain.PhaseSyncing)
	if _, err := s.git.PullRebase(ctx, workspaceRoot); err != nil {
		if errors.Is(err, domain.ErrMergeConflict) {
			return run.finish(domain.PhaseConflictError, fmt.Errorf("sync with remote: %w", err))
		}
		run.logger.Warn("pull before push failed, pushing anyway", zap.Error(err))
	}

	run.enter(domain.PhasePushing)
	if err := s.git.Push(ctx, workspaceRoot); err != nil {
		return run.finish(domain.PhaseFailure, fmt.Errorf("push changes: %w", err))
	}

	run.logger.Info("submission pushed")
	return run.finish(domain.PhaseSuccess, nil)
}

// Puller runs the standalone "pull changes" action.
type Puller struct {
	git    ports.Git
	logger *zap.Logger
}

func NewPuller(git ports.Git, logger *zap.Logger) *Puller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Puller{git: git, logger: logger.Named("pull")}
}

func (p *Puller) Pull(ctx context.Context, workspaceRoot string) domain.PullResult {
	if strings.TrimSpace(workspaceRoot) == "" {
		return domain.PullResult{Outcome: domain.PullFailed, Err: domain.ErrNoWorkspace}
	}

	summary, err := p.git.PullRebase(ctx, workspaceRoot)
	switch {
	case errors.Is(err, domain.ErrMergeConflict):
		return domain.PullResult{Outcome: domain.PullConflict, Err: fmt.Errorf("pull changes: %w", err)}
	case err != nil:
		p.logger.Warn("pull failed", zap.Error(err))
		return domain.PullResult{Outcome: domain.PullFailed, Err: fmt.Errorf("pull changes: %w", err)}
	case summary.UpToDate:
		return domain.PullResult{Outcome: domain.PullUpToDate}
	default:
		return domain.PullResult{Outcome: domain.PullUpdated}
	}
}
