package domain

// SubmissionPhase is a state of a single submit run.
type SubmissionPhase string

const (
	PhaseIdle            SubmissionPhase = "idle"
	PhaseCheckingChanges SubmissionPhase = "checking_changes"
	PhaseStaging         SubmissionPhase = "staging"
	PhaseCommitting      SubmissionPhase = "committing"
	PhaseSyncing         SubmissionPhase = "syncing"
	PhasePushing         SubmissionPhase = "pushing"
	PhaseSuccess         SubmissionPhase = "success"
	PhaseConflictError   SubmissionPhase = "conflict_error"
	PhaseFailure         SubmissionPhase = "failure"
)

// Terminal reports whether no further transition can happen.
func (p SubmissionPhase) Terminal() bool {
	switch p {
	case PhaseSuccess, PhaseConflictError, PhaseFailure:
		return true
	default:
		return false
	}
}

type SubmissionRequest struct {
	ParticipationID ParticipationID
	ExerciseID      ExerciseID
	ExerciseTitle   string
	CommitMessage   string
}

// SubmissionResult is the single structured outcome of a submit run.
// NothingToSubmit is a non-fatal outcome, so Success stays false and Err
// carries ErrNothingToSubmit.
type SubmissionResult struct {
	RunID           string
	Phase           SubmissionPhase
	Success         bool
	NothingToSubmit bool
	Err             error
}

type PullOutcome string

const (
	PullUpdated  PullOutcome = "updated"
	PullUpToDate PullOutcome = "up_to_date"
	PullConflict PullOutcome = "conflict"
	PullFailed   PullOutcome = "failed"
)

type PullResult struct {
	Outcome PullOutcome
	Err     error
}
