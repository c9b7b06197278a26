package domain

import "fmt"

type GitErrorKind string

const (
	GitConflict      GitErrorKind = "conflict"
	GitNoRemote      GitErrorKind = "no_remote"
	GitNotRepository GitErrorKind = "not_repository"
	GitAuth          GitErrorKind = "auth"
	GitNetwork       GitErrorKind = "network"
	GitOther         GitErrorKind = "other"
)

// GitError is produced by the git adapter; callers switch on Kind instead of
// inspecting command output.
type GitError struct {
	Op     string
	Kind   GitErrorKind
	Output string
	Err    error
}

func (e *GitError) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("git %s (%s): %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("git %s (%s): %v: %s", e.Op, e.Kind, e.Err, e.Output)
}

func (e *GitError) Unwrap() error {
	if e.Kind == GitConflict {
		return ErrMergeConflict
	}
	return e.Err
}

// PullSummary describes a successful pull.
type PullSummary struct {
	UpToDate bool
}

// RepositoryStatus is recomputed on demand and never persisted.
type RepositoryStatus struct {
	IsConnected bool `json:"isConnected"`
	HasChanges  bool `json:"hasChanges"`
}

type DirtyPagesStatus struct {
	HasDirtyPages   bool `json:"hasDirtyPages"`
	DirtyFileCount  int  `json:"dirtyFileCount"`
	AutoSaveEnabled bool `json:"autoSaveEnabled"`
}

// ShouldWarn reports whether the unsaved-changes warning applies.
func (s DirtyPagesStatus) ShouldWarn() bool {
	return s.HasDirtyPages && !s.AutoSaveEnabled
}
