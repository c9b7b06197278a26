package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{name: "nil", err: nil, want: ""},
		{name: "nothing to submit", err: fmt.Errorf("submit: %w", ErrNothingToSubmit), want: KindUserActionable},
		{name: "no workspace", err: ErrNoWorkspace, want: KindUserActionable},
		{name: "git conflict", err: &GitError{Op: "pull", Kind: GitConflict, Err: errors.New("exit status 1")}, want: KindUserActionable},
		{name: "git auth", err: &GitError{Op: "push", Kind: GitAuth, Err: errors.New("exit status 128")}, want: KindAuthentication},
		{name: "git network", err: &GitError{Op: "push", Kind: GitNetwork, Err: errors.New("exit status 128")}, want: KindTransientNetwork},
		{name: "git other", err: &GitError{Op: "push", Kind: GitOther, Err: errors.New("exit status 1")}, want: KindInternal},
		{name: "missing session", err: fmt.Errorf("connect: %w", ErrSessionTokenMissing), want: KindAuthentication},
		{name: "malformed payload", err: fmt.Errorf("%w: bad json", ErrMalformedPayload), want: KindProtocol},
		{name: "deadline", err: fmt.Errorf("get courses: %w", context.DeadlineExceeded), want: KindTransientNetwork},
		{name: "unknown", err: errors.New("boom"), want: KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestGitConflictUnwrapsToMergeConflict(t *testing.T) {
	err := fmt.Errorf("sync: %w", &GitError{Op: "pull", Kind: GitConflict, Err: errors.New("exit status 1")})

	assert.ErrorIs(t, err, ErrMergeConflict)

	var gitErr *GitError
	assert.ErrorAs(t, err, &gitErr)
	assert.Equal(t, GitConflict, gitErr.Kind)
}

func TestDirtyPagesShouldWarn(t *testing.T) {
	assert.True(t, DirtyPagesStatus{HasDirtyPages: true, DirtyFileCount: 2}.ShouldWarn())
	assert.False(t, DirtyPagesStatus{HasDirtyPages: true, DirtyFileCount: 2, AutoSaveEnabled: true}.ShouldWarn())
	assert.False(t, DirtyPagesStatus{}.ShouldWarn())
}
