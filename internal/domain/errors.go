package domain

import (
	"context"
	"errors"
	"net"
)

var (
	ErrExerciseNotFound     = errors.New("exercise not found")
	ErrNoWorkspace          = errors.New("no workspace folder is open; open the exercise repository first")
	ErrNothingToSubmit      = errors.New("nothing to submit: the working tree has no changes")
	ErrMergeConflict        = errors.New("merge conflict: resolve the conflicts manually, then submit again")
	ErrNotAuthenticated     = errors.New("not logged in; run `ac login` first")
	ErrSessionTokenMissing  = errors.New("session cookie carries no session token")
	ErrSessionExpired       = errors.New("session expired; log in again")
	ErrTokenNotFound        = errors.New("vcs access token not found")
	ErrSecretNotFound       = errors.New("secret not found")
	ErrUnsupportedCloneURL  = errors.New("repository uri must use http or https to embed credentials")
	ErrServerURLMissing     = errors.New("server url is not configured")
	ErrSubmissionInProgress = errors.New("a submission is already in progress")
	ErrMalformedPayload     = errors.New("malformed realtime payload")
)

// ErrorKind groups failures by how they are surfaced to the user.
type ErrorKind string

const (
	KindUserActionable   ErrorKind = "user_actionable"
	KindTransientNetwork ErrorKind = "transient_network"
	KindAuthentication   ErrorKind = "authentication"
	KindProtocol         ErrorKind = "protocol"
	KindInternal         ErrorKind = "internal"
)

// Classify maps an error onto the error taxonomy.
func Classify(err error) ErrorKind {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, ErrNoWorkspace),
		errors.Is(err, ErrNothingToSubmit),
		errors.Is(err, ErrMergeConflict),
		errors.Is(err, ErrSubmissionInProgress),
		errors.Is(err, ErrExerciseNotFound):
		return KindUserActionable
	case errors.Is(err, ErrNotAuthenticated),
		errors.Is(err, ErrSessionTokenMissing),
		errors.Is(err, ErrSessionExpired):
		return KindAuthentication
	case errors.Is(err, ErrMalformedPayload):
		return KindProtocol
	case errors.Is(err, context.DeadlineExceeded):
		return KindTransientNetwork
	}

	var gitErr *GitError
	if errors.As(err, &gitErr) {
		switch gitErr.Kind {
		case GitConflict:
			return KindUserActionable
		case GitAuth:
			return KindAuthentication
		case GitNetwork:
			return KindTransientNetwork
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindTransientNetwork
	}

	return KindInternal
}
