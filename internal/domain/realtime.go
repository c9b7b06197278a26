package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventKind tags a server-pushed event by the destination it arrived on.
type EventKind string

const (
	EventNewResult            EventKind = "newResult"
	EventNewSubmission        EventKind = "newSubmission"
	EventSubmissionProcessing EventKind = "submissionProcessing"
)

const (
	DestinationNewResults           = "/user/topic/newResults"
	DestinationNewSubmissions       = "/user/topic/newSubmissions"
	DestinationSubmissionProcessing = "/user/topic/submissionProcessing"
)

// Destinations maps each subscribed destination to the event it carries.
var Destinations = map[string]EventKind{
	DestinationNewResults:           EventNewResult,
	DestinationNewSubmissions:       EventNewSubmission,
	DestinationSubmissionProcessing: EventSubmissionProcessing,
}

type Result struct {
	ID                  int64           `json:"id"`
	Score               *float64        `json:"score,omitempty"`
	Successful          *bool           `json:"successful,omitempty"`
	CompletionDate      *time.Time      `json:"completionDate,omitempty"`
	Participation       json.RawMessage `json:"participation,omitempty"`
	TestCaseCount       int             `json:"testCaseCount,omitempty"`
	PassedTestCaseCount int             `json:"passedTestCaseCount,omitempty"`
}

type Submission struct {
	ID             int64      `json:"id"`
	CommitHash     string     `json:"commitHash,omitempty"`
	SubmissionDate *time.Time `json:"submissionDate,omitempty"`
	BuildFailed    bool       `json:"buildFailed,omitempty"`
}

type BuildTimingInfo struct {
	BuildStartDate      *time.Time `json:"buildStartDate,omitempty"`
	EstimatedCompletion *time.Time `json:"estimatedCompletionDate,omitempty"`
	EstimatedDuration   int64      `json:"estimatedDuration,omitempty"`
}

type SubmissionProcessing struct {
	ExerciseID      ExerciseID       `json:"exerciseId"`
	ParticipationID ParticipationID  `json:"participationId"`
	SubmissionID    int64            `json:"submissionId"`
	State           string           `json:"state"`
	BuildTimingInfo *BuildTimingInfo `json:"buildTimingInfo,omitempty"`
}

// Event is a decoded push message. Exactly one payload field is set,
// matching Kind.
type Event struct {
	Kind       EventKind
	Result     *Result
	Submission *Submission
	Processing *SubmissionProcessing
}

// ConnectionStatus is advisory: Attempts counts reconnects for display only.
type ConnectionStatus struct {
	Connected bool
	Attempts  int
	LastError error
}

// DecodeEvent parses a push body for kind. Any failure wraps ErrMalformedPayload.
func DecodeEvent(kind EventKind, body []byte) (Event, error) {
	event := Event{Kind: kind}

	var target any
	switch kind {
	case EventNewResult:
		event.Result = &Result{}
		target = event.Result
	case EventNewSubmission:
		event.Submission = &Submission{}
		target = event.Submission
	case EventSubmissionProcessing:
		event.Processing = &SubmissionProcessing{}
		target = event.Processing
	default:
		return Event{}, fmt.Errorf("%w: unknown event kind %q", ErrMalformedPayload, kind)
	}

	if err := json.Unmarshal(body, target); err != nil {
		return Event{}, fmt.Errorf("%w: %s: %v", ErrMalformedPayload, kind, err)
	}

	return event, nil
}
