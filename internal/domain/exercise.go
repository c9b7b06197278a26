package domain

import (
	"strings"
	"time"
)

// WorkspaceMarker is appended to the title of the tracked exercise whose
// repository is the open workspace folder.
const WorkspaceMarker = " (Workspace)"

type ExerciseID int64
type CourseID int64
type ParticipationID int64

type ExerciseIdentity struct {
	ID            ExerciseID
	Title         string
	RepositoryURI string
	ShortName     string
}

type TrackedExercise struct {
	ID              ExerciseID
	Title           string
	ShortName       string
	ReleaseDate     *time.Time
	DueDate         *time.Time
	LastViewed      *time.Time
	CompletionScore *float64
}

// IsWorkspace is derived from the title; there is no separate flag.
func (e TrackedExercise) IsWorkspace() bool {
	return strings.Contains(e.Title, WorkspaceMarker)
}

func (e TrackedExercise) DisplayTitle() string {
	return StripWorkspaceMarker(e.Title)
}

// Merge overlays the non-empty fields of update onto e. A workspace tag on e
// survives a retitle.
func (e TrackedExercise) Merge(update TrackedExercise) TrackedExercise {
	if update.Title != "" {
		title := update.Title
		if e.IsWorkspace() {
			title = MarkWorkspaceTitle(title)
		}
		e.Title = title
	}
	if update.ShortName != "" {
		e.ShortName = update.ShortName
	}
	if update.ReleaseDate != nil {
		e.ReleaseDate = update.ReleaseDate
	}
	if update.DueDate != nil {
		e.DueDate = update.DueDate
	}
	if update.LastViewed != nil {
		e.LastViewed = update.LastViewed
	}
	if update.CompletionScore != nil {
		e.CompletionScore = update.CompletionScore
	}
	return e
}

type TrackedCourse struct {
	ID         CourseID
	Title      string
	ShortName  string
	LastViewed *time.Time
}

func (c TrackedCourse) Merge(update TrackedCourse) TrackedCourse {
	if update.Title != "" {
		c.Title = update.Title
	}
	if update.ShortName != "" {
		c.ShortName = update.ShortName
	}
	if update.LastViewed != nil {
		c.LastViewed = update.LastViewed
	}
	return c
}

func MarkWorkspaceTitle(title string) string {
	if strings.Contains(title, WorkspaceMarker) {
		return title
	}
	return title + WorkspaceMarker
}

func StripWorkspaceMarker(title string) string {
	return strings.ReplaceAll(title, WorkspaceMarker, "")
}
