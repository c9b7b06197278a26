package application

import (
	"time"

	"github.com/bnema/artemis-companion-cli/internal/domain"
)

// Inbound bridge commands.
const (
	CmdDetectWorkspaceExercise = "detectWorkspaceExercise"
	CmdCheckRepositoryStatus   = "checkRepositoryStatus"
	CmdCloneRepository         = "cloneRepository"
	CmdPullChanges             = "pullChanges"
	CmdSubmitExercise          = "submitExercise"
	CmdSelectChatContext       = "selectChatContext"
	CmdSelectExerciseContext   = "selectExerciseContext"
	CmdSelectCourseContext     = "selectCourseContext"
	CmdTrackExercise           = "trackExercise"
	CmdTrackCourse             = "trackCourse"
	CmdClearHistory            = "clearHistory"
	CmdSetSelectionMode        = "setSelectionMode"
	CmdLogout                  = "logout"
	CmdUpdateDirtyDocuments    = "updateDirtyDocuments"
	CmdOpenClonedRepository    = "openClonedRepository"
	CmdFileEvent               = "fileEvent"
)

// Outbound bridge messages.
const (
	MsgWorkspaceExerciseDetected = "workspaceExerciseDetected"
	MsgUpdateRepoStatus          = "updateRepoStatus"
	MsgShowClonedRepoNotice      = "showClonedRepoNotice"
	MsgSubmissionResult          = "submissionResult"
	MsgNewResult                 = "newResult"
	MsgNewSubmission             = "newSubmission"
	MsgSubmissionProcessing      = "submissionProcessing"
	MsgUpdateDetectedExercises   = "updateDetectedExercises"
	MsgUpdateDetectedCourses     = "updateDetectedCourses"
	MsgAutoSelectContext         = "autoSelectContext"
	MsgUpdateDirtyPagesStatus    = "updateDirtyPagesStatus"
	MsgNotification              = "notification"
	MsgConnectionStatus          = "connectionStatus"
	MsgClonedRepository          = "clonedRepository"
	MsgChatContextChanged        = "chatContextChanged"
)

type checkRepositoryStatusRequest struct {
	ExpectedRepoURL string            `json:"expectedRepoUrl"`
	ExerciseID      domain.ExerciseID `json:"exerciseId"`
}

type cloneRepositoryRequest struct {
	ParticipationID domain.ParticipationID `json:"participationId"`
	RepositoryURI   string                 `json:"repositoryUri"`
	ExerciseID      domain.ExerciseID      `json:"exerciseId"`
	ExerciseTitle   string                 `json:"exerciseTitle"`
}

type pullChangesRequest struct {
	ExerciseTitle string `json:"exerciseTitle"`
}

type submitExerciseRequest struct {
	ParticipationID domain.ParticipationID `json:"participationId"`
	ExerciseID      domain.ExerciseID      `json:"exerciseId"`
	ExerciseTitle   string                 `json:"exerciseTitle"`
	CommitMessage   string                 `json:"commitMessage,omitempty"`
}

type selectChatContextRequest struct {
	Type string `json:"type"`
	ID   int64  `json:"id"`
}

type selectExerciseContextRequest struct {
	ExerciseID domain.ExerciseID `json:"exerciseId"`
}

type selectCourseContextRequest struct {
	CourseID domain.CourseID `json:"courseId"`
}

type trackExerciseRequest struct {
	ID              domain.ExerciseID `json:"id"`
	Title           string            `json:"title"`
	ShortName       string            `json:"shortName,omitempty"`
	ReleaseDate     *time.Time        `json:"releaseDate,omitempty"`
	DueDate         *time.Time        `json:"dueDate,omitempty"`
	CompletionScore *float64          `json:"completionScore,omitempty"`
}

type trackCourseRequest struct {
	ID        domain.CourseID `json:"id"`
	Title     string          `json:"title"`
	ShortName string          `json:"shortName,omitempty"`
}

type setSelectionModeRequest struct {
	Mode string `json:"mode"`
}

type updateDirtyDocumentsRequest struct {
	Paths           []string `json:"paths"`
	AutoSaveEnabled *bool    `json:"autoSaveEnabled,omitempty"`
}

type openClonedRepositoryRequest struct {
	ExerciseID domain.ExerciseID `json:"exerciseId"`
}

type fileEventRequest struct {
	Kind string `json:"kind"`
	Path string `json:"path"`
}

type workspaceExerciseDetectedMessage struct {
	ExerciseID    *domain.ExerciseID `json:"exerciseId"`
	ExerciseTitle *string            `json:"exerciseTitle"`
}

type showClonedRepoNoticeMessage struct {
	ExerciseTitle string `json:"exerciseTitle"`
}

type submissionResultMessage struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type trackedExerciseMessage struct {
	ID              domain.ExerciseID `json:"id"`
	Title           string            `json:"title"`
	ShortName       string            `json:"shortName,omitempty"`
	ReleaseDate     *time.Time        `json:"releaseDate,omitempty"`
	DueDate         *time.Time        `json:"dueDate,omitempty"`
	LastViewed      *time.Time        `json:"lastViewed,omitempty"`
	CompletionScore *float64          `json:"completionScore,omitempty"`
	IsWorkspace     bool              `json:"isWorkspace"`
}

type trackedCourseMessage struct {
	ID         domain.CourseID `json:"id"`
	Title      string          `json:"title"`
	ShortName  string          `json:"shortName,omitempty"`
	LastViewed *time.Time      `json:"lastViewed,omitempty"`
}

type updateDetectedExercisesMessage struct {
	Exercises []trackedExerciseMessage `json:"exercises"`
}

type updateDetectedCoursesMessage struct {
	Courses []trackedCourseMessage `json:"courses"`
}

type contextMessage struct {
	Type      domain.ContextType `json:"type"`
	ID        int64              `json:"id"`
	Title     string             `json:"title"`
	ShortName string             `json:"shortName,omitempty"`
	Reason    string             `json:"reason,omitempty"`
}

type notificationMessage struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

type connectionStatusMessage struct {
	Connected         bool   `json:"connected"`
	ReconnectAttempts int    `json:"reconnectAttempts"`
	Error             string `json:"error,omitempty"`
}

type clonedRepositoryMessage struct {
	ExerciseID domain.ExerciseID `json:"exerciseId"`
	Path       string            `json:"path"`
	Title      string            `json:"title"`
}

type submissionProcessingMessage struct {
	ExerciseID      domain.ExerciseID       `json:"exerciseId,omitempty"`
	ParticipationID domain.ParticipationID  `json:"participationId,omitempty"`
	State           string                  `json:"state"`
	BuildTimingInfo *domain.BuildTimingInfo `json:"buildTimingInfo"`
}

func exerciseMessages(exercises []domain.TrackedExercise) []trackedExerciseMessage {
	out := make([]trackedExerciseMessage, 0, len(exercises))
	for _, e := range exercises {
		out = append(out, trackedExerciseMessage{
			ID:              e.ID,
			Title:           e.DisplayTitle(),
			ShortName:       e.ShortName,
			ReleaseDate:     e.ReleaseDate,
			DueDate:         e.DueDate,
			LastViewed:      e.LastViewed,
			CompletionScore: e.CompletionScore,
			IsWorkspace:     e.IsWorkspace(),
		})
	}
	return out
}

func courseMessages(courses []domain.TrackedCourse) []trackedCourseMessage {
	out := make([]trackedCourseMessage, 0, len(courses))
	for _, c := range courses {
		out = append(out, trackedCourseMessage{ID: c.ID, Title: c.Title, ShortName: c.ShortName, LastViewed: c.LastViewed})
	}
	return out
}
