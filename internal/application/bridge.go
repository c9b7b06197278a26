package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/bnema/artemis-companion-cli/internal/domain"
	"github.com/bnema/artemis-companion-cli/internal/ports"
)

var ErrUnknownCommand = errors.New("unknown bridge command")

type BridgeDeps struct {
	Workbench *Workbench
	Monitor   *WorkspaceMonitor
	Submitter *Submitter
	Puller    *Puller
	Cloner    *CloneService
	Realtime  *RealtimeChannel
	Documents *BridgeDocuments
	Emitter   ports.Emitter
	Logger    *zap.Logger

	CloneDirectory string
	// OnLogout drops the stored platform session.
	OnLogout func(context.Context) error
}

// Bridge translates UI messages into operations and reports every outcome
// back through the emitter.
type Bridge struct {
	BridgeDeps

	handlers map[string]func(context.Context, json.RawMessage) error
	busy     atomic.Bool
	unsubs   []func()
}

func NewBridge(deps BridgeDeps) *Bridge {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	deps.Logger = deps.Logger.Named("bridge")

	b := &Bridge{BridgeDeps: deps}
	b.handlers = map[string]func(context.Context, json.RawMessage) error{
		CmdDetectWorkspaceExercise: b.detectWorkspaceExercise,
		CmdCheckRepositoryStatus:   b.checkRepositoryStatus,
		CmdCloneRepository:         b.cloneRepository,
		CmdPullChanges:             b.pullChanges,
		CmdSubmitExercise:          b.submitExercise,
		CmdSelectChatContext:       b.selectChatContext,
		CmdSelectExerciseContext:   b.selectExerciseContext,
		CmdSelectCourseContext:     b.selectCourseContext,
		CmdTrackExercise:           b.trackExercise,
		CmdTrackCourse:             b.trackCourse,
		CmdClearHistory:            b.clearHistory,
		CmdSetSelectionMode:        b.setSelectionMode,
		CmdLogout:                  b.logout,
		CmdUpdateDirtyDocuments:    b.updateDirtyDocuments,
		CmdOpenClonedRepository:    b.openClonedRepository,
		CmdFileEvent:               b.fileEvent,
	}

	deps.Workbench.SetHooks(WorkbenchHooks{
		OnTrackerChanged: func(exercises []domain.TrackedExercise, courses []domain.TrackedCourse) {
			b.emit(MsgUpdateDetectedExercises, updateDetectedExercisesMessage{Exercises: exerciseMessages(exercises)})
			b.emit(MsgUpdateDetectedCourses, updateDetectedCoursesMessage{Courses: courseMessages(courses)})
		},
		OnAutoSelect: func(selected domain.ChatContext) {
			b.emit(MsgAutoSelectContext, b.contextPayload(selected))
		},
	})

	if deps.Realtime != nil {
		b.unsubs = append(b.unsubs,
			deps.Realtime.Subscribe(domain.EventNewResult, func(event domain.Event) {
				b.emit(MsgNewResult, event.Result)
			}),
			deps.Realtime.Subscribe(domain.EventNewSubmission, func(event domain.Event) {
				b.emit(MsgNewSubmission, event.Submission)
			}),
			deps.Realtime.Subscribe(domain.EventSubmissionProcessing, func(event domain.Event) {
				b.emit(MsgSubmissionProcessing, submissionProcessingMessage{
					ExerciseID:      event.Processing.ExerciseID,
					ParticipationID: event.Processing.ParticipationID,
					State:           event.Processing.State,
					BuildTimingInfo: event.Processing.BuildTimingInfo,
				})
			}),
		)
	}

	return b
}

var blockingCommands = map[string]bool{
	CmdDetectWorkspaceExercise: true,
	CmdCheckRepositoryStatus:   true,
	CmdCloneRepository:         true,
	CmdPullChanges:             true,
	CmdSubmitExercise:          true,
}

// Blocking reports commands that run git or reach the server. The transport
// may run them concurrently; every other command must be handled in order.
func (b *Bridge) Blocking(command string) bool {
	return blockingCommands[command]
}

// Handle runs one inbound command. Failures are reported to the UI as a
// notification and returned.
func (b *Bridge) Handle(ctx context.Context, command string, payload json.RawMessage) error {
	handler, ok := b.handlers[command]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, command)
	}

	if err := handler(ctx, payload); err != nil {
		b.Logger.Warn("bridge command failed", zap.String("command", command), zap.Error(err))
		b.notify("error", err.Error())
		return err
	}
	return nil
}

// ReportConnection forwards realtime status changes.
func (b *Bridge) ReportConnection(status domain.ConnectionStatus) {
	msg := connectionStatusMessage{Connected: status.Connected, ReconnectAttempts: status.Attempts}
	if status.LastError != nil {
		msg.Error = status.LastError.Error()
	}
	b.emit(MsgConnectionStatus, msg)
}

func (b *Bridge) ReportRepositoryStatus(status domain.RepositoryStatus) {
	b.emit(MsgUpdateRepoStatus, status)
}

func (b *Bridge) ReportDirtyPages(status domain.DirtyPagesStatus) {
	b.emit(MsgUpdateDirtyPagesStatus, status)
}

// Close detaches the bridge from the realtime channel.
func (b *Bridge) Close() {
	for _, unsub := range b.unsubs {
		unsub()
	}
	b.unsubs = nil
}

func (b *Bridge) emit(command string, payload any) {
	if b.Emitter == nil {
		return
	}
	if err := b.Emitter.Emit(command, payload); err != nil {
		b.Logger.Warn("emit bridge message", zap.String("command", command), zap.Error(err))
	}
}

func (b *Bridge) notify(level, message string) {
	b.emit(MsgNotification, notificationMessage{Level: level, Message: message})
}

func decode[T any](payload json.RawMessage) (T, error) {
	var out T
	if len(payload) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(payload, &out); err != nil {
		return out, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
	}
	return out, nil
}

func (b *Bridge) contextPayload(selected domain.ChatContext) contextMessage {
	msg := contextMessage{Type: selected.Type, ID: selected.ID, Title: selected.Title, Reason: selected.Reason}
	switch selected.Type {
	case domain.ContextExercise:
		if exercise, ok := b.Workbench.Tracker().Exercise(domain.ExerciseID(selected.ID)); ok {
			msg.ShortName = exercise.ShortName
		}
	case domain.ContextCourse:
		if course, ok := b.Workbench.Tracker().Course(domain.CourseID(selected.ID)); ok {
			msg.ShortName = course.ShortName
		}
	}
	return msg
}

func (b *Bridge) detectWorkspaceExercise(ctx context.Context, _ json.RawMessage) error {
	identity, found, err := b.Monitor.DetectWorkspaceExercise(ctx)
	if err != nil {
		return err
	}

	msg := workspaceExerciseDetectedMessage{}
	if found {
		id, title := identity.ID, identity.Title
		msg.ExerciseID = &id
		msg.ExerciseTitle = &title
	}
	b.emit(MsgWorkspaceExerciseDetected, msg)
	return nil
}

func (b *Bridge) checkRepositoryStatus(ctx context.Context, payload json.RawMessage) error {
	req, err := decode[checkRepositoryStatusRequest](payload)
	if err != nil {
		return err
	}

	b.ReportRepositoryStatus(b.Monitor.CheckRepositoryStatus(ctx, req.ExpectedRepoURL, req.ExerciseID))
	return nil
}

func (b *Bridge) cloneRepository(ctx context.Context, payload json.RawMessage) error {
	req, err := decode[cloneRepositoryRequest](payload)
	if err != nil {
		return err
	}

	repo, err := b.Cloner.Clone(ctx, CloneRequest{
		ParticipationID: req.ParticipationID,
		RepositoryURI:   req.RepositoryURI,
		ExerciseID:      req.ExerciseID,
		ExerciseTitle:   req.ExerciseTitle,
		Directory:       b.CloneDirectory,
	})
	if err != nil {
		return err
	}

	b.emit(MsgClonedRepository, clonedRepositoryMessage{ExerciseID: repo.ExerciseID, Path: repo.Path, Title: repo.Title})
	b.emit(MsgShowClonedRepoNotice, showClonedRepoNoticeMessage{ExerciseTitle: req.ExerciseTitle})
	return nil
}

func (b *Bridge) openClonedRepository(_ context.Context, payload json.RawMessage) error {
	req, err := decode[openClonedRepositoryRequest](payload)
	if err != nil {
		return err
	}

	repo, ok := b.Cloner.Cloned(req.ExerciseID)
	if !ok {
		return fmt.Errorf("open cloned repository: no clone recorded for exercise %d", req.ExerciseID)
	}
	b.emit(MsgClonedRepository, clonedRepositoryMessage{ExerciseID: repo.ExerciseID, Path: repo.Path, Title: repo.Title})
	return nil
}

func (b *Bridge) pullChanges(ctx context.Context, payload json.RawMessage) error {
	req, err := decode[pullChangesRequest](payload)
	if err != nil {
		return err
	}

	result := b.Puller.Pull(ctx, b.Monitor.Root())
	switch result.Outcome {
	case domain.PullUpdated:
		b.notify("info", fmt.Sprintf("Pulled the latest changes for %s.", req.ExerciseTitle))
	case domain.PullUpToDate:
		b.notify("info", fmt.Sprintf("%s is already up to date.", req.ExerciseTitle))
	case domain.PullConflict:
		b.notify("error", "Merge conflict while pulling. Resolve the conflicts manually.")
	default:
		b.notify("error", fmt.Sprintf("Pull failed: %v", result.Err))
	}
	return nil
}

func (b *Bridge) submitExercise(ctx context.Context, payload json.RawMessage) error {
	req, err := decode[submitExerciseRequest](payload)
	if err != nil {
		return err
	}

	if !b.busy.CompareAndSwap(false, true) {
		b.emit(MsgSubmissionResult, submissionResultMessage{Error: domain.ErrSubmissionInProgress.Error()})
		return nil
	}
	defer b.busy.Store(false)

	result := b.Submitter.Submit(ctx, b.Monitor.Root(), domain.SubmissionRequest{
		ParticipationID: req.ParticipationID,
		ExerciseID:      req.ExerciseID,
		ExerciseTitle:   req.ExerciseTitle,
		CommitMessage:   req.CommitMessage,
	}, nil)

	msg := submissionResultMessage{Success: result.Success}
	if result.Err != nil {
		msg.Error = result.Err.Error()
	}
	b.emit(MsgSubmissionResult, msg)

	if identity, ok := b.Workbench.Registry().FindByID(req.ExerciseID); ok {
		b.ReportRepositoryStatus(b.Monitor.CheckRepositoryStatus(ctx, identity.RepositoryURI, identity.ID))
	}
	return nil
}

func (b *Bridge) selectContext(ctx context.Context, kind domain.ContextType, id int64) error {
	selected, err := b.Workbench.Select(ctx, kind, id)
	if err != nil {
		return err
	}
	b.emit(MsgChatContextChanged, b.contextPayload(selected))
	return nil
}

func (b *Bridge) selectChatContext(ctx context.Context, payload json.RawMessage) error {
	req, err := decode[selectChatContextRequest](payload)
	if err != nil {
		return err
	}
	kind, err := domain.ParseContextType(req.Type)
	if err != nil {
		return err
	}
	return b.selectContext(ctx, kind, req.ID)
}

func (b *Bridge) selectExerciseContext(ctx context.Context, payload json.RawMessage) error {
	req, err := decode[selectExerciseContextRequest](payload)
	if err != nil {
		return err
	}
	return b.selectContext(ctx, domain.ContextExercise, int64(req.ExerciseID))
}

func (b *Bridge) selectCourseContext(ctx context.Context, payload json.RawMessage) error {
	req, err := decode[selectCourseContextRequest](payload)
	if err != nil {
		return err
	}
	return b.selectContext(ctx, domain.ContextCourse, int64(req.CourseID))
}

func (b *Bridge) trackExercise(ctx context.Context, payload json.RawMessage) error {
	req, err := decode[trackExerciseRequest](payload)
	if err != nil {
		return err
	}

	if err := b.Workbench.TrackExercise(ctx, domain.TrackedExercise{
		ID:              req.ID,
		Title:           req.Title,
		ShortName:       req.ShortName,
		ReleaseDate:     req.ReleaseDate,
		DueDate:         req.DueDate,
		CompletionScore: req.CompletionScore,
	}); err != nil {
		return err
	}

	if b.Cloner != nil {
		notice, relevant, err := b.Cloner.PendingNotice(ctx, req.ID)
		if err != nil {
			b.Logger.Warn("read clone notice", zap.Error(err))
		} else if relevant {
			b.emit(MsgShowClonedRepoNotice, showClonedRepoNoticeMessage{ExerciseTitle: notice.Title})
		}
	}
	return nil
}

func (b *Bridge) trackCourse(ctx context.Context, payload json.RawMessage) error {
	req, err := decode[trackCourseRequest](payload)
	if err != nil {
		return err
	}
	return b.Workbench.TrackCourse(ctx, domain.TrackedCourse{ID: req.ID, Title: req.Title, ShortName: req.ShortName})
}

func (b *Bridge) clearHistory(ctx context.Context, _ json.RawMessage) error {
	if err := b.Workbench.ClearHistory(ctx); err != nil {
		return err
	}
	b.emit(MsgUpdateDetectedExercises, updateDetectedExercisesMessage{Exercises: []trackedExerciseMessage{}})
	b.emit(MsgUpdateDetectedCourses, updateDetectedCoursesMessage{Courses: []trackedCourseMessage{}})
	return nil
}

func (b *Bridge) setSelectionMode(ctx context.Context, payload json.RawMessage) error {
	req, err := decode[setSelectionModeRequest](payload)
	if err != nil {
		return err
	}
	mode, err := domain.ParseSelectionMode(req.Mode)
	if err != nil {
		return err
	}
	return b.Workbench.SetSelectionMode(ctx, mode)
}

func (b *Bridge) logout(ctx context.Context, _ json.RawMessage) error {
	if b.Realtime != nil {
		if err := b.Realtime.Disconnect(); err != nil {
			b.Logger.Warn("disconnect realtime channel", zap.Error(err))
		}
	}
	if b.OnLogout != nil {
		if err := b.OnLogout(ctx); err != nil {
			return fmt.Errorf("drop session: %w", err)
		}
	}
	return b.Workbench.Logout(ctx)
}

func (b *Bridge) updateDirtyDocuments(ctx context.Context, payload json.RawMessage) error {
	req, err := decode[updateDirtyDocumentsRequest](payload)
	if err != nil {
		return err
	}

	if b.Documents != nil {
		b.Documents.Set(req.Paths)
	}
	if req.AutoSaveEnabled != nil {
		b.Monitor.SetAutoSave(*req.AutoSaveEnabled)
	}
	b.Monitor.HandleDocumentChange(ctx)
	return nil
}

func (b *Bridge) fileEvent(ctx context.Context, payload json.RawMessage) error {
	req, err := decode[fileEventRequest](payload)
	if err != nil {
		return err
	}
	b.Monitor.HandleFileEvent(ctx, ports.FileEvent{Kind: ports.FileEventKind(req.Kind), Path: req.Path})
	return nil
}
