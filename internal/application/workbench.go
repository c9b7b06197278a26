package application

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/bnema/artemis-companion-cli/internal/domain"
	"github.com/bnema/artemis-companion-cli/internal/ports"
)

const TutorContextTitle = "Tutor"

// WorkbenchHooks are notified after the tracker changed.
type WorkbenchHooks struct {
	OnTrackerChanged func(exercises []domain.TrackedExercise, courses []domain.TrackedCourse)
	OnAutoSelect     func(selected domain.ChatContext)
}

// Workbench owns the registry and tracker for the lifetime of a process,
// loading them on open and persisting every change.
type Workbench struct {
	registry *Registry
	tracker  *Tracker
	state    ports.StateRepository
	clock    ports.Clock
	logger   *zap.Logger

	mu    sync.Mutex
	hooks WorkbenchHooks
}

func OpenWorkbench(ctx context.Context, state ports.StateRepository, clock ports.Clock, logger *zap.Logger) (*Workbench, error) {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	w := &Workbench{
		registry: NewRegistry(),
		tracker:  NewTracker(clock),
		state:    state,
		clock:    clock,
		logger:   logger.Named("workbench"),
	}

	identities, err := state.LoadRegistry(ctx)
	if err != nil {
		return nil, fmt.Errorf("load exercise registry: %w", err)
	}
	for _, identity := range identities {
		w.registry.RegisterExercise(identity)
	}

	trackerState, err := state.LoadTracker(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tracker state: %w", err)
	}
	w.tracker.Restore(trackerState)

	return w, nil
}

func (w *Workbench) Registry() *Registry {
	return w.registry
}

func (w *Workbench) Tracker() *Tracker {
	return w.tracker
}

func (w *Workbench) SetHooks(hooks WorkbenchHooks) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.hooks = hooks
}

// Sync registers the exercises of courses and persists the registry.
func (w *Workbench) Sync(ctx context.Context, courses []domain.Course) (int, error) {
	w.registry.Clear()
	registered := 0
	for _, course := range courses {
		registered += w.registry.RegisterFromCourseData(course)
	}

	if err := w.state.SaveRegistry(ctx, w.registry.All()); err != nil {
		return registered, fmt.Errorf("save exercise registry: %w", err)
	}
	return registered, nil
}

// TrackExercise records that exercise was viewed now.
func (w *Workbench) TrackExercise(ctx context.Context, exercise domain.TrackedExercise) error {
	now := w.clock.Now()
	exercise.LastViewed = &now

	if evicted := w.tracker.TrackExercise(exercise); len(evicted) > 0 {
		w.logger.Debug("evicted tracked exercises", zap.Any("ids", evicted))
	}
	return w.afterTrackerChange(ctx)
}

func (w *Workbench) TrackCourse(ctx context.Context, course domain.TrackedCourse) error {
	now := w.clock.Now()
	course.LastViewed = &now

	if evicted := w.tracker.TrackCourse(course); len(evicted) > 0 {
		w.logger.Debug("evicted tracked courses", zap.Any("ids", evicted))
	}
	return w.afterTrackerChange(ctx)
}

// MarkWorkspace tags identity as the workspace exercise.
func (w *Workbench) MarkWorkspace(ctx context.Context, identity domain.ExerciseIdentity) error {
	w.tracker.MarkWorkspace(identity)
	return w.afterTrackerChange(ctx)
}

func (w *Workbench) afterTrackerChange(ctx context.Context) error {
	selected, autoSelected := w.tracker.AutoSelect()

	w.mu.Lock()
	hooks := w.hooks
	w.mu.Unlock()

	if hooks.OnTrackerChanged != nil {
		hooks.OnTrackerChanged(w.tracker.Exercises(), w.tracker.Courses())
	}
	if autoSelected && hooks.OnAutoSelect != nil {
		hooks.OnAutoSelect(selected)
	}

	return w.save(ctx)
}

// Select records an explicit user selection. Exercise and course ids must be
// tracked.
func (w *Workbench) Select(ctx context.Context, kind domain.ContextType, id int64) (domain.ChatContext, error) {
	var title string
	switch kind {
	case domain.ContextExercise:
		exercise, ok := w.tracker.Exercise(domain.ExerciseID(id))
		if !ok {
			identity, found := w.registry.FindByID(domain.ExerciseID(id))
			if !found {
				return domain.ChatContext{}, fmt.Errorf("select exercise %d: %w", id, domain.ErrExerciseNotFound)
			}
			exercise = domain.TrackedExercise{ID: identity.ID, Title: identity.Title, ShortName: identity.ShortName}
		}
		title = exercise.DisplayTitle()
	case domain.ContextCourse:
		course, ok := w.tracker.Course(domain.CourseID(id))
		if !ok {
			return domain.ChatContext{}, fmt.Errorf("select course %d: not tracked", id)
		}
		title = course.Title
	case domain.ContextTutor:
		title = TutorContextTitle
	default:
		return domain.ChatContext{}, fmt.Errorf("select context: unsupported type %q", kind)
	}

	selected := w.tracker.SelectByUser(kind, id, title)
	if err := w.save(ctx); err != nil {
		return selected, err
	}
	return selected, nil
}

func (w *Workbench) SetSelectionMode(ctx context.Context, mode domain.SelectionMode) error {
	w.tracker.SetSelectionMode(mode)
	return w.save(ctx)
}

func (w *Workbench) ClearContext(ctx context.Context) error {
	w.tracker.ClearContext()
	return w.save(ctx)
}

// ClearHistory drops tracked records and the context. The selection mode is
// kept, so only an auto-mode workbench selects again on the next change.
func (w *Workbench) ClearHistory(ctx context.Context) error {
	w.tracker.ClearHistory()
	return w.save(ctx)
}

// Logout forgets the context and the registry; tracked history is kept.
func (w *Workbench) Logout(ctx context.Context) error {
	w.tracker.ClearContext()
	w.registry.Clear()

	if err := w.state.SaveRegistry(ctx, nil); err != nil {
		return fmt.Errorf("save exercise registry: %w", err)
	}
	return w.save(ctx)
}

func (w *Workbench) save(ctx context.Context) error {
	if err := w.state.SaveTracker(ctx, w.tracker.Snapshot()); err != nil {
		return fmt.Errorf("save tracker state: %w", err)
	}
	return nil
}

// Close persists the final state.
func (w *Workbench) Close(ctx context.Context) error {
	return w.save(ctx)
}
