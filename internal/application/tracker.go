package application

import (
	"slices"
	"sort"
	"sync"

	"github.com/bnema/artemis-companion-cli/internal/domain"
	"github.com/bnema/artemis-companion-cli/internal/ports"
)

const (
	MaxTrackedExercises = 5
	MaxTrackedCourses   = 3
)

// Tracker keeps the recently seen exercises and courses and the selected
// chat context. Eviction follows insertion order while presentation and
// auto-selection follow priority.
type Tracker struct {
	mu    sync.Mutex
	clock ports.Clock

	exerciseOrder []domain.ExerciseID
	exercises     map[domain.ExerciseID]domain.TrackedExercise
	courseOrder   []domain.CourseID
	courses       map[domain.CourseID]domain.TrackedCourse

	context *domain.ChatContext
	mode    domain.SelectionMode
}

func NewTracker(clock ports.Clock) *Tracker {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Tracker{
		clock:     clock,
		exercises: map[domain.ExerciseID]domain.TrackedExercise{},
		courses:   map[domain.CourseID]domain.TrackedCourse{},
		mode:      domain.SelectionAuto,
	}
}

// TrackExercise merges update into the tracked record, inserting it when new.
// It returns the ids evicted to keep the bound.
func (t *Tracker) TrackExercise(update domain.TrackedExercise) []domain.ExerciseID {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.trackExerciseLocked(update)
}

func (t *Tracker) trackExerciseLocked(update domain.TrackedExercise) []domain.ExerciseID {
	existing, ok := t.exercises[update.ID]
	if ok {
		t.exercises[update.ID] = existing.Merge(update)
		return nil
	}

	t.exercises[update.ID] = update
	t.exerciseOrder = append(t.exerciseOrder, update.ID)

	var evicted []domain.ExerciseID
	for len(t.exerciseOrder) > MaxTrackedExercises {
		oldest := t.exerciseOrder[0]
		t.exerciseOrder = t.exerciseOrder[1:]
		delete(t.exercises, oldest)
		evicted = append(evicted, oldest)
	}
	return evicted
}

func (t *Tracker) TrackCourse(update domain.TrackedCourse) []domain.CourseID {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.trackCourseLocked(update)
}

func (t *Tracker) trackCourseLocked(update domain.TrackedCourse) []domain.CourseID {
	existing, ok := t.courses[update.ID]
	if ok {
		t.courses[update.ID] = existing.Merge(update)
		return nil
	}

	t.courses[update.ID] = update
	t.courseOrder = append(t.courseOrder, update.ID)

	var evicted []domain.CourseID
	for len(t.courseOrder) > MaxTrackedCourses {
		oldest := t.courseOrder[0]
		t.courseOrder = t.courseOrder[1:]
		delete(t.courses, oldest)
		evicted = append(evicted, oldest)
	}
	return evicted
}

// MarkWorkspace tags the exercise matching identity as the workspace
// exercise, keeping any metadata already tracked for it. Any other exercise
// loses the tag.
func (t *Tracker) MarkWorkspace(identity domain.ExerciseIdentity) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for id, exercise := range t.exercises {
		if id != identity.ID && exercise.IsWorkspace() {
			exercise.Title = domain.StripWorkspaceMarker(exercise.Title)
			t.exercises[id] = exercise
		}
	}

	title := identity.Title
	if existing, ok := t.exercises[identity.ID]; ok && existing.Title != "" {
		title = existing.Title
	}

	t.trackExerciseLocked(domain.TrackedExercise{
		ID:        identity.ID,
		Title:     domain.MarkWorkspaceTitle(title),
		ShortName: identity.ShortName,
	})
}

// Exercises returns tracked exercises ordered by priority, highest first.
func (t *Tracker) Exercises() []domain.TrackedExercise {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.sortedExercisesLocked()
}

func (t *Tracker) sortedExercisesLocked() []domain.TrackedExercise {
	now := t.clock.Now()
	out := make([]domain.TrackedExercise, 0, len(t.exerciseOrder))
	for _, id := range t.exerciseOrder {
		out = append(out, t.exercises[id])
	}

	sort.SliceStable(out, func(i, j int) bool {
		return domain.ExercisePriority(out[i], now) > domain.ExercisePriority(out[j], now)
	})
	return out
}

func (t *Tracker) Courses() []domain.TrackedCourse {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.sortedCoursesLocked()
}

func (t *Tracker) sortedCoursesLocked() []domain.TrackedCourse {
	now := t.clock.Now()
	workspaceTracked := t.workspaceTrackedLocked()
	out := make([]domain.TrackedCourse, 0, len(t.courseOrder))
	for _, id := range t.courseOrder {
		out = append(out, t.courses[id])
	}

	sort.SliceStable(out, func(i, j int) bool {
		return domain.CoursePriority(out[i], workspaceTracked, now) > domain.CoursePriority(out[j], workspaceTracked, now)
	})
	return out
}

func (t *Tracker) workspaceTrackedLocked() bool {
	for _, exercise := range t.exercises {
		if exercise.IsWorkspace() {
			return true
		}
	}
	return false
}

func (t *Tracker) Exercise(id domain.ExerciseID) (domain.TrackedExercise, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	exercise, ok := t.exercises[id]
	return exercise, ok
}

func (t *Tracker) Course(id domain.CourseID) (domain.TrackedCourse, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	course, ok := t.courses[id]
	return course, ok
}

// SetContext replaces the selected context as a whole.
func (t *Tracker) SetContext(kind domain.ContextType, id int64, title, reason string) domain.ChatContext {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.setContextLocked(kind, id, title, reason)
}

func (t *Tracker) setContextLocked(kind domain.ContextType, id int64, title, reason string) domain.ChatContext {
	selected := domain.ChatContext{
		Type:      kind,
		ID:        id,
		Title:     title,
		Reason:    reason,
		Timestamp: t.clock.Now(),
	}
	t.context = &selected
	return selected
}

// SelectByUser records an explicit user choice. The first one switches the
// tracker to manual mode.
func (t *Tracker) SelectByUser(kind domain.ContextType, id int64, title string) domain.ChatContext {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.mode = domain.SelectionManual
	return t.setContextLocked(kind, id, title, domain.ReasonUser)
}

func (t *Tracker) ClearContext() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.context = nil
}

func (t *Tracker) Context() (domain.ChatContext, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.context == nil {
		return domain.ChatContext{}, false
	}
	return *t.context, true
}

func (t *Tracker) Mode() domain.SelectionMode {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.mode
}

// SetSelectionMode is user initiated. It leaves the current context alone.
func (t *Tracker) SetSelectionMode(mode domain.SelectionMode) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.mode = mode
}

// AutoSelect picks a context when none is set and the tracker is in auto
// mode: the workspace exercise, else the top exercise, else the top course.
func (t *Tracker) AutoSelect() (domain.ChatContext, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.context != nil || t.mode != domain.SelectionAuto {
		return domain.ChatContext{}, false
	}

	exercises := t.sortedExercisesLocked()
	for _, exercise := range exercises {
		if exercise.IsWorkspace() {
			return t.setContextLocked(domain.ContextExercise, int64(exercise.ID), exercise.DisplayTitle(), domain.ReasonWorkspace), true
		}
	}
	if len(exercises) > 0 {
		top := exercises[0]
		return t.setContextLocked(domain.ContextExercise, int64(top.ID), top.DisplayTitle(), domain.ReasonAuto), true
	}

	courses := t.sortedCoursesLocked()
	if len(courses) > 0 {
		top := courses[0]
		return t.setContextLocked(domain.ContextCourse, int64(top.ID), top.Title, domain.ReasonAuto), true
	}

	return domain.ChatContext{}, false
}

// ClearHistory drops every tracked record and the context. The mode is kept.
func (t *Tracker) ClearHistory() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.exerciseOrder = nil
	t.exercises = map[domain.ExerciseID]domain.TrackedExercise{}
	t.courseOrder = nil
	t.courses = map[domain.CourseID]domain.TrackedCourse{}
	t.context = nil
}

// Snapshot returns the persisted form, records in insertion order.
func (t *Tracker) Snapshot() domain.TrackerState {
	t.mu.Lock()
	defer t.mu.Unlock()

	state := domain.TrackerState{Mode: t.mode}
	for _, id := range t.exerciseOrder {
		state.Exercises = append(state.Exercises, t.exercises[id])
	}
	for _, id := range t.courseOrder {
		state.Courses = append(state.Courses, t.courses[id])
	}
	if t.context != nil {
		selected := *t.context
		state.Context = &selected
	}
	return state
}

// Restore replaces the tracker contents with state, re-applying the bounds.
func (t *Tracker) Restore(state domain.TrackerState) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.exerciseOrder = nil
	t.exercises = map[domain.ExerciseID]domain.TrackedExercise{}
	t.courseOrder = nil
	t.courses = map[domain.CourseID]domain.TrackedCourse{}

	for _, exercise := range state.Exercises {
		t.trackExerciseLocked(exercise)
	}
	for _, course := range state.Courses {
		t.trackCourseLocked(course)
	}

	t.context = nil
	if state.Context != nil {
		selected := *state.Context
		t.context = &selected
	}

	t.mode = domain.SelectionAuto
	if state.Mode == domain.SelectionManual {
		t.mode = domain.SelectionManual
	}
}

// InsertionOrder exposes the eviction order of tracked exercises.
func (t *Tracker) InsertionOrder() []domain.ExerciseID {
	t.mu.Lock()
	defer t.mu.Unlock()

	return slices.Clone(t.exerciseOrder)
}
