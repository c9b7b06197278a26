package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/bnema/artemis-companion-cli/internal/domain"
	"github.com/bnema/artemis-companion-cli/internal/ports"
)

const (
	StatePathKey    = "state.path"
	stateFileMode   = 0o600
	stateDirMode    = 0o700
	stateConfigDir  = ".artemis"
	stateConfigFile = "state.toml"
	tempFilePattern = ".state-*.toml.tmp"
)

// Repository persists tracker state, the exercise registry and clone notices
// in one toml file.
type Repository struct {
	statePath string
	mu        *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var (
	_ ports.StateRepository       = (*Repository)(nil)
	_ ports.CloneNoticeRepository = (*Repository)(nil)
)

func DefaultStatePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(homeDir, stateConfigDir, stateConfigFile), nil
}

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	statePath := cfg.GetString(StatePathKey)
	if statePath == "" {
		defaultPath, err := DefaultStatePath()
		if err != nil {
			return nil, err
		}
		statePath = defaultPath
	}

	statePath, err := normalizeStatePath(statePath)
	if err != nil {
		return nil, err
	}

	return &Repository{statePath: statePath, mu: lockForPath(statePath)}, nil
}

func (r *Repository) Path() string {
	return r.statePath
}

func (r *Repository) LoadTracker(ctx context.Context) (domain.TrackerState, error) {
	file, err := r.read(ctx)
	if err != nil {
		return domain.TrackerState{}, err
	}

	state := domain.TrackerState{Mode: domain.SelectionAuto}
	if mode, err := domain.ParseSelectionMode(file.Selection.Mode); err == nil {
		state.Mode = mode
	}
	if file.Selection.Context != nil {
		selected, err := fromContextSchema(*file.Selection.Context)
		if err != nil {
			return domain.TrackerState{}, fmt.Errorf("decode selected context: %w", err)
		}
		state.Context = &selected
	}
	for _, entry := range file.Exercises {
		state.Exercises = append(state.Exercises, fromExerciseSchema(entry))
	}
	for _, entry := range file.Courses {
		state.Courses = append(state.Courses, fromCourseSchema(entry))
	}

	return state, nil
}

func (r *Repository) SaveTracker(ctx context.Context, state domain.TrackerState) error {
	return r.update(ctx, func(file *fileSchema) {
		file.Selection = selectionSchema{Mode: string(state.Mode)}
		if state.Context != nil {
			selected := toContextSchema(*state.Context)
			file.Selection.Context = &selected
		}

		file.Exercises = make([]trackedExerciseSchema, 0, len(state.Exercises))
		for _, exercise := range state.Exercises {
			file.Exercises = append(file.Exercises, toExerciseSchema(exercise))
		}
		file.Courses = make([]trackedCourseSchema, 0, len(state.Courses))
		for _, course := range state.Courses {
			file.Courses = append(file.Courses, toCourseSchema(course))
		}
	})
}

func (r *Repository) LoadRegistry(ctx context.Context) ([]domain.ExerciseIdentity, error) {
	file, err := r.read(ctx)
	if err != nil {
		return nil, err
	}

	identities := make([]domain.ExerciseIdentity, 0, len(file.Registry))
	for _, entry := range file.Registry {
		identities = append(identities, domain.ExerciseIdentity{
			ID:            domain.ExerciseID(entry.ID),
			Title:         entry.Title,
			RepositoryURI: entry.RepositoryURI,
			ShortName:     entry.ShortName,
		})
	}
	return identities, nil
}

func (r *Repository) SaveRegistry(ctx context.Context, identities []domain.ExerciseIdentity) error {
	return r.update(ctx, func(file *fileSchema) {
		file.Registry = make([]identitySchema, 0, len(identities))
		for _, identity := range identities {
			file.Registry = append(file.Registry, identitySchema{
				ID:            int64(identity.ID),
				Title:         identity.Title,
				RepositoryURI: identity.RepositoryURI,
				ShortName:     identity.ShortName,
			})
		}
	})
}

func (r *Repository) GetCloneNotice(ctx context.Context, id domain.ExerciseID) (domain.CloneNotice, bool, error) {
	file, err := r.read(ctx)
	if err != nil {
		return domain.CloneNotice{}, false, err
	}

	for _, entry := range file.CloneNotices {
		if entry.ExerciseID == int64(id) {
			return domain.CloneNotice{
				ExerciseID: id,
				Timestamp:  parseTime(entry.Timestamp),
				Title:      entry.Title,
			}, true, nil
		}
	}
	return domain.CloneNotice{}, false, nil
}

func (r *Repository) PutCloneNotice(ctx context.Context, notice domain.CloneNotice) error {
	return r.update(ctx, func(file *fileSchema) {
		encoded := cloneNoticeSchema{
			ExerciseID: int64(notice.ExerciseID),
			Timestamp:  formatTime(notice.Timestamp),
			Title:      notice.Title,
		}
		for i := range file.CloneNotices {
			if file.CloneNotices[i].ExerciseID == encoded.ExerciseID {
				file.CloneNotices[i] = encoded
				return
			}
		}
		file.CloneNotices = append(file.CloneNotices, encoded)
	})
}

func (r *Repository) DeleteCloneNotice(ctx context.Context, id domain.ExerciseID) error {
	return r.update(ctx, func(file *fileSchema) {
		kept := file.CloneNotices[:0]
		for _, entry := range file.CloneNotices {
			if entry.ExerciseID != int64(id) {
				kept = append(kept, entry)
			}
		}
		file.CloneNotices = kept
	})
}

func (r *Repository) read(ctx context.Context) (fileSchema, error) {
	if err := ctx.Err(); err != nil {
		return fileSchema{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.readSchema()
}

func (r *Repository) update(ctx context.Context, mutate func(*fileSchema)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}
	mutate(&file)

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.statePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			file := fileSchema{}
			file.applyDefaults()
			return file, nil
		}
		return fileSchema{}, fmt.Errorf("read state file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode state file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func normalizeStatePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve state path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.statePath), stateDirMode); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode state file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.statePath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp state file: %w", err)
	}

	if err := tempFile.Chmod(stateFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp state file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp state file: %w", err)
	}

	if err := os.Rename(tempName, r.statePath); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}

	cleanup = false
	return nil
}

func toContextSchema(selected domain.ChatContext) contextSchema {
	return contextSchema{
		Type:      string(selected.Type),
		ID:        selected.ID,
		Title:     selected.Title,
		Reason:    selected.Reason,
		Timestamp: formatTime(selected.Timestamp),
	}
}

func fromContextSchema(entry contextSchema) (domain.ChatContext, error) {
	kind, err := domain.ParseContextType(entry.Type)
	if err != nil {
		return domain.ChatContext{}, err
	}

	return domain.ChatContext{
		Type:      kind,
		ID:        entry.ID,
		Title:     entry.Title,
		Reason:    entry.Reason,
		Timestamp: parseTime(entry.Timestamp),
	}, nil
}

func toExerciseSchema(exercise domain.TrackedExercise) trackedExerciseSchema {
	return trackedExerciseSchema{
		ID:              int64(exercise.ID),
		Title:           exercise.Title,
		ShortName:       exercise.ShortName,
		ReleaseDate:     formatTimePtr(exercise.ReleaseDate),
		DueDate:         formatTimePtr(exercise.DueDate),
		LastViewed:      formatTimePtr(exercise.LastViewed),
		CompletionScore: exercise.CompletionScore,
	}
}

func fromExerciseSchema(entry trackedExerciseSchema) domain.TrackedExercise {
	return domain.TrackedExercise{
		ID:              domain.ExerciseID(entry.ID),
		Title:           entry.Title,
		ShortName:       entry.ShortName,
		ReleaseDate:     parseTimePtr(entry.ReleaseDate),
		DueDate:         parseTimePtr(entry.DueDate),
		LastViewed:      parseTimePtr(entry.LastViewed),
		CompletionScore: entry.CompletionScore,
	}
}

func toCourseSchema(course domain.TrackedCourse) trackedCourseSchema {
	return trackedCourseSchema{
		ID:         int64(course.ID),
		Title:      course.Title,
		ShortName:  course.ShortName,
		LastViewed: formatTimePtr(course.LastViewed),
	}
}

func fromCourseSchema(entry trackedCourseSchema) domain.TrackedCourse {
	return domain.TrackedCourse{
		ID:         domain.CourseID(entry.ID),
		Title:      entry.Title,
		ShortName:  entry.ShortName,
		LastViewed: parseTimePtr(entry.LastViewed),
	}
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func parseTimePtr(raw string) *time.Time {
	parsed := parseTime(raw)
	if parsed.IsZero() {
		return nil
	}
	return &parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.Format(time.RFC3339)
}

func formatTimePtr(value *time.Time) string {
	if value == nil {
		return ""
	}
	return formatTime(*value)
}
