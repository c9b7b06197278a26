package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version      int                     `toml:"version"`
	Selection    selectionSchema         `toml:"selection"`
	Exercises    []trackedExerciseSchema `toml:"exercises"`
	Courses      []trackedCourseSchema   `toml:"courses"`
	Registry     []identitySchema        `toml:"registry"`
	CloneNotices []cloneNoticeSchema     `toml:"clone_notices"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
	if s.Selection.Mode == "" {
		s.Selection.Mode = "auto"
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported state schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type selectionSchema struct {
	Mode    string         `toml:"mode"`
	Context *contextSchema `toml:"context,omitempty"`
}

type contextSchema struct {
	Type      string `toml:"type"`
	ID        int64  `toml:"id"`
	Title     string `toml:"title"`
	Reason    string `toml:"reason"`
	Timestamp string `toml:"timestamp"`
}

type trackedExerciseSchema struct {
	ID              int64    `toml:"id"`
	Title           string   `toml:"title"`
	ShortName       string   `toml:"short_name,omitempty"`
	ReleaseDate     string   `toml:"release_date,omitempty"`
	DueDate         string   `toml:"due_date,omitempty"`
	LastViewed      string   `toml:"last_viewed,omitempty"`
	CompletionScore *float64 `toml:"completion_score,omitempty"`
}

type trackedCourseSchema struct {
	ID         int64  `toml:"id"`
	Title      string `toml:"title"`
	ShortName  string `toml:"short_name,omitempty"`
	LastViewed string `toml:"last_viewed,omitempty"`
}

type identitySchema struct {
	ID            int64  `toml:"id"`
	Title         string `toml:"title"`
	RepositoryURI string `toml:"repository_uri"`
	ShortName     string `toml:"short_name,omitempty"`
}

type cloneNoticeSchema struct {
	ExerciseID int64  `toml:"exercise_id"`
	Timestamp  string `toml:"timestamp"`
	Title      string `toml:"title"`
}
