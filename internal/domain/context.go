package domain

import (
	"fmt"
	"time"
)

type ContextType string

const (
	ContextExercise ContextType = "exercise"
	ContextCourse   ContextType = "course"
	ContextTutor    ContextType = "tutor"
)

func ParseContextType(raw string) (ContextType, error) {
	switch t := ContextType(raw); t {
	case ContextExercise, ContextCourse, ContextTutor:
		return t, nil
	default:
		return "", fmt.Errorf("unsupported context type %q", raw)
	}
}

type SelectionMode string

const (
	SelectionAuto   SelectionMode = "auto"
	SelectionManual SelectionMode = "manual"
)

func ParseSelectionMode(raw string) (SelectionMode, error) {
	switch m := SelectionMode(raw); m {
	case SelectionAuto, SelectionManual:
		return m, nil
	default:
		return "", fmt.Errorf("unsupported selection mode %q", raw)
	}
}

const (
	ReasonUser      = "user"
	ReasonAuto      = "auto"
	ReasonWorkspace = "workspace"
)

// ChatContext is replaced as a whole, never patched field by field.
type ChatContext struct {
	Type      ContextType
	ID        int64
	Title     string
	Reason    string
	Timestamp time.Time
}

// TrackerState is the persisted form of the context tracker. Exercise and
// course slices are kept in insertion order.
type TrackerState struct {
	Exercises []TrackedExercise
	Courses   []TrackedCourse
	Context   *ChatContext
	Mode      SelectionMode
}
