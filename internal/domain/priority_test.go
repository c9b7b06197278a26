package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timePtr(t time.Time) *time.Time { return &t }

func floatPtr(v float64) *float64 { return &v }

func TestExercisePriorityWorkspaceScenario(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	release := now.Add(-48 * time.Hour)

	workspace := TrackedExercise{
		ID:          1,
		Title:       MarkWorkspaceTitle("Sorting"),
		ReleaseDate: timePtr(release),
		DueDate:     timePtr(now.Add(72 * time.Hour)),
		LastViewed:  timePtr(now.Add(-time.Hour)),
	}
	plain := workspace
	plain.Title = "Sorting"

	got := ExercisePriority(workspace, now)
	bonuses := got - epochDayTerm(release)

	assert.InDelta(t, 1000+100+(200-30*3.0/7.0)+50, bonuses, 0.001)
	assert.Greater(t, got, ExercisePriority(plain, now))
	assert.InDelta(t, 1000, got-ExercisePriority(plain, now), 0.001)
}

func TestExercisePriorityIsDeterministic(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	e := TrackedExercise{
		ID:              7,
		Title:           "Graphs",
		ReleaseDate:     timePtr(now.Add(-10 * 24 * time.Hour)),
		DueDate:         timePtr(now.Add(24 * time.Hour)),
		CompletionScore: floatPtr(40),
	}

	first := ExercisePriority(e, now)
	for range 10 {
		require.Equal(t, first, ExercisePriority(e, now))
	}
}

func TestExercisePriorityBonuses(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		exercise TrackedExercise
		want     float64
	}{
		{name: "empty exercise scores zero", exercise: TrackedExercise{ID: 1}, want: 0},
		{name: "due right now is past the window", exercise: TrackedExercise{DueDate: timePtr(now)}, want: 0},
		{name: "due in a week gets the minimum bonus", exercise: TrackedExercise{DueDate: timePtr(now.Add(7 * 24 * time.Hour))}, want: 170},
		{name: "due in eight days gets nothing", exercise: TrackedExercise{DueDate: timePtr(now.Add(8 * 24 * time.Hour))}, want: 0},
		{name: "viewed a day ago still counts", exercise: TrackedExercise{LastViewed: timePtr(now.Add(-24 * time.Hour))}, want: 50},
		{name: "viewed two days ago does not count", exercise: TrackedExercise{LastViewed: timePtr(now.Add(-48 * time.Hour))}, want: 0},
		{name: "completed exercise is penalized", exercise: TrackedExercise{CompletionScore: floatPtr(100)}, want: -100},
		{name: "partial completion is not penalized", exercise: TrackedExercise{CompletionScore: floatPtr(99.5)}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ExercisePriority(tt.exercise, now), 0.0001)
		})
	}
}

func TestExercisePriorityPrefersRecentReleaseOnTie(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	older := TrackedExercise{ID: 1, ReleaseDate: timePtr(now.Add(-30 * 24 * time.Hour))}
	newer := TrackedExercise{ID: 2, ReleaseDate: timePtr(now.Add(-20 * 24 * time.Hour))}

	assert.Greater(t, ExercisePriority(newer, now), ExercisePriority(older, now))
}

func TestCoursePriority(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	viewed := now.Add(-2 * time.Hour)
	c := TrackedCourse{ID: 3, Title: "Algorithms", LastViewed: timePtr(viewed)}

	withoutWorkspace := CoursePriority(c, false, now)
	withWorkspace := CoursePriority(c, true, now)

	assert.InDelta(t, 100+epochDayTerm(viewed), withoutWorkspace, 0.0001)
	assert.InDelta(t, 800, withWorkspace-withoutWorkspace, 0.0001)
	assert.Zero(t, CoursePriority(TrackedCourse{ID: 4}, false, now))
}
