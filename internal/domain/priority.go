package domain

import "time"

const (
	day  = 24 * time.Hour
	week = 7 * day

	workspaceBonus       = 1000.0
	recentReleaseBonus   = 100.0
	dueSoonMaxBonus      = 200.0
	dueSoonMinBonus      = 170.0
	recentlyViewedBonus  = 50.0
	completedPenalty     = 100.0
	courseWorkspaceBonus = 800.0
	courseViewedBonus    = 100.0

	// baseTermScale keeps the day-granularity epoch term below every bonus so
	// it only orders otherwise equal entries.
	baseTermScale = 1000.0
)

// ExercisePriority scores a tracked exercise at now. Higher ranks first.
func ExercisePriority(e TrackedExercise, now time.Time) float64 {
	score := 0.0

	if e.IsWorkspace() {
		score += workspaceBonus
	}

	if e.ReleaseDate != nil {
		sinceRelease := now.Sub(*e.ReleaseDate)
		if sinceRelease >= 0 && sinceRelease <= week {
			score += recentReleaseBonus
		}
		score += epochDayTerm(*e.ReleaseDate)
	}

	if e.DueDate != nil {
		untilDue := e.DueDate.Sub(now)
		if untilDue > 0 && untilDue <= week {
			score += dueSoonBonus(untilDue)
		}
	}

	if e.LastViewed != nil && now.Sub(*e.LastViewed) <= day {
		score += recentlyViewedBonus
	}

	if e.CompletionScore != nil && *e.CompletionScore >= 100 {
		score -= completedPenalty
	}

	return score
}

// CoursePriority scores a tracked course. workspaceTracked reports whether any
// tracked exercise carries the workspace marker.
func CoursePriority(c TrackedCourse, workspaceTracked bool, now time.Time) float64 {
	score := 0.0

	if workspaceTracked {
		score += courseWorkspaceBonus
	}

	if c.LastViewed != nil {
		if now.Sub(*c.LastViewed) <= day {
			score += courseViewedBonus
		}
		score += epochDayTerm(*c.LastViewed)
	}

	return score
}

// dueSoonBonus falls linearly from 200 (due now) to 170 (due in a week).
func dueSoonBonus(untilDue time.Duration) float64 {
	fraction := float64(untilDue) / float64(week)
	return dueSoonMaxBonus - (dueSoonMaxBonus-dueSoonMinBonus)*fraction
}

func epochDayTerm(t time.Time) float64 {
	return float64(t.Unix()/int64(day/time.Second)) / baseTermScale
}
