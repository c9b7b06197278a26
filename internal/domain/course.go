package domain

import "time"

// Course is the subset of the dashboard course payload the companion consumes.
type Course struct {
	ID        CourseID
	Title     string
	ShortName string
	Exercises []CourseExercise
}

type CourseExercise struct {
	ID             ExerciseID
	Title          string
	ShortName      string
	ReleaseDate    *time.Time
	DueDate        *time.Time
	Participations []Participation
}

type Participation struct {
	ID            ParticipationID
	RepositoryURI string
}

// FirstRepositoryURI returns the repository of the first participation, if any.
func (e CourseExercise) FirstRepositoryURI() string {
	if len(e.Participations) == 0 {
		return ""
	}
	return e.Participations[0].RepositoryURI
}

type Account struct {
	Login string
	Name  string
	Email string
}
