package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/artemis-companion-cli/internal/domain"
)

func TestRegistryRegisterExerciseUpserts(t *testing.T) {
	registry := NewRegistry()
	registry.RegisterExercise(domain.ExerciseIdentity{ID: 1, Title: "Sorting", RepositoryURI: "https://host/scm/c/sort.git"})
	registry.RegisterExercise(domain.ExerciseIdentity{ID: 2, Title: "Graphs", RepositoryURI: "https://host/scm/c/graphs.git"})
	registry.RegisterExercise(domain.ExerciseIdentity{ID: 1, Title: "Sorting v2", RepositoryURI: "https://host/scm/c/sort.git"})

	all := registry.All()
	require.Len(t, all, 2)
	assert.Equal(t, "Sorting v2", all[0].Title)
	assert.Equal(t, domain.ExerciseID(2), all[1].ID)
}

func TestRegistryRegisterFromCourseDataSkipsExercisesWithoutRepository(t *testing.T) {
	registry := NewRegistry()
	course := domain.Course{
		ID:    10,
		Title: "Algorithms",
		Exercises: []domain.CourseExercise{
			{ID: 1, Title: "Sorting", Participations: []domain.Participation{{ID: 100, RepositoryURI: "https://host/scm/c/sort.git"}}},
			{ID: 2, Title: "Quiz"},
			{ID: 3, Title: "Essay", Participations: []domain.Participation{{ID: 101}}},
			{ID: 4, Title: "Graphs", Participations: []domain.Participation{{ID: 102, RepositoryURI: "git@host:c/graphs.git"}, {ID: 103}}},
		},
	}

	assert.Equal(t, 2, registry.RegisterFromCourseData(course))

	_, ok := registry.FindByID(2)
	assert.False(t, ok)
	identity, ok := registry.FindByID(4)
	require.True(t, ok)
	assert.Equal(t, "git@host:c/graphs.git", identity.RepositoryURI)
}

func TestRegistryFindByRepositoryURLNormalizesBothSides(t *testing.T) {
	registry := NewRegistry()
	registry.RegisterExercise(domain.ExerciseIdentity{ID: 7, Title: "Sorting", RepositoryURI: "https://student@Host/scm/c/sort.git"})

	identity, ok := registry.FindByRepositoryURL("git@host:scm/c/sort")
	require.True(t, ok)
	assert.Equal(t, domain.ExerciseID(7), identity.ID)

	_, ok = registry.FindByRepositoryURL("https://host/scm/c/other.git")
	assert.False(t, ok)

	_, ok = registry.FindByRepositoryURL("")
	assert.False(t, ok)
}

func TestRegistryFindByRepositoryURLReturnsFirstMatch(t *testing.T) {
	registry := NewRegistry()
	registry.RegisterExercise(domain.ExerciseIdentity{ID: 1, RepositoryURI: "https://host/org/repo"})
	registry.RegisterExercise(domain.ExerciseIdentity{ID: 2, RepositoryURI: "https://host/org/repo.git"})

	identity, ok := registry.FindByRepositoryURL("https://host/org/repo/")
	require.True(t, ok)
	assert.Equal(t, domain.ExerciseID(1), identity.ID)
}

func TestRegistryClear(t *testing.T) {
	registry := NewRegistry()
	registry.RegisterExercise(domain.ExerciseIdentity{ID: 1, RepositoryURI: "https://host/org/repo"})

	registry.Clear()

	assert.Empty(t, registry.All())
	_, ok := registry.FindByRepositoryURL("https://host/org/repo")
	assert.False(t, ok)
}
