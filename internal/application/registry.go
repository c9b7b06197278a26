package application

import (
	"strings"
	"sync"

	"github.com/bnema/artemis-companion-cli/internal/domain"
)

// Registry indexes exercise identities by id and resolves them from
// repository remotes.
type Registry struct {
	mu    sync.RWMutex
	order []domain.ExerciseID
	byID  map[domain.ExerciseID]domain.ExerciseIdentity
}

func NewRegistry() *Registry {
	return &Registry{byID: map[domain.ExerciseID]domain.ExerciseIdentity{}}
}

// RegisterExercise upserts identity by id. Registration order is kept.
func (r *Registry) RegisterExercise(identity domain.ExerciseIdentity) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.registerLocked(identity)
}

func (r *Registry) registerLocked(identity domain.ExerciseIdentity) {
	if _, ok := r.byID[identity.ID]; !ok {
		r.order = append(r.order, identity.ID)
	}
	r.byID[identity.ID] = identity
}

// RegisterFromCourseData registers every exercise whose first participation
// has a repository. It returns how many were registered.
func (r *Registry) RegisterFromCourseData(course domain.Course) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	registered := 0
	for _, exercise := range course.Exercises {
		uri := strings.TrimSpace(exercise.FirstRepositoryURI())
		if uri == "" {
			continue
		}
		r.registerLocked(domain.ExerciseIdentity{
			ID:            exercise.ID,
			Title:         exercise.Title,
			RepositoryURI: uri,
			ShortName:     exercise.ShortName,
		})
		registered++
	}

	return registered
}

func (r *Registry) FindByRepositoryURL(rawURL string) (domain.ExerciseIdentity, bool) {
	want := domain.NormalizeRepositoryURL(rawURL)
	if want == "" {
		return domain.ExerciseIdentity{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		identity := r.byID[id]
		if domain.NormalizeRepositoryURL(identity.RepositoryURI) == want {
			return identity, true
		}
	}

	return domain.ExerciseIdentity{}, false
}

func (r *Registry) FindByID(id domain.ExerciseID) (domain.ExerciseIdentity, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	identity, ok := r.byID[id]
	return identity, ok
}

// All returns identities in registration order.
func (r *Registry) All() []domain.ExerciseIdentity {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.ExerciseIdentity, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.order = nil
	r.byID = map[domain.ExerciseID]domain.ExerciseIdentity{}
}
