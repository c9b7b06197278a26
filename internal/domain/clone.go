package domain

import "time"

const (
	MaxClonedRepos       = 10
	CloneNoticeRelevance = 10 * time.Minute
)

type ClonedRepo struct {
	ExerciseID ExerciseID
	Path       string
	Title      string
}

// ClonedRepos is a bounded cache of recent clones, evicted oldest first.
type ClonedRepos struct {
	order   []ExerciseID
	entries map[ExerciseID]ClonedRepo
}

func NewClonedRepos() *ClonedRepos {
	return &ClonedRepos{entries: map[ExerciseID]ClonedRepo{}}
}

func (c *ClonedRepos) Record(repo ClonedRepo) {
	if _, ok := c.entries[repo.ExerciseID]; !ok {
		c.order = append(c.order, repo.ExerciseID)
	}
	c.entries[repo.ExerciseID] = repo

	for len(c.order) > MaxClonedRepos {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
}

func (c *ClonedRepos) Get(id ExerciseID) (ClonedRepo, bool) {
	repo, ok := c.entries[id]
	return repo, ok
}

func (c *ClonedRepos) Len() int {
	return len(c.order)
}

// CloneNotice remembers a recent clone so the "open it" shortcut can be offered.
type CloneNotice struct {
	ExerciseID ExerciseID
	Timestamp  time.Time
	Title      string
}

func (n CloneNotice) IsRelevant(now time.Time) bool {
	age := now.Sub(n.Timestamp)
	return age >= 0 && age <= CloneNoticeRelevance
}
