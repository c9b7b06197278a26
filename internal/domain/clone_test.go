package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClonedReposEvictsOldestFirst(t *testing.T) {
	repos := NewClonedRepos()
	for id := ExerciseID(1); id <= MaxClonedRepos+2; id++ {
		repos.Record(ClonedRepo{ExerciseID: id, Path: "/tmp/repo", Title: "ex"})
	}

	assert.Equal(t, MaxClonedRepos, repos.Len())
	_, ok := repos.Get(1)
	assert.False(t, ok)
	_, ok = repos.Get(2)
	assert.False(t, ok)

	last, ok := repos.Get(MaxClonedRepos + 2)
	require.True(t, ok)
	assert.Equal(t, "/tmp/repo", last.Path)
}

func TestClonedReposRecordExistingKeepsPosition(t *testing.T) {
	repos := NewClonedRepos()
	repos.Record(ClonedRepo{ExerciseID: 1, Path: "/a"})
	repos.Record(ClonedRepo{ExerciseID: 1, Path: "/b"})

	assert.Equal(t, 1, repos.Len())
	got, _ := repos.Get(1)
	assert.Equal(t, "/b", got.Path)
}

func TestCloneNoticeRelevance(t *testing.T) {
	at := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	notice := CloneNotice{ExerciseID: 5, Timestamp: at, Title: "Sorting"}

	assert.True(t, notice.IsRelevant(at.Add(9*time.Minute)))
	assert.True(t, notice.IsRelevant(at.Add(10*time.Minute)))
	assert.False(t, notice.IsRelevant(at.Add(11*time.Minute)))
}
