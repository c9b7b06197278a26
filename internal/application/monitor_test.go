package application

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/artemis-companion-cli/internal/domain"
	"github.com/bnema/artemis-companion-cli/internal/ports"
	"github.com/bnema/artemis-companion-cli/internal/ports/mocks"
)

const testRemote = "https://student@host/scm/algo/algo-sort-student.git"

type recordingTagger struct {
	marked []domain.ExerciseIdentity
}

func (r *recordingTagger) MarkWorkspace(_ context.Context, identity domain.ExerciseIdentity) error {
	r.marked = append(r.marked, identity)
	return nil
}

type staticDocuments struct {
	paths    []string
	autoSave bool
}

func (s staticDocuments) DirtyDocuments(context.Context, string) ([]string, error) {
	return s.paths, nil
}

func (s staticDocuments) AutoSaveEnabled() bool { return s.autoSave }

func newTestMonitor(t *testing.T, git ports.Git, opts MonitorOptions) (*WorkspaceMonitor, *Registry, *recordingTagger) {
	t.Helper()

	registry := NewRegistry()
	registry.RegisterExercise(domain.ExerciseIdentity{ID: 42, Title: "Sorting", RepositoryURI: "git@host:scm/algo/algo-sort-student.git"})
	tagger := &recordingTagger{}
	if opts.Root == "" {
		opts.Root = "/work/sort"
	}
	return NewWorkspaceMonitor(git, registry, tagger, opts), registry, tagger
}

func TestMonitorDetectWorkspaceExerciseTagsMatch(t *testing.T) {
	git := mocks.NewMockGit(t)
	git.EXPECT().RemoteURL(mockAnyContext(), "/work/sort").Return(testRemote, nil)
	monitor, _, tagger := newTestMonitor(t, git, MonitorOptions{})

	identity, found, err := monitor.DetectWorkspaceExercise(context.Background())
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, domain.ExerciseID(42), identity.ID)
	require.Len(t, tagger.marked, 1)
	assert.Equal(t, domain.ExerciseID(42), tagger.marked[0].ID)
}

func TestMonitorDetectWorkspaceExerciseNoMatchIsNoop(t *testing.T) {
	git := mocks.NewMockGit(t)
	git.EXPECT().RemoteURL(mockAnyContext(), "/work/sort").Return("https://host/scm/other.git", nil)
	monitor, _, tagger := newTestMonitor(t, git, MonitorOptions{})

	_, found, err := monitor.DetectWorkspaceExercise(context.Background())
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, tagger.marked)
}

func TestMonitorDetectWorkspaceExerciseGitFailureIsNoop(t *testing.T) {
	git := mocks.NewMockGit(t)
	git.EXPECT().RemoteURL(mockAnyContext(), "/work/sort").Return("", &domain.GitError{Op: "remote", Kind: domain.GitNoRemote, Err: errors.New("exit status 2")})
	monitor, _, _ := newTestMonitor(t, git, MonitorOptions{})

	_, found, err := monitor.DetectWorkspaceExercise(context.Background())
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMonitorCheckRepositoryStatus(t *testing.T) {
	tests := []struct {
		name      string
		remote    string
		remoteErr error
		porcelain string
		want      domain.RepositoryStatus
	}{
		{name: "connected and dirty", remote: testRemote, porcelain: " M Sort.java\n", want: domain.RepositoryStatus{IsConnected: true, HasChanges: true}},
		{name: "connected and clean", remote: testRemote, porcelain: "", want: domain.RepositoryStatus{IsConnected: true}},
		{name: "different repository", remote: "https://host/scm/other.git", want: domain.RepositoryStatus{}},
		{name: "not a repository", remoteErr: &domain.GitError{Op: "remote", Kind: domain.GitNotRepository, Err: errors.New("exit status 128")}, want: domain.RepositoryStatus{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			git := mocks.NewMockGit(t)
			git.EXPECT().RemoteURL(mockAnyContext(), "/work/sort").Return(tt.remote, tt.remoteErr)
			if tt.remoteErr == nil && domain.SameRepository(tt.remote, testRemote) {
				git.EXPECT().StatusPorcelain(mockAnyContext(), "/work/sort").Return(tt.porcelain, nil)
			}
			monitor, _, _ := newTestMonitor(t, git, MonitorOptions{})

			got := monitor.CheckRepositoryStatus(context.Background(), "git@host:scm/algo/algo-sort-student.git", 42)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMonitorFileEventsAreDebouncedIntoOneRecheck(t *testing.T) {
	scheduler := &fakeScheduler{}
	git := mocks.NewMockGit(t)
	git.EXPECT().RemoteURL(mockAnyContext(), "/work/sort").Return(testRemote, nil).Once()
	git.EXPECT().StatusPorcelain(mockAnyContext(), "/work/sort").Return("?? New.java\n", nil).Once()

	var statuses []domain.RepositoryStatus
	monitor, _, _ := newTestMonitor(t, git, MonitorOptions{
		Scheduler: scheduler,
		OnStatus:  func(s domain.RepositoryStatus) { statuses = append(statuses, s) },
	})
	monitor.Expect(testRemote, 42)

	ctx := context.Background()
	for i := range 8 {
		kind := []ports.FileEventKind{ports.FileSaved, ports.FileCreated, ports.FileDeleted, ports.FileRenamed}[i%4]
		assert.True(t, monitor.HandleFileEvent(ctx, ports.FileEvent{Kind: kind, Path: filepath.Join("/work/sort/src", "Sort.java")}))
		scheduler.Advance(100 * time.Millisecond)
	}
	scheduler.Advance(StatusRecheckDelay)

	require.Len(t, statuses, 1)
	assert.Equal(t, domain.RepositoryStatus{IsConnected: true, HasChanges: true}, statuses[0])
}

func TestMonitorIgnoresEventsOutsideRootAndInGitDir(t *testing.T) {
	scheduler := &fakeScheduler{}
	git := mocks.NewMockGit(t)
	monitor, _, _ := newTestMonitor(t, git, MonitorOptions{Scheduler: scheduler})
	monitor.Expect(testRemote, 42)

	ctx := context.Background()
	assert.False(t, monitor.HandleFileEvent(ctx, ports.FileEvent{Kind: ports.FileSaved, Path: "/work/other/Sort.java"}))
	assert.False(t, monitor.HandleFileEvent(ctx, ports.FileEvent{Kind: ports.FileSaved, Path: "/work/sort/.git/index"}))
	assert.False(t, monitor.HandleFileEvent(ctx, ports.FileEvent{Kind: ports.FileSaved, Path: "/work/sort"}))
	assert.False(t, monitor.HandleFileEvent(ctx, ports.FileEvent{Kind: ports.FileSaved, Path: "/work/sorting/Sort.java"}))
	assert.True(t, monitor.HandleFileEvent(ctx, ports.FileEvent{Kind: ports.FileSaved, Path: "/work/sort/.gitignore"}))

	monitor.Stop()
	scheduler.Advance(time.Second)
}

func TestMonitorDirtyDocumentsCheck(t *testing.T) {
	scheduler := &fakeScheduler{}
	documents := staticDocuments{paths: []string{"/work/sort/Sort.java", "/work/sort/Test.java", "/tmp/notes.txt"}}

	var got []domain.DirtyPagesStatus
	monitor, _, _ := newTestMonitor(t, mocks.NewMockGit(t), MonitorOptions{
		Scheduler: scheduler,
		Documents: documents,
		OnDirty:   func(s domain.DirtyPagesStatus) { got = append(got, s) },
	})

	ctx := context.Background()
	monitor.HandleDocumentChange(ctx)
	monitor.HandleDocumentChange(ctx)
	scheduler.Advance(DirtyCheckDelay)

	require.Len(t, got, 1)
	assert.Equal(t, domain.DirtyPagesStatus{HasDirtyPages: true, DirtyFileCount: 2}, got[0])
	assert.True(t, got[0].ShouldWarn())

	monitor.SetAutoSave(true)
	status, err := monitor.CheckDirtyDocuments(ctx)
	require.NoError(t, err)
	assert.True(t, status.AutoSaveEnabled)
	assert.False(t, status.ShouldWarn())
}

func TestMonitorRunRoutesSwapFilesToDirtyCheck(t *testing.T) {
	scheduler := &fakeScheduler{}
	git := mocks.NewMockGit(t)
	git.EXPECT().RemoteURL(mockAnyContext(), "/work/sort").Return(testRemote, nil).Once()
	git.EXPECT().StatusPorcelain(mockAnyContext(), "/work/sort").Return("", nil).Once()

	statuses := make(chan domain.RepositoryStatus, 1)
	dirty := make(chan domain.DirtyPagesStatus, 1)
	monitor, _, _ := newTestMonitor(t, git, MonitorOptions{
		Scheduler:     scheduler,
		Documents:     staticDocuments{paths: []string{"/work/sort/Sort.java"}},
		DocumentEvent: func(path string) bool { return filepath.Ext(path) == ".swp" },
		OnStatus:      func(s domain.RepositoryStatus) { statuses <- s },
		OnDirty:       func(s domain.DirtyPagesStatus) { dirty <- s },
	})
	monitor.Expect(testRemote, 42)

	events := make(chan ports.FileEvent, 2)
	events <- ports.FileEvent{Kind: ports.FileCreated, Path: "/work/sort/.Sort.java.swp"}
	events <- ports.FileEvent{Kind: ports.FileSaved, Path: "/work/sort/Sort.java"}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		monitor.Run(ctx, events)
	}()

	require.Eventually(t, func() bool { return scheduler.Pending() == 2 }, time.Second, time.Millisecond)
	scheduler.Advance(StatusRecheckDelay)

	assert.Equal(t, domain.RepositoryStatus{IsConnected: true}, <-statuses)
	assert.Equal(t, domain.DirtyPagesStatus{HasDirtyPages: true, DirtyFileCount: 1}, <-dirty)

	cancel()
	<-done
}
