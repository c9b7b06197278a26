package application

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/bnema/artemis-companion-cli/internal/domain"
	"github.com/bnema/artemis-companion-cli/internal/ports"
)

const (
	StatusRecheckDelay = 500 * time.Millisecond
	DirtyCheckDelay    = 300 * time.Millisecond
)

// WorkspaceTagger receives the exercise detected for the open workspace.
type WorkspaceTagger interface {
	MarkWorkspace(ctx context.Context, identity domain.ExerciseIdentity) error
}

type MonitorOptions struct {
	Root      string
	Scheduler ports.Scheduler
	Documents ports.DocumentSource
	Logger    *zap.Logger

	// DocumentEvent reports watcher paths that signal an editor buffer
	// change rather than a file change, such as swap files.
	DocumentEvent func(path string) bool

	OnStatus func(domain.RepositoryStatus)
	OnDirty  func(domain.DirtyPagesStatus)
}

// WorkspaceMonitor ties the open workspace folder to a registered exercise
// and keeps its repository status current.
type WorkspaceMonitor struct {
	git       ports.Git
	registry  *Registry
	tagger    WorkspaceTagger
	documents ports.DocumentSource
	logger    *zap.Logger
	root      string

	statusDebounce *Debouncer
	dirtyDebounce  *Debouncer
	onStatus       func(domain.RepositoryStatus)
	onDirty        func(domain.DirtyPagesStatus)
	documentEvent  func(string) bool

	mu          sync.Mutex
	expectedURL string
	expectedID  domain.ExerciseID
	autoSave    *bool
}

func NewWorkspaceMonitor(git ports.Git, registry *Registry, tagger WorkspaceTagger, opts MonitorOptions) *WorkspaceMonitor {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	root := opts.Root
	if root != "" {
		root = filepath.Clean(root)
	}

	return &WorkspaceMonitor{
		git:            git,
		registry:       registry,
		tagger:         tagger,
		documents:      opts.Documents,
		logger:         logger.Named("monitor"),
		root:           root,
		statusDebounce: NewDebouncer(opts.Scheduler, StatusRecheckDelay),
		dirtyDebounce:  NewDebouncer(opts.Scheduler, DirtyCheckDelay),
		onStatus:       opts.OnStatus,
		onDirty:        opts.OnDirty,
		documentEvent:  opts.DocumentEvent,
	}
}

func (m *WorkspaceMonitor) Root() string {
	return m.root
}

// DetectWorkspaceExercise resolves the workspace origin remote against the
// registry and tags the match. No workspace or no match is not an error.
func (m *WorkspaceMonitor) DetectWorkspaceExercise(ctx context.Context) (domain.ExerciseIdentity, bool, error) {
	if m.root == "" {
		return domain.ExerciseIdentity{}, false, nil
	}

	remote, err := m.git.RemoteURL(ctx, m.root)
	if err != nil {
		m.logger.Debug("workspace has no usable origin remote", zap.String("root", m.root), zap.Error(err))
		return domain.ExerciseIdentity{}, false, nil
	}

	identity, ok := m.registry.FindByRepositoryURL(remote)
	if !ok {
		m.logger.Debug("workspace remote matches no registered exercise", zap.String("remote", domain.RedactURL(remote)))
		return domain.ExerciseIdentity{}, false, nil
	}

	if m.tagger != nil {
		if err := m.tagger.MarkWorkspace(ctx, identity); err != nil {
			return identity, true, fmt.Errorf("mark workspace exercise: %w", err)
		}
	}

	m.Expect(identity.RepositoryURI, identity.ID)
	return identity, true, nil
}

// Expect sets the repository later debounced rechecks compare against.
func (m *WorkspaceMonitor) Expect(repositoryURL string, exerciseID domain.ExerciseID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.expectedURL = repositoryURL
	m.expectedID = exerciseID
}

// CheckRepositoryStatus compares the workspace origin with expectedURL. Git
// failures mean disconnected.
func (m *WorkspaceMonitor) CheckRepositoryStatus(ctx context.Context, expectedURL string, exerciseID domain.ExerciseID) domain.RepositoryStatus {
	m.Expect(expectedURL, exerciseID)

	if m.root == "" {
		return domain.RepositoryStatus{}
	}

	remote, err := m.git.RemoteURL(ctx, m.root)
	if err != nil {
		m.logger.Debug("read origin remote", zap.Error(err))
		return domain.RepositoryStatus{}
	}
	if !domain.SameRepository(remote, expectedURL) {
		return domain.RepositoryStatus{}
	}

	porcelain, err := m.git.StatusPorcelain(ctx, m.root)
	if err != nil {
		m.logger.Debug("read porcelain status", zap.Error(err))
		return domain.RepositoryStatus{}
	}

	return domain.RepositoryStatus{
		IsConnected: true,
		HasChanges:  strings.TrimSpace(porcelain) != "",
	}
}

// HandleFileEvent schedules a debounced status recheck for qualifying events.
func (m *WorkspaceMonitor) HandleFileEvent(ctx context.Context, event ports.FileEvent) bool {
	if !m.qualifies(event.Path) {
		return false
	}

	m.statusDebounce.Trigger(func() {
		m.mu.Lock()
		expectedURL, expectedID := m.expectedURL, m.expectedID
		m.mu.Unlock()

		if expectedURL == "" {
			return
		}

		status := m.CheckRepositoryStatus(ctx, expectedURL, expectedID)
		if m.onStatus != nil {
			m.onStatus(status)
		}
	})
	return true
}

func (m *WorkspaceMonitor) qualifies(path string) bool {
	if m.root == "" || path == "" {
		return false
	}

	rel, err := filepath.Rel(m.root, filepath.Clean(path))
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}

	first := strings.SplitN(filepath.ToSlash(rel), "/", 2)[0]
	return first != ".git"
}

// SetAutoSave overrides the document source's auto-save setting.
func (m *WorkspaceMonitor) SetAutoSave(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.autoSave = &enabled
}

// HandleDocumentChange schedules the debounced unsaved-documents check.
func (m *WorkspaceMonitor) HandleDocumentChange(ctx context.Context) {
	m.dirtyDebounce.Trigger(func() {
		status, err := m.CheckDirtyDocuments(ctx)
		if err != nil {
			m.logger.Warn("check dirty documents", zap.Error(err))
			return
		}
		if m.onDirty != nil {
			m.onDirty(status)
		}
	})
}

func (m *WorkspaceMonitor) CheckDirtyDocuments(ctx context.Context) (domain.DirtyPagesStatus, error) {
	status := domain.DirtyPagesStatus{}
	if m.documents == nil || m.root == "" {
		return status, nil
	}

	dirty, err := m.documents.DirtyDocuments(ctx, m.root)
	if err != nil {
		return status, fmt.Errorf("list dirty documents: %w", err)
	}

	inside := 0
	for _, path := range dirty {
		if m.qualifies(path) {
			inside++
		}
	}

	m.mu.Lock()
	autoSave := m.documents.AutoSaveEnabled()
	if m.autoSave != nil {
		autoSave = *m.autoSave
	}
	m.mu.Unlock()

	status.HasDirtyPages = inside > 0
	status.DirtyFileCount = inside
	status.AutoSaveEnabled = autoSave
	return status, nil
}

// Run feeds watcher events into the monitor until ctx is done.
func (m *WorkspaceMonitor) Run(ctx context.Context, events <-chan ports.FileEvent) {
	defer m.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if m.documentEvent != nil && m.documentEvent(event.Path) {
				if m.qualifies(event.Path) {
					m.HandleDocumentChange(ctx)
				}
				continue
			}
			m.HandleFileEvent(ctx, event)
		}
	}
}

func (m *WorkspaceMonitor) Stop() {
	m.statusDebounce.Stop()
	m.dirtyDebounce.Stop()
}
