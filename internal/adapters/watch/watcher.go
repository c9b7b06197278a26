package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/bnema/artemis-companion-cli/internal/ports"
)

const eventBuffer = 64

// Watcher reports file events for a whole directory tree. Directories
// created after Watch starts are added as they appear. The .git directory
// is never watched.
type Watcher struct {
	logger *zap.Logger
}

var _ ports.FileWatcher = (*Watcher)(nil)

func NewWatcher(logger *zap.Logger) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{logger: logger}
}

// Watch starts watching root. The returned channel is closed when ctx ends.
func (w *Watcher) Watch(ctx context.Context, root string) (<-chan ports.FileEvent, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	if err := addTree(fsw, root); err != nil {
		return nil, errors.Join(fmt.Errorf("watch %s: %w", root, err), fsw.Close())
	}

	events := make(chan ports.FileEvent, eventBuffer)
	go w.loop(ctx, fsw, events)
	return events, nil
}

func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher, out chan<- ports.FileEvent) {
	defer close(out)
	defer func() {
		if err := fsw.Close(); err != nil {
			w.logger.Warn("close file watcher", zap.Error(err))
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watcher error", zap.Error(err))
		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}

			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() && !skipDir(ev.Name) {
					if err := addTree(fsw, ev.Name); err != nil {
						w.logger.Warn("watch new directory", zap.String("path", ev.Name), zap.Error(err))
					}
				}
			}

			kind, ok := translate(ev.Op)
			if !ok {
				continue
			}

			select {
			case out <- ports.FileEvent{Kind: kind, Path: ev.Name}:
			case <-ctx.Done():
				return
			}
		}
	}
}

func translate(op fsnotify.Op) (ports.FileEventKind, bool) {
	switch {
	case op.Has(fsnotify.Create):
		return ports.FileCreated, true
	case op.Has(fsnotify.Remove):
		return ports.FileDeleted, true
	case op.Has(fsnotify.Rename):
		return ports.FileRenamed, true
	case op.Has(fsnotify.Write):
		return ports.FileSaved, true
	default:
		return "", false
	}
}

func addTree(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path != root && errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skipDir(path) {
			return filepath.SkipDir
		}
		return fsw.Add(path)
	})
}

func skipDir(path string) bool {
	switch filepath.Base(path) {
	case ".git", "node_modules":
		return true
	}
	return false
}
