package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/artemis-companion-cli/internal/ports"
)

func waitFor(t *testing.T, events <-chan ports.FileEvent, match func(ports.FileEvent) bool) ports.FileEvent {
	t.Helper()

	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			require.True(t, ok, "event channel closed early")
			if match(ev) {
				return ev
			}
		case <-timeout:
			t.Fatal("expected file event did not arrive")
		}
	}
}

func TestWatchReportsFileWritesInNestedDirectories(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src", "main"), 0o755))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := NewWatcher(nil).Watch(ctx, root)
	require.NoError(t, err)

	target := filepath.Join(root, "src", "main", "Sort.java")
	require.NoError(t, os.WriteFile(target, []byte("class Sort {}"), 0o644))

	ev := waitFor(t, events, func(ev ports.FileEvent) bool { return ev.Path == target })
	assert.Contains(t, []ports.FileEventKind{ports.FileCreated, ports.FileSaved}, ev.Kind)
}

func TestWatchPicksUpNewDirectories(t *testing.T) {
	t.Parallel()

	root := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := NewWatcher(nil).Watch(ctx, root)
	require.NoError(t, err)

	dir := filepath.Join(root, "test")
	require.NoError(t, os.Mkdir(dir, 0o755))
	waitFor(t, events, func(ev ports.FileEvent) bool { return ev.Path == dir })

	target := filepath.Join(dir, "SortTest.java")
	require.Eventually(t, func() bool {
		if err := os.WriteFile(target, []byte("class SortTest {}"), 0o644); err != nil {
			return false
		}
		select {
		case ev := <-events:
			return ev.Path == target
		case <-time.After(200 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)
}

func TestWatchClosesChannelOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	events, err := NewWatcher(nil).Watch(ctx, t.TempDir())
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-events:
		for ok {
			_, ok = <-events
		}
	case <-time.After(5 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestWatchMissingRootFails(t *testing.T) {
	t.Parallel()

	_, err := NewWatcher(nil).Watch(context.Background(), filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestTranslate(t *testing.T) {
	t.Parallel()

	cases := map[fsnotify.Op]ports.FileEventKind{
		fsnotify.Create: ports.FileCreated,
		fsnotify.Write:  ports.FileSaved,
		fsnotify.Remove: ports.FileDeleted,
		fsnotify.Rename: ports.FileRenamed,
	}
	for op, want := range cases {
		got, ok := translate(op)
		assert.True(t, ok, op.String())
		assert.Equal(t, want, got, op.String())
	}

	_, ok := translate(fsnotify.Chmod)
	assert.False(t, ok)
}

func TestSkipDir(t *testing.T) {
	t.Parallel()

	assert.True(t, skipDir("/work/sort/.git"))
	assert.True(t, skipDir("/work/sort/web/node_modules"))
	assert.False(t, skipDir("/work/sort/src"))
}
