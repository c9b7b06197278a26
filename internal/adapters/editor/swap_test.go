package editor

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOriginalOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
		ok   bool
	}{
		{path: "/work/sort/.Sort.java.swp", want: "/work/sort/Sort.java", ok: true},
		{path: "/work/sort/.Sort.java.swo", want: "/work/sort/Sort.java", ok: true},
		{path: "/work/sort/.#Sort.java", want: "/work/sort/Sort.java", ok: true},
		{path: "/work/sort/#Sort.java#", want: "/work/sort/Sort.java", ok: true},
		{path: "/work/sort/Sort.java", ok: false},
		{path: "/work/sort/.gitignore", ok: false},
		{path: "/work/sort/.Sort.java.swz", ok: false},
		{path: "/work/sort/#", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := OriginalOf(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, IsSwapFile(tt.path))
		})
	}
}

func TestDirtyDocumentsScansTree(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	files := []string{
		"src/Sort.java",
		"src/.Sort.java.swp",
		"src/.#Sort.java",
		"test/#SortTest.java#",
		".git/.COMMIT_EDITMSG.swp",
		"README.md",
	}
	for _, name := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, nil, 0o644))
	}

	source := NewSwapFiles(false)
	dirty, err := source.DirtyDocuments(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "src", "Sort.java"),
		filepath.Join(root, "test", "SortTest.java"),
	}, dirty)
	assert.False(t, source.AutoSaveEnabled())
}

func vimSwapHeader(modified bool) []byte {
	header := make([]byte, 4096)
	copy(header, "b0VIM 9.1")
	if modified {
		header[vimDirtyOffset] = vimDirtyMarker
	}
	return header
}

func TestDirtyDocumentsReadsVimModifiedFlag(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".Clean.java.swp"), vimSwapHeader(false), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".Edited.java.swp"), vimSwapHeader(true), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".Other.java.swo"), []byte("not a vim header"), 0o644))

	dirty, err := NewSwapFiles(false).DirtyDocuments(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "Edited.java"),
		filepath.Join(root, "Other.java"),
	}, dirty)
}

func TestDirtyDocumentsMissingRoot(t *testing.T) {
	t.Parallel()

	_, err := NewSwapFiles(true).DirtyDocuments(context.Background(), filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}
