package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bnema/artemis-companion-cli/internal/ports"
)

// SwapFiles infers unsaved editor buffers from the swap and lock files that
// vim and emacs keep next to a file while it has pending edits. Vim also keeps
// a swap file for clean open buffers, so its header is read for the modified
// flag.
type SwapFiles struct {
	autoSave bool
}

var _ ports.DocumentSource = (*SwapFiles)(nil)

func NewSwapFiles(autoSave bool) *SwapFiles {
	return &SwapFiles{autoSave: autoSave}
}

func (s *SwapFiles) AutoSaveEnabled() bool {
	return s.autoSave
}

// DirtyDocuments returns the files under root that have a swap or lock file,
// sorted and without duplicates.
func (s *SwapFiles) DirtyDocuments(ctx context.Context, root string) ([]string, error) {
	seen := map[string]struct{}{}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path != root {
				return nil
			}
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && (d.Name() == ".git" || d.Name() == "node_modules") {
				return filepath.SkipDir
			}
			return nil
		}

		original, ok := OriginalOf(path)
		if !ok {
			return nil
		}
		if isVimSwap(d.Name()) && !vimSwapModified(path) {
			return nil
		}
		seen[original] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s for swap files: %w", root, err)
	}

	dirty := make([]string, 0, len(seen))
	for path := range seen {
		dirty = append(dirty, path)
	}
	sort.Strings(dirty)
	return dirty, nil
}

// IsSwapFile reports whether path names an editor swap or lock file.
func IsSwapFile(path string) bool {
	_, ok := OriginalOf(path)
	return ok
}

// OriginalOf maps a swap or lock file to the file it guards.
func OriginalOf(path string) (string, bool) {
	dir, name := filepath.Split(path)

	switch {
	case strings.HasPrefix(name, ".#") && len(name) > 2:
		return filepath.Join(dir, name[2:]), true
	case strings.HasPrefix(name, "#") && strings.HasSuffix(name, "#") && len(name) > 2:
		return filepath.Join(dir, name[1:len(name)-1]), true
	case isVimSwap(name):
		return filepath.Join(dir, strings.TrimPrefix(name[:len(name)-4], ".")), true
	}
	return "", false
}

// isVimSwap matches ".name.swp" through ".name.swa".
func isVimSwap(name string) bool {
	if !strings.HasPrefix(name, ".") || len(name) < len(".x.swp") {
		return false
	}
	ext := name[len(name)-4:]
	if ext[:3] != ".sw" {
		return false
	}
	return ext[3] >= 'a' && ext[3] <= 'p'
}

const (
	vimHeaderSize   = 1024
	vimDirtyOffset  = 1007
	vimDirtyMarker  = 0x55
	vimHeaderMagic0 = 'b'
	vimHeaderMagic1 = '0'
)

// vimSwapModified reads block 0 of a vim swap file. A header that cannot be
// read or is not vim's is counted as modified.
func vimSwapModified(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return true
	}
	defer f.Close()

	header := make([]byte, vimHeaderSize)
	if _, err := io.ReadFull(f, header); err != nil {
		return true
	}
	if header[0] != vimHeaderMagic0 || header[1] != vimHeaderMagic1 {
		return true
	}
	return header[vimDirtyOffset] == vimDirtyMarker
}
