package application

import (
	"context"
	"slices"
	"sync"

	"github.com/bnema/artemis-companion-cli/internal/ports"
)

// BridgeDocuments reports the dirty documents last pushed by the UI bridge,
// falling back to another source until the first push.
type BridgeDocuments struct {
	fallback ports.DocumentSource
	autoSave bool

	mu     sync.Mutex
	paths  []string
	pushed bool
}

func NewBridgeDocuments(fallback ports.DocumentSource, autoSave bool) *BridgeDocuments {
	return &BridgeDocuments{fallback: fallback, autoSave: autoSave}
}

func (d *BridgeDocuments) Set(paths []string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.paths = slices.Clone(paths)
	d.pushed = true
}

func (d *BridgeDocuments) DirtyDocuments(ctx context.Context, root string) ([]string, error) {
	d.mu.Lock()
	pushed, paths := d.pushed, slices.Clone(d.paths)
	d.mu.Unlock()

	if pushed || d.fallback == nil {
		return paths, nil
	}
	return d.fallback.DirtyDocuments(ctx, root)
}

func (d *BridgeDocuments) AutoSaveEnabled() bool {
	return d.autoSave
}
