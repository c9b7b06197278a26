package ports

import "context"

// DocumentSource reports files with unsaved edits inside root.
type DocumentSource interface {
	DirtyDocuments(ctx context.Context, root string) ([]string, error)
	AutoSaveEnabled() bool
}

// FileEventKind mirrors the editor events that trigger a status recheck.
type FileEventKind string

const (
	FileSaved   FileEventKind = "save"
	FileCreated FileEventKind = "create"
	FileDeleted FileEventKind = "delete"
	FileRenamed FileEventKind = "rename"
)

type FileEvent struct {
	Kind FileEventKind
	Path string
}

type FileWatcher interface {
	Watch(ctx context.Context, root string) (<-chan FileEvent, error)
}
