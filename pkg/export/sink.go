package export

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// Sink is a write-only archive destination. Paths are forward-slash
// separated and relative to the sink root. Implementations must be safe
// for concurrent use.
type Sink interface {
	// Put opens the named file for writing, truncating any existing
	// content. The caller must close the returned WriteCloser to flush
	// the data.
	Put(ctx context.Context, path string) (io.WriteCloser, error)
}

// LocalSink archives transcripts under a local directory.
type LocalSink struct {
	root string
}

// NewLocalSink creates a LocalSink rooted at dir, creating the
// directory (with parents) if needed.
func NewLocalSink(dir string) (*LocalSink, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, err
	}
	return &LocalSink{root: abs}, nil
}

// Put opens the named file for writing, creating parent directories as
// needed.
func (l *LocalSink) Put(_ context.Context, path string) (io.WriteCloser, error) {
	full := filepath.Join(l.root, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return nil, err
	}
	return os.Create(full)
}
