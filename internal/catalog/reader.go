// Package catalog exposes the externally maintained category catalog.
//
// The catalog is a JSON document owned outside this service. It is read in
// full on every access, deliberately uncached, so edits to the file are
// visible to callers without a restart. The content is passed through
// verbatim: no parsing, no validation.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

type Reader struct {
	path string
}

func NewReader(path string) *Reader {
	return &Reader{path: path}
}

// Read returns the current catalog document. Each call performs a fresh read
// of the underlying file.
func (r *Reader) Read(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read category catalog %s: %w", r.path, err)
	}

	slog.DebugContext(ctx, "Category catalog read", "path", r.path, "bytes", len(data))
	return data, nil
}

// Path returns the configured catalog location.
func (r *Reader) Path() string {
	return r.path
}
