package driver

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"quill/internal/source"
	"quill/internal/trace"
)

// startRun opens the ScopeDriver span of one CLI-level operation and tags
// it with a fresh run id.
func startRun(ctx context.Context, name, target string) (context.Context, *trace.Span) {
	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopeDriver, name, trace.CurrentSpan(ctx)).
		WithExtra("run", uuid.NewString()).
		WithExtra("target", target)
	return trace.WithSpan(ctx, span), span
}

// loadFile reads path into fs, turning invalid UTF-8 into a decode error.
func loadFile(fs *source.FileSet, path string) (*source.File, error) {
	id, err := fs.Load(path)
	if err != nil {
		if errors.Is(err, source.ErrInvalidUTF8) {
			return nil, fmt.Errorf("decode: %w", err)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return fs.Get(id), nil
}
