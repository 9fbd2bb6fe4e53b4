package openapi

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Loader fetches raw OpenAPI documents from a Source. File sources read from
// disk directly; fs sources require a filesystem supplied at construction.
type Loader struct {
	fs fs.FS
}

// LoaderOption customises Loader construction.
type LoaderOption func(*Loader)

// WithFileSystem supplies the fs.FS consulted for SourceFromFS sources.
func WithFileSystem(fsys fs.FS) LoaderOption {
	return func(l *Loader) {
		l.fs = fsys
	}
}

// NewLoader constructs a Loader from the supplied options.
func NewLoader(opts ...LoaderOption) *Loader {
	loader := &Loader{}
	for _, opt := range opts {
		if opt != nil {
			opt(loader)
		}
	}
	return loader
}

// Load fetches the raw document bytes for the supplied source.
func (l *Loader) Load(ctx context.Context, src Source) ([]byte, error) {
	if src == nil {
		return nil, errors.New("openapi: source is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch src.Kind() {
	case SourceKindFile:
		data, err := os.ReadFile(src.Location())
		if err != nil {
			return nil, fmt.Errorf("openapi: read %s: %w", src.Location(), err)
		}
		return data, nil
	case SourceKindFS:
		if l.fs == nil {
			return nil, errors.New("openapi: fs source requires WithFileSystem")
		}
		data, err := fs.ReadFile(l.fs, src.Location())
		if err != nil {
			return nil, fmt.Errorf("openapi: read %s: %w", src.Location(), err)
		}
		return data, nil
	case SourceKindBytes:
		bs, ok := src.(bytesSource)
		if !ok {
			return nil, errors.New("openapi: malformed bytes source")
		}
		if len(bs.data) == 0 {
			return nil, fmt.Errorf("openapi: empty document %q", bs.label)
		}
		return append([]byte(nil), bs.data...), nil
	default:
		return nil, fmt.Errorf("openapi: unsupported source kind %q", src.Kind())
	}
}
