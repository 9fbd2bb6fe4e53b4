package openapi

import "path/filepath"

// Source identifies where an OpenAPI document originates so loaders can
// operate on files, fs.FS entries, or in-memory payloads uniformly.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile  SourceKind = "file"
	SourceKindFS    SourceKind = "fs"
	SourceKindBytes SourceKind = "bytes"
)

// fileSource identifies on-disk OpenAPI documents.
type fileSource struct {
	path string
}

func (s fileSource) Location() string { return s.path }
func (s fileSource) Kind() SourceKind { return SourceKindFile }

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

// fsSource references a path within the loader's fs.FS.
type fsSource struct {
	name string
}

func (s fsSource) Location() string { return s.name }
func (s fsSource) Kind() SourceKind { return SourceKindFS }

// SourceFromFS returns a Source identifying a resource inside an fs.FS. The
// filesystem itself is supplied to the Loader via WithFileSystem.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}

// bytesSource carries an already-fetched document.
type bytesSource struct {
	label string
	data  []byte
}

func (s bytesSource) Location() string { return s.label }
func (s bytesSource) Kind() SourceKind { return SourceKindBytes }

// SourceFromBytes wraps a raw document payload. The label is only used in
// error messages.
func SourceFromBytes(label string, data []byte) Source {
	return bytesSource{label: label, data: append([]byte(nil), data...)}
}
