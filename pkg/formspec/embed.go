package formspec

import (
	"embed"
	"io/fs"
)

//go:embed defaults/*.yaml
var defaultSpecs embed.FS

// DefaultsFS exposes the embedded form-spec documents, currently the canonical
// event registration form.
func DefaultsFS() fs.FS {
	fsys, err := fs.Sub(defaultSpecs, "defaults")
	if err != nil {
		// The subtree is embedded at build time; a failure here is a
		// packaging bug, not a runtime condition.
		panic(err)
	}
	return fsys
}

// LoadDefaults parses the embedded documents.
func LoadDefaults() (*Store, error) {
	return LoadFS(DefaultsFS())
}
