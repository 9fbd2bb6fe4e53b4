// Package formspec loads declarative form-spec documents (YAML or JSON) into
// model.FormSchema values, so flows can be reconfigured without recompiling.
package formspec

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-regflow/pkg/model"
)

// Store holds the schemas collected from one or more documents, keyed by form
// id.
type Store struct {
	forms map[string]model.FormSchema
}

// Form returns the schema registered under id.
func (s *Store) Form(id string) (model.FormSchema, bool) {
	if s == nil {
		return model.FormSchema{}, false
	}
	schema, ok := s.forms[id]
	return schema, ok
}

// IDs returns the registered form ids, sorted.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.forms))
	for id := range s.forms {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Empty reports whether the store holds any forms.
func (s *Store) Empty() bool {
	return s == nil || len(s.forms) == 0
}

type documentFile struct {
	Forms map[string]model.FormSchema `json:"forms" yaml:"forms"`
}

// LoadFS walks the provided filesystem and parses every form-spec file it
// finds. Duplicate form ids across files are rejected.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{forms: make(map[string]model.FormSchema)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSpecFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("formspec: read %s: %w", path, err)
		}
		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		for id, schema := range doc.Forms {
			id = strings.TrimSpace(id)
			if id == "" {
				return fmt.Errorf("formspec: file %s defines a form with an empty id", path)
			}
			if _, exists := store.forms[id]; exists {
				return fmt.Errorf("formspec: duplicate form %q (file %s)", id, path)
			}

			if schema.ID == "" {
				schema.ID = id
			}
			if err := schema.Validate(); err != nil {
				return fmt.Errorf("formspec: file %s form %q: %w", path, id, err)
			}
			store.forms[id] = schema
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Parse reads a single document held in memory. The source name is only used
// in error messages.
func Parse(data []byte, source string) (*Store, error) {
	doc, err := parseDocument(data, source)
	if err != nil {
		return nil, err
	}

	store := &Store{forms: make(map[string]model.FormSchema, len(doc.Forms))}
	for id, schema := range doc.Forms {
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, fmt.Errorf("formspec: %s defines a form with an empty id", source)
		}
		if schema.ID == "" {
			schema.ID = id
		}
		if err := schema.Validate(); err != nil {
			return nil, fmt.Errorf("formspec: %s form %q: %w", source, id, err)
		}
		store.forms[id] = schema
	}
	return store, nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("formspec: file %s is empty", source)
	}

	var doc documentFile
	if strings.EqualFold(filepath.Ext(source), ".json") {
		if err := json.Unmarshal(data, &doc); err != nil {
			return documentFile{}, fmt.Errorf("formspec: parse %s: %w", source, err)
		}
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("formspec: parse %s: %w", source, err)
	}
	return doc, nil
}

func isSpecFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	default:
		return false
	}
}
