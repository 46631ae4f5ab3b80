// Package preset provides preset catalog sources. The configured
// transcoding presets are external data; these sources expose them
// behind the core preset.Source interface.
package preset

import (
	"context"
	"encoding/json"
	"os"

	corepreset "smartmedia-cost/core/preset"
	"smartmedia-cost/internal/errors"
)

// StaticSource serves a fixed in-memory catalog
type StaticSource struct {
	catalog corepreset.Catalog
}

// NewStaticSource creates a source over a fixed catalog
func NewStaticSource(catalog corepreset.Catalog) *StaticSource {
	return &StaticSource{catalog: catalog}
}

// ListPresets returns the catalog, filtered by IDs when given
func (s *StaticSource) ListPresets(ctx context.Context, ids []string) (corepreset.Catalog, error) {
	if len(ids) == 0 {
		return s.catalog, nil
	}
	return s.catalog.Filter(ids), nil
}

// FileSource reads the preset catalog from a JSON file holding an array
// of preset descriptors.
type FileSource struct {
	path string
}

// NewFileSource creates a file-backed source
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// ListPresets loads the catalog file, filtered by IDs when given
func (s *FileSource) ListPresets(ctx context.Context, ids []string) (corepreset.Catalog, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("preset catalog file", s.path)
		}
		return nil, errors.Wrap(errors.TypeConfig, "reading preset catalog", err)
	}

	var catalog corepreset.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "parsing preset catalog", err)
	}

	if len(ids) == 0 {
		return catalog, nil
	}
	return catalog.Filter(ids), nil
}
