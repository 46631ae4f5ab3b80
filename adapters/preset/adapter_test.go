package preset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	corepreset "smartmedia-cost/core/preset"
	"smartmedia-cost/internal/errors"
)

func TestStaticSource(t *testing.T) {
	catalog := corepreset.Catalog{
		{ID: "hd", Height: 1080},
		{ID: "audio", Height: 0},
	}
	source := NewStaticSource(catalog)

	full, err := source.ListPresets(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, full, 2)

	filtered, err := source.ListPresets(context.Background(), []string{"audio"})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "audio", filtered[0].ID)
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.json")
	doc := `[
		{"id": "p1", "name": "Generic 720p", "height": 720, "container": "mp4"},
		{"id": "p2", "name": "Audio MP3", "height": 0, "container": "mp3"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	source := NewFileSource(path)
	catalog, err := source.ListPresets(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, catalog, 2)
	assert.Equal(t, 720, catalog[0].Height)

	filtered, err := source.ListPresets(context.Background(), []string{"p2"})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "p2", filtered[0].ID)
}

func TestFileSourceMissingFile(t *testing.T) {
	source := NewFileSource(filepath.Join(t.TempDir(), "nope.json"))

	_, err := source.ListPresets(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeNotFound))
}
