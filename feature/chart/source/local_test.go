package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chart-catalog/feature/chart/models"
)

func TestLoadMapping(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mapping.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"20120711": "maimai"}`), 0o644))

	mapping, err := LoadMapping(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"20120711": "maimai"}, mapping)
}

func TestLoadMapping_Absent(t *testing.T) {
	mapping, err := LoadMapping(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.NotNil(t, mapping)
	assert.Empty(t, mapping)
}

func TestLoadMapping_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.json")
	require.NoError(t, os.WriteFile(path, []byte(`not json`), 0o644))

	_, err := LoadMapping(path)
	assert.Error(t, err)
}

func TestCatalogRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")

	catalog := []*models.Chart{
		{
			ID:      "42",
			Title:   "Song A",
			Variant: models.VariantStandard,
			DS:      []float64{3, 5, 7.5, 9},
			Level:   []string{"3", "5", "7+", "9"},
			CIDs:    []int{},
			Charts: []models.SubChart{
				{Notes: []int{100, 20, 10, 5}, Charter: "someone"},
			},
			BasicInfo: models.BasicInfo{
				Title:       "Song A",
				Artist:      "Artist A",
				Genre:       "POPS＆アニメ",
				BPM:         150,
				ReleaseDate: "20120711",
				Version:     "maimai",
			},
		},
	}

	require.NoError(t, SaveCatalog(path, catalog))

	loaded, err := LoadCatalog(path)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, catalog[0], loaded[0])
}

func TestLoadCatalog_Absent(t *testing.T) {
	catalog, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.NotNil(t, catalog)
	assert.Empty(t, catalog)
}
