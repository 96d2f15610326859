package source

import (
	"encoding/json"
	"fmt"
	"os"

	"chart-catalog/feature/chart/models"
)

// LoadMapping reads a date-to-version boundary mapping from disk.
// An absent file yields an empty mapping, which makes version mapping
// a pass-through.
func LoadMapping(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping %s: %w", path, err)
	}

	var mapping map[string]string
	if err := json.Unmarshal(data, &mapping); err != nil {
		return nil, fmt.Errorf("failed to parse mapping %s: %w", path, err)
	}
	return mapping, nil
}

// LoadCatalog reads a previously published catalog from disk. An
// absent file yields an empty catalog so the first run still works.
func LoadCatalog(path string) ([]*models.Chart, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return []*models.Chart{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	var catalog []*models.Chart
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	return catalog, nil
}

// SaveCatalog writes a catalog document to disk, indented to match
// the published format.
func SaveCatalog(path string, catalog []*models.Chart) error {
	data, err := json.MarshalIndent(catalog, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write catalog %s: %w", path, err)
	}
	return nil
}
