package app

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"uncharted_escape/internal/domain"
)

// LoadSeed returns the catalog every new session starts from: the built-in
// list when path is empty, otherwise the JSON array stored at path.
func LoadSeed(path string) (func() []domain.Destination, error) {
	if path == "" {
		return domain.SeedDestinations, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var ds []domain.Destination
	if err := json.Unmarshal(b, &ds); err != nil {
		return nil, fmt.Errorf("decode seed file %s: %w", path, err)
	}
	seen := make(map[string]struct{}, len(ds))
	for i, d := range ds {
		if d.ID == "" || d.Name == "" {
			return nil, fmt.Errorf("seed entry %d: id and name are required", i)
		}
		if _, dup := seen[d.ID]; dup {
			return nil, fmt.Errorf("seed entry %d: duplicate id %q", i, d.ID)
		}
		seen[d.ID] = struct{}{}
	}
	return func() []domain.Destination { return slices.Clone(ds) }, nil
}
