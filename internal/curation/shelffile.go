// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package curation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/hbollon/go-edlib"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/curated-reads/pkg/types"
)

// ShelfFile is the on-disk editorial shelf definition.
type ShelfFile struct {
	Shelves []types.ShelfSection `yaml:"shelves" validate:"dive"`
}

// Snapshot is a resolved set of shelves saved to disk so the featured
// rotation can be served without re-querying the provider.
type Snapshot struct {
	GeneratedAt time.Time            `yaml:"generated_at" json:"generatedAt"`
	Shelves     []types.CuratedShelf `yaml:"shelves" json:"shelves"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadShelves reads and validates a shelf definition file. Shelf keys must
// be unique.
func LoadShelves(path string) ([]types.ShelfSection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading shelf file: %w", err)
	}
	var sf ShelfFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parsing shelf file: %w", err)
	}
	if err := validate.Struct(sf); err != nil {
		return nil, fmt.Errorf("invalid shelf file %s: %w", path, err)
	}
	seen := make(map[string]bool, len(sf.Shelves))
	for _, s := range sf.Shelves {
		if seen[s.Key] {
			return nil, fmt.Errorf("invalid shelf file %s: duplicate shelf key %q", path, s.Key)
		}
		seen[s.Key] = true
	}
	return sf.Shelves, nil
}

// FindSection returns the section with the given key. An unknown key
// yields an error that suggests the closest existing key.
func FindSection(sections []types.ShelfSection, key string) (types.ShelfSection, error) {
	var (
		closest string
		bestSim float32
	)
	for _, s := range sections {
		if s.Key == key {
			return s, nil
		}
		sim := edlib.JaroWinklerSimilarity(strings.ToLower(key), strings.ToLower(s.Key))
		if sim > bestSim {
			bestSim, closest = sim, s.Key
		}
	}
	if closest != "" && bestSim >= 0.7 {
		return types.ShelfSection{}, fmt.Errorf("unknown shelf %q (did you mean %q?)", key, closest)
	}
	return types.ShelfSection{}, fmt.Errorf("unknown shelf %q", key)
}

// WriteSnapshot saves resolved shelves to a YAML file, creating its
// directory when needed.
func WriteSnapshot(path string, snap Snapshot) error {
	data, err := yaml.Marshal(&snap)
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadSnapshot loads a previously written snapshot.
func ReadSnapshot(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("reading snapshot: %w", err)
	}
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("parsing snapshot: %w", err)
	}
	return snap, nil
}
