// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lists

import (
	"context"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/curated-reads/pkg/types"
)

// Export is the YAML document written by ExportYAML.
type Export struct {
	ExportedAt string              `yaml:"exported_at"`
	Lists      []types.ReadingList `yaml:"lists"`
}

// ExportYAML writes every list, newest first, as a YAML document to w.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer) error {
	lists, err := s.List(ctx)
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Export{ExportedAt: s.now(), Lists: lists}); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}
