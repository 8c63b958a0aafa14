package engine

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dclews/portage-tools/internal/envmap"
)

func summarize(m *envmap.Mapping) MappingSummary {
	return MappingSummary{
		Name:    m.Name(),
		Profile: m.Profile(),
		Count:   m.Len(),
	}
}

// ListMappings loads every mapping and summarizes it, in profile order.
func (e *Engine) ListMappings(ctx context.Context) ([]MappingSummary, error) {
	mappings, err := e.LoadMappings(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]MappingSummary, 0, len(mappings))
	for _, m := range mappings {
		summaries = append(summaries, summarize(m))
	}
	return summaries, nil
}

// ShowMapping loads a single existing mapping and returns its atoms.
func (e *Engine) ShowMapping(ctx context.Context, req *ShowRequest) (*MappingDetails, error) {
	if err := e.fs.ValidateIdentifier(req.Profile); err != nil {
		return nil, fmt.Errorf("%w: invalid profile name: %v", ErrValidation, err)
	}

	path := filepath.Join(e.paths.PackageEnvDir, req.Profile)
	exists, err := e.fs.Exists(path)
	if err != nil {
		return nil, fmt.Errorf("failed to check profile %s: %w", req.Profile, err)
	}
	if !exists {
		return nil, fmt.Errorf("profile %s: %w", req.Profile, ErrNotFound)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m := e.newMapping(req.Profile)
	if err := m.Reload(); err != nil {
		return nil, fmt.Errorf("failed to load environment mapping: %w", err)
	}

	return &MappingDetails{
		MappingSummary: summarize(m),
		Atoms:          m.Atoms(),
	}, nil
}
