package engine

import (
	"context"

	"github.com/dclews/portage-tools/internal/atom"
	"github.com/dclews/portage-tools/internal/planner"
)

// Check loads every mapping and reports atoms held by more than one of
// them. Such configurations can only arise from edits made outside epenv.
func (e *Engine) Check(ctx context.Context) (*CheckResult, error) {
	mappings, err := e.LoadMappings(ctx)
	if err != nil {
		return nil, err
	}

	checker := planner.NewConflictChecker(mappings)
	seen := make(map[atom.Atom]struct{})
	result := &CheckResult{
		Mappings:   len(mappings),
		Duplicates: []Duplicate{},
	}

	for _, m := range mappings {
		for _, a := range m.Atoms() {
			if _, ok := seen[a]; ok {
				continue
			}
			seen[a] = struct{}{}

			conflicts := checker.CheckAll(a)
			if len(conflicts) < 2 {
				continue
			}
			dup := Duplicate{Atom: a}
			for _, c := range conflicts {
				dup.Mappings = append(dup.Mappings, c.Mapping.Name())
			}
			result.Duplicates = append(result.Duplicates, dup)
		}
	}
	result.Atoms = len(seen)
	return result, nil
}
