package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dclews/portage-tools/internal/atom"
	"github.com/dclews/portage-tools/internal/envmap"
	"github.com/dclews/portage-tools/internal/planner"
)

// Set parses req.Atom and checks it against every loaded mapping. If no
// mapping already holds it and req.Profile is set, the atom is appended to
// that profile's store.
func (e *Engine) Set(ctx context.Context, req *SetRequest) (*SetResult, error) {
	a, err := atom.Parse(req.Atom)
	if err != nil {
		return nil, err
	}

	if req.Profile != "" {
		if err := e.fs.ValidateIdentifier(req.Profile); err != nil {
			return nil, fmt.Errorf("%w: invalid profile name: %v", ErrValidation, err)
		}
	}

	mappings, err := e.LoadMappings(ctx)
	if err != nil {
		return nil, err
	}

	if conflict := planner.NewConflictChecker(mappings).Check(a); conflict != nil {
		return nil, &ConflictError{Atom: a, Mapping: conflict.Mapping.Name()}
	}

	result := &SetResult{
		Atom:    a,
		Checked: len(mappings),
	}
	if req.Profile == "" {
		return result, nil
	}

	target := findMapping(mappings, req.Profile)
	if target == nil {
		target = e.newMapping(req.Profile)
	}
	result.Profile = target.Profile()
	result.Path = target.Path()

	if req.DryRun {
		return result, nil
	}

	if err := target.Append(a); err != nil {
		return nil, err
	}
	result.Persisted = true

	e.logger.Info("assigned atom to environment mapping",
		zap.Stringer("atom", a),
		zap.String("mapping", target.Name()))
	return result, nil
}

func findMapping(mappings []*envmap.Mapping, profile string) *envmap.Mapping {
	for _, m := range mappings {
		if m.Profile() == profile {
			return m
		}
	}
	return nil
}
