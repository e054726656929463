package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"bakehouse/pkg/application/dto"
	"bakehouse/pkg/domain/entities"
	"bakehouse/pkg/domain/repositories"
)

// DefaultMaxDepth caps bundle nesting during decomposition. Bundles nested
// more deeply fail with a MaxDepthExceededError.
const DefaultMaxDepth = 10

// Decomposer flattens event selections over the composition graph into
// atomic-unit quantities, compounding multipliers through arbitrary nesting
// depth. It is a pure traversal: repeated calls with identical inputs
// produce identical outputs.
type Decomposer struct {
	catalog  repositories.CatalogRepository
	maxDepth int
}

// NewDecomposer creates a decomposer with the default depth limit.
func NewDecomposer(catalog repositories.CatalogRepository) *Decomposer {
	return NewDecomposerWithDepth(catalog, DefaultMaxDepth)
}

// NewDecomposerWithDepth creates a decomposer with a custom depth limit.
func NewDecomposerWithDepth(catalog repositories.CatalogRepository, maxDepth int) *Decomposer {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Decomposer{catalog: catalog, maxDepth: maxDepth}
}

// Decompose expands each selection into atomic-unit requirements. The first
// error aborts the whole call; no partial result is returned alongside an
// error. An empty selection list returns an empty result.
func (d *Decomposer) Decompose(ctx context.Context, selections []entities.EventSelection) ([]dto.AtomicRequirement, error) {
	requirements := make([]dto.AtomicRequirement, 0, len(selections))

	for i, sel := range selections {
		if err := sel.Target.Validate(); err != nil {
			return nil, fmt.Errorf("selection %d: %w", i+1, err)
		}
		if sel.Quantity <= 0 {
			return nil, entities.NewValidationError("selection %d: quantity must be positive, got %d", i+1, sel.Quantity)
		}

		qty := decimal.NewFromInt(sel.Quantity)
		if err := d.expand(ctx, sel.Target, qty, nil, &requirements); err != nil {
			return nil, err
		}
	}

	return requirements, nil
}

// expand walks one component reference. path holds the bundle ancestors on
// the current recursion stack; it is copied at each level so the same bundle
// may appear in independent branches without tripping the cycle check.
func (d *Decomposer) expand(
	ctx context.Context,
	ref entities.ComponentRef,
	quantity decimal.Decimal,
	path []entities.BundleID,
	out *[]dto.AtomicRequirement,
) error {
	switch ref.Kind {
	case entities.AtomicComponent:
		unit, err := d.catalog.GetAtomicUnit(ref.AtomicUnitID)
		if err != nil {
			return fmt.Errorf("failed to resolve atomic unit %s: %w", ref.AtomicUnitID, err)
		}
		if unit.RecipeID == "" {
			return entities.NewValidationError("atomic unit %s has no linked recipe", unit.ID)
		}
		*out = append(*out, dto.AtomicRequirement{AtomicUnitID: unit.ID, Quantity: quantity})
		return nil

	case entities.BundleComponent:
		for _, ancestor := range path {
			if ancestor == ref.BundleID {
				cycle := make([]entities.BundleID, len(path), len(path)+1)
				copy(cycle, path)
				return &entities.CircularReferenceError{Path: append(cycle, ref.BundleID)}
			}
		}
		if len(path) >= d.maxDepth {
			return &entities.MaxDepthExceededError{Limit: d.maxDepth}
		}

		if _, err := d.catalog.GetBundle(ref.BundleID); err != nil {
			return fmt.Errorf("failed to resolve bundle %s: %w", ref.BundleID, err)
		}
		edges, err := d.catalog.GetCompositions(ref.BundleID)
		if err != nil {
			return fmt.Errorf("failed to get compositions of %s: %w", ref.BundleID, err)
		}

		childPath := make([]entities.BundleID, len(path), len(path)+1)
		copy(childPath, path)
		childPath = append(childPath, ref.BundleID)

		for _, edge := range edges {
			if edge.Multiplier.Sign() == 0 {
				continue
			}
			childQty := edge.Multiplier.Mul(quantity)
			if err := d.expand(ctx, edge.Child, childQty, childPath, out); err != nil {
				return err
			}
		}
		return nil

	default:
		return entities.NewValidationError("unknown component kind %d", int(ref.Kind))
	}
}

// AggregateRequirements sums decomposer output by atomic unit. This is the
// caller-side step between decomposition and batch calculation.
func AggregateRequirements(requirements []dto.AtomicRequirement) map[entities.AtomicUnitID]decimal.Decimal {
	aggregated := make(map[entities.AtomicUnitID]decimal.Decimal, len(requirements))
	for _, req := range requirements {
		aggregated[req.AtomicUnitID] = aggregated[req.AtomicUnitID].Add(req.Quantity)
	}
	return aggregated
}

// SortedUnitIDs returns the aggregated map's keys in stable order.
func SortedUnitIDs(aggregated map[entities.AtomicUnitID]decimal.Decimal) []entities.AtomicUnitID {
	ids := make([]entities.AtomicUnitID, 0, len(aggregated))
	for id := range aggregated {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
