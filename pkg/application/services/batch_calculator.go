package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"bakehouse/pkg/domain/entities"
	"bakehouse/pkg/domain/repositories"
)

// BatchCalculator turns aggregated atomic-unit requirements into discrete
// production-batch options. It performs no persistence; selection and
// persistence of a chosen option belong to the caller.
type BatchCalculator struct {
	catalog repositories.CatalogRepository
}

// NewBatchCalculator creates a batch calculator.
func NewBatchCalculator(catalog repositories.CatalogRepository) *BatchCalculator {
	return &BatchCalculator{catalog: catalog}
}

// CalculateOptions computes floor/ceiling batch options for each nonzero
// requirement. When the raw batch count is already whole, a single option is
// emitted and flagged as an exact match. A floor of zero batches is not
// emitted; producing nothing is not an option. Results are ordered by atomic
// unit ID.
func (c *BatchCalculator) CalculateOptions(
	ctx context.Context,
	requirements map[entities.AtomicUnitID]decimal.Decimal,
) ([]entities.BatchOptionsResult, error) {
	results := make([]entities.BatchOptionsResult, 0, len(requirements))

	for _, unitID := range SortedUnitIDs(requirements) {
		required := requirements[unitID]
		if required.Sign() < 0 {
			return nil, entities.NewValidationError("requirement for %s cannot be negative, got %s", unitID, required)
		}
		if required.Sign() == 0 {
			continue
		}

		unit, err := c.catalog.GetAtomicUnit(unitID)
		if err != nil {
			return nil, fmt.Errorf("failed to get atomic unit %s: %w", unitID, err)
		}

		raw, err := unit.Yield.BatchesFor(required)
		if err != nil {
			return nil, err
		}

		floor := raw.Floor()
		ceiling := raw.Ceil()

		result := entities.BatchOptionsResult{
			AtomicUnitID: unitID,
			Required:     required,
		}

		if floor.Equal(raw) {
			option, err := c.buildOption(unit.Yield, floor, required)
			if err != nil {
				return nil, err
			}
			option.IsExactMatch = true
			result.Options = append(result.Options, option)
		} else {
			if floor.Sign() > 0 {
				option, err := c.buildOption(unit.Yield, floor, required)
				if err != nil {
					return nil, err
				}
				result.Options = append(result.Options, option)
			}
			option, err := c.buildOption(unit.Yield, ceiling, required)
			if err != nil {
				return nil, err
			}
			result.Options = append(result.Options, option)
		}

		results = append(results, result)
	}

	return results, nil
}

func (c *BatchCalculator) buildOption(yield entities.YieldSpec, batches, required decimal.Decimal) (entities.BatchOption, error) {
	totalYield, err := yield.YieldOf(batches)
	if err != nil {
		return entities.BatchOption{}, err
	}

	difference := totalYield.Sub(required)
	return entities.BatchOption{
		Batches:     batches.IntPart(),
		TotalYield:  totalYield,
		Difference:  difference,
		IsShortfall: difference.Sign() < 0,
	}, nil
}
