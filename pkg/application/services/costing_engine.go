package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"bakehouse/pkg/domain/entities"
	"bakehouse/pkg/domain/repositories"
	"bakehouse/pkg/infrastructure/events"
)

// CostingEngine prices ingredient consumption against the inventory ledger,
// lot by lot, oldest first. Dry-run passes never mutate the ledger; commit
// passes apply all of one call's lot decrements atomically.
type CostingEngine struct {
	catalog repositories.CatalogRepository
	ledger  repositories.InventoryRepository
	events  events.Store
}

// NewCostingEngine creates a costing engine over the given catalog and
// ledger.
func NewCostingEngine(catalog repositories.CatalogRepository, ledger repositories.InventoryRepository) *CostingEngine {
	return &CostingEngine{catalog: catalog, ledger: ledger}
}

// NewCostingEngineWithEvents additionally records committed consumptions to
// an event store.
func NewCostingEngineWithEvents(catalog repositories.CatalogRepository, ledger repositories.InventoryRepository, store events.Store) *CostingEngine {
	return &CostingEngine{catalog: catalog, ledger: ledger, events: store}
}

// Consume walks the ingredient's lots oldest-first and prices the requested
// quantity against them. The quantity is converted to the ingredient's
// stocking unit once, before the walk. Insufficient inventory is reported as
// a shortfall, never as an error.
func (e *CostingEngine) Consume(
	ctx context.Context,
	ingredientID entities.IngredientID,
	quantity decimal.Decimal,
	unit entities.Unit,
	mode entities.ConsumeMode,
) (*entities.ConsumeResult, error) {
	if quantity.Sign() <= 0 {
		return nil, entities.NewValidationError("consume quantity must be positive, got %s", quantity)
	}

	ingredient, err := e.catalog.GetIngredient(ingredientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ingredient %s: %w", ingredientID, err)
	}

	requested, err := entities.ConvertQuantity(quantity, unit, ingredient.StockUnit, ingredient.Density)
	if err != nil {
		return nil, err
	}

	lots, err := e.ledger.GetLots(ingredientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get lots for %s: %w", ingredientID, err)
	}

	result := &entities.ConsumeResult{
		IngredientID: ingredientID,
		Requested:    requested,
		Consumed:     decimal.Zero,
		TotalCost:    decimal.Zero,
		Shortfall:    decimal.Zero,
		Breakdown:    []entities.LotConsumption{},
	}

	stillNeeded := requested
	for _, lot := range lots {
		if stillNeeded.Sign() == 0 {
			break
		}
		if lot.Remaining.Sign() <= 0 {
			continue
		}

		take := stillNeeded
		if take.GreaterThan(lot.Remaining) {
			take = lot.Remaining
		}

		result.Breakdown = append(result.Breakdown, entities.LotConsumption{
			LotID:    lot.ID,
			Quantity: take,
			UnitCost: lot.UnitCost,
		})
		result.Consumed = result.Consumed.Add(take)
		result.TotalCost = result.TotalCost.Add(take.Mul(lot.UnitCost))
		stillNeeded = stillNeeded.Sub(take)
	}

	result.Shortfall = stillNeeded

	if mode == entities.Commit && len(result.Breakdown) > 0 {
		if err := e.ledger.ApplyConsumption(ingredientID, result.Breakdown); err != nil {
			return nil, fmt.Errorf("failed to commit consumption for %s: %w", ingredientID, err)
		}
		if e.events != nil {
			e.events.Append(events.NewConsumptionCommitted(*result))
		}
	}

	return result, nil
}
