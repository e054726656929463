package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bakehouse/pkg/domain/entities"
)

// AtomicRequirement is one emitted (atomic unit, quantity) pair from
// decomposition. Repeated units across branches appear as separate entries
// to preserve traceability of origin.
type AtomicRequirement struct {
	AtomicUnitID entities.AtomicUnitID
	Quantity     decimal.Decimal
}

// PlanResult contains the complete output of planning one event: the raw
// decomposition, its aggregation by atomic unit, and the candidate batch
// options per unit.
type PlanResult struct {
	EventID      uuid.UUID
	EventName    string
	Requirements []AtomicRequirement
	Aggregated   map[entities.AtomicUnitID]decimal.Decimal
	Options      []entities.BatchOptionsResult
}

// IngredientCost is the costing outcome for one recipe line.
type IngredientCost struct {
	IngredientID  entities.IngredientID
	Requested     decimal.Decimal
	Unit          entities.Unit
	Consumed      decimal.Decimal
	Shortfall     decimal.Decimal
	FIFOCost      decimal.Decimal
	ShortfallCost decimal.Decimal
	TotalCost     decimal.Decimal
	Breakdown     []entities.LotConsumption
}

// RecipeCost is the costing outcome for one recipe. For actual costing,
// FIFOCost prices what stock can satisfy and ShortfallCost prices the rest;
// for estimated costing, everything is priced from purchasable sources and
// FIFOCost is zero.
type RecipeCost struct {
	RecipeID      entities.RecipeID
	RecipeName    string
	Lines         []IngredientCost
	FIFOCost      decimal.Decimal
	ShortfallCost decimal.Decimal
	TotalCost     decimal.Decimal
}
