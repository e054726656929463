package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryLot represents a quantity of one ingredient acquired at a point
// in time at a fixed unit cost, in the ingredient's stocking unit. Remaining
// decreases monotonically as consumption is committed and never goes below
// zero.
type InventoryLot struct {
	ID           uuid.UUID
	IngredientID IngredientID
	Remaining    decimal.Decimal
	UnitCost     decimal.Decimal
	AcquiredAt   time.Time
}

// NewInventoryLot creates a validated InventoryLot with a fresh identifier.
func NewInventoryLot(ingredientID IngredientID, quantity, unitCost decimal.Decimal, acquiredAt time.Time) (*InventoryLot, error) {
	if ingredientID == "" {
		return nil, NewValidationError("lot ingredient id cannot be empty")
	}
	if quantity.Sign() < 0 {
		return nil, NewValidationError("lot quantity cannot be negative, got %s", quantity)
	}
	if unitCost.Sign() < 0 {
		return nil, NewValidationError("lot unit cost cannot be negative, got %s", unitCost)
	}
	if acquiredAt.IsZero() {
		return nil, NewValidationError("lot acquisition time cannot be zero")
	}

	return &InventoryLot{
		ID:           uuid.New(),
		IngredientID: ingredientID,
		Remaining:    quantity,
		UnitCost:     unitCost,
		AcquiredAt:   acquiredAt,
	}, nil
}

// ConsumeMode selects whether a costing pass mutates lot quantities.
type ConsumeMode int

const (
	// DryRun walks lots without mutating them; results are exactly what a
	// commit would have produced against the same inventory state.
	DryRun ConsumeMode = iota
	// Commit decrements each touched lot's remaining quantity, all lot
	// updates for one consume call succeeding together or not at all.
	Commit
)

// String method for ConsumeMode enum
func (m ConsumeMode) String() string {
	switch m {
	case DryRun:
		return "DryRun"
	case Commit:
		return "Commit"
	default:
		return "Unknown"
	}
}

// LotConsumption records how much was taken from one lot during a costing
// pass, at that lot's unit cost.
type LotConsumption struct {
	LotID    uuid.UUID
	Quantity decimal.Decimal
	UnitCost decimal.Decimal
}

// Cost returns the cost of this breakdown entry at full precision.
func (c LotConsumption) Cost() decimal.Decimal {
	return c.Quantity.Mul(c.UnitCost)
}

// ConsumeResult is the outcome of one FIFO costing pass for one ingredient.
// Shortfall is the portion of the request stocked inventory could not
// satisfy; it is a normal outcome, not an error.
type ConsumeResult struct {
	IngredientID IngredientID
	Requested    decimal.Decimal // in the ingredient's stocking unit
	Consumed     decimal.Decimal
	TotalCost    decimal.Decimal
	Shortfall    decimal.Decimal
	Breakdown    []LotConsumption
}
