package entities

import (
	"github.com/shopspring/decimal"
)

// RecipeLine represents one ingredient requirement within a recipe.
type RecipeLine struct {
	IngredientID IngredientID
	Quantity     decimal.Decimal
	Unit         Unit
}

// Recipe represents an ordered list of ingredient requirements for producing
// one batch of whatever the recipe yields.
type Recipe struct {
	ID    RecipeID
	Name  string
	Lines []RecipeLine
}

// NewRecipe creates a validated Recipe.
func NewRecipe(id RecipeID, name string, lines []RecipeLine) (*Recipe, error) {
	if id == "" {
		return nil, NewValidationError("recipe id cannot be empty")
	}
	if name == "" {
		return nil, NewValidationError("recipe name cannot be empty")
	}
	for i, line := range lines {
		if line.IngredientID == "" {
			return nil, NewValidationError("recipe %s line %d: ingredient id cannot be empty", id, i+1)
		}
		if line.Quantity.Sign() <= 0 {
			return nil, NewValidationError("recipe %s line %d: quantity must be positive, got %s", id, i+1, line.Quantity)
		}
		if _, err := line.Unit.Class(); err != nil {
			return nil, err
		}
	}

	return &Recipe{ID: id, Name: name, Lines: lines}, nil
}

// YieldMode represents how an atomic unit's yield per batch is defined.
type YieldMode int

const (
	// DiscreteCount yields a fixed number of items per batch.
	DiscreteCount YieldMode = iota
	// BatchPortion yields a fractional share of one batch per item,
	// e.g. one of three tiers.
	BatchPortion
)

// String method for YieldMode enum
func (m YieldMode) String() string {
	switch m {
	case DiscreteCount:
		return "DiscreteCount"
	case BatchPortion:
		return "BatchPortion"
	default:
		return "Unknown"
	}
}

// YieldSpec defines how many atomic units one recipe batch produces.
type YieldSpec struct {
	Mode            YieldMode
	ItemsPerBatch   decimal.Decimal // DiscreteCount mode
	BatchPercentage decimal.Decimal // BatchPortion mode, fraction in (0, 1]
}

// PerBatch returns the effective number of items one batch yields. For
// BatchPortion mode this is 1 / BatchPercentage.
func (y YieldSpec) PerBatch() (decimal.Decimal, error) {
	switch y.Mode {
	case DiscreteCount:
		if y.ItemsPerBatch.Sign() <= 0 {
			return decimal.Zero, NewValidationError("items per batch must be positive, got %s", y.ItemsPerBatch)
		}
		return y.ItemsPerBatch, nil
	case BatchPortion:
		if y.BatchPercentage.Sign() <= 0 || y.BatchPercentage.GreaterThan(decimal.NewFromInt(1)) {
			return decimal.Zero, NewValidationError("batch percentage must be in (0, 1], got %s", y.BatchPercentage)
		}
		return decimal.NewFromInt(1).Div(y.BatchPercentage), nil
	default:
		return decimal.Zero, NewValidationError("unknown yield mode %d", int(y.Mode))
	}
}

// BatchesFor returns the raw (fractional) number of batches needed to yield
// the given quantity of items. For BatchPortion mode this multiplies by the
// percentage directly rather than dividing by 1/percentage, so exact shares
// stay exact.
func (y YieldSpec) BatchesFor(quantity decimal.Decimal) (decimal.Decimal, error) {
	switch y.Mode {
	case DiscreteCount:
		perBatch, err := y.PerBatch()
		if err != nil {
			return decimal.Zero, err
		}
		return quantity.Div(perBatch), nil
	case BatchPortion:
		if y.BatchPercentage.Sign() <= 0 || y.BatchPercentage.GreaterThan(decimal.NewFromInt(1)) {
			return decimal.Zero, NewValidationError("batch percentage must be in (0, 1], got %s", y.BatchPercentage)
		}
		return quantity.Mul(y.BatchPercentage), nil
	default:
		return decimal.Zero, NewValidationError("unknown yield mode %d", int(y.Mode))
	}
}

// YieldOf returns the total number of items produced by the given whole
// number of batches.
func (y YieldSpec) YieldOf(batches decimal.Decimal) (decimal.Decimal, error) {
	switch y.Mode {
	case DiscreteCount:
		perBatch, err := y.PerBatch()
		if err != nil {
			return decimal.Zero, err
		}
		return batches.Mul(perBatch), nil
	case BatchPortion:
		if y.BatchPercentage.Sign() <= 0 || y.BatchPercentage.GreaterThan(decimal.NewFromInt(1)) {
			return decimal.Zero, NewValidationError("batch percentage must be in (0, 1], got %s", y.BatchPercentage)
		}
		return batches.Div(y.BatchPercentage), nil
	default:
		return decimal.Zero, NewValidationError("unknown yield mode %d", int(y.Mode))
	}
}

// AtomicUnit represents the smallest producible item. It references exactly
// one recipe and one yield definition and is the terminal node of
// composition decomposition.
type AtomicUnit struct {
	ID       AtomicUnitID
	Name     string
	RecipeID RecipeID
	Yield    YieldSpec
}

// NewAtomicUnit creates a validated AtomicUnit.
func NewAtomicUnit(id AtomicUnitID, name string, recipeID RecipeID, yield YieldSpec) (*AtomicUnit, error) {
	if id == "" {
		return nil, NewValidationError("atomic unit id cannot be empty")
	}
	if name == "" {
		return nil, NewValidationError("atomic unit name cannot be empty")
	}
	if recipeID == "" {
		return nil, NewValidationError("atomic unit %s has no linked recipe", id)
	}
	if _, err := yield.PerBatch(); err != nil {
		return nil, err
	}

	return &AtomicUnit{ID: id, Name: name, RecipeID: recipeID, Yield: yield}, nil
}
