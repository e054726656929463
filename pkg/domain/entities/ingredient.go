package entities

import (
	"github.com/shopspring/decimal"
)

// Ingredient represents a generic consumable tracked in inventory.
// Ingredients are immutable once referenced by a recipe.
type Ingredient struct {
	ID         IngredientID
	Name       string
	RecipeUnit Unit            // unit recipes measure this ingredient in
	StockUnit  Unit            // unit inventory lots are stocked in
	Density    decimal.Decimal // grams per milliliter; zero = unset
}

// NewIngredient creates a validated Ingredient.
func NewIngredient(id IngredientID, name string, recipeUnit, stockUnit Unit, density decimal.Decimal) (*Ingredient, error) {
	if id == "" {
		return nil, NewValidationError("ingredient id cannot be empty")
	}
	if name == "" {
		return nil, NewValidationError("ingredient name cannot be empty")
	}
	if _, err := recipeUnit.Class(); err != nil {
		return nil, err
	}
	if _, err := stockUnit.Class(); err != nil {
		return nil, err
	}
	if density.Sign() < 0 {
		return nil, NewValidationError("density cannot be negative, got %s", density)
	}

	return &Ingredient{
		ID:         id,
		Name:       name,
		RecipeUnit: recipeUnit,
		StockUnit:  stockUnit,
		Density:    density,
	}, nil
}
