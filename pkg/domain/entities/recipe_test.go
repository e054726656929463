package entities

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestYieldSpec_PerBatch(t *testing.T) {
	tests := []struct {
		name     string
		yield    YieldSpec
		expected string
		wantErr  bool
	}{
		{
			name:     "discrete_count",
			yield:    YieldSpec{Mode: DiscreteCount, ItemsPerBatch: decimal.NewFromInt(24)},
			expected: "24",
		},
		{
			name:     "batch_portion_quarter",
			yield:    YieldSpec{Mode: BatchPortion, BatchPercentage: decimal.RequireFromString("0.25")},
			expected: "4",
		},
		{
			name:    "zero_items_per_batch",
			yield:   YieldSpec{Mode: DiscreteCount, ItemsPerBatch: decimal.Zero},
			wantErr: true,
		},
		{
			name:    "portion_above_one",
			yield:   YieldSpec{Mode: BatchPortion, BatchPercentage: decimal.RequireFromString("1.5")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.yield.PerBatch()
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("PerBatch failed: %v", err)
			}
			if !got.Equal(decimal.RequireFromString(tt.expected)) {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestYieldSpec_BatchesFor(t *testing.T) {
	discrete := YieldSpec{Mode: DiscreteCount, ItemsPerBatch: decimal.NewFromInt(24)}
	raw, err := discrete.BatchesFor(decimal.NewFromInt(72))
	if err != nil {
		t.Fatalf("BatchesFor failed: %v", err)
	}
	if !raw.Equal(decimal.NewFromInt(3)) {
		t.Errorf("Expected 3 batches, got %s", raw)
	}

	// A half-batch tier: 2 tiers needed means exactly 1 batch.
	portion := YieldSpec{Mode: BatchPortion, BatchPercentage: decimal.RequireFromString("0.5")}
	raw, err = portion.BatchesFor(decimal.NewFromInt(2))
	if err != nil {
		t.Fatalf("BatchesFor failed: %v", err)
	}
	if !raw.Equal(decimal.NewFromInt(1)) {
		t.Errorf("Expected 1 batch, got %s", raw)
	}
}

func TestNewAtomicUnit_Validation(t *testing.T) {
	yield := YieldSpec{Mode: DiscreteCount, ItemsPerBatch: decimal.NewFromInt(12)}

	unit, err := NewAtomicUnit("cookie", "Chocolate Cookie", "cookie-recipe", yield)
	if err != nil {
		t.Fatalf("Expected valid atomic unit creation to succeed: %v", err)
	}
	if unit.RecipeID != "cookie-recipe" {
		t.Errorf("Expected recipe cookie-recipe, got %s", unit.RecipeID)
	}

	if _, err := NewAtomicUnit("cookie", "Chocolate Cookie", "", yield); err == nil {
		t.Error("Expected error for missing recipe link")
	}
	if _, err := NewAtomicUnit("", "Chocolate Cookie", "cookie-recipe", yield); err == nil {
		t.Error("Expected error for empty id")
	}
}

func TestNewRecipe_Validation(t *testing.T) {
	lines := []RecipeLine{
		{IngredientID: "flour", Quantity: decimal.NewFromInt(500), Unit: Gram},
		{IngredientID: "milk", Quantity: decimal.NewFromInt(250), Unit: Milliliter},
	}

	recipe, err := NewRecipe("cookie-recipe", "Chocolate Cookies", lines)
	if err != nil {
		t.Fatalf("Expected valid recipe creation to succeed: %v", err)
	}
	if len(recipe.Lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(recipe.Lines))
	}

	bad := []RecipeLine{{IngredientID: "flour", Quantity: decimal.Zero, Unit: Gram}}
	if _, err := NewRecipe("r", "Bad", bad); err == nil {
		t.Error("Expected error for non-positive line quantity")
	}
}
