package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"bakehouse/pkg/domain/entities"
)

// Loader handles loading planning scenario data from CSV files.
type Loader struct{}

// NewLoader creates a new CSV loader.
func NewLoader() *Loader {
	return &Loader{}
}

func readRecords(filename string, expectedHeader []string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	if len(records) < 1 {
		return nil, fmt.Errorf("%s must have a header row", filename)
	}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("%s header mismatch. Expected: %v, Got: %v", filename, expectedHeader, records[0])
	}

	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("%s row %d: expected %d columns, got %d", filename, i+2, len(expectedHeader), len(record))
		}
	}

	return records[1:], nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}
	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}
	return true
}

// LoadIngredients loads ingredients from a CSV file.
// Columns: id, name, recipe_unit, stock_unit, density (empty = unset).
func (l *Loader) LoadIngredients(filename string) ([]*entities.Ingredient, error) {
	records, err := readRecords(filename, []string{"id", "name", "recipe_unit", "stock_unit", "density"})
	if err != nil {
		return nil, err
	}

	var ingredients []*entities.Ingredient
	for i, record := range records {
		recipeUnit, err := entities.ParseUnit(record[2])
		if err != nil {
			return nil, fmt.Errorf("ingredients row %d: %w", i+2, err)
		}
		stockUnit, err := entities.ParseUnit(record[3])
		if err != nil {
			return nil, fmt.Errorf("ingredients row %d: %w", i+2, err)
		}

		density := decimal.Zero
		if strings.TrimSpace(record[4]) != "" {
			density, err = decimal.NewFromString(record[4])
			if err != nil {
				return nil, fmt.Errorf("ingredients row %d: invalid density %q", i+2, record[4])
			}
		}

		ingredient, err := entities.NewIngredient(entities.IngredientID(record[0]), record[1], recipeUnit, stockUnit, density)
		if err != nil {
			return nil, fmt.Errorf("ingredients row %d: %w", i+2, err)
		}
		ingredients = append(ingredients, ingredient)
	}

	return ingredients, nil
}

// LoadInventory loads inventory lots from a CSV file.
// Columns: ingredient_id, quantity, unit_cost, acquired_at (YYYY-MM-DD).
func (l *Loader) LoadInventory(filename string) ([]*entities.InventoryLot, error) {
	records, err := readRecords(filename, []string{"ingredient_id", "quantity", "unit_cost", "acquired_at"})
	if err != nil {
		return nil, err
	}

	var lots []*entities.InventoryLot
	for i, record := range records {
		quantity, err := decimal.NewFromString(record[1])
		if err != nil {
			return nil, fmt.Errorf("inventory row %d: invalid quantity %q", i+2, record[1])
		}
		unitCost, err := decimal.NewFromString(record[2])
		if err != nil {
			return nil, fmt.Errorf("inventory row %d: invalid unit_cost %q", i+2, record[2])
		}
		acquiredAt, err := time.Parse("2006-01-02", record[3])
		if err != nil {
			return nil, fmt.Errorf("inventory row %d: invalid acquired_at %q (expected YYYY-MM-DD)", i+2, record[3])
		}

		lot, err := entities.NewInventoryLot(entities.IngredientID(record[0]), quantity, unitCost, acquiredAt)
		if err != nil {
			return nil, fmt.Errorf("inventory row %d: %w", i+2, err)
		}
		lots = append(lots, lot)
	}

	return lots, nil
}

// LoadSources loads purchasable sources from a CSV file.
// Columns: id, ingredient_id, name, package_size, package_unit, preferred.
func (l *Loader) LoadSources(filename string) ([]*entities.PurchasableSource, error) {
	records, err := readRecords(filename, []string{"id", "ingredient_id", "name", "package_size", "package_unit", "preferred"})
	if err != nil {
		return nil, err
	}

	var sources []*entities.PurchasableSource
	for i, record := range records {
		packageSize, err := decimal.NewFromString(record[3])
		if err != nil {
			return nil, fmt.Errorf("sources row %d: invalid package_size %q", i+2, record[3])
		}
		packageUnit, err := entities.ParseUnit(record[4])
		if err != nil {
			return nil, fmt.Errorf("sources row %d: %w", i+2, err)
		}
		preferred, err := strconv.ParseBool(record[5])
		if err != nil {
			return nil, fmt.Errorf("sources row %d: invalid preferred %q", i+2, record[5])
		}

		source, err := entities.NewPurchasableSource(
			entities.SourceID(record[0]), entities.IngredientID(record[1]),
			record[2], packageSize, packageUnit, preferred)
		if err != nil {
			return nil, fmt.Errorf("sources row %d: %w", i+2, err)
		}
		sources = append(sources, source)
	}

	return sources, nil
}

// LoadPrices loads purchase-price history into already-loaded sources.
// Columns: source_id, price, recorded_at (YYYY-MM-DD).
func (l *Loader) LoadPrices(filename string, sources []*entities.PurchasableSource) error {
	records, err := readRecords(filename, []string{"source_id", "price", "recorded_at"})
	if err != nil {
		return err
	}

	byID := make(map[entities.SourceID]*entities.PurchasableSource, len(sources))
	for _, source := range sources {
		byID[source.ID] = source
	}

	for i, record := range records {
		source, exists := byID[entities.SourceID(record[0])]
		if !exists {
			return fmt.Errorf("prices row %d: unknown source %q", i+2, record[0])
		}
		price, err := decimal.NewFromString(record[1])
		if err != nil {
			return fmt.Errorf("prices row %d: invalid price %q", i+2, record[1])
		}
		recordedAt, err := time.Parse("2006-01-02", record[2])
		if err != nil {
			return fmt.Errorf("prices row %d: invalid recorded_at %q (expected YYYY-MM-DD)", i+2, record[2])
		}
		if err := source.RecordPrice(price, recordedAt); err != nil {
			return fmt.Errorf("prices row %d: %w", i+2, err)
		}
	}

	return nil
}

// LoadRecipes loads recipes from a CSV file with one row per recipe line.
// Columns: recipe_id, recipe_name, ingredient_id, quantity, unit.
// Rows for one recipe must be contiguous; line order is preserved.
func (l *Loader) LoadRecipes(filename string) ([]*entities.Recipe, error) {
	records, err := readRecords(filename, []string{"recipe_id", "recipe_name", "ingredient_id", "quantity", "unit"})
	if err != nil {
		return nil, err
	}

	var recipes []*entities.Recipe
	var currentID entities.RecipeID
	var currentName string
	var currentLines []entities.RecipeLine

	flush := func() error {
		if currentID == "" {
			return nil
		}
		recipe, err := entities.NewRecipe(currentID, currentName, currentLines)
		if err != nil {
			return err
		}
		recipes = append(recipes, recipe)
		return nil
	}

	for i, record := range records {
		quantity, err := decimal.NewFromString(record[3])
		if err != nil {
			return nil, fmt.Errorf("recipes row %d: invalid quantity %q", i+2, record[3])
		}
		unit, err := entities.ParseUnit(record[4])
		if err != nil {
			return nil, fmt.Errorf("recipes row %d: %w", i+2, err)
		}

		id := entities.RecipeID(record[0])
		if id != currentID {
			if err := flush(); err != nil {
				return nil, err
			}
			currentID = id
			currentName = record[1]
			currentLines = nil
		}
		currentLines = append(currentLines, entities.RecipeLine{
			IngredientID: entities.IngredientID(record[2]),
			Quantity:     quantity,
			Unit:         unit,
		})
	}
	if err := flush(); err != nil {
		return nil, err
	}

	return recipes, nil
}

// LoadAtomicUnits loads atomic units from a CSV file.
// Columns: id, name, recipe_id, yield_mode (discrete|portion),
// items_per_batch, batch_percentage.
func (l *Loader) LoadAtomicUnits(filename string) ([]*entities.AtomicUnit, error) {
	records, err := readRecords(filename, []string{"id", "name", "recipe_id", "yield_mode", "items_per_batch", "batch_percentage"})
	if err != nil {
		return nil, err
	}

	var units []*entities.AtomicUnit
	for i, record := range records {
		var yield entities.YieldSpec
		switch strings.ToLower(strings.TrimSpace(record[3])) {
		case "discrete":
			items, err := decimal.NewFromString(record[4])
			if err != nil {
				return nil, fmt.Errorf("atomic units row %d: invalid items_per_batch %q", i+2, record[4])
			}
			yield = entities.YieldSpec{Mode: entities.DiscreteCount, ItemsPerBatch: items}
		case "portion":
			percentage, err := decimal.NewFromString(record[5])
			if err != nil {
				return nil, fmt.Errorf("atomic units row %d: invalid batch_percentage %q", i+2, record[5])
			}
			yield = entities.YieldSpec{Mode: entities.BatchPortion, BatchPercentage: percentage}
		default:
			return nil, fmt.Errorf("atomic units row %d: invalid yield_mode %q (expected 'discrete' or 'portion')", i+2, record[3])
		}

		unit, err := entities.NewAtomicUnit(entities.AtomicUnitID(record[0]), record[1], entities.RecipeID(record[2]), yield)
		if err != nil {
			return nil, fmt.Errorf("atomic units row %d: %w", i+2, err)
		}
		units = append(units, unit)
	}

	return units, nil
}

// LoadBundles loads bundles from a CSV file.
// Columns: id, name.
func (l *Loader) LoadBundles(filename string) ([]*entities.Bundle, error) {
	records, err := readRecords(filename, []string{"id", "name"})
	if err != nil {
		return nil, err
	}

	var bundles []*entities.Bundle
	for i, record := range records {
		bundle, err := entities.NewBundle(entities.BundleID(record[0]), record[1])
		if err != nil {
			return nil, fmt.Errorf("bundles row %d: %w", i+2, err)
		}
		bundles = append(bundles, bundle)
	}

	return bundles, nil
}

// LoadCompositions loads composition edges from a CSV file.
// Columns: parent_id, child_kind (atomic|bundle), child_id, multiplier.
func (l *Loader) LoadCompositions(filename string) ([]*entities.Composition, error) {
	records, err := readRecords(filename, []string{"parent_id", "child_kind", "child_id", "multiplier"})
	if err != nil {
		return nil, err
	}

	var edges []*entities.Composition
	for i, record := range records {
		child, err := parseComponentRef(record[1], record[2])
		if err != nil {
			return nil, fmt.Errorf("compositions row %d: %w", i+2, err)
		}
		multiplier, err := decimal.NewFromString(record[3])
		if err != nil {
			return nil, fmt.Errorf("compositions row %d: invalid multiplier %q", i+2, record[3])
		}

		edge, err := entities.NewComposition(entities.BundleID(record[0]), child, multiplier)
		if err != nil {
			return nil, fmt.Errorf("compositions row %d: %w", i+2, err)
		}
		edges = append(edges, edge)
	}

	return edges, nil
}

// LoadSelections loads event selections from a CSV file.
// Columns: target_kind (atomic|bundle), target_id, quantity.
func (l *Loader) LoadSelections(filename string) ([]entities.EventSelection, error) {
	records, err := readRecords(filename, []string{"target_kind", "target_id", "quantity"})
	if err != nil {
		return nil, err
	}

	var selections []entities.EventSelection
	for i, record := range records {
		target, err := parseComponentRef(record[0], record[1])
		if err != nil {
			return nil, fmt.Errorf("selections row %d: %w", i+2, err)
		}
		quantity, err := strconv.ParseInt(record[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("selections row %d: invalid quantity %q", i+2, record[2])
		}

		selection, err := entities.NewEventSelection(target, quantity)
		if err != nil {
			return nil, fmt.Errorf("selections row %d: %w", i+2, err)
		}
		selections = append(selections, *selection)
	}

	return selections, nil
}

func parseComponentRef(kind, id string) (entities.ComponentRef, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "atomic":
		return entities.AtomicRef(entities.AtomicUnitID(id)), nil
	case "bundle":
		return entities.BundleRef(entities.BundleID(id)), nil
	default:
		return entities.ComponentRef{}, fmt.Errorf("invalid component kind %q (expected 'atomic' or 'bundle')", kind)
	}
}
