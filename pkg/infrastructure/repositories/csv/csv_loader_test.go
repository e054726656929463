package csv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"bakehouse/pkg/domain/entities"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestLoader_LoadIngredients(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ingredients.csv",
		"id,name,recipe_unit,stock_unit,density\n"+
			"flour,Plain Flour,g,g,\n"+
			"milk,Whole Milk,ml,g,1.03\n")

	loader := NewLoader()
	ingredients, err := loader.LoadIngredients(path)
	if err != nil {
		t.Fatalf("Failed to load ingredients: %v", err)
	}

	if len(ingredients) != 2 {
		t.Fatalf("Expected 2 ingredients, got %d", len(ingredients))
	}
	if ingredients[0].ID != "flour" || ingredients[0].RecipeUnit != entities.Gram {
		t.Errorf("Unexpected first ingredient: %+v", ingredients[0])
	}
	if !ingredients[1].Density.Equal(decimal.RequireFromString("1.03")) {
		t.Errorf("Expected milk density 1.03, got %s", ingredients[1].Density)
	}
}

func TestLoader_LoadIngredientsHeaderMismatch(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ingredients.csv",
		"id,name,unit\nflour,Plain Flour,g\n")

	loader := NewLoader()
	if _, err := loader.LoadIngredients(path); err == nil {
		t.Fatal("Expected header mismatch error, got nil")
	}
}

func TestLoader_LoadInventory(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "inventory.csv",
		"ingredient_id,quantity,unit_cost,acquired_at\n"+
			"flour,2500,0.002,2026-01-10\n"+
			"flour,1000,0.0025,2026-02-01\n")

	loader := NewLoader()
	lots, err := loader.LoadInventory(path)
	if err != nil {
		t.Fatalf("Failed to load inventory: %v", err)
	}

	if len(lots) != 2 {
		t.Fatalf("Expected 2 lots, got %d", len(lots))
	}
	if !lots[0].Remaining.Equal(decimal.NewFromInt(2500)) {
		t.Errorf("Expected remaining 2500, got %s", lots[0].Remaining)
	}
	if lots[0].AcquiredAt.Format("2006-01-02") != "2026-01-10" {
		t.Errorf("Unexpected acquisition date: %s", lots[0].AcquiredAt)
	}
}

func TestLoader_LoadInventoryBadDate(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "inventory.csv",
		"ingredient_id,quantity,unit_cost,acquired_at\n"+
			"flour,2500,0.002,10/01/2026\n")

	loader := NewLoader()
	if _, err := loader.LoadInventory(path); err == nil {
		t.Fatal("Expected date parse error, got nil")
	}
}

func TestLoader_LoadSourcesAndPrices(t *testing.T) {
	dir := t.TempDir()
	sourcesPath := writeFile(t, dir, "sources.csv",
		"id,ingredient_id,name,package_size,package_unit,preferred\n"+
			"wholesale,flour,Mill Wholesale,25000,g,true\n"+
			"corner-shop,flour,Corner Shop,1000,g,false\n")
	pricesPath := writeFile(t, dir, "prices.csv",
		"source_id,price,recorded_at\n"+
			"wholesale,20,2026-01-02\n"+
			"wholesale,22,2026-02-15\n")

	loader := NewLoader()
	sources, err := loader.LoadSources(sourcesPath)
	if err != nil {
		t.Fatalf("Failed to load sources: %v", err)
	}
	if err := loader.LoadPrices(pricesPath, sources); err != nil {
		t.Fatalf("Failed to load prices: %v", err)
	}

	if len(sources) != 2 {
		t.Fatalf("Expected 2 sources, got %d", len(sources))
	}
	if !sources[0].Preferred || sources[1].Preferred {
		t.Errorf("Preferred flags wrong: %v, %v", sources[0].Preferred, sources[1].Preferred)
	}

	latest, err := sources[0].LatestPrice()
	if err != nil {
		t.Fatalf("Failed to get latest price: %v", err)
	}
	if !latest.Price.Equal(decimal.NewFromInt(22)) {
		t.Errorf("Expected latest price 22, got %s", latest.Price)
	}
	if sources[1].HasPriceHistory() {
		t.Error("Corner shop should have no price history")
	}
}

func TestLoader_LoadPricesUnknownSource(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "prices.csv",
		"source_id,price,recorded_at\nmystery,5,2026-01-01\n")

	loader := NewLoader()
	if err := loader.LoadPrices(path, nil); err == nil {
		t.Fatal("Expected unknown source error, got nil")
	}
}

func TestLoader_LoadRecipesGroupsLines(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "recipes.csv",
		"recipe_id,recipe_name,ingredient_id,quantity,unit\n"+
			"cookie-batch,Cookie Batch,flour,500,g\n"+
			"cookie-batch,Cookie Batch,butter,250,g\n"+
			"loaf,Loaf,flour,300,g\n")

	loader := NewLoader()
	recipes, err := loader.LoadRecipes(path)
	if err != nil {
		t.Fatalf("Failed to load recipes: %v", err)
	}

	if len(recipes) != 2 {
		t.Fatalf("Expected 2 recipes, got %d", len(recipes))
	}
	if recipes[0].ID != "cookie-batch" || len(recipes[0].Lines) != 2 {
		t.Errorf("Expected cookie-batch with 2 lines, got %s with %d", recipes[0].ID, len(recipes[0].Lines))
	}
	if recipes[0].Lines[1].IngredientID != "butter" {
		t.Errorf("Line order lost: %s", recipes[0].Lines[1].IngredientID)
	}
	if recipes[1].ID != "loaf" || len(recipes[1].Lines) != 1 {
		t.Errorf("Expected loaf with 1 line, got %s with %d", recipes[1].ID, len(recipes[1].Lines))
	}
}

func TestLoader_LoadAtomicUnits(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "units.csv",
		"id,name,recipe_id,yield_mode,items_per_batch,batch_percentage\n"+
			"cookie,Cookie,cookie-batch,discrete,24,\n"+
			"cake,Cake,cake-batch,portion,,0.5\n")

	loader := NewLoader()
	units, err := loader.LoadAtomicUnits(path)
	if err != nil {
		t.Fatalf("Failed to load atomic units: %v", err)
	}

	if len(units) != 2 {
		t.Fatalf("Expected 2 units, got %d", len(units))
	}
	if units[0].Yield.Mode != entities.DiscreteCount || !units[0].Yield.ItemsPerBatch.Equal(decimal.NewFromInt(24)) {
		t.Errorf("Unexpected cookie yield: %+v", units[0].Yield)
	}
	if units[1].Yield.Mode != entities.BatchPortion || !units[1].Yield.BatchPercentage.Equal(decimal.RequireFromString("0.5")) {
		t.Errorf("Unexpected cake yield: %+v", units[1].Yield)
	}
}

func TestLoader_LoadCompositionsAndSelections(t *testing.T) {
	dir := t.TempDir()
	compositionsPath := writeFile(t, dir, "compositions.csv",
		"parent_id,child_kind,child_id,multiplier\n"+
			"gift-set,atomic,cookie,2\n"+
			"gift-set,bundle,sampler,1\n")
	selectionsPath := writeFile(t, dir, "selections.csv",
		"target_kind,target_id,quantity\n"+
			"bundle,gift-set,5\n")

	loader := NewLoader()
	edges, err := loader.LoadCompositions(compositionsPath)
	if err != nil {
		t.Fatalf("Failed to load compositions: %v", err)
	}
	if len(edges) != 2 {
		t.Fatalf("Expected 2 edges, got %d", len(edges))
	}
	if edges[0].Child.Kind != entities.AtomicComponent || edges[0].Child.AtomicUnitID != "cookie" {
		t.Errorf("Unexpected first edge child: %+v", edges[0].Child)
	}
	if edges[1].Child.Kind != entities.BundleComponent || edges[1].Child.BundleID != "sampler" {
		t.Errorf("Unexpected second edge child: %+v", edges[1].Child)
	}

	selections, err := loader.LoadSelections(selectionsPath)
	if err != nil {
		t.Fatalf("Failed to load selections: %v", err)
	}
	if len(selections) != 1 || selections[0].Quantity != 5 {
		t.Fatalf("Expected one selection of 5, got %v", selections)
	}
	if selections[0].Target.BundleID != "gift-set" {
		t.Errorf("Unexpected selection target: %+v", selections[0].Target)
	}
}

func TestLoader_InvalidComponentKind(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "compositions.csv",
		"parent_id,child_kind,child_id,multiplier\n"+
			"gift-set,widget,cookie,2\n")

	loader := NewLoader()
	if _, err := loader.LoadCompositions(path); err == nil {
		t.Fatal("Expected invalid kind error, got nil")
	}
}
