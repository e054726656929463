package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"bakehouse/pkg/application/services"
	"bakehouse/pkg/domain/entities"
	"bakehouse/pkg/infrastructure/repositories/csv"
	"bakehouse/pkg/infrastructure/repositories/memory"
	"bakehouse/pkg/interfaces/cli/output"
)

// CostConfig holds configuration for the cost command.
type CostConfig struct {
	ScenarioDir       string
	RecipeID          string
	Mode              string // "actual", "estimated", "commit"
	Format            string
	CostPrecision     int32
	QuantityPrecision int32
	Verbose           bool
	Help              bool
}

// CostCommand prices a recipe against inventory and purchasable sources.
type CostCommand struct {
	config CostConfig
	logger *slog.Logger
}

// NewCostCommand creates a cost command.
func NewCostCommand(config CostConfig, logger *slog.Logger) *CostCommand {
	return &CostCommand{config: config, logger: logger}
}

// Execute runs the cost command.
func (c *CostCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	files, err := c.resolveInputFiles()
	if err != nil {
		return fmt.Errorf("failed to resolve input files: %w", err)
	}

	catalog, err := loadCatalog(files)
	if err != nil {
		return err
	}

	loader := csv.NewLoader()

	ledger := memory.NewInventoryRepository()
	lots, err := loader.LoadInventory(files["Inventory"])
	if err != nil {
		return fmt.Errorf("error loading inventory: %w", err)
	}
	if err := ledger.LoadLots(lots); err != nil {
		return fmt.Errorf("failed to load lots into ledger: %w", err)
	}

	sourceList, err := loader.LoadSources(files["Sources"])
	if err != nil {
		return fmt.Errorf("error loading sources: %w", err)
	}
	if err := loader.LoadPrices(files["Prices"], sourceList); err != nil {
		return fmt.Errorf("error loading prices: %w", err)
	}
	sources := memory.NewSourceRepository()
	if err := sources.LoadSources(sourceList); err != nil {
		return fmt.Errorf("failed to load sources into repository: %w", err)
	}

	if c.config.Verbose {
		c.logger.Info("scenario loaded",
			"scenario", c.config.ScenarioDir,
			"lots", len(lots),
			"sources", len(sourceList))
	}

	costing := services.NewRecipeCostingService(
		catalog,
		services.NewCostingEngine(catalog, ledger),
		services.NewShortfallPricer(catalog, sources),
	)

	recipeID := entities.RecipeID(c.config.RecipeID)
	outputConfig := output.Config{
		Format:            c.config.Format,
		CostPrecision:     c.config.CostPrecision,
		QuantityPrecision: c.config.QuantityPrecision,
		Writer:            os.Stdout,
	}

	switch c.config.Mode {
	case "actual", "":
		cost, err := costing.ActualCost(ctx, recipeID)
		if err != nil {
			return fmt.Errorf("costing failed: %w", err)
		}
		return output.WriteRecipeCost(cost, outputConfig)

	case "estimated":
		cost, err := costing.EstimatedCost(ctx, recipeID)
		if err != nil {
			return fmt.Errorf("estimation failed: %w", err)
		}
		return output.WriteRecipeCost(cost, outputConfig)

	case "commit":
		results, err := costing.CommitProduction(ctx, recipeID)
		if err != nil {
			return fmt.Errorf("commit failed: %w", err)
		}
		for _, result := range results {
			fmt.Printf("%s: consumed %s, shortfall %s, cost %s\n",
				result.IngredientID,
				result.Consumed.StringFixed(c.config.QuantityPrecision),
				result.Shortfall.StringFixed(c.config.QuantityPrecision),
				result.TotalCost.StringFixed(c.config.CostPrecision))
		}
		return nil

	default:
		return fmt.Errorf("unknown mode %q (expected actual, estimated, or commit)", c.config.Mode)
	}
}

func (c *CostCommand) validateInputs() error {
	if c.config.ScenarioDir == "" {
		return fmt.Errorf("must specify -scenario directory")
	}
	if c.config.RecipeID == "" {
		return fmt.Errorf("must specify -recipe ID")
	}
	return nil
}

func (c *CostCommand) resolveInputFiles() (map[string]string, error) {
	files := map[string]string{
		"Ingredients":  filepath.Join(c.config.ScenarioDir, "ingredients.csv"),
		"Recipes":      filepath.Join(c.config.ScenarioDir, "recipes.csv"),
		"AtomicUnits":  filepath.Join(c.config.ScenarioDir, "units.csv"),
		"Bundles":      filepath.Join(c.config.ScenarioDir, "bundles.csv"),
		"Compositions": filepath.Join(c.config.ScenarioDir, "compositions.csv"),
		"Inventory":    filepath.Join(c.config.ScenarioDir, "inventory.csv"),
		"Sources":      filepath.Join(c.config.ScenarioDir, "sources.csv"),
		"Prices":       filepath.Join(c.config.ScenarioDir, "prices.csv"),
	}
	for name, path := range files {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("%s file not found: %s", name, path)
		}
	}
	return files, nil
}

func (c *CostCommand) showHelp() {
	fmt.Printf(`bakehouse cost - price a recipe against inventory and sources

USAGE:
    bakehouse cost -scenario <directory> -recipe <id> [-mode <mode>]

OPTIONS:
    -scenario <dir>   Path to scenario directory containing CSV files
    -recipe <id>      Recipe to price
    -mode <mode>      Costing mode: actual, estimated, commit (default: actual)
    -format <fmt>     Output format: text, json (default: text)
    -verbose          Enable verbose output
    -help             Show this help message

MODES:
    actual      Price against current inventory lots oldest-first; any
                shortfall is priced from purchasable sources. Read-only.
    estimated   Price everything from purchasable sources, ignoring
                inventory. Read-only.
    commit      Consume inventory for one batch of the recipe and report
                the per-ingredient results.

ADDITIONAL CSV FILE FORMATS:

inventory.csv:
    ingredient_id,quantity,unit_cost,acquired_at
    flour,2500,0.002,2026-01-10

sources.csv:
    id,ingredient_id,name,package_size,package_unit,preferred
    wholesale,flour,Mill Wholesale,25000,g,true

prices.csv:
    source_id,price,recorded_at
    wholesale,20,2026-01-02
`)
}
