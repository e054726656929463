package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"bakehouse/pkg/application/services"
	"bakehouse/pkg/domain/entities"
	domainservices "bakehouse/pkg/domain/services"
	"bakehouse/pkg/infrastructure/repositories/csv"
	"bakehouse/pkg/infrastructure/repositories/memory"
	"bakehouse/pkg/interfaces/cli/output"
)

// PlanConfig holds configuration for the plan command.
type PlanConfig struct {
	ScenarioDir       string
	EventName         string
	Format            string
	MaxDepth          int
	CostPrecision     int32
	QuantityPrecision int32
	Verbose           bool
	Help              bool
}

// PlanCommand decomposes an event's selections and prints batch options.
type PlanCommand struct {
	config PlanConfig
	logger *slog.Logger
}

// NewPlanCommand creates a plan command.
func NewPlanCommand(config PlanConfig, logger *slog.Logger) *PlanCommand {
	return &PlanCommand{config: config, logger: logger}
}

// Execute runs the plan command.
func (c *PlanCommand) Execute(ctx context.Context) error {
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
	selections, err := loader.LoadSelections(files["Selections"])
	if err != nil {
		return fmt.Errorf("error loading selections: %w", err)
	}

	if c.config.Verbose {
		c.logger.Info("scenario loaded",
			"scenario", c.config.ScenarioDir,
			"selections", len(selections))
	}

	edges, err := catalog.GetAllCompositions()
	if err != nil {
		return fmt.Errorf("failed to read compositions: %w", err)
	}
	validator := domainservices.NewCompositionValidator()
	validation := validator.ValidateGraph(catalog.AllBundles(), edges)
	if !validation.Valid() {
		return fmt.Errorf("composition graph validation failed: %s",
			strings.Join(validation.Errors, "; "))
	}
	if c.config.Verbose {
		c.logger.Info("composition graph validated", "edges", len(edges))
	}

	event, err := entities.NewPlanningEvent(c.config.EventName, time.Now(), selections)
	if err != nil {
		return err
	}

	planner := services.NewPlanningService(
		services.NewDecomposerWithDepth(catalog, c.config.MaxDepth),
		services.NewBatchCalculator(catalog),
		memory.NewDecisionRepository(),
	)

	start := time.Now()
	plan, err := planner.PlanEvent(ctx, event)
	if err != nil {
		return fmt.Errorf("planning failed: %w", err)
	}
	if c.config.Verbose {
		c.logger.Info("plan computed",
			"atomic_units", len(plan.Aggregated),
			"elapsed", time.Since(start))
	}

	return output.WritePlan(plan, output.Config{
		Format:            c.config.Format,
		CostPrecision:     c.config.CostPrecision,
		QuantityPrecision: c.config.QuantityPrecision,
		Writer:            os.Stdout,
	})
}

func (c *PlanCommand) validateInputs() error {
	if c.config.ScenarioDir == "" {
		return fmt.Errorf("must specify -scenario directory")
	}
	if c.config.EventName == "" {
		return fmt.Errorf("must specify -event name")
	}
	return nil
}

func (c *PlanCommand) resolveInputFiles() (map[string]string, error) {
	files := map[string]string{
		"Ingredients":  filepath.Join(c.config.ScenarioDir, "ingredients.csv"),
		"Recipes":      filepath.Join(c.config.ScenarioDir, "recipes.csv"),
		"AtomicUnits":  filepath.Join(c.config.ScenarioDir, "units.csv"),
		"Bundles":      filepath.Join(c.config.ScenarioDir, "bundles.csv"),
		"Compositions": filepath.Join(c.config.ScenarioDir, "compositions.csv"),
		"Selections":   filepath.Join(c.config.ScenarioDir, "selections.csv"),
	}
	for name, path := range files {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("%s file not found: %s", name, path)
		}
	}
	return files, nil
}

// loadCatalog reads the catalog CSV files into an in-memory repository.
func loadCatalog(files map[string]string) (*memory.CatalogRepository, error) {
	loader := csv.NewLoader()
	catalog := memory.NewCatalogRepository()

	ingredients, err := loader.LoadIngredients(files["Ingredients"])
	if err != nil {
		return nil, fmt.Errorf("error loading ingredients: %w", err)
	}
	for _, ingredient := range ingredients {
		catalog.AddIngredient(ingredient)
	}

	recipes, err := loader.LoadRecipes(files["Recipes"])
	if err != nil {
		return nil, fmt.Errorf("error loading recipes: %w", err)
	}
	for _, recipe := range recipes {
		catalog.AddRecipe(recipe)
	}

	units, err := loader.LoadAtomicUnits(files["AtomicUnits"])
	if err != nil {
		return nil, fmt.Errorf("error loading atomic units: %w", err)
	}
	for _, unit := range units {
		catalog.AddAtomicUnit(unit)
	}

	bundles, err := loader.LoadBundles(files["Bundles"])
	if err != nil {
		return nil, fmt.Errorf("error loading bundles: %w", err)
	}
	for _, bundle := range bundles {
		catalog.AddBundle(bundle)
	}

	edges, err := loader.LoadCompositions(files["Compositions"])
	if err != nil {
		return nil, fmt.Errorf("error loading compositions: %w", err)
	}
	for _, edge := range edges {
		catalog.AddComposition(edge)
	}

	return catalog, nil
}

func (c *PlanCommand) showHelp() {
	fmt.Printf(`bakehouse plan - decompose event selections into batch options

USAGE:
    bakehouse plan -scenario <directory> -event <name>

OPTIONS:
    -scenario <dir>   Path to scenario directory containing CSV files
    -event <name>     Name of the planning event
    -format <fmt>     Output format: text, json (default: text)
    -max-depth <n>    Maximum bundle nesting depth (default: 10)
    -verbose          Enable verbose output
    -help             Show this help message

SCENARIO DIRECTORY STRUCTURE:
    scenario_name/
    ├── ingredients.csv    # Ingredient master data
    ├── recipes.csv        # Recipe lines
    ├── units.csv          # Atomic units with yields
    ├── bundles.csv        # Bundles
    ├── compositions.csv   # Bundle composition edges
    └── selections.csv     # Event selections

CSV FILE FORMATS:

ingredients.csv:
    id,name,recipe_unit,stock_unit,density
    flour,Plain Flour,g,g,
    milk,Whole Milk,ml,g,1.03

recipes.csv:
    recipe_id,recipe_name,ingredient_id,quantity,unit
    cookie-batch,Cookie Batch,flour,500,g

units.csv:
    id,name,recipe_id,yield_mode,items_per_batch,batch_percentage
    cookie,Cookie,cookie-batch,discrete,24,
    cake,Cake,cake-batch,portion,,0.5

bundles.csv:
    id,name
    gift-set,Gift Set

compositions.csv:
    parent_id,child_kind,child_id,multiplier
    gift-set,atomic,cookie,2

selections.csv:
    target_kind,target_id,quantity
    bundle,gift-set,5
`)
}
