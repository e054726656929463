package main

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"bakehouse/pkg/application/services"
	"bakehouse/pkg/domain/entities"
	"bakehouse/pkg/infrastructure/repositories/memory"
)

func main() {
	ctx := context.Background()

	catalog := memory.NewCatalogRepository()
	ledger := memory.NewInventoryRepository()
	sources := memory.NewSourceRepository()

	setupMarketDayScenario(catalog, ledger, sources)

	// Plan a market day: 5 gift sets, each holding 2 cookies.
	planner := services.NewPlanningService(
		services.NewDecomposer(catalog),
		services.NewBatchCalculator(catalog),
		memory.NewDecisionRepository(),
	)

	selection, err := entities.NewEventSelection(entities.BundleRef("gift-set"), 5)
	if err != nil {
		fmt.Printf("invalid selection: %v\n", err)
		return
	}
	event, err := entities.NewPlanningEvent("Spring Market",
		time.Date(2026, 4, 4, 0, 0, 0, 0, time.UTC),
		[]entities.EventSelection{*selection})
	if err != nil {
		fmt.Printf("invalid event: %v\n", err)
		return
	}

	fmt.Printf("Planning %q: 5x gift set\n\n", event.Name)

	plan, err := planner.PlanEvent(ctx, event)
	if err != nil {
		fmt.Printf("planning failed: %v\n", err)
		return
	}

	for _, unitResult := range plan.Options {
		fmt.Printf("%s: need %s\n", unitResult.AtomicUnitID, unitResult.Required)
		for _, option := range unitResult.Options {
			note := ""
			if option.IsExactMatch {
				note = " (exact)"
			} else if option.IsShortfall {
				note = " (short)"
			}
			fmt.Printf("  %d batches -> %s items, difference %s%s\n",
				option.Batches, option.TotalYield, option.Difference, note)
		}
	}
	fmt.Println()

	// Cost one cookie batch against stock.
	costing := services.NewRecipeCostingService(
		catalog,
		services.NewCostingEngine(catalog, ledger),
		services.NewShortfallPricer(catalog, sources),
	)

	cost, err := costing.ActualCost(ctx, "cookie-batch")
	if err != nil {
		fmt.Printf("costing failed: %v\n", err)
		return
	}

	fmt.Printf("One batch of %q:\n", cost.RecipeName)
	for _, line := range cost.Lines {
		fmt.Printf("  %s: %s %s, stock %s + buy %s = %s\n",
			line.IngredientID, line.Requested, line.Unit,
			line.FIFOCost.StringFixed(2), line.ShortfallCost.StringFixed(2),
			line.TotalCost.StringFixed(2))
	}
	fmt.Printf("  total: %s\n", cost.TotalCost.StringFixed(2))
}

func setupMarketDayScenario(catalog *memory.CatalogRepository, ledger *memory.InventoryRepository, sources *memory.SourceRepository) {
	flour, _ := entities.NewIngredient("flour", "Plain Flour", entities.Gram, entities.Gram, decimal.Zero)
	butter, _ := entities.NewIngredient("butter", "Butter", entities.Gram, entities.Gram, decimal.Zero)
	catalog.AddIngredient(flour)
	catalog.AddIngredient(butter)

	recipe, _ := entities.NewRecipe("cookie-batch", "Cookie Batch", []entities.RecipeLine{
		{IngredientID: "flour", Quantity: decimal.NewFromInt(500), Unit: entities.Gram},
		{IngredientID: "butter", Quantity: decimal.NewFromInt(250), Unit: entities.Gram},
	})
	catalog.AddRecipe(recipe)

	cookie, _ := entities.NewAtomicUnit("cookie", "Cookie", "cookie-batch", entities.YieldSpec{
		Mode:          entities.DiscreteCount,
		ItemsPerBatch: decimal.NewFromInt(24),
	})
	catalog.AddAtomicUnit(cookie)

	giftSet, _ := entities.NewBundle("gift-set", "Gift Set")
	catalog.AddBundle(giftSet)
	edge, _ := entities.NewComposition("gift-set", entities.AtomicRef("cookie"), decimal.NewFromInt(2))
	catalog.AddComposition(edge)

	flourLot, _ := entities.NewInventoryLot("flour",
		decimal.NewFromInt(2000), decimal.RequireFromString("0.002"),
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	ledger.SaveLot(flourLot)

	// Butter stock is thin, so part of the batch is priced from the dairy.
	butterLot, _ := entities.NewInventoryLot("butter",
		decimal.NewFromInt(100), decimal.RequireFromString("0.010"),
		time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	ledger.SaveLot(butterLot)

	dairy, _ := entities.NewPurchasableSource("dairy-coop", "butter", "Dairy Co-op",
		decimal.NewFromInt(250), entities.Gram, true)
	dairy.RecordPrice(decimal.NewFromInt(3), time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	sources.AddSource(dairy)
}
