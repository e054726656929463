package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"bakehouse/pkg/application/dto"
	"bakehouse/pkg/domain/entities"
	"bakehouse/pkg/domain/repositories"
)

// RecipeCostingService prices whole recipes. Actual costing walks the
// inventory ledger in dry-run mode and prices any shortfall from purchasable
// sources; estimated costing ignores inventory and prices everything from
// sources.
type RecipeCostingService struct {
	catalog repositories.CatalogRepository
	engine  *CostingEngine
	pricer  *ShortfallPricer
}

// NewRecipeCostingService creates a recipe costing service.
func NewRecipeCostingService(catalog repositories.CatalogRepository, engine *CostingEngine, pricer *ShortfallPricer) *RecipeCostingService {
	return &RecipeCostingService{catalog: catalog, engine: engine, pricer: pricer}
}

// ActualCost prices one batch of a recipe against current inventory. The
// ledger is never mutated; shortfalls are priced from sources so the recipe
// is never underpriced when stock is insufficient.
func (s *RecipeCostingService) ActualCost(ctx context.Context, recipeID entities.RecipeID) (*dto.RecipeCost, error) {
	recipe, err := s.catalog.GetRecipe(recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe %s: %w", recipeID, err)
	}

	cost := &dto.RecipeCost{
		RecipeID:      recipe.ID,
		RecipeName:    recipe.Name,
		FIFOCost:      decimal.Zero,
		ShortfallCost: decimal.Zero,
		TotalCost:     decimal.Zero,
	}

	for _, line := range recipe.Lines {
		result, err := s.engine.Consume(ctx, line.IngredientID, line.Quantity, line.Unit, entities.DryRun)
		if err != nil {
			return nil, err
		}

		lineCost := dto.IngredientCost{
			IngredientID:  line.IngredientID,
			Requested:     line.Quantity,
			Unit:          line.Unit,
			Consumed:      result.Consumed,
			Shortfall:     result.Shortfall,
			FIFOCost:      result.TotalCost,
			ShortfallCost: decimal.Zero,
			Breakdown:     result.Breakdown,
		}

		if result.Shortfall.Sign() > 0 {
			shortfallCost, err := s.pricer.PriceShortfall(ctx, line.IngredientID, result.Shortfall)
			if err != nil {
				return nil, err
			}
			lineCost.ShortfallCost = shortfallCost
		}

		lineCost.TotalCost = lineCost.FIFOCost.Add(lineCost.ShortfallCost)
		cost.Lines = append(cost.Lines, lineCost)
		cost.FIFOCost = cost.FIFOCost.Add(lineCost.FIFOCost)
		cost.ShortfallCost = cost.ShortfallCost.Add(lineCost.ShortfallCost)
	}

	cost.TotalCost = cost.FIFOCost.Add(cost.ShortfallCost)
	return cost, nil
}

// EstimatedCost prices one batch of a recipe purely from purchasable
// sources, for shopping-list planning. The inventory ledger is never
// consulted.
func (s *RecipeCostingService) EstimatedCost(ctx context.Context, recipeID entities.RecipeID) (*dto.RecipeCost, error) {
	recipe, err := s.catalog.GetRecipe(recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe %s: %w", recipeID, err)
	}

	cost := &dto.RecipeCost{
		RecipeID:      recipe.ID,
		RecipeName:    recipe.Name,
		FIFOCost:      decimal.Zero,
		ShortfallCost: decimal.Zero,
		TotalCost:     decimal.Zero,
	}

	for _, line := range recipe.Lines {
		estimated, err := s.pricer.EstimateCost(ctx, line.IngredientID, line.Quantity, line.Unit)
		if err != nil {
			return nil, err
		}

		lineCost := dto.IngredientCost{
			IngredientID:  line.IngredientID,
			Requested:     line.Quantity,
			Unit:          line.Unit,
			Consumed:      decimal.Zero,
			Shortfall:     line.Quantity,
			FIFOCost:      decimal.Zero,
			ShortfallCost: estimated,
			TotalCost:     estimated,
		}

		cost.Lines = append(cost.Lines, lineCost)
		cost.ShortfallCost = cost.ShortfallCost.Add(estimated)
	}

	cost.TotalCost = cost.ShortfallCost
	return cost, nil
}

// CommitProduction consumes one batch of a recipe from the ledger in commit
// mode, returning the per-line results. All lot updates for each line apply
// atomically; a failure on a later line leaves earlier lines committed, so
// callers wanting whole-recipe atomicity should dry-run first.
func (s *RecipeCostingService) CommitProduction(ctx context.Context, recipeID entities.RecipeID) ([]*entities.ConsumeResult, error) {
	recipe, err := s.catalog.GetRecipe(recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe %s: %w", recipeID, err)
	}

	results := make([]*entities.ConsumeResult, 0, len(recipe.Lines))
	for _, line := range recipe.Lines {
		result, err := s.engine.Consume(ctx, line.IngredientID, line.Quantity, line.Unit, entities.Commit)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	return results, nil
}
