package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"bakehouse/pkg/domain/entities"
	"bakehouse/pkg/domain/repositories"
)

// ShortfallPricer prices quantities the inventory ledger cannot satisfy,
// using an ingredient's preferred purchasable source with a fallback to any
// source carrying purchase history.
type ShortfallPricer struct {
	catalog repositories.CatalogRepository
	sources repositories.SourceRepository
}

// NewShortfallPricer creates a shortfall pricer.
func NewShortfallPricer(catalog repositories.CatalogRepository, sources repositories.SourceRepository) *ShortfallPricer {
	return &ShortfallPricer{catalog: catalog, sources: sources}
}

// PriceShortfall prices an unmet quantity, given in the ingredient's
// stocking unit. The result is additive with the FIFO-consumed cost so a
// recipe that cannot be satisfied from stock is never underpriced.
func (p *ShortfallPricer) PriceShortfall(ctx context.Context, ingredientID entities.IngredientID, shortfall decimal.Decimal) (decimal.Decimal, error) {
	if shortfall.Sign() < 0 {
		return decimal.Zero, entities.NewValidationError("shortfall cannot be negative, got %s", shortfall)
	}
	if shortfall.Sign() == 0 {
		return decimal.Zero, nil
	}

	ingredient, err := p.catalog.GetIngredient(ingredientID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get ingredient %s: %w", ingredientID, err)
	}

	return p.price(ingredient, shortfall, ingredient.StockUnit)
}

// EstimateCost prices the full requested quantity via the same source
// lookup, ignoring inventory entirely. Used for shopping-list planning
// before anything is purchased.
func (p *ShortfallPricer) EstimateCost(ctx context.Context, ingredientID entities.IngredientID, quantity decimal.Decimal, unit entities.Unit) (decimal.Decimal, error) {
	if quantity.Sign() <= 0 {
		return decimal.Zero, entities.NewValidationError("estimate quantity must be positive, got %s", quantity)
	}

	ingredient, err := p.catalog.GetIngredient(ingredientID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get ingredient %s: %w", ingredientID, err)
	}

	return p.price(ingredient, quantity, unit)
}

func (p *ShortfallPricer) price(ingredient *entities.Ingredient, quantity decimal.Decimal, unit entities.Unit) (decimal.Decimal, error) {
	source, err := p.lookupSource(ingredient.ID)
	if err != nil {
		return decimal.Zero, err
	}

	inPackageUnit, err := entities.ConvertQuantity(quantity, unit, source.PackageUnit, ingredient.Density)
	if err != nil {
		return decimal.Zero, err
	}

	unitPrice, err := source.UnitPrice()
	if err != nil {
		return decimal.Zero, err
	}

	return inPackageUnit.Mul(unitPrice), nil
}

// lookupSource resolves the pricing source: the preferred source when it has
// purchase history, otherwise any source with history, otherwise a
// validation error ("no pricing data").
func (p *ShortfallPricer) lookupSource(ingredientID entities.IngredientID) (*entities.PurchasableSource, error) {
	preferred, err := p.sources.GetPreferredSource(ingredientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get preferred source for %s: %w", ingredientID, err)
	}
	if preferred != nil && preferred.HasPriceHistory() {
		return preferred, nil
	}

	all, err := p.sources.GetSources(ingredientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sources for %s: %w", ingredientID, err)
	}
	for _, source := range all {
		if source.HasPriceHistory() {
			return source, nil
		}
	}

	return nil, entities.NewValidationError("no pricing data for ingredient %s", ingredientID)
}
