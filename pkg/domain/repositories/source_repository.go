package repositories

import "bakehouse/pkg/domain/entities"

// SourceRepository provides access to purchasable sources and their price
// history. The costing engine reads sources but never mutates them.
type SourceRepository interface {
	GetSources(ingredientID entities.IngredientID) ([]*entities.PurchasableSource, error)

	// GetPreferredSource returns the source marked preferred for the
	// ingredient, or nil when none is marked.
	GetPreferredSource(ingredientID entities.IngredientID) (*entities.PurchasableSource, error)

	LoadSources(sources []*entities.PurchasableSource) error
}
