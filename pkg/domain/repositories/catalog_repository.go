package repositories

import "bakehouse/pkg/domain/entities"

// CatalogRepository provides read-only access to the entity graph the core
// operates on: ingredients, recipes, atomic units, bundles, and composition
// edges. The persistence layer supplies the graph; the core never mutates it.
type CatalogRepository interface {
	GetIngredient(id entities.IngredientID) (*entities.Ingredient, error)
	GetRecipe(id entities.RecipeID) (*entities.Recipe, error)
	GetAtomicUnit(id entities.AtomicUnitID) (*entities.AtomicUnit, error)
	GetBundle(id entities.BundleID) (*entities.Bundle, error)

	// GetCompositions returns the outgoing composition edges of a bundle.
	// A known bundle with no edges returns an empty slice.
	GetCompositions(parentID entities.BundleID) ([]*entities.Composition, error)
	GetAllCompositions() ([]*entities.Composition, error)
}
