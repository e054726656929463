package memory

import (
	"fmt"

	"bakehouse/pkg/domain/entities"
	"bakehouse/pkg/domain/repositories"
)

// CatalogRepository provides in-memory storage for the entity graph:
// ingredients, recipes, atomic units, bundles, and composition edges.
type CatalogRepository struct {
	ingredients  map[entities.IngredientID]*entities.Ingredient
	recipes      map[entities.RecipeID]*entities.Recipe
	atomicUnits  map[entities.AtomicUnitID]*entities.AtomicUnit
	bundles      map[entities.BundleID]*entities.Bundle
	compositions []entities.Composition
	edgeIndexes  map[entities.BundleID][]int
}

// NewCatalogRepository creates an empty in-memory catalog.
func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{
		ingredients: make(map[entities.IngredientID]*entities.Ingredient),
		recipes:     make(map[entities.RecipeID]*entities.Recipe),
		atomicUnits: make(map[entities.AtomicUnitID]*entities.AtomicUnit),
		bundles:     make(map[entities.BundleID]*entities.Bundle),
		edgeIndexes: make(map[entities.BundleID][]int),
	}
}

// Verify interface compliance
var _ repositories.CatalogRepository = (*CatalogRepository)(nil)

// AddIngredient adds an ingredient to the catalog.
func (r *CatalogRepository) AddIngredient(ingredient *entities.Ingredient) {
	r.ingredients[ingredient.ID] = ingredient
}

// AddRecipe adds a recipe to the catalog.
func (r *CatalogRepository) AddRecipe(recipe *entities.Recipe) {
	r.recipes[recipe.ID] = recipe
}

// AddAtomicUnit adds an atomic unit to the catalog.
func (r *CatalogRepository) AddAtomicUnit(unit *entities.AtomicUnit) {
	r.atomicUnits[unit.ID] = unit
}

// AddBundle adds a bundle to the catalog.
func (r *CatalogRepository) AddBundle(bundle *entities.Bundle) {
	r.bundles[bundle.ID] = bundle
}

// AddComposition adds a composition edge to the catalog.
func (r *CatalogRepository) AddComposition(edge *entities.Composition) {
	index := len(r.compositions)
	r.compositions = append(r.compositions, *edge)
	r.edgeIndexes[edge.ParentID] = append(r.edgeIndexes[edge.ParentID], index)
}

// GetIngredient returns an ingredient by ID.
func (r *CatalogRepository) GetIngredient(id entities.IngredientID) (*entities.Ingredient, error) {
	ingredient, exists := r.ingredients[id]
	if !exists {
		return nil, fmt.Errorf("ingredient not found: %s", id)
	}
	return ingredient, nil
}

// GetRecipe returns a recipe by ID.
func (r *CatalogRepository) GetRecipe(id entities.RecipeID) (*entities.Recipe, error) {
	recipe, exists := r.recipes[id]
	if !exists {
		return nil, fmt.Errorf("recipe not found: %s", id)
	}
	return recipe, nil
}

// GetAtomicUnit returns an atomic unit by ID.
func (r *CatalogRepository) GetAtomicUnit(id entities.AtomicUnitID) (*entities.AtomicUnit, error) {
	unit, exists := r.atomicUnits[id]
	if !exists {
		return nil, fmt.Errorf("atomic unit not found: %s", id)
	}
	return unit, nil
}

// GetBundle returns a bundle by ID.
func (r *CatalogRepository) GetBundle(id entities.BundleID) (*entities.Bundle, error) {
	bundle, exists := r.bundles[id]
	if !exists {
		return nil, fmt.Errorf("bundle not found: %s", id)
	}
	return bundle, nil
}

// GetCompositions returns the outgoing composition edges of a bundle in
// insertion order.
func (r *CatalogRepository) GetCompositions(parentID entities.BundleID) ([]*entities.Composition, error) {
	indexes := r.edgeIndexes[parentID]
	edges := make([]*entities.Composition, 0, len(indexes))
	for _, index := range indexes {
		edges = append(edges, &r.compositions[index])
	}
	return edges, nil
}

// GetAllCompositions returns all composition edges.
func (r *CatalogRepository) GetAllCompositions() ([]*entities.Composition, error) {
	edges := make([]*entities.Composition, 0, len(r.compositions))
	for i := range r.compositions {
		edges = append(edges, &r.compositions[i])
	}
	return edges, nil
}

// AllBundles returns all bundles.
func (r *CatalogRepository) AllBundles() []*entities.Bundle {
	bundles := make([]*entities.Bundle, 0, len(r.bundles))
	for _, bundle := range r.bundles {
		bundles = append(bundles, bundle)
	}
	return bundles
}
