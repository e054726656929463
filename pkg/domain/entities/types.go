package entities

// IngredientID identifies a generic consumable (e.g. "flour").
type IngredientID string

// RecipeID identifies a recipe.
type RecipeID string

// AtomicUnitID identifies the smallest producible item.
type AtomicUnitID string

// BundleID identifies a named assembly of atomic units and/or nested bundles.
type BundleID string

// SourceID identifies a purchasable package of an ingredient.
type SourceID string
