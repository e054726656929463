package memory

import (
	"bakehouse/pkg/domain/entities"
	"bakehouse/pkg/domain/repositories"
)

// SourceRepository provides in-memory storage for purchasable sources.
type SourceRepository struct {
	sources []*entities.PurchasableSource
	indexes map[entities.IngredientID][]int
}

// NewSourceRepository creates an empty in-memory source repository.
func NewSourceRepository() *SourceRepository {
	return &SourceRepository{
		sources: []*entities.PurchasableSource{},
		indexes: make(map[entities.IngredientID][]int),
	}
}

// Verify interface compliance
var _ repositories.SourceRepository = (*SourceRepository)(nil)

// AddSource adds a purchasable source.
func (r *SourceRepository) AddSource(source *entities.PurchasableSource) {
	index := len(r.sources)
	r.sources = append(r.sources, source)
	r.indexes[source.IngredientID] = append(r.indexes[source.IngredientID], index)
}

// LoadSources loads purchasable sources into the repository.
func (r *SourceRepository) LoadSources(sources []*entities.PurchasableSource) error {
	for _, source := range sources {
		r.AddSource(source)
	}
	return nil
}

// GetSources returns the sources for an ingredient in insertion order.
func (r *SourceRepository) GetSources(ingredientID entities.IngredientID) ([]*entities.PurchasableSource, error) {
	indexes := r.indexes[ingredientID]
	sources := make([]*entities.PurchasableSource, 0, len(indexes))
	for _, index := range indexes {
		sources = append(sources, r.sources[index])
	}
	return sources, nil
}

// GetPreferredSource returns the source marked preferred for an ingredient,
// or nil when none is marked.
func (r *SourceRepository) GetPreferredSource(ingredientID entities.IngredientID) (*entities.PurchasableSource, error) {
	for _, index := range r.indexes[ingredientID] {
		if r.sources[index].Preferred {
			return r.sources[index], nil
		}
	}
	return nil, nil
}
