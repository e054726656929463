package repositories

import (
	"bakehouse/pkg/domain/entities"
)

// InventoryRepository provides access to the inventory ledger: the ordered
// collection of lots per ingredient.
type InventoryRepository interface {
	// GetLots returns the lots for an ingredient ordered by acquisition
	// time ascending (oldest first), as detached copies. Lots with nothing
	// remaining are included; callers skip them during the walk.
	GetLots(ingredientID entities.IngredientID) ([]*entities.InventoryLot, error)

	GetAllLots() ([]*entities.InventoryLot, error)
	LoadLots(lots []*entities.InventoryLot) error
	SaveLot(lot *entities.InventoryLot) error

	// ApplyConsumption decrements lot quantities per the breakdown. All
	// updates succeed together or none are applied; a draw exceeding a
	// lot's remaining quantity rejects the whole breakdown.
	ApplyConsumption(ingredientID entities.IngredientID, breakdown []entities.LotConsumption) error
}
