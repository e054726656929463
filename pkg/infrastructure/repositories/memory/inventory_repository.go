package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bakehouse/pkg/domain/entities"
	"bakehouse/pkg/domain/repositories"
)

// InventoryRepository provides in-memory inventory ledger storage. Reads
// hand out detached copies; commits mutate the stored lots under a single
// lock so one consumption's updates are applied atomically.
type InventoryRepository struct {
	mu   sync.Mutex
	lots []entities.InventoryLot
}

// NewInventoryRepository creates an empty in-memory inventory ledger.
func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{lots: []entities.InventoryLot{}}
}

// Verify interface compliance
var _ repositories.InventoryRepository = (*InventoryRepository)(nil)

// LoadLots loads inventory lots into the ledger.
func (r *InventoryRepository) LoadLots(lots []*entities.InventoryLot) error {
	for _, lot := range lots {
		if err := r.SaveLot(lot); err != nil {
			return err
		}
	}
	return nil
}

// SaveLot adds a lot to the ledger.
func (r *InventoryRepository) SaveLot(lot *entities.InventoryLot) error {
	if lot == nil {
		return fmt.Errorf("lot cannot be nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lots = append(r.lots, *lot)
	return nil
}

// GetLots returns copies of an ingredient's lots ordered by acquisition
// time ascending (oldest first).
func (r *InventoryRepository) GetLots(ingredientID entities.IngredientID) ([]*entities.InventoryLot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var lots []*entities.InventoryLot
	for i := range r.lots {
		if r.lots[i].IngredientID == ingredientID {
			lot := r.lots[i]
			lots = append(lots, &lot)
		}
	}
	sort.SliceStable(lots, func(i, j int) bool {
		return lots[i].AcquiredAt.Before(lots[j].AcquiredAt)
	})

	return lots, nil
}

// GetAllLots returns copies of all lots.
func (r *InventoryRepository) GetAllLots() ([]*entities.InventoryLot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	lots := make([]*entities.InventoryLot, 0, len(r.lots))
	for i := range r.lots {
		lot := r.lots[i]
		lots = append(lots, &lot)
	}
	return lots, nil
}

// ApplyConsumption decrements lot quantities per the breakdown. The whole
// breakdown is validated before anything is touched, so either every draw
// applies or none do.
func (r *InventoryRepository) ApplyConsumption(ingredientID entities.IngredientID, breakdown []entities.LotConsumption) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	indexes := make(map[uuid.UUID]int, len(r.lots))
	for i := range r.lots {
		if r.lots[i].IngredientID == ingredientID {
			indexes[r.lots[i].ID] = i
		}
	}

	// Validation pass: every draw must reference a known lot, and the draws
	// against each lot must jointly fit its remaining quantity, so repeated
	// lot entries cannot drive a lot negative.
	totals := make(map[uuid.UUID]decimal.Decimal, len(breakdown))
	for _, draw := range breakdown {
		index, exists := indexes[draw.LotID]
		if !exists {
			return fmt.Errorf("lot not found: %s for ingredient %s", draw.LotID, ingredientID)
		}
		if draw.Quantity.Sign() <= 0 {
			return fmt.Errorf("draw from lot %s must be positive, got %s", draw.LotID, draw.Quantity)
		}
		total := totals[draw.LotID].Add(draw.Quantity)
		if total.GreaterThan(r.lots[index].Remaining) {
			return fmt.Errorf("draws totaling %s exceed remaining %s in lot %s",
				total, r.lots[index].Remaining, draw.LotID)
		}
		totals[draw.LotID] = total
	}

	for _, draw := range breakdown {
		index := indexes[draw.LotID]
		r.lots[index].Remaining = r.lots[index].Remaining.Sub(draw.Quantity)
	}

	return nil
}
