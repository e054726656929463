package memory

import (
	"sync"

	"github.com/google/uuid"

	"bakehouse/pkg/domain/entities"
	"bakehouse/pkg/domain/repositories"
)

type decisionKey struct {
	eventID      uuid.UUID
	atomicUnitID entities.AtomicUnitID
}

// DecisionRepository provides in-memory storage for batch decisions and
// enforces the one-decision-per-(event, atomic unit) invariant.
type DecisionRepository struct {
	mu        sync.Mutex
	decisions map[decisionKey]*entities.BatchDecision
	order     []decisionKey
}

// NewDecisionRepository creates an empty in-memory decision repository.
func NewDecisionRepository() *DecisionRepository {
	return &DecisionRepository{
		decisions: make(map[decisionKey]*entities.BatchDecision),
	}
}

// Verify interface compliance
var _ repositories.DecisionRepository = (*DecisionRepository)(nil)

// SaveDecision persists a decision. A second decision for the same
// (event, atomic unit) pair is rejected.
func (r *DecisionRepository) SaveDecision(decision *entities.BatchDecision) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := decisionKey{eventID: decision.EventID, atomicUnitID: decision.AtomicUnitID}
	if _, exists := r.decisions[key]; exists {
		return entities.NewValidationError(
			"decision already recorded for atomic unit %s in event %s",
			decision.AtomicUnitID, decision.EventID)
	}

	r.decisions[key] = decision
	r.order = append(r.order, key)
	return nil
}

// GetDecisions returns the decisions for an event in the order they were
// recorded.
func (r *DecisionRepository) GetDecisions(eventID uuid.UUID) ([]*entities.BatchDecision, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var decisions []*entities.BatchDecision
	for _, key := range r.order {
		if key.eventID == eventID {
			decisions = append(decisions, r.decisions[key])
		}
	}
	return decisions, nil
}

// GetDecision returns the decision for one (event, atomic unit) pair, or
// nil when none is recorded.
func (r *DecisionRepository) GetDecision(eventID uuid.UUID, atomicUnitID entities.AtomicUnitID) (*entities.BatchDecision, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := decisionKey{eventID: eventID, atomicUnitID: atomicUnitID}
	return r.decisions[key], nil
}
