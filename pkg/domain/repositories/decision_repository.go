package repositories

import (
	"github.com/google/uuid"

	"bakehouse/pkg/domain/entities"
)

// DecisionRepository persists confirmed batch decisions. At most one
// decision may exist per (event, atomic unit) pair; saving a second is
// rejected.
type DecisionRepository interface {
	SaveDecision(decision *entities.BatchDecision) error
	GetDecisions(eventID uuid.UUID) ([]*entities.BatchDecision, error)
	GetDecision(eventID uuid.UUID, atomicUnitID entities.AtomicUnitID) (*entities.BatchDecision, error)
}
