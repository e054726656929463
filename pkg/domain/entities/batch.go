package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BatchOption is a computed candidate batch count for one atomic unit.
// Difference is the signed gap between the option's total yield and the
// requirement: negative means producing fewer items than needed.
type BatchOption struct {
	Batches      int64
	TotalYield   decimal.Decimal
	Difference   decimal.Decimal
	IsShortfall  bool
	IsExactMatch bool
}

// BatchOptionsResult holds the candidate options for one atomic unit's
// aggregated requirement. Options holds either a single exact-match option
// or a floor option followed by a ceiling option.
type BatchOptionsResult struct {
	AtomicUnitID AtomicUnitID
	Required     decimal.Decimal
	Options      []BatchOption
}

// BatchDecision is the persisted, user-confirmed choice of batch count for
// one (event, atomic unit) pair. At most one decision may exist per pair.
type BatchDecision struct {
	ID           uuid.UUID
	EventID      uuid.UUID
	AtomicUnitID AtomicUnitID
	Batches      int64
	DecidedAt    time.Time
}

// NewBatchDecision creates a validated BatchDecision with a fresh identifier.
func NewBatchDecision(eventID uuid.UUID, atomicUnitID AtomicUnitID, batches int64, decidedAt time.Time) (*BatchDecision, error) {
	if eventID == uuid.Nil {
		return nil, NewValidationError("decision event id cannot be empty")
	}
	if atomicUnitID == "" {
		return nil, NewValidationError("decision atomic unit id cannot be empty")
	}
	if batches < 0 {
		return nil, NewValidationError("decision batch count cannot be negative, got %d", batches)
	}

	return &BatchDecision{
		ID:           uuid.New(),
		EventID:      eventID,
		AtomicUnitID: atomicUnitID,
		Batches:      batches,
		DecidedAt:    decidedAt,
	}, nil
}
