package events

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bakehouse/pkg/domain/entities"
)

const (
	TypeConsumptionCommitted  = "inventory.consumption_committed"
	TypeBatchDecisionRecorded = "planning.batch_decision_recorded"
)

// ConsumptionCommitted records a committed FIFO costing pass.
type ConsumptionCommitted struct {
	IngredientID entities.IngredientID
	Requested    decimal.Decimal
	Consumed     decimal.Decimal
	TotalCost    decimal.Decimal
	Shortfall    decimal.Decimal
	LotsTouched  int
}

// NewConsumptionCommitted creates a consumption-committed event from a
// costing result.
func NewConsumptionCommitted(result entities.ConsumeResult) Event {
	return NewEvent(TypeConsumptionCommitted, ConsumptionCommitted{
		IngredientID: result.IngredientID,
		Requested:    result.Requested,
		Consumed:     result.Consumed,
		TotalCost:    result.TotalCost,
		Shortfall:    result.Shortfall,
		LotsTouched:  len(result.Breakdown),
	})
}

// BatchDecisionRecorded records a confirmed batch decision.
type BatchDecisionRecorded struct {
	DecisionID   uuid.UUID
	EventID      uuid.UUID
	AtomicUnitID entities.AtomicUnitID
	Batches      int64
}

// NewBatchDecisionRecorded creates a decision-recorded event.
func NewBatchDecisionRecorded(decision entities.BatchDecision) Event {
	return NewEvent(TypeBatchDecisionRecorded, BatchDecisionRecorded{
		DecisionID:   decision.ID,
		EventID:      decision.EventID,
		AtomicUnitID: decision.AtomicUnitID,
		Batches:      decision.Batches,
	})
}
