package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"bakehouse/pkg/application/dto"
	"bakehouse/pkg/domain/entities"
	"bakehouse/pkg/domain/repositories"
	"bakehouse/pkg/infrastructure/events"
)

// PlanningService orchestrates the planning workflow for one event:
// decompose selections, aggregate by atomic unit, calculate batch options,
// and record confirmed decisions.
type PlanningService struct {
	decomposer *Decomposer
	calculator *BatchCalculator
	decisions  repositories.DecisionRepository
	events     events.Store
}

// NewPlanningService creates a planning service.
func NewPlanningService(
	decomposer *Decomposer,
	calculator *BatchCalculator,
	decisions repositories.DecisionRepository,
) *PlanningService {
	return &PlanningService{
		decomposer: decomposer,
		calculator: calculator,
		decisions:  decisions,
	}
}

// NewPlanningServiceWithEvents additionally records decisions to an event
// store.
func NewPlanningServiceWithEvents(
	decomposer *Decomposer,
	calculator *BatchCalculator,
	decisions repositories.DecisionRepository,
	store events.Store,
) *PlanningService {
	s := NewPlanningService(decomposer, calculator, decisions)
	s.events = store
	return s
}

// PlanEvent runs the full planning pipeline for one event.
func (s *PlanningService) PlanEvent(ctx context.Context, event *entities.PlanningEvent) (*dto.PlanResult, error) {
	requirements, err := s.decomposer.Decompose(ctx, event.Selections)
	if err != nil {
		return nil, fmt.Errorf("failed to decompose selections for event %s: %w", event.Name, err)
	}

	aggregated := AggregateRequirements(requirements)

	options, err := s.calculator.CalculateOptions(ctx, aggregated)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate batch options for event %s: %w", event.Name, err)
	}

	return &dto.PlanResult{
		EventID:      event.ID,
		EventName:    event.Name,
		Requirements: requirements,
		Aggregated:   aggregated,
		Options:      options,
	}, nil
}

// RecordDecision persists the user's chosen batch option for one atomic
// unit. A shortfall option requires explicit confirmation; a second decision
// for the same (event, atomic unit) pair is rejected by the repository.
func (s *PlanningService) RecordDecision(
	ctx context.Context,
	eventID uuid.UUID,
	atomicUnitID entities.AtomicUnitID,
	option entities.BatchOption,
	shortfallConfirmed bool,
) (*entities.BatchDecision, error) {
	if option.IsShortfall && !shortfallConfirmed {
		return nil, entities.NewValidationError(
			"option for %s produces %s fewer than required and must be confirmed",
			atomicUnitID, option.Difference.Abs())
	}

	decision, err := entities.NewBatchDecision(eventID, atomicUnitID, option.Batches, time.Now())
	if err != nil {
		return nil, err
	}

	if err := s.decisions.SaveDecision(decision); err != nil {
		return nil, fmt.Errorf("failed to save decision for %s: %w", atomicUnitID, err)
	}

	if s.events != nil {
		s.events.Append(events.NewBatchDecisionRecorded(*decision))
	}

	return decision, nil
}

// Decisions returns the recorded decisions for an event.
func (s *PlanningService) Decisions(ctx context.Context, eventID uuid.UUID) ([]*entities.BatchDecision, error) {
	return s.decisions.GetDecisions(eventID)
}
