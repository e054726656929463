package memory

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"bakehouse/pkg/domain/entities"
)

func mustDecision(t *testing.T, eventID uuid.UUID, unitID entities.AtomicUnitID, batches int64) *entities.BatchDecision {
	t.Helper()
	decision, err := entities.NewBatchDecision(eventID, unitID, batches, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Failed to create decision: %v", err)
	}
	return decision
}

func TestDecisionRepository_SaveAndGetDecisions(t *testing.T) {
	repo := NewDecisionRepository()
	eventID := uuid.New()
	otherEventID := uuid.New()

	first := mustDecision(t, eventID, "cookie", 3)
	second := mustDecision(t, eventID, "brownie", 2)
	unrelated := mustDecision(t, otherEventID, "cookie", 1)

	for _, decision := range []*entities.BatchDecision{first, second, unrelated} {
		if err := repo.SaveDecision(decision); err != nil {
			t.Fatalf("Failed to save decision: %v", err)
		}
	}

	decisions, err := repo.GetDecisions(eventID)
	if err != nil {
		t.Fatalf("Failed to get decisions: %v", err)
	}
	if len(decisions) != 2 {
		t.Fatalf("Expected 2 decisions, got %d", len(decisions))
	}
	if decisions[0].AtomicUnitID != "cookie" || decisions[1].AtomicUnitID != "brownie" {
		t.Errorf("Decisions not in recorded order: %s, %s",
			decisions[0].AtomicUnitID, decisions[1].AtomicUnitID)
	}
}

func TestDecisionRepository_RejectsDuplicatePair(t *testing.T) {
	repo := NewDecisionRepository()
	eventID := uuid.New()

	if err := repo.SaveDecision(mustDecision(t, eventID, "cookie", 3)); err != nil {
		t.Fatalf("Failed to save first decision: %v", err)
	}

	err := repo.SaveDecision(mustDecision(t, eventID, "cookie", 4))
	if err == nil {
		t.Fatal("Expected error for duplicate (event, atomic unit) pair, got nil")
	}
	var validationErr *entities.ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("Expected ValidationError, got %T", err)
	}

	// The original decision stays in place.
	decision, err := repo.GetDecision(eventID, "cookie")
	if err != nil {
		t.Fatalf("Failed to get decision: %v", err)
	}
	if decision == nil || decision.Batches != 3 {
		t.Errorf("Expected original decision with 3 batches to survive, got %+v", decision)
	}
}

func TestDecisionRepository_GetDecisionAbsent(t *testing.T) {
	repo := NewDecisionRepository()

	decision, err := repo.GetDecision(uuid.New(), "cookie")
	if err != nil {
		t.Fatalf("Failed to get decision: %v", err)
	}
	if decision != nil {
		t.Errorf("Expected nil for absent decision, got %+v", decision)
	}
}
