package events

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"bakehouse/pkg/domain/entities"
)

func TestMemoryStore_AppendAndQuery(t *testing.T) {
	store := NewMemoryStore()

	result := entities.ConsumeResult{
		IngredientID: "flour",
		Requested:    decimal.NewFromInt(300),
		Consumed:     decimal.NewFromInt(300),
		TotalCost:    decimal.RequireFromString("0.6"),
		Shortfall:    decimal.Zero,
	}
	store.Append(NewConsumptionCommitted(result))

	decision := entities.BatchDecision{
		AtomicUnitID: "cookie",
		Batches:      3,
		DecidedAt:    time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	store.Append(NewBatchDecisionRecorded(decision))

	all := store.Events()
	if len(all) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(all))
	}
	if all[0].Type != TypeConsumptionCommitted || all[1].Type != TypeBatchDecisionRecorded {
		t.Errorf("Events out of append order: %s, %s", all[0].Type, all[1].Type)
	}

	consumptions := store.EventsOfType(TypeConsumptionCommitted)
	if len(consumptions) != 1 {
		t.Fatalf("Expected 1 consumption event, got %d", len(consumptions))
	}
	if consumptions[0].ID == all[1].ID {
		t.Error("Events must carry distinct identifiers")
	}
}

func TestMemoryStore_EventsReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	store.Append(NewBatchDecisionRecorded(entities.BatchDecision{AtomicUnitID: "cookie", Batches: 1}))

	events := store.Events()
	events[0].Type = "mutated"

	if store.Events()[0].Type != TypeBatchDecisionRecorded {
		t.Error("Stored event mutated through returned slice")
	}
}
