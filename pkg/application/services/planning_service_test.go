package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"bakehouse/pkg/domain/entities"
	"bakehouse/pkg/infrastructure/events"
	"bakehouse/pkg/infrastructure/repositories/memory"
)

func newPlanningFixture(t *testing.T) (*PlanningService, *memory.CatalogRepository, *events.MemoryStore) {
	t.Helper()
	catalog := memory.NewCatalogRepository()
	store := events.NewMemoryStore()
	service := NewPlanningServiceWithEvents(
		NewDecomposer(catalog),
		NewBatchCalculator(catalog),
		memory.NewDecisionRepository(),
		store,
	)
	return service, catalog, store
}

func TestPlanningService_PlanEvent(t *testing.T) {
	service, catalog, _ := newPlanningFixture(t)

	// A gift set holds two cookies; a batch yields 24 cookies. Five gift
	// sets need 10 cookies, so one batch over-produces by 14.
	addAtomicUnit(t, catalog, "cookie", 24)
	addBundle(t, catalog, "gift-set")
	addEdge(t, catalog, "gift-set", entities.AtomicRef("cookie"), "2")

	selection, err := entities.NewEventSelection(entities.BundleRef("gift-set"), 5)
	if err != nil {
		t.Fatalf("Failed to create selection: %v", err)
	}
	event, err := entities.NewPlanningEvent("Spring Market", time.Date(2026, 4, 4, 0, 0, 0, 0, time.UTC), []entities.EventSelection{*selection})
	if err != nil {
		t.Fatalf("Failed to create event: %v", err)
	}

	plan, err := service.PlanEvent(context.Background(), event)
	if err != nil {
		t.Fatalf("Failed to plan event: %v", err)
	}

	if plan.EventID != event.ID || plan.EventName != "Spring Market" {
		t.Errorf("Plan not tied to event: %s %q", plan.EventID, plan.EventName)
	}
	if !plan.Aggregated["cookie"].Equal(decimal.NewFromInt(10)) {
		t.Errorf("Expected aggregated requirement 10, got %s", plan.Aggregated["cookie"])
	}

	if len(plan.Options) != 1 {
		t.Fatalf("Expected options for 1 atomic unit, got %d", len(plan.Options))
	}
	options := plan.Options[0].Options
	if len(options) != 1 {
		t.Fatalf("Expected a single batch option, got %d", len(options))
	}
	option := options[0]
	if option.Batches != 1 || !option.TotalYield.Equal(decimal.NewFromInt(24)) || !option.Difference.Equal(decimal.NewFromInt(14)) {
		t.Errorf("Expected option (1 batch, 24, +14), got (%d, %s, %s)",
			option.Batches, option.TotalYield, option.Difference)
	}
}

func TestPlanningService_RecordDecision(t *testing.T) {
	service, catalog, store := newPlanningFixture(t)
	addAtomicUnit(t, catalog, "cookie", 24)

	event, err := entities.NewPlanningEvent("Spring Market", time.Date(2026, 4, 4, 0, 0, 0, 0, time.UTC), nil)
	if err != nil {
		t.Fatalf("Failed to create event: %v", err)
	}

	option := entities.BatchOption{
		Batches:    1,
		TotalYield: decimal.NewFromInt(24),
		Difference: decimal.NewFromInt(14),
	}
	decision, err := service.RecordDecision(context.Background(), event.ID, "cookie", option, false)
	if err != nil {
		t.Fatalf("Failed to record decision: %v", err)
	}
	if decision.Batches != 1 {
		t.Errorf("Expected 1 batch recorded, got %d", decision.Batches)
	}

	decisions, err := service.Decisions(context.Background(), event.ID)
	if err != nil {
		t.Fatalf("Failed to get decisions: %v", err)
	}
	if len(decisions) != 1 || decisions[0].AtomicUnitID != "cookie" {
		t.Errorf("Expected one cookie decision, got %v", decisions)
	}

	recorded := store.EventsOfType(events.TypeBatchDecisionRecorded)
	if len(recorded) != 1 {
		t.Errorf("Expected 1 decision event, got %d", len(recorded))
	}

	// A second decision for the same pair is rejected.
	if _, err := service.RecordDecision(context.Background(), event.ID, "cookie", option, false); err == nil {
		t.Error("Expected error for duplicate decision, got nil")
	}
}

func TestPlanningService_ShortfallOptionNeedsConfirmation(t *testing.T) {
	service, _, _ := newPlanningFixture(t)

	event, err := entities.NewPlanningEvent("Spring Market", time.Date(2026, 4, 4, 0, 0, 0, 0, time.UTC), nil)
	if err != nil {
		t.Fatalf("Failed to create event: %v", err)
	}

	shortfallOption := entities.BatchOption{
		Batches:     8,
		TotalYield:  decimal.NewFromInt(192),
		Difference:  decimal.NewFromInt(-8),
		IsShortfall: true,
	}

	_, err = service.RecordDecision(context.Background(), event.ID, "cookie", shortfallOption, false)
	if err == nil {
		t.Fatal("Expected error for unconfirmed shortfall option, got nil")
	}
	var validationErr *entities.ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("Expected ValidationError, got %T: %v", err, err)
	}

	decision, err := service.RecordDecision(context.Background(), event.ID, "cookie", shortfallOption, true)
	if err != nil {
		t.Fatalf("Confirmed shortfall option must record: %v", err)
	}
	if decision.Batches != 8 {
		t.Errorf("Expected 8 batches recorded, got %d", decision.Batches)
	}
}

func TestPlanningService_PlanEventPropagatesCycleError(t *testing.T) {
	service, catalog, _ := newPlanningFixture(t)
	addBundle(t, catalog, "a")
	addBundle(t, catalog, "b")
	addEdge(t, catalog, "a", entities.BundleRef("b"), "1")
	addEdge(t, catalog, "b", entities.BundleRef("a"), "1")

	selection, err := entities.NewEventSelection(entities.BundleRef("a"), 1)
	if err != nil {
		t.Fatalf("Failed to create selection: %v", err)
	}
	event, err := entities.NewPlanningEvent("Bad Catalog", time.Date(2026, 4, 4, 0, 0, 0, 0, time.UTC), []entities.EventSelection{*selection})
	if err != nil {
		t.Fatalf("Failed to create event: %v", err)
	}

	_, err = service.PlanEvent(context.Background(), event)
	if err == nil {
		t.Fatal("Expected cycle error to propagate, got nil")
	}
	var circularErr *entities.CircularReferenceError
	if !errors.As(err, &circularErr) {
		t.Errorf("Expected CircularReferenceError, got %T: %v", err, err)
	}
}
