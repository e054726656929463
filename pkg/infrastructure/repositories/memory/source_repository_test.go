package memory

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"bakehouse/pkg/domain/entities"
)

func mustSource(t *testing.T, id entities.SourceID, ingredientID entities.IngredientID, preferred bool) *entities.PurchasableSource {
	t.Helper()
	source, err := entities.NewPurchasableSource(id, ingredientID, string(id),
		decimal.NewFromInt(1000), entities.Gram, preferred)
	if err != nil {
		t.Fatalf("Failed to create source: %v", err)
	}
	return source
}

func TestSourceRepository_GetSources(t *testing.T) {
	repo := NewSourceRepository()
	repo.AddSource(mustSource(t, "mill-direct", "flour", false))
	repo.AddSource(mustSource(t, "wholesale", "flour", true))
	repo.AddSource(mustSource(t, "dairy-coop", "butter", false))

	sources, err := repo.GetSources("flour")
	if err != nil {
		t.Fatalf("Failed to get sources: %v", err)
	}
	if len(sources) != 2 {
		t.Fatalf("Expected 2 sources, got %d", len(sources))
	}
	if sources[0].ID != "mill-direct" || sources[1].ID != "wholesale" {
		t.Errorf("Sources not in insertion order: %s, %s", sources[0].ID, sources[1].ID)
	}

	none, err := repo.GetSources("vanilla")
	if err != nil {
		t.Fatalf("Failed to get sources: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("Expected no sources for unknown ingredient, got %d", len(none))
	}
}

func TestSourceRepository_GetPreferredSource(t *testing.T) {
	repo := NewSourceRepository()
	repo.AddSource(mustSource(t, "mill-direct", "flour", false))
	repo.AddSource(mustSource(t, "wholesale", "flour", true))
	repo.AddSource(mustSource(t, "dairy-coop", "butter", false))

	preferred, err := repo.GetPreferredSource("flour")
	if err != nil {
		t.Fatalf("Failed to get preferred source: %v", err)
	}
	if preferred == nil || preferred.ID != "wholesale" {
		t.Errorf("Expected preferred source wholesale, got %+v", preferred)
	}

	// No source marked preferred is not an error.
	unmarked, err := repo.GetPreferredSource("butter")
	if err != nil {
		t.Fatalf("Failed to get preferred source: %v", err)
	}
	if unmarked != nil {
		t.Errorf("Expected nil when no source is preferred, got %+v", unmarked)
	}
}

func TestSourceRepository_LoadSources(t *testing.T) {
	repo := NewSourceRepository()
	source := mustSource(t, "wholesale", "flour", true)
	if err := source.RecordPrice(decimal.RequireFromString("22"), time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Failed to record price: %v", err)
	}

	if err := repo.LoadSources([]*entities.PurchasableSource{source}); err != nil {
		t.Fatalf("Failed to load sources: %v", err)
	}

	sources, err := repo.GetSources("flour")
	if err != nil {
		t.Fatalf("Failed to get sources: %v", err)
	}
	if len(sources) != 1 {
		t.Fatalf("Expected 1 source, got %d", len(sources))
	}
	if !sources[0].HasPriceHistory() {
		t.Error("Expected loaded source to keep its price history")
	}
}
