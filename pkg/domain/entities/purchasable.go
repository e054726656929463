package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchasePrice is one record in a source's purchase-price history: what one
// package cost at a point in time.
type PurchasePrice struct {
	Price      decimal.Decimal
	RecordedAt time.Time
}

// PurchasableSource represents a specific purchasable package of an
// ingredient. At most one source per ingredient is marked preferred. Sources
// are used only for shortfall and estimate pricing; the costing engine never
// mutates them.
type PurchasableSource struct {
	ID           SourceID
	IngredientID IngredientID
	Name         string
	PackageSize  decimal.Decimal
	PackageUnit  Unit
	Preferred    bool
	Prices       []PurchasePrice
}

// NewPurchasableSource creates a validated PurchasableSource.
func NewPurchasableSource(id SourceID, ingredientID IngredientID, name string, packageSize decimal.Decimal, packageUnit Unit, preferred bool) (*PurchasableSource, error) {
	if id == "" {
		return nil, NewValidationError("source id cannot be empty")
	}
	if ingredientID == "" {
		return nil, NewValidationError("source ingredient id cannot be empty")
	}
	if name == "" {
		return nil, NewValidationError("source name cannot be empty")
	}
	if packageSize.Sign() <= 0 {
		return nil, NewValidationError("source package size must be positive, got %s", packageSize)
	}
	if _, err := packageUnit.Class(); err != nil {
		return nil, err
	}

	return &PurchasableSource{
		ID:           id,
		IngredientID: ingredientID,
		Name:         name,
		PackageSize:  packageSize,
		PackageUnit:  packageUnit,
		Preferred:    preferred,
	}, nil
}

// RecordPrice appends a purchase-price record.
func (s *PurchasableSource) RecordPrice(price decimal.Decimal, recordedAt time.Time) error {
	if price.Sign() < 0 {
		return NewValidationError("purchase price cannot be negative, got %s", price)
	}
	s.Prices = append(s.Prices, PurchasePrice{Price: price, RecordedAt: recordedAt})
	return nil
}

// HasPriceHistory reports whether any purchase price has been recorded.
func (s *PurchasableSource) HasPriceHistory() bool {
	return len(s.Prices) > 0
}

// LatestPrice returns the most recently recorded package price.
func (s *PurchasableSource) LatestPrice() (PurchasePrice, error) {
	if len(s.Prices) == 0 {
		return PurchasePrice{}, NewValidationError("source %s has no price history", s.ID)
	}
	latest := s.Prices[0]
	for _, p := range s.Prices[1:] {
		if p.RecordedAt.After(latest.RecordedAt) {
			latest = p
		}
	}
	return latest, nil
}

// UnitPrice returns the latest package price divided by the package size,
// i.e. the price per one package unit.
func (s *PurchasableSource) UnitPrice() (decimal.Decimal, error) {
	latest, err := s.LatestPrice()
	if err != nil {
		return decimal.Zero, err
	}
	return latest.Price.Div(s.PackageSize), nil
}
