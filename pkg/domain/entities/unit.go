package entities

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Unit represents a unit of measure for ingredient quantities.
type Unit string

const (
	Gram       Unit = "g"
	Kilogram   Unit = "kg"
	Milliliter Unit = "ml"
	Liter      Unit = "l"
	Piece      Unit = "pc"
)

// UnitClass represents the measurement class of a unit.
type UnitClass int

const (
	Mass UnitClass = iota
	Volume
	Count
)

// String method for UnitClass enum
func (c UnitClass) String() string {
	switch c {
	case Mass:
		return "Mass"
	case Volume:
		return "Volume"
	case Count:
		return "Count"
	default:
		return "Unknown"
	}
}

var unitClasses = map[Unit]UnitClass{
	Gram:       Mass,
	Kilogram:   Mass,
	Milliliter: Volume,
	Liter:      Volume,
	Piece:      Count,
}

// Factors to the base unit of each class (grams, milliliters, pieces).
var unitFactors = map[Unit]decimal.Decimal{
	Gram:       decimal.NewFromInt(1),
	Kilogram:   decimal.NewFromInt(1000),
	Milliliter: decimal.NewFromInt(1),
	Liter:      decimal.NewFromInt(1000),
	Piece:      decimal.NewFromInt(1),
}

// ParseUnit parses a unit symbol from its string form.
func ParseUnit(s string) (Unit, error) {
	u := Unit(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := unitClasses[u]; !ok {
		return "", NewValidationError("unknown unit: %q", s)
	}
	return u, nil
}

// Class returns the measurement class of the unit.
func (u Unit) Class() (UnitClass, error) {
	class, ok := unitClasses[u]
	if !ok {
		return Count, NewValidationError("unknown unit: %q", string(u))
	}
	return class, nil
}

// ConvertQuantity converts a quantity between units. Conversions within one
// class scale by the units' base factors. Conversions crossing the mass and
// volume classes require a positive density in grams per milliliter; a
// missing density is a validation error, never a silent zero. Count units
// convert only to themselves.
func ConvertQuantity(qty decimal.Decimal, from, to Unit, density decimal.Decimal) (decimal.Decimal, error) {
	if from == to {
		return qty, nil
	}

	fromClass, err := from.Class()
	if err != nil {
		return decimal.Zero, err
	}
	toClass, err := to.Class()
	if err != nil {
		return decimal.Zero, err
	}

	// Scale to the base unit of the source class first.
	base := qty.Mul(unitFactors[from])

	switch {
	case fromClass == toClass:
		// Same class: pure factor conversion.
	case fromClass == Volume && toClass == Mass:
		if density.Sign() <= 0 {
			return decimal.Zero, NewValidationError(
				"conversion from %s to %s requires a density", from, to)
		}
		base = base.Mul(density) // ml -> g
	case fromClass == Mass && toClass == Volume:
		if density.Sign() <= 0 {
			return decimal.Zero, NewValidationError(
				"conversion from %s to %s requires a density", from, to)
		}
		base = base.Div(density) // g -> ml
	default:
		return decimal.Zero, NewValidationError(
			"cannot convert between %s and %s units", fromClass, toClass)
	}

	return base.Div(unitFactors[to]), nil
}
