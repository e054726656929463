package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ComponentKind discriminates the two child types a composition edge can
// point at.
type ComponentKind int

const (
	AtomicComponent ComponentKind = iota
	BundleComponent
)

// String method for ComponentKind enum
func (k ComponentKind) String() string {
	switch k {
	case AtomicComponent:
		return "AtomicUnit"
	case BundleComponent:
		return "Bundle"
	default:
		return "Unknown"
	}
}

// ComponentRef is a tagged reference to either an atomic unit or a bundle.
// Exactly one of the two IDs is set, selected by Kind.
type ComponentRef struct {
	Kind         ComponentKind
	AtomicUnitID AtomicUnitID
	BundleID     BundleID
}

// AtomicRef creates a reference to an atomic unit.
func AtomicRef(id AtomicUnitID) ComponentRef {
	return ComponentRef{Kind: AtomicComponent, AtomicUnitID: id}
}

// BundleRef creates a reference to a bundle.
func BundleRef(id BundleID) ComponentRef {
	return ComponentRef{Kind: BundleComponent, BundleID: id}
}

// Validate checks that the reference carries exactly the ID its kind selects.
func (r ComponentRef) Validate() error {
	switch r.Kind {
	case AtomicComponent:
		if r.AtomicUnitID == "" {
			return NewValidationError("atomic component reference has no atomic unit id")
		}
		if r.BundleID != "" {
			return NewValidationError("atomic component reference also carries bundle id %s", r.BundleID)
		}
	case BundleComponent:
		if r.BundleID == "" {
			return NewValidationError("bundle component reference has no bundle id")
		}
		if r.AtomicUnitID != "" {
			return NewValidationError("bundle component reference also carries atomic unit id %s", r.AtomicUnitID)
		}
	default:
		return NewValidationError("unknown component kind %d", int(r.Kind))
	}
	return nil
}

// String returns the referenced ID for display.
func (r ComponentRef) String() string {
	if r.Kind == AtomicComponent {
		return string(r.AtomicUnitID)
	}
	return string(r.BundleID)
}

// Composition represents one edge in the composition graph: a parent bundle
// contains Multiplier of the referenced child per one parent.
type Composition struct {
	ParentID   BundleID
	Child      ComponentRef
	Multiplier decimal.Decimal
}

// NewComposition creates a validated Composition edge. A zero multiplier is
// legal and contributes nothing during decomposition.
func NewComposition(parentID BundleID, child ComponentRef, multiplier decimal.Decimal) (*Composition, error) {
	if parentID == "" {
		return nil, NewValidationError("composition parent id cannot be empty")
	}
	if err := child.Validate(); err != nil {
		return nil, err
	}
	if child.Kind == BundleComponent && child.BundleID == parentID {
		return nil, NewValidationError("bundle %s cannot contain itself", parentID)
	}
	if multiplier.Sign() < 0 {
		return nil, NewValidationError("composition multiplier cannot be negative, got %s", multiplier)
	}

	return &Composition{ParentID: parentID, Child: child, Multiplier: multiplier}, nil
}

// Bundle represents a named assembly. Its contents are the composition edges
// whose parent it is; a bundle with no edges is invalid for planning.
type Bundle struct {
	ID   BundleID
	Name string
}

// NewBundle creates a validated Bundle.
func NewBundle(id BundleID, name string) (*Bundle, error) {
	if id == "" {
		return nil, NewValidationError("bundle id cannot be empty")
	}
	if name == "" {
		return nil, NewValidationError("bundle name cannot be empty")
	}
	return &Bundle{ID: id, Name: name}, nil
}

// EventSelection represents "N of this bundle or atomic unit needed" for a
// planning event. Quantity is a positive integer.
type EventSelection struct {
	Target   ComponentRef
	Quantity int64
}

// NewEventSelection creates a validated EventSelection.
func NewEventSelection(target ComponentRef, quantity int64) (*EventSelection, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, NewValidationError("selection quantity must be positive, got %d", quantity)
	}
	return &EventSelection{Target: target, Quantity: quantity}, nil
}

// PlanningEvent represents one planning occasion (an order, a market day)
// with its top-level selections.
type PlanningEvent struct {
	ID         uuid.UUID
	Name       string
	Date       time.Time
	Selections []EventSelection
}

// NewPlanningEvent creates a PlanningEvent with a fresh identifier.
func NewPlanningEvent(name string, date time.Time, selections []EventSelection) (*PlanningEvent, error) {
	if name == "" {
		return nil, NewValidationError("planning event name cannot be empty")
	}
	return &PlanningEvent{
		ID:         uuid.New(),
		Name:       name,
		Date:       date,
		Selections: selections,
	}, nil
}
