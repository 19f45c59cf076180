package port

import "github.com/bnema/paneshell/internal/domain/entity"

// Constraint pins one edge of Item to one edge of Target.
// Target is either the owner view or a sibling of Item.
type Constraint struct {
	Item       View
	ItemEdge   entity.Edge
	Target     View
	TargetEdge entity.Edge
}

// LayoutEngine installs positioning constraints.
type LayoutEngine interface {
	// Pin installs c on owner, the common ancestor of both views.
	Pin(owner View, c Constraint)
	// SetHeight fixes the height of v.
	SetHeight(v View, height float64)
}
