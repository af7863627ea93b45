// Package visual defines the boundary between the overlay windowing core and
// the generic layout engine. The layout engine itself lives outside this
// repository; the popup host participates in its measure/arrange pass through
// the Layoutable contract, and anchor targets are any Visual attached to a
// realized tree.
package visual

import "github.com/kestrelui/overlay/internal/geom"

// FlowDirection is the reading direction of the surface containing a popup.
// It decides which physical side "start" anchors resolve to.
type FlowDirection int

const (
	FlowLeftToRight FlowDirection = iota
	FlowRightToLeft
)

// String returns a human-readable name for the flow direction.
func (d FlowDirection) String() string {
	if d == FlowRightToLeft {
		return "rtl"
	}
	return "ltr"
}

// Visual is a node in a visual tree, seen from the windowing core.
type Visual interface {
	// Bounds returns the node's rectangle in the coordinate space of the
	// top-level surface that hosts it.
	Bounds() geom.Rect

	// Attached reports whether the node is currently part of a realized
	// visual tree. Positioning against a detached anchor is skipped.
	Attached() bool
}

// Control is a visual with a place in the logical tree. The logical parent
// drives styling inheritance and focus restoration, independent of the
// physical window hierarchy.
type Control interface {
	Visual

	// LogicalParent returns the logical parent control, or nil for roots.
	LogicalParent() Control
}

// Layoutable is the layout-pass contract for popup content. The layout
// engine calls Measure with an available size, reads DesiredSize, then calls
// Arrange with the final rectangle.
type Layoutable interface {
	Measure(available geom.Size)
	Arrange(final geom.Rect)
	DesiredSize() geom.Size
}
