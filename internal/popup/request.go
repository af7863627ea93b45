package popup

import (
	"strings"

	"github.com/kestrelui/overlay/internal/geom"
	"github.com/kestrelui/overlay/internal/visual"
)

// Placement selects where a popup appears relative to its anchor.
type Placement int

const (
	// PlacementPointer places the popup at the current pointer location.
	// When the platform cannot report one, the positioner falls back to the
	// top-left corner of the anchor rectangle.
	PlacementPointer Placement = iota

	// PlacementTop centers the popup above the anchor.
	PlacementTop
	// PlacementTopStart places the popup above the anchor, start edges aligned.
	PlacementTopStart
	// PlacementTopEnd places the popup above the anchor, end edges aligned.
	PlacementTopEnd

	// PlacementBottom centers the popup below the anchor.
	PlacementBottom
	// PlacementBottomStart places the popup below the anchor, start edges aligned.
	PlacementBottomStart
	// PlacementBottomEnd places the popup below the anchor, end edges aligned.
	PlacementBottomEnd

	// PlacementLeft centers the popup on the anchor's left side.
	PlacementLeft
	// PlacementRight centers the popup on the anchor's right side.
	PlacementRight

	// PlacementCenter centers the popup over the anchor rectangle.
	PlacementCenter

	// PlacementAnchorAndGravity uses the request's explicit anchor and
	// gravity flags unchanged.
	PlacementAnchorAndGravity
)

var placementNames = map[Placement]string{
	PlacementPointer:          "pointer",
	PlacementTop:              "top",
	PlacementTopStart:         "top-start",
	PlacementTopEnd:           "top-end",
	PlacementBottom:           "bottom",
	PlacementBottomStart:      "bottom-start",
	PlacementBottomEnd:        "bottom-end",
	PlacementLeft:             "left",
	PlacementRight:            "right",
	PlacementCenter:           "center",
	PlacementAnchorAndGravity: "anchor-and-gravity",
}

// String returns a human-readable name for the placement.
func (p Placement) String() string {
	if s, ok := placementNames[p]; ok {
		return s
	}
	return "unknown"
}

// Placements returns every defined placement value.
func Placements() []Placement {
	return []Placement{
		PlacementPointer,
		PlacementTop, PlacementTopStart, PlacementTopEnd,
		PlacementBottom, PlacementBottomStart, PlacementBottomEnd,
		PlacementLeft, PlacementRight,
		PlacementCenter, PlacementAnchorAndGravity,
	}
}

// Edges is a set of anchor-rectangle edge flags. As an anchor it selects the
// point on the anchor rectangle to attach to; as a gravity it selects the
// direction the popup extends away from that point. No horizontal (or
// vertical) flag means "centered" on that axis.
type Edges uint8

const (
	EdgeLeft Edges = 1 << iota
	EdgeRight
	EdgeTop
	EdgeBottom

	EdgeNone Edges = 0
)

// Has reports whether all flags in e are set.
func (e Edges) Has(flags Edges) bool {
	return e&flags == flags
}

// MirrorHorizontal swaps the Left and Right flags. Used for right-to-left
// flow; the vertical flags are never direction-sensitive.
func (e Edges) MirrorHorizontal() Edges {
	m := e &^ (EdgeLeft | EdgeRight)
	if e.Has(EdgeLeft) {
		m |= EdgeRight
	}
	if e.Has(EdgeRight) {
		m |= EdgeLeft
	}
	return m
}

// String returns a human-readable flag list, e.g. "top|left".
func (e Edges) String() string {
	if e == EdgeNone {
		return "none"
	}
	var parts []string
	if e.Has(EdgeTop) {
		parts = append(parts, "top")
	}
	if e.Has(EdgeBottom) {
		parts = append(parts, "bottom")
	}
	if e.Has(EdgeLeft) {
		parts = append(parts, "left")
	}
	if e.Has(EdgeRight) {
		parts = append(parts, "right")
	}
	return strings.Join(parts, "|")
}

// Adjustment is the set of policies allowed for resolving popup/screen
// overflow. Per axis the positioner tries Flip, then Slide, then Resize;
// only flags present in the set are attempted. An empty set leaves overflow
// uncorrected, which is permitted behavior rather than an error.
type Adjustment uint8

const (
	AdjustFlipX Adjustment = 1 << iota
	AdjustSlideX
	AdjustResizeX
	AdjustFlipY
	AdjustSlideY
	AdjustResizeY

	AdjustNone Adjustment = 0
	AdjustAll             = AdjustFlipX | AdjustSlideX | AdjustResizeX |
		AdjustFlipY | AdjustSlideY | AdjustResizeY
)

// Has reports whether all flags in a are set.
func (a Adjustment) Has(flags Adjustment) bool {
	return a&flags == flags
}

// PositionerParameters are the fully resolved inputs handed to a custom
// positioner: everything the built-in algorithm would have worked from.
type PositionerParameters struct {
	// AnchorRect is the resolved anchor rectangle in screen coordinates.
	AnchorRect geom.Rect
	// Size is the popup size being positioned.
	Size geom.Size
	// Anchor and Gravity are the effective flags after placement derivation
	// and flow-direction mirroring.
	Anchor  Edges
	Gravity Edges
	// ConstraintAdjustment is the overflow policy from the request.
	ConstraintAdjustment Adjustment
	// Offset is the request offset, in pixels.
	Offset geom.Vector
}

// CustomPositioner overrides the built-in placement algorithm. It receives
// the resolved parameters and returns the final window rectangle in screen
// coordinates.
type CustomPositioner func(PositionerParameters) geom.Rect

// PositionRequest is an immutable description of where a popup should appear
// relative to an anchor, independent of platform. Build one with NewRequest;
// the zero value is not meaningful. The Target must outlive the request.
type PositionRequest struct {
	// Target is the anchor visual. It must be attached to a realized visual
	// tree by the time the request is consumed; a detached target causes the
	// positioning pass to be skipped silently.
	Target visual.Visual

	// Placement selects the anchor/gravity derivation. Directional values
	// map through a total table; PlacementAnchorAndGravity passes the
	// explicit Anchor/Gravity fields through unchanged.
	Placement Placement

	// Offset displaces the popup from its computed position, in pixels.
	Offset geom.Vector

	// Anchor and Gravity override the placement-derived flags when set.
	// EdgeNone means "use the placement default".
	Anchor  Edges
	Gravity Edges

	// ConstraintAdjustment governs how screen overflow is resolved.
	ConstraintAdjustment Adjustment

	// Rect overrides the anchor rectangle, in target-local coordinates.
	// When set it always wins over the target's own bounds.
	Rect *geom.Rect

	// Custom replaces the built-in placement algorithm entirely.
	Custom CustomPositioner
}

// RequestOption configures a PositionRequest at construction.
type RequestOption func(*PositionRequest)

// WithOffset sets the pixel offset from the computed position.
func WithOffset(v geom.Vector) RequestOption {
	return func(r *PositionRequest) { r.Offset = v }
}

// WithAnchor sets explicit anchor-edge flags.
func WithAnchor(e Edges) RequestOption {
	return func(r *PositionRequest) { r.Anchor = e }
}

// WithGravity sets explicit gravity flags.
func WithGravity(e Edges) RequestOption {
	return func(r *PositionRequest) { r.Gravity = e }
}

// WithConstraintAdjustment sets the overflow policy.
func WithConstraintAdjustment(a Adjustment) RequestOption {
	return func(r *PositionRequest) { r.ConstraintAdjustment = a }
}

// WithAnchorRect overrides the anchor rectangle, in target-local coordinates.
func WithAnchorRect(rect geom.Rect) RequestOption {
	return func(r *PositionRequest) { r.Rect = &rect }
}

// WithCustomPositioner replaces the built-in placement algorithm.
func WithCustomPositioner(fn CustomPositioner) RequestOption {
	return func(r *PositionRequest) { r.Custom = fn }
}

// NewRequest builds a position request for the given anchor target and
// placement. Defaults: zero offset, no explicit anchor/gravity (placement
// decides), all constraint adjustments enabled, no anchor-rect override.
func NewRequest(target visual.Visual, placement Placement, opts ...RequestOption) *PositionRequest {
	r := &PositionRequest{
		Target:               target,
		Placement:            placement,
		ConstraintAdjustment: AdjustAll,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// anchorGravity is one row of the placement derivation table.
type anchorGravity struct {
	anchor  Edges
	gravity Edges
}

// placementTable maps every placement to its canonical anchor/gravity pair.
// The table must stay total: each Placements() value has a row, including
// Center (fully centered) and AnchorAndGravity (explicit passthrough, the
// zero row here is ignored). PlacementPointer anchors the popup's top-left
// to the pointer point.
var placementTable = map[Placement]anchorGravity{
	PlacementPointer:          {EdgeBottom | EdgeRight, EdgeBottom | EdgeRight},
	PlacementTop:              {EdgeTop, EdgeTop},
	PlacementTopStart:         {EdgeTop | EdgeLeft, EdgeTop | EdgeRight},
	PlacementTopEnd:           {EdgeTop | EdgeRight, EdgeTop | EdgeLeft},
	PlacementBottom:           {EdgeBottom, EdgeBottom},
	PlacementBottomStart:      {EdgeBottom | EdgeLeft, EdgeBottom | EdgeRight},
	PlacementBottomEnd:        {EdgeBottom | EdgeRight, EdgeBottom | EdgeLeft},
	PlacementLeft:             {EdgeLeft, EdgeLeft},
	PlacementRight:            {EdgeRight, EdgeRight},
	PlacementCenter:           {EdgeNone, EdgeNone},
	PlacementAnchorAndGravity: {EdgeNone, EdgeNone},
}

// effectiveAnchorGravity resolves the anchor/gravity pair for a request:
// explicit flags win, otherwise the placement table decides. For
// PlacementAnchorAndGravity the explicit values pass through as-is, even
// when EdgeNone (fully centered).
func (r *PositionRequest) effectiveAnchorGravity() (anchor, gravity Edges) {
	row := placementTable[r.Placement]
	if r.Placement == PlacementAnchorAndGravity {
		return r.Anchor, r.Gravity
	}
	anchor, gravity = row.anchor, row.gravity
	if r.Anchor != EdgeNone {
		anchor = r.Anchor
	}
	if r.Gravity != EdgeNone {
		gravity = r.Gravity
	}
	return anchor, gravity
}
