package popup

import (
	"log/slog"

	"github.com/kestrelui/overlay/internal/geom"
	"github.com/kestrelui/overlay/internal/platform"
	"github.com/kestrelui/overlay/internal/visual"
)

// Positioner turns a position request plus the current screen state into a
// concrete rectangle for one platform window. It is bound to the window for
// the window's lifetime; the externally visible effect of Update is the
// window's new position and size.
//
// Update is re-entrant and idempotent: identical inputs produce the same
// rectangle, and a recomputed rectangle equal to the last emitted one skips
// the platform call so repeated updates cause no flicker.
type Positioner struct {
	win    platform.Window
	logger *slog.Logger

	lastRect geom.Rect
	hasLast  bool
}

// NewPositioner creates a positioner driving the given platform window.
func NewPositioner(win platform.Window, logger *slog.Logger) *Positioner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Positioner{win: win, logger: logger}
}

// Update computes and applies the window rectangle for the request at the
// given popup size. It returns true when a rectangle was emitted (or
// confirmed unchanged) and false when the pass was skipped, e.g. because the
// anchor target is not attached to a realized visual tree. Skipping leaves
// the window at its last-known position.
func (p *Positioner) Update(parent platform.ParentTopLevel, req *PositionRequest, size geom.Size, flow visual.FlowDirection) bool {
	anchorRect, ok := resolveAnchorRect(parent, req)
	if !ok {
		p.logger.Debug("positioning skipped, anchor not resolvable")
		return false
	}

	anchor, gravity := req.effectiveAnchorGravity()

	if req.Placement == PlacementPointer {
		if pos, okPtr := parent.PointerPosition(); okPtr {
			anchorRect = geom.NewRect(pos.X, pos.Y, 0, 0)
		} else {
			// Degraded but non-fatal: attach to the anchor rect's top-left.
			anchor = EdgeTop | EdgeLeft
			gravity = EdgeBottom | EdgeRight
			p.logger.Debug("pointer position unavailable, using anchor rect")
		}
	}

	// The only direction-sensitive step: RTL mirrors the horizontal flags.
	if flow == visual.FlowRightToLeft {
		anchor = anchor.MirrorHorizontal()
		gravity = gravity.MirrorHorizontal()
	}

	params := PositionerParameters{
		AnchorRect:           anchorRect,
		Size:                 size,
		Anchor:               anchor,
		Gravity:              gravity,
		ConstraintAdjustment: req.ConstraintAdjustment,
		Offset:               req.Offset,
	}

	var rect geom.Rect
	if req.Custom != nil {
		rect = req.Custom(params)
	} else {
		bounds, haveBounds := screenFor(parent, anchorRect)
		rect = position(params, bounds, haveBounds)
	}

	if p.hasLast && rect == p.lastRect {
		return true
	}
	p.win.SetBounds(rect)
	p.lastRect = rect
	p.hasLast = true

	p.logger.Debug("popup positioned",
		"x", rect.X, "y", rect.Y,
		"width", rect.Width, "height", rect.Height,
		"anchor", anchor.String(), "gravity", gravity.String(),
	)
	return true
}

// resolveAnchorRect produces the anchor rectangle in screen coordinates. An
// explicit request rect always wins over the target's bounds; it is taken in
// target-local coordinates when a target exists, otherwise in parent
// top-level coordinates.
func resolveAnchorRect(parent platform.ParentTopLevel, req *PositionRequest) (geom.Rect, bool) {
	var local geom.Rect
	switch {
	case req.Target != nil:
		if !req.Target.Attached() {
			return geom.Rect{}, false
		}
		bounds := req.Target.Bounds()
		if req.Rect != nil {
			local = req.Rect.Translate(geom.Vec(bounds.X, bounds.Y))
		} else {
			local = bounds
		}
	case req.Rect != nil:
		local = *req.Rect
	default:
		return geom.Rect{}, false
	}

	origin := parent.PointToScreen(local.Position())
	return geom.NewRect(origin.X, origin.Y, local.Width, local.Height), true
}

// screenFor returns the working area of the screen containing the anchor
// rectangle's center, falling back to the first known screen. ok is false
// when no screens are known, in which case overflow adjustment is skipped.
func screenFor(parent platform.ParentTopLevel, anchorRect geom.Rect) (geom.Rect, bool) {
	screens := parent.Screens()
	if len(screens) == 0 {
		return geom.Rect{}, false
	}
	center := anchorRect.Center()
	for _, s := range screens {
		if s.Bounds.Contains(center) {
			return s.WorkingArea, true
		}
	}
	return screens[0].WorkingArea, true
}

// position runs the built-in placement algorithm: anchor-point selection,
// gravity-directed extent, offset, then per-axis overflow resolution.
func position(params PositionerParameters, bounds geom.Rect, haveBounds bool) geom.Rect {
	x, w := positionAxis(axisInput{
		anchorLow:  params.AnchorRect.X,
		anchorHigh: params.AnchorRect.Right(),
		size:       params.Size.Width,
		offset:     params.Offset.X,
		lowFlag:    params.Anchor.Has(EdgeLeft),
		highFlag:   params.Anchor.Has(EdgeRight),
		growLow:    params.Gravity.Has(EdgeLeft),
		growHigh:   params.Gravity.Has(EdgeRight),
		flip:       params.ConstraintAdjustment.Has(AdjustFlipX),
		slide:      params.ConstraintAdjustment.Has(AdjustSlideX),
		resize:     params.ConstraintAdjustment.Has(AdjustResizeX),
		boundLow:   bounds.X,
		boundHigh:  bounds.Right(),
		haveBounds: haveBounds,
	})
	y, h := positionAxis(axisInput{
		anchorLow:  params.AnchorRect.Y,
		anchorHigh: params.AnchorRect.Bottom(),
		size:       params.Size.Height,
		offset:     params.Offset.Y,
		lowFlag:    params.Anchor.Has(EdgeTop),
		highFlag:   params.Anchor.Has(EdgeBottom),
		growLow:    params.Gravity.Has(EdgeTop),
		growHigh:   params.Gravity.Has(EdgeBottom),
		flip:       params.ConstraintAdjustment.Has(AdjustFlipY),
		slide:      params.ConstraintAdjustment.Has(AdjustSlideY),
		resize:     params.ConstraintAdjustment.Has(AdjustResizeY),
		boundLow:   bounds.Y,
		boundHigh:  bounds.Bottom(),
		haveBounds: haveBounds,
	})
	return geom.NewRect(x, y, w, h)
}

// axisInput carries one axis of the placement problem. "low" is left/top,
// "high" is right/bottom.
type axisInput struct {
	anchorLow, anchorHigh float64 // anchor rect edges on this axis
	size                  float64 // popup extent on this axis
	offset                float64 // request offset component

	lowFlag, highFlag bool // anchor edge flags
	growLow, growHigh bool // gravity flags

	flip, slide, resize bool // adjustments present for this axis

	boundLow, boundHigh float64 // working-area edges
	haveBounds          bool
}

// positionAxis computes origin and extent on one axis, applying the present
// adjustments in fixed priority order: Flip, then Slide, then Resize. A flip
// whose mirrored position still overflows is reverted before the remaining
// adjustments run. With no adjustment present the overflow is left as-is.
func positionAxis(in axisInput) (origin, extent float64) {
	origin = axisOrigin(in, in.lowFlag, in.highFlag, in.growLow, in.growHigh, in.offset)
	extent = in.size

	if !in.haveBounds {
		return origin, extent
	}
	fits := func(o, e float64) bool {
		return o >= in.boundLow && o+e <= in.boundHigh
	}
	if fits(origin, extent) {
		return origin, extent
	}

	if in.flip {
		// Mirror anchor edge, gravity and offset, then recompute.
		flipped := axisOrigin(in, in.highFlag, in.lowFlag, in.growHigh, in.growLow, -in.offset)
		if fits(flipped, extent) {
			return flipped, extent
		}
	}

	if in.slide && !fits(origin, extent) {
		// Translate within bounds, size preserved. When the popup is larger
		// than the bound, pin it to the low edge.
		if origin+extent > in.boundHigh {
			origin = in.boundHigh - extent
		}
		if origin < in.boundLow {
			origin = in.boundLow
		}
	}

	if in.resize && !fits(origin, extent) {
		// Trim the overflowing sides only, preserving the anchor-side edge.
		high := origin + extent
		if high > in.boundHigh {
			high = in.boundHigh
		}
		if origin < in.boundLow {
			origin = in.boundLow
		}
		if high < origin {
			high = origin
		}
		extent = high - origin
	}

	return origin, extent
}

// axisOrigin places the popup on one axis: pick the anchor point from the
// anchor edge flags, then extend per gravity. No flag on either side means
// centered.
func axisOrigin(in axisInput, lowFlag, highFlag, growLow, growHigh bool, offset float64) float64 {
	var point float64
	switch {
	case lowFlag && !highFlag:
		point = in.anchorLow
	case highFlag && !lowFlag:
		point = in.anchorHigh
	default:
		point = (in.anchorLow + in.anchorHigh) / 2
	}

	var origin float64
	switch {
	case growLow && !growHigh:
		origin = point - in.size
	case growHigh && !growLow:
		origin = point
	default:
		origin = point - in.size/2
	}
	return origin + offset
}
