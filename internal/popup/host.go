package popup

import (
	"crypto/rand"
	"log/slog"
	"math"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/kestrelui/overlay/internal/geom"
	"github.com/kestrelui/overlay/internal/platform"
	"github.com/kestrelui/overlay/internal/visual"
)

// ParentSurface is the top-level window that logically owns a popup. It is
// both a visual (for focus-restoration fallback) and the platform-side
// coordinate/screen authority the positioner works against.
type ParentSurface interface {
	visual.Visual
	platform.ParentTopLevel
}

// Sizing holds the owner-driven size constraints of a popup host. Width and
// Height are explicit sizes, NaN when unset. Explicit sizes are applied
// before the min/max clamp, so min/max always wins over an explicit size
// that violates them.
type Sizing struct {
	Width, Height       float64
	MinWidth, MinHeight float64
	MaxWidth, MaxHeight float64
}

// DefaultSizing returns fully unconstrained sizing: no explicit size, zero
// minimums, infinite maximums.
func DefaultSizing() Sizing {
	return Sizing{
		Width:     math.NaN(),
		Height:    math.NaN(),
		MaxWidth:  math.Inf(1),
		MaxHeight: math.Inf(1),
	}
}

// ShadowChangedFunc observes shadow-hint changes with the old and new value.
type ShadowChangedFunc func(old, new bool)

// Host is a popup's top-level surface: the visual-tree root hosted in its
// own platform window. It owns measurement and arrangement of its single
// child, tracks the arranged size, and drives repositioning whenever the
// size or the stored position request changes.
//
// A host backs exactly one shown/closed popup cycle and is the exclusive
// owner of its platform window; Dispose releases the window exactly once.
// All methods run on the UI thread.
type Host struct {
	id     string
	logger *slog.Logger

	parent     ParentSurface
	win        platform.Window
	positioner *Positioner

	content   visual.Layoutable
	flow      visual.FlowDirection
	transform geom.Transform
	sizing    Sizing

	request     *PositionRequest
	currentSize geom.Size
	sized       bool
	dirty       bool

	desired  geom.Size
	shadow   bool
	onShadow ShadowChangedFunc

	disposed bool
}

// NewHost creates a host for a popup logically owned by parent, backed by
// the given platform window. The parent is fixed for the host's lifetime.
// The window-manager shadow hint starts enabled.
func NewHost(parent ParentSurface, win platform.Window, logger *slog.Logger) *Host {
	if logger == nil {
		logger = slog.Default()
	}
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		// rand.Reader does not fail in practice; fall back to a zero ID.
		id = ulid.ULID{}
	}

	h := &Host{
		id:        id.String(),
		logger:    logger.With("popup", id.String()),
		parent:    parent,
		win:       win,
		transform: geom.Identity(),
		sizing:    DefaultSizing(),
		shadow:    true,
	}
	h.positioner = NewPositioner(win, h.logger)
	win.SetShadowHint(true)
	return h
}

// ID returns the host's stable identifier, used to correlate log records.
func (h *Host) ID() string {
	return h.id
}

// Parent returns the top-level surface that logically owns this popup.
func (h *Host) Parent() ParentSurface {
	return h.parent
}

// Content returns the hosted child, or nil.
func (h *Host) Content() visual.Layoutable {
	return h.content
}

// SetContent replaces the hosted child. The previous child is detached; its
// state remains owned by the caller.
func (h *Host) SetContent(child visual.Layoutable) {
	h.content = child
}

// FlowDirection returns the host's reading direction.
func (h *Host) FlowDirection() visual.FlowDirection {
	return h.flow
}

// SetFlowDirection sets the reading direction used for anchor/gravity
// mirroring and marks the position dirty.
func (h *Host) SetFlowDirection(flow visual.FlowDirection) {
	if h.flow == flow {
		return
	}
	h.flow = flow
	h.dirty = true
	h.updatePosition()
}

// Transform returns the render transform.
func (h *Host) Transform() geom.Transform {
	return h.transform
}

// SetTransform sets a render transform applied independent of the layout
// position.
func (h *Host) SetTransform(t geom.Transform) {
	h.transform = t
}

// Sizing returns the current size constraints.
func (h *Host) Sizing() Sizing {
	return h.sizing
}

// SetSizing replaces the size constraints. Takes effect at the next measure
// pass, which the owner drives.
func (h *Host) SetSizing(s Sizing) {
	h.sizing = s
}

// Measure computes the host's desired size for the given available size.
// Unconstrained axes are replaced by the platform's maximum-auto-size hint
// before the child is measured. The child's desired size is then overridden
// by any explicit Width/Height and clamped into the min/max range, in that
// order, so the clamp wins over a conflicting explicit size.
func (h *Host) Measure(available geom.Size) geom.Size {
	max := h.win.MaxAutoSizeHint()
	constrained := available
	if math.IsInf(constrained.Width, 1) {
		constrained.Width = max.Width
	}
	if math.IsInf(constrained.Height, 1) {
		constrained.Height = max.Height
	}

	var measured geom.Size
	if h.content != nil {
		h.content.Measure(constrained)
		measured = h.content.DesiredSize()
	}

	if !math.IsNaN(h.sizing.Width) {
		measured.Width = h.sizing.Width
	}
	if !math.IsNaN(h.sizing.Height) {
		measured.Height = h.sizing.Height
	}
	measured.Width = clamp(measured.Width, h.sizing.MinWidth, h.sizing.MaxWidth)
	measured.Height = clamp(measured.Height, h.sizing.MinHeight, h.sizing.MaxHeight)

	h.desired = measured
	return measured
}

// DesiredSize returns the size computed by the last measure pass.
func (h *Host) DesiredSize() geom.Size {
	return h.desired
}

// Arrange lays out the child at the given final size. A size distinct from
// the previously arranged one marks the position dirty and triggers exactly
// one positioning attempt with the stored request; an unchanged size causes
// none. The host never grows or shrinks itself here: the input size is
// returned unchanged.
func (h *Host) Arrange(final geom.Size) geom.Size {
	if h.content != nil {
		h.content.Arrange(geom.RectFromSize(final))
	}

	if final != h.currentSize || !h.sized {
		h.currentSize = final
		h.sized = true
		h.dirty = true
	}
	// Also retries a pending request that was configured before any size
	// existed, or whose anchor was detached at the time.
	h.updatePosition()
	return final
}

// ConfigurePosition stores the request and attempts an immediate positioning
// update. The last written request always wins. Calling before any size is
// known is legal: the update is deferred and re-attempted at the next
// arrange pass.
func (h *Host) ConfigurePosition(req *PositionRequest) {
	h.request = req
	h.dirty = true
	h.updatePosition()
}

// updatePosition runs one positioning pass when there is something to do.
// The dirty flag is cleared only by a successful pass, so a request set
// after the last successful update is never silently dropped: a skipped
// pass (no size yet, detached anchor) stays pending.
func (h *Host) updatePosition() {
	if h.disposed || !h.dirty || h.request == nil || !h.sized {
		return
	}
	if h.positioner.Update(h.parent, h.request, h.currentSize, h.flow) {
		h.dirty = false
	}
}

// ShadowHint reports whether the window-manager shadow is requested.
func (h *Host) ShadowHint() bool {
	return h.shadow
}

// SetShadowHint updates the window-manager shadow hint, propagates it to the
// platform window and notifies the registered observer with the old and new
// value. Unchanged values are ignored.
func (h *Host) SetShadowHint(enabled bool) {
	if h.shadow == enabled {
		return
	}
	old := h.shadow
	h.shadow = enabled
	if !h.disposed {
		h.win.SetShadowHint(enabled)
	}
	if h.onShadow != nil {
		h.onShadow(old, enabled)
	}
}

// OnShadowHintChanged registers the observer for shadow-hint changes.
func (h *Host) OnShadowHintChanged(fn ShadowChangedFunc) {
	h.onShadow = fn
}

// Show makes the popup window visible.
func (h *Host) Show() {
	if h.disposed {
		return
	}
	h.win.Show()
}

// Hide removes the popup window from the screen without disposing it.
func (h *Host) Hide() {
	if h.disposed {
		return
	}
	h.win.Hide()
}

// TakeFocus delegates to the platform window's input-focus primitive. No-op
// once the window is gone.
func (h *Host) TakeFocus() {
	if h.disposed {
		return
	}
	h.win.TakeFocus()
}

// Dispose releases the platform window exactly once. Safe to call multiple
// times; subsequent calls are no-ops.
func (h *Host) Dispose() {
	if h.disposed {
		return
	}
	h.disposed = true
	h.win.Dispose()
	h.logger.Debug("popup host disposed")
}

// Disposed reports whether the host has released its platform window.
func (h *Host) Disposed() bool {
	return h.disposed
}

// clamp restricts v into [min, max]. The minimum wins when the range is
// inverted.
func clamp(v, min, max float64) float64 {
	if v > max {
		v = max
	}
	if v < min {
		v = min
	}
	return v
}
