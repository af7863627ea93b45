// Package platform declares the capability surface the overlay core needs
// from a windowing backend. Backends vary widely: some let the toolkit place
// pixels directly, others (Wayland layer-shell) delegate placement to the
// compositor via anchor/margin protocols. The core only ever talks to these
// interfaces; internal/platform/gtkshell provides the GTK4 implementation.
package platform

import "github.com/kestrelui/overlay/internal/geom"

// Window is one platform top-level surface. A popup host is its exclusive
// owner and is responsible for calling Dispose exactly once.
type Window interface {
	// Show makes the window visible.
	Show()

	// Hide removes the window from the screen without destroying it.
	Hide()

	// SetBounds moves and resizes the window to the given screen rectangle.
	SetBounds(rect geom.Rect)

	// Bounds returns the window's current screen rectangle.
	Bounds() geom.Rect

	// MaxAutoSizeHint returns the largest size the window may auto-size to.
	// Used to replace unconstrained measure axes.
	MaxAutoSizeHint() geom.Size

	// SetShadowHint asks the window manager to draw (or not draw) a drop
	// shadow around the surface.
	SetShadowHint(enabled bool)

	// TakeFocus requests keyboard input focus for the window.
	TakeFocus()

	// Dispose destroys the platform resource. Further calls on the window
	// after Dispose are undefined; callers guard with their own state.
	Dispose()
}

// Screen describes one monitor.
type Screen struct {
	// Bounds is the full monitor rectangle in screen coordinates.
	Bounds geom.Rect

	// WorkingArea is Bounds minus reserved regions (panels, docks). Popup
	// overflow is resolved against this rectangle.
	WorkingArea geom.Rect
}

// ParentTopLevel is the top-level surface that logically owns a popup. It
// supplies the coordinate transform and screen state the positioner needs.
type ParentTopLevel interface {
	// Screens returns the currently known monitors. May be empty when the
	// backend cannot enumerate them; the positioner then skips clamping.
	Screens() []Screen

	// PointToScreen converts a point in this surface's coordinate space to
	// screen coordinates.
	PointToScreen(p geom.Point) geom.Point

	// PointerPosition returns the current pointer location in screen
	// coordinates. ok is false when the platform cannot report one (normal
	// under Wayland); pointer placement then degrades to the anchor rect.
	PointerPosition() (p geom.Point, ok bool)
}
