package gtkshell

import (
	"log/slog"
	"unsafe"

	"github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/kestrelui/overlay/internal/geom"
	"github.com/kestrelui/overlay/internal/platform"
)

// TopLevel adapts a GTK application window into the parent-surface contract
// popups position against. It implements both visual.Visual and
// platform.ParentTopLevel.
type TopLevel struct {
	win    *gtk.Window
	logger *slog.Logger
}

// NewTopLevel wraps the given parent window.
func NewTopLevel(win *gtk.Window, logger *slog.Logger) *TopLevel {
	if logger == nil {
		logger = slog.Default()
	}
	return &TopLevel{win: win, logger: logger}
}

// Bounds returns the window's client rectangle in its own coordinate space.
func (t *TopLevel) Bounds() geom.Rect {
	return geom.NewRect(0, 0,
		float64(t.win.AllocatedWidth()),
		float64(t.win.AllocatedHeight()),
	)
}

// Attached reports whether the window is currently mapped.
func (t *TopLevel) Attached() bool {
	return t.win != nil && t.win.Mapped()
}

// Screens enumerates the monitors of the default display.
func (t *TopLevel) Screens() []platform.Screen {
	return displayScreens(t.logger)
}

// PointToScreen converts a point in this window's coordinate space to screen
// coordinates. Wayland never reveals the window's global position, so the
// window origin is treated as the screen origin; layer-shell margins are
// relative to the output either way.
func (t *TopLevel) PointToScreen(p geom.Point) geom.Point {
	return p
}

// PointerPosition reports no pointer: Wayland does not expose a global
// pointer location. Pointer placement degrades to the anchor rectangle.
func (t *TopLevel) PointerPosition() (geom.Point, bool) {
	return geom.Point{}, false
}

// displayScreens lists the monitors of the default GDK display. GTK4 exposes
// no work-area API, so the working area equals the monitor geometry.
func displayScreens(logger *slog.Logger) []platform.Screen {
	display := gdk.DisplayGetDefault()
	if display == nil {
		logger.Warn("no display available")
		return nil
	}

	monitors := display.Monitors()
	if monitors == nil {
		logger.Warn("no monitors list available")
		return nil
	}

	screens := make([]platform.Screen, 0, monitors.NItems())
	for i := uint(0); i < monitors.NItems(); i++ {
		obj := monitors.Item(i)
		if obj == nil {
			continue
		}
		mon := wrapMonitor(obj)
		if mon == nil {
			continue
		}
		g := mon.Geometry()
		rect := geom.NewRect(
			float64(g.X()), float64(g.Y()),
			float64(g.Width()), float64(g.Height()),
		)
		screens = append(screens, platform.Screen{
			Bounds:      rect,
			WorkingArea: rect,
		})
	}
	return screens
}

// wrapMonitor wraps a coreglib.Object as a gdk.Monitor.
// Necessary because gotk4 doesn't expose its internal wrap function: the
// gdk.Monitor struct embeds a *coreglib.Object, so an equivalent layout is
// built and cast.
func wrapMonitor(obj *glib.Object) *gdk.Monitor {
	if obj == nil {
		return nil
	}
	type monitor struct {
		_ [0]func()
		*glib.Object
	}
	m := &monitor{Object: obj}
	return (*gdk.Monitor)(unsafe.Pointer(m))
}
