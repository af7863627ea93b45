// Package gtkshell implements the platform window capability on GTK4 with
// Wayland layer-shell. The compositor owns final placement, so SetBounds is
// expressed as layer-shell anchors plus margins rather than absolute moves.
package gtkshell

import (
	"log/slog"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/kestrelui/overlay/internal/config"
	"github.com/kestrelui/overlay/internal/geom"
)

// shadowClass is toggled on the surface for the window-manager shadow hint.
// Wayland has no shadow protocol, so the hint is rendered by the toolkit
// theme instead.
const shadowClass = "with-shadow"

// Window is a layer-shell popup surface implementing platform.Window.
type Window struct {
	win    *gtk.Window
	cfg    *config.Config
	logger *slog.Logger

	bounds    geom.Rect
	destroyed bool
}

// NewWindow creates an undecorated layer-shell surface owned by app,
// configured from cfg. The surface is created hidden; the popup host decides
// when to show it.
func NewWindow(app *gtk.Application, cfg *config.Config, logger *slog.Logger) *Window {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	w := &Window{
		cfg:    cfg,
		logger: logger,
	}

	w.win = gtk.NewWindow()
	w.win.SetApplication(app)
	w.win.SetDecorated(false)
	w.win.SetResizable(false)
	w.win.AddCSSClass("overlay-popup")
	w.win.AddCSSClass(colorSchemeClass())
	if cfg.Shadow.Enabled {
		w.win.AddCSSClass(shadowClass)
	}

	layershell.InitForWindow(w.win)
	layershell.SetLayer(w.win, layerFor(cfg.Surface.Layer))
	layershell.SetExclusiveZone(w.win, 0) // Don't reserve space
	layershell.SetKeyboardMode(w.win, layershell.LayerShellKeyboardModeNone)
	layershell.SetNamespace(w.win, cfg.Surface.Namespace)

	return w
}

// SetChildWidget sets the GTK widget rendered inside the surface.
func (w *Window) SetChildWidget(child gtk.Widgetter) {
	w.win.SetChild(child)
}

// Show presents the surface.
func (w *Window) Show() {
	if w.destroyed {
		return
	}
	w.win.Present()
}

// Hide removes the surface from the screen without destroying it.
func (w *Window) Hide() {
	if w.destroyed {
		return
	}
	w.win.SetVisible(false)
}

// SetBounds positions and sizes the surface. Position maps to top/left
// anchors with margins; the compositor applies them on the surface's output.
func (w *Window) SetBounds(rect geom.Rect) {
	if w.destroyed {
		return
	}
	layershell.SetAnchor(w.win, layershell.LayerShellEdgeTop, true)
	layershell.SetAnchor(w.win, layershell.LayerShellEdgeLeft, true)
	layershell.SetAnchor(w.win, layershell.LayerShellEdgeBottom, false)
	layershell.SetAnchor(w.win, layershell.LayerShellEdgeRight, false)
	layershell.SetMargin(w.win, layershell.LayerShellEdgeLeft, int(rect.X))
	layershell.SetMargin(w.win, layershell.LayerShellEdgeTop, int(rect.Y))
	w.win.SetDefaultSize(int(rect.Width), int(rect.Height))
	w.bounds = rect
}

// Bounds returns the last applied rectangle.
func (w *Window) Bounds() geom.Rect {
	return w.bounds
}

// MaxAutoSizeHint returns the largest size the surface may auto-size to:
// the geometry of the first monitor, or the configured fallback when no
// monitor is known.
func (w *Window) MaxAutoSizeHint() geom.Size {
	screens := displayScreens(w.logger)
	if len(screens) == 0 {
		return w.cfg.MaxAutoSize()
	}
	return screens[0].WorkingArea.Size()
}

// SetShadowHint toggles the shadow styling class on the surface.
func (w *Window) SetShadowHint(enabled bool) {
	if w.destroyed {
		return
	}
	if enabled {
		w.win.AddCSSClass(shadowClass)
	} else {
		w.win.RemoveCSSClass(shadowClass)
	}
}

// TakeFocus requests keyboard focus for the surface. Layer-shell surfaces
// only receive keys in on-demand mode, so the mode is switched first.
func (w *Window) TakeFocus() {
	if w.destroyed {
		return
	}
	layershell.SetKeyboardMode(w.win, layershell.LayerShellKeyboardModeOnDemand)
	w.win.Present()
}

// Dispose destroys the surface. Idempotent.
func (w *Window) Dispose() {
	if w.destroyed {
		return
	}
	w.destroyed = true
	w.win.Close()
	w.logger.Debug("layer-shell surface destroyed")
}

// layerFor maps the config layer name to the layer-shell constant.
func layerFor(name string) layershell.LayerShellLayer {
	if name == config.LayerOverlay {
		return layershell.LayerShellLayerOverlay
	}
	return layershell.LayerShellLayerTop
}

// colorSchemeClass returns "dark" or "light" from the libadwaita style
// manager, so popup themes can follow the system preference.
func colorSchemeClass() string {
	styleManager := adw.StyleManagerGetDefault()
	if styleManager.Dark() {
		return "dark"
	}
	return "light"
}
