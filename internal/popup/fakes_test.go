package popup

import (
	"github.com/kestrelui/overlay/internal/geom"
	"github.com/kestrelui/overlay/internal/platform"
	"github.com/kestrelui/overlay/internal/visual"
)

// fakeWindow records platform calls for assertions.
type fakeWindow struct {
	bounds         geom.Rect
	setBoundsCalls int
	maxAuto        geom.Size
	shadowHints    []bool
	showCalls      int
	hideCalls      int
	focusCalls     int
	disposeCalls   int
}

func newFakeWindow() *fakeWindow {
	return &fakeWindow{maxAuto: geom.Sz(1920, 1080)}
}

func (w *fakeWindow) Show() { w.showCalls++ }
func (w *fakeWindow) Hide() { w.hideCalls++ }

func (w *fakeWindow) SetBounds(rect geom.Rect) {
	w.bounds = rect
	w.setBoundsCalls++
}

func (w *fakeWindow) Bounds() geom.Rect          { return w.bounds }
func (w *fakeWindow) MaxAutoSizeHint() geom.Size { return w.maxAuto }
func (w *fakeWindow) SetShadowHint(enabled bool) { w.shadowHints = append(w.shadowHints, enabled) }
func (w *fakeWindow) TakeFocus()                 { w.focusCalls++ }
func (w *fakeWindow) Dispose()                   { w.disposeCalls++ }

// fakeParent implements ParentSurface: a visual top-level with configurable
// screens, pointer state and coordinate offset.
type fakeParent struct {
	bounds   geom.Rect
	attached bool

	screens   []platform.Screen
	origin    geom.Vector // window-to-screen translation
	pointer   geom.Point
	pointerOK bool
}

// newFakeParent returns a mapped parent on a single 1000x600 screen.
func newFakeParent() *fakeParent {
	screen := geom.NewRect(0, 0, 1000, 600)
	return &fakeParent{
		bounds:   screen,
		attached: true,
		screens: []platform.Screen{
			{Bounds: screen, WorkingArea: screen},
		},
	}
}

func (p *fakeParent) Bounds() geom.Rect          { return p.bounds }
func (p *fakeParent) Attached() bool             { return p.attached }
func (p *fakeParent) Screens() []platform.Screen { return p.screens }

func (p *fakeParent) PointToScreen(pt geom.Point) geom.Point {
	return pt.Add(p.origin)
}

func (p *fakeParent) PointerPosition() (geom.Point, bool) {
	return p.pointer, p.pointerOK
}

// fakeVisual is an anchor target.
type fakeVisual struct {
	bounds   geom.Rect
	attached bool
}

func (v *fakeVisual) Bounds() geom.Rect { return v.bounds }
func (v *fakeVisual) Attached() bool    { return v.attached }

// fakeControl is a visual with a logical parent.
type fakeControl struct {
	fakeVisual
	parent visual.Control
}

func (c *fakeControl) LogicalParent() visual.Control { return c.parent }

// fakeContent is a Layoutable child recording layout calls.
type fakeContent struct {
	desired      geom.Size
	measuredWith []geom.Size
	arrangedWith []geom.Rect
}

func (c *fakeContent) Measure(available geom.Size) {
	c.measuredWith = append(c.measuredWith, available)
}

func (c *fakeContent) Arrange(final geom.Rect) {
	c.arrangedWith = append(c.arrangedWith, final)
}

func (c *fakeContent) DesiredSize() geom.Size { return c.desired }
