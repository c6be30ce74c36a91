package appstate

import (
	"image"
	"time"

	"golang.org/x/mobile/event/mouse"

	"github.com/example/rasterpaint/internal/render"
	"github.com/example/rasterpaint/internal/tools"
)

const (
	doubleClickInterval = 400 * time.Millisecond
	doubleClickSlop     = 4
	statusHeight        = 20
	minZoom             = 0.125
	maxZoom             = 16
)

// clickTracker pairs presses of the same button into double clicks.
type clickTracker struct {
	at     time.Time
	pos    image.Point
	button mouse.Button
	armed  bool
}

// press records a press and reports whether it completes a double click.
func (c *clickTracker) press(p image.Point, b mouse.Button, now time.Time) bool {
	d := p.Sub(c.pos)
	double := c.armed && b == c.button &&
		now.Sub(c.at) <= doubleClickInterval &&
		abs(d.X) <= doubleClickSlop && abs(d.Y) <= doubleClickSlop
	c.at, c.pos, c.button = now, p, b
	// a third press starts a new pair
	c.armed = !double
	return double
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// viewport places the canvas inside the window above the status bar.
type viewport struct {
	zoom   float64
	fit    bool
	window image.Point
}

func newViewport() *viewport { return &viewport{zoom: 1, fit: true} }

func (v *viewport) area() image.Point {
	return image.Pt(v.window.X, max(v.window.Y-statusHeight, 0))
}

// view centres a canvas of the given size in the drawing area.
func (v *viewport) view(canvasSize image.Point) render.View {
	z := v.zoom
	if v.fit {
		z = render.Fit(canvasSize, v.area())
	}
	a := v.area()
	w := int(float64(canvasSize.X) * z)
	h := int(float64(canvasSize.Y) * z)
	return render.View{Origin: image.Pt(max((a.X-w)/2, 0), max((a.Y-h)/2, 0)), Zoom: z}
}

func (v *viewport) scale(factor float64, canvasSize image.Point) {
	if v.fit {
		v.zoom = render.Fit(canvasSize, v.area())
		v.fit = false
	}
	v.zoom = min(max(v.zoom*factor, minZoom), maxZoom)
}

// translate turns a window mouse event into tool events in canvas
// coordinates. A press completing a double click yields the press followed by
// a DoubleClick.
func translate(e mouse.Event, v render.View, clicks *clickTracker, now time.Time) []tools.Event {
	win := image.Pt(int(e.X), int(e.Y))
	p := v.Point(win)
	switch e.Direction {
	case mouse.DirPress:
		evs := []tools.Event{{Kind: tools.Press, Point: p, Button: e.Button}}
		if clicks.press(win, e.Button, now) {
			evs = append(evs, tools.Event{Kind: tools.DoubleClick, Point: p, Button: e.Button})
		}
		return evs
	case mouse.DirRelease:
		return []tools.Event{{Kind: tools.Release, Point: p, Button: e.Button}}
	case mouse.DirNone:
		return []tools.Event{{Kind: tools.Motion, Point: p, Button: e.Button}}
	}
	return nil
}
