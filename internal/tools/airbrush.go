package tools

import (
	"image"
	"image/color"
	"log"
	"math/rand/v2"
	"time"

	"golang.org/x/mobile/event/mouse"

	"github.com/example/rasterpaint/internal/render"
	"github.com/example/rasterpaint/internal/stroke"
	"github.com/example/rasterpaint/internal/undo"
)

const (
	sprayDiameter = 17
	sprayRadius   = sprayDiameter / 2
	sprayDots     = 10
)

// SprayInterval is how often a held airbrush deposits paint.
const SprayInterval = 125 * time.Millisecond

// Airbrush sprays random dots inside a circle while the button is held.
type Airbrush struct {
	ctx     *Context
	drawing bool
	button  mouse.Button
	col     color.RGBA
	pt      image.Point
	box     stroke.Box
}

// NewAirbrush returns the airbrush tool.
func NewAirbrush() *Airbrush { return &Airbrush{} }

// Name implements Tool.
func (a *Airbrush) Name() string { return "airbrush" }

// Activate implements Tool.
func (a *Airbrush) Activate(ctx *Context) {
	a.ctx = ctx
	a.drawing = false
	if ctx.Rand == nil {
		ctx.Rand = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
}

// Deactivate implements Tool.
func (a *Airbrush) Deactivate() {
	if a.drawing {
		a.commit()
	}
}

// Busy implements Busy.
func (a *Airbrush) Busy() bool { return a.drawing }

// corner returns the top-left of the spray square centred on p.
func corner(p image.Point) image.Point {
	return p.Sub(image.Pt(sprayRadius, sprayRadius))
}

// PointerDown implements Tool.
func (a *Airbrush) PointerDown(ev Event) {
	if a.drawing {
		return
	}
	if ev.Button != mouse.ButtonLeft && ev.Button != mouse.ButtonRight {
		return
	}
	if err := a.ctx.Canvas.SaveBackground(a.Name()); err != nil {
		log.Printf("airbrush: %v", err)
		return
	}
	a.drawing = true
	a.button = ev.Button
	a.col = a.ctx.Colors.FG
	if ev.Button == mouse.ButtonRight {
		a.col = a.ctx.Colors.BG
	}
	a.pt = corner(ev.Point)
	a.box = stroke.NewBox(a.pt)
	a.spray()
}

// PointerMove implements Tool. Moving sprays at the new point as well as
// the timer.
func (a *Airbrush) PointerMove(ev Event) {
	if !a.drawing {
		return
	}
	a.pt = corner(ev.Point)
	a.spray()
}

// PointerUp implements Tool.
func (a *Airbrush) PointerUp(ev Event) {
	if !a.drawing || ev.Button != a.button {
		return
	}
	a.pt = corner(ev.Point)
	a.spray()
	a.commit()
}

// Tick implements Ticker.
func (a *Airbrush) Tick() bool {
	if !a.drawing {
		return false
	}
	a.spray()
	return true
}

func (a *Airbrush) spray() {
	a.box.Extend(a.pt)
	img := a.ctx.Canvas.Surface()
	cx, cy := a.pt.X+sprayRadius, a.pt.Y+sprayRadius
	for i := 0; i < sprayDots; i++ {
		x := a.pt.X + a.ctx.Rand.IntN(sprayDiameter)
		y := a.pt.Y + a.ctx.Rand.IntN(sprayDiameter)
		dx, dy := x-cx, y-cy
		if dx*dx+dy*dy > sprayRadius*sprayRadius {
			continue
		}
		if image.Pt(x, y).In(img.Bounds()) {
			img.SetRGBA(x, y, a.col)
		}
	}
}

func (a *Airbrush) commit() {
	c := a.ctx.Canvas
	rect := undo.SprayRect(a.box, sprayDiameter, c.Size())
	if a.ctx.Undo != nil {
		a.ctx.Undo.Append(rect, c.Background(), undo.Airbrush)
	}
	a.ctx.markUnsaved()
	c.ReleaseBackground(a.Name())
	a.drawing = false
}

// Render implements Tool.
func (a *Airbrush) Render(*render.Renderer, *image.RGBA) {}

// Cursor implements Tool.
func (a *Airbrush) Cursor() Cursor { return Cursor{Name: "spraycan"} }
