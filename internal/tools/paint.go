package tools

import (
	"image"
	"image/color"
	"log"

	"golang.org/x/mobile/event/mouse"

	"github.com/example/rasterpaint/internal/brush"
	"github.com/example/rasterpaint/internal/render"
	"github.com/example/rasterpaint/internal/stroke"
	"github.com/example/rasterpaint/internal/undo"
)

// StrokeTool stamps a brush shape along the pointer path. It backs both the
// paintbrush and the eraser, which differ in colours and size rounding.
type StrokeTool struct {
	name   string
	kind   undo.Kind
	eraser bool

	ctx     *Context
	spec    brush.Spec
	interp  *stroke.Interpolator
	drawing bool
	button  mouse.Button
	col     color.RGBA
}

// NewPaintbrush returns the paintbrush tool.
func NewPaintbrush() *StrokeTool {
	return &StrokeTool{name: "brush", kind: undo.Paintbrush}
}

// NewEraser returns the eraser tool.
func NewEraser() *StrokeTool {
	return &StrokeTool{name: "eraser", kind: undo.Eraser, eraser: true}
}

// Name implements Tool.
func (t *StrokeTool) Name() string { return t.name }

// Spec returns the current stamp.
func (t *StrokeTool) Spec() brush.Spec { return t.spec }

// Activate implements Tool.
func (t *StrokeTool) Activate(ctx *Context) {
	t.ctx = ctx
	t.drawing = false
	if err := t.Configure(ctx.Sizes); err != nil {
		log.Printf("%s: %v", t.name, err)
	}
}

// Configure rebuilds the stamp from sizes. On error the previous stamp is
// kept.
func (t *StrokeTool) Configure(s Sizes) error {
	var spec brush.Spec
	var err error
	if t.eraser {
		spec, err = brush.Sized(s.EraserShape, s.EraserSize, s.EraserBase, false)
	} else {
		spec, err = brush.Sized(s.BrushShape, s.BrushSize, s.BrushBase, true)
	}
	if err != nil {
		if t.spec.Width == 0 {
			t.spec, _ = brush.Sized(brush.Round, brush.Large, brush.DefaultBase, !t.eraser)
		}
		return err
	}
	t.spec = spec
	return nil
}

// Deactivate implements Tool. A stroke in progress is committed.
func (t *StrokeTool) Deactivate() {
	if t.drawing {
		t.commit()
	}
}

// Busy implements Busy.
func (t *StrokeTool) Busy() bool { return t.drawing }

func (t *StrokeTool) colorFor(b mouse.Button) color.RGBA {
	fg, bg := t.ctx.Colors.FG, t.ctx.Colors.BG
	if t.eraser {
		fg, bg = bg, fg
	}
	if b == mouse.ButtonRight {
		return bg
	}
	return fg
}

func (t *StrokeTool) stamp(p image.Point) {
	brush.Stamp(t.ctx.Canvas.Surface(), t.spec, p, t.col)
}

// PointerDown implements Tool. Presses while a stroke is running are
// ignored.
func (t *StrokeTool) PointerDown(ev Event) {
	if t.drawing {
		return
	}
	if ev.Button != mouse.ButtonLeft && ev.Button != mouse.ButtonRight {
		return
	}
	if err := t.ctx.Canvas.SaveBackground(t.name); err != nil {
		log.Printf("%s: %v", t.name, err)
		return
	}
	t.drawing = true
	t.button = ev.Button
	t.col = t.colorFor(ev.Button)
	t.interp = stroke.New(t.spec.Spacing)
	t.interp.Begin(ev.Point)
	t.stamp(ev.Point)
}

// PointerMove implements Tool.
func (t *StrokeTool) PointerMove(ev Event) {
	if !t.drawing {
		return
	}
	t.interp.To(ev.Point, t.stamp)
}

// PointerUp implements Tool.
func (t *StrokeTool) PointerUp(ev Event) {
	if !t.drawing || ev.Button != t.button {
		return
	}
	t.interp.To(ev.Point, t.stamp)
	t.commit()
}

func (t *StrokeTool) commit() {
	c := t.ctx.Canvas
	rect := undo.DirtyRect(t.interp.Bounds(), t.spec.Extent(), c.Size())
	if t.ctx.Undo != nil {
		t.ctx.Undo.Append(rect, c.Background(), t.kind)
	}
	t.ctx.markUnsaved()
	c.ReleaseBackground(t.name)
	t.drawing = false
}

// Render implements Tool.
func (t *StrokeTool) Render(*render.Renderer, *image.RGBA) {}

// Cursor implements Tool.
func (t *StrokeTool) Cursor() Cursor {
	var cur *brush.Cursor
	var err error
	if t.eraser {
		cur, err = brush.EraserCursor(t.spec, t.ctx.Colors.FG, t.ctx.Colors.BG)
	} else {
		cur, err = brush.BrushCursor(t.spec, t.ctx.Colors.FG, t.ctx.Colors.BG)
	}
	if err != nil {
		log.Printf("%s cursor: %v", t.name, err)
		return Cursor{Name: brush.FallbackCursor}
	}
	return Cursor{Image: cur.Image, Hotspot: cur.Hotspot}
}
