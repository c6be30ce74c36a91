package tools

import (
	"image"

	"golang.org/x/mobile/event/mouse"

	"github.com/example/rasterpaint/internal/render"
)

type selectState int

const (
	selectNone selectState = iota
	selectWaiting
	selectDrawing
	selectAction
)

// RectSelect outlines, moves and resizes the rectangular selection.
type RectSelect struct {
	ctx    *Context
	state  selectState
	cursor string
}

// NewRectSelect returns the rectangle selection tool.
func NewRectSelect() *RectSelect { return &RectSelect{cursor: "dotbox"} }

// Name implements Tool.
func (t *RectSelect) Name() string { return "select" }

// Activate implements Tool. A pending paste becomes the selection.
func (t *RectSelect) Activate(ctx *Context) {
	t.ctx = ctx
	sel := ctx.Selection
	sel.SetCanvas(ctx.Canvas)
	sel.SetBackground(ctx.Colors.BG)
	sel.SetTransparent(ctx.Transparent)
	sel.Init()
	t.state = selectNone
	t.cursor = "dotbox"
	if sel.HasPending() && sel.CreatePending() {
		t.state = selectWaiting
	}
}

// Deactivate implements Tool. A lifted image is flattened onto the canvas.
func (t *RectSelect) Deactivate() {
	t.ctx.Selection.Flatten()
	t.ctx.Selection.Clear()
	t.state = selectNone
}

// Busy implements Busy.
func (t *RectSelect) Busy() bool {
	return t.state == selectDrawing || t.state == selectAction
}

// PointerDown implements Tool. Pressing on the box or a handle starts a drag,
// pressing elsewhere drops the old box and starts outlining a new one.
func (t *RectSelect) PointerDown(ev Event) {
	if ev.Button != mouse.ButtonLeft {
		return
	}
	sel := t.ctx.Selection
	if sel.StartAction(ev.Point) {
		t.state = selectAction
	} else {
		sel.SetFloating(true)
		sel.SetActive(false)
		sel.SetStart(ev.Point)
		sel.SetEnd(ev.Point)
		sel.SetActive(true)
		t.state = selectDrawing
	}
	sel.SetBorders(false)
}

// DoubleClick implements DoubleClicker. Double clicking the box lifts its
// content.
func (t *RectSelect) DoubleClick(ev Event) {
	if ev.Button != mouse.ButtonLeft {
		return
	}
	sel := t.ctx.Selection
	if sel.StartAction(ev.Point) {
		sel.SetFloating(false)
	}
}

func (t *RectSelect) clamp(p image.Point) image.Point {
	size := t.ctx.Canvas.Size()
	p.X = max(min(p.X, size.X-1), 0)
	p.Y = max(min(p.Y, size.Y-1), 0)
	return p
}

// PointerMove implements Tool.
func (t *RectSelect) PointerMove(ev Event) {
	sel := t.ctx.Selection
	switch t.state {
	case selectDrawing:
		sel.SetEnd(t.clamp(ev.Point))
	case selectWaiting:
		t.cursor = sel.Cursor(ev.Point)
	case selectAction:
		sel.DoAction(ev.Point)
	}
}

// PointerUp implements Tool.
func (t *RectSelect) PointerUp(ev Event) {
	if ev.Button != mouse.ButtonLeft {
		return
	}
	sel := t.ctx.Selection
	if t.state == selectDrawing {
		sel.SetEnd(t.clamp(ev.Point))
	}
	t.state = selectWaiting
	sel.SetBorders(true)
}

// Render implements Tool.
func (t *RectSelect) Render(r *render.Renderer, dst *image.RGBA) {
	r.Selection(dst, t.ctx.Selection.View())
}

// Cursor implements Tool.
func (t *RectSelect) Cursor() Cursor { return Cursor{Name: t.cursor} }
