// Package tools dispatches pointer input to the active paint tool.
package tools

import (
	"image"
	"image/color"
	"math/rand/v2"

	"golang.org/x/mobile/event/mouse"

	"github.com/example/rasterpaint/internal/brush"
	"github.com/example/rasterpaint/internal/canvas"
	"github.com/example/rasterpaint/internal/render"
	"github.com/example/rasterpaint/internal/selection"
	"github.com/example/rasterpaint/internal/undo"
)

// EventKind distinguishes pointer events.
type EventKind int

const (
	Press EventKind = iota
	Release
	Motion
	DoubleClick
)

func (k EventKind) String() string {
	switch k {
	case Press:
		return "press"
	case Release:
		return "release"
	case Motion:
		return "motion"
	case DoubleClick:
		return "double-click"
	}
	return "unknown"
}

// Event is a pointer event in canvas coordinates.
type Event struct {
	Kind   EventKind
	Point  image.Point
	Button mouse.Button
}

// Colors are the current drawing colours.
type Colors struct {
	FG color.RGBA
	BG color.RGBA
}

// Sizes carries the brush and eraser presets injected into the tools.
type Sizes struct {
	BrushBase   int
	BrushShape  brush.Shape
	BrushSize   brush.Size
	EraserBase  int
	EraserShape brush.Shape
	EraserSize  brush.Size
}

// DefaultSizes returns the large round brush and the large square eraser.
func DefaultSizes() Sizes {
	return Sizes{
		BrushBase:   brush.DefaultBase,
		BrushShape:  brush.Round,
		BrushSize:   brush.Large,
		EraserBase:  brush.DefaultBase,
		EraserShape: brush.Rect,
		EraserSize:  brush.Large,
	}
}

// Context is the state shared by all tools.
type Context struct {
	Canvas      *canvas.Canvas
	Undo        undo.Log
	File        undo.FileState
	Selection   *selection.Selection
	Colors      Colors
	Transparent bool
	Sizes       Sizes
	Rand        *rand.Rand
}

func (c *Context) markUnsaved() {
	if c.File != nil {
		c.File.MarkUnsaved()
	}
}

// Cursor is either a named built-in cursor or a bitmap with a hotspot.
type Cursor struct {
	Name    string
	Image   *image.RGBA
	Hotspot image.Point
}

// Tool is one interchangeable paint tool.
type Tool interface {
	Name() string
	Activate(ctx *Context)
	Deactivate()
	PointerDown(ev Event)
	PointerMove(ev Event)
	PointerUp(ev Event)
	Render(r *render.Renderer, dst *image.RGBA)
	Cursor() Cursor
}

// DoubleClicker is implemented by tools that react to double clicks.
type DoubleClicker interface {
	DoubleClick(ev Event)
}

// Ticker is implemented by tools that keep painting while the pointer is
// held still.
type Ticker interface {
	Tick() bool
}

// Busy is implemented by tools that can be mid-gesture.
type Busy interface {
	Busy() bool
}
