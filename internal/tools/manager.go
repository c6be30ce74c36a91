package tools

import (
	"errors"
	"fmt"
	"image"
	"log"

	"github.com/example/rasterpaint/internal/brush"
	"github.com/example/rasterpaint/internal/render"
	"github.com/example/rasterpaint/internal/selection"
)

var (
	// ErrUnknownTool is returned by Use for unregistered names.
	ErrUnknownTool = errors.New("tools: unknown tool")
	// ErrBusy is returned when a gesture is in progress.
	ErrBusy = errors.New("tools: gesture in progress")
)

// Manager owns the tool context and activates one tool at a time.
type Manager struct {
	ctx     *Context
	tools   map[string]Tool
	names   []string
	current Tool

	onEvent func(selection.Event)
	onTool  func(name string)
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithSelectionEvents forwards selection events to fn after the manager has
// handled them.
func WithSelectionEvents(fn func(selection.Event)) ManagerOption {
	return func(m *Manager) { m.onEvent = fn }
}

// WithToolChange calls fn whenever a different tool is activated.
func WithToolChange(fn func(name string)) ManagerOption {
	return func(m *Manager) { m.onTool = fn }
}

// NewManager registers the standard tools for ctx. A selection is created
// when ctx has none. No tool is active until Use is called.
func NewManager(ctx *Context, opts ...ManagerOption) *Manager {
	m := &Manager{ctx: ctx, tools: map[string]Tool{}}
	for _, o := range opts {
		o(m)
	}
	if ctx.Sizes == (Sizes{}) {
		ctx.Sizes = DefaultSizes()
	}
	if ctx.Selection == nil {
		ctx.Selection = selection.New(ctx.Canvas, ctx.Undo,
			selection.WithEventHandler(m.selectionEvent),
			selection.WithBackground(ctx.Colors.BG),
		)
	}
	m.Register(NewPaintbrush())
	m.Register(NewEraser())
	m.Register(NewAirbrush())
	m.Register(NewRectSelect())
	return m
}

// Context returns the shared tool context.
func (m *Manager) Context() *Context { return m.ctx }

// Register adds t, replacing any tool of the same name.
func (m *Manager) Register(t Tool) {
	if _, ok := m.tools[t.Name()]; !ok {
		m.names = append(m.names, t.Name())
	}
	m.tools[t.Name()] = t
}

// Tools lists the registered tool names in registration order.
func (m *Manager) Tools() []string { return append([]string(nil), m.names...) }

// Current returns the active tool or nil.
func (m *Manager) Current() Tool { return m.current }

// Use deactivates the current tool and activates name.
func (m *Manager) Use(name string) error {
	t, ok := m.tools[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTool, name)
	}
	if t == m.current {
		return nil
	}
	if m.current != nil {
		m.current.Deactivate()
	}
	m.current = t
	t.Activate(m.ctx)
	if m.onTool != nil {
		m.onTool(name)
	}
	return nil
}

// Dispatch routes ev to the active tool.
func (m *Manager) Dispatch(ev Event) {
	if m.current == nil {
		return
	}
	switch ev.Kind {
	case Press:
		m.current.PointerDown(ev)
	case Release:
		m.current.PointerUp(ev)
	case Motion:
		m.current.PointerMove(ev)
	case DoubleClick:
		if dc, ok := m.current.(DoubleClicker); ok {
			dc.DoubleClick(ev)
		}
	}
}

// Tick advances timer driven tools. It reports whether anything was drawn.
func (m *Manager) Tick() bool {
	if t, ok := m.current.(Ticker); ok {
		return t.Tick()
	}
	return false
}

// Busy reports whether the active tool is mid-gesture.
func (m *Manager) Busy() bool {
	if b, ok := m.current.(Busy); ok {
		return b.Busy()
	}
	return false
}

// Render draws the canvas and the active tool's overlay.
func (m *Manager) Render(r *render.Renderer, dst *image.RGBA) {
	r.Canvas(dst, m.ctx.Canvas.Surface())
	if m.current != nil {
		m.current.Render(r, dst)
	}
}

// Cursor returns the active tool's cursor.
func (m *Manager) Cursor() Cursor {
	if m.current == nil {
		return Cursor{Name: "left_ptr"}
	}
	return m.current.Cursor()
}

// SetColors changes the drawing colours.
func (m *Manager) SetColors(c Colors) {
	m.ctx.Colors = c
	m.ctx.Selection.SetBackground(c.BG)
}

// SetTransparent switches background keying of the selection.
func (m *Manager) SetTransparent(on bool) {
	m.ctx.Transparent = on
	m.ctx.Selection.SetTransparent(on)
}

// SetSizes validates and installs new presets. Invalid presets are rejected
// and the previous ones kept.
func (m *Manager) SetSizes(s Sizes) error {
	if _, err := brush.Sized(s.BrushShape, s.BrushSize, s.BrushBase, true); err != nil {
		return fmt.Errorf("brush: %w", err)
	}
	if _, err := brush.Sized(s.EraserShape, s.EraserSize, s.EraserBase, false); err != nil {
		return fmt.Errorf("eraser: %w", err)
	}
	m.ctx.Sizes = s
	for _, name := range []string{"brush", "eraser"} {
		if st, ok := m.tools[name].(*StrokeTool); ok && st.ctx != nil && !st.Busy() {
			if err := st.Configure(s); err != nil {
				log.Printf("%s: %v", name, err)
			}
		}
	}
	return nil
}

// SetBrush changes the paintbrush shape and size.
func (m *Manager) SetBrush(shape brush.Shape, size brush.Size) error {
	s := m.ctx.Sizes
	s.BrushShape, s.BrushSize = shape, size
	return m.SetSizes(s)
}

// SetEraser changes the eraser shape and size.
func (m *Manager) SetEraser(shape brush.Shape, size brush.Size) error {
	s := m.ctx.Sizes
	s.EraserShape, s.EraserSize = shape, size
	return m.SetSizes(s)
}

// Paste turns img into a selection, switching to the selection tool if
// needed.
func (m *Manager) Paste(img image.Image) error {
	if m.Busy() {
		return ErrBusy
	}
	m.ctx.Selection.Paste(img)
	return nil
}

func (m *Manager) selectionEvent(e selection.Event) {
	if m.onEvent != nil {
		m.onEvent(e)
	}
	switch e {
	case selection.EventPasteRequested:
		if err := m.Use("select"); err != nil {
			log.Printf("paste: %v", err)
		}
	case selection.EventCreatedFromPaste:
		if rs, ok := m.current.(*RectSelect); ok {
			rs.state = selectWaiting
		}
	case selection.EventCommitted:
		m.ctx.markUnsaved()
	}
}

type reverter interface {
	Undo() bool
	Redo() bool
}

// Undo reverts the last gesture. The active tool is restarted around the
// change so no tool keeps state that refers to the old pixels.
func (m *Manager) Undo() (bool, error) {
	return m.revert(func(r reverter) bool { return r.Undo() })
}

// Redo reapplies the last undone gesture.
func (m *Manager) Redo() (bool, error) {
	return m.revert(func(r reverter) bool { return r.Redo() })
}

func (m *Manager) revert(fn func(reverter) bool) (bool, error) {
	r, ok := m.ctx.Undo.(reverter)
	if !ok {
		return false, errors.New("tools: undo log has no history")
	}
	if m.Busy() {
		return false, ErrBusy
	}
	cur := m.current
	if cur != nil {
		cur.Deactivate()
	}
	done := fn(r)
	if cur != nil {
		cur.Activate(m.ctx)
	}
	return done, nil
}
