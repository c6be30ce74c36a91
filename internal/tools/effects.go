package tools

import (
	"image"
	"image/draw"

	"github.com/example/rasterpaint/internal/canvas"
	"github.com/example/rasterpaint/internal/imageops"
	"github.com/example/rasterpaint/internal/undo"
)

// Image effects apply to the lifted selection when there is one and to the
// whole canvas otherwise. Canvas changes are recorded for undo.

// Invert inverts the selection or the canvas.
func (m *Manager) Invert() error {
	if m.Busy() {
		return ErrBusy
	}
	if sel := m.ctx.Selection; sel.HasImage() {
		if err := sel.Invert(); err != nil {
			return err
		}
		m.ctx.markUnsaved()
		return nil
	}
	m.record(undo.Invert)
	imageops.Invert(m.ctx.Canvas.Surface())
	m.ctx.markUnsaved()
	return nil
}

// Flip mirrors the selection or the canvas.
func (m *Manager) Flip(axis imageops.Axis) error {
	if m.Busy() {
		return ErrBusy
	}
	if sel := m.ctx.Selection; sel.HasImage() {
		if err := sel.Flip(axis); err != nil {
			return err
		}
		m.ctx.markUnsaved()
		return nil
	}
	m.record(undo.Flip)
	imageops.Flip(m.ctx.Canvas.Surface(), axis)
	m.ctx.markUnsaved()
	return nil
}

// Rotate turns the selection or the canvas counter-clockwise. Rotating the
// canvas by a quarter turn swaps its dimensions.
func (m *Manager) Rotate(angle imageops.Angle) error {
	if m.Busy() {
		return ErrBusy
	}
	if sel := m.ctx.Selection; sel.HasImage() {
		if err := sel.Rotate(angle); err != nil {
			return err
		}
		m.ctx.markUnsaved()
		return nil
	}
	rotated, err := imageops.Rotate(m.ctx.Canvas.Surface(), angle)
	if err != nil {
		return err
	}
	if m.ctx.Undo != nil {
		size := rotated.Bounds().Size()
		m.ctx.Undo.AppendResize(size.X, size.Y)
	}
	m.ctx.Canvas.SetSurface(rotated)
	m.ctx.markUnsaved()
	return nil
}

// ClearCanvas fills the canvas with the background colour.
func (m *Manager) ClearCanvas() error {
	if m.Busy() {
		return ErrBusy
	}
	m.record(undo.Clear)
	surface := m.ctx.Canvas.Surface()
	canvas.FillRect(surface, surface.Bounds(), m.ctx.Colors.BG)
	m.ctx.markUnsaved()
	return nil
}

// Copy returns what a copy command should place on the clipboard: the
// lifted selection if any, or the selected canvas region, or the whole
// canvas.
func (m *Manager) Copy() *image.RGBA {
	sel := m.ctx.Selection
	if img := sel.Image(); img != nil {
		return img
	}
	if sel.Active() && !sel.Rect().Empty() {
		r := sel.Rect().Intersect(m.ctx.Canvas.Bounds())
		if !r.Empty() {
			out := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
			draw.Draw(out, out.Bounds(), m.ctx.Canvas.Surface(), r.Min, draw.Src)
			return out
		}
	}
	return m.ctx.Canvas.Clone()
}

func (m *Manager) record(kind undo.Kind) {
	if m.ctx.Undo != nil {
		m.ctx.Undo.Append(m.ctx.Canvas.Bounds(), nil, kind)
	}
}
