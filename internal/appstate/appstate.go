// Package appstate runs the interactive paint window on top of a Session.
package appstate

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"log"

	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/example/rasterpaint/internal/canvas"
	"github.com/example/rasterpaint/internal/render"
	"github.com/example/rasterpaint/internal/selection"
	"github.com/example/rasterpaint/internal/theme"
	"github.com/example/rasterpaint/internal/tools"
)

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

var messageFace font.Face

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	messageFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: 24, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
}

// paintState is everything drawFrame needs, copied off the event goroutine.
type paintState struct {
	width, height int
	view          render.View
	theme         *theme.Theme
	canvas        *image.RGBA
	selection     *selection.View
	cursor        tools.Cursor
	pointer       image.Point
	inside        bool
	status        string
	message       string
}

// snapshot copies what the paint goroutine draws. The selection image is
// copied because the tools keep modifying it.
func (s *Session) snapshot(win image.Point, v render.View, pointer image.Point, th *theme.Theme) paintState {
	st := paintState{
		width:   win.X,
		height:  win.Y,
		view:    v,
		theme:   th,
		canvas:  s.Canvas.Clone(),
		cursor:  s.Tools.Cursor(),
		pointer: pointer,
		status:  s.Status(),
		message: s.Message(),
	}
	p := v.Point(pointer)
	st.inside = p.In(s.Canvas.Bounds()) && pointer.Y < win.Y-statusHeight
	if t := s.Tools.Current(); t != nil && t.Name() == "select" {
		sv := s.Tools.Context().Selection.View()
		if sv.Image != nil {
			sv.Image = canvas.Copy(sv.Image)
		}
		st.selection = &sv
	}
	return st
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, r *render.Renderer, st paintState) {
	b, err := s.NewBuffer(image.Point{st.width, st.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	if !renderFrame(ctx, r, b.RGBA(), st) {
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

// renderFrame draws st into dst. It reports false when ctx was canceled
// part way.
func renderFrame(ctx context.Context, r *render.Renderer, dst *image.RGBA, st paintState) bool {
	r.Palette = render.PaletteFrom(st.theme)
	r.View = st.view
	r.Backdrop(dst)
	r.Canvas(dst, st.canvas)
	if ctx.Err() != nil {
		return false
	}

	if st.selection != nil {
		r.Selection(dst, *st.selection)
	}
	if st.inside && st.cursor.Image != nil {
		at := st.pointer.Sub(st.cursor.Hotspot)
		draw.Draw(dst, st.cursor.Image.Bounds().Add(at), st.cursor.Image, st.cursor.Image.Bounds().Min, draw.Over)
	}
	if ctx.Err() != nil {
		return false
	}

	drawStatus(dst, st)
	if st.message != "" {
		drawMessage(dst, st)
	}
	return ctx.Err() == nil
}

func drawStatus(dst *image.RGBA, st paintState) {
	bar := image.Rect(0, st.height-statusHeight, st.width, st.height)
	draw.Draw(dst, bar, &image.Uniform{st.theme.StatusBackground}, image.Point{}, draw.Src)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(st.theme.Foreground), Face: basicfont.Face7x13}
	d.Dot = fixed.P(4, st.height-5)
	d.DrawString(st.status)
}

func drawMessage(dst *image.RGBA, st paintState) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(st.theme.Foreground), Face: messageFace}
	wmsg := d.MeasureString(st.message).Ceil()
	ascent := messageFace.Metrics().Ascent.Ceil()
	descent := messageFace.Metrics().Descent.Ceil()
	px := (st.width - wmsg) / 2
	py := (st.height-statusHeight-ascent-descent)/2 + ascent
	rect := image.Rect(px-8, py-ascent-8, px+wmsg+8, py+descent+8)
	bg := st.theme.StatusBackground
	bg.A = 230
	draw.Draw(dst, rect, &image.Uniform{bg}, image.Point{}, draw.Over)
	canvas.StrokeRect(dst, rect, color.RGBA{A: 255}, 2)
	d.Dot = fixed.P(px, py)
	d.DrawString(st.message)
}
