package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/example/rasterpaint/internal/selection"
	"github.com/example/rasterpaint/internal/theme"
)

func TestViewRoundTrip(t *testing.T) {
	v := View{Origin: image.Pt(10, 20), Zoom: 2}
	r := v.Rect(image.Rect(1, 1, 3, 3))
	if r != image.Rect(12, 22, 16, 26) {
		t.Fatalf("rect %v", r)
	}
	if p := v.Point(image.Pt(15, 25)); p != image.Pt(2, 2) {
		t.Fatalf("point %v", p)
	}
	if p := v.Point(image.Pt(9, 19)); p != image.Pt(-1, -1) {
		t.Fatalf("negative point %v", p)
	}
}

func TestFit(t *testing.T) {
	if z := Fit(image.Pt(200, 100), image.Pt(100, 100)); z != 0.5 {
		t.Fatalf("zoom %v", z)
	}
	if z := Fit(image.Pt(10, 10), image.Pt(100, 100)); z != 1 {
		t.Fatalf("small canvas zoom %v", z)
	}
}

func TestCanvasShowsCheckerThroughTransparency(t *testing.T) {
	r := New(PaletteFrom(theme.Default()))
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	dst := image.NewRGBA(image.Rect(0, 0, 16, 16))
	r.Canvas(dst, img)
	if dst.RGBAAt(0, 0) != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("opaque pixel %v", dst.RGBAAt(0, 0))
	}
	if dst.RGBAAt(1, 1) != r.Palette.CheckerLight || dst.RGBAAt(9, 1) != r.Palette.CheckerDark {
		t.Errorf("checker %v %v", dst.RGBAAt(1, 1), dst.RGBAAt(9, 1))
	}
}

func TestSelectionOverlay(t *testing.T) {
	r := New(PaletteFrom(theme.Default()))
	dst := image.NewRGBA(image.Rect(0, 0, 40, 40))
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	r.Selection(dst, selection.View{Active: true, Rect: image.Rect(5, 5, 15, 15), Image: img})
	if dst.RGBAAt(8, 8) != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("committed image not drawn: %v", dst.RGBAAt(8, 8))
	}
	if dst.RGBAAt(5, 5) != r.Palette.BorderLight {
		t.Errorf("outline start %v", dst.RGBAAt(5, 5))
	}

	dst = image.NewRGBA(image.Rect(0, 0, 40, 40))
	r.Selection(dst, selection.View{Active: true, Floating: true, Rect: image.Rect(5, 5, 15, 15)})
	if dst.RGBAAt(8, 8).A == 0 {
		t.Error("floating tint missing")
	}

	dst = image.NewRGBA(image.Rect(0, 0, 40, 40))
	r.Selection(dst, selection.View{Rect: image.Rect(5, 5, 15, 15), Floating: true})
	if dst.RGBAAt(8, 8).A != 0 {
		t.Error("inactive selection drawn")
	}
}

func TestSelectionHandles(t *testing.T) {
	r := New(PaletteFrom(theme.Default()))
	dst := image.NewRGBA(image.Rect(0, 0, 40, 40))
	v := selection.View{
		Active:  true,
		Borders: true,
		Rect:    image.Rect(0, 0, 30, 30),
		Handles: []image.Rectangle{image.Rect(10, 10, 15, 15)},
	}
	r.Selection(dst, v)
	if dst.RGBAAt(12, 12) != r.Palette.HandleFill {
		t.Errorf("handle fill %v", dst.RGBAAt(12, 12))
	}
	if dst.RGBAAt(10, 10) != r.Palette.HandleBorder {
		t.Errorf("handle border %v", dst.RGBAAt(10, 10))
	}
}
