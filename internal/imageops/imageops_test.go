package imageops

import (
	"image"
	"image/color"
	"testing"
)

var (
	red   = color.RGBA{R: 255, A: 255}
	green = color.RGBA{G: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
	white = color.RGBA{255, 255, 255, 255}
)

// row returns a 3x1 image red, green, blue.
func row() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 3, 1))
	img.SetRGBA(0, 0, red)
	img.SetRGBA(1, 0, green)
	img.SetRGBA(2, 0, blue)
	return img
}

func TestInvert(t *testing.T) {
	img := row()
	Invert(img)
	if got := img.RGBAAt(0, 0); got != (color.RGBA{0, 255, 255, 255}) {
		t.Fatalf("inverted red = %v", got)
	}
	Invert(img)
	if img.RGBAAt(0, 0) != red {
		t.Fatal("double invert is not identity")
	}
}

func TestFlip(t *testing.T) {
	img := row()
	Flip(img, Horizontal)
	if img.RGBAAt(0, 0) != blue || img.RGBAAt(1, 0) != green || img.RGBAAt(2, 0) != red {
		t.Fatal("horizontal flip")
	}
	col := image.NewRGBA(image.Rect(0, 0, 1, 2))
	col.SetRGBA(0, 0, red)
	col.SetRGBA(0, 1, blue)
	Flip(col, Vertical)
	if col.RGBAAt(0, 0) != blue || col.RGBAAt(0, 1) != red {
		t.Fatal("vertical flip")
	}
}

func TestRotate(t *testing.T) {
	img := row()
	ccw, err := Rotate(img, Rotate90)
	if err != nil {
		t.Fatal(err)
	}
	if ccw.Bounds() != image.Rect(0, 0, 1, 3) {
		t.Fatalf("bounds %v", ccw.Bounds())
	}
	// turning left puts the right end on top
	if ccw.RGBAAt(0, 0) != blue || ccw.RGBAAt(0, 2) != red {
		t.Fatalf("ccw order %v %v", ccw.RGBAAt(0, 0), ccw.RGBAAt(0, 2))
	}
	cw, _ := Rotate(img, Rotate270)
	if cw.RGBAAt(0, 0) != red || cw.RGBAAt(0, 2) != blue {
		t.Fatal("cw order")
	}
	half, _ := Rotate(img, Rotate180)
	if half.RGBAAt(0, 0) != blue {
		t.Fatal("180")
	}
	if _, err := Rotate(img, 45); err == nil {
		t.Fatal("expected error for 45")
	}
}

func TestKeyed(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, white)
	img.SetRGBA(1, 0, red)
	out := Keyed(img, white)
	if out.RGBAAt(0, 0).A != 0 || out.RGBAAt(1, 0) != red {
		t.Fatalf("keyed %v %v", out.RGBAAt(0, 0), out.RGBAAt(1, 0))
	}
	if img.RGBAAt(0, 0) != white {
		t.Fatal("Keyed modified its input")
	}
}

func TestToRGBAPromotesOpaque(t *testing.T) {
	pal := image.NewPaletted(image.Rect(5, 5, 7, 7), color.Palette{red, blue})
	pal.SetColorIndex(6, 6, 1)
	out := ToRGBA(pal)
	if out.Bounds() != image.Rect(0, 0, 2, 2) {
		t.Fatalf("bounds %v", out.Bounds())
	}
	if out.RGBAAt(1, 1) != blue || out.RGBAAt(0, 0) != red {
		t.Fatal("pixels not copied")
	}
}
