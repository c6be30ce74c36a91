package brush

import (
	"errors"
	"image"
	"image/color"
	"image/draw"

	"github.com/example/rasterpaint/internal/canvas"
)

// FallbackCursor names the built-in cursor used when a preview cannot be
// built.
const FallbackCursor = "crosshair"

// ErrCursor is returned when a cursor preview cannot be built.
var ErrCursor = errors.New("brush: cannot build cursor")

const (
	cursorMin  = 19
	crossReach = 9
)

// Cursor is a pointer bitmap with its hotspot.
type Cursor struct {
	Image   *image.RGBA
	Hotspot image.Point
}

// KeyColor returns a colour distinct from fg for the transparent part of a
// cursor: bg when it differs from fg, otherwise the first pure red shade that
// does.
func KeyColor(fg, bg color.RGBA) (color.RGBA, bool) {
	if fg != bg {
		return bg, true
	}
	return searchKey(fg)
}

func searchKey(avoid ...color.RGBA) (color.RGBA, bool) {
next:
	for i := 0; i < 255; i++ {
		c := color.RGBA{R: uint8(i), A: 255}
		for _, a := range avoid {
			if c == a {
				continue next
			}
		}
		return c, true
	}
	return color.RGBA{}, false
}

// BrushCursor renders the brush outline for spec in fg.
func BrushCursor(spec Spec, fg, bg color.RGBA) (*Cursor, error) {
	key, ok := KeyColor(fg, bg)
	if !ok {
		return nil, ErrCursor
	}
	return buildCursor(spec, key, func(img *image.RGBA, r image.Rectangle) {
		drawCursorShape(img, spec, r, fg)
	})
}

// EraserCursor renders spec filled with bg and outlined in fg so the eraser
// is visible over any canvas.
func EraserCursor(spec Spec, fg, bg color.RGBA) (*Cursor, error) {
	key, ok := searchKey(fg, bg)
	if !ok {
		return nil, ErrCursor
	}
	return buildCursor(spec, key, func(img *image.RGBA, r image.Rectangle) {
		switch spec.Shape {
		case Round:
			canvas.FillEllipse(img, r, bg)
			canvas.StrokeEllipse(img, r, fg)
		case Rect:
			canvas.FillRect(img, r, bg)
			canvas.StrokeRect(img, r, fg, 1)
		default:
			drawCursorShape(img, spec, r, fg)
		}
	})
}

func buildCursor(spec Spec, key color.RGBA, shape func(*image.RGBA, image.Rectangle)) (*Cursor, error) {
	w, h := spec.Width, spec.Height
	if w <= 0 || h <= 0 {
		return nil, ErrCursor
	}
	if spec.Shape == Image && spec.Image == nil {
		return nil, ErrCursor
	}
	if _, ok := shapeNames[spec.Shape]; !ok {
		return nil, ErrCursor
	}
	wcur := max(cursorMin, w)
	hcur := max(cursorMin, h)
	img := image.NewRGBA(image.Rect(0, 0, wcur, hcur))
	draw.Draw(img, img.Bounds(), &image.Uniform{key}, image.Point{}, draw.Src)

	o := image.Pt(centered(wcur, w), centered(hcur, h))
	shape(img, image.Rect(o.X, o.Y, o.X+w, o.Y+h))

	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] == key.R && img.Pix[i+1] == key.G && img.Pix[i+2] == key.B && img.Pix[i+3] == key.A {
			img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = 0, 0, 0, 0
		}
	}
	if spec.Shape != Image {
		drawCrosshair(img)
	}
	return &Cursor{Image: img, Hotspot: image.Pt(wcur/2, hcur/2)}, nil
}

func drawCursorShape(img *image.RGBA, spec Spec, r image.Rectangle, fg color.RGBA) {
	w, h := r.Dx(), r.Dy()
	wcur, hcur := img.Bounds().Dx(), img.Bounds().Dy()
	switch spec.Shape {
	case Round:
		canvas.FillEllipse(img, r, fg)
	case Rect:
		canvas.FillRect(img, r, fg)
	case ForwardSlash:
		canvas.Line(img, wcur/2+w/2, centered(hcur, h), centered(wcur, w), hcur/2+h/2, fg, 1)
	case BackSlash:
		canvas.Line(img, centered(wcur, w), centered(hcur, h), wcur/2+w/2, hcur/2+h/2, fg, 1)
	case Image:
		draw.Draw(img, spec.Image.Bounds().Sub(spec.Image.Bounds().Min), spec.Image, spec.Image.Bounds().Min, draw.Over)
	}
}

// drawCrosshair draws alternating black and white arms around the centre,
// leaving the three middle pixels of each axis open.
func drawCrosshair(img *image.RGBA) {
	cx := img.Bounds().Dx() / 2
	cy := img.Bounds().Dy() / 2
	for d := crossReach; d >= 2; d-- {
		col := color.RGBA{A: 255}
		if (crossReach-d)%2 == 1 {
			col = color.RGBA{255, 255, 255, 255}
		}
		img.SetRGBA(cx, cy-d, col)
		img.SetRGBA(cx, cy+d, col)
		img.SetRGBA(cx-d, cy, col)
		img.SetRGBA(cx+d, cy, col)
	}
}

func centered(a, b int) int { return a/2 - b/2 }
