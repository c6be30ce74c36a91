// Package imageops holds whole-image pixel transforms used by the selection
// and the image menu.
package imageops

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// Axis selects the mirror direction for Flip.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

// Angle is a counter-clockwise rotation in degrees.
type Angle int

const (
	Rotate90  Angle = 90
	Rotate180 Angle = 180
	Rotate270 Angle = 270
)

// ParseAngle accepts 90, 180 and 270, plus the aliases ccw, half and cw.
func ParseAngle(v string) (Angle, error) {
	switch v {
	case "90", "ccw":
		return Rotate90, nil
	case "180", "half":
		return Rotate180, nil
	case "270", "cw":
		return Rotate270, nil
	}
	return 0, fmt.Errorf("unsupported rotation %q", v)
}

// ToRGBA returns img as a zero based RGBA copy. Images without alpha come
// out fully opaque.
func ToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// Invert replaces every colour channel c with 255-c, leaving alpha alone.
// Premultiplied pixels are inverted within their alpha.
func Invert(img *image.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Max.X, y)]
		for i := 0; i < len(row); i += 4 {
			a := row[i+3]
			row[i] = a - row[i]
			row[i+1] = a - row[i+1]
			row[i+2] = a - row[i+2]
		}
	}
}

// Flip mirrors img in place.
func Flip(img *image.RGBA, axis Axis) {
	b := img.Bounds()
	switch axis {
	case Horizontal:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for l, r := b.Min.X, b.Max.X-1; l < r; l, r = l+1, r-1 {
				lc, rc := img.RGBAAt(l, y), img.RGBAAt(r, y)
				img.SetRGBA(l, y, rc)
				img.SetRGBA(r, y, lc)
			}
		}
	case Vertical:
		stride := b.Dx() * 4
		tmp := make([]byte, stride)
		for t, bt := b.Min.Y, b.Max.Y-1; t < bt; t, bt = t+1, bt-1 {
			top := img.Pix[img.PixOffset(b.Min.X, t) : img.PixOffset(b.Min.X, t)+stride]
			bot := img.Pix[img.PixOffset(b.Min.X, bt) : img.PixOffset(b.Min.X, bt)+stride]
			copy(tmp, top)
			copy(top, bot)
			copy(bot, tmp)
		}
	}
}

// Rotate returns a zero based copy of img turned counter-clockwise by angle.
func Rotate(img *image.RGBA, angle Angle) (*image.RGBA, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	var out *image.RGBA
	var at func(x, y int) (int, int)
	switch angle {
	case Rotate90:
		out = image.NewRGBA(image.Rect(0, 0, h, w))
		at = func(x, y int) (int, int) { return y, w - 1 - x }
	case Rotate180:
		out = image.NewRGBA(image.Rect(0, 0, w, h))
		at = func(x, y int) (int, int) { return w - 1 - x, h - 1 - y }
	case Rotate270:
		out = image.NewRGBA(image.Rect(0, 0, h, w))
		at = func(x, y int) (int, int) { return h - 1 - y, x }
	default:
		return nil, fmt.Errorf("unsupported rotation %d", angle)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			nx, ny := at(x, y)
			out.SetRGBA(nx, ny, img.RGBAAt(b.Min.X+x, b.Min.Y+y))
		}
	}
	return out, nil
}

// KeyColor clears every opaque pixel of img whose colour matches c,
// returning how many pixels were keyed.
func KeyColor(img *image.RGBA, c color.RGBA) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			p := img.RGBAAt(x, y)
			if p.A == 255 && p.R == c.R && p.G == c.G && p.B == c.B {
				img.SetRGBA(x, y, color.RGBA{})
				n++
			}
		}
	}
	return n
}

// Keyed returns a copy of img with c keyed out.
func Keyed(img *image.RGBA, c color.RGBA) *image.RGBA {
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	KeyColor(out, c)
	return out
}
