// Package canvas holds the paint surface and the scratch background copy
// that in-progress gestures restore from.
package canvas

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
)

// ErrScratchBusy is returned when the scratch background is already held by
// another owner.
var ErrScratchBusy = errors.New("canvas: scratch background in use")

// Canvas is a full resolution RGBA surface with a single scratch background.
type Canvas struct {
	img     *image.RGBA
	bg      *image.RGBA
	bgOwner string
}

// New returns a w×h canvas filled with fill.
func New(w, h int, fill color.Color) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{fill}, image.Point{}, draw.Src)
	return &Canvas{img: img}
}

// FromImage copies src into a new zero based canvas.
func FromImage(src image.Image) *Canvas {
	b := src.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(img, img.Bounds(), src, b.Min, draw.Src)
	return &Canvas{img: img}
}

// Surface returns the live surface. Callers mutate it in place.
func (c *Canvas) Surface() *image.RGBA { return c.img }

// Bounds returns the surface bounds.
func (c *Canvas) Bounds() image.Rectangle { return c.img.Bounds() }

// Size returns the surface width and height.
func (c *Canvas) Size() image.Point { return c.img.Bounds().Size() }

// SetSurface replaces the surface, for example after a rotate or an undo of
// a resize. Any scratch background is dropped.
func (c *Canvas) SetSurface(img *image.RGBA) {
	c.img = img
	c.bg = nil
	c.bgOwner = ""
}

// SaveBackground copies the surface into the scratch background on behalf of
// owner. Saving again for the same owner refreshes the copy.
func (c *Canvas) SaveBackground(owner string) error {
	if c.bg != nil && c.bgOwner != owner {
		return ErrScratchBusy
	}
	c.bg = Copy(c.img)
	c.bgOwner = owner
	return nil
}

// RestoreBackground copies the scratch background back over the surface.
func (c *Canvas) RestoreBackground() {
	if c.bg == nil {
		return
	}
	draw.Draw(c.img, c.img.Bounds(), c.bg, image.Point{}, draw.Src)
}

// Background returns the scratch background, or nil when none is held.
func (c *Canvas) Background() *image.RGBA { return c.bg }

// HasBackground reports whether a scratch background is held.
func (c *Canvas) HasBackground() bool { return c.bg != nil }

// ReleaseBackground drops the scratch background if owner holds it.
func (c *Canvas) ReleaseBackground(owner string) {
	if c.bgOwner != owner {
		return
	}
	c.bg = nil
	c.bgOwner = ""
}

// Snapshot returns a zero based copy of rect from the surface.
func (c *Canvas) Snapshot(rect image.Rectangle) *image.RGBA {
	return Crop(c.img, rect)
}

// Clone returns a deep copy of the surface.
func (c *Canvas) Clone() *image.RGBA { return Copy(c.img) }

// Copy returns a deep copy of img with the same bounds.
func Copy(img *image.RGBA) *image.RGBA {
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	return out
}

// Crop returns a zero based copy of rect from img. Areas of rect outside img
// are left transparent.
func Crop(img image.Image, rect image.Rectangle) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	src := rect.Intersect(img.Bounds())
	if !src.Empty() {
		draw.Draw(out, src.Sub(rect.Min), img, src.Min, draw.Src)
	}
	return out
}
