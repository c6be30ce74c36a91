// Package brush describes stamp shapes and renders them onto a surface.
package brush

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/example/rasterpaint/assets"
	"github.com/example/rasterpaint/internal/canvas"
)

// DefaultBase is the diameter of the largest preset.
const DefaultBase = 17

// ErrInvalidSpec is returned for unknown shapes and unsupported sizes.
var ErrInvalidSpec = errors.New("brush: invalid spec")

// Shape is the footprint of a single stamp.
type Shape int

const (
	Round Shape = iota
	Rect
	ForwardSlash
	BackSlash
	Image
)

var shapeNames = map[Shape]string{
	Round:        "round",
	Rect:         "rect",
	ForwardSlash: "forward-slash",
	BackSlash:    "back-slash",
	Image:        "image",
}

func (s Shape) String() string {
	if n, ok := shapeNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

// Diagonal reports whether s is one of the slash shapes.
func (s Shape) Diagonal() bool { return s == ForwardSlash || s == BackSlash }

// ParseShape accepts the names produced by Shape.String plus a few aliases.
func ParseShape(v string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "round", "circle":
		return Round, nil
	case "rect", "rectangle", "square":
		return Rect, nil
	case "forward-slash", "forward", "slash", "/":
		return ForwardSlash, nil
	case "back-slash", "back", "backslash", "\\":
		return BackSlash, nil
	case "image", "stamp":
		return Image, nil
	}
	return 0, fmt.Errorf("%w: unknown shape %q", ErrInvalidSpec, v)
}

// Size selects a fraction of the base diameter.
type Size int

const (
	Large Size = iota
	Medium
	Small
	Tiny
)

var sizeDivisors = map[Size]int{Large: 1, Medium: 2, Small: 3, Tiny: 4}

func (s Size) String() string {
	switch s {
	case Large:
		return "large"
	case Medium:
		return "medium"
	case Small:
		return "small"
	case Tiny:
		return "tiny"
	}
	return fmt.Sprintf("Size(%d)", int(s))
}

// ParseSize accepts a size name or its 1 based index.
func ParseSize(v string) (Size, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "large", "1":
		return Large, nil
	case "medium", "2":
		return Medium, nil
	case "small", "3":
		return Small, nil
	case "tiny", "4":
		return Tiny, nil
	}
	return 0, fmt.Errorf("%w: unknown size %q", ErrInvalidSpec, v)
}

// Spec is an immutable stamp description.
type Spec struct {
	Shape   Shape
	Width   int
	Height  int
	Spacing float64
	Image   *image.RGBA
}

// Extent is the stamp footprint used by dirty rectangle maths.
func (s Spec) Extent() image.Point { return image.Pt(s.Width, s.Height) }

// Sized builds the spec for a preset. The diagonal shapes have no Small
// preset. When odd is set even diameters are bumped by one so the stamp has
// a centre pixel. The image stamp ignores size and uses its bitmap.
func Sized(shape Shape, size Size, base int, odd bool) (Spec, error) {
	if shape == Image {
		img, err := assets.Stamp(assets.HappyFace)
		if err != nil {
			return Spec{}, fmt.Errorf("%w: %v", ErrInvalidSpec, err)
		}
		return FromImage(img), nil
	}
	if _, ok := shapeNames[shape]; !ok {
		return Spec{}, fmt.Errorf("%w: unknown shape %d", ErrInvalidSpec, int(shape))
	}
	div, ok := sizeDivisors[size]
	if !ok || (shape.Diagonal() && size == Small) {
		return Spec{}, fmt.Errorf("%w: %s has no %s size", ErrInvalidSpec, shape, size)
	}
	d := base / div
	if d <= 0 {
		return Spec{}, fmt.Errorf("%w: %s size of base %d is empty", ErrInvalidSpec, size, base)
	}
	if odd && d%2 == 0 {
		d++
	}
	spacing := 2.0
	if shape.Diagonal() {
		spacing = 1.0
	}
	return Spec{Shape: shape, Width: d, Height: d, Spacing: spacing}, nil
}

// FromImage returns an image stamp spec spaced by the bitmap width.
func FromImage(img *image.RGBA) Spec {
	b := img.Bounds()
	return Spec{Shape: Image, Width: b.Dx(), Height: b.Dy(), Spacing: float64(b.Dx()), Image: img}
}

// Stamp draws one stamp of spec centred on p. Image stamps are composited
// over dst and ignore col.
func Stamp(dst *image.RGBA, spec Spec, p image.Point, col color.Color) {
	w, h := spec.Width, spec.Height
	if w <= 0 || h <= 0 {
		return
	}
	o := image.Pt(p.X-w/2, p.Y-h/2)
	r := image.Rect(o.X, o.Y, o.X+w, o.Y+h)
	switch spec.Shape {
	case Round:
		canvas.FillEllipse(dst, r, col)
	case Rect:
		canvas.FillRect(dst, r, col)
	case BackSlash:
		canvas.Line(dst, o.X, o.Y, o.X+w-1, o.Y+h-1, col, 1)
		canvas.Line(dst, o.X+1, o.Y, o.X+w-1, o.Y+h-2, col, 1)
	case ForwardSlash:
		canvas.Line(dst, o.X, o.Y+h-1, o.X+w-1, o.Y, col, 1)
		canvas.Line(dst, o.X+1, o.Y+h-1, o.X+w-1, o.Y+1, col, 1)
	case Image:
		if spec.Image == nil {
			return
		}
		draw.Draw(dst, r, spec.Image, spec.Image.Bounds().Min, draw.Over)
	}
}
