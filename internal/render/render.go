// Package render draws the canvas and the selection overlay into a window
// buffer.
package render

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"github.com/example/rasterpaint/internal/canvas"
	"github.com/example/rasterpaint/internal/selection"
	"github.com/example/rasterpaint/internal/theme"
)

// Palette holds the overlay colours.
type Palette struct {
	Background   color.RGBA
	CheckerLight color.RGBA
	CheckerDark  color.RGBA
	Tint         color.RGBA
	BorderLight  color.RGBA
	BorderDark   color.RGBA
	HandleFill   color.RGBA
	HandleBorder color.RGBA
}

// PaletteFrom extracts the overlay colours of t.
func PaletteFrom(t *theme.Theme) Palette {
	return Palette{
		Background:   t.Background,
		CheckerLight: t.CheckerLight,
		CheckerDark:  t.CheckerDark,
		Tint:         t.SelectionTint,
		BorderLight:  t.BorderLight,
		BorderDark:   t.BorderDark,
		HandleFill:   t.HandleFill,
		HandleBorder: t.HandleBorder,
	}
}

// View maps canvas pixels to window pixels.
type View struct {
	Origin image.Point
	Zoom   float64
}

// Identity draws the canvas unscaled at the buffer origin.
var Identity = View{Zoom: 1}

func (v View) zoom() float64 {
	if v.Zoom <= 0 {
		return 1
	}
	return v.Zoom
}

// Rect converts a canvas rectangle to window coordinates.
func (v View) Rect(r image.Rectangle) image.Rectangle {
	z := v.zoom()
	return image.Rect(
		v.Origin.X+int(float64(r.Min.X)*z),
		v.Origin.Y+int(float64(r.Min.Y)*z),
		v.Origin.X+int(float64(r.Max.X)*z),
		v.Origin.Y+int(float64(r.Max.Y)*z),
	)
}

// Point converts a window position to canvas coordinates.
func (v View) Point(p image.Point) image.Point {
	z := v.zoom()
	fx := float64(p.X-v.Origin.X) / z
	fy := float64(p.Y-v.Origin.Y) / z
	x, y := int(fx), int(fy)
	if fx < 0 && float64(x) != fx {
		x--
	}
	if fy < 0 && float64(y) != fy {
		y--
	}
	return image.Pt(x, y)
}

// Fit returns the zoom that fits a canvas of size into avail, capped at 1.
func Fit(size, avail image.Point) float64 {
	if size.X <= 0 || size.Y <= 0 || avail.X <= 0 || avail.Y <= 0 {
		return 1
	}
	zx := float64(avail.X) / float64(size.X)
	zy := float64(avail.Y) / float64(size.Y)
	z := min(zx, zy)
	if z > 1 {
		return 1
	}
	return z
}

// Renderer draws with a palette through a view.
type Renderer struct {
	Palette Palette
	View    View

	backdrop *image.RGBA
}

// New returns a renderer for p with the identity view.
func New(p Palette) *Renderer { return &Renderer{Palette: p, View: Identity} }

// Backdrop fills dst with the window background.
func (r *Renderer) Backdrop(dst *image.RGBA) {
	draw.Draw(dst, dst.Bounds(), &image.Uniform{r.Palette.Background}, image.Point{}, draw.Src)
}

// Canvas draws img over a checkerboard so transparent pixels are visible.
func (r *Renderer) Canvas(dst *image.RGBA, img *image.RGBA) {
	target := r.View.Rect(img.Bounds())
	r.checker(dst, target)
	if r.View.zoom() == 1 {
		draw.Draw(dst, target, img, img.Bounds().Min, draw.Over)
		return
	}
	xdraw.NearestNeighbor.Scale(dst, target, img, img.Bounds(), draw.Over, nil)
}

func (r *Renderer) checker(dst *image.RGBA, target image.Rectangle) {
	if r.backdrop == nil || r.backdrop.Bounds().Size() != target.Size() {
		r.backdrop = image.NewRGBA(image.Rect(0, 0, target.Dx(), target.Dy()))
		canvas.Checkerboard(r.backdrop, r.backdrop.Bounds(), 8, r.Palette.CheckerLight, r.Palette.CheckerDark)
	}
	draw.Draw(dst, target, r.backdrop, image.Point{}, draw.Src)
}

// Selection draws the selection overlay: a tint while the box is floating,
// the lifted image once committed, and the outline with optional handles.
func (r *Renderer) Selection(dst *image.RGBA, v selection.View) {
	if !v.Active {
		return
	}
	target := r.View.Rect(v.Rect)
	if v.Floating {
		draw.Draw(dst, target, &image.Uniform{r.Palette.Tint}, image.Point{}, draw.Over)
	} else if v.Image != nil {
		xdraw.NearestNeighbor.Scale(dst, target, v.Image, v.Image.Bounds(), draw.Over, nil)
	}

	outline := image.Rect(target.Min.X, target.Min.Y, target.Max.X-1, target.Max.Y-1)
	canvas.DashedRect(dst, outline, 3, 1, r.Palette.BorderLight, r.Palette.BorderDark)
	if !v.Borders {
		return
	}
	for _, h := range v.Handles {
		hr := r.View.Rect(h)
		draw.Draw(dst, hr, &image.Uniform{r.Palette.HandleFill}, image.Point{}, draw.Src)
		canvas.StrokeRect(dst, hr, r.Palette.HandleBorder, 1)
	}
}
