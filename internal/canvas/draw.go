package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

func setPixel(img *image.RGBA, x, y int, col color.Color) {
	if image.Pt(x, y).In(img.Bounds()) {
		img.Set(x, y, col)
	}
}

func setThickPixel(img *image.RGBA, x, y, thick int, col color.Color) {
	if thick <= 1 {
		setPixel(img, x, y, col)
		return
	}
	r := thick / 2
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			setPixel(img, x+dx, y+dy, col)
		}
	}
}

// Line draws a Bresenham line from (x0, y0) to (x1, y1) inclusive.
func Line(img *image.RGBA, x0, y0, x1, y1 int, col color.Color, thick int) {
	dx := math.Abs(float64(x1 - x0))
	dy := math.Abs(float64(y1 - y0))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		setThickPixel(img, x0, y0, thick, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// FillRect replaces the pixels of rect with col, clipped to img.
func FillRect(img *image.RGBA, rect image.Rectangle, col color.Color) {
	draw.Draw(img, rect.Intersect(img.Bounds()), &image.Uniform{col}, image.Point{}, draw.Src)
}

// FillEllipse fills the ellipse inscribed in rect. A pixel is painted when
// its centre lies inside the ellipse, so small ellipses degrade to squares.
func FillEllipse(img *image.RGBA, rect image.Rectangle, col color.Color) {
	forEllipse(rect, func(x, y int, edge bool) { setPixel(img, x, y, col) })
}

// StrokeEllipse draws the one pixel outline of the ellipse inscribed in rect.
func StrokeEllipse(img *image.RGBA, rect image.Rectangle, col color.Color) {
	forEllipse(rect, func(x, y int, edge bool) {
		if edge {
			setPixel(img, x, y, col)
		}
	})
}

func forEllipse(rect image.Rectangle, fn func(x, y int, edge bool)) {
	rect = rect.Canon()
	if rect.Empty() {
		return
	}
	rx := float64(rect.Dx()) / 2
	ry := float64(rect.Dy()) / 2
	cx := float64(rect.Min.X) + rx
	cy := float64(rect.Min.Y) + ry
	inside := func(x, y int) bool {
		if x < rect.Min.X || x >= rect.Max.X || y < rect.Min.Y || y >= rect.Max.Y {
			return false
		}
		nx := (float64(x) + 0.5 - cx) / rx
		ny := (float64(y) + 0.5 - cy) / ry
		return nx*nx+ny*ny <= 1
	}
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if !inside(x, y) {
				continue
			}
			edge := !inside(x-1, y) || !inside(x+1, y) || !inside(x, y-1) || !inside(x, y+1)
			fn(x, y, edge)
		}
	}
}

// StrokeRect draws the one pixel outline of rect.
func StrokeRect(img *image.RGBA, rect image.Rectangle, col color.Color, thick int) {
	Line(img, rect.Min.X, rect.Min.Y, rect.Max.X-1, rect.Min.Y, col, thick)
	Line(img, rect.Max.X-1, rect.Min.Y, rect.Max.X-1, rect.Max.Y-1, col, thick)
	Line(img, rect.Max.X-1, rect.Max.Y-1, rect.Min.X, rect.Max.Y-1, col, thick)
	Line(img, rect.Min.X, rect.Max.Y-1, rect.Min.X, rect.Min.Y, col, thick)
}

// DashedLine draws an axis aligned line alternating c1 and c2 every dash
// pixels.
func DashedLine(img *image.RGBA, x0, y0, x1, y1, dash, thickness int, c1, c2 color.Color) {
	dashed(img, x0, y0, x1, y1, dash, thickness, c1, c2, true)
}

func dashed(img *image.RGBA, x0, y0, x1, y1, dash, thickness int, c1, c2 color.Color, last bool) {
	if dash <= 0 {
		dash = 1
	}
	horiz := y0 == y1
	length := x1 - x0
	if !horiz {
		length = y1 - y0
	}
	step := 1
	if length < 0 {
		length = -length
		step = -1
	}
	if !last {
		length--
	}
	for i := 0; i <= length; i++ {
		col := c1
		if (i/dash)%2 == 1 {
			col = c2
		}
		for t := 0; t < thickness; t++ {
			if horiz {
				setPixel(img, x0+step*i, y0+t, col)
			} else {
				setPixel(img, x0+t, y0+step*i, col)
			}
		}
	}
}

// DashedRect draws the outline of rect with DashedLine. Each edge stops short
// of the next corner so every corner keeps the colour its edge started with.
func DashedRect(img *image.RGBA, rect image.Rectangle, dash, thickness int, c1, c2 color.Color) {
	if rect.Min == rect.Max {
		DashedLine(img, rect.Min.X, rect.Min.Y, rect.Min.X, rect.Min.Y, dash, thickness, c1, c2)
		return
	}
	dashed(img, rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y, dash, thickness, c1, c2, false)
	dashed(img, rect.Max.X, rect.Min.Y, rect.Max.X, rect.Max.Y, dash, thickness, c1, c2, false)
	dashed(img, rect.Max.X, rect.Max.Y, rect.Min.X, rect.Max.Y, dash, thickness, c1, c2, false)
	dashed(img, rect.Min.X, rect.Max.Y, rect.Min.X, rect.Min.Y, dash, thickness, c1, c2, false)
}

// Checkerboard fills rect of dst with alternating squares of light and dark.
func Checkerboard(dst *image.RGBA, rect image.Rectangle, size int, light, dark color.Color) {
	if size <= 0 {
		size = 8
	}
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if ((x/size)+(y/size))%2 == 0 {
				setPixel(dst, x, y, light)
			} else {
				setPixel(dst, x, y, dark)
			}
		}
	}
}
