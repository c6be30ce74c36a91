package selection

import (
	"fmt"
	"image"
)

// HandleSize is the edge length of a resize handle.
const HandleSize = 4

// Region is a part of the selection a pointer can grab.
type Region int

const (
	None Region = iota
	TopLeft
	TopMid
	TopRight
	MidLeft
	MidRight
	BottomLeft
	BottomMid
	BottomRight
	ClipBox
)

var regionNames = map[Region]string{
	None:        "none",
	TopLeft:     "top-left",
	TopMid:      "top-mid",
	TopRight:    "top-right",
	MidLeft:     "mid-left",
	MidRight:    "mid-right",
	BottomLeft:  "bottom-left",
	BottomMid:   "bottom-mid",
	BottomRight: "bottom-right",
	ClipBox:     "clip-box",
}

func (r Region) String() string {
	if n, ok := regionNames[r]; ok {
		return n
	}
	return fmt.Sprintf("Region(%d)", int(r))
}

// Cursor names the pointer shape shown over r.
func (r Region) Cursor() string {
	switch r {
	case TopLeft:
		return "top_left_corner"
	case TopMid:
		return "top_side"
	case TopRight:
		return "top_right_corner"
	case MidLeft:
		return "left_side"
	case MidRight:
		return "right_side"
	case BottomLeft:
		return "bottom_left_corner"
	case BottomMid:
		return "bottom_side"
	case BottomRight:
		return "bottom_right_corner"
	case ClipBox:
		return "fleur"
	}
	return "dotbox"
}

// hitOrder is the order regions are tested in; handles win over the box.
var hitOrder = [...]Region{TopLeft, TopMid, TopRight, MidRight, BottomRight, BottomMid, BottomLeft, MidLeft, ClipBox}

// Box is an axis aligned box with inclusive corners.
type Box struct {
	Min, Max image.Point
}

// Contains reports whether p lies in b, edges included.
func (b Box) Contains(p image.Point) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Rect converts b to a half open rectangle.
func (b Box) Rect() image.Rectangle {
	return image.Rect(b.Min.X, b.Min.Y, b.Max.X+1, b.Max.Y+1)
}

// Clip is the selection rectangle as two stored corners. Dragging can leave
// P0 below or right of P1 until the box is normalised again.
type Clip struct {
	P0, P1 image.Point
}

// NewClip returns the normalised clip box spanning a and b.
func NewClip(a, b image.Point) Clip {
	return Clip{
		P0: image.Pt(min(a.X, b.X), min(a.Y, b.Y)),
		P1: image.Pt(max(a.X, b.X), max(a.Y, b.Y)),
	}
}

// Normalize returns c with P0 as the minimum corner.
func (c Clip) Normalize() Clip { return NewClip(c.P0, c.P1) }

// Rect returns the pixels covered by c, both corners included.
func (c Clip) Rect() image.Rectangle {
	n := c.Normalize()
	return image.Rect(n.P0.X, n.P0.Y, n.P1.X+1, n.P1.Y+1)
}

// Handles returns the handle boxes of the normalised clip box indexed by
// Region. The None entry is unused.
func (c Clip) Handles() [ClipBox + 1]Box {
	n := c.Normalize()
	const s = HandleSize
	xl, yt, xr, yb := n.P0.X, n.P0.Y, n.P1.X, n.P1.Y
	xm := (xl + xr) / 2
	ym := (yt + yb) / 2
	var h [ClipBox + 1]Box
	h[TopLeft] = Box{image.Pt(xl, yt), image.Pt(xl+s, yt+s)}
	h[TopMid] = Box{image.Pt(xm-s/2, yt), image.Pt(xm+s/2, yt+s)}
	h[TopRight] = Box{image.Pt(xr-s, yt), image.Pt(xr, yt+s)}
	h[MidLeft] = Box{image.Pt(xl, ym-s/2), image.Pt(xl+s, ym+s/2)}
	h[MidRight] = Box{image.Pt(xr-s, ym-s/2), image.Pt(xr, ym+s/2)}
	h[BottomLeft] = Box{image.Pt(xl, yb-s), image.Pt(xl+s, yb)}
	h[BottomMid] = Box{image.Pt(xm-s/2, yb-s), image.Pt(xm+s/2, yb)}
	h[BottomRight] = Box{image.Pt(xr-s, yb-s), image.Pt(xr, yb)}
	h[ClipBox] = Box{n.P0, n.P1}
	return h
}

// HitTest returns the first region containing p, or None.
func (c Clip) HitTest(p image.Point) Region {
	h := c.Handles()
	for _, r := range hitOrder {
		if h[r].Contains(p) {
			return r
		}
	}
	return None
}

// Drag moves the corners grabbed by r by d. Corner handles move both axes of
// their corner, edge handles one axis and ClipBox translates the whole box.
// Nothing is clamped.
func (c *Clip) Drag(r Region, d image.Point) {
	switch r {
	case TopLeft:
		c.P0.Y += d.Y
		c.P0.X += d.X
	case MidLeft:
		c.P0.X += d.X
	case TopRight:
		c.P1.X += d.X
		c.P0.Y += d.Y
	case TopMid:
		c.P0.Y += d.Y
	case BottomLeft:
		c.P0.X += d.X
		c.P1.Y += d.Y
	case BottomMid:
		c.P1.Y += d.Y
	case ClipBox:
		c.P0 = c.P0.Add(d)
		c.P1 = c.P1.Add(d)
	case BottomRight:
		c.P1 = c.P1.Add(d)
	case MidRight:
		c.P1.X += d.X
	}
}
