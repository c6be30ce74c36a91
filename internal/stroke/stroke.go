// Package stroke turns pointer motion into evenly spaced stamp positions.
package stroke

import (
	"image"
	"math"
)

// Epsilon absorbs floating point drift when deciding whether the next stamp
// still falls on the current segment.
const Epsilon = 1e-5

// Box is an inclusive bounding box of stamp centres.
type Box struct {
	Min, Max image.Point
}

// NewBox returns a box containing only p.
func NewBox(p image.Point) Box { return Box{Min: p, Max: p} }

// Extend grows b to include p.
func (b *Box) Extend(p image.Point) {
	b.Min.X = min(b.Min.X, p.X)
	b.Min.Y = min(b.Min.Y, p.Y)
	b.Max.X = max(b.Max.X, p.X)
	b.Max.Y = max(b.Max.Y, p.Y)
}

// Interpolator carries the state of one drag gesture.
type Interpolator struct {
	Spacing  float64
	anchor   image.Point
	distance float64
	bounds   Box
}

// New returns an interpolator that emits a point every spacing pixels.
func New(spacing float64) *Interpolator {
	return &Interpolator{Spacing: spacing}
}

// Begin starts a stroke at p.
func (s *Interpolator) Begin(p image.Point) {
	s.anchor = p
	s.distance = 0
	s.bounds = NewBox(p)
}

// Anchor returns the last point passed to Begin or To.
func (s *Interpolator) Anchor() image.Point { return s.anchor }

// Distance returns the cumulative distance travelled.
func (s *Interpolator) Distance() float64 { return s.distance }

// Bounds returns the bounding box of the stroke so far.
func (s *Interpolator) Bounds() Box { return s.bounds }

// To moves the stroke from the anchor to p, calling stamp for every spacing
// boundary crossed on the way. Stamp positions are truncated toward zero.
func (s *Interpolator) To(p image.Point, stamp func(image.Point)) {
	dx := float64(p.X - s.anchor.X)
	dy := float64(p.Y - s.anchor.Y)
	moved := math.Sqrt(dx*dx + dy*dy)
	initial := s.distance
	final := initial + moved

	if s.Spacing > 0 {
		for s.distance < final {
			points := int(s.distance/s.Spacing + 1.0 + Epsilon)
			next := float64(points)*s.Spacing - s.distance
			s.distance += next
			if s.distance <= final+Epsilon {
				percent := (s.distance - initial) / moved
				q := image.Pt(
					int(float64(s.anchor.X)+percent*dx),
					int(float64(s.anchor.Y)+percent*dy),
				)
				s.bounds.Extend(q)
				if stamp != nil {
					stamp(q)
				}
			}
		}
	}

	s.distance = final
	s.anchor = p
}

// Points is To collecting the stamp positions.
func (s *Interpolator) Points(p image.Point) []image.Point {
	var pts []image.Point
	s.To(p, func(q image.Point) { pts = append(pts, q) })
	return pts
}
