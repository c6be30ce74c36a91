package stroke

import (
	"image"
	"math"
	"testing"
)

func TestHorizontalSpacingTwo(t *testing.T) {
	s := New(2)
	s.Begin(image.Pt(0, 0))
	got := s.Points(image.Pt(10, 0))
	want := []image.Point{{2, 0}, {4, 0}, {6, 0}, {8, 0}, {10, 0}}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("point %d = %v, want %v", i, got[i], want[i])
		}
	}
	if s.Distance() != 10 {
		t.Fatalf("distance %v, want 10", s.Distance())
	}
	if s.Anchor() != image.Pt(10, 0) {
		t.Fatalf("anchor %v", s.Anchor())
	}
}

func TestShortMovesCarryDistance(t *testing.T) {
	s := New(2)
	s.Begin(image.Pt(0, 0))
	if pts := s.Points(image.Pt(1, 0)); len(pts) != 0 {
		t.Fatalf("first move emitted %v", pts)
	}
	pts := s.Points(image.Pt(2, 0))
	if len(pts) != 1 || pts[0] != image.Pt(2, 0) {
		t.Fatalf("second move emitted %v, want [(2,0)]", pts)
	}
	if s.Distance() != 2 {
		t.Fatalf("distance %v", s.Distance())
	}
}

func TestZeroLengthMove(t *testing.T) {
	s := New(2)
	s.Begin(image.Pt(5, 5))
	s.Points(image.Pt(7, 5))
	before := s.Distance()
	if pts := s.Points(image.Pt(7, 5)); len(pts) != 0 {
		t.Fatalf("zero move emitted %v", pts)
	}
	if s.Distance() != before {
		t.Fatalf("distance changed from %v to %v", before, s.Distance())
	}
}

func TestDiagonalSpacingOne(t *testing.T) {
	s := New(1)
	s.Begin(image.Pt(0, 0))
	pts := s.Points(image.Pt(3, 4))
	if len(pts) != 5 {
		t.Fatalf("got %d points %v, want 5", len(pts), pts)
	}
	if pts[len(pts)-1] != image.Pt(3, 4) {
		t.Fatalf("last point %v", pts[len(pts)-1])
	}
}

func TestBoundsIncludeStampsAndStart(t *testing.T) {
	s := New(2)
	s.Begin(image.Pt(10, 10))
	s.To(image.Pt(50, 30), nil)
	b := s.Bounds()
	if b.Min != image.Pt(10, 10) {
		t.Fatalf("min %v", b.Min)
	}
	if b.Max.X > 50 || b.Max.Y > 30 || b.Max.X < 48 {
		t.Fatalf("max %v", b.Max)
	}
}

func TestNonPositiveSpacingEmitsNothing(t *testing.T) {
	s := New(0)
	s.Begin(image.Pt(0, 0))
	if pts := s.Points(image.Pt(10, 0)); len(pts) != 0 {
		t.Fatalf("emitted %v", pts)
	}
	if s.Distance() != 10 {
		t.Fatalf("distance %v", s.Distance())
	}
}

type stamped struct {
	at  image.Point
	arc float64
}

// trace runs a fresh interpolator along poly and records every stamp with
// the path distance it was emitted at.
func trace(spacing float64, poly []image.Point) ([]stamped, float64) {
	s := New(spacing)
	s.Begin(poly[0])
	var out []stamped
	for _, p := range poly[1:] {
		s.To(p, func(q image.Point) {
			out = append(out, stamped{q, s.Distance()})
		})
	}
	return out, s.Distance()
}

func pathLength(poly []image.Point) float64 {
	total := 0.0
	for i := 1; i < len(poly); i++ {
		d := poly[i].Sub(poly[i-1])
		total += math.Hypot(float64(d.X), float64(d.Y))
	}
	return total
}

// pointAt returns the point at distance d along an axis aligned polyline.
func pointAt(poly []image.Point, d float64) image.Point {
	for i := 1; i < len(poly); i++ {
		seg := poly[i].Sub(poly[i-1])
		l := math.Abs(float64(seg.X + seg.Y))
		if d <= l+Epsilon {
			step := image.Pt(sign(seg.X), sign(seg.Y))
			return poly[i-1].Add(step.Mul(int(math.Round(d))))
		}
		d -= l
	}
	return poly[len(poly)-1]
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func TestStampsEvenlySpacedAlongPolyline(t *testing.T) {
	square := []image.Point{{0, 0}, {10, 0}, {10, 8}, {3, 8}, {3, 1}}
	zigzag := []image.Point{{5, 5}, {5, 6}, {9, 6}, {9, 2}, {30, 2}}
	diagonal := []image.Point{{0, 0}, {3, 4}, {9, 12}, {9, 20}}
	stampWidth := float64(7)
	tests := []struct {
		name    string
		poly    []image.Point
		spacing float64
		aligned bool
	}{
		{"square/1", square, 1, true},
		{"square/2", square, 2, true},
		{"square/stamp", square, stampWidth, true},
		{"zigzag/2", zigzag, 2, true},
		{"zigzag/stamp", zigzag, stampWidth, true},
		{"diagonal/1", diagonal, 1, false},
		{"diagonal/2", diagonal, 2, false},
		{"diagonal/stamp", diagonal, stampWidth, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, dist := trace(tt.spacing, tt.poly)
			length := pathLength(tt.poly)
			if math.Abs(dist-length) > 1e-9 {
				t.Fatalf("distance %v, want path length %v", dist, length)
			}
			if want := int(length/tt.spacing + Epsilon); len(got) != want {
				t.Fatalf("%d stamps, want %d", len(got), want)
			}
			for i, st := range got {
				if want := float64(i+1) * tt.spacing; math.Abs(st.arc-want) > 1e-9 {
					t.Fatalf("stamp %d at path distance %v, want %v", i, st.arc, want)
				}
				// positions are truncated, so allow a pixel of rounding
				if tt.aligned {
					want := pointAt(tt.poly, st.arc)
					if d := st.at.Sub(want); abs(d.X) > 1 || abs(d.Y) > 1 || (d.X != 0 && d.Y != 0) {
						t.Fatalf("stamp %d at %v, want %v", i, st.at, want)
					}
				}
			}

			again, againDist := trace(tt.spacing, tt.poly)
			if againDist != dist || len(again) != len(got) {
				t.Fatalf("replay gave %d stamps over %v", len(again), againDist)
			}
			for i := range got {
				if again[i].at != got[i].at {
					t.Fatalf("replay stamp %d at %v, want %v", i, again[i].at, got[i].at)
				}
			}
		})
	}
}
