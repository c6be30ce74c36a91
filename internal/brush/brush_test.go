package brush

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

var (
	black = color.RGBA{A: 255}
	white = color.RGBA{255, 255, 255, 255}
)

func TestSizedPresets(t *testing.T) {
	cases := []struct {
		shape Shape
		size  Size
		odd   bool
		want  int
	}{
		{Round, Large, true, 17},
		{Round, Medium, true, 9},
		{Round, Small, true, 5},
		{Rect, Tiny, true, 5},
		{Round, Medium, false, 8},
		{Rect, Tiny, false, 4},
		{BackSlash, Tiny, false, 4},
	}
	for _, c := range cases {
		spec, err := Sized(c.shape, c.size, DefaultBase, c.odd)
		if err != nil {
			t.Fatalf("%s %s: %v", c.shape, c.size, err)
		}
		if spec.Width != c.want || spec.Height != c.want {
			t.Errorf("%s %s odd=%v: got %dx%d, want %d", c.shape, c.size, c.odd, spec.Width, spec.Height, c.want)
		}
	}
}

func TestSizedSpacing(t *testing.T) {
	round, _ := Sized(Round, Large, DefaultBase, true)
	slash, _ := Sized(ForwardSlash, Large, DefaultBase, true)
	stamp, err := Sized(Image, Large, DefaultBase, true)
	if err != nil {
		t.Fatalf("image: %v", err)
	}
	if round.Spacing != 2 || slash.Spacing != 1 || stamp.Spacing != 30 {
		t.Fatalf("spacing round=%v slash=%v image=%v", round.Spacing, slash.Spacing, stamp.Spacing)
	}
}

func TestSizedRejects(t *testing.T) {
	if _, err := Sized(ForwardSlash, Small, DefaultBase, true); !errors.Is(err, ErrInvalidSpec) {
		t.Errorf("diagonal small: %v", err)
	}
	if _, err := Sized(Shape(42), Large, DefaultBase, true); !errors.Is(err, ErrInvalidSpec) {
		t.Errorf("unknown shape: %v", err)
	}
	if _, err := Sized(Round, Tiny, 3, true); !errors.Is(err, ErrInvalidSpec) {
		t.Errorf("zero size: %v", err)
	}
	if _, err := ParseShape("blob"); !errors.Is(err, ErrInvalidSpec) {
		t.Errorf("parse shape: %v", err)
	}
}

func TestStampRoundAndRectAgreeAtThree(t *testing.T) {
	a := image.NewRGBA(image.Rect(0, 0, 8, 8))
	b := image.NewRGBA(image.Rect(0, 0, 8, 8))
	Stamp(a, Spec{Shape: Round, Width: 3, Height: 3}, image.Pt(4, 4), black)
	Stamp(b, Spec{Shape: Rect, Width: 3, Height: 3}, image.Pt(4, 4), black)
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("round and rect differ at byte %d", i)
		}
	}
	if a.RGBAAt(3, 3) != black || a.RGBAAt(5, 5) != black || a.RGBAAt(6, 6).A != 0 {
		t.Fatal("unexpected 3x3 footprint")
	}
}

func TestStampSlashes(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	Stamp(img, Spec{Shape: BackSlash, Width: 5, Height: 5}, image.Pt(10, 10), black)
	// origin is (8, 8)
	for _, p := range []image.Point{{8, 8}, {12, 12}, {9, 8}, {12, 11}} {
		if img.RGBAAt(p.X, p.Y) != black {
			t.Errorf("back slash missing %v", p)
		}
	}
	if img.RGBAAt(8, 12).A != 0 {
		t.Error("back slash painted the wrong diagonal")
	}

	img = image.NewRGBA(image.Rect(0, 0, 20, 20))
	Stamp(img, Spec{Shape: ForwardSlash, Width: 5, Height: 5}, image.Pt(10, 10), black)
	for _, p := range []image.Point{{8, 12}, {12, 8}, {9, 12}, {12, 9}} {
		if img.RGBAAt(p.X, p.Y) != black {
			t.Errorf("forward slash missing %v", p)
		}
	}
}

func TestStampImageComposites(t *testing.T) {
	spec, err := Sized(Image, Large, DefaultBase, true)
	if err != nil {
		t.Fatal(err)
	}
	img := image.NewRGBA(image.Rect(0, 0, 60, 60))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	Stamp(img, spec, image.Pt(30, 30), black)
	if img.RGBAAt(15, 15) != white {
		t.Error("transparent stamp corner overwrote the canvas")
	}
	if c := img.RGBAAt(30, 30); c.B != 0 || c.R != 255 {
		t.Errorf("stamp centre %v, want yellow", c)
	}
}

func TestStampClipsAtEdges(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	Stamp(img, Spec{Shape: Rect, Width: 17, Height: 17}, image.Pt(0, 0), black)
	if img.RGBAAt(3, 3) != black {
		t.Fatal("visible part not painted")
	}
}

func TestKeyColor(t *testing.T) {
	if k, _ := KeyColor(black, white); k != white {
		t.Errorf("distinct colours: key %v", k)
	}
	k, ok := KeyColor(black, black)
	if !ok || k == black || k != (color.RGBA{R: 1, A: 255}) {
		t.Errorf("equal colours: key %v ok=%v", k, ok)
	}
	red := color.RGBA{R: 0, A: 255}
	if k, _ := KeyColor(red, red); k == red {
		t.Errorf("key collides with fg")
	}
}

func TestBrushCursorGeometry(t *testing.T) {
	spec, _ := Sized(Round, Small, DefaultBase, true)
	cur, err := BrushCursor(spec, black, white)
	if err != nil {
		t.Fatal(err)
	}
	if cur.Image.Bounds().Dx() != 19 || cur.Image.Bounds().Dy() != 19 {
		t.Fatalf("cursor size %v", cur.Image.Bounds())
	}
	if cur.Hotspot != image.Pt(9, 9) {
		t.Fatalf("hotspot %v", cur.Hotspot)
	}
	if cur.Image.RGBAAt(0, 0).A != 0 {
		t.Error("key colour not transparent")
	}
	if cur.Image.RGBAAt(9, 0) != black || cur.Image.RGBAAt(9, 1) != white {
		t.Errorf("crosshair arm %v %v", cur.Image.RGBAAt(9, 0), cur.Image.RGBAAt(9, 1))
	}
	if cur.Image.RGBAAt(9, 9) != black {
		t.Error("brush footprint missing at the centre")
	}
}

func TestBrushCursorLargeShape(t *testing.T) {
	spec := Spec{Shape: Rect, Width: 25, Height: 25, Spacing: 2}
	cur, err := BrushCursor(spec, black, black)
	if err != nil {
		t.Fatal(err)
	}
	if cur.Image.Bounds().Dx() != 25 || cur.Hotspot != image.Pt(12, 12) {
		t.Fatalf("bounds %v hotspot %v", cur.Image.Bounds(), cur.Hotspot)
	}
}

func TestImageCursorHasNoCrosshair(t *testing.T) {
	spec, _ := Sized(Image, Large, DefaultBase, true)
	cur, err := BrushCursor(spec, black, white)
	if err != nil {
		t.Fatal(err)
	}
	if cur.Image.Bounds().Dx() != 30 || cur.Hotspot != image.Pt(15, 15) {
		t.Fatalf("bounds %v hotspot %v", cur.Image.Bounds(), cur.Hotspot)
	}
	if cur.Image.RGBAAt(15, 7).B != 0 {
		t.Error("crosshair drawn over image stamp")
	}
}

func TestEraserCursorOutline(t *testing.T) {
	spec, _ := Sized(Rect, Medium, DefaultBase, false)
	cur, err := EraserCursor(spec, black, white)
	if err != nil {
		t.Fatal(err)
	}
	// 8x8 box centred in 19x19 starts at 9-4 = 5
	if cur.Image.RGBAAt(5, 5) != black {
		t.Errorf("outline corner %v", cur.Image.RGBAAt(5, 5))
	}
	if cur.Image.RGBAAt(7, 7) != white {
		t.Errorf("fill %v", cur.Image.RGBAAt(7, 7))
	}
	if cur.Image.RGBAAt(0, 0).A != 0 {
		t.Error("background not keyed")
	}
}

func TestCursorRejectsEmptySpec(t *testing.T) {
	if _, err := BrushCursor(Spec{}, black, white); !errors.Is(err, ErrCursor) {
		t.Fatalf("got %v", err)
	}
}
