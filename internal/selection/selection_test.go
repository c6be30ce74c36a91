package selection

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/example/rasterpaint/internal/canvas"
	"github.com/example/rasterpaint/internal/imageops"
	"github.com/example/rasterpaint/internal/undo"
)

var (
	white = color.RGBA{255, 255, 255, 255}
	red   = color.RGBA{R: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
)

type recordLog struct {
	appends []image.Rectangle
	kinds   []undo.Kind
}

func (r *recordLog) Append(rect image.Rectangle, before image.Image, kind undo.Kind) {
	r.appends = append(r.appends, rect)
	r.kinds = append(r.kinds, kind)
}

func (r *recordLog) AppendResize(w, h int) {}

func newTestSelection(t *testing.T) (*Selection, *canvas.Canvas, *recordLog) {
	t.Helper()
	c := canvas.New(100, 100, white)
	l := &recordLog{}
	s := New(c, l, WithBackground(white))
	s.Init()
	return s, c, l
}

func solid(w, h int, col color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	canvas.FillRect(img, img.Bounds(), col)
	return img
}

func TestCreateFromSource(t *testing.T) {
	s, c, l := newTestSelection(t)
	src := solid(10, 10, red)
	start, end := image.Pt(0, 0), image.Pt(10, 10)
	if !s.Create(&start, &end, src) {
		t.Fatal("create failed")
	}
	if !s.HasImage() {
		t.Fatal("no image")
	}
	got := s.Image()
	if got.Bounds() != image.Rect(0, 0, 10, 10) {
		t.Fatalf("bounds %v", got.Bounds())
	}
	for i := range got.Pix {
		if got.Pix[i] != src.Pix[i] {
			t.Fatalf("pixel byte %d differs", i)
		}
	}
	if s.Rect() != image.Rect(0, 0, 10, 10) {
		t.Fatalf("rect %v", s.Rect())
	}
	if len(l.appends) != 0 {
		t.Fatal("pasting must not touch the undo log")
	}
	if c.Surface().RGBAAt(5, 5) != white {
		t.Fatal("pasting must not touch the canvas")
	}
	if s.Floating() || !s.Active() || !s.Borders() {
		t.Fatalf("state floating=%v active=%v borders=%v", s.Floating(), s.Active(), s.Borders())
	}
}

func TestCreatePreconditions(t *testing.T) {
	s, _, _ := newTestSelection(t)
	p := image.Pt(1, 1)
	if s.Create(nil, &p, nil) || s.Create(&p, nil, nil) {
		t.Fatal("create with nil point succeeded")
	}
	s.Clear()
	q := image.Pt(5, 5)
	if s.Create(&p, &q, nil) {
		t.Fatal("create on a cleared selection succeeded")
	}
}

func TestCommitLiftsCanvas(t *testing.T) {
	s, c, l := newTestSelection(t)
	canvas.FillRect(c.Surface(), image.Rect(10, 10, 20, 20), red)
	start, end := image.Pt(10, 10), image.Pt(19, 19)
	s.Create(&start, &end, nil)
	if len(l.appends) != 1 || l.appends[0] != c.Bounds() || l.kinds[0] != undo.RectSelect {
		t.Fatalf("undo appends %v %v", l.appends, l.kinds)
	}
	if c.Surface().RGBAAt(15, 15) != white {
		t.Fatal("source region not filled with background")
	}
	if s.Image().RGBAAt(0, 0) != red {
		t.Fatal("lifted image wrong")
	}
}

func TestFloatingRoundTripRestoresPixels(t *testing.T) {
	s, c, _ := newTestSelection(t)
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			c.Surface().SetRGBA(x, y, color.RGBA{uint8(x), uint8(y), uint8(x + y), 255})
		}
	}
	before := c.Clone()
	start, end := image.Pt(20, 30), image.Pt(45, 60)
	s.Create(&start, &end, nil)
	s.SetFloating(true)
	if s.HasImage() {
		t.Fatal("image kept after going floating")
	}
	for i := range before.Pix {
		if before.Pix[i] != c.Surface().Pix[i] {
			t.Fatalf("canvas byte %d differs after round trip", i)
		}
	}
}

func TestFloatingRoundTripKeepsTranslucentPixels(t *testing.T) {
	c := canvas.New(20, 20, color.RGBA{})
	c.Surface().SetRGBA(5, 5, color.RGBA{R: 40, A: 128})
	s := New(c, &recordLog{}, WithBackground(white))
	s.Init()
	before := c.Clone()
	start, end := image.Pt(0, 0), image.Pt(9, 9)
	s.Create(&start, &end, nil)
	if got := c.Surface().RGBAAt(5, 5); got != white {
		t.Fatalf("lifted region holds %v, want background", got)
	}
	s.SetFloating(true)
	for i := range before.Pix {
		if before.Pix[i] != c.Surface().Pix[i] {
			t.Fatalf("canvas byte %d is %d after round trip, want %d", i, c.Surface().Pix[i], before.Pix[i])
		}
	}
}

func TestViewCompositeReplacesUnlessKeyed(t *testing.T) {
	s, c, _ := newTestSelection(t)
	src := solid(4, 4, color.RGBA{})
	src.SetRGBA(0, 0, red)
	start, end := image.Pt(0, 0), image.Pt(4, 4)
	s.Create(&start, &end, src)
	dst := c.Clone()
	s.View().Composite(dst)
	if got := dst.RGBAAt(1, 1); got != (color.RGBA{}) {
		t.Fatalf("unkeyed composite gave %v, want transparent", got)
	}
	s.SetTransparent(true)
	dst = c.Clone()
	s.View().Composite(dst)
	if got := dst.RGBAAt(1, 1); got != white {
		t.Fatalf("keyed composite gave %v, want canvas", got)
	}
	if got := dst.RGBAAt(0, 0); got != red {
		t.Fatalf("keyed composite lost %v", got)
	}
}

func TestMovedSelectionCompositesAtNewPlace(t *testing.T) {
	s, c, _ := newTestSelection(t)
	canvas.FillRect(c.Surface(), image.Rect(0, 0, 30, 30), red)
	start, end := image.Pt(0, 0), image.Pt(29, 29)
	s.Create(&start, &end, nil)
	if !s.StartAction(image.Pt(15, 15)) || s.Action() != ClipBox {
		t.Fatalf("action %s", s.Action())
	}
	s.DoAction(image.Pt(65, 65))
	s.SetFloating(true)
	if c.Surface().RGBAAt(55, 55) != red || c.Surface().RGBAAt(5, 5) != white {
		t.Fatal("selection did not move")
	}
}

func TestResizedSelectionScales(t *testing.T) {
	s, c, _ := newTestSelection(t)
	src := solid(10, 10, blue)
	start, end := image.Pt(0, 0), image.Pt(10, 10)
	s.Create(&start, &end, src)
	s.StartAction(image.Pt(9, 9))
	if s.Action() != BottomRight {
		t.Fatalf("action %s", s.Action())
	}
	s.DoAction(image.Pt(19, 19))
	s.SetFloating(true)
	if c.Surface().RGBAAt(18, 18) != blue {
		t.Fatalf("scaled pixel %v", c.Surface().RGBAAt(18, 18))
	}
}

func TestRotateReanchors(t *testing.T) {
	s, _, _ := newTestSelection(t)
	src := solid(20, 30, red)
	start, end := image.Pt(5, 7), image.Pt(25, 37)
	s.Create(&start, &end, src)
	if s.Rect() != image.Rect(5, 7, 25, 37) {
		t.Fatalf("rect before %v", s.Rect())
	}
	if err := s.Rotate(imageops.Rotate90); err != nil {
		t.Fatal(err)
	}
	r := s.Rect()
	if r.Min != image.Pt(5, 7) || r.Dx() != 30 || r.Dy() != 20 {
		t.Fatalf("rect after %v", r)
	}
}

func TestCreateFromSourceWithReversedCorners(t *testing.T) {
	s, _, _ := newTestSelection(t)
	start, end := image.Pt(30, 40), image.Pt(20, 30)
	if !s.Create(&start, &end, solid(10, 10, red)) {
		t.Fatal("create failed")
	}
	if r := s.Rect(); r != image.Rect(20, 30, 30, 40) {
		t.Fatalf("rect %v, want the source size", r)
	}

	start, end = image.Pt(50, 10), image.Pt(40, 20)
	s.Create(&start, &end, solid(6, 4, blue))
	if r := s.Rect(); r != image.Rect(40, 10, 46, 14) {
		t.Fatalf("rect %v", r)
	}
}

func TestCreateFromEmptySource(t *testing.T) {
	s, _, _ := newTestSelection(t)
	start, end := image.Pt(0, 0), image.Pt(5, 5)
	if s.Create(&start, &end, image.NewRGBA(image.Rect(0, 0, 0, 3))) {
		t.Fatal("empty source created a selection")
	}
	if s.Active() || s.HasImage() {
		t.Fatal("selection changed")
	}
}

func TestTransformsWithoutImage(t *testing.T) {
	s, _, _ := newTestSelection(t)
	if err := s.Invert(); !errors.Is(err, ErrNoSelection) {
		t.Errorf("invert: %v", err)
	}
	if err := s.Flip(imageops.Horizontal); !errors.Is(err, ErrNoSelection) {
		t.Errorf("flip: %v", err)
	}
	if err := s.Rotate(imageops.Rotate180); !errors.Is(err, ErrNoSelection) {
		t.Errorf("rotate: %v", err)
	}
	if err := s.DrawAndClear(true); !errors.Is(err, ErrNoSelection) {
		t.Errorf("draw and clear: %v", err)
	}
}

func TestInvertInPlace(t *testing.T) {
	s, _, _ := newTestSelection(t)
	start, end := image.Pt(0, 0), image.Pt(2, 2)
	s.Create(&start, &end, solid(2, 2, red))
	if err := s.Invert(); err != nil {
		t.Fatal(err)
	}
	if got := s.Image().RGBAAt(0, 0); got != (color.RGBA{0, 255, 255, 255}) {
		t.Fatalf("inverted %v", got)
	}
}

func TestTransparentKeysBackground(t *testing.T) {
	s, c, _ := newTestSelection(t)
	canvas.FillRect(c.Surface(), image.Rect(60, 60, 100, 100), blue)
	src := solid(4, 4, white)
	src.SetRGBA(0, 0, red)
	start, end := image.Pt(60, 60), image.Pt(64, 64)
	s.Create(&start, &end, src)
	s.SetTransparent(true)
	if s.Image().RGBAAt(1, 1).A != 0 || s.Image().RGBAAt(0, 0) != red {
		t.Fatal("background not keyed")
	}
	s.SetFloating(true)
	if c.Surface().RGBAAt(61, 61) != blue || c.Surface().RGBAAt(60, 60) != red {
		t.Fatal("keyed pixels replaced the canvas")
	}

	s.SetTransparent(false)
	start, end = image.Pt(0, 0), image.Pt(4, 4)
	s.Create(&start, &end, src)
	if s.Image().RGBAAt(1, 1) != white {
		t.Fatal("opaque mode still keyed")
	}
}

func TestDrawAndClear(t *testing.T) {
	s, c, _ := newTestSelection(t)
	start, end := image.Pt(10, 10), image.Pt(14, 14)
	s.Create(&start, &end, solid(4, 4, red))
	if err := s.DrawAndClear(true); err != nil {
		t.Fatal(err)
	}
	if s.HasImage() || s.Borders() || !s.Floating() {
		t.Fatal("selection not cleared")
	}
	if c.Surface().RGBAAt(11, 11) != red {
		t.Fatal("image not flattened")
	}
	if s.Start() != image.Pt(9, 9) {
		t.Fatalf("parked at %v", s.Start())
	}

	s.Create(&start, &end, solid(4, 4, blue))
	s.DrawAndClear(false)
	if c.Surface().RGBAAt(11, 11) != red {
		t.Fatal("discarded image was drawn")
	}
}

func TestPasteEvents(t *testing.T) {
	c := canvas.New(50, 50, white)
	var events []Event
	s := New(c, nil, WithEventHandler(func(e Event) { events = append(events, e) }))
	pal := image.NewPaletted(image.Rect(0, 0, 3, 2), color.Palette{red})
	s.Paste(pal)
	if len(events) != 1 || events[0] != EventPasteRequested || !s.HasPending() {
		t.Fatalf("events %v", events)
	}
	s.Init()
	if !s.CreatePending() {
		t.Fatal("pending paste not created")
	}
	if s.HasPending() || s.Rect() != image.Rect(0, 0, 3, 2) {
		t.Fatalf("pending=%v rect=%v", s.HasPending(), s.Rect())
	}
	if s.Image().RGBAAt(2, 1) != red {
		t.Fatal("paste not promoted to RGBA")
	}
	last := events[len(events)-1]
	if last != EventCreatedFromPaste {
		t.Fatalf("last event %s", last)
	}
}

func TestStartActionNeedsActive(t *testing.T) {
	s, _, _ := newTestSelection(t)
	s.SetStart(image.Pt(0, 0))
	s.SetEnd(image.Pt(10, 10))
	if s.StartAction(image.Pt(5, 5)) {
		t.Fatal("inactive selection accepted an action")
	}
	s.SetActive(true)
	if !s.StartAction(image.Pt(5, 5)) {
		t.Fatal("active selection rejected an action")
	}
	if s.Cursor(image.Pt(50, 50)) != "dotbox" {
		t.Fatal("cursor outside")
	}
}
