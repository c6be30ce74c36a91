// Package selection implements the rectangular floating selection: its
// handle geometry, the floating and committed states and the transforms
// applied to a lifted image.
package selection

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"log"

	xdraw "golang.org/x/image/draw"

	"github.com/example/rasterpaint/internal/canvas"
	"github.com/example/rasterpaint/internal/imageops"
	"github.com/example/rasterpaint/internal/undo"
)

// ErrNoSelection is returned by transforms when there is no lifted image.
var ErrNoSelection = errors.New("selection: no selection image")

// Event is raised to the surrounding application.
type Event int

const (
	// EventPasteRequested asks the application to activate the selection
	// tool so a pending paste can become a selection.
	EventPasteRequested Event = iota + 1
	// EventCreatedFromPaste follows a paste that became a selection.
	EventCreatedFromPaste
	// EventCommitted follows every capture of a selection image.
	EventCommitted
	// EventCleared follows Clear.
	EventCleared
)

func (e Event) String() string {
	switch e {
	case EventPasteRequested:
		return "paste-requested"
	case EventCreatedFromPaste:
		return "created-from-paste"
	case EventCommitted:
		return "committed"
	case EventCleared:
		return "cleared"
	}
	return "unknown"
}

// Selection is the single rectangular selection of a canvas.
//
// Floating true means the user is outlining or has released the box: the
// canvas holds all pixels. Floating false means the box content has been
// lifted into an owned image and the canvas below it was filled with the
// background colour.
type Selection struct {
	canvas *canvas.Canvas
	log    undo.Log

	live        bool
	sp, ep      image.Point
	clip        Clip
	action      Region
	drag        image.Point
	floating    bool
	active      bool
	borders     bool
	transparent bool
	background  color.RGBA

	image     *image.RGBA
	clipboard *image.RGBA

	onEvent func(Event)
}

// Option configures a Selection.
type Option func(*Selection)

// WithEventHandler registers fn for selection events.
func WithEventHandler(fn func(Event)) Option { return func(s *Selection) { s.onEvent = fn } }

// WithBackground sets the colour used to fill lifted regions.
func WithBackground(c color.RGBA) Option { return func(s *Selection) { s.background = c } }

// New returns a cleared selection for c. Call Init before use.
func New(c *canvas.Canvas, l undo.Log, opts ...Option) *Selection {
	s := &Selection{canvas: c, log: l, background: color.RGBA{255, 255, 255, 255}}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Selection) emit(e Event) {
	if s.onEvent != nil {
		s.onEvent(e)
	}
}

// Init prepares an empty selection, keeping any pending paste.
func (s *Selection) Init() {
	s.live = true
	s.sp, s.ep = image.Point{}, image.Point{}
	s.clip = Clip{}
	s.action = None
	s.floating = false
	s.active = false
	s.borders = false
	s.image = nil
}

// Clear releases all state. Create fails until Init is called again.
func (s *Selection) Clear() {
	if !s.live {
		return
	}
	s.live = false
	s.active = false
	s.image = nil
	s.emit(EventCleared)
}

// Live reports whether Init has been called since the last Clear.
func (s *Selection) Live() bool { return s.live }

// SetCanvas points the selection at a replacement canvas.
func (s *Selection) SetCanvas(c *canvas.Canvas) { s.canvas = c }

// SetBackground sets the fill and key colour.
func (s *Selection) SetBackground(c color.RGBA) { s.background = c }

// Background returns the fill and key colour.
func (s *Selection) Background() color.RGBA { return s.background }

// SetTransparent turns background keying of the lifted image on or off. The
// change is live: the next render and flatten use the new setting.
func (s *Selection) SetTransparent(on bool) { s.transparent = on }

// Transparent reports whether the background colour is keyed out.
func (s *Selection) Transparent() bool { return s.transparent }

// Floating reports the floating flag.
func (s *Selection) Floating() bool { return s.floating }

// Active reports the active flag.
func (s *Selection) Active() bool { return s.active }

// Borders reports whether handles are shown.
func (s *Selection) Borders() bool { return s.borders }

// Action returns the region being dragged.
func (s *Selection) Action() Region { return s.action }

// Clip returns the current clip box.
func (s *Selection) Clip() Clip { return s.clip }

// Rect returns the pixels covered by the clip box.
func (s *Selection) Rect() image.Rectangle { return s.clip.Rect() }

// Start returns the start corner.
func (s *Selection) Start() image.Point { return s.sp }

// End returns the end corner.
func (s *Selection) End() image.Point { return s.ep }

// SetActive sets the active flag. Floating changes only touch pixels while
// active.
func (s *Selection) SetActive(active bool) { s.active = active }

// SetStart moves the start corner.
func (s *Selection) SetStart(p image.Point) {
	s.sp = p
	s.clip = NewClip(s.sp, s.ep)
}

// SetEnd moves the end corner.
func (s *Selection) SetEnd(p image.Point) {
	s.ep = p
	s.clip = NewClip(s.sp, s.ep)
}

// SetBorders shows or hides the handles, normalising the clip box.
func (s *Selection) SetBorders(on bool) {
	s.borders = on
	s.normalize()
}

func (s *Selection) normalize() {
	s.sp = s.clip.P0
	s.ep = s.clip.P1
	s.clip = NewClip(s.sp, s.ep)
}

// Region returns the region under p.
func (s *Selection) Region(p image.Point) Region {
	s.normalize()
	return s.clip.HitTest(p)
}

// Cursor names the pointer shape for p.
func (s *Selection) Cursor(p image.Point) string { return s.Region(p).Cursor() }

// StartAction records the region under p as the drag target. It reports
// whether anything was hit; inactive selections never hit.
func (s *Selection) StartAction(p image.Point) bool {
	if !s.active {
		return false
	}
	s.action = s.Region(p)
	s.drag = p
	return s.action != None
}

// DoAction drags the current region to p.
func (s *Selection) DoAction(p image.Point) {
	d := p.Sub(s.drag)
	s.clip.Drag(s.action, d)
	s.drag = s.drag.Add(d)
}

// SetFloating switches between floating and committed. While active, going
// floating composites the lifted image back onto the canvas and going
// committed lifts a new image.
func (s *Selection) SetFloating(floating bool) {
	s.floating = floating
	if !s.active {
		return
	}
	rect := s.clip.Rect()
	if floating {
		if s.image != nil {
			s.composite(s.canvas.Surface(), rect)
			s.image = nil
		}
		return
	}

	s.image = nil
	if s.clipboard != nil {
		s.image = s.clipboard
		s.clipboard = nil
	} else {
		surf := s.canvas.Surface()
		if s.log != nil {
			s.log.Append(surf.Bounds(), nil, undo.RectSelect)
		}
		s.image = canvas.Crop(surf, rect)
		canvas.FillRect(surf, rect, s.background)
	}
	s.emit(EventCommitted)
}

// composite draws the displayed image into dst scaled to rect.
func (s *Selection) composite(dst *image.RGBA, rect image.Rectangle) {
	drawImage(dst, rect, s.display(), s.transparent)
}

// drawImage scales img into rect. Only a keyed image is blended, anything
// else replaces the pixels so translucent canvas content survives a lift
// and drop unchanged.
func drawImage(dst *image.RGBA, rect image.Rectangle, img *image.RGBA, keyed bool) {
	if img == nil || rect.Empty() {
		return
	}
	op := draw.Src
	if keyed {
		op = draw.Over
	}
	if img.Bounds().Size() == rect.Size() {
		draw.Draw(dst, rect, img, img.Bounds().Min, op)
		return
	}
	xdraw.NearestNeighbor.Scale(dst, rect, img, img.Bounds(), op, nil)
}

// display returns the lifted image with the background keyed out when
// transparent mode is on.
func (s *Selection) display() *image.RGBA {
	if s.image == nil {
		return nil
	}
	if s.transparent {
		return imageops.Keyed(s.image, s.background)
	}
	return s.image
}

// Create builds a committed selection spanning start and end. With src the
// selection is filled from src and sized from the top-left of the two
// corners; without it the canvas region is lifted. It fails for nil points,
// an empty src or a cleared selection.
func (s *Selection) Create(start, end *image.Point, src image.Image) bool {
	if start == nil || end == nil || !s.live {
		return false
	}
	S, E := *start, *end
	if src != nil {
		img := imageops.ToRGBA(src)
		size := img.Bounds().Size()
		if size.X <= 0 || size.Y <= 0 {
			return false
		}
		s.clipboard = img
		// the box takes the size of the source from its top-left corner and
		// the end corner is inclusive
		S = image.Pt(min(S.X, E.X), min(S.Y, E.Y))
		E = S.Add(size).Sub(image.Pt(1, 1))
	}

	s.SetFloating(true)
	s.SetActive(false)
	s.SetStart(S)
	s.SetEnd(E)
	s.SetActive(true)
	s.StartAction(image.Pt(abs(S.X-E.X), abs(S.Y-E.Y)))
	s.SetFloating(false)
	s.SetBorders(true)
	return true
}

// Paste turns img into a selection at the canvas origin. When the selection
// is not live the image is kept and EventPasteRequested is raised; the
// selection is created by CreatePending once the tool is active.
func (s *Selection) Paste(img image.Image) {
	s.clipboard = imageops.ToRGBA(img)
	if !s.live {
		s.emit(EventPasteRequested)
		return
	}
	s.CreatePending()
}

// HasPending reports whether a pasted image is waiting for a selection.
func (s *Selection) HasPending() bool { return s.clipboard != nil }

// CreatePending creates a selection from the pending paste.
func (s *Selection) CreatePending() bool {
	if s.clipboard == nil {
		return false
	}
	b := s.clipboard.Bounds()
	start, end := image.Point{}, image.Pt(b.Dx(), b.Dy())
	if !s.Create(&start, &end, s.clipboard) {
		return false
	}
	s.emit(EventCreatedFromPaste)
	return true
}

// HasImage reports whether there is a lifted image.
func (s *Selection) HasImage() bool { return s.image != nil }

// Image returns a copy of the lifted image as it would be drawn, or nil.
func (s *Selection) Image() *image.RGBA {
	img := s.display()
	if img == nil {
		return nil
	}
	return canvas.Copy(img)
}

// Invert inverts the lifted image.
func (s *Selection) Invert() error {
	if s.image == nil {
		return ErrNoSelection
	}
	imageops.Invert(s.image)
	return nil
}

// Flip mirrors the lifted image.
func (s *Selection) Flip(axis imageops.Axis) error {
	if s.image == nil {
		return ErrNoSelection
	}
	imageops.Flip(s.image, axis)
	return nil
}

// Rotate turns the lifted image counter-clockwise and resizes the clip box
// to match, keeping its top-left corner.
func (s *Selection) Rotate(angle imageops.Angle) error {
	if s.image == nil {
		return ErrNoSelection
	}
	rotated, err := imageops.Rotate(s.image, angle)
	if err != nil {
		return err
	}
	size := rotated.Bounds().Size()
	n := s.clip.Normalize()
	s.clip.P0 = n.P0
	s.clip.P1 = n.P0.Add(size).Sub(image.Pt(1, 1))
	s.normalize()
	s.image = rotated
	return nil
}

// DrawAndClear drops the selection, flattening its image onto the canvas
// when flatten is set. The box collapses to a single point just outside its
// old top-left corner and the handles are hidden.
func (s *Selection) DrawAndClear(flatten bool) error {
	if s.image == nil {
		return ErrNoSelection
	}
	pt := s.sp.Sub(image.Pt(1, 1))
	if !flatten {
		s.image = nil
	}
	s.SetFloating(true)
	s.SetActive(false)
	s.SetStart(pt)
	s.SetEnd(pt)
	s.SetActive(true)
	s.SetBorders(false)
	return nil
}

// Flatten composites a lifted image onto the canvas and drops it. It is used
// when the selection tool is torn down.
func (s *Selection) Flatten() {
	if s.image == nil {
		return
	}
	if !s.floating && s.active {
		s.composite(s.canvas.Surface(), s.clip.Rect())
	} else {
		log.Printf("selection: dropping image of inactive selection")
	}
	s.image = nil
}

// View is a snapshot of what an overlay renderer needs.
type View struct {
	Active   bool
	Floating bool
	Borders  bool
	Rect     image.Rectangle
	Handles  []image.Rectangle
	Image    *image.RGBA
	// Keyed is set when Image has the background keyed out.
	Keyed bool
}

// Composite draws a committed image into dst the way a drop onto the
// canvas would.
func (v View) Composite(dst *image.RGBA) {
	if !v.Active || v.Floating {
		return
	}
	drawImage(dst, v.Rect, v.Image, v.Keyed)
}

// View returns the current overlay state. Image is shared and must not be
// modified.
func (s *Selection) View() View {
	v := View{
		Active:   s.active,
		Floating: s.floating,
		Borders:  s.borders,
		Rect:     s.clip.Rect(),
		Image:    s.display(),
		Keyed:    s.transparent && s.image != nil,
	}
	if s.borders {
		h := s.clip.Handles()
		for r := TopLeft; r < ClipBox; r++ {
			v.Handles = append(v.Handles, h[r].Rect())
		}
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
