package undo

import (
	"image"
	"image/draw"

	"github.com/google/uuid"

	"github.com/example/rasterpaint/internal/canvas"
)

// DefaultLimit bounds the number of entries kept by a History.
const DefaultLimit = 64

// Surface is the canvas a History restores into.
type Surface interface {
	Surface() *image.RGBA
	SetSurface(*image.RGBA)
}

// Entry is one undoable change.
type Entry struct {
	ID   string
	Kind Kind
	Rect image.Rectangle
	// Pixels holds whatever is not currently on the canvas: the before
	// pixels while the entry is applied, the after pixels once undone.
	Pixels *image.RGBA
	// Size is the requested size for resize entries.
	Size image.Point
}

// History is an in-memory Log with undo and redo.
type History struct {
	surface Surface
	entries []*Entry
	pos     int
	limit   int
	unsaved bool
	onApply func(*Entry)
}

// Option configures a History.
type Option func(*History)

// WithLimit caps the number of stored entries.
func WithLimit(n int) Option { return func(h *History) { h.limit = n } }

// WithOnApply registers a callback run after every Append, Undo and Redo.
func WithOnApply(fn func(*Entry)) Option { return func(h *History) { h.onApply = fn } }

// NewHistory returns an empty history for s.
func NewHistory(s Surface, opts ...Option) *History {
	h := &History{surface: s, limit: DefaultLimit}
	for _, o := range opts {
		o(h)
	}
	return h
}

var _ Log = (*History)(nil)
var _ FileState = (*History)(nil)

// Append implements Log.
func (h *History) Append(rect image.Rectangle, before image.Image, kind Kind) {
	cur := h.surface.Surface()
	rect = rect.Intersect(cur.Bounds())
	var pixels *image.RGBA
	if before == nil {
		pixels = canvas.Crop(cur, rect)
	} else {
		pixels = canvas.Crop(before, rect)
	}
	h.push(&Entry{ID: uuid.NewString(), Kind: kind, Rect: rect, Pixels: pixels})
}

// AppendResize implements Log. It must be called before the surface is
// replaced so the previous surface can be kept.
func (h *History) AppendResize(w, hgt int) {
	h.push(&Entry{
		ID:     uuid.NewString(),
		Kind:   Resize,
		Rect:   h.surface.Surface().Bounds(),
		Pixels: canvas.Copy(h.surface.Surface()),
		Size:   image.Pt(w, hgt),
	})
}

func (h *History) push(e *Entry) {
	h.entries = append(h.entries[:h.pos], e)
	if h.limit > 0 && len(h.entries) > h.limit {
		drop := len(h.entries) - h.limit
		h.entries = append([]*Entry(nil), h.entries[drop:]...)
	}
	h.pos = len(h.entries)
	if h.onApply != nil {
		h.onApply(e)
	}
}

// Undo reverts the most recent applied entry.
func (h *History) Undo() bool {
	if h.pos == 0 {
		return false
	}
	h.pos--
	h.swap(h.entries[h.pos])
	return true
}

// Redo reapplies the most recently undone entry.
func (h *History) Redo() bool {
	if h.pos >= len(h.entries) {
		return false
	}
	h.swap(h.entries[h.pos])
	h.pos++
	return true
}

func (h *History) swap(e *Entry) {
	cur := h.surface.Surface()
	if e.Kind == Resize {
		h.surface.SetSurface(e.Pixels)
		e.Pixels = cur
	} else {
		now := canvas.Crop(cur, e.Rect)
		draw.Draw(cur, e.Rect, e.Pixels, image.Point{}, draw.Src)
		e.Pixels = now
	}
	h.unsaved = true
	if h.onApply != nil {
		h.onApply(e)
	}
}

// Len returns the number of applied entries.
func (h *History) Len() int { return h.pos }

// Entries returns the applied entries, oldest first.
func (h *History) Entries() []*Entry { return append([]*Entry(nil), h.entries[:h.pos]...) }

// MarkUnsaved implements FileState.
func (h *History) MarkUnsaved() { h.unsaved = true }

// MarkSaved clears the unsaved flag.
func (h *History) MarkSaved() { h.unsaved = false }

// Unsaved reports whether changes were made since the last save.
func (h *History) Unsaved() bool { return h.unsaved }
