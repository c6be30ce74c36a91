// Package undo records pre-change pixels for completed gestures.
package undo

import (
	"fmt"
	"image"

	"github.com/example/rasterpaint/internal/stroke"
)

// Kind identifies the gesture that produced an entry.
type Kind int

const (
	Paintbrush Kind = iota
	Eraser
	Airbrush
	RectSelect
	Invert
	Flip
	Rotate
	Clear
	Resize
)

var kindNames = [...]string{"paintbrush", "eraser", "airbrush", "rect-select", "invert", "flip", "rotate", "clear", "resize"}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Log receives one entry per completed gesture. A nil before image asks the
// log to snapshot the current canvas; otherwise before is in canvas
// coordinates and covers rect.
type Log interface {
	Append(rect image.Rectangle, before image.Image, kind Kind)
	AppendResize(w, h int)
}

// FileState tracks whether the document differs from disk.
type FileState interface {
	MarkUnsaved()
}

// DirtyRect converts the inclusive bounds of stamp centres into the region a
// stamp of the given extent may have touched. The origin is clamped at zero
// and the size at the canvas size.
func DirtyRect(box stroke.Box, extent, canvas image.Point) image.Rectangle {
	return clampRect(
		box.Min.X-extent.X/2,
		box.Min.Y-extent.Y/2,
		box.Max.X-box.Min.X+extent.X,
		box.Max.Y-box.Min.Y+extent.Y,
		canvas,
	)
}

// SprayRect is DirtyRect for the airbrush, whose bounds track the top-left
// corner of each spray circle.
func SprayRect(box stroke.Box, diameter int, canvas image.Point) image.Rectangle {
	return clampRect(
		box.Min.X,
		box.Min.Y,
		box.Max.X-box.Min.X+diameter,
		box.Max.Y-box.Min.Y+diameter,
		canvas,
	)
}

func clampRect(x, y, w, h int, canvas image.Point) image.Rectangle {
	x = max(x, 0)
	y = max(y, 0)
	w = min(w, canvas.X)
	h = min(h, canvas.Y)
	return image.Rect(x, y, x+w, y+h)
}
