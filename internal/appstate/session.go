package appstate

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"
	"math/rand/v2"
	"path/filepath"
	"time"

	"github.com/example/rasterpaint/internal/brush"
	"github.com/example/rasterpaint/internal/canvas"
	"github.com/example/rasterpaint/internal/clipboard"
	"github.com/example/rasterpaint/internal/config"
	"github.com/example/rasterpaint/internal/notify"
	"github.com/example/rasterpaint/internal/selection"
	"github.com/example/rasterpaint/internal/theme"
	"github.com/example/rasterpaint/internal/tools"
	"github.com/example/rasterpaint/internal/undo"
)

// ErrNoOutput is returned by Save when no output path is known.
var ErrNoOutput = errors.New("no output file")

const messageDuration = 2 * time.Second

// Session is the editing state behind a window: one canvas, its history and
// the tools drawing on it. All methods must be called from one goroutine.
type Session struct {
	Canvas  *canvas.Canvas
	History *undo.History
	Tools   *tools.Manager
	Output  string

	notifier  *notify.Notifier
	readClip  func() (*image.RGBA, error)
	writeClip func(image.Image) error
	now       func() time.Time
	rand      *rand.Rand
	limit     int

	pointer      image.Point
	message      string
	messageUntil time.Time
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithOutput sets the file written by Save.
func WithOutput(path string) SessionOption { return func(s *Session) { s.Output = path } }

// WithNotifier sets the desktop notifier.
func WithNotifier(n *notify.Notifier) SessionOption { return func(s *Session) { s.notifier = n } }

// WithClipboard replaces the system clipboard.
func WithClipboard(read func() (*image.RGBA, error), write func(image.Image) error) SessionOption {
	return func(s *Session) {
		s.readClip = read
		s.writeClip = write
	}
}

// WithClock replaces time.Now for message expiry.
func WithClock(now func() time.Time) SessionOption { return func(s *Session) { s.now = now } }

// WithRand seeds the airbrush.
func WithRand(r *rand.Rand) SessionOption { return func(s *Session) { s.rand = r } }

// WithHistoryLimit caps the undo history.
func WithHistoryLimit(n int) SessionOption { return func(s *Session) { s.limit = n } }

// NewSession wraps c with a history and the standard tools. The paintbrush
// is active.
func NewSession(c *canvas.Canvas, opts ...SessionOption) *Session {
	s := &Session{
		Canvas:    c,
		readClip:  clipboard.PasteImage,
		writeClip: clipboard.WriteImage,
		now:       time.Now,
		limit:     undo.DefaultLimit,
	}
	for _, o := range opts {
		o(s)
	}
	s.History = undo.NewHistory(c, undo.WithLimit(s.limit))
	s.Tools = tools.NewManager(&tools.Context{
		Canvas: c,
		Undo:   s.History,
		File:   s.History,
		Colors: tools.Colors{FG: color.RGBA{A: 255}, BG: color.RGBA{255, 255, 255, 255}},
		Rand:   s.rand,
	}, tools.WithSelectionEvents(s.selectionEvent))
	if err := s.Tools.Use("brush"); err != nil {
		log.Printf("session: %v", err)
	}
	return s
}

func (s *Session) selectionEvent(e selection.Event) {
	if e == selection.EventCreatedFromPaste {
		s.Flash("pasted image as selection")
	}
}

// ApplyConfig installs presets, colours and notification switches from cfg.
func (s *Session) ApplyConfig(cfg *config.Config) error {
	bShape, bSize, err := cfg.Brush.Parse()
	if err != nil {
		return fmt.Errorf("brush: %w", err)
	}
	eShape, eSize, err := cfg.Eraser.Parse()
	if err != nil {
		return fmt.Errorf("eraser: %w", err)
	}
	err = s.Tools.SetSizes(tools.Sizes{
		BrushBase: cfg.Brush.Base, BrushShape: bShape, BrushSize: bSize,
		EraserBase: cfg.Eraser.Base, EraserShape: eShape, EraserSize: eSize,
	})
	if err != nil {
		return err
	}
	s.Tools.SetColors(tools.Colors{FG: cfg.Foreground(), BG: cfg.Background()})
	s.Tools.SetTransparent(cfg.Colors.Transparent)
	if s.notifier != nil {
		s.notifier.Enable(notify.EventSave, cfg.Notify.Save)
		s.notifier.Enable(notify.EventCopy, cfg.Notify.Copy)
		s.notifier.Enable(notify.EventPaste, cfg.Notify.Paste)
	}
	if s.Output == "" && cfg.SaveDir != "" {
		s.Output = filepath.Join(cfg.SaveDir, "untitled.png")
	}
	return nil
}

// Flash shows msg in the status area for a short while.
func (s *Session) Flash(msg string) {
	log.Print(msg)
	s.message = msg
	s.messageUntil = s.now().Add(messageDuration)
}

// Message returns the flashed message while it is current.
func (s *Session) Message() string {
	if s.message == "" || !s.now().Before(s.messageUntil) {
		return ""
	}
	return s.message
}

// DismissMessage hides the flashed message. It reports whether one was
// showing.
func (s *Session) DismissMessage() bool {
	showing := s.Message() != ""
	s.messageUntil = time.Time{}
	return showing
}

// SetPointer records the canvas position shown in the status bar.
func (s *Session) SetPointer(p image.Point) { s.pointer = p }

// Flattened returns the canvas with a lifted selection composited on top.
func (s *Session) Flattened() *image.RGBA {
	out := s.Canvas.Clone()
	s.Tools.Context().Selection.View().Composite(out)
	return out
}

// Save writes the flattened image to Output.
func (s *Session) Save() error {
	if s.Output == "" {
		return ErrNoOutput
	}
	if err := canvas.FromImage(s.Flattened()).SavePNG(s.Output); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	s.History.MarkSaved()
	s.Flash(fmt.Sprintf("saved %s", s.Output))
	s.notifier.Save(s.Output)
	return nil
}

// Copy places the selection, or the whole canvas, on the clipboard.
func (s *Session) Copy() error {
	img := s.Tools.Copy()
	if err := s.writeClip(img); err != nil {
		return fmt.Errorf("copy: %w", err)
	}
	s.Flash("image copied to clipboard")
	s.notifier.Copy(img)
	return nil
}

// Paste turns the clipboard image into a selection.
func (s *Session) Paste() error {
	img, err := s.readClip()
	if err != nil {
		return fmt.Errorf("paste: %w", err)
	}
	if err := s.Tools.Paste(img); err != nil {
		return fmt.Errorf("paste: %w", err)
	}
	s.notifier.Paste(img)
	return nil
}

// Undo reverts the last change.
func (s *Session) Undo() {
	s.revert("undo", s.Tools.Undo)
}

// Redo reapplies the last undone change.
func (s *Session) Redo() {
	s.revert("redo", s.Tools.Redo)
}

func (s *Session) revert(name string, fn func() (bool, error)) {
	ok, err := fn()
	switch {
	case err != nil:
		s.Flash(fmt.Sprintf("%s: %v", name, err))
	case !ok:
		s.Flash("nothing to " + name)
	}
}

// Title is the window title: the output name and a modified marker.
func (s *Session) Title() string {
	name := "untitled"
	if s.Output != "" {
		name = filepath.Base(s.Output)
	}
	if s.History.Unsaved() {
		name += " *"
	}
	return "RasterPaint - " + name
}

// Status describes the active tool, colours and pointer.
func (s *Session) Status() string {
	ctx := s.Tools.Context()
	name := "none"
	detail := ""
	if t := s.Tools.Current(); t != nil {
		name = t.Name()
		switch name {
		case "brush":
			detail = fmt.Sprintf(" %s %s", ctx.Sizes.BrushShape, ctx.Sizes.BrushSize)
		case "eraser":
			detail = fmt.Sprintf(" %s %s", ctx.Sizes.EraserShape, ctx.Sizes.EraserSize)
		case "select":
			if sel := ctx.Selection; sel.Active() {
				r := sel.Rect()
				detail = fmt.Sprintf(" %dx%d", r.Dx(), r.Dy())
			}
		}
	}
	size := s.Canvas.Size()
	status := fmt.Sprintf("%s%s | fg %s bg %s | %d,%d | %dx%d",
		name, detail, theme.Hex(ctx.Colors.FG), theme.Hex(ctx.Colors.BG), s.pointer.X, s.pointer.Y, size.X, size.Y)
	if ctx.Transparent {
		status += " | transparent"
	}
	if s.History.Unsaved() {
		status += " | modified"
	}
	return status
}

// SwapColors exchanges foreground and background.
func (s *Session) SwapColors() {
	c := s.Tools.Context().Colors
	s.Tools.SetColors(tools.Colors{FG: c.BG, BG: c.FG})
}

// ToggleTransparent flips selection background keying.
func (s *Session) ToggleTransparent() {
	on := !s.Tools.Context().Transparent
	s.Tools.SetTransparent(on)
	if on {
		s.Flash("transparent selection background")
	} else {
		s.Flash("opaque selection background")
	}
}

// report flashes err if it is not nil.
func (s *Session) report(err error) {
	if err != nil {
		s.Flash(err.Error())
	}
}

// SetToolSize changes the preset of the active brush or eraser.
func (s *Session) SetToolSize(size brush.Size) error {
	t := s.Tools.Current()
	if t == nil {
		return nil
	}
	sizes := s.Tools.Context().Sizes
	switch t.Name() {
	case "brush":
		return s.Tools.SetBrush(sizes.BrushShape, size)
	case "eraser":
		return s.Tools.SetEraser(sizes.EraserShape, size)
	}
	return nil
}
