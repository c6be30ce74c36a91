package script

import (
	"fmt"
	"image"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/mobile/event/mouse"

	"github.com/example/rasterpaint/internal/brush"
	"github.com/example/rasterpaint/internal/canvas"
	"github.com/example/rasterpaint/internal/clipboard"
	"github.com/example/rasterpaint/internal/config"
	"github.com/example/rasterpaint/internal/imageops"
	"github.com/example/rasterpaint/internal/tools"
)

// ClipboardSource is the paste argument that reads the system clipboard.
const ClipboardSource = "clipboard"

// Runner executes commands against a tool manager.
type Runner struct {
	m        *tools.Manager
	dir      string
	onPaste  func(image.Image)
	readClip func() (*image.RGBA, error)
}

// Option configures a Runner.
type Option func(*Runner)

// WithBaseDir resolves relative paste paths against dir.
func WithBaseDir(dir string) Option { return func(r *Runner) { r.dir = dir } }

// WithPasteHook is called with every pasted image.
func WithPasteHook(fn func(image.Image)) Option { return func(r *Runner) { r.onPaste = fn } }

// NewRunner returns a runner driving m.
func NewRunner(m *tools.Manager, opts ...Option) *Runner {
	r := &Runner{m: m, readClip: clipboard.PasteImage}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Run executes cmds in order and stops at the first failure.
func (r *Runner) Run(cmds []Command) error {
	for _, c := range cmds {
		if err := r.Exec(c); err != nil {
			return fmt.Errorf("line %d: %s: %w", c.Line, c, err)
		}
	}
	return nil
}

// Exec executes a single command.
func (r *Runner) Exec(c Command) error {
	m := r.m
	switch c.Name {
	case "tool":
		return m.Use(strings.ToLower(c.Args[0]))
	case "brush", "eraser":
		shape, err := brush.ParseShape(c.Args[0])
		if err != nil {
			return err
		}
		size, err := brush.ParseSize(c.Args[1])
		if err != nil {
			return err
		}
		if c.Name == "brush" {
			return m.SetBrush(shape, size)
		}
		return m.SetEraser(shape, size)
	case "fg", "bg":
		col, err := config.ParseColor(c.Args[0])
		if err != nil {
			return err
		}
		colors := m.Context().Colors
		if c.Name == "fg" {
			colors.FG = col
		} else {
			colors.BG = col
		}
		m.SetColors(colors)
	case "transparent":
		on, err := parseSwitch(c.Args[0])
		if err != nil {
			return err
		}
		m.SetTransparent(on)
	case "down", "up":
		p, err := point(c.Args[0], c.Args[1])
		if err != nil {
			return err
		}
		b := mouse.ButtonLeft
		if len(c.Args) == 3 {
			if b, err = parseButton(c.Args[2]); err != nil {
				return err
			}
		}
		kind := tools.Press
		if c.Name == "up" {
			kind = tools.Release
		}
		m.Dispatch(tools.Event{Kind: kind, Point: p, Button: b})
	case "move":
		p, err := point(c.Args[0], c.Args[1])
		if err != nil {
			return err
		}
		m.Dispatch(tools.Event{Kind: tools.Motion, Point: p, Button: mouse.ButtonLeft})
	case "dclick":
		p, err := point(c.Args[0], c.Args[1])
		if err != nil {
			return err
		}
		m.Dispatch(tools.Event{Kind: tools.DoubleClick, Point: p, Button: mouse.ButtonLeft})
	case "drag":
		return r.drag(c.Args)
	case "tick":
		n, err := optionalCount(c.Args)
		if err != nil {
			return err
		}
		for range n {
			m.Tick()
		}
	case "paste":
		return r.paste(c.Args[0])
	case "invert":
		return m.Invert()
	case "flip":
		axis, err := parseAxis(c.Args[0])
		if err != nil {
			return err
		}
		return m.Flip(axis)
	case "rotate":
		angle, err := imageops.ParseAngle(c.Args[0])
		if err != nil {
			return err
		}
		return m.Rotate(angle)
	case "clear":
		return m.ClearCanvas()
	case "undo", "redo":
		n, err := optionalCount(c.Args)
		if err != nil {
			return err
		}
		for range n {
			var err error
			if c.Name == "undo" {
				_, err = m.Undo()
			} else {
				_, err = m.Redo()
			}
			if err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unknown command %q", c.Name)
	}
	return nil
}

// drag presses at the first point, moves to the second in steps and
// releases there.
func (r *Runner) drag(args []string) error {
	from, err := point(args[0], args[1])
	if err != nil {
		return err
	}
	to, err := point(args[2], args[3])
	if err != nil {
		return err
	}
	steps := 1
	if len(args) == 5 {
		if steps, err = strconv.Atoi(args[4]); err != nil || steps < 1 {
			return fmt.Errorf("invalid step count %q", args[4])
		}
	}
	r.m.Dispatch(tools.Event{Kind: tools.Press, Point: from, Button: mouse.ButtonLeft})
	d := to.Sub(from)
	for i := 1; i <= steps; i++ {
		p := from.Add(image.Pt(d.X*i/steps, d.Y*i/steps))
		r.m.Dispatch(tools.Event{Kind: tools.Motion, Point: p, Button: mouse.ButtonLeft})
	}
	r.m.Dispatch(tools.Event{Kind: tools.Release, Point: to, Button: mouse.ButtonLeft})
	return nil
}

func (r *Runner) paste(src string) error {
	var img image.Image
	if src == ClipboardSource {
		clip, err := r.readClip()
		if err != nil {
			return err
		}
		img = clip
	} else {
		if !filepath.IsAbs(src) && r.dir != "" {
			src = filepath.Join(r.dir, src)
		}
		var err error
		if img, err = canvas.DecodeFile(src); err != nil {
			return err
		}
	}
	if err := r.m.Paste(img); err != nil {
		return err
	}
	if r.onPaste != nil {
		r.onPaste(img)
	}
	return nil
}

func point(xs, ys string) (image.Point, error) {
	x, err := strconv.Atoi(xs)
	if err != nil {
		return image.Point{}, fmt.Errorf("invalid x %q", xs)
	}
	y, err := strconv.Atoi(ys)
	if err != nil {
		return image.Point{}, fmt.Errorf("invalid y %q", ys)
	}
	return image.Pt(x, y), nil
}

func optionalCount(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid count %q", args[0])
	}
	return n, nil
}

func parseButton(s string) (mouse.Button, error) {
	switch strings.ToLower(s) {
	case "left", "1":
		return mouse.ButtonLeft, nil
	case "middle", "2":
		return mouse.ButtonMiddle, nil
	case "right", "3":
		return mouse.ButtonRight, nil
	}
	return mouse.ButtonNone, fmt.Errorf("unknown button %q", s)
}

func parseSwitch(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}
	return strconv.ParseBool(s)
}

func parseAxis(s string) (imageops.Axis, error) {
	switch strings.ToLower(s) {
	case "h", "horizontal", "x":
		return imageops.Horizontal, nil
	case "v", "vertical", "y":
		return imageops.Vertical, nil
	}
	return 0, fmt.Errorf("unknown axis %q", s)
}
