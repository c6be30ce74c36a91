package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"github.com/example/rasterpaint/internal/brush"
	"github.com/example/rasterpaint/internal/config"
)

// cursorCmd writes the pointer image of a brush or eraser preset.
type cursorCmd struct {
	*root
	fs     *flag.FlagSet
	eraser bool
	shape  string
	size   string
	base   int
	fg     string
	bg     string
	scale  int
	output string
}

func (c *cursorCmd) Program() string        { return c.subcommand("cursor") }
func (c *cursorCmd) FlagSet() *flag.FlagSet { return c.fs }

func parseCursorCmd(args []string, r *root) (*cursorCmd, error) {
	fs := flag.NewFlagSet("cursor", flag.ContinueOnError)
	c := &cursorCmd{root: r, fs: fs}
	fs.BoolVar(&c.eraser, "eraser", false, "render the eraser cursor")
	fs.StringVar(&c.shape, "shape", "round", "round, rect, forward-slash or back-slash")
	fs.StringVar(&c.size, "size", "large", "large, medium, small or tiny")
	fs.IntVar(&c.base, "base", brush.DefaultBase, "diameter of the large preset")
	fs.StringVar(&c.fg, "fg", "", "foreground colour (defaults to the configured one)")
	fs.StringVar(&c.bg, "bg", "", "background colour (defaults to the configured one)")
	fs.IntVar(&c.scale, "scale", 1, "magnification of the written image")
	fs.StringVar(&c.output, "output", "", "PNG file to write, - for stdout")
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.output == "" {
		return nil, errors.New("cursor requires -output")
	}
	if c.scale < 1 {
		return nil, fmt.Errorf("scale must be at least 1, got %d", c.scale)
	}
	return c, nil
}

func (c *cursorCmd) Run() error {
	shape, size, err := config.Stroke{Base: c.base, Shape: c.shape, Size: c.size}.Parse()
	if err != nil {
		return err
	}
	spec, err := brush.Sized(shape, size, c.base, !c.eraser)
	if err != nil {
		return err
	}
	fg, bg := c.config.Foreground(), c.config.Background()
	if c.fg != "" {
		if fg, err = config.ParseColor(c.fg); err != nil {
			return fmt.Errorf("fg: %w", err)
		}
	}
	if c.bg != "" {
		if bg, err = config.ParseColor(c.bg); err != nil {
			return fmt.Errorf("bg: %w", err)
		}
	}

	build := brush.BrushCursor
	if c.eraser {
		build = brush.EraserCursor
	}
	cur, err := build(spec, fg, bg)
	if err != nil {
		return err
	}
	if err := writePNG(c.stdout, c.output, magnify(cur.Image, c.scale)); err != nil {
		return err
	}
	if c.output != "-" {
		fmt.Fprintf(c.stdout, "%s %s %s %dx%d hotspot %d,%d\n",
			c.kind(), shape, size, spec.Width, spec.Height, cur.Hotspot.X, cur.Hotspot.Y)
	}
	return nil
}

func (c *cursorCmd) kind() string {
	if c.eraser {
		return "eraser"
	}
	return "brush"
}

func magnify(img *image.RGBA, scale int) *image.RGBA {
	if scale == 1 {
		return img
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	xdraw.NearestNeighbor.Scale(out, out.Bounds(), img, b, draw.Src, nil)
	return out
}
