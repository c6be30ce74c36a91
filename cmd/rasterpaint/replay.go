package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/example/rasterpaint/internal/appstate"
	"github.com/example/rasterpaint/internal/canvas"
	"github.com/example/rasterpaint/internal/render"
	"github.com/example/rasterpaint/internal/script"
)

// replayCmd runs a gesture script without a window.
type replayCmd struct {
	*root
	fs      *flag.FlagSet
	file    string
	width   int
	height  int
	script  string
	output  string
	overlay bool
	seed    uint64
	stdin   io.Reader
}

func (c *replayCmd) Program() string        { return c.subcommand("replay") }
func (c *replayCmd) FlagSet() *flag.FlagSet { return c.fs }

func parseReplayCmd(args []string, r *root) (*replayCmd, error) {
	fs := flag.NewFlagSet("replay", flag.ContinueOnError)
	c := &replayCmd{root: r, fs: fs, stdin: os.Stdin}
	fs.StringVar(&c.file, "file", "", "image to start from")
	fs.IntVar(&c.width, "width", 640, "width of a new canvas")
	fs.IntVar(&c.height, "height", 480, "height of a new canvas")
	fs.StringVar(&c.script, "script", "", "gesture script to run, - for stdin")
	fs.StringVar(&c.output, "output", "", "PNG file to write, - for stdout")
	fs.BoolVar(&c.overlay, "overlay", false, "draw the selection overlay into the output")
	fs.Uint64Var(&c.seed, "seed", 1, "airbrush random seed")
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.script == "" || c.output == "" {
		return nil, errors.New("replay requires -script and -output")
	}
	if c.file == "" && (c.width <= 0 || c.height <= 0) {
		return nil, fmt.Errorf("canvas size must be positive, got %dx%d", c.width, c.height)
	}
	return c, nil
}

func (c *replayCmd) Run() error {
	cmds, dir, err := c.readScript()
	if err != nil {
		return err
	}
	cv, err := openCanvas(c.file, c.width, c.height, c.config.Background())
	if err != nil {
		return err
	}
	sess := appstate.NewSession(cv, appstate.WithRand(rand.New(rand.NewPCG(c.seed, c.seed))))
	if err := sess.ApplyConfig(c.config); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := script.NewRunner(sess.Tools, script.WithBaseDir(dir)).Run(cmds); err != nil {
		return fmt.Errorf("replay %s: %w", c.script, err)
	}
	return writePNG(c.stdout, c.output, c.result(sess))
}

func (c *replayCmd) readScript() ([]script.Command, string, error) {
	if c.script == "-" {
		cmds, err := script.Parse(c.stdin)
		return cmds, ".", err
	}
	f, err := os.Open(c.script)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	cmds, err := script.Parse(f)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", c.script, err)
	}
	return cmds, filepath.Dir(c.script), nil
}

func (c *replayCmd) result(sess *appstate.Session) image.Image {
	if !c.overlay {
		return sess.Flattened()
	}
	dst := image.NewRGBA(sess.Canvas.Bounds())
	sess.Tools.Render(render.New(render.PaletteFrom(c.activeTheme)), dst)
	return dst
}

// writePNG encodes img to path, or to stdout when path is "-".
func writePNG(stdout io.Writer, path string, img image.Image) error {
	if path == "-" {
		return png.Encode(stdout, img)
	}
	if err := canvas.FromImage(img).SavePNG(path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
