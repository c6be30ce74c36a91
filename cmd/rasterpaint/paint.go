package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"

	"github.com/example/rasterpaint/internal/appstate"
	"github.com/example/rasterpaint/internal/canvas"
)

// paintCmd opens the interactive window.
type paintCmd struct {
	*root
	fs     *flag.FlagSet
	file   string
	output string
	width  int
	height int
	watch  bool
}

func (p *paintCmd) Program() string        { return p.subcommand("paint") }
func (p *paintCmd) FlagSet() *flag.FlagSet { return p.fs }

func parsePaintCmd(args []string, r *root) (*paintCmd, error) {
	fs := flag.NewFlagSet("paint", flag.ContinueOnError)
	p := &paintCmd{root: r, fs: fs}
	fs.StringVar(&p.file, "file", "", "image to open")
	fs.StringVar(&p.output, "output", "", "file written on save (defaults to -file)")
	fs.IntVar(&p.width, "width", 640, "width of a new canvas")
	fs.IntVar(&p.height, "height", 480, "height of a new canvas")
	fs.BoolVar(&p.watch, "watch", true, "apply configuration changes while running")
	fs.Usage = usageFunc(p)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, &UsageError{of: p}
	}
	if p.file == "" && (p.width <= 0 || p.height <= 0) {
		return nil, fmt.Errorf("canvas size must be positive, got %dx%d", p.width, p.height)
	}
	if p.output == "" {
		p.output = p.file
	}
	return p, nil
}

// openCanvas loads file, or creates a blank canvas in bg.
func openCanvas(file string, width, height int, bg color.Color) (*canvas.Canvas, error) {
	if file == "" {
		return canvas.New(width, height, bg), nil
	}
	c, err := canvas.Load(file)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", file, err)
	}
	return c, nil
}

func (p *paintCmd) Run() error {
	c, err := openCanvas(p.file, p.width, p.height, p.config.Background())
	if err != nil {
		return err
	}
	sess := appstate.NewSession(c, appstate.WithOutput(p.output), appstate.WithNotifier(p.notifier))
	if err := sess.ApplyConfig(p.config); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	opts := []appstate.Option{appstate.WithTheme(p.activeTheme)}
	if p.watch && p.loader.Path() != "" {
		if err := p.loader.Watch(); err != nil {
			log.Printf("config watch: %v", err)
		} else {
			defer p.loader.Close()
			opts = append(opts, appstate.WithConfigLoader(p.loader))
		}
	}
	appstate.New(sess, opts...).Run()
	return nil
}
