package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/rasterpaint/internal/appstate"
	"github.com/example/rasterpaint/internal/config"
	"github.com/example/rasterpaint/internal/notify"
	"github.com/example/rasterpaint/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs          *flag.FlagSet
	program     string
	stdout      io.Writer
	notifier    *notify.Notifier
	loader      *config.Loader
	config      *config.Config
	saveAlerts  bool
	copyAlerts  bool
	pasteAlerts bool
	themeName   string
	configPath  string
	activeTheme *theme.Theme
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	r := &root{
		fs:       flag.NewFlagSet("rasterpaint", flag.ContinueOnError),
		program:  "rasterpaint",
		stdout:   os.Stdout,
		notifier: notify.New(notify.LoadPreferences()),
	}
	r.fs.BoolVar(&r.saveAlerts, "notify-save", false, "show a desktop notification after saving an image")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", false, "show a desktop notification after copying to the clipboard")
	r.fs.BoolVar(&r.pasteAlerts, "notify-paste", false, "show a desktop notification after pasting from the clipboard")
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use (default, dark, light or a theme file)")
	r.fs.StringVar(&r.configPath, "config", configPathOverride, "configuration file (.rc, .toml or .yaml)")
	r.fs.Usage = usageFunc(r)
	return r
}

// loadConfig reads the configuration. Notification flags given on the
// command line override the file.
func (r *root) loadConfig() {
	r.loader = config.NewLoader(version, r.configPath)
	cfg, err := r.loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}
	r.fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "notify-save":
			cfg.Notify.Save = r.saveAlerts
		case "notify-copy":
			cfg.Notify.Copy = r.copyAlerts
		case "notify-paste":
			cfg.Notify.Paste = r.pasteAlerts
		}
	})
	r.config = cfg

	// Precedence: CLI > Env > Config > Default
	name := r.themeName
	if name == "" {
		name = os.Getenv("RASTERPAINT_THEME")
	}
	if name == "" {
		name = cfg.Theme
	}
	r.activeTheme = appstate.ResolveTheme(name, cfg.Themes)
}

func (r *root) subcommand(name string) string {
	return strings.TrimSpace(strings.Join([]string{r.program, name}, " "))
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	r.loadConfig()

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "paint":
		cmd, err = parsePaintCmd(subArgs, r)
	case "replay":
		cmd, err = parseReplayCmd(subArgs, r)
	case "cursor":
		cmd, err = parseCursorCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		switch {
		case errors.Is(err, flag.ErrHelp):
		case errors.As(err, &uerr):
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		default:
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
