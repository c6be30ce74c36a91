// Package config loads the paint settings: brush and eraser presets, colours,
// notifications and custom themes.
package config

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/example/rasterpaint/internal/brush"
	"github.com/example/rasterpaint/internal/theme"
)

// Stroke holds the preset of a stamping tool.
type Stroke struct {
	Base  int    `toml:"base" yaml:"base"`
	Shape string `toml:"shape" yaml:"shape"`
	Size  string `toml:"size" yaml:"size"`
}

// Parse resolves the preset names.
func (s Stroke) Parse() (brush.Shape, brush.Size, error) {
	shape, err := brush.ParseShape(s.Shape)
	if err != nil {
		return 0, 0, err
	}
	size, err := brush.ParseSize(s.Size)
	if err != nil {
		return 0, 0, err
	}
	return shape, size, nil
}

// Colors holds the drawing colours as names or hex strings.
type Colors struct {
	Foreground  string `toml:"foreground" yaml:"foreground"`
	Background  string `toml:"background" yaml:"background"`
	Transparent bool   `toml:"transparent" yaml:"transparent"`
}

// Notify holds notification settings.
type Notify struct {
	Save  bool `toml:"save" yaml:"save"`
	Copy  bool `toml:"copy" yaml:"copy"`
	Paste bool `toml:"paste" yaml:"paste"`
}

// Config holds the application configuration.
type Config struct {
	Theme   string                  `toml:"theme" yaml:"theme"`
	SaveDir string                  `toml:"save_dir" yaml:"save_dir"`
	Brush   Stroke                  `toml:"brush" yaml:"brush"`
	Eraser  Stroke                  `toml:"eraser" yaml:"eraser"`
	Colors  Colors                  `toml:"colors" yaml:"colors"`
	Notify  Notify                  `toml:"notify" yaml:"notify"`
	Themes  map[string]*theme.Theme `toml:"-" yaml:"-"`
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Brush:  Stroke{Base: brush.DefaultBase, Shape: "round", Size: "large"},
		Eraser: Stroke{Base: brush.DefaultBase, Shape: "rect", Size: "large"},
		Colors: Colors{Foreground: "black", Background: "white"},
		Themes: make(map[string]*theme.Theme),
	}
}

// Validate checks that presets and colours resolve.
func (c *Config) Validate() error {
	for name, s := range map[string]Stroke{"brush": c.Brush, "eraser": c.Eraser} {
		shape, size, err := s.Parse()
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if _, err := brush.Sized(shape, size, s.Base, name == "brush"); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	if _, err := ParseColor(c.Colors.Foreground); err != nil {
		return fmt.Errorf("foreground: %w", err)
	}
	if _, err := ParseColor(c.Colors.Background); err != nil {
		return fmt.Errorf("background: %w", err)
	}
	return nil
}

// Foreground returns the parsed foreground colour, black if unset or invalid.
func (c *Config) Foreground() color.RGBA {
	if col, err := ParseColor(c.Colors.Foreground); err == nil {
		return col
	}
	return colornames.Black
}

// Background returns the parsed background colour, white if unset or
// invalid.
func (c *Config) Background() color.RGBA {
	if col, err := ParseColor(c.Colors.Background); err == nil {
		return col
	}
	return colornames.White
}

// ParseColor accepts an SVG colour name or #RRGGBB[AA].
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		return theme.ParseColor(s)
	}
	if col, ok := colornames.Map[strings.ToLower(s)]; ok {
		return col, nil
	}
	return color.RGBA{}, fmt.Errorf("unknown colour %q", s)
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	sb.WriteString("\n")

	for _, s := range []struct {
		name string
		s    Stroke
	}{{"brush", c.Brush}, {"eraser", c.Eraser}} {
		fmt.Fprintf(&sb, "[%s]\n", s.name)
		fmt.Fprintf(&sb, "base = %d\n", s.s.Base)
		fmt.Fprintf(&sb, "shape = %s\n", s.s.Shape)
		fmt.Fprintf(&sb, "size = %s\n", s.s.Size)
		sb.WriteString("\n")
	}

	sb.WriteString("[colors]\n")
	fmt.Fprintf(&sb, "foreground = %s\n", c.Colors.Foreground)
	fmt.Fprintf(&sb, "background = %s\n", c.Colors.Background)
	fmt.Fprintf(&sb, "transparent = %v\n", c.Colors.Transparent)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	fmt.Fprintf(&sb, "paste = %v\n", c.Notify.Paste)
	sb.WriteString("\n")

	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, f := range theme.Fields(t) {
			fmt.Fprintf(&sb, "%s: %s\n", f.Name, theme.Hex(f.Color))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
