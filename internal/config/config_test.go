package config

import (
	"image/color"
	"strings"
	"testing"

	"github.com/example/rasterpaint/internal/brush"
)

func TestParse(t *testing.T) {
	input := `
theme = my_custom_theme
save_dir = /tmp/paintings

[brush]
base = 21
shape = backslash
size = medium

[eraser]
shape = round
size = 4

[colors]
foreground = #FF0000
background = navy
transparent = true

[notify]
save = true
copy = false
paste = true

[theme.my_custom_theme]
Background = #111111
SelectionTint: #10203040
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Theme != "my_custom_theme" {
		t.Errorf("Expected theme 'my_custom_theme', got '%s'", cfg.Theme)
	}
	if cfg.SaveDir != "/tmp/paintings" {
		t.Errorf("Expected save_dir '/tmp/paintings', got '%s'", cfg.SaveDir)
	}
	if cfg.Brush != (Stroke{Base: 21, Shape: "backslash", Size: "medium"}) {
		t.Errorf("Unexpected brush: %+v", cfg.Brush)
	}
	if cfg.Eraser.Base != brush.DefaultBase || cfg.Eraser.Shape != "round" || cfg.Eraser.Size != "4" {
		t.Errorf("Unexpected eraser: %+v", cfg.Eraser)
	}
	shape, size, err := cfg.Eraser.Parse()
	if err != nil || shape != brush.Round || size != brush.Tiny {
		t.Errorf("Eraser preset: %v %v %v", shape, size, err)
	}
	if got := cfg.Foreground(); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("Unexpected foreground: %v", got)
	}
	if got := cfg.Background(); got != (color.RGBA{0, 0, 128, 255}) {
		t.Errorf("Unexpected background: %v", got)
	}
	if !cfg.Colors.Transparent {
		t.Error("Expected colors.transparent to be true")
	}
	if cfg.Notify != (Notify{Save: true, Paste: true}) {
		t.Errorf("Unexpected notify: %+v", cfg.Notify)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}

	th, ok := cfg.Themes["my_custom_theme"]
	if !ok {
		t.Fatal("Expected theme 'my_custom_theme' to be loaded")
	}
	if th.Background != (color.RGBA{0x11, 0x11, 0x11, 0xFF}) {
		t.Errorf("Unexpected Background color: %+v", th.Background)
	}
	if th.SelectionTint != (color.RGBA{0x10, 0x20, 0x30, 0x40}) {
		t.Errorf("Unexpected SelectionTint color: %+v", th.SelectionTint)
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{
		"[brush]\nbase = big\n",
		"[notify]\nsave = maybe\n",
		"[colors]\ntransparent = 2x\n",
		"[theme.bad]\nBackground: 123456\n",
	} {
		if _, err := Parse(strings.NewReader(input)); err == nil {
			t.Errorf("expected error for %q", input)
		}
	}
}

func TestValidate(t *testing.T) {
	cfg := New()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	cfg.Brush.Shape = "slash"
	cfg.Brush.Size = "small"
	if err := cfg.Validate(); err == nil {
		t.Error("small diagonal brush accepted")
	}
	cfg = New()
	cfg.Colors.Foreground = "not-a-colour"
	if err := cfg.Validate(); err == nil {
		t.Error("bad colour accepted")
	}
	if got := cfg.Foreground(); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("fallback foreground %v", got)
	}
}

func TestCircular(t *testing.T) {
	input := `theme = dark
save_dir = /home/user/paintings

[brush]
base = 13
shape = rect
size = small

[colors]
foreground = #336699
background = white

[notify]
save = true
copy = true
paste = false

[theme.custom]
Name = custom
Background = #000000
HandleFill = #FFFFFF80
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	generated := cfg.String()

	cfg2, err := Parse(strings.NewReader(generated))
	if err != nil {
		t.Fatalf("Circular parse failed: %v", err)
	}

	if cfg.Theme != cfg2.Theme {
		t.Errorf("Theme mismatch: %q vs %q", cfg.Theme, cfg2.Theme)
	}
	if cfg.SaveDir != cfg2.SaveDir {
		t.Errorf("SaveDir mismatch: %q vs %q", cfg.SaveDir, cfg2.SaveDir)
	}
	if cfg.Brush != cfg2.Brush || cfg.Eraser != cfg2.Eraser {
		t.Errorf("Stroke mismatch: %+v/%+v vs %+v/%+v", cfg.Brush, cfg.Eraser, cfg2.Brush, cfg2.Eraser)
	}
	if cfg.Colors != cfg2.Colors {
		t.Errorf("Colors mismatch: %+v vs %+v", cfg.Colors, cfg2.Colors)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}

	t1 := cfg.Themes["custom"]
	t2 := cfg2.Themes["custom"]
	if t1 == nil || t2 == nil {
		t.Fatalf("Custom theme missing in one config")
	}
	if *t1 != *t2 {
		t.Errorf("Theme mismatch: %+v vs %+v", t1, t2)
	}
}
