package theme

import (
	"bufio"
	"errors"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"
)

// ErrColor is wrapped by every colour parse failure.
var ErrColor = errors.New("bad color")

// Parse reads a theme definition, one "Key: value" or "key = value" pair
// per line. Keys absent from r keep their Default values.
func Parse(r io.Reader) (*Theme, error) {
	t := Default()
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || text[0] == '#' || strings.HasPrefix(text, "//") {
			continue
		}
		i := strings.IndexAny(text, ":=")
		if i < 0 {
			return nil, fmt.Errorf("line %d: expected key and value", line)
		}
		key := strings.TrimSpace(text[:i])
		value := strings.Trim(strings.TrimSpace(text[i+1:]), `"`)
		if _, err := Set(t, key, value); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	return t, scanner.Err()
}

// ParseColor accepts #RGB, #RRGGBB and #RRGGBBAA.
func ParseColor(s string) (color.RGBA, error) {
	hex, ok := strings.CutPrefix(strings.TrimSpace(s), "#")
	if !ok {
		return color.RGBA{}, fmt.Errorf("%w %q: must start with #", ErrColor, s)
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("%w %q: want 3, 6 or 8 hex digits", ErrColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w %q: %v", ErrColor, s, err)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
