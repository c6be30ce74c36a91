package theme

import (
	"fmt"
	"image/color"
	"reflect"
	"strings"
)

// Field is one named colour of a Theme.
type Field struct {
	Name  string
	Color color.RGBA
}

var rgbaType = reflect.TypeOf(color.RGBA{})

// normalizeKey folds case and drops separators so that SelectionTint,
// selection_tint and selection-tint name the same field.
func normalizeKey(k string) string {
	k = strings.ToLower(k)
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(k)
}

// Fields lists the colours of t in declaration order.
func Fields(t *Theme) []Field {
	val := reflect.ValueOf(t).Elem()
	typ := val.Type()
	var out []Field
	for i := range typ.NumField() {
		if typ.Field(i).Type == rgbaType {
			out = append(out, Field{typ.Field(i).Name, val.Field(i).Interface().(color.RGBA)})
		}
	}
	return out
}

// Set assigns one key of a theme definition. It reports whether key names a
// field; unknown keys are left for forward compatibility.
func Set(t *Theme, key, value string) (bool, error) {
	nk := normalizeKey(key)
	if nk == "name" {
		t.Name = value
		return true, nil
	}
	val := reflect.ValueOf(t).Elem()
	typ := val.Type()
	for i := range typ.NumField() {
		f := typ.Field(i)
		if f.Type != rgbaType || normalizeKey(f.Name) != nk {
			continue
		}
		col, err := ParseColor(value)
		if err != nil {
			return true, fmt.Errorf("invalid color for key %s: %w", key, err)
		}
		val.Field(i).Set(reflect.ValueOf(col))
		return true, nil
	}
	return false, nil
}

// Hex formats c as #RRGGBB, or #RRGGBBAA when it is not opaque.
func Hex(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
