package appstate

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/mobile/event/key"

	"github.com/example/rasterpaint/internal/brush"
	"github.com/example/rasterpaint/internal/imageops"
)

// KeyShortcut is a single key binding. Either Rune or Code identifies the key.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

func (k KeyShortcut) String() string {
	var parts []string
	if k.Modifiers&key.ModControl != 0 {
		parts = append(parts, "ctrl")
	}
	if k.Modifiers&key.ModAlt != 0 {
		parts = append(parts, "alt")
	}
	if k.Modifiers&key.ModShift != 0 {
		parts = append(parts, "shift")
	}
	switch {
	case k.Rune != 0:
		parts = append(parts, string(k.Rune))
	case k.Code == key.CodeEscape:
		parts = append(parts, "esc")
	default:
		parts = append(parts, fmt.Sprintf("key%d", k.Code))
	}
	return strings.Join(parts, "+")
}

// KeyboardShortcuts lists the bindings of an action.
type KeyboardShortcuts interface {
	KeyboardShortcuts() []KeyShortcut
}

type shortcutList []KeyShortcut

func (s shortcutList) KeyboardShortcuts() []KeyShortcut { return s }

type keymap struct {
	actions map[string]func()
	keys    map[KeyShortcut]string
}

func newKeymap() *keymap {
	return &keymap{actions: map[string]func(){}, keys: map[KeyShortcut]string{}}
}

func (k *keymap) register(name string, keys KeyboardShortcuts, fn func()) {
	k.actions[name] = fn
	if keys == nil {
		return
	}
	for _, sc := range keys.KeyboardShortcuts() {
		k.keys[sc] = name
	}
}

// lookup matches e by rune first, then by key code.
func (k *keymap) lookup(e key.Event) (string, bool) {
	mods := e.Modifiers &^ key.ModShift
	if e.Rune > 0 {
		if name, ok := k.keys[KeyShortcut{Rune: unicode.ToLower(e.Rune), Modifiers: mods}]; ok {
			return name, true
		}
		if name, ok := k.keys[KeyShortcut{Rune: e.Rune, Modifiers: mods}]; ok {
			return name, true
		}
	}
	name, ok := k.keys[KeyShortcut{Code: e.Code, Modifiers: mods}]
	return name, ok
}

// handle runs the action bound to e. It reports whether one ran.
func (k *keymap) handle(e key.Event) bool {
	if e.Direction != key.DirPress {
		return false
	}
	name, ok := k.lookup(e)
	if !ok {
		return false
	}
	return k.run(name)
}

func (k *keymap) run(name string) bool {
	fn, ok := k.actions[name]
	if !ok {
		return false
	}
	fn()
	return true
}

// help lists "keys action" lines sorted by action.
func (k *keymap) help() []string {
	byAction := map[string][]string{}
	for sc, name := range k.keys {
		byAction[name] = append(byAction[name], sc.String())
	}
	var lines []string
	for name, keys := range byAction {
		sort.Strings(keys)
		lines = append(lines, fmt.Sprintf("%-8s %s", strings.Join(keys, ","), name))
	}
	sort.Slice(lines, func(i, j int) bool {
		return strings.Fields(lines[i])[1] < strings.Fields(lines[j])[1]
	})
	return lines
}

// windowControl is the part of the window the keymap drives.
type windowControl interface {
	Zoom(factor float64)
	Fit()
	Quit()
}

var sizeKeys = []struct {
	r    rune
	size brush.Size
}{{'1', brush.Tiny}, {'2', brush.Small}, {'3', brush.Medium}, {'4', brush.Large}}

func bindKeys(k *keymap, s *Session, win windowControl) {
	for _, t := range []struct {
		name string
		r    rune
	}{{"brush", 'b'}, {"eraser", 'e'}, {"airbrush", 'a'}, {"select", 's'}} {
		name := t.name
		k.register(name, shortcutList{{Rune: t.r}}, func() { s.report(s.Tools.Use(name)) })
	}
	k.register("save", shortcutList{{Rune: 's', Modifiers: key.ModControl}}, func() { s.report(s.Save()) })
	k.register("copy", shortcutList{{Rune: 'c', Modifiers: key.ModControl}}, func() { s.report(s.Copy()) })
	k.register("paste", shortcutList{{Rune: 'v', Modifiers: key.ModControl}}, func() { s.report(s.Paste()) })
	k.register("undo", shortcutList{{Rune: 'z', Modifiers: key.ModControl}}, s.Undo)
	k.register("redo", shortcutList{{Rune: 'y', Modifiers: key.ModControl}}, s.Redo)
	k.register("clear", shortcutList{{Rune: 'n', Modifiers: key.ModControl}}, func() { s.report(s.Tools.ClearCanvas()) })
	k.register("invert", shortcutList{{Rune: 'i'}}, func() { s.report(s.Tools.Invert()) })
	k.register("fliph", shortcutList{{Rune: 'h'}}, func() { s.report(s.Tools.Flip(imageops.Horizontal)) })
	k.register("flipv", shortcutList{{Rune: 'v'}}, func() { s.report(s.Tools.Flip(imageops.Vertical)) })
	k.register("rotate", shortcutList{{Rune: 'r'}}, func() { s.report(s.Tools.Rotate(imageops.Rotate90)) })
	for _, sk := range sizeKeys {
		size := sk.size
		k.register("size"+string(sk.r), shortcutList{{Rune: sk.r}}, func() { s.report(s.SetToolSize(size)) })
	}
	k.register("transparent", shortcutList{{Rune: 't'}}, s.ToggleTransparent)
	k.register("swap", shortcutList{{Rune: 'x'}}, s.SwapColors)
	k.register("zoomin", shortcutList{{Rune: '+'}, {Rune: '='}}, func() { win.Zoom(1.25) })
	k.register("zoomout", shortcutList{{Rune: '-'}}, func() { win.Zoom(0.8) })
	k.register("fit", shortcutList{{Rune: '0'}}, win.Fit)
	k.register("dismiss", shortcutList{{Code: key.CodeEscape}}, func() { s.DismissMessage() })
	k.register("quit", shortcutList{{Rune: 'q'}, {Rune: 'q', Modifiers: key.ModControl}}, win.Quit)
}
