package theme

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const ext = ".theme"

// Loader finds themes by name. A name is tried as a file path, then among
// the embedded themes, then in each of Dirs in order.
type Loader struct {
	Dirs []string
}

// NewLoader searches the user's theme directory, then the system one.
func NewLoader() *Loader {
	l := &Loader{}
	if home, err := os.UserHomeDir(); err == nil {
		l.Dirs = append(l.Dirs, filepath.Join(home, ".config", "rasterpaint", "themes"))
	}
	l.Dirs = append(l.Dirs, "/usr/share/rasterpaint/themes")
	return l
}

// Load returns the named theme. The empty name and "default" give Default.
func (l *Loader) Load(name string) (*Theme, error) {
	if name == "" || strings.EqualFold(name, "default") {
		return Default(), nil
	}
	if st, err := os.Stat(name); err == nil && !st.IsDir() {
		return parseFile(os.DirFS(filepath.Dir(name)), filepath.Base(name))
	}
	file := name
	if !strings.HasSuffix(file, ext) {
		file += ext
	}
	if t, err := parseFile(EmbeddedThemes, "defaults/"+file); err == nil {
		return t, nil
	}
	for _, dir := range l.Dirs {
		if _, err := os.Stat(filepath.Join(dir, file)); err != nil {
			continue
		}
		return parseFile(os.DirFS(dir), file)
	}
	return nil, fmt.Errorf("theme %q not found", name)
}

// Names lists the themes Load can find by name, sorted.
func (l *Loader) Names() []string {
	seen := map[string]bool{"default": true}
	add := func(fsys fs.FS, dir string) {
		matches, _ := fs.Glob(fsys, filepath.ToSlash(filepath.Join(dir, "*"+ext)))
		for _, m := range matches {
			seen[strings.TrimSuffix(filepath.Base(m), ext)] = true
		}
	}
	add(EmbeddedThemes, "defaults")
	for _, dir := range l.Dirs {
		add(os.DirFS(dir), ".")
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func parseFile(fsys fs.FS, name string) (*Theme, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return t, nil
}
