// Package assets embeds the bitmap brush stamps.
package assets

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
)

//go:embed stamps/*.png
var embeddedStamps embed.FS

// HappyFace is the name of the default image stamp.
const HappyFace = "happyface"

var (
	loadStampsOnce sync.Once
	loadStampsErr  error

	stampImages = map[string]*image.RGBA{}
)

func loadStamps() {
	entries, err := fs.ReadDir(embeddedStamps, "stamps")
	if err != nil {
		loadStampsErr = err
		return
	}
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, ".png") {
			continue
		}
		data, err := embeddedStamps.ReadFile(path.Join("stamps", name))
		if err != nil {
			loadStampsErr = err
			return
		}
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			loadStampsErr = fmt.Errorf("decode %s: %w", name, err)
			return
		}
		rgba := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
		base := strings.TrimSuffix(name, ".png")
		stampImages[base] = rgba
	}
}

func ensureStamps() error {
	loadStampsOnce.Do(loadStamps)
	return loadStampsErr
}

// Stamp returns a copy of the named stamp bitmap.
func Stamp(name string) (*image.RGBA, error) {
	if err := ensureStamps(); err != nil {
		return nil, err
	}
	img, ok := stampImages[name]
	if !ok {
		return nil, fmt.Errorf("stamp %q not embedded", name)
	}
	out := image.NewRGBA(img.Bounds())
	copy(out.Pix, img.Pix)
	return out, nil
}

// StampNames lists the embedded stamps.
func StampNames() []string {
	if err := ensureStamps(); err != nil {
		return nil
	}
	names := make([]string, 0, len(stampImages))
	for name := range stampImages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
