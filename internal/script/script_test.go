package script

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/rasterpaint/internal/canvas"
	"github.com/example/rasterpaint/internal/tools"
	"github.com/example/rasterpaint/internal/undo"
)

var (
	white = color.RGBA{255, 255, 255, 255}
	black = color.RGBA{A: 255}
	red   = color.RGBA{R: 255, A: 255}
)

func TestParse(t *testing.T) {
	src := `
# a comment
tool brush
DOWN 1 2
up 3 4 right

tick
undo 2
`
	cmds, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if len(cmds) != 5 {
		t.Fatalf("commands %d", len(cmds))
	}
	if cmds[1].Name != "down" || cmds[1].Line != 4 {
		t.Fatalf("second command %+v", cmds[1])
	}
	if got := cmds[2].String(); got != "up 3 4 right" {
		t.Fatalf("string %q", got)
	}
}

func TestParseErrors(t *testing.T) {
	for _, src := range []string{
		"lasso 1 2\n",
		"tool\n",
		"down 1\n",
		"invert now\n",
	} {
		_, err := Parse(strings.NewReader(src))
		if !errors.Is(err, ErrSyntax) {
			t.Errorf("%q: err %v", src, err)
		}
	}
}

func newManager(w, h int) (*tools.Manager, *canvas.Canvas) {
	c := canvas.New(w, h, white)
	hist := undo.NewHistory(c)
	m := tools.NewManager(&tools.Context{
		Canvas: c,
		Undo:   hist,
		File:   hist,
		Colors: tools.Colors{FG: black, BG: white},
		Rand:   rand.New(rand.NewPCG(3, 4)),
	})
	return m, c
}

func run(t *testing.T, m *tools.Manager, src string, opts ...Option) {
	t.Helper()
	cmds, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if err := NewRunner(m, opts...).Run(cmds); err != nil {
		t.Fatal(err)
	}
}

func TestStrokeAndColours(t *testing.T) {
	m, c := newManager(60, 60)
	run(t, m, `
tool brush
brush rect 3
fg red
drag 10 10 50 10 4
`)
	if got := c.Surface().RGBAAt(30, 10); got != red {
		t.Fatalf("stroke pixel %v", got)
	}
	if got := c.Surface().RGBAAt(30, 30); got != white {
		t.Fatalf("untouched pixel %v", got)
	}
	run(t, m, "undo\n")
	if got := c.Surface().RGBAAt(30, 10); got != white {
		t.Fatalf("after undo %v", got)
	}
}

func TestReplayIsDeterministic(t *testing.T) {
	src := `
tool airbrush
down 20 20
tick 4
move 30 25
tick 4
up 30 25
tool eraser
eraser round medium
drag 0 0 40 40 8
invert
flip h
`
	a, ca := newManager(50, 50)
	b, cb := newManager(50, 50)
	run(t, a, src)
	run(t, b, src)
	if !bytes.Equal(ca.Surface().Pix, cb.Surface().Pix) {
		t.Fatal("replays differ")
	}
}

func TestPasteFile(t *testing.T) {
	dir := t.TempDir()
	stamp := image.NewRGBA(image.Rect(0, 0, 30, 30))
	canvas.FillRect(stamp, stamp.Bounds(), red)
	f, err := os.Create(filepath.Join(dir, "stamp.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, stamp); err != nil {
		t.Fatal(err)
	}
	f.Close()

	m, c := newManager(80, 80)
	var pasted image.Image
	run(t, m, `
tool brush
paste stamp.png
drag 15 15 55 55
tool brush
`, WithBaseDir(dir), WithPasteHook(func(img image.Image) { pasted = img }))
	if pasted == nil {
		t.Fatal("paste hook not called")
	}
	if got := c.Surface().RGBAAt(60, 60); got != red {
		t.Fatalf("moved paste pixel %v", got)
	}
	if got := c.Surface().RGBAAt(10, 10); got != white {
		t.Fatalf("origin pixel %v", got)
	}
}

func TestPasteClipboardSource(t *testing.T) {
	m, _ := newManager(20, 20)
	r := NewRunner(m)
	r.readClip = func() (*image.RGBA, error) {
		return image.NewRGBA(image.Rect(0, 0, 3, 3)), nil
	}
	if err := r.Exec(Command{Name: "paste", Args: []string{ClipboardSource}}); err != nil {
		t.Fatal(err)
	}
	if !m.Context().Selection.HasImage() {
		t.Fatal("clipboard paste did not create a selection")
	}
}

func TestRunReportsLine(t *testing.T) {
	m, _ := newManager(10, 10)
	cmds, err := Parse(strings.NewReader("tool brush\nfg nocolour\n"))
	if err != nil {
		t.Fatal(err)
	}
	err = NewRunner(m).Run(cmds)
	if err == nil || !strings.HasPrefix(err.Error(), "line 2:") {
		t.Fatalf("err %v", err)
	}
}
