package appstate

import (
	"context"
	"image"
	"log"
	"strings"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/rasterpaint/internal/config"
	"github.com/example/rasterpaint/internal/render"
	"github.com/example/rasterpaint/internal/theme"
	"github.com/example/rasterpaint/internal/tools"
)

const (
	minWindowWidth  = 320
	minWindowHeight = 240
	maxWindowWidth  = 1600
	maxWindowHeight = 1000
)

// AppState owns the window of one Session.
type AppState struct {
	session *Session
	theme   *theme.Theme
	loader  *config.Loader

	sendMu sync.Mutex
	send   func(any)

	onClose   func()
	closeOnce sync.Once
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithTheme sets the window colours.
func WithTheme(t *theme.Theme) Option { return func(a *AppState) { a.theme = t } }

// WithConfigLoader applies configuration reloads reported by l to the
// running window.
func WithConfigLoader(l *config.Loader) Option { return func(a *AppState) { a.loader = l } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates the window state for s.
func New(s *Session, opts ...Option) *AppState {
	a := &AppState{session: s, theme: theme.Default()}
	for _, o := range opts {
		o(a)
	}
	return a
}

type tickEvent struct{}

type configEvent struct{ cfg *config.Config }

// Reload hands cfg to the running window. It is safe to call from any
// goroutine and does nothing when no window is open.
func (a *AppState) Reload(cfg *config.Config) {
	a.sendMu.Lock()
	send := a.send
	a.sendMu.Unlock()
	if send != nil {
		send(configEvent{cfg})
	}
}

func (a *AppState) setSender(fn func(any)) {
	a.sendMu.Lock()
	a.send = fn
	a.sendMu.Unlock()
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		a.setSender(nil)
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// ResolveTheme looks name up in the configured themes, then through the
// theme loader. Unknown names fall back to the default theme.
func ResolveTheme(name string, custom map[string]*theme.Theme) *theme.Theme {
	if t, ok := custom[name]; ok {
		return t
	}
	l := theme.NewLoader()
	t, err := l.Load(name)
	if err != nil {
		log.Printf("theme: %v (available: %s)", err, strings.Join(l.Names(), ", "))
		return theme.Default()
	}
	return t
}

// windowState implements windowControl for the event loop.
type windowState struct {
	vp      *viewport
	session *Session
	quit    bool
}

func (ws *windowState) Zoom(f float64) { ws.vp.scale(f, ws.session.Canvas.Size()) }
func (ws *windowState) Fit()           { ws.vp.fit = true }
func (ws *windowState) Quit()          { ws.quit = true }

// Run executes the UI loop using shiny's driver.
func (a *AppState) Run() { driver.Main(a.Main) }

func (a *AppState) Main(s screen.Screen) {
	sess := a.session
	cs := sess.Canvas.Size()
	width := min(max(cs.X, minWindowWidth), maxWindowWidth)
	height := min(max(cs.Y, minWindowHeight), maxWindowHeight) + statusHeight
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: sess.Title()})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()
	defer a.notifyClose()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.setSender(func(e any) { w.Send(e) })
	if a.loader != nil {
		a.loader.OnChange(a.Reload)
		go func() {
			for {
				select {
				case err := <-a.loader.Errors():
					log.Printf("config: %v", err)
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	ws := &windowState{vp: newViewport(), session: sess}
	ws.vp.window = image.Pt(width, height)
	keys := newKeymap()
	bindKeys(keys, sess, ws)

	var sprayStop context.CancelFunc
	startSpray := func() {
		if sprayStop != nil {
			return
		}
		sctx, stop := context.WithCancel(ctx)
		sprayStop = stop
		go func() {
			t := time.NewTicker(tools.SprayInterval)
			defer t.Stop()
			for {
				select {
				case <-t.C:
					w.Send(tickEvent{})
				case <-sctx.Done():
					return
				}
			}
		}()
	}
	stopSpray := func() {
		if sprayStop != nil {
			sprayStop()
			sprayStop = nil
		}
	}
	defer stopSpray()

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	defer close(paintCh)
	go func() {
		r := render.New(render.PaletteFrom(a.theme))
		for st := range paintCh {
			pctx, pcancel := context.WithCancel(ctx)
			paintMu.Lock()
			paintCancel = pcancel
			paintMu.Unlock()
			drawFrame(pctx, s, w, r, st)
			paintMu.Lock()
			paintCancel = nil
			if pctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			pcancel()
		}
	}()

	clicks := &clickTracker{}
	var pointer image.Point
	repaint := func() { w.Send(paint.Event{}) }

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				paintMu.Lock()
				if paintCancel != nil {
					paintCancel()
				}
				paintMu.Unlock()
				return
			}
		case size.Event:
			ws.vp.window = image.Pt(e.WidthPx, e.HeightPx)
			repaint()
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			st := sess.snapshot(ws.vp.window, ws.vp.view(sess.Canvas.Size()), pointer, a.theme)
			select {
			case paintCh <- st:
			default:
				<-paintCh
				paintCh <- st
			}
		case mouse.Event:
			pointer = image.Pt(int(e.X), int(e.Y))
			if e.Direction == mouse.DirStep {
				switch e.Button {
				case mouse.ButtonWheelUp:
					ws.Zoom(1.25)
				case mouse.ButtonWheelDown:
					ws.Zoom(0.8)
				}
				repaint()
				continue
			}
			if e.Direction == mouse.DirPress && sess.DismissMessage() {
				repaint()
				continue
			}
			if e.Direction == mouse.DirPress && pointer.Y >= ws.vp.window.Y-statusHeight {
				continue
			}
			view := ws.vp.view(sess.Canvas.Size())
			for _, ev := range translate(e, view, clicks, time.Now()) {
				sess.Tools.Dispatch(ev)
			}
			sess.SetPointer(view.Point(pointer))
			if t := sess.Tools.Current(); t != nil && t.Name() == "airbrush" && sess.Tools.Busy() {
				startSpray()
			} else {
				stopSpray()
			}
			repaint()
		case key.Event:
			if keys.handle(e) {
				if ws.quit {
					return
				}
				repaint()
			}
		case tickEvent:
			if sess.Tools.Tick() {
				repaint()
			}
			if !sess.Tools.Busy() {
				stopSpray()
			}
		case configEvent:
			if err := sess.ApplyConfig(e.cfg); err != nil {
				sess.Flash("config: " + err.Error())
			}
			if e.cfg.Theme != "" {
				a.theme = ResolveTheme(e.cfg.Theme, e.cfg.Themes)
			}
			repaint()
		}
	}
}
