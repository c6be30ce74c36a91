// Package notify raises desktop notifications for save, copy and paste.
package notify

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/example/rasterpaint/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventSave emits a notification when an image is persisted to disk.
	EventSave Event = "save"
	// EventCopy emits a notification when an image is copied to the clipboard.
	EventCopy Event = "copy"
	// EventPaste emits a notification when a clipboard image becomes a
	// selection.
	EventPaste Event = "paste"
)

// EventPreference describes formatting for a notification event.
type EventPreference struct {
	Template string
	// Category is passed to the notification service, see
	// platform.Options.
	Category string
	Urgency  platform.Urgency
}

// Preferences describes notification behaviour loaded from configuration.
type Preferences struct {
	Title   string
	Timeout time.Duration
	Events  map[Event]EventPreference
}

// DefaultPreferences returns the default notification settings.
func DefaultPreferences() Preferences {
	return Preferences{
		Title:   "RasterPaint",
		Timeout: 5 * time.Second,
		Events: map[Event]EventPreference{
			EventSave:  {Template: "Saved %s", Category: "transfer.complete", Urgency: platform.UrgencyNormal},
			EventCopy:  {Template: "Copied %s to clipboard", Category: "transfer", Urgency: platform.UrgencyLow},
			EventPaste: {Template: "Pasted %s", Category: "transfer", Urgency: platform.UrgencyLow},
		},
	}
}

// LoadPreferences reads overrides from environment variables.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("RASTERPAINT_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	apply := func(key string, event Event) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			eventPrefs := prefs.Events[event]
			eventPrefs.Template = v
			prefs.Events[event] = eventPrefs
		}
	}
	apply("RASTERPAINT_NOTIFY_SAVE_TEXT", EventSave)
	apply("RASTERPAINT_NOTIFY_COPY_TEXT", EventCopy)
	apply("RASTERPAINT_NOTIFY_PASTE_TEXT", EventPaste)
	return prefs
}

// Sender delivers a formatted notification.
type Sender func(title, body string, opts platform.Options) error

// Notifier sends OS-level notifications based on the configured preferences.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
	send    Sender
}

// New creates a new Notifier using the provided preferences.
func New(prefs Preferences) *Notifier {
	cloned := Preferences{Title: prefs.Title, Timeout: prefs.Timeout, Events: make(map[Event]EventPreference, len(prefs.Events))}
	for k, v := range prefs.Events {
		cloned.Events[k] = v
	}
	return &Notifier{prefs: cloned, enabled: make(map[Event]bool), send: platform.Notify}
}

// WithSender replaces the platform sender.
func (n *Notifier) WithSender(s Sender) *Notifier {
	n.send = s
	return n
}

// Enable toggles the notifier for the provided event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	if n.enabled == nil {
		n.enabled = make(map[Event]bool)
	}
	n.enabled[event] = enabled
}

// Save sends a save notification including the written filename when available.
func (n *Notifier) Save(path string) {
	if !n.enabledFor(EventSave) {
		return
	}
	detail := strings.TrimSpace(path)
	opts := platform.Options{}
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if _, statErr := os.Stat(abs); statErr == nil {
			opts.IconPath = abs
		}
	}
	n.dispatch(EventSave, detail, opts)
}

// Copy sends a clipboard notification with a preview of img.
func (n *Notifier) Copy(img image.Image) {
	n.withPreview(EventCopy, img)
}

// Paste sends a notification for a pasted image.
func (n *Notifier) Paste(img image.Image) {
	n.withPreview(EventPaste, img)
}

func (n *Notifier) withPreview(event Event, img image.Image) {
	if !n.enabledFor(event) {
		return
	}
	detail := "image"
	opts := platform.Options{}
	if img != nil {
		b := img.Bounds()
		detail = fmt.Sprintf("%dx%d image", b.Dx(), b.Dy())
		if path, cleanup, err := createPreview(img); err != nil {
			log.Printf("notification preview: %v", err)
		} else {
			defer cleanup()
			opts.IconPath = path
		}
	}
	n.dispatch(event, detail, opts)
}

func (n *Notifier) enabledFor(event Event) bool {
	if n == nil || n.enabled == nil {
		return false
	}
	return n.enabled[event]
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	pref := n.prefs.Events[event]
	template := strings.TrimSpace(pref.Template)
	if template == "" {
		return
	}
	body := strings.TrimSpace(fmt.Sprintf(template, strings.TrimSpace(detail)))
	if body == "" {
		return
	}
	opts.Timeout = n.prefs.Timeout
	opts.Category = pref.Category
	opts.Urgency = pref.Urgency
	err := n.send(n.prefs.Title, body, opts)
	switch {
	case errors.Is(err, platform.ErrUnsupported):
		// nothing to show it on
	case err != nil:
		log.Printf("notification %s: %v", event, err)
	}
}

func createPreview(img image.Image) (string, func(), error) {
	f, err := os.CreateTemp("", "rasterpaint-preview-*.png")
	if err != nil {
		return "", nil, err
	}
	path := f.Name()
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", nil, err
	}
	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("remove preview: %v", err)
		}
	}
	return path, cleanup, nil
}
