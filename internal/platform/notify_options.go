// Package platform sends desktop notifications through the host's
// notification service.
package platform

import (
	"errors"
	"time"
)

// DefaultAppName identifies the sender when Options.AppName is empty.
const DefaultAppName = "RasterPaint"

// ErrUnsupported is returned where the host has no notification service.
var ErrUnsupported = errors.New("desktop notifications are not supported on this platform")

// Urgency ranks a notification. Services may use it to pick sound or
// placement.
type Urgency byte

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// AppName is reported to the notification service.
	AppName string
	// IconPath, when non-empty, points to an image file shown with the
	// notification where supported.
	IconPath string
	// Timeout is how long the notification stays visible. Zero leaves it to
	// the platform.
	Timeout time.Duration
	Urgency Urgency
	// Category is a freedesktop category such as "transfer.complete".
	Category string
}

func (o Options) appName() string {
	if o.AppName == "" {
		return DefaultAppName
	}
	return o.AppName
}

// expireMillis is the freedesktop expire_timeout: -1 lets the server decide.
func (o Options) expireMillis() int32 {
	if o.Timeout <= 0 {
		return -1
	}
	return int32(o.Timeout.Milliseconds())
}
