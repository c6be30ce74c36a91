//go:build !linux && !darwin && !windows

package platform

// Notify reports ErrUnsupported.
func Notify(title, body string, opts Options) error {
	return ErrUnsupported
}
