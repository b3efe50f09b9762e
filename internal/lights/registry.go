package lights

import (
	"errors"
	"fmt"
	"sync"
)

// Recognized light identifiers, matching the platform's light names.
const (
	Backlight     = "backlight"
	Notifications = "notifications"
	Attention     = "attention"
)

var (
	// ErrUnknownLight is returned by Open for an unrecognized identifier.
	ErrUnknownLight = errors.New("unknown light")
	// ErrClosed is returned by Apply on a closed device handle.
	ErrClosed = errors.New("light device closed")
)

// Kind identifies which physical target a device handle drives.
type Kind int

const (
	KindBacklight Kind = iota
	KindNotifications
	KindAttention
)

// String returns the light identifier for the kind.
func (k Kind) String() string {
	switch k {
	case KindBacklight:
		return Backlight
	case KindNotifications:
		return Notifications
	case KindAttention:
		return Attention
	default:
		return "unknown"
	}
}

// Names lists the recognized light identifiers.
func Names() []string {
	return []string{Backlight, Notifications, Attention}
}

// Device is an opaque handle bound to one light target. It is owned by
// the caller that opened it and becomes inert after Close; there is no
// way to reach freed state through a stale handle.
type Device struct {
	kind   Kind
	mu     sync.Mutex
	ctrl   *Controller
	closed bool
}

// Open returns a device handle for the named light, bound to the shared
// controller. Unrecognized names fail with ErrUnknownLight.
func Open(name string, ctrl *Controller) (*Device, error) {
	var kind Kind
	switch name {
	case Backlight:
		kind = KindBacklight
	case Notifications:
		kind = KindNotifications
	case Attention:
		kind = KindAttention
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLight, name)
	}
	return &Device{kind: kind, ctrl: ctrl}, nil
}

// Kind returns the target this handle was opened for.
func (d *Device) Kind() Kind {
	return d.kind
}

// Apply dispatches the request to the handle's bound operation.
func (d *Device) Apply(s State) error {
	d.mu.Lock()
	ctrl := d.ctrl
	closed := d.closed
	d.mu.Unlock()

	if closed {
		return ErrClosed
	}

	switch d.kind {
	case KindBacklight:
		return ctrl.SetBacklight(s)
	case KindNotifications:
		return ctrl.SetNotifications(s)
	default:
		return ctrl.SetAttention(s)
	}
}

// Close releases the handle. Closing twice, or closing a nil device, is
// a no-op.
func (d *Device) Close() {
	if d == nil {
		return
	}
	d.mu.Lock()
	d.closed = true
	d.ctrl = nil
	d.mu.Unlock()
}
