package lights

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"sync"
	"syscall"
)

// Default sysfs control files for the two physical sinks.
const (
	DefaultBacklightPath = "/sys/class/leds/lcd-backlight/brightness"
	DefaultIndicatorPath = "/sys/class/leds/rgb/control"
)

// Writer applies values to sysfs control files. Open failures are logged
// once per path so a missing driver does not flood the journal; write
// failures are returned to the caller either way.
type Writer struct {
	logger *slog.Logger
	mu     sync.Mutex
	warned map[string]bool
}

// NewWriter creates a sysfs writer that logs through the given logger.
func NewWriter(logger *slog.Logger) *Writer {
	return &Writer{
		logger: logger,
		warned: make(map[string]bool),
	}
}

// WriteInt writes the value as a decimal ASCII line to path.
func (w *Writer) WriteInt(path string, value int) error {
	return w.write(path, strconv.Itoa(value))
}

// WriteString writes the value as a single line to path.
func (w *Writer) WriteString(path, value string) error {
	return w.write(path, value)
}

func (w *Writer) write(path, value string) error {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		w.warnOnce(path, err)
		return fmt.Errorf("open light control file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(value + "\n"); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (w *Writer) warnOnce(path string, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.warned[path] {
		return
	}
	w.warned[path] = true
	w.logger.Warn("Failed to open light control file", "path", path, "error", err)
}

// Errno maps an operation error to the platform's negated errno
// convention: 0 for nil, -EINVAL for unknown lights, the negated system
// error for I/O failures, -EIO when no errno is available.
func Errno(err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, ErrUnknownLight) || errors.Is(err, ErrClosed) {
		return -int(syscall.EINVAL)
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return -int(errno)
	}
	return -int(syscall.EIO)
}
