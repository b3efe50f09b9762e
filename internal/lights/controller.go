package lights

import (
	"log/slog"
	"sync"
)

// Paths names the two sysfs sinks the controller writes to.
type Paths struct {
	Backlight string
	Indicator string
}

// DefaultPaths returns the stock sysfs locations for both sinks.
func DefaultPaths() Paths {
	return Paths{
		Backlight: DefaultBacklightPath,
		Indicator: DefaultIndicatorPath,
	}
}

// Observer is notified after each successful hardware write with the
// channel that made the call and the winner's written values. Pattern is
// empty for backlight writes. Called with the controller lock held, so
// implementations must not call back into the controller.
type Observer func(kind Kind, level int, pattern string)

// Controller owns the shared light state: the retained attention request
// and the two sysfs sinks. One mutex serializes every operation end to
// end, sysfs write included, so the hardware never observes two
// interleaved requests and the attention state is read-modify-written
// atomically.
type Controller struct {
	mu        sync.Mutex
	attention State
	paths     Paths
	writer    *Writer
	logger    *slog.Logger
	observer  Observer
}

// NewController creates a controller writing through the given sysfs
// writer. Attention starts out dark, so notifications own the indicator.
func NewController(paths Paths, writer *Writer, logger *slog.Logger) *Controller {
	return &Controller{
		paths:  paths,
		writer: writer,
		logger: logger,
	}
}

// SetObserver installs the write observer. Install before handing the
// controller to concurrent callers.
func (c *Controller) SetObserver(o Observer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observer = o
}

// SetBacklight applies the request's luma-derived brightness to the
// backlight sink.
func (c *Controller) SetBacklight(s State) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	brightness := BacklightBrightness(s)
	if err := c.writer.WriteInt(c.paths.Backlight, brightness); err != nil {
		return err
	}
	if c.observer != nil {
		c.observer(KindBacklight, brightness, "")
	}
	return nil
}

// SetNotifications applies a notification request to the indicator LED.
// The request loses to the retained attention request while that one is
// lit; it is not stored.
func (c *Controller) SetNotifications(s State) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applyIndicatorLocked(KindNotifications, s)
}

// SetAttention stores the request as the new attention state and applies
// the resolved winner to the indicator LED. Once stored, a lit attention
// request masks notifications until it is replaced with a dark one.
func (c *Controller) SetAttention(s State) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attention = s
	return c.applyIndicatorLocked(KindAttention, s)
}

// applyIndicatorLocked resolves the candidate against the retained
// attention request and writes the winner's level and blink pattern.
// Strict priority, no blending: lit attention fully masks the candidate.
func (c *Controller) applyIndicatorLocked(caller Kind, candidate State) error {
	winner := candidate
	if IsLit(c.attention) {
		winner = c.attention
	}
	level := IndicatorLevel(winner)
	onMS, offMS := FlashTimings(winner)
	pattern := BlinkPattern(level, onMS, offMS)
	if err := c.writer.WriteString(c.paths.Indicator, pattern); err != nil {
		return err
	}
	if c.observer != nil {
		c.observer(caller, level, pattern)
	}
	return nil
}

// SetPaths swaps the sysfs sinks, used when the lights config is
// reloaded. Takes the controller lock so an in-flight operation finishes
// against the old paths.
func (c *Controller) SetPaths(p Paths) {
	c.mu.Lock()
	defer c.mu.Unlock()
	old := c.paths
	c.paths = p
	if old != p {
		c.logger.Info("Light control paths updated",
			"backlight", p.Backlight, "indicator", p.Indicator)
	}
}
