package events

// Event type constants for kelindar/event.
const (
	TypeLightApplied uint32 = iota + 1
	TypeLightError
	TypeConfigReloaded
)

// Event interface required by kelindar/event.
type Event interface {
	Type() uint32
}

// LightAppliedEvent is published after a light request reaches the
// hardware. Level carries the backlight brightness or the indicator
// level, depending on the light.
type LightAppliedEvent struct {
	Light     string `json:"light" example:"notifications" doc:"Light identifier"`
	Level     int    `json:"level" example:"255" doc:"Applied brightness level"`
	Pattern   string `json:"pattern,omitempty" example:"ff0000 0 0 1 1" doc:"Blink pattern written to the indicator, empty for the backlight"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Apply timestamp"`
}

// Type returns the event type identifier for LightAppliedEvent.
func (e LightAppliedEvent) Type() uint32 { return TypeLightApplied }

// LightErrorEvent is published when a light request fails to reach the
// hardware.
type LightErrorEvent struct {
	Light     string `json:"light" example:"backlight" doc:"Light identifier"`
	Error     string `json:"error" example:"open light control file: no such file" doc:"Failure description"`
	Errno     int    `json:"errno" example:"-2" doc:"Negated system error code"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Error timestamp"`
}

// Type returns the event type identifier for LightErrorEvent.
func (e LightErrorEvent) Type() uint32 { return TypeLightError }

// ConfigReloadedEvent is published when the lights config file changes
// and new sysfs paths are applied.
type ConfigReloadedEvent struct {
	Backlight string `json:"backlight" doc:"Backlight control file path"`
	Indicator string `json:"indicator" doc:"Indicator control file path"`
	Timestamp string `json:"timestamp" doc:"Reload timestamp"`
}

// Type returns the event type identifier for ConfigReloadedEvent.
func (e ConfigReloadedEvent) Type() uint32 { return TypeConfigReloaded }
