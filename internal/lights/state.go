package lights

// FlashMode selects how the indicator LED blinks for a request.
type FlashMode int

const (
	// FlashNone keeps the LED steady.
	FlashNone FlashMode = iota
	// FlashTimed blinks using the request's on/off durations.
	FlashTimed
	// FlashHardware lets the driver blink with the same durations.
	FlashHardware
)

// State is one light request as delivered by the platform layer: an ARGB
// color plus flash timing. Only the low 24 bits of Color are color; for
// the indicator channels a nonzero alpha byte optionally carries the
// brightness level. Values are copied per call and never retained, except
// that the controller keeps the most recent attention request.
type State struct {
	Color      uint32
	Flash      FlashMode
	FlashOnMS  int
	FlashOffMS int
}
