package lights

import "fmt"

const (
	ledOff = 0
	ledOn  = 255
)

// IsLit reports whether the request's RGB channels are not all zero.
// The alpha byte does not count: 0x80000000 is dark.
func IsLit(s State) bool {
	return s.Color&0x00ffffff != 0
}

// BacklightBrightness converts the request color to a backlight level
// using a fixed-weight luma approximation.
func BacklightBrightness(s State) int {
	color := s.Color & 0x00ffffff
	r := (color >> 16) & 0xff
	g := (color >> 8) & 0xff
	b := color & 0xff
	return int((77*r + 150*g + 29*b) >> 8)
}

// IndicatorLevel derives the indicator LED brightness from a request.
// An unlit request turns the LED off. A lit request uses the alpha byte
// when set, full brightness otherwise.
func IndicatorLevel(s State) int {
	if !IsLit(s) {
		return ledOff
	}
	if alpha := (s.Color >> 24) & 0xff; alpha != 0 {
		return int(alpha)
	}
	return ledOn
}

// BlinkPattern renders one line of the rgb control file grammar: the
// brightness byte in hex, two color bytes the driver ignores, the on/off
// durations, and the driver's two fixed ramp parameters.
func BlinkPattern(level, onMS, offMS int) string {
	return fmt.Sprintf("%02x0000 %d %d 1 1", level, onMS, offMS)
}

// FlashTimings returns the on/off durations for a request. Durations only
// apply to timed and hardware flash modes; any other mode, recognized or
// not, is steady.
func FlashTimings(s State) (onMS, offMS int) {
	switch s.Flash {
	case FlashTimed, FlashHardware:
		return s.FlashOnMS, s.FlashOffMS
	default:
		return 0, 0
	}
}
