package lights

import "testing"

func TestIsLit(t *testing.T) {
	tests := []struct {
		name  string
		color uint32
		want  bool
	}{
		{"black", 0x00000000, false},
		{"pure red", 0x00FF0000, true},
		{"pure green", 0x0000FF00, true},
		{"pure blue", 0x000000FF, true},
		{"white", 0x00FFFFFF, true},
		{"alpha only is dark", 0x80000000, false},
		{"opaque black is dark", 0xFF000000, false},
		{"dim channel", 0x00000001, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsLit(State{Color: tt.color}); got != tt.want {
				t.Errorf("IsLit(%#08x) = %v, want %v", tt.color, got, tt.want)
			}
		})
	}
}

func TestBacklightBrightness(t *testing.T) {
	tests := []struct {
		name  string
		color uint32
		want  int
	}{
		{"black", 0x00000000, 0},
		{"pure red", 0x00FF0000, (77 * 255) >> 8},
		{"pure green", 0x0000FF00, (150 * 255) >> 8},
		{"pure blue", 0x000000FF, (29 * 255) >> 8},
		{"white", 0x00FFFFFF, (77*255 + 150*255 + 29*255) >> 8},
		{"alpha ignored", 0xFF102030, (77*0x10 + 150*0x20 + 29*0x30) >> 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BacklightBrightness(State{Color: tt.color})
			if got != tt.want {
				t.Errorf("BacklightBrightness(%#08x) = %d, want %d", tt.color, got, tt.want)
			}
			if got < 0 || got > 255 {
				t.Errorf("BacklightBrightness(%#08x) = %d, outside [0,255]", tt.color, got)
			}
		})
	}

	// Worked example from the driver docs: pure red lands at 76.
	if got := BacklightBrightness(State{Color: 0x00FF0000}); got != 76 {
		t.Errorf("BacklightBrightness(red) = %d, want 76", got)
	}
}

func TestIndicatorLevel(t *testing.T) {
	tests := []struct {
		name  string
		color uint32
		want  int
	}{
		{"unlit is off", 0x00000000, 0},
		{"unlit ignores alpha", 0x80000000, 0},
		{"lit without alpha is full on", 0x00FF0000, 255},
		{"lit with alpha uses alpha", 0x80FF0000, 0x80},
		{"lit with low alpha", 0x01FFFFFF, 1},
		{"lit with full alpha", 0xFF00FF00, 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IndicatorLevel(State{Color: tt.color}); got != tt.want {
				t.Errorf("IndicatorLevel(%#08x) = %d, want %d", tt.color, got, tt.want)
			}
		})
	}
}

func TestBlinkPattern(t *testing.T) {
	tests := []struct {
		name          string
		level         int
		onMS, offMS   int
		want          string
	}{
		{"full on steady", 255, 0, 0, "ff0000 0 0 1 1"},
		{"off", 0, 0, 0, "000000 0 0 1 1"},
		{"low level zero padded", 10, 0, 0, "0a0000 0 0 1 1"},
		{"blinking", 255, 500, 1500, "ff0000 500 1500 1 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BlinkPattern(tt.level, tt.onMS, tt.offMS); got != tt.want {
				t.Errorf("BlinkPattern(%d, %d, %d) = %q, want %q",
					tt.level, tt.onMS, tt.offMS, got, tt.want)
			}
		})
	}
}

func TestFlashTimings(t *testing.T) {
	tests := []struct {
		name            string
		state           State
		wantOn, wantOff int
	}{
		{"none forces zero", State{Flash: FlashNone, FlashOnMS: 100, FlashOffMS: 200}, 0, 0},
		{"timed passes through", State{Flash: FlashTimed, FlashOnMS: 100, FlashOffMS: 200}, 100, 200},
		{"hardware passes through", State{Flash: FlashHardware, FlashOnMS: 5, FlashOffMS: 5}, 5, 5},
		{"unrecognized treated as none", State{Flash: FlashMode(42), FlashOnMS: 100, FlashOffMS: 200}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			on, off := FlashTimings(tt.state)
			if on != tt.wantOn || off != tt.wantOff {
				t.Errorf("FlashTimings() = (%d, %d), want (%d, %d)", on, off, tt.wantOn, tt.wantOff)
			}
		})
	}
}
