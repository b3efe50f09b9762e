package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smazurov/lightsd/internal/lights"
)

func writeSetFixture(t *testing.T) (configFile string, paths lights.Paths) {
	t.Helper()

	dir := t.TempDir()
	paths = lights.Paths{
		Backlight: filepath.Join(dir, "brightness"),
		Indicator: filepath.Join(dir, "control"),
	}
	for _, p := range []string{paths.Backlight, paths.Indicator} {
		if err := os.WriteFile(p, nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	configFile = filepath.Join(dir, "config.toml")
	content := fmt.Sprintf("[lights]\nbacklight = %q\nindicator = %q\n",
		paths.Backlight, paths.Indicator)
	if err := os.WriteFile(configFile, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return configFile, paths
}

func sinkLine(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return strings.SplitN(string(data), "\n", 2)[0]
}

func TestSetCommandBacklight(t *testing.T) {
	configFile, paths := writeSetFixture(t)

	c := CreateSetCmd()
	c.SetArgs([]string{"backlight", "00ff0000", "--config", configFile})
	if err := c.Execute(); err != nil {
		t.Fatalf("set backlight: %v", err)
	}

	if got := sinkLine(t, paths.Backlight); got != "76" {
		t.Errorf("backlight sink = %q, want \"76\"", got)
	}
}

func TestSetCommandTimedBlink(t *testing.T) {
	configFile, paths := writeSetFixture(t)

	c := CreateSetCmd()
	c.SetArgs([]string{"notifications", "0xFF0000",
		"--config", configFile,
		"--flash-mode", "timed", "--on-ms", "500", "--off-ms", "1500"})
	if err := c.Execute(); err != nil {
		t.Fatalf("set notifications: %v", err)
	}

	if got := sinkLine(t, paths.Indicator); got != "ff0000 500 1500 1 1" {
		t.Errorf("indicator sink = %q", got)
	}
}

func TestParseFlashMode(t *testing.T) {
	tests := []struct {
		input string
		want  lights.FlashMode
	}{
		{"none", lights.FlashNone},
		{"timed", lights.FlashTimed},
		{"hardware", lights.FlashHardware},
		{"blink", lights.FlashNone},
	}

	for _, tt := range tests {
		if got := parseFlashMode(tt.input); got != tt.want {
			t.Errorf("parseFlashMode(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
