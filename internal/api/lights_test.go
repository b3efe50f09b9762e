package api

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/smazurov/lightsd/internal/events"
	"github.com/smazurov/lightsd/internal/lights"
)

func newTestServer(t *testing.T) (*Server, humatest.TestAPI, lights.Paths) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	paths := lights.Paths{
		Backlight: filepath.Join(t.TempDir(), "brightness"),
		Indicator: filepath.Join(t.TempDir(), "control"),
	}
	for _, p := range []string{paths.Backlight, paths.Indicator} {
		if err := os.WriteFile(p, nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	ctrl := lights.NewController(paths, lights.NewWriter(logger), logger)
	bus := events.New()

	_, api := humatest.New(t)

	server := &Server{
		api:         api,
		options:     &Options{Controller: ctrl, EventBus: bus},
		logger:      logger,
		devices:     make(map[string]*lights.Device),
		lastApplied: make(map[string]events.LightAppliedEvent),
	}
	for _, name := range lights.Names() {
		dev, err := lights.Open(name, ctrl)
		if err != nil {
			t.Fatal(err)
		}
		server.devices[name] = dev
	}
	server.unsubscribe = bus.Subscribe(func(e events.LightAppliedEvent) {
		server.stateMu.Lock()
		server.lastApplied[e.Light] = e
		server.stateMu.Unlock()
	})
	t.Cleanup(func() { server.unsubscribe() })

	server.registerLightRoutes()
	return server, api, paths
}

func sinkLine(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return strings.SplitN(string(data), "\n", 2)[0]
}

func TestApplyBacklight(t *testing.T) {
	_, api, paths := newTestServer(t)

	resp := api.Post("/api/lights/backlight", map[string]any{
		"color": 0x00FF0000,
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("POST /api/lights/backlight = %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), `"result":0`) {
		t.Errorf("response missing result code: %s", resp.Body.String())
	}
	if got := sinkLine(t, paths.Backlight); got != "76" {
		t.Errorf("backlight sink = %q, want \"76\"", got)
	}
}

func TestApplyNotificationWithFlash(t *testing.T) {
	_, api, paths := newTestServer(t)

	resp := api.Post("/api/lights/notifications", map[string]any{
		"color":        0x00FF0000,
		"flash_mode":   "timed",
		"flash_on_ms":  500,
		"flash_off_ms": 1500,
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("POST = %d: %s", resp.Code, resp.Body.String())
	}
	if got := sinkLine(t, paths.Indicator); got != "ff0000 500 1500 1 1" {
		t.Errorf("indicator sink = %q", got)
	}
}

func TestApplyAttentionMasksNotifications(t *testing.T) {
	_, api, paths := newTestServer(t)

	resp := api.Post("/api/lights/attention", map[string]any{"color": 0x40FF0000})
	if resp.Code != http.StatusOK {
		t.Fatal(resp.Body.String())
	}

	resp = api.Post("/api/lights/notifications", map[string]any{"color": 0x0000FF00})
	if resp.Code != http.StatusOK {
		t.Fatal(resp.Body.String())
	}

	if got := sinkLine(t, paths.Indicator); got != "400000 0 0 1 1" {
		t.Errorf("indicator sink = %q, attention should mask notifications", got)
	}
}

func TestApplyUnknownLight(t *testing.T) {
	_, api, _ := newTestServer(t)

	resp := api.Post("/api/lights/bogus", map[string]any{"color": 0})
	if resp.Code != http.StatusNotFound {
		t.Errorf("POST /api/lights/bogus = %d, want 404", resp.Code)
	}
}

func TestApplyMissingSinkReturns500(t *testing.T) {
	server, api, _ := newTestServer(t)

	server.options.Controller.SetPaths(lights.Paths{
		Backlight: "/nonexistent/brightness",
		Indicator: "/nonexistent/control",
	})

	resp := api.Post("/api/lights/backlight", map[string]any{"color": 0x00FFFFFF})
	if resp.Code != http.StatusInternalServerError {
		t.Errorf("POST with missing sink = %d, want 500", resp.Code)
	}
}

func TestListLights(t *testing.T) {
	server, api, _ := newTestServer(t)

	resp := api.Get("/api/lights")
	if resp.Code != http.StatusOK {
		t.Fatalf("GET /api/lights = %d", resp.Code)
	}
	body := resp.Body.String()
	for _, name := range lights.Names() {
		if !strings.Contains(body, `"name":"`+name+`"`) {
			t.Errorf("list missing light %q: %s", name, body)
		}
	}

	// Applied state shows up once the bus delivers the event.
	server.options.EventBus.Publish(events.LightAppliedEvent{
		Light:     "backlight",
		Level:     76,
		Timestamp: time.Now().Format(time.RFC3339),
	})

	deadline := time.Now().Add(2 * time.Second)
	for {
		resp = api.Get("/api/lights")
		if strings.Contains(resp.Body.String(), `"last_level":76`) {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("last applied state never surfaced: %s", resp.Body.String())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestFlashModeFromString(t *testing.T) {
	tests := []struct {
		input string
		want  lights.FlashMode
	}{
		{"none", lights.FlashNone},
		{"timed", lights.FlashTimed},
		{"hardware", lights.FlashHardware},
		{"", lights.FlashNone},
		{"strobe", lights.FlashNone},
	}

	for _, tt := range tests {
		if got := flashModeFromString(tt.input); got != tt.want {
			t.Errorf("flashModeFromString(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
