package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/smazurov/lightsd/internal/events"
	"github.com/smazurov/lightsd/internal/lights"
)

// LightRequest applies a color/flash request to one light.
type LightRequest struct {
	Light string `path:"light" example:"notifications" doc:"Light identifier: backlight, notifications or attention"`
	Body  struct {
		Color      uint32 `json:"color" example:"16711680" doc:"ARGB color; low 24 bits are RGB, alpha byte optionally carries indicator brightness"`
		FlashMode  string `json:"flash_mode,omitempty" enum:"none,timed,hardware" doc:"Blink mode for the indicator LED"`
		FlashOnMS  int    `json:"flash_on_ms,omitempty" example:"500" doc:"Blink on duration, used for timed and hardware modes"`
		FlashOffMS int    `json:"flash_off_ms,omitempty" example:"1500" doc:"Blink off duration, used for timed and hardware modes"`
	}
}

// ApplyResponse reports the outcome of a light request.
type ApplyResponse struct {
	Body struct {
		Light  string `json:"light" example:"notifications" doc:"Light the request was applied to"`
		Result int    `json:"result" example:"0" doc:"Platform result code, 0 on success"`
	}
}

// LightInfo describes one recognized light and its last applied state.
type LightInfo struct {
	Name        string `json:"name" example:"backlight" doc:"Light identifier"`
	LastLevel   *int   `json:"last_level,omitempty" doc:"Level of the most recent hardware write, absent before the first write"`
	LastPattern string `json:"last_pattern,omitempty" doc:"Most recent blink pattern, empty for the backlight"`
	LastApplied string `json:"last_applied,omitempty" doc:"Timestamp of the most recent hardware write"`
}

// LightsResponse lists the recognized lights.
type LightsResponse struct {
	Body struct {
		Lights []LightInfo `json:"lights" doc:"Recognized lights in platform order"`
	}
}

// flashModeFromString maps the wire name to a flash mode. Unrecognized
// values are treated as none, matching the hardware contract.
func flashModeFromString(mode string) lights.FlashMode {
	switch mode {
	case "timed":
		return lights.FlashTimed
	case "hardware":
		return lights.FlashHardware
	default:
		return lights.FlashNone
	}
}

// registerLightRoutes registers light control endpoints
func (s *Server) registerLightRoutes() {
	// Apply a request to one light
	huma.Register(s.api, huma.Operation{
		OperationID: "apply-light",
		Method:      http.MethodPost,
		Path:        "/api/lights/{light}",
		Summary:     "Apply Light Request",
		Description: "Apply a color and flash request to a light. A lit attention request masks notification requests on the shared indicator LED.",
		Tags:        []string{"lights"},
		Errors:      []int{401, 404, 500},
		Security:    withAuth(),
	}, func(_ context.Context, input *LightRequest) (*ApplyResponse, error) {
		dev, ok := s.devices[input.Light]
		if !ok {
			return nil, huma.Error404NotFound("Unknown light: " + input.Light)
		}

		state := lights.State{
			Color:      input.Body.Color,
			Flash:      flashModeFromString(input.Body.FlashMode),
			FlashOnMS:  input.Body.FlashOnMS,
			FlashOffMS: input.Body.FlashOffMS,
		}

		if err := dev.Apply(state); err != nil {
			if s.options.EventBus != nil {
				s.options.EventBus.Publish(events.LightErrorEvent{
					Light:     input.Light,
					Error:     err.Error(),
					Errno:     lights.Errno(err),
					Timestamp: time.Now().Format(time.RFC3339),
				})
			}
			return nil, huma.Error500InternalServerError("Failed to apply light request", err)
		}

		resp := &ApplyResponse{}
		resp.Body.Light = input.Light
		resp.Body.Result = 0
		return resp, nil
	})

	// List recognized lights
	huma.Register(s.api, huma.Operation{
		OperationID: "list-lights",
		Method:      http.MethodGet,
		Path:        "/api/lights",
		Summary:     "List Lights",
		Description: "List the recognized lights and the last state applied to each",
		Tags:        []string{"lights"},
		Errors:      []int{401},
		Security:    withAuth(),
	}, func(_ context.Context, _ *struct{}) (*LightsResponse, error) {
		s.stateMu.RLock()
		defer s.stateMu.RUnlock()

		resp := &LightsResponse{}
		for _, name := range lights.Names() {
			info := LightInfo{Name: name}
			if last, ok := s.lastApplied[name]; ok {
				level := last.Level
				info.LastLevel = &level
				info.LastPattern = last.Pattern
				info.LastApplied = last.Timestamp
			}
			resp.Body.Lights = append(resp.Body.Lights, info)
		}
		return resp, nil
	})

	s.logger.Info("Light routes registered")
}
