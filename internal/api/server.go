package api

import (
	"context"
	"encoding/base64"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/smazurov/lightsd/internal/events"
	"github.com/smazurov/lightsd/internal/lights"
	"github.com/smazurov/lightsd/internal/logging"
	"github.com/smazurov/lightsd/internal/version"
)

// Options configures the API server.
type Options struct {
	AuthUsername      string
	AuthPassword      string
	Controller        *lights.Controller
	EventBus          *events.Bus
	PrometheusHandler http.Handler // Optional Prometheus metrics handler
}

// Server exposes the light controller over HTTP using Huma v2.
type Server struct {
	api        huma.API
	mux        *http.ServeMux
	httpServer *http.Server
	options    *Options
	logger     *slog.Logger

	devices map[string]*lights.Device

	stateMu     sync.RWMutex
	lastApplied map[string]events.LightAppliedEvent
	unsubscribe func()
}

// basicAuthMiddleware creates middleware for HTTP basic authentication
func (s *Server) basicAuthMiddleware(username, password string) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		// Skip auth for operations without security requirements
		op := ctx.Operation()
		if op != nil && len(op.Security) == 0 {
			next(ctx)
			return
		}

		authHeader := ctx.Header("Authorization")
		const prefix = "Basic "
		if !strings.HasPrefix(authHeader, prefix) {
			ctx.SetHeader("WWW-Authenticate", `Basic realm="lightsd API"`)
			huma.WriteErr(s.api, ctx, http.StatusUnauthorized, "Authentication required")
			return
		}

		decoded, err := base64.StdEncoding.DecodeString(authHeader[len(prefix):])
		if err != nil {
			ctx.SetHeader("WWW-Authenticate", `Basic realm="lightsd API"`)
			huma.WriteErr(s.api, ctx, http.StatusUnauthorized, "Invalid credentials format", err)
			return
		}

		parts := strings.SplitN(string(decoded), ":", 2)
		if len(parts) != 2 || parts[0] != username || parts[1] != password {
			ctx.SetHeader("WWW-Authenticate", `Basic realm="lightsd API"`)
			huma.WriteErr(s.api, ctx, http.StatusUnauthorized, "Invalid credentials")
			return
		}

		next(ctx)
	}
}

// withAuth returns the security requirement for authenticated operations.
func withAuth() []map[string][]string {
	return []map[string][]string{{"basicAuth": {}}}
}

// NewServer creates a new API server with Huma v2 using Go 1.22+ native routing
func NewServer(opts *Options) (*Server, error) {
	mux := http.NewServeMux()

	config := huma.DefaultConfig("lightsd API", version.String())
	config.Info.Description = "Light hardware control API: backlight, notification and attention LEDs"
	// Empty servers list will make OpenAPI use relative paths, working with any host
	config.Servers = []*huma.Server{}

	// Configure basic auth security scheme
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"basicAuth": {
			Type:   "http",
			Scheme: "basic",
		},
	}

	api := humago.New(mux, config)

	server := &Server{
		api:         api,
		mux:         mux,
		options:     opts,
		logger:      logging.GetLogger("api"),
		devices:     make(map[string]*lights.Device),
		lastApplied: make(map[string]events.LightAppliedEvent),
	}

	// One handle per recognized light, owned by the server for its lifetime.
	for _, name := range lights.Names() {
		dev, err := lights.Open(name, opts.Controller)
		if err != nil {
			return nil, err
		}
		server.devices[name] = dev
	}

	// Track last-applied state per light off the event bus.
	if opts.EventBus != nil {
		server.unsubscribe = opts.EventBus.Subscribe(func(e events.LightAppliedEvent) {
			server.stateMu.Lock()
			server.lastApplied[e.Light] = e
			server.stateMu.Unlock()
		})
	}

	// Apply basic auth middleware globally if credentials are provided
	if opts.AuthUsername != "" && opts.AuthPassword != "" {
		api.UseMiddleware(server.basicAuthMiddleware(opts.AuthUsername, opts.AuthPassword))
	}

	// Prometheus scrape endpoint stays outside Huma, no auth required
	if opts.PrometheusHandler != nil {
		mux.Handle("GET /metrics", opts.PrometheusHandler)
	}

	server.registerRoutes()

	return server, nil
}

// GetAPI returns the Huma API instance
func (s *Server) GetAPI() huma.API {
	return s.api
}

// Start starts the HTTP server on the specified address
func (s *Server) Start(addr string) error {
	s.logger.Info("Starting lightsd API server", "addr", addr)
	s.logger.Info("OpenAPI documentation available", "url", "http://"+addr+"/docs")

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.mux,
	}

	return s.httpServer.ListenAndServe()
}

// Stop shuts down the server and releases the light handles.
func (s *Server) Stop() error {
	s.logger.Info("Stopping API server")

	if s.unsubscribe != nil {
		s.unsubscribe()
	}
	for _, dev := range s.devices {
		dev.Close()
	}

	if s.httpServer != nil {
		return s.httpServer.Close()
	}

	return nil
}

// registerRoutes sets up all API endpoints
func (s *Server) registerRoutes() {
	// Health check endpoint - no auth required
	huma.Register(s.api, huma.Operation{
		OperationID: "health-check",
		Method:      http.MethodGet,
		Path:        "/api/health",
		Summary:     "Health",
		Description: "Check API health status",
		Tags:        []string{"health"},
		Security:    []map[string][]string{}, // Empty security = no auth required
	}, func(_ context.Context, _ *struct{}) (*HealthResponse, error) {
		return &HealthResponse{
			Body: HealthData{
				Status:  "ok",
				Version: version.Get(),
			},
		}, nil
	})

	s.registerLightRoutes()
}

// HealthResponse is the health check payload.
type HealthResponse struct {
	Body HealthData
}

// HealthData carries health status and build info.
type HealthData struct {
	Status  string       `json:"status" example:"ok" doc:"Health status"`
	Version version.Info `json:"version" doc:"Build information"`
}
