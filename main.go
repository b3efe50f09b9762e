package main

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/smazurov/lightsd/cmd"
	"github.com/smazurov/lightsd/internal/api"
	"github.com/smazurov/lightsd/internal/config"
	"github.com/smazurov/lightsd/internal/events"
	"github.com/smazurov/lightsd/internal/lights"
	"github.com/smazurov/lightsd/internal/logging"
	"github.com/smazurov/lightsd/internal/metrics"
)

// Options for the CLI - flat structure with toml mapping.
type Options struct {
	Config string `help:"Path to configuration file" short:"c" default:"config.toml"`

	// Server settings
	Port string `help:"Port to listen on" short:"p" default:":8090" toml:"server.port" env:"SERVER_PORT"`

	// Light control file paths
	BacklightPath string `help:"Backlight brightness control file" default:"/sys/class/leds/lcd-backlight/brightness" toml:"lights.backlight" env:"LIGHTS_BACKLIGHT"`
	IndicatorPath string `help:"Indicator LED control file" default:"/sys/class/leds/rgb/control" toml:"lights.indicator" env:"LIGHTS_INDICATOR"`

	// Metrics settings
	MetricsEnabled bool `help:"Enable Prometheus metrics" default:"true" toml:"metrics.enabled" env:"METRICS_ENABLED"`

	// Auth settings
	AuthUsername string `help:"Basic auth username" default:"admin" toml:"auth.username" env:"AUTH_USERNAME"`
	AuthPassword string `help:"Basic auth password" default:"password" toml:"auth.password" env:"AUTH_PASSWORD"`

	// Logging settings
	LoggingLevel  string `help:"Global logging level (debug, info, warn, error)" default:"info" toml:"logging.level" env:"LOGGING_LEVEL"`
	LoggingFormat string `help:"Logging format (text, json)" default:"text" toml:"logging.format" env:"LOGGING_FORMAT"`
	LoggingLights string `help:"Light controller logging level" default:"info" toml:"logging.lights" env:"LOGGING_LIGHTS"`
	LoggingSysfs  string `help:"Sysfs writer logging level" default:"info" toml:"logging.sysfs" env:"LOGGING_SYSFS"`
	LoggingAPI    string `help:"API logging level" default:"info" toml:"logging.api" env:"LOGGING_API"`
	LoggingConfig string `help:"Config watcher logging level" default:"info" toml:"logging.config" env:"LOGGING_CONFIG"`
}

func main() {
	// Create Huma CLI
	cli := humacli.New(func(hooks humacli.Hooks, opts *Options) {
		// Load configuration automatically
		if loadErr := config.LoadConfig(opts, nil); loadErr != nil {
			slog.Warn("Failed to load config", "error", loadErr)
		}

		// Initialize logging system
		loggingConfig := logging.Config{
			Level:  opts.LoggingLevel,
			Format: opts.LoggingFormat,
			Modules: map[string]string{
				"lights": opts.LoggingLights,
				"sysfs":  opts.LoggingSysfs,
				"api":    opts.LoggingAPI,
				"config": opts.LoggingConfig,
			},
		}
		logging.Initialize(loggingConfig)

		logger := logging.GetLogger("main")

		// Create event bus for in-process event handling
		eventBus := events.New()

		// Build the light controller over the configured control files
		writer := lights.NewWriter(logging.GetLogger("sysfs"))
		controller := lights.NewController(lights.Paths{
			Backlight: opts.BacklightPath,
			Indicator: opts.IndicatorPath,
		}, writer, logging.GetLogger("lights"))

		// Publish every successful hardware write to the bus
		controller.SetObserver(func(kind lights.Kind, level int, pattern string) {
			eventBus.Publish(events.LightAppliedEvent{
				Light:     kind.String(),
				Level:     level,
				Pattern:   pattern,
				Timestamp: time.Now().Format(time.RFC3339),
			})
		})

		// Initialize Prometheus metrics if enabled
		var recorder *metrics.Recorder
		if opts.MetricsEnabled {
			recorder = metrics.NewRecorder()
			recorder.Attach(eventBus)
		}

		apiOpts := &api.Options{
			AuthUsername: opts.AuthUsername,
			AuthPassword: opts.AuthPassword,
			Controller:   controller,
			EventBus:     eventBus,
		}
		if recorder != nil {
			apiOpts.PrometheusHandler = recorder.Handler()
		}

		server, err := api.NewServer(apiOpts)
		if err != nil {
			logger.Error("Failed to create API server", "error", err)
			os.Exit(1)
		}

		// Watch the config file so control file paths can be redirected
		// without a restart
		watcher := config.NewConfigWatcher(
			opts.Config,
			config.LoadLightsConfig,
			logging.GetLogger("config"),
			config.WithDebounce[config.LightsConfig](500*time.Millisecond),
		)
		watcher.OnReload(func(cfg config.LightsConfig) {
			controller.SetPaths(cfg.Paths())
			eventBus.Publish(events.ConfigReloadedEvent{
				Backlight: cfg.Backlight,
				Indicator: cfg.Indicator,
				Timestamp: time.Now().Format(time.RFC3339),
			})
		})

		hooks.OnStart(func() {
			if watchErr := watcher.Start(); watchErr != nil {
				logger.Warn("Failed to start config watcher, hot-reload disabled", "error", watchErr)
			}

			// Tell systemd we are ready before blocking in the HTTP server.
			// Returns false outside a systemd unit, which is fine.
			if _, sdErr := daemon.SdNotify(false, daemon.SdNotifyReady); sdErr != nil {
				logger.Warn("Failed to notify systemd", "error", sdErr)
			}

			// Service the systemd watchdog when WatchdogSec is set on the unit
			if interval, wdErr := daemon.SdWatchdogEnabled(false); wdErr == nil && interval > 0 {
				go func() {
					ticker := time.NewTicker(interval / 2)
					defer ticker.Stop()
					for range ticker.C {
						_, _ = daemon.SdNotify(false, daemon.SdNotifyWatchdog)
					}
				}()
			}

			logger.Info("Starting HTTP server", "port", opts.Port)
			if startErr := server.Start(opts.Port); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
				logger.Error("Failed to start HTTP server", "error", startErr)
				os.Exit(1)
			}
		})

		hooks.OnStop(func() {
			logger.Info("Shutting down server")
			_, _ = daemon.SdNotify(false, daemon.SdNotifyStopping)

			if stopErr := server.Stop(); stopErr != nil {
				logger.Error("Error stopping HTTP server", "error", stopErr)
			}
			if stopErr := watcher.Stop(); stopErr != nil {
				logger.Error("Error stopping config watcher", "error", stopErr)
			}
			if recorder != nil {
				recorder.Detach()
			}
		})
	})

	// Add set command for one-shot light control
	setCmd := cmd.CreateSetCmd()
	cli.Root().AddCommand(setCmd)

	// Run the CLI
	cli.Run()
}
