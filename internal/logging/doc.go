// Package logging provides structured logging with per-module log level configuration.
//
// # Overview
//
// The logging system uses Go's slog package with automatic output routing:
//   - Logs to systemd journal when available (Linux systems with journald)
//   - Logs to stdout when a terminal, pipe, or file is connected
//   - Logs to both when both are available
//
// # Usage
//
// Initialize the logging system once at startup:
//
//	logging.Initialize(logging.Config{
//		Level:  "info",      // Global log level: debug, info, warn, error
//		Format: "text",      // Output format: text or json
//		Modules: map[string]string{
//			"lights": "debug",   // Per-module overrides
//			"api":    "warn",
//		},
//	})
//
// Get a logger for your module:
//
//	logger := logging.GetLogger("lights")
//	logger.Info("Applying light request", "light", "backlight")
//	logger.Warn("Control file missing", "error", err)
//
// # Viewing Logs
//
// When running as a systemd service or on a system with journald:
//
//	journalctl -t lightsd              # All lightsd logs
//	journalctl -t lightsd -f           # Follow live
//	journalctl -t lightsd -p err       # Errors only
//
// Filter by structured fields:
//
//	journalctl -t lightsd MODULE=lights
//
// # Configuration
//
// Log levels can be set globally or per-module. Module-specific levels
// override the global level for that module only.
//
// Example TOML configuration:
//
//	[logging]
//	level = "info"
//	format = "text"
//
//	[logging.modules]
//	lights = "debug"
//	api = "warn"
package logging
