package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/smazurov/lightsd/internal/config"
	"github.com/smazurov/lightsd/internal/lights"
	"github.com/smazurov/lightsd/internal/logging"
	"github.com/spf13/cobra"
)

// CreateSetCmd creates the set command.
func CreateSetCmd() *cobra.Command {
	var configFile string
	var flashMode string
	var flashOnMS int
	var flashOffMS int
	var logJSON bool

	cmd := &cobra.Command{
		Use:   "set [light] [color]",
		Short: "Apply a color to a light and exit",
		Long: `Applies an ARGB color to one light (backlight, notifications or attention) ` +
			`and exits. Color is hexadecimal, e.g. ff00ff00 for opaque green. ` +
			`Control file paths come from the [lights] section of the config file.`,
		Args: cobra.ExactArgs(2),
		Run: func(_ *cobra.Command, args []string) {
			name := args[0]

			loggingConfig := config.LoadLoggingConfig(configFile)
			if logJSON {
				loggingConfig.Format = "json"
			}
			logging.Initialize(loggingConfig)
			logger := logging.GetLogger("set").With("light", name)

			colorArg := strings.TrimPrefix(strings.ToLower(args[1]), "0x")
			color, err := strconv.ParseUint(colorArg, 16, 32)
			if err != nil {
				logger.Error("Invalid color", "color", args[1], "error", err)
				os.Exit(1)
			}

			cfg, err := config.LoadLightsConfig(configFile)
			if err != nil {
				logger.Error("Failed to load configuration", "error", err, "config", configFile)
				os.Exit(1)
			}

			writer := lights.NewWriter(logger)
			ctrl := lights.NewController(cfg.Paths(), writer, logger)

			dev, err := lights.Open(name, ctrl)
			if err != nil {
				logger.Error("Unknown light", "error", err)
				os.Exit(1)
			}
			defer dev.Close()

			state := lights.State{
				Color:      uint32(color),
				Flash:      parseFlashMode(flashMode),
				FlashOnMS:  flashOnMS,
				FlashOffMS: flashOffMS,
			}

			if err := dev.Apply(state); err != nil {
				logger.Error("Failed to apply light state",
					"error", err, "errno", lights.Errno(err))
				os.Exit(1)
			}

			logger.Info("Applied light state", "color", fmt.Sprintf("%08x", color))
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "config.toml", "Path to configuration file")
	cmd.Flags().StringVar(&flashMode, "flash-mode", "none", "Blink mode: none, timed or hardware")
	cmd.Flags().IntVar(&flashOnMS, "on-ms", 0, "Blink on duration in milliseconds")
	cmd.Flags().IntVar(&flashOffMS, "off-ms", 0, "Blink off duration in milliseconds")
	cmd.Flags().BoolVar(&logJSON, "log-json", false, "Use JSON log format")

	return cmd
}

// parseFlashMode maps the flag value to a flash mode. Unrecognized
// values are treated as none.
func parseFlashMode(mode string) lights.FlashMode {
	switch mode {
	case "timed":
		return lights.FlashTimed
	case "hardware":
		return lights.FlashHardware
	default:
		return lights.FlashNone
	}
}
