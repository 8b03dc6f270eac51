package cli

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// configFile holds the --config flag value, consumed by the viper loader.
var configFile string

var rootCmd = &cobra.Command{
	Use:   "staticip-agent",
	Short: "Assign a static IPv4 address through the host's network subsystem",
	Long: `staticip-agent detects which network-configuration subsystem manages
this host (netplan, NetworkManager, legacy network-scripts or ifupdown),
renders subsystem-native configuration for the requested address and applies
it through that subsystem's own control path, falling back through the
remaining subsystems in priority order if the primary apply fails.`,
	SilenceErrors: true,
}

// SetVersionInfo stores build-time version info set via ldflags.
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

// Execute runs the root command. All failures surface as one [ERROR] line
// on stderr and exit code 1.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR] %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"path to an optional YAML config file (env vars with STATICIP_ prefix override it)")
}

// newLogger builds the structured logger. LOG_LEVEL selects verbosity.
func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stderr)

	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr != "" {
		logLevel, err := logrus.ParseLevel(logLevelStr)
		if err != nil {
			logger.WithError(err).Warnf("Unknown LOG_LEVEL value: %s. Using default Info level.", logLevelStr)
			logger.SetLevel(logrus.InfoLevel)
		} else {
			logger.SetLevel(logLevel)
		}
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	return logger
}
