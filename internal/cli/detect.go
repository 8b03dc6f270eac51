package cli

import (
	"context"
	"os/signal"
	"syscall"

	"staticip-agent/internal/infrastructure/config"
	"staticip-agent/internal/infrastructure/container"

	"github.com/spf13/cobra"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Print the available network subsystems in priority order",
	Args:  cobra.NoArgs,
	RunE:  runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	logger := newLogger()

	cfg, err := config.NewViperLoader(configFile).Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appContainer := container.NewContainer(cfg, logger)

	subsystems, err := appContainer.GetDetector().Detect(ctx)
	if err != nil {
		return err
	}

	for i, subsystem := range subsystems {
		if i == 0 {
			cmd.Printf("%s (primary)\n", subsystem)
		} else {
			cmd.Printf("%s (fallback %d)\n", subsystem, i)
		}
	}
	return nil
}
