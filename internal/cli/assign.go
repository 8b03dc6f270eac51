package cli

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"staticip-agent/internal/application/usecases"
	"staticip-agent/internal/domain/entities"
	"staticip-agent/internal/domain/errors"
	"staticip-agent/internal/infrastructure/config"
	"staticip-agent/internal/infrastructure/container"
	"staticip-agent/internal/infrastructure/metrics"

	"github.com/spf13/cobra"
)

var assignCmd = &cobra.Command{
	Use:   "assign <interface> <cidr-address> <gateway> <dns-servers>",
	Short: "Assign a static IPv4 address to an interface",
	Example: `  staticip-agent assign ens192 10.0.0.5/24 10.0.0.1 1.1.1.1,8.8.8.8`,
	Args:  cobra.ExactArgs(4),
	RunE:  runAssign,
}

func init() {
	rootCmd.AddCommand(assignCmd)
}

func runAssign(cmd *cobra.Command, args []string) error {
	// Arguments are valid from here on; any later failure is operational,
	// not a usage problem.
	cmd.SilenceUsage = true

	if os.Geteuid() != 0 {
		return errors.NewPrivilegeError("this command must be run as root")
	}

	target, err := entities.NewNetworkTarget(args[0], args[1], args[2], args[3])
	if err != nil {
		cmd.SilenceUsage = false
		return errors.NewValidationError("invalid assignment parameters", err)
	}

	logger := newLogger()

	cfg, err := config.NewViperLoader(configFile).Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appContainer := container.NewContainer(cfg, logger)

	output, err := appContainer.GetAssignAddressUseCase().Execute(ctx, usecases.AssignAddressInput{
		Target: target,
	})

	chosen := "none"
	if output != nil {
		chosen = output.Subsystem.String()
	}
	metrics.SetAgentInfo(version, chosen)

	if path := cfg.Metrics.TextfilePath; path != "" {
		if writeErr := metrics.WriteTextfile(appContainer.GetFileSystem(), path); writeErr != nil {
			logger.WithError(writeErr).Warn("Failed to write metrics textfile")
		}
	}

	if err != nil {
		return err
	}

	printAssignResult(cmd, output)
	return nil
}

// printAssignResult echoes the final interface, route and DNS state.
func printAssignResult(cmd *cobra.Command, output *usecases.AssignAddressOutput) {
	cmd.Printf("configured via %s", output.Subsystem)
	if output.FellBack {
		cmd.Printf(" (after %d attempts)", output.Attempts)
	}
	cmd.Println()

	state := output.NetworkState
	if state == nil {
		return
	}

	linkState := "DOWN"
	if state.Up {
		linkState = "UP"
	}
	cmd.Printf("interface:   %s (%s)\n", state.Interface, linkState)
	cmd.Printf("addresses:   %s\n", strings.Join(state.Addresses, ", "))
	cmd.Printf("routes:      %s\n", strings.Join(state.Routes, ", "))
	cmd.Printf("nameservers: %s\n", strings.Join(state.Nameservers, ", "))
}
