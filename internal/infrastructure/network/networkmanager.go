package network

import (
	"context"
	"fmt"
	"strings"
	"time"

	"staticip-agent/internal/domain/entities"
	"staticip-agent/internal/domain/errors"
	"staticip-agent/internal/domain/interfaces"
	"staticip-agent/internal/infrastructure/config"

	"github.com/sirupsen/logrus"
)

// NetworkManagerRenderer drives nmcli. It reuses an existing connection
// profile bound to the target interface when one exists, otherwise it
// creates one named deterministically from the interface.
type NetworkManagerRenderer struct {
	commandExecutor interfaces.CommandExecutor
	logger          *logrus.Logger
	policy          config.PolicyConfig
	commandTimeout  time.Duration
	applyTimeout    time.Duration
}

// NewNetworkManagerRenderer creates a new NetworkManagerRenderer
func NewNetworkManagerRenderer(
	executor interfaces.CommandExecutor,
	logger *logrus.Logger,
	policy config.PolicyConfig,
	commandTimeout time.Duration,
	applyTimeout time.Duration,
) *NetworkManagerRenderer {
	return &NetworkManagerRenderer{
		commandExecutor: executor,
		logger:          logger,
		policy:          policy,
		commandTimeout:  commandTimeout,
		applyTimeout:    applyTimeout,
	}
}

// Subsystem identifies this renderer
func (r *NetworkManagerRenderer) Subsystem() entities.Subsystem {
	return entities.SubsystemNetworkManager
}

// Apply configures the target through nmcli and reactivates the profile
func (r *NetworkManagerRenderer) Apply(ctx context.Context, target *entities.NetworkTarget) error {
	iface := target.Interface()

	profile, err := r.findProfile(ctx, iface)
	if err != nil {
		return err
	}
	if profile == "" {
		profile = fmt.Sprintf("static-%s", iface)
		if err := r.createProfile(ctx, profile, iface); err != nil {
			return err
		}
	} else {
		r.logger.WithFields(logrus.Fields{
			"interface": iface,
			"profile":   profile,
		}).Info("Reusing existing connection profile")
	}

	modifyArgs := []string{
		"connection", "modify", profile,
		"ipv4.method", "manual",
		"ipv4.addresses", target.CIDR(),
		"ipv4.gateway", target.Gateway(),
		"ipv4.dns", strings.Join(target.DNSServers(), ","),
	}
	if _, err := r.commandExecutor.ExecuteWithTimeout(ctx, r.commandTimeout, "nmcli", modifyArgs...); err != nil {
		return errors.NewNetworkError(fmt.Sprintf("nmcli connection modify failed: %s", profile), err)
	}

	// This agent manages IPv4 only; IPv6 handling is a policy knob because
	// older hosts relied on autoconfiguration staying on.
	if r.policy.IPv6 == config.IPv6PolicyDisabled {
		if _, err := r.commandExecutor.ExecuteWithTimeout(ctx, r.commandTimeout,
			"nmcli", "connection", "modify", profile, "ipv6.method", "disabled"); err != nil {
			return errors.NewNetworkError(fmt.Sprintf("nmcli ipv6.method disabled failed: %s", profile), err)
		}
	}

	// Deactivate then reactivate to pick up the new addresses. The down
	// step may fail if the profile was never active; that is ignorable.
	if _, err := r.commandExecutor.ExecuteWithTimeout(ctx, r.commandTimeout,
		"nmcli", "connection", "down", profile); err != nil {
		r.logger.WithError(err).WithField("profile", profile).Debug("nmcli connection down failed (ignorable)")
	}

	if _, err := r.commandExecutor.ExecuteWithTimeout(ctx, r.applyTimeout,
		"nmcli", "connection", "up", profile); err != nil {
		return errors.NewNetworkError(fmt.Sprintf("nmcli connection up failed: %s", profile), err)
	}

	r.logger.WithFields(logrus.Fields{
		"interface": iface,
		"profile":   profile,
		"address":   target.CIDR(),
	}).Info("NetworkManager profile applied")

	return nil
}

// findProfile returns the name of the connection profile bound to the
// interface, or "" if none exists.
func (r *NetworkManagerRenderer) findProfile(ctx context.Context, iface string) (string, error) {
	output, err := r.commandExecutor.ExecuteWithTimeout(ctx, r.commandTimeout,
		"nmcli", "-t", "-f", "NAME,DEVICE", "connection", "show")
	if err != nil {
		return "", errors.NewNetworkError("nmcli connection show failed", err)
	}

	for _, line := range strings.Split(string(output), "\n") {
		// terse output: NAME:DEVICE
		parts := strings.SplitN(strings.TrimSpace(line), ":", 2)
		if len(parts) == 2 && parts[1] == iface {
			return parts[0], nil
		}
	}
	return "", nil
}

// createProfile adds a new ethernet connection bound to the interface
func (r *NetworkManagerRenderer) createProfile(ctx context.Context, profile, iface string) error {
	addArgs := []string{
		"connection", "add", "type", "ethernet",
		"con-name", profile, "ifname", iface,
	}
	if _, err := r.commandExecutor.ExecuteWithTimeout(ctx, r.commandTimeout, "nmcli", addArgs...); err != nil {
		return errors.NewNetworkError(fmt.Sprintf("nmcli connection add failed: %s", profile), err)
	}

	r.logger.WithFields(logrus.Fields{
		"interface": iface,
		"profile":   profile,
	}).Info("Connection profile created")
	return nil
}
