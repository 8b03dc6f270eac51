package network

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"staticip-agent/internal/domain/entities"
	"staticip-agent/internal/domain/errors"
	"staticip-agent/internal/domain/interfaces"
	"staticip-agent/internal/infrastructure/config"

	"github.com/sirupsen/logrus"
)

// NetworkScriptsRenderer writes RHEL-family per-interface ifcfg files and
// restarts the legacy network service to apply them.
type NetworkScriptsRenderer struct {
	commandExecutor interfaces.CommandExecutor
	fileSystem      interfaces.FileSystem
	backupService   interfaces.BackupService
	logger          *logrus.Logger
	policy          config.PolicyConfig
	commandTimeout  time.Duration
	applyTimeout    time.Duration
	scriptsDir      string
}

// NewNetworkScriptsRenderer creates a new NetworkScriptsRenderer
func NewNetworkScriptsRenderer(
	executor interfaces.CommandExecutor,
	fs interfaces.FileSystem,
	backup interfaces.BackupService,
	logger *logrus.Logger,
	policy config.PolicyConfig,
	commandTimeout time.Duration,
	applyTimeout time.Duration,
) *NetworkScriptsRenderer {
	return &NetworkScriptsRenderer{
		commandExecutor: executor,
		fileSystem:      fs,
		backupService:   backup,
		logger:          logger,
		policy:          policy,
		commandTimeout:  commandTimeout,
		applyTimeout:    applyTimeout,
		scriptsDir:      "/etc/sysconfig/network-scripts",
	}
}

// Subsystem identifies this renderer
func (r *NetworkScriptsRenderer) Subsystem() entities.Subsystem {
	return entities.SubsystemNetworkScripts
}

// Apply writes the ifcfg file for the target interface and restarts the
// network service
func (r *NetworkScriptsRenderer) Apply(ctx context.Context, target *entities.NetworkTarget) error {
	configPath := filepath.Join(r.scriptsDir, "ifcfg-"+target.Interface())

	if _, err := r.backupService.Backup(ctx, configPath); err != nil {
		// Backups are best effort, but a failed copy of an existing file
		// would lose the only rollback point, so this one is fatal.
		return err
	}

	content := r.renderConfig(target)
	if err := r.fileSystem.WriteFile(configPath, []byte(content), 0644); err != nil {
		return errors.NewSystemError(fmt.Sprintf("failed to write %s", configPath), err)
	}

	r.logger.WithFields(logrus.Fields{
		"interface":   target.Interface(),
		"config_path": configPath,
	}).Info("ifcfg file written")

	return r.restartNetworking(ctx)
}

// renderConfig emits the ifcfg key=value fields. Only the first two DNS
// servers are persisted; the file format has no conventional slot for more.
func (r *NetworkScriptsRenderer) renderConfig(target *entities.NetworkTarget) string {
	var b strings.Builder

	fmt.Fprintf(&b, "DEVICE=%s\n", target.Interface())
	b.WriteString("BOOTPROTO=none\n")
	b.WriteString("ONBOOT=yes\n")
	fmt.Fprintf(&b, "IPADDR=%s\n", target.IP())

	if r.policy.AddressForm == config.AddressFormNetmask {
		fmt.Fprintf(&b, "NETMASK=%s\n", target.Netmask())
	} else {
		fmt.Fprintf(&b, "PREFIX=%d\n", target.PrefixLen())
	}

	fmt.Fprintf(&b, "GATEWAY=%s\n", target.Gateway())
	fmt.Fprintf(&b, "DNS1=%s\n", target.PrimaryDNS())
	if secondary, ok := target.SecondaryDNS(); ok {
		fmt.Fprintf(&b, "DNS2=%s\n", secondary)
	}

	return b.String()
}

// restartNetworking restarts the legacy network service, falling back to a
// NetworkManager restart on hosts where the network unit is gone.
func (r *NetworkScriptsRenderer) restartNetworking(ctx context.Context) error {
	_, err := r.commandExecutor.ExecuteWithTimeout(ctx, r.applyTimeout,
		"systemctl", "restart", "network")
	if err == nil {
		r.logger.Info("network service restarted")
		return nil
	}

	r.logger.WithError(err).Warn("network service restart failed, trying NetworkManager")

	if _, lookErr := r.commandExecutor.LookPath("nmcli"); lookErr != nil {
		return errors.NewRestartError("network service restart failed and NetworkManager is not present", err)
	}

	if _, nmErr := r.commandExecutor.ExecuteWithTimeout(ctx, r.applyTimeout,
		"systemctl", "restart", "NetworkManager"); nmErr != nil {
		return errors.NewRestartError("network and NetworkManager restarts both failed", nmErr)
	}

	r.logger.Info("NetworkManager restarted as fallback")
	return nil
}
