package detector

import (
	"context"
	"strings"
	"time"

	"staticip-agent/internal/domain/entities"
	"staticip-agent/internal/domain/errors"
	"staticip-agent/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// Default probe locations. Overridable for tests.
const (
	DefaultNetplanDir        = "/etc/netplan"
	DefaultNetworkScriptsDir = "/etc/sysconfig/network-scripts"
	DefaultInterfacesFile    = "/etc/network/interfaces"
)

// SubsystemDetector probes the host for network-configuration subsystems in
// fixed priority order. Netplan and NetworkManager are checked before the
// legacy file mechanisms so that stale ifcfg or interfaces files left over
// from an earlier install cannot shadow a live manager.
type SubsystemDetector struct {
	commandExecutor   interfaces.CommandExecutor
	fileSystem        interfaces.FileSystem
	logger            *logrus.Logger
	netplanDir        string
	networkScriptsDir string
	interfacesFile    string
}

// NewSubsystemDetector creates a new SubsystemDetector
func NewSubsystemDetector(
	executor interfaces.CommandExecutor,
	fs interfaces.FileSystem,
	logger *logrus.Logger,
) *SubsystemDetector {
	return &SubsystemDetector{
		commandExecutor:   executor,
		fileSystem:        fs,
		logger:            logger,
		netplanDir:        DefaultNetplanDir,
		networkScriptsDir: DefaultNetworkScriptsDir,
		interfacesFile:    DefaultInterfacesFile,
	}
}

// Detect returns every available subsystem, highest priority first. The
// first entry is the primary apply target and the rest are fallback
// candidates. An empty host yields a detection error.
func (d *SubsystemDetector) Detect(ctx context.Context) ([]entities.Subsystem, error) {
	var available []entities.Subsystem

	for _, subsystem := range entities.AllSubsystems {
		ok := false
		switch subsystem {
		case entities.SubsystemNetplan:
			ok = d.hasNetplan()
		case entities.SubsystemNetworkManager:
			ok = d.hasNetworkManager(ctx)
		case entities.SubsystemNetworkScripts:
			ok = d.hasNetworkScripts()
		case entities.SubsystemIfupdown:
			ok = d.hasIfupdown()
		}

		d.logger.WithFields(logrus.Fields{
			"subsystem": subsystem.String(),
			"available": ok,
		}).Debug("Subsystem probe")

		if ok {
			available = append(available, subsystem)
		}
	}

	if len(available) == 0 {
		return nil, errors.NewDetectionError("no supported network configuration subsystem detected")
	}

	d.logger.WithField("subsystems", subsystemNames(available)).Info("Network subsystems detected")
	return available, nil
}

// hasNetplan requires the config directory and a resolvable netplan command.
func (d *SubsystemDetector) hasNetplan() bool {
	if !d.fileSystem.Exists(d.netplanDir) {
		return false
	}
	_, err := d.commandExecutor.LookPath("netplan")
	return err == nil
}

// hasNetworkManager requires nmcli and an active NetworkManager service.
func (d *SubsystemDetector) hasNetworkManager(ctx context.Context) bool {
	if _, err := d.commandExecutor.LookPath("nmcli"); err != nil {
		return false
	}

	// systemctl is-active exits non-zero for anything but "active"
	output, err := d.commandExecutor.ExecuteWithTimeout(ctx, 10*time.Second,
		"systemctl", "is-active", "NetworkManager")
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(output)) == "active"
}

// hasNetworkScripts requires at least one per-interface config file besides
// the loopback one.
func (d *SubsystemDetector) hasNetworkScripts() bool {
	files, err := d.fileSystem.ListFiles(d.networkScriptsDir)
	if err != nil {
		return false
	}
	for _, file := range files {
		if strings.HasPrefix(file, "ifcfg-") && file != "ifcfg-lo" {
			return true
		}
	}
	return false
}

// hasIfupdown requires the global interfaces file.
func (d *SubsystemDetector) hasIfupdown() bool {
	return d.fileSystem.Exists(d.interfacesFile)
}

func subsystemNames(subsystems []entities.Subsystem) []string {
	names := make([]string, 0, len(subsystems))
	for _, s := range subsystems {
		names = append(names, s.String())
	}
	return names
}
