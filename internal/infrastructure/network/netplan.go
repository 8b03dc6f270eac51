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

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// netplanDocument models the YAML written for one interface.
type netplanDocument struct {
	Network netplanNetwork `yaml:"network"`
}

type netplanNetwork struct {
	Version   int                        `yaml:"version"`
	Ethernets map[string]netplanEthernet `yaml:"ethernets"`
}

type netplanEthernet struct {
	DHCP4       bool               `yaml:"dhcp4"`
	Addresses   []string           `yaml:"addresses"`
	Routes      []netplanRoute     `yaml:"routes"`
	Nameservers netplanNameservers `yaml:"nameservers"`
}

type netplanRoute struct {
	To  string `yaml:"to"`
	Via string `yaml:"via"`
}

type netplanNameservers struct {
	Addresses []string `yaml:"addresses"`
}

// NetplanRenderer writes a declarative netplan YAML definition and lets
// `netplan apply` compute and activate the low-level configuration.
type NetplanRenderer struct {
	commandExecutor interfaces.CommandExecutor
	fileSystem      interfaces.FileSystem
	backupService   interfaces.BackupService
	logger          *logrus.Logger
	applyTimeout    time.Duration
	configDir       string
}

// NewNetplanRenderer creates a new NetplanRenderer
func NewNetplanRenderer(
	executor interfaces.CommandExecutor,
	fs interfaces.FileSystem,
	backup interfaces.BackupService,
	logger *logrus.Logger,
	applyTimeout time.Duration,
) *NetplanRenderer {
	return &NetplanRenderer{
		commandExecutor: executor,
		fileSystem:      fs,
		backupService:   backup,
		logger:          logger,
		applyTimeout:    applyTimeout,
		configDir:       "/etc/netplan",
	}
}

// Subsystem identifies this renderer
func (r *NetplanRenderer) Subsystem() entities.Subsystem {
	return entities.SubsystemNetplan
}

// Apply writes the netplan definition for the target and runs netplan apply
func (r *NetplanRenderer) Apply(ctx context.Context, target *entities.NetworkTarget) error {
	r.backupExistingDefinitions(ctx)

	doc := netplanDocument{
		Network: netplanNetwork{
			Version: 2,
			Ethernets: map[string]netplanEthernet{
				target.Interface(): {
					DHCP4:     false,
					Addresses: []string{target.CIDR()},
					Routes: []netplanRoute{
						{To: "default", Via: target.Gateway()},
					},
					Nameservers: netplanNameservers{
						Addresses: target.DNSServers(),
					},
				},
			},
		},
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return errors.NewSystemError("failed to marshal netplan configuration", err)
	}

	configPath := filepath.Join(r.configDir, fmt.Sprintf("99-static-%s.yaml", target.Interface()))
	if err := r.fileSystem.WriteFile(configPath, data, 0600); err != nil {
		return errors.NewSystemError(fmt.Sprintf("failed to write %s", configPath), err)
	}

	r.logger.WithFields(logrus.Fields{
		"interface":   target.Interface(),
		"config_path": configPath,
	}).Info("Netplan definition written")

	if _, err := r.commandExecutor.ExecuteWithTimeout(ctx, r.applyTimeout, "netplan", "apply"); err != nil {
		// Leave no half-applied definition behind before the dispatcher
		// moves on to a fallback subsystem.
		if removeErr := r.fileSystem.Remove(configPath); removeErr != nil {
			r.logger.WithError(removeErr).Warn("Failed to remove netplan definition after apply failure")
		}
		return errors.NewNetworkError("netplan apply failed", err)
	}

	r.logger.WithField("interface", target.Interface()).Info("Netplan configuration applied")
	return nil
}

// backupExistingDefinitions copies every current YAML definition aside.
// Best effort: a pristine netplan directory is not an error.
func (r *NetplanRenderer) backupExistingDefinitions(ctx context.Context) {
	files, err := r.fileSystem.ListFiles(r.configDir)
	if err != nil {
		r.logger.WithError(err).Debug("No netplan definitions to back up")
		return
	}

	for _, file := range files {
		if !strings.HasSuffix(file, ".yaml") && !strings.HasSuffix(file, ".yml") {
			continue
		}
		if _, err := r.backupService.Backup(ctx, filepath.Join(r.configDir, file)); err != nil {
			r.logger.WithError(err).WithField("file", file).Warn("Netplan definition backup failed")
		}
	}
}
