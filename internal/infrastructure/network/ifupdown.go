package network

import (
	"context"
	"fmt"
	"strings"
	"time"

	"staticip-agent/internal/domain/entities"
	"staticip-agent/internal/domain/errors"
	"staticip-agent/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// IfupdownRenderer rewrites the Debian-family global interfaces file and
// restarts the networking service.
type IfupdownRenderer struct {
	commandExecutor interfaces.CommandExecutor
	fileSystem      interfaces.FileSystem
	backupService   interfaces.BackupService
	logger          *logrus.Logger
	applyTimeout    time.Duration
	interfacesFile  string
}

// NewIfupdownRenderer creates a new IfupdownRenderer
func NewIfupdownRenderer(
	executor interfaces.CommandExecutor,
	fs interfaces.FileSystem,
	backup interfaces.BackupService,
	logger *logrus.Logger,
	applyTimeout time.Duration,
) *IfupdownRenderer {
	return &IfupdownRenderer{
		commandExecutor: executor,
		fileSystem:      fs,
		backupService:   backup,
		logger:          logger,
		applyTimeout:    applyTimeout,
		interfacesFile:  "/etc/network/interfaces",
	}
}

// Subsystem identifies this renderer
func (r *IfupdownRenderer) Subsystem() entities.Subsystem {
	return entities.SubsystemIfupdown
}

// Apply rewrites the interfaces file with a loopback stanza plus one static
// stanza for the target and restarts networking
func (r *IfupdownRenderer) Apply(ctx context.Context, target *entities.NetworkTarget) error {
	if _, err := r.backupService.Backup(ctx, r.interfacesFile); err != nil {
		return err
	}

	content := r.renderInterfaces(target)
	if err := r.fileSystem.WriteFile(r.interfacesFile, []byte(content), 0644); err != nil {
		return errors.NewSystemError(fmt.Sprintf("failed to write %s", r.interfacesFile), err)
	}

	r.logger.WithFields(logrus.Fields{
		"interface":   target.Interface(),
		"config_path": r.interfacesFile,
	}).Info("interfaces file rewritten")

	if _, err := r.commandExecutor.ExecuteWithTimeout(ctx, r.applyTimeout,
		"systemctl", "restart", "networking"); err != nil {
		return errors.NewRestartError("networking service restart failed", err)
	}

	r.logger.Info("networking service restarted")
	return nil
}

// renderInterfaces emits the whole interfaces file. The file is global, so
// any stanzas for other interfaces are replaced; the pre-write backup is the
// rollback point.
func (r *IfupdownRenderer) renderInterfaces(target *entities.NetworkTarget) string {
	var b strings.Builder

	b.WriteString("auto lo\n")
	b.WriteString("iface lo inet loopback\n")
	b.WriteString("\n")
	fmt.Fprintf(&b, "auto %s\n", target.Interface())
	fmt.Fprintf(&b, "iface %s inet static\n", target.Interface())
	fmt.Fprintf(&b, "    address %s\n", target.IP())
	fmt.Fprintf(&b, "    netmask %s\n", target.Netmask())
	fmt.Fprintf(&b, "    gateway %s\n", target.Gateway())
	fmt.Fprintf(&b, "    dns-nameservers %s\n", strings.Join(target.DNSServers(), " "))

	return b.String()
}
