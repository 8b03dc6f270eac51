package network

import (
	"fmt"

	"staticip-agent/internal/domain/entities"
	"staticip-agent/internal/domain/errors"
	"staticip-agent/internal/domain/interfaces"
	"staticip-agent/internal/infrastructure/config"

	"github.com/sirupsen/logrus"
)

// RendererFactory builds the renderer for a detected subsystem. Adding a
// subsystem means adding one renderer and one case here; the dispatcher
// never branches on subsystem identity itself.
type RendererFactory struct {
	commandExecutor interfaces.CommandExecutor
	fileSystem      interfaces.FileSystem
	backupService   interfaces.BackupService
	logger          *logrus.Logger
	config          *config.Config
}

// NewRendererFactory creates a new RendererFactory
func NewRendererFactory(
	executor interfaces.CommandExecutor,
	fs interfaces.FileSystem,
	backup interfaces.BackupService,
	logger *logrus.Logger,
	cfg *config.Config,
) *RendererFactory {
	return &RendererFactory{
		commandExecutor: executor,
		fileSystem:      fs,
		backupService:   backup,
		logger:          logger,
		config:          cfg,
	}
}

// RendererFor returns the renderer driving the given subsystem
func (f *RendererFactory) RendererFor(subsystem entities.Subsystem) (interfaces.Renderer, error) {
	switch subsystem {
	case entities.SubsystemNetplan:
		return NewNetplanRenderer(
			f.commandExecutor,
			f.fileSystem,
			f.backupService,
			f.logger,
			f.config.Agent.ApplyTimeout,
		), nil

	case entities.SubsystemNetworkManager:
		return NewNetworkManagerRenderer(
			f.commandExecutor,
			f.logger,
			f.config.Policy,
			f.config.Agent.CommandTimeout,
			f.config.Agent.ApplyTimeout,
		), nil

	case entities.SubsystemNetworkScripts:
		return NewNetworkScriptsRenderer(
			f.commandExecutor,
			f.fileSystem,
			f.backupService,
			f.logger,
			f.config.Policy,
			f.config.Agent.CommandTimeout,
			f.config.Agent.ApplyTimeout,
		), nil

	case entities.SubsystemIfupdown:
		return NewIfupdownRenderer(
			f.commandExecutor,
			f.fileSystem,
			f.backupService,
			f.logger,
			f.config.Agent.ApplyTimeout,
		), nil

	default:
		return nil, errors.NewSystemError(fmt.Sprintf("unsupported subsystem: %s", subsystem), nil)
	}
}

// RendererChain returns renderers for the detected subsystems, preserving
// the detector's priority order. The chain is the ordered fallback list.
func (f *RendererFactory) RendererChain(subsystems []entities.Subsystem) ([]interfaces.Renderer, error) {
	renderers := make([]interfaces.Renderer, 0, len(subsystems))
	for _, subsystem := range subsystems {
		renderer, err := f.RendererFor(subsystem)
		if err != nil {
			return nil, err
		}
		renderers = append(renderers, renderer)
	}
	return renderers, nil
}
