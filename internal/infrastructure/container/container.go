package container

import (
	"staticip-agent/internal/application/usecases"
	"staticip-agent/internal/domain/interfaces"
	"staticip-agent/internal/infrastructure/adapters"
	"staticip-agent/internal/infrastructure/config"
	"staticip-agent/internal/infrastructure/detector"
	"staticip-agent/internal/infrastructure/network"
	"staticip-agent/internal/infrastructure/services"

	"github.com/sirupsen/logrus"
)

// Container wires the dependency graph
type Container struct {
	config *config.Config
	logger *logrus.Logger

	// infrastructure adapters
	fileSystem      interfaces.FileSystem
	commandExecutor interfaces.CommandExecutor
	clock           interfaces.Clock
	linkInspector   interfaces.LinkInspector

	// services
	backupService   interfaces.BackupService
	detector        interfaces.SubsystemDetector
	rendererFactory *network.RendererFactory

	// use cases
	assignAddressUseCase *usecases.AssignAddressUseCase
}

// NewContainer creates a new Container
func NewContainer(cfg *config.Config, logger *logrus.Logger) *Container {
	c := &Container{
		config: cfg,
		logger: logger,
	}

	c.initializeInfrastructure()
	c.initializeServices()
	c.initializeUseCases()

	return c
}

// initializeInfrastructure sets up the host-facing adapters
func (c *Container) initializeInfrastructure() {
	c.fileSystem = adapters.NewRealFileSystem()
	c.commandExecutor = adapters.NewRealCommandExecutor()
	c.clock = adapters.NewRealClock()
	c.linkInspector = adapters.NewNetlinkInspector(c.fileSystem)
}

// initializeServices sets up detection, backup and rendering
func (c *Container) initializeServices() {
	c.backupService = services.NewFileBackupService(
		c.fileSystem,
		c.clock,
		c.logger,
		c.config.Agent.BackupDirectory,
	)

	c.detector = detector.NewSubsystemDetector(
		c.commandExecutor,
		c.fileSystem,
		c.logger,
	)

	c.rendererFactory = network.NewRendererFactory(
		c.commandExecutor,
		c.fileSystem,
		c.backupService,
		c.logger,
		c.config,
	)
}

// initializeUseCases sets up the application layer
func (c *Container) initializeUseCases() {
	c.assignAddressUseCase = usecases.NewAssignAddressUseCase(
		c.detector,
		c.rendererFactory,
		c.linkInspector,
		c.logger,
	)
}

// GetConfig returns the configuration
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetFileSystem returns the file system adapter
func (c *Container) GetFileSystem() interfaces.FileSystem {
	return c.fileSystem
}

// GetLinkInspector returns the link inspector
func (c *Container) GetLinkInspector() interfaces.LinkInspector {
	return c.linkInspector
}

// GetDetector returns the subsystem detector
func (c *Container) GetDetector() interfaces.SubsystemDetector {
	return c.detector
}

// GetAssignAddressUseCase returns the assignment use case
func (c *Container) GetAssignAddressUseCase() *usecases.AssignAddressUseCase {
	return c.assignAddressUseCase
}
