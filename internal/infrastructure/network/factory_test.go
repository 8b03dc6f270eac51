package network

import (
	"testing"
	"time"

	"staticip-agent/internal/domain/entities"
	"staticip-agent/internal/infrastructure/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func newTestFactory() *RendererFactory {
	cfg := &config.Config{
		Agent: config.AgentConfig{
			CommandTimeout:  30 * time.Second,
			ApplyTimeout:    120 * time.Second,
			BackupDirectory: "/var/lib/staticip-agent/backups",
		},
		Policy: defaultPolicy(),
	}
	return NewRendererFactory(new(MockCommandExecutor), new(MockFileSystem), new(MockBackupService), logrus.New(), cfg)
}

func TestRendererFactory_RendererFor(t *testing.T) {
	factory := newTestFactory()

	tests := []struct {
		subsystem entities.Subsystem
	}{
		{entities.SubsystemNetplan},
		{entities.SubsystemNetworkManager},
		{entities.SubsystemNetworkScripts},
		{entities.SubsystemIfupdown},
	}

	for _, tt := range tests {
		t.Run(tt.subsystem.String(), func(t *testing.T) {
			renderer, err := factory.RendererFor(tt.subsystem)
			assert.NoError(t, err)
			assert.Equal(t, tt.subsystem, renderer.Subsystem())
		})
	}
}

func TestRendererFactory_RendererFor_Unknown(t *testing.T) {
	factory := newTestFactory()

	renderer, err := factory.RendererFor(entities.Subsystem(99))
	assert.Error(t, err)
	assert.Nil(t, renderer)
}

func TestRendererFactory_RendererChain(t *testing.T) {
	factory := newTestFactory()

	chain, err := factory.RendererChain([]entities.Subsystem{
		entities.SubsystemNetworkManager,
		entities.SubsystemNetworkScripts,
	})
	assert.NoError(t, err)
	assert.Len(t, chain, 2)
	assert.Equal(t, entities.SubsystemNetworkManager, chain[0].Subsystem())
	assert.Equal(t, entities.SubsystemNetworkScripts, chain[1].Subsystem())
}
