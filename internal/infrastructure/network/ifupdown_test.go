package network

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"staticip-agent/internal/domain/entities"
	domainErrors "staticip-agent/internal/domain/errors"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newIfupdownRenderer(e *MockCommandExecutor, fs *MockFileSystem, b *MockBackupService) *IfupdownRenderer {
	return NewIfupdownRenderer(e, fs, b, logrus.New(), 120*time.Second)
}

func TestIfupdownRenderer_Render(t *testing.T) {
	target := mustCreateTarget("ens192", "10.0.0.5/24", "10.0.0.1", "1.1.1.1,8.8.8.8")
	r := newIfupdownRenderer(new(MockCommandExecutor), new(MockFileSystem), new(MockBackupService))

	expected := "auto lo\n" +
		"iface lo inet loopback\n" +
		"\n" +
		"auto ens192\n" +
		"iface ens192 inet static\n" +
		"    address 10.0.0.5\n" +
		"    netmask 255.255.255.0\n" +
		"    gateway 10.0.0.1\n" +
		"    dns-nameservers 1.1.1.1 8.8.8.8\n"

	assert.Equal(t, expected, r.renderInterfaces(target))
}

func TestIfupdownRenderer_Apply(t *testing.T) {
	target := mustCreateTarget("ens192", "10.0.0.5/24", "10.0.0.1", "1.1.1.1")

	t.Run("backs up, rewrites and restarts networking", func(t *testing.T) {
		executor := new(MockCommandExecutor)
		fs := new(MockFileSystem)
		backup := new(MockBackupService)

		backup.On("Backup", mock.Anything, "/etc/network/interfaces").
			Return("/var/lib/staticip-agent/backups/interfaces.backup_20260831120000", nil).Once()
		fs.On("WriteFile", "/etc/network/interfaces", mock.Anything, os.FileMode(0644)).Return(nil).Once()
		executor.On("ExecuteWithTimeout", mock.Anything, 120*time.Second, "systemctl", "restart", "networking").
			Return([]byte(""), nil).Once()

		r := newIfupdownRenderer(executor, fs, backup)
		assert.Equal(t, entities.SubsystemIfupdown, r.Subsystem())
		assert.NoError(t, r.Apply(context.Background(), target))

		executor.AssertExpectations(t)
		fs.AssertExpectations(t)
		backup.AssertExpectations(t)
	})

	t.Run("restart failure is a restart error", func(t *testing.T) {
		executor := new(MockCommandExecutor)
		fs := new(MockFileSystem)
		backup := new(MockBackupService)

		backup.On("Backup", mock.Anything, "/etc/network/interfaces").Return("", nil).Once()
		fs.On("WriteFile", "/etc/network/interfaces", mock.Anything, os.FileMode(0644)).Return(nil).Once()
		executor.On("ExecuteWithTimeout", mock.Anything, 120*time.Second, "systemctl", "restart", "networking").
			Return([]byte(nil), errors.New("failed")).Once()

		r := newIfupdownRenderer(executor, fs, backup)
		err := r.Apply(context.Background(), target)
		assert.Error(t, err)
		assert.True(t, domainErrors.IsRestartError(err))
	})
}
