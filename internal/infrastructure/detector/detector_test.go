package detector

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

// MockCommandExecutor is a mock CommandExecutor for detector tests
type MockCommandExecutor struct {
	mock.Mock
}

func (m *MockCommandExecutor) Execute(ctx context.Context, command string, args ...string) ([]byte, error) {
	argList := []interface{}{ctx, command}
	for _, arg := range args {
		argList = append(argList, arg)
	}
	mockArgs := m.Called(argList...)
	return mockArgs.Get(0).([]byte), mockArgs.Error(1)
}

func (m *MockCommandExecutor) ExecuteWithTimeout(ctx context.Context, timeout time.Duration, command string, args ...string) ([]byte, error) {
	argList := []interface{}{ctx, timeout, command}
	for _, arg := range args {
		argList = append(argList, arg)
	}
	mockArgs := m.Called(argList...)
	return mockArgs.Get(0).([]byte), mockArgs.Error(1)
}

func (m *MockCommandExecutor) LookPath(command string) (string, error) {
	args := m.Called(command)
	return args.String(0), args.Error(1)
}

// MockFileSystem is a mock FileSystem for detector tests
type MockFileSystem struct {
	mock.Mock
}

func (m *MockFileSystem) ReadFile(path string) ([]byte, error) {
	args := m.Called(path)
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockFileSystem) WriteFile(path string, data []byte, perm os.FileMode) error {
	args := m.Called(path, data, perm)
	return args.Error(0)
}

func (m *MockFileSystem) Exists(path string) bool {
	args := m.Called(path)
	return args.Bool(0)
}

func (m *MockFileSystem) MkdirAll(path string, perm os.FileMode) error {
	args := m.Called(path, perm)
	return args.Error(0)
}

func (m *MockFileSystem) Remove(path string) error {
	args := m.Called(path)
	return args.Error(0)
}

func (m *MockFileSystem) ListFiles(path string) ([]string, error) {
	args := m.Called(path)
	return args.Get(0).([]string), args.Error(1)
}

func TestSubsystemDetector_Detect(t *testing.T) {
	notFound := errors.New("executable file not found in $PATH")

	tests := []struct {
		name       string
		setupMocks func(*MockCommandExecutor, *MockFileSystem)
		expected   []entities.Subsystem
		expectErr  bool
	}{
		{
			name: "netplan only",
			setupMocks: func(e *MockCommandExecutor, fs *MockFileSystem) {
				fs.On("Exists", DefaultNetplanDir).Return(true)
				e.On("LookPath", "netplan").Return("/usr/sbin/netplan", nil)
				e.On("LookPath", "nmcli").Return("", notFound)
				fs.On("ListFiles", DefaultNetworkScriptsDir).Return([]string{}, errors.New("no such directory"))
				fs.On("Exists", DefaultInterfacesFile).Return(false)
			},
			expected: []entities.Subsystem{entities.SubsystemNetplan},
		},
		{
			name: "active NetworkManager only",
			setupMocks: func(e *MockCommandExecutor, fs *MockFileSystem) {
				fs.On("Exists", DefaultNetplanDir).Return(false)
				e.On("LookPath", "nmcli").Return("/usr/bin/nmcli", nil)
				e.On("ExecuteWithTimeout", mock.Anything, 10*time.Second, "systemctl", "is-active", "NetworkManager").
					Return([]byte("active\n"), nil)
				fs.On("ListFiles", DefaultNetworkScriptsDir).Return([]string{}, errors.New("no such directory"))
				fs.On("Exists", DefaultInterfacesFile).Return(false)
			},
			expected: []entities.Subsystem{entities.SubsystemNetworkManager},
		},
		{
			name: "inactive NetworkManager is not available",
			setupMocks: func(e *MockCommandExecutor, fs *MockFileSystem) {
				fs.On("Exists", DefaultNetplanDir).Return(false)
				e.On("LookPath", "nmcli").Return("/usr/bin/nmcli", nil)
				e.On("ExecuteWithTimeout", mock.Anything, 10*time.Second, "systemctl", "is-active", "NetworkManager").
					Return([]byte(nil), errors.New("exit status 3"))
				fs.On("ListFiles", DefaultNetworkScriptsDir).Return([]string{"ifcfg-eth0"}, nil)
				fs.On("Exists", DefaultInterfacesFile).Return(false)
			},
			expected: []entities.Subsystem{entities.SubsystemNetworkScripts},
		},
		{
			name: "loopback-only scripts directory does not count",
			setupMocks: func(e *MockCommandExecutor, fs *MockFileSystem) {
				fs.On("Exists", DefaultNetplanDir).Return(false)
				e.On("LookPath", "nmcli").Return("", notFound)
				fs.On("ListFiles", DefaultNetworkScriptsDir).Return([]string{"ifcfg-lo", "network-functions"}, nil)
				fs.On("Exists", DefaultInterfacesFile).Return(true)
			},
			expected: []entities.Subsystem{entities.SubsystemIfupdown},
		},
		{
			name: "live managers outrank stale legacy files",
			setupMocks: func(e *MockCommandExecutor, fs *MockFileSystem) {
				fs.On("Exists", DefaultNetplanDir).Return(true)
				e.On("LookPath", "netplan").Return("/usr/sbin/netplan", nil)
				e.On("LookPath", "nmcli").Return("/usr/bin/nmcli", nil)
				e.On("ExecuteWithTimeout", mock.Anything, 10*time.Second, "systemctl", "is-active", "NetworkManager").
					Return([]byte("active\n"), nil)
				fs.On("ListFiles", DefaultNetworkScriptsDir).Return([]string{"ifcfg-ens192"}, nil)
				fs.On("Exists", DefaultInterfacesFile).Return(true)
			},
			expected: []entities.Subsystem{
				entities.SubsystemNetplan,
				entities.SubsystemNetworkManager,
				entities.SubsystemNetworkScripts,
				entities.SubsystemIfupdown,
			},
		},
		{
			name: "netplan directory without the command is not available",
			setupMocks: func(e *MockCommandExecutor, fs *MockFileSystem) {
				fs.On("Exists", DefaultNetplanDir).Return(true)
				e.On("LookPath", "netplan").Return("", notFound)
				e.On("LookPath", "nmcli").Return("", notFound)
				fs.On("ListFiles", DefaultNetworkScriptsDir).Return([]string{}, errors.New("no such directory"))
				fs.On("Exists", DefaultInterfacesFile).Return(true)
			},
			expected: []entities.Subsystem{entities.SubsystemIfupdown},
		},
		{
			name: "nothing detected",
			setupMocks: func(e *MockCommandExecutor, fs *MockFileSystem) {
				fs.On("Exists", DefaultNetplanDir).Return(false)
				e.On("LookPath", "nmcli").Return("", notFound)
				fs.On("ListFiles", DefaultNetworkScriptsDir).Return([]string{}, errors.New("no such directory"))
				fs.On("Exists", DefaultInterfacesFile).Return(false)
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			executor := new(MockCommandExecutor)
			fs := new(MockFileSystem)
			tt.setupMocks(executor, fs)

			d := NewSubsystemDetector(executor, fs, logrus.New())
			subsystems, err := d.Detect(context.Background())

			if tt.expectErr {
				assert.Error(t, err)
				assert.True(t, domainErrors.IsDetectionError(err))
				assert.Nil(t, subsystems)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, subsystems)
			}

			executor.AssertExpectations(t)
			fs.AssertExpectations(t)
		})
	}
}
