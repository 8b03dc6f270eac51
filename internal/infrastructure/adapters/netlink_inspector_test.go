package adapters

import (
	"errors"
	"net"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/vishvananda/netlink"
)

// MockFileSystem is a mock FileSystem for inspector tests
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

func TestNetlinkInspector_ReadNameservers(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		readErr  error
		expected []string
	}{
		{
			name: "typical resolv.conf",
			content: "# Generated by NetworkManager\n" +
				"search example.com\n" +
				"nameserver 1.1.1.1\n" +
				"nameserver 8.8.8.8\n",
			expected: []string{"1.1.1.1", "8.8.8.8"},
		},
		{
			name:     "malformed entries are skipped",
			content:  "nameserver\nnameserver not-an-ip\nnameserver 9.9.9.9\n",
			expected: []string{"9.9.9.9"},
		},
		{
			name:     "unreadable file yields nothing",
			readErr:  errors.New("permission denied"),
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := new(MockFileSystem)
			fs.On("ReadFile", resolvConfPath).Return([]byte(tt.content), tt.readErr)

			inspector := &NetlinkInspector{fileSystem: fs}
			assert.Equal(t, tt.expected, inspector.readNameservers())
		})
	}
}

func TestFormatRoute(t *testing.T) {
	_, dst, _ := net.ParseCIDR("10.0.0.0/24")

	tests := []struct {
		name     string
		route    netlink.Route
		expected string
	}{
		{
			name:     "default route with gateway",
			route:    netlink.Route{Gw: net.ParseIP("10.0.0.1")},
			expected: "default via 10.0.0.1",
		},
		{
			name:     "link-scoped subnet route",
			route:    netlink.Route{Dst: dst},
			expected: "10.0.0.0/24",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatRoute(tt.route))
		})
	}
}
