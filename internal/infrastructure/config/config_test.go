package config

import (
	"testing"
	"time"

	domainErrors "staticip-agent/internal/domain/errors"

	"github.com/stretchr/testify/assert"
)

func TestViperLoader_Defaults(t *testing.T) {
	cfg, err := NewViperLoader("").Load()

	assert.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.Agent.CommandTimeout)
	assert.Equal(t, 120*time.Second, cfg.Agent.ApplyTimeout)
	assert.Equal(t, "/var/lib/staticip-agent/backups", cfg.Agent.BackupDirectory)
	assert.Equal(t, IPv6PolicyDisabled, cfg.Policy.IPv6)
	assert.Equal(t, AddressFormPrefix, cfg.Policy.AddressForm)
	assert.Empty(t, cfg.Metrics.TextfilePath)
}

func TestViperLoader_EnvironmentOverrides(t *testing.T) {
	t.Setenv("STATICIP_AGENT_COMMAND_TIMEOUT", "10s")
	t.Setenv("STATICIP_POLICY_ADDRESS_FORM", "netmask")
	t.Setenv("STATICIP_POLICY_IPV6", "ignore")
	t.Setenv("STATICIP_METRICS_TEXTFILE_PATH", "/var/lib/node_exporter/staticip.prom")

	cfg, err := NewViperLoader("").Load()

	assert.NoError(t, err)
	assert.Equal(t, 10*time.Second, cfg.Agent.CommandTimeout)
	assert.Equal(t, AddressFormNetmask, cfg.Policy.AddressForm)
	assert.Equal(t, IPv6PolicyIgnore, cfg.Policy.IPv6)
	assert.Equal(t, "/var/lib/node_exporter/staticip.prom", cfg.Metrics.TextfilePath)
}

func TestViperLoader_Validation(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"negative command timeout", "STATICIP_AGENT_COMMAND_TIMEOUT", "-5s"},
		{"zero apply timeout", "STATICIP_AGENT_APPLY_TIMEOUT", "0s"},
		{"unknown IPv6 policy", "STATICIP_POLICY_IPV6", "maybe"},
		{"unknown address form", "STATICIP_POLICY_ADDRESS_FORM", "cidr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			cfg, err := NewViperLoader("").Load()

			assert.Error(t, err)
			assert.True(t, domainErrors.IsValidationError(err))
			assert.Nil(t, cfg)
		})
	}
}

func TestViperLoader_MissingConfigFile(t *testing.T) {
	cfg, err := NewViperLoader("/nonexistent/config.yaml").Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
}
