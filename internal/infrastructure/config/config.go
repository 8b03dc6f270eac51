package config

import (
	"fmt"
	"strings"
	"time"

	"staticip-agent/internal/domain/errors"

	"github.com/spf13/viper"
)

// IPv6Policy controls how renderers treat IPv6 auto-configuration. The shell
// lineage of this tool was inconsistent about it, so it is a policy knob
// rather than a guess.
const (
	IPv6PolicyDisabled = "disabled"
	IPv6PolicyIgnore   = "ignore"
)

// AddressForm selects how the legacy network-scripts renderer encodes the
// subnet: PREFIX= on newer releases, NETMASK= on older ones.
const (
	AddressFormPrefix  = "prefix"
	AddressFormNetmask = "netmask"
)

// Config holds application configuration
type Config struct {
	Agent   AgentConfig
	Policy  PolicyConfig
	Metrics MetricsConfig
}

// AgentConfig holds execution configuration
type AgentConfig struct {
	CommandTimeout  time.Duration
	ApplyTimeout    time.Duration
	BackupDirectory string
}

// PolicyConfig holds the rendering policy knobs
type PolicyConfig struct {
	IPv6        string
	AddressForm string
}

// MetricsConfig holds metrics export configuration
type MetricsConfig struct {
	// TextfilePath is a node_exporter textfile-collector destination. The
	// agent is a one-shot process, so metrics are dumped to a file after
	// the run instead of being served over HTTP. Empty disables export.
	TextfilePath string
}

// Loader loads configuration
type Loader interface {
	Load() (*Config, error)
}

// ViperLoader loads configuration from the environment and an optional
// config file
type ViperLoader struct {
	configFile string
}

// NewViperLoader creates a new ViperLoader. configFile may be empty.
func NewViperLoader(configFile string) Loader {
	return &ViperLoader{configFile: configFile}
}

// Load reads configuration with env vars (STATICIP_ prefix) overriding the
// config file, which overrides the defaults
func (l *ViperLoader) Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("agent.command_timeout", 30*time.Second)
	v.SetDefault("agent.apply_timeout", 120*time.Second)
	v.SetDefault("agent.backup_directory", "/var/lib/staticip-agent/backups")
	v.SetDefault("policy.ipv6", IPv6PolicyDisabled)
	v.SetDefault("policy.address_form", AddressFormPrefix)
	v.SetDefault("metrics.textfile_path", "")

	v.SetEnvPrefix("STATICIP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewValidationError(
				fmt.Sprintf("failed to read config file %s", l.configFile), err)
		}
	}

	config := &Config{
		Agent: AgentConfig{
			CommandTimeout:  v.GetDuration("agent.command_timeout"),
			ApplyTimeout:    v.GetDuration("agent.apply_timeout"),
			BackupDirectory: v.GetString("agent.backup_directory"),
		},
		Policy: PolicyConfig{
			IPv6:        v.GetString("policy.ipv6"),
			AddressForm: v.GetString("policy.address_form"),
		},
		Metrics: MetricsConfig{
			TextfilePath: v.GetString("metrics.textfile_path"),
		},
	}

	if err := l.validate(config); err != nil {
		return nil, err
	}

	return config, nil
}

// validate checks the loaded configuration
func (l *ViperLoader) validate(config *Config) error {
	if config.Agent.CommandTimeout <= 0 {
		return errors.NewValidationError("command timeout must be positive", nil)
	}
	if config.Agent.ApplyTimeout <= 0 {
		return errors.NewValidationError("apply timeout must be positive", nil)
	}
	if config.Agent.BackupDirectory == "" {
		return errors.NewValidationError("backup directory not configured", nil)
	}

	switch config.Policy.IPv6 {
	case IPv6PolicyDisabled, IPv6PolicyIgnore:
	default:
		return errors.NewValidationError(
			fmt.Sprintf("unknown IPv6 policy: %s (expected %s or %s)",
				config.Policy.IPv6, IPv6PolicyDisabled, IPv6PolicyIgnore), nil)
	}

	switch config.Policy.AddressForm {
	case AddressFormPrefix, AddressFormNetmask:
	default:
		return errors.NewValidationError(
			fmt.Sprintf("unknown address form: %s (expected %s or %s)",
				config.Policy.AddressForm, AddressFormPrefix, AddressFormNetmask), nil)
	}

	return nil
}
