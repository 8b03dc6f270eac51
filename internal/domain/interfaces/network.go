package interfaces

import (
	"context"

	"staticip-agent/internal/domain/entities"
)

// SubsystemDetector probes the host for network-configuration subsystems.
type SubsystemDetector interface {
	// Detect returns every available subsystem in priority order. The
	// first entry is the primary apply target; the rest are fallback
	// candidates. An empty result is a detection error.
	Detect(ctx context.Context) ([]entities.Subsystem, error)
}

// Renderer turns a NetworkTarget into subsystem-native configuration and
// applies it through that subsystem's own control path. Renderers never
// manipulate kernel network state directly.
type Renderer interface {
	// Subsystem identifies which manager this renderer drives.
	Subsystem() entities.Subsystem

	// Apply renders and activates the target configuration.
	Apply(ctx context.Context, target *entities.NetworkTarget) error
}

// LinkInspector reads kernel interface state.
type LinkInspector interface {
	// Exists reports whether the named interface is present on the host.
	Exists(name string) bool

	// State returns the observed state of the named interface.
	State(ctx context.Context, name string) (*entities.NetworkState, error)
}

// BackupService copies configuration files aside before destructive writes.
type BackupService interface {
	// Backup writes a timestamped copy of configPath and returns the
	// backup path. A missing source file is not an error: it returns
	// ("", nil) on first run.
	Backup(ctx context.Context, configPath string) (string, error)
}
