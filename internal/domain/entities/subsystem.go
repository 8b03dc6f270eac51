package entities

// Subsystem identifies one of the recognized network-configuration managers.
// Exactly one is selected per apply attempt; the numeric value is the
// detection priority (lower is probed first).
type Subsystem int

const (
	SubsystemNetplan Subsystem = iota
	SubsystemNetworkManager
	SubsystemNetworkScripts
	SubsystemIfupdown
)

// AllSubsystems lists every recognized subsystem in detection priority order.
// Netplan and NetworkManager come before the legacy file mechanisms because a
// modern host may still carry stale ifcfg or interfaces files from an earlier
// install; a live manager must win over leftovers.
var AllSubsystems = []Subsystem{
	SubsystemNetplan,
	SubsystemNetworkManager,
	SubsystemNetworkScripts,
	SubsystemIfupdown,
}

// String returns the subsystem name used in logs and metrics labels.
func (s Subsystem) String() string {
	switch s {
	case SubsystemNetplan:
		return "netplan"
	case SubsystemNetworkManager:
		return "networkmanager"
	case SubsystemNetworkScripts:
		return "network-scripts"
	case SubsystemIfupdown:
		return "ifupdown"
	default:
		return "unknown"
	}
}
