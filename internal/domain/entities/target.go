package entities

import (
	"errors"
	"fmt"
	"net"
	"regexp"
	"strings"
)

// NetworkTarget is the requested static address assignment for one interface.
// It is immutable after construction: NewNetworkTarget validates every field
// and renderers only ever read it.
type NetworkTarget struct {
	iface      string
	cidr       string
	ip         string
	prefixLen  int
	gateway    string
	dnsServers []string
}

var (
	ErrInvalidInterfaceName = errors.New("invalid interface name")
	ErrInvalidCIDRAddress   = errors.New("invalid CIDR address")
	ErrInvalidGateway       = errors.New("invalid gateway address")
	ErrNoDNSServers         = errors.New("at least one DNS server is required")
	ErrInvalidDNSServer     = errors.New("invalid DNS server address")
)

// Kernel interface names: up to 15 chars, no slash, no whitespace.
var interfaceNamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_.:-]{0,14}$`)

// NewNetworkTarget parses and validates the four positional inputs.
// dnsServers is the raw comma-separated list as supplied on the command line.
func NewNetworkTarget(iface, cidr, gateway, dnsServers string) (*NetworkTarget, error) {
	if !interfaceNamePattern.MatchString(iface) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidInterfaceName, iface)
	}

	ip, ipNet, err := net.ParseCIDR(cidr)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidCIDRAddress, cidr, err)
	}
	if ip.To4() == nil {
		return nil, fmt.Errorf("%w: %q is not IPv4", ErrInvalidCIDRAddress, cidr)
	}
	prefixLen, _ := ipNet.Mask.Size()

	gw := net.ParseIP(gateway)
	if gw == nil || gw.To4() == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidGateway, gateway)
	}

	var servers []string
	for _, s := range strings.Split(dnsServers, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if dns := net.ParseIP(s); dns == nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDNSServer, s)
		}
		servers = append(servers, s)
	}
	if len(servers) == 0 {
		return nil, ErrNoDNSServers
	}

	return &NetworkTarget{
		iface:      iface,
		cidr:       cidr,
		ip:         ip.String(),
		prefixLen:  prefixLen,
		gateway:    gateway,
		dnsServers: servers,
	}, nil
}

// Interface returns the target interface name.
func (t *NetworkTarget) Interface() string {
	return t.iface
}

// CIDR returns the address in CIDR form, e.g. "192.168.1.100/24".
func (t *NetworkTarget) CIDR() string {
	return t.cidr
}

// IP returns the bare address without the prefix length.
func (t *NetworkTarget) IP() string {
	return t.ip
}

// PrefixLen returns the subnet prefix length.
func (t *NetworkTarget) PrefixLen() int {
	return t.prefixLen
}

// Netmask returns the prefix length in dotted-quad form, e.g. "255.255.255.0".
func (t *NetworkTarget) Netmask() string {
	mask := net.CIDRMask(t.prefixLen, 32)
	return net.IP(mask).String()
}

// Gateway returns the default gateway address.
func (t *NetworkTarget) Gateway() string {
	return t.gateway
}

// DNSServers returns the ordered DNS server list.
func (t *NetworkTarget) DNSServers() []string {
	return t.dnsServers
}

// PrimaryDNS returns the first DNS server.
func (t *NetworkTarget) PrimaryDNS() string {
	return t.dnsServers[0]
}

// SecondaryDNS returns the second DNS server and whether one was supplied.
// The file-based renderers only persist two servers; the rest are dropped.
func (t *NetworkTarget) SecondaryDNS() (string, bool) {
	if len(t.dnsServers) < 2 {
		return "", false
	}
	return t.dnsServers[1], true
}
