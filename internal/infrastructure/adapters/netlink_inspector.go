package adapters

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"strings"

	"staticip-agent/internal/domain/entities"
	"staticip-agent/internal/domain/errors"
	"staticip-agent/internal/domain/interfaces"

	"github.com/vishvananda/netlink"
)

const resolvConfPath = "/etc/resolv.conf"

// NetlinkInspector is a LinkInspector implementation that reads interface
// state through the netlink socket instead of scraping `ip` output.
type NetlinkInspector struct {
	fileSystem interfaces.FileSystem
}

// NewNetlinkInspector creates a new NetlinkInspector
func NewNetlinkInspector(fs interfaces.FileSystem) interfaces.LinkInspector {
	return &NetlinkInspector{
		fileSystem: fs,
	}
}

// Exists reports whether the named interface is present on the host
func (i *NetlinkInspector) Exists(name string) bool {
	_, err := netlink.LinkByName(name)
	return err == nil
}

// State returns the observed addresses, routes and nameservers for the
// named interface
func (i *NetlinkInspector) State(ctx context.Context, name string) (*entities.NetworkState, error) {
	link, err := netlink.LinkByName(name)
	if err != nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("interface %s not found", name))
	}

	state := &entities.NetworkState{
		Interface: name,
		Up:        link.Attrs().OperState == netlink.OperUp,
	}

	addrs, err := netlink.AddrList(link, netlink.FAMILY_V4)
	if err != nil {
		return nil, errors.NewSystemError(fmt.Sprintf("failed to list addresses for %s", name), err)
	}
	for _, addr := range addrs {
		state.Addresses = append(state.Addresses, addr.IPNet.String())
	}

	routes, err := netlink.RouteList(link, netlink.FAMILY_V4)
	if err != nil {
		return nil, errors.NewSystemError(fmt.Sprintf("failed to list routes for %s", name), err)
	}
	for _, route := range routes {
		state.Routes = append(state.Routes, formatRoute(route))
	}

	state.Nameservers = i.readNameservers()

	return state, nil
}

// readNameservers scans /etc/resolv.conf. Failures are not fatal: the
// verification report is observational.
func (i *NetlinkInspector) readNameservers() []string {
	content, err := i.fileSystem.ReadFile(resolvConfPath)
	if err != nil {
		return nil
	}

	var servers []string
	scanner := bufio.NewScanner(strings.NewReader(string(content)))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) >= 2 && fields[0] == "nameserver" {
			if ip := net.ParseIP(fields[1]); ip != nil {
				servers = append(servers, fields[1])
			}
		}
	}

	return servers
}

func formatRoute(route netlink.Route) string {
	dst := "default"
	if route.Dst != nil {
		dst = route.Dst.String()
	}
	if route.Gw != nil {
		return fmt.Sprintf("%s via %s", dst, route.Gw.String())
	}
	return dst
}
