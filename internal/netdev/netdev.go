// Package netdev exposes the host's network devices behind a Provider
// interface, with a netlink-backed implementation for production use.
package netdev

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/vishvananda/netlink"

	"github.com/hostcfg/podnet/internal/errors"
	"github.com/hostcfg/podnet/internal/log"
)

// Device is a live network device as seen by the kernel.
type Device struct {
	Name string
	Type string
}

// Provider lists the host's network devices. Implementations may cache
// the device list; FlushCache discards it after the host configuration
// has been applied.
type Provider interface {
	Devices(ctx context.Context) ([]Device, error)
	FlushCache()
}

// PrefixToMask converts an IPv4 prefix length to dotted-quad notation,
// e.g. 24 becomes 255.255.255.0.
func PrefixToMask(prefix int) string {
	if prefix < 0 || prefix > 32 {
		return ""
	}
	mask := net.CIDRMask(prefix, 32)
	return fmt.Sprintf("%d.%d.%d.%d", mask[0], mask[1], mask[2], mask[3])
}

// NetlinkProvider reads devices via the netlink socket and caches the
// result until flushed.
type NetlinkProvider struct {
	mu     sync.Mutex
	cached []Device
}

func NewNetlinkProvider() *NetlinkProvider {
	return &NetlinkProvider{}
}

func (p *NetlinkProvider) Devices(_ context.Context) ([]Device, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cached != nil {
		return p.cached, nil
	}

	links, err := netlink.LinkList()
	if err != nil {
		return nil, errors.NewDeviceError("failed to list network devices", err)
	}

	devices := make([]Device, 0, len(links))
	for _, link := range links {
		devices = append(devices, Device{
			Name: link.Attrs().Name,
			Type: link.Type(),
		})
	}

	log.Debugf("Discovered %d network devices", len(devices))
	p.cached = devices
	return devices, nil
}

func (p *NetlinkProvider) FlushCache() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cached = nil
}
