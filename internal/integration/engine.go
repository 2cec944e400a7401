package integration

import (
	"context"
	"fmt"

	"github.com/hostcfg/podnet/internal/config"
	"github.com/hostcfg/podnet/internal/errors"
	"github.com/hostcfg/podnet/internal/netdev"
	"github.com/hostcfg/podnet/internal/sysexec"
	"github.com/hostcfg/podnet/internal/uci"
)

// Engine is the network-integration reconciler. It keeps the container
// runtime's virtual networks synchronized with the host configuration
// store: interface section, bridge device, firewall zone with DNS-allow
// rule, and the resolver exclusion entry.
//
// All mutations of one operation are staged in the store and committed
// together; the engine assumes callers serialize operations.
type Engine struct {
	store   uci.Store
	devices netdev.Provider
	exec    sysexec.Runner
	cfg     *config.Config

	naming  *Namer
	zones   *ZoneManager
	dnsmasq *DnsmasqManager
}

func NewEngine(store uci.Store, devices netdev.Provider, exec sysexec.Runner, cfg *config.Config) *Engine {
	naming := NewNamer(cfg.Naming)
	return &Engine{
		store:   store,
		devices: devices,
		exec:    exec,
		cfg:     cfg,
		naming:  naming,
		zones:   NewZoneManager(store, naming, cfg.General.ReservedZonePrefix),
		dnsmasq: NewDnsmasqManager(store, exec, cfg.General),
	}
}

// Naming exposes the engine's name resolver.
func (e *Engine) Naming() *Namer {
	return e.naming
}

// ListReservedZones lists the firewall zones carrying the reserved
// prefix, for the "join existing zone" selector.
func (e *Engine) ListReservedZones(ctx context.Context) ([]string, error) {
	return e.zones.ListReservedZones(ctx)
}

// commit persists the staged changes of the given domains, applies the
// configuration with the rollback window, and drops the device cache so
// the next read sees the post-apply state.
func (e *Engine) commit(ctx context.Context, domains ...string) error {
	for _, domain := range domains {
		if err := e.store.Save(ctx, domain); err != nil {
			return errors.NewStoreError(fmt.Sprintf("failed to save %s configuration", domain), err)
		}
	}
	if err := e.store.Apply(ctx, e.cfg.General.ApplyTimeoutSeconds); err != nil {
		return errors.NewStoreError("failed to apply configuration", err)
	}
	e.devices.FlushCache()
	return nil
}

// findDeviceSection locates the device section carrying the given name
// option. Device sections are anonymous, so they are found by scanning.
func (e *Engine) findDeviceSection(ctx context.Context, device string) (*uci.Section, error) {
	sections, err := e.store.Sections(ctx, DomainNetwork, SectionDevice)
	if err != nil {
		return nil, err
	}
	for i := range sections {
		if sections[i].Option("name").First() == device {
			return &sections[i], nil
		}
	}
	return nil, nil
}

// countDeviceReferences counts interface sections other than the given
// network that are bound to the device.
func (e *Engine) countDeviceReferences(ctx context.Context, device, excludeNetwork string) (int, error) {
	sections, err := e.store.Sections(ctx, DomainNetwork, SectionInterface)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, sec := range sections {
		if sec.Name == excludeNetwork {
			continue
		}
		if sec.Option("device").First() == device {
			count++
		}
	}
	return count, nil
}
