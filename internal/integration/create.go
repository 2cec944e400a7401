package integration

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/hostcfg/podnet/internal/errors"
	"github.com/hostcfg/podnet/internal/log"
	"github.com/hostcfg/podnet/internal/netdev"
	"github.com/hostcfg/podnet/internal/uci"
)

// CreateIntegration builds the full host integration for a new network:
// device (bridge driver), interface, zone membership with DNS-allow
// rule, commit, and finally the resolver exclusion. Every step is
// skipped when its target already exists, so the operation is
// idempotent-create, never overwrite.
func (e *Engine) CreateIntegration(ctx context.Context, name string, opts CreateOptions) error {
	driver, err := ParseDriver(string(opts.Driver))
	if err != nil {
		return errors.NewValidationError("invalid create options", err)
	}
	opts.Driver = driver

	if verrs := e.ValidateIntegration(ctx, name, opts); len(verrs) > 0 {
		return verrs
	}

	strategy := strategyFor(driver)
	device := e.naming.DeviceName(name, opts.DeviceName)
	changed := false

	// The device must exist before the interface references it.
	created, err := strategy.EnsureDevice(ctx, e, device, opts)
	if err != nil {
		return errors.NewStoreError(fmt.Sprintf("failed to create device %s", device), err)
	}
	changed = changed || created

	created, err = e.ensureInterface(ctx, name, device, opts)
	if err != nil {
		return errors.NewStoreError(fmt.Sprintf("failed to create interface %s", name), err)
	}
	changed = changed || created

	zone := e.zones.ResolveZoneName(name, opts.ZoneName)
	created, err = e.zones.EnsureMembership(ctx, zone, name)
	if err != nil {
		return errors.NewStoreError(fmt.Sprintf("failed to join zone %s", zone), err)
	}
	changed = changed || created

	created, err = e.zones.EnsureDNSRule(ctx, zone)
	if err != nil {
		return errors.NewStoreError(fmt.Sprintf("failed to ensure DNS rule for zone %s", zone), err)
	}
	changed = changed || created

	if changed {
		if err := e.commit(ctx, DomainNetwork, DomainFirewall); err != nil {
			return err
		}
	}

	// The resolver reads live device state, so it is touched only after
	// the interface and zone are committed and applied.
	if strategy.ExclusionEligible() {
		if err := e.excludeFromResolver(ctx, device); err != nil {
			return err
		}
	}

	log.Infof("Integration for network %s is in place (device %s, zone %s)", name, device, zone)
	return nil
}

// ensureInterface stages the network's static interface section when
// missing. Reports whether a store change was staged.
func (e *Engine) ensureInterface(ctx context.Context, name, device string, opts CreateOptions) (bool, error) {
	existing, err := e.store.Section(ctx, DomainNetwork, name)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	_, ipnet, err := net.ParseCIDR(opts.Subnet)
	if err != nil {
		return false, fmt.Errorf("invalid subnet %q: %v", opts.Subnet, err)
	}
	prefixLen, _ := ipnet.Mask.Size()

	if err := e.store.AddNamed(ctx, DomainNetwork, name, SectionInterface); err != nil {
		return false, err
	}
	options := map[string]uci.Value{
		"proto":   uci.Scalar("static"),
		"device":  uci.Scalar(device),
		"ipaddr":  uci.Scalar(opts.Gateway),
		"netmask": uci.Scalar(netdev.PrefixToMask(prefixLen)),
	}
	if opts.IPv6Gateway != "" {
		addr := opts.IPv6Gateway
		if !strings.Contains(addr, "/") {
			addr += "/" + ipv6PrefixLen(opts.IPv6Subnet)
		}
		options["ip6addr"] = uci.Scalar(addr)
	}
	for option, value := range options {
		if err := e.store.Set(ctx, DomainNetwork, name, option, value); err != nil {
			return false, err
		}
	}
	return true, nil
}

// ipv6PrefixLen extracts the prefix length of the declared IPv6 subnet
// so the gateway's host address carries the same length.
func ipv6PrefixLen(subnet string) string {
	if subnet != "" {
		if _, ipnet, err := net.ParseCIDR(subnet); err == nil {
			ones, _ := ipnet.Mask.Size()
			return strconv.Itoa(ones)
		}
	}
	return "64"
}

// excludeFromResolver stages the exclusion entry, commits the resolver
// domain, and restarts the resolver. Restart failures never fail the
// operation.
func (e *Engine) excludeFromResolver(ctx context.Context, device string) error {
	changed, err := e.dnsmasq.SetExcluded(ctx, device, true)
	if err != nil {
		return errors.NewStoreError(fmt.Sprintf("failed to exclude %s from resolver", device), err)
	}
	if !changed {
		return nil
	}
	if err := e.store.Save(ctx, DomainDHCP); err != nil {
		return errors.NewStoreError("failed to save resolver configuration", err)
	}
	e.dnsmasq.Restart(ctx)
	return nil
}
