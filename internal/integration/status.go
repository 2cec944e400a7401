package integration

import (
	"context"

	"github.com/hostcfg/podnet/internal/log"
)

// IsIntegrationComplete inspects the store and reports which components
// of the network's integration are present. It never returns an error:
// when the store itself cannot be read, the single ComponentUnknown
// marker is reported so callers can always render a status.
//
// Zone membership is deliberately not part of completeness: the zone is
// a user decision made at creation time, not an integration defect.
func (e *Engine) IsIntegrationComplete(ctx context.Context, name string, driver Driver) *Status {
	status := &Status{Details: make(map[string]string)}
	strategy := strategyFor(driver)

	iface, err := e.store.Section(ctx, DomainNetwork, name)
	if err != nil {
		log.Warnf("Status check for %s failed: %v", name, err)
		return unknownStatus()
	}

	device := e.naming.DeviceName(name, "")
	if iface != nil {
		if declared := iface.Option("device").First(); declared != "" {
			device = declared
		}
	} else {
		status.Missing = append(status.Missing, ComponentInterface)
	}
	status.Details["device"] = device

	deviceExists, err := strategy.DeviceExists(ctx, e, device)
	if err != nil {
		log.Warnf("Status check for %s failed: %v", name, err)
		return unknownStatus()
	}
	if !deviceExists {
		status.Missing = append(status.Missing, ComponentDevice)
	}

	if strategy.ExclusionEligible() {
		excluded, configured, err := e.dnsmasq.IsExcluded(ctx, device)
		if err != nil {
			log.Warnf("Status check for %s failed: %v", name, err)
			return unknownStatus()
		}
		// Without a resolver section there is nothing to exclude from.
		if configured && !excluded {
			status.Missing = append(status.Missing, ComponentDnsmasq)
		}
	}

	if zone, err := e.zones.MembershipZone(ctx, name); err == nil && zone != "" {
		status.Details["zone"] = zone
	}

	status.Complete = len(status.Missing) == 0
	return status
}

// unknownStatus marks the store itself as unreadable. Details stays
// writable so callers can still attach diagnostics to the report.
func unknownStatus() *Status {
	return &Status{
		Missing: []string{ComponentUnknown},
		Details: make(map[string]string),
	}
}

// HasIntegration reports whether the network has a host interface
// section at all.
func (e *Engine) HasIntegration(ctx context.Context, name string) (bool, error) {
	sec, err := e.store.Section(ctx, DomainNetwork, name)
	if err != nil {
		return false, err
	}
	return sec != nil, nil
}

// GetIntegration reads the network's integration descriptor from the
// store. A network without an interface section yields (nil, nil).
func (e *Engine) GetIntegration(ctx context.Context, name string) (*Integration, error) {
	sec, err := e.store.Section(ctx, DomainNetwork, name)
	if err != nil {
		return nil, err
	}
	if sec == nil {
		return nil, nil
	}

	integ := &Integration{
		NetworkName: name,
		DeviceName:  sec.Option("device").First(),
		Protocol:    sec.Option("proto").First(),
		Gateway:     sec.Option("ipaddr").First(),
		Netmask:     sec.Option("netmask").First(),
		IPv6Address: sec.Option("ip6addr").First(),
	}

	if zone, err := e.zones.MembershipZone(ctx, name); err != nil {
		return nil, err
	} else {
		integ.ZoneName = zone
	}

	return integ, nil
}
