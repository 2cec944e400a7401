package integration

import (
	"context"
	"fmt"

	"github.com/hostcfg/podnet/internal/errors"
	"github.com/hostcfg/podnet/internal/log"
)

// RemoveIntegration reverses CreateIntegration: zone membership,
// interface, device (reference counted), commit, then the resolver
// exclusion. Every step treats an already-absent resource as success,
// so removal is idempotent.
func (e *Engine) RemoveIntegration(ctx context.Context, name, deviceName string, driver Driver) error {
	driver, err := ParseDriver(string(driver))
	if err != nil {
		return errors.NewValidationError("invalid remove options", err)
	}
	strategy := strategyFor(driver)

	device := deviceName
	if device == "" {
		// Prefer the device the interface section is actually bound to.
		iface, err := e.store.Section(ctx, DomainNetwork, name)
		if err != nil {
			return errors.NewStoreError(fmt.Sprintf("failed to read interface %s", name), err)
		}
		if iface != nil {
			device = iface.Option("device").First()
		}
		if device == "" {
			device = e.naming.DeviceName(name, "")
		}
	}

	if err := e.zones.RemoveMembership(ctx, name); err != nil {
		return errors.NewStoreError(fmt.Sprintf("failed to remove %s from firewall zones", name), err)
	}

	if err := e.store.Remove(ctx, DomainNetwork, name); err != nil {
		return errors.NewStoreError(fmt.Sprintf("failed to remove interface %s", name), err)
	}

	// The device goes only when no sibling network still references it.
	deviceDeleted, err := strategy.CleanupDevice(ctx, e, name, device)
	if err != nil {
		return errors.NewStoreError(fmt.Sprintf("failed to clean up device %s", device), err)
	}

	if err := e.commit(ctx, DomainNetwork, DomainFirewall); err != nil {
		return err
	}

	// The exclusion entry follows the device: it is cleared only when the
	// device itself was deleted.
	if strategy.ExclusionEligible() && deviceDeleted {
		changed, err := e.dnsmasq.SetExcluded(ctx, device, false)
		if err != nil {
			return errors.NewStoreError(fmt.Sprintf("failed to clear resolver exclusion for %s", device), err)
		}
		if changed {
			if err := e.store.Save(ctx, DomainDHCP); err != nil {
				return errors.NewStoreError("failed to save resolver configuration", err)
			}
			e.dnsmasq.Restart(ctx)
		}
	}

	log.Infof("Removed integration for network %s (device %s deleted: %t)", name, device, deviceDeleted)
	return nil
}
