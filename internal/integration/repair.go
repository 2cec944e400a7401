package integration

import (
	"context"
	"fmt"

	"github.com/hostcfg/podnet/internal/errors"
	"github.com/hostcfg/podnet/internal/log"
)

// RepairIntegration recreates only the components the status inspector
// reports missing. Zone management is explicitly out of repair's scope:
// the zone is a one-time user choice at creation time, so repair never
// creates or joins a zone, whatever the current membership looks like.
// The ZoneName in opts is ignored.
func (e *Engine) RepairIntegration(ctx context.Context, name string, opts CreateOptions) (*RepairResult, error) {
	driver, err := ParseDriver(string(opts.Driver))
	if err != nil {
		return nil, errors.NewValidationError("invalid repair options", err)
	}
	opts.Driver = driver

	status := e.IsIntegrationComplete(ctx, name, driver)
	if status.Complete {
		return &RepairResult{AlreadyComplete: true}, nil
	}

	missing := make(map[string]bool, len(status.Missing))
	for _, m := range status.Missing {
		missing[m] = true
	}
	if missing[ComponentUnknown] {
		return nil, errors.NewStoreError("cannot repair: store state is unknown", nil)
	}

	strategy := strategyFor(driver)
	device := e.naming.DeviceName(name, opts.DeviceName)
	result := &RepairResult{}
	changed := false

	if missing[ComponentDevice] {
		created, err := strategy.EnsureDevice(ctx, e, device, opts)
		if err != nil {
			return nil, errors.NewStoreError(fmt.Sprintf("failed to recreate device %s", device), err)
		}
		if created {
			result.Repaired = append(result.Repaired, ComponentDevice)
			changed = true
		}
	}

	if missing[ComponentInterface] {
		created, err := e.ensureInterface(ctx, name, device, opts)
		if err != nil {
			return nil, errors.NewStoreError(fmt.Sprintf("failed to recreate interface %s", name), err)
		}
		if created {
			result.Repaired = append(result.Repaired, ComponentInterface)
			changed = true
		}
	}

	if changed {
		if err := e.commit(ctx, DomainNetwork); err != nil {
			return nil, err
		}
	}

	if missing[ComponentDnsmasq] && strategy.ExclusionEligible() {
		if err := e.excludeFromResolver(ctx, device); err != nil {
			return nil, err
		}
		result.Repaired = append(result.Repaired, ComponentDnsmasq)
	}

	log.Infof("Repaired integration for network %s: %v", name, result.Repaired)
	return result, nil
}
