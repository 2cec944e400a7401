package integration

import (
	"context"
	"fmt"

	"github.com/hostcfg/podnet/internal/uci"
)

// Driver is the virtual network driver type.
type Driver string

const (
	DriverBridge  Driver = "bridge"
	DriverMacvlan Driver = "macvlan"
	DriverIpvlan  Driver = "ipvlan"
)

// ParseDriver maps a driver string to a Driver. The runtime reports an
// empty driver for its default network type, which is bridge.
func ParseDriver(s string) (Driver, error) {
	switch s {
	case "", "bridge":
		return DriverBridge, nil
	case "macvlan":
		return DriverMacvlan, nil
	case "ipvlan":
		return DriverIpvlan, nil
	default:
		return "", fmt.Errorf("unknown network driver: %s", s)
	}
}

// NeedsBridge reports whether this driver owns a host bridge device.
// Macvlan and ipvlan attach to a pre-existing parent interface instead.
func (d Driver) NeedsBridge() bool {
	return d == DriverBridge
}

// driverStrategy captures the driver-conditional behavior shared by the
// builder, repairer and remover.
type driverStrategy interface {
	// EnsureDevice stages creation of the host-side device when missing.
	// Reports whether a store change was staged.
	EnsureDevice(ctx context.Context, e *Engine, device string, opts CreateOptions) (bool, error)

	// DeviceExists reports whether the host-side device is present.
	DeviceExists(ctx context.Context, e *Engine, device string) (bool, error)

	// CleanupDevice stages removal of the device when no other interface
	// references it. Reports whether the device was actually deleted.
	CleanupDevice(ctx context.Context, e *Engine, network, device string) (bool, error)

	// ExclusionEligible reports whether the device contends with the host
	// DNS resolver and belongs on its exclusion list.
	ExclusionEligible() bool
}

func strategyFor(d Driver) driverStrategy {
	if d.NeedsBridge() {
		return bridgeStrategy{}
	}
	return attachStrategy{}
}

// bridgeStrategy owns a bridge device section in the network domain.
type bridgeStrategy struct{}

func (bridgeStrategy) EnsureDevice(ctx context.Context, e *Engine, device string, opts CreateOptions) (bool, error) {
	existing, err := e.findDeviceSection(ctx, device)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	ref, err := e.store.Add(ctx, DomainNetwork, SectionDevice)
	if err != nil {
		return false, err
	}

	options := map[string]uci.Value{
		"name":         uci.Scalar(device),
		"type":         uci.Scalar("bridge"),
		"bridge_empty": uci.Scalar("1"),
	}
	if opts.IPv6Subnet != "" {
		options["ipv6"] = uci.Scalar("1")
	}
	for option, value := range options {
		if err := e.store.Set(ctx, DomainNetwork, ref, option, value); err != nil {
			return false, err
		}
	}
	return true, nil
}

func (bridgeStrategy) DeviceExists(ctx context.Context, e *Engine, device string) (bool, error) {
	sec, err := e.findDeviceSection(ctx, device)
	if err != nil {
		return false, err
	}
	// A section with the right name but a non-bridge type does not count.
	return sec != nil && sec.Option("type").First() == "bridge", nil
}

func (bridgeStrategy) CleanupDevice(ctx context.Context, e *Engine, network, device string) (bool, error) {
	refs, err := e.countDeviceReferences(ctx, device, network)
	if err != nil {
		return false, err
	}
	if refs > 0 {
		return false, nil
	}

	sec, err := e.findDeviceSection(ctx, device)
	if err != nil {
		return false, err
	}
	if sec == nil {
		return false, nil
	}
	if err := e.store.Remove(ctx, DomainNetwork, sec.Name); err != nil {
		return false, err
	}
	return true, nil
}

func (bridgeStrategy) ExclusionEligible() bool { return true }

// attachStrategy covers macvlan and ipvlan networks, which ride on a
// pre-existing parent interface and never own host state of their own.
type attachStrategy struct{}

func (attachStrategy) EnsureDevice(context.Context, *Engine, string, CreateOptions) (bool, error) {
	return false, nil
}

func (attachStrategy) DeviceExists(ctx context.Context, e *Engine, device string) (bool, error) {
	devices, err := e.devices.Devices(ctx)
	if err != nil {
		return false, err
	}
	for _, d := range devices {
		if d.Name == device {
			return true, nil
		}
	}
	return false, nil
}

func (attachStrategy) CleanupDevice(context.Context, *Engine, string, string) (bool, error) {
	return false, nil
}

func (attachStrategy) ExclusionEligible() bool { return false }
