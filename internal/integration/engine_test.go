package integration

import (
	"context"
	"fmt"
	"testing"

	"github.com/hostcfg/podnet/internal/config"
	"github.com/hostcfg/podnet/internal/errors"
	"github.com/hostcfg/podnet/internal/mocks"
	"github.com/hostcfg/podnet/internal/netdev"
	"github.com/hostcfg/podnet/internal/uci"
)

func newTestEngine(store *mocks.MockStore, devices ...netdev.Device) (*Engine, *mocks.MockProvider, *mocks.MockRunner) {
	cfg := config.Default()
	cfg.General.DnsmasqSettleDelayMs = 1

	provider := mocks.NewMockProvider(devices...)
	runner := mocks.NewMockRunner()
	return NewEngine(store, provider, runner, cfg), provider, runner
}

func seedDnsmasq(store *mocks.MockStore, excluded ...string) {
	options := make(map[string]uci.Value)
	if len(excluded) > 0 {
		options["notinterface"] = excluded
	}
	store.Seed(DomainDHCP, uci.Section{Name: "cfgdns", Type: SectionDnsmasq, Anonymous: true, Options: options})
}

func findByName(t *testing.T, store *mocks.MockStore, domain, sectionType, name string) *uci.Section {
	t.Helper()
	sections, err := store.Sections(context.Background(), domain, sectionType)
	if err != nil {
		t.Fatalf("Sections failed: %v", err)
	}
	for i := range sections {
		if sections[i].Option("name").First() == name {
			return &sections[i]
		}
	}
	return nil
}

func bridgeOptions() CreateOptions {
	return CreateOptions{
		Driver:   DriverBridge,
		Subnet:   "10.89.0.0/24",
		Gateway:  "10.89.0.1",
		ZoneName: ZoneCreateNew,
	}
}

func TestCreateIntegration_ScenarioBridge(t *testing.T) {
	store := mocks.NewMockStore()
	seedDnsmasq(store)
	engine, provider, runner := newTestEngine(store)
	ctx := context.Background()

	if err := engine.CreateIntegration(ctx, "net1", bridgeOptions()); err != nil {
		t.Fatalf("CreateIntegration failed: %v", err)
	}

	device := findByName(t, store, DomainNetwork, SectionDevice, "net10")
	if device == nil {
		t.Fatal("Expected device section net10")
	}
	if device.Option("type").First() != "bridge" || device.Option("bridge_empty").First() != "1" {
		t.Errorf("Unexpected device options: %v", device.Options)
	}
	if device.Option("ipv6").First() != "" {
		t.Error("IPv6 must not be enabled without an IPv6 subnet")
	}

	iface, _ := store.Section(ctx, DomainNetwork, "net1")
	if iface == nil || iface.Type != SectionInterface {
		t.Fatal("Expected interface section net1")
	}
	if iface.Option("proto").First() != "static" ||
		iface.Option("device").First() != "net10" ||
		iface.Option("ipaddr").First() != "10.89.0.1" ||
		iface.Option("netmask").First() != "255.255.255.0" {
		t.Errorf("Unexpected interface options: %v", iface.Options)
	}

	zone := findByName(t, store, DomainFirewall, SectionZone, "podman_net1")
	if zone == nil {
		t.Fatal("Expected zone podman_net1")
	}
	if zone.Option("input").First() != "DROP" ||
		zone.Option("output").First() != "ACCEPT" ||
		zone.Option("forward").First() != "REJECT" {
		t.Errorf("Unexpected zone defaults: %v", zone.Options)
	}
	members := zone.Option("network")
	if len(members) != 1 || members[0] != "net1" {
		t.Errorf("Expected zone membership [net1], got %v", members)
	}

	rule := findByName(t, store, DomainFirewall, SectionRule, "Allow-podman_net1-DNS")
	if rule == nil {
		t.Fatal("Expected DNS-allow rule")
	}
	if rule.Option("src").First() != "podman_net1" ||
		rule.Option("dest_port").First() != "53" ||
		rule.Option("target").First() != "ACCEPT" {
		t.Errorf("Unexpected rule options: %v", rule.Options)
	}

	excl, _ := store.Get(ctx, DomainDHCP, "cfgdns", "notinterface")
	if !excl.Contains("net10") {
		t.Errorf("Expected net10 on exclusion list, got %v", excl)
	}

	if store.ApplyCalls != 1 {
		t.Errorf("Expected one apply, got %d", store.ApplyCalls)
	}
	if store.ApplyTimeouts[0] != config.DefaultApplyTimeoutSeconds {
		t.Errorf("Expected apply timeout %d, got %d", config.DefaultApplyTimeoutSeconds, store.ApplyTimeouts[0])
	}
	if store.SaveCalls[DomainNetwork] != 1 || store.SaveCalls[DomainFirewall] != 1 || store.SaveCalls[DomainDHCP] != 1 {
		t.Errorf("Unexpected save calls: %v", store.SaveCalls)
	}
	if provider.FlushCalls != 1 {
		t.Errorf("Expected one device cache flush, got %d", provider.FlushCalls)
	}
	if len(runner.Calls) != 1 || runner.Calls[0] != config.DefaultDnsmasqInitScript+" restart" {
		t.Errorf("Expected resolver restart, got %v", runner.Calls)
	}

	status := engine.IsIntegrationComplete(ctx, "net1", DriverBridge)
	if !status.Complete {
		t.Errorf("Expected complete integration, missing: %v", status.Missing)
	}
}

func TestCreateIntegration_Idempotent(t *testing.T) {
	store := mocks.NewMockStore()
	seedDnsmasq(store)
	engine, _, runner := newTestEngine(store)
	ctx := context.Background()

	if err := engine.CreateIntegration(ctx, "net1", bridgeOptions()); err != nil {
		t.Fatalf("First create failed: %v", err)
	}

	snapshot := dumpStore(t, store)
	applies := store.ApplyCalls
	restarts := len(runner.Calls)

	if err := engine.CreateIntegration(ctx, "net1", bridgeOptions()); err != nil {
		t.Fatalf("Second create failed: %v", err)
	}

	if got := dumpStore(t, store); got != snapshot {
		t.Errorf("Second create changed store state:\nbefore: %s\nafter:  %s", snapshot, got)
	}
	if store.ApplyCalls != applies {
		t.Errorf("Second create must not re-apply, applies went %d -> %d", applies, store.ApplyCalls)
	}
	if len(runner.Calls) != restarts {
		t.Errorf("Second create must not restart the resolver again")
	}
}

func TestCreateIntegration_IPv6(t *testing.T) {
	store := mocks.NewMockStore()
	engine, _, _ := newTestEngine(store)
	ctx := context.Background()

	opts := bridgeOptions()
	opts.IPv6Subnet = "fd00:abcd:ef01:5900::/64"
	opts.IPv6Gateway = "fd00:abcd:ef01:5900::1"

	if err := engine.CreateIntegration(ctx, "net1", opts); err != nil {
		t.Fatalf("CreateIntegration failed: %v", err)
	}

	device := findByName(t, store, DomainNetwork, SectionDevice, "net10")
	if device.Option("ipv6").First() != "1" {
		t.Error("Expected IPv6 enabled on the bridge device")
	}

	iface, _ := store.Section(ctx, DomainNetwork, "net1")
	if got := iface.Option("ip6addr").First(); got != "fd00:abcd:ef01:5900::1/64" {
		t.Errorf("Expected ip6addr with prefix length, got %q", got)
	}
}

func TestCreateIntegration_IPv6GatewayInheritsSubnetPrefixLength(t *testing.T) {
	store := mocks.NewMockStore()
	engine, _, _ := newTestEngine(store)
	ctx := context.Background()

	opts := bridgeOptions()
	opts.IPv6Subnet = "fd00:abcd:ef01:5900::/80"
	opts.IPv6Gateway = "fd00:abcd:ef01:5900::1"

	if err := engine.CreateIntegration(ctx, "net1", opts); err != nil {
		t.Fatalf("CreateIntegration failed: %v", err)
	}

	iface, _ := store.Section(ctx, DomainNetwork, "net1")
	if got := iface.Option("ip6addr").First(); got != "fd00:abcd:ef01:5900::1/80" {
		t.Errorf("Expected gateway address with the subnet's /80, got %q", got)
	}
}

func TestCreateIntegration_JoinSharedZone(t *testing.T) {
	store := mocks.NewMockStore()
	engine, _, _ := newTestEngine(store)
	ctx := context.Background()

	for _, name := range []string{"net1", "net2"} {
		opts := bridgeOptions()
		opts.ZoneName = "podman"
		if err := engine.CreateIntegration(ctx, name, opts); err != nil {
			t.Fatalf("Create %s failed: %v", name, err)
		}
	}

	zone := findByName(t, store, DomainFirewall, SectionZone, "podman")
	if zone == nil {
		t.Fatal("Expected shared zone podman")
	}
	members := zone.Option("network")
	if len(members) != 2 || members[0] != "net1" || members[1] != "net2" {
		t.Errorf("Expected membership [net1 net2], got %v", members)
	}

	rules, _ := store.Sections(ctx, DomainFirewall, SectionRule)
	if len(rules) != 1 {
		t.Errorf("Expected exactly one DNS rule for the shared zone, got %d", len(rules))
	}
}

func TestCreateIntegration_NonBridgeIsolation(t *testing.T) {
	store := mocks.NewMockStore()
	seedDnsmasq(store)
	engine, _, runner := newTestEngine(store, netdev.Device{Name: "eth0", Type: "device"})
	ctx := context.Background()

	opts := CreateOptions{
		Driver:     DriverMacvlan,
		DeviceName: "eth0",
		Subnet:     "10.90.0.0/24",
		Gateway:    "10.90.0.1",
		ZoneName:   ZoneCreateNew,
	}
	if err := engine.CreateIntegration(ctx, "mvnet", opts); err != nil {
		t.Fatalf("CreateIntegration failed: %v", err)
	}

	devices, _ := store.Sections(ctx, DomainNetwork, SectionDevice)
	if len(devices) != 0 {
		t.Errorf("Macvlan must not create device sections, got %d", len(devices))
	}
	excl, _ := store.Get(ctx, DomainDHCP, "cfgdns", "notinterface")
	if len(excl) != 0 {
		t.Errorf("Macvlan must not touch the exclusion list, got %v", excl)
	}
	if len(runner.Calls) != 0 {
		t.Errorf("Macvlan must not restart the resolver, got %v", runner.Calls)
	}

	iface, _ := store.Section(ctx, DomainNetwork, "mvnet")
	if iface == nil || iface.Option("device").First() != "eth0" {
		t.Error("Expected interface bound to parent eth0")
	}

	status := engine.IsIntegrationComplete(ctx, "mvnet", DriverMacvlan)
	if !status.Complete {
		t.Errorf("Expected complete macvlan integration, missing: %v", status.Missing)
	}
}

func TestCreateIntegration_StoreApplyFailure(t *testing.T) {
	store := mocks.NewMockStore()
	engine, _, _ := newTestEngine(store)
	store.ApplyErr = fmt.Errorf("ubus timeout")

	err := engine.CreateIntegration(context.Background(), "net1", bridgeOptions())
	if err == nil {
		t.Fatal("Expected error on apply failure")
	}
	derr, ok := err.(*errors.Error)
	if !ok || derr.Code != errors.ErrCodeStore {
		t.Errorf("Expected STORE_ERROR, got %v", err)
	}
}

func TestCreateIntegration_RestartFailureSwallowed(t *testing.T) {
	store := mocks.NewMockStore()
	seedDnsmasq(store)
	engine, _, runner := newTestEngine(store)
	runner.RunFunc = func(ctx context.Context, name string, args ...string) (string, error) {
		return "", fmt.Errorf("init script missing")
	}

	if err := engine.CreateIntegration(context.Background(), "net1", bridgeOptions()); err != nil {
		t.Fatalf("Restart failure must not fail the operation: %v", err)
	}

	// The exclusion itself is still committed.
	excl, _ := store.Get(context.Background(), DomainDHCP, "cfgdns", "notinterface")
	if !excl.Contains("net10") {
		t.Error("Expected exclusion to be committed despite restart failure")
	}
}

func TestStatus_MissingComponents(t *testing.T) {
	store := mocks.NewMockStore()
	seedDnsmasq(store)
	engine, _, _ := newTestEngine(store)

	status := engine.IsIntegrationComplete(context.Background(), "net1", DriverBridge)
	if status.Complete {
		t.Fatal("Expected incomplete status for absent network")
	}
	expectMissing(t, status, ComponentInterface, ComponentDevice, ComponentDnsmasq)
}

func TestStatus_WrongDeviceTypeCountsAsMissing(t *testing.T) {
	store := mocks.NewMockStore()
	store.Seed(DomainNetwork,
		uci.Section{Name: "net1", Type: SectionInterface, Options: map[string]uci.Value{
			"proto": uci.Scalar("static"), "device": uci.Scalar("net10"),
		}},
		uci.Section{Name: "cfgdev", Type: SectionDevice, Anonymous: true, Options: map[string]uci.Value{
			"name": uci.Scalar("net10"), "type": uci.Scalar("8021q"),
		}})
	engine, _, _ := newTestEngine(store)

	status := engine.IsIntegrationComplete(context.Background(), "net1", DriverBridge)
	expectMissing(t, status, ComponentDevice)
}

func TestStatus_NoDnsmasqSectionIsSatisfied(t *testing.T) {
	store := mocks.NewMockStore()
	engine, _, _ := newTestEngine(store)
	ctx := context.Background()

	if err := engine.CreateIntegration(ctx, "net1", bridgeOptions()); err != nil {
		t.Fatalf("CreateIntegration failed: %v", err)
	}

	status := engine.IsIntegrationComplete(ctx, "net1", DriverBridge)
	if !status.Complete {
		t.Errorf("Exclusion must be satisfied without a resolver section, missing: %v", status.Missing)
	}
}

func TestStatus_StoreFailureReportsUnknown(t *testing.T) {
	store := mocks.NewMockStore()
	engine, _, _ := newTestEngine(store)
	store.ReadErr = fmt.Errorf("store unreachable")

	status := engine.IsIntegrationComplete(context.Background(), "net1", DriverBridge)
	if status.Complete {
		t.Error("Expected incomplete status")
	}
	if len(status.Missing) != 1 || status.Missing[0] != ComponentUnknown {
		t.Errorf("Expected missing [unknown], got %v", status.Missing)
	}
	if status.Details == nil {
		t.Error("Details must stay writable on an unknown status")
	}
	status.Details["dns_responding"] = "false"
}

func TestRepairIntegration_AlreadyComplete(t *testing.T) {
	store := mocks.NewMockStore()
	engine, _, _ := newTestEngine(store)
	ctx := context.Background()

	if err := engine.CreateIntegration(ctx, "net1", bridgeOptions()); err != nil {
		t.Fatalf("CreateIntegration failed: %v", err)
	}
	applies := store.ApplyCalls

	result, err := engine.RepairIntegration(ctx, "net1", bridgeOptions())
	if err != nil {
		t.Fatalf("RepairIntegration failed: %v", err)
	}
	if !result.AlreadyComplete || len(result.Repaired) != 0 {
		t.Errorf("Expected no-op repair, got %+v", result)
	}
	if store.ApplyCalls != applies {
		t.Error("No-op repair must not touch the store")
	}
}

func TestRepairIntegration_Minimal(t *testing.T) {
	store := mocks.NewMockStore()
	seedDnsmasq(store)
	engine, _, _ := newTestEngine(store)
	ctx := context.Background()

	if err := engine.CreateIntegration(ctx, "net1", bridgeOptions()); err != nil {
		t.Fatalf("CreateIntegration failed: %v", err)
	}

	// Knock out only the interface.
	if err := store.Remove(ctx, DomainNetwork, "net1"); err != nil {
		t.Fatal(err)
	}
	deviceBefore := findByName(t, store, DomainNetwork, SectionDevice, "net10")
	zoneBefore := findByName(t, store, DomainFirewall, SectionZone, "podman_net1")

	result, err := engine.RepairIntegration(ctx, "net1", bridgeOptions())
	if err != nil {
		t.Fatalf("RepairIntegration failed: %v", err)
	}
	if len(result.Repaired) != 1 || result.Repaired[0] != ComponentInterface {
		t.Errorf("Expected repair of interface only, got %v", result.Repaired)
	}

	iface, _ := store.Section(ctx, DomainNetwork, "net1")
	if iface == nil {
		t.Fatal("Expected interface to be recreated")
	}
	deviceAfter := findByName(t, store, DomainNetwork, SectionDevice, "net10")
	if fmt.Sprint(deviceBefore.Options) != fmt.Sprint(deviceAfter.Options) {
		t.Error("Repair must not touch the existing device")
	}
	zoneAfter := findByName(t, store, DomainFirewall, SectionZone, "podman_net1")
	if fmt.Sprint(zoneBefore.Options) != fmt.Sprint(zoneAfter.Options) {
		t.Error("Repair must not touch zones")
	}
	if store.SaveCalls[DomainFirewall] != 1 {
		t.Errorf("Repair must not save the firewall domain, saves: %v", store.SaveCalls)
	}
}

func TestRepairIntegration_NeverJoinsZone(t *testing.T) {
	store := mocks.NewMockStore()
	engine, _, _ := newTestEngine(store)
	ctx := context.Background()

	if err := engine.CreateIntegration(ctx, "net1", bridgeOptions()); err != nil {
		t.Fatalf("CreateIntegration failed: %v", err)
	}

	// Drop the network from its zone; completeness ignores zones.
	if err := engine.zones.RemoveMembership(ctx, "net1"); err != nil {
		t.Fatal(err)
	}

	result, err := engine.RepairIntegration(ctx, "net1", bridgeOptions())
	if err != nil {
		t.Fatalf("RepairIntegration failed: %v", err)
	}
	if !result.AlreadyComplete {
		t.Errorf("Zone membership must not count as a defect, got %+v", result)
	}
	if zone := findByName(t, store, DomainFirewall, SectionZone, "podman_net1"); zone != nil {
		t.Error("Expected reserved zone to stay deleted after repair")
	}
}

func TestRemoveIntegration_ScenarioTeardown(t *testing.T) {
	store := mocks.NewMockStore()
	seedDnsmasq(store)
	engine, _, _ := newTestEngine(store)
	ctx := context.Background()

	if err := engine.CreateIntegration(ctx, "net1", bridgeOptions()); err != nil {
		t.Fatalf("CreateIntegration failed: %v", err)
	}
	if err := engine.RemoveIntegration(ctx, "net1", "", DriverBridge); err != nil {
		t.Fatalf("RemoveIntegration failed: %v", err)
	}

	if iface, _ := store.Section(ctx, DomainNetwork, "net1"); iface != nil {
		t.Error("Expected interface to be deleted")
	}
	if dev := findByName(t, store, DomainNetwork, SectionDevice, "net10"); dev != nil {
		t.Error("Expected device to be deleted")
	}
	if zone := findByName(t, store, DomainFirewall, SectionZone, "podman_net1"); zone != nil {
		t.Error("Expected reserved zone to be deleted")
	}
	if rule := findByName(t, store, DomainFirewall, SectionRule, "Allow-podman_net1-DNS"); rule != nil {
		t.Error("Expected DNS rule to be deleted")
	}
	excl, _ := store.Get(ctx, DomainDHCP, "cfgdns", "notinterface")
	if len(excl) != 0 {
		t.Errorf("Expected exclusion list cleared, got %v", excl)
	}

	status := engine.IsIntegrationComplete(ctx, "net1", DriverBridge)
	expectMissing(t, status, ComponentInterface, ComponentDevice, ComponentDnsmasq)
}

func TestRemoveIntegration_DeviceReferenceCounting(t *testing.T) {
	store := mocks.NewMockStore()
	seedDnsmasq(store, "shared0")
	store.Seed(DomainNetwork,
		uci.Section{Name: "cfgdev", Type: SectionDevice, Anonymous: true, Options: map[string]uci.Value{
			"name": uci.Scalar("shared0"), "type": uci.Scalar("bridge"),
		}},
		uci.Section{Name: "net1", Type: SectionInterface, Options: map[string]uci.Value{
			"proto": uci.Scalar("static"), "device": uci.Scalar("shared0"),
		}},
		uci.Section{Name: "net2", Type: SectionInterface, Options: map[string]uci.Value{
			"proto": uci.Scalar("static"), "device": uci.Scalar("shared0"),
		}})
	engine, _, _ := newTestEngine(store)
	ctx := context.Background()

	if err := engine.RemoveIntegration(ctx, "net1", "shared0", DriverBridge); err != nil {
		t.Fatalf("Remove net1 failed: %v", err)
	}
	if dev := findByName(t, store, DomainNetwork, SectionDevice, "shared0"); dev == nil {
		t.Fatal("Device still referenced by net2 must survive")
	}
	excl, _ := store.Get(ctx, DomainDHCP, "cfgdns", "notinterface")
	if !excl.Contains("shared0") {
		t.Error("Exclusion entry must survive while the device is referenced")
	}

	if err := engine.RemoveIntegration(ctx, "net2", "shared0", DriverBridge); err != nil {
		t.Fatalf("Remove net2 failed: %v", err)
	}
	if dev := findByName(t, store, DomainNetwork, SectionDevice, "shared0"); dev != nil {
		t.Error("Device must be deleted with its last reference")
	}
	excl, _ = store.Get(ctx, DomainDHCP, "cfgdns", "notinterface")
	if len(excl) != 0 {
		t.Errorf("Exclusion entry must be cleared with the device, got %v", excl)
	}
}

func TestRemoveIntegration_SharedZoneSemantics(t *testing.T) {
	store := mocks.NewMockStore()
	store.Seed(DomainFirewall,
		uci.Section{Name: "cfgzone", Type: SectionZone, Anonymous: true, Options: map[string]uci.Value{
			"name": uci.Scalar("lanzone"), "network": {"net1", "net2"},
		}},
		uci.Section{Name: "cfgrule", Type: SectionRule, Anonymous: true, Options: map[string]uci.Value{
			"name": uci.Scalar("Allow-lanzone-DNS"),
		}})
	store.Seed(DomainNetwork,
		uci.Section{Name: "net1", Type: SectionInterface, Options: map[string]uci.Value{"proto": uci.Scalar("static")}},
		uci.Section{Name: "net2", Type: SectionInterface, Options: map[string]uci.Value{"proto": uci.Scalar("static")}})
	engine, _, _ := newTestEngine(store)
	ctx := context.Background()

	if err := engine.RemoveIntegration(ctx, "net1", "", DriverBridge); err != nil {
		t.Fatalf("Remove net1 failed: %v", err)
	}
	zone := findByName(t, store, DomainFirewall, SectionZone, "lanzone")
	if zone == nil {
		t.Fatal("Shared zone must survive member removal")
	}
	if members := zone.Option("network"); len(members) != 1 || members[0] != "net2" {
		t.Errorf("Expected membership [net2], got %v", members)
	}
	if rule := findByName(t, store, DomainFirewall, SectionRule, "Allow-lanzone-DNS"); rule == nil {
		t.Error("DNS rule must survive while the zone has members")
	}

	// A user-defined zone is never auto-deleted, even once emptied.
	if err := engine.RemoveIntegration(ctx, "net2", "", DriverBridge); err != nil {
		t.Fatalf("Remove net2 failed: %v", err)
	}
	zone = findByName(t, store, DomainFirewall, SectionZone, "lanzone")
	if zone == nil {
		t.Fatal("Non-reserved zone must never be auto-deleted")
	}
	if members := zone.Option("network"); len(members) != 0 {
		t.Errorf("Expected empty membership, got %v", members)
	}
}

func TestRemoveIntegration_Idempotent(t *testing.T) {
	store := mocks.NewMockStore()
	engine, _, _ := newTestEngine(store)
	ctx := context.Background()

	// Nothing exists at all; every step must treat absence as success.
	if err := engine.RemoveIntegration(ctx, "ghost", "", DriverBridge); err != nil {
		t.Errorf("Removing an absent integration must succeed, got: %v", err)
	}
}

func TestListReservedZones(t *testing.T) {
	store := mocks.NewMockStore()
	store.Seed(DomainFirewall,
		uci.Section{Name: "z1", Type: SectionZone, Options: map[string]uci.Value{"name": uci.Scalar("podman_net1")}},
		uci.Section{Name: "z2", Type: SectionZone, Options: map[string]uci.Value{"name": uci.Scalar("lanzone")}},
		uci.Section{Name: "z3", Type: SectionZone, Options: map[string]uci.Value{"name": uci.Scalar("podman")}})
	engine, _, _ := newTestEngine(store)

	zones, err := engine.ListReservedZones(context.Background())
	if err != nil {
		t.Fatalf("ListReservedZones failed: %v", err)
	}
	if len(zones) != 2 || zones[0] != "podman_net1" || zones[1] != "podman" {
		t.Errorf("Expected [podman_net1 podman], got %v", zones)
	}
}

func TestGetIntegration(t *testing.T) {
	store := mocks.NewMockStore()
	engine, _, _ := newTestEngine(store)
	ctx := context.Background()

	if integ, err := engine.GetIntegration(ctx, "net1"); err != nil || integ != nil {
		t.Fatalf("Expected (nil, nil) for absent network, got (%v, %v)", integ, err)
	}

	if err := engine.CreateIntegration(ctx, "net1", bridgeOptions()); err != nil {
		t.Fatalf("CreateIntegration failed: %v", err)
	}

	integ, err := engine.GetIntegration(ctx, "net1")
	if err != nil {
		t.Fatalf("GetIntegration failed: %v", err)
	}
	if integ.DeviceName != "net10" || integ.Gateway != "10.89.0.1" ||
		integ.Netmask != "255.255.255.0" || integ.ZoneName != "podman_net1" {
		t.Errorf("Unexpected descriptor: %+v", integ)
	}

	has, err := engine.HasIntegration(ctx, "net1")
	if err != nil || !has {
		t.Errorf("Expected HasIntegration true, got (%t, %v)", has, err)
	}
}

func expectMissing(t *testing.T, status *Status, components ...string) {
	t.Helper()
	if len(status.Missing) != len(components) {
		t.Fatalf("Expected missing %v, got %v", components, status.Missing)
	}
	missing := make(map[string]bool)
	for _, m := range status.Missing {
		missing[m] = true
	}
	for _, c := range components {
		if !missing[c] {
			t.Errorf("Expected %s to be missing, got %v", c, status.Missing)
		}
	}
}

// dumpStore renders a stable textual fingerprint of the store contents.
func dumpStore(t *testing.T, store *mocks.MockStore) string {
	t.Helper()
	ctx := context.Background()

	out := ""
	for _, domain := range []string{DomainNetwork, DomainFirewall, DomainDHCP} {
		sections, err := store.Sections(ctx, domain, "")
		if err != nil {
			t.Fatalf("Sections failed: %v", err)
		}
		for _, sec := range sections {
			out += fmt.Sprintf("%s.%s=%s\n", domain, sec.Name, sec.Type)
			for _, option := range []string{"name", "type", "proto", "device", "ipaddr", "netmask", "ip6addr", "bridge_empty", "ipv6", "input", "output", "forward", "network", "src", "dest_port", "target", "notinterface"} {
				if v := sec.Option(option); len(v) > 0 {
					out += fmt.Sprintf("%s.%s.%s=%v\n", domain, sec.Name, option, v)
				}
			}
		}
	}
	return out
}
