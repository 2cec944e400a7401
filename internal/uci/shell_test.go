package uci

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

// fakeRunner records commands and serves canned responses keyed by the
// joined command line.
type fakeRunner struct {
	Responses map[string]string
	Errors    map[string]error
	Calls     []string
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		Responses: make(map[string]string),
		Errors:    make(map[string]error),
	}
}

func (r *fakeRunner) Run(_ context.Context, name string, args ...string) (string, error) {
	cmdline := name + " " + strings.Join(args, " ")
	r.Calls = append(r.Calls, cmdline)
	return r.Responses[cmdline], r.Errors[cmdline]
}

const networkShow = `network.lan=interface
network.lan.proto='static'
network.lan.device='br-lan'
network.webnet=interface
network.webnet.proto='static'
network.webnet.device='webnet0'
network.@device[0]=device
network.@device[0].name='br-lan'
network.@device[0].type='bridge'
network.@device[0].ports='lan1' 'lan2'
network.@device[1]=device
network.@device[1].name='webnet0'
network.@device[1].type='bridge'`

func TestParseShow_Sections(t *testing.T) {
	sections, err := parseShow("network", networkShow)
	if err != nil {
		t.Fatalf("parseShow failed: %v", err)
	}

	if len(sections) != 4 {
		t.Fatalf("Expected 4 sections, got %d", len(sections))
	}

	if sections[0].Name != "lan" || sections[0].Type != "interface" || sections[0].Anonymous {
		t.Errorf("Unexpected first section: %+v", sections[0])
	}
	if sections[2].Name != "@device[0]" || !sections[2].Anonymous {
		t.Errorf("Expected anonymous device section, got: %+v", sections[2])
	}
	if got := sections[2].Option("ports"); len(got) != 2 || got[0] != "lan1" || got[1] != "lan2" {
		t.Errorf("Expected ports list ['lan1' 'lan2'], got %v", got)
	}
	if got := sections[3].Option("name").First(); got != "webnet0" {
		t.Errorf("Expected device name webnet0, got %q", got)
	}
}

func TestParseShow_EscapedQuote(t *testing.T) {
	sections, err := parseShow("dhcp", `dhcp.cfg01=dnsmasq
dhcp.cfg01.domain='o'\''brien'`)
	if err != nil {
		t.Fatalf("parseShow failed: %v", err)
	}
	if got := sections[0].Option("domain").First(); got != "o'brien" {
		t.Errorf("Expected o'brien, got %q", got)
	}
}

func TestParseShow_OptionBeforeSection(t *testing.T) {
	_, err := parseShow("network", "network.lan.proto='static'")
	if err == nil {
		t.Error("Expected error for option before section declaration")
	}
}

func TestParseShow_MalformedLine(t *testing.T) {
	_, err := parseShow("network", "network.lan")
	if err == nil {
		t.Error("Expected error for line without assignment")
	}
}

func TestShellStore_SectionsFiltersByType(t *testing.T) {
	runner := newFakeRunner()
	runner.Responses["uci -q show network"] = networkShow
	store := NewShellStore(runner)

	devices, err := store.Sections(context.Background(), "network", "device")
	if err != nil {
		t.Fatalf("Sections failed: %v", err)
	}
	if len(devices) != 2 {
		t.Fatalf("Expected 2 device sections, got %d", len(devices))
	}
	for _, d := range devices {
		if d.Type != "device" {
			t.Errorf("Expected only device sections, got %s", d.Type)
		}
	}
}

func TestShellStore_SectionMissing(t *testing.T) {
	runner := newFakeRunner()
	runner.Responses["uci -q show network"] = networkShow
	store := NewShellStore(runner)

	sec, err := store.Section(context.Background(), "network", "nosuch")
	if err != nil {
		t.Fatalf("Section failed: %v", err)
	}
	if sec != nil {
		t.Errorf("Expected nil for missing section, got %+v", sec)
	}
}

func TestShellStore_MissingDomainReadsEmpty(t *testing.T) {
	runner := newFakeRunner()
	runner.Errors["uci -q show nosuch"] = fmt.Errorf("exit status 1")
	store := NewShellStore(runner)

	sections, err := store.Sections(context.Background(), "nosuch", "")
	if err != nil {
		t.Fatalf("Expected missing domain to read as empty, got: %v", err)
	}
	if len(sections) != 0 {
		t.Errorf("Expected no sections, got %d", len(sections))
	}
}

func TestShellStore_AddReturnsReference(t *testing.T) {
	runner := newFakeRunner()
	runner.Responses["uci add firewall zone"] = "cfg0f2d81\n"
	store := NewShellStore(runner)

	ref, err := store.Add(context.Background(), "firewall", "zone")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if ref != "cfg0f2d81" {
		t.Errorf("Expected trimmed reference cfg0f2d81, got %q", ref)
	}
}

func TestShellStore_SetScalarAndList(t *testing.T) {
	runner := newFakeRunner()
	store := NewShellStore(runner)
	ctx := context.Background()

	if err := store.Set(ctx, "network", "webnet", "proto", Scalar("static")); err != nil {
		t.Fatalf("Set scalar failed: %v", err)
	}
	if err := store.Set(ctx, "firewall", "@zone[0]", "network", Value{"webnet", "othernet"}); err != nil {
		t.Fatalf("Set list failed: %v", err)
	}

	want := []string{
		"uci set network.webnet.proto=static",
		"uci -q delete firewall.@zone[0].network",
		"uci add_list firewall.@zone[0].network=webnet",
		"uci add_list firewall.@zone[0].network=othernet",
	}
	if len(runner.Calls) != len(want) {
		t.Fatalf("Expected %d calls, got %d: %v", len(want), len(runner.Calls), runner.Calls)
	}
	for i, w := range want {
		if runner.Calls[i] != w {
			t.Errorf("Call %d: expected %q, got %q", i, w, runner.Calls[i])
		}
	}
}

func TestShellStore_RemoveMissingIsNoError(t *testing.T) {
	runner := newFakeRunner()
	runner.Errors["uci -q delete network.nosuch"] = fmt.Errorf("exit status 1")
	store := NewShellStore(runner)

	if err := store.Remove(context.Background(), "network", "nosuch"); err != nil {
		t.Errorf("Expected removing a missing section to succeed, got: %v", err)
	}
}

func TestShellStore_ApplyConfirms(t *testing.T) {
	runner := newFakeRunner()
	store := NewShellStore(runner)

	if err := store.Apply(context.Background(), 10); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if len(runner.Calls) != 2 {
		t.Fatalf("Expected apply and confirm calls, got %v", runner.Calls)
	}
	if !strings.Contains(runner.Calls[0], `"timeout": 10`) {
		t.Errorf("Expected rollback timeout in apply call, got %q", runner.Calls[0])
	}
	if runner.Calls[1] != "ubus call uci confirm" {
		t.Errorf("Expected confirm call, got %q", runner.Calls[1])
	}
}

func TestValue_Helpers(t *testing.T) {
	v := Value{"a", "b"}

	if v.First() != "a" {
		t.Errorf("Expected first element a, got %q", v.First())
	}
	if (Value{}).First() != "" {
		t.Error("Expected empty value to read as empty string")
	}
	if !v.Contains("b") || v.Contains("c") {
		t.Error("Contains misbehaved")
	}
	if got := v.Without("a"); len(got) != 1 || got[0] != "b" {
		t.Errorf("Without: got %v", got)
	}
	if got := v.With("c"); len(got) != 3 {
		t.Errorf("With: got %v", got)
	}
	if got := v.With("b"); len(got) != 2 {
		t.Errorf("With existing element should not duplicate: %v", got)
	}
}
