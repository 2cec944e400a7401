package integration

import (
	"context"
	"fmt"
	"strings"

	"github.com/hostcfg/podnet/internal/errors"
	"github.com/hostcfg/podnet/internal/log"
	"github.com/hostcfg/podnet/internal/uci"
)

// ZoneManager maintains firewall zones and their per-zone DNS-allow
// rules. Zones carrying the reserved prefix are owned by the engine and
// deleted automatically once their last member network is removed; all
// other zones are left alone apart from membership edits.
type ZoneManager struct {
	store          uci.Store
	naming         *Namer
	reservedPrefix string
}

func NewZoneManager(store uci.Store, naming *Namer, reservedPrefix string) *ZoneManager {
	return &ZoneManager{
		store:          store,
		naming:         naming,
		reservedPrefix: reservedPrefix,
	}
}

// ResolveZoneName maps the requested zone to the effective one. The
// ZoneCreateNew sentinel derives a fresh reserved zone from the network
// name; anything else names an existing zone to join.
func (z *ZoneManager) ResolveZoneName(network, requested string) string {
	if requested == ZoneCreateNew {
		return z.naming.ZoneName(network)
	}
	return requested
}

// EnsureMembership stages the network into the zone's member list,
// creating the zone with conservative defaults when it does not exist.
// Reports whether a store change was staged.
func (z *ZoneManager) EnsureMembership(ctx context.Context, zone, network string) (bool, error) {
	sec, err := z.findZone(ctx, zone)
	if err != nil {
		return false, err
	}

	if sec == nil {
		ref, err := z.store.Add(ctx, DomainFirewall, SectionZone)
		if err != nil {
			return false, err
		}
		defaults := map[string]uci.Value{
			"name":    uci.Scalar(zone),
			"input":   uci.Scalar("DROP"),
			"output":  uci.Scalar("ACCEPT"),
			"forward": uci.Scalar("REJECT"),
			"network": uci.Scalar(network),
		}
		for option, value := range defaults {
			if err := z.store.Set(ctx, DomainFirewall, ref, option, value); err != nil {
				return false, err
			}
		}
		log.Debugf("Created firewall zone %s with member %s", zone, network)
		return true, nil
	}

	members := sec.Option("network")
	if members.Contains(network) {
		return false, nil
	}
	if err := z.store.Set(ctx, DomainFirewall, sec.Name, "network", members.With(network)); err != nil {
		return false, err
	}
	log.Debugf("Added %s to firewall zone %s", network, zone)
	return true, nil
}

// EnsureDNSRule stages the zone's DNS-allow rule if it is not already
// present. Reports whether a store change was staged.
func (z *ZoneManager) EnsureDNSRule(ctx context.Context, zone string) (bool, error) {
	ruleName := z.naming.DNSRuleName(zone)

	existing, err := z.findRule(ctx, ruleName)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	ref, err := z.store.Add(ctx, DomainFirewall, SectionRule)
	if err != nil {
		return false, err
	}
	options := map[string]uci.Value{
		"name":      uci.Scalar(ruleName),
		"src":       uci.Scalar(zone),
		"proto":     {"tcp", "udp"},
		"dest_port": uci.Scalar("53"),
		"target":    uci.Scalar("ACCEPT"),
	}
	for option, value := range options {
		if err := z.store.Set(ctx, DomainFirewall, ref, option, value); err != nil {
			return false, err
		}
	}
	log.Debugf("Created DNS-allow rule %s", ruleName)
	return true, nil
}

// RemoveMembership stages removal of the network from every zone listing
// it. A reserved-prefix zone whose member list empties is deleted along
// with its DNS-allow rule; any other zone stays in place.
func (z *ZoneManager) RemoveMembership(ctx context.Context, network string) error {
	zones, err := z.store.Sections(ctx, DomainFirewall, SectionZone)
	if err != nil {
		return err
	}

	for _, zone := range zones {
		members := zone.Option("network")
		if !members.Contains(network) {
			continue
		}

		zoneName := zone.Option("name").First()
		remaining := members.Without(network)

		if len(remaining) == 0 && strings.HasPrefix(zoneName, z.reservedPrefix) {
			if err := z.store.Remove(ctx, DomainFirewall, zone.Name); err != nil {
				return err
			}
			if err := z.removeDNSRule(ctx, zoneName); err != nil {
				return err
			}
			log.Debugf("Deleted empty reserved zone %s", zoneName)
			continue
		}

		if len(remaining) == 0 {
			// A user-defined zone is never deleted, even when emptied.
			if err := z.store.Unset(ctx, DomainFirewall, zone.Name, "network"); err != nil {
				return err
			}
		} else {
			if err := z.store.Set(ctx, DomainFirewall, zone.Name, "network", remaining); err != nil {
				return err
			}
		}
		log.Debugf("Removed %s from firewall zone %s", network, zoneName)
	}

	return nil
}

// MembershipZone returns the name of the zone listing the network, or ""
// when no zone does.
func (z *ZoneManager) MembershipZone(ctx context.Context, network string) (string, error) {
	zones, err := z.store.Sections(ctx, DomainFirewall, SectionZone)
	if err != nil {
		return "", err
	}
	for _, zone := range zones {
		if zone.Option("network").Contains(network) {
			return zone.Option("name").First(), nil
		}
	}
	return "", nil
}

// ListReservedZones lists zone names carrying the reserved prefix.
func (z *ZoneManager) ListReservedZones(ctx context.Context) ([]string, error) {
	zones, err := z.store.Sections(ctx, DomainFirewall, SectionZone)
	if err != nil {
		return nil, errors.NewStoreError("failed to list firewall zones", err)
	}

	var names []string
	for _, zone := range zones {
		if name := zone.Option("name").First(); strings.HasPrefix(name, z.reservedPrefix) {
			names = append(names, name)
		}
	}
	return names, nil
}

func (z *ZoneManager) findZone(ctx context.Context, name string) (*uci.Section, error) {
	zones, err := z.store.Sections(ctx, DomainFirewall, SectionZone)
	if err != nil {
		return nil, err
	}
	for i := range zones {
		if zones[i].Option("name").First() == name {
			return &zones[i], nil
		}
	}
	return nil, nil
}

func (z *ZoneManager) findRule(ctx context.Context, name string) (*uci.Section, error) {
	rules, err := z.store.Sections(ctx, DomainFirewall, SectionRule)
	if err != nil {
		return nil, err
	}
	for i := range rules {
		if rules[i].Option("name").First() == name {
			return &rules[i], nil
		}
	}
	return nil, nil
}

func (z *ZoneManager) removeDNSRule(ctx context.Context, zone string) error {
	rule, err := z.findRule(ctx, z.naming.DNSRuleName(zone))
	if err != nil {
		return err
	}
	if rule == nil {
		return nil
	}
	if err := z.store.Remove(ctx, DomainFirewall, rule.Name); err != nil {
		return fmt.Errorf("failed to remove DNS rule for zone %s: %w", zone, err)
	}
	return nil
}
