package integration

import (
	"context"
	"time"

	"github.com/hostcfg/podnet/internal/config"
	"github.com/hostcfg/podnet/internal/log"
	"github.com/hostcfg/podnet/internal/sysexec"
	"github.com/hostcfg/podnet/internal/uci"
)

// DnsmasqManager maintains the host resolver's device exclusion list.
// Bridge devices carrying the container runtime's own DNS service are
// added to the list so the host resolver does not bind to them.
type DnsmasqManager struct {
	store       uci.Store
	exec        sysexec.Runner
	initScript  string
	settleDelay time.Duration
}

func NewDnsmasqManager(store uci.Store, exec sysexec.Runner, cfg *config.GeneralConfig) *DnsmasqManager {
	return &DnsmasqManager{
		store:       store,
		exec:        exec,
		initScript:  cfg.DnsmasqInitScript,
		settleDelay: time.Duration(cfg.DnsmasqSettleDelayMs) * time.Millisecond,
	}
}

// IsExcluded reports whether the device is on the exclusion list.
// configured is false when no resolver section exists at all, in which
// case exclusion is not applicable.
func (d *DnsmasqManager) IsExcluded(ctx context.Context, device string) (excluded, configured bool, err error) {
	sections, err := d.store.Sections(ctx, DomainDHCP, SectionDnsmasq)
	if err != nil {
		return false, false, err
	}
	if len(sections) == 0 {
		return false, false, nil
	}

	for _, sec := range sections {
		if sec.Option("notinterface").Contains(device) {
			return true, true, nil
		}
	}
	return false, true, nil
}

// SetExcluded stages addition or removal of the device on the exclusion
// list. Removal compacts the list, dropping the option entirely when it
// empties. Reports whether a store change was staged.
func (d *DnsmasqManager) SetExcluded(ctx context.Context, device string, excluded bool) (bool, error) {
	sections, err := d.store.Sections(ctx, DomainDHCP, SectionDnsmasq)
	if err != nil {
		return false, err
	}
	if len(sections) == 0 {
		log.Debugf("No resolver section configured, skipping exclusion for %s", device)
		return false, nil
	}

	if excluded {
		sec := sections[0]
		list := sec.Option("notinterface")
		if list.Contains(device) {
			return false, nil
		}
		if err := d.store.Set(ctx, DomainDHCP, sec.Name, "notinterface", list.With(device)); err != nil {
			return false, err
		}
		log.Debugf("Added %s to resolver exclusion list", device)
		return true, nil
	}

	changed := false
	for _, sec := range sections {
		list := sec.Option("notinterface")
		if !list.Contains(device) {
			continue
		}

		remaining := list.Without(device)
		if len(remaining) == 0 {
			if err := d.store.Unset(ctx, DomainDHCP, sec.Name, "notinterface"); err != nil {
				return changed, err
			}
		} else {
			if err := d.store.Set(ctx, DomainDHCP, sec.Name, "notinterface", remaining); err != nil {
				return changed, err
			}
		}
		changed = true
	}
	if changed {
		log.Debugf("Removed %s from resolver exclusion list", device)
	}
	return changed, nil
}

// Restart restarts the resolver service and waits the settle delay. The
// exclusion is a best-effort optimization, so a restart failure is
// logged and swallowed.
func (d *DnsmasqManager) Restart(ctx context.Context) {
	if _, err := d.exec.Run(ctx, d.initScript, "restart"); err != nil {
		log.Warnf("Resolver restart failed (exclusion list is committed, restart manually): %v", err)
		return
	}

	time.Sleep(d.settleDelay)
	log.Debugf("Resolver restarted")
}
