package integration

import (
	"strings"

	"github.com/valyala/fasttemplate"

	"github.com/hostcfg/podnet/internal/config"
)

// Namer renders the configured naming templates for derived resources.
type Namer struct {
	deviceTemplate  string
	zoneTemplate    string
	dnsRuleTemplate string
}

func NewNamer(cfg *config.NamingConfig) *Namer {
	return &Namer{
		deviceTemplate:  cfg.DeviceTemplate,
		zoneTemplate:    cfg.ZoneTemplate,
		dnsRuleTemplate: cfg.DNSRuleTemplate,
	}
}

// DeviceName resolves the host-side device name for a network: the
// declared name when given, otherwise the rendered default.
func (n *Namer) DeviceName(network, declared string) string {
	if declared != "" {
		return declared
	}
	return render(n.deviceTemplate, "network", network)
}

// ZoneName renders the derived zone name for a network.
func (n *Namer) ZoneName(network string) string {
	return render(n.zoneTemplate, "network", network)
}

// DNSRuleName renders the deterministic DNS-allow rule name for a zone.
// The rule is located by this name, there is no side index.
func (n *Namer) DNSRuleName(zone string) string {
	return render(n.dnsRuleTemplate, "zone", zone)
}

func render(template, variable, value string) string {
	if !strings.Contains(template, "{{") {
		return template
	}

	t := fasttemplate.New(template, "{{", "}}")
	return t.ExecuteString(map[string]interface{}{
		variable: value,
	})
}
