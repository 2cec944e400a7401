package config

type Config struct {
	// General holds general configuration.
	General *GeneralConfig `toml:"general"`
	// Naming holds the templates used to derive default resource names.
	Naming *NamingConfig `toml:"naming"`
	// API holds the HTTP API configuration.
	API *APIConfig `toml:"api"`

	_absConfigFilePath string
}

type GeneralConfig struct {
	// ApplyTimeoutSeconds is the rollback timeout passed to the config store apply (default: 10).
	ApplyTimeoutSeconds int `toml:"apply_timeout_seconds" json:"apply_timeout_seconds" validate:"gte=1,lte=600"`
	// ReservedZonePrefix is the firewall zone name prefix that marks zones as managed (default: "podman").
	ReservedZonePrefix string `toml:"reserved_zone_prefix" json:"reserved_zone_prefix" validate:"required,section_name"`
	// ULAPrefix is the IPv6 ULA prefix used to derive per-network IPv6 subnets (e.g. "fd00:abcd:ef01::/48"). Empty disables IPv6 derivation.
	ULAPrefix string `toml:"ula_prefix" json:"ula_prefix" validate:"cidr6_or_empty"`
	// DnsmasqInitScript is the init script used to restart the host DNS resolver (default: "/etc/init.d/dnsmasq").
	DnsmasqInitScript string `toml:"dnsmasq_init_script" json:"dnsmasq_init_script" validate:"required"`
	// DnsmasqSettleDelayMs is the delay in milliseconds after a resolver restart before proceeding (default: 1000).
	DnsmasqSettleDelayMs int `toml:"dnsmasq_settle_delay_ms" json:"dnsmasq_settle_delay_ms" validate:"gte=0,lte=60000"`
}

type NamingConfig struct {
	// DeviceTemplate is the default bridge device name template (default: "{{network}}0").
	DeviceTemplate string `toml:"device_template" json:"device_template" validate:"required,contains={{network}}"`
	// ZoneTemplate is the default firewall zone name template (default: "podman_{{network}}").
	ZoneTemplate string `toml:"zone_template" json:"zone_template" validate:"required,contains={{network}}"`
	// DNSRuleTemplate is the DNS-allow firewall rule name template (default: "Allow-{{zone}}-DNS").
	DNSRuleTemplate string `toml:"dns_rule_template" json:"dns_rule_template" validate:"required,contains={{zone}}"`
}

type APIConfig struct {
	// Listen is the HTTP API bind address (default: "127.0.0.1:8991").
	Listen string `toml:"listen" json:"listen" validate:"hostport_or_empty"`
}
