package integration

// Configuration store domains and section types.
const (
	DomainNetwork  = "network"
	DomainFirewall = "firewall"
	DomainDHCP     = "dhcp"

	SectionInterface = "interface"
	SectionDevice    = "device"
	SectionZone      = "zone"
	SectionRule      = "rule"
	SectionDnsmasq   = "dnsmasq"
)

// ZoneCreateNew is the sentinel zone name signalling that a fresh
// reserved zone should be derived from the network name.
const ZoneCreateNew = "_create_new_"

// Component names reported by the status inspector.
const (
	ComponentInterface = "interface"
	ComponentDevice    = "device"
	ComponentDnsmasq   = "dnsmasq"

	// ComponentUnknown is reported alone when the store itself could not
	// be read and no statement about the components can be made.
	ComponentUnknown = "unknown"
)

// CreateOptions describes the integration to build for a network.
type CreateOptions struct {
	// Driver selects the network driver (bridge when empty).
	Driver Driver `toml:"driver" json:"driver" validate:"omitempty,oneof=bridge macvlan ipvlan"`
	// DeviceName is the declared bridge name (bridge driver) or parent
	// interface (macvlan/ipvlan). Empty derives the default bridge name;
	// macvlan and ipvlan require an explicit parent.
	DeviceName string `toml:"device_name" json:"device_name"`
	// Subnet is the network's IPv4 subnet in CIDR notation.
	Subnet string `toml:"subnet" json:"subnet" validate:"required,cidrv4"`
	// Gateway is the network's IPv4 gateway address.
	Gateway string `toml:"gateway" json:"gateway" validate:"required,ipv4"`
	// IPv6Subnet is the optional IPv6 subnet in CIDR notation.
	IPv6Subnet string `toml:"ipv6_subnet" json:"ipv6_subnet" validate:"omitempty,cidr"`
	// IPv6Gateway is the IPv6 gateway, required when IPv6Subnet is set.
	IPv6Gateway string `toml:"ipv6_gateway" json:"ipv6_gateway" validate:"required_with=IPv6Subnet,omitempty,ipv6"`
	// ZoneName is the firewall zone to join, or ZoneCreateNew.
	ZoneName string `toml:"zone_name" json:"zone_name" validate:"required"`
}

// Status is the status inspector's report for one network.
type Status struct {
	Complete bool              `json:"complete"`
	Missing  []string          `json:"missing,omitempty"`
	Details  map[string]string `json:"details,omitempty"`
}

// RepairResult reports what the repairer actually touched.
type RepairResult struct {
	AlreadyComplete bool     `json:"already_complete"`
	Repaired        []string `json:"repaired,omitempty"`
}

// Integration is the descriptor derived from the store for one network.
type Integration struct {
	NetworkName string `json:"network_name"`
	DeviceName  string `json:"device_name"`
	Protocol    string `json:"protocol"`
	Gateway     string `json:"gateway"`
	Netmask     string `json:"netmask"`
	IPv6Address string `json:"ipv6_address,omitempty"`
	ZoneName    string `json:"zone_name,omitempty"`
}
