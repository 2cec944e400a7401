package integration

import (
	"fmt"
	"net"
	"strings"
)

// DeriveULA maps an IPv4 subnet and a ULA prefix to a deterministic IPv6
// subnet and gateway. The third and fourth octets of the IPv4 network
// address form a 16-bit subnet identifier which is spliced after the
// first three hextets of the prefix:
//
//	DeriveULA("10.20.3.0/24", "fd00:abcd:ef01::/48")
//	  -> "fd00:abcd:ef01:300::/64", "fd00:abcd:ef01:300::1"
//
// IPv4 subnets differing in their third or fourth octet never collide.
// The prefix is assumed to be /48-class; the caller validates inputs.
func DeriveULA(ipv4CIDR, ulaPrefixCIDR string) (subnet, gateway string, err error) {
	_, ipnet, err := net.ParseCIDR(ipv4CIDR)
	if err != nil {
		return "", "", fmt.Errorf("invalid IPv4 subnet %q: %v", ipv4CIDR, err)
	}
	v4 := ipnet.IP.To4()
	if v4 == nil {
		return "", "", fmt.Errorf("not an IPv4 subnet: %s", ipv4CIDR)
	}

	prefix := strings.SplitN(ulaPrefixCIDR, "/", 2)[0]
	hextets := strings.Split(strings.TrimSuffix(prefix, "::"), ":")
	if len(hextets) < 3 {
		return "", "", fmt.Errorf("ULA prefix too short: %s", ulaPrefixCIDR)
	}
	base := strings.Join(hextets[:3], ":")

	subnetID := uint16(v4[2])<<8 | uint16(v4[3])

	subnet = fmt.Sprintf("%s:%x::/64", base, subnetID)
	gateway = fmt.Sprintf("%s:%x::1", base, subnetID)
	return subnet, gateway, nil
}
