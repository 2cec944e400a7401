package commands

import (
	"context"
	"flag"
	"fmt"

	"github.com/hostcfg/podnet/internal/config"
	"github.com/hostcfg/podnet/internal/integration"
	"github.com/hostcfg/podnet/internal/log"
)

func CreateCreateCommand() Runner {
	return &CreateCommand{
		fs: flag.NewFlagSet("create", flag.ExitOnError),
	}
}

type CreateCommand struct {
	fs     *flag.FlagSet
	cfg    *config.Config
	engine *integration.Engine

	network  string
	opts     integration.CreateOptions
	driver   string
	autoIPv6 bool
}

func (c *CreateCommand) Name() string {
	return c.fs.Name()
}

func (c *CreateCommand) Init(args []string, ctx *AppContext) error {
	c.fs.StringVar(&c.driver, "driver", "", "Network driver: bridge (default), macvlan or ipvlan")
	c.fs.StringVar(&c.opts.DeviceName, "device", "", "Host device name (bridge name, or parent interface for macvlan/ipvlan)")
	c.fs.StringVar(&c.opts.Subnet, "subnet", "", "IPv4 subnet in CIDR notation (e.g. 10.89.0.0/24)")
	c.fs.StringVar(&c.opts.Gateway, "gateway", "", "IPv4 gateway address (e.g. 10.89.0.1)")
	c.fs.StringVar(&c.opts.IPv6Subnet, "ipv6-subnet", "", "Optional IPv6 subnet in CIDR notation")
	c.fs.StringVar(&c.opts.IPv6Gateway, "ipv6-gateway", "", "IPv6 gateway address (required with -ipv6-subnet)")
	c.fs.BoolVar(&c.autoIPv6, "auto-ipv6", false, "Derive the IPv6 subnet from the configured ULA prefix")
	c.fs.StringVar(&c.opts.ZoneName, "zone", integration.ZoneCreateNew, "Firewall zone to join (default: create a dedicated zone)")

	if err := c.fs.Parse(args); err != nil {
		return err
	}
	c.network = c.fs.Arg(0)
	if c.network == "" {
		return fmt.Errorf("usage: create [options] <network>")
	}

	cfg, err := loadConfigOrDefault(ctx.ConfigPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.engine = buildEngine(cfg)

	return nil
}

func (c *CreateCommand) Run() error {
	ctx := context.Background()

	driver, err := integration.ParseDriver(c.driver)
	if err != nil {
		return err
	}
	c.opts.Driver = driver

	if c.autoIPv6 {
		if c.opts.IPv6Subnet != "" {
			return fmt.Errorf("-auto-ipv6 and -ipv6-subnet are mutually exclusive")
		}
		if c.cfg.General.ULAPrefix == "" {
			return fmt.Errorf("-auto-ipv6 requires ula_prefix in the configuration file")
		}
		subnet, gateway, err := integration.DeriveULA(c.opts.Subnet, c.cfg.General.ULAPrefix)
		if err != nil {
			return fmt.Errorf("failed to derive IPv6 subnet: %v", err)
		}
		c.opts.IPv6Subnet = subnet
		c.opts.IPv6Gateway = gateway
		log.Infof("Derived IPv6 subnet %s (gateway %s)", subnet, gateway)
	}

	if err := c.engine.CreateIntegration(ctx, c.network, c.opts); err != nil {
		return err
	}

	fmt.Printf("Integration for network %q created\n", c.network)
	return nil
}
