package commands

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/hostcfg/podnet/internal/config"
	"github.com/hostcfg/podnet/internal/integration"
)

func CreateRepairCommand() Runner {
	return &RepairCommand{
		fs: flag.NewFlagSet("repair", flag.ExitOnError),
	}
}

type RepairCommand struct {
	fs     *flag.FlagSet
	cfg    *config.Config
	engine *integration.Engine

	network string
	opts    integration.CreateOptions
	driver  string
}

func (c *RepairCommand) Name() string {
	return c.fs.Name()
}

func (c *RepairCommand) Init(args []string, ctx *AppContext) error {
	c.fs.StringVar(&c.driver, "driver", "", "Network driver: bridge (default), macvlan or ipvlan")
	c.fs.StringVar(&c.opts.DeviceName, "device", "", "Host device name (bridge name, or parent interface for macvlan/ipvlan)")
	c.fs.StringVar(&c.opts.Subnet, "subnet", "", "IPv4 subnet in CIDR notation (e.g. 10.89.0.0/24)")
	c.fs.StringVar(&c.opts.Gateway, "gateway", "", "IPv4 gateway address (e.g. 10.89.0.1)")
	c.fs.StringVar(&c.opts.IPv6Subnet, "ipv6-subnet", "", "Optional IPv6 subnet in CIDR notation")
	c.fs.StringVar(&c.opts.IPv6Gateway, "ipv6-gateway", "", "IPv6 gateway address (required with -ipv6-subnet)")

	if err := c.fs.Parse(args); err != nil {
		return err
	}
	c.network = c.fs.Arg(0)
	if c.network == "" {
		return fmt.Errorf("usage: repair [options] <network>")
	}

	cfg, err := loadConfigOrDefault(ctx.ConfigPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.engine = buildEngine(cfg)

	return nil
}

func (c *RepairCommand) Run() error {
	driver, err := integration.ParseDriver(c.driver)
	if err != nil {
		return err
	}
	c.opts.Driver = driver

	result, err := c.engine.RepairIntegration(context.Background(), c.network, c.opts)
	if err != nil {
		return err
	}

	if result.AlreadyComplete {
		fmt.Printf("Integration for network %q is already complete, nothing to repair\n", c.network)
	} else {
		fmt.Printf("Repaired integration for network %q: %s\n", c.network, strings.Join(result.Repaired, ", "))
	}
	return nil
}
