package commands

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/hostcfg/podnet/internal/config"
	"github.com/hostcfg/podnet/internal/integration"
)

func CreateStatusCommand() Runner {
	return &StatusCommand{
		fs: flag.NewFlagSet("status", flag.ExitOnError),
	}
}

type StatusCommand struct {
	fs     *flag.FlagSet
	cfg    *config.Config
	engine *integration.Engine

	network string
	driver  string
}

func (c *StatusCommand) Name() string {
	return c.fs.Name()
}

func (c *StatusCommand) Init(args []string, ctx *AppContext) error {
	c.fs.StringVar(&c.driver, "driver", "", "Network driver: bridge (default), macvlan or ipvlan")

	if err := c.fs.Parse(args); err != nil {
		return err
	}
	c.network = c.fs.Arg(0)
	if c.network == "" {
		return fmt.Errorf("usage: status [options] <network>")
	}

	cfg, err := loadConfigOrDefault(ctx.ConfigPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.engine = buildEngine(cfg)

	return nil
}

func (c *StatusCommand) Run() error {
	ctx := context.Background()

	driver, err := integration.ParseDriver(c.driver)
	if err != nil {
		return err
	}

	status := c.engine.IsIntegrationComplete(ctx, c.network, driver)

	if status.Complete {
		fmt.Printf("Integration for network %q is complete\n", c.network)
	} else {
		fmt.Printf("Integration for network %q is incomplete\n", c.network)
		fmt.Printf("  Missing: %s\n", strings.Join(status.Missing, ", "))
	}
	if device := status.Details["device"]; device != "" {
		fmt.Printf("  Device: %s\n", device)
	}
	if zone := status.Details["zone"]; zone != "" {
		fmt.Printf("  Zone:   %s\n", zone)
	}

	if integ, err := c.engine.GetIntegration(ctx, c.network); err == nil && integ != nil {
		fmt.Printf("  Gateway: %s/%s\n", integ.Gateway, integ.Netmask)
		if integ.IPv6Address != "" {
			fmt.Printf("  IPv6:    %s\n", integ.IPv6Address)
		}
	}

	return nil
}
