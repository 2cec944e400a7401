package commands

import (
	"context"
	"flag"
	"fmt"

	"github.com/hostcfg/podnet/internal/config"
	"github.com/hostcfg/podnet/internal/integration"
)

func CreateRemoveCommand() Runner {
	return &RemoveCommand{
		fs: flag.NewFlagSet("remove", flag.ExitOnError),
	}
}

type RemoveCommand struct {
	fs     *flag.FlagSet
	cfg    *config.Config
	engine *integration.Engine

	network string
	driver  string
	device  string
}

func (c *RemoveCommand) Name() string {
	return c.fs.Name()
}

func (c *RemoveCommand) Init(args []string, ctx *AppContext) error {
	c.fs.StringVar(&c.driver, "driver", "", "Network driver: bridge (default), macvlan or ipvlan")
	c.fs.StringVar(&c.device, "device", "", "Host device name (defaults to the interface's configured device)")

	if err := c.fs.Parse(args); err != nil {
		return err
	}
	c.network = c.fs.Arg(0)
	if c.network == "" {
		return fmt.Errorf("usage: remove [options] <network>")
	}

	cfg, err := loadConfigOrDefault(ctx.ConfigPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.engine = buildEngine(cfg)

	return nil
}

func (c *RemoveCommand) Run() error {
	driver, err := integration.ParseDriver(c.driver)
	if err != nil {
		return err
	}

	if err := c.engine.RemoveIntegration(context.Background(), c.network, c.device, driver); err != nil {
		return err
	}

	fmt.Printf("Integration for network %q removed\n", c.network)
	return nil
}
