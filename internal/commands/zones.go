package commands

import (
	"context"
	"flag"
	"fmt"

	"github.com/hostcfg/podnet/internal/config"
	"github.com/hostcfg/podnet/internal/integration"
)

func CreateZonesCommand() Runner {
	return &ZonesCommand{
		fs: flag.NewFlagSet("zones", flag.ExitOnError),
	}
}

type ZonesCommand struct {
	fs     *flag.FlagSet
	cfg    *config.Config
	engine *integration.Engine
}

func (c *ZonesCommand) Name() string {
	return c.fs.Name()
}

func (c *ZonesCommand) Init(args []string, ctx *AppContext) error {
	if err := c.fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfigOrDefault(ctx.ConfigPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.engine = buildEngine(cfg)

	return nil
}

func (c *ZonesCommand) Run() error {
	zones, err := c.engine.ListReservedZones(context.Background())
	if err != nil {
		return err
	}

	if len(zones) == 0 {
		fmt.Printf("No zones with the %q prefix found\n", c.cfg.General.ReservedZonePrefix)
		return nil
	}
	for _, zone := range zones {
		fmt.Println(zone)
	}
	return nil
}
