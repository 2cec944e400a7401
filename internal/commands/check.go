package commands

import (
	"context"
	"flag"
	"fmt"

	"github.com/hostcfg/podnet/internal/config"
	"github.com/hostcfg/podnet/internal/dnscheck"
	"github.com/hostcfg/podnet/internal/integration"
)

func CreateCheckCommand() Runner {
	return &CheckCommand{
		fs: flag.NewFlagSet("check", flag.ExitOnError),
	}
}

// CheckCommand probes the network gateway to verify the container DNS
// resolver is reachable from the host side.
type CheckCommand struct {
	fs     *flag.FlagSet
	cfg    *config.Config
	engine *integration.Engine

	network string
	gateway string
}

func (c *CheckCommand) Name() string {
	return c.fs.Name()
}

func (c *CheckCommand) Init(args []string, ctx *AppContext) error {
	c.fs.StringVar(&c.gateway, "gateway", "", "Gateway address to probe (default: read from the network's interface section)")

	if err := c.fs.Parse(args); err != nil {
		return err
	}
	c.network = c.fs.Arg(0)
	if c.network == "" && c.gateway == "" {
		return fmt.Errorf("usage: check [-gateway <ip>] <network>")
	}

	cfg, err := loadConfigOrDefault(ctx.ConfigPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.engine = buildEngine(cfg)

	return nil
}

func (c *CheckCommand) Run() error {
	ctx := context.Background()

	gateway := c.gateway
	if gateway == "" {
		integ, err := c.engine.GetIntegration(ctx, c.network)
		if err != nil {
			return err
		}
		if integ == nil || integ.Gateway == "" {
			return fmt.Errorf("no integration found for network %q", c.network)
		}
		gateway = integ.Gateway
	}

	fmt.Printf("Probing DNS resolver at %s:53 (%s)...\n", gateway, dnscheck.ProbeName)
	result := dnscheck.Probe(ctx, gateway)

	if !result.Responding {
		return fmt.Errorf("resolver at %s is not responding: %s", gateway, result.Error)
	}
	fmt.Printf("Resolver is responding (%d answers, %v)\n", result.Answers, result.Latency)
	return nil
}
