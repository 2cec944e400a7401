package commands

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hostcfg/podnet/internal/api"
	"github.com/hostcfg/podnet/internal/config"
	"github.com/hostcfg/podnet/internal/integration"
	"github.com/hostcfg/podnet/internal/log"
)

func CreateServeCommand() Runner {
	return &ServeCommand{
		fs: flag.NewFlagSet("serve", flag.ExitOnError),
	}
}

// ServeCommand runs the HTTP API server.
type ServeCommand struct {
	fs     *flag.FlagSet
	cfg    *config.Config
	engine *integration.Engine

	configPath string
	bindAddr   string
}

func (c *ServeCommand) Name() string {
	return c.fs.Name()
}

func (c *ServeCommand) Init(args []string, ctx *AppContext) error {
	c.fs.StringVar(&c.bindAddr, "listen", "", "Address to bind the HTTP server (default: api.listen from the configuration file)")

	if err := c.fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfigOrDefault(ctx.ConfigPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.configPath = ctx.ConfigPath
	c.engine = buildEngine(cfg)

	if c.bindAddr == "" {
		c.bindAddr = cfg.API.Listen
	}

	return nil
}

func (c *ServeCommand) Run() error {
	log.Infof("Starting podnet API server on %s", c.bindAddr)
	log.Infof("Access restricted to private subnets only:")
	log.Infof("  IPv4: 10.0.0.0/8, 172.16.0.0/12, 192.168.0.0/16, 127.0.0.0/8")
	log.Infof("  IPv6: fc00::/7, fe80::/10, ::1/128")

	server := api.NewServer(c.bindAddr, c.configPath, c.engine)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	select {
	case err := <-serverErrors:
		return err

	case sig := <-shutdown:
		log.Infof("Received signal %v, shutting down server...", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Stop(ctx); err != nil {
			return err
		}
		log.Infof("Server stopped gracefully")
	}

	return nil
}
