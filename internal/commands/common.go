package commands

import (
	"fmt"
	"os"

	"github.com/hostcfg/podnet/internal/config"
	"github.com/hostcfg/podnet/internal/integration"
	"github.com/hostcfg/podnet/internal/netdev"
	"github.com/hostcfg/podnet/internal/sysexec"
	"github.com/hostcfg/podnet/internal/uci"
)

type Runner interface {
	Init(args []string, globalArgs *AppContext) error
	Run() error
	Name() string
}

type AppContext struct {
	ConfigPath string
	Verbose    bool
}

// loadConfigOrDefault loads and validates the configuration file. A
// missing file is not an error: the tool is useful with defaults alone.
func loadConfigOrDefault(configPath string) (*config.Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config.Default(), nil
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %v", err)
	}

	if err := cfg.ValidateConfig(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %v", err)
	}

	return cfg, nil
}

// buildEngine wires the production engine: uci shell store, netlink
// device provider and a real command runner.
func buildEngine(cfg *config.Config) *integration.Engine {
	exec := sysexec.NewExecRunner()
	return integration.NewEngine(uci.NewShellStore(exec), netdev.NewNetlinkProvider(), exec, cfg)
}
