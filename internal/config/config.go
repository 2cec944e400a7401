package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/hostcfg/podnet/internal/log"
)

const (
	DefaultApplyTimeoutSeconds  = 10
	DefaultReservedZonePrefix   = "podman"
	DefaultDnsmasqInitScript    = "/etc/init.d/dnsmasq"
	DefaultDnsmasqSettleDelayMs = 1000
	DefaultDeviceTemplate       = "{{network}}0"
	DefaultZoneTemplate         = "podman_{{network}}"
	DefaultDNSRuleTemplate      = "Allow-{{zone}}-DNS"
	DefaultAPIListen            = "127.0.0.1:8991"
)

// Default returns a configuration populated with defaults only. It is
// used when no configuration file is present on the host.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func LoadConfig(configPath string) (*Config, error) {
	configFile := filepath.Clean(configPath)

	if !filepath.IsAbs(configFile) {
		if path, err := filepath.Abs(configFile); err != nil {
			return nil, fmt.Errorf("failed to get absolute path: %v", err)
		} else {
			configFile = path
		}
	}

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		log.Errorf("Configuration file not found: %s", configFile)
		return nil, fmt.Errorf("configuration file not found: %s", configFile)
	}

	content, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}

	var config Config
	if err := toml.Unmarshal(content, &config); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			log.Errorf(derr.String())
			row, col := derr.Position()
			log.Errorf("Error at line %d, column %d", row, col)
			return nil, fmt.Errorf("failed to parse config file")
		}
		return nil, fmt.Errorf("failed to parse config file: %v", err)
	}

	config._absConfigFilePath = configFile
	config.applyDefaults()

	log.Debugf("Configuration file path: %s", configFile)

	return &config, nil
}

// applyDefaults fills in defaults for every unset field so the rest of
// the application never has to nil-check the sections.
func (c *Config) applyDefaults() {
	if c.General == nil {
		c.General = &GeneralConfig{}
	}
	if c.General.ApplyTimeoutSeconds == 0 {
		c.General.ApplyTimeoutSeconds = DefaultApplyTimeoutSeconds
	}
	if c.General.ReservedZonePrefix == "" {
		c.General.ReservedZonePrefix = DefaultReservedZonePrefix
	}
	if c.General.DnsmasqInitScript == "" {
		c.General.DnsmasqInitScript = DefaultDnsmasqInitScript
	}
	if c.General.DnsmasqSettleDelayMs == 0 {
		c.General.DnsmasqSettleDelayMs = DefaultDnsmasqSettleDelayMs
	}

	if c.Naming == nil {
		c.Naming = &NamingConfig{}
	}
	if c.Naming.DeviceTemplate == "" {
		c.Naming.DeviceTemplate = DefaultDeviceTemplate
	}
	if c.Naming.ZoneTemplate == "" {
		c.Naming.ZoneTemplate = DefaultZoneTemplate
	}
	if c.Naming.DNSRuleTemplate == "" {
		c.Naming.DNSRuleTemplate = DefaultDNSRuleTemplate
	}

	if c.API == nil {
		c.API = &APIConfig{}
	}
	if c.API.Listen == "" {
		c.API.Listen = DefaultAPIListen
	}
}

// SetConfigFilePath sets the file WriteConfig persists to. Needed when
// a configuration is built in memory for a host that has no file yet.
func (c *Config) SetConfigFilePath(path string) error {
	configFile := filepath.Clean(path)
	if !filepath.IsAbs(configFile) {
		abs, err := filepath.Abs(configFile)
		if err != nil {
			return fmt.Errorf("failed to get absolute path: %v", err)
		}
		configFile = abs
	}
	c._absConfigFilePath = configFile
	return nil
}

func (c *Config) SerializeConfig() (*bytes.Buffer, error) {
	buf := bytes.Buffer{}
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	return &buf, nil
}

func (c *Config) WriteConfig() error {
	config, err := c.SerializeConfig()
	if err != nil {
		return err
	}
	if err := os.WriteFile(c._absConfigFilePath, config.Bytes(), 0644); err != nil {
		return err
	}
	return nil
}
