// Package config handles configuration file parsing and validation for podnet.
//
// This package reads TOML configuration files and provides strongly-typed
// structures for accessing configuration data. Every section is optional:
// missing sections and fields are filled with defaults after parsing, so a
// host without a configuration file runs with Default().
//
// # Configuration Structure
//
// The configuration file defines:
//   - General settings (apply timeout, reserved zone prefix, ULA prefix,
//     dnsmasq init script and settle delay)
//   - Naming templates for derived device, zone and firewall rule names
//   - HTTP API bind address
//
// # Example Usage
//
// Loading and validating a configuration file:
//
//	cfg, err := config.LoadConfig("/etc/podnet.conf")
//	if err != nil {
//	    log.Fatalf("%v", err)
//	}
//	if err := cfg.ValidateConfig(); err != nil {
//	    log.Fatalf("%v", err)
//	}
//
// Validation errors carry the TOML field path of the offending option, so
// they can be printed verbatim to the operator.
package config
