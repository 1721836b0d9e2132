// Package config holds the simulator configuration: defaults, an optional
// YAML file, and the flag overrides applied by the CLI.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the full simulator configuration.
type Config struct {
	BindAddress string `yaml:"bind_address"` // e.g. "127.0.0.1"
	BindPort    uint16 `yaml:"bind_port"`    // datagram port the OBC sends to
	APID        uint16 `yaml:"apid"`         // logical channel, 11 bits
	LogLevel    string `yaml:"log_level"`    // "debug", "info", "warn", "error"
	Seed        int64  `yaml:"seed"`         // measurement RNG seed, 0 = from clock
}

const (
	DefaultBindAddress = "0.0.0.0"
	DefaultBindPort    = uint16(5004)
	DefaultAPID        = uint16(0x100)
	DefaultLogLevel    = "info"
)

// Default returns a Config with the reference defaults.
func Default() *Config {
	return &Config{
		BindAddress: DefaultBindAddress,
		BindPort:    DefaultBindPort,
		APID:        DefaultAPID,
		LogLevel:    DefaultLogLevel,
	}
}

// Load reads a YAML config file over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects values that cannot go on the wire.
func (c *Config) Validate() error {
	if c.APID > 0x7FF {
		return fmt.Errorf("apid %#x does not fit in 11 bits", c.APID)
	}
	if net.ParseIP(c.BindAddress) == nil {
		return fmt.Errorf("bind_address %q is not an IP address", c.BindAddress)
	}
	return nil
}

// Addr returns the host:port string the server binds to.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.BindAddress, strconv.Itoa(int(c.BindPort)))
}
