package cmd

import (
	"os"
	"path/filepath"

	"github.com/damianoneill/ncclient/netconf/client"
	"github.com/damianoneill/ncclient/netconf/common"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds the ncclient configuration file content. Flags take precedence over it.
type Config struct {
	Address  string `yaml:"address"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	// Capabilities advertised in the client hello, as URNs.
	Capabilities []string `yaml:"capabilities"`
	// Validate disables the checking of requests against the server capabilities when false.
	Validate *bool         `yaml:"validate"`
	Dump     string        `yaml:"dump"`
	Client   client.Config `yaml:"client"`
}

// DefaultConfigPath returns the default config file path: ~/.ncclient/config.yaml
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".ncclient", "config.yaml")
	}
	return filepath.Join(home, ".ncclient", "config.yaml")
}

// LoadConfig reads the configuration from the given YAML file path.
// A missing file delivers the default configuration.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{Port: 830, Dump: "none"}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if perm := info.Mode().Perm(); perm&0o077 != 0 {
		logrus.WithField("path", path).Warnf("config file has permissions %04o, expected 0600", perm)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "invalid config file %s", path)
	}
	return cfg, nil
}

// ClientCapabilities delivers the capabilities to advertise, the library defaults when none are configured.
func (c *Config) ClientCapabilities() common.Capabilities {
	if len(c.Capabilities) == 0 {
		return common.DefaultCapabilities
	}
	return common.ParseCapabilities(c.Capabilities)
}

// ValidateRequests reports whether requests are checked against the server capabilities.
func (c *Config) ValidateRequests() bool {
	return c.Validate == nil || *c.Validate
}
