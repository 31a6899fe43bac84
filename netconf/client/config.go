package client

import (
	"time"

	"github.com/imdario/mergo"
)

// Defines structs describing netconf configuration.

// Config defines properties that configure netconf session behaviour.
type Config struct {
	// Defines the time in seconds that the client will wait to receive a hello message from the server,
	// and to observe the end of the server output when disconnecting.
	SetupTimeoutSecs int `yaml:"setupTimeoutSecs"`
	// Defines the time in seconds that the client will wait for the reply to a request.
	ReplyTimeoutSecs int `yaml:"replyTimeoutSecs"`
	// Defines the size of the buffer used for each read from the transport.
	ReadBufferSize int `yaml:"readBufferSize"`
	// Defines the largest message that will be accepted from the server.
	MaxMessageSize int `yaml:"maxMessageSize"`
	// Defines the ssh subsystem requested for the session.
	Subsystem string `yaml:"subsystem"`
}

var DefaultConfig = &Config{
	SetupTimeoutSecs: 5,
	ReplyTimeoutSecs: 30,
	ReadBufferSize:   4096,
	MaxMessageSize:   64 * 1024 * 1024,
	Subsystem:        "netconf",
}

// resolveConfig uses the supplied config, but applies defaults to unspecified values.
func resolveConfig(cfg *Config) *Config {
	var resolved Config
	if cfg != nil {
		resolved = *cfg
	}
	_ = mergo.Merge(&resolved, DefaultConfig)
	return &resolved
}

func (c *Config) setupTimeout() time.Duration {
	return time.Duration(c.SetupTimeoutSecs) * time.Second
}

func (c *Config) replyTimeout() time.Duration {
	return time.Duration(c.ReplyTimeoutSecs) * time.Second
}
