// Package config holds the settings of the toldya command-line client.
package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	env "github.com/Netflix/go-env"
)

// Config holds runtime settings for the toldya CLI.
//
// Fields:
//   - ServerURL: base URL of the toldya HTTP API.
//   - Timeout: deadline of a single API call.
type Config struct {
	ServerURL string
	Timeout   time.Duration
}

// EnvConfig is read from the process environment.
type EnvConfig struct {
	ServerURL string `env:"TOLDYA_SERVER_URL"`
	Timeout   string `env:"TOLDYA_CLIENT_TIMEOUT"`
}

// LoadDefaults populates c with defaults for a local server.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.Timeout = 10 * time.Second
}

// Parse builds a Config from defaults, the environment and the global flags
// at the start of args. The remaining arguments (the command) are returned.
func Parse(args []string, environ []string, output io.Writer) (*Config, []string, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	var ec EnvConfig
	es, err := env.EnvironToEnvSet(environ)
	if err != nil {
		return nil, nil, err
	}
	if err := env.Unmarshal(es, &ec); err != nil {
		return nil, nil, err
	}
	if ec.ServerURL != "" {
		cfg.ServerURL = ec.ServerURL
	}
	if ec.Timeout != "" {
		d, err := time.ParseDuration(ec.Timeout)
		if err != nil {
			return nil, nil, fmt.Errorf("TOLDYA_CLIENT_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}

	fs := flag.NewFlagSet("toldya-cli", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&cfg.ServerURL, "s", cfg.ServerURL, "base URL of the toldya server")
	fs.DurationVar(&cfg.Timeout, "t", cfg.Timeout, "request timeout")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return cfg, fs.Args(), nil
}
