package discovery

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Timing constants.
const (
	// ConnectTimeout is the default bound on waiting for relay connections.
	// Elapsing does not fail a pass; fetching proceeds with whatever relays
	// connected in time.
	ConnectTimeout = 10 * time.Second

	// FetchTimeout is the default bound on waiting for fetched events.
	FetchTimeout = 10 * time.Second
)

// DefaultRelays is the default relay set queried for announcements. NIP-87
// announcements are addressable events mirrored widely, so a small set of
// large public relays covers the announcement space well.
var DefaultRelays = []string{
	"wss://relay.damus.io",
	"wss://relay.primal.net",
	"wss://relay.snort.social",
}

// Config configures a RelayPool.
type Config struct {
	// Relays lists the relay websocket URLs to query.
	Relays []string

	// ConnectTimeout bounds the wait for relay connections.
	ConnectTimeout time.Duration

	// FetchTimeout bounds the wait for fetched events.
	FetchTimeout time.Duration

	// Identity supplies the pool's nostr keypair.
	// If nil, a fresh ephemeral identity is generated.
	Identity IdentityProvider

	// Logger is the optional logger for debug output.
	// If nil, logging is disabled.
	Logger *slog.Logger
}

// DefaultConfig returns the default pool configuration.
func DefaultConfig() Config {
	return Config{
		Relays:         DefaultRelays,
		ConnectTimeout: ConnectTimeout,
		FetchTimeout:   FetchTimeout,
	}
}

// fileConfig is the YAML representation of Config.
type fileConfig struct {
	Relays         []string `yaml:"relays"`
	ConnectTimeout string   `yaml:"connect_timeout"`
	FetchTimeout   string   `yaml:"fetch_timeout"`
}

// LoadConfig reads a pool configuration from a YAML file. Absent fields
// keep their defaults.
//
// Example:
//
//	relays:
//	  - wss://relay.damus.io
//	  - wss://relay.example.com
//	connect_timeout: 10s
//	fetch_timeout: 15s
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	if len(fc.Relays) > 0 {
		cfg.Relays = fc.Relays
	}
	if fc.ConnectTimeout != "" {
		d, err := time.ParseDuration(fc.ConnectTimeout)
		if err != nil {
			return cfg, fmt.Errorf("invalid connect_timeout: %w", err)
		}
		cfg.ConnectTimeout = d
	}
	if fc.FetchTimeout != "" {
		d, err := time.ParseDuration(fc.FetchTimeout)
		if err != nil {
			return cfg, fmt.Errorf("invalid fetch_timeout: %w", err)
		}
		cfg.FetchTimeout = d
	}

	return cfg, nil
}
