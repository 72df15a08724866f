package discovery_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tvolk131/harbor/pkg/discovery"
)

func TestDefaultConfig(t *testing.T) {
	cfg := discovery.DefaultConfig()

	assert.Equal(t, []string{
		"wss://relay.damus.io",
		"wss://relay.primal.net",
		"wss://relay.snort.social",
	}, cfg.Relays)
	assert.Equal(t, 10*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "discovery.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
relays:
  - wss://relay.example.com
  - wss://other.example.com
connect_timeout: 5s
fetch_timeout: 15s
`)

	cfg, err := discovery.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"wss://relay.example.com", "wss://other.example.com"}, cfg.Relays)
	assert.Equal(t, 5*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, 15*time.Second, cfg.FetchTimeout)
}

func TestLoadConfig_PartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "relays:\n  - wss://relay.example.com\n")

	cfg, err := discovery.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"wss://relay.example.com"}, cfg.Relays)
	assert.Equal(t, 10*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := discovery.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("bad yaml", func(t *testing.T) {
		_, err := discovery.LoadConfig(writeConfig(t, "relays: [unclosed"))
		assert.Error(t, err)
	})

	t.Run("bad duration", func(t *testing.T) {
		_, err := discovery.LoadConfig(writeConfig(t, "fetch_timeout: soon\n"))
		assert.Error(t, err)
	})
}
