package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadFile_Defaults(t *testing.T) {
	req := require.New(t)

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))

	req.NoError(err)
	req.Equal(8080, cfg.Port)
	req.Equal(int64(32768), cfg.WebSocket.ReadLimit)
	req.Equal(54*time.Second, cfg.WebSocket.PingPeriod)
	req.Equal(60*time.Second, cfg.WebSocket.PongWait)
	req.Equal(32, cfg.WebSocket.SendBuffer)
	req.Equal("kick", cfg.Dispatcher.Backpressure)
	req.Empty(cfg.AdminToken)
	req.Equal("sqlite", cfg.Database.Driver)
	req.False(cfg.Cache.Enabled)
	req.Equal(5*time.Minute, cfg.Cache.TTL)
}

func TestLoadFile_FileAndEnv(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), "config.test.yaml")
	req.NoError(os.WriteFile(path, []byte(`
mode: debug
port: 9000
websocket:
  ping_period: 10s
  send_buffer: 4
database:
  driver: memory
cache:
  enabled: true
  ttl: 30s
log:
  level: debug
`), 0o600))
	t.Setenv("PORT", "9100")
	t.Setenv("DISPATCHER_BACKPRESSURE", "drop")

	cfg, err := LoadFile(path)

	req.NoError(err)
	req.Equal("debug", cfg.Mode)
	req.Equal(9100, cfg.Port)
	req.Equal(10*time.Second, cfg.WebSocket.PingPeriod)
	req.Equal(4, cfg.WebSocket.SendBuffer)
	req.Equal("drop", cfg.Dispatcher.Backpressure)
	req.Equal("memory", cfg.Database.Driver)
	req.True(cfg.Cache.Enabled)
	req.Equal(30*time.Second, cfg.Cache.TTL)
	req.Equal("debug", cfg.Log.Level)
}

func TestLoadFile_BrokenYAML(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), "broken.yaml")
	req.NoError(os.WriteFile(path, []byte("port: [unclosed"), 0o600))

	_, err := LoadFile(path)

	req.Error(err)
}
