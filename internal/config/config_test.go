package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daybook.yaml")

	cfg := Default()
	cfg.Server.Username = "day"
	cfg.Server.Password = "book"
	cfg.HintsFile = "hints.conf"
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daybook.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestServerConfig_Addr(t *testing.T) {
	s := ServerConfig{Host: "127.0.0.1", Port: 5680}
	assert.Equal(t, "127.0.0.1:5680", s.Addr())
	assert.Equal(t, "http://127.0.0.1:5680", s.URL())
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "usd", cfg.Ledger.PrimaryCurrency)
	assert.Equal(t, 5, cfg.Ledger.DuplicateWindow)
	assert.Equal(t, 5680, cfg.Server.Port)
}
