package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
}

func TestLoadYAMLMergesWithDefaults(t *testing.T) {
	path := writeFile(t, "nlcalc.yaml", `
history:
  size: 10
server:
  addr: "127.0.0.1:9000"
  shutdown_timeout: 3s
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.History.Size)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 20, cfg.Server.RateBurst)
	assert.Equal(t, "charts", cfg.Chart.Dir)
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "nlcalc.json", `{"chart": {"dir": "/tmp/plots", "samples": 51}}`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/plots", cfg.Chart.Dir)
	assert.Equal(t, 51, cfg.Chart.Samples)
}

func TestLoadPriority(t *testing.T) {
	path := writeFile(t, "nlcalc.yaml", "history:\n  size: 10\nlog:\n  level: info\n")
	t.Setenv("NLCALC_HISTORY__SIZE", "20")
	t.Setenv("NLCALC_SERVER__RATE_LIMIT", "2.5")
	t.Setenv("NLCALC_TELEMETRY__ENABLED", "true")

	cfg, err := Load(path, map[string]any{"history.size": 30})
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.History.Size)
	assert.Equal(t, 2.5, cfg.Server.RateLimit)
	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)

	_, err = Load(writeFile(t, "nlcalc.toml", "x = 1"), nil)
	assert.ErrorContains(t, err, "unsupported config file format")

	_, err = Load(writeFile(t, "nlcalc.yaml", "history: [unterminated"), nil)
	assert.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	_, err := Load("", map[string]any{
		"history.size":  0,
		"log.level":     "loud",
		"server.addr":   "nowhere",
		"chart.samples": 1,
	})
	require.Error(t, err)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{
		"Config.History.Size",
		"Config.Log.Level",
		"Config.Server.Addr",
		"Config.Chart.Samples",
	}, fields)
	assert.Contains(t, err.Error(), "must be one of [debug info warn error]")
}

func TestValidateListenAddr(t *testing.T) {
	for addr, ok := range map[string]bool{
		":8080":          true,
		"localhost:80":   true,
		"127.0.0.1:0":    true,
		"8080":           false,
		"host:99999":     false,
		"host:http-port": false,
	} {
		cfg := Default()
		cfg.Server.Addr = addr
		err := Validate(&cfg)
		assert.Equal(t, ok, err == nil, "%q: %v", addr, err)
	}
}
