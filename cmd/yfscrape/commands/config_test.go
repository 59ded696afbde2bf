package commands

import (
	"os"
	"path/filepath"
	"testing"
	"time"
	"yfscrape/internal/scrapers/yahoo"
	"yfscrape/lib/configutil"

	"github.com/stretchr/testify/require"
)

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "yfscrape.json5")

	cfg, err := configutil.ReadConfigOr(path, defaultConfig())
	require.NoError(t, err)
	require.Equal(t, defaultConfig().BaseURL, cfg.BaseURL)

	err = os.WriteFile(path, []byte(`{
		// requests go through a local mirror
		base_url: "http://localhost:8080",
		http: { requests_per_second: 0.5, headers: { "x-trace": "1" } },
		browser: { wait_timeout_seconds: 10 },
	}`), 0o644)
	require.NoError(t, err)

	cfg, err = configutil.ReadConfigOr(path, defaultConfig())
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8080", cfg.BaseURL)
	require.Equal(t, 0.5, cfg.Http.RequestsPerSecond)
	require.Equal(t, 30, cfg.Http.TimeoutSeconds)
	require.Equal(t, map[string]string{"x-trace": "1"}, cfg.Http.Headers)
	require.True(t, cfg.Browser.Headless)
	require.Equal(t, 10*time.Second, cfg.waitTimeout())

	opts := cfg.fetcherOptions()
	require.Equal(t, 30*time.Second, opts.Timeout)
	require.Equal(t, 10*time.Second, cfg.browserConfig().WaitTimeout)
}

func TestReadConfigTurnsOffDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "yfscrape.json5")

	err := os.WriteFile(path, []byte(`{ browser: { headless: false, stealth: false } }`), 0o644)
	require.NoError(t, err)

	cfg, err := configutil.ReadConfigOr(path, defaultConfig())
	require.NoError(t, err)
	require.False(t, cfg.Browser.Headless)
	require.False(t, cfg.Browser.Stealth)
	require.Equal(t, 120, cfg.Browser.WaitTimeoutSeconds)
	require.Equal(t, 30, cfg.Http.TimeoutSeconds)

	browserCfg := cfg.browserConfig()
	require.False(t, browserCfg.Headless)
	require.False(t, browserCfg.Stealth)

	// the local file can turn them back on
	err = os.WriteFile(filepath.Join(dir, "yfscrape.local.json5"), []byte(`{ browser: { headless: true } }`), 0o644)
	require.NoError(t, err)

	cfg, err = configutil.ReadConfigOr(path, defaultConfig())
	require.NoError(t, err)
	require.True(t, cfg.Browser.Headless)
	require.False(t, cfg.Browser.Stealth)
}

func chdir(t *testing.T, dir string) {
	previous, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(previous)) })
}

func TestLoadConfig(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "reports", "2023")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	chdir(t, nested)

	cfg, err := loadConfig(defaultConfigName, false)
	require.NoError(t, err)
	require.Equal(t, defaultConfig(), cfg)

	err = os.WriteFile(filepath.Join(root, defaultConfigName), []byte(`{ base_url: "http://localhost:8080" }`), 0o644)
	require.NoError(t, err)

	cfg, err = loadConfig(defaultConfigName, false)
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8080", cfg.BaseURL)
	require.True(t, cfg.Browser.Headless)

	// an explicit path is not searched for
	cfg, err = loadConfig(defaultConfigName, true)
	require.NoError(t, err)
	require.Equal(t, yahoo.DefaultBaseURL, cfg.BaseURL)

	cfg, err = loadConfig(filepath.Join(root, defaultConfigName), true)
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8080", cfg.BaseURL)
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()
	require.Equal(t, yahoo.DefaultBaseURL, cfg.BaseURL)
	require.False(t, cfg.Browser.Enabled)
	require.Equal(t, 120*time.Second, cfg.waitTimeout())
}
