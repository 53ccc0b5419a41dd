// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("ESTATECHAT_HOME", dir)
	for _, k := range []string{
		"ESTATECHAT_BASE_URL", "ESTATECHAT_TIMEOUT", "ESTATECHAT_AREAS",
		"ESTATECHAT_HISTORY_BACKEND", "ESTATECHAT_HISTORY_PATH",
		"ESTATECHAT_LOG_LEVEL", "ESTATECHAT_LOG_PATH",
		"ESTATECHAT_EXPORT_DIR", "ESTATECHAT_THEME",
	} {
		t.Setenv(k, "")
	}
	return dir
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "http://127.0.0.1:8000", cfg.Backend.BaseURL)
	assert.Equal(t, DefaultAreas, cfg.Areas.Known)
	assert.Equal(t, "chat_history", cfg.History.Key)
	assert.Equal(t, 30*time.Second, cfg.Timeout())
}

func TestDefault_AreasAreCopied(t *testing.T) {
	cfg := Default()
	cfg.Areas.Known[0] = "changed"
	assert.Equal(t, "wakad", DefaultAreas[0])
}

func TestLoad_NoFilesUsesDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default().Backend, cfg.Backend)
}

func TestLoad_TOML(t *testing.T) {
	dir := isolate(t)
	content := `
[backend]
base_url = "http://analysis.local:9000/"
timeout_secs = 5

[areas]
known = ["wakad", "baner"]

[history]
backend = "sqlite"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://analysis.local:9000", cfg.Backend.BaseURL, "trailing slash is trimmed")
	assert.Equal(t, 5*time.Second, cfg.Timeout())
	assert.Equal(t, []string{"wakad", "baner"}, cfg.Areas.Known)
	assert.Equal(t, "sqlite", cfg.History.Backend)
	assert.Equal(t, "info", cfg.Logging.Level, "unset fields keep defaults")

	path, err := cfg.HistoryPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "history.db"), path)
}

func TestLoad_JSONFallback(t *testing.T) {
	dir := isolate(t)
	content := `{"backend": {"base_url": "https://api.example.com"}, "ui": {"theme": "light"}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(content), 0600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.Backend.BaseURL)
	assert.Equal(t, "light", cfg.UI.Theme)
}

func TestLoad_InvalidTOML(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[backend\n"), 0600))

	cfg, err := Load()
	require.Error(t, err)
	require.NotNil(t, cfg, "defaults are returned alongside the error")
	assert.Equal(t, Default().Backend.BaseURL, cfg.Backend.BaseURL)
}

func TestApplyEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("ESTATECHAT_BASE_URL", "http://10.0.0.2:8000")
	t.Setenv("ESTATECHAT_TIMEOUT", "12")
	t.Setenv("ESTATECHAT_AREAS", " wakad , ravet,, ")
	t.Setenv("ESTATECHAT_HISTORY_BACKEND", "MEMORY")
	t.Setenv("ESTATECHAT_LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.2:8000", cfg.Backend.BaseURL)
	assert.Equal(t, 12, cfg.Backend.TimeoutSecs)
	assert.Equal(t, []string{"wakad", "ravet"}, cfg.Areas.Known)
	assert.Equal(t, "memory", cfg.History.Backend)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"bad scheme", func(c *Config) { c.Backend.BaseURL = "ftp://host" }, "backend.base_url"},
		{"no host", func(c *Config) { c.Backend.BaseURL = "http://" }, "backend.base_url"},
		{"negative timeout", func(c *Config) { c.Backend.TimeoutSecs = -1 }, "backend.timeout_secs"},
		{"blank area", func(c *Config) { c.Areas.Known = []string{"wakad", " "} }, "areas.known[1]"},
		{"history backend", func(c *Config) { c.History.Backend = "redis" }, "history.backend"},
		{"log level", func(c *Config) { c.Logging.Level = "trace" }, "logging.level"},
		{"log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"export format", func(c *Config) { c.Export.Format = "pdf" }, "export.format"},
		{"theme", func(c *Config) { c.UI.Theme = "neon" }, "ui.theme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var verrs ValidateErrors
			require.True(t, errors.As(err, &verrs))
			require.Len(t, verrs, 1)
			assert.Equal(t, tt.field, verrs[0].Field)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("ESTATECHAT_DOTENV_A=from-file\nESTATECHAT_DOTENV_B=from-file\n"), 0600))

	t.Setenv("ESTATECHAT_DOTENV_B", "from-env")
	t.Cleanup(func() { os.Unsetenv("ESTATECHAT_DOTENV_A") })

	require.NoError(t, LoadDotEnv(envFile, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "from-file", os.Getenv("ESTATECHAT_DOTENV_A"))
	assert.Equal(t, "from-env", os.Getenv("ESTATECHAT_DOTENV_B"), "existing variables win")
}

func TestSaveTOML_RoundTrip(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.Backend.BaseURL = "http://backend:8000"
	cfg.Areas.Known = []string{"aundh", "kothrud"}
	require.NoError(t, SaveTOML(cfg, path))

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Backend, loaded.Backend)
	assert.Equal(t, cfg.Areas.Known, loaded.Areas.Known)
	assert.Equal(t, cfg.UI.Featured, loaded.UI.Featured)
}

func TestGlobal_ConcurrentAccess(t *testing.T) {
	isolate(t)
	ResetGlobalForTesting()
	t.Cleanup(ResetGlobalForTesting)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetGlobal(Default())
		}()
		go func() {
			defer wg.Done()
			if Global() == nil {
				t.Error("Global() returned nil")
			}
		}()
	}
	wg.Wait()
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, SaveTOML(Default(), path))

	reloaded := make(chan *Config, 4)
	w, err := NewWatcher(path, 20*time.Millisecond, func(cfg *Config, err error) {
		if err == nil {
			reloaded <- cfg
		}
	})
	require.NoError(t, err)
	w.Start()
	defer w.Close()

	cfg := Default()
	cfg.Areas.Known = []string{"ravet"}
	require.NoError(t, SaveTOML(cfg, path))

	select {
	case got := <-reloaded:
		assert.Equal(t, []string{"ravet"}, got.Areas.Known)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not deliver a reload")
	}
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, SaveTOML(Default(), path))

	reloaded := make(chan struct{}, 1)
	w, err := NewWatcher(path, 10*time.Millisecond, func(*Config, error) {
		reloaded <- struct{}{}
	})
	require.NoError(t, err)
	w.Start()
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0600))

	select {
	case <-reloaded:
		t.Fatal("unrelated file triggered a reload")
	case <-time.After(200 * time.Millisecond):
	}
}
