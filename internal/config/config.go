// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/jeranaias/estatechat-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete estatechat configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// Backend is the analysis server the client talks to.
	Backend BackendConfig `toml:"backend" json:"backend"`

	// Areas lists the localities the chat recognises in free text.
	Areas AreasConfig `toml:"areas" json:"areas"`

	History HistoryConfig `toml:"history" json:"history"`
	Logging LoggingConfig `toml:"logging" json:"logging"`
	Export  ExportConfig  `toml:"export" json:"export"`
	UI      UIConfig      `toml:"ui" json:"ui"`
}

// BackendConfig contains HTTP backend settings.
type BackendConfig struct {
	// BaseURL is prefixed to /api/query/, /api/compare/ and /api/price_growth/.
	BaseURL string `toml:"base_url" json:"base_url"`
	// TimeoutSecs bounds every request. 0 means the default.
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
}

// AreasConfig contains the known-area list used for intent matching.
type AreasConfig struct {
	// Known is scanned in order; matches are reported in this order.
	Known []string `toml:"known" json:"known"`
}

// HistoryConfig controls where the chat log is mirrored.
type HistoryConfig struct {
	// Backend is "file", "sqlite" or "memory".
	Backend string `toml:"backend" json:"backend"`
	// Path overrides the default location under the config directory.
	Path string `toml:"path" json:"path"`
	// Key names the stored history entry.
	Key string `toml:"key" json:"key"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level  string `toml:"level" json:"level"`
	Format string `toml:"format" json:"format"`
	// Path is the log file; "stderr" logs to the terminal (CLI only).
	Path string `toml:"path" json:"path"`
}

// ExportConfig controls CSV/XLSX/PNG downloads.
type ExportConfig struct {
	Dir    string `toml:"dir" json:"dir"`
	Format string `toml:"format" json:"format"`
}

// UIConfig contains terminal UI preferences.
type UIConfig struct {
	Theme string `toml:"theme" json:"theme"`
	// Featured listings are shown as property cards on the home screen.
	Featured []Listing `toml:"featured" json:"featured"`
}

// Listing is a property shown on the home screen.
type Listing struct {
	Title    string `toml:"title" json:"title"`
	Location string `toml:"location" json:"location"`
	Price    string `toml:"price" json:"price"`
	Image    string `toml:"image" json:"image"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// DefaultAreas is the locality list the chat ships with.
var DefaultAreas = []string{
	"wakad",
	"aundh",
	"akurdi",
	"baner",
	"hinjewadi",
	"kothrud",
	"pimple saudagar",
	"ambegoan budruk",
	"hadapsar",
	"pimple nilakh",
	"ravet",
}

// DefaultTimeout applies when Backend.TimeoutSecs is unset.
const DefaultTimeout = 30 * time.Second

// HistoryKey is the name under which the chat log is stored.
const HistoryKey = "chat_history"

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",
		Backend: BackendConfig{
			BaseURL:     "http://127.0.0.1:8000",
			TimeoutSecs: int(DefaultTimeout / time.Second),
		},
		Areas: AreasConfig{
			Known: append([]string(nil), DefaultAreas...),
		},
		History: HistoryConfig{
			Backend: "file",
			Key:     HistoryKey,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Export: ExportConfig{
			Dir:    ".",
			Format: "csv",
		},
		UI: UIConfig{
			Theme: "auto",
			Featured: []Listing{
				{Title: "2 BHK Apartment", Location: "Wakad, Pune", Price: "78 L", Image: "https://images.unsplash.com/photo-1568605114967-8130f3a36994"},
				{Title: "3 BHK Villa", Location: "Baner, Pune", Price: "1.6 Cr", Image: "https://images.unsplash.com/photo-1570129477492-45c003edd2be"},
				{Title: "1 BHK Studio", Location: "Hinjewadi, Pune", Price: "42 L", Image: "https://images.unsplash.com/photo-1502672260266-1c1ef2d93688"},
			},
		},
	}
}

// Timeout returns the request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	if c.Backend.TimeoutSecs <= 0 {
		return DefaultTimeout
	}
	return time.Duration(c.Backend.TimeoutSecs) * time.Second
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the estatechat configuration directory path.
func ConfigDir() (string, error) {
	if dir := os.Getenv("ESTATECHAT_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".estatechat"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// HistoryPath returns the history file for the configured backend.
func (c *Config) HistoryPath() (string, error) {
	if c.History.Path != "" {
		return c.History.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	name := "history.json"
	if c.History.Backend == "sqlite" {
		name = "history.db"
	}
	return filepath.Join(dir, name), nil
}

// LogPath returns the log destination. "stderr" is passed through.
func (c *Config) LogPath() (string, error) {
	if c.Logging.Path != "" {
		return c.Logging.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "estatechat.log"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults. A .env file in the
// working directory is applied before environment overrides.
func Load() (*Config, error) {
	cfg := Default()
	var loadErr error

	if err := LoadDotEnv(); err != nil {
		loadErr = err
	}

	if path, err := ConfigPathTOML(); err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := LoadTOML(cfg, path); err != nil {
				return Default(), fmt.Errorf("failed to load TOML config: %w", err)
			}
			return finish(cfg)
		}
	}

	if path, err := ConfigPathJSON(); err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := LoadJSON(cfg, path); err != nil {
				return Default(), fmt.Errorf("failed to load JSON config: %w", err)
			}
			return finish(cfg)
		}
	}

	cfg, err := finish(cfg)
	if err != nil {
		return nil, err
	}
	return cfg, loadErr
}

// LoadFromPath loads configuration from a specific file with full validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}
	return finish(cfg)
}

func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// LoadDotEnv loads KEY=VALUE pairs into the process environment without
// overwriting variables that are already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// SetDefaults fills zero values with defaults.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}
	if c.Backend.BaseURL == "" {
		c.Backend.BaseURL = defaults.Backend.BaseURL
	}
	c.Backend.BaseURL = strings.TrimRight(c.Backend.BaseURL, "/")
	if c.Backend.TimeoutSecs == 0 {
		c.Backend.TimeoutSecs = defaults.Backend.TimeoutSecs
	}
	if len(c.Areas.Known) == 0 {
		c.Areas.Known = defaults.Areas.Known
	}
	if c.History.Backend == "" {
		c.History.Backend = defaults.History.Backend
	}
	if c.History.Key == "" {
		c.History.Key = defaults.History.Key
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaults.Logging.Level
	}
	if c.Logging.Format == "" {
		c.Logging.Format = defaults.Logging.Format
	}
	if c.Export.Dir == "" {
		c.Export.Dir = defaults.Export.Dir
	}
	if c.Export.Format == "" {
		c.Export.Format = defaults.Export.Format
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes cfg to path with a short header comment.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# estatechat configuration file\n")
	buf.WriteString("# Environment variables (ESTATECHAT_*) take precedence.\n\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.WriteFileAtomic(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// String renders the config as TOML.
func (c *Config) String() string {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Sprintf("<config: %v>", err)
	}
	return buf.String()
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	u, err := url.Parse(c.Backend.BaseURL)
	switch {
	case err != nil:
		errs = append(errs, ValidationError{Field: "backend.base_url", Message: fmt.Sprintf("invalid URL: %v", err)})
	case u.Scheme != "http" && u.Scheme != "https":
		errs = append(errs, ValidationError{Field: "backend.base_url", Message: fmt.Sprintf("unsupported scheme %q, must be http or https", u.Scheme)})
	case u.Host == "":
		errs = append(errs, ValidationError{Field: "backend.base_url", Message: "missing host"})
	}

	if c.Backend.TimeoutSecs < 0 {
		errs = append(errs, ValidationError{Field: "backend.timeout_secs", Message: "cannot be negative"})
	}

	for i, area := range c.Areas.Known {
		if strings.TrimSpace(area) == "" {
			errs = append(errs, ValidationError{Field: fmt.Sprintf("areas.known[%d]", i), Message: "area name cannot be empty"})
		}
	}

	switch c.History.Backend {
	case "file", "sqlite", "memory":
	default:
		errs = append(errs, ValidationError{Field: "history.backend", Message: fmt.Sprintf("invalid backend '%s', must be one of: file, sqlite, memory", c.History.Backend)})
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, ValidationError{Field: "logging.level", Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Logging.Level)})
	}

	switch c.Logging.Format {
	case "json", "console":
	default:
		errs = append(errs, ValidationError{Field: "logging.format", Message: fmt.Sprintf("invalid format '%s', must be json or console", c.Logging.Format)})
	}

	switch c.Export.Format {
	case "csv", "xlsx", "json":
	default:
		errs = append(errs, ValidationError{Field: "export.format", Message: fmt.Sprintf("invalid format '%s', must be one of: csv, xlsx, json", c.Export.Format)})
	}

	switch c.UI.Theme {
	case "auto", "dark", "light":
	default:
		errs = append(errs, ValidationError{Field: "ui.theme", Message: fmt.Sprintf("invalid theme '%s', must be one of: auto, dark, light", c.UI.Theme)})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - ESTATECHAT_BASE_URL: overrides backend.base_url
//   - ESTATECHAT_TIMEOUT: request timeout in seconds
//   - ESTATECHAT_AREAS: comma separated known areas
//   - ESTATECHAT_HISTORY_BACKEND: file, sqlite or memory
//   - ESTATECHAT_HISTORY_PATH: overrides history.path
//   - ESTATECHAT_LOG_LEVEL: overrides logging.level
//   - ESTATECHAT_LOG_PATH: overrides logging.path
//   - ESTATECHAT_EXPORT_DIR: overrides export.dir
//   - ESTATECHAT_THEME: overrides ui.theme
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("ESTATECHAT_BASE_URL"); v != "" {
		c.Backend.BaseURL = v
	}
	if v := os.Getenv("ESTATECHAT_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			c.Backend.TimeoutSecs = secs
		}
	}
	if v := os.Getenv("ESTATECHAT_AREAS"); v != "" {
		var areas []string
		for _, a := range strings.Split(v, ",") {
			if a = strings.TrimSpace(a); a != "" {
				areas = append(areas, a)
			}
		}
		c.Areas.Known = areas
	}
	if v := os.Getenv("ESTATECHAT_HISTORY_BACKEND"); v != "" {
		c.History.Backend = strings.ToLower(v)
	}
	if v := os.Getenv("ESTATECHAT_HISTORY_PATH"); v != "" {
		c.History.Path = v
	}
	if v := os.Getenv("ESTATECHAT_LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv("ESTATECHAT_LOG_PATH"); v != "" {
		c.Logging.Path = v
	}
	if v := os.Getenv("ESTATECHAT_EXPORT_DIR"); v != "" {
		c.Export.Dir = v
	}
	if v := os.Getenv("ESTATECHAT_THEME"); v != "" {
		c.UI.Theme = strings.ToLower(v)
	}
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the process-wide configuration, loading it on first access.
// Load failures fall back to defaults.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		}
		if cfg == nil {
			cfg = Default()
		}
		globalConfigMu.Lock()
		globalConfig = cfg
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// ReloadGlobal reloads the global configuration from disk. Thread-safe.
func ReloadGlobal() error {
	cfg, err := Load()
	if cfg == nil {
		return err
	}
	SetGlobal(cfg)
	return err
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigOnce.Do(func() {})
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
