package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"soratra/internal/eventbus"
)

// EnvPrefix is prepended to every environment override, e.g. SORATRA_SERVER_BASE_URL
const EnvPrefix = "SORATRA"

// Config represents the application configuration
type Config struct {
	Version  int            `toml:"version" mapstructure:"version"`
	Server   ServerConfig   `toml:"server" mapstructure:"server"`
	Analysis AnalysisConfig `toml:"analysis" mapstructure:"analysis"`
	UI       UISettings     `toml:"ui" mapstructure:"ui"`
	Messages Messages       `toml:"messages" mapstructure:"messages"`
}

// ServerConfig locates the spelling and prediction backend
type ServerConfig struct {
	BaseURL   string `toml:"base_url" mapstructure:"base_url"`
	TimeoutMS int    `toml:"timeout_ms" mapstructure:"timeout_ms"`
}

// AnalysisConfig tunes the analysis cycle
type AnalysisConfig struct {
	DebounceMS      int `toml:"debounce_ms" mapstructure:"debounce_ms"`
	MaxSuggestions  int `toml:"max_suggestions" mapstructure:"max_suggestions"`
	CacheTTLSeconds int `toml:"cache_ttl_seconds" mapstructure:"cache_ttl_seconds"`
	CacheCapacity   int `toml:"cache_capacity" mapstructure:"cache_capacity"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowOverlay  bool `toml:"show_overlay" mapstructure:"show_overlay"`
	EditorHeight int  `toml:"editor_height" mapstructure:"editor_height"`
}

// Messages are the user-facing status strings
type Messages struct {
	WordCount    string `toml:"word_count" mapstructure:"word_count"`
	Busy         string `toml:"busy" mapstructure:"busy"`
	Idle         string `toml:"idle" mapstructure:"idle"`
	Clean        string `toml:"clean" mapstructure:"clean"`
	ErrorsFound  string `toml:"errors_found" mapstructure:"errors_found"`
	BackendError string `toml:"backend_error" mapstructure:"backend_error"`
}

// Debounce returns the analysis debounce delay
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Analysis.DebounceMS) * time.Millisecond
}

// RequestTimeout returns the per-cycle collaborator timeout
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Server.TimeoutMS) * time.Millisecond
}

// CacheTTL returns how long a response stays cached; zero disables caching
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Analysis.CacheTTLSeconds) * time.Second
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// Dir returns the config directory.
// Resolution order: $SORATRA_CONFIG_DIR > $XDG_CONFIG_HOME/soratra > os.UserConfigDir()/soratra
func Dir() string {
	if dir := os.Getenv(EnvPrefix + "_CONFIG_DIR"); dir != "" {
		return dir
	}
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "soratra")
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "soratra")
}

// NewConfigService creates a config service for the default config file
func NewConfigService() ConfigService {
	return &configService{
		filePath: filepath.Join(Dir(), "config.toml"),
	}
}

// NewConfigServiceWithBus creates a config service with event bus support.
// An empty path selects the default config file.
func NewConfigServiceWithBus(bus eventbus.EventBus, path string) ConfigService {
	cs := NewConfigService().(*configService)
	cs.bus = bus
	if path != "" {
		cs.filePath = path
	}
	return cs
}

// Path returns the file Load and Save operate on
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, falling back to defaults when the
// file does not exist. Environment overrides apply either way.
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.read(cs.filePath, true)
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{
			Path:    cs.filePath,
			BaseURL: cfg.Server.BaseURL,
		})
	}

	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}

	return nil
}

// LoadFromPath loads configuration from a specific path. Unlike Load, a
// missing file is an error.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	return cs.read(path, false)
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func (cs *configService) read(path string, allowMissing bool) (*Config, error) {
	v := newViper()

	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat config file: %w", err)
		}
		if !allowMissing {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
	} else {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.normalize()
	return &cfg, nil
}

// newViper returns a viper instance seeded with defaults and env overrides
func newViper() *viper.Viper {
	v := viper.New()
	def := DefaultConfig()

	v.SetDefault("version", def.Version)
	v.SetDefault("server.base_url", def.Server.BaseURL)
	v.SetDefault("server.timeout_ms", def.Server.TimeoutMS)
	v.SetDefault("analysis.debounce_ms", def.Analysis.DebounceMS)
	v.SetDefault("analysis.max_suggestions", def.Analysis.MaxSuggestions)
	v.SetDefault("analysis.cache_ttl_seconds", def.Analysis.CacheTTLSeconds)
	v.SetDefault("analysis.cache_capacity", def.Analysis.CacheCapacity)
	v.SetDefault("ui.show_overlay", def.UI.ShowOverlay)
	v.SetDefault("ui.editor_height", def.UI.EditorHeight)
	v.SetDefault("messages.word_count", def.Messages.WordCount)
	v.SetDefault("messages.busy", def.Messages.Busy)
	v.SetDefault("messages.idle", def.Messages.Idle)
	v.SetDefault("messages.clean", def.Messages.Clean)
	v.SetDefault("messages.errors_found", def.Messages.ErrorsFound)
	v.SetDefault("messages.backend_error", def.Messages.BackendError)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// normalize replaces out-of-range values with defaults
func (c *Config) normalize() {
	def := DefaultConfig()
	c.Server.BaseURL = strings.TrimRight(c.Server.BaseURL, "/")
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = def.Server.BaseURL
	}
	if c.Server.TimeoutMS <= 0 {
		c.Server.TimeoutMS = def.Server.TimeoutMS
	}
	if c.Analysis.DebounceMS <= 0 {
		c.Analysis.DebounceMS = def.Analysis.DebounceMS
	}
	if c.Analysis.MaxSuggestions <= 0 {
		c.Analysis.MaxSuggestions = def.Analysis.MaxSuggestions
	}
	if c.Analysis.CacheTTLSeconds < 0 {
		c.Analysis.CacheTTLSeconds = 0
	}
	if c.Analysis.CacheCapacity <= 0 {
		c.Analysis.CacheCapacity = def.Analysis.CacheCapacity
	}
	if c.UI.EditorHeight <= 0 {
		c.UI.EditorHeight = def.UI.EditorHeight
	}
}

// Validate checks configuration for potential issues and returns warnings
func Validate(cfg *Config) []string {
	var warnings []string
	if cfg == nil {
		return warnings
	}
	if !strings.HasPrefix(cfg.Server.BaseURL, "http://") && !strings.HasPrefix(cfg.Server.BaseURL, "https://") {
		warnings = append(warnings, fmt.Sprintf("server.base_url %q has no http(s) scheme", cfg.Server.BaseURL))
	}
	if cfg.Analysis.DebounceMS < 50 {
		warnings = append(warnings, "analysis.debounce_ms below 50 will send a request on almost every keystroke")
	}
	if cfg.Analysis.DebounceMS >= cfg.Server.TimeoutMS {
		warnings = append(warnings, "analysis.debounce_ms is not shorter than server.timeout_ms")
	}
	if !strings.Contains(cfg.Messages.ErrorsFound, "%d") {
		warnings = append(warnings, "messages.errors_found has no %d verb; the error count will not be shown")
	}
	if !strings.Contains(cfg.Messages.WordCount, "%d") {
		warnings = append(warnings, "messages.word_count has no %d verb; the word count will not be shown")
	}
	return warnings
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Server: ServerConfig{
			BaseURL:   "http://localhost:5000",
			TimeoutMS: 5000,
		},
		Analysis: AnalysisConfig{
			DebounceMS:      400,
			MaxSuggestions:  9,
			CacheTTLSeconds: 60,
			CacheCapacity:   256,
		},
		UI: UISettings{
			ShowOverlay:  true,
			EditorHeight: 10,
		},
		Messages: Messages{
			WordCount:    "%d teny",
			Busy:         "Sava-ria: mandinika...",
			Idle:         "Sava-ria: miandry",
			Clean:        "Sava-ria: Madio",
			ErrorsFound:  "Sava-ria: %d fahadisoana hita",
			BackendError: "Sava-ria: backend error",
		},
	}
}
