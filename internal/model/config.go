package model

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// DefaultTodosEndpoint is the fixed resource the todo list is fetched from.
const DefaultTodosEndpoint = "https://jsonplaceholder.typicode.com/todos"

// SourceConfig holds the remote todo source settings.
type SourceConfig struct {
	// Endpoint is the URL a GET request is issued against on activation.
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`
}

// JournalConfig controls the local record of fetch outcomes.
type JournalConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" yaml:"path"`

	// Limit is how many records are kept and shown in the history view.
	Limit int `mapstructure:"limit" yaml:"limit"`
}

// LogConfig holds logger settings. The TUI owns stdout, so logs always
// go to a file.
type LogConfig struct {
	Path  string `mapstructure:"path" yaml:"path"`
	Level string `mapstructure:"level" yaml:"level"`
}

// MetricsConfig holds the optional Prometheus listener address.
type MetricsConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Source  SourceConfig  `mapstructure:"source" yaml:"source"`
	Journal JournalConfig `mapstructure:"journal" yaml:"journal"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
}

// configDir returns ~/.config/todoview, or the working directory when the
// home directory cannot be resolved.
func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "todoview")
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/todoview/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// DefaultAppConfig returns the configuration used when no file exists.
func DefaultAppConfig() *AppConfig {
	dir := configDir()
	return &AppConfig{
		Source: SourceConfig{
			Endpoint: DefaultTodosEndpoint,
		},
		Journal: JournalConfig{
			Enabled: true,
			Path:    filepath.Join(dir, "journal.db"),
			Limit:   50,
		},
		Log: LogConfig{
			Path:  filepath.Join(dir, "todoview.log"),
			Level: "info",
		},
	}
}

// setDefaults registers every default on v so missing keys resolve to
// the same values DefaultAppConfig returns.
func setDefaults(v *viper.Viper) {
	d := DefaultAppConfig()
	v.SetDefault("source.endpoint", d.Source.Endpoint)
	v.SetDefault("journal.enabled", d.Journal.Enabled)
	v.SetDefault("journal.path", d.Journal.Path)
	v.SetDefault("journal.limit", d.Journal.Limit)
	v.SetDefault("log.path", d.Log.Path)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("metrics.addr", "")
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, defaults are used. TODOVIEW_* environment
// variables (e.g. TODOVIEW_LOG_LEVEL) override both.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("TODOVIEW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		_, missing := err.(*os.PathError)
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			missing = true
		}
		if !missing {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := DefaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Source.Endpoint == "" {
		cfg.Source.Endpoint = DefaultTodosEndpoint
	}
	if cfg.Journal.Limit <= 0 {
		cfg.Journal.Limit = 50
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("source", map[string]any{
		"endpoint": cfg.Source.Endpoint,
	})
	v.Set("journal", map[string]any{
		"enabled": cfg.Journal.Enabled,
		"path":    cfg.Journal.Path,
		"limit":   cfg.Journal.Limit,
	})
	v.Set("log", map[string]any{
		"path":  cfg.Log.Path,
		"level": cfg.Log.Level,
	})
	v.Set("metrics", map[string]any{
		"addr": cfg.Metrics.Addr,
	})

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
