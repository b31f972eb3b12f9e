package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// DatabaseConfig points at the SQLite database file.
type DatabaseConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// ServerConfig holds HTTP listener and link-building settings.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `mapstructure:"addr" yaml:"addr"`

	// BaseURL prefixes every absolute link the fragments emit,
	// including the display playlist link.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// ReorderURL is the external endpoint the playlist manager script posts moves to.
	ReorderURL string `mapstructure:"reorder_url" yaml:"reorder_url"`
}

// I18nConfig controls term lookup.
type I18nConfig struct {
	DefaultLang string `mapstructure:"default_lang" yaml:"default_lang"`
	TermsFile   string `mapstructure:"terms_file" yaml:"terms_file"`

	// ReloadSeconds polls TermsFile for changes; 0 disables reloading.
	ReloadSeconds int `mapstructure:"reload_seconds" yaml:"reload_seconds"`
}

// CSRFConfig holds the signing key for issued CSRF tokens.
// An empty key makes the server generate a random one at startup.
type CSRFConfig struct {
	HashKey string `mapstructure:"hash_key" yaml:"hash_key"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Development bool   `mapstructure:"development" yaml:"development"`
}

// PlaylistConfig holds playlist manager settings.
type PlaylistConfig struct {
	// Limit caps the number of items listed; values above MaxPlaylistItems are clamped.
	Limit int `mapstructure:"limit" yaml:"limit"`
}

// MaxPlaylistItems is the hard cap on playlist manager listings.
const MaxPlaylistItems = 100

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
	I18n     I18nConfig     `mapstructure:"i18n" yaml:"i18n"`
	CSRF     CSRFConfig     `mapstructure:"csrf" yaml:"csrf"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	Playlist PlaylistConfig `mapstructure:"playlist" yaml:"playlist"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/safetyflash/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "safetyflash", "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Database: DatabaseConfig{Path: "safetyflash.db"},
		Server: ServerConfig{
			Addr:       ":8080",
			BaseURL:    "",
			ReorderURL: "/app/api/display_playlist_reorder.php",
		},
		I18n:     I18nConfig{DefaultLang: "fi"},
		Log:      LogConfig{Level: "info"},
		Playlist: PlaylistConfig{Limit: MaxPlaylistItems},
	}
}

func setDefaults(v *viper.Viper) {
	d := defaultAppConfig()
	v.SetDefault("database.path", d.Database.Path)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.base_url", d.Server.BaseURL)
	v.SetDefault("server.reorder_url", d.Server.ReorderURL)
	v.SetDefault("i18n.default_lang", d.I18n.DefaultLang)
	v.SetDefault("i18n.terms_file", "")
	v.SetDefault("i18n.reload_seconds", 0)
	v.SetDefault("csrf.hash_key", "")
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.development", false)
	v.SetDefault("playlist.limit", d.Playlist.Limit)
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// Environment variables prefixed with SAFETYFLASH_ override file values
// (e.g. SAFETYFLASH_SERVER_ADDR). A missing file yields the defaults.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("safetyflash")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		var pathErr *os.PathError
		if !errors.As(err, &notFound) && !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

// normalize clamps values that have hard bounds.
func (c *AppConfig) normalize() {
	if c.Playlist.Limit <= 0 || c.Playlist.Limit > MaxPlaylistItems {
		c.Playlist.Limit = MaxPlaylistItems
	}
	c.Server.BaseURL = strings.TrimRight(c.Server.BaseURL, "/")
	if c.I18n.DefaultLang == "" {
		c.I18n.DefaultLang = "fi"
	}
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

	v.Set("database", cfg.Database)
	v.Set("server", cfg.Server)
	v.Set("i18n", cfg.I18n)
	v.Set("csrf", cfg.CSRF)
	v.Set("log", cfg.Log)
	v.Set("playlist", cfg.Playlist)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
