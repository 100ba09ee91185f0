package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/Iron-Ham/rfpdesk/internal/util"
	"github.com/spf13/viper"
)

// Config represents the complete rfpdesk configuration
type Config struct {
	Backend       BackendConfig      `mapstructure:"backend" yaml:"backend"`
	Upload        UploadConfig       `mapstructure:"upload" yaml:"upload"`
	Download      DownloadConfig     `mapstructure:"download" yaml:"download"`
	Notifications NotificationConfig `mapstructure:"notifications" yaml:"notifications"`
	TUI           TUIConfig          `mapstructure:"tui" yaml:"tui"`
	Logging       LoggingConfig      `mapstructure:"logging" yaml:"logging"`
}

// BackendConfig controls how the analysis backend is reached
type BackendConfig struct {
	// URL is the base URL of the backend, e.g. "http://127.0.0.1:5000"
	URL string `mapstructure:"url" yaml:"url"`
	// Timeout bounds a single request, including uploads and generation.
	// Analysis can take minutes, so keep this generous. 0 disables it.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// UploadConfig controls client-side upload validation
type UploadConfig struct {
	// MaxSizeMB rejects files larger than this before sending (default: 16, the backend limit)
	MaxSizeMB int `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	// AllowedExtensions lists accepted file extensions including the dot
	AllowedExtensions []string `mapstructure:"allowed_extensions" yaml:"allowed_extensions"`
}

// DownloadConfig controls where generated documents are saved
type DownloadConfig struct {
	// Dir is the directory downloads are written to.
	// Empty means the current working directory. Supports ~ expansion.
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// NotificationConfig controls toast behavior
type NotificationConfig struct {
	// SuccessTimeout is how long success toasts stay visible (default: 3s)
	SuccessTimeout time.Duration `mapstructure:"success_timeout" yaml:"success_timeout"`
	// ErrorTimeout is how long error toasts stay visible (default: 5s)
	ErrorTimeout time.Duration `mapstructure:"error_timeout" yaml:"error_timeout"`
	// Bell rings the terminal bell when an error toast is shown
	Bell bool `mapstructure:"bell" yaml:"bell"`
}

// TUIConfig controls the terminal UI behavior
type TUIConfig struct {
	// SidebarWidth is the width of the session list in columns (default: 36, min: 20, max: 60)
	SidebarWidth int `mapstructure:"sidebar_width" yaml:"sidebar_width"`
	// CollapseSections starts requirement sections collapsed to their titles
	CollapseSections bool `mapstructure:"collapse_sections" yaml:"collapse_sections"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level" yaml:"level"`
	// Dir is the log directory. Empty means <config dir>/logs.
	Dir string `mapstructure:"dir" yaml:"dir"`
	// MaxSizeMB is the maximum log file size in megabytes before rotation (default: 10)
	MaxSizeMB int `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	// MaxBackups is the number of backup log files to keep (default: 3)
	MaxBackups int `mapstructure:"max_backups" yaml:"max_backups"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Backend: BackendConfig{
			URL:     "http://127.0.0.1:5000",
			Timeout: 5 * time.Minute,
		},
		Upload: UploadConfig{
			MaxSizeMB:         16,
			AllowedExtensions: []string{".pdf", ".txt", ".docx"},
		},
		Download: DownloadConfig{
			Dir: "",
		},
		Notifications: NotificationConfig{
			SuccessTimeout: 3 * time.Second,
			ErrorTimeout:   5 * time.Second,
			Bell:           false,
		},
		TUI: TUIConfig{
			SidebarWidth:     36,
			CollapseSections: false,
		},
		Logging: LoggingConfig{
			Enabled:    true,
			Level:      "info",
			Dir:        "",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// MaxUploadBytes returns the upload limit in bytes (0 means unlimited)
func (u *UploadConfig) MaxUploadBytes() int64 {
	return int64(u.MaxSizeMB) * 1024 * 1024
}

// ResolveDir returns the download directory with ~ expanded.
// An empty Dir resolves to the current working directory.
func (d *DownloadConfig) ResolveDir() string {
	if d.Dir == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
		return "."
	}
	return util.ExpandHome(d.Dir)
}

// ResolveDir returns the log directory, defaulting to <config dir>/logs.
func (l *LoggingConfig) ResolveDir() string {
	if l.Dir == "" {
		return filepath.Join(ConfigDir(), "logs")
	}
	return util.ExpandHome(l.Dir)
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Backend defaults
	viper.SetDefault("backend.url", defaults.Backend.URL)
	viper.SetDefault("backend.timeout", defaults.Backend.Timeout)

	// Upload defaults
	viper.SetDefault("upload.max_size_mb", defaults.Upload.MaxSizeMB)
	viper.SetDefault("upload.allowed_extensions", defaults.Upload.AllowedExtensions)

	// Download defaults
	viper.SetDefault("download.dir", defaults.Download.Dir)

	// Notification defaults
	viper.SetDefault("notifications.success_timeout", defaults.Notifications.SuccessTimeout)
	viper.SetDefault("notifications.error_timeout", defaults.Notifications.ErrorTimeout)
	viper.SetDefault("notifications.bell", defaults.Notifications.Bell)

	// TUI defaults
	viper.SetDefault("tui.sidebar_width", defaults.TUI.SidebarWidth)
	viper.SetDefault("tui.collapse_sections", defaults.TUI.CollapseSections)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "rfpdesk")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".rfpdesk"
	}
	return filepath.Join(home, ".config", "rfpdesk")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
