package cmd

import (
	"fmt"
	"strings"

	"github.com/Iron-Ham/rfpdesk/internal/config"
	"github.com/Iron-Ham/rfpdesk/internal/gateway"
	"github.com/Iron-Ham/rfpdesk/internal/logging"
	"github.com/Iron-Ham/rfpdesk/internal/tui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "rfpdesk",
	Short: "Terminal client for the RFP response generator",
	Long: `rfpdesk drives an RFP response backend from the terminal.

Upload an RFP to extract its requirements, add your organization profile
to match capabilities against them, then generate and download a response
document. Previous sessions are kept by the backend and can be reopened.

Run 'rfpdesk start' for the interactive workspace, or use the subcommands
for scripting.`,
	SilenceUsage: true,
}

// newBackend builds the backend client used by every command. Tests
// replace it with a fake.
var newBackend = func(cfg *config.Config, logger *logging.Logger) (tui.Backend, error) {
	policy := gateway.DefaultUploadPolicy()
	policy.MaxBytes = cfg.Upload.MaxUploadBytes()
	if len(cfg.Upload.AllowedExtensions) > 0 {
		policy.Extensions = cfg.Upload.AllowedExtensions
	}

	return gateway.NewClient(cfg.Backend.URL,
		gateway.WithTimeout(cfg.Backend.Timeout),
		gateway.WithLogger(logger),
		gateway.WithUploadPolicy(policy),
	)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/rfpdesk/config.yaml)")
	rootCmd.PersistentFlags().String("backend", "", "backend base URL (overrides backend.url)")
	rootCmd.PersistentFlags().StringP("output", "o", string(formatTable), "output format: table, json or yaml")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("backend.url", rootCmd.PersistentFlags().Lookup("backend"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("RFPDESK")
	// RFPDESK_BACKEND_URL for backend.url
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

// loadConfig returns the validated configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// openLogger returns the file logger configured under logging, or a
// no-op logger when logging is disabled.
func openLogger(cfg *config.Config) (*logging.Logger, error) {
	if !cfg.Logging.Enabled {
		return logging.NopLogger(), nil
	}
	logger, err := logging.NewLogger(cfg.Logging.ResolveDir(), logging.Options{
		Level:      cfg.Logging.Level,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open log: %w", err)
	}
	return logger, nil
}

// env bundles what a backend command needs.
type env struct {
	cfg     *config.Config
	root    *logging.Logger
	logger  *logging.Logger
	backend tui.Backend
}

func (e *env) Close() {
	_ = e.root.Close()
}

// setup loads config, opens the log and builds the backend client.
func setup(cmd *cobra.Command) (*env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	root, err := openLogger(cfg)
	if err != nil {
		return nil, err
	}
	logger := root.With("command", cmd.CommandPath())

	backend, err := newBackend(cfg, logger)
	if err != nil {
		_ = root.Close()
		return nil, fmt.Errorf("failed to create backend client: %w", err)
	}
	return &env{cfg: cfg, root: root, logger: logger, backend: backend}, nil
}
