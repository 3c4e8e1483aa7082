package main

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/justyntemme/gita-t/internal/api"
	"github.com/justyntemme/gita-t/internal/config"
	"github.com/justyntemme/gita-t/internal/logging"
	"github.com/justyntemme/gita-t/internal/ui"
	"github.com/justyntemme/gita-t/internal/ui/terminal"
)

// Version is set via ldflags at build time.
var Version = "dev"

var (
	cfgFile  string
	logLevel string
	debug    bool
	jsonLogs bool
)

var rootCmd = &cobra.Command{
	Use:   "gita-t",
	Short: "Read the Bhagavad Gita in your terminal",
	Long: `gita-t is a terminal reader for the Bhagavad Gita. It opens on a
landing screen; scroll down or press enter to read verse by verse, with
translations and word meanings fetched from the Bhagavad Gita API.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (default ~/.config/gita-t/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "print the effective configuration and exit")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "write logs as JSON")
}

// loadConfig loads the config and applies flag overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// setupLogging points the package logger at w, or at the configured log
// file when w is nil. The returned closer is never nil.
func setupLogging(cfg *config.Config, w io.Writer) (io.Closer, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	format := logging.FormatText
	if jsonLogs {
		format = logging.FormatJSON
	}

	var closer io.Closer = nopCloser{}
	if w == nil {
		if cfg.LogFile == "" {
			w = io.Discard
		} else {
			f, err := logging.OpenFile(cfg.LogFile)
			if err != nil {
				return nil, err
			}
			w, closer = f, f
		}
	}
	logging.InitLogger(w, level, format)
	return closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func newClient(cfg *config.Config) *api.Client {
	return api.NewClient(cfg.APIURL, cfg.APIKey, cfg.APIHost)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if debug {
		return printConfig(cmd.OutOrStdout(), cfg)
	}

	// The TUI owns the screen, so logs go to a file.
	closer, err := setupLogging(cfg, nil)
	if err != nil {
		return err
	}
	defer closer.Close()

	if cfg.APIKey == "" {
		logging.Warn("no API key configured; set api_key or GITA_API_KEY")
	}

	termMode := terminal.DetectTerminalMode()
	logging.Info("starting gita-t", "version", Version, "image_mode", termMode.String(),
		"config", cfg.Path())

	app := ui.NewApp(cfg, newClient(cfg), termMode)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		logging.Error("program exited with error", "error", err)
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}
