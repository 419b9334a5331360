package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"geoops/internal/config"
	"geoops/internal/logging"
	"geoops/internal/ops"
)

var rootCmd = &cobra.Command{
	Use:   "geoops [path]",
	Short: "geoops is a terminal geometry viewer with interactive operations",
	Long: `geoops renders GeoJSON, WKT, CSV and KML files in the terminal and runs
geometry operations (simplification, bounding rectangles) on them, either
interactively or headless.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runView,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to the YAML config file (default ./"+config.DefaultPath+" when present)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (overrides the config file)")
	rootCmd.PersistentFlags().String("log-file", "", "Write logs to this file")
}

// env is what every command needs: the settings, a logger and the registry
// built from them.
type env struct {
	cfg      config.Config
	log      *slog.Logger
	registry *ops.Registry
	closeLog func()
}

// setup loads the config and opens the logger. When no log file is given,
// logs go to fallback; nil discards them.
func setup(cmd *cobra.Command, fallback io.Writer) (*env, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	e := &env{cfg: cfg, closeLog: func() {}}
	logFile, _ := cmd.Flags().GetString("log-file")
	switch {
	case logFile != "":
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		e.log = logging.New(f, level)
		e.closeLog = func() { _ = f.Close() }
	case fallback != nil:
		e.log = logging.New(fallback, level)
	default:
		e.log = logging.NewNop()
	}

	opts := append(cfg.RegistryOptions(), ops.WithLogger(e.log))
	e.registry = ops.Default(opts...)
	e.log.Debug("config loaded", "path", path, "unsupported_kinds", cfg.UnsupportedKinds, "preview_cache", cfg.PreviewCache)
	return e, nil
}
