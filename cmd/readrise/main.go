package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"readrise/internal/bootstrap"
	"readrise/internal/platform/civil"
	"readrise/internal/platform/config"
	"readrise/internal/platform/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

type globalOptions struct {
	dataDir    string
	configPath string
	userID     string
	output     string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "readrise",
		Short:         "Track reading sessions, streaks and yearly goals",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", defaultDataDir(), "directory holding the database, config.yaml and .env")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default <data-dir>/config.yaml)")
	root.PersistentFlags().StringVar(&opts.userID, "user", "", "reader id (overrides config)")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", outputText, "output format: text|json|yaml")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "debug|info|warn|error (overrides config)")

	root.AddCommand(newTUICmd(opts))
	root.AddCommand(newBookCmd(opts))
	root.AddCommand(newProgressCmd(opts))
	root.AddCommand(newSessionCmd(opts))
	root.AddCommand(newStreakCmd(opts))
	root.AddCommand(newStatsCmd(opts))
	root.AddCommand(newDashboardCmd(opts))
	root.AddCommand(newGoalCmd(opts))
	root.AddCommand(newProfileCmd(opts))
	root.AddCommand(newDigestCmd(opts))
	root.AddCommand(newDaemonCmd(opts))
	return root
}

func defaultDataDir() string {
	if dir := os.Getenv("READRISE_DATA_DIR"); dir != "" {
		return dir
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "readrise")
	}
	return ".readrise"
}

func loadApp(ctx context.Context, opts *globalOptions) (*bootstrap.App, error) {
	cfg, err := config.Load(opts.configPath, opts.dataDir)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(opts.userID) != "" {
		cfg.UserID = opts.userID
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return bootstrap.New(ctx, cfg, logger)
}

// withApp opens the app for the duration of fn.
func withApp(cmd *cobra.Command, opts *globalOptions, fn func(app *bootstrap.App) error) error {
	app, err := loadApp(cmd.Context(), opts)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()
	return fn(app)
}

func parseDateFlag(name, value string) (*civil.Date, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	d, err := civil.Parse(value)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", name, err)
	}
	return &d, nil
}

// intFlag returns a pointer to v only when the flag was set explicitly.
func intFlag(cmd *cobra.Command, name string, v int) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}

func stringFlag(cmd *cobra.Command, name, v string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}

func newTUICmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse shelves, time sessions and view the dashboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Log lines on stderr would tear the alt screen.
			if opts.logLevel == "" {
				opts.logLevel = "error"
			}
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				return bootstrap.RunTUI(app, nil, "")
			})
		},
	}
}

func newDaemonCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Send weekly summaries on schedule and serve Prometheus metrics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				return app.RunDaemon(cmd.Context())
			})
		},
	}
}
