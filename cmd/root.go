package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/toppers/mocktest/internal/container"
	"github.com/toppers/mocktest/internal/logging"
	"github.com/toppers/mocktest/internal/store"
)

// logger is built from the persistent flags before any subcommand runs.
var logger = logrus.StandardLogger()

var rootCmd = &cobra.Command{
	Use:           "toppers",
	Short:         "AI mock tests for school students",
	Long:          "Toppers generates chapter-wise multiple-choice mock tests and motivational feedback with an LLM.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load .env: %w", err)
		}

		level, _ := cmd.Flags().GetString("log-level")
		format, _ := cmd.Flags().GetString("log-format")
		log, err := logging.New(logging.Options{
			Level:  firstNonEmpty(level, os.Getenv("TOPPERS_LOG_LEVEL")),
			Format: firstNonEmpty(format, os.Getenv("TOPPERS_LOG_FORMAT")),
		})
		if err != nil {
			return err
		}
		logger = log
		return nil
	},
}

// Execute runs the CLI. SIGINT and SIGTERM cancel the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides TOPPERS_DB env var)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (default info)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json (default text)")

	rootCmd.AddCommand(mcqCmd)
	rootCmd.AddCommand(feedbackCmd)
	rootCmd.AddCommand(takeCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then TOPPERS_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// newContainer wires the store and model provider from flags and the
// environment.
func newContainer(cmd *cobra.Command) (*container.Container, error) {
	opts, err := container.DefaultOptions()
	if err != nil {
		return nil, err
	}
	if opts.DBPath, err = resolveDBPath(cmd); err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	opts.Log = logger
	return container.New(cmd.Context(), opts)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
