package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pfrederiksen/igpost/internal/config"
	"github.com/pfrederiksen/igpost/internal/logger"
	"github.com/pfrederiksen/igpost/internal/scraper"
	"github.com/pfrederiksen/igpost/internal/snippet"
	"github.com/spf13/cobra"
)

// ExitError is the process exit code when the command fails to start
const ExitError = 1

var (
	flagConfig  string
	flagFormat  string
	flagTimeout time.Duration
	flagVerbose bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "igpost [url...]",
		Short: "Extract Instagram posts into copy-paste object literals",
		Long: `A CLI tool that fetches public Instagram posts and prints their date,
caption, map link and region as an object literal ready to paste into a list.
Without arguments it prompts for post URLs until q or end of input.`,
		RunE:          runExtract,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Define flags
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to a YAML config file")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().DurationVar(&flagTimeout, "timeout", 0, "HTTP timeout (overrides config, default 15s)")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	return cmd
}

// runExtract is the main command logic
func runExtract(cmd *cobra.Command, args []string) error {
	format, err := ParseFormat(flagFormat)
	if err != nil {
		return err
	}

	cfg := config.Default()
	if flagConfig != "" {
		cfg, err = config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	level := cfg.LogLevel()
	if flagVerbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, cmd.ErrOrStderr()))

	timeout := cfg.Timeout()
	if flagTimeout > 0 {
		timeout = flagTimeout
	}

	sc := scraper.New(
		scraper.WithTimeout(timeout),
		scraper.WithHeaders(cfg.HTTP.UserAgent, cfg.HTTP.Accept),
		scraper.WithMinInterval(cfg.MinInterval()),
	)

	logger.Debug("Starting igpost", logger.Fields{
		"config":       flagConfig,
		"timeout":      timeout.String(),
		"min_interval": cfg.MinInterval().String(),
		"regions":      cfg.RegionTable().Labels(),
		"format":       string(format),
	})

	session := NewSession(sc, snippet.NewFormatter(cfg.RegionTable(), nil), cmd.InOrStdin(), cmd.OutOrStdout())
	session.format = format

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if len(args) > 0 {
		session.ProcessAll(ctx, args)
	} else if err := session.Run(ctx); err != nil {
		return err
	}

	if logger.Enabled(logger.LevelDebug) {
		logger.Debug("Session metrics", logger.Fields(session.metrics.GetSnapshot()))
	}

	return nil
}

// Execute runs the CLI. SIGINT and SIGTERM end the session cleanly.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(ExitError)
	}
}
