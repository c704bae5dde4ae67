package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/seattle-home-game/internal/config"
	"github.com/pfrederiksen/seattle-home-game/internal/coordinator"
	"github.com/pfrederiksen/seattle-home-game/internal/entity"
	"github.com/pfrederiksen/seattle-home-game/internal/event"
	"github.com/pfrederiksen/seattle-home-game/internal/feed"
	"github.com/pfrederiksen/seattle-home-game/internal/logger"
	"github.com/pfrederiksen/seattle-home-game/internal/metrics"
	"github.com/pfrederiksen/seattle-home-game/internal/notifier"
	"github.com/pfrederiksen/seattle-home-game/internal/server"
	"github.com/pfrederiksen/seattle-home-game/internal/telegram"
)

const (
	ExitSuccess  = 0
	ExitError    = 1
	ExitHomeGame = 2
)

var (
	flagConfig   string
	flagLogLevel string
	flagFormat   string
	flagSort     string
	flagURL      string
	flagVerbose  bool

	// exitCode is set by commands that report through the exit status
	exitCode = ExitSuccess
	cfg      *config.Config
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seattle-home-game",
		Short: "Check whether Seattle has a home game today",
		Long: `Polls isthereaseattlehomegametoday.com for today's events at Seattle
venues, works out start times and venues, and summarizes the day in one sentence.
Run "serve" to poll on a schedule and publish sensor states to Home Assistant.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to YAML config file")
	cmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn or error (overrides config)")

	cmd.AddCommand(newCheckCmd(), newSummaryCmd(), newServeCmd())
	return cmd
}

// setup loads the configuration and installs the default logger
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagLogLevel != "" {
		loaded.Logging.Level = flagLogLevel
	}

	level, err := logger.ParseLevel(loaded.Logging.Level)
	if err != nil {
		return err
	}
	logger.SetDefault(logger.New(level, os.Stderr))

	cfg = loaded
	return nil
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Fetch today's events once and print them",
		Long: `Fetches today's events once and prints them as a table or JSON.
Exits with status 2 when there is a home game today, 0 when there is none.`,
		RunE: runCheck,
	}

	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().StringVar(&flagSort, "sort", "time", "Sort order: time, venue or name")
	cmd.Flags().StringVar(&flagURL, "url", "", "Feed URL (overrides config)")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Show descriptions and start instants")
	return cmd
}

func newSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print only today's summary sentence",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := fetchSnapshot(cmd.Context(), cfg.Feed.URL)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), snap.Summary)
			return nil
		},
	}
	return cmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Poll on a schedule, serve the HTTP API and publish entity states",
		RunE:  runServe,
	}
}

// runCheck is the one-shot check logic
func runCheck(cmd *cobra.Command, args []string) error {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}
	sortOrder, err := parseSortOrder(flagSort)
	if err != nil {
		return err
	}

	url := cfg.Feed.URL
	if flagURL != "" {
		url = flagURL
	}

	stderr := cmd.ErrOrStderr()
	if flagVerbose {
		fmt.Fprintf(stderr, "Fetching events from %s\n", url)
	}

	snap, err := fetchSnapshot(cmd.Context(), url)
	if err != nil {
		return err
	}

	if flagVerbose {
		fmt.Fprintf(stderr, "Fetched %d events for %s\n", snap.EventCount, snap.Date)
	}

	if err := WriteOutput(cmd.OutOrStdout(), newOutputResult(snap, sortOrder), format, flagVerbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if snap.EventsFound {
		exitCode = ExitHomeGame
	}
	return nil
}

func fetchSnapshot(ctx context.Context, url string) (*event.Snapshot, error) {
	source := feed.NewSource(feed.New(url, cfg.Feed.Timeout))
	snap, err := source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching events: %w", err)
	}
	return snap, nil
}

// runServe wires the coordinator, notifiers and HTTP server and runs them
// until SIGINT or SIGTERM.
func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := entity.Registry{EntryID: cfg.EntryID, Prefix: cfg.HomeAssistant.EntityPrefix}
	notifiers, err := buildNotifiers(cfg, registry, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	m := metrics.New()
	source := feed.NewSource(feed.New(cfg.Feed.URL, cfg.Feed.Timeout))
	coord := coordinator.New(source, coordinator.Options{
		Notifiers: notifiers,
		Metrics:   m,
		Schedule:  cfg.Schedule,
		Location:  cfg.Location(),
	})
	srv := server.New(cfg.Server.Listen, coord, registry, m.Handler())

	names := make([]string, 0, len(notifiers))
	for _, n := range notifiers {
		names = append(names, n.Name())
	}
	logger.Info("Starting seattle-home-game", logger.Fields{
		"feed_url":  cfg.Feed.URL,
		"listen":    cfg.Server.Listen,
		"notifiers": names,
	})

	errCh := make(chan error, 2)
	go func() { errCh <- srv.Run(ctx) }()
	go func() { errCh <- coord.Run(ctx) }()

	var errs []error
	for i := 0; i < 2; i++ {
		if err := <-errCh; err != nil {
			errs = append(errs, err)
			// One failed component stops the other
			stop()
		}
	}

	_ = logger.Default().Sync()
	return errors.Join(errs...)
}

// buildNotifiers returns the sinks enabled in cfg
func buildNotifiers(cfg *config.Config, registry entity.Registry, out io.Writer) ([]notifier.Notifier, error) {
	var notifiers []notifier.Notifier

	if cfg.DryRun {
		notifiers = append(notifiers, notifier.NewDryRunNotifier(out, registry))
	}

	if cfg.HomeAssistant.Enabled {
		ha, err := notifier.NewHomeAssistantNotifier(cfg.HomeAssistant.URL, cfg.HomeAssistant.Token,
			cfg.HomeAssistant.Timeout, registry)
		if err != nil {
			return nil, fmt.Errorf("creating Home Assistant notifier: %w", err)
		}
		notifiers = append(notifiers, ha)
	}

	if cfg.Telegram.Enabled {
		client, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			return nil, fmt.Errorf("creating Telegram client: %w", err)
		}
		notifiers = append(notifiers, notifier.NewTelegramNotifier(client))
	}

	if len(notifiers) == 0 {
		logger.Warn("No notifiers enabled; states are only served over HTTP", nil)
	}
	return notifiers, nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
	os.Exit(exitCode)
}
