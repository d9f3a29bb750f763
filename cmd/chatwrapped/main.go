// main.go - Pipeline and server entrypoint for chatwrapped
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"chatwrapped/internal/classify"
	"chatwrapped/internal/config"
	"chatwrapped/internal/corpus"
	"chatwrapped/internal/logging"
	"chatwrapped/internal/report"
	"chatwrapped/internal/server"
	"chatwrapped/internal/stats"
	"chatwrapped/internal/unroll"
)

const defaultShutdownTimeout = 30 * time.Second

// Command defines the interface for all command implementations
type Command interface {
	// Name returns the command name
	Name() string
	// Description returns the command description
	Description() string
	// Execute runs the command with the given config and args
	Execute(ctx context.Context, cfg *config.Config, logger *slog.Logger, args []string) error
}

// The set of available commands
var commands = []Command{
	&UnrollCommand{},
	&ClassifyCommand{},
	&AggregateCommand{},
	&ServeCommand{},
	&HelpCommand{},
}

func main() {
	flag.Parse()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sig := <-sigChan
		log.Printf("Received signal: %v, shutting down...", sig)
		cancel()
	}()

	cmdName, args := parseArgs()
	cmd := findCommand(cmdName)
	if cmd == nil {
		showUsageAndExit()
	}

	cfg := config.GetConfig()
	logger := logging.Setup(cfg)

	if err := cmd.Execute(ctx, cfg, logger, args); err != nil {
		log.Fatalf("Command failed: %v", err)
	}
}

// UnrollCommand splits a raw export into one file per conversation
type UnrollCommand struct{}

func (c *UnrollCommand) Name() string { return "unroll" }

func (c *UnrollCommand) Description() string {
	return "Splits a conversations.json export into per-conversation files grouped by month"
}

func (c *UnrollCommand) Execute(ctx context.Context, cfg *config.Config, logger *slog.Logger, args []string) error {
	inputPath := filepath.Join(cfg.DataDirectory, "conversations.json")
	if len(args) > 0 {
		inputPath = args[0]
	}

	result, err := unroll.Run(inputPath, cfg.UnrolledDirectory, logger)
	if err != nil {
		return fmt.Errorf("unroll: %w", err)
	}

	logger.Info("unroll finished",
		"processed", result.Processed,
		"skipped", result.Skipped,
		"months", len(result.PerMonth),
		"output", cfg.UnrolledDirectory)
	return nil
}

// ClassifyCommand enriches unrolled conversations with extracted metadata
type ClassifyCommand struct{}

func (c *ClassifyCommand) Name() string { return "classify" }

func (c *ClassifyCommand) Description() string {
	return "Extracts metadata for each unrolled conversation (resumable, skips existing output)"
}

func (c *ClassifyCommand) Execute(ctx context.Context, cfg *config.Config, logger *slog.Logger, args []string) error {
	classifier, err := classify.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("classify: %w", err)
	}

	result, err := classifier.Run(ctx, cfg.UnrolledDirectory, cfg.EnrichedDirectory)
	if err != nil {
		return fmt.Errorf("classify: %w", err)
	}

	logger.Info("classification finished",
		"classified", result.Classified,
		"skipped_existing", result.SkippedExisting,
		"failures", len(result.Failures))
	for name, ferr := range result.Failures {
		logger.Warn("conversation failed", "file", name, "error", ferr)
	}
	if len(result.Failures) > 0 {
		return fmt.Errorf("classify: %d conversations failed, rerun to retry them", len(result.Failures))
	}
	return nil
}

// AggregateCommand computes the stats document from enriched conversations
type AggregateCommand struct{}

func (c *AggregateCommand) Name() string { return "aggregate" }

func (c *AggregateCommand) Description() string {
	return "Aggregates enriched conversations into the stats.json document"
}

func (c *AggregateCommand) Execute(ctx context.Context, cfg *config.Config, logger *slog.Logger, args []string) error {
	start := time.Now()

	loaded, err := corpus.Load(cfg.EnrichedDirectory, logger)
	if err != nil {
		return fmt.Errorf("aggregate: %w", err)
	}

	doc, err := stats.Aggregate(loaded.Records, time.Now())
	if err != nil {
		return fmt.Errorf("aggregate: %w", err)
	}

	if err := report.WriteStats(cfg.StatsFile, doc); err != nil {
		return fmt.Errorf("aggregate: %w", err)
	}

	store, err := report.NewStore(cfg.GetDatabasePath(), logger)
	if err != nil {
		return fmt.Errorf("aggregate: %w", err)
	}
	run := &report.Run{
		Year:               doc.Year,
		RecordCount:        len(loaded.Records),
		SkippedCount:       loaded.Skipped,
		TotalConversations: doc.HeroStats.TotalConversations,
		AlignmentScore:     doc.RokosBasilisk.AlignmentScore,
		StatsPath:          cfg.StatsFile,
		DurationMs:         time.Since(start).Milliseconds(),
	}
	if err := store.RecordRun(run); err != nil {
		return fmt.Errorf("aggregate: %w", err)
	}

	logger.Info("aggregation finished",
		"conversations", len(loaded.Records),
		"skipped", loaded.Skipped,
		"stats_file", cfg.StatsFile,
		"duration_ms", run.DurationMs)
	return nil
}

// ServeCommand runs the HTTP server over the generated stats
type ServeCommand struct{}

func (c *ServeCommand) Name() string { return "serve" }

func (c *ServeCommand) Description() string {
	return "Serves the stats document and run history over HTTP"
}

func (c *ServeCommand) Execute(ctx context.Context, cfg *config.Config, logger *slog.Logger, args []string) error {
	store, err := report.NewStore(cfg.GetDatabasePath(), logger)
	if err != nil {
		return fmt.Errorf("serve: %w", err)
	}

	srv := server.New(cfg, logger, store)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Listen()
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("serve: shutdown: %w", err)
	}
	logger.Info("server shutdown complete")
	return nil
}

// HelpCommand prints usage information
type HelpCommand struct{}

func (c *HelpCommand) Name() string { return "help" }

func (c *HelpCommand) Description() string { return "Shows this help" }

func (c *HelpCommand) Execute(ctx context.Context, cfg *config.Config, logger *slog.Logger, args []string) error {
	showUsage()
	return nil
}

// parseArgs parses command line arguments into command name and args
func parseArgs() (string, []string) {
	args := flag.Args()
	if len(args) == 0 {
		return "help", []string{}
	}
	return args[0], args[1:]
}

// findCommand finds a command by name
func findCommand(name string) Command {
	for _, cmd := range commands {
		if cmd.Name() == name {
			return cmd
		}
	}
	return nil
}

func showUsage() {
	fmt.Println("Usage: chatwrapped [command] [args...]")
	fmt.Println("Available commands:")
	for _, cmd := range commands {
		fmt.Printf("  %s: %s\n", cmd.Name(), cmd.Description())
	}
}

// showUsageAndExit shows usage information and exits
func showUsageAndExit() {
	showUsage()
	os.Exit(1)
}
