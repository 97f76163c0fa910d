// Command statekit-demo is a small terminal task board built on statekit.
// It drives a board store from key presses, renders a simulated profile
// load through every mutation lifecycle state, and records all changes in
// the default history observer.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/luma-ui/statekit/observe"
	"github.com/luma-ui/statekit/scope"
)

var boardToken = scope.NewToken[*Board]("demo.board")

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", defaultConfigPath, "path to the demo config file")
	historyLimit := flag.Int("history", -1, "override the change history limit")
	logLevel := flag.String("log-level", "", "override the log level (debug, info, warn, error)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "statekit-demo: %v\n", err)
		return 1
	}
	if *historyLimit >= 0 {
		cfg.HistoryLimit = *historyLimit
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logFile, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "statekit-demo: open log: %v\n", err)
		return 1
	}
	defer logFile.Close()

	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	}))

	history := observe.NewHistory(cfg.HistoryLimit)
	observe.SetDefault(observe.NewMultiObserver(history, observe.NewSlogObserver(logger)))

	sc := scope.New()
	defer sc.Close()
	scope.Provide(sc, boardToken, NewBoard(cfg))
	board := scope.MustResolve(sc, boardToken)

	program := tea.NewProgram(
		newModel(ctx, board, history),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "statekit-demo: %v\n", err)
		return 1
	}

	printHistory(history)
	return 0
}

// printHistory dumps the tail of the recorded changes after the UI exits.
func printHistory(history *observe.History) {
	records := history.Records()
	const tail = 8
	if len(records) > tail {
		records = records[len(records)-tail:]
	}

	snapshot := history.Metrics()
	fmt.Printf("observed %d changes (%d evicted), last %d:\n",
		snapshot.ChangesObserved, snapshot.RecordsEvicted, len(records))
	for _, rec := range records {
		fmt.Printf("  %s  %s/%s\n",
			rec.Timestamp.Format("15:04:05.000"), rec.Store.Name, rec.Kind)
	}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
