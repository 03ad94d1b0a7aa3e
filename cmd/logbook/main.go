package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/dkorchagin/logbook/internal/api"
	"github.com/dkorchagin/logbook/internal/config"
	"github.com/dkorchagin/logbook/internal/confirm"
	"github.com/dkorchagin/logbook/internal/feed"
	"github.com/dkorchagin/logbook/internal/logging"
	"github.com/dkorchagin/logbook/internal/session"
	"github.com/dkorchagin/logbook/internal/storage"
	"github.com/dkorchagin/logbook/internal/tui"
)

func main() {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "logbook is an interactive client and needs a terminal")
		os.Exit(1)
	}

	cfg := config.LoadConfig()

	logFile, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	log := logging.NewJSON(logFile, slog.LevelInfo)

	ctx := context.Background()

	db, err := storage.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot open local database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	apiClient := api.NewHTTPClient(cfg.ServerURL, cfg.RequestTimeout)
	defer apiClient.Close()

	sess := session.NewStore(apiClient, storage.NewTokenStore(db), log.With("component", "session"), cfg.RequestTimeout)
	broker := confirm.NewBroker()
	notifications := feed.New(apiClient, sess.Token, log.With("component", "feed"), cfg.RequestTimeout)

	// Restores the persisted session and starts the eager identity
	// resolution; a failure here only means starting anonymous.
	if err := sess.Start(ctx); err != nil {
		log.Warn(ctx, "session restore failed, starting anonymous", "err", err)
	}

	app := tui.NewApp(sess, notifications, broker, apiClient, log.With("component", "tui"), cfg.RequestTimeout, cfg.DigestLimit)

	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
