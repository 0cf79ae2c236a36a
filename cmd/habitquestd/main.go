package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/Rensjo/habitquestd/internal/config"
	"github.com/Rensjo/habitquestd/internal/notify"
	"github.com/Rensjo/habitquestd/internal/service"
	"github.com/Rensjo/habitquestd/internal/storage"
	"github.com/Rensjo/habitquestd/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "habitquestd failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg := config.RuntimeConfigFromEnv(config.DefaultRuntimeConfig())
	logger := log.New(os.Stderr, "habitquestd: ", log.LstdFlags)

	dir := storage.UserConfigDirectory()
	if cfg.ConfigDir != "" {
		dir = storage.StaticDirectory(cfg.ConfigDir)
	}
	store := storage.NewFileStore(dir)

	var notifier notify.Notifier = notify.ExecNotifier{}
	if cfg.Notifier == config.NotifierNoop {
		notifier = notify.NoopNotifier{}
	}

	svc := service.New(store, notifier, cfg.TickInterval, logger)
	if err := svc.LoadPersistedState(); err != nil {
		logger.Printf("load persisted state: %v", err)
	}
	if err := svc.Start(); err != nil {
		return err
	}
	defer svc.Stop()

	if cfg.Headless {
		logger.Printf("running headless, tick interval %s", cfg.TickInterval)
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		logger.Print("shutting down")
		return nil
	}

	program := tea.NewProgram(update.NewModel(svc))
	if _, err := program.Run(); err != nil {
		return err
	}
	return nil
}
