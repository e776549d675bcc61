package main

import (
	"context"
	"fmt"
	"os"

	"github.com/chzyer/readline"

	"github.com/aboiyar/AirBnB-clone/internal/config"
	"github.com/aboiyar/AirBnB-clone/internal/console"
	"github.com/aboiyar/AirBnB-clone/internal/event"
	"github.com/aboiyar/AirBnB-clone/internal/log"
	"github.com/aboiyar/AirBnB-clone/internal/storage"
	"github.com/aboiyar/AirBnB-clone/internal/ui"
)

// bootstrap loads configuration, opens the logger and the store, runs any
// script files given as arguments and then the interactive loop.
func bootstrap(scripts []string) error {
	// Load configuration
	if err := config.ConfigLoad(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg := config.ConfigGet()

	level := log.LevelWarn
	if cfg.LogInfo {
		level = log.LevelDebug
	}
	logger, err := log.NewLogger(cfg, level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		if err := logger.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "hbnb: %v\n", err)
		}
	}()

	ctx := context.Background()
	logger.Info(ctx, "Application started", log.Fields{"config": config.ConfigPath(), "storage": cfg.StorageType})

	store, err := storage.NewStorage(cfg, logger)
	if err != nil {
		logger.Error(ctx, "Failed to initialize storage", log.Fields{"error": err})
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error(ctx, "Failed to close storage", log.Fields{"error": err})
		}
	}()

	events := event.NewEventManager(logger)
	events.Subscribe(func(e event.Event) {
		logger.Info(ctx, "Record "+e.Type.String(), log.Fields{"key": e.Key, "attributes": e.Attrs})
	}, event.RecordCreated, event.RecordUpdated, event.RecordDestroyed)

	out := ui.NewTerminalUI(os.Stdout)
	con := console.New(store, os.Stdout,
		console.WithUI(out),
		console.WithLogger(logger),
		console.WithEvents(events),
		console.WithPasswordHashing(cfg.HashPasswords),
	)

	// Script files run before the interactive loop
	for _, script := range scripts {
		exit, err := con.ExecuteScript(script)
		if err != nil {
			logger.Error(ctx, "Script failed", log.Fields{"script": script, "error": err})
			return fmt.Errorf("error executing script %s: %w", script, err)
		}
		if exit {
			return nil
		}
	}

	interactive := ui.IsTerminal(os.Stdin)
	prompt := cfg.Prompt
	if !interactive {
		prompt = ""
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          out.PromptString(prompt),
		HistoryFile:     cfg.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize readline: %w", err)
	}
	defer rl.Close()

	if err := con.Run(rl); err != nil {
		logger.Error(ctx, "Console error", log.Fields{"error": err})
		return err
	}

	logger.Info(ctx, "Application shutting down", nil)
	return nil
}
