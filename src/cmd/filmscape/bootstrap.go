package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"filmscape/local-app/src/pkg/adapter"
	"filmscape/local-app/src/pkg/cli"
	"filmscape/local-app/src/pkg/config"
	"filmscape/local-app/src/pkg/data"
	"filmscape/local-app/src/pkg/log"
	"filmscape/local-app/src/pkg/session"
	"filmscape/local-app/src/pkg/storage"
)

// bootstrap loads configuration, wires logger, storage, data manager, session
// manager and CLI adapter, runs the scripts and then the interactive CLI.
func bootstrap(scripts []string) error {
	ctx := context.Background()

	if configPath != "" {
		config.ConfigPathSet(configPath)
	}
	if err := config.ConfigLoad(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg := config.ConfigGet()

	logger, err := log.NewLogger(cfg, log.ParseLogLevel(cfg.LogLevel))
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		if err := logger.Close(); err != nil {
			fmt.Fprintln(os.Stderr, "Failed to close logger:", err)
		}
	}()

	logger.Info(ctx, "Application started", log.Fields{"config": config.ConfigPath(), "store": cfg.UserStoreType})

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

	dataManager, err := data.NewDataManager(store.Films, store.UserStore, cfg, logger)
	if err != nil {
		logger.Error(ctx, "Failed to initialize data manager", log.Fields{"error": err})
		return fmt.Errorf("failed to initialize data manager: %w", err)
	}

	sessionManager := session.NewSessionManager(dataManager, logger)
	defer sessionManager.StopCleanupRoutine()

	adapterManager := adapter.NewAdapterManager(sessionManager, logger)
	defer func() {
		if err := adapterManager.Shutdown(); err != nil {
			logger.Error(ctx, "Failed to stop adapters", log.Fields{"error": err})
		}
	}()

	cliAdapter := adapter.NewCLIAdapter(adapterManager, logger)
	if err := cliAdapter.AdapterStart(); err != nil {
		return fmt.Errorf("failed to start CLI adapter: %w", err)
	}

	cliInstance := cli.NewCLI(cliAdapter, os.Stdout, !noColor, cfg.HistoryFile, logger)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		if _, ok := <-sigChan; ok {
			logger.Info(ctx, "Received termination signal. Shutting down...", nil)
			cliInstance.Stop()
		}
	}()

	for _, script := range scripts {
		exited, err := cliInstance.ExecuteScript(script)
		if err != nil {
			logger.Error(ctx, "Script failed", log.Fields{"script": script, "error": err})
			fmt.Fprintf(os.Stderr, "Error executing script %s: %v\n", script, err)
			continue
		}
		if exited {
			logger.Info(ctx, "Application shutting down", nil)
			return nil
		}
	}

	if err := cliInstance.Run(); err != nil {
		logger.Error(ctx, "CLI error", log.Fields{"error": err})
		return fmt.Errorf("CLI error: %w", err)
	}

	logger.Info(ctx, "Application shutting down", nil)
	fmt.Println("Goodbye!")
	return nil
}
