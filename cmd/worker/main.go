package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medlog/internal/application/maintenance/usecases"
	"medlog/internal/infrastructure/config"
	"medlog/internal/infrastructure/database"
	"medlog/internal/infrastructure/photostore"
	"medlog/internal/infrastructure/repository"
	"medlog/internal/shared/logger"
)

func main() {
	env := "development"
	if len(os.Args) > 1 {
		env = os.Args[1]
	}
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger()
	log.Infow("starting cleanup worker", "environment", env)

	if err := database.Init(&cfg.Database); err != nil {
		log.Fatalw("failed to initialize database", "error", err)
	}
	defer database.Close()

	photoStore, err := photostore.NewFileSystemPhotoStore(cfg.PhotoStore.RootDir, log)
	if err != nil {
		log.Fatalw("failed to initialize photo store", "error", err)
	}

	codeRepo := repository.NewPairingCodeRepository(database.Get())
	sessionRepo := repository.NewTerminalSessionRepository(database.Get())
	entryRepo := repository.NewLogEntryRepository(database.Get())

	cleanupUC := usecases.NewCleanupUseCase(
		codeRepo, sessionRepo, entryRepo, photoStore, cfg.Cleanup, log)

	interval := time.Duration(cfg.Cleanup.IntervalMinutes) * time.Minute
	if interval <= 0 {
		interval = time.Hour
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	runPass := func() {
		passCtx, passCancel := context.WithTimeout(ctx, 10*time.Minute)
		defer passCancel()

		if _, err := cleanupUC.Execute(passCtx); err != nil {
			log.Errorw("cleanup pass failed", "error", err)
		}
	}

	log.Infow("running initial cleanup pass")
	runPass()

	log.Infow("cleanup worker started", "interval", interval.String())

	for {
		select {
		case <-ticker.C:
			log.Infow("running scheduled cleanup pass")
			runPass()

		case sig := <-sigChan:
			log.Infow("received signal, shutting down", "signal", sig)
			return
		}
	}
}
