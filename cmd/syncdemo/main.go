// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command syncdemo is a small interactive host for the sync engine: it
// wires every collaborator the Facade needs and drives it through a
// terminal UI (internal/tui), exercising the full create-account /
// login-with-recovery-code / connect-a-new-device / status flow from a
// single process. It is not part of the engine's test surface; real hosts
// (mobile apps, browser extensions) wire the same Facade behind their own
// UI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/syncvault/engine/internal/account"
	"github.com/syncvault/engine/internal/config"
	"github.com/syncvault/engine/internal/connect"
	"github.com/syncvault/engine/internal/crypto"
	"github.com/syncvault/engine/internal/facade"
	"github.com/syncvault/engine/internal/logger"
	"github.com/syncvault/engine/internal/metadata"
	"github.com/syncvault/engine/internal/provider"
	"github.com/syncvault/engine/internal/scheduler"
	"github.com/syncvault/engine/internal/securestore"
	"github.com/syncvault/engine/internal/stats"
	"github.com/syncvault/engine/internal/syncqueue"
	"github.com/syncvault/engine/internal/transport"
	"github.com/syncvault/engine/internal/tui"
	"github.com/syncvault/engine/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewEngineLogger("syncdemo")

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	f, err := buildFacade(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error building facade")
	}
	defer f.Close()

	host := tui.New(f, log)
	if err := host.Run(ctx, cfg.App.DeviceName, cfg.App.DeviceType); err != nil {
		fmt.Fprintf(os.Stderr, "tui run error: %v\n", err)
		os.Exit(1)
	}
}

// buildFacade wires every collaborator Dependencies needs from the loaded
// configuration, mirroring the construction order the server's
// cmd/syncserver main follows for its own store/server pair. The metadata
// store's background worker runs for the lifetime of ctx.
func buildFacade(ctx context.Context, cfg *config.StructuredConfig, log *logger.Logger) (facade.Facade, error) {
	metadataStore, err := metadata.NewStore(cfg.Storage.MetadataDB.DSN)
	if err != nil {
		return nil, fmt.Errorf("open metadata store: %w", err)
	}
	go metadataStore.Run(ctx)

	client, err := transport.NewClient(cfg.Server.BaseURL(), cfg.Server.RequestTimeout)
	if err != nil {
		return nil, fmt.Errorf("build transport client: %w", err)
	}

	crypter := crypto.NewCrypter()
	secureStore := securestore.NewFileSecureStore(cfg.Storage.SecureStore.Path)
	accountManager := account.NewManager(client, crypter)

	broker := connect.NewBroker(client, crypter, connect.Config{
		PollInterval:    cfg.Connect.PollInterval,
		MaxPollAttempts: cfg.Connect.MaxPollAttempts,
	})

	sched := scheduler.New(scheduler.Config{
		DataChangedDebounce:  cfg.Scheduler.DataChangedDebounce,
		AppLifecycleThrottle: cfg.Scheduler.AppLifecycleThrottle,
	})

	providers := []provider.Provider{
		provider.NewBookmarkProvider(metadataStore),
		provider.NewCredentialProvider(metadataStore),
	}
	queue := syncqueue.NewQueue(client, crypter, providers)

	dailyStats, err := stats.New(logDailyStats(log), cfg.Storage.MetadataDB.DSN+".stats.json")
	if err != nil {
		return nil, fmt.Errorf("open daily stats: %w", err)
	}

	f, err := facade.New(facade.Dependencies{
		SecureStore:     secureStore,
		AccountManager:  accountManager,
		Broker:          broker,
		Scheduler:       sched,
		Queue:           queue,
		Stats:           dailyStats,
		SyncEnabledPath: cfg.Storage.SecureStore.Path + ".sync-enabled",
	})
	if err != nil {
		return nil, fmt.Errorf("construct facade: %w", err)
	}

	return f, nil
}

func logDailyStats(log *logger.Logger) stats.FlushFunc {
	return func(date string, snapshot models.DailyStatsSnapshot) {
		log.Info().Str("date", date).Int("total_sync_attempts", snapshot.TotalSyncAttempts).Msg("daily stats flushed")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
