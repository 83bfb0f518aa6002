package main

import (
	"context"
	"flag"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/cbodonnell/stoneworks/pkg/api"
	"github.com/cbodonnell/stoneworks/pkg/config"
	"github.com/cbodonnell/stoneworks/pkg/engine"
	"github.com/cbodonnell/stoneworks/pkg/log"
	"github.com/cbodonnell/stoneworks/pkg/messages"
	"github.com/cbodonnell/stoneworks/pkg/network"
	"github.com/cbodonnell/stoneworks/pkg/queue"
	"github.com/cbodonnell/stoneworks/pkg/repositories"
	"github.com/cbodonnell/stoneworks/pkg/schematic"
	"github.com/cbodonnell/stoneworks/pkg/state"
	"github.com/cbodonnell/stoneworks/pkg/version"
	"github.com/cbodonnell/stoneworks/pkg/workers"
	"github.com/cbodonnell/stoneworks/pkg/world"
)

func main() {
	configPath := flag.String("config", "", "Path to a .yaml or .jsonc config file")
	logLevel := flag.String("log-level", "", "Log level, overrides the config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	parsedLogLevel, err := log.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	log.Info("Starting stoneworks server version %s", version.Get())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registry := world.NewRegistry()
	for _, w := range cfg.Worlds {
		registry.Add(world.NewGrid(w.Name, w.GridOptions()))
		log.Info("Loaded world %s (typed=%t, y %d..%d)", w.Name, w.Typed, w.MinY, w.MaxY)
	}

	u, err := url.Parse(cfg.DatabaseURL)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse connection string: %v", err))
	}

	var repository repositories.Repository
	switch u.Scheme {
	case "sqlite":
		repository, err = repositories.NewSQLiteRepository(ctx, u.Host+u.Path, filepath.Join(cfg.Migrations, "sqlite"))
		if err != nil {
			panic(fmt.Sprintf("Failed to create SQLite repository: %v", err))
		}
	case "postgres", "postgresql":
		repository, err = repositories.NewPostgresRepository(ctx, u.String(), filepath.Join(cfg.Migrations, "postgres"))
		if err != nil {
			panic(fmt.Sprintf("Failed to create Postgres repository: %v", err))
		}
	default:
		panic(fmt.Sprintf("Unknown database type %s", u.Scheme))
	}
	defer repository.Close(context.Background())

	store, err := schematic.NewStore(schematic.NewStoreOptions{
		Dir:        cfg.SchematicDir,
		Compress:   cfg.Compress,
		Repository: repository,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to create schematic store: %v", err))
	}

	networkManager := network.NewNetworkManager(network.NewNetworkManagerOptions{
		ClientManager: network.NewClientManager(messages.MessageBufferSize),
	})

	broadcastMessageChannelSize := 100
	broadcastMessageChan := make(chan workers.BroadcastMessage, broadcastMessageChannelSize)
	broadcastMessageWorker := workers.NewBroadcastMessageWorker(workers.NewBroadcastMessageWorkerOptions{
		Broadcaster:          networkManager,
		BroadcastMessageChan: broadcastMessageChan,
	})
	go broadcastMessageWorker.Start(ctx)

	stateManager := state.NewInMemoryStateManager()
	saveSchematicChannelSize := 100
	saveSchematicChan := make(chan workers.SaveSchematicRequest, saveSchematicChannelSize)
	saveSchematicWorker := workers.NewSaveSchematicWorker(workers.NewSaveSchematicWorkerOptions{
		Saver:                store,
		SaveSchematicChan:    saveSchematicChan,
		StateManager:         stateManager,
		BroadcastMessageChan: broadcastMessageChan,
		Interval:             cfg.StatsInterval.Std(),
	})
	go saveSchematicWorker.Start(ctx)

	e, err := engine.NewEngine(engine.NewEngineOptions{
		Worlds:               registry,
		Variant:              cfg.Variant(),
		TaskQueue:            queue.NewInMemoryQueue(engine.DefaultTaskQueueSize),
		MaxTasks:             cfg.MaxTasks,
		MaxChecks:            cfg.MaxChecks,
		MaxWrites:            cfg.MaxWrites,
		PasteBudget:          cfg.PasteBudget,
		Sparse:               cfg.SparseSet(),
		Store:                store,
		StateManager:         stateManager,
		SaveSchematicChan:    saveSchematicChan,
		BroadcastMessageChan: broadcastMessageChan,
		TickInterval:         cfg.TickInterval.Std(),
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to create engine: %v", err))
	}

	apiServerOpts := api.NewAPIServerOptions{
		Port:   cfg.APIPort,
		Engine: e,
		Events: networkManager.HandleWS(ctx),
	}
	tlsCertFile := os.Getenv("STONEWORKS_API_TLS_CERT_FILE")
	tlsKeyFile := os.Getenv("STONEWORKS_API_TLS_KEY_FILE")
	if tlsCertFile != "" && tlsKeyFile != "" {
		apiServerOpts.TLS = &api.TLSConfig{
			CertFile: tlsCertFile,
			KeyFile:  tlsKeyFile,
		}
	}
	server := api.NewAPIServer(apiServerOpts)
	go server.Start()

	go func() {
		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
		sig := <-interrupt
		log.Info("Received %v, shutting down", sig)

		stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer stopCancel()
		if err := server.Stop(stopCtx); err != nil {
			log.Error("Failed to stop server: %v", err)
		}
		cancel()
	}()

	log.Info("Starting engine with a %v tick", cfg.TickInterval)
	if err := e.Start(ctx); err != nil {
		panic(fmt.Sprintf("Failed to start engine: %v", err))
	}
	log.Info("Engine stopped")
}
