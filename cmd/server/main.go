package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lk2023060901/ai-session-backend/internal/conf"
	"github.com/lk2023060901/ai-session-backend/internal/data"
	"github.com/lk2023060901/ai-session-backend/internal/pkg/logger"
	"github.com/lk2023060901/ai-session-backend/internal/pkg/sse"
	"github.com/lk2023060901/ai-session-backend/internal/server"
	"github.com/lk2023060901/ai-session-backend/internal/session/biz"
	sessiondata "github.com/lk2023060901/ai-session-backend/internal/session/data"
	sessionservice "github.com/lk2023060901/ai-session-backend/internal/session/service"
	"go.uber.org/zap"
)

var (
	configFile = flag.String("config", "config.yaml", "config file path")
)

func main() {
	flag.Parse()

	// Load configuration
	config, err := conf.LoadConfig(*configFile)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger with config
	logConfig := &logger.Config{
		Level:            config.Log.Level,
		Format:           config.Log.Format,
		Output:           config.Log.Output,
		EnableCaller:     config.Log.EnableCaller,
		EnableStacktrace: config.Log.EnableStacktrace,
		File: logger.FileConfig{
			Filename:   config.Log.File.Filename,
			MaxSize:    config.Log.File.MaxSize,
			MaxAge:     config.Log.File.MaxAge,
			MaxBackups: config.Log.File.MaxBackups,
			Compress:   config.Log.File.Compress,
		},
	}

	log, err := logger.New(logConfig)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	log.Info("config loaded successfully")

	// Initialize data layer
	d, cleanup, err := data.NewData(config, log.Logger)
	if err != nil {
		log.Fatal("failed to initialize data layer", zap.Error(err))
	}
	defer cleanup()

	// Initialize repositories
	assistantRepo := sessiondata.NewAssistantRepo(d.DB)
	topicRepo := sessiondata.NewTopicRepo(d.DB)
	settingRepo := sessiondata.NewCachedSettingRepo(
		sessiondata.NewSettingRepo(d.DB),
		d.RedisClient,
		log.Logger,
	)

	// Initialize selection core
	store := biz.NewSelectionStore()
	loader := biz.NewEntityLoader(assistantRepo, topicRepo)
	provisioner := biz.NewDefaultProvisioner(assistantRepo, topicRepo, log.Logger)
	reconciler := biz.NewReconciler(settingRepo, assistantRepo, topicRepo, loader, provisioner, log.Logger)
	assistantUseCase := biz.NewAssistantUseCase(assistantRepo, topicRepo, loader)

	hub := sse.NewHub()

	runner := biz.NewRunner(store, reconciler, assistantRepo, log.Logger)
	runner.OnSelectionChange(func(snap biz.Snapshot) {
		event := sse.Event{Type: "selection.changed", Data: sessionservice.SelectionView{
			Assistant: snap.CurrentAssistant,
			TopicID:   snap.CurrentTopicID,
		}}
		hub.Broadcast(event)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runner.Start(ctx)
	defer runner.Stop()

	// Informational startup probe; never affects reconciliation
	go biz.CheckCapabilities(ctx, map[string]biz.CapabilityCheck{
		"database": func(ctx context.Context) error {
			sqlDB, err := d.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		"redis": func(ctx context.Context) error {
			return d.RedisClient.Ping(ctx).Err()
		},
	}, log.Logger)

	// Initialize services
	selectionService := sessionservice.NewSelectionService(store, loader, hub, log.Logger)
	assistantService := sessionservice.NewAssistantService(assistantUseCase, store, loader, log.Logger)

	// Initialize server
	httpServer := server.NewHTTPServer(config, log, selectionService, assistantService)

	go func() {
		if err := httpServer.Start(); err != nil {
			log.Fatal("failed to start HTTP server", zap.Error(err))
		}
	}()

	log.Info("server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		log.Error("HTTP server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
}
