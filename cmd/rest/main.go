package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"taskfeed-be/internal/bootstrap"
	"taskfeed-be/internal/config"
	"taskfeed-be/internal/model"
	"taskfeed-be/internal/pkg/logger"
	"taskfeed-be/internal/server"
	"taskfeed-be/internal/tracer"
	"taskfeed-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.IsProduction())
	defer sysLogger.Sync()

	// 2. Initialize Tracer (no-op unless OTEL_ENABLED)
	shutdownTracer := tracer.InitTracer(cfg.App.OtelEnabled, sysLogger)
	defer shutdownTracer(context.Background())

	// 3. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.Database.Verbose)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	if cfg.Database.AutoMigrate {
		if err := gormDB.AutoMigrate(model.All()...); err != nil {
			log.Panicf("Auto migration failed: %v", err)
		}
		sysLogger.Info("Main", "Schema migrated", nil)
	}

	// 4. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg, sysLogger)
	defer container.Close()

	// 5. Start Background Services
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sysLogger.Info("Main", "Starting activity consumer", nil)
		if err := container.ConsumerService.Consume(ctx); err != nil {
			sysLogger.Error("Main", "Activity consumer stopped", map[string]interface{}{"error": err.Error()})
		}
	}()

	// 6. Initialize Server
	srv := server.New(cfg, container)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		sysLogger.Info("Main", "Shutting down", nil)
		cancel()
		_ = srv.Shutdown()
	}()

	// 7. Run Server
	if err := srv.Run(); err != nil {
		sysLogger.Error("Main", "Server exited", map[string]interface{}{"error": err.Error()})
	}
}
