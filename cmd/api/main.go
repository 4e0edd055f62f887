package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"alfredoptarigan/candidate-intake/internal/bootstrap"
	"alfredoptarigan/candidate-intake/internal/config"
	"alfredoptarigan/candidate-intake/internal/logger"
	"alfredoptarigan/candidate-intake/internal/server"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ %v", err)
	}

	zapLog, err := logger.New(cfg.IsDevelopment(), cfg.Server.LogJSON)
	if err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer zapLog.Sync()
	zapLog.Info("✅ Config loaded successfully", zap.String("env", cfg.Server.Env))

	// External clients are built once and shared by every request
	deps, err := bootstrap.Build(context.Background(), cfg, zapLog)
	if err != nil {
		zapLog.Fatal("❌ Failed to initialize services", zap.Error(err))
	}
	defer deps.Close()

	app := server.New(server.Options{
		MaxFileSize:   cfg.Storage.MaxFileSize,
		AccessLog:     true,
		IntakeService: deps.Intake,
		Logger:        zapLog,
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zapLog.Info("🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			zapLog.Error("❌ Server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zapLog.Info("🚀 Server starting",
		zap.String("addr", addr),
		zap.String("form", fmt.Sprintf("http://localhost%s/", addr)),
	)

	if err := app.Listen(addr); err != nil {
		zapLog.Fatal("❌ Failed to start server", zap.Error(err))
	}
}
