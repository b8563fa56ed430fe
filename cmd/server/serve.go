package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"inkstrokes-ai/internal/config"
	"inkstrokes-ai/internal/handlers"
	"inkstrokes-ai/internal/logger"
	"inkstrokes-ai/internal/router"
	"inkstrokes-ai/internal/server"
	"inkstrokes-ai/internal/services"
)

func runServe(cmd *cobra.Command, args []string) error {
	// ──── Step 1: Load Environment Variables ────
	envFilePresent := config.EnvFileExists()
	cfg := config.Load()
	applyFlagOverrides(cmd, cfg)

	log, err := logger.New(logger.Options{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		Production: cfg.IsProduction(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	log.Info("🤖 InkStrokes AI Backend Service")
	if !envFilePresent {
		log.Warn("No .env file found. Please create one based on .env.example")
		log.Warn("AI features will not work without proper configuration")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ──── Step 2: Initialize Gemini Client ────
	assistant, closeAssistant := services.ConfigureAssistant(ctx, services.SetupOptions{
		APIKey:    cfg.GeminiAPIKey,
		Model:     cfg.GeminiModel,
		VerifyKey: cfg.GeminiVerifyKey,
	}, log)
	defer closeAssistant()

	if assistant.Ready() {
		log.Info("✓ Google AI Studio API configured", zap.String("model", assistant.Model()))
	} else {
		log.Warn("AI model not initialized - service will run but AI features will be unavailable")
		log.Warn("To enable AI features:")
		log.Warn("1. Get API key from: " + services.SetupURL)
		log.Warn("2. Add GOOGLE_AI_API_KEY=your_key_here to your .env file")
		log.Warn("3. Restart the service")
	}

	// ──── Step 3: Start HTTP Server ────
	chatHandler := handlers.NewChatHandler(assistant, log, cfg.MaxBodyBytes)
	r := router.New(chatHandler, cfg.CORSAllowedOrigins, log)
	srv := server.New(cfg.Addr(), r)

	log.Info(fmt.Sprintf("🔧 Health check: http://%s/api/ai/health", cfg.Addr()))

	if err := server.Run(ctx, srv, log); err != nil {
		log.Error("Failed to start server", zap.Error(err))
		return err
	}
	return nil
}

func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("host") {
		cfg.Host = host
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = port
	}
}
