package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/zhouzirui/z-wellness/backend/internal/analysis/intent"
	"github.com/zhouzirui/z-wellness/backend/internal/config"
	"github.com/zhouzirui/z-wellness/backend/internal/handler"
	"github.com/zhouzirui/z-wellness/backend/internal/model/knowledge"
	"github.com/zhouzirui/z-wellness/backend/internal/service/ai"
	"github.com/zhouzirui/z-wellness/backend/internal/service/chat"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Console output until the configured level and format are known.
	setupLogger(defaultLogConfig)

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("failed to load .env file, continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	setupLogger(cfg.Log)

	kb := knowledge.Seed()
	if cfg.KnowledgeFile != "" {
		kb, err = knowledge.LoadFile(cfg.KnowledgeFile)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load knowledge file")
		}
		log.Info().Str("path", cfg.KnowledgeFile).Msg("knowledge base loaded from file")
	}

	// The assistant only ever sees messages no knowledge rule matched.
	var assistant chat.Assistant
	if cfg.AI.FallbackEnabled {
		aiService, err := ai.NewService(ctx, cfg.AI)
		if err != nil {
			log.Warn().Err(err).Msg("failed to initialize AI service, continuing with knowledge base fallback")
		} else {
			assistant = aiService
			log.Info().Msg("AI fallback assistant initialized")
		}
	}

	chatService, err := chat.NewService(intent.New(kb), assistant, chat.Config{
		HistoryCapacity: cfg.Chat.HistoryCapacity,
		HistoryWindow:   cfg.Chat.HistoryWindow,
		SessionLimit:    cfg.Chat.SessionLimit,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize chat service")
	}

	router := handler.NewRouter(kb, chatService)

	startServer(ctx, cfg.Server, router)
}

var defaultLogConfig = config.LogConfig{Level: "info", Format: "console"}

func setupLogger(cfg config.LogConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "console" {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
		return
	}
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Info().Str("addr", addr).Msg("wellness backend listening")
	if err := runServer(ctx, srv); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
