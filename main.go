package main

import (
	"Go_Scan/config"
	"Go_Scan/internal/awsx"
	"Go_Scan/internal/handler"
	"Go_Scan/internal/llm"
	"Go_Scan/internal/logging"
	"Go_Scan/internal/ocr"
	"Go_Scan/internal/repo"
	"Go_Scan/internal/service"
	"Go_Scan/internal/session"
	"Go_Scan/internal/storage"
	"Go_Scan/router"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
)

const shutdownTimeout = 10 * time.Second

// main wires the services and serves HTTP until SIGINT/SIGTERM.
func main() {
	logger := logging.NewJSON()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger); err != nil {
		logger.Error(ctx, "server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger logging.Logger) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	db, err := repo.OpenMysql(cfg)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	var store session.Store
	if cfg.SessionStore == "memory" {
		logger.Warn(ctx, "using in-memory session store; sessions are lost on restart")
		store = session.NewMemoryStore()
	} else {
		rdb, err := repo.OpenRedis(ctx, cfg)
		if err != nil {
			return err
		}
		defer rdb.Close()
		store = session.NewRedisStore(rdb)
	}
	sessions := session.NewManager(store, cfg.SecretKey, cfg.SessionTTL)
	auth := service.NewAuthService(repo.NewUserRepo(db), sessions)

	awsCfg, err := awsx.LoadConfig(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	objects, err := newObjectStore(cfg, awsCfg)
	if err != nil {
		return err
	}
	detector := ocr.NewTextractClient(awsCfg, ocr.Options{
		PollInterval: cfg.OCRPollInterval,
		MaxAttempts:  cfg.OCRMaxAttempts,
	}, logger)
	docs := service.NewDocumentService(objects, detector, cfg.Storage.Bucket, cfg.MaxUploadBytes, logger)

	if cfg.OpenAIKey == "" {
		logger.Warn(ctx, "OPENAI_API_KEY is not set; text correction and evaluation will fail")
	}
	text := llm.NewOpenAIClient(cfg.OpenAIKey, cfg.OpenAIBaseURL, llm.Options{
		Model:       cfg.OpenAIModel,
		Temperature: cfg.OpenAITemperature,
	}, logger)

	h := handler.New(auth, docs, text, handler.Options{
		CookieSecure: cfg.CookieSecure,
		SessionTTL:   cfg.SessionTTL,
		// base64 inflates by 4/3, plus room for the JSON envelope
		MaxBodyBytes: cfg.MaxUploadBytes/3*4 + 4096,
	}, logger)
	engine, err := router.InitRouter(h, auth, cfg.CORSAllowOrigins)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "listening", "addr", cfg.Addr, "storage", cfg.Storage.Driver, "bucket", cfg.Storage.Bucket)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info(context.Background(), "shutting down")
	// OCR waits can run for minutes; end them so the drain below finishes.
	detector.Shutdown()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newObjectStore(cfg *config.Config, awsCfg aws.Config) (storage.Store, error) {
	if cfg.Storage.Driver == "minio" {
		return storage.NewMinioStore(cfg.Storage)
	}
	return storage.NewS3Store(awsCfg, cfg.Storage.Endpoint), nil
}
