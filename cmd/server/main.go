package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"fintrack/internal/config"
	"fintrack/internal/es"
	"fintrack/internal/handlers"
	"fintrack/internal/logging"
	"fintrack/internal/mykafka"
	"fintrack/internal/service/assistant"
	"fintrack/internal/service/dashboard"
	"fintrack/internal/service/token"
	"fintrack/internal/store"
	httpserver "fintrack/internal/transport/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(cfg.LogLevel)

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	users := store.NewUserStore(db)
	ledger := store.NewLedgerStore(db)
	tokens := token.NewService(users, []byte(cfg.JWTSecret), []byte(cfg.RefreshSecret), cfg.AccessExpiryMin, cfg.RefreshExpiryMin)
	engine := dashboard.NewEngine(ledger)

	var producer *mykafka.Producer
	if cfg.KafkaAddress != "" {
		producer = mykafka.NewProducer([]string{cfg.KafkaAddress})
	} else {
		logger.Warn("kafka address not set, domain events disabled")
	}

	var esClient *elasticsearch.Client
	if cfg.ESURL != "" {
		esClient, err = es.NewClient(cfg)
		if err != nil {
			log.Fatalf("elasticsearch init failed: %v", err)
		}
	} else {
		logger.Warn("elasticsearch url not set, transaction search disabled")
	}

	var ai *assistant.Service
	if cfg.GeminiAPIKey != "" {
		ai, err = assistant.New(context.Background(), cfg.GeminiAPIKey)
		if err != nil {
			log.Fatalf("assistant init failed: %v", err)
		}
	} else {
		logger.Warn("gemini api key not set, finance assistant disabled")
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), logging.RequestLogger(logger))
	e.Static("/uploads", cfg.UploadDir)

	deps := httpserver.Deps{
		AuthHandler:      &handlers.AuthHandler{Users: users, Tokens: tokens, Producer: producer, UploadDir: cfg.UploadDir},
		IncomeHandler:    &handlers.IncomeHandler{Ledger: ledger, Producer: producer, ES: esClient, ESIndex: cfg.ESIndex},
		ExpenseHandler:   &handlers.ExpenseHandler{Ledger: ledger, Producer: producer, ES: esClient, ESIndex: cfg.ESIndex},
		DashboardHandler: &handlers.DashboardHandler{Engine: engine},
		SearchHandler:    &handlers.SearchHandler{ES: esClient, Index: cfg.ESIndex},
		AssistantHandler: &handlers.AssistantHandler{AI: ai},
		Tokens:           tokens,
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()
	logger.Info("server started", "port", cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	}

	if err := producer.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	logger.Info("shutdown complete")
}
