package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fanarena/analyst-api/internal/config"
	"github.com/fanarena/analyst-api/internal/gateway"
	"github.com/fanarena/analyst-api/internal/handlers"
	"github.com/fanarena/analyst-api/internal/logic"
	"github.com/fanarena/analyst-api/internal/sportsdata"
	"github.com/fanarena/analyst-api/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	var logger *zap.Logger
	if cfg.Env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Postgres
	pg, err := pgxpool.New(ctx, cfg.PostgresURL)
	if err != nil {
		sugar.Fatalw("Failed to create postgres pool", "error", err)
	}
	defer pg.Close()
	if err := pg.Ping(ctx); err != nil {
		sugar.Fatalw("Failed to ping postgres", "error", err)
	}

	// Redis
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		sugar.Fatalw("Failed to parse redis URL", "error", err)
	}
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		sugar.Fatalw("Failed to ping redis", "error", err)
	}

	// ClickHouse analytics sink, optional
	var ch driver.Conn
	if cfg.ClickHouseURL != "" {
		chOpts, err := clickhouse.ParseDSN(cfg.ClickHouseURL)
		if err != nil {
			sugar.Fatalw("Failed to parse clickhouse DSN", "error", err)
		}
		ch, err = clickhouse.Open(chOpts)
		if err != nil {
			sugar.Fatalw("Failed to connect to clickhouse", "error", err)
		}
		defer ch.Close()
		if err := ch.Ping(ctx); err != nil {
			sugar.Fatalw("Failed to ping clickhouse", "error", err)
		}
	} else {
		sugar.Info("CLICKHOUSE_URL not set, analytics sink disabled")
	}

	// Sports data provider
	provider := sportsdata.NewClient(sportsdata.ClientConfig{
		BaseURL:  cfg.SportsAPIURL,
		APIKey:   cfg.SportsAPIKey,
		Timeout:  cfg.FetchTimeout,
		FormSize: cfg.RecentFormSize,
		Logger:   logger,
	})

	// Model gateway; missing URL runs the analyst in template-only mode
	var gw gateway.Gateway = gateway.Disabled{}
	if cfg.GatewayURL != "" {
		gw, err = gateway.NewOpenAIClient(gateway.OpenAIConfig{
			BaseURL: cfg.GatewayURL,
			APIKey:  cfg.GatewayKey,
			Model:   cfg.GatewayModel,
			Timeout: cfg.GatewayTimeout,
		})
		if err != nil {
			sugar.Fatalw("Failed to create model gateway client", "error", err)
		}
	} else {
		sugar.Warn("MODEL_GATEWAY_URL not set, answers will use template fallbacks")
	}

	// Stores
	history := logic.NewRedisConversationStore(rdb)
	insights := logic.NewPgInsightStore(pg)
	snapshots := logic.NewRedisSnapshotCache(rdb)

	// Learning worker pool
	pool := worker.NewPool(worker.PoolConfig{
		WorkerCount:   cfg.WorkerCount,
		QueueSize:     cfg.QueueSize,
		BatchSize:     cfg.BatchSize,
		FlushInterval: cfg.FlushInterval,
		ClickHouse:    ch,
		Insights:      insights,
		Snapshots:     snapshots,
		Logger:        logger,
	})
	pool.Start(ctx)

	// Pipeline
	orchestrator := logic.NewOrchestrator(provider, cfg.FetchTimeout, logger)
	responder := logic.NewResponder(gw, cfg.GatewayMaxTokens, cfg.GatewayTemperature, logger)
	analyst := logic.NewAnalystService(logic.AnalystConfig{
		Orchestrator:  orchestrator,
		Responder:     responder,
		History:       history,
		Insights:      insights,
		Snapshots:     snapshots,
		Learner:       pool,
		Logger:        logger,
		HistoryWindow: cfg.HistoryWindow,
		CharBudget:    cfg.ContextCharBudget,
	})

	h := handlers.New(handlers.Config{
		WorkerPool: pool,
		Postgres:   pg,
		ClickHouse: ch,
		Redis:      rdb,
		Logger:     logger,
		Analyst:    analyst,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      h.Routes(cfg.AllowedOrigins),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sugar.Infow("Analyst API listening", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalw("Server failed", "error", err)
		}
	}()

	// Graceful shutdown: drain HTTP first, then flush the learning queue
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	sugar.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("Server shutdown error", "error", err)
	}

	pool.Stop()
	sugar.Info("Shutdown complete")
}
