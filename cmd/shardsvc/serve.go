package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"github.com/Skotchmaster/sharded_shop/internal/config"
	"github.com/Skotchmaster/sharded_shop/internal/events"
	"github.com/Skotchmaster/sharded_shop/internal/httpserver"
	"github.com/Skotchmaster/sharded_shop/internal/search"
	"github.com/Skotchmaster/sharded_shop/internal/service"
	"github.com/Skotchmaster/sharded_shop/internal/shard"
	"github.com/Skotchmaster/sharded_shop/pkg/logging"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API for the configured shard",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName, "shard", cfg.Shard)
	slog.SetDefault(logger)

	provider := shard.NewProvider(cfg.Shard, cfg.DB)
	defer func() {
		if err := provider.Close(); err != nil {
			logger.Warn("db_close_failed", "error", err)
		}
	}()

	var pub events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		p, err := events.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			return err
		}
		pub = p
		logger.Info("kafka_enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}
	defer func() {
		if err := pub.Close(); err != nil {
			logger.Warn("kafka_close_failed", "error", err)
		}
	}()

	var idx search.Indexer = search.Disabled{}
	if cfg.Search.URL != "" {
		client, err := search.NewClient(cfg.Search)
		if err != nil {
			logger.Warn("search_unavailable", "url", cfg.Search.URL, "error", err)
		} else {
			idx = search.NewIndex(client, cfg.Shard)
			logger.Info("search_enabled", "index", search.IndexName(cfg.Shard))
		}
	}

	svc := service.New(provider, pub, idx, cfg.ReadFromReplica)

	e := echo.New()
	e.HideBanner = true
	e.Use(httpserver.Common(logger)...)

	httpserver.Register(e, &httpserver.Deps{ShopHandler: &httpserver.ShopHTTP{Svc: svc}})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr, "master", shard.Host(cfg.Shard, false))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-stop:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown_failed", "error", err)
	}

	logger.Info("stopped")
	return nil
}
