package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Skotchmaster/sharded_shop/internal/bootstrap"
	"github.com/Skotchmaster/sharded_shop/internal/config"
	"github.com/Skotchmaster/sharded_shop/pkg/logging"
)

var initDBCmd = &cobra.Command{
	Use:   "init-db",
	Short: "Wait for the shard master and create missing tables",
	Long:  `Creates the schema on the master of the shard named by SHARD. Replicas are left to replication.`,
	RunE:  runInitDB,
}

func runInitDB(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadStrict()
	if err != nil {
		return err
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("init_db_start", "shard", cfg.Shard)
	if _, err := bootstrap.ForEndpoints(ctx, cfg.Shard, cfg.DB, cfg.Bootstrap, logger); err != nil {
		return err
	}
	logger.Info("init_db_done", "shard", cfg.Shard)
	return nil
}
