package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Skotchmaster/sharded_shop/internal/seed"
	"github.com/Skotchmaster/sharded_shop/pkg/logging"
)

var (
	seedUsers int
	seedURL   string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create random users through a running instance",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		g := seed.New(seedURL, logging.New(os.Getenv("LOG_LEVEL")))
		_, err := g.CreateUsers(ctx, seedUsers)
		return err
	},
}

func init() {
	seedCmd.Flags().IntVar(&seedUsers, "users", 10, "number of users to create")
	seedCmd.Flags().StringVar(&seedURL, "url", "http://localhost:8080", "base URL of the instance")
}
