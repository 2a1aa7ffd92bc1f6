package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/Skotchmaster/sharded_shop/internal/bootstrap"
	"github.com/Skotchmaster/sharded_shop/internal/search"
	"github.com/Skotchmaster/sharded_shop/internal/shard"
	pkgconfig "github.com/Skotchmaster/sharded_shop/pkg/config"
)

type Config struct {
	pkgconfig.Config

	Shard           string
	DB              shard.Endpoints
	ReadFromReplica bool

	KafkaTopic string

	Search search.Config

	Bootstrap bootstrap.Policy
}

// Load reads the process configuration from the environment. A .env file in
// the working directory is loaded first when present.
func Load() Config {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		log.Printf("Notice: .env file not loaded: %v. Using system environment variables", err)
	}

	return Config{
		Config: pkgconfig.Load(),

		Shard: pkgconfig.EnvDefault("SHARD", shard.DefaultShard),
		DB: shard.Endpoints{
			Scheme:   pkgconfig.EnvDefault("DB_SCHEME", shard.SchemePostgres),
			User:     pkgconfig.EnvDefault("DB_USER", "root"),
			Password: pkgconfig.EnvDefault("DB_PASSWORD", "rootpassword"),
			Port:     pkgconfig.EnvIntDefault("DB_PORT", 5432),
			Database: pkgconfig.EnvDefault("DB_NAME", "shop_db"),
			Params:   envOr("DB_PARAMS", "sslmode=disable"),
		},
		ReadFromReplica: pkgconfig.EnvBoolDefault("READ_FROM_REPLICA", false),

		KafkaTopic: pkgconfig.EnvDefault("KAFKA_TOPIC", "shop_events"),

		Search: search.Config{
			URL:      os.Getenv("ES_URL"),
			User:     os.Getenv("ES_USER"),
			Password: os.Getenv("ES_PASSWORD"),
		},

		Bootstrap: bootstrap.Policy{
			Attempts: pkgconfig.EnvIntDefault("BOOTSTRAP_ATTEMPTS", bootstrap.DefaultPolicy.Attempts),
			Interval: pkgconfig.EnvDurationDefault("BOOTSTRAP_INTERVAL", bootstrap.DefaultPolicy.Interval),
		},
	}
}

// LoadStrict is Load for one-shot jobs that must not fall back to the default shard.
func LoadStrict() (Config, error) {
	cfg := Load()
	if err := pkgconfig.RequireNonEmpty(os.Getenv("SHARD"), "SHARD"); err != nil {
		return cfg, fmt.Errorf("%w: %w", bootstrap.ErrShardNotSet, err)
	}
	return cfg, nil
}

// envOr lets DB_PARAMS be set to an empty value on purpose.
func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}
