package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSV(t *testing.T) {
	assert.Nil(t, CSV(""))
	assert.Equal(t, []string{"kafka:9092", "kafka2:9092"}, CSV(" kafka:9092, ,kafka2:9092 "))
}

func TestEnvDefaults(t *testing.T) {
	t.Setenv("SHOP_TEST_STR", "value")
	t.Setenv("SHOP_TEST_INT", "not-a-number")
	t.Setenv("SHOP_TEST_BOOL", "true")
	t.Setenv("SHOP_TEST_DUR", "250ms")

	assert.Equal(t, "value", EnvDefault("SHOP_TEST_STR", "def"))
	assert.Equal(t, "def", EnvDefault("SHOP_TEST_MISSING", "def"))
	assert.Equal(t, 7, EnvIntDefault("SHOP_TEST_INT", 7))
	assert.True(t, EnvBoolDefault("SHOP_TEST_BOOL", false))
	assert.Equal(t, 250*time.Millisecond, EnvDurationDefault("SHOP_TEST_DUR", time.Second))
	assert.Equal(t, time.Second, EnvDurationDefault("SHOP_TEST_MISSING", time.Second))
}

func TestLoad(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg := Load()
	require.Equal(t, 9090, cfg.ServerPort)
	require.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
}

func TestRequireNonEmpty(t *testing.T) {
	require.Error(t, RequireNonEmpty("", "SHARD"))
	require.NoError(t, RequireNonEmpty("a", "SHARD"))
}
