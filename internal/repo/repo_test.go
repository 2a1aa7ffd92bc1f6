package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/sharded_shop/internal/models"
	"github.com/Skotchmaster/sharded_shop/internal/shard"
)

func newTestSession(t *testing.T) (*GormRepo, *shard.Session) {
	t.Helper()
	ctx := context.Background()

	p := shard.NewProvider("a", shard.Endpoints{
		Scheme:   shard.SchemeSQLite,
		Database: t.TempDir(),
		Params:   "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
	})
	t.Cleanup(func() { _ = p.Close() })

	master, err := p.Handle(ctx, false)
	require.NoError(t, err)
	_, err = models.NewSchema().Materialize(ctx, master)
	require.NoError(t, err)

	s, err := p.Open(ctx, false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return New(s), s
}

func ptr[T any](v T) *T { return &v }
