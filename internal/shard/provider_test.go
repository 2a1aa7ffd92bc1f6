package shard

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	pkgdb "github.com/Skotchmaster/sharded_shop/pkg/db"
)

func sqliteEndpoints(t *testing.T) Endpoints {
	t.Helper()
	return Endpoints{
		Scheme:   SchemeSQLite,
		Database: t.TempDir(),
		Params:   "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
	}
}

func TestProviderOpensSessionOnResolvedEndpoint(t *testing.T) {
	endpoints := sqliteEndpoints(t)
	p := NewProvider("b", endpoints)
	t.Cleanup(func() { _ = p.Close() })

	ctx := context.Background()
	s, err := p.Open(ctx, false)
	require.NoError(t, err)

	assert.Equal(t, "b", s.Shard)
	assert.False(t, s.Replica)
	assert.Equal(t, filepath.Join(endpoints.Database, "master-b.db")+"?"+endpoints.Params, s.Endpoint)

	var one int
	require.NoError(t, s.DB.WithContext(ctx).Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
}

func TestProviderDefaultsShard(t *testing.T) {
	p := NewProviderWithOpener("", sqliteEndpoints(t), pkgdb.Open)
	assert.Equal(t, DefaultShard, p.Shard())
}

func TestProviderCachesHandlesPerRole(t *testing.T) {
	calls := map[string]int{}
	open := func(ctx context.Context, driver, dsn string) (*gorm.DB, error) {
		calls[dsn]++
		return pkgdb.Open(ctx, driver, dsn)
	}
	p := NewProviderWithOpener("a", sqliteEndpoints(t), open)
	t.Cleanup(func() { _ = p.Close() })

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		s, err := p.Open(ctx, false)
		require.NoError(t, err)
		require.NoError(t, s.Close())
	}
	s, err := p.Open(ctx, true)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	assert.Equal(t, 1, calls[p.Endpoint(false)])
	assert.Equal(t, 1, calls[p.Endpoint(true)])
}

func TestProviderDoesNotCacheFailedOpen(t *testing.T) {
	attempts := 0
	open := func(ctx context.Context, driver, dsn string) (*gorm.DB, error) {
		attempts++
		if attempts == 1 {
			return nil, errors.New("connection refused")
		}
		return pkgdb.Open(ctx, driver, dsn)
	}
	p := NewProviderWithOpener("a", sqliteEndpoints(t), open)
	t.Cleanup(func() { _ = p.Close() })

	ctx := context.Background()
	_, err := p.Open(ctx, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "master-a")

	s, err := p.Open(ctx, false)
	require.NoError(t, err)
	require.NoError(t, s.Close())
	assert.Equal(t, 2, attempts)
}

func TestProviderSlowReplicaDoesNotBlockMaster(t *testing.T) {
	eps := sqliteEndpoints(t)
	replicaDSN := eps.Resolve("a", true)

	release := make(chan struct{})
	entered := make(chan struct{})
	open := func(ctx context.Context, driver, dsn string) (*gorm.DB, error) {
		if dsn == replicaDSN {
			close(entered)
			<-release
			return nil, errors.New("replica unreachable")
		}
		return pkgdb.Open(ctx, driver, dsn)
	}
	p := NewProviderWithOpener("a", eps, open)
	t.Cleanup(func() { _ = p.Close() })

	replicaErr := make(chan error, 1)
	go func() {
		_, err := p.Handle(context.Background(), true)
		replicaErr <- err
	}()
	<-entered

	done := make(chan error, 1)
	go func() {
		s, err := p.Open(context.Background(), false)
		if err == nil {
			err = s.Close()
		}
		done <- err
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("master session waited on the replica open")
	}

	close(release)
	require.Error(t, <-replicaErr)
}

func TestProviderConcurrentFirstUseOpensOnce(t *testing.T) {
	var (
		mu    sync.Mutex
		calls int
	)
	open := func(ctx context.Context, driver, dsn string) (*gorm.DB, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		time.Sleep(20 * time.Millisecond)
		return pkgdb.Open(ctx, driver, dsn)
	}
	p := NewProviderWithOpener("a", sqliteEndpoints(t), open)
	t.Cleanup(func() { _ = p.Close() })

	var wg sync.WaitGroup
	handles := make([]*gorm.DB, 8)
	for i := range handles {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			db, err := p.Handle(context.Background(), false)
			assert.NoError(t, err)
			handles[i] = db
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, calls)
	for _, db := range handles {
		assert.Same(t, handles[0], db)
	}
}
