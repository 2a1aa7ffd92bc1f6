package shard

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	pkgdb "github.com/Skotchmaster/sharded_shop/pkg/db"
)

// OpenFunc opens a pooled handle for one endpoint.
type OpenFunc func(ctx context.Context, driver, dsn string) (*gorm.DB, error)

type Provider struct {
	shardID   string
	endpoints Endpoints
	open      OpenFunc

	mu      sync.Mutex
	pools   map[string]*gorm.DB
	opening singleflight.Group
}

func NewProvider(shardID string, endpoints Endpoints) *Provider {
	return NewProviderWithOpener(shardID, endpoints, pkgdb.Open)
}

func NewProviderWithOpener(shardID string, endpoints Endpoints, open OpenFunc) *Provider {
	if shardID == "" {
		shardID = DefaultShard
	}
	return &Provider{
		shardID:   shardID,
		endpoints: endpoints,
		open:      open,
		pools:     make(map[string]*gorm.DB),
	}
}

func (p *Provider) Shard() string { return p.shardID }

func (p *Provider) Endpoint(replica bool) string {
	return p.endpoints.Resolve(p.shardID, replica)
}

// Handle returns the pooled handle for the role, opening it on first use.
// Concurrent first uses of a role share one open; other roles are not held
// up by it. Failed opens are not cached.
func (p *Provider) Handle(ctx context.Context, replica bool) (*gorm.DB, error) {
	role := Role(replica)

	if db, ok := p.cached(role); ok {
		return db, nil
	}

	v, err, _ := p.opening.Do(role, func() (any, error) {
		if db, ok := p.cached(role); ok {
			return db, nil
		}

		db, err := p.open(ctx, p.endpoints.Driver(), p.Endpoint(replica))
		if err != nil {
			return nil, fmt.Errorf("open %s-%s: %w", role, p.shardID, err)
		}

		p.mu.Lock()
		p.pools[role] = db
		p.mu.Unlock()
		return db, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*gorm.DB), nil
}

func (p *Provider) cached(role string) (*gorm.DB, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	db, ok := p.pools[role]
	return db, ok
}

// Open starts a session on a dedicated connection. The caller must Close it.
func (p *Provider) Open(ctx context.Context, replica bool) (*Session, error) {
	handle, err := p.Handle(ctx, replica)
	if err != nil {
		return nil, err
	}

	sqlDB, err := handle.DB()
	if err != nil {
		return nil, err
	}

	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire %s-%s connection: %w", Role(replica), p.shardID, err)
	}

	db := handle.Session(&gorm.Session{NewDB: true, Context: ctx})
	db.Statement.ConnPool = conn

	return &Session{
		DB:       db,
		Shard:    p.shardID,
		Replica:  replica,
		Endpoint: p.Endpoint(replica),
		conn:     conn,
	}, nil
}

func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	for role, db := range p.pools {
		if err := pkgdb.Close(db); err != nil {
			errs = append(errs, fmt.Errorf("close %s-%s: %w", role, p.shardID, err))
		}
		delete(p.pools, role)
	}
	return errors.Join(errs...)
}

// Session is one unit of work bound to one connection.
type Session struct {
	DB       *gorm.DB
	Shard    string
	Replica  bool
	Endpoint string

	conn *sql.Conn
	once sync.Once
	err  error
}

// Close returns the connection to the pool. Safe to call more than once.
func (s *Session) Close() error {
	s.once.Do(func() {
		s.err = s.conn.Close()
	})
	return s.err
}
