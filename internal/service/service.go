package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Skotchmaster/sharded_shop/internal/events"
	"github.com/Skotchmaster/sharded_shop/internal/repo"
	"github.com/Skotchmaster/sharded_shop/internal/search"
	"github.com/Skotchmaster/sharded_shop/internal/shard"
	"github.com/Skotchmaster/sharded_shop/pkg/logging"
	"github.com/Skotchmaster/sharded_shop/pkg/validation"
)

var (
	ErrValidation     = errors.New("validation error")
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrSearchDisabled = errors.New("search disabled")
)

// ValidationError carries per-field messages and matches ErrValidation.
type ValidationError struct {
	Details map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Details))
	for field, msg := range e.Details {
		parts = append(parts, field+" "+msg)
	}
	return "validation error: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(field, msg string) error {
	return &ValidationError{Details: map[string]string{field: msg}}
}

func validate(req any) error {
	if err := validation.Struct(req); err != nil {
		return &ValidationError{Details: validation.ToDetails(err)}
	}
	return nil
}

type Sessions interface {
	Shard() string
	Open(ctx context.Context, replica bool) (*shard.Session, error)
}

type ShopService struct {
	Sessions        Sessions
	Events          events.Publisher
	Index           search.Indexer
	ReadFromReplica bool
}

func New(sessions Sessions, pub events.Publisher, idx search.Indexer, readFromReplica bool) *ShopService {
	if pub == nil {
		pub = events.Nop{}
	}
	if idx == nil {
		idx = search.Disabled{}
	}
	return &ShopService{
		Sessions:        sessions,
		Events:          pub,
		Index:           idx,
		ReadFromReplica: readFromReplica,
	}
}

func (s *ShopService) Shard() string { return s.Sessions.Shard() }

// read runs fn on a session for a read-only operation.
func (s *ShopService) read(ctx context.Context, fn func(r *repo.GormRepo) error) error {
	return s.withSession(ctx, s.ReadFromReplica, fn)
}

// write runs fn on a master session.
func (s *ShopService) write(ctx context.Context, fn func(r *repo.GormRepo) error) error {
	return s.withSession(ctx, false, fn)
}

func (s *ShopService) withSession(ctx context.Context, replica bool, fn func(r *repo.GormRepo) error) error {
	sess, err := s.Sessions.Open(ctx, replica)
	if err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	defer func() {
		if err := sess.Close(); err != nil {
			logging.FromContext(ctx).Warn("session_close_failed", "shard", sess.Shard, "error", err)
		}
	}()

	return translate(fn(repo.New(sess)))
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %w", &ValidationError{Details: map[string]string{"payload": "violates a foreign key"}}, err)
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return fmt.Errorf("%w: %w", &ValidationError{Details: map[string]string{"payload": "violates a check constraint"}}, err)
	default:
		return err
	}
}

func (s *ShopService) publish(ctx context.Context, eventType string, entityID uint, data any) {
	e := events.New(s.Shard(), eventType, entityID, data)
	if err := s.Events.Publish(ctx, e); err != nil {
		logging.FromContext(ctx).Warn("event_publish_failed",
			"type", eventType,
			"key", e.Key(),
			"error", err,
		)
	}
}

// Ready pings the shard master.
func (s *ShopService) Ready(ctx context.Context) error {
	return s.write(ctx, func(r *repo.GormRepo) error {
		return r.DB.WithContext(ctx).Exec("SELECT 1").Error
	})
}
