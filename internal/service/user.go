package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Skotchmaster/sharded_shop/internal/events"
	"github.com/Skotchmaster/sharded_shop/internal/models"
	"github.com/Skotchmaster/sharded_shop/internal/repo"
	"github.com/Skotchmaster/sharded_shop/internal/transport"
	"github.com/Skotchmaster/sharded_shop/pkg/logging"
)

func (s *ShopService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var out *models.User
	err := s.read(ctx, func(r *repo.GormRepo) (err error) {
		out, err = r.GetUser(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, ErrNotFound
	}
	return out, nil
}

func (s *ShopService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, invalid("email", "is required")
	}

	var out *models.User
	err := s.read(ctx, func(r *repo.GormRepo) (err error) {
		out, err = r.GetUserByEmail(ctx, email)
		return err
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, ErrNotFound
	}
	return out, nil
}

func (s *ShopService) ListUsers(ctx context.Context, q transport.ListQuery) ([]models.User, error) {
	var out []models.User
	err := s.read(ctx, func(r *repo.GormRepo) (err error) {
		out, err = r.ListUsers(ctx, q.Skip, q.Limit)
		return err
	})
	return out, err
}

func (s *ShopService) CreateUser(ctx context.Context, req transport.CreateUserRequest) (*models.User, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	var out *models.User
	err := s.write(ctx, func(r *repo.GormRepo) (err error) {
		out, err = r.CreateUser(ctx, req)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.UserCreated, out.ID, out)
	return out, nil
}

// UpdateUser applies a merge patch: only fields present in req change.
func (s *ShopService) UpdateUser(ctx context.Context, id uint, req transport.PatchUserRequest) (*models.User, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	var out *models.User
	err := s.write(ctx, func(r *repo.GormRepo) (err error) {
		out, err = r.UpdateUser(ctx, id, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, ErrNotFound
	}

	if !req.Empty() {
		s.publish(ctx, events.UserUpdated, out.ID, out)
	}
	return out, nil
}

// DeleteUser removes the user. A user still referenced by orders is a conflict.
func (s *ShopService) DeleteUser(ctx context.Context, id uint) error {
	var deleted bool
	err := s.write(ctx, func(r *repo.GormRepo) (err error) {
		deleted, err = r.DeleteUser(ctx, id)
		return err
	})
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		logging.FromContext(ctx).Warn("user_delete_blocked", "user_id", id, "error", err)
		return fmt.Errorf("%w: user %d still has orders", ErrConflict, id)
	}
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}

	s.publish(ctx, events.UserDeleted, id, nil)
	return nil
}
