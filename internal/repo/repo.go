// Package repo holds the entity access operations. A GormRepo is bound to one
// shard session; every write commits before the call returns.
package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Skotchmaster/sharded_shop/internal/shard"
	"github.com/Skotchmaster/sharded_shop/internal/util"
)

type GormRepo struct {
	DB *gorm.DB
}

func New(s *shard.Session) *GormRepo {
	return &GormRepo{DB: s.DB}
}

// first loads one row by condition; a missing row yields nil, nil.
func first[T any](ctx context.Context, db *gorm.DB, query any, args ...any) (*T, error) {
	var row T
	if err := db.WithContext(ctx).Where(query, args...).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func list[T any](ctx context.Context, db *gorm.DB, skip, limit int) ([]T, error) {
	skip, limit = util.Window(skip, limit)

	items := []T{}
	if err := db.WithContext(ctx).Order("id ASC").Offset(skip).Limit(limit).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
