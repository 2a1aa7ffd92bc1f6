package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Skotchmaster/sharded_shop/internal/models"
	"github.com/Skotchmaster/sharded_shop/internal/transport"
)

func (r *GormRepo) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return first[models.User](ctx, r.DB, "id = ?", id)
}

func (r *GormRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return first[models.User](ctx, r.DB, "email = ?", email)
}

func (r *GormRepo) ListUsers(ctx context.Context, skip, limit int) ([]models.User, error) {
	return list[models.User](ctx, r.DB, skip, limit)
}

func (r *GormRepo) CreateUser(ctx context.Context, req transport.CreateUserRequest) (*models.User, error) {
	user := models.User{
		Email:    req.Email,
		IsActive: req.Active(),
	}
	if err := r.DB.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	return r.GetUser(ctx, user.ID)
}

// UpdateUser merges the supplied fields into the stored row. A missing user
// yields nil, nil without any write.
func (r *GormRepo) UpdateUser(ctx context.Context, id uint, req transport.PatchUserRequest) (*models.User, error) {
	var found bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("id = ?", id).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		found = true

		columns := applyUserPatch(&user, req)
		if len(columns) == 0 {
			return nil
		}
		return tx.Model(&user).Select(columns).Updates(&user).Error
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return r.GetUser(ctx, id)
}

func applyUserPatch(user *models.User, req transport.PatchUserRequest) []string {
	var columns []string
	if req.Email != nil {
		user.Email = *req.Email
		columns = append(columns, "email")
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
		columns = append(columns, "is_active")
	}
	return columns
}

// DeleteUser reports whether a row was removed.
func (r *GormRepo) DeleteUser(ctx context.Context, id uint) (bool, error) {
	res := r.DB.WithContext(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
