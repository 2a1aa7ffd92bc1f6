package repo

import (
	"context"

	"github.com/Skotchmaster/sharded_shop/internal/models"
	"github.com/Skotchmaster/sharded_shop/internal/transport"
)

func (r *GormRepo) GetCategory(ctx context.Context, id uint) (*models.ProductCategory, error) {
	return first[models.ProductCategory](ctx, r.DB, "id = ?", id)
}

func (r *GormRepo) ListCategories(ctx context.Context, skip, limit int) ([]models.ProductCategory, error) {
	return list[models.ProductCategory](ctx, r.DB, skip, limit)
}

func (r *GormRepo) CreateCategory(ctx context.Context, req transport.CreateCategoryRequest) (*models.ProductCategory, error) {
	category := models.ProductCategory{Name: req.Name}
	if err := r.DB.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, err
	}
	return r.GetCategory(ctx, category.ID)
}
