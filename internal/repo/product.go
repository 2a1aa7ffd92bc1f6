package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/sharded_shop/internal/models"
	"github.com/Skotchmaster/sharded_shop/internal/transport"
	"github.com/Skotchmaster/sharded_shop/internal/util"
)

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).Preload("Category").Where("id = ?", id).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) ListProducts(ctx context.Context, skip, limit int) ([]models.Product, error) {
	skip, limit = util.Window(skip, limit)

	items := []models.Product{}
	if err := r.DB.WithContext(ctx).
		Preload("Category").
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
	}
	if err := r.DB.WithContext(ctx).Omit(clause.Associations).Create(&product).Error; err != nil {
		return nil, err
	}
	return r.GetProduct(ctx, product.ID)
}
