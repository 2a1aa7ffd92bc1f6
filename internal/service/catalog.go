package service

import (
	"context"
	"errors"

	"github.com/Skotchmaster/sharded_shop/internal/events"
	"github.com/Skotchmaster/sharded_shop/internal/models"
	"github.com/Skotchmaster/sharded_shop/internal/repo"
	"github.com/Skotchmaster/sharded_shop/internal/search"
	"github.com/Skotchmaster/sharded_shop/internal/transport"
	"github.com/Skotchmaster/sharded_shop/internal/util"
	"github.com/Skotchmaster/sharded_shop/pkg/logging"
)

func (s *ShopService) GetCategory(ctx context.Context, id uint) (*models.ProductCategory, error) {
	var out *models.ProductCategory
	err := s.read(ctx, func(r *repo.GormRepo) (err error) {
		out, err = r.GetCategory(ctx, id)
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

func (s *ShopService) ListCategories(ctx context.Context, q transport.ListQuery) ([]models.ProductCategory, error) {
	var out []models.ProductCategory
	err := s.read(ctx, func(r *repo.GormRepo) (err error) {
		out, err = r.ListCategories(ctx, q.Skip, q.Limit)
		return err
	})
	return out, err
}

func (s *ShopService) CreateCategory(ctx context.Context, req transport.CreateCategoryRequest) (*models.ProductCategory, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	var out *models.ProductCategory
	err := s.write(ctx, func(r *repo.GormRepo) (err error) {
		out, err = r.CreateCategory(ctx, req)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.CategoryCreated, out.ID, out)
	return out, nil
}

func (s *ShopService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var out *models.Product
	err := s.read(ctx, func(r *repo.GormRepo) (err error) {
		out, err = r.GetProduct(ctx, id)
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

func (s *ShopService) ListProducts(ctx context.Context, q transport.ListQuery) ([]models.Product, error) {
	var out []models.Product
	err := s.read(ctx, func(r *repo.GormRepo) (err error) {
		out, err = r.ListProducts(ctx, q.Skip, q.Limit)
		return err
	})
	return out, err
}

// CreateProduct persists the product, then indexes it. Indexing failures are
// logged only.
func (s *ShopService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	var out *models.Product
	err := s.write(ctx, func(r *repo.GormRepo) (err error) {
		out, err = r.CreateProduct(ctx, req)
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := s.Index.IndexProduct(ctx, out); err != nil {
		logging.FromContext(ctx).Warn("product_index_failed", "product_id", out.ID, "error", err)
	}
	s.publish(ctx, events.ProductCreated, out.ID, out)
	return out, nil
}

func (s *ShopService) SearchProducts(ctx context.Context, q transport.SearchQuery) (int64, []models.Product, error) {
	if err := validate(q); err != nil {
		return 0, nil, invalid("q", "is required")
	}

	skip, limit := util.Window(q.Skip, q.Limit)
	total, items, err := s.Index.Search(ctx, q.Q, skip, limit)
	if err != nil {
		if errors.Is(err, search.ErrDisabled) {
			return 0, nil, ErrSearchDisabled
		}
		return 0, nil, err
	}
	return total, items, nil
}
