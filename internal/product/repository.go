package product

import (
	"context"

	"github.com/fekuna/marketplace-catalog-service/internal/model"
	"github.com/fekuna/marketplace-catalog-service/internal/product/dto"
)

type Repository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id string) error

	// FindRelated returns a projected candidate list in stable order.
	FindRelated(ctx context.Context, q *dto.RelatedQuery) ([]model.Product, error)
	IsSlugUnique(ctx context.Context, slug, excludeID string) (bool, error)
}
