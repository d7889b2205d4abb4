package product

import (
	"context"

	"github.com/fekuna/marketplace-catalog-service/internal/model"
	"github.com/fekuna/marketplace-catalog-service/internal/product/dto"
	"github.com/fekuna/marketplace-catalog-service/internal/product/view"
)

type UseCase interface {
	// GetProductDetail returns the product with its related products and
	// categories. Unknown ids yield an apperror NotFound and no further work.
	GetProductDetail(ctx context.Context, id string) (*view.ProductDetail, error)
	ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, input *dto.DeleteProductInput) error
}
