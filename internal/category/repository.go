package category

import (
	"context"

	"github.com/fekuna/marketplace-catalog-service/internal/category/dto"
	"github.com/fekuna/marketplace-catalog-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, category *model.Category) error
	FindByID(ctx context.Context, id string) (*model.Category, error)
	FindBySlug(ctx context.Context, slug string) (*model.Category, error)
	FindAll(ctx context.Context) ([]model.Category, error)
	Update(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, id string) error

	CreateSubCategory(ctx context.Context, sub *model.SubCategory) error
	FindSubCategoryByID(ctx context.Context, id string) (*model.SubCategory, error)
	FindSubCategories(ctx context.Context, filters *dto.SubCategoryFilters) ([]model.SubCategory, error)
	DeleteSubCategory(ctx context.Context, id string) error
}
