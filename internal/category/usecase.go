package category

import (
	"context"

	"github.com/fekuna/marketplace-catalog-service/internal/category/dto"
	"github.com/fekuna/marketplace-catalog-service/internal/model"
)

type UseCase interface {
	CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error)
	UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	CreateSubCategory(ctx context.Context, input *dto.CreateSubCategoryInput) (*model.SubCategory, error)
	DeleteSubCategory(ctx context.Context, id string) error
	ListCategoryTree(ctx context.Context) ([]dto.CategoryNode, error)
}
