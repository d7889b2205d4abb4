package recommend

import (
	"context"

	catdto "github.com/fekuna/marketplace-catalog-service/internal/category/dto"
	"github.com/fekuna/marketplace-catalog-service/internal/model"
	"github.com/fekuna/marketplace-catalog-service/internal/product/dto"
)

const (
	DefaultProductLimit      = 12
	DefaultCategoryLimit     = 18
	DefaultEnrichConcurrency = 8

	TypeSubCategory       = "subcategory"
	TypeProductAsCategory = "product_as_category_display"
)

type ProductFinder interface {
	FindRelated(ctx context.Context, q *dto.RelatedQuery) ([]model.Product, error)
}

type SubCategoryFinder interface {
	FindSubCategories(ctx context.Context, filters *catdto.SubCategoryFilters) ([]model.SubCategory, error)
}

type ProfileFinder interface {
	FindByUserID(ctx context.Context, userID string) (*model.BusinessProfile, error)
}

type Config struct {
	ProductLimit      int
	CategoryLimit     int
	EnrichConcurrency int
}

func DefaultConfig() Config {
	return Config{
		ProductLimit:      DefaultProductLimit,
		CategoryLimit:     DefaultCategoryLimit,
		EnrichConcurrency: DefaultEnrichConcurrency,
	}
}

// RelatedProduct pairs a related product with its seller's profile.
// Profile is nil when the seller has none or the lookup failed.
type RelatedProduct struct {
	Product model.Product
	Profile *model.BusinessProfile
}

// RelatedCategory is a cross-navigation entry: either a sibling subcategory
// or a product displayed in its place.
type RelatedCategory struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Image string `json:"image"`
	Type  string `json:"type"`
}
