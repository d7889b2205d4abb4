package usecase

import (
	"context"
	"time"

	"github.com/fekuna/marketplace-catalog-service/internal/apperror"
	"github.com/fekuna/marketplace-catalog-service/internal/category"
	"github.com/fekuna/marketplace-catalog-service/internal/category/dto"
	"github.com/fekuna/marketplace-catalog-service/internal/logger"
	"github.com/fekuna/marketplace-catalog-service/internal/model"
	"github.com/fekuna/marketplace-catalog-service/internal/slug"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const treeCacheKey = "catalog:categories:tree"

// TreeCache stores the rendered category tree. *cache.RedisClient satisfies it.
type TreeCache interface {
	GetJSON(ctx context.Context, key string, dst any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type categoryUseCase struct {
	repo   category.Repository
	cache  TreeCache
	ttl    time.Duration
	logger logger.ZapLogger
}

// NewCategoryUseCase builds the category use case. cache may be nil, in which
// case every tree read goes to the database.
func NewCategoryUseCase(repo category.Repository, cache TreeCache, ttl time.Duration, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		repo:   repo,
		cache:  cache,
		ttl:    ttl,
		logger: log,
	}
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error) {
	s := slug.Make(input.Name)
	if s == "" {
		return nil, apperror.Validation("name must contain letters or digits")
	}

	existing, err := uc.repo.FindBySlug(ctx, s)
	if err != nil {
		return nil, apperror.Wrap(err, "failed to check category slug")
	}
	if existing != nil {
		return nil, apperror.Conflict("category " + s + " already exists")
	}

	now := time.Now().UTC()
	cat := &model.Category{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name: input.Name,
		Slug: s,
		Icon: input.Icon,
	}

	if err := uc.repo.Create(ctx, cat); err != nil {
		return nil, apperror.Wrap(err, "failed to create category")
	}

	uc.invalidate(ctx)
	return cat, nil
}

func (uc *categoryUseCase) UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, apperror.Wrap(err, "failed to load category")
	}
	if cat == nil {
		return nil, apperror.NotFound("category not found")
	}

	s := slug.Make(input.Name)
	if s == "" {
		return nil, apperror.Validation("name must contain letters or digits")
	}
	if s != cat.Slug {
		other, err := uc.repo.FindBySlug(ctx, s)
		if err != nil {
			return nil, apperror.Wrap(err, "failed to check category slug")
		}
		if other != nil && other.ID != cat.ID {
			return nil, apperror.Conflict("category " + s + " already exists")
		}
	}

	cat.Name = input.Name
	cat.Slug = s
	cat.Icon = input.Icon
	cat.UpdatedAt = time.Now().UTC()

	if err := uc.repo.Update(ctx, cat); err != nil {
		return nil, apperror.Wrap(err, "failed to update category")
	}

	uc.invalidate(ctx)
	return cat, nil
}

func (uc *categoryUseCase) DeleteCategory(ctx context.Context, id string) error {
	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return apperror.Wrap(err, "failed to load category")
	}
	if cat == nil {
		return apperror.NotFound("category not found")
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return apperror.Wrap(err, "failed to delete category")
	}

	uc.invalidate(ctx)
	return nil
}

func (uc *categoryUseCase) CreateSubCategory(ctx context.Context, input *dto.CreateSubCategoryInput) (*model.SubCategory, error) {
	parent, err := uc.repo.FindByID(ctx, input.CategoryID)
	if err != nil {
		return nil, apperror.Wrap(err, "failed to load category")
	}
	if parent == nil {
		return nil, apperror.NotFound("category not found")
	}

	s := slug.Make(input.Name)
	if s == "" {
		return nil, apperror.Validation("name must contain letters or digits")
	}

	siblings, err := uc.repo.FindSubCategories(ctx, &dto.SubCategoryFilters{CategoryID: parent.ID})
	if err != nil {
		return nil, apperror.Wrap(err, "failed to load subcategories")
	}
	for _, sib := range siblings {
		if sib.Slug == s {
			return nil, apperror.Conflict("subcategory " + s + " already exists in " + parent.Slug)
		}
	}

	now := time.Now().UTC()
	sub := &model.SubCategory{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:       input.Name,
		Slug:       s,
		Icon:       input.Icon,
		CategoryID: parent.ID,
	}

	if err := uc.repo.CreateSubCategory(ctx, sub); err != nil {
		return nil, apperror.Wrap(err, "failed to create subcategory")
	}

	uc.invalidate(ctx)
	return sub, nil
}

func (uc *categoryUseCase) DeleteSubCategory(ctx context.Context, id string) error {
	sub, err := uc.repo.FindSubCategoryByID(ctx, id)
	if err != nil {
		return apperror.Wrap(err, "failed to load subcategory")
	}
	if sub == nil {
		return apperror.NotFound("subcategory not found")
	}

	if err := uc.repo.DeleteSubCategory(ctx, id); err != nil {
		return apperror.Wrap(err, "failed to delete subcategory")
	}

	uc.invalidate(ctx)
	return nil
}

func (uc *categoryUseCase) ListCategoryTree(ctx context.Context) ([]dto.CategoryNode, error) {
	log := logger.FromContext(ctx, uc.logger)

	if uc.cache != nil {
		var cached []dto.CategoryNode
		hit, err := uc.cache.GetJSON(ctx, treeCacheKey, &cached)
		if err != nil {
			log.Warn("category tree cache read failed", zap.Error(err))
		}
		if hit {
			return cached, nil
		}
	}

	cats, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, apperror.Wrap(err, "failed to load categories")
	}

	tree := make([]dto.CategoryNode, 0, len(cats))
	for i := range cats {
		tree = append(tree, dto.NewCategoryNode(&cats[i]))
	}

	if uc.cache != nil {
		if err := uc.cache.SetJSON(ctx, treeCacheKey, tree, uc.ttl); err != nil {
			log.Warn("category tree cache write failed", zap.Error(err))
		}
	}

	return tree, nil
}

func (uc *categoryUseCase) invalidate(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Delete(ctx, treeCacheKey); err != nil {
		logger.FromContext(ctx, uc.logger).Warn("category tree cache invalidation failed", zap.Error(err))
	}
}
