package usecase

import (
	"context"
	"time"

	"github.com/fekuna/marketplace-catalog-service/internal/apperror"
	"github.com/fekuna/marketplace-catalog-service/internal/businessprofile"
	"github.com/fekuna/marketplace-catalog-service/internal/category"
	"github.com/fekuna/marketplace-catalog-service/internal/logger"
	"github.com/fekuna/marketplace-catalog-service/internal/model"
	"github.com/fekuna/marketplace-catalog-service/internal/product"
	"github.com/fekuna/marketplace-catalog-service/internal/product/dto"
	"github.com/fekuna/marketplace-catalog-service/internal/product/view"
	"github.com/fekuna/marketplace-catalog-service/internal/recommend"
	"github.com/fekuna/marketplace-catalog-service/internal/slug"
	"github.com/fekuna/marketplace-catalog-service/internal/user"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Relevance produces the related lists for a populated product.
type Relevance interface {
	RelatedProducts(ctx context.Context, target *model.Product) ([]recommend.RelatedProduct, error)
	RelatedCategories(ctx context.Context, target *model.Product) ([]recommend.RelatedCategory, error)
}

type productUseCase struct {
	repo      product.Repository
	catRepo   category.Repository
	userRepo  user.Repository
	profiles  businessprofile.Repository
	relevance Relevance
	publisher product.Publisher
	logger    logger.ZapLogger
}

func NewProductUseCase(
	repo product.Repository,
	catRepo category.Repository,
	userRepo user.Repository,
	profiles businessprofile.Repository,
	relevance Relevance,
	publisher product.Publisher,
	log logger.ZapLogger,
) product.UseCase {
	return &productUseCase{
		repo:      repo,
		catRepo:   catRepo,
		userRepo:  userRepo,
		profiles:  profiles,
		relevance: relevance,
		publisher: publisher,
		logger:    log,
	}
}

func (uc *productUseCase) GetProductDetail(ctx context.Context, id string) (*view.ProductDetail, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Wrap(err, "failed to load product")
	}
	if p == nil {
		return nil, apperror.NotFound("product not found")
	}

	if err := uc.populate(ctx, p); err != nil {
		return nil, err
	}

	profile, err := uc.profiles.FindByUserID(ctx, p.UserID)
	if err != nil {
		return nil, apperror.Wrap(err, "failed to load business profile")
	}

	related, err := uc.relevance.RelatedProducts(ctx, p)
	if err != nil {
		return nil, apperror.Wrap(err, "failed to assemble related products")
	}
	categories, err := uc.relevance.RelatedCategories(ctx, p)
	if err != nil {
		return nil, apperror.Wrap(err, "failed to assemble related categories")
	}

	return view.NewProductDetail(p, profile, related, categories), nil
}

// populate expands the category, subcategory and owning user references.
// Dangling references are left nil rather than failing the read.
func (uc *productUseCase) populate(ctx context.Context, p *model.Product) error {
	if p.CategoryID != nil {
		c, err := uc.catRepo.FindByID(ctx, *p.CategoryID)
		if err != nil {
			return apperror.Wrap(err, "failed to load category")
		}
		p.Category = c
	}
	if p.SubCategoryID != nil {
		s, err := uc.catRepo.FindSubCategoryByID(ctx, *p.SubCategoryID)
		if err != nil {
			return apperror.Wrap(err, "failed to load subcategory")
		}
		p.SubCategory = s
	}
	u, err := uc.userRepo.FindByID(ctx, p.UserID)
	if err != nil {
		return apperror.Wrap(err, "failed to load seller")
	}
	p.User = u
	return nil
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	products, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, apperror.Wrap(err, "failed to list products")
	}
	return products, count, nil
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	if input.UserID == "" {
		return nil, apperror.Unauthenticated("missing seller identity")
	}
	categoryID, subCategoryID, err := uc.checkTaxonomy(ctx, input.CategoryID, input.SubCategoryID)
	if err != nil {
		return nil, err
	}

	id := uuid.New().String()
	now := time.Now().UTC()
	productSlug, err := uc.uniqueSlug(ctx, input.Name, id, "")
	if err != nil {
		return nil, err
	}

	p := &model.Product{
		BaseModel:      model.BaseModel{ID: id, CreatedAt: now, UpdatedAt: now},
		Slug:           &productSlug,
		Name:           input.Name,
		Price:          input.Price,
		Currency:       input.Currency,
		MOQ:            input.MOQ,
		MOQUnit:        input.MOQUnit,
		Description:    input.Description,
		Images:         model.StringList(input.Images),
		CategoryID:     categoryID,
		SubCategoryID:  subCategoryID,
		UserID:         input.UserID,
		Specifications: model.JSONMap(input.Specifications),
		TradeShopping:  model.JSONMap(input.TradeShopping),
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, apperror.Wrap(err, "failed to create product")
	}

	uc.publish(ctx, product.EventProductCreated, p)
	return p, nil
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, apperror.Wrap(err, "failed to load product")
	}
	if p == nil {
		return nil, apperror.NotFound("product not found")
	}
	if err := authorize(p, input.UserID, input.Role); err != nil {
		return nil, err
	}

	categoryID, subCategoryID, err := uc.checkTaxonomy(ctx, input.CategoryID, input.SubCategoryID)
	if err != nil {
		return nil, err
	}

	if input.Name != p.Name {
		s, err := uc.uniqueSlug(ctx, input.Name, p.ID, p.ID)
		if err != nil {
			return nil, err
		}
		p.Slug = &s
	}

	p.Name = input.Name
	p.Price = input.Price
	p.Currency = input.Currency
	p.MOQ = input.MOQ
	p.MOQUnit = input.MOQUnit
	p.Description = input.Description
	p.Images = model.StringList(input.Images)
	p.CategoryID = categoryID
	p.SubCategoryID = subCategoryID
	p.Specifications = model.JSONMap(input.Specifications)
	p.TradeShopping = model.JSONMap(input.TradeShopping)
	p.UpdatedAt = time.Now().UTC()

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, apperror.Wrap(err, "failed to update product")
	}

	uc.publish(ctx, product.EventProductUpdated, p)
	return p, nil
}

// DeleteProduct removes the product. The seller's product list and the
// subcategory's product list are derived from the row, so they detach with it;
// image assets are purged downstream from the ProductDeleted event.
func (uc *productUseCase) DeleteProduct(ctx context.Context, input *dto.DeleteProductInput) error {
	p, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return apperror.Wrap(err, "failed to load product")
	}
	if p == nil {
		return apperror.NotFound("product not found")
	}
	if err := authorize(p, input.UserID, input.Role); err != nil {
		return err
	}

	if err := uc.repo.Delete(ctx, p.ID); err != nil {
		return apperror.Wrap(err, "failed to delete product")
	}

	uc.publish(ctx, product.EventProductDeleted, p)
	return nil
}

func authorize(p *model.Product, userID, role string) error {
	if userID == "" {
		return apperror.Unauthenticated("missing identity")
	}
	if role == model.RoleAdmin || p.UserID == userID {
		return nil
	}
	return apperror.Forbidden("only the owning seller or an admin may modify this product")
}

// checkTaxonomy resolves the category and optional subcategory references.
// A subcategory must belong to the given category.
func (uc *productUseCase) checkTaxonomy(ctx context.Context, categoryID, subCategoryID string) (*string, *string, error) {
	c, err := uc.catRepo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, nil, apperror.Wrap(err, "failed to load category")
	}
	if c == nil {
		return nil, nil, apperror.Validation("category does not exist")
	}
	if subCategoryID == "" {
		return &c.ID, nil, nil
	}

	s, err := uc.catRepo.FindSubCategoryByID(ctx, subCategoryID)
	if err != nil {
		return nil, nil, apperror.Wrap(err, "failed to load subcategory")
	}
	if s == nil {
		return nil, nil, apperror.Validation("subCategory does not exist")
	}
	if s.CategoryID != c.ID {
		return nil, nil, apperror.Validation("subCategory does not belong to category")
	}
	return &c.ID, &s.ID, nil
}

func (uc *productUseCase) uniqueSlug(ctx context.Context, name, id, excludeID string) (string, error) {
	s := slug.WithSuffix(name, id)
	unique, err := uc.repo.IsSlugUnique(ctx, s, excludeID)
	if err != nil {
		return "", apperror.Wrap(err, "failed to check slug")
	}
	if !unique {
		// The id suffix makes a clash unlikely; fall back to the full id.
		s = slug.Make(name) + "-" + slug.Make(id)
	}
	return s, nil
}

// publish emits a lifecycle event. The write has already committed, so a
// broker failure is logged and not returned.
func (uc *productUseCase) publish(ctx context.Context, eventType string, p *model.Product) {
	if uc.publisher == nil {
		return
	}
	event := product.Event{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Payload: product.EventPayload{
			ID:            p.ID,
			UserID:        p.UserID,
			CategoryID:    p.CategoryID,
			SubCategoryID: p.SubCategoryID,
			Images:        append([]string{}, p.Images...),
		},
		Timestamp: time.Now().UTC(),
	}
	if err := uc.publisher.Publish(ctx, p.ID, event); err != nil {
		logger.FromContext(ctx, uc.logger).Error("failed to publish product event",
			zap.String("event_type", eventType),
			zap.String("product_id", p.ID),
			zap.Error(err),
		)
	}
}
