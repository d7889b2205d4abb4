package recommend

import (
	"context"
	"fmt"
	"slices"

	catdto "github.com/fekuna/marketplace-catalog-service/internal/category/dto"
	"github.com/fekuna/marketplace-catalog-service/internal/logger"
	"github.com/fekuna/marketplace-catalog-service/internal/model"
	"github.com/fekuna/marketplace-catalog-service/internal/product/dto"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Assembler struct {
	products ProductFinder
	subs     SubCategoryFinder
	profiles ProfileFinder
	cfg      Config
	logger   logger.ZapLogger
}

func NewAssembler(products ProductFinder, subs SubCategoryFinder, profiles ProfileFinder, cfg Config, log logger.ZapLogger) *Assembler {
	def := DefaultConfig()
	if cfg.ProductLimit <= 0 {
		cfg.ProductLimit = def.ProductLimit
	}
	if cfg.CategoryLimit <= 0 {
		cfg.CategoryLimit = def.CategoryLimit
	}
	if cfg.EnrichConcurrency <= 0 {
		cfg.EnrichConcurrency = def.EnrichConcurrency
	}
	return &Assembler{
		products: products,
		subs:     subs,
		profiles: profiles,
		cfg:      cfg,
		logger:   log,
	}
}

// tier builds the query for one fallback stage. ok is false when the target
// lacks the attribute the tier filters on.
type tier struct {
	name  string
	query func(target *model.Product) (q dto.RelatedQuery, ok bool)
}

var tiers = []tier{
	{
		name: "subcategory",
		query: func(t *model.Product) (dto.RelatedQuery, bool) {
			if t.SubCategoryID == nil || *t.SubCategoryID == "" {
				return dto.RelatedQuery{}, false
			}
			return dto.RelatedQuery{SubCategoryID: *t.SubCategoryID}, true
		},
	},
	{
		name: "category",
		query: func(t *model.Product) (dto.RelatedQuery, bool) {
			if t.CategoryID == nil || *t.CategoryID == "" {
				return dto.RelatedQuery{}, false
			}
			return dto.RelatedQuery{CategoryID: *t.CategoryID}, true
		},
	},
	{
		name: "general",
		query: func(*model.Product) (dto.RelatedQuery, bool) {
			return dto.RelatedQuery{}, true
		},
	},
}

// RelatedProducts returns up to ProductLimit related products, enriched with
// seller business profiles.
func (a *Assembler) RelatedProducts(ctx context.Context, target *model.Product) ([]RelatedProduct, error) {
	collected, err := a.collectProducts(ctx, target)
	if err != nil {
		return nil, err
	}
	return a.enrich(ctx, collected), nil
}

func (a *Assembler) collectProducts(ctx context.Context, target *model.Product) ([]model.Product, error) {
	acc := []model.Product{}
	for _, t := range tiers {
		remaining := a.cfg.ProductLimit - len(acc)
		if remaining <= 0 {
			break
		}
		q, ok := t.query(target)
		if !ok {
			continue
		}
		q.ExcludeIDs = exclusionSet(target.ID, acc)
		q.Limit = remaining

		found, err := a.products.FindRelated(ctx, &q)
		if err != nil {
			return nil, fmt.Errorf("%s tier: %w", t.name, err)
		}
		found = admit(found, q.ExcludeIDs, remaining)
		tierItemsTotal.WithLabelValues(t.name).Add(float64(len(found)))

		acc = slices.Concat(acc, found)
	}
	return acc, nil
}

// exclusionSet is the target id followed by every id already chosen.
func exclusionSet(targetID string, chosen []model.Product) []string {
	ids := make([]string, 0, len(chosen)+1)
	ids = append(ids, targetID)
	for _, p := range chosen {
		ids = append(ids, p.ID)
	}
	return ids
}

// admit keeps at most limit candidates whose ids are outside excluded and
// not repeated within the batch.
func admit(candidates []model.Product, excluded []string, limit int) []model.Product {
	seen := make(map[string]struct{}, len(excluded)+len(candidates))
	for _, id := range excluded {
		seen[id] = struct{}{}
	}
	out := make([]model.Product, 0, min(limit, len(candidates)))
	for _, c := range candidates {
		if len(out) == limit {
			break
		}
		if _, dup := seen[c.ID]; dup {
			continue
		}
		seen[c.ID] = struct{}{}
		out = append(out, c)
	}
	return out
}

func (a *Assembler) enrich(ctx context.Context, products []model.Product) []RelatedProduct {
	out := make([]RelatedProduct, len(products))

	// Tasks never return an error: one failed lookup must not cancel the rest.
	var g errgroup.Group
	g.SetLimit(a.cfg.EnrichConcurrency)
	for i := range products {
		out[i].Product = products[i]
		g.Go(func() error {
			profile, err := a.profiles.FindByUserID(ctx, products[i].UserID)
			if err != nil {
				enrichFailuresTotal.Inc()
				logger.FromContext(ctx, a.logger).Warn("business profile lookup failed",
					zap.String("product_id", products[i].ID),
					zap.String("user_id", products[i].UserID),
					zap.Error(err),
				)
				return nil
			}
			out[i].Profile = profile
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// RelatedCategories returns up to CategoryLimit entries: sibling subcategories
// of the target's category first, then products with an image.
func (a *Assembler) RelatedCategories(ctx context.Context, target *model.Product) ([]RelatedCategory, error) {
	out := []RelatedCategory{}

	if target.Category != nil {
		filters := &catdto.SubCategoryFilters{
			CategoryID: target.Category.ID,
			Limit:      a.cfg.CategoryLimit,
		}
		if target.SubCategoryID != nil && *target.SubCategoryID != "" {
			filters.ExcludeIDs = []string{*target.SubCategoryID}
		}

		subs, err := a.subs.FindSubCategories(ctx, filters)
		if err != nil {
			return nil, fmt.Errorf("sibling subcategories: %w", err)
		}
		for _, s := range subs {
			if len(out) == a.cfg.CategoryLimit {
				break
			}
			if slices.Contains(filters.ExcludeIDs, s.ID) {
				continue
			}
			out = append(out, RelatedCategory{
				ID:    s.ID,
				Name:  s.Name,
				Slug:  target.Category.Slug + "/" + s.Slug,
				Image: s.Icon,
				Type:  TypeSubCategory,
			})
		}
	}

	// The store's image filter is coarser than HasImage, so rejected rows are
	// excluded and the fill is retried until it is full or the store runs dry.
	excluded := []string{target.ID}
	for len(out) < a.cfg.CategoryLimit {
		products, err := a.products.FindRelated(ctx, &dto.RelatedQuery{
			ExcludeIDs:   slices.Clone(excluded),
			RequireImage: true,
			Limit:        a.cfg.CategoryLimit - len(out),
		})
		if err != nil {
			return nil, fmt.Errorf("product fill: %w", err)
		}
		fresh := 0
		for _, p := range products {
			if slices.Contains(excluded, p.ID) {
				continue
			}
			fresh++
			excluded = append(excluded, p.ID)
			if len(out) == a.cfg.CategoryLimit || !p.HasImage() {
				continue
			}
			slug := p.ID
			if p.Slug != nil && *p.Slug != "" {
				slug = *p.Slug
			}
			out = append(out, RelatedCategory{
				ID:    p.ID,
				Name:  p.Name,
				Slug:  slug,
				Image: p.FirstImage(),
				Type:  TypeProductAsCategory,
			})
		}
		if fresh == 0 {
			break
		}
	}
	return out, nil
}
