package usecase

import (
	"context"
	"sync"

	catdto "github.com/fekuna/marketplace-catalog-service/internal/category/dto"
	"github.com/fekuna/marketplace-catalog-service/internal/model"
	"github.com/fekuna/marketplace-catalog-service/internal/product"
	"github.com/fekuna/marketplace-catalog-service/internal/product/dto"
	"github.com/fekuna/marketplace-catalog-service/internal/recommend"
)

type fakeProductRepo struct {
	products   map[string]*model.Product
	findErr    error
	created    []*model.Product
	updated    []*model.Product
	deleted    []string
	takenSlugs map[string]bool
}

func newFakeProductRepo(products ...*model.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: map[string]*model.Product{}, takenSlugs: map[string]bool{}}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(_ context.Context, p *model.Product) error {
	r.created = append(r.created, p)
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) FindByID(_ context.Context, id string) (*model.Product, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) FindAll(_ context.Context, _ *dto.ProductFilters) ([]model.Product, int, error) {
	out := []model.Product{}
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, len(out), nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *model.Product) error {
	r.updated = append(r.updated, p)
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	r.deleted = append(r.deleted, id)
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) FindRelated(_ context.Context, _ *dto.RelatedQuery) ([]model.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) IsSlugUnique(_ context.Context, slug, _ string) (bool, error) {
	return !r.takenSlugs[slug], nil
}

type fakeCategoryRepo struct {
	categories map[string]*model.Category
	subs       map[string]*model.SubCategory
	calls      int
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: map[string]*model.Category{}, subs: map[string]*model.SubCategory{}}
}

func (r *fakeCategoryRepo) Create(context.Context, *model.Category) error { return nil }

func (r *fakeCategoryRepo) FindByID(_ context.Context, id string) (*model.Category, error) {
	r.calls++
	return r.categories[id], nil
}

func (r *fakeCategoryRepo) FindBySlug(context.Context, string) (*model.Category, error) {
	return nil, nil
}

func (r *fakeCategoryRepo) FindAll(context.Context) ([]model.Category, error) { return nil, nil }
func (r *fakeCategoryRepo) Update(context.Context, *model.Category) error     { return nil }
func (r *fakeCategoryRepo) Delete(context.Context, string) error              { return nil }

func (r *fakeCategoryRepo) CreateSubCategory(context.Context, *model.SubCategory) error {
	return nil
}

func (r *fakeCategoryRepo) FindSubCategoryByID(_ context.Context, id string) (*model.SubCategory, error) {
	r.calls++
	return r.subs[id], nil
}

func (r *fakeCategoryRepo) FindSubCategories(context.Context, *catdto.SubCategoryFilters) ([]model.SubCategory, error) {
	return nil, nil
}

func (r *fakeCategoryRepo) DeleteSubCategory(context.Context, string) error { return nil }

type fakeUserRepo struct {
	users map[string]*model.User
	calls int
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	r.calls++
	return r.users[id], nil
}

func (r *fakeUserRepo) Upsert(context.Context, *model.User) error { return nil }
func (r *fakeUserRepo) Delete(context.Context, string) error      { return nil }

type fakeProfileRepo struct {
	profiles map[string]*model.BusinessProfile
	calls    int
}

func (r *fakeProfileRepo) FindByUserID(_ context.Context, userID string) (*model.BusinessProfile, error) {
	r.calls++
	return r.profiles[userID], nil
}

func (r *fakeProfileRepo) Upsert(context.Context, *model.BusinessProfile) error { return nil }
func (r *fakeProfileRepo) DeleteByUserID(context.Context, string) error         { return nil }

type fakeRelevance struct {
	products      []recommend.RelatedProduct
	categories    []recommend.RelatedCategory
	productsErr   error
	productCalls  int
	categoryCalls int
}

func (f *fakeRelevance) RelatedProducts(context.Context, *model.Product) ([]recommend.RelatedProduct, error) {
	f.productCalls++
	return f.products, f.productsErr
}

func (f *fakeRelevance) RelatedCategories(context.Context, *model.Product) ([]recommend.RelatedCategory, error) {
	f.categoryCalls++
	return f.categories, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []product.Event
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, _ string, value any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ev, ok := value.(product.Event); ok {
		f.events = append(f.events, ev)
	}
	return f.err
}
