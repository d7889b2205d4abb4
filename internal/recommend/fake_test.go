package recommend

import (
	"context"
	"errors"
	"slices"
	"sync"

	catdto "github.com/fekuna/marketplace-catalog-service/internal/category/dto"
	"github.com/fekuna/marketplace-catalog-service/internal/model"
	"github.com/fekuna/marketplace-catalog-service/internal/product/dto"
)

// memStore implements the finder interfaces over slices kept in insertion order.
type memStore struct {
	mu          sync.Mutex
	products    []model.Product
	subs        []model.SubCategory
	profiles    map[string]*model.BusinessProfile
	profileErrs map[string]error

	relatedQueries []dto.RelatedQuery
	profileCalls   int
	findErr        error
}

func newMemStore() *memStore {
	return &memStore{
		profiles:    map[string]*model.BusinessProfile{},
		profileErrs: map[string]error{},
	}
}

func (m *memStore) FindRelated(_ context.Context, q *dto.RelatedQuery) ([]model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.relatedQueries = append(m.relatedQueries, *q)
	if m.findErr != nil {
		return nil, m.findErr
	}

	out := []model.Product{}
	for _, p := range m.products {
		if len(out) == q.Limit {
			break
		}
		if q.SubCategoryID != "" && (p.SubCategoryID == nil || *p.SubCategoryID != q.SubCategoryID) {
			continue
		}
		if q.CategoryID != "" && (p.CategoryID == nil || *p.CategoryID != q.CategoryID) {
			continue
		}
		if slices.Contains(q.ExcludeIDs, p.ID) {
			continue
		}
		if q.RequireImage && len(p.Images) == 0 {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *memStore) FindSubCategories(_ context.Context, f *catdto.SubCategoryFilters) ([]model.SubCategory, error) {
	out := []model.SubCategory{}
	for _, s := range m.subs {
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
		if f.CategoryID != "" && s.CategoryID != f.CategoryID {
			continue
		}
		if slices.Contains(f.ExcludeIDs, s.ID) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (m *memStore) FindByUserID(_ context.Context, userID string) (*model.BusinessProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profileCalls++
	if err := m.profileErrs[userID]; err != nil {
		return nil, err
	}
	return m.profiles[userID], nil
}

func (m *memStore) addProduct(id, category, subCategory, seller string, images ...string) {
	p := model.Product{
		BaseModel: model.BaseModel{ID: id},
		Name:      "product " + id,
		UserID:    seller,
		Images:    images,
	}
	if category != "" {
		p.CategoryID = &category
	}
	if subCategory != "" {
		p.SubCategoryID = &subCategory
	}
	m.products = append(m.products, p)
}

func (m *memStore) product(id string) *model.Product {
	for i := range m.products {
		if m.products[i].ID == id {
			p := m.products[i]
			return &p
		}
	}
	return nil
}

var errStoreDown = errors.New("store unavailable")
