package recommend

import (
	"context"
	"fmt"
	"testing"

	"github.com/fekuna/marketplace-catalog-service/internal/logger"
	"github.com/fekuna/marketplace-catalog-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAssembler(store *memStore) *Assembler {
	return NewAssembler(store, store, store, DefaultConfig(), logger.NewNop())
}

func ids(items []RelatedProduct) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Product.ID
	}
	return out
}

func assertUnique(t *testing.T, list []string) {
	t.Helper()
	seen := map[string]bool{}
	for _, id := range list {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestRelatedProductsFullSubCategory(t *testing.T) {
	store := newMemStore()
	store.addProduct("target", "metal", "pipes", "s1")
	for i := 0; i < 15; i++ {
		store.addProduct(fmt.Sprintf("pipe-%02d", i), "metal", "pipes", "s1")
	}
	store.addProduct("sheet-1", "metal", "sheets", "s1")

	got, err := newTestAssembler(store).RelatedProducts(context.Background(), store.product("target"))
	require.NoError(t, err)

	require.Len(t, got, 12)
	for _, rp := range got {
		assert.Equal(t, "pipes", *rp.Product.SubCategoryID)
		assert.NotEqual(t, "target", rp.Product.ID)
	}
	// Subcategory tier filled the list; later tiers never ran.
	assert.Len(t, store.relatedQueries, 1)
}

func TestRelatedProductsFallsBackToCategory(t *testing.T) {
	// Target in "Steel Pipes" with 8 siblings; "Metal Goods" has 50 more.
	store := newMemStore()
	store.addProduct("P123", "metal", "steel-pipes", "s1")
	for i := 0; i < 50; i++ {
		store.addProduct(fmt.Sprintf("metal-%02d", i), "metal", "", "s2")
	}
	for i := 0; i < 8; i++ {
		store.addProduct(fmt.Sprintf("pipe-%d", i), "metal", "steel-pipes", "s1")
	}

	got, err := newTestAssembler(store).RelatedProducts(context.Background(), store.product("P123"))
	require.NoError(t, err)

	list := ids(got)
	require.Len(t, list, 12)
	assertUnique(t, list)
	assert.NotContains(t, list, "P123")
	for i := 0; i < 8; i++ {
		assert.Equal(t, fmt.Sprintf("pipe-%d", i), list[i])
	}
	assert.Equal(t, []string{"metal-00", "metal-01", "metal-02", "metal-03"}, list[8:])

	require.Len(t, store.relatedQueries, 2)
	second := store.relatedQueries[1]
	assert.Equal(t, "metal", second.CategoryID)
	assert.Equal(t, 4, second.Limit)
	assert.Equal(t, "P123", second.ExcludeIDs[0])
	assert.Len(t, second.ExcludeIDs, 9)
}

func TestRelatedProductsCategoryTierSkipsSubCategorySiblings(t *testing.T) {
	store := newMemStore()
	store.addProduct("target", "metal", "pipes", "s1")
	store.addProduct("pipe-1", "metal", "pipes", "s1")
	store.addProduct("pipe-2", "metal", "pipes", "s1")
	store.addProduct("other", "metal", "", "s1")

	got, err := newTestAssembler(store).RelatedProducts(context.Background(), store.product("target"))
	require.NoError(t, err)

	list := ids(got)
	assert.Equal(t, []string{"pipe-1", "pipe-2", "other"}, list)
}

func TestRelatedProductsWithoutCategoryUsesGeneralTierOnly(t *testing.T) {
	store := newMemStore()
	store.addProduct("target", "", "", "s1")
	for i := 0; i < 20; i++ {
		store.addProduct(fmt.Sprintf("any-%02d", i), "misc", "", "s2")
	}

	got, err := newTestAssembler(store).RelatedProducts(context.Background(), store.product("target"))
	require.NoError(t, err)

	list := ids(got)
	assert.Len(t, list, 12)
	assert.NotContains(t, list, "target")
	require.Len(t, store.relatedQueries, 1)
	assert.Empty(t, store.relatedQueries[0].CategoryID)
	assert.Empty(t, store.relatedQueries[0].SubCategoryID)
}

func TestRelatedProductsEmptyCatalog(t *testing.T) {
	store := newMemStore()
	store.addProduct("target", "", "", "s1")

	got, err := newTestAssembler(store).RelatedProducts(context.Background(), store.product("target"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRelatedProductsIdempotent(t *testing.T) {
	store := newMemStore()
	store.addProduct("target", "metal", "pipes", "s1")
	for i := 0; i < 5; i++ {
		store.addProduct(fmt.Sprintf("pipe-%d", i), "metal", "pipes", "s1")
		store.addProduct(fmt.Sprintf("metal-%d", i), "metal", "", "s1")
		store.addProduct(fmt.Sprintf("misc-%d", i), "misc", "", "s1")
	}
	a := newTestAssembler(store)

	first, err := a.RelatedProducts(context.Background(), store.product("target"))
	require.NoError(t, err)
	second, err := a.RelatedProducts(context.Background(), store.product("target"))
	require.NoError(t, err)

	assert.Equal(t, ids(first), ids(second))
	assert.Len(t, first, 12)
}

func TestRelatedProductsEnrichment(t *testing.T) {
	store := newMemStore()
	store.addProduct("target", "metal", "pipes", "s1")
	store.addProduct("with-profile", "metal", "pipes", "s1")
	store.addProduct("no-profile", "metal", "pipes", "s2")
	store.addProduct("lookup-fails", "metal", "pipes", "s3")
	store.profiles["s1"] = &model.BusinessProfile{UserID: "s1", GSTNumber: "27AAPFU0939F1Z5", YearOfEstablishment: 1998}
	store.profileErrs["s3"] = errStoreDown

	got, err := newTestAssembler(store).RelatedProducts(context.Background(), store.product("target"))
	require.NoError(t, err)

	require.Len(t, got, 3)
	require.NotNil(t, got[0].Profile)
	assert.Equal(t, 1998, got[0].Profile.YearOfEstablishment)
	assert.Nil(t, got[1].Profile)
	assert.Nil(t, got[2].Profile)
	assert.Equal(t, 3, store.profileCalls)
}

func TestRelatedProductsStoreFailure(t *testing.T) {
	store := newMemStore()
	store.addProduct("target", "metal", "pipes", "s1")
	store.findErr = errStoreDown

	_, err := newTestAssembler(store).RelatedProducts(context.Background(), store.product("target"))
	assert.ErrorIs(t, err, errStoreDown)
}

func TestAdmitDropsExcludedAndDuplicates(t *testing.T) {
	candidates := []model.Product{
		{BaseModel: model.BaseModel{ID: "target"}},
		{BaseModel: model.BaseModel{ID: "a"}},
		{BaseModel: model.BaseModel{ID: "a"}},
		{BaseModel: model.BaseModel{ID: "b"}},
		{BaseModel: model.BaseModel{ID: "c"}},
	}

	got := admit(candidates, []string{"target"}, 2)

	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
}

func TestRelatedCategories(t *testing.T) {
	store := newMemStore()
	metal := &model.Category{BaseModel: model.BaseModel{ID: "metal"}, Slug: "metal-goods"}
	store.subs = []model.SubCategory{
		{BaseModel: model.BaseModel{ID: "pipes"}, Name: "Steel Pipes", Slug: "steel-pipes", Icon: "p.png", CategoryID: "metal"},
		{BaseModel: model.BaseModel{ID: "sheets"}, Name: "Sheets", Slug: "sheets", Icon: "s.png", CategoryID: "metal"},
		{BaseModel: model.BaseModel{ID: "wires"}, Name: "Wires", Slug: "wires", Icon: "w.png", CategoryID: "metal"},
		{BaseModel: model.BaseModel{ID: "chairs"}, Name: "Chairs", Slug: "chairs", CategoryID: "furniture"},
	}
	store.addProduct("target", "metal", "pipes", "s1", "t.png")
	store.addProduct("no-image", "metal", "", "s1")
	store.addProduct("x", "misc", "", "s1", "x.png")
	slug := "shiny-x"
	store.products[2].Slug = &slug
	store.addProduct("y", "misc", "", "s1", "y1.png", "y2.png")

	target := store.product("target")
	target.Category = metal

	got, err := newTestAssembler(store).RelatedCategories(context.Background(), target)
	require.NoError(t, err)

	require.Len(t, got, 4)
	assert.Equal(t, RelatedCategory{ID: "sheets", Name: "Sheets", Slug: "metal-goods/sheets", Image: "s.png", Type: TypeSubCategory}, got[0])
	assert.Equal(t, "metal-goods/wires", got[1].Slug)
	assert.Equal(t, RelatedCategory{ID: "x", Name: "product x", Slug: "shiny-x", Image: "x.png", Type: TypeProductAsCategory}, got[2])
	assert.Equal(t, "y", got[3].Slug)
	assert.Equal(t, "y1.png", got[3].Image)

	for _, rc := range got {
		assert.False(t, rc.Type == TypeSubCategory && rc.ID == "pipes")
		assert.NotEqual(t, "target", rc.ID)
	}
}

func TestRelatedCategoriesCappedBySubCategories(t *testing.T) {
	store := newMemStore()
	metal := &model.Category{BaseModel: model.BaseModel{ID: "metal"}, Slug: "metal"}
	for i := 0; i < 25; i++ {
		store.subs = append(store.subs, model.SubCategory{
			BaseModel:  model.BaseModel{ID: fmt.Sprintf("sub-%02d", i)},
			Slug:       fmt.Sprintf("sub-%02d", i),
			CategoryID: "metal",
		})
	}
	store.addProduct("target", "metal", "sub-00", "s1", "t.png")
	store.addProduct("other", "metal", "", "s1", "o.png")
	target := store.product("target")
	target.Category = metal

	got, err := newTestAssembler(store).RelatedCategories(context.Background(), target)
	require.NoError(t, err)

	require.Len(t, got, 18)
	assert.Equal(t, "sub-01", got[0].ID)
	for _, rc := range got {
		assert.Equal(t, TypeSubCategory, rc.Type)
	}
	// No product fill was needed.
	assert.Empty(t, store.relatedQueries)
}

func TestRelatedCategoriesWithoutCategory(t *testing.T) {
	store := newMemStore()
	store.addProduct("target", "", "", "s1", "t.png")
	store.addProduct("a", "", "", "s1", "a.png")

	got, err := newTestAssembler(store).RelatedCategories(context.Background(), store.product("target"))
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, TypeProductAsCategory, got[0].Type)
	assert.Equal(t, "a", got[0].ID)
}

func TestRelatedCategoriesSkipsBlankImageRows(t *testing.T) {
	store := newMemStore()
	store.addProduct("target", "", "", "s1", "t.png")
	store.addProduct("blank", "", "", "s1", "")
	store.addProduct("real", "", "", "s1", "https://cdn/r.png")

	a := NewAssembler(store, store, store, Config{CategoryLimit: 1}, logger.NewNop())
	got, err := a.RelatedCategories(context.Background(), store.product("target"))
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "real", got[0].ID)
	assert.Equal(t, "https://cdn/r.png", got[0].Image)
	require.Len(t, store.relatedQueries, 2)
	assert.Equal(t, []string{"target", "blank"}, store.relatedQueries[1].ExcludeIDs)
}

func TestNewAssemblerDefaults(t *testing.T) {
	a := NewAssembler(nil, nil, nil, Config{}, logger.NewNop())
	assert.Equal(t, DefaultConfig(), a.cfg)
}
