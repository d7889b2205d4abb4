package repository

import (
	"context"
	"testing"
	"time"

	"github.com/fekuna/marketplace-catalog-service/internal/category/dto"
	"github.com/fekuna/marketplace-catalog-service/internal/database/dbtest"
	"github.com/fekuna/marketplace-catalog-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedTaxonomy(t *testing.T) *PGRepository {
	repo := NewPGRepository(dbtest.New(t))
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, c := range []struct{ id, name string }{{"metal", "Metal Goods"}, {"agri", "Agriculture"}} {
		ts := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(ctx, &model.Category{
			BaseModel: model.BaseModel{ID: c.id, CreatedAt: ts, UpdatedAt: ts},
			Name:      c.name,
			Slug:      c.id,
		}))
	}
	for i, s := range []struct{ id, cat string }{{"pipes", "metal"}, {"sheets", "metal"}, {"wires", "metal"}, {"seeds", "agri"}} {
		ts := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.CreateSubCategory(ctx, &model.SubCategory{
			BaseModel:  model.BaseModel{ID: s.id, CreatedAt: ts, UpdatedAt: ts},
			Name:       s.id,
			Slug:       s.id,
			CategoryID: s.cat,
		}))
	}
	return repo
}

func subIDs(subs []model.SubCategory) []string {
	out := make([]string, len(subs))
	for i, s := range subs {
		out[i] = s.ID
	}
	return out
}

func TestFindSubCategories(t *testing.T) {
	repo := seedTaxonomy(t)
	ctx := context.Background()

	got, err := repo.FindSubCategories(ctx, &dto.SubCategoryFilters{CategoryID: "metal", ExcludeIDs: []string{"pipes"}, Limit: 18})
	require.NoError(t, err)
	assert.Equal(t, []string{"sheets", "wires"}, subIDs(got))

	got, err = repo.FindSubCategories(ctx, &dto.SubCategoryFilters{CategoryID: "metal", Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"pipes"}, subIDs(got))

	got, err = repo.FindSubCategories(ctx, &dto.SubCategoryFilters{CategoryID: "none"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFindAllAttachesSubCategories(t *testing.T) {
	repo := seedTaxonomy(t)

	cats, err := repo.FindAll(context.Background())
	require.NoError(t, err)

	require.Len(t, cats, 2)
	assert.Equal(t, "agri", cats[0].ID)
	assert.Equal(t, []string{"seeds"}, subIDs(cats[0].SubCategories))
	assert.Equal(t, []string{"pipes", "sheets", "wires"}, subIDs(cats[1].SubCategories))
}

func TestLookupsAndDelete(t *testing.T) {
	repo := seedTaxonomy(t)
	ctx := context.Background()

	c, err := repo.FindBySlug(ctx, "metal")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "Metal Goods", c.Name)

	s, err := repo.FindSubCategoryByID(ctx, "sheets")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "metal", s.CategoryID)

	c.Name = "Metals"
	require.NoError(t, repo.Update(ctx, c))
	c, err = repo.FindByID(ctx, "metal")
	require.NoError(t, err)
	assert.Equal(t, "Metals", c.Name)

	require.NoError(t, repo.Delete(ctx, "metal"))
	c, err = repo.FindByID(ctx, "metal")
	require.NoError(t, err)
	assert.Nil(t, c)

	s, err = repo.FindSubCategoryByID(ctx, "sheets")
	require.NoError(t, err)
	assert.Nil(t, s, "subcategories cascade with their category")
}
