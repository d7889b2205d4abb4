package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fekuna/marketplace-catalog-service/internal/category/dto"
	"github.com/fekuna/marketplace-catalog-service/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, c *model.Category) error {
	query := `
        INSERT INTO categories (id, name, slug, icon, created_at, updated_at)
        VALUES (:id, :name, :slug, :icon, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, c)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Category, error) {
	return r.findOne(ctx, `SELECT id, name, slug, icon, created_at, updated_at FROM categories WHERE id = ? LIMIT 1`, id)
}

func (r *PGRepository) FindBySlug(ctx context.Context, slug string) (*model.Category, error) {
	return r.findOne(ctx, `SELECT id, name, slug, icon, created_at, updated_at FROM categories WHERE slug = ? LIMIT 1`, slug)
}

func (r *PGRepository) findOne(ctx context.Context, query string, arg any) (*model.Category, error) {
	var category model.Category
	err := r.DB.GetContext(ctx, &category, r.DB.Rebind(query), arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// FindAll returns every category with its subcategories attached.
func (r *PGRepository) FindAll(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := r.DB.SelectContext(ctx, &categories,
		`SELECT id, name, slug, icon, created_at, updated_at FROM categories ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, err
	}

	var subs []model.SubCategory
	err = r.DB.SelectContext(ctx, &subs,
		`SELECT id, name, slug, icon, category_id, created_at, updated_at FROM sub_categories ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string][]model.SubCategory, len(categories))
	for _, s := range subs {
		byCategory[s.CategoryID] = append(byCategory[s.CategoryID], s)
	}
	for i := range categories {
		categories[i].SubCategories = byCategory[categories[i].ID]
	}
	return categories, nil
}

func (r *PGRepository) Update(ctx context.Context, c *model.Category) error {
	query := `
        UPDATE categories
        SET name = :name,
            slug = :slug,
            icon = :icon,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, c)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	// sub_categories cascade; products keep their row with category_id set to NULL.
	_, err := r.DB.ExecContext(ctx, r.DB.Rebind("DELETE FROM categories WHERE id = ?"), id)
	return err
}

func (r *PGRepository) CreateSubCategory(ctx context.Context, s *model.SubCategory) error {
	query := `
        INSERT INTO sub_categories (id, name, slug, icon, category_id, created_at, updated_at)
        VALUES (:id, :name, :slug, :icon, :category_id, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, s)
	return err
}

func (r *PGRepository) FindSubCategoryByID(ctx context.Context, id string) (*model.SubCategory, error) {
	var sub model.SubCategory
	query := `SELECT id, name, slug, icon, category_id, created_at, updated_at FROM sub_categories WHERE id = ? LIMIT 1`
	err := r.DB.GetContext(ctx, &sub, r.DB.Rebind(query), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

// FindSubCategories lists subcategories in creation order, honouring the
// exclusion set and limit when given.
func (r *PGRepository) FindSubCategories(ctx context.Context, f *dto.SubCategoryFilters) ([]model.SubCategory, error) {
	query := `SELECT id, name, slug, icon, category_id, created_at, updated_at FROM sub_categories WHERE 1 = 1`
	args := []any{}

	if f.CategoryID != "" {
		query += ` AND category_id = ?`
		args = append(args, f.CategoryID)
	}
	if len(f.ExcludeIDs) > 0 {
		q, a, err := sqlx.In(` AND id NOT IN (?)`, f.ExcludeIDs)
		if err != nil {
			return nil, err
		}
		query += q
		args = append(args, a...)
	}
	query += ` ORDER BY created_at ASC, id ASC`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	subs := []model.SubCategory{}
	if err := r.DB.SelectContext(ctx, &subs, r.DB.Rebind(query), args...); err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *PGRepository) DeleteSubCategory(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, r.DB.Rebind("DELETE FROM sub_categories WHERE id = ?"), id)
	return err
}
