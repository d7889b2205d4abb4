package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/marketplace-catalog-service/internal/model"
	"github.com/fekuna/marketplace-catalog-service/internal/product/dto"
	"github.com/jmoiron/sqlx"
)

const productColumns = `id, slug, name, price, currency, moq, moq_unit, description, images,
    category_id, sub_category_id, user_id, specifications, trade_shopping, created_at, updated_at`

// relatedColumns is the projection used for related-product cards.
const relatedColumns = `id, slug, name, price, currency, moq, moq_unit, images,
    category_id, sub_category_id, user_id, created_at, updated_at`

// Stable, insertion-like order so repeated reads return identical lists.
const stableOrder = ` ORDER BY created_at ASC, id ASC`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
        INSERT INTO products (
            id, slug, name, price, currency, moq, moq_unit, description, images,
            category_id, sub_category_id, user_id, specifications, trade_shopping,
            created_at, updated_at
        )
        VALUES (
            :id, :slug, :name, :price, :currency, :moq, :moq_unit, :description, :images,
            :category_id, :sub_category_id, :user_id, :specifications, :trade_shopping,
            :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ? LIMIT 1`
	err := r.DB.GetContext(ctx, &product, r.DB.Rebind(query), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	conditions := []string{}
	args := []any{}

	if f.CategoryID != "" {
		conditions = append(conditions, "category_id = ?")
		args = append(args, f.CategoryID)
	}
	if f.SubCategoryID != "" {
		conditions = append(conditions, "sub_category_id = ?")
		args = append(args, f.SubCategoryID)
	}
	if f.UserID != "" {
		conditions = append(conditions, "user_id = ?")
		args = append(args, f.UserID)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var count int
	if err := r.DB.GetContext(ctx, &count, r.DB.Rebind("SELECT count(*) FROM products"+whereClause), args...); err != nil {
		return nil, 0, err
	}

	query := "SELECT " + productColumns + " FROM products" + whereClause + " ORDER BY created_at DESC, id DESC"
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (page-1)*f.PageSize)
	}

	products := []model.Product{}
	if err := r.DB.SelectContext(ctx, &products, r.DB.Rebind(query), args...); err != nil {
		return nil, 0, err
	}
	return products, count, nil
}

func (r *PGRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
        UPDATE products
        SET slug = :slug,
            name = :name,
            price = :price,
            currency = :currency,
            moq = :moq,
            moq_unit = :moq_unit,
            description = :description,
            images = :images,
            category_id = :category_id,
            sub_category_id = :sub_category_id,
            specifications = :specifications,
            trade_shopping = :trade_shopping,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, r.DB.Rebind("DELETE FROM products WHERE id = ?"), id)
	return err
}

func (r *PGRepository) FindRelated(ctx context.Context, q *dto.RelatedQuery) ([]model.Product, error) {
	products := []model.Product{}
	if q.Limit <= 0 {
		return products, nil
	}

	query := `SELECT ` + relatedColumns + ` FROM products WHERE 1 = 1`
	args := []any{}

	if q.SubCategoryID != "" {
		query += ` AND sub_category_id = ?`
		args = append(args, q.SubCategoryID)
	}
	if q.CategoryID != "" {
		query += ` AND category_id = ?`
		args = append(args, q.CategoryID)
	}
	if len(q.ExcludeIDs) > 0 {
		frag, a, err := sqlx.In(` AND id NOT IN (?)`, q.ExcludeIDs)
		if err != nil {
			return nil, err
		}
		query += frag
		args = append(args, a...)
	}
	if q.RequireImage {
		// images is a JSON array; anything beyond "[]" carries at least one entry.
		query += ` AND images <> '[]' AND images <> ''`
	}
	query += stableOrder + ` LIMIT ?`
	args = append(args, q.Limit)

	if err := r.DB.SelectContext(ctx, &products, r.DB.Rebind(query), args...); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *PGRepository) IsSlugUnique(ctx context.Context, slug, excludeID string) (bool, error) {
	var count int
	query := `SELECT count(*) FROM products WHERE slug = ?`
	args := []any{slug}
	if excludeID != "" {
		query += ` AND id <> ?`
		args = append(args, excludeID)
	}

	if err := r.DB.GetContext(ctx, &count, r.DB.Rebind(query), args...); err != nil {
		return false, err
	}
	return count == 0, nil
}
