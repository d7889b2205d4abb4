package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fekuna/marketplace-catalog-service/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	query := `SELECT id, fullname, company_name, phone, role, created_at, updated_at FROM users WHERE id = ? LIMIT 1`
	err := r.DB.GetContext(ctx, &u, r.DB.Rebind(query), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *PGRepository) Upsert(ctx context.Context, u *model.User) error {
	query := `
        INSERT INTO users (id, fullname, company_name, phone, role, created_at, updated_at)
        VALUES (:id, :fullname, :company_name, :phone, :role, :created_at, :updated_at)
        ON CONFLICT (id) DO UPDATE SET
            fullname = excluded.fullname,
            company_name = excluded.company_name,
            phone = excluded.phone,
            role = excluded.role,
            updated_at = excluded.updated_at
    `
	_, err := r.DB.NamedExecContext(ctx, query, u)
	return err
}

// Delete removes the user; its business profile goes with it via ON DELETE CASCADE.
func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, r.DB.Rebind("DELETE FROM users WHERE id = ?"), id)
	return err
}
