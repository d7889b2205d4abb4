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

func (r *PGRepository) FindByUserID(ctx context.Context, userID string) (*model.BusinessProfile, error) {
	var profile model.BusinessProfile
	query := `
        SELECT id, user_id, company_name, gst_number, pan_number, year_of_establishment,
               business_type, address, city, state, verified, created_at, updated_at
        FROM business_profiles WHERE user_id = ? LIMIT 1
    `
	err := r.DB.GetContext(ctx, &profile, r.DB.Rebind(query), userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// Upsert keys on user_id; the profile is one-to-one with its seller.
func (r *PGRepository) Upsert(ctx context.Context, p *model.BusinessProfile) error {
	query := `
        INSERT INTO business_profiles (
            id, user_id, company_name, gst_number, pan_number, year_of_establishment,
            business_type, address, city, state, verified, created_at, updated_at
        )
        VALUES (
            :id, :user_id, :company_name, :gst_number, :pan_number, :year_of_establishment,
            :business_type, :address, :city, :state, :verified, :created_at, :updated_at
        )
        ON CONFLICT (user_id) DO UPDATE SET
            company_name = excluded.company_name,
            gst_number = excluded.gst_number,
            pan_number = excluded.pan_number,
            year_of_establishment = excluded.year_of_establishment,
            business_type = excluded.business_type,
            address = excluded.address,
            city = excluded.city,
            state = excluded.state,
            verified = excluded.verified,
            updated_at = excluded.updated_at
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.DB.ExecContext(ctx, r.DB.Rebind("DELETE FROM business_profiles WHERE user_id = ?"), userID)
	return err
}
