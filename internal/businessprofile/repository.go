package businessprofile

import (
	"context"

	"github.com/fekuna/marketplace-catalog-service/internal/model"
)

type Repository interface {
	FindByUserID(ctx context.Context, userID string) (*model.BusinessProfile, error)
	Upsert(ctx context.Context, profile *model.BusinessProfile) error
	DeleteByUserID(ctx context.Context, userID string) error
}
