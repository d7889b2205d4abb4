package user

import (
	"context"

	"github.com/fekuna/marketplace-catalog-service/internal/model"
)

type Repository interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	Upsert(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id string) error
}
