package repository

import (
	"context"

	userdomain "yakalahadi-backend/internal/user/domain"
)

// UserRepository abstracts the users collection.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*userdomain.User, error)
	FindAll(ctx context.Context) ([]*userdomain.User, error)
	FindNotifiable(ctx context.Context) ([]*userdomain.User, error)
	SetDisabled(ctx context.Context, id string, disabled bool) error
	Delete(ctx context.Context, id string) error
}
