package usecase

import (
	"context"

	authdomain "yakalahadi-backend/internal/auth/domain"
	authdto "yakalahadi-backend/internal/auth/dto"
)

// AuthUsecase is the console authentication and admin-management surface.
type AuthUsecase interface {
	Login(ctx context.Context, req *authdto.LoginRequest) (*authdto.LoginResponse, error)
	ValidateToken(token string) (email string, err error)

	SetAdminClaim(ctx context.Context, uid string) error
	RemoveAdminClaim(ctx context.Context, uid string) error
	ListAdminUsers(ctx context.Context) ([]*authdomain.AdminUser, error)
	SetUserDisabled(ctx context.Context, uid string, disabled bool) error
	DeleteUserCompletely(ctx context.Context, uid string) error
}
