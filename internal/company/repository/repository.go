package repository

import (
	"context"

	companydomain "yakalahadi-backend/internal/company/domain"
)

// CompanyRepository abstracts the companies collection.
type CompanyRepository interface {
	FindByID(ctx context.Context, id string) (*companydomain.Company, error)
	FindAll(ctx context.Context) ([]*companydomain.Company, error)
	FindPendingApproval(ctx context.Context) ([]*companydomain.Company, error)
	SetApproved(ctx context.Context, id string, approved bool) error
	SetCategory(ctx context.Context, id, category string) error
	AddCredits(ctx context.Context, id string, amount int) error
	SetTotalPurchased(ctx context.Context, id string, value int) error
	Delete(ctx context.Context, id string) error
}
