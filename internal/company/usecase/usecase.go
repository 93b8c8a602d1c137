package usecase

import (
	"context"

	companydomain "yakalahadi-backend/internal/company/domain"
)

// CompanyUsecase is the console surface over companies.
type CompanyUsecase interface {
	List(ctx context.Context) ([]*companydomain.Company, error)
	ListPending(ctx context.Context) ([]*companydomain.Company, error)
	Get(ctx context.Context, id string) (*companydomain.Company, error)
	SetCategory(ctx context.Context, id, category string) error
	AddCredits(ctx context.Context, id string, amount int) error
	CorrectTotalPurchased(ctx context.Context, id string, value int) error
	Approve(ctx context.Context, id string) error
	Reject(ctx context.Context, id, reason string) error
	Delete(ctx context.Context, id string) error
}
