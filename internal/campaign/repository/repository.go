package repository

import (
	"context"

	campaigndomain "yakalahadi-backend/internal/campaign/domain"
)

// CampaignRepository abstracts the campaigns collection.
type CampaignRepository interface {
	FindByID(ctx context.Context, id string) (*campaigndomain.Campaign, error)
	FindAll(ctx context.Context) ([]*campaigndomain.Campaign, error)
	FindUnnotified(ctx context.Context, limit int) ([]*campaigndomain.Campaign, error)
	SetActive(ctx context.Context, id string, active bool) error
	MarkNotified(ctx context.Context, id string, sent, failed int) error
	Delete(ctx context.Context, id string) error
}

// DiscountRepository abstracts the discounts collection.
type DiscountRepository interface {
	FindByID(ctx context.Context, id string) (*campaigndomain.Discount, error)
	FindAll(ctx context.Context) ([]*campaigndomain.Discount, error)
	FindUnnotified(ctx context.Context, limit int) ([]*campaigndomain.Discount, error)
	SetActive(ctx context.Context, id string, active bool) error
	MarkNotified(ctx context.Context, id string, sent, failed int) error
	Delete(ctx context.Context, id string) error
}
