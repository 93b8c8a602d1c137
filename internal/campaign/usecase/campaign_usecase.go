package usecase

import (
	"context"

	campaigndomain "yakalahadi-backend/internal/campaign/domain"
	campaignrepo "yakalahadi-backend/internal/campaign/repository"
)

// CampaignUsecase is the console surface over campaigns and discounts.
// Both document kinds are created by the company app; the console only
// moderates them.
type CampaignUsecase interface {
	ListCampaigns(ctx context.Context) ([]*campaigndomain.Campaign, error)
	SetCampaignActive(ctx context.Context, id string, active bool) error
	DeleteCampaign(ctx context.Context, id string) error

	ListDiscounts(ctx context.Context) ([]*campaigndomain.Discount, error)
	SetDiscountActive(ctx context.Context, id string, active bool) error
	DeleteDiscount(ctx context.Context, id string) error
}

// campaignUsecase implements CampaignUsecase
type campaignUsecase struct {
	campaignRepo campaignrepo.CampaignRepository
	discountRepo campaignrepo.DiscountRepository
}

// NewCampaignUsecase creates a new instance of campaignUsecase
func NewCampaignUsecase(campaignRepo campaignrepo.CampaignRepository, discountRepo campaignrepo.DiscountRepository) CampaignUsecase {
	return &campaignUsecase{
		campaignRepo: campaignRepo,
		discountRepo: discountRepo,
	}
}

func (u *campaignUsecase) ListCampaigns(ctx context.Context) ([]*campaigndomain.Campaign, error) {
	return u.campaignRepo.FindAll(ctx)
}

func (u *campaignUsecase) SetCampaignActive(ctx context.Context, id string, active bool) error {
	campaign, err := u.campaignRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if campaign == nil {
		return campaigndomain.ErrNotFound
	}
	return u.campaignRepo.SetActive(ctx, id, active)
}

func (u *campaignUsecase) DeleteCampaign(ctx context.Context, id string) error {
	return u.campaignRepo.Delete(ctx, id)
}

func (u *campaignUsecase) ListDiscounts(ctx context.Context) ([]*campaigndomain.Discount, error) {
	return u.discountRepo.FindAll(ctx)
}

func (u *campaignUsecase) SetDiscountActive(ctx context.Context, id string, active bool) error {
	discount, err := u.discountRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if discount == nil {
		return campaigndomain.ErrNotFound
	}
	return u.discountRepo.SetActive(ctx, id, active)
}

func (u *campaignUsecase) DeleteDiscount(ctx context.Context, id string) error {
	return u.discountRepo.Delete(ctx, id)
}
