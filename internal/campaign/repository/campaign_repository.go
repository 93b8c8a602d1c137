package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	campaigndomain "yakalahadi-backend/internal/campaign/domain"
)

const (
	campaignsCollection = "campaigns"
	discountsCollection = "discounts"
)

// campaignRepository implements CampaignRepository on Firestore
type campaignRepository struct {
	client *firestore.Client
}

// NewCampaignRepository creates a new instance of campaignRepository
func NewCampaignRepository(client *firestore.Client) CampaignRepository {
	return &campaignRepository{client: client}
}

func (r *campaignRepository) FindByID(ctx context.Context, id string) (*campaigndomain.Campaign, error) {
	snap, err := r.client.Collection(campaignsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	var campaign campaigndomain.Campaign
	if err := snap.DataTo(&campaign); err != nil {
		return nil, err
	}
	campaign.ID = snap.Ref.ID
	return &campaign, nil
}

func (r *campaignRepository) FindAll(ctx context.Context) ([]*campaigndomain.Campaign, error) {
	return r.query(ctx, r.client.Collection(campaignsCollection).Query)
}

func (r *campaignRepository) FindUnnotified(ctx context.Context, limit int) ([]*campaigndomain.Campaign, error) {
	return r.query(ctx, r.client.Collection(campaignsCollection).
		Where("notified", "==", false).
		Limit(limit))
}

func (r *campaignRepository) SetActive(ctx context.Context, id string, active bool) error {
	_, err := r.client.Collection(campaignsCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "active", Value: active},
	})
	return err
}

func (r *campaignRepository) MarkNotified(ctx context.Context, id string, sent, failed int) error {
	_, err := r.client.Collection(campaignsCollection).Doc(id).Update(ctx, markNotifiedUpdates(sent, failed))
	return err
}

func (r *campaignRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection(campaignsCollection).Doc(id).Delete(ctx)
	return err
}

func (r *campaignRepository) query(ctx context.Context, q firestore.Query) ([]*campaigndomain.Campaign, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	var campaigns []*campaigndomain.Campaign
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var campaign campaigndomain.Campaign
		if err := snap.DataTo(&campaign); err != nil {
			return nil, err
		}
		campaign.ID = snap.Ref.ID
		campaigns = append(campaigns, &campaign)
	}
	return campaigns, nil
}

// discountRepository implements DiscountRepository on Firestore
type discountRepository struct {
	client *firestore.Client
}

// NewDiscountRepository creates a new instance of discountRepository
func NewDiscountRepository(client *firestore.Client) DiscountRepository {
	return &discountRepository{client: client}
}

func (r *discountRepository) FindByID(ctx context.Context, id string) (*campaigndomain.Discount, error) {
	snap, err := r.client.Collection(discountsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	var discount campaigndomain.Discount
	if err := snap.DataTo(&discount); err != nil {
		return nil, err
	}
	discount.ID = snap.Ref.ID
	return &discount, nil
}

func (r *discountRepository) FindAll(ctx context.Context) ([]*campaigndomain.Discount, error) {
	return r.query(ctx, r.client.Collection(discountsCollection).Query)
}

func (r *discountRepository) FindUnnotified(ctx context.Context, limit int) ([]*campaigndomain.Discount, error) {
	return r.query(ctx, r.client.Collection(discountsCollection).
		Where("notified", "==", false).
		Limit(limit))
}

func (r *discountRepository) SetActive(ctx context.Context, id string, active bool) error {
	_, err := r.client.Collection(discountsCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "active", Value: active},
	})
	return err
}

func (r *discountRepository) MarkNotified(ctx context.Context, id string, sent, failed int) error {
	_, err := r.client.Collection(discountsCollection).Doc(id).Update(ctx, markNotifiedUpdates(sent, failed))
	return err
}

func (r *discountRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection(discountsCollection).Doc(id).Delete(ctx)
	return err
}

func (r *discountRepository) query(ctx context.Context, q firestore.Query) ([]*campaigndomain.Discount, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	var discounts []*campaigndomain.Discount
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var discount campaigndomain.Discount
		if err := snap.DataTo(&discount); err != nil {
			return nil, err
		}
		discount.ID = snap.Ref.ID
		discounts = append(discounts, &discount)
	}
	return discounts, nil
}

func markNotifiedUpdates(sent, failed int) []firestore.Update {
	return []firestore.Update{
		{Path: "notified", Value: true},
		{Path: "sentCount", Value: sent},
		{Path: "failedCount", Value: failed},
	}
}
