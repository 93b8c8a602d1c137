package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	reviewdomain "yakalahadi-backend/internal/review/domain"
)

const reviewsCollection = "reviews"

// ReviewRepository abstracts the reviews collection.
type ReviewRepository interface {
	FindByID(ctx context.Context, id string) (*reviewdomain.Review, error)
	FindAll(ctx context.Context) ([]*reviewdomain.Review, error)
	FindByCompany(ctx context.Context, companyID string) ([]*reviewdomain.Review, error)
	SetApproved(ctx context.Context, id string, approved bool) error
	Delete(ctx context.Context, id string) error
}

// reviewRepository implements ReviewRepository on Firestore
type reviewRepository struct {
	client *firestore.Client
}

// NewReviewRepository creates a new instance of reviewRepository
func NewReviewRepository(client *firestore.Client) ReviewRepository {
	return &reviewRepository{client: client}
}

func (r *reviewRepository) FindByID(ctx context.Context, id string) (*reviewdomain.Review, error) {
	snap, err := r.client.Collection(reviewsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	var review reviewdomain.Review
	if err := snap.DataTo(&review); err != nil {
		return nil, err
	}
	review.ID = snap.Ref.ID
	return &review, nil
}

func (r *reviewRepository) FindAll(ctx context.Context) ([]*reviewdomain.Review, error) {
	return r.query(ctx, r.client.Collection(reviewsCollection).Query)
}

func (r *reviewRepository) FindByCompany(ctx context.Context, companyID string) ([]*reviewdomain.Review, error) {
	return r.query(ctx, r.client.Collection(reviewsCollection).Where("companyId", "==", companyID))
}

func (r *reviewRepository) SetApproved(ctx context.Context, id string, approved bool) error {
	_, err := r.client.Collection(reviewsCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "approved", Value: approved},
	})
	return err
}

func (r *reviewRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection(reviewsCollection).Doc(id).Delete(ctx)
	return err
}

func (r *reviewRepository) query(ctx context.Context, q firestore.Query) ([]*reviewdomain.Review, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	var reviews []*reviewdomain.Review
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var review reviewdomain.Review
		if err := snap.DataTo(&review); err != nil {
			return nil, err
		}
		review.ID = snap.Ref.ID
		reviews = append(reviews, &review)
	}
	return reviews, nil
}
