package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	companydomain "yakalahadi-backend/internal/company/domain"
)

const companiesCollection = "companies"

// companyRepository implements CompanyRepository on Firestore
type companyRepository struct {
	client *firestore.Client
}

// NewCompanyRepository creates a new instance of companyRepository
func NewCompanyRepository(client *firestore.Client) CompanyRepository {
	return &companyRepository{client: client}
}

func (r *companyRepository) FindByID(ctx context.Context, id string) (*companydomain.Company, error) {
	snap, err := r.client.Collection(companiesCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}
	return decode(snap)
}

func (r *companyRepository) FindAll(ctx context.Context) ([]*companydomain.Company, error) {
	return r.query(ctx, r.client.Collection(companiesCollection).Query)
}

func (r *companyRepository) FindPendingApproval(ctx context.Context) ([]*companydomain.Company, error) {
	return r.query(ctx, r.client.Collection(companiesCollection).Where("approved", "==", false))
}

func (r *companyRepository) SetApproved(ctx context.Context, id string, approved bool) error {
	_, err := r.client.Collection(companiesCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "approved", Value: approved},
	})
	return err
}

func (r *companyRepository) SetCategory(ctx context.Context, id, category string) error {
	_, err := r.client.Collection(companiesCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "category", Value: category},
	})
	return err
}

// AddCredits records a credit purchase: both counters move together and the
// purchase date is stamped.
func (r *companyRepository) AddCredits(ctx context.Context, id string, amount int) error {
	_, err := r.client.Collection(companiesCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "credits", Value: firestore.Increment(amount)},
		{Path: "totalPurchasedCredits", Value: firestore.Increment(amount)},
		{Path: "creditPurchaseDate", Value: time.Now()},
	})
	return err
}

// SetTotalPurchased is the explicit administrative correction of the
// lifetime counter. It is the only write that may move it backwards.
func (r *companyRepository) SetTotalPurchased(ctx context.Context, id string, value int) error {
	_, err := r.client.Collection(companiesCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "totalPurchasedCredits", Value: value},
	})
	return err
}

func (r *companyRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection(companiesCollection).Doc(id).Delete(ctx)
	return err
}

func (r *companyRepository) query(ctx context.Context, q firestore.Query) ([]*companydomain.Company, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	var companies []*companydomain.Company
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		company, err := decode(snap)
		if err != nil {
			return nil, err
		}
		companies = append(companies, company)
	}
	return companies, nil
}

func decode(snap *firestore.DocumentSnapshot) (*companydomain.Company, error) {
	var company companydomain.Company
	if err := snap.DataTo(&company); err != nil {
		return nil, err
	}
	company.ID = snap.Ref.ID
	return &company, nil
}
