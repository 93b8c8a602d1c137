package usecase

import (
	"context"

	"go.uber.org/zap"

	companydomain "yakalahadi-backend/internal/company/domain"
	companyrepo "yakalahadi-backend/internal/company/repository"
	markerdomain "yakalahadi-backend/internal/marker/domain"
	markerrepo "yakalahadi-backend/internal/marker/repository"
	"yakalahadi-backend/internal/queue"
)

// companyUsecase implements CompanyUsecase
type companyUsecase struct {
	companyRepo  companyrepo.CompanyRepository
	approvalRepo markerrepo.ApprovalMarkerRepository
	publisher    queue.Publisher
	logger       *zap.Logger
}

// NewCompanyUsecase creates a new instance of companyUsecase
func NewCompanyUsecase(companyRepo companyrepo.CompanyRepository, approvalRepo markerrepo.ApprovalMarkerRepository, publisher queue.Publisher, logger *zap.Logger) CompanyUsecase {
	return &companyUsecase{
		companyRepo:  companyRepo,
		approvalRepo: approvalRepo,
		publisher:    publisher,
		logger:       logger,
	}
}

func (u *companyUsecase) List(ctx context.Context) ([]*companydomain.Company, error) {
	return u.companyRepo.FindAll(ctx)
}

func (u *companyUsecase) ListPending(ctx context.Context) ([]*companydomain.Company, error) {
	return u.companyRepo.FindPendingApproval(ctx)
}

func (u *companyUsecase) Get(ctx context.Context, id string) (*companydomain.Company, error) {
	company, err := u.companyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, companydomain.ErrNotFound
	}
	return company, nil
}

func (u *companyUsecase) SetCategory(ctx context.Context, id, category string) error {
	if _, err := u.Get(ctx, id); err != nil {
		return err
	}
	return u.companyRepo.SetCategory(ctx, id, category)
}

func (u *companyUsecase) AddCredits(ctx context.Context, id string, amount int) error {
	if _, err := u.Get(ctx, id); err != nil {
		return err
	}
	return u.companyRepo.AddCredits(ctx, id, amount)
}

func (u *companyUsecase) CorrectTotalPurchased(ctx context.Context, id string, value int) error {
	company, err := u.Get(ctx, id)
	if err != nil {
		return err
	}

	u.logger.Warn("administrative correction of lifetime credit total",
		zap.String("companyId", id),
		zap.Int("from", company.TotalPurchasedCredits),
		zap.Int("to", value))
	return u.companyRepo.SetTotalPurchased(ctx, id, value)
}

func (u *companyUsecase) Approve(ctx context.Context, id string) error {
	return u.decide(ctx, id, markerdomain.StatusApproved, "")
}

func (u *companyUsecase) Reject(ctx context.Context, id, reason string) error {
	return u.decide(ctx, id, markerdomain.StatusRejected, reason)
}

// decide flips the approval flag, writes the approval marker and enqueues
// the dispatch task. The notice itself is sent asynchronously; a publish
// failure is tolerated because the watcher picks the marker up later.
func (u *companyUsecase) decide(ctx context.Context, id, status, reason string) error {
	if _, err := u.Get(ctx, id); err != nil {
		return err
	}

	if err := u.companyRepo.SetApproved(ctx, id, status == markerdomain.StatusApproved); err != nil {
		return err
	}

	m := &markerdomain.ApprovalMarker{
		CompanyID:      id,
		ApprovalStatus: status,
		Reason:         reason,
	}
	if err := u.approvalRepo.Create(ctx, m); err != nil {
		return err
	}

	if err := u.publisher.Enqueue(ctx, queue.Task{Kind: queue.KindCompanyApproval, Ref: m.ID}); err != nil {
		u.logger.Warn("failed to enqueue approval dispatch, watcher will retry",
			zap.String("markerId", m.ID), zap.Error(err))
	}
	return nil
}

func (u *companyUsecase) Delete(ctx context.Context, id string) error {
	if _, err := u.Get(ctx, id); err != nil {
		return err
	}
	return u.companyRepo.Delete(ctx, id)
}
