package usecase

import (
	"context"

	accountingdomain "yakalahadi-backend/internal/accounting/domain"
	"yakalahadi-backend/internal/accounting/export"
	companyrepo "yakalahadi-backend/internal/company/repository"
)

// AccountingUsecase builds the credit-purchase accounting views.
type AccountingUsecase interface {
	Report(ctx context.Context) (*accountingdomain.Report, error)
	ReportPDF(ctx context.Context) ([]byte, error)
}

// accountingUsecase implements AccountingUsecase
type accountingUsecase struct {
	companyRepo companyrepo.CompanyRepository
}

// NewAccountingUsecase creates a new instance of accountingUsecase
func NewAccountingUsecase(companyRepo companyrepo.CompanyRepository) AccountingUsecase {
	return &accountingUsecase{companyRepo: companyRepo}
}

func (u *accountingUsecase) Report(ctx context.Context) (*accountingdomain.Report, error) {
	companies, err := u.companyRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return accountingdomain.BuildReport(companies), nil
}

func (u *accountingUsecase) ReportPDF(ctx context.Context) ([]byte, error) {
	report, err := u.Report(ctx)
	if err != nil {
		return nil, err
	}
	return export.ReportPDF(report)
}
