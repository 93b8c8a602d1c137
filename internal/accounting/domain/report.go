package domain

import (
	"time"

	companydomain "yakalahadi-backend/internal/company/domain"
)

// Row is one company line in the accounting report.
type Row struct {
	CompanyID          string     `json:"companyId"`
	CompanyName        string     `json:"companyName"`
	TotalPurchased     int        `json:"totalPurchased"`
	Packages           []Package  `json:"packages"`
	Revenue            int        `json:"revenue"`
	CreditPurchaseDate *time.Time `json:"creditPurchaseDate,omitempty"`
}

// Report is the credit-purchase accounting view over all companies.
type Report struct {
	Rows         []Row     `json:"rows"`
	TotalCredits int       `json:"totalCredits"`
	TotalRevenue int       `json:"totalRevenue"`
	GeneratedAt  time.Time `json:"generatedAt"`
}

// BuildReport decomposes every company's lifetime credit total into priced
// packages. Companies that never purchased are skipped.
func BuildReport(companies []*companydomain.Company) *Report {
	report := &Report{GeneratedAt: time.Now()}
	for _, company := range companies {
		if company.TotalPurchasedCredits <= 0 {
			continue
		}

		packages := Decompose(company.TotalPurchasedCredits)
		row := Row{
			CompanyID:          company.ID,
			CompanyName:        company.Name,
			TotalPurchased:     company.TotalPurchasedCredits,
			Packages:           packages,
			Revenue:            Revenue(packages),
			CreditPurchaseDate: company.CreditPurchaseDate,
		}
		report.Rows = append(report.Rows, row)
		report.TotalCredits += row.TotalPurchased
		report.TotalRevenue += row.Revenue
	}
	return report
}
