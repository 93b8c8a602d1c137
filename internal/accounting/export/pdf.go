package export

import (
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"

	accountingdomain "yakalahadi-backend/internal/accounting/domain"
)

// ReportPDF renders the accounting report as a PDF document.
func ReportPDF(report *accountingdomain.Report) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Sayfa {current} / {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(15,
		text.NewCol(12, "YakalaHadi Kredi Muhasebe Raporu", props.Text{
			Size:  16,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)
	m.AddRow(8,
		text.NewCol(12, report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{Size: 9}),
	)

	// Table header
	m.AddRow(10,
		text.NewCol(4, "Firma", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Toplam Kredi", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(4, "Paketler", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Tutar", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, row := range report.Rows {
		m.AddRow(8,
			text.NewCol(4, row.CompanyName, props.Text{Size: 9}),
			text.NewCol(2, fmt.Sprintf("%d", row.TotalPurchased), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(4, formatPackages(row.Packages), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, fmt.Sprintf("%d TL", row.Revenue), props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(12,
		text.NewCol(6, "Toplam", props.Text{Style: fontstyle.Bold, Size: 10}),
		text.NewCol(4, fmt.Sprintf("%d kredi", report.TotalCredits), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right}),
		text.NewCol(2, fmt.Sprintf("%d TL", report.TotalRevenue), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate report PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func formatPackages(packages []accountingdomain.Package) string {
	parts := make([]string, 0, len(packages))
	for _, p := range packages {
		parts = append(parts, fmt.Sprintf("%dx%d", p.Size, p.Price))
	}
	return strings.Join(parts, " + ")
}
