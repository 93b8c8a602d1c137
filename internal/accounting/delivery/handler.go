package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yakalahadi-backend/internal/accounting/usecase"
)

type AccountingHandler struct {
	accountingUsecase usecase.AccountingUsecase
}

func NewAccountingHandler(accountingUsecase usecase.AccountingUsecase) *AccountingHandler {
	return &AccountingHandler{accountingUsecase: accountingUsecase}
}

func (h *AccountingHandler) Report(c *gin.Context) {
	report, err := h.accountingUsecase.Report(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *AccountingHandler) ReportPDF(c *gin.Context) {
	pdf, err := h.accountingUsecase.ReportPDF(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="kredi-raporu.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
