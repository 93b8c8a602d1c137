package delivery

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	companydomain "yakalahadi-backend/internal/company/domain"
	companydto "yakalahadi-backend/internal/company/dto"
	"yakalahadi-backend/internal/company/usecase"
	"yakalahadi-backend/pkg/fuzzy"
)

type CompanyHandler struct {
	companyUsecase usecase.CompanyUsecase
}

func NewCompanyHandler(companyUsecase usecase.CompanyUsecase) *CompanyHandler {
	return &CompanyHandler{companyUsecase: companyUsecase}
}

func (h *CompanyHandler) List(c *gin.Context) {
	companies, err := h.companyUsecase.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if q := c.Query("q"); q != "" {
		filtered := make([]*companydomain.Company, 0, len(companies))
		for _, company := range companies {
			if fuzzy.MatchFields(q, company.Name, company.Email, company.OfficerName) {
				filtered = append(filtered, company)
			}
		}
		companies = filtered
	}

	c.JSON(http.StatusOK, gin.H{"companies": companies})
}

func (h *CompanyHandler) ListPending(c *gin.Context) {
	companies, err := h.companyUsecase.ListPending(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"companies": companies})
}

func (h *CompanyHandler) Get(c *gin.Context) {
	company, err := h.companyUsecase.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

func (h *CompanyHandler) Approve(c *gin.Context) {
	if err := h.companyUsecase.Approve(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *CompanyHandler) Reject(c *gin.Context) {
	var req companydto.RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.companyUsecase.Reject(c.Request.Context(), c.Param("id"), req.Reason); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *CompanyHandler) SetCategory(c *gin.Context) {
	var req companydto.SetCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.companyUsecase.SetCategory(c.Request.Context(), c.Param("id"), req.Category); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *CompanyHandler) AddCredits(c *gin.Context) {
	var req companydto.AddCreditsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.companyUsecase.AddCredits(c.Request.Context(), c.Param("id"), req.Amount); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *CompanyHandler) CorrectTotalPurchased(c *gin.Context) {
	var req companydto.CorrectTotalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.companyUsecase.CorrectTotalPurchased(c.Request.Context(), c.Param("id"), req.TotalPurchasedCredits); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *CompanyHandler) Delete(c *gin.Context) {
	if err := h.companyUsecase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func respondError(c *gin.Context, err error) {
	if errors.Is(err, companydomain.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
