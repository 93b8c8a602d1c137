package delivery

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	campaigndomain "yakalahadi-backend/internal/campaign/domain"
	"yakalahadi-backend/internal/campaign/usecase"
)

type CampaignHandler struct {
	campaignUsecase usecase.CampaignUsecase
}

func NewCampaignHandler(campaignUsecase usecase.CampaignUsecase) *CampaignHandler {
	return &CampaignHandler{campaignUsecase: campaignUsecase}
}

type setActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

func (h *CampaignHandler) ListCampaigns(c *gin.Context) {
	campaigns, err := h.campaignUsecase.ListCampaigns(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"campaigns": campaigns})
}

func (h *CampaignHandler) SetCampaignActive(c *gin.Context) {
	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.campaignUsecase.SetCampaignActive(c.Request.Context(), c.Param("id"), *req.Active); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *CampaignHandler) DeleteCampaign(c *gin.Context) {
	if err := h.campaignUsecase.DeleteCampaign(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *CampaignHandler) ListDiscounts(c *gin.Context) {
	discounts, err := h.campaignUsecase.ListDiscounts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"discounts": discounts})
}

func (h *CampaignHandler) SetDiscountActive(c *gin.Context) {
	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.campaignUsecase.SetDiscountActive(c.Request.Context(), c.Param("id"), *req.Active); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *CampaignHandler) DeleteDiscount(c *gin.Context) {
	if err := h.campaignUsecase.DeleteDiscount(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func respondError(c *gin.Context, err error) {
	if errors.Is(err, campaigndomain.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
