package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yakalahadi-backend/internal/review/repository"
)

type ReviewHandler struct {
	reviewRepo repository.ReviewRepository
}

func NewReviewHandler(reviewRepo repository.ReviewRepository) *ReviewHandler {
	return &ReviewHandler{reviewRepo: reviewRepo}
}

func (h *ReviewHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var err error
	var reviews interface{}
	if companyID := c.Query("companyId"); companyID != "" {
		reviews, err = h.reviewRepo.FindByCompany(ctx, companyID)
	} else {
		reviews, err = h.reviewRepo.FindAll(ctx)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

func (h *ReviewHandler) Approve(c *gin.Context) {
	id := c.Param("id")
	review, err := h.reviewRepo.FindByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if review == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
		return
	}

	if err := h.reviewRepo.SetApproved(c.Request.Context(), id, true); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	if err := h.reviewRepo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
