package delivery

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"yakalahadi-backend/internal/dispatch"
)

// NoticeHandler exposes the function-style HTTP endpoints that external
// systems call directly, outside the authenticated console API.
type NoticeHandler struct {
	dispatchService *dispatch.Service
}

func NewNoticeHandler(dispatchService *dispatch.Service) *NoticeHandler {
	return &NoticeHandler{dispatchService: dispatchService}
}

type approvalNoticeRequest struct {
	CompanyID      string `json:"companyId" binding:"required"`
	ApprovalStatus string `json:"approvalStatus" binding:"required"`
	Reason         string `json:"reason"`
}

// SendCompanyApprovalNotice handles POST /sendCompanyApprovalNotice.
func (h *NoticeHandler) SendCompanyApprovalNotice(c *gin.Context) {
	var req approvalNoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	messageID, err := h.dispatchService.SendApprovalNotice(c.Request.Context(), req.CompanyID, req.ApprovalStatus, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, dispatch.ErrCompanyNotFound), errors.Is(err, dispatch.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, dispatch.ErrNoToken):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "messageId": messageID})
}
