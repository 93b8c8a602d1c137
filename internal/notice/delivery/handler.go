package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yakalahadi-backend/internal/notice/usecase"
)

type NoticeHandler struct {
	noticeUsecase usecase.NoticeUsecase
}

func NewNoticeHandler(noticeUsecase usecase.NoticeUsecase) *NoticeHandler {
	return &NoticeHandler{noticeUsecase: noticeUsecase}
}

type createNoticeRequest struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
	Topic string `json:"topic"`
}

func (h *NoticeHandler) Create(c *gin.Context) {
	var req createNoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := h.noticeUsecase.CreateBulkNotice(c.Request.Context(), req.Title, req.Body, req.Topic)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, m)
}
