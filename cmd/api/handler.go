package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"yakalahadi-backend/pkg/mailer"
)

// DiagHandler serves the unauthenticated connectivity probe used to
// verify a deployment before pointing the console at it.
type DiagHandler struct {
	projectID string
	mail      *mailer.Service
}

func NewDiagHandler(projectID string, mail *mailer.Service) *DiagHandler {
	return &DiagHandler{projectID: projectID, mail: mail}
}

func (h *DiagHandler) Test(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		body = nil
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":             true,
		"projectId":      h.projectID,
		"mailConfigured": h.mail.Configured(),
		"time":           time.Now().UTC().Format(time.RFC3339),
		"echo":           body,
	})
}
