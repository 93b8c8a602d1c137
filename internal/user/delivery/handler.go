package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"

	userdomain "yakalahadi-backend/internal/user/domain"
	"yakalahadi-backend/internal/user/repository"
	"yakalahadi-backend/pkg/fuzzy"
)

type UserHandler struct {
	userRepo repository.UserRepository
}

func NewUserHandler(userRepo repository.UserRepository) *UserHandler {
	return &UserHandler{userRepo: userRepo}
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userRepo.FindAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if q := c.Query("q"); q != "" {
		filtered := make([]*userdomain.User, 0, len(users))
		for _, user := range users {
			if fuzzy.MatchFields(q, user.Name, user.Email) {
				filtered = append(filtered, user)
			}
		}
		users = filtered
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userRepo.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}
