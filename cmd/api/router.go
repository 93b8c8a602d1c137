package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	accountingDelivery "yakalahadi-backend/internal/accounting/delivery"
	authDelivery "yakalahadi-backend/internal/auth/delivery"
	authUsecase "yakalahadi-backend/internal/auth/usecase"
	campaignDelivery "yakalahadi-backend/internal/campaign/delivery"
	companyDelivery "yakalahadi-backend/internal/company/delivery"
	dispatchDelivery "yakalahadi-backend/internal/dispatch/delivery"
	noticeDelivery "yakalahadi-backend/internal/notice/delivery"
	reviewDelivery "yakalahadi-backend/internal/review/delivery"
	userDelivery "yakalahadi-backend/internal/user/delivery"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth       *authDelivery.AuthHandler
	AuthUC     authUsecase.AuthUsecase
	Company    *companyDelivery.CompanyHandler
	User       *userDelivery.UserHandler
	Campaign   *campaignDelivery.CampaignHandler
	Review     *reviewDelivery.ReviewHandler
	Accounting *accountingDelivery.AccountingHandler
	Notice     *noticeDelivery.NoticeHandler
	Dispatch   *dispatchDelivery.NoticeHandler
	Diag       *DiagHandler
}

func SetupRoutes(r *gin.Engine, h Handlers) {
	r.HandleMethodNotAllowed = true

	// Function-style endpoints called by external systems (no console session).
	r.POST("/sendCompanyApprovalNotice", h.Dispatch.SendCompanyApprovalNotice)
	r.POST("/test", h.Diag.Test)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		api.POST("/auth/login", h.Auth.Login)

		// Console routes (session required)
		console := api.Group("")
		console.Use(authDelivery.AuthMiddleware(h.AuthUC))
		{
			companies := console.Group("/companies")
			{
				companies.GET("", h.Company.List)
				companies.GET("/pending", h.Company.ListPending)
				companies.GET("/:id", h.Company.Get)
				companies.POST("/:id/approve", h.Company.Approve)
				companies.POST("/:id/reject", h.Company.Reject)
				companies.PATCH("/:id/category", h.Company.SetCategory)
				companies.POST("/:id/credits", h.Company.AddCredits)
				companies.PUT("/:id/total-purchased", h.Company.CorrectTotalPurchased)
				companies.DELETE("/:id", h.Company.Delete)
			}

			users := console.Group("/users")
			{
				users.GET("", h.User.List)
				users.GET("/:id", h.User.Get)
			}

			campaigns := console.Group("/campaigns")
			{
				campaigns.GET("", h.Campaign.ListCampaigns)
				campaigns.PATCH("/:id/active", h.Campaign.SetCampaignActive)
				campaigns.DELETE("/:id", h.Campaign.DeleteCampaign)
			}

			discounts := console.Group("/discounts")
			{
				discounts.GET("", h.Campaign.ListDiscounts)
				discounts.PATCH("/:id/active", h.Campaign.SetDiscountActive)
				discounts.DELETE("/:id", h.Campaign.DeleteDiscount)
			}

			reviews := console.Group("/reviews")
			{
				reviews.GET("", h.Review.List)
				reviews.POST("/:id/approve", h.Review.Approve)
				reviews.DELETE("/:id", h.Review.Delete)
			}

			accounting := console.Group("/accounting")
			{
				accounting.GET("/report", h.Accounting.Report)
				accounting.GET("/report/pdf", h.Accounting.ReportPDF)
			}

			console.POST("/notices", h.Notice.Create)

			admin := console.Group("/admin")
			{
				admin.POST("/claims/set", h.Auth.SetAdminClaim)
				admin.POST("/claims/remove", h.Auth.RemoveAdminClaim)
				admin.GET("/users", h.Auth.ListAdminUsers)
				admin.POST("/users/:uid/disabled", h.Auth.SetUserDisabled)
				admin.DELETE("/users/:uid", h.Auth.DeleteUserCompletely)
			}
		}
	}
}
