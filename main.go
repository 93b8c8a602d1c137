package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	api "yakalahadi-backend/cmd/api"
	accountingDelivery "yakalahadi-backend/internal/accounting/delivery"
	accountingUsecase "yakalahadi-backend/internal/accounting/usecase"
	authDelivery "yakalahadi-backend/internal/auth/delivery"
	authUsecase "yakalahadi-backend/internal/auth/usecase"
	campaignDelivery "yakalahadi-backend/internal/campaign/delivery"
	campaignRepo "yakalahadi-backend/internal/campaign/repository"
	campaignUsecase "yakalahadi-backend/internal/campaign/usecase"
	companyDelivery "yakalahadi-backend/internal/company/delivery"
	companyRepo "yakalahadi-backend/internal/company/repository"
	companyUsecase "yakalahadi-backend/internal/company/usecase"
	"yakalahadi-backend/internal/dispatch"
	dispatchDelivery "yakalahadi-backend/internal/dispatch/delivery"
	markerRepo "yakalahadi-backend/internal/marker/repository"
	noticeDelivery "yakalahadi-backend/internal/notice/delivery"
	noticeUsecase "yakalahadi-backend/internal/notice/usecase"
	"yakalahadi-backend/internal/queue"
	reviewDelivery "yakalahadi-backend/internal/review/delivery"
	reviewRepo "yakalahadi-backend/internal/review/repository"
	userDelivery "yakalahadi-backend/internal/user/delivery"
	userRepo "yakalahadi-backend/internal/user/repository"
	"yakalahadi-backend/internal/watch"
	"yakalahadi-backend/pkg/config"
	"yakalahadi-backend/pkg/fcm"
	"yakalahadi-backend/pkg/firebase"
	"yakalahadi-backend/pkg/logger"
	"yakalahadi-backend/pkg/mailer"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zl, err := logger.New()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer zl.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize Firebase clients
	fb, err := firebase.New(ctx, cfg.ProjectID, cfg.FirebaseCredentials)
	if err != nil {
		zl.Fatal("Failed to initialize Firebase", zap.Error(err))
	}
	defer fb.Close()

	// Initialize repositories (dependency injection)
	users := userRepo.NewUserRepository(fb.Firestore)
	companies := companyRepo.NewCompanyRepository(fb.Firestore)
	campaigns := campaignRepo.NewCampaignRepository(fb.Firestore)
	discounts := campaignRepo.NewDiscountRepository(fb.Firestore)
	reviews := reviewRepo.NewReviewRepository(fb.Firestore)
	approvals := markerRepo.NewApprovalMarkerRepository(fb.Firestore)
	notices := markerRepo.NewNoticeMarkerRepository(fb.Firestore)

	// Outbound messaging clients
	push := fcm.NewClient(fb.Messaging, zl)
	mail := mailer.NewService(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GmailRefreshToken, cfg.MailFromName, cfg.MailFrom)
	if !mail.Configured() {
		zl.Warn("mailer credentials missing, approval emails will be skipped")
	}

	// Work queue and dispatch handlers
	registry := queue.NewRegistry()
	queueService, err := queue.NewService(ctx, cfg.ProjectID, cfg.QueueTopic, registry, zl, cfg.FirebaseCredentials)
	if err != nil {
		zl.Fatal("Failed to initialize work queue", zap.Error(err))
	}
	defer queueService.Close()

	dispatcher := dispatch.NewService(approvals, notices, companies, users, campaigns, discounts, push, mail, cfg.BroadcastTopic, zl)
	dispatcher.RegisterHandlers(registry)
	go queueService.Start(ctx)

	// Watcher re-enqueues documents the queue has not settled yet
	watcher := watch.NewWatcher(approvals, notices, campaigns, discounts, queueService, cfg.WatchInterval, zl)
	watcher.Start(ctx)
	defer watcher.Stop()

	// Initialize usecases
	authUC := authUsecase.NewAuthUsecase(fb.Auth, users, companies, cfg, zl)
	companyUC := companyUsecase.NewCompanyUsecase(companies, approvals, queueService, zl)
	campaignUC := campaignUsecase.NewCampaignUsecase(campaigns, discounts)
	accountingUC := accountingUsecase.NewAccountingUsecase(companies)
	noticeUC := noticeUsecase.NewNoticeUsecase(notices, queueService, zl)

	// Initialize handlers
	handlers := api.Handlers{
		Auth:       authDelivery.NewAuthHandler(authUC),
		AuthUC:     authUC,
		Company:    companyDelivery.NewCompanyHandler(companyUC),
		User:       userDelivery.NewUserHandler(users),
		Campaign:   campaignDelivery.NewCampaignHandler(campaignUC),
		Review:     reviewDelivery.NewReviewHandler(reviews),
		Accounting: accountingDelivery.NewAccountingHandler(accountingUC),
		Notice:     noticeDelivery.NewNoticeHandler(noticeUC),
		Dispatch:   dispatchDelivery.NewNoticeHandler(dispatcher),
		Diag:       api.NewDiagHandler(cfg.ProjectID, mail),
	}

	// Setup Gin router
	r := gin.Default()
	api.SetupRoutes(r, handlers)

	go func() {
		zl.Info("server starting", zap.String("port", cfg.Port))
		if err := r.Run(":" + cfg.Port); err != nil {
			zl.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Block until interrupted
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zl.Info("shutting down")
}
