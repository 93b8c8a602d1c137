package dispatch

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	campaigndomain "yakalahadi-backend/internal/campaign/domain"
	campaignrepo "yakalahadi-backend/internal/campaign/repository"
	companyrepo "yakalahadi-backend/internal/company/repository"
	markerdomain "yakalahadi-backend/internal/marker/domain"
	markerrepo "yakalahadi-backend/internal/marker/repository"
	"yakalahadi-backend/internal/queue"
	userdomain "yakalahadi-backend/internal/user/domain"
	userrepo "yakalahadi-backend/internal/user/repository"
	"yakalahadi-backend/pkg/fcm"
	"yakalahadi-backend/pkg/mailer"
)

// Service consumes queue tasks and performs the actual notification/email
// dispatch. Delivery failures are absorbed into document state rather than
// returned: the triggering write already happened and cannot be rolled
// back, and there is no local retry loop.
type Service struct {
	approvalRepo markerrepo.ApprovalMarkerRepository
	noticeRepo   markerrepo.NoticeMarkerRepository
	companyRepo  companyrepo.CompanyRepository
	userRepo     userrepo.UserRepository
	campaignRepo campaignrepo.CampaignRepository
	discountRepo campaignrepo.DiscountRepository
	push         fcm.Sender
	mail         mailer.Sender
	logger       *zap.Logger

	broadcastTopic string
}

func NewService(
	approvalRepo markerrepo.ApprovalMarkerRepository,
	noticeRepo markerrepo.NoticeMarkerRepository,
	companyRepo companyrepo.CompanyRepository,
	userRepo userrepo.UserRepository,
	campaignRepo campaignrepo.CampaignRepository,
	discountRepo campaignrepo.DiscountRepository,
	push fcm.Sender,
	mail mailer.Sender,
	broadcastTopic string,
	logger *zap.Logger,
) *Service {
	return &Service{
		approvalRepo:   approvalRepo,
		noticeRepo:     noticeRepo,
		companyRepo:    companyRepo,
		userRepo:       userRepo,
		campaignRepo:   campaignRepo,
		discountRepo:   discountRepo,
		push:           push,
		mail:           mail,
		broadcastTopic: broadcastTopic,
		logger:         logger,
	}
}

// RegisterHandlers binds the dispatch handlers onto the queue registry.
func (s *Service) RegisterHandlers(reg *queue.Registry) {
	reg.Register(queue.KindCompanyApproval, s.HandleCompanyApproval)
	reg.Register(queue.KindBulkNotice, s.HandleBulkNotice)
	reg.Register(queue.KindCampaignCreated, s.HandleCampaignCreated)
	reg.Register(queue.KindDiscountCreated, s.HandleDiscountCreated)
}

// HandleCompanyApproval sends the approval/rejection push and email for one
// approval marker, then finalizes the marker exactly once.
func (s *Service) HandleCompanyApproval(ctx context.Context, task queue.Task) error {
	m, err := s.approvalRepo.FindByID(ctx, task.Ref)
	if err != nil {
		return err
	}
	if m == nil {
		return fmt.Errorf("approval marker %s not found", task.Ref)
	}
	if m.Processed {
		// At-least-once delivery: replays of finalized markers are dropped.
		s.logger.Debug("skipping processed approval marker", zap.String("markerId", m.ID))
		return nil
	}

	company, err := s.companyRepo.FindByID(ctx, m.CompanyID)
	if err != nil {
		return err
	}
	if company == nil {
		return s.approvalRepo.Finalize(ctx, m.ID, markerdomain.Result{Error: "company not found"})
	}

	// The mobile app stores the company officer's user record under the
	// same document ID as the company.
	user, err := s.userRepo.FindByID(ctx, m.CompanyID)
	if err != nil {
		return err
	}
	if user == nil || user.FCMToken == "" {
		s.logger.Warn("approval notice has no push target",
			zap.String("markerId", m.ID), zap.String("companyId", m.CompanyID))
		return s.approvalRepo.Finalize(ctx, m.ID, markerdomain.Result{Error: "user has no notification token"})
	}

	title, body := approvedPushTitle, approvedPushBody
	subject, html := approvedEmailSubject, approvedEmailBody(company.Name)
	if m.ApprovalStatus != markerdomain.StatusApproved {
		title, body = rejectedPushTitle, rejectedPushBody
		if m.Reason != "" {
			body = body + " Gerekçe: " + m.Reason
		}
		subject, html = rejectedEmailSubject, rejectedEmailBody(company.Name, m.Reason)
	}

	res := markerdomain.Result{}

	messageID, err := s.push.SendToToken(ctx, user.FCMToken, fcm.Notification{Title: title, Body: body})
	if err != nil {
		res.Error = err.Error()
		s.logger.Error("approval push failed", zap.String("markerId", m.ID), zap.Error(err))
	} else {
		res.MessageID = messageID
	}

	if company.Email != "" {
		if _, err := s.mail.Send(ctx, company.Email, subject, html); err != nil {
			s.logger.Error("approval email failed", zap.String("markerId", m.ID), zap.Error(err))
			if res.Error == "" {
				res.Error = err.Error()
			}
		} else {
			res.EmailSent = true
		}
	}

	return s.approvalRepo.Finalize(ctx, m.ID, res)
}

// HandleBulkNotice sends one topic broadcast for a bulk-notification marker.
func (s *Service) HandleBulkNotice(ctx context.Context, task queue.Task) error {
	m, err := s.noticeRepo.FindByID(ctx, task.Ref)
	if err != nil {
		return err
	}
	if m == nil {
		return fmt.Errorf("notice marker %s not found", task.Ref)
	}
	if m.Processed {
		s.logger.Debug("skipping processed notice marker", zap.String("markerId", m.ID))
		return nil
	}

	topic := m.Topic
	if topic == "" {
		topic = s.broadcastTopic
	}

	res := markerdomain.Result{}
	messageID, err := s.push.SendToTopic(ctx, topic, fcm.Notification{Title: m.Title, Body: m.Body})
	if err != nil {
		res.Error = err.Error()
		s.logger.Error("bulk notice broadcast failed", zap.String("markerId", m.ID), zap.Error(err))
	} else {
		res.MessageID = messageID
	}

	return s.noticeRepo.Finalize(ctx, m.ID, res)
}

// HandleCampaignCreated runs the eligibility fan-out for a new campaign.
func (s *Service) HandleCampaignCreated(ctx context.Context, task queue.Task) error {
	campaign, err := s.campaignRepo.FindByID(ctx, task.Ref)
	if err != nil {
		return err
	}
	if campaign == nil {
		return fmt.Errorf("campaign %s not found", task.Ref)
	}
	if campaign.Notified {
		return nil
	}

	sent, failed := s.fanOut(ctx, campaign.Event())
	return s.campaignRepo.MarkNotified(ctx, campaign.ID, sent, failed)
}

// HandleDiscountCreated runs the eligibility fan-out for a new discount,
// always with the fixed discount radius.
func (s *Service) HandleDiscountCreated(ctx context.Context, task queue.Task) error {
	discount, err := s.discountRepo.FindByID(ctx, task.Ref)
	if err != nil {
		return err
	}
	if discount == nil {
		return fmt.Errorf("discount %s not found", task.Ref)
	}
	if discount.Notified {
		return nil
	}

	sent, failed := s.fanOut(ctx, discount.Event())
	return s.discountRepo.MarkNotified(ctx, discount.ID, sent, failed)
}

// fanOut issues one push per eligible user, concurrently, and waits for
// every send to settle before reporting counts. Individual failures are
// logged and counted but never abort the remaining sends.
func (s *Service) fanOut(ctx context.Context, event campaigndomain.Event) (sent, failed int) {
	users, err := s.userRepo.FindNotifiable(ctx)
	if err != nil {
		s.logger.Error("fan-out could not load users", zap.Error(err))
		return 0, 0
	}

	eligible := campaigndomain.EligibleUsers(event, users)
	if len(eligible) == 0 {
		return 0, 0
	}

	imageURL, title := campaigndomain.ParseTitle(event.Title, event.LogoURL)
	notification := fcm.Notification{
		Title:    title,
		Body:     event.Body,
		ImageURL: imageURL,
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, u := range eligible {
		wg.Add(1)
		go func(u *userdomain.User) {
			defer wg.Done()
			if _, err := s.push.SendToToken(ctx, u.FCMToken, notification); err != nil {
				s.logger.Warn("fan-out send failed", zap.String("userId", u.ID), zap.Error(err))
				mu.Lock()
				failed++
				mu.Unlock()
				return
			}
			mu.Lock()
			sent++
			mu.Unlock()
		}(u)
	}
	wg.Wait()

	s.logger.Info("fan-out settled",
		zap.String("category", event.Category),
		zap.Int("eligible", len(eligible)),
		zap.Int("sent", sent),
		zap.Int("failed", failed))
	return sent, failed
}
