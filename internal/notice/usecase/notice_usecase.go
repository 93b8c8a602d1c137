package usecase

import (
	"context"

	"go.uber.org/zap"

	markerdomain "yakalahadi-backend/internal/marker/domain"
	markerrepo "yakalahadi-backend/internal/marker/repository"
	"yakalahadi-backend/internal/queue"
)

// NoticeUsecase creates bulk-notification markers from the console.
type NoticeUsecase interface {
	CreateBulkNotice(ctx context.Context, title, body, topic string) (*markerdomain.NoticeMarker, error)
}

// noticeUsecase implements NoticeUsecase
type noticeUsecase struct {
	noticeRepo markerrepo.NoticeMarkerRepository
	publisher  queue.Publisher
	logger     *zap.Logger
}

// NewNoticeUsecase creates a new instance of noticeUsecase
func NewNoticeUsecase(noticeRepo markerrepo.NoticeMarkerRepository, publisher queue.Publisher, logger *zap.Logger) NoticeUsecase {
	return &noticeUsecase{
		noticeRepo: noticeRepo,
		publisher:  publisher,
		logger:     logger,
	}
}

// CreateBulkNotice writes the marker and enqueues the broadcast. The send
// happens asynchronously; the marker carries the outcome.
func (u *noticeUsecase) CreateBulkNotice(ctx context.Context, title, body, topic string) (*markerdomain.NoticeMarker, error) {
	m := &markerdomain.NoticeMarker{
		Title: title,
		Body:  body,
		Topic: topic,
	}
	if err := u.noticeRepo.Create(ctx, m); err != nil {
		return nil, err
	}

	if err := u.publisher.Enqueue(ctx, queue.Task{Kind: queue.KindBulkNotice, Ref: m.ID}); err != nil {
		u.logger.Warn("failed to enqueue bulk notice, watcher will retry",
			zap.String("markerId", m.ID), zap.Error(err))
	}
	return m, nil
}
