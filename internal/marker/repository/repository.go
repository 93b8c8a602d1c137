package repository

import (
	"context"

	markerdomain "yakalahadi-backend/internal/marker/domain"
)

// ApprovalMarkerRepository abstracts the companyApprovals collection.
type ApprovalMarkerRepository interface {
	Create(ctx context.Context, m *markerdomain.ApprovalMarker) error
	FindByID(ctx context.Context, id string) (*markerdomain.ApprovalMarker, error)
	FindUnprocessed(ctx context.Context, limit int) ([]*markerdomain.ApprovalMarker, error)
	Finalize(ctx context.Context, id string, res markerdomain.Result) error
}

// NoticeMarkerRepository abstracts the bulkNotifications collection.
type NoticeMarkerRepository interface {
	Create(ctx context.Context, m *markerdomain.NoticeMarker) error
	FindByID(ctx context.Context, id string) (*markerdomain.NoticeMarker, error)
	FindUnprocessed(ctx context.Context, limit int) ([]*markerdomain.NoticeMarker, error)
	Finalize(ctx context.Context, id string, res markerdomain.Result) error
}
