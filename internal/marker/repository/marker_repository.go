package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	markerdomain "yakalahadi-backend/internal/marker/domain"
)

const (
	approvalsCollection = "companyApprovals"
	noticesCollection   = "bulkNotifications"
)

// approvalMarkerRepository implements ApprovalMarkerRepository on Firestore
type approvalMarkerRepository struct {
	client *firestore.Client
}

// NewApprovalMarkerRepository creates a new instance of approvalMarkerRepository
func NewApprovalMarkerRepository(client *firestore.Client) ApprovalMarkerRepository {
	return &approvalMarkerRepository{client: client}
}

func (r *approvalMarkerRepository) Create(ctx context.Context, m *markerdomain.ApprovalMarker) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	m.CreatedAt = time.Now()
	_, err := r.client.Collection(approvalsCollection).Doc(m.ID).Set(ctx, m)
	return err
}

func (r *approvalMarkerRepository) FindByID(ctx context.Context, id string) (*markerdomain.ApprovalMarker, error) {
	snap, err := r.client.Collection(approvalsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	var m markerdomain.ApprovalMarker
	if err := snap.DataTo(&m); err != nil {
		return nil, err
	}
	m.ID = snap.Ref.ID
	return &m, nil
}

func (r *approvalMarkerRepository) FindUnprocessed(ctx context.Context, limit int) ([]*markerdomain.ApprovalMarker, error) {
	iter := r.client.Collection(approvalsCollection).
		Where("processed", "==", false).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	var markers []*markerdomain.ApprovalMarker
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var m markerdomain.ApprovalMarker
		if err := snap.DataTo(&m); err != nil {
			return nil, err
		}
		m.ID = snap.Ref.ID
		markers = append(markers, &m)
	}
	return markers, nil
}

func (r *approvalMarkerRepository) Finalize(ctx context.Context, id string, res markerdomain.Result) error {
	updates := append(finalizeUpdates(res), firestore.Update{Path: "emailSent", Value: res.EmailSent})
	_, err := r.client.Collection(approvalsCollection).Doc(id).Update(ctx, updates)
	return err
}

// noticeMarkerRepository implements NoticeMarkerRepository on Firestore
type noticeMarkerRepository struct {
	client *firestore.Client
}

// NewNoticeMarkerRepository creates a new instance of noticeMarkerRepository
func NewNoticeMarkerRepository(client *firestore.Client) NoticeMarkerRepository {
	return &noticeMarkerRepository{client: client}
}

func (r *noticeMarkerRepository) Create(ctx context.Context, m *markerdomain.NoticeMarker) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	m.CreatedAt = time.Now()
	_, err := r.client.Collection(noticesCollection).Doc(m.ID).Set(ctx, m)
	return err
}

func (r *noticeMarkerRepository) FindByID(ctx context.Context, id string) (*markerdomain.NoticeMarker, error) {
	snap, err := r.client.Collection(noticesCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	var m markerdomain.NoticeMarker
	if err := snap.DataTo(&m); err != nil {
		return nil, err
	}
	m.ID = snap.Ref.ID
	return &m, nil
}

func (r *noticeMarkerRepository) FindUnprocessed(ctx context.Context, limit int) ([]*markerdomain.NoticeMarker, error) {
	iter := r.client.Collection(noticesCollection).
		Where("processed", "==", false).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	var markers []*markerdomain.NoticeMarker
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var m markerdomain.NoticeMarker
		if err := snap.DataTo(&m); err != nil {
			return nil, err
		}
		m.ID = snap.Ref.ID
		markers = append(markers, &m)
	}
	return markers, nil
}

func (r *noticeMarkerRepository) Finalize(ctx context.Context, id string, res markerdomain.Result) error {
	_, err := r.client.Collection(noticesCollection).Doc(id).Update(ctx, finalizeUpdates(res))
	return err
}

// finalizeUpdates builds the one-shot status writeback for a marker.
func finalizeUpdates(res markerdomain.Result) []firestore.Update {
	updates := []firestore.Update{
		{Path: "processed", Value: true},
		{Path: "processedAt", Value: time.Now()},
	}
	if res.MessageID != "" {
		updates = append(updates, firestore.Update{Path: "messageId", Value: res.MessageID})
	}
	if res.Error != "" {
		updates = append(updates, firestore.Update{Path: "error", Value: res.Error})
	}
	return updates
}
