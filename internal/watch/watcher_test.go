package watch

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	campaigndomain "yakalahadi-backend/internal/campaign/domain"
	markerdomain "yakalahadi-backend/internal/marker/domain"
	"yakalahadi-backend/internal/queue"
)

type fakeApprovalRepo struct {
	unprocessed []*markerdomain.ApprovalMarker
}

func (f *fakeApprovalRepo) Create(ctx context.Context, m *markerdomain.ApprovalMarker) error {
	return nil
}

func (f *fakeApprovalRepo) FindByID(ctx context.Context, id string) (*markerdomain.ApprovalMarker, error) {
	return nil, nil
}

func (f *fakeApprovalRepo) FindUnprocessed(ctx context.Context, limit int) ([]*markerdomain.ApprovalMarker, error) {
	return f.unprocessed, nil
}

func (f *fakeApprovalRepo) Finalize(ctx context.Context, id string, res markerdomain.Result) error {
	return nil
}

type fakeNoticeRepo struct {
	unprocessed []*markerdomain.NoticeMarker
}

func (f *fakeNoticeRepo) Create(ctx context.Context, m *markerdomain.NoticeMarker) error {
	return nil
}

func (f *fakeNoticeRepo) FindByID(ctx context.Context, id string) (*markerdomain.NoticeMarker, error) {
	return nil, nil
}

func (f *fakeNoticeRepo) FindUnprocessed(ctx context.Context, limit int) ([]*markerdomain.NoticeMarker, error) {
	return f.unprocessed, nil
}

func (f *fakeNoticeRepo) Finalize(ctx context.Context, id string, res markerdomain.Result) error {
	return nil
}

type fakeCampaignRepo struct {
	unnotified []*campaigndomain.Campaign
}

func (f *fakeCampaignRepo) FindByID(ctx context.Context, id string) (*campaigndomain.Campaign, error) {
	return nil, nil
}

func (f *fakeCampaignRepo) FindAll(ctx context.Context) ([]*campaigndomain.Campaign, error) {
	return nil, nil
}

func (f *fakeCampaignRepo) FindUnnotified(ctx context.Context, limit int) ([]*campaigndomain.Campaign, error) {
	return f.unnotified, nil
}

func (f *fakeCampaignRepo) SetActive(ctx context.Context, id string, active bool) error {
	return nil
}

func (f *fakeCampaignRepo) MarkNotified(ctx context.Context, id string, sent, failed int) error {
	return nil
}

func (f *fakeCampaignRepo) Delete(ctx context.Context, id string) error { return nil }

type fakeDiscountRepo struct {
	unnotified []*campaigndomain.Discount
}

func (f *fakeDiscountRepo) FindByID(ctx context.Context, id string) (*campaigndomain.Discount, error) {
	return nil, nil
}

func (f *fakeDiscountRepo) FindAll(ctx context.Context) ([]*campaigndomain.Discount, error) {
	return nil, nil
}

func (f *fakeDiscountRepo) FindUnnotified(ctx context.Context, limit int) ([]*campaigndomain.Discount, error) {
	return f.unnotified, nil
}

func (f *fakeDiscountRepo) SetActive(ctx context.Context, id string, active bool) error {
	return nil
}

func (f *fakeDiscountRepo) MarkNotified(ctx context.Context, id string, sent, failed int) error {
	return nil
}

func (f *fakeDiscountRepo) Delete(ctx context.Context, id string) error { return nil }

type fakePublisher struct {
	tasks []queue.Task
	err   error
}

func (f *fakePublisher) Enqueue(ctx context.Context, task queue.Task) error {
	if f.err != nil {
		return f.err
	}
	f.tasks = append(f.tasks, task)
	return nil
}

func TestSweepEnqueuesPendingDocuments(t *testing.T) {
	pub := &fakePublisher{}
	w := NewWatcher(
		&fakeApprovalRepo{unprocessed: []*markerdomain.ApprovalMarker{{ID: "a1"}}},
		&fakeNoticeRepo{unprocessed: []*markerdomain.NoticeMarker{{ID: "n1"}}},
		&fakeCampaignRepo{unnotified: []*campaigndomain.Campaign{{ID: "c1"}, {ID: "c2"}}},
		&fakeDiscountRepo{unnotified: []*campaigndomain.Discount{{ID: "d1"}}},
		pub,
		time.Minute,
		zap.NewNop(),
	)

	w.sweep(context.Background())

	require.Len(t, pub.tasks, 5)
	assert.Equal(t, queue.Task{Kind: queue.KindCompanyApproval, Ref: "a1"}, pub.tasks[0])
	assert.Equal(t, queue.Task{Kind: queue.KindBulkNotice, Ref: "n1"}, pub.tasks[1])
	assert.Equal(t, queue.Task{Kind: queue.KindCampaignCreated, Ref: "c1"}, pub.tasks[2])
	assert.Equal(t, queue.Task{Kind: queue.KindCampaignCreated, Ref: "c2"}, pub.tasks[3])
	assert.Equal(t, queue.Task{Kind: queue.KindDiscountCreated, Ref: "d1"}, pub.tasks[4])
}

func TestSweepNothingPending(t *testing.T) {
	pub := &fakePublisher{}
	w := NewWatcher(
		&fakeApprovalRepo{}, &fakeNoticeRepo{}, &fakeCampaignRepo{}, &fakeDiscountRepo{},
		pub, time.Minute, zap.NewNop(),
	)

	w.sweep(context.Background())
	assert.Empty(t, pub.tasks)
}

func TestSweepSurvivesEnqueueFailure(t *testing.T) {
	pub := &fakePublisher{err: assert.AnError}
	w := NewWatcher(
		&fakeApprovalRepo{unprocessed: []*markerdomain.ApprovalMarker{{ID: "a1"}}},
		&fakeNoticeRepo{}, &fakeCampaignRepo{}, &fakeDiscountRepo{},
		pub, time.Minute, zap.NewNop(),
	)

	// A publish failure is logged and the sweep keeps going; the marker
	// stays unprocessed and the next tick retries it.
	w.sweep(context.Background())
	assert.Empty(t, pub.tasks)
}
