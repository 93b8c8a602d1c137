package watch

import (
	"context"
	"time"

	"go.uber.org/zap"

	campaignrepo "yakalahadi-backend/internal/campaign/repository"
	markerrepo "yakalahadi-backend/internal/marker/repository"
	"yakalahadi-backend/internal/queue"
)

const batchLimit = 50

// Watcher is the producer side of the work queue for documents written by
// the out-of-scope mobile/company apps: it periodically scans for
// unprocessed markers and un-notified campaigns/discounts and enqueues the
// matching task. Anything the console enqueued directly but the consumer
// failed to finalize is also picked up again here, which is what makes the
// overall pipeline at-least-once.
type Watcher struct {
	approvalRepo markerrepo.ApprovalMarkerRepository
	noticeRepo   markerrepo.NoticeMarkerRepository
	campaignRepo campaignrepo.CampaignRepository
	discountRepo campaignrepo.DiscountRepository
	publisher    queue.Publisher
	logger       *zap.Logger
	interval     time.Duration
	stopChan     chan struct{}
}

func NewWatcher(
	approvalRepo markerrepo.ApprovalMarkerRepository,
	noticeRepo markerrepo.NoticeMarkerRepository,
	campaignRepo campaignrepo.CampaignRepository,
	discountRepo campaignrepo.DiscountRepository,
	publisher queue.Publisher,
	interval time.Duration,
	logger *zap.Logger,
) *Watcher {
	return &Watcher{
		approvalRepo: approvalRepo,
		noticeRepo:   noticeRepo,
		campaignRepo: campaignRepo,
		discountRepo: discountRepo,
		publisher:    publisher,
		logger:       logger,
		interval:     interval,
		stopChan:     make(chan struct{}),
	}
}

// Start begins the watch loop.
func (w *Watcher) Start(ctx context.Context) {
	w.logger.Info("document watcher starting", zap.Duration("interval", w.interval))

	go func() {
		// Run immediately on start
		w.sweep(ctx)

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				w.sweep(ctx)
			case <-ctx.Done():
				return
			case <-w.stopChan:
				w.logger.Info("document watcher stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the watcher.
func (w *Watcher) Stop() {
	close(w.stopChan)
}

func (w *Watcher) sweep(ctx context.Context) {
	approvals, err := w.approvalRepo.FindUnprocessed(ctx, batchLimit)
	if err != nil {
		w.logger.Error("failed to scan approval markers", zap.Error(err))
	}
	for _, m := range approvals {
		w.enqueue(ctx, queue.Task{Kind: queue.KindCompanyApproval, Ref: m.ID})
	}

	notices, err := w.noticeRepo.FindUnprocessed(ctx, batchLimit)
	if err != nil {
		w.logger.Error("failed to scan notice markers", zap.Error(err))
	}
	for _, m := range notices {
		w.enqueue(ctx, queue.Task{Kind: queue.KindBulkNotice, Ref: m.ID})
	}

	campaigns, err := w.campaignRepo.FindUnnotified(ctx, batchLimit)
	if err != nil {
		w.logger.Error("failed to scan campaigns", zap.Error(err))
	}
	for _, c := range campaigns {
		w.enqueue(ctx, queue.Task{Kind: queue.KindCampaignCreated, Ref: c.ID})
	}

	discounts, err := w.discountRepo.FindUnnotified(ctx, batchLimit)
	if err != nil {
		w.logger.Error("failed to scan discounts", zap.Error(err))
	}
	for _, d := range discounts {
		w.enqueue(ctx, queue.Task{Kind: queue.KindDiscountCreated, Ref: d.ID})
	}
}

func (w *Watcher) enqueue(ctx context.Context, task queue.Task) {
	if err := w.publisher.Enqueue(ctx, task); err != nil {
		w.logger.Error("failed to enqueue task",
			zap.String("kind", string(task.Kind)),
			zap.String("ref", task.Ref),
			zap.Error(err))
	}
}
