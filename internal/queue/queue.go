package queue

import (
	"context"
	"encoding/json"
	"fmt"
)

// Kind identifies the work a task carries.
type Kind string

const (
	KindCompanyApproval Kind = "company_approval"
	KindBulkNotice      Kind = "bulk_notice"
	KindCampaignCreated Kind = "campaign_created"
	KindDiscountCreated Kind = "discount_created"
)

// Task is one unit of asynchronous work. Ref points at the document the
// handler must resolve (marker, campaign or discount ID). Delivery is
// at-least-once with no ordering guarantee; handlers must tolerate replays.
type Task struct {
	ID   string `json:"id"`
	Kind Kind   `json:"kind"`
	Ref  string `json:"ref"`
}

// Handler processes one task. A returned error is logged by the consumer;
// the task is not redelivered by the queue itself (the document watcher
// re-enqueues anything still unprocessed).
type Handler func(ctx context.Context, task Task) error

// Publisher enqueues tasks for the dispatch consumer.
type Publisher interface {
	Enqueue(ctx context.Context, task Task) error
}

// Registry maps task kinds to handlers.
type Registry struct {
	handlers map[Kind]Handler
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[Kind]Handler)}
}

// Register binds a handler to a kind. Last registration wins.
func (r *Registry) Register(kind Kind, h Handler) {
	r.handlers[kind] = h
}

// Dispatch decodes a task payload and runs the matching handler.
func (r *Registry) Dispatch(ctx context.Context, payload []byte) error {
	var task Task
	if err := json.Unmarshal(payload, &task); err != nil {
		return fmt.Errorf("failed to unmarshal task: %w", err)
	}

	h, ok := r.handlers[task.Kind]
	if !ok {
		return fmt.Errorf("no handler registered for task kind %q", task.Kind)
	}
	return h(ctx, task)
}
