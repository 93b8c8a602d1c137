package domain

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("marker not found")

// Approval status values carried on approval markers.
const (
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ApprovalMarker is a transient work item: "a company approval/rejection
// notice needs to be sent". It is written once by the console and finalized
// exactly once by the dispatcher.
type ApprovalMarker struct {
	ID             string     `json:"id" firestore:"-"`
	CompanyID      string     `json:"companyId" firestore:"companyId"`
	ApprovalStatus string     `json:"approvalStatus" firestore:"approvalStatus"`
	Reason         string     `json:"reason,omitempty" firestore:"reason,omitempty"`
	Processed      bool       `json:"processed" firestore:"processed"`
	EmailSent      bool       `json:"emailSent" firestore:"emailSent"`
	MessageID      string     `json:"messageId,omitempty" firestore:"messageId,omitempty"`
	Error          string     `json:"error,omitempty" firestore:"error,omitempty"`
	CreatedAt      time.Time  `json:"createdAt" firestore:"createdAt"`
	ProcessedAt    *time.Time `json:"processedAt,omitempty" firestore:"processedAt,omitempty"`
}

// NoticeMarker is a transient work item for a bulk notification: one topic
// broadcast to every subscribed device.
type NoticeMarker struct {
	ID          string     `json:"id" firestore:"-"`
	Title       string     `json:"title" firestore:"title"`
	Body        string     `json:"body" firestore:"body"`
	Topic       string     `json:"topic" firestore:"topic"`
	Processed   bool       `json:"processed" firestore:"processed"`
	MessageID   string     `json:"messageId,omitempty" firestore:"messageId,omitempty"`
	Error       string     `json:"error,omitempty" firestore:"error,omitempty"`
	CreatedAt   time.Time  `json:"createdAt" firestore:"createdAt"`
	ProcessedAt *time.Time `json:"processedAt,omitempty" firestore:"processedAt,omitempty"`
}

// Result is the dispatch outcome written back onto a marker. Exactly one of
// MessageID or Error is set.
type Result struct {
	EmailSent bool
	MessageID string
	Error     string
}
