package domain

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("review not found")

// Review is a user review of a company. Created by the mobile app; the
// console moderates them.
type Review struct {
	ID        string    `json:"id" firestore:"-"`
	CompanyID string    `json:"companyId" firestore:"companyId"`
	UserID    string    `json:"userId" firestore:"userId"`
	Rating    int       `json:"rating" firestore:"rating"`
	Text      string    `json:"text" firestore:"text"`
	Approved  bool      `json:"approved" firestore:"approved"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
}
