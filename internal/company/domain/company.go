package domain

import (
	"errors"
	"time"

	"yakalahadi-backend/pkg/geo"
)

var ErrNotFound = errors.New("company not found")

// Company is a company document. The two credit counters are independent:
// Credits is the spendable balance, TotalPurchasedCredits is the lifetime
// accounting total and only moves on a purchase or an explicit admin
// correction.
type Company struct {
	ID                    string     `json:"id" firestore:"-"`
	Name                  string     `json:"name" firestore:"name"`
	Email                 string     `json:"email" firestore:"email"`
	Category              string     `json:"category" firestore:"category"`
	OfficerName           string     `json:"officerName" firestore:"officerName"`
	Phone                 string     `json:"phone" firestore:"phone"`
	Location              *geo.Point `json:"location,omitempty" firestore:"location,omitempty"`
	Approved              bool       `json:"approved" firestore:"approved"`
	Credits               int        `json:"credits" firestore:"credits"`
	TotalPurchasedCredits int        `json:"totalPurchasedCredits" firestore:"totalPurchasedCredits"`
	CreditPurchaseDate    *time.Time `json:"creditPurchaseDate,omitempty" firestore:"creditPurchaseDate,omitempty"`
	CreatedAt             time.Time  `json:"createdAt" firestore:"createdAt"`
}
