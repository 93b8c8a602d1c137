package domain

import (
	"errors"
	"time"

	"yakalahadi-backend/pkg/geo"
)

var ErrNotFound = errors.New("user not found")

// User is a mobile-app user document. Created by the mobile app; the console
// only reads and moderates these.
type User struct {
	ID                 string     `json:"id" firestore:"-"`
	Name               string     `json:"name" firestore:"name"`
	Email              string     `json:"email" firestore:"email"`
	FCMToken           string     `json:"fcmToken" firestore:"fcmToken"`
	Location           *geo.Point `json:"location,omitempty" firestore:"location,omitempty"`
	SelectedCategories []string   `json:"selectedCategories" firestore:"selectedCategories"`
	ReceiveAll         bool       `json:"receiveAll" firestore:"receiveAll"`
	Disabled           bool       `json:"disabled" firestore:"disabled"`
	CreatedAt          time.Time  `json:"createdAt" firestore:"createdAt"`
}

// Notifiable reports whether the user can be targeted by a push at all:
// a device token and a recorded location are both required.
func (u *User) Notifiable() bool {
	return u.FCMToken != "" && u.Location != nil
}

// SubscribedTo reports whether the user wants notifications for the category,
// either through the broadcast opt-in or an explicit subscription.
func (u *User) SubscribedTo(category string) bool {
	if u.ReceiveAll {
		return true
	}
	for _, c := range u.SelectedCategories {
		if c == category {
			return true
		}
	}
	return false
}
