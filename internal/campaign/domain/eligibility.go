package domain

import (
	userdomain "yakalahadi-backend/internal/user/domain"
	"yakalahadi-backend/pkg/geo"
)

// Eligible reports whether a user should receive the event's push: the user
// must be targetable (token + location), inside the radius (boundary
// inclusive) and either broadcast-opted-in or subscribed to the category.
func Eligible(e Event, u *userdomain.User) bool {
	if !u.Notifiable() {
		return false
	}
	if e.Origin == nil {
		return false
	}
	if geo.Distance(*e.Origin, *u.Location) > e.Radius {
		return false
	}
	return u.SubscribedTo(e.Category)
}

// EligibleUsers filters the full user set down to fan-out targets.
func EligibleUsers(e Event, users []*userdomain.User) []*userdomain.User {
	var eligible []*userdomain.User
	for _, u := range users {
		if Eligible(e, u) {
			eligible = append(eligible, u)
		}
	}
	return eligible
}
