package domain

import "errors"

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrUserNotFound = errors.New("auth user not found")
)

// AdminClaim is the custom-claims key marking console administrators.
const AdminClaim = "admin"

// AdminUser is an auth-provider user record as shown in the console's
// admin management screen.
type AdminUser struct {
	UID      string `json:"uid"`
	Email    string `json:"email"`
	Disabled bool   `json:"disabled"`
	Admin    bool   `json:"admin"`
}
