package dto

import "time"

type LoginRequest struct {
	IDToken string `json:"idToken" binding:"required"`
	OTP     string `json:"otp" binding:"required,len=6"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type ClaimRequest struct {
	UID string `json:"uid" binding:"required"`
}

type SetDisabledRequest struct {
	Disabled *bool `json:"disabled" binding:"required"`
}
