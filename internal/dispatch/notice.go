package dispatch

import (
	"context"
	"errors"

	markerdomain "yakalahadi-backend/internal/marker/domain"
	"yakalahadi-backend/pkg/fcm"
)

var (
	ErrCompanyNotFound = errors.New("company not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrNoToken         = errors.New("user has no notification token")
)

// SendApprovalNotice is the synchronous variant of the approval dispatch,
// exposed over HTTP for callers outside the marker pipeline. It resolves the
// company and its same-ID user record and sends exactly one push.
func (s *Service) SendApprovalNotice(ctx context.Context, companyID, approvalStatus, reason string) (string, error) {
	company, err := s.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		return "", err
	}
	if company == nil {
		return "", ErrCompanyNotFound
	}

	user, err := s.userRepo.FindByID(ctx, companyID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrUserNotFound
	}
	if user.FCMToken == "" {
		return "", ErrNoToken
	}

	title, body := approvedPushTitle, approvedPushBody
	if approvalStatus != markerdomain.StatusApproved {
		title, body = rejectedPushTitle, rejectedPushBody
		if reason != "" {
			body = body + " Gerekçe: " + reason
		}
	}

	return s.push.SendToToken(ctx, user.FCMToken, fcm.Notification{Title: title, Body: body})
}
