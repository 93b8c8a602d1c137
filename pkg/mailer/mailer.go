package mailer

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// Sender is the mail surface the dispatchers depend on.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) (string, error)
}

// Service sends transactional mail through the Gmail REST API using a
// long-lived refresh token for the configured sender account.
type Service struct {
	clientID     string
	clientSecret string
	refreshToken string
	fromName     string
	fromEmail    string
}

func NewService(clientID, clientSecret, refreshToken, fromName, fromEmail string) *Service {
	return &Service{
		clientID:     clientID,
		clientSecret: clientSecret,
		refreshToken: refreshToken,
		fromName:     fromName,
		fromEmail:    fromEmail,
	}
}

// Configured reports whether the sender credentials are present.
func (s *Service) Configured() bool {
	return s.clientID != "" && s.clientSecret != "" && s.refreshToken != "" && s.fromEmail != ""
}

func (s *Service) gmailService(ctx context.Context) (*gmail.Service, error) {
	cfg := &oauth2.Config{
		ClientID:     s.clientID,
		ClientSecret: s.clientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{gmail.GmailSendScope},
	}
	ts := cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: s.refreshToken})

	srv, err := gmail.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("unable to create Gmail service: %w", err)
	}
	return srv, nil
}

// Send delivers one HTML email and returns the Gmail message ID.
func (s *Service) Send(ctx context.Context, to, subject, htmlBody string) (string, error) {
	srv, err := s.gmailService(ctx)
	if err != nil {
		return "", err
	}

	var msg bytes.Buffer
	if s.fromName != "" {
		// Encode display name to handle non-ASCII characters (RFC 2047)
		encodedName := fmt.Sprintf("=?utf-8?B?%s?=", base64.StdEncoding.EncodeToString([]byte(s.fromName)))
		msg.WriteString(fmt.Sprintf("From: %s <%s>\r\n", encodedName, s.fromEmail))
	} else {
		msg.WriteString(fmt.Sprintf("From: %s\r\n", s.fromEmail))
	}
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	encodedSubject := fmt.Sprintf("=?utf-8?B?%s?=", base64.StdEncoding.EncodeToString([]byte(subject)))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", encodedSubject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	msg.WriteString(htmlBody)

	sent, err := srv.Users.Messages.Send("me", &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString(msg.Bytes()),
	}).Do()
	if err != nil {
		return "", fmt.Errorf("unable to send message: %w", err)
	}

	return sent.Id, nil
}
