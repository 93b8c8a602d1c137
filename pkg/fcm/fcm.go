package fcm

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// Sender is the push surface the dispatchers depend on. Satisfied by *Client
// and by fakes in tests.
type Sender interface {
	SendToToken(ctx context.Context, token string, n Notification) (string, error)
	SendToTopic(ctx context.Context, topic string, n Notification) (string, error)
}

// Client wraps Firebase Cloud Messaging functionality.
type Client struct {
	messagingClient *messaging.Client
	logger          *zap.Logger
}

// NewClient creates an FCM client on top of the shared messaging client.
func NewClient(messagingClient *messaging.Client, logger *zap.Logger) *Client {
	return &Client{
		messagingClient: messagingClient,
		logger:          logger,
	}
}

// Notification contains the data to send in a push notification.
type Notification struct {
	Title    string
	Body     string
	ImageURL string            // Optional notification image
	Data     map[string]string // Custom data payload
}

// SendToToken sends a push notification to a specific device token and
// returns the provider message ID.
func (c *Client) SendToToken(ctx context.Context, token string, n Notification) (string, error) {
	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title:    n.Title,
			Body:     n.Body,
			ImageURL: n.ImageURL,
		},
		Data: n.Data,
	}

	id, err := c.messagingClient.Send(ctx, message)
	if err != nil {
		return "", fmt.Errorf("failed to send FCM message: %w", err)
	}

	c.logger.Debug("fcm message sent", zap.String("messageId", id))
	return id, nil
}

// SendToTopic sends one push notification to a named topic.
func (c *Client) SendToTopic(ctx context.Context, topic string, n Notification) (string, error) {
	message := &messaging.Message{
		Topic: topic,
		Notification: &messaging.Notification{
			Title:    n.Title,
			Body:     n.Body,
			ImageURL: n.ImageURL,
		},
		Data: n.Data,
	}

	id, err := c.messagingClient.Send(ctx, message)
	if err != nil {
		return "", fmt.Errorf("failed to send FCM topic message: %w", err)
	}

	c.logger.Debug("fcm topic message sent", zap.String("topic", topic), zap.String("messageId", id))
	return id, nil
}
