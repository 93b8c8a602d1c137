package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/pubsub"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// Service is the Pub/Sub-backed work queue: it publishes tasks onto a topic
// and runs the subscription receive loop that feeds the handler registry.
type Service struct {
	client    *pubsub.Client
	topic     *pubsub.Topic
	registry  *Registry
	logger    *zap.Logger
	topicName string
	subName   string
}

func NewService(ctx context.Context, projectID, topicName string, registry *Registry, logger *zap.Logger, credentialsFile string) (*Service, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := pubsub.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create pubsub client: %w", err)
	}

	return &Service{
		client:    client,
		topic:     client.Topic(topicName),
		registry:  registry,
		logger:    logger,
		topicName: topicName,
		subName:   topicName + "-sub", // Convention: topic-sub
	}, nil
}

// Enqueue publishes one task onto the queue topic.
func (s *Service) Enqueue(ctx context.Context, task Task) error {
	if task.ID == "" {
		task.ID = uuid.New().String()
	}

	data, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}

	// One shared publisher handle: each pubsub.Topic keeps its own
	// publish goroutines alive until Stop, so per-call handles leak.
	res := s.topic.Publish(ctx, &pubsub.Message{Data: data})
	if _, err := res.Get(ctx); err != nil {
		return fmt.Errorf("failed to publish task: %w", err)
	}

	s.logger.Info("task enqueued",
		zap.String("taskId", task.ID),
		zap.String("kind", string(task.Kind)),
		zap.String("ref", task.Ref))
	return nil
}

// Start ensures the subscription exists and blocks receiving messages until
// the context is cancelled. Handler errors are logged and the message is
// acked anyway: the document watcher re-enqueues whatever is still
// unprocessed, so the queue never retry-storms a failing send.
func (s *Service) Start(ctx context.Context) {
	sub := s.client.Subscription(s.subName)
	exists, err := sub.Exists(ctx)
	if err != nil {
		s.logger.Error("failed to check subscription existence", zap.Error(err))
		return
	}

	if !exists {
		topicExists, err := s.topic.Exists(ctx)
		if err != nil {
			s.logger.Error("failed to check topic existence", zap.Error(err))
			return
		}
		if !topicExists {
			if _, err := s.client.CreateTopic(ctx, s.topicName); err != nil {
				s.logger.Error("failed to create topic", zap.Error(err))
				return
			}
		}

		sub, err = s.client.CreateSubscription(ctx, s.subName, pubsub.SubscriptionConfig{
			Topic:       s.topic,
			AckDeadline: 10 * time.Second,
		})
		if err != nil {
			s.logger.Error("failed to create subscription", zap.Error(err))
			return
		}
		s.logger.Info("created subscription", zap.String("subscription", s.subName))
	}

	s.logger.Info("queue consumer listening", zap.String("subscription", s.subName))
	err = sub.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		if err := s.registry.Dispatch(ctx, msg.Data); err != nil {
			s.logger.Error("task dispatch failed", zap.Error(err))
		}
		msg.Ack()
	})
	if err != nil {
		s.logger.Error("queue receive loop stopped", zap.Error(err))
	}
}

// Close flushes the publisher and releases the Pub/Sub client.
func (s *Service) Close() error {
	s.topic.Stop()
	return s.client.Close()
}
