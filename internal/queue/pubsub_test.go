package queue

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/pubsub/pstest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

func newTestService(t *testing.T, registry *Registry) *Service {
	t.Helper()

	srv := pstest.NewServer()
	t.Cleanup(func() { srv.Close() })

	conn, err := grpc.NewClient(srv.Addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	client, err := pubsub.NewClient(context.Background(), "test-project", option.WithGRPCConn(conn))
	require.NoError(t, err)

	return &Service{
		client:    client,
		topic:     client.Topic("console-dispatch"),
		registry:  registry,
		logger:    zap.NewNop(),
		topicName: "console-dispatch",
		subName:   "console-dispatch-sub",
	}
}

func TestServiceEnqueueRoundTrip(t *testing.T) {
	reg := NewRegistry()
	handled := make(chan Task, 1)
	reg.Register(KindCompanyApproval, func(ctx context.Context, task Task) error {
		handled <- task
		return nil
	})

	svc := newTestService(t, reg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	_, err := svc.client.CreateTopic(ctx, svc.topicName)
	require.NoError(t, err)

	go svc.Start(ctx)

	// Messages published before the subscription exists are not delivered.
	require.Eventually(t, func() bool {
		ok, err := svc.client.Subscription(svc.subName).Exists(ctx)
		return err == nil && ok
	}, 5*time.Second, 10*time.Millisecond)

	err = svc.Enqueue(ctx, Task{Kind: KindCompanyApproval, Ref: "marker-7"})
	require.NoError(t, err)

	select {
	case task := <-handled:
		assert.Equal(t, KindCompanyApproval, task.Kind)
		assert.Equal(t, "marker-7", task.Ref)
		assert.NotEmpty(t, task.ID, "enqueue assigns an ID when missing")
	case <-time.After(5 * time.Second):
		t.Fatal("task was not delivered to the registered handler")
	}
}

func TestServiceReusesOnePublisherHandle(t *testing.T) {
	svc := newTestService(t, NewRegistry())

	ctx := context.Background()
	_, err := svc.client.CreateTopic(ctx, svc.topicName)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.Enqueue(ctx, Task{Kind: KindBulkNotice, Ref: "n"}))
	}

	// Close stops the shared publisher; once stopped, publishing through
	// the service must fail instead of silently spawning a fresh handle.
	require.NoError(t, svc.Close())
	err = svc.Enqueue(ctx, Task{Kind: KindBulkNotice, Ref: "n"})
	assert.Error(t, err)
}
