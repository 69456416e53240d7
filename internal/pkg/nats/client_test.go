package nats

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	natsserver "github.com/nats-io/nats-server/v2/test"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/piresc/tuitionpay/internal/pkg/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runJetStreamServer(t *testing.T) *server.Server {
	t.Helper()
	opts := natsserver.DefaultTestOptions
	opts.Port = -1
	opts.JetStream = true
	opts.StoreDir = t.TempDir()
	s := natsserver.RunServer(&opts)
	t.Cleanup(s.Shutdown)
	return s
}

func TestNewClient(t *testing.T) {
	t.Run("Invalid address", func(t *testing.T) {
		client, err := NewClient("nats://127.0.0.1:1")
		assert.Error(t, err)
		assert.Nil(t, client)
		assert.Contains(t, err.Error(), "failed to connect to NATS server")
	})

	t.Run("Connected", func(t *testing.T) {
		s := runJetStreamServer(t)

		client, err := NewClient(s.ClientURL())
		require.NoError(t, err)
		defer client.Close()

		assert.True(t, client.IsConnected())
		assert.NotNil(t, client.js)
		assert.NotNil(t, client.GetConn())
	})
}

func TestClient_EnsureStreams(t *testing.T) {
	s := runJetStreamServer(t)
	client, err := NewClient(s.ClientURL())
	require.NoError(t, err)
	defer client.Close()

	ctx := context.Background()
	require.NoError(t, client.EnsureStreams(ctx, DefaultStreamConfigs()))
	// idempotent on restart
	require.NoError(t, client.EnsureStreams(ctx, DefaultStreamConfigs()))

	names, err := client.ListStreams(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{constants.StreamPaymentEvents, constants.StreamOTPEvents}, names)

	stream, err := client.js.Stream(ctx, constants.StreamOTPEvents)
	require.NoError(t, err)
	assert.NotContains(t, stream.CachedInfo().Config.Subjects, constants.SubjectOTPVerify)
}

func TestClient_PublishEventAndConsume(t *testing.T) {
	s := runJetStreamServer(t)
	client, err := NewClient(s.ClientURL())
	require.NoError(t, err)
	defer client.Close()

	ctx := context.Background()
	require.NoError(t, client.EnsureStreams(ctx, DefaultStreamConfigs()))

	var (
		mu       sync.Mutex
		received []map[string]string
	)
	done := make(chan struct{}, 1)
	cfg := DefaultConsumerConfigs()[constants.ConsumerPaymentCancelled]
	consumer, err := NewJetStreamConsumer(ctx, client, cfg, func(msg jetstream.Msg) error {
		var body map[string]string
		if err := json.Unmarshal(msg.Data(), &body); err != nil {
			return err
		}
		mu.Lock()
		received = append(received, body)
		mu.Unlock()
		done <- struct{}{}
		return nil
	})
	require.NoError(t, err)
	defer consumer.Stop()

	// filtered out by the consumer
	require.NoError(t, client.PublishEvent(ctx, constants.SubjectPaymentCreated, map[string]string{"type": "PaymentCreated"}))
	require.NoError(t, client.PublishEvent(ctx, constants.SubjectPaymentCancelled, map[string]string{"type": "PaymentCancelled"}))

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("message was not consumed")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, received, 1)
	assert.Equal(t, "PaymentCancelled", received[0]["type"])

	info, err := consumer.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, constants.ConsumerPaymentCancelled, info.Name)
}

func TestClient_PublishEvent_NoStream(t *testing.T) {
	s := runJetStreamServer(t)
	client, err := NewClient(s.ClientURL())
	require.NoError(t, err)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err = client.PublishEvent(ctx, constants.SubjectPaymentCompleted, map[string]string{"a": "b"})
	assert.Error(t, err)
}
