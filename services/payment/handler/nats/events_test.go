package nats

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go/jetstream"
	natsserver "github.com/nats-io/nats-server/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piresc/tuitionpay/internal/pkg/constants"
	"github.com/piresc/tuitionpay/internal/pkg/models"
	natspkg "github.com/piresc/tuitionpay/internal/pkg/nats"
	"github.com/piresc/tuitionpay/services/payment/mocks"
)

func runServer(t *testing.T) *server.Server {
	t.Helper()
	opts := natsserver.DefaultTestOptions
	opts.Port = -1
	opts.JetStream = true
	opts.StoreDir = t.TempDir()
	s := natsserver.RunServer(&opts)
	t.Cleanup(s.Shutdown)
	return s
}

func newHandler(t *testing.T) (*PaymentHandler, *mocks.MockPaymentUC, *natspkg.Client) {
	ctrl := gomock.NewController(t)
	s := runServer(t)

	client, err := natspkg.NewClient(s.ClientURL())
	require.NoError(t, err)
	t.Cleanup(client.Close)
	require.NoError(t, client.EnsureStreams(context.Background(), natspkg.DefaultStreamConfigs()))

	uc := mocks.NewMockPaymentUC(ctrl)
	h := NewPaymentHandler(uc, client, nil)
	require.NoError(t, h.InitNATSConsumers(context.Background()))
	t.Cleanup(h.Stop)
	return h, uc, client
}

func publish(t *testing.T, client *natspkg.Client, subject string, env models.Event) {
	t.Helper()
	require.NoError(t, client.PublishEvent(context.Background(), subject, env))
}

func TestHandlePaymentCancelled(t *testing.T) {
	_, uc, client := newHandler(t)

	received := make(chan *models.PaymentCancelledEvent, 1)
	uc.EXPECT().HandlePaymentCancelled(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *models.PaymentCancelledEvent) error {
			received <- e
			return nil
		})

	paymentID := uuid.New().String()
	env, err := models.NewEvent(models.EventPaymentCancelled, models.PaymentCancelledEvent{
		PaymentID: paymentID,
		Reason:    models.CancelReasonMaxOtpAttempts,
	})
	require.NoError(t, err)
	publish(t, client, constants.SubjectPaymentCancelled, env)

	select {
	case e := <-received:
		assert.Equal(t, paymentID, e.PaymentID)
		assert.Equal(t, models.CancelReasonMaxOtpAttempts, e.Reason)
	case <-time.After(5 * time.Second):
		t.Fatal("cancellation was not consumed")
	}
}

func TestHandlePaymentCancelled_RedeliveredOnFailure(t *testing.T) {
	_, uc, client := newHandler(t)

	attempts := make(chan struct{}, 4)
	gomock.InOrder(
		uc.EXPECT().HandlePaymentCancelled(gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, *models.PaymentCancelledEvent) error {
				attempts <- struct{}{}
				return errors.New("db down")
			}),
		uc.EXPECT().HandlePaymentCancelled(gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, *models.PaymentCancelledEvent) error {
				attempts <- struct{}{}
				return nil
			}),
	)

	env, err := models.NewEvent(models.EventPaymentCancelled, models.PaymentCancelledEvent{PaymentID: uuid.New().String()})
	require.NoError(t, err)
	publish(t, client, constants.SubjectPaymentCancelled, env)

	for i := 0; i < 2; i++ {
		select {
		case <-attempts:
		case <-time.After(10 * time.Second):
			t.Fatalf("delivery %d did not happen", i+1)
		}
	}
}

func TestHandlePaymentCancelled_SkipsForeignEvents(t *testing.T) {
	_, uc, client := newHandler(t)
	uc.EXPECT().HandlePaymentCancelled(gomock.Any(), gomock.Any()).Times(0)

	env, err := models.NewEvent(models.EventPaymentCompleted, models.PaymentCompletedEvent{PaymentID: uuid.New()})
	require.NoError(t, err)
	publish(t, client, constants.SubjectPaymentCancelled, env)

	// the consumer acks the foreign event and leaves nothing pending
	cfg := natspkg.DefaultConsumerConfigs()[constants.ConsumerPaymentCancelled]
	js, err := jetstream.New(client.GetConn())
	require.NoError(t, err)
	assert.Eventually(t, func() bool {
		consumer, err := js.Consumer(context.Background(), cfg.StreamName, cfg.ConsumerName)
		if err != nil {
			return false
		}
		info, err := consumer.Info(context.Background())
		return err == nil && info.Delivered.Consumer >= 1 && info.NumAckPending == 0
	}, 5*time.Second, 50*time.Millisecond)
}
