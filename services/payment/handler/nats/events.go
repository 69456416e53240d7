package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/tuitionpay/internal/pkg/constants"
	"github.com/piresc/tuitionpay/internal/pkg/logger"
	"github.com/piresc/tuitionpay/internal/pkg/models"
	natspkg "github.com/piresc/tuitionpay/internal/pkg/nats"
	nrpkg "github.com/piresc/tuitionpay/internal/pkg/newrelic"
	"github.com/piresc/tuitionpay/services/payment"
)

// PaymentHandler consumes the events other services publish about payments
type PaymentHandler struct {
	paymentUC  payment.PaymentUC
	natsClient *natspkg.Client
	nrApp      *newrelic.Application
	consumers  []*natspkg.Consumer
}

// NewPaymentHandler creates a new payment NATS handler
func NewPaymentHandler(
	paymentUC payment.PaymentUC,
	client *natspkg.Client,
	nrApp *newrelic.Application,
) *PaymentHandler {
	return &PaymentHandler{
		paymentUC:  paymentUC,
		natsClient: client,
		nrApp:      nrApp,
		consumers:  make([]*natspkg.Consumer, 0),
	}
}

// InitNATSConsumers starts the durable consumers of the payment service
func (h *PaymentHandler) InitNATSConsumers(ctx context.Context) error {
	logger.Info("Initializing JetStream consumers for payment service")

	cfg := natspkg.DefaultConsumerConfigs()[constants.ConsumerPaymentCancelled]
	consumer, err := natspkg.NewJetStreamConsumer(ctx, h.natsClient, cfg, h.handlePaymentCancelledJS)
	if err != nil {
		return fmt.Errorf("failed to start consumer %s: %w", cfg.ConsumerName, err)
	}
	h.consumers = append(h.consumers, consumer)

	logger.Info("Consumer started",
		logger.String("stream", cfg.StreamName),
		logger.String("consumer", cfg.ConsumerName),
		logger.String("filter_subject", cfg.FilterSubject))
	return nil
}

// Stop stops every consumer
func (h *PaymentHandler) Stop() {
	for _, c := range h.consumers {
		c.Stop()
	}
	h.consumers = nil
}

// handlePaymentCancelledJS applies cancellations decided elsewhere, such as
// OTP exhaustion. Our own cancellation events arrive here too and are no-ops.
func (h *PaymentHandler) handlePaymentCancelledJS(msg jetstream.Msg) error {
	txn, ctx := nrpkg.StartMessageTransaction(h.nrApp, "NATS.Payment.HandlePaymentCancelled", msg.Subject(), len(msg.Data()))
	defer txn.End()

	var env models.Event
	if err := json.Unmarshal(msg.Data(), &env); err != nil {
		// a malformed message never becomes valid, drop it
		logger.ErrorCtx(ctx, "Dropping malformed payment event",
			logger.String("subject", msg.Subject()),
			logger.Err(err))
		return nil
	}
	if env.Type != models.EventPaymentCancelled {
		logger.WarnCtx(ctx, "Skipping event with unexpected type",
			logger.String("subject", msg.Subject()),
			logger.String("type", env.Type))
		return nil
	}

	var event models.PaymentCancelledEvent
	if err := json.Unmarshal(env.Data, &event); err != nil {
		logger.ErrorCtx(ctx, "Dropping malformed payment cancelled event",
			logger.String("subject", msg.Subject()),
			logger.Err(err))
		return nil
	}

	nrpkg.AddTransactionAttribute(txn, "payment.id", event.PaymentID)
	if err := h.paymentUC.HandlePaymentCancelled(ctx, &event); err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		logger.ErrorCtx(ctx, "Failed to apply payment cancellation",
			logger.PaymentID(event.PaymentID),
			logger.String("reason", event.Reason),
			logger.Err(err))
		return err
	}
	return nil
}
