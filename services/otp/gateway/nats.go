package gateway

import (
	"context"
	"fmt"

	"github.com/piresc/tuitionpay/internal/pkg/constants"
	"github.com/piresc/tuitionpay/internal/pkg/logger"
	"github.com/piresc/tuitionpay/internal/pkg/models"
	natspkg "github.com/piresc/tuitionpay/internal/pkg/nats"
	nrpkg "github.com/piresc/tuitionpay/internal/pkg/newrelic"
)

// EventPublisher is the part of the NATS client the gateway needs
type EventPublisher interface {
	PublishEvent(ctx context.Context, subject string, v interface{}) error
}

// OTPGW publishes OTP events to JetStream
type OTPGW struct {
	natsClient EventPublisher
}

// NewOTPGW creates a new NATS gateway instance
func NewOTPGW(client *natspkg.Client) *OTPGW {
	return &OTPGW{
		natsClient: client,
	}
}

// PublishOtpGenerated hands a new code to the notification collaborator
func (g *OTPGW) PublishOtpGenerated(ctx context.Context, event *models.OtpGeneratedEvent) error {
	return g.publish(ctx, constants.SubjectOTPGenerated, models.EventOtpGenerated, event)
}

// PublishPaymentCancelled asks the orchestrator to cancel a payment whose code was exhausted
func (g *OTPGW) PublishPaymentCancelled(ctx context.Context, event *models.PaymentCancelledEvent) error {
	return g.publish(ctx, constants.SubjectPaymentCancelled, models.EventPaymentCancelled, event)
}

func (g *OTPGW) publish(ctx context.Context, subject, eventType string, data interface{}) error {
	env, err := models.NewEvent(eventType, data)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", eventType, err)
	}

	err = nrpkg.WithMessageSegment(ctx, subject, func() error {
		return g.natsClient.PublishEvent(ctx, subject, env)
	})
	if err != nil {
		return err
	}

	logger.DebugCtx(ctx, "Event published",
		logger.String("subject", subject),
		logger.String("type", eventType))
	return nil
}
