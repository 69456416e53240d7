package gateway

import (
	"context"
	"fmt"

	"github.com/piresc/tuitionpay/internal/pkg/constants"
	"github.com/piresc/tuitionpay/internal/pkg/logger"
	"github.com/piresc/tuitionpay/internal/pkg/models"
	nrpkg "github.com/piresc/tuitionpay/internal/pkg/newrelic"
)

// PublishPaymentCreated announces a persisted pending payment
func (g *PaymentGW) PublishPaymentCreated(ctx context.Context, event *models.PaymentCreatedEvent) error {
	return g.publish(ctx, constants.SubjectPaymentCreated, models.EventPaymentCreated, event)
}

// PublishPaymentCompleted announces a successful funds transfer
func (g *PaymentGW) PublishPaymentCompleted(ctx context.Context, event *models.PaymentCompletedEvent) error {
	return g.publish(ctx, constants.SubjectPaymentCompleted, models.EventPaymentCompleted, event)
}

// PublishPaymentFailed announces a compensated saga
func (g *PaymentGW) PublishPaymentFailed(ctx context.Context, event *models.PaymentFailedEvent) error {
	return g.publish(ctx, constants.SubjectPaymentFailed, models.EventPaymentFailed, event)
}

// PublishPaymentCancelled announces a cancelled payment
func (g *PaymentGW) PublishPaymentCancelled(ctx context.Context, event *models.PaymentCancelledEvent) error {
	return g.publish(ctx, constants.SubjectPaymentCancelled, models.EventPaymentCancelled, event)
}

// PublishOtpResendRequested asks the OTP service to replace a code
func (g *PaymentGW) PublishOtpResendRequested(ctx context.Context, event *models.OtpResendRequestedEvent) error {
	return g.publish(ctx, constants.SubjectOTPResendRequested, models.EventOtpResendRequested, event)
}

func (g *PaymentGW) publish(ctx context.Context, subject, eventType string, data interface{}) error {
	env, err := models.NewEvent(eventType, data)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", eventType, err)
	}

	err = nrpkg.WithMessageSegment(ctx, subject, func() error {
		return g.natsClient.PublishEvent(ctx, subject, env)
	})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", eventType, err)
	}

	logger.DebugCtx(ctx, "Event published",
		logger.String("subject", subject),
		logger.String("type", eventType))
	return nil
}
