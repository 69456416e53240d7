package usecase

import (
	"context"
	"time"

	"github.com/piresc/tuitionpay/internal/pkg/models"
	"github.com/piresc/tuitionpay/services/payment"
	"github.com/shopspring/decimal"
)

const (
	defaultStepRetryBaseDelay = 200 * time.Millisecond
	defaultStaleAfter         = 5 * time.Minute
	defaultOTPTTL             = 2 * time.Minute
	defaultSagaListLimit      = 100
	maxSagaListLimit          = 1000
	// settleTimeout bounds work that must finish once money or state has moved
	settleTimeout = 30 * time.Second
)

var defaultAmountTolerance = decimal.NewFromFloat(0.01)

// PaymentUC orchestrates the tuition payment saga
type PaymentUC struct {
	cfg         *models.Config
	paymentRepo payment.PaymentRepo
	paymentGW   payment.PaymentGW
	locker      payment.Locker
	now         func() time.Time
}

// NewPaymentUC creates a new payment use case
func NewPaymentUC(
	cfg *models.Config,
	paymentRepo payment.PaymentRepo,
	paymentGW payment.PaymentGW,
	locker payment.Locker,
) *PaymentUC {
	return &PaymentUC{
		cfg:         cfg,
		paymentRepo: paymentRepo,
		paymentGW:   paymentGW,
		locker:      locker,
		now:         time.Now,
	}
}

func (u *PaymentUC) stepRetryBaseDelay() time.Duration {
	if u.cfg.Saga.StepRetryBaseDelay > 0 {
		return u.cfg.Saga.StepRetryBaseDelay
	}
	return defaultStepRetryBaseDelay
}

func (u *PaymentUC) amountTolerance() decimal.Decimal {
	if u.cfg.Saga.AmountTolerance.IsPositive() {
		return u.cfg.Saga.AmountTolerance
	}
	return defaultAmountTolerance
}

func (u *PaymentUC) staleAfter() time.Duration {
	if u.cfg.Cleanup.StaleAfter > 0 {
		return u.cfg.Cleanup.StaleAfter
	}
	return defaultStaleAfter
}

func (u *PaymentUC) otpExpiresIn() int {
	if u.cfg.OTP.TTL > 0 {
		return int(u.cfg.OTP.TTL.Seconds())
	}
	return int(defaultOTPTTL.Seconds())
}

// detach keeps values of ctx but not its cancellation, so a disconnected caller
// cannot interrupt a saga halfway through
func detach(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), settleTimeout)
}
