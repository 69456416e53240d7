package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/piresc/tuitionpay/internal/pkg/lock"
	"github.com/piresc/tuitionpay/internal/pkg/models"
	"github.com/piresc/tuitionpay/services/payment"
	"github.com/piresc/tuitionpay/services/payment/mocks"
)

var (
	tuitionDue   = decimal.NewFromInt(1500000)
	payerBalance = decimal.NewFromInt(2000000)
)

func testConfig() *models.Config {
	return &models.Config{
		Lock: models.LockConfig{
			TTL:          30 * time.Second,
			MaxWait:      50 * time.Millisecond,
			PollInterval: 5 * time.Millisecond,
		},
		OTP: models.OTPConfig{TTL: 2 * time.Minute},
		Saga: models.SagaConfig{
			StepRetryBaseDelay: time.Millisecond,
			AmountTolerance:    decimal.NewFromFloat(0.01),
		},
		Cleanup: models.CleanupConfig{StaleAfter: 5 * time.Minute},
	}
}

type fixture struct {
	uc    *PaymentUC
	repo  *mocks.MockPaymentRepo
	gw    *mocks.MockPaymentGW
	locks *lock.Manager
	mr    *miniredis.Miniredis
	now   time.Time
}

func newFixture(t *testing.T, opts ...func(cfg *models.Config)) *fixture {
	ctrl := gomock.NewController(t)
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := testConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	repo := mocks.NewMockPaymentRepo(ctrl)
	gw := mocks.NewMockPaymentGW(ctrl)
	locks := lock.NewManager(client, cfg.Lock)

	f := &fixture{
		uc:    NewPaymentUC(cfg, repo, gw, locks),
		repo:  repo,
		gw:    gw,
		locks: locks,
		mr:    mr,
		now:   time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
	}
	f.uc.now = func() time.Time { return f.now }
	return f
}

func startRequest() *models.CreatePaymentRequest {
	return &models.CreatePaymentRequest{
		PayerID:   "U1",
		StudentID: "S1",
		Amount:    "1500000",
		Email:     "payer@example.com",
	}
}

func pendingPayment() *models.Payment {
	return &models.Payment{
		ID:            uuid.New(),
		PayerID:       "U1",
		StudentID:     "S1",
		TuitionAmount: tuitionDue,
		PayerBalance:  payerBalance,
		Status:        models.PaymentStatusPending,
	}
}

// pausedSaga returns the saga of p as it is after StartPayment returned
func pausedSaga(p *models.Payment, at time.Time) *models.Saga {
	saga := &models.Saga{
		ID:             models.NewSagaID(p.ID, at),
		PaymentID:      p.ID,
		PayerID:        p.PayerID,
		StudentID:      p.StudentID,
		Amount:         p.TuitionAmount,
		UserEmail:      "payer@example.com",
		Status:         models.SagaStatusPending,
		Steps:          newPlan(),
		CompletedSteps: models.SagaSteps{},
	}
	for i := 0; i < 3; i++ {
		saga.CompleteStep(i, at)
	}
	return saga
}

// expectValidation wires the collaborator lookups of the create_payment step
func (f *fixture) expectValidation(balance, tuition decimal.Decimal) {
	f.repo.EXPECT().GetPendingPaymentByStudent(gomock.Any(), "S1").
		Return(nil, payment.ErrPaymentNotFound)
	f.gw.EXPECT().GetUser(gomock.Any(), "U1").
		Return(&models.UserAccount{ID: "U1", Email: "account@example.com", Balance: balance}, nil)
	f.gw.EXPECT().LookupStudent(gomock.Any(), "S1").
		Return(&models.StudentTuition{StudentID: "S1", Name: "Student One", TuitionAmount: tuition}, nil)
}

func (f *fixture) allowSagaWrites() {
	f.repo.EXPECT().UpdateSaga(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func (f *fixture) captureSaga() **models.Saga {
	var saga *models.Saga
	f.repo.EXPECT().CreateSaga(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s *models.Saga) error {
			saga = s
			return nil
		})
	return &saga
}
