package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piresc/tuitionpay/internal/pkg/models"
	"github.com/piresc/tuitionpay/services/payment"
)

func TestResendOtp(t *testing.T) {
	ctx := context.Background()

	t.Run("Falls back to the saga email", func(t *testing.T) {
		f := newFixture(t)
		p, _ := f.paused()
		f.gw.EXPECT().PublishOtpResendRequested(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, e *models.OtpResendRequestedEvent) error {
				assert.Equal(t, p.ID.String(), e.TransactionID)
				assert.Equal(t, "payer@example.com", e.Email)
				assert.Equal(t, "S1", e.StudentID)
				return nil
			})

		res, err := f.uc.ResendOtp(ctx, p.ID, "U1", "")

		require.NoError(t, err)
		assert.Equal(t, p.ID, res.PaymentID)
		assert.Equal(t, 120, res.ExpiresIn)
	})

	t.Run("Explicit email wins", func(t *testing.T) {
		f := newFixture(t)
		p, _ := f.paused()
		f.gw.EXPECT().PublishOtpResendRequested(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, e *models.OtpResendRequestedEvent) error {
				assert.Equal(t, "other@example.com", e.Email)
				return nil
			})

		_, err := f.uc.ResendOtp(ctx, p.ID, "U1", "other@example.com")
		require.NoError(t, err)
	})

	t.Run("Not pending", func(t *testing.T) {
		f := newFixture(t)
		p, _ := f.paused()
		p.Status = models.PaymentStatusCancelled

		_, err := f.uc.ResendOtp(ctx, p.ID, "U1", "")
		assert.ErrorIs(t, err, payment.ErrPaymentNotPending)
	})

	t.Run("Publish failure", func(t *testing.T) {
		f := newFixture(t)
		p, _ := f.paused()
		boom := errors.New("nats down")
		f.gw.EXPECT().PublishOtpResendRequested(gomock.Any(), gomock.Any()).Return(boom)

		_, err := f.uc.ResendOtp(ctx, p.ID, "U1", "")
		assert.ErrorIs(t, err, boom)
	})
}

func TestGetOtpInfo(t *testing.T) {
	ctx := context.Background()

	t.Run("Unknown payment", func(t *testing.T) {
		f := newFixture(t)
		p := pendingPayment()
		f.repo.EXPECT().GetPaymentByID(gomock.Any(), p.ID).Return(nil, payment.ErrPaymentNotFound)
		f.gw.EXPECT().GetOtpInfo(gomock.Any(), gomock.Any()).Times(0)

		_, err := f.uc.GetOtpInfo(ctx, p.ID)
		assert.ErrorIs(t, err, payment.ErrPaymentNotFound)
	})

	t.Run("Known payment", func(t *testing.T) {
		f := newFixture(t)
		p, _ := f.paused()
		f.gw.EXPECT().GetOtpInfo(gomock.Any(), p.ID.String()).
			Return(&models.OTPInfo{Exists: true, Attempts: 1, RemainingAttempts: 2, ExpiresIn: 90}, nil)

		info, err := f.uc.GetOtpInfo(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, info.RemainingAttempts)
	})
}

func TestGetAllSagas_Limit(t *testing.T) {
	tests := []struct {
		name     string
		limit    int
		expected int
	}{
		{name: "default", limit: 0, expected: 100},
		{name: "negative", limit: -3, expected: 100},
		{name: "explicit", limit: 20, expected: 20},
		{name: "capped", limit: 5000, expected: 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.repo.EXPECT().ListSagas(gomock.Any(), tt.expected).Return([]*models.Saga{}, nil)

			sagas, err := f.uc.GetAllSagas(context.Background(), tt.limit)
			require.NoError(t, err)
			assert.Empty(t, sagas)
		})
	}
}

func TestQueries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := pendingPayment()

	f.repo.EXPECT().GetPaymentByID(gomock.Any(), p.ID).Return(p, nil)
	f.repo.EXPECT().ListPaymentsByPayer(gomock.Any(), "U1").Return([]*models.Payment{p}, nil)
	f.repo.EXPECT().ListPaymentsByStudent(gomock.Any(), "S1").Return([]*models.Payment{p}, nil)
	f.repo.EXPECT().GetSagaByID(gomock.Any(), "saga_x").Return(nil, payment.ErrSagaNotFound)

	got, err := f.uc.GetPayment(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, got)

	byPayer, err := f.uc.GetPaymentsByPayer(ctx, "U1")
	require.NoError(t, err)
	assert.Len(t, byPayer, 1)

	byStudent, err := f.uc.GetPaymentsByStudent(ctx, "S1")
	require.NoError(t, err)
	assert.Len(t, byStudent, 1)

	_, err = f.uc.GetSaga(ctx, "saga_x")
	assert.ErrorIs(t, err, payment.ErrSagaNotFound)
}
