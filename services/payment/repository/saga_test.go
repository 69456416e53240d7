package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piresc/tuitionpay/internal/pkg/models"
	"github.com/piresc/tuitionpay/services/payment"
)

var sagaCols = []string{"id", "payment_id", "payer_id", "student_id", "amount", "user_email", "status",
	"current_step_index", "steps", "completed_steps", "error_message", "created_at", "updated_at"}

func testSaga() *models.Saga {
	paymentID := uuid.New()
	now := time.Now().UTC()
	return &models.Saga{
		ID:        models.NewSagaID(paymentID, now),
		PaymentID: paymentID,
		PayerID:   "U1",
		StudentID: "S1",
		Amount:    decimal.NewFromInt(500),
		Status:    models.SagaStatusPending,
		Steps: models.SagaSteps{
			{ID: models.StepCreatePayment, Action: models.ActionCreatePayment, Compensation: models.CompensationCancelPayment, Status: models.StepStatusPending, MaxRetries: 3},
		},
		CompletedSteps: models.SagaSteps{},
	}
}

func TestCreateSaga(t *testing.T) {
	repo, mock := setupMockDB(t)
	s := testSaga()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO sagas")).
		WithArgs(s.ID, s.PaymentID, "U1", "S1", sqlmock.AnyArg(), "", models.SagaStatusPending,
			0, sqlmock.AnyArg(), sqlmock.AnyArg(), "", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.CreateSaga(context.Background(), s))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateSaga(t *testing.T) {
	t.Run("Updated", func(t *testing.T) {
		repo, mock := setupMockDB(t)
		s := testSaga()
		s.CompleteStep(0, time.Now())

		mock.ExpectExec(regexp.QuoteMeta("UPDATE sagas SET")).
			WithArgs("", models.SagaStatusPending, 1, sqlmock.AnyArg(), sqlmock.AnyArg(), "", sqlmock.AnyArg(), s.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.UpdateSaga(context.Background(), s))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing saga", func(t *testing.T) {
		repo, mock := setupMockDB(t)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE sagas SET")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.UpdateSaga(context.Background(), testSaga()), payment.ErrSagaNotFound)
	})
}

func TestGetSaga(t *testing.T) {
	s := testSaga()
	now := time.Now().UTC()
	steps := `[{"id":"create_payment","action":"createPayment","compensation":"cancelPayment","status":"completed","retry_count":1,"max_retries":3}]`

	t.Run("By payment id decodes steps", func(t *testing.T) {
		repo, mock := setupMockDB(t)
		rows := sqlmock.NewRows(sagaCols).
			AddRow(s.ID, s.PaymentID.String(), "U1", "S1", "500", "payer@example.com", "pending",
				1, []byte(steps), []byte(steps), "", now, now)
		mock.ExpectQuery(regexp.QuoteMeta("FROM sagas WHERE payment_id = $1")).
			WithArgs(s.PaymentID).
			WillReturnRows(rows)

		got, err := repo.GetSagaByPaymentID(context.Background(), s.PaymentID)

		require.NoError(t, err)
		assert.Equal(t, s.ID, got.ID)
		require.Len(t, got.CompletedSteps, 1)
		assert.Equal(t, models.CompensationCancelPayment, got.CompletedSteps[0].Compensation)
		assert.Equal(t, 1, got.CompletedSteps[0].RetryCount)
		assert.True(t, got.HasCompleted(models.StepCreatePayment))
	})

	t.Run("Unknown id", func(t *testing.T) {
		repo, mock := setupMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM sagas WHERE id = $1")).
			WithArgs("saga_missing").
			WillReturnError(sql.ErrNoRows)

		got, err := repo.GetSagaByID(context.Background(), "saga_missing")

		assert.ErrorIs(t, err, payment.ErrSagaNotFound)
		assert.Nil(t, got)
	})
}

func TestListSagas(t *testing.T) {
	repo, mock := setupMockDB(t)
	now := time.Now().UTC()
	rows := sqlmock.NewRows(sagaCols).
		AddRow("saga_a", uuid.NewString(), "U1", "S1", "500", "", "completed", 4, []byte("[]"), []byte("[]"), "", now, now).
		AddRow("saga_b", uuid.NewString(), "U2", "S2", "250", "", "failed", 1, []byte("[]"), nil, "timeout", now, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM sagas ORDER BY created_at DESC LIMIT $1")).
		WithArgs(10).
		WillReturnRows(rows)

	sagas, err := repo.ListSagas(context.Background(), 10)

	require.NoError(t, err)
	require.Len(t, sagas, 2)
	assert.Equal(t, "timeout", sagas[1].ErrorMessage)
	assert.NotNil(t, sagas[1].CompletedSteps)
}
