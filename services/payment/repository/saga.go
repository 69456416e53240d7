package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/tuitionpay/internal/pkg/models"
	"github.com/piresc/tuitionpay/services/payment"
)

const sagaColumns = `id, payment_id, payer_id, student_id, amount, user_email, status,
	current_step_index, steps, completed_steps, error_message, created_at, updated_at`

// CreateSaga persists a new saga checkpoint
func (r *PaymentRepo) CreateSaga(ctx context.Context, s *models.Saga) error {
	query := `
		INSERT INTO sagas (
			id, payment_id, payer_id, student_id, amount, user_email, status,
			current_step_index, steps, completed_steps, error_message, created_at, updated_at
		) VALUES (
			:id, :payment_id, :payer_id, :student_id, :amount, :user_email, :status,
			:current_step_index, :steps, :completed_steps, :error_message, :created_at, :updated_at
		)
	`

	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	s.UpdatedAt = s.CreatedAt

	if _, err := r.db.NamedExecContext(ctx, query, s); err != nil {
		return fmt.Errorf("failed to insert saga: %w", err)
	}
	return nil
}

// UpdateSaga writes the mutable state of a saga
func (r *PaymentRepo) UpdateSaga(ctx context.Context, s *models.Saga) error {
	query := `
		UPDATE sagas SET
			user_email = :user_email,
			status = :status,
			current_step_index = :current_step_index,
			steps = :steps,
			completed_steps = :completed_steps,
			error_message = :error_message,
			updated_at = :updated_at
		WHERE id = :id
	`

	s.UpdatedAt = time.Now().UTC()
	res, err := r.db.NamedExecContext(ctx, query, s)
	if err != nil {
		return fmt.Errorf("failed to update saga: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return payment.ErrSagaNotFound
	}
	return nil
}

// GetSagaByID retrieves a saga by ID
func (r *PaymentRepo) GetSagaByID(ctx context.Context, id string) (*models.Saga, error) {
	return r.getSaga(ctx, `SELECT `+sagaColumns+` FROM sagas WHERE id = $1`, id)
}

// GetSagaByPaymentID retrieves the saga of a payment
func (r *PaymentRepo) GetSagaByPaymentID(ctx context.Context, paymentID uuid.UUID) (*models.Saga, error) {
	return r.getSaga(ctx, `SELECT `+sagaColumns+` FROM sagas WHERE payment_id = $1`, paymentID)
}

func (r *PaymentRepo) getSaga(ctx context.Context, query string, arg interface{}) (*models.Saga, error) {
	var s models.Saga
	if err := r.db.GetContext(ctx, &s, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, payment.ErrSagaNotFound
		}
		return nil, fmt.Errorf("failed to get saga: %w", err)
	}
	return &s, nil
}

// ListSagas returns the most recent sagas
func (r *PaymentRepo) ListSagas(ctx context.Context, limit int) ([]*models.Saga, error) {
	query := `SELECT ` + sagaColumns + ` FROM sagas ORDER BY created_at DESC LIMIT $1`

	sagas := []*models.Saga{}
	if err := r.db.SelectContext(ctx, &sagas, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list sagas: %w", err)
	}
	return sagas, nil
}
