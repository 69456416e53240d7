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

const paymentColumns = `id, payer_id, student_id, tuition_amount, payer_balance, status, created_at, updated_at`

// CreatePayment inserts a pending payment. The partial unique index on student_id
// rejects a second pending payment for the same student.
func (r *PaymentRepo) CreatePayment(ctx context.Context, p *models.Payment) error {
	query := `
		INSERT INTO payments (
			id, payer_id, student_id, tuition_amount, payer_balance, status, created_at, updated_at
		) VALUES (:id, :payer_id, :student_id, :tuition_amount, :payer_balance, :status, :created_at, :updated_at)
	`

	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	p.UpdatedAt = p.CreatedAt

	if _, err := r.db.NamedExecContext(ctx, query, p); err != nil {
		if isUniqueViolation(err) {
			return payment.ErrDuplicatePending
		}
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	return nil
}

// GetPaymentByID retrieves a payment by ID
func (r *PaymentRepo) GetPaymentByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	var p models.Payment
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, payment.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return &p, nil
}

// GetPendingPaymentByStudent returns the pending payment of a student, or ErrPaymentNotFound
func (r *PaymentRepo) GetPendingPaymentByStudent(ctx context.Context, studentID string) (*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE student_id = $1 AND status = $2 LIMIT 1`

	var p models.Payment
	if err := r.db.GetContext(ctx, &p, query, studentID, models.PaymentStatusPending); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, payment.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get pending payment: %w", err)
	}
	return &p, nil
}

// ListPaymentsByPayer returns the payments of a payer, newest first
func (r *PaymentRepo) ListPaymentsByPayer(ctx context.Context, payerID string) ([]*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE payer_id = $1 ORDER BY created_at DESC`

	payments := []*models.Payment{}
	if err := r.db.SelectContext(ctx, &payments, query, payerID); err != nil {
		return nil, fmt.Errorf("failed to list payments by payer: %w", err)
	}
	return payments, nil
}

// ListPaymentsByStudent returns the payments for a student, newest first
func (r *PaymentRepo) ListPaymentsByStudent(ctx context.Context, studentID string) ([]*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE student_id = $1 ORDER BY created_at DESC`

	payments := []*models.Payment{}
	if err := r.db.SelectContext(ctx, &payments, query, studentID); err != nil {
		return nil, fmt.Errorf("failed to list payments by student: %w", err)
	}
	return payments, nil
}

// ListStalePendingPayments returns pending payments created before the cutoff, oldest first
func (r *PaymentRepo) ListStalePendingPayments(ctx context.Context, createdBefore time.Time) ([]*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE status = $1 AND created_at < $2 ORDER BY created_at`

	payments := []*models.Payment{}
	if err := r.db.SelectContext(ctx, &payments, query, models.PaymentStatusPending, createdBefore); err != nil {
		return nil, fmt.Errorf("failed to list stale payments: %w", err)
	}
	return payments, nil
}

// TransitionPaymentStatus moves a payment from one status to another. It returns
// false without error when the payment is no longer in from.
func (r *PaymentRepo) TransitionPaymentStatus(ctx context.Context, id uuid.UUID, from, to models.PaymentStatus) (bool, error) {
	query := `UPDATE payments SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`

	res, err := r.db.ExecContext(ctx, query, to, time.Now().UTC(), id, from)
	if err != nil {
		return false, fmt.Errorf("failed to update payment status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n == 1, nil
}

// SetPaymentStatus overwrites the status of a payment
func (r *PaymentRepo) SetPaymentStatus(ctx context.Context, id uuid.UUID, status models.PaymentStatus) error {
	query := `UPDATE payments SET status = $1, updated_at = $2 WHERE id = $3`

	res, err := r.db.ExecContext(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to set payment status: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return payment.ErrPaymentNotFound
	}
	return nil
}
