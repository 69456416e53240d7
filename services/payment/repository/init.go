package repository

import (
	"errors"

	"github.com/jackc/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/piresc/tuitionpay/internal/pkg/models"
)

const uniqueViolation = "23505"

// PaymentRepo stores payments and sagas in PostgreSQL
type PaymentRepo struct {
	cfg *models.Config
	db  *sqlx.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(
	cfg *models.Config,
	db *sqlx.DB,
) *PaymentRepo {
	return &PaymentRepo{
		cfg: cfg,
		db:  db,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
