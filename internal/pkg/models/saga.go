package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SagaStatus represents the orchestrator state of a payment saga
type SagaStatus string

const (
	SagaStatusPending      SagaStatus = "pending"
	SagaStatusCompleted    SagaStatus = "completed"
	SagaStatusFailed       SagaStatus = "failed"
	SagaStatusCompensating SagaStatus = "compensating"
)

// StepStatus represents the state of one saga step
type StepStatus string

const (
	StepStatusPending   StepStatus = "pending"
	StepStatusCompleted StepStatus = "completed"
	StepStatusFailed    StepStatus = "failed"
)

// Step ids of the fixed payment plan
const (
	StepCreatePayment       = "create_payment"
	StepGenerateAndSendOtp  = "generate_and_send_otp"
	StepWaitOtpVerification = "wait_otp_verification"
	StepExecuteTransaction  = "execute_transaction"
)

// Forward actions
const (
	ActionCreatePayment       = "createPayment"
	ActionGenerateAndSendOtp  = "generateAndSendOtp"
	ActionWaitOtpVerification = "waitOtpVerification"
	ActionExecuteTransaction  = "executeTransaction"
)

// Compensating actions
const (
	CompensationCancelPayment       = "cancelPayment"
	CompensationClearOtp            = "clearOtp"
	CompensationRollbackTransaction = "rollbackTransaction"
)

// SagaStep is one entry of a saga plan
type SagaStep struct {
	ID           string     `json:"id"`
	Action       string     `json:"action"`
	Compensation string     `json:"compensation,omitempty"`
	Status       StepStatus `json:"status"`
	RetryCount   int        `json:"retry_count"`
	MaxRetries   int        `json:"max_retries"`
	Error        string     `json:"error,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// SagaSteps is persisted as a JSON document
type SagaSteps []SagaStep

// Value implements driver.Valuer
func (s SagaSteps) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner
func (s *SagaSteps) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*s = SagaSteps{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported saga steps type %T", src)
	}
	return json.Unmarshal(data, s)
}

// Saga is the durable checkpoint of a payment workflow
type Saga struct {
	ID               string          `json:"id" db:"id"`
	PaymentID        uuid.UUID       `json:"payment_id" db:"payment_id"`
	PayerID          string          `json:"payer_id" db:"payer_id"`
	StudentID        string          `json:"student_id" db:"student_id"`
	Amount           decimal.Decimal `json:"amount" db:"amount"`
	UserEmail        string          `json:"user_email" db:"user_email"`
	Status           SagaStatus      `json:"status" db:"status"`
	CurrentStepIndex int             `json:"current_step_index" db:"current_step_index"`
	Steps            SagaSteps       `json:"steps" db:"steps"`
	CompletedSteps   SagaSteps       `json:"completed_steps" db:"completed_steps"`
	ErrorMessage     string          `json:"error_message,omitempty" db:"error_message"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at" db:"updated_at"`
}

// NewSagaID derives the saga id from its payment and creation time
func NewSagaID(paymentID uuid.UUID, at time.Time) string {
	return fmt.Sprintf("saga_%s_%d", paymentID, at.UnixMilli())
}

// StepIndex returns the plan position of a step id, or -1
func (s *Saga) StepIndex(stepID string) int {
	for i := range s.Steps {
		if s.Steps[i].ID == stepID {
			return i
		}
	}
	return -1
}

// HasCompleted reports whether a step id is already in the compensation work-list
func (s *Saga) HasCompleted(stepID string) bool {
	for _, step := range s.CompletedSteps {
		if step.ID == stepID {
			return true
		}
	}
	return false
}

// CompleteStep marks a planned step completed and appends it to CompletedSteps
func (s *Saga) CompleteStep(index int, at time.Time) {
	step := &s.Steps[index]
	step.Status = StepStatusCompleted
	step.Error = ""
	completedAt := at
	step.CompletedAt = &completedAt
	s.CompletedSteps = append(s.CompletedSteps, *step)
	s.CurrentStepIndex = index + 1
}

// FailStep marks a planned step failed with its error
func (s *Saga) FailStep(index int, err error) {
	step := &s.Steps[index]
	step.Status = StepStatusFailed
	if err != nil {
		step.Error = err.Error()
	}
	s.CurrentStepIndex = index
}
