package models

import "github.com/shopspring/decimal"

// UserAccount is the payer view returned by users.get
type UserAccount struct {
	ID      string          `json:"id"`
	Email   string          `json:"email"`
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"availableBalance"`
}

// GetUserRequest is the payload of users.get
type GetUserRequest struct {
	UserID string `json:"userId"`
}

// BalanceChangeRequest is the payload of users.deduct_balance and users.add_balance
type BalanceChangeRequest struct {
	UserID        string          `json:"userId"`
	Amount        decimal.Decimal `json:"amount"`
	TransactionID string          `json:"transactionId"`
}

// BalanceChangeResponse carries the payer balance after a debit or refund
type BalanceChangeResponse struct {
	Success    bool            `json:"success"`
	NewBalance decimal.Decimal `json:"newBalance"`
}

// StudentTuition is the reply of students.lookup
type StudentTuition struct {
	StudentID     string          `json:"studentId"`
	Name          string          `json:"studentName"`
	TuitionAmount decimal.Decimal `json:"amount"`
}

// StudentLookupRequest is the payload of students.lookup
type StudentLookupRequest struct {
	StudentID string `json:"studentId"`
}

// TuitionUpdateRequest is the payload of tuition.update_amount
type TuitionUpdateRequest struct {
	StudentID string          `json:"studentId"`
	Amount    decimal.Decimal `json:"amount"`
}
