package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/piresc/tuitionpay/internal/pkg/constants"
	"github.com/piresc/tuitionpay/internal/pkg/models"
	"github.com/piresc/tuitionpay/internal/pkg/rpc"
	"github.com/piresc/tuitionpay/services/payment"
	"github.com/shopspring/decimal"
)

// transportError keeps both the collaborator sentinel and the rpc transport sentinel matchable
func transportError(subject string, err error) error {
	return fmt.Errorf("%w: %s: %w", payment.ErrCollaborator, subject, err)
}

func rejected(subject, code, reason string) error {
	return fmt.Errorf("%w: %s rejected (%s): %s", payment.ErrCollaborator, subject, code, reason)
}

// GetUser fetches the payer account with its available balance
func (g *PaymentGW) GetUser(ctx context.Context, userID string) (*models.UserAccount, error) {
	res, err := rpc.Call[models.UserAccount](ctx, g.rpcClient, constants.TargetUsers, constants.MethodGetUser,
		models.GetUserRequest{UserID: userID}, 0)
	if err != nil {
		return nil, transportError(constants.SubjectUsersGet, err)
	}
	if !res.Ok {
		if res.Code == constants.CodeNotFound {
			return nil, payment.ErrPayerNotFound
		}
		return nil, rejected(constants.SubjectUsersGet, res.Code, res.Reason)
	}
	return &res.Value, nil
}

// LookupStudent fetches the outstanding tuition of a student
func (g *PaymentGW) LookupStudent(ctx context.Context, studentID string) (*models.StudentTuition, error) {
	res, err := rpc.Call[models.StudentTuition](ctx, g.rpcClient, constants.TargetStudents, constants.MethodLookup,
		models.StudentLookupRequest{StudentID: studentID}, 0)
	if err != nil {
		return nil, transportError(constants.SubjectStudentsLookup, err)
	}
	if !res.Ok {
		if res.Code == constants.CodeNotFound {
			return nil, payment.ErrStudentNotFound
		}
		return nil, rejected(constants.SubjectStudentsLookup, res.Code, res.Reason)
	}
	return &res.Value, nil
}

// DeductBalance debits the payer. The balance service is idempotent per transaction id.
func (g *PaymentGW) DeductBalance(ctx context.Context, req *models.BalanceChangeRequest) (*models.BalanceChangeResponse, error) {
	return g.changeBalance(ctx, constants.MethodDeductBalance, constants.SubjectUsersDeduct, req)
}

// AddBalance credits the payer back
func (g *PaymentGW) AddBalance(ctx context.Context, req *models.BalanceChangeRequest) (*models.BalanceChangeResponse, error) {
	return g.changeBalance(ctx, constants.MethodAddBalance, constants.SubjectUsersAddFunds, req)
}

func (g *PaymentGW) changeBalance(ctx context.Context, method, subject string, req *models.BalanceChangeRequest) (*models.BalanceChangeResponse, error) {
	res, err := rpc.Call[models.BalanceChangeResponse](ctx, g.rpcClient, constants.TargetUsers, method, req, 0)
	if err != nil {
		return nil, transportError(subject, err)
	}
	if !res.Ok {
		if res.Code == constants.CodeInsufficient {
			return nil, payment.ErrInsufficientBalance
		}
		return nil, rejected(subject, res.Code, res.Reason)
	}
	if !res.Value.Success {
		return nil, rejected(subject, "unsuccessful", "balance was not changed")
	}
	return &res.Value, nil
}

// UpdateTuitionAmount sets the outstanding tuition of a student
func (g *PaymentGW) UpdateTuitionAmount(ctx context.Context, studentID string, amount decimal.Decimal) error {
	res, err := rpc.Call[json.RawMessage](ctx, g.rpcClient, constants.TargetTuition, constants.MethodUpdateAmount,
		models.TuitionUpdateRequest{StudentID: studentID, Amount: amount}, 0)
	if err != nil {
		return transportError(constants.SubjectTuitionUpdate, err)
	}
	if !res.Ok {
		return rejected(constants.SubjectTuitionUpdate, res.Code, res.Reason)
	}
	return nil
}

// GenerateOtp asks the OTP service to issue and deliver a code
func (g *PaymentGW) GenerateOtp(ctx context.Context, req *models.GenerateOTPRequest) (*models.GenerateOTPResponse, error) {
	res, err := rpc.Call[models.GenerateOTPResponse](ctx, g.rpcClient, constants.TargetOTP, constants.MethodGenerate, req, 0)
	if err != nil {
		return nil, transportError(constants.SubjectOTPGenerate, err)
	}
	if !res.Ok {
		return nil, otpFailure(constants.SubjectOTPGenerate, res.Code, res.Reason)
	}
	return &res.Value, nil
}

// VerifyOtp checks a code. OTP failures come back as *models.OTPError.
func (g *PaymentGW) VerifyOtp(ctx context.Context, transactionID, code string) (*models.VerifyOTPResponse, error) {
	res, err := rpc.Call[models.VerifyOTPResponse](ctx, g.rpcClient, constants.TargetOTP, constants.MethodVerify,
		models.VerifyOTPRequest{TransactionID: transactionID, Code: code}, 0)
	if err != nil {
		return nil, transportError(constants.SubjectOTPVerify, err)
	}
	if !res.Ok {
		return nil, otpFailure(constants.SubjectOTPVerify, res.Code, res.Reason)
	}
	return &res.Value, nil
}

// ClearOtp removes the code of a transaction
func (g *PaymentGW) ClearOtp(ctx context.Context, transactionID string) error {
	res, err := rpc.Call[models.ClearOTPResponse](ctx, g.rpcClient, constants.TargetOTP, constants.MethodClear,
		models.TransactionRequest{TransactionID: transactionID}, 0)
	if err != nil {
		return transportError(constants.SubjectOTPClear, err)
	}
	if !res.Ok {
		return otpFailure(constants.SubjectOTPClear, res.Code, res.Reason)
	}
	return nil
}

// GetOtpInfo describes the code of a transaction
func (g *PaymentGW) GetOtpInfo(ctx context.Context, transactionID string) (*models.OTPInfo, error) {
	res, err := rpc.Call[models.OTPInfo](ctx, g.rpcClient, constants.TargetOTP, constants.MethodInfo,
		models.TransactionRequest{TransactionID: transactionID}, 0)
	if err != nil {
		return nil, transportError(constants.SubjectOTPInfo, err)
	}
	if !res.Ok {
		return nil, otpFailure(constants.SubjectOTPInfo, res.Code, res.Reason)
	}
	return &res.Value, nil
}

// otpFailure rebuilds the typed OTP error from a reply code
func otpFailure(subject, code, reason string) error {
	kind := models.OTPErrorKind(code)
	switch kind {
	case models.OTPErrExpired, models.OTPErrMaxAttemptsExceeded, models.OTPErrNotFound,
		models.OTPErrDuplicateRequest, models.OTPErrRateLimited:
		return &models.OTPError{Kind: kind, Message: reason}
	case models.OTPErrInvalidCode:
		otpErr := &models.OTPError{Kind: kind, Message: reason}
		// the reason reads "<message>: <n> attempts left"
		if i := strings.LastIndex(reason, ": "); i >= 0 {
			var left int
			if _, err := fmt.Sscanf(reason[i+2:], "%d attempts left", &left); err == nil {
				otpErr.Message = reason[:i]
				otpErr.AttemptsLeft = left
			}
		}
		return otpErr
	}
	return rejected(subject, code, reason)
}
