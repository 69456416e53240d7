package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/piresc/tuitionpay/internal/pkg/logger"
	"github.com/piresc/tuitionpay/internal/pkg/middleware"
	"github.com/piresc/tuitionpay/internal/pkg/models"
	nrpkg "github.com/piresc/tuitionpay/internal/pkg/newrelic"
	"github.com/piresc/tuitionpay/internal/utils"
	"github.com/piresc/tuitionpay/services/payment"
)

// PaymentHandler handles HTTP requests for tuition payments
type PaymentHandler struct {
	paymentUC payment.PaymentUC
}

// NewPaymentHandler creates a new payment HTTP handler
func NewPaymentHandler(paymentUC payment.PaymentUC) *PaymentHandler {
	return &PaymentHandler{
		paymentUC: paymentUC,
	}
}

// startPaymentBody accepts the amount as a JSON number or a numeric string
type startPaymentBody struct {
	StudentID string      `json:"student_id"`
	Amount    json.Number `json:"amount"`
	Email     string      `json:"email"`
}

// errorStatus maps use case failures to HTTP statuses
func errorStatus(err error) int {
	switch {
	case errors.Is(err, payment.ErrInvalidRequest), errors.Is(err, payment.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, payment.ErrNotPaymentOwner):
		return http.StatusForbidden
	case errors.Is(err, payment.ErrPaymentNotFound), errors.Is(err, payment.ErrSagaNotFound),
		errors.Is(err, payment.ErrPayerNotFound), errors.Is(err, payment.ErrStudentNotFound):
		return http.StatusNotFound
	case errors.Is(err, payment.ErrDuplicatePending), errors.Is(err, payment.ErrPaymentNotPending),
		errors.Is(err, payment.ErrResumeInProgress):
		return http.StatusConflict
	case errors.Is(err, payment.ErrOtpTerminal):
		return http.StatusGone
	case errors.Is(err, payment.ErrAmountMismatch), errors.Is(err, payment.ErrNothingOwed),
		errors.Is(err, payment.ErrInsufficientBalance), errors.Is(err, payment.ErrOtpInvalid):
		return http.StatusUnprocessableEntity
	case errors.Is(err, payment.ErrLockContention):
		return http.StatusLocked
	case errors.Is(err, payment.ErrOtpRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, payment.ErrCollaborator):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func (h *PaymentHandler) fail(c echo.Context, op string, err error) error {
	status := errorStatus(err)
	ctx := c.Request().Context()
	if status >= http.StatusInternalServerError {
		nrpkg.NoticeTransactionError(nrpkg.FromEchoContext(c), err)
		logger.ErrorCtx(ctx, "Payment request failed",
			logger.String("operation", op),
			logger.Err(err))
		if status == http.StatusInternalServerError {
			return utils.InternalServerErrorResponse(c, "Internal server error")
		}
		return utils.ErrorResponseHandler(c, status, err.Error())
	}
	logger.WarnCtx(ctx, "Payment request rejected",
		logger.String("operation", op),
		logger.Int("status", status),
		logger.Err(err))
	return utils.ErrorResponseHandler(c, status, err.Error())
}

func paymentIDParam(c echo.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, false
	}
	middleware.SetPaymentID(c, id.String())
	return id, true
}

// StartPayment starts a payment saga for the authenticated payer
func (h *PaymentHandler) StartPayment(c echo.Context) error {
	var body startPaymentBody
	if err := c.Bind(&body); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}
	if body.StudentID == "" || body.Amount == "" {
		return utils.BadRequestResponse(c, "student_id and amount are required")
	}

	req := &models.CreatePaymentRequest{
		PayerID:   middleware.UserID(c),
		StudentID: body.StudentID,
		Amount:    body.Amount.String(),
		Email:     body.Email,
	}
	res, err := h.paymentUC.StartPayment(c.Request().Context(), req)
	if err != nil {
		return h.fail(c, "start", err)
	}
	middleware.SetPaymentID(c, res.PaymentID.String())

	return utils.SuccessResponse(c, http.StatusCreated, "Payment created, OTP sent", res)
}

// GetPayment returns a payment of the authenticated payer
func (h *PaymentHandler) GetPayment(c echo.Context) error {
	id, ok := paymentIDParam(c)
	if !ok {
		return utils.BadRequestResponse(c, "Invalid payment ID")
	}

	p, err := h.paymentUC.GetPayment(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, "get", err)
	}
	if p.PayerID != middleware.UserID(c) {
		return h.fail(c, "get", payment.ErrNotPaymentOwner)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Payment retrieved", p)
}

// CancelPayment cancels a pending payment
func (h *PaymentHandler) CancelPayment(c echo.Context) error {
	id, ok := paymentIDParam(c)
	if !ok {
		return utils.BadRequestResponse(c, "Invalid payment ID")
	}

	var req models.CancelPaymentRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := h.paymentUC.CancelPayment(c.Request().Context(), id, middleware.UserID(c), req.Reason); err != nil {
		return h.fail(c, "cancel", err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Payment cancelled", map[string]string{
		"payment_id": id.String(),
		"status":     string(models.PaymentStatusCancelled),
	})
}

// VerifyOtp resumes the saga with the submitted code
func (h *PaymentHandler) VerifyOtp(c echo.Context) error {
	id, ok := paymentIDParam(c)
	if !ok {
		return utils.BadRequestResponse(c, "Invalid payment ID")
	}

	var req models.VerifyOtpRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}
	if req.OtpCode == "" {
		return utils.BadRequestResponse(c, "otp_code is required")
	}

	res, err := h.paymentUC.VerifyOtpAndCompletePayment(c.Request().Context(), id, middleware.UserID(c), req.OtpCode)
	if err != nil {
		return h.fail(c, "verify_otp", err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Payment completed", res)
}

// ResendOtp asks for a fresh code
func (h *PaymentHandler) ResendOtp(c echo.Context) error {
	id, ok := paymentIDParam(c)
	if !ok {
		return utils.BadRequestResponse(c, "Invalid payment ID")
	}

	res, err := h.paymentUC.ResendOtp(c.Request().Context(), id, middleware.UserID(c), middleware.UserEmail(c))
	if err != nil {
		return h.fail(c, "resend_otp", err)
	}
	return utils.SuccessResponse(c, http.StatusAccepted, "OTP resend requested", res)
}

// GetOtpInfo describes the outstanding code of a payment
func (h *PaymentHandler) GetOtpInfo(c echo.Context) error {
	id, ok := paymentIDParam(c)
	if !ok {
		return utils.BadRequestResponse(c, "Invalid payment ID")
	}

	info, err := h.paymentUC.GetOtpInfo(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, "otp_info", err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "OTP info retrieved", info)
}

// GetPaymentsByPayer lists the payments of the authenticated payer
func (h *PaymentHandler) GetPaymentsByPayer(c echo.Context) error {
	payerID := c.Param("payerId")
	if payerID != middleware.UserID(c) {
		return h.fail(c, "list_by_payer", payment.ErrNotPaymentOwner)
	}

	payments, err := h.paymentUC.GetPaymentsByPayer(c.Request().Context(), payerID)
	if err != nil {
		return h.fail(c, "list_by_payer", err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Payments retrieved", payments)
}

// GetPaymentsByStudent lists the payments made for a student
func (h *PaymentHandler) GetPaymentsByStudent(c echo.Context) error {
	studentID := c.Param("studentId")
	if studentID == "" {
		return utils.BadRequestResponse(c, "Student ID is required")
	}

	payments, err := h.paymentUC.GetPaymentsByStudent(c.Request().Context(), studentID)
	if err != nil {
		return h.fail(c, "list_by_student", err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Payments retrieved", payments)
}

// GetSaga returns the state of one saga
func (h *PaymentHandler) GetSaga(c echo.Context) error {
	sagaID := c.Param("sagaId")
	if sagaID == "" {
		return utils.BadRequestResponse(c, "Saga ID is required")
	}

	saga, err := h.paymentUC.GetSaga(c.Request().Context(), sagaID)
	if err != nil {
		return h.fail(c, "get_saga", err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Saga retrieved", saga)
}

// GetAllSagas lists the most recent sagas
func (h *PaymentHandler) GetAllSagas(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return utils.BadRequestResponse(c, "limit must be a non-negative integer")
		}
		limit = n
	}

	sagas, err := h.paymentUC.GetAllSagas(c.Request().Context(), limit)
	if err != nil {
		return h.fail(c, "list_sagas", err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Sagas retrieved", sagas)
}
