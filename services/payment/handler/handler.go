package handler

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/tuitionpay/internal/pkg/middleware"
	"github.com/piresc/tuitionpay/internal/pkg/models"
	natspkg "github.com/piresc/tuitionpay/internal/pkg/nats"
	nrpkg "github.com/piresc/tuitionpay/internal/pkg/newrelic"
	"github.com/piresc/tuitionpay/services/payment"
	httpHandler "github.com/piresc/tuitionpay/services/payment/handler/http"
	natsHandler "github.com/piresc/tuitionpay/services/payment/handler/nats"
)

// Handler combines all handlers for the payment service
type Handler struct {
	paymentHTTP *httpHandler.PaymentHandler
	paymentNATS *natsHandler.PaymentHandler
	cfg         *models.Config
}

// NewHandler creates a new combined handler
func NewHandler(
	paymentUC payment.PaymentUC,
	natsClient *natspkg.Client,
	cfg *models.Config,
	nrApp *newrelic.Application,
) *Handler {
	return &Handler{
		paymentHTTP: httpHandler.NewPaymentHandler(paymentUC),
		paymentNATS: natsHandler.NewPaymentHandler(paymentUC, natsClient, nrApp),
		cfg:         cfg,
	}
}

// RegisterRoutes registers all HTTP routes. Every route requires a payer token;
// state changing routes are additionally rate limited per payer.
func (h *Handler) RegisterRoutes(e *echo.Echo, redisClient *redis.Client) {
	auth := middleware.JWTAuthMiddleware(h.cfg.JWT)
	limit := middleware.UserRateLimiter(h.cfg.Server.RateLimitPerMinute, time.Minute, redisClient)

	payments := e.Group("/payments", auth)
	payments.POST("", nrpkg.TraceHandler("Payment.Start", h.paymentHTTP.StartPayment), limit)
	payments.GET("/payer/:payerId", nrpkg.TraceHandler("Payment.ListByPayer", h.paymentHTTP.GetPaymentsByPayer))
	payments.GET("/student/:studentId", nrpkg.TraceHandler("Payment.ListByStudent", h.paymentHTTP.GetPaymentsByStudent))
	payments.GET("/:id", nrpkg.TraceHandler("Payment.Get", h.paymentHTTP.GetPayment))
	payments.POST("/:id/cancel", nrpkg.TraceHandler("Payment.Cancel", h.paymentHTTP.CancelPayment), limit)
	payments.POST("/:id/verify-otp", nrpkg.TraceHandler("Payment.VerifyOtp", h.paymentHTTP.VerifyOtp), limit)
	payments.POST("/:id/resend-otp", nrpkg.TraceHandler("Payment.ResendOtp", h.paymentHTTP.ResendOtp), limit)
	payments.GET("/:id/otp-info", nrpkg.TraceHandler("Payment.OtpInfo", h.paymentHTTP.GetOtpInfo))

	sagas := e.Group("/sagas", auth)
	sagas.GET("", nrpkg.TraceHandler("Saga.List", h.paymentHTTP.GetAllSagas))
	sagas.GET("/:sagaId", nrpkg.TraceHandler("Saga.Get", h.paymentHTTP.GetSaga))
}

// Start starts the event consumers
func (h *Handler) Start(ctx context.Context) error {
	return h.paymentNATS.InitNATSConsumers(ctx)
}

// Stop stops the event consumers
func (h *Handler) Stop() {
	h.paymentNATS.Stop()
}
