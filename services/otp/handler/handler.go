package handler

import (
	"context"

	"github.com/newrelic/go-agent/v3/newrelic"
	natspkg "github.com/piresc/tuitionpay/internal/pkg/nats"
	"github.com/piresc/tuitionpay/internal/pkg/rpc"
	"github.com/piresc/tuitionpay/services/otp"
	natsHandler "github.com/piresc/tuitionpay/services/otp/handler/nats"
)

// Handler combines all handlers for the otp service
type Handler struct {
	otpNATS *natsHandler.OTPHandler
}

// NewHandler creates a new combined handler
func NewHandler(
	otpUC otp.OTPUC,
	natsClient *natspkg.Client,
	rpcServer *rpc.Server,
	nrApp *newrelic.Application,
) *Handler {
	return &Handler{
		otpNATS: natsHandler.NewOTPHandler(otpUC, natsClient, rpcServer, nrApp),
	}
}

// Start registers the RPC responders and the event consumers
func (h *Handler) Start(ctx context.Context) error {
	if err := h.otpNATS.RegisterRPCHandlers(); err != nil {
		return err
	}
	return h.otpNATS.InitNATSConsumers(ctx)
}

// Stop stops the event consumers
func (h *Handler) Stop() {
	h.otpNATS.Stop()
}
