package nats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/tuitionpay/internal/pkg/constants"
	"github.com/piresc/tuitionpay/internal/pkg/logger"
	"github.com/piresc/tuitionpay/internal/pkg/models"
	natspkg "github.com/piresc/tuitionpay/internal/pkg/nats"
	nrpkg "github.com/piresc/tuitionpay/internal/pkg/newrelic"
	"github.com/piresc/tuitionpay/internal/pkg/rpc"
	"github.com/piresc/tuitionpay/services/otp"
)

// OTPHandler serves the otp.* RPC subjects and consumes payment events
type OTPHandler struct {
	otpUC      otp.OTPUC
	natsClient *natspkg.Client
	rpcServer  *rpc.Server
	nrApp      *newrelic.Application
	consumers  []*natspkg.Consumer
}

// NewOTPHandler creates a new OTP NATS handler
func NewOTPHandler(
	otpUC otp.OTPUC,
	client *natspkg.Client,
	rpcServer *rpc.Server,
	nrApp *newrelic.Application,
) *OTPHandler {
	return &OTPHandler{
		otpUC:      otpUC,
		natsClient: client,
		rpcServer:  rpcServer,
		nrApp:      nrApp,
		consumers:  make([]*natspkg.Consumer, 0),
	}
}

// RegisterRPCHandlers subscribes every otp.* responder
func (h *OTPHandler) RegisterRPCHandlers() error {
	handlers := map[string]rpc.HandlerFunc{
		constants.SubjectOTPGenerate: h.handleGenerate,
		constants.SubjectOTPVerify:   h.handleVerify,
		constants.SubjectOTPResend:   h.handleResend,
		constants.SubjectOTPClear:    h.handleClear,
		constants.SubjectOTPInfo:     h.handleInfo,
	}
	for subject, fn := range handlers {
		if err := h.rpcServer.Handle(subject, fn); err != nil {
			return err
		}
	}
	return nil
}

// InitNATSConsumers starts the durable consumers of the OTP service
func (h *OTPHandler) InitNATSConsumers(ctx context.Context) error {
	logger.Info("Initializing JetStream consumers for otp service")

	consumerConfigs := natspkg.DefaultConsumerConfigs()
	handlers := []struct {
		name    string
		handler natspkg.JetStreamMessageHandler
	}{
		{name: constants.ConsumerOTPPaymentCompleted, handler: h.handlePaymentCompletedJS},
		{name: constants.ConsumerOTPPaymentCancelled, handler: h.handlePaymentCancelledJS},
		{name: constants.ConsumerOTPResendRequested, handler: h.handleResendRequestedJS},
	}

	for _, c := range handlers {
		cfg := consumerConfigs[c.name]
		consumer, err := natspkg.NewJetStreamConsumer(ctx, h.natsClient, cfg, c.handler)
		if err != nil {
			return fmt.Errorf("failed to start consumer %s: %w", c.name, err)
		}
		h.consumers = append(h.consumers, consumer)
		logger.Info("Consumer started",
			logger.String("stream", cfg.StreamName),
			logger.String("consumer", cfg.ConsumerName),
			logger.String("filter_subject", cfg.FilterSubject))
	}
	return nil
}

// Stop stops every consumer
func (h *OTPHandler) Stop() {
	for _, c := range h.consumers {
		c.Stop()
	}
	h.consumers = nil
}

// toRPCError carries OTP failure kinds across the wire as envelope codes
func toRPCError(err error) error {
	if err == nil {
		return nil
	}
	var otpErr *models.OTPError
	if errors.As(err, &otpErr) {
		return rpc.NewError(string(otpErr.Kind), otpErr.Error())
	}
	if errors.Is(err, otp.ErrInvalidRequest) {
		return rpc.BadRequest(err.Error())
	}
	return err
}

func (h *OTPHandler) handleGenerate(ctx context.Context, payload []byte) (interface{}, error) {
	req, err := rpc.Decode[models.GenerateOTPRequest](payload)
	if err != nil {
		return nil, err
	}
	resp, err := h.otpUC.Generate(ctx, &req)
	if err != nil {
		return nil, toRPCError(err)
	}
	return resp, nil
}

func (h *OTPHandler) handleVerify(ctx context.Context, payload []byte) (interface{}, error) {
	req, err := rpc.Decode[models.VerifyOTPRequest](payload)
	if err != nil {
		return nil, err
	}
	resp, err := h.otpUC.Verify(ctx, req.TransactionID, req.Code)
	if err != nil {
		return nil, toRPCError(err)
	}
	return resp, nil
}

func (h *OTPHandler) handleResend(ctx context.Context, payload []byte) (interface{}, error) {
	req, err := rpc.Decode[models.ResendOTPRequest](payload)
	if err != nil {
		return nil, err
	}
	resp, err := h.otpUC.Resend(ctx, &req)
	if err != nil {
		return nil, toRPCError(err)
	}
	return resp, nil
}

func (h *OTPHandler) handleClear(ctx context.Context, payload []byte) (interface{}, error) {
	req, err := rpc.Decode[models.TransactionRequest](payload)
	if err != nil {
		return nil, err
	}
	cleared, err := h.otpUC.Clear(ctx, req.TransactionID)
	if err != nil {
		return nil, toRPCError(err)
	}
	return models.ClearOTPResponse{Cleared: cleared}, nil
}

func (h *OTPHandler) handleInfo(ctx context.Context, payload []byte) (interface{}, error) {
	req, err := rpc.Decode[models.TransactionRequest](payload)
	if err != nil {
		return nil, err
	}
	info, err := h.otpUC.Info(ctx, req.TransactionID)
	if err != nil {
		return nil, toRPCError(err)
	}
	return info, nil
}

// decodeEvent unwraps the event envelope. ok is false for events of another type,
// which are acknowledged and skipped.
func decodeEvent(ctx context.Context, msg jetstream.Msg, eventType string, v interface{}) (bool, error) {
	var env models.Event
	if err := json.Unmarshal(msg.Data(), &env); err != nil {
		return false, fmt.Errorf("failed to unmarshal event envelope: %w", err)
	}
	if env.Type != eventType {
		logger.WarnCtx(ctx, "Skipping event with unexpected type",
			logger.String("subject", msg.Subject()),
			logger.String("type", env.Type))
		return false, nil
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s event: %w", eventType, err)
	}
	return true, nil
}

// handlePaymentCompletedJS drops the record of a finished payment
func (h *OTPHandler) handlePaymentCompletedJS(msg jetstream.Msg) error {
	txn, ctx := nrpkg.StartMessageTransaction(h.nrApp, "NATS.OTP.HandlePaymentCompleted", msg.Subject(), len(msg.Data()))
	defer txn.End()

	var event models.PaymentCompletedEvent
	ok, err := decodeEvent(ctx, msg, models.EventPaymentCompleted, &event)
	if err != nil || !ok {
		nrpkg.NoticeTransactionError(txn, err)
		return err
	}

	if _, err := h.otpUC.Clear(ctx, event.PaymentID.String()); err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		logger.ErrorCtx(ctx, "Failed to clear OTP of completed payment",
			logger.PaymentID(event.PaymentID.String()),
			logger.Err(err))
		return err
	}
	return nil
}

// handlePaymentCancelledJS drops the record of a cancelled payment
func (h *OTPHandler) handlePaymentCancelledJS(msg jetstream.Msg) error {
	txn, ctx := nrpkg.StartMessageTransaction(h.nrApp, "NATS.OTP.HandlePaymentCancelled", msg.Subject(), len(msg.Data()))
	defer txn.End()

	var event models.PaymentCancelledEvent
	ok, err := decodeEvent(ctx, msg, models.EventPaymentCancelled, &event)
	if err != nil || !ok {
		nrpkg.NoticeTransactionError(txn, err)
		return err
	}

	if _, err := h.otpUC.Clear(ctx, event.PaymentID); err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		logger.ErrorCtx(ctx, "Failed to clear OTP of cancelled payment",
			logger.PaymentID(event.PaymentID),
			logger.String("reason", event.Reason),
			logger.Err(err))
		return err
	}
	return nil
}

// handleResendRequestedJS reissues a code on the decoupled resend path
func (h *OTPHandler) handleResendRequestedJS(msg jetstream.Msg) error {
	txn, ctx := nrpkg.StartMessageTransaction(h.nrApp, "NATS.OTP.HandleResendRequested", msg.Subject(), len(msg.Data()))
	defer txn.End()

	var event models.OtpResendRequestedEvent
	ok, err := decodeEvent(ctx, msg, models.EventOtpResendRequested, &event)
	if err != nil || !ok {
		nrpkg.NoticeTransactionError(txn, err)
		return err
	}

	_, err = h.otpUC.Resend(ctx, &models.ResendOTPRequest{
		TransactionID: event.TransactionID,
		Email:         event.Email,
		StudentID:     event.StudentID,
	})
	if err != nil {
		var otpErr *models.OTPError
		if errors.As(err, &otpErr) || errors.Is(err, otp.ErrInvalidRequest) {
			// redelivery cannot change a business rejection
			logger.WarnCtx(ctx, "OTP resend request rejected",
				logger.TransactionID(event.TransactionID),
				logger.Err(err))
			return nil
		}
		nrpkg.NoticeTransactionError(txn, err)
		return err
	}
	return nil
}
