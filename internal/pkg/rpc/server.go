package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/nats-io/nats.go"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/tuitionpay/internal/pkg/constants"
	"github.com/piresc/tuitionpay/internal/pkg/logger"
	nrpkg "github.com/piresc/tuitionpay/internal/pkg/newrelic"
)

// HandlerFunc serves one request. Returning an *Error sends its code to the caller;
// any other error is reported as an internal failure.
type HandlerFunc func(ctx context.Context, payload []byte) (interface{}, error)

// Server answers request/reply calls on a queue group so replicas share load
type Server struct {
	conn  *nats.Conn
	queue string
	nrApp *newrelic.Application

	mu   sync.Mutex
	subs []*nats.Subscription
}

// NewServer creates a responder bound to conn
func NewServer(conn *nats.Conn, queue string, nrApp *newrelic.Application) *Server {
	return &Server{conn: conn, queue: queue, nrApp: nrApp}
}

// Handle subscribes h to subject
func (s *Server) Handle(subject string, h HandlerFunc) error {
	sub, err := s.conn.QueueSubscribe(subject, s.queue, func(msg *nats.Msg) {
		s.serve(subject, msg, h)
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", subject, err)
	}

	s.mu.Lock()
	s.subs = append(s.subs, sub)
	s.mu.Unlock()

	logger.Info("RPC handler registered",
		logger.String("subject", subject),
		logger.String("queue", s.queue))
	return nil
}

func (s *Server) serve(subject string, msg *nats.Msg, h HandlerFunc) {
	txn, ctx := nrpkg.StartMessageTransaction(s.nrApp, "RPC "+subject, subject, len(msg.Data))
	defer txn.End()

	env := s.invoke(ctx, subject, msg.Data, h)
	if env.Code == constants.CodeInternal {
		nrpkg.NoticeTransactionError(txn, errors.New(env.Error))
	}

	if msg.Reply == "" {
		return
	}

	data, err := json.Marshal(env)
	if err != nil {
		logger.ErrorCtx(ctx, "Failed to encode RPC reply", logger.String("subject", subject), logger.Err(err))
		return
	}

	reply := nats.NewMsg(msg.Reply)
	reply.Data = data
	if msg.Header != nil {
		reply.Header.Set(constants.HeaderCorrelationID, msg.Header.Get(constants.HeaderCorrelationID))
	}
	if err := msg.RespondMsg(reply); err != nil {
		logger.WarnCtx(ctx, "Failed to send RPC reply", logger.String("subject", subject), logger.Err(err))
	}
}

func (s *Server) invoke(ctx context.Context, subject string, payload []byte, h HandlerFunc) (env Envelope) {
	defer func() {
		if r := recover(); r != nil {
			logger.ErrorCtx(ctx, "RPC handler panicked",
				logger.String("subject", subject),
				logger.Any("panic", r))
			env = Envelope{Success: false, Error: "internal error", Code: constants.CodeInternal}
		}
	}()

	value, err := h(ctx, payload)
	if err != nil {
		var rpcErr *Error
		if errors.As(err, &rpcErr) {
			return Envelope{Success: false, Error: rpcErr.Message, Code: rpcErr.Code}
		}
		logger.ErrorCtx(ctx, "RPC handler failed",
			logger.String("subject", subject),
			logger.Err(err))
		return Envelope{Success: false, Error: err.Error(), Code: constants.CodeInternal}
	}

	data, err := json.Marshal(value)
	if err != nil {
		return Envelope{Success: false, Error: "failed to encode result", Code: constants.CodeInternal}
	}
	return Envelope{Success: true, Data: data}
}

// Shutdown drains every handler subscription so in-flight requests are answered
func (s *Server) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for _, sub := range s.subs {
		if err := sub.Drain(); err != nil {
			errs = append(errs, err)
		}
	}
	s.subs = nil
	return errors.Join(errs...)
}
