package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/piresc/tuitionpay/internal/pkg/circuitbreaker"
	"github.com/piresc/tuitionpay/internal/pkg/constants"
	"github.com/piresc/tuitionpay/internal/pkg/logger"
	"github.com/piresc/tuitionpay/internal/pkg/metrics"
	nrpkg "github.com/piresc/tuitionpay/internal/pkg/newrelic"
)

// Conn is the part of *nats.Conn the client needs
type Conn interface {
	SubscribeSync(subj string) (*nats.Subscription, error)
	PublishMsg(m *nats.Msg) error
	IsConnected() bool
}

// Client issues request/reply calls addressed as <target>.<method>
type Client struct {
	conn     Conn
	breakers *circuitbreaker.Manager
	timeout  time.Duration
}

// NewClient creates a client. breakers may be nil to disable circuit breaking.
func NewClient(conn Conn, breakers *circuitbreaker.Manager, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{conn: conn, breakers: breakers, timeout: timeout}
}

// NewBreakerManager returns a breaker registry that only counts transport failures
func NewBreakerManager(failures uint32, openFor time.Duration, l *logger.ZapLogger) *circuitbreaker.Manager {
	cfg := circuitbreaker.DefaultConfig()
	if failures > 0 {
		cfg.FailureThreshold = failures
	}
	if openFor > 0 {
		cfg.Timeout = openFor
	}
	cfg.IsFailure = func(err error) bool {
		return errors.Is(err, ErrTimeout) || errors.Is(err, ErrNoResponders) || errors.Is(err, ErrConnection)
	}
	return circuitbreaker.NewManager(cfg, l)
}

// Call sends payload to target.method and waits up to timeout for the matching reply.
// A zero timeout uses the client default. Business failures come back as a Result
// with Ok false; transport failures come back as an error.
func Call[T any](ctx context.Context, c *Client, target, method string, payload interface{}, timeout time.Duration) (Result[T], error) {
	var result Result[T]
	if timeout <= 0 {
		timeout = c.timeout
	}
	subject := target + "." + method

	data, err := json.Marshal(payload)
	if err != nil {
		return result, fmt.Errorf("failed to marshal %s payload: %w", subject, err)
	}

	start := time.Now()
	var raw []byte
	call := func(ctx context.Context) error {
		return nrpkg.WithMessageSegment(ctx, subject, func() error {
			var callErr error
			raw, callErr = c.roundTrip(ctx, subject, data, timeout)
			return callErr
		})
	}
	if c.breakers != nil {
		err = c.breakers.Execute(ctx, target, call)
		if errors.Is(err, circuitbreaker.ErrOpen) {
			err = fmt.Errorf("%w: %s", ErrCircuitOpen, target)
		}
	} else {
		err = call(ctx)
	}
	metrics.RPCDuration.WithLabelValues(target).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.RPCRequests.WithLabelValues(target, outcome(err)).Inc()
		logger.WarnCtx(ctx, "RPC call failed",
			logger.String("subject", subject),
			logger.Err(err))
		return result, err
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		metrics.RPCRequests.WithLabelValues(target, "malformed").Inc()
		return result, fmt.Errorf("%w: %s: %v", ErrMalformedReply, subject, err)
	}

	if !env.Success {
		metrics.RPCRequests.WithLabelValues(target, "rejected").Inc()
		result.Reason = env.Error
		result.Code = env.Code
		return result, nil
	}

	if len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, &result.Value); err != nil {
			metrics.RPCRequests.WithLabelValues(target, "malformed").Inc()
			return result, fmt.Errorf("%w: %s data: %v", ErrMalformedReply, subject, err)
		}
	}
	result.Ok = true
	metrics.RPCRequests.WithLabelValues(target, metrics.OutcomeSuccess).Inc()
	return result, nil
}

// roundTrip publishes on a private inbox and returns the first reply carrying our correlation id
func (c *Client) roundTrip(ctx context.Context, subject string, data []byte, timeout time.Duration) ([]byte, error) {
	if !c.conn.IsConnected() {
		return nil, fmt.Errorf("%w: not connected", ErrConnection)
	}

	inbox := nats.NewInbox()
	sub, err := c.conn.SubscribeSync(inbox)
	if err != nil {
		return nil, fmt.Errorf("%w: subscribe inbox: %v", ErrConnection, err)
	}
	defer func() {
		_ = sub.Unsubscribe()
	}()

	correlationID := uuid.NewString()
	msg := nats.NewMsg(subject)
	msg.Reply = inbox
	msg.Data = data
	msg.Header.Set(constants.HeaderCorrelationID, correlationID)

	if err := c.conn.PublishMsg(msg); err != nil {
		return nil, fmt.Errorf("%w: publish %s: %v", ErrConnection, subject, err)
	}

	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	for {
		reply, err := sub.NextMsgWithContext(waitCtx)
		if err != nil {
			if errors.Is(err, nats.ErrNoResponders) {
				return nil, fmt.Errorf("%w: %s", ErrNoResponders, subject)
			}
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if errors.Is(err, context.DeadlineExceeded) {
				return nil, fmt.Errorf("%w: %s after %s", ErrTimeout, subject, timeout)
			}
			return nil, fmt.Errorf("%w: %v", ErrConnection, err)
		}

		if reply.Header.Get(constants.HeaderStatus) == constants.StatusNoResponders && len(reply.Data) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoResponders, subject)
		}
		if reply.Header.Get(constants.HeaderCorrelationID) != correlationID {
			logger.DebugCtx(ctx, "Discarding reply with foreign correlation id",
				logger.String("subject", subject))
			continue
		}
		return reply.Data, nil
	}
}

func outcome(err error) string {
	switch {
	case errors.Is(err, ErrTimeout):
		return metrics.OutcomeTimeout
	case errors.Is(err, ErrNoResponders):
		return "no_responders"
	case errors.Is(err, ErrCircuitOpen):
		return "circuit_open"
	default:
		return metrics.OutcomeFailure
	}
}
