package gateway

import (
	"context"

	natspkg "github.com/piresc/tuitionpay/internal/pkg/nats"
	"github.com/piresc/tuitionpay/internal/pkg/rpc"
)

// EventPublisher is the part of the NATS client the gateway needs
type EventPublisher interface {
	PublishEvent(ctx context.Context, subject string, v interface{}) error
}

// PaymentGW talks to the collaborators over RPC and publishes payment events
type PaymentGW struct {
	rpcClient  *rpc.Client
	natsClient EventPublisher
}

// NewPaymentGW creates a new payment gateway
func NewPaymentGW(rpcClient *rpc.Client, natsClient *natspkg.Client) *PaymentGW {
	return &PaymentGW{
		rpcClient:  rpcClient,
		natsClient: natsClient,
	}
}
