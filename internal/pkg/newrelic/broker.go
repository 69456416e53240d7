package newrelic

import (
	"context"

	"github.com/newrelic/go-agent/v3/newrelic"
)

// StartMessageTransaction starts a background transaction for a broker message
// and returns a context carrying it. The caller ends the transaction.
func StartMessageTransaction(nrApp *newrelic.Application, name, subject string, size int) (*newrelic.Transaction, context.Context) {
	txn := nrApp.StartTransaction(name)
	AddTransactionAttribute(txn, "message.subject", subject)
	AddTransactionAttribute(txn, "message.size", size)
	return txn, newrelic.NewContext(context.Background(), txn)
}

// WithMessageSegment records an outbound broker call as a message producer segment
func WithMessageSegment(ctx context.Context, subject string, fn func() error) error {
	txn := FromContext(ctx)
	if txn == nil {
		return fn()
	}

	seg := &newrelic.MessageProducerSegment{
		StartTime:       txn.StartSegmentNow(),
		Library:         "NATS",
		DestinationType: newrelic.MessageTopic,
		DestinationName: subject,
	}
	defer seg.End()

	return fn()
}

// StartBackgroundTransaction starts a non-web transaction for a timer driven job.
// The returned context keeps the cancellation of parent.
func StartBackgroundTransaction(parent context.Context, nrApp *newrelic.Application, name string) (*newrelic.Transaction, context.Context) {
	txn := nrApp.StartTransaction(name)
	return txn, newrelic.NewContext(parent, txn)
}
