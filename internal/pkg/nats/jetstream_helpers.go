package nats

import (
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/piresc/tuitionpay/internal/pkg/constants"
)

// StreamConfigBuilder helps build stream configurations
type StreamConfigBuilder struct {
	config StreamConfig
}

// NewStreamConfigBuilder creates a builder with file storage and limits retention
func NewStreamConfigBuilder(name string) *StreamConfigBuilder {
	return &StreamConfigBuilder{
		config: StreamConfig{
			Name:      name,
			Retention: jetstream.LimitsPolicy,
			Storage:   jetstream.FileStorage,
			Replicas:  1,
			MaxAge:    24 * time.Hour,
			MaxBytes:  100 * 1024 * 1024, // 100MB
			MaxMsgs:   1000000,
			Discard:   jetstream.DiscardOld,
		},
	}
}

// WithSubjects sets the subjects for the stream
func (b *StreamConfigBuilder) WithSubjects(subjects ...string) *StreamConfigBuilder {
	b.config.Subjects = subjects
	return b
}

// WithMaxAge sets the maximum age for messages
func (b *StreamConfigBuilder) WithMaxAge(maxAge time.Duration) *StreamConfigBuilder {
	b.config.MaxAge = maxAge
	return b
}

// WithMaxBytes sets the maximum bytes for the stream
func (b *StreamConfigBuilder) WithMaxBytes(maxBytes int64) *StreamConfigBuilder {
	b.config.MaxBytes = maxBytes
	return b
}

// Build returns the stream configuration
func (b *StreamConfigBuilder) Build() StreamConfig {
	return b.config
}

// ConsumerConfigBuilder helps build consumer configurations
type ConsumerConfigBuilder struct {
	config ConsumerConfig
}

// NewConsumerConfigBuilder creates a builder for an explicit-ack durable consumer
func NewConsumerConfigBuilder(streamName, consumerName string) *ConsumerConfigBuilder {
	return &ConsumerConfigBuilder{
		config: ConsumerConfig{
			StreamName:    streamName,
			ConsumerName:  consumerName,
			DeliverPolicy: jetstream.DeliverNewPolicy,
			AckPolicy:     jetstream.AckExplicitPolicy,
			AckWait:       30 * time.Second,
			MaxDeliver:    3,
			ReplayPolicy:  jetstream.ReplayInstantPolicy,
			MaxAckPending: 1000,
		},
	}
}

// WithSubject sets the filter subject
func (b *ConsumerConfigBuilder) WithSubject(subject string) *ConsumerConfigBuilder {
	b.config.FilterSubject = subject
	return b
}

// WithMaxDeliver sets the maximum delivery attempts
func (b *ConsumerConfigBuilder) WithMaxDeliver(maxDeliver int) *ConsumerConfigBuilder {
	b.config.MaxDeliver = maxDeliver
	return b
}

// Build returns the consumer configuration
func (b *ConsumerConfigBuilder) Build() ConsumerConfig {
	return b.config
}

// DefaultStreamConfigs returns the event streams. Subjects are listed exactly so
// request/reply subjects such as otp.verify are never captured by a stream.
func DefaultStreamConfigs() []StreamConfig {
	return []StreamConfig{
		NewStreamConfigBuilder(constants.StreamPaymentEvents).
			WithSubjects(
				constants.SubjectPaymentCreated,
				constants.SubjectPaymentCompleted,
				constants.SubjectPaymentFailed,
				constants.SubjectPaymentCancelled,
			).
			WithMaxAge(7 * 24 * time.Hour). // 7 days for audit
			WithMaxBytes(200 * 1024 * 1024).
			Build(),

		NewStreamConfigBuilder(constants.StreamOTPEvents).
			WithSubjects(
				constants.SubjectOTPGenerated,
				constants.SubjectOTPResendRequested,
			).
			WithMaxAge(time.Hour).
			WithMaxBytes(50 * 1024 * 1024).
			Build(),
	}
}

// DefaultConsumerConfigs returns the durable consumers keyed by consumer name
func DefaultConsumerConfigs() map[string]ConsumerConfig {
	return map[string]ConsumerConfig{
		// payment.cancelled from outside the orchestrator aborts a pending saga
		constants.ConsumerPaymentCancelled: NewConsumerConfigBuilder(constants.StreamPaymentEvents, constants.ConsumerPaymentCancelled).
			WithSubject(constants.SubjectPaymentCancelled).
			WithMaxDeliver(5).
			Build(),

		// the OTP service drops records of finished payments
		constants.ConsumerOTPPaymentCompleted: NewConsumerConfigBuilder(constants.StreamPaymentEvents, constants.ConsumerOTPPaymentCompleted).
			WithSubject(constants.SubjectPaymentCompleted).
			Build(),

		constants.ConsumerOTPPaymentCancelled: NewConsumerConfigBuilder(constants.StreamPaymentEvents, constants.ConsumerOTPPaymentCancelled).
			WithSubject(constants.SubjectPaymentCancelled).
			Build(),

		constants.ConsumerOTPResendRequested: NewConsumerConfigBuilder(constants.StreamOTPEvents, constants.ConsumerOTPResendRequested).
			WithSubject(constants.SubjectOTPResendRequested).
			Build(),
	}
}
