package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Config represents application configuration
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NATS     NATSConfig
	JWT      JWTConfig
	NewRelic NewRelicConfig
	Logger   LoggerConfig
	RPC      RPCConfig
	Lock     LockConfig
	OTP      OTPConfig
	Saga     SagaConfig
	Cleanup  CleanupConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
	// RateLimitPerMinute caps write requests per payer; 0 disables the limiter
	RateLimitPerMinute int
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Driver    string
	Host      string
	Port      int
	Username  string
	Password  string
	Database  string
	SSLMode   string
	MaxConns  int
	IdleConns int
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// NATSConfig contains NATS connection configuration
type NATSConfig struct {
	URL string
	// QueueGroup is the queue used by RPC responders so replicas share load
	QueueGroup string
}

// JWTConfig contains JWT authentication configuration
type JWTConfig struct {
	Secret     string
	Expiration int // in minutes
	Issuer     string
}

// NewRelicConfig contains New Relic APM configuration
type NewRelicConfig struct {
	LicenseKey  string
	AppName     string
	Enabled     bool
	LogsEnabled bool
	ForwardLogs bool
}

// LoggerConfig contains log output configuration
type LoggerConfig struct {
	Level    string
	FilePath string
	Type     string
}

// RPCConfig contains request/reply settings for collaborator calls
type RPCConfig struct {
	Timeout time.Duration
	// BreakerFailures is the number of consecutive transport failures that opens a target's breaker
	BreakerFailures uint32
	BreakerTimeout  time.Duration
}

// LockConfig contains distributed lock settings
type LockConfig struct {
	TTL          time.Duration
	MaxWait      time.Duration
	PollInterval time.Duration
}

// OTPConfig contains one-time passcode settings
type OTPConfig struct {
	TTL              time.Duration
	MaxAttempts      int
	ResendDelay      time.Duration
	RateLimitPerHour int
}

// SagaConfig contains orchestrator settings
type SagaConfig struct {
	StepRetryBaseDelay time.Duration
	AmountTolerance    decimal.Decimal
}

// CleanupConfig contains stale payment sweep settings
type CleanupConfig struct {
	Interval   time.Duration
	StaleAfter time.Duration
}
