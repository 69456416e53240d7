package config

import (
	"log"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/piresc/tuitionpay/internal/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// env is the process-wide viper instance bound to environment variables
var env = newEnv()

func newEnv() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	return v
}

func InitConfig(configPath string) *models.Config {
	local := GetEnv("APP_ENV", "local")
	if local == "local" {
		// Load config from file
		err := godotenv.Load(configPath)
		if err != nil {
			log.Println("error loading config from file", err)
		}
	}
	// Create config from environment variables
	return loadConfigFromEnv()
}

func loadConfigFromEnv() *models.Config {
	configs := &models.Config{}

	// App config
	configs.App.Name = GetEnv("APP_NAME", "")
	configs.App.Environment = GetEnv("APP_ENV", "")
	configs.App.Debug = GetEnvAsBool("APP_DEBUG", true)
	configs.App.Version = GetEnv("APP_VERSION", "")

	// Server config
	configs.Server.Host = GetEnv("SERVER_HOST", "")
	configs.Server.Port = GetEnvAsInt("SERVER_PORT", 0)
	configs.Server.ReadTimeout = GetEnvAsInt("SERVER_READ_TIMEOUT", 0)
	configs.Server.WriteTimeout = GetEnvAsInt("SERVER_WRITE_TIMEOUT", 0)
	configs.Server.ShutdownTimeout = GetEnvAsInt("SERVER_SHUTDOWN_TIMEOUT", 30)
	configs.Server.RateLimitPerMinute = GetEnvAsInt("SERVER_RATE_LIMIT_PER_MINUTE", 30)

	// Database config
	configs.Database.Driver = GetEnv("DB_DRIVER", "pgx")
	configs.Database.Host = GetEnv("DB_HOST", "")
	configs.Database.Port = GetEnvAsInt("DB_PORT", 0)
	configs.Database.Username = GetEnv("DB_USERNAME", "")
	configs.Database.Password = GetEnv("DB_PASSWORD", "")
	configs.Database.Database = GetEnv("DB_DATABASE", "")
	configs.Database.SSLMode = GetEnv("DB_SSL_MODE", "")
	configs.Database.MaxConns = GetEnvAsInt("DB_MAX_CONNS", 0)
	configs.Database.IdleConns = GetEnvAsInt("DB_IDLE_CONNS", 0)

	// Redis config
	configs.Redis.Host = GetEnv("REDIS_HOST", "")
	configs.Redis.Port = GetEnvAsInt("REDIS_PORT", 0)
	configs.Redis.Password = GetEnv("REDIS_PASSWORD", "")
	configs.Redis.DB = GetEnvAsInt("REDIS_DB", 0)
	configs.Redis.PoolSize = GetEnvAsInt("REDIS_POOL_SIZE", 0)

	// NATS config
	configs.NATS.URL = GetEnv("NATS_URL", "")
	configs.NATS.QueueGroup = GetEnv("NATS_QUEUE_GROUP", configs.App.Name)

	// JWT config
	configs.JWT.Secret = GetEnv("JWT_SECRET", "")
	configs.JWT.Expiration = GetEnvAsInt("JWT_EXPIRATION", 0)
	configs.JWT.Issuer = GetEnv("JWT_ISSUER", "")

	// NewRelic config
	configs.NewRelic.LicenseKey = GetEnv("NEW_RELIC_LICENSE_KEY", "")
	configs.NewRelic.AppName = GetEnv("NEW_RELIC_APP_NAME", "")
	configs.NewRelic.Enabled = GetEnvAsBool("NEW_RELIC_ENABLED", false)
	configs.NewRelic.LogsEnabled = GetEnvAsBool("NEW_RELIC_LOGS_ENABLED", false)
	configs.NewRelic.ForwardLogs = GetEnvAsBool("NEW_RELIC_FORWARD_LOGS", false)

	// Logger config
	configs.Logger.Level = GetEnv("LOG_LEVEL", "info")
	configs.Logger.FilePath = GetEnv("LOG_FILE_PATH", "")
	configs.Logger.Type = GetEnv("LOG_TYPE", "stdout")

	// RPC fabric
	configs.RPC.Timeout = GetEnvAsDuration("RPC_TIMEOUT", 5*time.Second)
	configs.RPC.BreakerFailures = uint32(GetEnvAsInt("RPC_BREAKER_FAILURES", 5))
	configs.RPC.BreakerTimeout = GetEnvAsDuration("RPC_BREAKER_TIMEOUT", 30*time.Second)

	// Lock manager
	configs.Lock.TTL = GetEnvAsDuration("LOCK_TTL", 30*time.Second)
	configs.Lock.MaxWait = GetEnvAsDuration("LOCK_MAX_WAIT", 15*time.Second)
	configs.Lock.PollInterval = GetEnvAsDuration("LOCK_POLL_INTERVAL", 100*time.Millisecond)

	// OTP lifecycle
	configs.OTP.TTL = GetEnvAsDuration("OTP_TTL", 2*time.Minute)
	configs.OTP.MaxAttempts = GetEnvAsInt("OTP_MAX_ATTEMPTS", 5)
	configs.OTP.ResendDelay = GetEnvAsDuration("OTP_RESEND_DELAY", 100*time.Millisecond)
	configs.OTP.RateLimitPerHour = GetEnvAsInt("OTP_RATE_LIMIT_PER_HOUR", 5)

	// Saga orchestrator
	configs.Saga.StepRetryBaseDelay = GetEnvAsDuration("SAGA_STEP_RETRY_BASE_DELAY", 200*time.Millisecond)
	configs.Saga.AmountTolerance = GetEnvAsDecimal("SAGA_AMOUNT_TOLERANCE", decimal.RequireFromString("0.01"))

	// Cleanup scheduler
	configs.Cleanup.Interval = GetEnvAsDuration("CLEANUP_INTERVAL", time.Minute)
	configs.Cleanup.StaleAfter = GetEnvAsDuration("CLEANUP_STALE_AFTER", 5*time.Minute)

	return configs
}

// Helper functions to get environment variables with different types
func GetEnv(key, defaultValue string) string {
	value := env.GetString(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean value for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}

// GetEnvAsDuration parses Go duration strings such as "30s" or "2m"
func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil || value < 0 {
		log.Printf("Warning: Invalid duration value for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

// GetEnvAsDecimal parses fixed-point amounts without going through float64
func GetEnvAsDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := decimal.NewFromString(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid decimal value for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}
