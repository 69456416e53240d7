package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/piresc/tuitionpay/internal/pkg/constants"
	"github.com/piresc/tuitionpay/internal/pkg/database"
	"github.com/piresc/tuitionpay/internal/pkg/models"
	"github.com/piresc/tuitionpay/services/otp"
)

// maxUpdateAttempts bounds optimistic retries when a watched key changes mid-update
const maxUpdateAttempts = 3

// OTPRepo keeps passcode records in Redis under otp:<transaction_id>
type OTPRepo struct {
	redisClient *database.RedisClient
	ttl         time.Duration
}

// NewOTPRepo creates a new OTP repository. ttl is used when an updated record
// has lost its expiry.
func NewOTPRepo(redisClient *database.RedisClient, ttl time.Duration) *OTPRepo {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &OTPRepo{
		redisClient: redisClient,
		ttl:         ttl,
	}
}

func otpKey(transactionID string) string {
	return fmt.Sprintf(constants.KeyOTP, transactionID)
}

func rateLimitKey(email string) string {
	return fmt.Sprintf(constants.KeyOTPRateLimit, email)
}

// Create stores the record only when the key is absent
func (r *OTPRepo) Create(ctx context.Context, transactionID string, rec *models.OTPRecord, ttl time.Duration) (bool, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return false, fmt.Errorf("failed to marshal OTP record: %w", err)
	}

	created, err := r.redisClient.SetNX(ctx, otpKey(transactionID), data, ttl)
	if err != nil {
		return false, fmt.Errorf("failed to create OTP record: %w", err)
	}
	return created, nil
}

// Save stores the record, replacing any existing one
func (r *OTPRepo) Save(ctx context.Context, transactionID string, rec *models.OTPRecord, ttl time.Duration) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal OTP record: %w", err)
	}

	if err := r.redisClient.Set(ctx, otpKey(transactionID), data, ttl); err != nil {
		return fmt.Errorf("failed to save OTP record: %w", err)
	}
	return nil
}

// Get loads the record of a transaction
func (r *OTPRepo) Get(ctx context.Context, transactionID string) (*models.OTPRecord, error) {
	val, err := r.redisClient.Get(ctx, otpKey(transactionID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, otp.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get OTP record: %w", err)
	}

	return decodeRecord(val)
}

// Update applies fn inside WATCH/MULTI so concurrent verifications of the same
// record cannot both win. A saved record keeps its remaining TTL.
func (r *OTPRepo) Update(ctx context.Context, transactionID string, fn otp.UpdateFunc) error {
	key := otpKey(transactionID)
	client := r.redisClient.GetClient()

	txf := func(tx *redis.Tx) error {
		val, err := tx.Get(ctx, key).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return otp.ErrRecordNotFound
			}
			return fmt.Errorf("failed to get OTP record: %w", err)
		}

		rec, err := decodeRecord(val)
		if err != nil {
			return err
		}

		remaining, err := tx.PTTL(ctx, key).Result()
		if err != nil {
			return fmt.Errorf("failed to read OTP ttl: %w", err)
		}
		if remaining <= 0 {
			remaining = r.ttl
		}

		action, err := fn(rec)
		if err != nil {
			return err
		}

		switch action {
		case models.OTPActionSave:
			data, err := json.Marshal(rec)
			if err != nil {
				return fmt.Errorf("failed to marshal OTP record: %w", err)
			}
			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, data, remaining)
				return nil
			})
			return err
		case models.OTPActionDelete:
			_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Del(ctx, key)
				return nil
			})
			return err
		default:
			return nil
		}
	}

	for i := 0; i < maxUpdateAttempts; i++ {
		err := client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("failed to update OTP record %s: concurrent modification", transactionID)
}

// Delete removes the record and reports whether one existed
func (r *OTPRepo) Delete(ctx context.Context, transactionID string) (bool, error) {
	n, err := r.redisClient.GetClient().Del(ctx, otpKey(transactionID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to delete OTP record: %w", err)
	}
	return n > 0, nil
}

// incrementScript counts inside a fixed window and restores a missing expiry,
// so a counter can never outlive its window
var incrementScript = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if redis.call("PTTL", KEYS[1]) < 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return n
`)

// refundScript gives back one generation without creating or extending the window
var refundScript = redis.NewScript(`
local n = tonumber(redis.call("GET", KEYS[1]) or "0")
if n > 0 then
	return redis.call("DECR", KEYS[1])
end
return 0
`)

// IncrementRateLimit counts a generation for email inside a fixed window
// starting at the first generation
func (r *OTPRepo) IncrementRateLimit(ctx context.Context, email string, window time.Duration) (int64, error) {
	count, err := incrementScript.Run(ctx, r.redisClient.GetClient(), []string{rateLimitKey(email)}, window.Milliseconds()).Int64()
	if err != nil {
		return 0, fmt.Errorf("failed to increment OTP rate limit: %w", err)
	}
	return count, nil
}

// RefundRateLimit returns a generation that did not issue a code
func (r *OTPRepo) RefundRateLimit(ctx context.Context, email string) error {
	if err := refundScript.Run(ctx, r.redisClient.GetClient(), []string{rateLimitKey(email)}).Err(); err != nil {
		return fmt.Errorf("failed to refund OTP rate limit: %w", err)
	}
	return nil
}

func decodeRecord(val string) (*models.OTPRecord, error) {
	var rec models.OTPRecord
	if err := json.Unmarshal([]byte(val), &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal OTP record: %w", err)
	}
	return &rec, nil
}
