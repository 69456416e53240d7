package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piresc/tuitionpay/internal/pkg/database"
	"github.com/piresc/tuitionpay/internal/pkg/models"
	"github.com/piresc/tuitionpay/services/otp"
	"github.com/piresc/tuitionpay/services/otp/mocks"
	"github.com/piresc/tuitionpay/services/otp/repository"
)

func testConfig() *models.Config {
	return &models.Config{
		OTP: models.OTPConfig{
			TTL:              2 * time.Minute,
			MaxAttempts:      5,
			ResendDelay:      time.Millisecond,
			RateLimitPerHour: 5,
		},
	}
}

type fixture struct {
	uc    *OTPUC
	gw    *mocks.MockOTPGW
	mr    *miniredis.Miniredis
	clock *time.Time
	codes map[string]string
}

// newFixture wires the use case to a miniredis backed repository and records
// every code handed to the gateway
func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := testConfig()
	gw := mocks.NewMockOTPGW(ctrl)
	repo := repository.NewOTPRepo(&database.RedisClient{Client: client}, cfg.OTP.TTL)
	uc := NewOTPUC(cfg, repo, gw)

	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	f := &fixture{uc: uc, gw: gw, mr: mr, clock: &now, codes: map[string]string{}}
	uc.now = func() time.Time { return *f.clock }

	gw.EXPECT().PublishOtpGenerated(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *models.OtpGeneratedEvent) error {
			f.codes[e.TransactionID] = e.Code
			return nil
		}).AnyTimes()
	return f
}

func (f *fixture) advance(d time.Duration) {
	*f.clock = f.clock.Add(d)
}

func generateReq(txn string) *models.GenerateOTPRequest {
	return &models.GenerateOTPRequest{TransactionID: txn, Email: "payer@example.com", StudentID: "S1"}
}

func wrongCode(code string) string {
	if code == "100000" {
		return "100001"
	}
	return "100000"
}

func requireOTPKind(t *testing.T, err error, kind models.OTPErrorKind) *models.OTPError {
	t.Helper()
	var otpErr *models.OTPError
	require.True(t, errors.As(err, &otpErr), "expected OTPError, got %v", err)
	assert.Equal(t, kind, otpErr.Kind)
	return otpErr
}

func TestGenerateCode_SixDigits(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := generateCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		assert.True(t, code >= "100000" && code <= "999999", code)
	}
}

func TestGenerate(t *testing.T) {
	t.Run("Stores record and publishes code", func(t *testing.T) {
		f := newFixture(t)

		resp, err := f.uc.Generate(context.Background(), generateReq("txn-1"))

		require.NoError(t, err)
		assert.Equal(t, "txn-1", resp.TransactionID)
		assert.Equal(t, 120, resp.ExpiresIn)
		assert.Len(t, f.codes["txn-1"], 6)
		assert.True(t, f.mr.Exists("otp:txn-1"))
	})

	t.Run("Duplicate request", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.Generate(context.Background(), generateReq("txn-1"))
		require.NoError(t, err)
		first := f.codes["txn-1"]

		_, err = f.uc.Generate(context.Background(), generateReq("txn-1"))

		requireOTPKind(t, err, models.OTPErrDuplicateRequest)
		assert.Equal(t, first, f.codes["txn-1"])
	})

	t.Run("Duplicate request does not use the quota", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.Generate(context.Background(), generateReq("txn-1"))
		require.NoError(t, err)
		for i := 0; i < 10; i++ {
			_, err = f.uc.Generate(context.Background(), generateReq("txn-1"))
			requireOTPKind(t, err, models.OTPErrDuplicateRequest)
		}

		val, err := f.mr.Get("otp_rate_limit:payer@example.com")
		require.NoError(t, err)
		assert.Equal(t, "1", val)

		for i := 0; i < 4; i++ {
			_, err := f.uc.Generate(context.Background(), generateReq("txn-"+string(rune('a'+i))))
			require.NoError(t, err)
		}
	})

	t.Run("Skip existing check replaces code", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.Generate(context.Background(), generateReq("txn-1"))
		require.NoError(t, err)

		req := generateReq("txn-1")
		req.SkipExistingCheck = true
		_, err = f.uc.Generate(context.Background(), req)
		assert.NoError(t, err)
	})

	t.Run("Invalid request", func(t *testing.T) {
		f := newFixture(t)
		tests := []*models.GenerateOTPRequest{
			nil,
			{Email: "payer@example.com"},
			{TransactionID: "txn-1", Email: "not-an-email"},
		}
		for _, req := range tests {
			_, err := f.uc.Generate(context.Background(), req)
			assert.ErrorIs(t, err, otp.ErrInvalidRequest)
		}
	})

	t.Run("Rate limit per address", func(t *testing.T) {
		f := newFixture(t)
		for i := 0; i < 5; i++ {
			_, err := f.uc.Generate(context.Background(), generateReq("txn-"+string(rune('a'+i))))
			require.NoError(t, err)
		}

		_, err := f.uc.Generate(context.Background(), generateReq("txn-z"))
		requireOTPKind(t, err, models.OTPErrRateLimited)

		// regeneration is not counted
		req := generateReq("txn-a")
		req.SkipExistingCheck = true
		_, err = f.uc.Generate(context.Background(), req)
		assert.NoError(t, err)
	})

	t.Run("Publish failure removes the record", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		defer client.Close()
		gw := mocks.NewMockOTPGW(ctrl)
		uc := NewOTPUC(testConfig(), repository.NewOTPRepo(&database.RedisClient{Client: client}, time.Minute), gw)
		gw.EXPECT().PublishOtpGenerated(gomock.Any(), gomock.Any()).Return(errors.New("stream unavailable"))

		_, err := uc.Generate(context.Background(), generateReq("txn-1"))

		assert.Error(t, err)
		assert.False(t, mr.Exists("otp:txn-1"))
		val, err := mr.Get("otp_rate_limit:payer@example.com")
		require.NoError(t, err)
		assert.Equal(t, "0", val)
	})
}

func TestGenerate_RateLimitStoreFailsOpen(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockOTPRepo(ctrl)
	gw := mocks.NewMockOTPGW(ctrl)
	uc := NewOTPUC(testConfig(), repo, gw)

	repo.EXPECT().IncrementRateLimit(gomock.Any(), "payer@example.com", time.Hour).Return(int64(0), errors.New("redis down"))
	repo.EXPECT().Create(gomock.Any(), "txn-1", gomock.Any(), 2*time.Minute).Return(true, nil)
	gw.EXPECT().PublishOtpGenerated(gomock.Any(), gomock.Any()).Return(nil)

	resp, err := uc.Generate(context.Background(), generateReq("txn-1"))

	require.NoError(t, err)
	assert.Equal(t, "txn-1", resp.TransactionID)
}

func TestVerify(t *testing.T) {
	t.Run("Correct code marks verified and keeps record", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.Generate(context.Background(), generateReq("txn-1"))
		require.NoError(t, err)

		resp, err := f.uc.Verify(context.Background(), "txn-1", f.codes["txn-1"])

		require.NoError(t, err)
		assert.True(t, resp.Verified)
		assert.False(t, resp.AlreadyVerified)

		info, err := f.uc.Info(context.Background(), "txn-1")
		require.NoError(t, err)
		assert.True(t, info.Exists)
		assert.True(t, info.Verified)
	})

	t.Run("Second correct verify reports already verified", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.Generate(context.Background(), generateReq("txn-1"))
		require.NoError(t, err)
		_, err = f.uc.Verify(context.Background(), "txn-1", f.codes["txn-1"])
		require.NoError(t, err)

		resp, err := f.uc.Verify(context.Background(), "txn-1", f.codes["txn-1"])

		require.NoError(t, err)
		assert.True(t, resp.AlreadyVerified)
	})

	t.Run("Wrong codes count down then cancel at the fifth", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.Generate(context.Background(), generateReq("txn-1"))
		require.NoError(t, err)
		bad := wrongCode(f.codes["txn-1"])

		for attempt := 1; attempt <= 4; attempt++ {
			_, err := f.uc.Verify(context.Background(), "txn-1", bad)
			otpErr := requireOTPKind(t, err, models.OTPErrInvalidCode)
			assert.Equal(t, 5-attempt, otpErr.AttemptsLeft)

			info, err := f.uc.Info(context.Background(), "txn-1")
			require.NoError(t, err)
			assert.Equal(t, attempt, info.Attempts)
			assert.True(t, info.Exists)
		}

		f.gw.EXPECT().PublishPaymentCancelled(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, e *models.PaymentCancelledEvent) error {
				assert.Equal(t, "txn-1", e.PaymentID)
				assert.Equal(t, models.CancelReasonMaxOtpAttempts, e.Reason)
				return nil
			})

		_, err = f.uc.Verify(context.Background(), "txn-1", bad)

		requireOTPKind(t, err, models.OTPErrMaxAttemptsExceeded)
		assert.False(t, f.mr.Exists("otp:txn-1"))

		// the record is gone, so even the right code is now expired
		_, err = f.uc.Verify(context.Background(), "txn-1", f.codes["txn-1"])
		requireOTPKind(t, err, models.OTPErrExpired)
	})

	t.Run("Wall clock expiry deletes the record", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.Generate(context.Background(), generateReq("txn-1"))
		require.NoError(t, err)
		f.advance(2*time.Minute + time.Second)

		_, err = f.uc.Verify(context.Background(), "txn-1", f.codes["txn-1"])

		requireOTPKind(t, err, models.OTPErrExpired)
		assert.False(t, f.mr.Exists("otp:txn-1"))
	})

	t.Run("Exactly at ttl is still valid", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.Generate(context.Background(), generateReq("txn-1"))
		require.NoError(t, err)
		f.advance(2 * time.Minute)

		resp, err := f.uc.Verify(context.Background(), "txn-1", f.codes["txn-1"])

		require.NoError(t, err)
		assert.True(t, resp.Verified)
	})

	t.Run("Unknown transaction is expired", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.Verify(context.Background(), "missing", "123456")
		requireOTPKind(t, err, models.OTPErrExpired)
	})

	t.Run("Missing code", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.Verify(context.Background(), "txn-1", "")
		assert.ErrorIs(t, err, otp.ErrInvalidRequest)
	})
}

func TestResend_ThenVerifyWithNewCode(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Generate(context.Background(), generateReq("txn-1"))
	require.NoError(t, err)
	oldCode := f.codes["txn-1"]
	// a failed attempt on the old code does not carry over
	_, err = f.uc.Verify(context.Background(), "txn-1", wrongCode(oldCode))
	require.Error(t, err)

	resp, err := f.uc.Resend(context.Background(), &models.ResendOTPRequest{TransactionID: "txn-1"})
	require.NoError(t, err)
	assert.Equal(t, 120, resp.ExpiresIn)
	newCode := f.codes["txn-1"]

	info, err := f.uc.Info(context.Background(), "txn-1")
	require.NoError(t, err)
	assert.Equal(t, 0, info.Attempts)

	if newCode != oldCode {
		_, err = f.uc.Verify(context.Background(), "txn-1", oldCode)
		requireOTPKind(t, err, models.OTPErrInvalidCode)
	}
	verified, err := f.uc.Verify(context.Background(), "txn-1", newCode)
	require.NoError(t, err)
	assert.True(t, verified.Verified)
}

func TestResend(t *testing.T) {
	t.Run("Missing record without contact", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.Resend(context.Background(), &models.ResendOTPRequest{TransactionID: "txn-1"})
		requireOTPKind(t, err, models.OTPErrNotFound)
	})

	t.Run("Missing record with contact from the event", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.Resend(context.Background(), &models.ResendOTPRequest{
			TransactionID: "txn-1",
			Email:         "payer@example.com",
			StudentID:     "S1",
		})
		require.NoError(t, err)
		assert.True(t, f.mr.Exists("otp:txn-1"))
	})

	t.Run("Cancelled context during the delay", func(t *testing.T) {
		f := newFixture(t)
		f.uc.cfg.OTP.ResendDelay = time.Second
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := f.uc.Resend(ctx, &models.ResendOTPRequest{TransactionID: "txn-1", Email: "payer@example.com"})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestClear(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Generate(context.Background(), generateReq("txn-1"))
	require.NoError(t, err)

	cleared, err := f.uc.Clear(context.Background(), "txn-1")
	require.NoError(t, err)
	assert.True(t, cleared)

	cleared, err = f.uc.Clear(context.Background(), "txn-1")
	require.NoError(t, err)
	assert.False(t, cleared)

	_, err = f.uc.Clear(context.Background(), "")
	assert.ErrorIs(t, err, otp.ErrInvalidRequest)
}

func TestInfo(t *testing.T) {
	f := newFixture(t)

	info, err := f.uc.Info(context.Background(), "txn-1")
	require.NoError(t, err)
	assert.False(t, info.Exists)

	_, err = f.uc.Generate(context.Background(), generateReq("txn-1"))
	require.NoError(t, err)
	f.advance(30 * time.Second)

	info, err = f.uc.Info(context.Background(), "txn-1")
	require.NoError(t, err)
	assert.True(t, info.Exists)
	assert.Equal(t, 90, info.ExpiresIn)
	assert.Equal(t, 5, info.RemainingAttempts)
	assert.False(t, info.Verified)
}
