package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piresc/tuitionpay/internal/pkg/database"
	"github.com/piresc/tuitionpay/internal/pkg/models"
	"github.com/piresc/tuitionpay/services/otp"
)

// setupOTPRepoTest creates a repository backed by miniredis
func setupOTPRepoTest(t *testing.T) (*OTPRepo, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewOTPRepo(&database.RedisClient{Client: client}, 2*time.Minute), mr
}

func testRecord() *models.OTPRecord {
	return &models.OTPRecord{
		Code:      "123456",
		Email:     "payer@example.com",
		StudentID: "S1",
		CreatedAt: time.Now().UTC(),
	}
}

func TestOTPRepo_Create(t *testing.T) {
	repo, mr := setupOTPRepoTest(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, "txn-1", testRecord(), 2*time.Minute)
	require.NoError(t, err)
	assert.True(t, created)

	val, err := mr.Get("otp:txn-1")
	require.NoError(t, err)
	var stored models.OTPRecord
	require.NoError(t, json.Unmarshal([]byte(val), &stored))
	assert.Equal(t, "123456", stored.Code)
	assert.Equal(t, "S1", stored.StudentID)
	assert.Equal(t, 2*time.Minute, mr.TTL("otp:txn-1"))

	// a second create must not replace the active record
	other := testRecord()
	other.Code = "654321"
	created, err = repo.Create(ctx, "txn-1", other, 2*time.Minute)
	require.NoError(t, err)
	assert.False(t, created)

	rec, err := repo.Get(ctx, "txn-1")
	require.NoError(t, err)
	assert.Equal(t, "123456", rec.Code)
}

func TestOTPRepo_SaveReplaces(t *testing.T) {
	repo, _ := setupOTPRepoTest(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "txn-1", testRecord(), time.Minute))
	replacement := testRecord()
	replacement.Code = "999999"
	require.NoError(t, repo.Save(ctx, "txn-1", replacement, time.Minute))

	rec, err := repo.Get(ctx, "txn-1")
	require.NoError(t, err)
	assert.Equal(t, "999999", rec.Code)
}

func TestOTPRepo_Get(t *testing.T) {
	repo, mr := setupOTPRepoTest(t)
	ctx := context.Background()

	t.Run("Missing record", func(t *testing.T) {
		rec, err := repo.Get(ctx, "nope")
		assert.ErrorIs(t, err, otp.ErrRecordNotFound)
		assert.Nil(t, rec)
	})

	t.Run("Corrupt record", func(t *testing.T) {
		require.NoError(t, mr.Set("otp:bad", "{not json"))
		rec, err := repo.Get(ctx, "bad")
		assert.Error(t, err)
		assert.Nil(t, rec)
	})

	t.Run("Store down", func(t *testing.T) {
		mr2, err := miniredis.Run()
		require.NoError(t, err)
		client := redis.NewClient(&redis.Options{Addr: mr2.Addr(), MaxRetries: -1})
		defer client.Close()
		mr2.Close()

		down := NewOTPRepo(&database.RedisClient{Client: client}, time.Minute)
		_, err = down.Get(ctx, "txn-1")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, otp.ErrRecordNotFound)
	})
}

func TestOTPRepo_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Save keeps the remaining ttl", func(t *testing.T) {
		repo, mr := setupOTPRepoTest(t)
		require.NoError(t, repo.Save(ctx, "txn-1", testRecord(), 2*time.Minute))
		mr.FastForward(30 * time.Second)

		err := repo.Update(ctx, "txn-1", func(rec *models.OTPRecord) (models.OTPAction, error) {
			rec.Attempts++
			return models.OTPActionSave, nil
		})
		require.NoError(t, err)

		rec, err := repo.Get(ctx, "txn-1")
		require.NoError(t, err)
		assert.Equal(t, 1, rec.Attempts)
		ttl := mr.TTL("otp:txn-1")
		assert.True(t, ttl <= 90*time.Second && ttl > 80*time.Second, "ttl was %s", ttl)
	})

	t.Run("Delete action removes the record", func(t *testing.T) {
		repo, mr := setupOTPRepoTest(t)
		require.NoError(t, repo.Save(ctx, "txn-1", testRecord(), time.Minute))

		err := repo.Update(ctx, "txn-1", func(rec *models.OTPRecord) (models.OTPAction, error) {
			return models.OTPActionDelete, nil
		})
		require.NoError(t, err)
		assert.False(t, mr.Exists("otp:txn-1"))
	})

	t.Run("None leaves the record untouched", func(t *testing.T) {
		repo, _ := setupOTPRepoTest(t)
		require.NoError(t, repo.Save(ctx, "txn-1", testRecord(), time.Minute))

		err := repo.Update(ctx, "txn-1", func(rec *models.OTPRecord) (models.OTPAction, error) {
			rec.Attempts = 4
			return models.OTPActionNone, nil
		})
		require.NoError(t, err)

		rec, err := repo.Get(ctx, "txn-1")
		require.NoError(t, err)
		assert.Equal(t, 0, rec.Attempts)
	})

	t.Run("Callback error aborts", func(t *testing.T) {
		repo, _ := setupOTPRepoTest(t)
		require.NoError(t, repo.Save(ctx, "txn-1", testRecord(), time.Minute))
		boom := errors.New("boom")

		err := repo.Update(ctx, "txn-1", func(rec *models.OTPRecord) (models.OTPAction, error) {
			rec.Attempts = 3
			return models.OTPActionSave, boom
		})
		assert.ErrorIs(t, err, boom)

		rec, err := repo.Get(ctx, "txn-1")
		require.NoError(t, err)
		assert.Equal(t, 0, rec.Attempts)
	})

	t.Run("Missing record", func(t *testing.T) {
		repo, _ := setupOTPRepoTest(t)
		called := false
		err := repo.Update(ctx, "absent", func(rec *models.OTPRecord) (models.OTPAction, error) {
			called = true
			return models.OTPActionNone, nil
		})
		assert.ErrorIs(t, err, otp.ErrRecordNotFound)
		assert.False(t, called)
	})

	t.Run("Concurrent increments are not lost", func(t *testing.T) {
		repo, _ := setupOTPRepoTest(t)
		require.NoError(t, repo.Save(ctx, "txn-1", testRecord(), time.Minute))

		const workers = 3
		var wg sync.WaitGroup
		errs := make(chan error, workers)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- repo.Update(ctx, "txn-1", func(rec *models.OTPRecord) (models.OTPAction, error) {
					rec.Attempts++
					return models.OTPActionSave, nil
				})
			}()
		}
		wg.Wait()
		close(errs)

		succeeded := 0
		for err := range errs {
			if err == nil {
				succeeded++
			}
		}
		rec, err := repo.Get(ctx, "txn-1")
		require.NoError(t, err)
		assert.Equal(t, succeeded, rec.Attempts)
	})
}

func TestOTPRepo_Delete(t *testing.T) {
	repo, _ := setupOTPRepoTest(t)
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, "txn-1", testRecord(), time.Minute))

	deleted, err := repo.Delete(ctx, "txn-1")
	require.NoError(t, err)
	assert.True(t, deleted)

	// idempotent
	deleted, err = repo.Delete(ctx, "txn-1")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestOTPRepo_IncrementRateLimit(t *testing.T) {
	repo, mr := setupOTPRepoTest(t)
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		count, err := repo.IncrementRateLimit(ctx, "payer@example.com", time.Hour)
		require.NoError(t, err)
		assert.Equal(t, i, count)
	}
	assert.Equal(t, time.Hour, mr.TTL("otp_rate_limit:payer@example.com"))

	mr.FastForward(time.Hour + time.Second)
	count, err := repo.IncrementRateLimit(ctx, "payer@example.com", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestOTPRepo_IncrementRateLimit_RestoresLostWindow(t *testing.T) {
	repo, mr := setupOTPRepoTest(t)
	ctx := context.Background()

	// a counter left without expiry by an interrupted write
	require.NoError(t, mr.Set("otp_rate_limit:payer@example.com", "1"))

	count, err := repo.IncrementRateLimit(ctx, "payer@example.com", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Equal(t, time.Hour, mr.TTL("otp_rate_limit:payer@example.com"))

	// later increments keep the running window
	mr.FastForward(30 * time.Minute)
	_, err = repo.IncrementRateLimit(ctx, "payer@example.com", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, mr.TTL("otp_rate_limit:payer@example.com"))

	mr.FastForward(48 * time.Hour)
	assert.False(t, mr.Exists("otp_rate_limit:payer@example.com"))
}

func TestOTPRepo_RefundRateLimit(t *testing.T) {
	repo, mr := setupOTPRepoTest(t)
	ctx := context.Background()

	t.Run("Gives back one generation", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			_, err := repo.IncrementRateLimit(ctx, "payer@example.com", time.Hour)
			require.NoError(t, err)
		}

		require.NoError(t, repo.RefundRateLimit(ctx, "payer@example.com"))

		val, err := mr.Get("otp_rate_limit:payer@example.com")
		require.NoError(t, err)
		assert.Equal(t, "1", val)
		assert.Equal(t, time.Hour, mr.TTL("otp_rate_limit:payer@example.com"))
	})

	t.Run("Missing counter stays missing", func(t *testing.T) {
		require.NoError(t, repo.RefundRateLimit(ctx, "other@example.com"))
		assert.False(t, mr.Exists("otp_rate_limit:other@example.com"))
	})
}
