package payment

import (
	"context"

	"github.com/piresc/tuitionpay/internal/pkg/lock"
)

// Locker serializes payment creation per student
type Locker interface {
	WaitAcquire(ctx context.Context, resource string) (*lock.Lock, error)
	Release(ctx context.Context, l *lock.Lock) error
	ForceRelease(ctx context.Context, resource string) error
}
