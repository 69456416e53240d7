package usecase

import (
	"time"

	"github.com/piresc/tuitionpay/internal/pkg/models"
	"github.com/piresc/tuitionpay/services/otp"
)

// OTPUC implements the OTP use case interface
type OTPUC struct {
	cfg     *models.Config
	otpRepo otp.OTPRepo
	otpGW   otp.OTPGW
	now     func() time.Time
}

// NewOTPUC creates a new OTP use case
func NewOTPUC(
	cfg *models.Config,
	otpRepo otp.OTPRepo,
	otpGW otp.OTPGW,
) *OTPUC {
	return &OTPUC{
		cfg:     cfg,
		otpRepo: otpRepo,
		otpGW:   otpGW,
		now:     time.Now,
	}
}

func (u *OTPUC) ttl() time.Duration {
	if u.cfg.OTP.TTL <= 0 {
		return 2 * time.Minute
	}
	return u.cfg.OTP.TTL
}

func (u *OTPUC) maxAttempts() int {
	if u.cfg.OTP.MaxAttempts <= 0 {
		return 5
	}
	return u.cfg.OTP.MaxAttempts
}
