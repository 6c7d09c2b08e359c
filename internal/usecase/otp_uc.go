// internal/usecase/otp_uc.go
package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"hash/fnv"
	"math/big"
	"strings"
	"sync"
	"time"

	"relay-service/internal/domain"
	"relay-service/internal/metrics"
	"relay-service/internal/provider"
	"relay-service/internal/repository"

	"go.uber.org/zap"
)

const otpLockStripes = 32

type OTPUsecase struct {
	store   repository.OTPStore
	sms     provider.SMSSender
	ttl     time.Duration
	now     func() time.Time
	newCode func() (string, error)
	locks   [otpLockStripes]sync.Mutex
	metrics *metrics.Metrics
	logger  *zap.Logger
}

type OTPOption func(*OTPUsecase)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) OTPOption {
	return func(uc *OTPUsecase) { uc.now = now }
}

func WithCodeGenerator(gen func() (string, error)) OTPOption {
	return func(uc *OTPUsecase) { uc.newCode = gen }
}

func NewOTPUsecase(
	store repository.OTPStore,
	sms provider.SMSSender,
	ttl time.Duration,
	m *metrics.Metrics,
	logger *zap.Logger,
	opts ...OTPOption,
) *OTPUsecase {
	uc := &OTPUsecase{
		store:   store,
		sms:     sms,
		ttl:     ttl,
		now:     time.Now,
		newCode: randomCode,
		metrics: m,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// randomCode returns a 4-digit code uniform over [1000, 9999].
func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%d", 1000+n.Int64()), nil
}

func (uc *OTPUsecase) lockFor(phoneNumber string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(phoneNumber))
	return &uc.locks[h.Sum32()%otpLockStripes]
}

// Generate stores a fresh code for phoneNumber, replacing any pending one, and sends
// it by SMS. The code stays stored even when the SMS fails; in that case the code is
// returned together with the delivery error.
func (uc *OTPUsecase) Generate(ctx context.Context, phoneNumber string) (string, error) {
	phoneNumber = strings.TrimSpace(phoneNumber)
	if phoneNumber == "" {
		return "", domain.ErrPhoneRequired
	}

	code, err := uc.newCode()
	if err != nil {
		return "", err
	}

	record := &domain.OTPRecord{
		PhoneNumber: phoneNumber,
		Code:        code,
		ExpiresAt:   uc.now().Add(uc.ttl),
	}

	mu := uc.lockFor(phoneNumber)
	mu.Lock()
	err = uc.store.Set(ctx, record)
	mu.Unlock()
	if err != nil {
		uc.metrics.ObserveOTP("generate", "store_error")
		uc.logger.Error("failed to store otp",
			zap.String("phone_number", phoneNumber),
			zap.Error(err))
		return "", fmt.Errorf("store otp: %w", err)
	}

	if _, err := uc.sms.SendOTP(ctx, phoneNumber, code); err != nil {
		uc.metrics.ObserveOTP("generate", "delivery_failed")
		uc.logger.Error("failed to deliver otp",
			zap.String("phone_number", phoneNumber),
			zap.Error(err))
		return code, fmt.Errorf("send otp: %w", err)
	}

	uc.metrics.ObserveOTP("generate", "sent")
	uc.logger.Info("otp generated",
		zap.String("phone_number", phoneNumber),
		zap.Time("expires_at", record.ExpiresAt))
	return code, nil
}

// Verify consumes the pending code for phoneNumber. An expired record is removed and
// reported as domain.ErrOTPExpired; a wrong code leaves the record in place.
func (uc *OTPUsecase) Verify(ctx context.Context, phoneNumber, code string) error {
	phoneNumber = strings.TrimSpace(phoneNumber)
	if phoneNumber == "" {
		return domain.ErrPhoneRequired
	}
	// codes compare as exact strings; padding is a mismatch, not a blank
	if strings.TrimSpace(code) == "" {
		return domain.ErrOTPCodeRequired
	}

	mu := uc.lockFor(phoneNumber)
	mu.Lock()
	defer mu.Unlock()

	err := uc.verifyLocked(ctx, phoneNumber, code)
	uc.metrics.ObserveOTP("verify", verifyResult(err))
	return err
}

func (uc *OTPUsecase) verifyLocked(ctx context.Context, phoneNumber, code string) error {
	record, err := uc.store.Get(ctx, phoneNumber)
	if err != nil {
		return err
	}

	if record.Expired(uc.now()) {
		if err := uc.store.Delete(ctx, phoneNumber); err != nil {
			uc.logger.Warn("failed to delete expired otp",
				zap.String("phone_number", phoneNumber),
				zap.Error(err))
		}
		return domain.ErrOTPExpired
	}

	if record.Code != code {
		return domain.ErrOTPMismatch
	}

	if err := uc.store.Delete(ctx, phoneNumber); err != nil {
		return fmt.Errorf("consume otp: %w", err)
	}
	uc.logger.Info("otp verified", zap.String("phone_number", phoneNumber))
	return nil
}

func verifyResult(err error) string {
	switch {
	case err == nil:
		return "verified"
	case errors.Is(err, domain.ErrOTPNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrOTPExpired):
		return "expired"
	case errors.Is(err, domain.ErrOTPMismatch):
		return "mismatch"
	default:
		return "error"
	}
}
