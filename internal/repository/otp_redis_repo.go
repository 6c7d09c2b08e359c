// internal/repository/otp_redis_repo.go
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"relay-service/config"
	"relay-service/internal/domain"

	"github.com/redis/go-redis/v9"
)

const otpNamespace = "otp"

// RedisOTPStore keeps records as JSON under "otp:<phone>". Keys outlive expiresAt by
// grace so that a late verification still reports an expired code rather than a
// missing one.
type RedisOTPStore struct {
	client redis.UniversalClient
	grace  time.Duration
	now    func() time.Time
}

func NewRedisOTPStore(client redis.UniversalClient, grace time.Duration) *RedisOTPStore {
	return &RedisOTPStore{client: client, grace: grace, now: time.Now}
}

// NewRedisClient builds a single-node client and checks connectivity.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr(), err)
	}
	return rdb, nil
}

func otpKey(phoneNumber string) string {
	return otpNamespace + ":" + phoneNumber
}

type otpPayload struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *RedisOTPStore) Get(ctx context.Context, phoneNumber string) (*domain.OTPRecord, error) {
	raw, err := s.client.Get(ctx, otpKey(phoneNumber)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrOTPNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get otp: %w", err)
	}

	var p otpPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode otp record: %w", err)
	}
	return &domain.OTPRecord{PhoneNumber: phoneNumber, Code: p.Code, ExpiresAt: p.ExpiresAt}, nil
}

func (s *RedisOTPStore) Set(ctx context.Context, record *domain.OTPRecord) error {
	raw, err := json.Marshal(otpPayload{Code: record.Code, ExpiresAt: record.ExpiresAt})
	if err != nil {
		return fmt.Errorf("encode otp record: %w", err)
	}

	ttl := record.ExpiresAt.Sub(s.now()) + s.grace
	if ttl <= 0 {
		ttl = time.Second
	}
	if err := s.client.Set(ctx, otpKey(record.PhoneNumber), raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set otp: %w", err)
	}
	return nil
}

func (s *RedisOTPStore) Delete(ctx context.Context, phoneNumber string) error {
	if err := s.client.Del(ctx, otpKey(phoneNumber)).Err(); err != nil {
		return fmt.Errorf("redis delete otp: %w", err)
	}
	return nil
}

// TTL exposes the remaining key lifetime.
func (s *RedisOTPStore) TTL(ctx context.Context, phoneNumber string) (time.Duration, error) {
	return s.client.TTL(ctx, otpKey(phoneNumber)).Result()
}
