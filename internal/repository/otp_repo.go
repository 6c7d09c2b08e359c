// internal/repository/otp_repo.go
package repository

import (
	"context"
	"sync"

	"relay-service/internal/domain"
)

// OTPStore holds at most one pending code per phone number. Set replaces any prior
// record as a whole; Get returns domain.ErrOTPNotFound when nothing is stored.
type OTPStore interface {
	Get(ctx context.Context, phoneNumber string) (*domain.OTPRecord, error)
	Set(ctx context.Context, record *domain.OTPRecord) error
	Delete(ctx context.Context, phoneNumber string) error
}

// MemoryOTPStore keeps records for the lifetime of the process. Expired entries are
// only removed when a verification observes them.
type MemoryOTPStore struct {
	mu      sync.RWMutex
	records map[string]domain.OTPRecord
}

func NewMemoryOTPStore() *MemoryOTPStore {
	return &MemoryOTPStore{records: make(map[string]domain.OTPRecord)}
}

func (s *MemoryOTPStore) Get(_ context.Context, phoneNumber string) (*domain.OTPRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[phoneNumber]
	if !ok {
		return nil, domain.ErrOTPNotFound
	}
	return &rec, nil
}

func (s *MemoryOTPStore) Set(_ context.Context, record *domain.OTPRecord) error {
	s.mu.Lock()
	s.records[record.PhoneNumber] = *record
	s.mu.Unlock()
	return nil
}

func (s *MemoryOTPStore) Delete(_ context.Context, phoneNumber string) error {
	s.mu.Lock()
	delete(s.records, phoneNumber)
	s.mu.Unlock()
	return nil
}

// Len reports the number of stored records, expired ones included.
func (s *MemoryOTPStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
