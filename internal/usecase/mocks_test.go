package usecase

import (
	"context"
	"time"

	"relay-service/internal/provider"

	"github.com/stretchr/testify/mock"
)

type mockEmailSender struct {
	mock.Mock
	delay time.Duration
}

func (m *mockEmailSender) SendEmail(ctx context.Context, msg *provider.EmailMessage) (*provider.Delivery, error) {
	args := m.Called(ctx, msg)
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	d, _ := args.Get(0).(*provider.Delivery)
	return d, args.Error(1)
}

type mockWhatsAppSender struct {
	mock.Mock
	delay time.Duration
}

func (m *mockWhatsAppSender) SendWhatsApp(ctx context.Context, msg *provider.WhatsAppTemplate) (*provider.Delivery, error) {
	args := m.Called(ctx, msg)
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	d, _ := args.Get(0).(*provider.Delivery)
	return d, args.Error(1)
}

type mockSMSSender struct {
	mock.Mock
}

func (m *mockSMSSender) SendOTP(ctx context.Context, phoneNumber, code string) (*provider.Delivery, error) {
	args := m.Called(ctx, phoneNumber, code)
	d, _ := args.Get(0).(*provider.Delivery)
	return d, args.Error(1)
}

type mockOrderProvider struct {
	mock.Mock
}

func (m *mockOrderProvider) CreateOrder(ctx context.Context, req *provider.OrderRequest) (map[string]interface{}, error) {
	args := m.Called(ctx, req)
	order, _ := args.Get(0).(map[string]interface{})
	return order, args.Error(1)
}

func (m *mockOrderProvider) KeyID() string {
	return "rzp_test_key"
}
