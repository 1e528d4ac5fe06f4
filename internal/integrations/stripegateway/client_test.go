package stripegateway

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/form"

	"github.com/ant0nk/Trimly-BookingService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// fakePaymentBackend подменяет транспорт stripe-go: отдаёт заданный статус
// intent на Get и записывает вызовы Cancel
type fakePaymentBackend struct {
	mu        sync.Mutex
	status    stripe.PaymentIntentStatus
	getErr    error
	cancelled []string
}

func (b *fakePaymentBackend) Call(_, path, _ string, _ stripe.ParamsContainer, v stripe.LastResponseSetter) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if strings.HasSuffix(path, "/cancel") {
		id := strings.TrimSuffix(strings.TrimPrefix(path, "/v1/payment_intents/"), "/cancel")
		b.cancelled = append(b.cancelled, id)
		b.status = stripe.PaymentIntentStatusCanceled
		if pi, ok := v.(*stripe.PaymentIntent); ok {
			pi.ID = id
			pi.Status = b.status
		}
		return nil
	}

	if b.getErr != nil {
		return b.getErr
	}
	if pi, ok := v.(*stripe.PaymentIntent); ok {
		pi.ID = strings.TrimPrefix(path, "/v1/payment_intents/")
		pi.Status = b.status
	}
	return nil
}

func (b *fakePaymentBackend) CallStreaming(_, _, _ string, _ stripe.ParamsContainer, _ stripe.StreamingLastResponseSetter) error {
	return nil
}

func (b *fakePaymentBackend) CallRaw(_, _, _ string, _ *form.Values, _ *stripe.Params, _ stripe.LastResponseSetter) error {
	return nil
}

func (b *fakePaymentBackend) CallMultipart(_, _, _, _ string, _ *bytes.Buffer, _ *stripe.Params, _ stripe.LastResponseSetter) error {
	return nil
}

func (b *fakePaymentBackend) SetMaxNetworkRetries(int64) {}

func (b *fakePaymentBackend) cancelledIntents() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string{}, b.cancelled...)
}

func newPresentEnv(t *testing.T, status stripe.PaymentIntentStatus) (*Client, *fakePaymentBackend, *domain.PaymentAuthorization) {
	t.Helper()

	backend := &fakePaymentBackend{status: status}
	stripe.SetBackend(stripe.APIBackend, backend)

	client := NewClient("usd", 40*time.Millisecond, 10*time.Millisecond, nopLogger{})
	auth := &domain.PaymentAuthorization{PaymentIntentID: "pi_wait_1", CustomerID: 7}
	return client, backend, auth
}

func TestPresentAuthorization_Captured(t *testing.T) {
	client, backend, auth := newPresentEnv(t, stripe.PaymentIntentStatusSucceeded)

	outcome, err := client.PresentAuthorization(context.Background(), auth)

	require.NoError(t, err)
	assert.Equal(t, OutcomeCaptured, outcome)
	assert.Empty(t, backend.cancelledIntents())
}

func TestPresentAuthorization_UserCancelled(t *testing.T) {
	client, backend, auth := newPresentEnv(t, stripe.PaymentIntentStatusCanceled)

	outcome, err := client.PresentAuthorization(context.Background(), auth)

	require.NoError(t, err)
	assert.Equal(t, OutcomeUserCancelled, outcome)
	// Intent уже отменён пользователем, повторная отмена не нужна
	assert.Empty(t, backend.cancelledIntents())
}

func TestPresentAuthorization_ConfirmTimeoutCancelsIntent(t *testing.T) {
	// Пользователь так и не завершил оплату: открытый intent нельзя
	// оставлять - он может быть оплачен уже после выхода из саги
	client, backend, auth := newPresentEnv(t, stripe.PaymentIntentStatusRequiresConfirmation)

	_, err := client.PresentAuthorization(context.Background(), auth)

	assert.ErrorIs(t, err, ErrConfirmationTimeout)
	assert.Equal(t, []string{"pi_wait_1"}, backend.cancelledIntents())
}

func TestPresentAuthorization_ContextCancelledCancelsIntent(t *testing.T) {
	client, backend, auth := newPresentEnv(t, stripe.PaymentIntentStatusRequiresConfirmation)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.PresentAuthorization(ctx, auth)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"pi_wait_1"}, backend.cancelledIntents())
}

func TestPresentAuthorization_PollErrorCancelsIntent(t *testing.T) {
	client, backend, auth := newPresentEnv(t, stripe.PaymentIntentStatusRequiresConfirmation)
	backend.getErr = errors.New("stripe unavailable")

	_, err := client.PresentAuthorization(context.Background(), auth)

	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, []string{"pi_wait_1"}, backend.cancelledIntents())
}
