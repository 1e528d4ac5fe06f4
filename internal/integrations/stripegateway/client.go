package stripegateway

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/customer"
	"github.com/stripe/stripe-go/v76/ephemeralkey"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/refund"

	"github.com/ant0nk/Trimly-BookingService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client платёжный шлюз поверх Stripe
// Глобальный ключ stripe.Key устанавливается в main при старте сервиса
type Client struct {
	currency       string
	confirmTimeout time.Duration
	pollInterval   time.Duration
	log            Logger
}

// NewClient создает новый экземпляр платёжного шлюза
func NewClient(currency string, confirmTimeout, pollInterval time.Duration, log Logger) *Client {
	return &Client{
		currency:       currency,
		confirmTimeout: confirmTimeout,
		pollInterval:   pollInterval,
		log:            log,
	}
}

// CreateAuthorization создает тройку payment-intent/client-secret/ephemeral-key
// для одной попытки бронирования. Авторизация одноразовая: каждая новая попытка
// саги запрашивает новую, переиспользование между черновиками запрещено
func (c *Client) CreateAuthorization(ctx context.Context, customerID int64, amount float64, currency string) (*domain.PaymentAuthorization, error) {
	if currency == "" {
		currency = c.currency
	}

	custParams := &stripe.CustomerParams{}
	custParams.Context = ctx
	custParams.AddMetadata("customer_id", strconv.FormatInt(customerID, 10))

	cust, err := customer.New(custParams)
	if err != nil {
		return nil, fmt.Errorf("%w: create customer: %v", ErrAuthorizationFailed, err)
	}

	keyParams := &stripe.EphemeralKeyParams{
		Customer:      stripe.String(cust.ID),
		StripeVersion: stripe.String(stripeAPIVersion),
	}
	keyParams.Context = ctx

	key, err := ephemeralkey.New(keyParams)
	if err != nil {
		return nil, fmt.Errorf("%w: create ephemeral key: %v", ErrAuthorizationFailed, err)
	}

	intentParams := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(toMinorUnits(amount)),
		Currency: stripe.String(currency),
		Customer: stripe.String(cust.ID),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	intentParams.Context = ctx
	intentParams.AddMetadata("customer_id", strconv.FormatInt(customerID, 10))

	intent, err := paymentintent.New(intentParams)
	if err != nil {
		return nil, fmt.Errorf("%w: create payment intent: %v", ErrAuthorizationFailed, err)
	}

	c.log.Info("Payment authorization created: intent=%s, customer=%d, amount=%.2f %s",
		intent.ID, customerID, amount, currency)

	return &domain.PaymentAuthorization{
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		EphemeralKey:    key.Secret,
		CustomerID:      customerID,
	}, nil
}

// PresentAuthorization дожидается исхода предъявления платежа пользователю.
// Подтверждение выполняет мобильный payment sheet вне этого сервиса, поэтому
// здесь опрашивается статус intent до выхода из промежуточных состояний.
// Время ожидания не ограничено пользователем (он может сидеть на экране оплаты),
// но ограничено confirmTimeout
func (c *Client) PresentAuthorization(ctx context.Context, auth *domain.PaymentAuthorization) (Outcome, error) {
	deadline := time.NewTimer(c.confirmTimeout)
	defer deadline.Stop()

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		intent, err := paymentintent.Get(auth.PaymentIntentID, nil)
		if err != nil {
			c.abandonAuthorization(ctx, auth.PaymentIntentID)
			return "", fmt.Errorf("%w: get payment intent %s: %v", ErrInternal, auth.PaymentIntentID, err)
		}

		switch intent.Status {
		case stripe.PaymentIntentStatusSucceeded, stripe.PaymentIntentStatusRequiresCapture:
			c.log.Info("Payment captured: intent=%s", auth.PaymentIntentID)
			return OutcomeCaptured, nil

		case stripe.PaymentIntentStatusCanceled:
			c.log.Info("Payment cancelled by user: intent=%s", auth.PaymentIntentID)
			return OutcomeUserCancelled, nil
		}

		// requires_payment_method / requires_confirmation / requires_action /
		// processing - пользователь ещё на экране оплаты, ждём дальше
		select {
		case <-ctx.Done():
			c.abandonAuthorization(ctx, auth.PaymentIntentID)
			return "", ctx.Err()
		case <-deadline.C:
			c.abandonAuthorization(ctx, auth.PaymentIntentID)
			return "", fmt.Errorf("%w: intent=%s", ErrConfirmationTimeout, auth.PaymentIntentID)
		case <-ticker.C:
		}
	}
}

// abandonAuthorization отменяет payment intent при выходе из ожидания без исхода.
// Подтверждение идёт вне этого сервиса: не отменённый intent пользователь может
// оплатить уже после того, как сага вышла с ошибкой - захваченный платёж остался
// бы без записи и без возврата. Отмена уже захваченного intent не проходит:
// такой случай логируется для ручной сверки
func (c *Client) abandonAuthorization(ctx context.Context, paymentIntentID string) {
	params := &stripe.PaymentIntentCancelParams{}
	params.Context = context.WithoutCancel(ctx)

	if _, err := paymentintent.Cancel(paymentIntentID, params); err != nil {
		c.log.Error("Failed to cancel abandoned payment intent %s, manual reconciliation required: %v",
			paymentIntentID, err)
		return
	}

	c.log.Info("Abandoned payment intent cancelled: intent=%s", paymentIntentID)
}

// Refund выполняет компенсирующий возврат по захваченному платежу
// Ключ идемпотентности защищает от двойного возврата при повторе вызова
func (c *Client) Refund(ctx context.Context, paymentIntentID string) error {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(paymentIntentID),
	}
	params.Context = ctx
	// Один intent - не больше одного возврата, даже если сагу перезапустят
	params.IdempotencyKey = stripe.String("refund-" + paymentIntentID)

	ref, err := refund.New(params)
	if err != nil {
		c.log.Error("Refund failed: intent=%s, error=%v", paymentIntentID, err)
		return fmt.Errorf("%w: intent=%s: %v", ErrRefundFailed, paymentIntentID, err)
	}

	c.log.Info("Refund issued: intent=%s, refund=%s, status=%s", paymentIntentID, ref.ID, ref.Status)
	return nil
}

// toMinorUnits конвертирует сумму в минорные единицы валюты
// Доменные цены хранятся в мажорных единицах; конвертация только здесь
func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
