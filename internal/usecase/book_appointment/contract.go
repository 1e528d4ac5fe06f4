package book_appointment

import (
	"context"
	"time"

	"github.com/ant0nk/Trimly-BookingService/internal/domain"
	"github.com/ant0nk/Trimly-BookingService/internal/integrations/directory"
	"github.com/ant0nk/Trimly-BookingService/internal/integrations/stripegateway"
)

// DraftStore интерфейс хранилища черновиков бронирования
// Черновик принадлежит ровно одной клиентской сессии
type DraftStore interface {
	Get(ctx context.Context, customerID int64) (*domain.BookingDraft, error)
	Delete(ctx context.Context, customerID int64) error
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
	// ListBusyIntervals получает занятые интервалы бизнеса начиная с указанного момента
	// Внутри транзакции блокирует строки (FOR UPDATE)
	ListBusyIntervals(ctx context.Context, businessID int64, from time.Time) ([]domain.AppointmentInterval, error)
}

// PaymentGateway интерфейс платёжного шлюза
type PaymentGateway interface {
	CreateAuthorization(ctx context.Context, customerID int64, amount float64, currency string) (*domain.PaymentAuthorization, error)
	PresentAuthorization(ctx context.Context, auth *domain.PaymentAuthorization) (stripegateway.Outcome, error)
	Refund(ctx context.Context, paymentIntentID string) error
}

// DirectoryClient интерфейс клиента каталога бизнесов
type DirectoryClient interface {
	GetBusiness(ctx context.Context, businessID int64) (*directory.Business, error)
	GetBusinessWithGracefulDegradation(ctx context.Context, businessID int64) (*directory.Business, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
