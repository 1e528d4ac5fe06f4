package generate_slots

import (
	"context"
	"time"

	"github.com/ant0nk/Trimly-BookingService/internal/domain"
	"github.com/ant0nk/Trimly-BookingService/internal/integrations/directory"
)

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	// ListWindows получает заявленные окна доступности бизнеса на конкретную дату
	ListWindows(ctx context.Context, businessID int64, date time.Time) ([]domain.AvailabilityWindow, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// ListBusyIntervals получает занятые интервалы бизнеса начиная с указанного момента
	// Отменённые записи исключены
	ListBusyIntervals(ctx context.Context, businessID int64, from time.Time) ([]domain.AppointmentInterval, error)
}

// DirectoryClient интерфейс клиента каталога бизнесов
type DirectoryClient interface {
	GetVariant(ctx context.Context, businessID, variantID int64) (*directory.Variant, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
