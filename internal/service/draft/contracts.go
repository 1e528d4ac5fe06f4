package draft

import (
	"context"

	"github.com/ant0nk/Trimly-BookingService/internal/domain"
	"github.com/ant0nk/Trimly-BookingService/internal/integrations/directory"
)

// DraftStore интерфейс хранилища черновиков бронирования
type DraftStore interface {
	Get(ctx context.Context, customerID int64) (*domain.BookingDraft, error)
	Put(ctx context.Context, draft *domain.BookingDraft) error
	Delete(ctx context.Context, customerID int64) error
}

// DirectoryClient интерфейс клиента каталога бизнесов
// Цены и названия берутся из каталога, а не из запроса клиента:
// клиентский ввод цен не является доверенным
type DirectoryClient interface {
	GetVariant(ctx context.Context, businessID, variantID int64) (*directory.Variant, error)
	GetAddOns(ctx context.Context, businessID int64, addOnIDs []int64) ([]directory.AddOn, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
