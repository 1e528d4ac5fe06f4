package get_draft

import (
	"context"

	"github.com/ant0nk/Trimly-BookingService/internal/service/draft/models"
)

type DraftService interface {
	Get(ctx context.Context, customerID int64) (*models.DraftResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
