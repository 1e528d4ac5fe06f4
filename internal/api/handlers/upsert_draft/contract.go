package upsert_draft

import (
	"context"

	"github.com/ant0nk/Trimly-BookingService/internal/service/draft/models"
)

type DraftService interface {
	Upsert(ctx context.Context, req *models.UpsertDraftRequest) (*models.DraftResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
