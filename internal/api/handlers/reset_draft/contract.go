package reset_draft

import "context"

type DraftService interface {
	Reset(ctx context.Context, customerID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
