package get_available_slots

import (
	"context"

	generateSlots "github.com/ant0nk/Trimly-BookingService/internal/usecase/generate_slots"
)

type GenerateSlotsUseCase interface {
	Execute(ctx context.Context, req *generateSlots.Request) (*generateSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
