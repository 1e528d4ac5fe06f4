package generate_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ant0nk/Trimly-BookingService/internal/domain"
	directoryClient "github.com/ant0nk/Trimly-BookingService/internal/integrations/directory"
)

// UseCase use case для получения доступных слотов для записи
type UseCase struct {
	availabilityRepo AvailabilityRepository
	appointmentRepo  AppointmentRepository
	directory        DirectoryClient
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	appointmentRepo AppointmentRepository,
	directory DirectoryClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		availabilityRepo: availabilityRepo,
		appointmentRepo:  appointmentRepo,
		directory:        directory,
		logger:           logger,
	}
}

// Execute выполняет use case получения доступных слотов
// Результат носит рекомендательный характер: авторитетная проверка занятости
// выполняется сагой бронирования в момент коммита
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GenerateSlots: business=%d, variant=%d, date=%s",
		req.BusinessID, req.VariantID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GenerateSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Неполный выбор - пустой ответ, не ошибка
	if isSelectionIncomplete(req) {
		uc.logger.Info("GenerateSlots: selection incomplete (business=%d, variant=%d), returning no candidates",
			req.BusinessID, req.VariantID)
		return emptyResponse(req, 0), nil
	}

	// 3. Получаем вариант услуги (длительность и цена живут в каталоге)
	variant, err := uc.directory.GetVariant(ctx, req.BusinessID, req.VariantID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrBusinessNotFound) || errors.Is(err, directoryClient.ErrVariantNotFound) {
			uc.logger.Info("GenerateSlots: variant id=%d not found for business id=%d, returning no candidates",
				req.VariantID, req.BusinessID)
			return emptyResponse(req, 0), nil
		}
		uc.logger.Error("GenerateSlots: failed to get variant id=%d: %v", req.VariantID, err)
		return nil, fmt.Errorf("%w: failed to get variant: %v", ErrInternal, err)
	}

	// Вариант без длительности - выбор ещё не завершён
	if variant.DurationMinutes == 0 {
		uc.logger.Info("GenerateSlots: variant id=%d has no duration, returning no candidates", req.VariantID)
		return emptyResponse(req, 0), nil
	}

	// 4. Получаем окна доступности на дату
	windows, err := uc.availabilityRepo.ListWindows(ctx, req.BusinessID, req.Date)
	if err != nil {
		uc.logger.Error("GenerateSlots: failed to list windows: %v", err)
		return nil, fmt.Errorf("%w: failed to list availability windows: %v", ErrInternal, err)
	}

	// 5. Получаем занятые интервалы начиная с начала суток
	dayStart := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, req.Date.Location())
	busy, err := uc.appointmentRepo.ListBusyIntervals(ctx, req.BusinessID, dayStart)
	if err != nil {
		uc.logger.Error("GenerateSlots: failed to list busy intervals: %v", err)
		return nil, fmt.Errorf("%w: failed to list busy intervals: %v", ErrInternal, err)
	}

	// 6. Генерируем слоты
	slots, err := GenerateSlots(windows, busy, req.Date, variant.DurationMinutes, req.GranularityMinutes)
	if err != nil {
		uc.logger.Error("GenerateSlots: failed to generate slots: %v", err)
		return nil, err
	}

	uc.logger.Info("GenerateSlots: generated %d slots for business=%d, variant=%d, date=%s",
		len(slots), req.BusinessID, req.VariantID, req.Date.Format(domain.DateFormat))

	return &Response{
		BusinessID:      req.BusinessID,
		VariantID:       req.VariantID,
		Date:            req.Date,
		DurationMinutes: variant.DurationMinutes,
		Slots:           slots,
	}, nil
}

// emptyResponse формирует ответ без кандидатов
func emptyResponse(req *Request, durationMinutes int) *Response {
	return &Response{
		BusinessID:      req.BusinessID,
		VariantID:       req.VariantID,
		Date:            req.Date,
		DurationMinutes: durationMinutes,
		Slots:           []time.Time{},
	}
}
