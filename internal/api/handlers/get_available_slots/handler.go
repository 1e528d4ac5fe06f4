package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/ant0nk/Trimly-BookingService/internal/api/handlers"
	"github.com/ant0nk/Trimly-BookingService/internal/domain"
	generateSlots "github.com/ant0nk/Trimly-BookingService/internal/usecase/generate_slots"
)

const (
	msgInvalidBusinessID  = "некорректный ID бизнеса"
	msgInvalidVariantID   = "некорректный ID варианта услуги"
	msgMissingDate        = "дата обязательна"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidGranularity = "некорректный шаг генерации слотов"
	msgBusinessNotFound   = "бизнес не найден"
	msgInvalidDuration    = "некорректная длительность услуги"
	msgInvalidInput       = "некорректные параметры запроса"
)

type Handler struct {
	useCase GenerateSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GenerateSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/available-slots
// Query params: variantId (опционально: 0 или отсутствие - выбор не завершён),
// date (required, YYYY-MM-DD), granularity (опционально, минуты)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем businessId из URL
	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/available-slots - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	// Извлекаем variantId из query параметров
	// Незавершённый выбор услуги - не ошибка: вернётся пустой список слотов
	var variantID int64
	if variantIDStr := r.URL.Query().Get("variantId"); variantIDStr != "" {
		variantID, err = strconv.ParseInt(variantIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /businesses/{id}/available-slots - Invalid variant ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidVariantID)
			return
		}
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /businesses/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/available-slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Извлекаем granularity из query параметров (опционально)
	var granularityMinutes int
	if granularityStr := r.URL.Query().Get("granularity"); granularityStr != "" {
		granularityMinutes, err = strconv.Atoi(granularityStr)
		if err != nil || granularityMinutes < 0 {
			h.logger.Warn("GET /businesses/{id}/available-slots - Invalid granularity: %v", err)
			handlers.RespondBadRequest(w, msgInvalidGranularity)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &generateSlots.Request{
		BusinessID:         businessID,
		VariantID:          variantID,
		Date:               date,
		GranularityMinutes: granularityMinutes,
	})
	if err != nil {
		switch {
		case errors.Is(err, generateSlots.ErrBusinessNotFound):
			h.logger.Warn("GET /businesses/{id}/available-slots - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, generateSlots.ErrInvalidDuration):
			h.logger.Warn("GET /businesses/{id}/available-slots - Invalid duration: business_id=%d, variant_id=%d",
				businessID, variantID)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, generateSlots.ErrInvalidInput):
			h.logger.Warn("GET /businesses/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /businesses/{id}/available-slots - Failed to generate slots: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /businesses/{id}/available-slots - Generated %d slots: business_id=%d, variant_id=%d, date=%s",
		len(result.Slots), businessID, variantID, dateStr)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
