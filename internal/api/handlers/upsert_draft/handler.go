package upsert_draft

import (
	"errors"
	"net/http"
	"time"

	"github.com/ant0nk/Trimly-BookingService/internal/api/handlers"
	"github.com/ant0nk/Trimly-BookingService/internal/api/middleware"
	draftService "github.com/ant0nk/Trimly-BookingService/internal/service/draft"
	"github.com/ant0nk/Trimly-BookingService/internal/service/draft/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается ISO 8601"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgVariantNotFound    = "вариант услуги не найден"
	msgAddOnNotFound      = "добавка не найдена"
	msgInvalidInput       = "некорректные данные черновика"
)

type Handler struct {
	service DraftService
	logger  Logger
}

func NewHandler(service DraftService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// UpsertDraftRequest HTTP request model
// Цены клиент не передаёт - сервис подтягивает их из каталога
type UpsertDraftRequest struct {
	BusinessID          int64    `json:"businessId"`
	LocationID          int64    `json:"locationId"`
	ServiceID           int64    `json:"serviceId"`
	VariantID           int64    `json:"variantId"`
	AddOnIDs            []int64  `json:"addOnIds,omitempty"`
	CustomizableOptions []string `json:"customizableOptions,omitempty"`
	StartTime           *string  `json:"startTime,omitempty"` // ISO 8601
	EndTime             *string  `json:"endTime,omitempty"`   // ISO 8601
}

// Handle PUT /api/v1/draft
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /draft - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpsertDraftRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /draft - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq := &models.UpsertDraftRequest{
		CustomerID:          customerID,
		BusinessID:          req.BusinessID,
		LocationID:          req.LocationID,
		ServiceID:           req.ServiceID,
		VariantID:           req.VariantID,
		AddOnIDs:            req.AddOnIDs,
		CustomizableOptions: req.CustomizableOptions,
	}

	if req.StartTime != nil {
		startTime, err := time.Parse(time.RFC3339, *req.StartTime)
		if err != nil {
			h.logger.Warn("PUT /draft - Invalid start time: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTime)
			return
		}
		serviceReq.StartTime = &startTime
	}
	if req.EndTime != nil {
		endTime, err := time.Parse(time.RFC3339, *req.EndTime)
		if err != nil {
			h.logger.Warn("PUT /draft - Invalid end time: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTime)
			return
		}
		serviceReq.EndTime = &endTime
	}

	result, err := h.service.Upsert(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, draftService.ErrVariantNotFound):
			h.logger.Warn("PUT /draft - Variant not found: customer_id=%d, variant_id=%d", customerID, req.VariantID)
			handlers.RespondNotFound(w, msgVariantNotFound)

		case errors.Is(err, draftService.ErrAddOnNotFound):
			h.logger.Warn("PUT /draft - Add-on not found: customer_id=%d, add_on_ids=%v", customerID, req.AddOnIDs)
			handlers.RespondNotFound(w, msgAddOnNotFound)

		case errors.Is(err, draftService.ErrInvalidInput):
			h.logger.Warn("PUT /draft - Invalid input: customer_id=%d, error=%v", customerID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /draft - Failed to upsert draft: customer_id=%d, error=%v", customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /draft - Draft saved: customer_id=%d, total=%.2f", customerID, result.TotalPrice)
	handlers.RespondJSON(w, http.StatusOK, result)
}
