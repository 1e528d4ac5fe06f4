package get_draft

import (
	"errors"
	"net/http"

	"github.com/ant0nk/Trimly-BookingService/internal/api/handlers"
	"github.com/ant0nk/Trimly-BookingService/internal/api/middleware"
	draftService "github.com/ant0nk/Trimly-BookingService/internal/service/draft"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgDraftNotFound = "черновик бронирования не найден"
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

// Handle GET /api/v1/draft
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /draft - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.Get(r.Context(), customerID)
	if err != nil {
		switch {
		case errors.Is(err, draftService.ErrDraftNotFound):
			handlers.RespondNotFound(w, msgDraftNotFound)

		default:
			h.logger.Error("GET /draft - Failed to get draft: customer_id=%d, error=%v", customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
