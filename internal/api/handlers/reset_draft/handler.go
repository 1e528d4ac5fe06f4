package reset_draft

import (
	"net/http"

	"github.com/ant0nk/Trimly-BookingService/internal/api/handlers"
	"github.com/ant0nk/Trimly-BookingService/internal/api/middleware"
)

const msgMissingUserID = "отсутствует ID пользователя"

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

// Handle DELETE /api/v1/draft
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /draft - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.Reset(r.Context(), customerID); err != nil {
		h.logger.Error("DELETE /draft - Failed to reset draft: customer_id=%d, error=%v", customerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /draft - Draft reset: customer_id=%d", customerID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
