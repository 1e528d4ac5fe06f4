package get_customer_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ant0nk/Trimly-BookingService/internal/api/handlers"
	"github.com/ant0nk/Trimly-BookingService/internal/api/middleware"
	"github.com/ant0nk/Trimly-BookingService/internal/service/appointments"
	"github.com/ant0nk/Trimly-BookingService/internal/service/appointments/models"
)

const (
	msgInvalidCustomerID = "некорректный ID клиента"
	msgInvalidStatus     = "некорректный статус записи"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgForbidden         = "доступ запрещен"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/customers/{customerId}/appointments
// Query params: status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	customerID, err := strconv.ParseInt(vars["customerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /customers/{id}/appointments - Invalid customer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCustomerID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /customers/{id}/appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Клиент видит только свою историю
	if userID != customerID {
		h.logger.Warn("GET /customers/{id}/appointments - Access denied: customer_id=%d, user_id=%d",
			customerID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	req := &models.GetCustomerAppointmentsRequest{CustomerID: customerID}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.GetCustomerAppointments(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /customers/{id}/appointments - Invalid status: customer_id=%d", customerID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /customers/{id}/appointments - Failed to get appointments: customer_id=%d, error=%v",
				customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /customers/{id}/appointments - Retrieved %d appointments: customer_id=%d",
		len(result.Appointments), customerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
