package book_appointment

import (
	"errors"
	"io"
	"net/http"

	"github.com/ant0nk/Trimly-BookingService/internal/api/handlers"
	"github.com/ant0nk/Trimly-BookingService/internal/api/middleware"
	bookAppointment "github.com/ant0nk/Trimly-BookingService/internal/usecase/book_appointment"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgDraftNotFound       = "черновик бронирования не найден"
	msgIncompleteDraft     = "черновик бронирования заполнен не полностью"
	msgAuthorizationFailed = "не удалось авторизовать платёж"
	msgUserCancelled       = "оплата отменена пользователем"
	msgBookingFailed       = "бронирование не выполнено"
)

type Handler struct {
	useCase BookAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase BookAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Тело опционально: без него используется валюта по умолчанию
	var req BookAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &bookAppointment.Request{
		CustomerID: customerID,
		Currency:   req.Currency,
	})
	if err != nil {
		h.respondError(w, customerID, err)
		return
	}

	h.logger.Info("POST /appointments - Appointment booked: appointment_id=%d, customer_id=%d, saga=%s",
		result.AppointmentID, customerID, result.RunID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

func (h *Handler) respondError(w http.ResponseWriter, customerID int64, err error) {
	var bookingFailed *bookAppointment.BookingFailedError
	var precondition *bookAppointment.PreconditionError

	switch {
	case errors.Is(err, bookAppointment.ErrDraftNotFound):
		h.logger.Warn("POST /appointments - Draft not found: customer_id=%d", customerID)
		handlers.RespondNotFound(w, msgDraftNotFound)

	case errors.Is(err, bookAppointment.ErrIncompleteDraft):
		h.logger.Warn("POST /appointments - Incomplete draft: customer_id=%d, error=%v", customerID, err)
		handlers.RespondBadRequest(w, msgIncompleteDraft)

	case errors.Is(err, bookAppointment.ErrAuthorizationFailed):
		h.logger.Warn("POST /appointments - Authorization failed: customer_id=%d, error=%v", customerID, err)
		handlers.RespondError(w, http.StatusPaymentRequired, msgAuthorizationFailed)

	case errors.Is(err, bookAppointment.ErrUserCancelled):
		h.logger.Info("POST /appointments - Cancelled by user: customer_id=%d", customerID)
		handlers.RespondConflict(w, msgUserCancelled)

	case errors.As(err, &precondition):
		// Предусловие нарушено до предъявления платежа - средства не двигались
		h.logger.Warn("POST /appointments - Precondition failed: customer_id=%d, reason=%s",
			customerID, precondition.Reason)
		handlers.RespondJSON(w, http.StatusConflict, BookingFailedResponse{
			Error:    msgBookingFailed,
			Reason:   string(precondition.Reason),
			Redirect: string(precondition.Reason.Redirect()),
			Refund:   "none",
		})

	case errors.As(err, &bookingFailed):
		// Сбой после захвата платежа - в ответе судьба возврата
		h.logger.Warn("POST /appointments - Booking failed after capture: customer_id=%d, reason=%s, refund=%s",
			customerID, bookingFailed.Reason, bookingFailed.Refund)
		handlers.RespondJSON(w, http.StatusConflict, BookingFailedResponse{
			Error:    msgBookingFailed,
			Reason:   string(bookingFailed.Reason),
			Redirect: string(bookingFailed.Hint),
			Refund:   string(bookingFailed.Refund),
		})

	default:
		h.logger.Error("POST /appointments - Failed to book appointment: customer_id=%d, error=%v", customerID, err)
		handlers.RespondInternalError(w)
	}
}
