package book_appointment

import (
	"time"

	bookAppointment "github.com/ant0nk/Trimly-BookingService/internal/usecase/book_appointment"
)

// BookAppointmentRequest HTTP request model
// Черновик в запросе не передаётся - сага читает его из хранилища сессии
type BookAppointmentRequest struct {
	Currency string `json:"currency,omitempty"` // Пустая - валюта по умолчанию
}

// AppointmentResponse HTTP response model подтверждённой записи
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	CustomerID      int64   `json:"customerId"`
	BusinessID      int64   `json:"businessId"`
	LocationID      int64   `json:"locationId"`
	VariantID       int64   `json:"variantId"`
	VariantName     string  `json:"variantName"`
	StartTime       string  `json:"startTime"` // ISO 8601
	EndTime         string  `json:"endTime"`   // ISO 8601
	TotalPrice      float64 `json:"totalPrice"`
	Paid            bool    `json:"paid"`
	PaymentIntentID string  `json:"paymentIntentId,omitempty"`
	Status          string  `json:"status"`
	CreatedAt       string  `json:"createdAt"` // ISO 8601
}

// BookingFailedResponse ответ о сбое бронирования
// Redirect подсказывает клиенту, на какой шаг выбора вернуться;
// Refund сообщает судьбу платежа (none - средства не захватывались)
type BookingFailedResponse struct {
	Error    string `json:"error"`
	Reason   string `json:"reason"`
	Redirect string `json:"redirect,omitempty"`
	Refund   string `json:"refund"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.AppointmentID,
		CustomerID:      resp.CustomerID,
		BusinessID:      resp.BusinessID,
		LocationID:      resp.LocationID,
		VariantID:       resp.VariantID,
		VariantName:     resp.VariantName,
		StartTime:       resp.StartTime.Format(time.RFC3339),
		EndTime:         resp.EndTime.Format(time.RFC3339),
		TotalPrice:      resp.TotalPrice,
		Paid:            resp.Paid,
		PaymentIntentID: resp.PaymentIntentID,
		Status:          resp.Status,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
}
