package models

import (
	"errors"
	"time"

	"github.com/ant0nk/Trimly-BookingService/internal/domain"
	"github.com/ant0nk/Trimly-BookingService/pkg/ptr"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// CancelAppointmentRequest запрос на отмену записи
type CancelAppointmentRequest struct {
	CustomerID         int64  `json:"customerId"`
	CancellationReason string `json:"cancellationReason"`
}

// GetCustomerAppointmentsRequest запрос на получение записей клиента
type GetCustomerAppointmentsRequest struct {
	CustomerID int64   `json:"customerId"`
	Status     *string `json:"status,omitempty"`
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID         int64  `json:"id"`
	CustomerID int64  `json:"customerId"`
	BusinessID int64  `json:"businessId"`
	LocationID int64  `json:"locationId"`
	VariantID  int64  `json:"variantId"`
	StartTime  string `json:"startTime"` // ISO 8601
	EndTime    string `json:"endTime"`   // ISO 8601
	Status     string `json:"status"`

	// Денормализованные данные
	VariantName         string   `json:"variantName"`
	AddOnIDs            []int64  `json:"addOnIds,omitempty"`
	CustomizableOptions []string `json:"customizableOptions,omitempty"`
	TotalPrice          float64  `json:"totalPrice"`
	Paid                bool     `json:"paid"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:                  a.ID,
		CustomerID:          a.CustomerID,
		BusinessID:          a.BusinessID,
		LocationID:          a.LocationID,
		VariantID:           a.VariantID,
		StartTime:           a.StartTime.Format(time.RFC3339),
		EndTime:             a.EndTime.Format(time.RFC3339),
		Status:              string(a.Status),
		VariantName:         a.VariantName,
		AddOnIDs:            a.AddOnIDs,
		CustomizableOptions: a.CustomizableOptions,
		TotalPrice:          a.TotalPrice,
		Paid:                a.Paid,
		CancellationReason:  a.CancellationReason,
		CreatedAt:           a.CreatedAt,
		UpdatedAt:           a.UpdatedAt,
	}

	if a.CancelledAt != nil {
		resp.CancelledAt = ptr.To(a.CancelledAt.Format(time.RFC3339))
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	result := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, a := range appointments {
		if resp := FromDomainAppointment(a); resp != nil {
			result.Appointments = append(result.Appointments, *resp)
		}
	}

	return result
}

// ToDomainAppointmentStatus конвертирует строку в domain статус
func ToDomainAppointmentStatus(status string) (domain.AppointmentStatus, error) {
	switch domain.AppointmentStatus(status) {
	case domain.StatusConfirmed:
		return domain.StatusConfirmed, nil
	case domain.StatusCancelledByCustomer:
		return domain.StatusCancelledByCustomer, nil
	case domain.StatusCancelledByBusiness:
		return domain.StatusCancelledByBusiness, nil
	default:
		return "", ErrInvalidStatus
	}
}
