package domain

import (
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusConfirmed           AppointmentStatus = "confirmed"
	StatusCancelledByCustomer AppointmentStatus = "cancelled_by_customer"
	StatusCancelledByBusiness AppointmentStatus = "cancelled_by_business"
)

// Appointment represents a confirmed hair-care appointment in the system
// Создаётся только успешным завершением саги бронирования, после создания
// изменяется только отменой
type Appointment struct {
	ID         int64
	CustomerID int64
	BusinessID int64
	LocationID int64
	VariantID  int64

	StartTime time.Time
	EndTime   time.Time
	Status    AppointmentStatus

	// Denormalized data for history
	VariantName         string
	AddOnIDs            []int64
	CustomizableOptions []string
	TotalPrice          float64
	Paid                bool
	PaymentIntentID     *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment still occupies its time interval
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelledByCustomer &&
		a.Status != StatusCancelledByBusiness
}

// CanBeCancelled returns true if the appointment can be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusConfirmed
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelledByCustomer || a.Status == StatusCancelledByBusiness
}

// Interval возвращает занятый интервал записи для проверок пересечений
func (a *Appointment) Interval() AppointmentInterval {
	return AppointmentInterval{
		BusinessID: a.BusinessID,
		StartTime:  a.StartTime,
		EndTime:    a.EndTime,
		Cancelled:  a.IsCancelled(),
	}
}

// AppointmentInterval represents time already committed by an existing appointment
// Отменённые интервалы не участвуют в проверках занятости
type AppointmentInterval struct {
	BusinessID int64
	StartTime  time.Time
	EndTime    time.Time
	Cancelled  bool
}

// Overlaps проверяет РЕАЛЬНОЕ пересечение с полуоткрытым интервалом [start, end)
// Интервалы, граничащие друг с другом (конец одного равен началу другого),
// пересечением НЕ считаются - записи "встык" допустимы
func (i *AppointmentInterval) Overlaps(start, end time.Time) bool {
	if i.Cancelled {
		return false
	}
	return start.Before(i.EndTime) && end.After(i.StartTime)
}
