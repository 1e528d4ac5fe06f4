package domain

// Default slot generation values
const (
	DefaultGranularityMinutes = 5
	MinDurationMinutes        = 1
	MaxDurationMinutes        = 480 // 8 hours
)

// Business validation constants
const (
	MaxAddOnsPerDraft           = 10
	MaxCustomizableOptions      = 20
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов, не занимающих время в расписании
// Используется при выборке занятых интервалов
var InactiveStatuses = []AppointmentStatus{
	StatusCancelledByCustomer,
	StatusCancelledByBusiness,
}
