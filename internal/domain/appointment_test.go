package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAppointmentInterval_Overlaps(t *testing.T) {
	at := func(hour, min int) time.Time {
		return time.Date(2026, 3, 16, hour, min, 0, 0, time.UTC)
	}

	// Запись 11:20-11:40
	interval := AppointmentInterval{
		BusinessID: 1,
		StartTime:  at(11, 20),
		EndTime:    at(11, 40),
	}

	tests := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"partial overlap from left", at(11, 0), at(11, 30), true},
		{"partial overlap from right", at(11, 30), at(12, 0), true},
		{"candidate inside interval", at(11, 25), at(11, 35), true},
		{"interval inside candidate", at(11, 0), at(12, 0), true},
		{"back-to-back before", at(11, 0), at(11, 20), false},
		{"back-to-back after", at(11, 40), at(12, 0), false},
		{"fully before", at(10, 0), at(10, 30), false},
		{"fully after", at(12, 0), at(12, 30), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, interval.Overlaps(tt.start, tt.end))
		})
	}
}

func TestAppointmentInterval_CancelledNeverOverlaps(t *testing.T) {
	start := time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC)
	interval := AppointmentInterval{
		BusinessID: 1,
		StartTime:  start,
		EndTime:    start.Add(time.Hour),
		Cancelled:  true,
	}

	assert.False(t, interval.Overlaps(start, start.Add(time.Hour)))
}

func TestAppointment_CanBeCancelled(t *testing.T) {
	a := &Appointment{Status: StatusConfirmed}
	assert.True(t, a.CanBeCancelled())

	a.Status = StatusCancelledByCustomer
	assert.False(t, a.CanBeCancelled())

	a.Status = StatusCancelledByBusiness
	assert.False(t, a.CanBeCancelled())
}

func TestAppointment_Interval_CarriesCancellation(t *testing.T) {
	start := time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC)
	a := &Appointment{
		BusinessID: 1,
		StartTime:  start,
		EndTime:    start.Add(time.Hour),
		Status:     StatusCancelledByCustomer,
	}

	assert.True(t, a.Interval().Cancelled)
}
