package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ant0nk/Trimly-BookingService/internal/domain"
	appointmentRepo "github.com/ant0nk/Trimly-BookingService/internal/infra/storage/appointment"
	"github.com/ant0nk/Trimly-BookingService/internal/service/appointments/models"
)

type fakeRepo struct {
	appointments map[int64]*domain.Appointment

	cancelledID     int64
	cancelledStatus domain.AppointmentStatus
	cancelledReason string
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	a, ok := r.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return a, nil
}

func (r *fakeRepo) GetByCustomerID(_ context.Context, customerID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	result := []*domain.Appointment{}
	for _, a := range r.appointments {
		if a.CustomerID != customerID {
			continue
		}
		if status != nil && a.Status != *status {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}

func (r *fakeRepo) Cancel(_ context.Context, id int64, status domain.AppointmentStatus, reason string) error {
	if _, ok := r.appointments[id]; !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	r.cancelledID = id
	r.cancelledStatus = status
	r.cancelledReason = reason
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testAppointment(id, customerID int64, status domain.AppointmentStatus) *domain.Appointment {
	start := time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC)
	return &domain.Appointment{
		ID:          id,
		CustomerID:  customerID,
		BusinessID:  1,
		LocationID:  2,
		VariantID:   4,
		VariantName: "Стрижка",
		StartTime:   start,
		EndTime:     start.Add(45 * time.Minute),
		TotalPrice:  60,
		Paid:        true,
		Status:      status,
	}
}

func newService(repo *fakeRepo) *Service {
	return NewService(repo, nopLogger{})
}

func TestGetByID_OwnAppointment(t *testing.T) {
	repo := &fakeRepo{appointments: map[int64]*domain.Appointment{
		10: testAppointment(10, 7, domain.StatusConfirmed),
	}}

	resp, err := newService(repo).GetByID(context.Background(), 10, 7)

	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.ID)
	assert.Equal(t, "confirmed", resp.Status)
}

func TestGetByID_ForeignAppointmentDenied(t *testing.T) {
	repo := &fakeRepo{appointments: map[int64]*domain.Appointment{
		10: testAppointment(10, 7, domain.StatusConfirmed),
	}}

	_, err := newService(repo).GetByID(context.Background(), 10, 8)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := &fakeRepo{appointments: map[int64]*domain.Appointment{}}

	_, err := newService(repo).GetByID(context.Background(), 10, 7)

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestCancel_SetsCustomerCancellation(t *testing.T) {
	repo := &fakeRepo{appointments: map[int64]*domain.Appointment{
		10: testAppointment(10, 7, domain.StatusConfirmed),
	}}

	err := newService(repo).Cancel(context.Background(), 10, &models.CancelAppointmentRequest{
		CustomerID:         7,
		CancellationReason: "не успеваю",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(10), repo.cancelledID)
	assert.Equal(t, domain.StatusCancelledByCustomer, repo.cancelledStatus)
	assert.Equal(t, "не успеваю", repo.cancelledReason)
}

func TestCancel_ForeignAppointmentDenied(t *testing.T) {
	repo := &fakeRepo{appointments: map[int64]*domain.Appointment{
		10: testAppointment(10, 7, domain.StatusConfirmed),
	}}

	err := newService(repo).Cancel(context.Background(), 10, &models.CancelAppointmentRequest{CustomerID: 8})

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Zero(t, repo.cancelledID)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	repo := &fakeRepo{appointments: map[int64]*domain.Appointment{
		10: testAppointment(10, 7, domain.StatusCancelledByCustomer),
	}}

	err := newService(repo).Cancel(context.Background(), 10, &models.CancelAppointmentRequest{CustomerID: 7})

	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestGetCustomerAppointments_FiltersByStatus(t *testing.T) {
	repo := &fakeRepo{appointments: map[int64]*domain.Appointment{
		10: testAppointment(10, 7, domain.StatusConfirmed),
		11: testAppointment(11, 7, domain.StatusCancelledByCustomer),
		12: testAppointment(12, 8, domain.StatusConfirmed),
	}}
	svc := newService(repo)

	all, err := svc.GetCustomerAppointments(context.Background(), &models.GetCustomerAppointmentsRequest{CustomerID: 7})
	require.NoError(t, err)
	assert.Len(t, all.Appointments, 2)

	status := "confirmed"
	confirmed, err := svc.GetCustomerAppointments(context.Background(), &models.GetCustomerAppointmentsRequest{
		CustomerID: 7,
		Status:     &status,
	})
	require.NoError(t, err)
	require.Len(t, confirmed.Appointments, 1)
	assert.Equal(t, int64(10), confirmed.Appointments[0].ID)
}

func TestGetCustomerAppointments_InvalidStatus(t *testing.T) {
	repo := &fakeRepo{appointments: map[int64]*domain.Appointment{}}

	status := "pending"
	_, err := newService(repo).GetCustomerAppointments(context.Background(), &models.GetCustomerAppointmentsRequest{
		CustomerID: 7,
		Status:     &status,
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
