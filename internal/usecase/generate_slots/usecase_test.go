package generate_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ant0nk/Trimly-BookingService/internal/domain"
	"github.com/ant0nk/Trimly-BookingService/internal/integrations/directory"
)

type fakeAvailabilityRepo struct {
	windows []domain.AvailabilityWindow
	err     error
}

func (r *fakeAvailabilityRepo) ListWindows(_ context.Context, _ int64, _ time.Time) ([]domain.AvailabilityWindow, error) {
	return r.windows, r.err
}

type fakeAppointmentRepo struct {
	busy []domain.AppointmentInterval
	err  error
}

func (r *fakeAppointmentRepo) ListBusyIntervals(_ context.Context, _ int64, _ time.Time) ([]domain.AppointmentInterval, error) {
	return r.busy, r.err
}

type fakeDirectory struct {
	variant *directory.Variant
	err     error
}

func (d *fakeDirectory) GetVariant(_ context.Context, _, _ int64) (*directory.Variant, error) {
	return d.variant, d.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testDate() time.Time {
	return time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
}

func newUseCase(availability *fakeAvailabilityRepo, appointments *fakeAppointmentRepo, dir *fakeDirectory) *UseCase {
	return NewUseCase(availability, appointments, dir, nopLogger{})
}

func TestExecute_ReturnsSlots(t *testing.T) {
	at := func(hour, min int) time.Time {
		return time.Date(2026, 3, 16, hour, min, 0, 0, time.UTC)
	}

	uc := newUseCase(
		&fakeAvailabilityRepo{windows: []domain.AvailabilityWindow{
			{BusinessID: 1, From: at(10, 0), To: at(12, 0)},
		}},
		&fakeAppointmentRepo{busy: []domain.AppointmentInterval{
			{BusinessID: 1, StartTime: at(10, 0), EndTime: at(11, 0)},
		}},
		&fakeDirectory{variant: &directory.Variant{ID: 4, DurationMinutes: 60}},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID:         1,
		VariantID:          4,
		Date:               testDate(),
		GranularityMinutes: 30,
	})

	require.NoError(t, err)
	assert.Equal(t, 60, resp.DurationMinutes)
	// Единственный свободный часовой слот - встык за существующей записью
	assert.Equal(t, []time.Time{at(11, 0)}, resp.Slots)
}

func TestExecute_IncompleteSelectionReturnsEmpty(t *testing.T) {
	uc := newUseCase(&fakeAvailabilityRepo{}, &fakeAppointmentRepo{}, &fakeDirectory{})

	for _, req := range []*Request{
		{BusinessID: 0, VariantID: 4, Date: testDate()},
		{BusinessID: 1, VariantID: 0, Date: testDate()},
	} {
		resp, err := uc.Execute(context.Background(), req)

		require.NoError(t, err)
		assert.Empty(t, resp.Slots)
		assert.Zero(t, resp.DurationMinutes)
	}
}

func TestExecute_VariantNotFoundReturnsEmpty(t *testing.T) {
	uc := newUseCase(
		&fakeAvailabilityRepo{},
		&fakeAppointmentRepo{},
		&fakeDirectory{err: directory.ErrVariantNotFound},
	)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, VariantID: 4, Date: testDate()})

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_VariantWithoutDurationReturnsEmpty(t *testing.T) {
	uc := newUseCase(
		&fakeAvailabilityRepo{},
		&fakeAppointmentRepo{},
		&fakeDirectory{variant: &directory.Variant{ID: 4, DurationMinutes: 0}},
	)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, VariantID: 4, Date: testDate()})

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_DirectoryFailureIsInternal(t *testing.T) {
	uc := newUseCase(
		&fakeAvailabilityRepo{},
		&fakeAppointmentRepo{},
		&fakeDirectory{err: errors.New("connection refused")},
	)

	_, err := uc.Execute(context.Background(), &Request{BusinessID: 1, VariantID: 4, Date: testDate()})

	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_NegativeIDsRejected(t *testing.T) {
	uc := newUseCase(&fakeAvailabilityRepo{}, &fakeAppointmentRepo{}, &fakeDirectory{})

	_, err := uc.Execute(context.Background(), &Request{BusinessID: -1, VariantID: 4, Date: testDate()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{BusinessID: 1, VariantID: -4, Date: testDate()})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
