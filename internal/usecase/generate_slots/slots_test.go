package generate_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ant0nk/Trimly-BookingService/internal/domain"
)

func date(hour, min int) time.Time {
	return time.Date(2026, 3, 16, hour, min, 0, 0, time.UTC)
}

func window(fromHour, fromMin, toHour, toMin int) domain.AvailabilityWindow {
	return domain.AvailabilityWindow{
		BusinessID: 1,
		From:       date(fromHour, fromMin),
		To:         date(toHour, toMin),
	}
}

func busyInterval(fromHour, fromMin, toHour, toMin int) domain.AppointmentInterval {
	return domain.AppointmentInterval{
		BusinessID: 1,
		StartTime:  date(fromHour, fromMin),
		EndTime:    date(toHour, toMin),
	}
}

func TestGenerateSlots_ServiceExactlyFitsWindow(t *testing.T) {
	// Окно 10:00-11:00, услуга 60 минут: единственный слот 10:00
	windows := []domain.AvailabilityWindow{window(10, 0, 11, 0)}

	slots, err := GenerateSlots(windows, nil, date(0, 0), 60, 15)

	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, date(10, 0), slots[0])
}

func TestGenerateSlots_ServiceDoesNotFitWindow(t *testing.T) {
	// Окно 10:00-11:00, услуга 61 минута: слотов нет
	windows := []domain.AvailabilityWindow{window(10, 0, 11, 0)}

	slots, err := GenerateSlots(windows, nil, date(0, 0), 61, 15)

	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlots_BackToBackAllowed(t *testing.T) {
	// Запись 10:00-10:30: слот ровно в 10:30 допустим (встык),
	// а все кандидаты, пересекающие запись, отбрасываются
	windows := []domain.AvailabilityWindow{window(10, 0, 11, 30)}
	busy := []domain.AppointmentInterval{busyInterval(10, 0, 10, 30)}

	slots, err := GenerateSlots(windows, busy, date(0, 0), 30, 15)

	require.NoError(t, err)
	assert.Equal(t, []time.Time{date(10, 30), date(10, 45), date(11, 0)}, slots)
}

func TestGenerateSlots_BusyIntervalSplitsDay(t *testing.T) {
	// Рабочий день 09:00-17:00, услуга 60 минут, шаг 60, занято 13:00-13:30:
	// выпадают кандидаты 12:30-13:30 не бывает (шаг 60), а 13:00 занят
	windows := []domain.AvailabilityWindow{window(9, 0, 17, 0)}
	busy := []domain.AppointmentInterval{busyInterval(13, 0, 13, 30)}

	slots, err := GenerateSlots(windows, busy, date(0, 0), 60, 60)

	require.NoError(t, err)
	assert.Equal(t, []time.Time{
		date(9, 0), date(10, 0), date(11, 0), date(12, 0),
		date(14, 0), date(15, 0), date(16, 0),
	}, slots)
}

func TestGenerateSlots_CancelledIntervalDoesNotBlock(t *testing.T) {
	windows := []domain.AvailabilityWindow{window(10, 0, 11, 0)}
	busy := []domain.AppointmentInterval{{
		BusinessID: 1,
		StartTime:  date(10, 0),
		EndTime:    date(11, 0),
		Cancelled:  true,
	}}

	slots, err := GenerateSlots(windows, busy, date(0, 0), 60, 15)

	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, date(10, 0), slots[0])
}

func TestGenerateSlots_OverlappingWindowsDeduplicated(t *testing.T) {
	// Пересекающиеся окна не порождают дубликатов, результат отсортирован
	windows := []domain.AvailabilityWindow{
		window(10, 30, 12, 0),
		window(10, 0, 11, 30),
	}

	slots, err := GenerateSlots(windows, nil, date(0, 0), 30, 30)

	require.NoError(t, err)
	assert.Equal(t, []time.Time{
		date(10, 0), date(10, 30), date(11, 0), date(11, 30),
	}, slots)
}

func TestGenerateSlots_WindowOnAnotherDateIgnored(t *testing.T) {
	otherDay := domain.AvailabilityWindow{
		BusinessID: 1,
		From:       time.Date(2026, 3, 17, 10, 0, 0, 0, time.UTC),
		To:         time.Date(2026, 3, 17, 12, 0, 0, 0, time.UTC),
	}

	slots, err := GenerateSlots([]domain.AvailabilityWindow{otherDay}, nil, date(0, 0), 30, 15)

	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlots_NoWindowsIsNotAnError(t *testing.T) {
	slots, err := GenerateSlots(nil, nil, date(0, 0), 30, 15)

	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlots_InvalidDuration(t *testing.T) {
	windows := []domain.AvailabilityWindow{window(10, 0, 11, 0)}

	_, err := GenerateSlots(windows, nil, date(0, 0), 0, 15)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = GenerateSlots(windows, nil, date(0, 0), -30, 15)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestGenerateSlots_DefaultGranularity(t *testing.T) {
	// Нулевой шаг заменяется шагом по умолчанию
	windows := []domain.AvailabilityWindow{window(10, 0, 10, 30)}

	slots, err := GenerateSlots(windows, nil, date(0, 0), 20, 0)

	require.NoError(t, err)
	// 10:00..10:10 c шагом 5 минут
	assert.Equal(t, []time.Time{
		date(10, 0), date(10, 5), date(10, 10),
	}, slots)
}
