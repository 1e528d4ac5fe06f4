package generate_slots

import (
	"sort"
	"time"

	"github.com/ant0nk/Trimly-BookingService/internal/domain"
)

// GenerateSlots чистая функция вычисления доступных времён начала записи.
// Берёт окна доступности, чья локальная дата начала совпадает с date, генерирует
// кандидатов с шагом granularityMinutes от начала окна до последнего допустимого
// старта включительно и отбрасывает тех, кто пересекается с занятыми интервалами.
//
// Окна не обязаны приходить отсортированными и могут пересекаться - результат
// сортируется и дедуплицируется. Отсутствие окон на дату - нормальный исход
// (пустой список), а не ошибка
func GenerateSlots(
	windows []domain.AvailabilityWindow,
	busy []domain.AppointmentInterval,
	date time.Time,
	durationMinutes int,
	granularityMinutes int,
) ([]time.Time, error) {
	if durationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	if granularityMinutes <= 0 {
		granularityMinutes = domain.DefaultGranularityMinutes
	}

	duration := time.Duration(durationMinutes) * time.Minute
	granularity := time.Duration(granularityMinutes) * time.Minute

	// Шаг 1: Генерируем кандидатов по всем окнам на указанную дату
	seen := make(map[int64]struct{})
	slots := make([]time.Time, 0)

	for _, window := range windows {
		if !window.OnDate(date) {
			continue
		}

		// Последний допустимый старт: конец окна минус длительность услуги
		// Если он раньше начала окна - услуга в окно не помещается
		latestStart := window.To.Add(-duration)
		if latestStart.Before(window.From) {
			continue
		}

		for candidate := window.From; !candidate.After(latestStart); candidate = candidate.Add(granularity) {
			if isOccupied(candidate, candidate.Add(duration), busy) {
				continue
			}

			// Окна могут пересекаться - один и тот же кандидат не должен попасть дважды
			key := candidate.Unix()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			slots = append(slots, candidate)
		}
	}

	// Шаг 2: Хронологический порядок по возрастанию
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Before(slots[j])
	})

	return slots, nil
}

// isOccupied проверяет пересечение кандидата [start, end) хотя бы с одним занятым
// интервалом. Используются строгие неравенства: записи "встык" допустимы
//
// Примеры:
// - Слот 11:30-12:00, запись 11:20-11:40 → ЕСТЬ пересечение (11:30-11:40)
// - Слот 11:30-12:00, запись 11:00-11:30 → НЕТ пересечения (граничат)
// - Слот 11:30-12:00, запись 12:00-12:30 → НЕТ пересечения (граничат)
func isOccupied(start, end time.Time, busy []domain.AppointmentInterval) bool {
	for i := range busy {
		if busy[i].Overlaps(start, end) {
			return true
		}
	}
	return false
}
