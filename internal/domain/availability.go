package domain

import "time"

// AvailabilityWindow represents a single contiguous open period declared by a business
// Окна приходят из хранилища без гарантий сортировки и отсутствия пересечений -
// движок слотов не должен полагаться ни на то, ни на другое
type AvailabilityWindow struct {
	BusinessID int64
	From       time.Time
	To         time.Time
}

// ContainsInterval проверяет, что интервал [start, end) целиком лежит внутри окна
func (w *AvailabilityWindow) ContainsInterval(start, end time.Time) bool {
	return !start.Before(w.From) && !end.After(w.To)
}

// OnDate проверяет, что окно относится к указанной календарной дате
// Дата окна определяется по локальной дате его начала
func (w *AvailabilityWindow) OnDate(date time.Time) bool {
	y1, m1, d1 := w.From.Date()
	y2, m2, d2 := date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
