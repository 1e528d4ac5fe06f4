package get_available_slots

import (
	"time"

	"github.com/ant0nk/Trimly-BookingService/internal/domain"
	generateSlots "github.com/ant0nk/Trimly-BookingService/internal/usecase/generate_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	BusinessID      int64    `json:"businessId"`
	VariantID       int64    `json:"variantId"`
	Date            string   `json:"date"`            // "2026-03-15"
	DurationMinutes int      `json:"durationMinutes"` // 0, если выбор услуги не завершён
	Slots           []string `json:"slots"`           // Времена начала в ISO 8601, по возрастанию
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *generateSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, slot.Format(time.RFC3339))
	}

	return &AvailableSlotsResponse{
		BusinessID:      resp.BusinessID,
		VariantID:       resp.VariantID,
		Date:            resp.Date.Format(domain.DateFormat),
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}
