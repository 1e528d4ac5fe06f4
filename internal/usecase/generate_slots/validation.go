package generate_slots

import (
	"fmt"
)

// validateRequest валидирует входные данные запроса
// Отсутствующие бизнес или вариант НЕ считаются ошибкой: UI запрашивает слоты
// до того, как все выборы сделаны, и получает пустой список
func validateRequest(req *Request) error {
	if req.BusinessID < 0 {
		return fmt.Errorf("%w: businessID must not be negative", ErrInvalidInput)
	}

	if req.VariantID < 0 {
		return fmt.Errorf("%w: variantID must not be negative", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.GranularityMinutes < 0 {
		return fmt.Errorf("%w: granularity must not be negative", ErrInvalidInput)
	}

	return nil
}

// isSelectionIncomplete проверяет, что выбор бизнеса или услуги ещё не сделан
func isSelectionIncomplete(req *Request) bool {
	return req.BusinessID == 0 || req.VariantID == 0
}
