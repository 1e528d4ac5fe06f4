package directory

// Business модель бизнеса из каталога
type Business struct {
	ID                 int64   `json:"id"`
	Name               string  `json:"name"`
	Online             bool    `json:"online"` // Принимает ли бизнес бронирования
	EnabledLocationIDs []int64 `json:"enabledLocationIds"`
}

// IsLocationEnabled проверяет, что локация включена для бизнеса
func (b *Business) IsLocationEnabled(locationID int64) bool {
	for _, id := range b.EnabledLocationIDs {
		if id == locationID {
			return true
		}
	}
	return false
}

// Variant модель варианта услуги (стиль/вариант с ценой и длительностью)
type Variant struct {
	ID              int64   `json:"id"`
	ServiceID       int64   `json:"serviceId"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}

// AddOn модель дополнительной услуги
type AddOn struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// ErrorResponse модель ошибки от каталога
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
