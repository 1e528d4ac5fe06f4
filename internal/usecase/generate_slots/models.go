package generate_slots

import "time"

// Request модель запроса на получение доступных слотов
type Request struct {
	BusinessID         int64     // ID бизнеса (0 - выбор ещё не сделан, вернётся пустой ответ)
	VariantID          int64     // ID варианта услуги (0 - выбор ещё не сделан)
	Date               time.Time // Дата, на которую запрашиваются слоты (без времени)
	GranularityMinutes int       // Шаг генерации слотов (0 - шаг по умолчанию)
}

// Response модель ответа со списком доступных времён начала
type Response struct {
	BusinessID      int64       // ID бизнеса
	VariantID       int64       // ID варианта услуги
	Date            time.Time   // Дата, на которую запрашивались слоты
	DurationMinutes int         // Длительность услуги в минутах
	Slots           []time.Time // Доступные времена начала, по возрастанию
}
