package draft

import "errors"

var (
	// ErrDraftNotFound возвращается, когда у клиента нет черновика
	ErrDraftNotFound = errors.New("draft not found")

	// ErrVariantNotFound возвращается, когда выбранный вариант услуги не найден
	ErrVariantNotFound = errors.New("variant not found")

	// ErrAddOnNotFound возвращается, когда выбранная добавка не найдена в каталоге
	ErrAddOnNotFound = errors.New("add-on not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
