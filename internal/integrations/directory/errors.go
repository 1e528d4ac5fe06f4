package directory

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден в каталоге
	ErrBusinessNotFound = errors.New("business not found")

	// ErrVariantNotFound возвращается, когда вариант услуги не найден
	ErrVariantNotFound = errors.New("variant not found")

	// ErrAddOnNotFound возвращается, когда дополнительная услуга не найдена
	ErrAddOnNotFound = errors.New("add-on not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("directory client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от каталога
	ErrInvalidResponse = errors.New("directory client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что каталог недоступен и рекомендательную проверку следует прервать
	ErrServiceDegraded = errors.New("directory unavailable: graceful degradation applied")
)
