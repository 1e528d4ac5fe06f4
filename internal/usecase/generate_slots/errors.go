package generate_slots

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("generate_slots: business not found")

	// ErrInvalidDuration возвращается при нулевой или отрицательной длительности услуги
	ErrInvalidDuration = errors.New("generate_slots: invalid duration")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("generate_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("generate_slots: internal error")
)
