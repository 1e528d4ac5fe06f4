package book_appointment

import (
	"errors"
	"fmt"

	"github.com/ant0nk/Trimly-BookingService/internal/domain"
)

var (
	// ErrDraftNotFound возвращается, когда у сессии нет черновика бронирования
	ErrDraftNotFound = errors.New("book_appointment: booking draft not found")

	// ErrIncompleteDraft возвращается, когда черновик не прошёл предварительную
	// проверку. Внешних вызовов не было, платёж не создавался
	ErrIncompleteDraft = errors.New("book_appointment: incomplete draft")

	// ErrAuthorizationFailed возвращается при отказе платёжного шлюза до захвата
	// средств. Компенсация не нужна, пользователь может повторить попытку -
	// повтор входит в сагу заново из idle с новой авторизацией
	ErrAuthorizationFailed = errors.New("book_appointment: payment authorization failed")

	// ErrUserCancelled возвращается, когда пользователь отказался от оплаты
	// Не ошибка - нормальное прерывание до захвата средств
	ErrUserCancelled = errors.New("book_appointment: cancelled by user")

	// ErrPreconditionFailed возвращается, когда рекомендательная проверка перед
	// предъявлением платежа обнаружила нарушенное предусловие. Средства не
	// двигались, возврат не требуется
	ErrPreconditionFailed = errors.New("book_appointment: precondition failed before charge")

	// ErrInternal возвращается при внутренних ошибках до захвата платежа
	ErrInternal = errors.New("book_appointment: internal error")
)

// BookingFailedError сбой после захвата платежа. Никогда не возвращается до
// попытки компенсирующего возврата: Refund сообщает UI, был ли пользователь
// в итоге charged ("refund pending/failed - contact support") или нет
type BookingFailedError struct {
	Reason domain.FailureReason
	Hint   domain.RedirectHint
	Refund domain.RefundOutcome
}

func (e *BookingFailedError) Error() string {
	return fmt.Sprintf("book_appointment: booking failed after capture: reason=%s, refund=%s", e.Reason, e.Refund)
}

// PreconditionError нарушенное предусловие, обнаруженное рекомендательной
// проверкой до предъявления платежа. Разворачивается в ErrPreconditionFailed
type PreconditionError struct {
	Reason domain.FailureReason
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("precondition failed: %s", e.Reason)
}

func (e *PreconditionError) Unwrap() error {
	return ErrPreconditionFailed
}
