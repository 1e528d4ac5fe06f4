package domain

// PaymentAuthorization payment-intent/ephemeral-credential тройка для одной попытки
// бронирования. Время жизни ограничено одной попыткой: повторный вход в сагу
// обязан запросить новую авторизацию, переиспользование между черновиками запрещено
type PaymentAuthorization struct {
	PaymentIntentID string
	ClientSecret    string
	EphemeralKey    string
	CustomerID      int64
}

// FailureReason причина прерывания бронирования после захвата платежа
type FailureReason string

const (
	ReasonSlotTaken       FailureReason = "slot_taken"
	ReasonLocationInvalid FailureReason = "location_invalid"
	ReasonBusinessOffline FailureReason = "business_offline"
	ReasonPersistFailed   FailureReason = "persist_failed"
)

// RedirectHint подсказка UI, на какой экран выбора вернуть пользователя
type RedirectHint string

const (
	RedirectToTime     RedirectHint = "time"
	RedirectToLocation RedirectHint = "location"
	RedirectToBusiness RedirectHint = "business"
)

// Redirect возвращает экран выбора, соответствующий нарушенному предусловию
func (r FailureReason) Redirect() RedirectHint {
	switch r {
	case ReasonLocationInvalid:
		return RedirectToLocation
	case ReasonBusinessOffline:
		return RedirectToBusiness
	default:
		// slot_taken и persist_failed возвращают к выбору времени:
		// повтор занятого слота небезопасен без перегенерации
		return RedirectToTime
	}
}

// RefundOutcome результат компенсирующего возврата средств
type RefundOutcome string

const (
	// RefundNone - платёж не был захвачен, возвращать нечего
	RefundNone RefundOutcome = "none"
	// RefundIssued - возврат успешно запрошен
	RefundIssued RefundOutcome = "refunded"
	// RefundFailed - попытка возврата не удалась, требуется ручная сверка
	RefundFailed RefundOutcome = "refund_failed"
)
