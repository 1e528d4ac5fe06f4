package stripegateway

// Outcome результат предъявления платежа пользователю
type Outcome string

const (
	// OutcomeCaptured - платёж захвачен, дальнейшие сбои требуют компенсации
	OutcomeCaptured Outcome = "captured"

	// OutcomeUserCancelled - пользователь отказался от оплаты; не ошибка,
	// нормальное прерывание до захвата средств
	OutcomeUserCancelled Outcome = "user_cancelled"
)

// stripeAPIVersion версия API для ephemeral key мобильного payment sheet
const stripeAPIVersion = "2023-10-16"
