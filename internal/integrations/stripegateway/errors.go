package stripegateway

import "errors"

var (
	// ErrAuthorizationFailed возвращается, когда платёжная авторизация не создана
	// или отклонена шлюзом
	ErrAuthorizationFailed = errors.New("stripegateway: authorization failed")

	// ErrConfirmationTimeout возвращается, когда подтверждение платежа не получено
	// за отведённое время
	ErrConfirmationTimeout = errors.New("stripegateway: confirmation timed out")

	// ErrRefundFailed возвращается при неудачной попытке возврата средств
	// Возврат best-effort: ошибка логируется и прикладывается к итогу саги,
	// повторов на этом уровне нет
	ErrRefundFailed = errors.New("stripegateway: refund failed")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("stripegateway: internal error")
)
