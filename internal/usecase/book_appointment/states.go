package book_appointment

import (
	"time"

	"github.com/ant0nk/Trimly-BookingService/internal/domain"
)

// State состояние саги бронирования
//
// Машина состояний:
//
//	idle → authorizing → authorized → validating → committing → committed
//
// с аварийными выходами:
//
//	authorizing → auth_failed                       (средства не двигались)
//	validating  → refunding → refunded              (платёж захвачен, слот/локация/бизнес невалидны)
//	committing  → refunding → refunded              (платёж захвачен, запись не сохранена)
//
// refunding всегда переходит в refunded независимо от исхода самого возврата:
// результат возврата фиксируется, но сагу не переоткрывает
type State string

const (
	StateIdle        State = "idle"
	StateAuthorizing State = "authorizing"
	StateAuthorized  State = "authorized"
	StateValidating  State = "validating"
	StateCommitting  State = "committing"
	StateCommitted   State = "committed"
	StateAuthFailed  State = "auth_failed"
	StateRefunding   State = "refunding"
	StateRefunded    State = "refunded"
)

// IsTerminal возвращает true для конечных состояний саги
func (s State) IsTerminal() bool {
	return s == StateCommitted || s == StateAuthFailed || s == StateRefunded || s == StateIdle
}

// Transition переход саги между состояниями, доставляется подписчикам
// для отображения прогресса
type Transition struct {
	RunID  string
	From   State
	To     State
	Reason domain.FailureReason // Заполнена только для аварийных переходов
	At     time.Time
}

// TransitionFunc подписчик на переходы саги
type TransitionFunc func(t Transition)
