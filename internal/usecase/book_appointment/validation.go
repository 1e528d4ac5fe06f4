package book_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ant0nk/Trimly-BookingService/internal/domain"
	directoryClient "github.com/ant0nk/Trimly-BookingService/internal/integrations/directory"
)

// Сага перепроверяет три предусловия дважды: рекомендательно перед предъявлением
// платежа (время между выбором слота и оплатой не ограничено, состояние могло
// измениться) и авторитетно сразу после захвата средств, перед сохранением.
// Обе проверки выполняются по СВЕЖИМ данным, а не по данным на момент сборки
// черновика, и используют один и тот же код - так контракт компенсирующего
// возврата остаётся доказуемым.

// advisoryCheck рекомендательная проверка до предъявления платежа
// При недоступности каталога прерывает сагу без оплаты: лучше не предъявлять
// платёж, чем захватить средства и тут же их возвращать
func (uc *UseCase) advisoryCheck(ctx context.Context, draft *domain.BookingDraft) (domain.FailureReason, error) {
	business, err := uc.directory.GetBusinessWithGracefulDegradation(ctx, draft.BusinessID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrBusinessNotFound) {
			return domain.ReasonBusinessOffline, nil
		}
		return "", fmt.Errorf("%w: advisory check: %v", ErrInternal, err)
	}

	return uc.checkPreconditions(ctx, draft, business)
}

// authoritativeCheck авторитетная проверка после захвата платежа
// Любая ошибка здесь приводит к компенсирующему возврату: подтвердить
// предусловия невозможно, а захваченный платёж без записи оставлять нельзя
func (uc *UseCase) authoritativeCheck(ctx context.Context, draft *domain.BookingDraft) (domain.FailureReason, error) {
	business, err := uc.directory.GetBusiness(ctx, draft.BusinessID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrBusinessNotFound) {
			return domain.ReasonBusinessOffline, nil
		}
		return "", err
	}

	return uc.checkPreconditions(ctx, draft, business)
}

// checkPreconditions проверяет три предусловия бронирования по свежим данным:
// (a) выбранный слот всё ещё свободен, (b) локация входит в активный набор
// локаций бизнеса, (c) бизнес принимает бронирования
func (uc *UseCase) checkPreconditions(ctx context.Context, draft *domain.BookingDraft, business *directoryClient.Business) (domain.FailureReason, error) {
	if !business.Online {
		return domain.ReasonBusinessOffline, nil
	}

	if !business.IsLocationEnabled(draft.LocationID) {
		return domain.ReasonLocationInvalid, nil
	}

	free, err := uc.isSlotFree(ctx, draft)
	if err != nil {
		return "", err
	}
	if !free {
		return domain.ReasonSlotTaken, nil
	}

	return "", nil
}

// isSlotFree повторяет проверку занятости слота по свежим интервалам
// Тот же полуоткрытый тест пересечения, что и в генераторе слотов:
// записи "встык" допустимы
func (uc *UseCase) isSlotFree(ctx context.Context, draft *domain.BookingDraft) (bool, error) {
	dayStart := time.Date(
		draft.StartTime.Year(), draft.StartTime.Month(), draft.StartTime.Day(),
		0, 0, 0, 0, draft.StartTime.Location(),
	)

	busy, err := uc.appointmentRepo.ListBusyIntervals(ctx, draft.BusinessID, dayStart)
	if err != nil {
		return false, fmt.Errorf("failed to list busy intervals: %v", err)
	}

	for i := range busy {
		if busy[i].Overlaps(draft.StartTime, draft.EndTime) {
			return false, nil
		}
	}

	return true, nil
}
