package book_appointment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ant0nk/Trimly-BookingService/internal/domain"
	"github.com/ant0nk/Trimly-BookingService/internal/infra/draftcache"
	appointmentRepo "github.com/ant0nk/Trimly-BookingService/internal/infra/storage/appointment"
	"github.com/ant0nk/Trimly-BookingService/internal/integrations/stripegateway"
	"github.com/ant0nk/Trimly-BookingService/pkg/ptr"
)

// errSlotTakenInTx маркер занятости слота, обнаруженной уже внутри
// сериализуемой транзакции
var errSlotTakenInTx = errors.New("slot taken inside commit transaction")

type UseCase struct {
	draftStore      DraftStore
	appointmentRepo AppointmentRepository
	gateway         PaymentGateway
	directory       DirectoryClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger

	mu          sync.RWMutex
	subscribers []TransitionFunc
}

func NewUseCase(
	draftStore DraftStore,
	appointmentRepo AppointmentRepository,
	gateway PaymentGateway,
	directory DirectoryClient,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}

	return &UseCase{
		draftStore:      draftStore,
		appointmentRepo: appointmentRepo,
		gateway:         gateway,
		directory:       directory,
		txManager:       txManager,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// Subscribe регистрирует наблюдателя переходов саги
// Наблюдатели вызываются синхронно на каждом переходе; используется для
// логирования и обновления платёжного экрана
func (uc *UseCase) Subscribe(fn TransitionFunc) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.subscribers = append(uc.subscribers, fn)
}

func (uc *UseCase) transition(runID string, from, to State, reason domain.FailureReason) {
	tr := Transition{
		RunID:  runID,
		From:   from,
		To:     to,
		Reason: reason,
		At:     uc.timeProvider.Now(),
	}

	uc.logger.Info("BookAppointment: saga %s: %s -> %s", tr.RunID, tr.From, tr.To)

	uc.mu.RLock()
	defer uc.mu.RUnlock()

	for _, fn := range uc.subscribers {
		fn(tr)
	}
}

// Execute проводит бронирование через сагу с компенсирующим возвратом.
// Инвариант: после захвата средств сага всегда достигает терминального
// состояния - либо Committed с сохранённой записью, либо Refunded с
// оформленным возвратом. Частично завершённых бронирований не бывает.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	runID := uuid.NewString()

	uc.logger.Info("BookAppointment: saga %s started for customer %d", runID, req.CustomerID)

	// 1. Загружаем черновик покупателя
	draft, err := uc.draftStore.Get(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, draftcache.ErrDraftNotFound) {
			return nil, fmt.Errorf("%w: customer %d", ErrDraftNotFound, req.CustomerID)
		}
		uc.logger.Error("BookAppointment: saga %s: failed to load draft: %v", runID, err)
		return nil, fmt.Errorf("%w: failed to load draft", ErrInternal)
	}

	// 2. Черновик должен быть полным до первого обращения к платёжному шлюзу
	if err := draft.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIncompleteDraft, err)
	}

	// 3. Создаём авторизацию платежа. Каждый запуск саги получает свежую
	// авторизацию - повторное использование запрещено
	uc.transition(runID, StateIdle, StateAuthorizing, "")

	auth, err := uc.gateway.CreateAuthorization(ctx, draft.CustomerID, draft.TotalPrice, req.Currency)
	if err != nil {
		uc.transition(runID, StateAuthorizing, StateAuthFailed, "")
		uc.logger.Warn("BookAppointment: saga %s: authorization failed: %v", runID, err)
		return nil, fmt.Errorf("%w: %v", ErrAuthorizationFailed, err)
	}

	uc.transition(runID, StateAuthorizing, StateAuthorized, "")

	// 4. Рекомендательная проверка предусловий до предъявления платежа:
	// средства ещё не захвачены, при нарушении прерываемся без возврата
	reason, err := uc.advisoryCheck(ctx, draft)
	if err != nil {
		uc.transition(runID, StateAuthorized, StateIdle, "")
		return nil, err
	}
	if reason != "" {
		uc.transition(runID, StateAuthorized, StateIdle, reason)
		return nil, &PreconditionError{Reason: reason}
	}

	// 5. Предъявляем авторизацию и ждём исхода платёжного экрана
	outcome, err := uc.gateway.PresentAuthorization(ctx, auth)
	if err != nil {
		uc.transition(runID, StateAuthorized, StateAuthFailed, "")
		uc.logger.Warn("BookAppointment: saga %s: payment presentation failed: %v", runID, err)
		return nil, fmt.Errorf("%w: %v", ErrAuthorizationFailed, err)
	}
	if outcome == stripegateway.OutcomeUserCancelled {
		uc.transition(runID, StateAuthorized, StateIdle, "")
		return nil, ErrUserCancelled
	}

	// 6. Средства захвачены. Отвязываемся от контекста вызывающего:
	// обрыв запроса не должен оставить захваченный платёж без записи
	// и без возврата
	dctx := context.WithoutCancel(ctx)

	uc.transition(runID, StateAuthorized, StateValidating, "")

	reason, err = uc.authoritativeCheck(dctx, draft)
	if err != nil {
		uc.logger.Error("BookAppointment: saga %s: authoritative check failed: %v", runID, err)
		return uc.compensate(dctx, runID, StateValidating, domain.ReasonPersistFailed, auth)
	}
	if reason != "" {
		return uc.compensate(dctx, runID, StateValidating, reason, auth)
	}

	// 7. Сохраняем запись в сериализуемой транзакции с повторной проверкой
	// занятости под блокировкой
	uc.transition(runID, StateValidating, StateCommitting, "")

	created, err := uc.commit(dctx, draft, auth)
	if err != nil {
		commitReason := domain.ReasonPersistFailed
		if errors.Is(err, errSlotTakenInTx) {
			commitReason = domain.ReasonSlotTaken
		}
		uc.logger.Error("BookAppointment: saga %s: commit failed: %v", runID, err)
		return uc.compensate(dctx, runID, StateCommitting, commitReason, auth)
	}

	uc.transition(runID, StateCommitting, StateCommitted, "")

	// 8. Бронирование завершено - черновик больше не нужен
	if err := uc.draftStore.Delete(dctx, req.CustomerID); err != nil {
		uc.logger.Warn("BookAppointment: saga %s: failed to delete draft: %v", runID, err)
	}

	uc.logger.Info("BookAppointment: saga %s committed: appointment %d", runID, created.ID)

	return &Response{
		RunID:           runID,
		AppointmentID:   created.ID,
		CustomerID:      created.CustomerID,
		BusinessID:      created.BusinessID,
		LocationID:      created.LocationID,
		VariantID:       created.VariantID,
		VariantName:     created.VariantName,
		StartTime:       created.StartTime,
		EndTime:         created.EndTime,
		TotalPrice:      created.TotalPrice,
		Paid:            created.Paid,
		PaymentIntentID: ptr.Deref(created.PaymentIntentID),
		Status:          string(created.Status),
		CreatedAt:       created.CreatedAt,
	}, nil
}

// commit сохраняет запись в сериализуемой транзакции
// Занятость перепроверяется уже под блокировкой чужих интервалов:
// между авторитетной проверкой и транзакцией конкурирующая сага могла
// успеть занять слот
func (uc *UseCase) commit(ctx context.Context, draft *domain.BookingDraft, auth *domain.PaymentAuthorization) (*domain.Appointment, error) {
	var created *domain.Appointment

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		dayStart := time.Date(
			draft.StartTime.Year(), draft.StartTime.Month(), draft.StartTime.Day(),
			0, 0, 0, 0, draft.StartTime.Location(),
		)

		busy, err := uc.appointmentRepo.ListBusyIntervals(txCtx, draft.BusinessID, dayStart)
		if err != nil {
			return fmt.Errorf("failed to list busy intervals: %v", err)
		}

		for i := range busy {
			if busy[i].Overlaps(draft.StartTime, draft.EndTime) {
				return errSlotTakenInTx
			}
		}

		now := uc.timeProvider.Now()
		appointment := &domain.Appointment{
			CustomerID:          draft.CustomerID,
			BusinessID:          draft.BusinessID,
			LocationID:          draft.LocationID,
			VariantID:           draft.VariantID,
			VariantName:         draft.VariantName,
			AddOnIDs:            draft.AddOnIDs(),
			CustomizableOptions: draft.CustomizableOptions,
			StartTime:           draft.StartTime,
			EndTime:             draft.EndTime,
			TotalPrice:          draft.TotalPrice,
			Paid:                true,
			PaymentIntentID:     &auth.PaymentIntentID,
			Status:              domain.StatusConfirmed,
			CreatedAt:           now,
			UpdatedAt:           now,
		}

		created, err = uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrOverlapRejected) {
				return fmt.Errorf("storage rejected overlapping interval: %w", err)
			}
			return fmt.Errorf("failed to create appointment: %v", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// compensate оформляет компенсирующий возврат после захвата средств
// Сага всегда доходит до Refunded: даже если сам возврат не прошёл,
// исход фиксируется и отдаётся вызывающему для ручного разбора
func (uc *UseCase) compensate(ctx context.Context, runID string, from State, reason domain.FailureReason, auth *domain.PaymentAuthorization) (*Response, error) {
	uc.transition(runID, from, StateRefunding, reason)

	refund := domain.RefundIssued
	if err := uc.gateway.Refund(ctx, auth.PaymentIntentID); err != nil {
		refund = domain.RefundFailed
		uc.logger.Error("BookAppointment: saga %s: refund failed for intent %s, manual reconciliation required: %v",
			runID, auth.PaymentIntentID, err)
	}

	uc.transition(runID, StateRefunding, StateRefunded, reason)

	return nil, &BookingFailedError{
		Reason: reason,
		Hint:   reason.Redirect(),
		Refund: refund,
	}
}
