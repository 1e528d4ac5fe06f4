package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/ant0nk/Trimly-BookingService/internal/domain"
	"github.com/ant0nk/Trimly-BookingService/pkg/dbmetrics"
	"github.com/ant0nk/Trimly-BookingService/pkg/psqlbuilder"
)

// pgExclusionViolation код ошибки Postgres для нарушения exclusion constraint
// Таблица appointments несёт ограничение EXCLUDE USING gist по
// (business_id, tstzrange(start_time, end_time)) для активных записей
const pgExclusionViolation = "23P01"

var appointmentColumns = []string{
	"id",
	"customer_id",
	"business_id",
	"location_id",
	"variant_id",
	"variant_name",
	"add_on_ids",
	"customizable_options",
	"start_time",
	"end_time",
	"total_price",
	"paid",
	"payment_intent_id",
	"status",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями на услуги
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись
// Если в контексте передана активная транзакция (через context.Value), использует её.
// Сага бронирования всегда вызывает Create внутри сериализуемой транзакции
// вместе с проверкой занятости слота.
//
// Пересечение с существующей активной записью отклоняется на уровне БД:
// в этом случае возвращается ErrOverlapRejected
func (r *Repository) Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"customer_id",
			"business_id",
			"location_id",
			"variant_id",
			"variant_name",
			"add_on_ids",
			"customizable_options",
			"start_time",
			"end_time",
			"total_price",
			"paid",
			"payment_intent_id",
			"status",
		).
		Values(
			appointment.CustomerID,
			appointment.BusinessID,
			appointment.LocationID,
			appointment.VariantID,
			appointment.VariantName,
			pq.Array(appointment.AddOnIDs),
			pq.Array(appointment.CustomizableOptions),
			appointment.StartTime,
			appointment.EndTime,
			appointment.TotalPrice,
			appointment.Paid,
			appointment.PaymentIntentID,
			appointment.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appointment.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgExclusionViolation {
			return nil, fmt.Errorf("%w: Create: %v", ErrOverlapRejected, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appointment.CreatedAt = createdAt.Time
	appointment.UpdatedAt = updatedAt.Time

	return appointment, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appointment, err := r.scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return appointment, nil
}

// GetByCustomerID получает список записей клиента
// Опционально фильтрует по статусу
func (r *Repository) GetByCustomerID(ctx context.Context, customerID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("start_time DESC")

	// Фильтрация по статусу, если указан
	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// ListBusyIntervals получает занятые интервалы бизнеса начиная с указанного момента
// Отменённые записи не занимают интервал и не возвращаются.
//
// Внутри транзакции блокирует строки (FOR UPDATE) - сага бронирования
// использует это для проверки занятости перед вставкой, чтобы конкурирующая
// сага не смогла занять тот же слот между проверкой и записью
func (r *Repository) ListBusyIntervals(ctx context.Context, businessID int64, from time.Time) ([]domain.AppointmentInterval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	inactiveStatusStrings := make([]string, len(domain.InactiveStatuses))
	for i, s := range domain.InactiveStatuses {
		inactiveStatusStrings[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(
		"business_id",
		"start_time",
		"end_time",
	).
		From("appointments").
		Where(squirrel.Eq{"business_id": businessID}).
		Where(squirrel.GtOrEq{"end_time": from}).
		Where(squirrel.NotEq{"status": inactiveStatusStrings}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBusyIntervals - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBusyIntervals - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	intervals := make([]domain.AppointmentInterval, 0)
	for rows.Next() {
		var interval domain.AppointmentInterval
		if err := rows.Scan(&interval.BusinessID, &interval.StartTime, &interval.EndTime); err != nil {
			return nil, fmt.Errorf("%w: ListBusyIntervals - scan interval: %v", ErrScanRow, err)
		}
		intervals = append(intervals, interval)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBusyIntervals - rows error: %v", ErrScanRow, err)
	}

	return intervals, nil
}

// Cancel отменяет запись с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, status domain.AppointmentStatus, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", status).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// scanAppointment сканирует одну строку результата в запись
func (r *Repository) scanAppointment(row *sql.Row) (*domain.Appointment, error) {
	var appointment domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&appointment.ID,
		&appointment.CustomerID,
		&appointment.BusinessID,
		&appointment.LocationID,
		&appointment.VariantID,
		&appointment.VariantName,
		pq.Array(&appointment.AddOnIDs),
		pq.Array(&appointment.CustomizableOptions),
		&appointment.StartTime,
		&appointment.EndTime,
		&appointment.TotalPrice,
		&appointment.Paid,
		&appointment.PaymentIntentID,
		&appointment.Status,
		&appointment.CancellationReason,
		&appointment.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	appointment.CreatedAt = createdAt.Time
	appointment.UpdatedAt = updatedAt.Time

	return &appointment, nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func (r *Repository) scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		var appointment domain.Appointment
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&appointment.ID,
			&appointment.CustomerID,
			&appointment.BusinessID,
			&appointment.LocationID,
			&appointment.VariantID,
			&appointment.VariantName,
			pq.Array(&appointment.AddOnIDs),
			pq.Array(&appointment.CustomizableOptions),
			&appointment.StartTime,
			&appointment.EndTime,
			&appointment.TotalPrice,
			&appointment.Paid,
			&appointment.PaymentIntentID,
			&appointment.Status,
			&appointment.CancellationReason,
			&appointment.CancelledAt,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan appointment: %v", ErrScanRow, err)
		}

		appointment.CreatedAt = createdAt.Time
		appointment.UpdatedAt = updatedAt.Time

		appointments = append(appointments, &appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}
