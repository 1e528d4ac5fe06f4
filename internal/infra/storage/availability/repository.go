package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/ant0nk/Trimly-BookingService/internal/domain"
	"github.com/ant0nk/Trimly-BookingService/pkg/dbmetrics"
	"github.com/ant0nk/Trimly-BookingService/pkg/psqlbuilder"
)

// Переиспользуем интерфейс из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий окон доступности бизнесов
// Окна объявляются бизнесом заранее (рабочие часы, исключения, перерывы
// уже раскрыты в отдельные окна) и читаются движком слотов как есть
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория окон доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListWindows получает окна доступности бизнеса на указанную календарную дату
// Дата окна определяется по его началу. Порядок и непересекаемость окон
// не гарантируются - потребитель обязан обрабатывать произвольный набор
func (r *Repository) ListWindows(ctx context.Context, businessID int64, date time.Time) ([]domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	query, args, err := psqlbuilder.Select(
		"business_id",
		"window_start",
		"window_end",
	).
		From("availability_windows").
		Where(squirrel.Eq{"business_id": businessID}).
		Where(squirrel.GtOrEq{"window_start": dayStart}).
		Where(squirrel.Lt{"window_start": dayEnd}).
		OrderBy("window_start ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListWindows - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWindows - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]domain.AvailabilityWindow, 0)
	for rows.Next() {
		var window domain.AvailabilityWindow
		if err := rows.Scan(&window.BusinessID, &window.From, &window.To); err != nil {
			return nil, fmt.Errorf("%w: ListWindows - scan window: %v", ErrScanRow, err)
		}
		windows = append(windows, window)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListWindows - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}
