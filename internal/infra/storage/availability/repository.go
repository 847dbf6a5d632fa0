package availability

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/peertutor/TutorBookingService/internal/domain"
	"github.com/peertutor/TutorBookingService/pkg/dbmetrics"
	"github.com/peertutor/TutorBookingService/pkg/psqlbuilder"
	"github.com/peertutor/TutorBookingService/pkg/types"
)

// DBExecutor общий интерфейс для выполнения запросов
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с шаблонами недельной доступности
// Шаблон хранится построчно: (tutor_id, day_of_week, position, start_time, end_time)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetTemplate собирает недельный шаблон репетитора
// Отсутствие строк - не ошибка: возвращается пустой шаблон
// (репетитор не настроил доступность, слоты не генерируются)
func (r *Repository) GetTemplate(ctx context.Context, tutorID int64) (*domain.WeeklyTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"day_of_week",
		"start_time",
		"end_time",
	).
		From("availability_templates").
		Where(squirrel.Eq{"tutor_id": tutorID}).
		OrderBy("position ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetTemplate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetTemplate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	template := &domain.WeeklyTemplate{}

	for rows.Next() {
		var dayName string
		var start, end types.TimeString

		if err := rows.Scan(&dayName, &start, &end); err != nil {
			return nil, fmt.Errorf("%w: GetTemplate - scan row: %v", ErrScanRow, err)
		}

		day, err := domain.ParseDayOfWeek(dayName)
		if err != nil {
			return nil, fmt.Errorf("%w: GetTemplate - tutor_id=%d: %v", ErrInvalidRow, tutorID, err)
		}

		rng := domain.AvailabilityRange{Start: start, End: end}
		if err := rng.Validate(); err != nil {
			return nil, fmt.Errorf("%w: GetTemplate - tutor_id=%d, day=%s: %v", ErrInvalidRow, tutorID, day, err)
		}

		template.SetRanges(day, append(template.RangesFor(day), rng))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetTemplate - rows error: %v", ErrScanRow, err)
	}

	return template, nil
}

// ReplaceTemplate атомарно заменяет весь недельный шаблон репетитора
// Должен вызываться внутри транзакции (delete + insert)
func (r *Repository) ReplaceTemplate(ctx context.Context, tutorID int64, template *domain.WeeklyTemplate) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("availability_templates").
		Where(squirrel.Eq{"tutor_id": tutorID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceTemplate - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceTemplate - execute delete: %v", ErrExecQuery, err)
	}

	if template.IsEmpty() {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("availability_templates").
		Columns("tutor_id", "day_of_week", "position", "start_time", "end_time")

	for _, day := range domain.AllDays {
		for position, rng := range template.RangesFor(day) {
			insertBuilder = insertBuilder.Values(tutorID, day.String(), position, rng.Start, rng.End)
		}
	}

	insertQuery, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceTemplate - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceTemplate - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
