package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ryder-music/lessonbot/internal/model"
)

// PostgresScheduleRepository хранит документ расписания одной jsonb-записью.
// Содержимое документа то же, что и в файловом варианте.
type PostgresScheduleRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresScheduleRepository создаёт хранилище расписания в Postgres
func NewPostgresScheduleRepository(pool *pgxpool.Pool) *PostgresScheduleRepository {
	return &PostgresScheduleRepository{pool: pool}
}

// Load читает документ из базы. Отсутствие записи - не ошибка:
// возвращается пустой документ.
func (r *PostgresScheduleRepository) Load(ctx context.Context) (model.Schedule, error) {
	var data []byte
	err := r.pool.QueryRow(ctx,
		`SELECT document FROM schedule_documents WHERE id = 1`,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.NewSchedule(), nil
		}
		return model.Schedule{}, fmt.Errorf("select schedule document: %w", err)
	}

	schedule := model.NewSchedule()
	if err := json.Unmarshal(data, &schedule); err != nil {
		return model.Schedule{}, fmt.Errorf("decode schedule document: %w", err)
	}
	if schedule.WeeklyBlocked == nil {
		schedule.WeeklyBlocked = model.NewSchedule().WeeklyBlocked
	}
	if schedule.SpecificDates == nil {
		schedule.SpecificDates = model.NewSchedule().SpecificDates
	}
	return schedule, nil
}

// Save сохраняет документ целиком одним upsert
func (r *PostgresScheduleRepository) Save(ctx context.Context, schedule model.Schedule) error {
	data, err := json.Marshal(schedule)
	if err != nil {
		return fmt.Errorf("encode schedule: %w", err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO schedule_documents (id, document, updated_at)
		 VALUES (1, $1, now())
		 ON CONFLICT (id) DO UPDATE SET document = EXCLUDED.document, updated_at = now()`,
		data,
	)
	if err != nil {
		return fmt.Errorf("upsert schedule document: %w", err)
	}
	return nil
}
