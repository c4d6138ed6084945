package repository

import (
	"context"

	"github.com/ryder-music/lessonbot/internal/model"
)

// ScheduleRepository - долговременное хранилище документа расписания.
// Реализации обязаны писать атомарно: после неудачного Save на диске/в базе
// остаётся предыдущая версия документа целиком.
type ScheduleRepository interface {
	Load(ctx context.Context) (model.Schedule, error)
	Save(ctx context.Context, schedule model.Schedule) error
}
