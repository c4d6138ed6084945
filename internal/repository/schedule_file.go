package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ryder-music/lessonbot/internal/model"
)

// FileScheduleRepository хранит документ расписания в JSON-файле
type FileScheduleRepository struct {
	path string
}

// NewFileScheduleRepository создаёт файловое хранилище расписания
func NewFileScheduleRepository(path string) *FileScheduleRepository {
	return &FileScheduleRepository{path: path}
}

// Load читает документ с диска. Отсутствующий файл - не ошибка:
// возвращается пустой документ.
func (r *FileScheduleRepository) Load(_ context.Context) (model.Schedule, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.NewSchedule(), nil
		}
		return model.Schedule{}, fmt.Errorf("read schedule file: %w", err)
	}

	schedule := model.NewSchedule()
	if err := json.Unmarshal(data, &schedule); err != nil {
		return model.Schedule{}, fmt.Errorf("decode schedule file: %w", err)
	}
	if schedule.WeeklyBlocked == nil {
		schedule.WeeklyBlocked = model.NewSchedule().WeeklyBlocked
	}
	if schedule.SpecificDates == nil {
		schedule.SpecificDates = model.NewSchedule().SpecificDates
	}
	return schedule, nil
}

// Save записывает документ атомарно: сначала во временный файл рядом,
// затем rename поверх текущего.
func (r *FileScheduleRepository) Save(_ context.Context, schedule model.Schedule) error {
	data, err := json.MarshalIndent(schedule, "", "  ")
	if err != nil {
		return fmt.Errorf("encode schedule: %w", err)
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp schedule file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp schedule file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp schedule file: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace schedule file: %w", err)
	}
	return nil
}
