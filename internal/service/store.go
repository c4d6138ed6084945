package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ryder-music/lessonbot/internal/model"
	"github.com/ryder-music/lessonbot/internal/repository"
)

// ErrDateOutsideHorizon возвращается при попытке изменить дату за пределами окна записи
var ErrDateOutsideHorizon = errors.New("date is outside the booking horizon")

// ScheduleStore - единственный владелец документа расписания.
// Все мутации сериализуются одним мьютексом и сохраняются синхронно;
// при ошибке сохранения документ в памяти не меняется.
type ScheduleStore struct {
	mu       sync.Mutex
	repo     repository.ScheduleRepository
	schedule model.Schedule
	logger   *zap.Logger
}

// NewScheduleStore создаёт хранилище расписания поверх репозитория
func NewScheduleStore(repo repository.ScheduleRepository, logger *zap.Logger) *ScheduleStore {
	return &ScheduleStore{
		repo:     repo,
		schedule: model.NewSchedule(),
		logger:   logger,
	}
}

// Load загружает документ из репозитория. Нечитаемое хранилище не фатально:
// бот стартует с пустым расписанием.
func (s *ScheduleStore) Load(ctx context.Context) {
	schedule, err := s.repo.Load(ctx)
	if err != nil {
		s.logger.Warn("Failed to load schedule, starting with empty one", zap.Error(err))
		schedule = model.NewSchedule()
	}

	s.mu.Lock()
	s.schedule = schedule
	s.mu.Unlock()

	s.logger.Info("Schedule loaded",
		zap.Int("weekly_days", len(schedule.WeeklyBlocked)),
		zap.Int("specific_dates", len(schedule.SpecificDates)))
}

// ToggleWeekly переключает блокировку слота в еженедельном наборе дня.
// Возвращает новое состояние: true - слот заблокирован.
func (s *ScheduleStore) ToggleWeekly(ctx context.Context, day model.Weekday, slot model.TimeSlot) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.schedule.Clone()
	blocked := next.ToggleWeekly(day, slot)

	if err := s.repo.Save(ctx, next); err != nil {
		return false, fmt.Errorf("persist schedule: %w", err)
	}
	s.schedule = next

	s.logger.Info("Weekly block toggled",
		zap.String("weekday", string(day)),
		zap.String("slot", string(slot)),
		zap.Bool("blocked", blocked))
	return blocked, nil
}

// ToggleSpecific переключает блокировку слота на конкретную дату.
// Даты за пределами горизонта отклоняются.
func (s *ScheduleStore) ToggleSpecific(ctx context.Context, date time.Time, slot model.TimeSlot) (bool, error) {
	if !WithinHorizon(date) {
		return false, ErrDateOutsideHorizon
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.schedule.Clone()
	blocked := next.ToggleSpecific(model.DateKey(date), slot)

	if err := s.repo.Save(ctx, next); err != nil {
		return false, fmt.Errorf("persist schedule: %w", err)
	}
	s.schedule = next

	s.logger.Info("Date block toggled",
		zap.String("date", model.DateKey(date)),
		zap.String("slot", string(slot)),
		zap.Bool("blocked", blocked))
	return blocked, nil
}

// Snapshot возвращает копию документа для чтения.
// Снимок отражает все мутации, завершившиеся до его взятия.
func (s *ScheduleStore) Snapshot() model.Schedule {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.schedule.Clone()
}
