package service

import (
	"time"

	"github.com/ryder-music/lessonbot/internal/model"
)

// datePageSize - количество дат на одной странице выбора дня
const datePageSize = 7

// maxDateOffset - максимальное смещение страницы внутри горизонта
const maxDateOffset = model.HorizonDays - datePageSize

// DateOption - дата на странице выбора с количеством свободных слотов
type DateOption struct {
	Date      time.Time
	FreeCount int
}

// FreeSlots возвращает свободные слоты даты в каноническом порядке.
// Слот свободен, если его нет ни в еженедельном наборе дня недели,
// ни в наборе конкретной даты. Чистая функция от снимка расписания.
func FreeSlots(schedule model.Schedule, date time.Time) []model.TimeSlot {
	day := model.WeekdayOf(date)
	dateKey := model.DateKey(date)

	free := make([]model.TimeSlot, 0, len(model.TimeSlots))
	for _, slot := range model.TimeSlots {
		if schedule.WeeklyBlockedAt(day, slot) || schedule.DateBlockedAt(dateKey, slot) {
			continue
		}
		free = append(free, slot)
	}
	return free
}

// DatePage возвращает до 7 последовательных дат начиная с сегодня+offset.
// Полностью заблокированные даты пропускаются для записи учеников,
// но включаются для админки (includeBlocked), чтобы их можно было разблокировать.
func DatePage(schedule model.Schedule, offset int, includeBlocked bool) []DateOption {
	start := Today().AddDate(0, 0, offset)

	page := make([]DateOption, 0, datePageSize)
	for i := 0; i < datePageSize; i++ {
		date := start.AddDate(0, 0, i)
		if !WithinHorizon(date) {
			break
		}
		count := len(FreeSlots(schedule, date))
		if count == 0 && !includeBlocked {
			continue
		}
		page = append(page, DateOption{Date: date, FreeCount: count})
	}
	return page
}

// PrevOffset возвращает смещение предыдущей страницы
func PrevOffset(offset int) int {
	if offset-datePageSize < 0 {
		return 0
	}
	return offset - datePageSize
}

// NextOffset возвращает смещение следующей страницы
func NextOffset(offset int) int {
	if offset+datePageSize > maxDateOffset {
		return maxDateOffset
	}
	return offset + datePageSize
}

// Today возвращает сегодняшнюю дату без времени
func Today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// WithinHorizon сообщает, попадает ли дата в окно записи
func WithinHorizon(date time.Time) bool {
	today := Today()
	return !date.Before(today) && date.Before(today.AddDate(0, 0, model.HorizonDays))
}
