package model

import (
	"fmt"
	"time"
)

// Weekday - день недели в качестве ключа еженедельных блокировок.
// В хранимом документе всегда используются английские названия.
type Weekday string

// Weekdays - фиксированный порядок дней недели (с понедельника)
var Weekdays = []Weekday{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

var weekdayIndex = func() map[Weekday]int {
	m := make(map[Weekday]int, len(Weekdays))
	for i, d := range Weekdays {
		m[d] = i
	}
	return m
}()

var weekdayNamesRU = []string{
	"Понедельник", "Вторник", "Среда", "Четверг", "Пятница", "Суббота", "Воскресенье",
}

var monthNamesRU = []string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

// ParseWeekday проверяет, что строка является названием дня недели
func ParseWeekday(s string) (Weekday, error) {
	if _, ok := weekdayIndex[Weekday(s)]; !ok {
		return "", fmt.Errorf("unknown weekday %q", s)
	}
	return Weekday(s), nil
}

// WeekdayOf возвращает день недели для даты
func WeekdayOf(date time.Time) Weekday {
	// time.Weekday начинается с воскресенья, наш порядок - с понедельника
	return Weekdays[(int(date.Weekday())+6)%7]
}

// Index возвращает позицию дня в порядке понедельник..воскресенье
func (d Weekday) Index() int {
	if i, ok := weekdayIndex[d]; ok {
		return i
	}
	return -1
}

// NameRU возвращает русское название дня недели
func (d Weekday) NameRU() string {
	if i := d.Index(); i >= 0 {
		return weekdayNamesRU[i]
	}
	return string(d)
}

// FormatDateRU форматирует дату как "Понедельник 18 ноября"
func FormatDateRU(date time.Time) string {
	return fmt.Sprintf("%s %d %s", WeekdayOf(date).NameRU(), date.Day(), monthNamesRU[date.Month()-1])
}

// DateKey - каноническое строковое представление даты в хранимом документе
func DateKey(date time.Time) string {
	return date.Format("2006-01-02")
}

// ParseDateKey разбирает дату формата "2006-01-02".
// Дата привязывается к локальной зоне процесса: все вычисления
// над датами идут в ней, и ключ должен возвращаться в ту же зону.
func ParseDateKey(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.Local)
}
