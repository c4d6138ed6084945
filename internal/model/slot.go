package model

import "fmt"

// TimeSlot представляет один часовой интервал занятия в формате "HH:MM-HH:MM"
type TimeSlot string

// TimeSlots - канонический список слотов, доступных для записи.
// Порядок фиксированный, по возрастанию времени начала.
var TimeSlots = []TimeSlot{
	"12:00-13:00", "13:00-14:00", "14:00-15:00", "15:00-16:00",
	"16:00-17:00", "17:00-18:00", "18:00-19:00", "19:00-20:00",
	"20:00-21:00", "21:00-22:00", "22:00-23:00",
}

var slotIndex = func() map[TimeSlot]int {
	m := make(map[TimeSlot]int, len(TimeSlots))
	for i, s := range TimeSlots {
		m[s] = i
	}
	return m
}()

// ParseTimeSlot проверяет, что строка является одним из канонических слотов
func ParseTimeSlot(s string) (TimeSlot, error) {
	if _, ok := slotIndex[TimeSlot(s)]; !ok {
		return "", fmt.Errorf("unknown time slot %q", s)
	}
	return TimeSlot(s), nil
}

// Index возвращает позицию слота в каноническом порядке
func (s TimeSlot) Index() int {
	if i, ok := slotIndex[s]; ok {
		return i
	}
	return -1
}

// Before сравнивает слоты по каноническому порядку
func (s TimeSlot) Before(other TimeSlot) bool {
	return s.Index() < other.Index()
}
