package model

import "sort"

// HorizonDays - горизонт записи: даты дальше этого окна не предлагаются и не редактируются
const HorizonDays = 14

// Schedule - документ с заблокированными слотами.
// Структура совпадает с хранимым форматом schedule.json:
// еженедельные блокировки по дням недели и блокировки на конкретные даты.
// Инвариант: ключи с пустым списком слотов в документе не хранятся.
type Schedule struct {
	WeeklyBlocked map[Weekday][]TimeSlot `json:"weekly_blocked"`
	SpecificDates map[string][]TimeSlot  `json:"specific_dates"`
}

// NewSchedule создаёт пустой документ
func NewSchedule() Schedule {
	return Schedule{
		WeeklyBlocked: make(map[Weekday][]TimeSlot),
		SpecificDates: make(map[string][]TimeSlot),
	}
}

// Clone возвращает глубокую копию документа
func (s Schedule) Clone() Schedule {
	c := Schedule{
		WeeklyBlocked: make(map[Weekday][]TimeSlot, len(s.WeeklyBlocked)),
		SpecificDates: make(map[string][]TimeSlot, len(s.SpecificDates)),
	}
	for day, slots := range s.WeeklyBlocked {
		c.WeeklyBlocked[day] = append([]TimeSlot(nil), slots...)
	}
	for date, slots := range s.SpecificDates {
		c.SpecificDates[date] = append([]TimeSlot(nil), slots...)
	}
	return c
}

// Equal сравнивает документы по содержимому, без учёта порядка слотов
func (s Schedule) Equal(other Schedule) bool {
	if len(s.WeeklyBlocked) != len(other.WeeklyBlocked) || len(s.SpecificDates) != len(other.SpecificDates) {
		return false
	}
	for day, slots := range s.WeeklyBlocked {
		if !sameSlotSet(slots, other.WeeklyBlocked[day]) {
			return false
		}
	}
	for date, slots := range s.SpecificDates {
		if !sameSlotSet(slots, other.SpecificDates[date]) {
			return false
		}
	}
	return true
}

// WeeklyBlockedAt сообщает, заблокирован ли слот еженедельным правилом
func (s Schedule) WeeklyBlockedAt(day Weekday, slot TimeSlot) bool {
	return containsSlot(s.WeeklyBlocked[day], slot)
}

// DateBlockedAt сообщает, заблокирован ли слот на конкретную дату
func (s Schedule) DateBlockedAt(dateKey string, slot TimeSlot) bool {
	return containsSlot(s.SpecificDates[dateKey], slot)
}

// ToggleWeekly переключает слот в еженедельном наборе дня.
// Возвращает новое состояние: true - заблокирован.
func (s *Schedule) ToggleWeekly(day Weekday, slot TimeSlot) bool {
	slots, blocked := toggleSlot(s.WeeklyBlocked[day], slot)
	if len(slots) == 0 {
		delete(s.WeeklyBlocked, day)
	} else {
		s.WeeklyBlocked[day] = slots
	}
	return blocked
}

// ToggleSpecific переключает слот в наборе конкретной даты
func (s *Schedule) ToggleSpecific(dateKey string, slot TimeSlot) bool {
	slots, blocked := toggleSlot(s.SpecificDates[dateKey], slot)
	if len(slots) == 0 {
		delete(s.SpecificDates, dateKey)
	} else {
		s.SpecificDates[dateKey] = slots
	}
	return blocked
}

func containsSlot(slots []TimeSlot, slot TimeSlot) bool {
	for _, s := range slots {
		if s == slot {
			return true
		}
	}
	return false
}

// toggleSlot добавляет или убирает слот, поддерживая канонический порядок
func toggleSlot(slots []TimeSlot, slot TimeSlot) ([]TimeSlot, bool) {
	for i, s := range slots {
		if s == slot {
			return append(slots[:i], slots[i+1:]...), false
		}
	}
	slots = append(slots, slot)
	sort.Slice(slots, func(i, j int) bool { return slots[i].Before(slots[j]) })
	return slots, true
}

func sameSlotSet(a, b []TimeSlot) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[TimeSlot]struct{}, len(a))
	for _, s := range a {
		set[s] = struct{}{}
	}
	for _, s := range b {
		if _, ok := set[s]; !ok {
			return false
		}
	}
	return true
}
