package conversation

import (
	"time"

	"github.com/ryder-music/lessonbot/internal/model"
	"github.com/ryder-music/lessonbot/internal/service"
)

// ScreenKind - что показать пользователю после обработки события
type ScreenKind string

const (
	ScreenLevel          ScreenKind = "level"
	ScreenInstrument     ScreenKind = "instrument"
	ScreenTimezone       ScreenKind = "timezone"
	ScreenCustomTimezone ScreenKind = "custom_timezone"
	ScreenDay            ScreenKind = "day"
	ScreenTime           ScreenKind = "time"
	ScreenBookingDone    ScreenKind = "booking_done"
	ScreenCancelled      ScreenKind = "cancelled"

	ScreenAdminMenu    ScreenKind = "admin_menu"
	ScreenAdminView    ScreenKind = "admin_view"
	ScreenAdminScope   ScreenKind = "admin_scope"
	ScreenAdminWeekday ScreenKind = "admin_weekday"
	ScreenAdminDates   ScreenKind = "admin_dates"
	ScreenAdminSlots   ScreenKind = "admin_slots"
	ScreenAdminClosed  ScreenKind = "admin_closed"
)

// Screen описывает состояние для отрисовки. Ядро не знает о клавиатурах
// и текстах: оно отдаёт только данные, презентация остаётся контроллеру.
type Screen struct {
	Kind ScreenKind

	Timezone string
	Offset   int
	Dates    []service.DateOption
	Date     time.Time
	Free     []model.TimeSlot

	Scope    Scope
	Weekday  model.Weekday
	Blocked  []model.TimeSlot
	Schedule model.Schedule

	Request *model.BookingRequest

	// Terminal: после отрисовки сессия уничтожается
	Terminal bool
}
