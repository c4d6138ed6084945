package conversation

import (
	"time"

	"github.com/ryder-music/lessonbot/internal/model"
)

// EventKind - тип входящего события диалога.
// Транспортные callback-строки разбираются в эти события один раз,
// на границе диспетчера; автоматы сырые строки не видят.
type EventKind string

const (
	EventLevel              EventKind = "level"
	EventInstrument         EventKind = "instrument"
	EventTimezone           EventKind = "timezone"
	EventCustomTimezoneText EventKind = "custom_timezone_text"
	EventDatePage           EventKind = "date_page"
	EventSelectDate         EventKind = "select_date"
	EventSelectWeekday      EventKind = "select_weekday"
	EventSelectSlot         EventKind = "select_slot"
	EventToggleSlot         EventKind = "toggle_slot"
	EventBack               EventKind = "back"
	EventDone               EventKind = "done"
	EventCancel             EventKind = "cancel"
	EventAdminView          EventKind = "admin_view"
	EventAdminManage        EventKind = "admin_manage"
	EventAdminClose         EventKind = "admin_close"
	EventSelectScope        EventKind = "select_scope"
)

// PageDir - направление листания страницы дат
type PageDir string

const (
	PagePrev PageDir = "prev"
	PageNext PageDir = "next"
)

// Scope - область действия админской блокировки
type Scope string

const (
	ScopeWeekly   Scope = "weekly"
	ScopeSpecific Scope = "specific"
)

// Event - типизированное событие диалога. Заполнены только поля,
// относящиеся к конкретному Kind.
type Event struct {
	Kind    EventKind
	Value   string // уровень, инструмент, ключ часового пояса, текст смещения
	Dir     PageDir
	Date    time.Time
	Weekday model.Weekday
	Slot    model.TimeSlot
	Scope   Scope
}

// TimezoneCustom - ключ выбора "другой часовой пояс"
const TimezoneCustom = "custom"

// TimezonePresets - предустановленные часовые пояса, как их видит ученик
var TimezonePresets = map[string]string{
	"utc3":  "UTC+3 (Москва)",
	"utc4":  "UTC+4 (Самара)",
	"utc5":  "UTC+5 (Екатеринбург)",
	"utc7":  "UTC+7 (Красноярск/Новосибирск)",
	"utc10": "UTC+10 (Владивосток)",
}

// TimezonePresetOrder - порядок показа предустановок на клавиатуре
var TimezonePresetOrder = []string{"utc3", "utc4", "utc5", "utc7", "utc10"}
