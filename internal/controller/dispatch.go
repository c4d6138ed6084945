package controller

import (
	"strings"

	"github.com/ryder-music/lessonbot/internal/conversation"
	"github.com/ryder-music/lessonbot/internal/model"
)

// ========================
// Callback Data Patterns
// ========================
// Форматы callback data, используемые клавиатурами бота.
// Разбор в типизированные события происходит только здесь:
// автоматы диалогов сырые строки не получают.

// Главное меню и информационные экраны
const (
	cbTrial       = "trial"
	cbAbout       = "about"
	cbPreparation = "preparation"
	cbSchedule    = "schedule" // вход в диалог записи
	cbBackToMain  = "back_to_main"
)

// Диалог записи
const (
	cbLevel      = "level:" // level:beginner
	cbInstrument = "instr:" // instr:acoustic
	cbTimezone   = "tz:"    // tz:utc3, tz:custom
	cbDatesPrev  = "dates:prev"
	cbDatesNext  = "dates:next"
	cbSelectDate = "date:" // date:2006-01-02
	cbSelectSlot = "slot:" // slot:14:00-15:00
	cbBack       = "back"
)

// Админ-панель
const (
	cbAdminView     = "admin_view"
	cbAdminManage   = "admin_manage"
	cbAdminClose    = "admin_close"
	cbScope         = "scope:"  // scope:weekly, scope:specific
	cbSelectWeekday = "wday:"   // wday:Monday
	cbToggleSlot    = "toggle:" // toggle:14:00-15:00
	cbDone          = "done"
)

// decodeEvent разбирает callback data в событие диалога.
// Возвращает false для data, не входящей в словарь событий.
func decodeEvent(data string) (conversation.Event, bool) {
	switch {
	case data == cbBackToMain:
		return conversation.Event{Kind: conversation.EventCancel}, true
	case data == cbBack:
		return conversation.Event{Kind: conversation.EventBack}, true
	case data == cbDone:
		return conversation.Event{Kind: conversation.EventDone}, true
	case data == cbDatesPrev:
		return conversation.Event{Kind: conversation.EventDatePage, Dir: conversation.PagePrev}, true
	case data == cbDatesNext:
		return conversation.Event{Kind: conversation.EventDatePage, Dir: conversation.PageNext}, true
	case data == cbAdminView:
		return conversation.Event{Kind: conversation.EventAdminView}, true
	case data == cbAdminManage:
		return conversation.Event{Kind: conversation.EventAdminManage}, true
	case data == cbAdminClose:
		return conversation.Event{Kind: conversation.EventAdminClose}, true

	case strings.HasPrefix(data, cbLevel):
		return conversation.Event{
			Kind:  conversation.EventLevel,
			Value: strings.TrimPrefix(data, cbLevel),
		}, true
	case strings.HasPrefix(data, cbInstrument):
		return conversation.Event{
			Kind:  conversation.EventInstrument,
			Value: strings.TrimPrefix(data, cbInstrument),
		}, true
	case strings.HasPrefix(data, cbTimezone):
		return conversation.Event{
			Kind:  conversation.EventTimezone,
			Value: strings.TrimPrefix(data, cbTimezone),
		}, true
	case strings.HasPrefix(data, cbSelectDate):
		date, err := model.ParseDateKey(strings.TrimPrefix(data, cbSelectDate))
		if err != nil {
			return conversation.Event{}, false
		}
		return conversation.Event{Kind: conversation.EventSelectDate, Date: date}, true
	case strings.HasPrefix(data, cbSelectSlot):
		slot, err := model.ParseTimeSlot(strings.TrimPrefix(data, cbSelectSlot))
		if err != nil {
			return conversation.Event{}, false
		}
		return conversation.Event{Kind: conversation.EventSelectSlot, Slot: slot}, true
	case strings.HasPrefix(data, cbToggleSlot):
		slot, err := model.ParseTimeSlot(strings.TrimPrefix(data, cbToggleSlot))
		if err != nil {
			return conversation.Event{}, false
		}
		return conversation.Event{Kind: conversation.EventToggleSlot, Slot: slot}, true
	case strings.HasPrefix(data, cbSelectWeekday):
		day, err := model.ParseWeekday(strings.TrimPrefix(data, cbSelectWeekday))
		if err != nil {
			return conversation.Event{}, false
		}
		return conversation.Event{Kind: conversation.EventSelectWeekday, Weekday: day}, true
	case strings.HasPrefix(data, cbScope):
		switch strings.TrimPrefix(data, cbScope) {
		case "weekly":
			return conversation.Event{Kind: conversation.EventSelectScope, Scope: conversation.ScopeWeekly}, true
		case "specific":
			return conversation.Event{Kind: conversation.EventSelectScope, Scope: conversation.ScopeSpecific}, true
		}
		return conversation.Event{}, false
	}
	return conversation.Event{}, false
}
