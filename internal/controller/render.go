package controller

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-telegram/bot/models"

	"github.com/ryder-music/lessonbot/internal/controller/keyboard"
	"github.com/ryder-music/lessonbot/internal/conversation"
	"github.com/ryder-music/lessonbot/internal/model"
	"github.com/ryder-music/lessonbot/internal/service"
)

// renderScreen превращает экран диалога в текст и клавиатуру
func renderScreen(screen *conversation.Screen) (string, *models.InlineKeyboardMarkup) {
	switch screen.Kind {
	case conversation.ScreenLevel:
		return "🎸 *Вы уже играли на гитаре?*", levelKeyboard()
	case conversation.ScreenInstrument:
		return "🎸 *Какая у вас гитара?*", instrumentKeyboard()
	case conversation.ScreenTimezone:
		return "🌍 *Выберите ваш часовой пояс:*", timezoneKeyboard()
	case conversation.ScreenCustomTimezone:
		return customTimezonePrompt, nil
	case conversation.ScreenDay:
		text := fmt.Sprintf("✅ Часовой пояс: *%s*\n\n📅 *Выберите день:*", screen.Timezone)
		return text, daysKeyboard(screen.Dates, screen.Offset, cbSelectDate, cbBack)
	case conversation.ScreenTime:
		text := fmt.Sprintf("✅ Часовой пояс: *%s*\n✅ День: *%s*\n\n🕐 *Выберите удобное время:*",
			screen.Timezone, model.FormatDateRU(screen.Date))
		return text, timeKeyboard(screen.Free)
	case conversation.ScreenBookingDone:
		return bookingDoneText(screen.Request), mainKeyboard()
	case conversation.ScreenCancelled:
		return welcomeText, mainKeyboard()

	case conversation.ScreenAdminMenu:
		return "🔧 *АДМИН-ПАНЕЛЬ*", adminMenuKeyboard()
	case conversation.ScreenAdminView:
		return adminViewText(screen.Schedule), adminMenuKeyboard()
	case conversation.ScreenAdminScope:
		return "*Тип блокировки:*", scopeKeyboard()
	case conversation.ScreenAdminWeekday:
		return "*Выберите день недели:*", weekdayKeyboard()
	case conversation.ScreenAdminDates:
		return "*Выберите дату:*", daysKeyboard(screen.Dates, screen.Offset, cbSelectDate, cbBack)
	case conversation.ScreenAdminSlots:
		return adminSlotsText(screen), adminSlotsKeyboard(screen.Blocked)
	case conversation.ScreenAdminClosed:
		return "✅ Админ-панель закрыта", nil
	}
	return "", nil
}

// errorMessage возвращает пользовательское сообщение для ошибки
func errorMessage(err error) string {
	switch {
	case errors.Is(err, conversation.ErrBadTimezone):
		return badTimezoneText
	case errors.Is(err, conversation.ErrSlotUnavailable):
		return "❌ Это время уже занято, выберите другое"
	case errors.Is(err, conversation.ErrNotAdmin):
		return "❌ Нет доступа"
	case errors.Is(err, service.ErrDateOutsideHorizon):
		return "❌ Эта дата за пределами окна записи"
	case errors.Is(err, conversation.ErrUnexpectedEvent):
		return ""
	default:
		return "❌ Не удалось сохранить изменения, попробуйте ещё раз"
	}
}

func mainKeyboard() *models.InlineKeyboardMarkup {
	return keyboard.NewBuilder().
		Row(keyboard.Button("🎯 Записаться на пробный урок", cbTrial)).
		Row(keyboard.Button("👨‍🏫 Об обучении и преподавателе", cbAbout)).
		Row(keyboard.Button("📋 Как подготовиться к пробному?", cbPreparation)).
		Build()
}

func infoKeyboard() *models.InlineKeyboardMarkup {
	return keyboard.NewBuilder().
		Row(keyboard.Button("📅 Записаться прямо сейчас", cbSchedule)).
		Row(keyboard.Button("⬅️ Вернуться в меню", cbBackToMain)).
		Build()
}

func levelKeyboard() *models.InlineKeyboardMarkup {
	return keyboard.NewBuilder().
		Row(keyboard.Button("🌱 Новичок", cbLevel+model.LevelBeginner)).
		Row(keyboard.Button("🎵 Уже играл(а)", cbLevel+model.LevelExperienced)).
		Row(keyboard.Button("⬅️ Отмена", cbBackToMain)).
		Build()
}

func instrumentKeyboard() *models.InlineKeyboardMarkup {
	return keyboard.NewBuilder().
		Row(keyboard.Button("🎸 Электрогитара", cbInstrument+model.InstrumentElectric)).
		Row(keyboard.Button("🪕 Акустическая", cbInstrument+model.InstrumentAcoustic)).
		Row(keyboard.Button("🙅 Пока нет гитары", cbInstrument+model.InstrumentNone)).
		Row(keyboard.Button("⬅️ Отмена", cbBackToMain)).
		Build()
}

func timezoneKeyboard() *models.InlineKeyboardMarkup {
	b := keyboard.NewBuilder()
	for _, key := range conversation.TimezonePresetOrder {
		b.Row(keyboard.Button(conversation.TimezonePresets[key], cbTimezone+key))
	}
	b.Row(keyboard.Button("Другой часовой пояс", cbTimezone+conversation.TimezoneCustom))
	b.Row(keyboard.Button("⬅️ Отмена", cbBackToMain))
	return b.Build()
}

// daysKeyboard строит страницу дат с навигацией по неделям
func daysKeyboard(dates []service.DateOption, offset int, selectPrefix, backData string) *models.InlineKeyboardMarkup {
	b := keyboard.NewBuilder()
	for _, opt := range dates {
		b.Row(keyboard.Button(model.FormatDateRU(opt.Date), selectPrefix+model.DateKey(opt.Date)))
	}

	var nav []models.InlineKeyboardButton
	if offset > 0 {
		nav = append(nav, keyboard.Button("⬅️ Раньше", cbDatesPrev))
	}
	if offset < model.HorizonDays-7 {
		nav = append(nav, keyboard.Button("Позже ➡️", cbDatesNext))
	}
	b.Row(nav...)

	b.Row(keyboard.Button("⬅️ Назад", backData))
	return b.Build()
}

func timeKeyboard(free []model.TimeSlot) *models.InlineKeyboardMarkup {
	b := keyboard.NewBuilder()
	for i := 0; i < len(free); i += 2 {
		row := []models.InlineKeyboardButton{
			keyboard.Button(string(free[i]), cbSelectSlot+string(free[i])),
		}
		if i+1 < len(free) {
			row = append(row, keyboard.Button(string(free[i+1]), cbSelectSlot+string(free[i+1])))
		}
		b.Row(row...)
	}
	b.Row(keyboard.Button("⬅️ Назад", cbBack))
	return b.Build()
}

func adminMenuKeyboard() *models.InlineKeyboardMarkup {
	return keyboard.NewBuilder().
		Row(keyboard.Button("📅 Просмотр расписания", cbAdminView)).
		Row(keyboard.Button("🚫 Управление блокировками", cbAdminManage)).
		Row(keyboard.Button("❌ Закрыть", cbAdminClose)).
		Build()
}

func scopeKeyboard() *models.InlineKeyboardMarkup {
	return keyboard.NewBuilder().
		Row(keyboard.Button("📆 Постоянно (каждую неделю)", cbScope+"weekly")).
		Row(keyboard.Button("📅 На конкретную дату", cbScope+"specific")).
		Row(keyboard.Button("⬅️ Назад", cbBack)).
		Build()
}

func weekdayKeyboard() *models.InlineKeyboardMarkup {
	b := keyboard.NewBuilder()
	for _, day := range model.Weekdays {
		b.Row(keyboard.Button(day.NameRU(), cbSelectWeekday+string(day)))
	}
	b.Row(keyboard.Button("⬅️ Назад", cbBack))
	return b.Build()
}

// adminSlotsKeyboard показывает все слоты с пометкой занятости
func adminSlotsKeyboard(blocked []model.TimeSlot) *models.InlineKeyboardMarkup {
	isBlocked := make(map[model.TimeSlot]bool, len(blocked))
	for _, s := range blocked {
		isBlocked[s] = true
	}

	mark := func(s model.TimeSlot) string {
		if isBlocked[s] {
			return "🚫 " + string(s)
		}
		return "✅ " + string(s)
	}

	b := keyboard.NewBuilder()
	slots := model.TimeSlots
	for i := 0; i < len(slots); i += 2 {
		row := []models.InlineKeyboardButton{
			keyboard.Button(mark(slots[i]), cbToggleSlot+string(slots[i])),
		}
		if i+1 < len(slots) {
			row = append(row, keyboard.Button(mark(slots[i+1]), cbToggleSlot+string(slots[i+1])))
		}
		b.Row(row...)
	}
	b.Row(keyboard.Button("✔️ Готово", cbDone))
	b.Row(keyboard.Button("⬅️ Назад", cbBack))
	return b.Build()
}

func adminSlotsText(screen *conversation.Screen) string {
	var target string
	if screen.Scope == conversation.ScopeWeekly {
		target = screen.Weekday.NameRU()
	} else {
		target = model.FormatDateRU(screen.Date)
	}
	return fmt.Sprintf("*%s*\n\nНажмите на слот, чтобы переключить:\n🚫 - заблокировано\n✅ - свободно", target)
}

// adminViewText показывает все блокировки: сначала еженедельные по дням,
// затем конкретные даты по возрастанию
func adminViewText(schedule model.Schedule) string {
	var sb strings.Builder
	sb.WriteString("📅 *ТЕКУЩЕЕ РАСПИСАНИЕ*\n\n*Постоянно заблокировано:*\n")

	for _, day := range model.Weekdays {
		slots := schedule.WeeklyBlocked[day]
		if len(slots) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("\n*%s:*\n", day.NameRU()))
		for _, s := range slots {
			sb.WriteString(fmt.Sprintf("• %s\n", s))
		}
	}

	if len(schedule.SpecificDates) > 0 {
		sb.WriteString("\n*Конкретные даты:*\n")
		dateKeys := make([]string, 0, len(schedule.SpecificDates))
		for key := range schedule.SpecificDates {
			dateKeys = append(dateKeys, key)
		}
		sort.Strings(dateKeys)
		for _, key := range dateKeys {
			date, err := model.ParseDateKey(key)
			title := key
			if err == nil {
				title = model.FormatDateRU(date)
			}
			sb.WriteString(fmt.Sprintf("\n*%s:*\n", title))
			for _, s := range schedule.SpecificDates[key] {
				sb.WriteString(fmt.Sprintf("• %s\n", s))
			}
		}
	}

	if len(schedule.WeeklyBlocked) == 0 && len(schedule.SpecificDates) == 0 {
		sb.WriteString("\nНет заблокированных слотов")
	}
	return sb.String()
}

func bookingDoneText(req *model.BookingRequest) string {
	if req.NoInstrument() {
		return "✅ *Заявка принята!*\n\n" +
			"Александр свяжется с вами, поможет подобрать гитару и выбрать время занятия! 🎸\n\n" +
			"Если нужно что-то изменить или задать вопрос - просто напишите сюда в чат."
	}
	return fmt.Sprintf(
		"✅ *Заявка принята!*\n\n"+
			"📅 День: *%s*\n"+
			"🕐 Время: *%s*\n"+
			"🌍 Часовой пояс: *%s*\n\n"+
			"Александр свяжется с вами в ближайшее время для подтверждения записи! 🎸\n\n"+
			"Если нужно что-то изменить или задать вопрос - просто напишите сюда в чат.",
		model.FormatDateRU(req.Date), req.Slot, req.Timezone)
}
