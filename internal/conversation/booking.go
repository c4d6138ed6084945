package conversation

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ryder-music/lessonbot/internal/model"
	"github.com/ryder-music/lessonbot/internal/service"
)

// Notifier доставляет заявку администратору. Доставка fire-and-forget:
// ошибка логируется реализацией и до ученика не доходит.
type Notifier interface {
	BookingCreated(ctx context.Context, req *model.BookingRequest)
}

// BookingFlow - автомат записи ученика на пробное занятие.
// Читает расписание через снимки хранилища и никогда его не меняет:
// завершённая заявка слот не резервирует, подтверждение времени
// остаётся за администратором.
type BookingFlow struct {
	store    *service.ScheduleStore
	notifier Notifier
	logger   *zap.Logger

	// Необязательные шаги анкеты
	askLevel      bool
	askInstrument bool
}

// NewBookingFlow создаёт автомат записи
func NewBookingFlow(store *service.ScheduleStore, notifier Notifier, logger *zap.Logger, askLevel, askInstrument bool) *BookingFlow {
	return &BookingFlow{
		store:         store,
		notifier:      notifier,
		logger:        logger,
		askLevel:      askLevel,
		askInstrument: askInstrument,
	}
}

// Start переводит сессию в первое состояние анкеты
func (f *BookingFlow) Start(sess *Session) *Screen {
	sess.Touch()
	switch {
	case f.askLevel:
		sess.State = StateAwaitingLevel
	case f.askInstrument:
		sess.State = StateAwaitingInstrument
	default:
		sess.State = StateAwaitingTimezone
	}
	return f.Current(sess)
}

// Handle обрабатывает одно событие диалога записи.
// Событие, не определённое для текущего состояния, возвращает
// ErrUnexpectedEvent; данные сессии при этом не меняются.
func (f *BookingFlow) Handle(ctx context.Context, sess *Session, ev Event) (*Screen, error) {
	if ev.Kind == EventCancel {
		sess.State = StateCancelled
		return &Screen{Kind: ScreenCancelled, Terminal: true}, nil
	}

	switch sess.State {
	case StateAwaitingLevel:
		return f.handleLevel(sess, ev)
	case StateAwaitingInstrument:
		return f.handleInstrument(ctx, sess, ev)
	case StateAwaitingTimezone:
		return f.handleTimezone(sess, ev)
	case StateAwaitingCustomTimezone:
		return f.handleCustomTimezone(sess, ev)
	case StateAwaitingDay:
		return f.handleDay(sess, ev)
	case StateAwaitingTime:
		return f.handleTime(ctx, sess, ev)
	}
	return nil, ErrUnexpectedEvent
}

// Current возвращает экран текущего состояния (для повторной отрисовки)
func (f *BookingFlow) Current(sess *Session) *Screen {
	switch sess.State {
	case StateAwaitingLevel:
		return &Screen{Kind: ScreenLevel}
	case StateAwaitingInstrument:
		return &Screen{Kind: ScreenInstrument}
	case StateAwaitingTimezone:
		return &Screen{Kind: ScreenTimezone}
	case StateAwaitingCustomTimezone:
		return &Screen{Kind: ScreenCustomTimezone}
	case StateAwaitingDay:
		return f.dayScreen(sess)
	case StateAwaitingTime:
		return f.timeScreen(sess)
	}
	return nil
}

func (f *BookingFlow) handleLevel(sess *Session, ev Event) (*Screen, error) {
	if ev.Kind != EventLevel {
		return nil, ErrUnexpectedEvent
	}
	if ev.Value != model.LevelBeginner && ev.Value != model.LevelExperienced {
		return nil, ErrUnexpectedEvent
	}

	sess.Touch()
	sess.Level = ev.Value
	if f.askInstrument {
		sess.State = StateAwaitingInstrument
	} else {
		sess.State = StateAwaitingTimezone
	}
	return f.Current(sess), nil
}

func (f *BookingFlow) handleInstrument(ctx context.Context, sess *Session, ev Event) (*Screen, error) {
	if ev.Kind != EventInstrument {
		return nil, ErrUnexpectedEvent
	}
	switch ev.Value {
	case model.InstrumentElectric, model.InstrumentAcoustic:
		sess.Touch()
		sess.Instrument = ev.Value
		sess.State = StateAwaitingTimezone
		return f.Current(sess), nil
	case model.InstrumentNone:
		// Без инструмента дата и время не выбираются,
		// но заявка администратору всё равно уходит
		sess.Touch()
		sess.Instrument = ev.Value
		return f.complete(ctx, sess), nil
	}
	return nil, ErrUnexpectedEvent
}

func (f *BookingFlow) handleTimezone(sess *Session, ev Event) (*Screen, error) {
	if ev.Kind != EventTimezone {
		return nil, ErrUnexpectedEvent
	}
	if ev.Value == TimezoneCustom {
		sess.Touch()
		sess.State = StateAwaitingCustomTimezone
		return f.Current(sess), nil
	}

	label, ok := TimezonePresets[ev.Value]
	if !ok {
		return nil, ErrUnexpectedEvent
	}
	sess.Touch()
	sess.Timezone = label
	sess.Offset = 0
	sess.State = StateAwaitingDay
	return f.Current(sess), nil
}

func (f *BookingFlow) handleCustomTimezone(sess *Session, ev Event) (*Screen, error) {
	if ev.Kind != EventCustomTimezoneText {
		return nil, ErrUnexpectedEvent
	}

	// Смещение вводится относительно Москвы, от -12 до +12
	offset, err := strconv.Atoi(strings.TrimSpace(ev.Value))
	if err != nil || offset < -12 || offset > 12 {
		return nil, ErrBadTimezone
	}

	sess.Touch()
	sess.Timezone = fmt.Sprintf("UTC%+d (Москва%+d)", offset+3, offset)
	sess.Offset = 0
	sess.State = StateAwaitingDay
	return f.Current(sess), nil
}

func (f *BookingFlow) handleDay(sess *Session, ev Event) (*Screen, error) {
	switch ev.Kind {
	case EventDatePage:
		sess.Touch()
		if ev.Dir == PagePrev {
			sess.Offset = service.PrevOffset(sess.Offset)
		} else {
			sess.Offset = service.NextOffset(sess.Offset)
		}
		return f.dayScreen(sess), nil
	case EventSelectDate:
		if !service.WithinHorizon(ev.Date) {
			return nil, service.ErrDateOutsideHorizon
		}
		sess.Touch()
		sess.Date = ev.Date
		sess.State = StateAwaitingTime
		return f.Current(sess), nil
	case EventBack:
		sess.Touch()
		sess.State = StateAwaitingTimezone
		return f.Current(sess), nil
	}
	return nil, ErrUnexpectedEvent
}

func (f *BookingFlow) handleTime(ctx context.Context, sess *Session, ev Event) (*Screen, error) {
	switch ev.Kind {
	case EventSelectSlot:
		free := service.FreeSlots(f.store.Snapshot(), sess.Date)
		if !slotIn(free, ev.Slot) {
			return nil, ErrSlotUnavailable
		}
		sess.Touch()
		sess.Slot = ev.Slot
		return f.complete(ctx, sess), nil
	case EventBack:
		// Смещение страницы дат в сессии сохраняется
		sess.Touch()
		sess.State = StateAwaitingDay
		return f.Current(sess), nil
	}
	return nil, ErrUnexpectedEvent
}

// complete формирует заявку, отдаёт её нотификатору и завершает сессию
func (f *BookingFlow) complete(ctx context.Context, sess *Session) *Screen {
	req := model.NewBookingRequest(sess.UserID, sess.Username, sess.FullName)
	req.Level = sess.Level
	req.Instrument = sess.Instrument
	req.Timezone = sess.Timezone
	req.Date = sess.Date
	req.Slot = sess.Slot

	sess.State = StateCompleted
	f.notifier.BookingCreated(ctx, req)

	f.logger.Info("Booking request completed",
		zap.String("request_id", req.ID),
		zap.Int64("telegram_id", sess.UserID),
		zap.String("level", req.Level),
		zap.String("instrument", req.Instrument),
		zap.String("slot", string(req.Slot)))

	return &Screen{Kind: ScreenBookingDone, Request: req, Terminal: true}
}

func (f *BookingFlow) dayScreen(sess *Session) *Screen {
	return &Screen{
		Kind:     ScreenDay,
		Timezone: sess.Timezone,
		Offset:   sess.Offset,
		Dates:    service.DatePage(f.store.Snapshot(), sess.Offset, false),
	}
}

func (f *BookingFlow) timeScreen(sess *Session) *Screen {
	return &Screen{
		Kind:     ScreenTime,
		Timezone: sess.Timezone,
		Date:     sess.Date,
		Free:     service.FreeSlots(f.store.Snapshot(), sess.Date),
	}
}

func slotIn(slots []model.TimeSlot, slot model.TimeSlot) bool {
	for _, s := range slots {
		if s == slot {
			return true
		}
	}
	return false
}
