package conversation

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ryder-music/lessonbot/internal/model"
	"github.com/ryder-music/lessonbot/internal/service"
)

// AdminFlow - автомат админ-панели: просмотр расписания и переключение
// блокировок. Единственный автомат, который пишет в хранилище.
type AdminFlow struct {
	store   *service.ScheduleStore
	adminID int64
	logger  *zap.Logger
}

// NewAdminFlow создаёт автомат админ-панели
func NewAdminFlow(store *service.ScheduleStore, adminID int64, logger *zap.Logger) *AdminFlow {
	return &AdminFlow{
		store:   store,
		adminID: adminID,
		logger:  logger,
	}
}

// Authorize проверяет, что пользователь - настроенный администратор.
// Для остальных сессия не создаётся вовсе.
func (f *AdminFlow) Authorize(userID int64) error {
	if userID != f.adminID {
		return ErrNotAdmin
	}
	return nil
}

// Start открывает админ-меню
func (f *AdminFlow) Start(sess *Session) *Screen {
	sess.Touch()
	sess.State = StateAdminMenu
	return f.Current(sess)
}

// Handle обрабатывает одно событие админ-панели
func (f *AdminFlow) Handle(ctx context.Context, sess *Session, ev Event) (*Screen, error) {
	if ev.Kind == EventCancel {
		sess.State = StateCancelled
		return &Screen{Kind: ScreenAdminClosed, Terminal: true}, nil
	}

	switch sess.State {
	case StateAdminMenu:
		return f.handleMenu(sess, ev)
	case StateAdminScope:
		return f.handleScope(sess, ev)
	case StateAdminWeekday:
		return f.handleWeekday(sess, ev)
	case StateAdminDate:
		return f.handleDate(sess, ev)
	case StateAdminSlots:
		return f.handleSlots(ctx, sess, ev)
	}
	return nil, ErrUnexpectedEvent
}

// Current возвращает экран текущего состояния
func (f *AdminFlow) Current(sess *Session) *Screen {
	switch sess.State {
	case StateAdminMenu:
		return &Screen{Kind: ScreenAdminMenu}
	case StateAdminScope:
		return &Screen{Kind: ScreenAdminScope}
	case StateAdminWeekday:
		return &Screen{Kind: ScreenAdminWeekday}
	case StateAdminDate:
		return f.datesScreen(sess)
	case StateAdminSlots:
		return f.slotsScreen(sess)
	}
	return nil
}

func (f *AdminFlow) handleMenu(sess *Session, ev Event) (*Screen, error) {
	switch ev.Kind {
	case EventAdminView:
		sess.Touch()
		return &Screen{Kind: ScreenAdminView, Schedule: f.store.Snapshot()}, nil
	case EventAdminManage:
		sess.Touch()
		sess.State = StateAdminScope
		return f.Current(sess), nil
	case EventAdminClose:
		sess.State = StateCompleted
		return &Screen{Kind: ScreenAdminClosed, Terminal: true}, nil
	}
	return nil, ErrUnexpectedEvent
}

func (f *AdminFlow) handleScope(sess *Session, ev Event) (*Screen, error) {
	switch ev.Kind {
	case EventSelectScope:
		switch ev.Scope {
		case ScopeWeekly:
			sess.Touch()
			sess.Scope = ScopeWeekly
			sess.State = StateAdminWeekday
			return f.Current(sess), nil
		case ScopeSpecific:
			sess.Touch()
			sess.Scope = ScopeSpecific
			sess.Offset = 0
			sess.State = StateAdminDate
			return f.Current(sess), nil
		}
		return nil, ErrUnexpectedEvent
	case EventBack:
		sess.Touch()
		sess.State = StateAdminMenu
		return f.Current(sess), nil
	}
	return nil, ErrUnexpectedEvent
}

func (f *AdminFlow) handleWeekday(sess *Session, ev Event) (*Screen, error) {
	switch ev.Kind {
	case EventSelectWeekday:
		if ev.Weekday.Index() < 0 {
			return nil, ErrUnexpectedEvent
		}
		sess.Touch()
		sess.Weekday = ev.Weekday
		sess.State = StateAdminSlots
		return f.Current(sess), nil
	case EventBack:
		sess.Touch()
		sess.State = StateAdminScope
		return f.Current(sess), nil
	}
	return nil, ErrUnexpectedEvent
}

func (f *AdminFlow) handleDate(sess *Session, ev Event) (*Screen, error) {
	switch ev.Kind {
	case EventDatePage:
		sess.Touch()
		if ev.Dir == PagePrev {
			sess.Offset = service.PrevOffset(sess.Offset)
		} else {
			sess.Offset = service.NextOffset(sess.Offset)
		}
		return f.datesScreen(sess), nil
	case EventSelectDate:
		if !service.WithinHorizon(ev.Date) {
			return nil, service.ErrDateOutsideHorizon
		}
		sess.Touch()
		sess.Date = ev.Date
		sess.State = StateAdminSlots
		return f.Current(sess), nil
	case EventBack:
		sess.Touch()
		sess.State = StateAdminScope
		return f.Current(sess), nil
	}
	return nil, ErrUnexpectedEvent
}

func (f *AdminFlow) handleSlots(ctx context.Context, sess *Session, ev Event) (*Screen, error) {
	switch ev.Kind {
	case EventToggleSlot:
		if ev.Slot.Index() < 0 {
			return nil, ErrUnexpectedEvent
		}
		var err error
		if sess.Scope == ScopeWeekly {
			_, err = f.store.ToggleWeekly(ctx, sess.Weekday, ev.Slot)
		} else {
			_, err = f.store.ToggleSpecific(ctx, sess.Date, ev.Slot)
		}
		if err != nil {
			// Хранилище откатилось: экран до мутации перерисует вызывающий
			return nil, err
		}
		sess.Touch()
		return f.slotsScreen(sess), nil
	case EventDone:
		sess.Touch()
		sess.State = StateAdminMenu
		return f.Current(sess), nil
	case EventBack:
		// Возврат к выбору: ключ области сбрасывается
		sess.Touch()
		sess.Weekday = ""
		sess.Date = time.Time{}
		if sess.Scope == ScopeWeekly {
			sess.State = StateAdminWeekday
		} else {
			sess.State = StateAdminDate
		}
		return f.Current(sess), nil
	}
	return nil, ErrUnexpectedEvent
}

func (f *AdminFlow) datesScreen(sess *Session) *Screen {
	return &Screen{
		Kind:   ScreenAdminDates,
		Offset: sess.Offset,
		Dates:  service.DatePage(f.store.Snapshot(), sess.Offset, true),
	}
}

func (f *AdminFlow) slotsScreen(sess *Session) *Screen {
	snapshot := f.store.Snapshot()
	screen := &Screen{
		Kind:    ScreenAdminSlots,
		Scope:   sess.Scope,
		Weekday: sess.Weekday,
		Date:    sess.Date,
	}
	if sess.Scope == ScopeWeekly {
		screen.Blocked = snapshot.WeeklyBlocked[sess.Weekday]
	} else {
		screen.Blocked = snapshot.SpecificDates[model.DateKey(sess.Date)]
	}
	return screen
}
