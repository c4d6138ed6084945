package conversation

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ryder-music/lessonbot/internal/model"
	"github.com/ryder-music/lessonbot/internal/repository"
	"github.com/ryder-music/lessonbot/internal/service"
)

// captureNotifier запоминает переданные заявки
type captureNotifier struct {
	requests []*model.BookingRequest
}

func (n *captureNotifier) BookingCreated(_ context.Context, req *model.BookingRequest) {
	n.requests = append(n.requests, req)
}

func newTestStore(t *testing.T) *service.ScheduleStore {
	t.Helper()
	repo := repository.NewFileScheduleRepository(filepath.Join(t.TempDir(), "schedule.json"))
	store := service.NewScheduleStore(repo, zap.NewNop())
	store.Load(context.Background())
	return store
}

func newBookingFixture(t *testing.T) (*BookingFlow, *captureNotifier, *service.ScheduleStore) {
	t.Helper()
	store := newTestStore(t)
	notifier := &captureNotifier{}
	return NewBookingFlow(store, notifier, zap.NewNop(), true, true), notifier, store
}

func newSession() *Session {
	return &Session{UserID: 100500, Username: "student", FullName: "Иван Иванов"}
}

func nearestWeekday(day model.Weekday) time.Time {
	date := service.Today()
	for model.WeekdayOf(date) != day {
		date = date.AddDate(0, 0, 1)
	}
	return date
}

func TestBookingHappyPath(t *testing.T) {
	flow, notifier, store := newBookingFixture(t)
	ctx := context.Background()

	// Еженедельная блокировка не должна помешать свободному слоту
	_, err := store.ToggleWeekly(ctx, "Tuesday", "13:00-14:00")
	require.NoError(t, err)
	before := store.Snapshot()

	sess := newSession()
	screen := flow.Start(sess)
	require.Equal(t, ScreenLevel, screen.Kind)

	screen, err = flow.Handle(ctx, sess, Event{Kind: EventLevel, Value: model.LevelBeginner})
	require.NoError(t, err)
	require.Equal(t, ScreenInstrument, screen.Kind)

	screen, err = flow.Handle(ctx, sess, Event{Kind: EventInstrument, Value: model.InstrumentAcoustic})
	require.NoError(t, err)
	require.Equal(t, ScreenTimezone, screen.Kind)

	screen, err = flow.Handle(ctx, sess, Event{Kind: EventTimezone, Value: "utc3"})
	require.NoError(t, err)
	require.Equal(t, ScreenDay, screen.Kind)
	assert.Equal(t, "UTC+3 (Москва)", screen.Timezone)

	tuesday := nearestWeekday("Tuesday")
	screen, err = flow.Handle(ctx, sess, Event{Kind: EventSelectDate, Date: tuesday})
	require.NoError(t, err)
	require.Equal(t, ScreenTime, screen.Kind)
	assert.Len(t, screen.Free, 10)
	assert.NotContains(t, screen.Free, model.TimeSlot("13:00-14:00"))

	screen, err = flow.Handle(ctx, sess, Event{Kind: EventSelectSlot, Slot: "14:00-15:00"})
	require.NoError(t, err)
	require.Equal(t, ScreenBookingDone, screen.Kind)
	assert.True(t, screen.Terminal)
	assert.Equal(t, StateCompleted, sess.State)

	require.Len(t, notifier.requests, 1)
	req := notifier.requests[0]
	assert.NotEmpty(t, req.ID)
	assert.Equal(t, int64(100500), req.UserID)
	assert.Equal(t, model.LevelBeginner, req.Level)
	assert.Equal(t, model.InstrumentAcoustic, req.Instrument)
	assert.Equal(t, "UTC+3 (Москва)", req.Timezone)
	assert.True(t, req.Date.Equal(tuesday))
	assert.Equal(t, model.TimeSlot("14:00-15:00"), req.Slot)

	// Завершённая заявка слот не резервирует
	assert.True(t, store.Snapshot().Equal(before))
}

func TestBookingNoInstrumentShortCircuits(t *testing.T) {
	flow, notifier, _ := newBookingFixture(t)
	ctx := context.Background()

	sess := newSession()
	flow.Start(sess)

	_, err := flow.Handle(ctx, sess, Event{Kind: EventLevel, Value: model.LevelExperienced})
	require.NoError(t, err)

	screen, err := flow.Handle(ctx, sess, Event{Kind: EventInstrument, Value: model.InstrumentNone})
	require.NoError(t, err)
	require.Equal(t, ScreenBookingDone, screen.Kind)
	assert.True(t, screen.Terminal)

	require.Len(t, notifier.requests, 1)
	req := notifier.requests[0]
	assert.True(t, req.NoInstrument())
	assert.True(t, req.Date.IsZero(), "no date is collected without an instrument")
	assert.Empty(t, req.Slot)
}

func TestBookingCustomTimezone(t *testing.T) {
	flow, _, _ := newBookingFixture(t)
	ctx := context.Background()

	sess := newSession()
	flow.Start(sess)
	_, err := flow.Handle(ctx, sess, Event{Kind: EventLevel, Value: model.LevelBeginner})
	require.NoError(t, err)
	_, err = flow.Handle(ctx, sess, Event{Kind: EventInstrument, Value: model.InstrumentElectric})
	require.NoError(t, err)

	screen, err := flow.Handle(ctx, sess, Event{Kind: EventTimezone, Value: TimezoneCustom})
	require.NoError(t, err)
	require.Equal(t, ScreenCustomTimezone, screen.Kind)

	// Неразборчивый ввод: состояние и данные не меняются
	_, err = flow.Handle(ctx, sess, Event{Kind: EventCustomTimezoneText, Value: "завтра"})
	assert.ErrorIs(t, err, ErrBadTimezone)
	assert.Equal(t, StateAwaitingCustomTimezone, sess.State)
	assert.Empty(t, sess.Timezone)

	// Смещение вне диапазона
	_, err = flow.Handle(ctx, sess, Event{Kind: EventCustomTimezoneText, Value: "15"})
	assert.ErrorIs(t, err, ErrBadTimezone)

	screen, err = flow.Handle(ctx, sess, Event{Kind: EventCustomTimezoneText, Value: "+3"})
	require.NoError(t, err)
	require.Equal(t, ScreenDay, screen.Kind)
	assert.Equal(t, "UTC+6 (Москва+3)", sess.Timezone)
}

func TestBookingDayPaginationAndBack(t *testing.T) {
	flow, _, _ := newBookingFixture(t)
	ctx := context.Background()

	sess := newSession()
	flow.Start(sess)
	_, err := flow.Handle(ctx, sess, Event{Kind: EventLevel, Value: model.LevelBeginner})
	require.NoError(t, err)
	_, err = flow.Handle(ctx, sess, Event{Kind: EventInstrument, Value: model.InstrumentAcoustic})
	require.NoError(t, err)
	_, err = flow.Handle(ctx, sess, Event{Kind: EventTimezone, Value: "utc5"})
	require.NoError(t, err)

	// Листание меняет только смещение и остаётся в том же состоянии
	screen, err := flow.Handle(ctx, sess, Event{Kind: EventDatePage, Dir: PageNext})
	require.NoError(t, err)
	assert.Equal(t, ScreenDay, screen.Kind)
	assert.Equal(t, 7, sess.Offset)

	screen, err = flow.Handle(ctx, sess, Event{Kind: EventDatePage, Dir: PageNext})
	require.NoError(t, err)
	assert.Equal(t, 7, sess.Offset, "next on the last page is a no-op")

	// Выбор даты и возврат назад сохраняют смещение
	date := service.Today().AddDate(0, 0, 8)
	_, err = flow.Handle(ctx, sess, Event{Kind: EventSelectDate, Date: date})
	require.NoError(t, err)
	require.Equal(t, StateAwaitingTime, sess.State)

	screen, err = flow.Handle(ctx, sess, Event{Kind: EventBack})
	require.NoError(t, err)
	assert.Equal(t, ScreenDay, screen.Kind)
	assert.Equal(t, 7, sess.Offset)
}

func TestBookingRejectsDateOutsideHorizon(t *testing.T) {
	flow, _, _ := newBookingFixture(t)
	ctx := context.Background()

	sess := newSession()
	flow.Start(sess)
	_, err := flow.Handle(ctx, sess, Event{Kind: EventLevel, Value: model.LevelBeginner})
	require.NoError(t, err)
	_, err = flow.Handle(ctx, sess, Event{Kind: EventInstrument, Value: model.InstrumentAcoustic})
	require.NoError(t, err)
	_, err = flow.Handle(ctx, sess, Event{Kind: EventTimezone, Value: "utc3"})
	require.NoError(t, err)

	_, err = flow.Handle(ctx, sess, Event{
		Kind: EventSelectDate,
		Date: service.Today().AddDate(0, 0, model.HorizonDays+1),
	})
	assert.ErrorIs(t, err, service.ErrDateOutsideHorizon)
	assert.Equal(t, StateAwaitingDay, sess.State)
}

func TestBookingRejectsBlockedSlot(t *testing.T) {
	flow, notifier, store := newBookingFixture(t)
	ctx := context.Background()

	tuesday := nearestWeekday("Tuesday")
	_, err := store.ToggleSpecific(ctx, tuesday, "18:00-19:00")
	require.NoError(t, err)

	sess := newSession()
	flow.Start(sess)
	_, err = flow.Handle(ctx, sess, Event{Kind: EventLevel, Value: model.LevelBeginner})
	require.NoError(t, err)
	_, err = flow.Handle(ctx, sess, Event{Kind: EventInstrument, Value: model.InstrumentAcoustic})
	require.NoError(t, err)
	_, err = flow.Handle(ctx, sess, Event{Kind: EventTimezone, Value: "utc3"})
	require.NoError(t, err)
	_, err = flow.Handle(ctx, sess, Event{Kind: EventSelectDate, Date: tuesday})
	require.NoError(t, err)

	_, err = flow.Handle(ctx, sess, Event{Kind: EventSelectSlot, Slot: "18:00-19:00"})
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Equal(t, StateAwaitingTime, sess.State)
	assert.Empty(t, notifier.requests)
}

func TestBookingUnexpectedEventLeavesStateUntouched(t *testing.T) {
	flow, notifier, _ := newBookingFixture(t)
	ctx := context.Background()

	sess := newSession()
	flow.Start(sess)
	require.Equal(t, StateAwaitingLevel, sess.State)

	_, err := flow.Handle(ctx, sess, Event{Kind: EventSelectSlot, Slot: "12:00-13:00"})
	assert.ErrorIs(t, err, ErrUnexpectedEvent)
	assert.Equal(t, StateAwaitingLevel, sess.State)

	_, err = flow.Handle(ctx, sess, Event{Kind: EventLevel, Value: "virtuoso"})
	assert.ErrorIs(t, err, ErrUnexpectedEvent)
	assert.Empty(t, sess.Level)
	assert.Empty(t, notifier.requests)
}

func TestBookingCancelFromAnyState(t *testing.T) {
	flow, notifier, _ := newBookingFixture(t)
	ctx := context.Background()

	sess := newSession()
	flow.Start(sess)
	_, err := flow.Handle(ctx, sess, Event{Kind: EventLevel, Value: model.LevelBeginner})
	require.NoError(t, err)

	screen, err := flow.Handle(ctx, sess, Event{Kind: EventCancel})
	require.NoError(t, err)
	assert.Equal(t, ScreenCancelled, screen.Kind)
	assert.True(t, screen.Terminal)
	assert.Equal(t, StateCancelled, sess.State)
	assert.Empty(t, notifier.requests)
}

func TestBookingOptionalStepsDisabled(t *testing.T) {
	store := newTestStore(t)
	notifier := &captureNotifier{}
	flow := NewBookingFlow(store, notifier, zap.NewNop(), false, false)

	sess := newSession()
	screen := flow.Start(sess)
	assert.Equal(t, ScreenTimezone, screen.Kind)
	assert.Equal(t, StateAwaitingTimezone, sess.State)
}
