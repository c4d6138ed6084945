package conversation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ryder-music/lessonbot/internal/model"
	"github.com/ryder-music/lessonbot/internal/repository"
	"github.com/ryder-music/lessonbot/internal/service"
)

const testAdminID = int64(42)

func newAdminFixture(t *testing.T) (*AdminFlow, *service.ScheduleStore) {
	t.Helper()
	store := newTestStore(t)
	return NewAdminFlow(store, testAdminID, zap.NewNop()), store
}

func TestAdminAuthorize(t *testing.T) {
	flow, _ := newAdminFixture(t)

	assert.NoError(t, flow.Authorize(testAdminID))
	assert.ErrorIs(t, flow.Authorize(testAdminID+1), ErrNotAdmin)
}

func TestAdminViewCarriesSchedule(t *testing.T) {
	flow, store := newAdminFixture(t)
	ctx := context.Background()

	_, err := store.ToggleWeekly(ctx, "Monday", "12:00-13:00")
	require.NoError(t, err)

	sess := &Session{UserID: testAdminID}
	flow.Start(sess)

	screen, err := flow.Handle(ctx, sess, Event{Kind: EventAdminView})
	require.NoError(t, err)
	assert.Equal(t, ScreenAdminView, screen.Kind)
	assert.Equal(t, []model.TimeSlot{"12:00-13:00"}, screen.Schedule.WeeklyBlocked["Monday"])
	// Просмотр из меню не выводит
	assert.Equal(t, StateAdminMenu, sess.State)
}

func TestAdminWeeklyToggleRoundTrip(t *testing.T) {
	flow, store := newAdminFixture(t)
	ctx := context.Background()

	sess := &Session{UserID: testAdminID}
	flow.Start(sess)

	screen, err := flow.Handle(ctx, sess, Event{Kind: EventAdminManage})
	require.NoError(t, err)
	require.Equal(t, ScreenAdminScope, screen.Kind)

	screen, err = flow.Handle(ctx, sess, Event{Kind: EventSelectScope, Scope: ScopeWeekly})
	require.NoError(t, err)
	require.Equal(t, ScreenAdminWeekday, screen.Kind)

	screen, err = flow.Handle(ctx, sess, Event{Kind: EventSelectWeekday, Weekday: "Tuesday"})
	require.NoError(t, err)
	require.Equal(t, ScreenAdminSlots, screen.Kind)
	assert.Empty(t, screen.Blocked)

	screen, err = flow.Handle(ctx, sess, Event{Kind: EventToggleSlot, Slot: "13:00-14:00"})
	require.NoError(t, err)
	assert.Equal(t, []model.TimeSlot{"13:00-14:00"}, screen.Blocked)

	tuesday := nearestWeekday("Tuesday")
	assert.Len(t, service.FreeSlots(store.Snapshot(), tuesday), 10)

	// Повторное переключение возвращает исходное состояние без ключа дня
	screen, err = flow.Handle(ctx, sess, Event{Kind: EventToggleSlot, Slot: "13:00-14:00"})
	require.NoError(t, err)
	assert.Empty(t, screen.Blocked)
	assert.NotContains(t, store.Snapshot().WeeklyBlocked, model.Weekday("Tuesday"))
	assert.Len(t, service.FreeSlots(store.Snapshot(), tuesday), len(model.TimeSlots))

	screen, err = flow.Handle(ctx, sess, Event{Kind: EventDone})
	require.NoError(t, err)
	assert.Equal(t, ScreenAdminMenu, screen.Kind)
	assert.Equal(t, StateAdminMenu, sess.State)
}

func TestAdminSpecificDateToggle(t *testing.T) {
	flow, store := newAdminFixture(t)
	ctx := context.Background()

	sess := &Session{UserID: testAdminID}
	flow.Start(sess)

	_, err := flow.Handle(ctx, sess, Event{Kind: EventAdminManage})
	require.NoError(t, err)

	screen, err := flow.Handle(ctx, sess, Event{Kind: EventSelectScope, Scope: ScopeSpecific})
	require.NoError(t, err)
	require.Equal(t, ScreenAdminDates, screen.Kind)
	// Админу страница показывает и полностью занятые дни
	assert.Len(t, screen.Dates, 7)

	date := service.Today().AddDate(0, 0, 3)
	screen, err = flow.Handle(ctx, sess, Event{Kind: EventSelectDate, Date: date})
	require.NoError(t, err)
	require.Equal(t, ScreenAdminSlots, screen.Kind)

	screen, err = flow.Handle(ctx, sess, Event{Kind: EventToggleSlot, Slot: "20:00-21:00"})
	require.NoError(t, err)
	assert.Equal(t, []model.TimeSlot{"20:00-21:00"}, screen.Blocked)
	assert.Equal(t, []model.TimeSlot{"20:00-21:00"}, store.Snapshot().SpecificDates[model.DateKey(date)])
}

func TestAdminRejectsDateOutsideHorizon(t *testing.T) {
	flow, _ := newAdminFixture(t)
	ctx := context.Background()

	sess := &Session{UserID: testAdminID}
	flow.Start(sess)
	_, err := flow.Handle(ctx, sess, Event{Kind: EventAdminManage})
	require.NoError(t, err)
	_, err = flow.Handle(ctx, sess, Event{Kind: EventSelectScope, Scope: ScopeSpecific})
	require.NoError(t, err)

	_, err = flow.Handle(ctx, sess, Event{
		Kind: EventSelectDate,
		Date: service.Today().AddDate(0, 0, model.HorizonDays),
	})
	assert.ErrorIs(t, err, service.ErrDateOutsideHorizon)
	assert.Equal(t, StateAdminDate, sess.State)
}

func TestAdminBackDiscardsScopeKey(t *testing.T) {
	flow, _ := newAdminFixture(t)
	ctx := context.Background()

	sess := &Session{UserID: testAdminID}
	flow.Start(sess)
	_, err := flow.Handle(ctx, sess, Event{Kind: EventAdminManage})
	require.NoError(t, err)
	_, err = flow.Handle(ctx, sess, Event{Kind: EventSelectScope, Scope: ScopeWeekly})
	require.NoError(t, err)
	_, err = flow.Handle(ctx, sess, Event{Kind: EventSelectWeekday, Weekday: "Friday"})
	require.NoError(t, err)

	screen, err := flow.Handle(ctx, sess, Event{Kind: EventBack})
	require.NoError(t, err)
	assert.Equal(t, ScreenAdminWeekday, screen.Kind)
	assert.Empty(t, sess.Weekday)
	assert.True(t, sess.Date.IsZero())
}

func TestAdminToggleKeepsStoreOnPersistFailure(t *testing.T) {
	repo := &flakyRepo{}
	store := service.NewScheduleStore(repo, zap.NewNop())
	store.Load(context.Background())
	flow := NewAdminFlow(store, testAdminID, zap.NewNop())
	ctx := context.Background()

	sess := &Session{UserID: testAdminID}
	flow.Start(sess)
	_, err := flow.Handle(ctx, sess, Event{Kind: EventAdminManage})
	require.NoError(t, err)
	_, err = flow.Handle(ctx, sess, Event{Kind: EventSelectScope, Scope: ScopeWeekly})
	require.NoError(t, err)
	_, err = flow.Handle(ctx, sess, Event{Kind: EventSelectWeekday, Weekday: "Monday"})
	require.NoError(t, err)

	repo.fail = true
	_, err = flow.Handle(ctx, sess, Event{Kind: EventToggleSlot, Slot: "12:00-13:00"})
	require.Error(t, err)
	assert.Empty(t, store.Snapshot().WeeklyBlocked)
	// Состояние не меняется: вызывающий перерисует прежний экран
	assert.Equal(t, StateAdminSlots, sess.State)
	assert.Empty(t, flow.Current(sess).Blocked)
}

func TestAdminUnexpectedEvent(t *testing.T) {
	flow, _ := newAdminFixture(t)
	ctx := context.Background()

	sess := &Session{UserID: testAdminID}
	flow.Start(sess)

	_, err := flow.Handle(ctx, sess, Event{Kind: EventToggleSlot, Slot: "12:00-13:00"})
	assert.ErrorIs(t, err, ErrUnexpectedEvent)
	assert.Equal(t, StateAdminMenu, sess.State)
}

// flakyRepo сохраняет в память и начинает отказывать по флагу
type flakyRepo struct {
	fail  bool
	saved model.Schedule
}

func (r *flakyRepo) Load(_ context.Context) (model.Schedule, error) {
	if r.saved.WeeklyBlocked == nil {
		return model.NewSchedule(), nil
	}
	return r.saved.Clone(), nil
}

func (r *flakyRepo) Save(_ context.Context, schedule model.Schedule) error {
	if r.fail {
		return errors.New("disk full")
	}
	r.saved = schedule.Clone()
	return nil
}

var _ repository.ScheduleRepository = (*flakyRepo)(nil)
