package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleWeeklyKeepsCanonicalOrder(t *testing.T) {
	s := NewSchedule()

	require.True(t, s.ToggleWeekly("Tuesday", "15:00-16:00"))
	require.True(t, s.ToggleWeekly("Tuesday", "12:00-13:00"))

	assert.Equal(t, []TimeSlot{"12:00-13:00", "15:00-16:00"}, s.WeeklyBlocked["Tuesday"])
}

func TestToggleWeeklyRemovesEmptyKey(t *testing.T) {
	s := NewSchedule()

	require.True(t, s.ToggleWeekly("Tuesday", "13:00-14:00"))
	require.Contains(t, s.WeeklyBlocked, Weekday("Tuesday"))

	require.False(t, s.ToggleWeekly("Tuesday", "13:00-14:00"))
	assert.NotContains(t, s.WeeklyBlocked, Weekday("Tuesday"),
		"weekday with no blocked slots must not keep an empty entry")
}

func TestToggleSpecificRemovesEmptyKey(t *testing.T) {
	s := NewSchedule()

	require.True(t, s.ToggleSpecific("2024-11-19", "13:00-14:00"))
	require.False(t, s.ToggleSpecific("2024-11-19", "13:00-14:00"))

	assert.NotContains(t, s.SpecificDates, "2024-11-19")
}

func TestToggleMutatesReceiver(t *testing.T) {
	s := NewSchedule()
	p := &s

	p.ToggleWeekly("Monday", "12:00-13:00")
	p.ToggleSpecific("2024-11-19", "13:00-14:00")

	assert.True(t, s.WeeklyBlockedAt("Monday", "12:00-13:00"))
	assert.True(t, s.DateBlockedAt("2024-11-19", "13:00-14:00"))
}

func TestCloneIsIndependent(t *testing.T) {
	s := NewSchedule()
	s.ToggleWeekly("Monday", "12:00-13:00")

	c := s.Clone()
	c.ToggleWeekly("Monday", "13:00-14:00")
	c.ToggleSpecific("2024-11-19", "14:00-15:00")

	assert.Equal(t, []TimeSlot{"12:00-13:00"}, s.WeeklyBlocked["Monday"])
	assert.Empty(t, s.SpecificDates)
}

func TestEqualIgnoresSlotOrder(t *testing.T) {
	a := NewSchedule()
	a.WeeklyBlocked["Monday"] = []TimeSlot{"12:00-13:00", "13:00-14:00"}

	b := NewSchedule()
	b.WeeklyBlocked["Monday"] = []TimeSlot{"13:00-14:00", "12:00-13:00"}

	assert.True(t, a.Equal(b))

	b.ToggleSpecific("2024-11-19", "12:00-13:00")
	assert.False(t, a.Equal(b))
}
