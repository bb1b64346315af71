package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRealClock_Now(t *testing.T) {
	clock := NewRealClock()

	before := time.Now()
	now := clock.Now()
	after := time.Now()

	assert.False(t, now.Before(before), "clock time should not be before start")
	assert.False(t, now.After(after), "clock time should not be after end")
}

func TestMockClock_Now(t *testing.T) {
	fixedTime := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
	clock := NewMockClock(fixedTime)

	// Should always return the fixed time
	assert.Equal(t, fixedTime, clock.Now())
	assert.Equal(t, fixedTime, clock.Now())
}

func TestMockClock_Set(t *testing.T) {
	initialTime := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	newTime := time.Date(2026, 1, 15, 14, 30, 0, 0, time.UTC)

	clock := NewMockClock(initialTime)
	assert.Equal(t, initialTime, clock.Now())

	clock.Set(newTime)
	assert.Equal(t, newTime, clock.Now())
}

func TestMockClock_Advance(t *testing.T) {
	initialTime := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	clock := NewMockClock(initialTime)

	clock.Advance(30 * time.Minute)

	expected := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, expected, clock.Now())
}

func TestMockClock_AdvanceDays(t *testing.T) {
	initialTime := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	clock := NewMockClock(initialTime)

	clock.AdvanceDays(5)

	expected := time.Date(2026, 1, 20, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, expected, clock.Now())
}

func TestMockClock_NegativeAdvance(t *testing.T) {
	initialTime := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	clock := NewMockClock(initialTime)

	// Can go backwards too
	clock.Advance(-2 * time.Hour)

	expected := time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, expected, clock.Now())
}

func TestNewMockClockFromString(t *testing.T) {
	clock := NewMockClockFromString("2026-01-15T10:30:00Z")

	expected := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, expected, clock.Now())
}

func TestNewMockClockFromString_Panic(t *testing.T) {
	assert.Panics(t, func() {
		NewMockClockFromString("invalid-time")
	})
}
