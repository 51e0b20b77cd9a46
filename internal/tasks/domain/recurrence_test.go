package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestShouldOccur_Daily(t *testing.T) {
	base := date(2026, time.February, 10)

	for i := 0; i < 60; i++ {
		assert.True(t, ShouldOccur(RecurrenceDaily, base, base.AddDate(0, 0, i), 0))
	}
	assert.False(t, ShouldOccur(RecurrenceDaily, base, base.AddDate(0, 0, -1), 0))
}

func TestShouldOccur_IgnoresTimeOfDay(t *testing.T) {
	base := time.Date(2026, time.February, 10, 23, 59, 0, 0, time.UTC)
	target := time.Date(2026, time.February, 10, 0, 1, 0, 0, time.UTC)
	assert.True(t, ShouldOccur(RecurrenceDaily, base, target, 0))
}

func TestShouldOccur_Weekly(t *testing.T) {
	// 2026-02-09 is a Monday.
	base := date(2026, time.February, 9)
	mask := MaskOf(time.Monday, time.Wednesday, time.Friday)

	for i := 0; i < 14; i++ {
		d := base.AddDate(0, 0, i)
		want := d.Weekday() == time.Monday || d.Weekday() == time.Wednesday || d.Weekday() == time.Friday
		assert.Equal(t, want, ShouldOccur(RecurrenceWeekly, base, d, mask), d.Format("Mon 2006-01-02"))
		assert.Equal(t, want, ShouldOccur(RecurrenceCustom, base, d, mask), d.Format("Mon 2006-01-02"))
	}
}

func TestShouldOccur_EmptyMaskFallsBackToBaseWeekday(t *testing.T) {
	// 2026-02-11 is a Wednesday.
	base := date(2026, time.February, 11)

	for i := 0; i < 21; i++ {
		d := base.AddDate(0, 0, i)
		want := d.Weekday() == time.Wednesday
		assert.Equal(t, want, ShouldOccur(RecurrenceWeekly, base, d, 0))
		assert.Equal(t, want, ShouldOccur(RecurrenceCustom, base, d, 0))
	}
}

func TestShouldOccur_MonthlyClampsToMonthEnd(t *testing.T) {
	base := date(2026, time.January, 31)

	for day := 1; day <= 28; day++ {
		assert.Equal(t, day == 28, ShouldOccur(RecurrenceMonthly, base, date(2026, time.February, day), 0))
	}
	assert.True(t, ShouldOccur(RecurrenceMonthly, base, date(2026, time.April, 30), 0))
	assert.True(t, ShouldOccur(RecurrenceMonthly, base, date(2026, time.March, 31), 0))
	assert.False(t, ShouldOccur(RecurrenceMonthly, base, date(2026, time.March, 30), 0))

	leapBase := date(2023, time.December, 31)
	for day := 1; day <= 29; day++ {
		assert.Equal(t, day == 29, ShouldOccur(RecurrenceMonthly, leapBase, date(2024, time.February, day), 0))
	}
}

func TestShouldOccur_MonthlyMidMonth(t *testing.T) {
	base := date(2026, time.January, 15)
	assert.True(t, ShouldOccur(RecurrenceMonthly, base, date(2026, time.February, 15), 0))
	assert.False(t, ShouldOccur(RecurrenceMonthly, base, date(2026, time.February, 16), 0))
	assert.False(t, ShouldOccur(RecurrenceMonthly, base, date(2025, time.December, 15), 0))
}

func TestShouldOccur_UnknownKind(t *testing.T) {
	assert.False(t, ShouldOccur("yearly", date(2026, 1, 1), date(2026, 1, 1), 0))
}

func TestWeekdayMask(t *testing.T) {
	assert.Equal(t, WeekdayMask(1), WeekdayBit(time.Monday))
	assert.Equal(t, WeekdayMask(1<<6), WeekdayBit(time.Sunday))
	assert.Equal(t, "mon,sun", MaskOf(time.Sunday, time.Monday).String())
	assert.True(t, AllWeekdays.Valid())
	assert.False(t, WeekdayMask(0x80).Valid())

	m, err := ParseWeekdayMask("Mon, wednesday ,fri")
	require.NoError(t, err)
	assert.Equal(t, MaskOf(time.Monday, time.Wednesday, time.Friday), m)

	m, err = ParseWeekdayMask("")
	require.NoError(t, err)
	assert.Zero(t, m)

	_, err = ParseWeekdayMask("funday")
	assert.ErrorIs(t, err, ErrInvalidWeekday)
}
