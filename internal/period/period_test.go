package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParse(t *testing.T) {
	for _, valid := range []string{"day", "week", "month", "year"} {
		g, err := Parse(valid)
		require.NoError(t, err)
		assert.Equal(t, Granularity(valid), g)
	}

	_, err := Parse("fortnight")
	assert.Error(t, err)
	_, err = Parse("")
	assert.Error(t, err)
}

func TestCalc_Day(t *testing.T) {
	ref := time.Date(2024, time.March, 15, 13, 45, 12, 0, time.UTC)
	r := Calc(Day, ref)

	assert.Equal(t, date(2024, time.March, 15), r.Start)
	assert.Equal(t, time.Date(2024, time.March, 15, 23, 59, 59, 999000000, time.UTC), r.End)
	assert.Equal(t, 1, r.Days())
}

func TestCalc_Week_SundayStart(t *testing.T) {
	// 2024-03-06 is a Wednesday; the containing week is Mar 3 (Sun) - Mar 9 (Sat).
	ref := time.Date(2024, time.March, 6, 10, 0, 0, 0, time.UTC)
	r := Calc(Week, ref)

	assert.Equal(t, date(2024, time.March, 3), r.Start)
	assert.Equal(t, time.Sunday, r.Start.Weekday())
	assert.Equal(t, time.Saturday, r.End.Weekday())
	assert.Equal(t, 9, r.End.Day())
	assert.Equal(t, 7, r.Days())
}

func TestCalc_Week_RefOnSunday(t *testing.T) {
	ref := date(2024, time.March, 3) // Sunday
	r := Calc(Week, ref)
	assert.Equal(t, ref, r.Start)
}

func TestCalc_Month(t *testing.T) {
	tests := []struct {
		name    string
		ref     time.Time
		lastDay int
	}{
		{"january", date(2024, time.January, 15), 31},
		{"leap february", date(2024, time.February, 10), 29},
		{"non-leap february", date(2023, time.February, 10), 28},
		{"april", date(2024, time.April, 1), 30},
		{"december", date(2024, time.December, 31), 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Calc(Month, tt.ref)
			assert.Equal(t, 1, r.Start.Day())
			assert.Equal(t, tt.ref.Month(), r.Start.Month())
			assert.Equal(t, tt.lastDay, r.End.Day())
			assert.Equal(t, tt.ref.Month(), r.End.Month())
			assert.Equal(t, tt.lastDay, r.Days())
		})
	}
}

func TestCalc_Year(t *testing.T) {
	r := Calc(Year, date(2024, time.June, 20))
	assert.Equal(t, date(2024, time.January, 1), r.Start)
	assert.Equal(t, time.December, r.End.Month())
	assert.Equal(t, 31, r.End.Day())
	assert.Equal(t, 366, r.Days()) // 2024 is a leap year

	assert.Equal(t, 365, Calc(Year, date(2023, time.June, 20)).Days())
}

func TestRange_Contains(t *testing.T) {
	r := Calc(Month, date(2024, time.March, 15))
	assert.True(t, r.Contains(date(2024, time.March, 1)))
	assert.True(t, r.Contains(time.Date(2024, time.March, 31, 23, 59, 59, 0, time.UTC)))
	assert.False(t, r.Contains(date(2024, time.April, 1)))
	assert.False(t, r.Contains(time.Date(2024, time.February, 29, 23, 59, 59, 999000000, time.UTC)))
}

func TestStepNext_DayAndWeek(t *testing.T) {
	d := date(2024, time.March, 31)
	assert.Equal(t, date(2024, time.April, 1), StepNext(Day, d))
	assert.Equal(t, date(2024, time.April, 7), StepNext(Week, d))
}

func TestStepNext_MonthClampsDayOfMonth(t *testing.T) {
	// Jan 31 + 1 month clamps to the last day of February.
	assert.Equal(t, date(2024, time.February, 29), StepNext(Month, date(2024, time.January, 31)))
	assert.Equal(t, date(2023, time.February, 28), StepNext(Month, date(2023, time.January, 31)))
	// Mar 31 + 1 month clamps to Apr 30.
	assert.Equal(t, date(2024, time.April, 30), StepNext(Month, date(2024, time.March, 31)))
	// No clamp needed for mid-month days.
	assert.Equal(t, date(2024, time.February, 15), StepNext(Month, date(2024, time.January, 15)))
}

func TestStepPrevious_MonthClampsDayOfMonth(t *testing.T) {
	assert.Equal(t, date(2024, time.February, 29), StepPrevious(Month, date(2024, time.March, 31)))
	assert.Equal(t, date(2024, time.January, 15), StepPrevious(Month, date(2024, time.February, 15)))
}

func TestStep_YearClampsLeapDay(t *testing.T) {
	// Feb 29 + 1 year clamps to Feb 28.
	assert.Equal(t, date(2025, time.February, 28), StepNext(Year, date(2024, time.February, 29)))
	assert.Equal(t, date(2023, time.February, 28), StepPrevious(Year, date(2024, time.February, 29)))
}

func TestStep_PreservesTimeOfDay(t *testing.T) {
	d := time.Date(2024, time.January, 31, 8, 30, 15, 0, time.UTC)
	next := StepNext(Month, d)
	assert.Equal(t, 8, next.Hour())
	assert.Equal(t, 30, next.Minute())
	assert.Equal(t, 15, next.Second())
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, DaysInMonth(2024, time.January))
	assert.Equal(t, 29, DaysInMonth(2024, time.February))
	assert.Equal(t, 28, DaysInMonth(2100, time.February)) // century non-leap
	assert.Equal(t, 29, DaysInMonth(2000, time.February)) // 400-year leap
	assert.Equal(t, 30, DaysInMonth(2024, time.November))
	assert.Equal(t, 31, DaysInMonth(2024, time.December))
}

func TestFormatLabel(t *testing.T) {
	d := date(2024, time.March, 6)
	assert.Equal(t, "Mar 6, 2024", FormatLabel(Day, d))
	assert.Equal(t, "Mar 3 ~ Mar 9, 2024", FormatLabel(Week, d))
	assert.Equal(t, "March 2024", FormatLabel(Month, d))
	assert.Equal(t, "2024", FormatLabel(Year, d))
}
