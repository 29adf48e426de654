package calendar

import (
	"time"

	"github.com/ohmypoop/backend/internal/period"
	"github.com/ohmypoop/backend/pkg/model"
)

// DayStatus classifies a calendar day from the records logged on it.
type DayStatus string

const (
	// StatusEmpty marks a leading padding cell before the 1st's weekday.
	StatusEmpty DayStatus = "empty"
	// StatusNone marks a real day with no records.
	StatusNone DayStatus = "none"
	// StatusNormal marks a day with at least one successful movement.
	StatusNormal DayStatus = "normal"
	// StatusFailure marks a day with only failed attempts (constipation).
	StatusFailure DayStatus = "failure"
	// StatusAbnormal marks a day with an abnormal successful movement.
	StatusAbnormal DayStatus = "abnormal"
)

// Day is one cell of the month grid. Day is 0 for padding cells.
type Day struct {
	Day     int            `json:"day"`
	Status  DayStatus      `json:"status"`
	Records []model.Record `json:"records,omitempty"`
}

// statusRule is one entry of the ordered classification rule list.
// Rules are evaluated top to bottom; the first match wins.
type statusRule struct {
	status  DayStatus
	matches func(records []model.Record) bool
}

// The precedence is a product decision, not incidental: an abnormal
// successful movement is the most clinically notable signal and overrides a
// same-day failure, while a day with both a failure and a normal success
// falls through to normal.
var statusRules = []statusRule{
	{StatusAbnormal, func(rs []model.Record) bool {
		for _, r := range rs {
			if r.Success && r.IsAbnormal() {
				return true
			}
		}
		return false
	}},
	{StatusFailure, func(rs []model.Record) bool {
		anyFailure := false
		for _, r := range rs {
			if r.Success {
				return false
			}
			anyFailure = true
		}
		return anyFailure
	}},
	{StatusNormal, func(rs []model.Record) bool {
		for _, r := range rs {
			if r.Success {
				return true
			}
		}
		return false
	}},
}

// Classify derives the status for a single day's records.
func Classify(records []model.Record) DayStatus {
	for _, rule := range statusRules {
		if rule.matches(records) {
			return rule.status
		}
	}
	return StatusNone
}

// BuildMonth derives the display grid for one month: leading empty padding
// cells up to the weekday of the 1st (Sunday=0), then one entry per calendar
// day carrying that day's records and status. Records are matched to days by
// local date components; the caller is expected to pre-filter them to the
// target month.
func BuildMonth(records []model.Record, year int, month time.Month) []Day {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	daysInMonth := period.DaysInMonth(year, month)

	byDay := make(map[int][]model.Record)
	for _, r := range records {
		byDay[r.StartTime.Day()] = append(byDay[r.StartTime.Day()], r)
	}

	days := make([]Day, 0, int(first.Weekday())+daysInMonth)
	for i := 0; i < int(first.Weekday()); i++ {
		days = append(days, Day{Status: StatusEmpty})
	}
	for d := 1; d <= daysInMonth; d++ {
		days = append(days, Day{
			Day:     d,
			Status:  Classify(byDay[d]),
			Records: byDay[d],
		})
	}
	return days
}
