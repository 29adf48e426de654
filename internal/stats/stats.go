package stats

import (
	"math"

	"github.com/ohmypoop/backend/pkg/model"
)

// Summary aggregates a record collection for one period. All fields are
// zero for an empty input; no division happens without a guard.
type Summary struct {
	TotalCount             int     `json:"total_count"`
	SuccessCount           int     `json:"success_count"`
	FailureCount           int     `json:"failure_count"`
	SuccessRate            int     `json:"success_rate"`
	AverageDurationSeconds int     `json:"average_duration_seconds"`
	DailyAverage           float64 `json:"daily_average"`
	AbnormalCount          int     `json:"abnormal_count"`
}

// Timing reports duration statistics over successful records that carry a
// duration. Records without a duration are excluded, not treated as zero.
type Timing struct {
	MinDurationSeconds     int `json:"min_duration_seconds"`
	AverageDurationSeconds int `json:"average_duration_seconds"`
	MaxDurationSeconds     int `json:"max_duration_seconds"`
	SampleCount            int `json:"sample_count"`
}

// HourDistribution is the four-bucket time-of-day histogram:
// morning [5,12), afternoon [12,17), evening [17,21), night [21,24)+[0,5).
type HourDistribution struct {
	Morning   int `json:"morning"`
	Afternoon int `json:"afternoon"`
	Evening   int `json:"evening"`
	Night     int `json:"night"`
}

// Summarize computes the period summary. periodDays is the caller-supplied
// inclusive day count of the query window, not derived from the records.
func Summarize(records []model.Record, periodDays int) Summary {
	s := Summary{TotalCount: len(records)}

	var durationSum, durationCount int
	for _, r := range records {
		if r.Success {
			s.SuccessCount++
			if r.DurationSeconds != nil {
				durationSum += *r.DurationSeconds
				durationCount++
			}
		}
		if r.IsAbnormal() {
			s.AbnormalCount++
		}
	}
	s.FailureCount = s.TotalCount - s.SuccessCount

	if s.TotalCount > 0 {
		s.SuccessRate = int(math.Round(float64(s.SuccessCount) / float64(s.TotalCount) * 100))
	}
	if durationCount > 0 {
		s.AverageDurationSeconds = int(math.Round(float64(durationSum) / float64(durationCount)))
	}
	if periodDays > 0 && s.TotalCount > 0 {
		s.DailyAverage = math.Round(float64(s.TotalCount)/float64(periodDays)*10) / 10
	}

	return s
}

// ComputeTiming derives min/avg/max duration over successful records with a
// duration present. All zeros when no record qualifies.
func ComputeTiming(records []model.Record) Timing {
	var t Timing
	var sum int
	for _, r := range records {
		if !r.Success || r.DurationSeconds == nil {
			continue
		}
		d := *r.DurationSeconds
		if t.SampleCount == 0 || d < t.MinDurationSeconds {
			t.MinDurationSeconds = d
		}
		if d > t.MaxDurationSeconds {
			t.MaxDurationSeconds = d
		}
		sum += d
		t.SampleCount++
	}
	if t.SampleCount > 0 {
		t.AverageDurationSeconds = int(math.Round(float64(sum) / float64(t.SampleCount)))
	}
	return t
}

// DistributeByHour buckets every record, successful or not, by the local
// hour of its start time. This feeds the distribution chart and is
// intentionally a separate pass from Summarize.
func DistributeByHour(records []model.Record) HourDistribution {
	var d HourDistribution
	for _, r := range records {
		switch h := r.StartTime.Hour(); {
		case h >= 5 && h < 12:
			d.Morning++
		case h >= 12 && h < 17:
			d.Afternoon++
		case h >= 17 && h < 21:
			d.Evening++
		default:
			d.Night++
		}
	}
	return d
}

// BestHour returns the exact hour (0-23) with the most successful records
// and its count. Ties go to the lowest hour. Returns (-1, 0) when there are
// no successful records so callers can distinguish "no data".
func BestHour(records []model.Record) (hour, count int) {
	var perHour [24]int
	for _, r := range records {
		if r.Success {
			perHour[r.StartTime.Hour()]++
		}
	}
	hour = -1
	for h := 0; h < 24; h++ {
		if perHour[h] > count {
			hour, count = h, perHour[h]
		}
	}
	return hour, count
}
