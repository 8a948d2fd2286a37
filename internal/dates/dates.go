// Package dates computes period boundaries and time-series bucket keys
// for grouping financial records.
package dates

import (
	"fmt"
	"time"
)

// Period names a calendar-aligned reporting window.
type Period string

const (
	// PeriodDay covers a single calendar day.
	PeriodDay Period = "day"
	// PeriodWeek covers Monday through Sunday of the reference week.
	PeriodWeek Period = "week"
	// PeriodMonth covers the reference calendar month.
	PeriodMonth Period = "month"
	// PeriodQuarter covers the reference calendar quarter.
	PeriodQuarter Period = "quarter"
	// PeriodYear covers the reference calendar year.
	PeriodYear Period = "year"
	// PeriodAll covers the trailing ten years.
	PeriodAll Period = "all"
)

// ParsePeriod validates a period name.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodQuarter, PeriodYear, PeriodAll:
		return Period(s), nil
	default:
		return "", fmt.Errorf("unknown period %q (day, week, month, quarter, year, all)", s)
	}
}

// Range returns the inclusive [start, end] date range for a period
// around the reference time. Start is midnight of the first day; End is
// the last nanosecond of the final day.
func Range(p Period, ref time.Time) (time.Time, time.Time) {
	day := StartOfDay(ref)

	switch p {
	case PeriodDay:
		return day, EndOfDay(day)
	case PeriodWeek:
		// Week starts on Monday.
		offset := (int(day.Weekday()) + 6) % 7
		start := day.AddDate(0, 0, -offset)
		return start, EndOfDay(start.AddDate(0, 0, 6))
	case PeriodMonth:
		start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		return start, EndOfDay(start.AddDate(0, 1, -1))
	case PeriodQuarter:
		quarter := (int(day.Month()) - 1) / 3
		start := time.Date(day.Year(), time.Month(quarter*3+1), 1, 0, 0, 0, 0, day.Location())
		return start, EndOfDay(start.AddDate(0, 3, -1))
	case PeriodYear:
		start := time.Date(day.Year(), time.January, 1, 0, 0, 0, 0, day.Location())
		return start, EndOfDay(time.Date(day.Year(), time.December, 31, 0, 0, 0, 0, day.Location()))
	case PeriodAll:
		return day.AddDate(-10, 0, 0), EndOfDay(day)
	default:
		start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		return start, EndOfDay(start.AddDate(0, 1, -1))
	}
}

// StartOfDay truncates a time to midnight in its location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last nanosecond of the day containing t.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// StartOfMonth truncates a time to the first day of its month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// AddMonths shifts a month-start time by n calendar months.
func AddMonths(t time.Time, n int) time.Time {
	return StartOfMonth(t).AddDate(0, n, 0)
}

// BucketUnit is the width of one time-series bucket.
type BucketUnit string

const (
	// BucketHour groups records by clock hour.
	BucketHour BucketUnit = "hour"
	// BucketDay groups records by calendar day.
	BucketDay BucketUnit = "day"
	// BucketMonth groups records by calendar month.
	BucketMonth BucketUnit = "month"
)

// ParseBucketUnit validates a bucket unit name.
func ParseBucketUnit(s string) (BucketUnit, error) {
	switch BucketUnit(s) {
	case BucketHour, BucketDay, BucketMonth:
		return BucketUnit(s), nil
	default:
		return "", fmt.Errorf("unknown bucket unit %q (hour, day, month)", s)
	}
}

// Truncate maps a time to the start of the bucket containing it.
func (u BucketUnit) Truncate(t time.Time) time.Time {
	switch u {
	case BucketHour:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
	case BucketDay:
		return StartOfDay(t)
	case BucketMonth:
		return StartOfMonth(t)
	default:
		return StartOfDay(t)
	}
}

// Next returns the start of the bucket after the one starting at t.
func (u BucketUnit) Next(t time.Time) time.Time {
	switch u {
	case BucketHour:
		return t.Add(time.Hour)
	case BucketDay:
		return t.AddDate(0, 0, 1)
	case BucketMonth:
		return t.AddDate(0, 1, 0)
	default:
		return t.AddDate(0, 0, 1)
	}
}

// Label renders the display label for a bucket starting at t.
func (u BucketUnit) Label(t time.Time) string {
	switch u {
	case BucketHour:
		return t.Format("15:04")
	case BucketDay:
		return t.Format("Jan 02")
	case BucketMonth:
		return t.Format("Jan 2006")
	default:
		return t.Format("2006-01-02")
	}
}

// DaysBetween counts inclusive calendar days from start to end.
func DaysBetween(start, end time.Time) int {
	s := StartOfDay(start)
	e := StartOfDay(end)
	if e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}
