package dates

import (
	"testing"
	"time"
)

func TestRange(t *testing.T) {
	// A Wednesday mid-month.
	ref := time.Date(2025, 6, 18, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		period    Period
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "day",
			period:    PeriodDay,
			wantStart: time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 6, 19, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond),
		},
		{
			name:      "week starts monday",
			period:    PeriodWeek,
			wantStart: time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 6, 23, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond),
		},
		{
			name:      "month",
			period:    PeriodMonth,
			wantStart: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond),
		},
		{
			name:      "quarter",
			period:    PeriodQuarter,
			wantStart: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond),
		},
		{
			name:      "year",
			period:    PeriodYear,
			wantStart: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond),
		},
		{
			name:      "all is trailing ten years",
			period:    PeriodAll,
			wantStart: time.Date(2015, 6, 18, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 6, 19, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := Range(tt.period, ref)
			if !start.Equal(tt.wantStart) {
				t.Errorf("start = %v, want %v", start, tt.wantStart)
			}
			if !end.Equal(tt.wantEnd) {
				t.Errorf("end = %v, want %v", end, tt.wantEnd)
			}
		})
	}
}

func TestRangeWeekOnMonday(t *testing.T) {
	// A Monday must be its own week start.
	monday := time.Date(2025, 6, 16, 8, 0, 0, 0, time.UTC)
	start, _ := Range(PeriodWeek, monday)
	if !start.Equal(time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("week start for a Monday = %v", start)
	}

	// A Sunday belongs to the week that started six days earlier.
	sunday := time.Date(2025, 6, 22, 8, 0, 0, 0, time.UTC)
	start, _ = Range(PeriodWeek, sunday)
	if !start.Equal(time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("week start for a Sunday = %v", start)
	}
}

func TestParsePeriod(t *testing.T) {
	for _, valid := range []string{"day", "week", "month", "quarter", "year", "all"} {
		if _, err := ParsePeriod(valid); err != nil {
			t.Errorf("ParsePeriod(%q) unexpected error: %v", valid, err)
		}
	}
	if _, err := ParsePeriod("fortnight"); err == nil {
		t.Error("ParsePeriod must reject unknown periods")
	}
}

func TestBucketUnitTruncate(t *testing.T) {
	ref := time.Date(2025, 6, 18, 14, 37, 22, 500, time.UTC)

	tests := []struct {
		unit BucketUnit
		want time.Time
	}{
		{unit: BucketHour, want: time.Date(2025, 6, 18, 14, 0, 0, 0, time.UTC)},
		{unit: BucketDay, want: time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC)},
		{unit: BucketMonth, want: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		if got := tt.unit.Truncate(ref); !got.Equal(tt.want) {
			t.Errorf("%s.Truncate = %v, want %v", tt.unit, got, tt.want)
		}
	}
}

func TestBucketUnitNext(t *testing.T) {
	start := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	if got := BucketMonth.Next(StartOfMonth(start)); !got.Equal(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("month Next = %v", got)
	}

	day := time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC)
	if got := BucketDay.Next(day); !got.Equal(day.AddDate(0, 0, 1)) {
		t.Errorf("day Next = %v", got)
	}
	if got := BucketHour.Next(day); !got.Equal(day.Add(time.Hour)) {
		t.Errorf("hour Next = %v", got)
	}
}

func TestBucketUnitLabel(t *testing.T) {
	ref := time.Date(2025, 6, 8, 9, 0, 0, 0, time.UTC)

	if got := BucketHour.Label(ref); got != "09:00" {
		t.Errorf("hour label = %q", got)
	}
	if got := BucketDay.Label(ref); got != "Jun 08" {
		t.Errorf("day label = %q", got)
	}
	if got := BucketMonth.Label(ref); got != "Jun 2025" {
		t.Errorf("month label = %q", got)
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{
			name:  "same day is one",
			start: time.Date(2025, 6, 18, 9, 0, 0, 0, time.UTC),
			end:   time.Date(2025, 6, 18, 23, 0, 0, 0, time.UTC),
			want:  1,
		},
		{
			name:  "full month",
			start: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
			want:  30,
		},
		{
			name:  "inverted range is zero",
			start: time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC),
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(tt.start, tt.end); got != tt.want {
				t.Errorf("DaysBetween = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAddMonths(t *testing.T) {
	jan := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	if got := AddMonths(jan, 1); !got.Equal(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("AddMonths(+1) = %v", got)
	}
	if got := AddMonths(jan, -2); !got.Equal(time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("AddMonths(-2) = %v", got)
	}
}
