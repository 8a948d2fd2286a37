// Package analytics transforms flat collections of financial records
// into derived views: period summaries, category breakdowns, time-series
// buckets, budget and goal progress, and best-effort insight heuristics.
//
// Every operation is a pure function over an already-resident slice: no
// I/O, no hidden state, no mutation of the input records. Callers fetch
// records from storage and pass the reference time explicitly.
package analytics

// Config names the thresholds used by progress calculations and insight
// heuristics. The zero value is not usable; start from DefaultConfig.
type Config struct {
	// BudgetWarningPercent is the spent percentage at which a budget
	// turns from ok to warning.
	BudgetWarningPercent float64
	// BudgetExceededPercent is the spent percentage at which a budget is
	// considered blown.
	BudgetExceededPercent float64

	// GoalAtRiskDays is how close a deadline must be before an
	// under-funded goal is flagged.
	GoalAtRiskDays int
	// GoalAtRiskPercent is the progress below which a near-deadline goal
	// is flagged.
	GoalAtRiskPercent float64

	// RecurringMinOccurrences is the minimum repetitions of a
	// description+category pair to count as a recurring expense.
	RecurringMinOccurrences int

	// UnusualWindowDays is the trailing window examined for outliers.
	UnusualWindowDays int
	// UnusualStdDevFactor is the number of standard deviations above the
	// mean that marks an expense as unusual.
	UnusualStdDevFactor float64
	// UnusualMinRecords is the minimum window population for the outlier
	// statistics to be meaningful.
	UnusualMinRecords int

	// ForecastMinMonths is the minimum series length for trend fitting.
	ForecastMinMonths int
	// ForecastMinNonZero is the minimum number of non-zero points a
	// series needs to carry signal.
	ForecastMinNonZero int

	// TrendWindowMonths is the comparison window for monthly trends.
	TrendWindowMonths int
	// TrendShiftPercent is the relative change beyond which a trend is
	// reported as up or down.
	TrendShiftPercent float64
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig() Config {
	return Config{
		BudgetWarningPercent:    80,
		BudgetExceededPercent:   100,
		GoalAtRiskDays:          30,
		GoalAtRiskPercent:       80,
		RecurringMinOccurrences: 3,
		UnusualWindowDays:       90,
		UnusualStdDevFactor:     2,
		UnusualMinRecords:       5,
		ForecastMinMonths:       6,
		ForecastMinNonZero:      3,
		TrendWindowMonths:       3,
		TrendShiftPercent:       5,
	}
}
