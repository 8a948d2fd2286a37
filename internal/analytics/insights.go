package analytics

import (
	"fmt"
	"time"

	"github.com/tallyfin/tally/internal/model"
)

// InsightKind labels the heuristic that produced an insight.
type InsightKind string

const (
	// InsightRecurring flags a repeating expense.
	InsightRecurring InsightKind = "recurring"
	// InsightUnusual flags an outlier expense.
	InsightUnusual InsightKind = "unusual"
)

// Insight is one human-readable finding over the transaction history.
type Insight struct {
	Kind   InsightKind
	Title  string
	Detail string
	Amount model.Money
}

// Detector is a pluggable insight strategy. Detectors are pure: same
// records and reference time, same findings.
type Detector func(records []model.Transaction, now time.Time) []Insight

// RecurringDetector wraps DetectRecurring as a Detector.
func RecurringDetector(cfg Config) Detector {
	return func(records []model.Transaction, _ time.Time) []Insight {
		insights := make([]Insight, 0)
		for _, group := range DetectRecurring(records, cfg) {
			insights = append(insights, Insight{
				Kind:  InsightRecurring,
				Title: group.Description,
				Detail: fmt.Sprintf("%d occurrences totaling %s (avg %s)",
					group.Occurrences, group.Total, group.Average),
				Amount: group.Total,
			})
		}
		return insights
	}
}

// UnusualDetector wraps DetectUnusual as a Detector.
func UnusualDetector(cfg Config) Detector {
	return func(records []model.Transaction, now time.Time) []Insight {
		insights := make([]Insight, 0)
		for _, outlier := range DetectUnusual(records, now, cfg) {
			insights = append(insights, Insight{
				Kind:  InsightUnusual,
				Title: outlier.Transaction.Description,
				Detail: fmt.Sprintf("%s on %s is above the typical %s (threshold %s)",
					outlier.Transaction.Amount,
					outlier.Transaction.Date.Format("2006-01-02"),
					outlier.Average, outlier.Threshold),
				Amount: outlier.Transaction.Amount,
			})
		}
		return insights
	}
}

// CollectInsights runs each detector in order and concatenates the
// findings.
func CollectInsights(records []model.Transaction, now time.Time, detectors ...Detector) []Insight {
	insights := make([]Insight, 0)
	for _, detect := range detectors {
		insights = append(insights, detect(records, now)...)
	}
	return insights
}
