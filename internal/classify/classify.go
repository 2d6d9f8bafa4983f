// Package classify maps relative values to priority tiers and alert
// decisions. The percentile mode is primary; the absolute quantified-value
// mode is the documented legacy alternative and is kept only for
// compatibility with the first schema generation.
package classify

import "github.com/echosense-labs/echosense/internal/podcast"

// Percentile boundaries for the priority tiers.
const (
	criticalBoundary = 99
	highBoundary     = 90
	mediumBoundary   = 50
)

// Classify maps a percentile to a priority tier. Pure function: same input,
// same tier, no hidden state.
func Classify(percentile float64) podcast.Priority {
	switch {
	case percentile >= criticalBoundary:
		return podcast.PriorityCritical
	case percentile >= highBoundary:
		return podcast.PriorityHigh
	case percentile >= mediumBoundary:
		return podcast.PriorityMedium
	default:
		return podcast.PriorityLow
	}
}

// ShouldAlert decides whether a suggestion with the given priority is worth
// interrupting the user, given the configured percentile cutoff. A cutoff
// of 1 alerts only on critical (top-1%) findings; the coarser settings
// (5, 10, 20) also alert on high (top-10%) findings.
func ShouldAlert(priority podcast.Priority, cutoff int) bool {
	switch priority {
	case podcast.PriorityCritical:
		return true
	case podcast.PriorityHigh:
		return cutoff > 1
	default:
		return false
	}
}

// Exceeds implements the legacy absolute mode: true when ANY populated
// field of the quantified value meets or exceeds its threshold. A zero
// field is treated as unpopulated. This drives a binary alert decision
// with no tiering.
func Exceeds(value podcast.QuantifiedValue, thresholds podcast.ThresholdSettings) bool {
	if value.Money > 0 && value.Money >= thresholds.Money {
		return true
	}
	if value.Fans > 0 && value.Fans >= thresholds.Fans {
		return true
	}
	if value.EngagementRate > 0 && value.EngagementRate >= thresholds.EngagementRate {
		return true
	}
	if value.BrandValue > 0 && value.BrandValue >= thresholds.BrandValue {
		return true
	}
	return false
}

// VisibleSuggestions filters out suggestions whose domain is disabled in
// the user settings. Filtering is a view concern only: history keeps the
// unfiltered list.
func VisibleSuggestions(suggestions []podcast.Suggestion, settings podcast.UserSettings) []podcast.Suggestion {
	var visible []podcast.Suggestion
	for _, s := range suggestions {
		if settings.SuggestionTypes.Enabled(s.Domain()) {
			visible = append(visible, s)
		}
	}
	return visible
}

// VisibleDisciplines filters out records whose discipline is disabled.
// Custom disciplines are always visible.
func VisibleDisciplines(records []podcast.DisciplineRecord, settings podcast.UserSettings) []podcast.DisciplineRecord {
	var visible []podcast.DisciplineRecord
	for _, r := range records {
		if !r.Discipline.IsFixed() || settings.Disciplines.Enabled(r.Discipline) {
			visible = append(visible, r)
		}
	}
	return visible
}

// AlertWorthy returns the visible suggestions that should trigger the
// critical-content dialog under the current settings. Returns nil when
// alerting is disabled.
func AlertWorthy(suggestions []podcast.Suggestion, settings podcast.UserSettings) []podcast.Suggestion {
	if !settings.AlertThreshold.Enabled {
		return nil
	}
	var worthy []podcast.Suggestion
	for _, s := range VisibleSuggestions(suggestions, settings) {
		if ShouldAlert(s.Base().Priority, settings.AlertThreshold.Percentile) {
			worthy = append(worthy, s)
		}
	}
	return worthy
}
