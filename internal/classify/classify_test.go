package classify

import (
	"testing"

	"github.com/echosense-labs/echosense/internal/podcast"
)

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		percentile float64
		want       podcast.Priority
	}{
		{100, podcast.PriorityCritical},
		{99, podcast.PriorityCritical},
		{98.9, podcast.PriorityHigh},
		{90, podcast.PriorityHigh},
		{89.9, podcast.PriorityMedium},
		{68, podcast.PriorityMedium},
		{50, podcast.PriorityMedium},
		{49.9, podcast.PriorityLow},
		{0, podcast.PriorityLow},
	}
	for _, tt := range tests {
		if got := Classify(tt.percentile); got != tt.want {
			t.Errorf("Classify(%v) = %s, want %s", tt.percentile, got, tt.want)
		}
	}
}

func TestShouldAlert(t *testing.T) {
	tests := []struct {
		priority podcast.Priority
		cutoff   int
		want     bool
	}{
		{podcast.PriorityCritical, 1, true},
		{podcast.PriorityCritical, 20, true},
		{podcast.PriorityHigh, 1, false},
		{podcast.PriorityHigh, 5, true},
		{podcast.PriorityHigh, 10, true},
		{podcast.PriorityMedium, 20, false},
		{podcast.PriorityLow, 20, false},
	}
	for _, tt := range tests {
		if got := ShouldAlert(tt.priority, tt.cutoff); got != tt.want {
			t.Errorf("ShouldAlert(%s, %d) = %v, want %v", tt.priority, tt.cutoff, got, tt.want)
		}
	}
}

func TestExceedsLegacyMode(t *testing.T) {
	thresholds := podcast.ThresholdSettings{Money: 5000, Fans: 1000, EngagementRate: 5, BrandValue: 70}

	tests := []struct {
		name  string
		value podcast.QuantifiedValue
		want  bool
	}{
		{"all zero", podcast.QuantifiedValue{}, false},
		{"money at threshold", podcast.QuantifiedValue{Money: 5000}, true},
		{"money below", podcast.QuantifiedValue{Money: 4999}, false},
		{"one of several exceeds", podcast.QuantifiedValue{Money: 100, Fans: 2000}, true},
		{"engagement exceeds", podcast.QuantifiedValue{EngagementRate: 6.5}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Exceeds(tt.value, thresholds); got != tt.want {
				t.Errorf("Exceeds = %v, want %v", got, tt.want)
			}
		})
	}
}

func suggestionWith(domain podcast.Domain, priority podcast.Priority) podcast.Suggestion {
	base := podcast.SuggestionBase{ID: string(domain), Priority: priority}
	switch domain {
	case podcast.DomainViral:
		return &podcast.ViralSuggestion{SuggestionBase: base}
	case podcast.DomainRisk:
		return &podcast.RiskSuggestion{SuggestionBase: base}
	default:
		return &podcast.CommercialSuggestion{SuggestionBase: base}
	}
}

func TestVisibleSuggestionsFiltersDisabledDomains(t *testing.T) {
	settings := podcast.DefaultSettings()
	settings.SuggestionTypes.Viral = false

	all := []podcast.Suggestion{
		suggestionWith(podcast.DomainCommercial, podcast.PriorityMedium),
		suggestionWith(podcast.DomainViral, podcast.PriorityHigh),
		suggestionWith(podcast.DomainRisk, podcast.PriorityCritical),
	}

	visible := VisibleSuggestions(all, settings)
	if len(visible) != 2 {
		t.Fatalf("len = %d, want 2", len(visible))
	}
	for _, s := range visible {
		if s.Domain() == podcast.DomainViral {
			t.Error("disabled domain leaked through the filter")
		}
	}
}

func TestVisibleDisciplinesKeepsCustom(t *testing.T) {
	settings := podcast.DefaultSettings()
	settings.Disciplines.Law = false

	records := []podcast.DisciplineRecord{
		{ID: "1", Discipline: podcast.DisciplineLaw},
		{ID: "2", Discipline: podcast.DisciplineHealth},
		{ID: "3", Discipline: "哲学"},
	}

	visible := VisibleDisciplines(records, settings)
	if len(visible) != 2 {
		t.Fatalf("len = %d, want 2", len(visible))
	}
	if visible[0].ID != "2" || visible[1].ID != "3" {
		t.Errorf("wrong records visible: %+v", visible)
	}
}

func TestAlertWorthy(t *testing.T) {
	all := []podcast.Suggestion{
		suggestionWith(podcast.DomainCommercial, podcast.PriorityCritical),
		suggestionWith(podcast.DomainViral, podcast.PriorityHigh),
		suggestionWith(podcast.DomainRisk, podcast.PriorityMedium),
	}

	settings := podcast.DefaultSettings()
	settings.AlertThreshold.Percentile = 1
	worthy := AlertWorthy(all, settings)
	if len(worthy) != 1 || worthy[0].Domain() != podcast.DomainCommercial {
		t.Errorf("cutoff 1 should alert only on critical, got %d", len(worthy))
	}

	settings.AlertThreshold.Percentile = 10
	if got := AlertWorthy(all, settings); len(got) != 2 {
		t.Errorf("cutoff 10 should alert on critical and high, got %d", len(got))
	}

	settings.AlertThreshold.Enabled = false
	if got := AlertWorthy(all, settings); got != nil {
		t.Errorf("disabled alerting should return nil, got %d", len(got))
	}
}
