package podcast

import (
	"encoding/json"
	"fmt"
	"math"
)

// SuggestionBase carries the fields common to all three suggestion variants.
type SuggestionBase struct {
	ID               string   `json:"id"`
	Position         string   `json:"position"`
	TimeRange        string   `json:"timeRange,omitempty"`
	Content          string   `json:"content"`
	Title            string   `json:"title"`
	ActionableAdvice string   `json:"actionableAdvice"`
	Priority         Priority `json:"priority"`
}

// Suggestion is the tagged union over the three analysis domains. The
// concrete types are CommercialSuggestion, ViralSuggestion, and
// RiskSuggestion; nothing outside this package can add a variant.
type Suggestion interface {
	// Base returns the shared fields for mutation by the pipeline.
	Base() *SuggestionBase
	// Domain returns the variant tag.
	Domain() Domain
	// Relative returns the relative-value payload for mutation by the
	// evaluator.
	Relative() *RelativeValue
	// OverallScore returns the domain sub-score aggregate.
	OverallScore() float64
	// Normalize clamps the sub-metrics to [0,100] and recomputes the
	// aggregate as their arithmetic mean, discarding any upstream value.
	// It reports whether any metric had to be clamped or repaired.
	Normalize() bool

	sealed()
}

// clampMetric forces v into [0,100], mapping NaN to 0. The second return
// reports whether a repair was needed.
func clampMetric(v float64) (float64, bool) {
	if math.IsNaN(v) {
		return 0, true
	}
	if v < 0 {
		return 0, true
	}
	if v > 100 {
		return 100, true
	}
	return v, false
}

// normalizeMetrics clamps each metric in place and returns their mean.
func normalizeMetrics(metrics ...*float64) (mean float64, repaired bool) {
	sum := 0.0
	for _, m := range metrics {
		v, fixed := clampMetric(*m)
		*m = v
		sum += v
		repaired = repaired || fixed
	}
	if len(metrics) == 0 {
		return 0, repaired
	}
	return sum / float64(len(metrics)), repaired
}

// CommercialFit scores how well a passage supports monetization.
// OverallScore is the arithmetic mean of the three sibling metrics.
type CommercialFit struct {
	NaturalEmbedding      float64 `json:"naturalEmbedding"`
	AudienceClarity       float64 `json:"audienceClarity"`
	ViewpointCompleteness float64 `json:"viewpointCompleteness"`
	OverallScore          float64 `json:"overallScore"`
}

// ViralPotential scores a passage's spread potential.
type ViralPotential struct {
	CounterIntuitive float64 `json:"counterIntuitive"`
	ConflictLevel    float64 `json:"conflictLevel"`
	Clipability      float64 `json:"clipability"`
	OverallScore     float64 `json:"overallScore"`
}

// RiskAnalysis scores a passage's exposure to backlash.
type RiskAnalysis struct {
	Extremism        float64 `json:"extremism"`
	Uncertainty      float64 `json:"uncertainty"`
	GroupSensitivity float64 `json:"groupSensitivity"`
	OverallScore     float64 `json:"overallScore"`
}

// CommercialSuggestion marks a passage with monetization potential.
type CommercialSuggestion struct {
	SuggestionBase
	Compatibility CommercialFit `json:"compatibility"`
	RelativeValue RelativeValue `json:"relativeValue"`
	AdFormats     []string      `json:"adFormats"`
	ScriptSample  string        `json:"scriptSample,omitempty"`
}

func (s *CommercialSuggestion) Base() *SuggestionBase     { return &s.SuggestionBase }
func (s *CommercialSuggestion) Domain() Domain            { return DomainCommercial }
func (s *CommercialSuggestion) Relative() *RelativeValue  { return &s.RelativeValue }
func (s *CommercialSuggestion) OverallScore() float64     { return s.Compatibility.OverallScore }
func (s *CommercialSuggestion) sealed()                   {}

func (s *CommercialSuggestion) Normalize() bool {
	mean, repaired := normalizeMetrics(
		&s.Compatibility.NaturalEmbedding,
		&s.Compatibility.AudienceClarity,
		&s.Compatibility.ViewpointCompleteness,
	)
	s.Compatibility.OverallScore = mean
	return repaired
}

// ViralSuggestion marks a passage with spread potential.
type ViralSuggestion struct {
	SuggestionBase
	ViralPotential    ViralPotential `json:"viralPotential"`
	RelativeValue     RelativeValue  `json:"relativeValue"`
	DistributionPaths []string       `json:"distributionPaths"`
	ContentStrategy   string         `json:"contentStrategy,omitempty"`
}

func (s *ViralSuggestion) Base() *SuggestionBase    { return &s.SuggestionBase }
func (s *ViralSuggestion) Domain() Domain           { return DomainViral }
func (s *ViralSuggestion) Relative() *RelativeValue { return &s.RelativeValue }
func (s *ViralSuggestion) OverallScore() float64    { return s.ViralPotential.OverallScore }
func (s *ViralSuggestion) sealed()                  {}

func (s *ViralSuggestion) Normalize() bool {
	mean, repaired := normalizeMetrics(
		&s.ViralPotential.CounterIntuitive,
		&s.ViralPotential.ConflictLevel,
		&s.ViralPotential.Clipability,
	)
	s.ViralPotential.OverallScore = mean
	return repaired
}

// RiskSuggestion warns about a passage likely to draw backlash. Its
// relative payload uses the "relativeRisk" wire name kept from the first
// schema generation.
type RiskSuggestion struct {
	SuggestionBase
	RiskAnalysis      RiskAnalysis  `json:"riskAnalysis"`
	RelativeRisk      RelativeValue `json:"relativeRisk"`
	PotentialImpact   string        `json:"potentialImpact"`
	OriginalStatement string        `json:"originalStatement,omitempty"`
	RevisedStatement  string        `json:"revisedStatement,omitempty"`
}

func (s *RiskSuggestion) Base() *SuggestionBase    { return &s.SuggestionBase }
func (s *RiskSuggestion) Domain() Domain           { return DomainRisk }
func (s *RiskSuggestion) Relative() *RelativeValue { return &s.RelativeRisk }
func (s *RiskSuggestion) OverallScore() float64    { return s.RiskAnalysis.OverallScore }
func (s *RiskSuggestion) sealed()                  {}

func (s *RiskSuggestion) Normalize() bool {
	mean, repaired := normalizeMetrics(
		&s.RiskAnalysis.Extremism,
		&s.RiskAnalysis.Uncertainty,
		&s.RiskAnalysis.GroupSensitivity,
	)
	s.RiskAnalysis.OverallScore = mean
	return repaired
}

// MarshalJSON adds the variant tag to the wire form.
func (s *CommercialSuggestion) MarshalJSON() ([]byte, error) {
	type alias CommercialSuggestion
	return json.Marshal(struct {
		Type Domain `json:"type"`
		*alias
	}{DomainCommercial, (*alias)(s)})
}

// MarshalJSON adds the variant tag to the wire form.
func (s *ViralSuggestion) MarshalJSON() ([]byte, error) {
	type alias ViralSuggestion
	return json.Marshal(struct {
		Type Domain `json:"type"`
		*alias
	}{DomainViral, (*alias)(s)})
}

// MarshalJSON adds the variant tag to the wire form.
func (s *RiskSuggestion) MarshalJSON() ([]byte, error) {
	type alias RiskSuggestion
	return json.Marshal(struct {
		Type Domain `json:"type"`
		*alias
	}{DomainRisk, (*alias)(s)})
}

// DecodeSuggestion builds the concrete variant for a tagged wire object.
func DecodeSuggestion(raw json.RawMessage) (Suggestion, error) {
	var tag struct {
		Type Domain `json:"type"`
	}
	if err := json.Unmarshal(raw, &tag); err != nil {
		return nil, fmt.Errorf("reading suggestion tag: %w", err)
	}

	switch tag.Type {
	case DomainCommercial:
		var s CommercialSuggestion
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("decoding commercial suggestion: %w", err)
		}
		return &s, nil
	case DomainViral:
		var s ViralSuggestion
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("decoding viral suggestion: %w", err)
		}
		return &s, nil
	case DomainRisk:
		var s RiskSuggestion
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("decoding risk suggestion: %w", err)
		}
		return &s, nil
	default:
		return nil, fmt.Errorf("unknown suggestion type %q", tag.Type)
	}
}

// SuggestionList is a slice of tagged suggestion variants that survives a
// JSON round trip.
type SuggestionList []Suggestion

// UnmarshalJSON decodes each element through the variant tag.
func (l *SuggestionList) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}
	out := make(SuggestionList, 0, len(raws))
	for _, raw := range raws {
		s, err := DecodeSuggestion(raw)
		if err != nil {
			return err
		}
		out = append(out, s)
	}
	*l = out
	return nil
}
