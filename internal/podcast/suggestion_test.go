package podcast

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func TestDecodeSuggestionVariants(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		domain Domain
	}{
		{
			name:   "commercial",
			raw:    `{"type":"commercial","id":"s1","title":"t","compatibility":{"naturalEmbedding":80,"audienceClarity":70,"viewpointCompleteness":60,"overallScore":70}}`,
			domain: DomainCommercial,
		},
		{
			name:   "viral",
			raw:    `{"type":"viral","id":"s2","viralPotential":{"counterIntuitive":90,"conflictLevel":85,"clipability":95,"overallScore":90}}`,
			domain: DomainViral,
		},
		{
			name:   "risk",
			raw:    `{"type":"risk","id":"s3","riskAnalysis":{"extremism":99,"uncertainty":99,"groupSensitivity":99,"overallScore":99},"relativeRisk":{"percentile":99}}`,
			domain: DomainRisk,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := DecodeSuggestion(json.RawMessage(tt.raw))
			if err != nil {
				t.Fatalf("DecodeSuggestion: %v", err)
			}
			if s.Domain() != tt.domain {
				t.Errorf("Domain() = %s, want %s", s.Domain(), tt.domain)
			}
		})
	}
}

func TestDecodeSuggestionUnknownType(t *testing.T) {
	_, err := DecodeSuggestion(json.RawMessage(`{"type":"mystery"}`))
	if err == nil {
		t.Fatal("expected error for unknown type")
	}
	if !strings.Contains(err.Error(), "mystery") {
		t.Errorf("error should name the unknown type, got %v", err)
	}
}

func TestRiskRelativePointsAtRelativeRisk(t *testing.T) {
	s := &RiskSuggestion{}
	s.Relative().Percentile = 99.5
	if s.RelativeRisk.Percentile != 99.5 {
		t.Error("Relative() should alias the RelativeRisk field")
	}
}

func TestNormalizeClampsAndRecomputes(t *testing.T) {
	s := &CommercialSuggestion{
		Compatibility: CommercialFit{
			NaturalEmbedding:      150,
			AudienceClarity:       -20,
			ViewpointCompleteness: 60,
			OverallScore:          999, // upstream aggregate is discarded
		},
	}

	repaired := s.Normalize()
	if !repaired {
		t.Error("expected repair flag for out-of-range metrics")
	}
	if s.Compatibility.NaturalEmbedding != 100 || s.Compatibility.AudienceClarity != 0 {
		t.Errorf("metrics not clamped: %+v", s.Compatibility)
	}
	want := (100.0 + 0 + 60) / 3
	if math.Abs(s.Compatibility.OverallScore-want) > 1e-9 {
		t.Errorf("OverallScore = %v, want %v", s.Compatibility.OverallScore, want)
	}
}

func TestNormalizeNaNMapsToZero(t *testing.T) {
	s := &ViralSuggestion{
		ViralPotential: ViralPotential{
			CounterIntuitive: math.NaN(),
			ConflictLevel:    60,
			Clipability:      60,
		},
	}
	if !s.Normalize() {
		t.Error("NaN metric should report repair")
	}
	if s.ViralPotential.CounterIntuitive != 0 {
		t.Errorf("NaN should clamp to 0, got %v", s.ViralPotential.CounterIntuitive)
	}
}

func TestNormalizeInRangeUntouched(t *testing.T) {
	s := &CommercialSuggestion{
		Compatibility: CommercialFit{NaturalEmbedding: 70, AudienceClarity: 68, ViewpointCompleteness: 66},
	}
	if s.Normalize() {
		t.Error("in-range metrics should not report repair")
	}
	if s.Compatibility.OverallScore != 68 {
		t.Errorf("OverallScore = %v, want 68", s.Compatibility.OverallScore)
	}
}

func TestSuggestionListRoundTrip(t *testing.T) {
	list := SuggestionList{
		&CommercialSuggestion{
			SuggestionBase: SuggestionBase{ID: "a", Title: "广告位", Priority: PriorityMedium},
			Compatibility:  CommercialFit{OverallScore: 68},
			AdFormats:      []string{"口播"},
		},
		&RiskSuggestion{
			SuggestionBase:  SuggestionBase{ID: "b", Priority: PriorityCritical},
			RiskAnalysis:    RiskAnalysis{OverallScore: 99},
			PotentialImpact: "舆论反噬",
		},
	}

	data, err := json.Marshal(list)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded SuggestionList
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("len = %d, want 2", len(decoded))
	}
	if decoded[0].Domain() != DomainCommercial || decoded[1].Domain() != DomainRisk {
		t.Errorf("domains lost in round trip: %s, %s", decoded[0].Domain(), decoded[1].Domain())
	}
	if decoded[1].Base().ID != "b" {
		t.Errorf("base fields lost: %+v", decoded[1].Base())
	}
	risk, ok := decoded[1].(*RiskSuggestion)
	if !ok {
		t.Fatal("second element should decode as *RiskSuggestion")
	}
	if risk.PotentialImpact != "舆论反噬" {
		t.Errorf("variant fields lost: %+v", risk)
	}
}
