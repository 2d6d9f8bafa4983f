// Package podcast defines the EchoSense domain model: suggestion variants,
// relative-value assessments, reference cases, discipline records, the
// longitudinal user profile, and user-owned settings.
package podcast

import "time"

// InputMode identifies how transcript text entered an analysis run.
type InputMode string

const (
	InputModeURL        InputMode = "url"
	InputModeTranscript InputMode = "transcript"
)

// Domain tags the three suggestion variants.
type Domain string

const (
	DomainCommercial Domain = "commercial"
	DomainViral      Domain = "viral"
	DomainRisk       Domain = "risk"
)

// Priority is the tier assigned by the classifier.
type Priority string

const (
	PriorityCritical Priority = "critical" // top 1%
	PriorityHigh     Priority = "high"     // top 10%
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Discipline is one of the five fixed analytical lenses. Custom lenses use
// free-form names and live in UserProfile.CustomDisciplines.
type Discipline string

const (
	DisciplineLaw           Discipline = "law"
	DisciplinePsychology    Discipline = "psychology"
	DisciplineBusiness      Discipline = "business"
	DisciplineHealth        Discipline = "health"
	DisciplineCommunication Discipline = "communication"
)

// FixedDisciplines lists the five built-in disciplines in display order.
var FixedDisciplines = []Discipline{
	DisciplineLaw,
	DisciplinePsychology,
	DisciplineBusiness,
	DisciplineHealth,
	DisciplineCommunication,
}

// IsFixed reports whether d is one of the five built-in disciplines.
func (d Discipline) IsFixed() bool {
	switch d {
	case DisciplineLaw, DisciplinePsychology, DisciplineBusiness, DisciplineHealth, DisciplineCommunication:
		return true
	}
	return false
}

// Difficulty grades the effort of acting on a suggestion.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Severity grades a risk-bearing discipline observation.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// ReferenceCase is an immutable library entry used to ground a percentile
// claim in concrete precedent. Created at build time (or loaded from a
// user-supplied override set); never mutated at runtime.
type ReferenceCase struct {
	ID           string `json:"id"`
	Description  string `json:"description"`
	Context      string `json:"context"`
	AudienceSize string `json:"audienceSize"`
	PriceRange   string `json:"priceRange,omitempty"`
	EffectData   string `json:"effectData,omitempty"`
	Source       string `json:"source"`
}

// AdoptionCost estimates what acting on a suggestion takes.
// All fields are always populated; see valuation for the defaults.
type AdoptionCost struct {
	TimeRequired string     `json:"timeRequired"`
	Difficulty   Difficulty `json:"difficulty"`
	Resources    []string   `json:"resources"`
}

// RelativeValue expresses a passage's value or risk as a calibrated,
// case-grounded position in a historical distribution, never as an
// absolute figure.
type RelativeValue struct {
	Percentile     float64         `json:"percentile"`
	Rank           string          `json:"rank"`
	ReferenceCases []ReferenceCase `json:"referenceCases"`
	Explanation    string          `json:"explanation"`
	AdoptionCost   AdoptionCost    `json:"adoptionCost"`
}

// DisciplineRecord is one observation batch from one analysis run for one
// discipline. Observations are factual statements about the creator, kept
// strictly separate from actionable suggestions.
type DisciplineRecord struct {
	ID           string     `json:"id"`
	Discipline   Discipline `json:"discipline"`
	Date         string     `json:"date"`
	SourceTitle  string     `json:"sourceTitle"`
	Observations []string   `json:"observations"`
	Severity     Severity   `json:"severity,omitempty"`
}

// CommunicationProfile captures the creator's account style and audience.
type CommunicationProfile struct {
	AccountStyle    string   `json:"accountStyle"`
	AudienceProfile string   `json:"audienceProfile"`
	ContentThemes   []string `json:"contentThemes"`
	AvgEngagement   float64  `json:"avgEngagement"`
}

// BusinessProfile captures monetization posture.
type BusinessProfile struct {
	InvestmentDiscount  float64  `json:"investmentDiscount"`
	RiskTolerance       Severity `json:"riskTolerance"`
	MonetizationHistory []string `json:"monetizationHistory"`
}

// LawProfile captures recurring compliance exposure noted across runs.
type LawProfile struct {
	KnownRiskAreas []string `json:"knownRiskAreas"`
}

// HealthProfile captures health and lifestyle themes noted across runs.
type HealthProfile struct {
	LifestyleNotes []string `json:"lifestyleNotes"`
}

// CustomDiscipline is a user-defined analytical lens. At most two may exist
// per profile.
type CustomDiscipline struct {
	Name    string             `json:"name"`
	Records []DisciplineRecord `json:"records"`
}

// DisciplineHistory holds the append-only record sequences for the five
// fixed disciplines.
type DisciplineHistory struct {
	Law           []DisciplineRecord `json:"law"`
	Psychology    []DisciplineRecord `json:"psychology"`
	Business      []DisciplineRecord `json:"business"`
	Health        []DisciplineRecord `json:"health"`
	Communication []DisciplineRecord `json:"communication"`
}

// For returns the history slice for a fixed discipline.
func (h *DisciplineHistory) For(d Discipline) []DisciplineRecord {
	switch d {
	case DisciplineLaw:
		return h.Law
	case DisciplinePsychology:
		return h.Psychology
	case DisciplineBusiness:
		return h.Business
	case DisciplineHealth:
		return h.Health
	case DisciplineCommunication:
		return h.Communication
	}
	return nil
}

// MaxCustomDisciplines bounds the user-defined lens slots per profile.
const MaxCustomDisciplines = 2

// UserProfile is the longitudinal creator profile. One exists per
// installation; it lives until an explicit reset.
type UserProfile struct {
	UserID            string               `json:"userId"`
	Communication     CommunicationProfile `json:"communication"`
	Business          BusinessProfile      `json:"business"`
	Law               LawProfile           `json:"law"`
	Health            HealthProfile        `json:"health"`
	DisciplineHistory DisciplineHistory    `json:"disciplineHistory"`
	CustomDisciplines []CustomDiscipline   `json:"customDisciplines,omitempty"`
}

// RecordCount returns the total number of discipline records across the
// fixed histories and custom slots.
func (p *UserProfile) RecordCount() int {
	n := 0
	for _, d := range FixedDisciplines {
		n += len(p.DisciplineHistory.For(d))
	}
	for _, c := range p.CustomDisciplines {
		n += len(c.Records)
	}
	return n
}

// AnalysisHistory is the immutable snapshot of one completed run. A record
// is appended for every completed run, including runs that produced nothing
// notable; it is deletable only via a bulk clear.
type AnalysisHistory struct {
	ID           string             `json:"id"`
	Timestamp    time.Time          `json:"timestamp"`
	InputMode    InputMode          `json:"inputMode"`
	InputPreview string             `json:"inputPreview"`
	Suggestions  SuggestionList     `json:"suggestions"`
	Disciplines  []DisciplineRecord `json:"disciplines"`
}

// QuantifiedValue is the legacy absolute-value payload. A zero field is
// treated as unpopulated by the classifier.
type QuantifiedValue struct {
	Money          float64 `json:"money"`
	Fans           float64 `json:"fans"`
	EngagementRate float64 `json:"engagementRate"`
	BrandValue     float64 `json:"brandValue"`
}

// ThresholdSettings holds the legacy absolute-mode alert thresholds.
// All fields are >= 0.
type ThresholdSettings struct {
	Money          float64 `json:"money"`
	Fans           float64 `json:"fans"`
	EngagementRate float64 `json:"engagementRate"`
	BrandValue     float64 `json:"brandValue"`
}

// AlertThreshold configures the percentile-mode alert sensitivity.
// Percentile is coarse-grained: 1, 5, 10, and 20 carry labels.
type AlertThreshold struct {
	Enabled    bool `json:"enabled"`
	Percentile int  `json:"percentile"`
}

// SuggestionToggles enables or disables suggestion domains for display.
type SuggestionToggles struct {
	Commercial bool `json:"commercial"`
	Viral      bool `json:"viral"`
	Risk       bool `json:"risk"`
}

// Enabled reports whether the given domain is switched on.
func (t SuggestionToggles) Enabled(d Domain) bool {
	switch d {
	case DomainCommercial:
		return t.Commercial
	case DomainViral:
		return t.Viral
	case DomainRisk:
		return t.Risk
	}
	return false
}

// DisciplineToggles enables or disables discipline lenses for display.
type DisciplineToggles struct {
	Law           bool `json:"law"`
	Psychology    bool `json:"psychology"`
	Business      bool `json:"business"`
	Health        bool `json:"health"`
	Communication bool `json:"communication"`
}

// Enabled reports whether the given fixed discipline is switched on.
// Custom disciplines are always shown.
func (t DisciplineToggles) Enabled(d Discipline) bool {
	switch d {
	case DisciplineLaw:
		return t.Law
	case DisciplinePsychology:
		return t.Psychology
	case DisciplineBusiness:
		return t.Business
	case DisciplineHealth:
		return t.Health
	case DisciplineCommunication:
		return t.Communication
	}
	return true
}

// AnalysisDepth controls how much the generation prompt asks for.
type AnalysisDepth string

const (
	DepthBasic    AnalysisDepth = "basic"
	DepthStandard AnalysisDepth = "standard"
	DepthDetailed AnalysisDepth = "detailed"
)

// UserSettings is the user-owned configuration, read on every
// classification decision and mutated only by explicit save.
type UserSettings struct {
	AlertThreshold  AlertThreshold    `json:"alertThreshold"`
	SuggestionTypes SuggestionToggles `json:"suggestionTypes"`
	Disciplines     DisciplineToggles `json:"disciplines"`
	AnalysisDepth   AnalysisDepth     `json:"analysisDepth"`
}
