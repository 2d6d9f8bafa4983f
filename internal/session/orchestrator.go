// Package session drives one analysis run end to end: input validation,
// optional URL extraction, streamed generation, payload parsing, local
// valuation and classification, profile accumulation, and persistence.
package session

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/echosense-labs/echosense/internal/cases"
	"github.com/echosense-labs/echosense/internal/classify"
	"github.com/echosense-labs/echosense/internal/extract"
	"github.com/echosense-labs/echosense/internal/llm"
	"github.com/echosense-labs/echosense/internal/parse"
	"github.com/echosense-labs/echosense/internal/podcast"
	"github.com/echosense-labs/echosense/internal/profile"
	"github.com/echosense-labs/echosense/internal/store"
	"github.com/echosense-labs/echosense/internal/valuation"
)

// State is the orchestrator's lifecycle phase for one run.
type State string

const (
	StateIdle       State = "idle"
	StateExtracting State = "extracting"
	StateAnalyzing  State = "analyzing"
	StateComplete   State = "complete"
	StateFailed     State = "failed"
)

// previewRunes bounds the stored input preview.
const previewRunes = 120

// Callbacks receive progress during a run. All fields are optional and are
// invoked from the goroutine that called Start.
type Callbacks struct {
	// OnState fires on every phase transition.
	OnState func(State)
	// OnDelta fires for each streamed generation increment.
	OnDelta func(delta string)
	// OnSuggestions delivers the visible (toggle-filtered) suggestions
	// once the run completes.
	OnSuggestions func([]podcast.Suggestion)
	// OnDisciplineUpdate delivers the visible discipline records once the
	// run completes.
	OnDisciplineUpdate func([]podcast.DisciplineRecord)
}

// Result is the outcome of one completed run. Suggestions and Disciplines
// are the visible views; History holds the unfiltered snapshot.
type Result struct {
	History        podcast.AnalysisHistory
	Suggestions    []podcast.Suggestion
	Disciplines    []podcast.DisciplineRecord
	AlertWorthy    []podcast.Suggestion
	Warnings       []string
	NothingNotable bool
}

// Orchestrator owns the single-run analysis pipeline. At most one run is
// in flight; a second Start while busy is rejected with ErrRunInFlight.
type Orchestrator struct {
	db        *store.DB
	extractor extract.Extractor
	generator llm.Generator
	evaluator *valuation.Evaluator
	library   *cases.Library
	logger    *log.Logger

	inFlight *semaphore.Weighted

	mu    sync.Mutex
	state State
}

// New wires an orchestrator over its collaborators. The library must be the
// same one the evaluator was built over.
func New(db *store.DB, extractor extract.Extractor, generator llm.Generator, evaluator *valuation.Evaluator, library *cases.Library) *Orchestrator {
	return &Orchestrator{
		db:        db,
		extractor: extractor,
		generator: generator,
		evaluator: evaluator,
		library:   library,
		logger:    log.New(os.Stderr, "session: ", log.LstdFlags),
		inFlight:  semaphore.NewWeighted(1),
		state:     StateIdle,
	}
}

// SetLogger replaces the warning sink. Pass nil to silence it.
func (o *Orchestrator) SetLogger(logger *log.Logger) { o.logger = logger }

// State returns the current lifecycle phase.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Orchestrator) setState(s State, cb Callbacks) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
	if cb.OnState != nil {
		cb.OnState(s)
	}
}

// Start runs the full pipeline for one input. It is synchronous; progress
// surfaces through cb. Invalid input is rejected before anything starts:
// no state transition fires and the orchestrator stays idle. On any
// failure past that point the run leaves no trace in history or the
// profile, and the orchestrator returns to idle.
func (o *Orchestrator) Start(ctx context.Context, input string, mode podcast.InputMode, cb Callbacks) (*Result, error) {
	if err := validateInput(input, mode); err != nil {
		return nil, err
	}
	if !o.inFlight.TryAcquire(1) {
		return nil, ErrRunInFlight
	}
	defer o.inFlight.Release(1)

	result, err := o.run(ctx, input, mode, cb)
	if err != nil {
		o.setState(StateFailed, cb)
		o.setState(StateIdle, cb)
		return nil, err
	}
	o.setState(StateComplete, cb)
	o.setState(StateIdle, cb)
	return result, nil
}

// validateInput rejects empty or malformed input without touching the
// orchestrator state.
func validateInput(input string, mode podcast.InputMode) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return &ValidationError{Reason: "input is empty"}
	}
	if mode == podcast.InputModeURL && !strings.HasPrefix(input, "http://") && !strings.HasPrefix(input, "https://") {
		return &ValidationError{Reason: "url input must start with http:// or https://"}
	}
	return nil
}

func (o *Orchestrator) run(ctx context.Context, input string, mode podcast.InputMode, cb Callbacks) (*Result, error) {
	input = strings.TrimSpace(input)

	settings, err := o.db.LoadSettings()
	if err != nil {
		return nil, err
	}
	userProfile, err := o.db.LoadProfile()
	if err != nil {
		return nil, err
	}

	transcript := input
	if mode == podcast.InputModeURL {
		o.setState(StateExtracting, cb)
		transcript, err = o.extractText(ctx, input)
		if err != nil {
			return nil, err
		}
	}

	o.setState(StateAnalyzing, cb)
	raw, err := o.generate(ctx, transcript, userProfile, settings, cb)
	if err != nil {
		return nil, err
	}

	payload, err := parse.Analysis(raw)
	if err != nil {
		return nil, &SchemaParseError{Err: err}
	}

	var warnings []string
	runDate := time.Now().Format("2006-01-02")

	for _, s := range payload.Suggestions {
		if s.Normalize() {
			warnings = append(warnings, fmt.Sprintf("repaired out-of-range metrics on %s suggestion", s.Domain()))
		}
		if s.Base().ID == "" {
			s.Base().ID = uuid.NewString()
		}
		rv := o.evaluator.Evaluate(s.Domain(), s.OverallScore(), userProfile.Communication.AudienceProfile, *s.Relative())
		*s.Relative() = rv
		s.Base().Priority = classify.Classify(rv.Percentile)
	}

	disciplines := payload.Disciplines
	for i := range disciplines {
		if disciplines[i].ID == "" {
			disciplines[i].ID = uuid.NewString()
		}
		if disciplines[i].Date == "" {
			disciplines[i].Date = runDate
		}
		if disciplines[i].Severity == "" && riskBearing(disciplines[i].Discipline) {
			disciplines[i].Severity = podcast.SeverityLow
			warnings = append(warnings, fmt.Sprintf("missing severity on %s record %s, defaulted to low", disciplines[i].Discipline, disciplines[i].ID))
		}
	}

	updatedProfile, accWarnings := profile.Accumulate(userProfile, disciplines)
	warnings = append(warnings, accWarnings...)

	history := podcast.AnalysisHistory{
		ID:           uuid.NewString(),
		Timestamp:    time.Now(),
		InputMode:    mode,
		InputPreview: preview(input),
		Suggestions:  payload.Suggestions,
		Disciplines:  disciplines,
	}

	// Persistence happens only on a completed run, and unconditionally:
	// history stores the unfiltered lists regardless of display toggles.
	if err := o.db.AppendHistory(history); err != nil {
		return nil, err
	}
	if err := o.db.SaveProfile(updatedProfile); err != nil {
		return nil, err
	}

	for _, w := range warnings {
		o.warnf("%s", w)
	}

	visible := classify.VisibleSuggestions(payload.Suggestions, settings)
	visibleRecords := classify.VisibleDisciplines(disciplines, settings)
	if cb.OnSuggestions != nil {
		cb.OnSuggestions(visible)
	}
	if cb.OnDisciplineUpdate != nil {
		cb.OnDisciplineUpdate(visibleRecords)
	}

	return &Result{
		History:        history,
		Suggestions:    visible,
		Disciplines:    visibleRecords,
		AlertWorthy:    classify.AlertWorthy(payload.Suggestions, settings),
		Warnings:       warnings,
		NothingNotable: len(payload.Suggestions) == 0 && len(disciplines) == 0,
	}, nil
}

// extractText pulls transcript text for a URL input. Empty content and
// non-zero service statuses both surface as extraction failures with the
// service's message intact.
func (o *Orchestrator) extractText(ctx context.Context, url string) (string, error) {
	text, err := o.extractor.Extract(ctx, url, extractionInstruction)
	if err != nil {
		return "", &ExtractionError{Message: err.Error(), Err: err}
	}
	return text, nil
}

// generate streams one generation call to completion and returns the
// accumulated text.
func (o *Orchestrator) generate(ctx context.Context, transcript string, userProfile podcast.UserProfile, settings podcast.UserSettings, cb Callbacks) (string, error) {
	prompt := buildPrompt(transcript, userProfile, settings, o.library)

	chunks, err := o.generator.Stream(ctx, systemPrompt, prompt)
	if err != nil {
		return "", &TransportError{Err: err}
	}

	var full string
	finished := false
	for chunk := range chunks {
		if chunk.Err != nil {
			return "", &TransportError{Err: chunk.Err}
		}
		if chunk.Delta != "" && cb.OnDelta != nil {
			cb.OnDelta(chunk.Delta)
		}
		if chunk.Finish {
			full = chunk.Full
			finished = true
		}
	}
	if !finished {
		return "", &TransportError{Err: fmt.Errorf("stream ended without a terminal chunk")}
	}
	return full, nil
}

// riskBearing reports whether records of this discipline carry a severity
// grade.
func riskBearing(d podcast.Discipline) bool {
	return d == podcast.DisciplineLaw || d == podcast.DisciplineHealth
}

// preview truncates input to a short rune-safe excerpt for history display.
func preview(input string) string {
	runes := []rune(input)
	if len(runes) <= previewRunes {
		return input
	}
	return string(runes[:previewRunes]) + "..."
}

func (o *Orchestrator) warnf(format string, args ...any) {
	if o.logger != nil {
		o.logger.Printf(format, args...)
	}
}

// Profile returns the persisted creator profile.
func (o *Orchestrator) Profile() (podcast.UserProfile, error) { return o.db.LoadProfile() }

// ResetProfile restores the profile to the installation default.
func (o *Orchestrator) ResetProfile() error { return o.db.ClearProfile() }

// History returns all completed-run records, oldest first.
func (o *Orchestrator) History() ([]podcast.AnalysisHistory, error) { return o.db.LoadHistory() }

// ClearHistory deletes all completed-run records.
func (o *Orchestrator) ClearHistory() error { return o.db.ClearHistory() }

// Settings returns the persisted user settings.
func (o *Orchestrator) Settings() (podcast.UserSettings, error) { return o.db.LoadSettings() }

// SaveSettings persists user settings.
func (o *Orchestrator) SaveSettings(s podcast.UserSettings) error { return o.db.SaveSettings(s) }
