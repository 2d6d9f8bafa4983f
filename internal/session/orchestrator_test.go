package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echosense-labs/echosense/internal/cases"
	"github.com/echosense-labs/echosense/internal/extract"
	"github.com/echosense-labs/echosense/internal/llm"
	"github.com/echosense-labs/echosense/internal/podcast"
	"github.com/echosense-labs/echosense/internal/store"
	"github.com/echosense-labs/echosense/internal/valuation"
)

type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) Extract(ctx context.Context, url, instruction string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

// fakeGenerator streams a canned response in two chunks. When gate is
// non-nil the stream blocks until the gate closes, which lets tests hold a
// run in flight.
type fakeGenerator struct {
	response  string
	streamErr error
	openErr   error
	gate      chan struct{}
}

func (f *fakeGenerator) Stream(ctx context.Context, system, prompt string) (<-chan llm.Chunk, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	out := make(chan llm.Chunk, 2)
	go func() {
		defer close(out)
		if f.gate != nil {
			<-f.gate
		}
		if f.streamErr != nil {
			out <- llm.Chunk{Err: f.streamErr}
			return
		}
		out <- llm.Chunk{Delta: f.response, Full: f.response}
		out <- llm.Chunk{Full: f.response, Finish: true}
	}()
	return out, nil
}

func newTestOrchestrator(t *testing.T, ext extract.Extractor, gen llm.Generator) (*Orchestrator, *store.DB) {
	t.Helper()
	db, err := store.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	library := cases.NewLibrary()
	silent := log.New(io.Discard, "", 0)
	orch := New(db, ext, gen, valuation.NewWithLogger(library, silent), library)
	orch.SetLogger(silent)
	return orch, db
}

func fenced(payload string) string {
	return "分析完成：\n```json\n" + payload + "\n```"
}

const commercialPayload = `{
	"suggestions": [{
		"type": "commercial",
		"position": "第15分钟30秒",
		"content": "讨论办公软件使用体验",
		"title": "工具推荐场景",
		"actionableAdvice": "可以联系效率工具品牌",
		"compatibility": {"naturalEmbedding": 70, "audienceClarity": 68, "viewpointCompleteness": 66, "overallScore": 0}
	}],
	"disciplines": []
}`

func TestRunTranscriptMidValue(t *testing.T) {
	gen := &fakeGenerator{response: fenced(commercialPayload)}
	orch, db := newTestOrchestrator(t, &fakeExtractor{}, gen)

	result, err := orch.Start(context.Background(), "这是一段播客转写文本", podcast.InputModeTranscript, Callbacks{})
	require.NoError(t, err)

	require.Len(t, result.Suggestions, 1)
	s := result.Suggestions[0]
	assert.Equal(t, podcast.DomainCommercial, s.Domain())
	assert.InDelta(t, 68.0, s.OverallScore(), 1e-9)
	assert.InDelta(t, 68.0, s.Relative().Percentile, 1e-9)
	assert.Equal(t, "前32%", s.Relative().Rank)
	assert.Equal(t, podcast.PriorityMedium, s.Base().Priority)
	assert.NotEmpty(t, s.Base().ID, "missing ids are assigned")
	assert.Empty(t, result.AlertWorthy, "a mid-band finding never alerts")
	assert.False(t, result.NothingNotable)

	history, err := db.LoadHistory()
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, podcast.InputModeTranscript, history[0].InputMode)
	assert.Equal(t, StateIdle, orch.State())
}

func TestRunNothingNotableStillRecorded(t *testing.T) {
	gen := &fakeGenerator{response: fenced(`{"suggestions": [], "disciplines": []}`)}
	orch, db := newTestOrchestrator(t, &fakeExtractor{}, gen)

	result, err := orch.Start(context.Background(), "平淡的一期", podcast.InputModeTranscript, Callbacks{})
	require.NoError(t, err)

	assert.True(t, result.NothingNotable)
	assert.Empty(t, result.Suggestions)

	history, err := db.LoadHistory()
	require.NoError(t, err)
	assert.Len(t, history, 1, "empty runs are first-class history entries")
}

func TestRunURLExtractionFailure(t *testing.T) {
	ext := &fakeExtractor{err: &extract.StatusError{Status: 5, Message: "该页面禁止抓取"}}
	orch, db := newTestOrchestrator(t, ext, &fakeGenerator{})

	_, err := orch.Start(context.Background(), "https://example.com/ep1", podcast.InputModeURL, Callbacks{})

	var ee *ExtractionError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, "该页面禁止抓取", ee.Message, "service message surfaces verbatim")

	history, _ := db.LoadHistory()
	assert.Empty(t, history, "failed runs leave no history")
	assert.Equal(t, StateIdle, orch.State())
}

func TestRunUnparseableOutput(t *testing.T) {
	gen := &fakeGenerator{response: "很抱歉，这段内容无法分析。"}
	orch, db := newTestOrchestrator(t, &fakeExtractor{}, gen)

	_, err := orch.Start(context.Background(), "文本", podcast.InputModeTranscript, Callbacks{})

	var pe *SchemaParseError
	require.ErrorAs(t, err, &pe)

	history, _ := db.LoadHistory()
	assert.Empty(t, history)
}

func TestRunTransportFailure(t *testing.T) {
	gen := &fakeGenerator{streamErr: fmt.Errorf("connection reset")}
	orch, db := newTestOrchestrator(t, &fakeExtractor{}, gen)

	_, err := orch.Start(context.Background(), "文本", podcast.InputModeTranscript, Callbacks{})

	var te *TransportError
	require.ErrorAs(t, err, &te)

	history, _ := db.LoadHistory()
	assert.Empty(t, history)
}

func TestRunValidation(t *testing.T) {
	orch, db := newTestOrchestrator(t, &fakeExtractor{}, &fakeGenerator{})

	var states []State
	cb := Callbacks{OnState: func(s State) { states = append(states, s) }}

	var ve *ValidationError
	_, err := orch.Start(context.Background(), "   ", podcast.InputModeTranscript, cb)
	require.ErrorAs(t, err, &ve)

	_, err = orch.Start(context.Background(), "not-a-url", podcast.InputModeURL, cb)
	require.ErrorAs(t, err, &ve)

	assert.Empty(t, states, "rejected input never leaves idle, so no transition fires")
	assert.Equal(t, StateIdle, orch.State())

	history, err := db.LoadHistory()
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestRunAccumulatesDisciplines(t *testing.T) {
	payload := `{
		"suggestions": [],
		"disciplines": [
			{"discipline": "law", "sourceTitle": "第12期", "observations": ["提及竞品对比"]},
			{"discipline": "law", "sourceTitle": "第12期", "observations": ["引用未核实数据"]}
		]
	}`
	gen := &fakeGenerator{response: fenced(payload)}
	orch, db := newTestOrchestrator(t, &fakeExtractor{}, gen)

	result, err := orch.Start(context.Background(), "文本", podcast.InputModeTranscript, Callbacks{})
	require.NoError(t, err)

	require.Len(t, result.Disciplines, 2)
	for _, r := range result.Disciplines {
		assert.NotEmpty(t, r.ID, "missing ids are assigned")
		assert.NotEmpty(t, r.Date, "missing dates default to the run date")
		assert.Equal(t, podcast.SeverityLow, r.Severity, "risk-bearing disciplines get a defaulted severity")
	}
	assert.NotEmpty(t, result.Warnings, "defaulted severity is reported")

	p, err := db.LoadProfile()
	require.NoError(t, err)
	assert.Len(t, p.DisciplineHistory.Law, 2)

	history, _ := db.LoadHistory()
	require.Len(t, history, 1)
	assert.Len(t, history[0].Disciplines, 2)
}

func TestRunHistoryKeepsHiddenDomains(t *testing.T) {
	payload := `{
		"suggestions": [
			{"type": "commercial", "title": "a", "compatibility": {"naturalEmbedding": 60, "audienceClarity": 60, "viewpointCompleteness": 60}},
			{"type": "viral", "title": "b", "viralPotential": {"counterIntuitive": 60, "conflictLevel": 60, "clipability": 60}}
		],
		"disciplines": []
	}`
	gen := &fakeGenerator{response: fenced(payload)}
	orch, db := newTestOrchestrator(t, &fakeExtractor{}, gen)

	settings := podcast.DefaultSettings()
	settings.SuggestionTypes.Viral = false
	require.NoError(t, db.SaveSettings(settings))

	result, err := orch.Start(context.Background(), "文本", podcast.InputModeTranscript, Callbacks{})
	require.NoError(t, err)

	require.Len(t, result.Suggestions, 1, "display toggles filter the result view")
	assert.Equal(t, podcast.DomainCommercial, result.Suggestions[0].Domain())

	history, _ := db.LoadHistory()
	require.Len(t, history, 1)
	assert.Len(t, history[0].Suggestions, 2, "history keeps the unfiltered list")
}

func TestRunCriticalAlerts(t *testing.T) {
	payload := `{
		"suggestions": [{
			"type": "risk",
			"title": "极端表述",
			"potentialImpact": "舆论反噬",
			"riskAnalysis": {"extremism": 99, "uncertainty": 99, "groupSensitivity": 99}
		}],
		"disciplines": []
	}`
	gen := &fakeGenerator{response: fenced(payload)}
	orch, _ := newTestOrchestrator(t, &fakeExtractor{}, gen)

	result, err := orch.Start(context.Background(), "文本", podcast.InputModeTranscript, Callbacks{})
	require.NoError(t, err)

	require.Len(t, result.AlertWorthy, 1)
	assert.Equal(t, podcast.PriorityCritical, result.AlertWorthy[0].Base().Priority)
}

func TestRunRejectedWhileInFlight(t *testing.T) {
	gate := make(chan struct{})
	gen := &fakeGenerator{response: fenced(`{"suggestions": [], "disciplines": []}`), gate: gate}
	orch, _ := newTestOrchestrator(t, &fakeExtractor{}, gen)

	started := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		_, err := orch.Start(context.Background(), "文本", podcast.InputModeTranscript, Callbacks{
			OnState: func(s State) {
				if s == StateAnalyzing {
					close(started)
				}
			},
		})
		done <- err
	}()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("first run never reached analyzing")
	}

	_, err := orch.Start(context.Background(), "另一段文本", podcast.InputModeTranscript, Callbacks{})
	assert.True(t, errors.Is(err, ErrRunInFlight), "second run must be rejected, got %v", err)

	close(gate)
	require.NoError(t, <-done)
}

func TestRunStateTransitions(t *testing.T) {
	gen := &fakeGenerator{response: fenced(`{"suggestions": [], "disciplines": []}`)}
	orch, _ := newTestOrchestrator(t, &fakeExtractor{text: "提取的文字"}, gen)

	var states []State
	cb := Callbacks{OnState: func(s State) { states = append(states, s) }}

	_, err := orch.Start(context.Background(), "https://example.com/ep1", podcast.InputModeURL, cb)
	require.NoError(t, err)

	assert.Equal(t, []State{StateExtracting, StateAnalyzing, StateComplete, StateIdle}, states)
}

func TestRunStreamsDeltas(t *testing.T) {
	gen := &fakeGenerator{response: fenced(`{"suggestions": [], "disciplines": []}`)}
	orch, _ := newTestOrchestrator(t, &fakeExtractor{}, gen)

	var streamed string
	cb := Callbacks{OnDelta: func(d string) { streamed += d }}

	_, err := orch.Start(context.Background(), "文本", podcast.InputModeTranscript, cb)
	require.NoError(t, err)
	assert.Equal(t, gen.response, streamed)
}

func TestPreviewTruncation(t *testing.T) {
	long := ""
	for i := 0; i < 200; i++ {
		long += "字"
	}
	got := preview(long)
	assert.Equal(t, previewRunes+3, len([]rune(got)), "preview is rune-bounded with ellipsis")

	assert.Equal(t, "短文本", preview("短文本"), "short input passes through unchanged")
}
