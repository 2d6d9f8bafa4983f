// Package parse extracts the structured analysis payload from the
// generation service's final accumulated text.
package parse

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/echosense-labs/echosense/internal/podcast"
)

// ErrNoPayload is returned when the text contains neither a fenced code
// block nor a bracket-delimited JSON span.
var ErrNoPayload = errors.New("no structured payload found in response")

// Payload is the decoded output of one generation call. Both lists may be
// empty: a well-formed zero-item payload is a legitimate "nothing notable"
// outcome, distinct from a parse failure.
type Payload struct {
	Suggestions podcast.SuggestionList     `json:"suggestions"`
	Disciplines []podcast.DisciplineRecord `json:"disciplines"`
}

// fencedBlock matches the first fenced code block, optionally labeled json.
var fencedBlock = regexp.MustCompile("(?s)```(?:json)?\\s*\n(.*?)```")

// Analysis decodes the structured payload from raw generation output. It
// prefers the first fenced code block, falling back to the first
// brace/bracket-delimited span in the raw text. Two schema generations are
// accepted: the current object form with suggestions and disciplines
// fields, and the legacy flat suggestion array.
func Analysis(text string) (*Payload, error) {
	span, err := extractSpan(text)
	if err != nil {
		return nil, err
	}

	span = strings.TrimSpace(span)
	if strings.HasPrefix(span, "[") {
		return decodeLegacy(span)
	}
	return decodeCurrent(span)
}

// extractSpan locates the JSON candidate inside raw model output.
func extractSpan(text string) (string, error) {
	if m := fencedBlock.FindStringSubmatch(text); m != nil {
		return m[1], nil
	}

	// No fence: take the widest span between the first opener and the
	// last closer of the same kind.
	braceStart := strings.IndexByte(text, '{')
	bracketStart := strings.IndexByte(text, '[')

	start, closer := braceStart, byte('}')
	if start < 0 || (bracketStart >= 0 && bracketStart < start) {
		start, closer = bracketStart, ']'
	}
	if start < 0 {
		return "", ErrNoPayload
	}

	end := strings.LastIndexByte(text, closer)
	if end <= start {
		return "", ErrNoPayload
	}
	return text[start : end+1], nil
}

// decodeCurrent handles the object schema with suggestions and disciplines.
func decodeCurrent(span string) (*Payload, error) {
	var raw struct {
		Suggestions []json.RawMessage          `json:"suggestions"`
		Disciplines []podcast.DisciplineRecord `json:"disciplines"`
	}
	if err := json.Unmarshal([]byte(span), &raw); err != nil {
		return nil, fmt.Errorf("decoding analysis payload: %w", err)
	}

	p := &Payload{Disciplines: raw.Disciplines}
	for i, r := range raw.Suggestions {
		s, err := podcast.DecodeSuggestion(r)
		if err != nil {
			return nil, fmt.Errorf("suggestion %d: %w", i, err)
		}
		p.Suggestions = append(p.Suggestions, s)
	}
	return p, nil
}

// decodeLegacy handles the first-generation flat array of suggestions.
func decodeLegacy(span string) (*Payload, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal([]byte(span), &raws); err != nil {
		return nil, fmt.Errorf("decoding legacy payload: %w", err)
	}

	p := &Payload{}
	for i, r := range raws {
		s, err := podcast.DecodeSuggestion(r)
		if err != nil {
			return nil, fmt.Errorf("suggestion %d: %w", i, err)
		}
		p.Suggestions = append(p.Suggestions, s)
	}
	return p, nil
}
