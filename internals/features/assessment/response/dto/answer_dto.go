package dto

import (
	"encoding/json"
	"errors"
	"strings"

	catalogModel "roadmapguide_backend/internals/features/assessment/catalog/model"
)

// Answer is the tagged variant every stored response is normalized into.
// Earlier revisions of this system stored whatever JSON the client sent
// (a bare index, a list, a string); normalizing at the API boundary keeps the
// progress/results queries out of the guessing business.
type AnswerKind string

const (
	AnswerSingle AnswerKind = "single"
	AnswerMulti  AnswerKind = "multi"
	AnswerText   AnswerKind = "text"
)

type Answer struct {
	Kind       AnswerKind `json:"kind"`
	Index      *int       `json:"index,omitempty"`      // single: 0-based option index
	Selections []string   `json:"selections,omitempty"` // multi: selected option titles
	Text       string     `json:"text,omitempty"`       // text: free text
}

var ErrUnsupportedAnswer = errors.New("unsupported answer payload")

// IsEmpty reports whether the answer carries no content at all.
func (a Answer) IsEmpty() bool {
	switch a.Kind {
	case AnswerSingle:
		return a.Index == nil
	case AnswerMulti:
		return len(a.Selections) == 0
	case AnswerText:
		return strings.TrimSpace(a.Text) == ""
	default:
		return true
	}
}

// ParseAnswer normalizes a raw JSON payload into the tagged variant.
// Accepted inputs: a bare number (single), a string array (multi), a bare
// string (text), or the tagged object itself. questionType settles ambiguity
// for empty payloads.
func ParseAnswer(raw json.RawMessage, questionType string) (Answer, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return emptyAnswerFor(questionType), nil
	}

	// tagged object passthrough
	if strings.HasPrefix(trimmed, "{") {
		var a Answer
		if err := json.Unmarshal(raw, &a); err != nil {
			return Answer{}, err
		}
		switch a.Kind {
		case AnswerSingle, AnswerMulti, AnswerText:
			return a, nil
		default:
			return Answer{}, ErrUnsupportedAnswer
		}
	}

	// bare array → multi
	if strings.HasPrefix(trimmed, "[") {
		var selections []string
		if err := json.Unmarshal(raw, &selections); err != nil {
			return Answer{}, err
		}
		return Answer{Kind: AnswerMulti, Selections: selections}, nil
	}

	// bare string → text
	if strings.HasPrefix(trimmed, `"`) {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return Answer{}, err
		}
		return Answer{Kind: AnswerText, Text: text}, nil
	}

	// bare number → single (option index)
	var idx int
	if err := json.Unmarshal(raw, &idx); err != nil {
		return Answer{}, ErrUnsupportedAnswer
	}
	return Answer{Kind: AnswerSingle, Index: &idx}, nil
}

// DecodeAnswer unpacks a stored answer blob back into the variant.
func DecodeAnswer(blob []byte) (Answer, error) {
	var a Answer
	if err := json.Unmarshal(blob, &a); err != nil {
		return Answer{}, err
	}
	return a, nil
}

func (a Answer) Encode() ([]byte, error) {
	return json.Marshal(a)
}

func emptyAnswerFor(questionType string) Answer {
	switch questionType {
	case catalogModel.TypeMultipleChoice:
		return Answer{Kind: AnswerMulti}
	case catalogModel.TypeText:
		return Answer{Kind: AnswerText}
	default:
		return Answer{Kind: AnswerSingle}
	}
}
