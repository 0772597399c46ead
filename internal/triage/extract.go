package triage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoJSON is returned when a response holds no JSON object
var ErrNoJSON = errors.New("no JSON found in response")

// DecodeError reports a JSON object span that could not be decoded
type DecodeError struct {
	Span string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to parse triage result %s: %v", e.Span, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// FindJSONSpan returns the text from the first '{' to the last '}'
func FindJSONSpan(response string) (string, bool) {
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start < 0 || end < start {
		return "", false
	}
	return response[start : end+1], true
}

// Extract decodes the triage result embedded in a free-text agent response
func Extract(response string) (*Result, error) {
	span, ok := FindJSONSpan(response)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoJSON, response)
	}

	var result Result
	if err := json.Unmarshal([]byte(span), &result); err != nil {
		if isValidationError(err) {
			return nil, err
		}
		return nil, &DecodeError{Span: span, Err: err}
	}

	return &result, nil
}

func isValidationError(err error) bool {
	for _, sentinel := range []error{ErrMissingField, ErrInvalidClassification, ErrInvalidConfidence, ErrInvalidAction} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
