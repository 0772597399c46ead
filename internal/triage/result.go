package triage

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrInvalidClassification is returned for a classification outside the fixed set
	ErrInvalidClassification = errors.New("invalid classification value")
	// ErrInvalidConfidence is returned for a confidence outside the fixed set
	ErrInvalidConfidence = errors.New("invalid confidence value")
	// ErrInvalidAction is returned for a suggested action outside the fixed set
	ErrInvalidAction = errors.New("invalid suggested action value")
	// ErrMissingField is returned when a result field is absent
	ErrMissingField = errors.New("missing result field")
)

// Classification is the category assigned to an issue
type Classification string

const (
	ClassificationSupport Classification = "support"
	ClassificationBug     Classification = "bug"
	ClassificationFeature Classification = "feature"
	ClassificationUnclear Classification = "unclear"
)

// Classifications lists every valid classification in prompt order
var Classifications = []Classification{
	ClassificationSupport,
	ClassificationBug,
	ClassificationFeature,
	ClassificationUnclear,
}

// IsValid reports whether c is one of the fixed classifications
func (c Classification) IsValid() bool {
	switch c {
	case ClassificationSupport, ClassificationBug, ClassificationFeature, ClassificationUnclear:
		return true
	}
	return false
}

func (c *Classification) UnmarshalJSON(data []byte) error {
	v, err := decodeLiteral(data, ErrInvalidClassification)
	if err != nil {
		return err
	}
	if !Classification(v).IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidClassification, v)
	}
	*c = Classification(v)
	return nil
}

// Confidence is how sure the agent is of its classification
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// IsValid reports whether c is one of the fixed confidence levels
func (c Confidence) IsValid() bool {
	switch c {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
		return true
	}
	return false
}

func (c *Confidence) UnmarshalJSON(data []byte) error {
	v, err := decodeLiteral(data, ErrInvalidConfidence)
	if err != nil {
		return err
	}
	if !Confidence(v).IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidConfidence, v)
	}
	*c = Confidence(v)
	return nil
}

// SuggestedAction is what a workflow should do with the issue
type SuggestedAction string

const (
	SuggestClose     SuggestedAction = "close"
	SuggestKeep      SuggestedAction = "keep"
	SuggestNeedsInfo SuggestedAction = "needs_info"
)

// IsValid reports whether a is one of the fixed actions
func (a SuggestedAction) IsValid() bool {
	switch a {
	case SuggestClose, SuggestKeep, SuggestNeedsInfo:
		return true
	}
	return false
}

func (a *SuggestedAction) UnmarshalJSON(data []byte) error {
	v, err := decodeLiteral(data, ErrInvalidAction)
	if err != nil {
		return err
	}
	if !SuggestedAction(v).IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidAction, v)
	}
	*a = SuggestedAction(v)
	return nil
}

// decodeLiteral reads a JSON string; any other JSON value is reported as sentinel
func decodeLiteral(data []byte, sentinel error) (string, error) {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return "", fmt.Errorf("%w: %s", sentinel, data)
	}
	return v, nil
}

// Result is the triage decision for one issue
type Result struct {
	Classification  Classification  `json:"classification"`
	Confidence      Confidence      `json:"confidence"`
	Reason          string          `json:"reason"`
	SuggestedAction SuggestedAction `json:"suggestedAction"`
}

// wireResult detects absent fields during decode
type wireResult struct {
	Classification  *Classification  `json:"classification"`
	Confidence      *Confidence      `json:"confidence"`
	Reason          *string          `json:"reason"`
	SuggestedAction *SuggestedAction `json:"suggestedAction"`
}

// UnmarshalJSON decodes a result, requiring all four fields with valid values
func (r *Result) UnmarshalJSON(data []byte) error {
	var w wireResult
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	switch {
	case w.Classification == nil:
		return fmt.Errorf("%w: classification", ErrMissingField)
	case w.Confidence == nil:
		return fmt.Errorf("%w: confidence", ErrMissingField)
	case w.Reason == nil:
		return fmt.Errorf("%w: reason", ErrMissingField)
	case w.SuggestedAction == nil:
		return fmt.Errorf("%w: suggestedAction", ErrMissingField)
	}

	*r = Result{
		Classification:  *w.Classification,
		Confidence:      *w.Confidence,
		Reason:          *w.Reason,
		SuggestedAction: *w.SuggestedAction,
	}
	return nil
}

// Validate checks a result built in code rather than decoded
func (r *Result) Validate() error {
	if !r.Classification.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidClassification, r.Classification)
	}
	if !r.Confidence.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidConfidence, r.Confidence)
	}
	if !r.SuggestedAction.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidAction, r.SuggestedAction)
	}
	return nil
}
