// Package truncate shrinks response envelopes to fit a serialized-size budget.
package truncate

import (
	"fmt"
	"strings"

	"fedspeak/internal/envelope"
	"fedspeak/internal/models"
)

// DefaultBudget is the payload limit of the strictest downstream consumer.
const DefaultBudget = 2000

// Step reports how far a response had to be reduced.
type Step int

// Step constants, in escalation order.
const (
	StepNone Step = iota
	StepShortenDescriptions
	StepDropDescriptions
	StepTrimResults
	// StepOverBudget means every result was dropped and the bare envelope
	// still exceeds the budget.
	StepOverBudget
)

func (s Step) String() string {
	switch s {
	case StepNone:
		return "none"
	case StepShortenDescriptions:
		return "shorten_descriptions"
	case StepDropDescriptions:
		return "drop_descriptions"
	case StepTrimResults:
		return "trim_results"
	case StepOverBudget:
		return "over_budget"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// Truncator applies a fixed budget measured in characters of the envelope's
// canonical JSON.
type Truncator struct {
	budget int
}

// New creates a truncator. A non-positive budget falls back to DefaultBudget.
func New(budget int) *Truncator {
	if budget <= 0 {
		budget = DefaultBudget
	}
	return &Truncator{budget: budget}
}

// Budget returns the configured budget.
func (t *Truncator) Budget() int {
	return t.budget
}

// Truncate returns resp reduced just enough to fit the budget:
// first sentences only, then no descriptions, then fewer results.
// The input is never modified.
func (t *Truncator) Truncate(resp models.Response) (models.Response, Step, error) {
	fits, err := t.fits(resp)
	if err != nil || fits {
		return resp, StepNone, err
	}

	shortened := resp.Clone()
	shortened.Truncated = true
	for i := range shortened.Results {
		shortened.Results[i].Description = FirstSentence(shortened.Results[i].Description)
	}
	if fits, err := t.fits(shortened); err != nil || fits {
		return shortened, StepShortenDescriptions, err
	}

	noDesc := shortened.Clone()
	for i := range noDesc.Results {
		noDesc.Results[i].Description = ""
	}
	if fits, err := t.fits(noDesc); err != nil || fits {
		return noDesc, StepDropDescriptions, err
	}

	trimmed := noDesc.Clone()
	for len(trimmed.Results) > 0 {
		trimmed.Results = trimmed.Results[:len(trimmed.Results)-1]
		if fits, err := t.fits(trimmed); err != nil {
			return trimmed, StepTrimResults, err
		} else if fits {
			break
		}
	}
	trimmed.Count = len(trimmed.Results)

	fits, err = t.fits(trimmed)
	if err != nil {
		return trimmed, StepTrimResults, err
	}
	if !fits {
		return trimmed, StepOverBudget, nil
	}
	return trimmed, StepTrimResults, nil
}

func (t *Truncator) fits(resp models.Response) (bool, error) {
	size, err := envelope.Size(resp)
	if err != nil {
		return false, fmt.Errorf("failed to measure response: %w", err)
	}
	return size <= t.budget, nil
}

// FirstSentence keeps the text before the first ". " and ends it with a
// period. Text without ". " is kept whole and gains a period.
func FirstSentence(description string) string {
	before, _, _ := strings.Cut(description, ". ")
	return before + "."
}
