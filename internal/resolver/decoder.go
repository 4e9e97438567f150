// Package resolver implements forward (acronym to name) and reverse
// (name to acronym) resolution over a dictionary.
package resolver

import (
	"strings"

	"fedspeak/internal/dictionary"
	"fedspeak/internal/models"
)

// wordPunctuation is stripped from both ends of each scanned token.
const wordPunctuation = `.,;:!?()[]{}'"`

// Decoder resolves acronyms and aliases to dictionary entries.
type Decoder struct {
	dict *dictionary.Dictionary
}

// NewDecoder creates a decoder over a dictionary.
func NewDecoder(dict *dictionary.Dictionary) *Decoder {
	return &Decoder{dict: dict}
}

// LookupAcronym resolves a single acronym or alias, ignoring case and
// surrounding whitespace. The boolean is false when nothing matches.
func (d *Decoder) LookupAcronym(query string) (models.Result, bool) {
	key, ok := d.dict.KeyForToken(strings.ToUpper(strings.TrimSpace(query)))
	if !ok {
		return models.Result{}, false
	}
	return d.dict.Result(key)
}

// ScanText returns every distinct acronym found in text.
//
// Single-word hits come first in the order they appear. Keys containing a
// space are then searched as case-insensitive substrings and appended in
// dictionary order. That second pass costs O(keys × len(text)).
func (d *Decoder) ScanText(text string) []models.Result {
	seen := make(map[string]bool)
	results := []models.Result{}

	add := func(key string) {
		if seen[key] {
			return
		}
		if res, ok := d.dict.Result(key); ok {
			seen[key] = true
			results = append(results, res)
		}
	}

	for _, word := range strings.Fields(text) {
		token := strings.TrimLeft(strings.TrimRight(word, wordPunctuation), wordPunctuation)
		if key, ok := d.dict.KeyForToken(strings.ToUpper(token)); ok {
			add(key)
		}
	}

	upper := strings.ToUpper(text)
	for _, phrase := range d.dict.MultiWordKeys() {
		if !seen[phrase.Key] && strings.Contains(upper, phrase.Match) {
			add(phrase.Key)
		}
	}

	return results
}
