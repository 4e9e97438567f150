package resolver

import (
	"strings"

	"fedspeak/internal/dictionary"
	"fedspeak/internal/models"
)

// Encoder resolves full names to their acronyms.
type Encoder struct {
	dict *dictionary.Dictionary
}

// NewEncoder creates an encoder over a dictionary.
func NewEncoder(dict *dictionary.Dictionary) *Encoder {
	return &Encoder{dict: dict}
}

// LookupName resolves an exact full name, ignoring case and surrounding
// whitespace.
func (e *Encoder) LookupName(query string) (models.Result, bool) {
	key, ok := e.dict.KeyForName(strings.ToLower(strings.TrimSpace(query)))
	if !ok {
		return models.Result{}, false
	}
	return e.dict.Result(key)
}

// ScanTextForNames returns every distinct entry whose full name occurs in
// text, case-insensitively.
//
// Names are tried longest first. A shorter name is skipped when each of its
// occurrences lies inside a longer name already matched ("Contracting
// Officer" inside "Contracting Officer's Representative"). Names that only
// overlap a match still count. Results are in match order, not text order.
func (e *Encoder) ScanTextForNames(text string) []models.Result {
	seen := make(map[string]bool)
	results := []models.Result{}

	lower := strings.ToLower(text)
	var matched []span
	for _, phrase := range e.dict.NamesByLength() {
		if phrase.Match == "" {
			continue
		}
		found := occurrences(lower, phrase.Match)
		free := false
		for _, sp := range found {
			if !sp.within(matched) {
				free = true
				break
			}
		}
		if !free {
			continue
		}
		matched = append(matched, found...)

		if seen[phrase.Key] {
			continue
		}
		if res, ok := e.dict.Result(phrase.Key); ok {
			seen[phrase.Key] = true
			results = append(results, res)
		}
	}

	return results
}

// span is a half-open byte range of the lower-cased text.
type span struct {
	start, end int
}

func (s span) within(spans []span) bool {
	for _, o := range spans {
		if o.start <= s.start && s.end <= o.end {
			return true
		}
	}
	return false
}

// occurrences lists every, possibly overlapping, position of sub in s.
func occurrences(s, sub string) []span {
	var out []span
	for from := 0; from+len(sub) <= len(s); {
		i := strings.Index(s[from:], sub)
		if i < 0 {
			break
		}
		start := from + i
		out = append(out, span{start: start, end: start + len(sub)})
		from = start + 1
	}
	return out
}
