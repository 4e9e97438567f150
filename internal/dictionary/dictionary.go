// Package dictionary builds the immutable acronym lookup indices.
//
// A Dictionary is constructed once from the static data set and is read-only
// afterwards, so a single instance can be shared by every request goroutine
// without locking.
package dictionary

import (
	"sort"
	"strings"
	"unicode/utf8"

	"fedspeak/internal/models"
)

// Record is one key/entry pair in source order.
type Record struct {
	Key   string
	Entry models.AcronymEntry
}

// Phrase pairs a canonical key with the normalized text that matches it.
type Phrase struct {
	Key   string
	Match string
}

// Dictionary holds the entries and the forward and reverse indices.
type Dictionary struct {
	keys    []string
	entries map[string]models.AcronymEntry

	// upper(key or alias) -> key
	forward map[string]string
	// lower(full) -> key
	reverse map[string]string

	multiWord []Phrase
	names     []Phrase
}

// New builds a dictionary from records. Later records overwrite earlier ones
// with the same key, alias or full name; a repeated key keeps the position of
// its first occurrence.
func New(records []Record) *Dictionary {
	d := &Dictionary{
		entries: make(map[string]models.AcronymEntry, len(records)),
		forward: make(map[string]string, len(records)),
		reverse: make(map[string]string, len(records)),
	}

	for _, r := range records {
		if _, seen := d.entries[r.Key]; !seen {
			d.keys = append(d.keys, r.Key)
		}
		d.entries[r.Key] = r.Entry
	}

	var nameOrder []string
	for _, key := range d.keys {
		entry := d.entries[key]

		d.forward[strings.ToUpper(key)] = key
		for _, alias := range entry.Aliases {
			d.forward[strings.ToUpper(alias)] = key
		}

		name := strings.ToLower(entry.Full)
		if _, seen := d.reverse[name]; !seen {
			nameOrder = append(nameOrder, name)
		}
		d.reverse[name] = key

		if strings.Contains(key, " ") {
			d.multiWord = append(d.multiWord, Phrase{Key: key, Match: strings.ToUpper(key)})
		}
	}

	d.names = make([]Phrase, 0, len(nameOrder))
	for _, name := range nameOrder {
		d.names = append(d.names, Phrase{Key: d.reverse[name], Match: name})
	}
	sort.SliceStable(d.names, func(i, j int) bool {
		return utf8.RuneCountInString(d.names[i].Match) > utf8.RuneCountInString(d.names[j].Match)
	})

	return d
}

// Count returns the number of canonical keys.
func (d *Dictionary) Count() int {
	return len(d.keys)
}

// Keys returns every canonical key in lexicographic order.
func (d *Dictionary) Keys() []string {
	keys := make([]string, len(d.keys))
	copy(keys, d.keys)
	sort.Strings(keys)
	return keys
}

// Entry returns the entry stored under a canonical key.
func (d *Dictionary) Entry(key string) (models.AcronymEntry, bool) {
	entry, ok := d.entries[key]
	return entry, ok
}

// Result returns the public result for a canonical key.
func (d *Dictionary) Result(key string) (models.Result, bool) {
	entry, ok := d.entries[key]
	if !ok {
		return models.Result{}, false
	}
	return models.NewResult(key, entry), true
}

// KeyForToken resolves an upper-cased key or alias to its canonical key.
func (d *Dictionary) KeyForToken(upper string) (string, bool) {
	key, ok := d.forward[upper]
	return key, ok
}

// KeyForName resolves a lower-cased full name to its canonical key.
func (d *Dictionary) KeyForName(lower string) (string, bool) {
	key, ok := d.reverse[lower]
	return key, ok
}

// MultiWordKeys returns the keys containing a space, upper-cased, in
// dictionary order. The slice is shared and must not be modified.
func (d *Dictionary) MultiWordKeys() []Phrase {
	return d.multiWord
}

// NamesByLength returns the reverse index entries ordered by full-name length,
// longest first, ties in insertion order. The slice is shared and must not be
// modified.
func (d *Dictionary) NamesByLength() []Phrase {
	return d.names
}
