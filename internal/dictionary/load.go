package dictionary

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"fedspeak/data"
	"fedspeak/internal/models"
)

// Parse decodes a JSON object of key to entry, keeping source order.
// Repeated keys are returned as separate records.
func Parse(raw []byte) ([]Record, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to read dictionary: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, ErrNotObject
	}

	var records []Record
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to read dictionary key: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, ErrNotObject
		}
		if key == "" {
			return nil, ErrEmptyKey
		}

		var entry models.AcronymEntry
		if err := dec.Decode(&entry); err != nil {
			return nil, fmt.Errorf("failed to decode entry %q: %w", key, err)
		}
		records = append(records, Record{Key: key, Entry: entry})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("failed to read dictionary: %w", err)
	}

	return records, nil
}

// Load parses raw JSON and builds a dictionary from it.
func Load(raw []byte) (*Dictionary, []Record, error) {
	records, err := Parse(raw)
	if err != nil {
		return nil, nil, err
	}
	return New(records), records, nil
}

// LoadFile reads and builds a dictionary from a JSON file on disk.
func LoadFile(path string) (*Dictionary, []Record, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read dictionary file: %w", err)
	}
	return Load(raw)
}

// LoadDefault builds the dictionary embedded in the binary.
func LoadDefault() (*Dictionary, []Record, error) {
	return Load(data.Acronyms)
}

// Open loads the dictionary at path, or the embedded one when path is empty.
func Open(path string) (*Dictionary, []Record, error) {
	if path == "" {
		return LoadDefault()
	}
	return LoadFile(path)
}
