package envelope

import (
	"bytes"
	"encoding/json"
	"unicode/utf8"
)

// Marshal is the canonical serialization of API payloads. HTML characters are
// not escaped so the measured size matches what clients receive.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Size returns the number of characters in the canonical serialization of v.
func Size(v any) (int, error) {
	b, err := Marshal(v)
	if err != nil {
		return 0, err
	}
	return utf8.RuneCount(b), nil
}
