// Package envelope wraps resolver output in the uniform response envelope.
package envelope

import (
	"fedspeak/internal/models"
	"fedspeak/internal/resolver"
)

// Builder answers decode and encode requests.
type Builder struct {
	decoder *resolver.Decoder
	encoder *resolver.Encoder
}

// NewBuilder creates a builder from a decoder and an encoder.
func NewBuilder(decoder *resolver.Decoder, encoder *resolver.Encoder) *Builder {
	return &Builder{decoder: decoder, encoder: encoder}
}

// Decode resolves an acronym, or scans text for acronyms.
func (b *Builder) Decode(req models.DecodeRequest) models.Response {
	q := req.Query()
	switch q.Kind {
	case models.QuerySingle:
		return single(q.Term, b.decoder.LookupAcronym)
	case models.QueryScan:
		return scan(q.Term, b.decoder.ScanText)
	default:
		return models.EmptyResponse()
	}
}

// Encode resolves a full name, or scans text for full names.
func (b *Builder) Encode(req models.EncodeRequest) models.Response {
	q := req.Query()
	switch q.Kind {
	case models.QuerySingle:
		return single(q.Term, b.encoder.LookupName)
	case models.QueryScan:
		return scan(q.Term, b.encoder.ScanTextForNames)
	default:
		return models.EmptyResponse()
	}
}

func single(term string, lookup func(string) (models.Result, bool)) models.Response {
	results := []models.Result{}
	if res, ok := lookup(term); ok {
		results = append(results, res)
	}
	return models.Response{
		Success: len(results) > 0,
		Query:   term,
		Mode:    models.ModeSingle,
		Results: results,
		Count:   len(results),
	}
}

func scan(text string, scanner func(string) []models.Result) models.Response {
	results := scanner(text)
	if results == nil {
		results = []models.Result{}
	}
	return models.Response{
		Success: len(results) > 0,
		Query:   text,
		Mode:    models.ModeScan,
		Results: results,
		Count:   len(results),
	}
}
