package models

import "time"

// Lookup outcome constants
const (
	OutcomeResolved = "resolved"
	OutcomeScanned  = "scanned"
	OutcomeNotFound = "not_found"
)

// Lookup direction constants
const (
	DirectionDecode = "decode"
	DirectionEncode = "encode"
)

// AcronymLookup is a per-term hit count by direction and outcome.
type AcronymLookup struct {
	Term       string    `json:"term"`
	Direction  string    `json:"direction"`
	Outcome    string    `json:"outcome"`
	Count      int64     `json:"count"`
	LastSeenAt time.Time `json:"last_seen_at"`
}
