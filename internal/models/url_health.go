package models

import "time"

// URL health status constants
const (
	HealthUnknown   = "unknown"
	HealthHealthy   = "healthy"
	HealthUnhealthy = "unhealthy"
)

// URLHealth is the last check result for an entry's url.
type URLHealth struct {
	Acronym   string    `json:"acronym"`
	URL       string    `json:"url"`
	Status    string    `json:"status"`
	Error     string    `json:"error,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
}

// IsHealthy returns true if the last check reached the site.
func (h URLHealth) IsHealthy() bool {
	return h.Status == HealthHealthy
}
