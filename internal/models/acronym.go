package models

// Category classifies the kind of government body or concept an acronym names.
type Category string

// Category constants
const (
	CategoryDepartment Category = "department"
	CategoryAgency     Category = "agency"
	CategoryOffice     Category = "office"
	CategoryBureau     Category = "bureau"
	CategoryProgram    Category = "program"
	CategoryProcess    Category = "process"
	CategoryRegulation Category = "regulation"
	CategorySystem     Category = "system"
	CategoryGeneral    Category = "general"
)

// Categories lists every known category in display order.
var Categories = []Category{
	CategoryDepartment,
	CategoryAgency,
	CategoryOffice,
	CategoryBureau,
	CategoryProgram,
	CategoryProcess,
	CategoryRegulation,
	CategorySystem,
	CategoryGeneral,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// AcronymEntry is a single dictionary record as stored in the data file.
type AcronymEntry struct {
	Full        string   `json:"full"`
	Description string   `json:"description"`
	Agency      string   `json:"agency"`
	Category    Category `json:"category"`
	URL         string   `json:"url,omitempty"`
	Aliases     []string `json:"aliases,omitempty"`
}

// Result is the public view of an entry. Aliases are never exposed.
type Result struct {
	Acronym     string   `json:"acronym"`
	Full        string   `json:"full"`
	Description string   `json:"description"`
	Agency      string   `json:"agency"`
	Category    Category `json:"category"`
	URL         string   `json:"url,omitempty"`
}

// NewResult builds the result for a canonical key and its entry.
func NewResult(key string, entry AcronymEntry) Result {
	return Result{
		Acronym:     key,
		Full:        entry.Full,
		Description: entry.Description,
		Agency:      entry.Agency,
		Category:    entry.Category,
		URL:         entry.URL,
	}
}
