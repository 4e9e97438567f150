package models

// Mode describes how a query was resolved.
type Mode string

// Mode constants
const (
	ModeSingle Mode = "single"
	ModeScan   Mode = "scan"
)

// Response is the envelope returned by both decode and encode.
// Field order is the serialization order.
type Response struct {
	Success   bool     `json:"success"`
	Query     string   `json:"query"`
	Mode      Mode     `json:"mode"`
	Results   []Result `json:"results"`
	Count     int      `json:"count"`
	Truncated bool     `json:"truncated"`
}

// EmptyResponse is returned when a request names neither a term nor text.
func EmptyResponse() Response {
	return Response{
		Success: false,
		Query:   "",
		Mode:    ModeSingle,
		Results: []Result{},
		Count:   0,
	}
}

// Clone returns a copy of r whose results slice can be modified freely.
func (r Response) Clone() Response {
	out := r
	out.Results = make([]Result, len(r.Results))
	copy(out.Results, r.Results)
	return out
}

// AcronymListResponse lists every canonical key in the dictionary.
type AcronymListResponse struct {
	Count    int      `json:"count"`
	Acronyms []string `json:"acronyms"`
}

// ErrorResponse is the body of every non-200 API response.
type ErrorResponse struct {
	Error string `json:"error"`
	Usage *Usage `json:"usage,omitempty"`
}

// Usage shows a caller the two accepted request shapes.
type Usage struct {
	Single map[string]string `json:"single"`
	Scan   map[string]string `json:"scan"`
}
