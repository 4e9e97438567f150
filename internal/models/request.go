package models

// QueryKind tags which request shape a caller supplied.
type QueryKind int

// QueryKind constants
const (
	QueryEmpty QueryKind = iota
	QuerySingle
	QueryScan
)

// Query is the resolved form of a request: one term, one text, or nothing.
type Query struct {
	Kind QueryKind
	Term string
}

// DecodeRequest asks for acronym to full-name resolution.
type DecodeRequest struct {
	Acronym string `json:"acronym,omitempty"`
	Text    string `json:"text,omitempty"`
}

// Query returns the request as a tagged query. Acronym wins over text.
func (r DecodeRequest) Query() Query {
	return newQuery(r.Acronym, r.Text)
}

// EncodeRequest asks for full-name to acronym resolution.
type EncodeRequest struct {
	Name string `json:"name,omitempty"`
	Text string `json:"text,omitempty"`
}

// Query returns the request as a tagged query. Name wins over text.
func (r EncodeRequest) Query() Query {
	return newQuery(r.Name, r.Text)
}

func newQuery(primary, text string) Query {
	switch {
	case primary != "":
		return Query{Kind: QuerySingle, Term: primary}
	case text != "":
		return Query{Kind: QueryScan, Term: text}
	default:
		return Query{Kind: QueryEmpty}
	}
}
