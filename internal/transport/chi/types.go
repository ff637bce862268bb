package chi

// Error codes surfaced to clients alongside the HTTP status.
const (
	codeBadRequest   = "bad_request"
	codeInvalidQuery = "invalid_query"
	codeTimeout      = "timeout"
	codeNotFound     = "not_found"
	codeClientClosed = "client_closed_request"
	codeInternal     = "internal_error"
)

// errorResponse is the machine-readable error envelope.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// searchRequest is the POST /search payload. The GET form carries the same
// fields as query parameters.
type searchRequest struct {
	Text    string        `json:"text"`
	Filters searchFilters `json:"filters"`
	Limit   int           `json:"limit,omitempty"`
	Offset  int           `json:"offset,omitempty"`
}

type searchFilters struct {
	Vendor  string `json:"vendor,omitempty"`
	DocType string `json:"doc_type,omitempty"`
	From    string `json:"from,omitempty"` // YYYY-MM-DD, inclusive
	To      string `json:"to,omitempty"`   // YYYY-MM-DD, inclusive
}

// searchResultItem mirrors the result card the UI renders.
type searchResultItem struct {
	ID      string         `json:"id"`
	Title   string         `json:"title,omitempty"`
	Snippet string         `json:"snippet,omitempty"`
	Score   float64        `json:"score"`
	Tags    []string       `json:"tags,omitempty"`
	Meta    searchItemMeta `json:"meta"`
}

type searchItemMeta struct {
	VendorName  string `json:"vendor_name,omitempty"`
	MeetingDate string `json:"meeting_date,omitempty"`
	DocType     string `json:"doc_type,omitempty"`
}

// searchResponse echoes the query alongside the ordered results.
type searchResponse struct {
	Query   string             `json:"query"`
	Results []searchResultItem `json:"results"`
	Total   int                `json:"total"`
}

// recommendRequest is the POST /recommend payload: dimension machine key ->
// selected value(s). Single-select dimensions may use the scalar form.
type recommendRequest struct {
	Criteria     map[string]stringList `json:"criteria"`
	Requirements string                `json:"requirements,omitempty"` // optional free text
}

// recommendationItem is one explained catalog entry.
type recommendationItem struct {
	CompanyName       string           `json:"company_name"`
	MatchScore        int              `json:"match_score"`
	Reasoning         string           `json:"reasoning"`
	MatchedDimensions []dimensionMatch `json:"matched_dimensions"`
}

type dimensionMatch struct {
	Dimension string   `json:"dimension"`
	Values    []string `json:"values"`
}

type recommendResponse struct {
	Recommendations []recommendationItem `json:"recommendations"`
	Related         []searchResultItem   `json:"related,omitempty"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
