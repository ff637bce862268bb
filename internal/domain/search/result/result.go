package result

import "time"

// Result is a single search hit with the document's filterable metadata.
type Result struct {
	documentID  string
	score       float64
	title       string
	snippet     string
	vendorName  string
	meetingDate time.Time
	docType     string
	tags        []string
}

// New creates a search result.
func New(
	documentID string, score float64, title, snippet string,
	vendorName string, meetingDate time.Time, docType string, tags []string,
) Result {
	return Result{
		documentID: documentID, score: score, title: title, snippet: snippet,
		vendorName: vendorName, meetingDate: meetingDate, docType: docType, tags: tags,
	}
}

// DocumentID returns the matched document identifier.
func (r *Result) DocumentID() string { return r.documentID }

// Score returns the relevance score.
func (r *Result) Score() float64 { return r.score }

// Title returns the document title, if any.
func (r *Result) Title() string { return r.title }

// Snippet returns the highlighted body excerpt.
func (r *Result) Snippet() string { return r.snippet }

// VendorName returns the document's vendor tag, if any.
func (r *Result) VendorName() string { return r.vendorName }

// MeetingDate returns the document's meeting date; zero when absent.
func (r *Result) MeetingDate() time.Time { return r.meetingDate }

// DocType returns the document type, if any.
func (r *Result) DocType() string { return r.docType }

// Tags returns the document's free-form tags.
func (r *Result) Tags() []string { return r.tags }
