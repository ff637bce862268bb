package document

import (
	"fmt"
	"regexp"
	"time"
)

var idRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// MaxBodySize is the maximum document body size in bytes.
const MaxBodySize = 163840 // 160KB

// Document is an ingested knowledge record (immutable value object).
// Title, vendor name, meeting date and doc type are all optional metadata;
// a zero meeting date means the record carries none.
type Document struct {
	id          string
	title       string
	body        string
	vendorName  string
	meetingDate time.Time
	docType     string
	tags        []string
}

// New validates and creates a Document.
// ID: ^[a-zA-Z0-9_-]+$, 1-256 chars. Body: non-empty, max 160KB.
func New(
	id, title, body, vendorName string,
	meetingDate time.Time, docType string, tags []string,
) (Document, error) {
	if id == "" {
		return Document{}, fmt.Errorf("document ID is required")
	}
	if len(id) > 256 {
		return Document{}, fmt.Errorf("document ID too long (max 256)")
	}
	if !idRegex.MatchString(id) {
		return Document{}, fmt.Errorf("document ID must be alphanumeric with underscores and hyphens")
	}
	if body == "" {
		return Document{}, fmt.Errorf("body is required")
	}
	if len(body) > MaxBodySize {
		return Document{}, fmt.Errorf("body too large (max %d bytes)", MaxBodySize)
	}

	return Document{
		id:          id,
		title:       title,
		body:        body,
		vendorName:  vendorName,
		meetingDate: meetingDate,
		docType:     docType,
		tags:        cloneStrings(tags),
	}, nil
}

// Reconstruct creates a Document without validation (fixture hydration).
func Reconstruct(
	id, title, body, vendorName string,
	meetingDate time.Time, docType string, tags []string,
) Document {
	return Document{
		id: id, title: title, body: body, vendorName: vendorName,
		meetingDate: meetingDate, docType: docType, tags: tags,
	}
}

// ID returns the document identifier.
func (d *Document) ID() string { return d.id }

// Title returns the optional document title.
func (d *Document) Title() string { return d.title }

// Body returns the document text body.
func (d *Document) Body() string { return d.body }

// VendorName returns the vendor this record is tagged with, if any.
func (d *Document) VendorName() string { return d.vendorName }

// MeetingDate returns the meeting date; zero when the record has none.
func (d *Document) MeetingDate() time.Time { return d.meetingDate }

// DocType returns the document type tag (minutes, proposal, ...), if any.
func (d *Document) DocType() string { return d.docType }

// Tags returns a copy of the free-form tags.
func (d *Document) Tags() []string { return cloneStrings(d.tags) }

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	c := make([]string, len(s))
	copy(c, s)
	return c
}
