package corpus

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ttcdx/vendorlens/internal/domain/document"
)

// docRecord is the YAML fixture shape for one knowledge record. Ingestion
// proper (chunking, embedding, metadata extraction) happens upstream; the
// store only hydrates pre-built records.
type docRecord struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Body        string   `yaml:"body"`
	VendorName  string   `yaml:"vendor_name"`
	MeetingDate string   `yaml:"meeting_date"` // YYYY-MM-DD
	DocType     string   `yaml:"doc_type"`
	Tags        []string `yaml:"tags"`
}

// Load reads a YAML corpus fixture into documents.
func Load(path string) ([]document.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus %s: %w", path, err)
	}

	var records []docRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse corpus %s: %w", path, err)
	}

	docs := make([]document.Document, 0, len(records))
	for i, r := range records {
		var meetingDate time.Time
		if r.MeetingDate != "" {
			meetingDate, err = time.Parse("2006-01-02", r.MeetingDate)
			if err != nil {
				return nil, fmt.Errorf("corpus record %d: bad meeting_date %q: %w", i, r.MeetingDate, err)
			}
		}
		doc, err := document.New(r.ID, r.Title, r.Body, r.VendorName, meetingDate, r.DocType, r.Tags)
		if err != nil {
			return nil, fmt.Errorf("corpus record %d: %w", i, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
