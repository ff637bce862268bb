// Package index implements the inverted text index over the document
// corpus: TF-IDF ranked free-text retrieval combined with exact structured
// pre-filters. The index supports concurrent readers; writers (single
// upserts or a full rebuild) take an exclusive section, so a query sees
// either the old or the new state, never a partial update.
package index

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/ttcdx/vendorlens/internal/domain"
	"github.com/ttcdx/vendorlens/internal/domain/document"
	"github.com/ttcdx/vendorlens/internal/domain/search/query"
	"github.com/ttcdx/vendorlens/internal/domain/search/result"
)

// cancelCheckInterval is how many candidates are scored between context
// cancellation checks.
const cancelCheckInterval = 256

// Config holds the index tuning knobs, injected from configuration.
type Config struct {
	// FieldBoost multiplies term frequencies from title and tag matches
	// over body matches.
	FieldBoost float64
	// SnippetLength caps the highlighted snippet size in runes.
	SnippetLength int
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{FieldBoost: 2.0, SnippetLength: 160}
}

// fieldTF is the per-document term frequency split by field class.
type fieldTF struct {
	body  int
	title int // title and tags share the boosted class
}

// Index is the inverted index plus cached filterable fields per document.
type Index struct {
	cfg Config

	mu       sync.RWMutex
	postings map[string]map[string]*fieldTF // term -> docID -> tf
	docs     map[string]document.Document
	ids      []string // sorted
}

// New creates an empty index.
func New(cfg Config) *Index {
	if cfg.FieldBoost <= 0 {
		cfg.FieldBoost = DefaultConfig().FieldBoost
	}
	if cfg.SnippetLength <= 0 {
		cfg.SnippetLength = DefaultConfig().SnippetLength
	}
	return &Index{
		cfg:      cfg,
		postings: make(map[string]map[string]*fieldTF),
		docs:     make(map[string]document.Document),
	}
}

// Upsert inserts or replaces the entry for one document.
func (ix *Index) Upsert(doc document.Document) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.removeLocked(doc.ID())
	ix.addLocked(doc)
}

// Remove deletes the entry for a document ID. Unknown IDs are a no-op.
func (ix *Index) Remove(id string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.removeLocked(id)
}

// Rebuild replaces the whole index from a fresh corpus snapshot. The new
// state is built off to the side and swapped in one exclusive section.
func (ix *Index) Rebuild(docs []document.Document) {
	next := New(ix.cfg)
	for _, d := range docs {
		next.addLocked(d)
	}

	ix.mu.Lock()
	ix.postings = next.postings
	ix.docs = next.docs
	ix.ids = next.ids
	ix.mu.Unlock()
}

// Len returns the number of indexed documents.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.docs)
}

// Query runs a ranked search. Filters are applied before any scoring;
// documents failing a supplied filter are never ranked. With empty query
// text the matching documents are ordered by meeting_date descending, then
// ID ascending. Ordering is always a total order with an ID-ascending
// tie-break so identical queries return identical orderings.
func (ix *Index) Query(ctx context.Context, q *query.Query) ([]result.Result, int, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	candidates, err := ix.filterLocked(ctx, q.Filters())
	if err != nil {
		return nil, 0, err
	}

	terms := Tokenize(q.Text())
	var ranked []scoredDoc
	if len(terms) == 0 {
		ranked = ix.orderByDateLocked(candidates)
	} else {
		ranked, err = ix.scoreLocked(ctx, candidates, terms)
		if err != nil {
			return nil, 0, err
		}
	}

	total := len(ranked)
	page := paginate(ranked, q.Offset(), q.Limit())

	results := make([]result.Result, 0, len(page))
	for _, sd := range page {
		doc := ix.docs[sd.id]
		results = append(results, result.New(
			doc.ID(), sd.score, doc.Title(),
			buildSnippet(doc.Body(), terms, ix.cfg.SnippetLength),
			doc.VendorName(), doc.MeetingDate(), doc.DocType(), doc.Tags(),
		))
	}
	return results, total, nil
}

type scoredDoc struct {
	id    string
	score float64
}

// filterLocked returns the IDs (in sorted order) of documents passing every
// supplied filter.
func (ix *Index) filterLocked(ctx context.Context, f query.Filters) ([]string, error) {
	matched := make([]string, 0, len(ix.ids))
	for i, id := range ix.ids {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, canceled(err)
			}
		}
		doc := ix.docs[id]
		if f.Vendor != "" && doc.VendorName() != f.Vendor {
			continue
		}
		if f.DocType != "" && doc.DocType() != f.DocType {
			continue
		}
		if !f.From.IsZero() && (doc.MeetingDate().IsZero() || doc.MeetingDate().Before(f.From)) {
			continue
		}
		if !f.To.IsZero() && (doc.MeetingDate().IsZero() || doc.MeetingDate().After(f.To)) {
			continue
		}
		matched = append(matched, id)
	}
	return matched, nil
}

// scoreLocked computes TF-IDF over the query terms for each candidate.
// Documents containing none of the terms are dropped.
func (ix *Index) scoreLocked(ctx context.Context, candidates []string, terms []string) ([]scoredDoc, error) {
	n := float64(len(ix.docs))

	// Per-term IDF over the whole corpus, not just the filtered slice:
	// filters narrow the candidate set, they do not redefine term rarity.
	idf := make(map[string]float64, len(terms))
	for _, t := range terms {
		df := len(ix.postings[t])
		if df > 0 {
			idf[t] = math.Log(1 + n/float64(df))
		}
	}

	ranked := make([]scoredDoc, 0, len(candidates))
	for i, id := range candidates {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, canceled(err)
			}
		}
		var score float64
		for _, t := range terms {
			tf, ok := ix.postings[t][id]
			if !ok {
				continue
			}
			weighted := float64(tf.body) + ix.cfg.FieldBoost*float64(tf.title)
			score += weighted * idf[t]
		}
		if score > 0 {
			ranked = append(ranked, scoredDoc{id: id, score: score})
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].id < ranked[j].id
	})
	return ranked, nil
}

// orderByDateLocked orders a filter-only result set by meeting_date
// descending, then ID ascending. candidates arrive ID-sorted, so a stable
// sort on the date alone preserves the tie-break.
func (ix *Index) orderByDateLocked(candidates []string) []scoredDoc {
	ranked := make([]scoredDoc, len(candidates))
	for i, id := range candidates {
		ranked[i] = scoredDoc{id: id}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		di, dj := ix.docs[ranked[i].id], ix.docs[ranked[j].id]
		return di.MeetingDate().After(dj.MeetingDate())
	})
	return ranked
}

func paginate(ranked []scoredDoc, offset, limit int) []scoredDoc {
	if offset >= len(ranked) {
		return nil
	}
	end := offset + limit
	if end > len(ranked) {
		end = len(ranked)
	}
	return ranked[offset:end]
}

func canceled(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("index query: %w", domain.ErrTimeout)
	}
	return fmt.Errorf("index query: %w", err)
}

func (ix *Index) addLocked(doc document.Document) {
	id := doc.ID()
	ix.docs[id] = doc

	add := func(terms []string, boosted bool) {
		for _, t := range terms {
			byDoc := ix.postings[t]
			if byDoc == nil {
				byDoc = make(map[string]*fieldTF)
				ix.postings[t] = byDoc
			}
			tf := byDoc[id]
			if tf == nil {
				tf = &fieldTF{}
				byDoc[id] = tf
			}
			if boosted {
				tf.title++
			} else {
				tf.body++
			}
		}
	}

	add(Tokenize(doc.Body()), false)
	add(Tokenize(doc.Title()), true)
	for _, tag := range doc.Tags() {
		add(Tokenize(tag), true)
	}

	i := sort.SearchStrings(ix.ids, id)
	ix.ids = append(ix.ids, "")
	copy(ix.ids[i+1:], ix.ids[i:])
	ix.ids[i] = id
}

func (ix *Index) removeLocked(id string) {
	if _, ok := ix.docs[id]; !ok {
		return
	}
	delete(ix.docs, id)
	for t, byDoc := range ix.postings {
		if _, ok := byDoc[id]; ok {
			delete(byDoc, id)
			if len(byDoc) == 0 {
				delete(ix.postings, t)
			}
		}
	}
	i := sort.SearchStrings(ix.ids, id)
	if i < len(ix.ids) && ix.ids[i] == id {
		ix.ids = append(ix.ids[:i], ix.ids[i+1:]...)
	}
}
