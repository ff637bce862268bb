// Package vendorlens is the embedded in-process client: the full engine
// (document store, search index, vendor catalog, scorer, orchestrator)
// wired without an HTTP server, for library consumers and tools.
package vendorlens

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ttcdx/vendorlens/internal/catalog"
	"github.com/ttcdx/vendorlens/internal/corpus"
	"github.com/ttcdx/vendorlens/internal/domain/document"
	"github.com/ttcdx/vendorlens/internal/domain/recommend/criteria"
	searchq "github.com/ttcdx/vendorlens/internal/domain/search/query"
	"github.com/ttcdx/vendorlens/internal/domain/search/result"
	"github.com/ttcdx/vendorlens/internal/domain/vendor"
	"github.com/ttcdx/vendorlens/internal/index"
	queryuc "github.com/ttcdx/vendorlens/internal/usecase/query"
	recommenduc "github.com/ttcdx/vendorlens/internal/usecase/recommend"
	searchuc "github.com/ttcdx/vendorlens/internal/usecase/search"
)

// Config tunes the embedded engine. The zero value is usable.
type Config struct {
	// CorpusPath and CatalogPath load fixtures at Open; empty means start
	// with an empty store/catalog and populate via Reload*.
	CorpusPath  string
	CatalogPath string

	// Dimensions overrides the stock questionnaire; nil keeps the default.
	Dimensions []Dimension

	// DefaultPageSize and MaxPageSize bound search pagination.
	DefaultPageSize int
	MaxPageSize     int

	// FieldBoost and SnippetLength tune the index; zero keeps defaults.
	FieldBoost    float64
	SnippetLength int

	// Timeout is the per-request budget; zero disables it.
	Timeout time.Duration
	// TopN caps recommendation lists; zero returns the full ranking.
	TopN int

	// Logger defaults to zap.NewNop().
	Logger *zap.Logger
}

// Dimension mirrors the scoring table entry for embedded configuration.
type Dimension struct {
	Key    string
	Weight int
	Multi  bool
}

// Recommendation is one explained recommendation.
type Recommendation = queryuc.Recommendation

// Client is the vendorlens embedded engine entry point.
type Client struct {
	store        *corpus.Store
	cat          *catalog.Catalog
	ix           *index.Index
	orchestrator *queryuc.Service
	limits       [2]int // default, max page size
	logger       *zap.Logger
}

// Open builds and wires the engine, loading any configured fixtures.
func Open(cfg Config) (*Client, error) {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = 20
	}
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = 100
	}

	dims := recommenduc.DefaultDimensions()
	if len(cfg.Dimensions) > 0 {
		dims = make([]recommenduc.Dimension, 0, len(cfg.Dimensions))
		for _, d := range cfg.Dimensions {
			dims = append(dims, recommenduc.Dimension{Key: d.Key, Weight: d.Weight, Multi: d.Multi})
		}
	}
	if err := recommenduc.ValidateDimensions(dims); err != nil {
		return nil, fmt.Errorf("dimension table: %w", err)
	}

	c := &Client{
		store: corpus.NewStore(),
		cat:   catalog.New(),
		ix: index.New(index.Config{
			FieldBoost:    cfg.FieldBoost,
			SnippetLength: cfg.SnippetLength,
		}),
		limits: [2]int{cfg.DefaultPageSize, cfg.MaxPageSize},
		logger: cfg.Logger,
	}

	searchSvc := searchuc.New(c.ix)
	recommendSvc := recommenduc.New(c.cat, dims)
	c.orchestrator = queryuc.New(searchSvc, recommendSvc, nil, queryuc.Config{
		Timeout: cfg.Timeout,
		TopN:    cfg.TopN,
	})

	if cfg.CorpusPath != "" {
		if err := c.ReloadCorpus(cfg.CorpusPath); err != nil {
			return nil, err
		}
	}
	if cfg.CatalogPath != "" {
		if err := c.ReloadCatalog(cfg.CatalogPath); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Search runs a free-text + filtered document search.
func (c *Client) Search(
	ctx context.Context, text string, filters searchq.Filters, limit, offset int,
) ([]result.Result, int, error) {
	q, err := searchq.New(text, filters, limit, offset, c.limits[0], c.limits[1])
	if err != nil {
		return nil, 0, err
	}
	resp, err := c.orchestrator.Execute(ctx, queryuc.Request{Search: &q})
	if err != nil {
		return nil, 0, err
	}
	return resp.Results, resp.Total, nil
}

// Recommend scores the criteria selections against the catalog.
func (c *Client) Recommend(
	ctx context.Context, selections map[string][]string,
) ([]Recommendation, error) {
	set := criteria.New(selections)
	resp, err := c.orchestrator.Execute(ctx, queryuc.Request{Criteria: &set})
	if err != nil {
		return nil, err
	}
	return resp.Recommendations, nil
}

// ReloadCorpus replaces the document store and index from a fixture file.
// In-flight queries finish against the old snapshot.
func (c *Client) ReloadCorpus(path string) error {
	docs, err := corpus.Load(path)
	if err != nil {
		return err
	}
	return c.ReplaceCorpus(docs)
}

// ReplaceCorpus swaps in an already-built document set.
func (c *Client) ReplaceCorpus(docs []document.Document) error {
	if err := c.store.Replace(docs); err != nil {
		return err
	}
	c.ix.Rebuild(docs)
	c.logger.Info("corpus replaced", zap.Int("documents", len(docs)))
	return nil
}

// ReloadCatalog replaces the vendor catalog from a fixture file
// (vendors.csv or a YAML attribute fixture).
func (c *Client) ReloadCatalog(path string) error {
	vendors, err := catalog.Load(path)
	if err != nil {
		return err
	}
	return c.ReplaceCatalog(vendors)
}

// ReplaceCatalog swaps in an already-built vendor set.
func (c *Client) ReplaceCatalog(vendors []vendor.Vendor) error {
	if err := c.cat.Replace(vendors); err != nil {
		return err
	}
	c.logger.Info("catalog replaced", zap.Int("vendors", len(vendors)))
	return nil
}

// Document returns one stored document by ID.
func (c *Client) Document(id string) (document.Document, error) {
	return c.store.Get(id)
}

// Vendor returns one catalog vendor by ID.
func (c *Client) Vendor(id string) (vendor.Vendor, error) {
	return c.cat.Get(id)
}

// Close flushes the client's logger. The engine itself holds no external
// connections.
func (c *Client) Close() error {
	return c.logger.Sync()
}
