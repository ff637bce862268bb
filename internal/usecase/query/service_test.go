package query

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ttcdx/vendorlens/internal/domain"
	"github.com/ttcdx/vendorlens/internal/domain/recommend/criteria"
	"github.com/ttcdx/vendorlens/internal/domain/recommend/scored"
	searchq "github.com/ttcdx/vendorlens/internal/domain/search/query"
	"github.com/ttcdx/vendorlens/internal/domain/search/result"
	recommenduc "github.com/ttcdx/vendorlens/internal/usecase/recommend"
)

type mockSearcher struct {
	results []result.Result
	total   int
	err     error
	calls   int
	lastQ   *searchq.Query
}

func (m *mockSearcher) Search(_ context.Context, q *searchq.Query) ([]result.Result, int, error) {
	m.calls++
	m.lastQ = q
	return m.results, m.total, m.err
}

type mockRecommender struct {
	vendors []scored.Vendor
	err     error
}

func (m *mockRecommender) Recommend(_ context.Context, _ criteria.Set) ([]scored.Vendor, error) {
	return m.vendors, m.err
}

type mockReasoner struct {
	text string
	err  error
}

func (m *mockReasoner) Reason(_ context.Context, _ recommenduc.Recommendation) (string, error) {
	return m.text, m.err
}

func searchReq(t *testing.T, text string) Request {
	t.Helper()
	q, err := searchq.New(text, searchq.Filters{}, 0, 0, 10, 100)
	if err != nil {
		t.Fatalf("searchq.New: %v", err)
	}
	return Request{Search: &q}
}

func criteriaReq(selections map[string][]string) Request {
	c := criteria.New(selections)
	return Request{Criteria: &c}
}

func rankedVendors() []scored.Vendor {
	return []scored.Vendor{
		scored.NewVendor("v1", "AcmeSoft", 90, []scored.DimensionMatch{
			scored.NewDimensionMatch("techStack", []string{"aws"}),
		}),
		scored.NewVendor("v2", "ByteWorks", 60, nil),
		scored.NewVendor("v3", "CloudNine", 30, nil),
		scored.NewVendor("v4", "DataForge", 0, nil),
	}
}

func TestExecute_SearchMode(t *testing.T) {
	searcher := &mockSearcher{
		results: []result.Result{result.New("d1", 1.5, "t", "s", "V", time.Time{}, "", nil)},
		total:   7,
	}
	svc := New(searcher, &mockRecommender{}, nil, Config{})

	resp, err := svc.Execute(context.Background(), searchReq(t, "aws"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Total != 7 || len(resp.Results) != 1 {
		t.Errorf("resp = %d results / total %d", len(resp.Results), resp.Total)
	}
	if len(resp.Recommendations) != 0 {
		t.Error("search mode must not produce recommendations")
	}
}

func TestExecute_RecommendMode(t *testing.T) {
	svc := New(&mockSearcher{}, &mockRecommender{vendors: rankedVendors()}, nil, Config{})

	resp, err := svc.Execute(context.Background(), criteriaReq(map[string][]string{"techStack": {"aws"}}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Recommendations) != 4 {
		t.Fatalf("recommendations = %d, want 4", len(resp.Recommendations))
	}
	if resp.Recommendations[0].Vendor.VendorID() != "v1" {
		t.Errorf("top = %s", resp.Recommendations[0].Vendor.VendorID())
	}
	if resp.Recommendations[0].Reasoning == "" {
		t.Error("reasoning prose missing")
	}
	if len(resp.Results) != 0 {
		t.Error("criteria mode must not produce search results")
	}
}

func TestExecute_TopNCapsAfterRanking(t *testing.T) {
	svc := New(&mockSearcher{}, &mockRecommender{vendors: rankedVendors()}, nil, Config{TopN: 3})

	resp, err := svc.Execute(context.Background(), criteriaReq(map[string][]string{"techStack": {"aws"}}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Recommendations) != 3 {
		t.Fatalf("recommendations = %d, want capped 3", len(resp.Recommendations))
	}
	for i, want := range []string{"v1", "v2", "v3"} {
		if got := resp.Recommendations[i].Vendor.VendorID(); got != want {
			t.Errorf("rec[%d] = %s, want %s", i, got, want)
		}
	}
}

func TestExecute_NeitherMode(t *testing.T) {
	svc := New(&mockSearcher{}, &mockRecommender{}, nil, Config{})
	_, err := svc.Execute(context.Background(), Request{})
	if !errors.Is(err, domain.ErrInvalidQuery) {
		t.Fatalf("error = %v, want ErrInvalidQuery", err)
	}
}

func TestExecute_BothModes(t *testing.T) {
	svc := New(&mockSearcher{}, &mockRecommender{}, nil, Config{})
	req := searchReq(t, "aws")
	c := criteria.New(map[string][]string{"techStack": {"aws"}})
	req.Criteria = &c
	_, err := svc.Execute(context.Background(), req)
	if !errors.Is(err, domain.ErrInvalidQuery) {
		t.Fatalf("error = %v, want ErrInvalidQuery", err)
	}
}

func TestExecute_RelatedTextRequiresCriteria(t *testing.T) {
	svc := New(&mockSearcher{}, &mockRecommender{}, nil, Config{})
	req := searchReq(t, "aws")
	req.RelatedText = "aws support"
	_, err := svc.Execute(context.Background(), req)
	if !errors.Is(err, domain.ErrInvalidQuery) {
		t.Fatalf("error = %v, want ErrInvalidQuery", err)
	}
}

func TestExecute_RelatedSearchAttached(t *testing.T) {
	searcher := &mockSearcher{
		results: []result.Result{result.New("d1", 1.0, "t", "s", "V", time.Time{}, "", nil)},
		total:   1,
	}
	svc := New(searcher, &mockRecommender{vendors: rankedVendors()}, nil, Config{RelatedLimit: 3})

	req := criteriaReq(map[string][]string{"techStack": {"aws"}})
	req.RelatedText = "aws 導入"
	resp, err := svc.Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Related) != 1 {
		t.Fatalf("related = %d, want 1", len(resp.Related))
	}
	if searcher.calls != 1 {
		t.Errorf("searcher calls = %d, want 1", searcher.calls)
	}
	if searcher.lastQ.Limit() != 3 {
		t.Errorf("related limit = %d, want 3", searcher.lastQ.Limit())
	}
}

func TestExecute_RelatedSearchFailureIsNotSurfaced(t *testing.T) {
	searcher := &mockSearcher{err: errors.New("index exploded")}
	svc := New(searcher, &mockRecommender{vendors: rankedVendors()}, nil, Config{})

	req := criteriaReq(map[string][]string{"techStack": {"aws"}})
	req.RelatedText = "aws"
	resp, err := svc.Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("related search failure must not fail the request: %v", err)
	}
	if resp.Related != nil {
		t.Errorf("related = %v, want none", resp.Related)
	}
	if len(resp.Recommendations) != 4 {
		t.Errorf("recommendations = %d, want 4", len(resp.Recommendations))
	}
}

func TestExecute_ReasonerFailureFallsBackToTemplate(t *testing.T) {
	reasoner := &mockReasoner{err: errors.New("provider down")}
	svc := New(&mockSearcher{}, &mockRecommender{vendors: rankedVendors()}, reasoner, Config{})

	resp, err := svc.Execute(context.Background(), criteriaReq(map[string][]string{"techStack": {"aws"}}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Recommendations[0].Reasoning == "" {
		t.Error("fallback reasoning missing")
	}
}

func TestExecute_CustomReasonerUsed(t *testing.T) {
	reasoner := &mockReasoner{text: "custom prose"}
	svc := New(&mockSearcher{}, &mockRecommender{vendors: rankedVendors()}, reasoner, Config{})

	resp, err := svc.Execute(context.Background(), criteriaReq(map[string][]string{"techStack": {"aws"}}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Recommendations[0].Reasoning != "custom prose" {
		t.Errorf("reasoning = %q", resp.Recommendations[0].Reasoning)
	}
}

func TestExecute_DeadlineMapsToTimeout(t *testing.T) {
	searcher := &mockSearcher{err: context.DeadlineExceeded}
	svc := New(searcher, &mockRecommender{}, nil, Config{Timeout: time.Millisecond})

	_, err := svc.Execute(context.Background(), searchReq(t, "aws"))
	if !errors.Is(err, domain.ErrTimeout) {
		t.Fatalf("error = %v, want ErrTimeout", err)
	}
}

func TestExecute_CanceledIsNotATimeout(t *testing.T) {
	searcher := &mockSearcher{err: context.Canceled}
	svc := New(searcher, &mockRecommender{}, nil, Config{})

	_, err := svc.Execute(context.Background(), searchReq(t, "aws"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled preserved", err)
	}
	if errors.Is(err, domain.ErrTimeout) {
		t.Fatal("caller cancellation must not be reported as a timeout")
	}
}

func TestExecute_CollaboratorErrorPassesThrough(t *testing.T) {
	wantErr := errors.New("scorer broke")
	svc := New(&mockSearcher{}, &mockRecommender{err: wantErr}, nil, Config{})

	_, err := svc.Execute(context.Background(), criteriaReq(map[string][]string{"techStack": {"aws"}}))
	if !errors.Is(err, wantErr) {
		t.Fatalf("error = %v, want passthrough", err)
	}
}
