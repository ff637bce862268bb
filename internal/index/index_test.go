package index

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ttcdx/vendorlens/internal/domain"
	"github.com/ttcdx/vendorlens/internal/domain/document"
	"github.com/ttcdx/vendorlens/internal/domain/search/query"
	"github.com/ttcdx/vendorlens/internal/domain/search/result"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func doc(id, title, body, vendor string, date time.Time, docType string, tags ...string) document.Document {
	return document.Reconstruct(id, title, body, vendor, date, docType, tags)
}

func mustQuery(t *testing.T, text string, f query.Filters) *query.Query {
	t.Helper()
	q, err := query.New(text, f, 0, 0, 10, 100)
	if err != nil {
		t.Fatalf("query.New: %v", err)
	}
	return &q
}

func ids(results []result.Result) []string {
	out := make([]string, len(results))
	for i := range results {
		out[i] = results[i].DocumentID()
	}
	return out
}

func testIndex() *Index {
	ix := New(DefaultConfig())
	ix.Rebuild([]document.Document{
		doc("d1", "AWS migration proposal", "cost estimate for the aws migration project",
			"AcmeSoft", day(2025, 3, 10), "proposal", "aws"),
		doc("d2", "Weekly sync", "discussed staffing and timelines",
			"AcmeSoft", day(2025, 4, 2), "minutes"),
		doc("d3", "Security review", "aws account audit findings",
			"ByteWorks", day(2025, 2, 20), "minutes", "security"),
		doc("d4", "Roadmap", "mobile app roadmap draft",
			"ByteWorks", day(2025, 5, 1), "proposal"),
	})
	return ix
}

func TestQuery_RanksMatchingDocuments(t *testing.T) {
	ix := testIndex()
	results, total, err := ix.Query(context.Background(), mustQuery(t, "aws", query.Filters{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 {
		t.Fatalf("total = %d, want 2", total)
	}
	// d1 has "aws" in title (boosted), tags and body; d3 only in body.
	if got := ids(results); got[0] != "d1" || got[1] != "d3" {
		t.Errorf("ids = %v, want [d1 d3]", got)
	}
	if results[0].Score() <= results[1].Score() {
		t.Errorf("boosted doc should outrank body-only match: %v vs %v",
			results[0].Score(), results[1].Score())
	}
}

func TestQuery_EveryDocumentWithTermIsReturned(t *testing.T) {
	ix := testIndex()
	results, _, err := ix.Query(context.Background(), mustQuery(t, "roadmap", query.Filters{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ids(results); len(got) != 1 || got[0] != "d4" {
		t.Errorf("ids = %v, want [d4]", got)
	}
}

func TestQuery_VendorFilterExcludesOthers(t *testing.T) {
	ix := testIndex()
	results, _, err := ix.Query(context.Background(),
		mustQuery(t, "aws", query.Filters{Vendor: "ByteWorks"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range results {
		if results[i].VendorName() != "ByteWorks" {
			t.Errorf("result %s has vendor %q", results[i].DocumentID(), results[i].VendorName())
		}
	}
	if got := ids(results); len(got) != 1 || got[0] != "d3" {
		t.Errorf("ids = %v, want [d3]", got)
	}
}

func TestQuery_FilterOnlyOrdersByDateDescending(t *testing.T) {
	ix := testIndex()
	results, total, err := ix.Query(context.Background(),
		mustQuery(t, "", query.Filters{Vendor: "AcmeSoft"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 {
		t.Fatalf("total = %d, want 2", total)
	}
	if got := ids(results); got[0] != "d2" || got[1] != "d1" {
		t.Errorf("ids = %v, want [d2 d1] (date descending)", got)
	}
}

func TestQuery_DateTieBreaksByID(t *testing.T) {
	ix := New(DefaultConfig())
	same := day(2025, 1, 1)
	ix.Rebuild([]document.Document{
		doc("b", "", "x", "V", same, ""),
		doc("a", "", "x", "V", same, ""),
		doc("c", "", "x", "V", same, ""),
	})
	results, _, err := ix.Query(context.Background(), mustQuery(t, "", query.Filters{Vendor: "V"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ids(results); got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("ids = %v, want [a b c]", got)
	}
}

func TestQuery_DeterministicAcrossRuns(t *testing.T) {
	ix := testIndex()
	q := mustQuery(t, "aws minutes proposal", query.Filters{})
	first, _, err := ix.Query(context.Background(), q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, _, err := ix.Query(context.Background(), q)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(again) != len(first) {
			t.Fatalf("run %d: %d results, want %d", i, len(again), len(first))
		}
		for j := range again {
			if again[j].DocumentID() != first[j].DocumentID() {
				t.Fatalf("run %d: ids %v != %v", i, ids(again), ids(first))
			}
		}
	}
}

func TestQuery_CJKTextWithDateRange(t *testing.T) {
	ix := New(DefaultConfig())
	ix.Rebuild([]document.Document{
		doc("k1", "AWS導入支援の提案", "クラウド移行の概算費用", "AcmeSoft", day(2025, 3, 10), "proposal"),
		doc("k2", "定例会議", "進捗確認とAWS導入スケジュール", "AcmeSoft", day(2025, 6, 15), "minutes"),
		doc("k3", "AWS導入完了報告", "移行作業の完了報告", "AcmeSoft", day(2024, 11, 1), "report"),
	})
	f := query.Filters{From: day(2025, 1, 1), To: day(2025, 12, 31)}
	results, total, err := ix.Query(context.Background(), mustQuery(t, "AWS導入", f))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 {
		t.Fatalf("total = %d, want 2 (k3 outside range)", total)
	}
	for _, r := range results {
		if r.DocumentID() == "k3" {
			t.Error("k3 is outside the date range")
		}
	}
}

func TestQuery_NoTermMatchesEmptyResult(t *testing.T) {
	ix := testIndex()
	results, total, err := ix.Query(context.Background(), mustQuery(t, "blockchain", query.Filters{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 0 || len(results) != 0 {
		t.Errorf("got %d results, want none", total)
	}
}

func TestQuery_Pagination(t *testing.T) {
	ix := New(DefaultConfig())
	docs := make([]document.Document, 0, 5)
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		docs = append(docs, doc(id, "", "shared term", "V", time.Time{}, ""))
	}
	ix.Rebuild(docs)

	q, err := query.New("shared", query.Filters{}, 2, 2, 10, 100)
	if err != nil {
		t.Fatalf("query.New: %v", err)
	}
	results, total, err := ix.Query(context.Background(), &q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if got := ids(results); len(got) != 2 || got[0] != "c" || got[1] != "d" {
		t.Errorf("ids = %v, want [c d]", got)
	}
}

func TestQuery_OffsetPastEnd(t *testing.T) {
	ix := testIndex()
	q, err := query.New("aws", query.Filters{}, 10, 50, 10, 100)
	if err != nil {
		t.Fatalf("query.New: %v", err)
	}
	results, total, err := ix.Query(context.Background(), &q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 {
		t.Errorf("total = %d, want 2", total)
	}
	if len(results) != 0 {
		t.Errorf("got %d results, want none", len(results))
	}
}

func TestQuery_ExpiredContextMapsToTimeout(t *testing.T) {
	ix := testIndex()
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	_, _, err := ix.Query(ctx, mustQuery(t, "aws", query.Filters{}))
	if !errors.Is(err, domain.ErrTimeout) {
		t.Fatalf("error = %v, want ErrTimeout", err)
	}
}

func TestUpsert_ReplacesDocument(t *testing.T) {
	ix := testIndex()
	ix.Upsert(doc("d2", "AWS workshop", "aws deep dive", "AcmeSoft", day(2025, 4, 2), "minutes"))

	results, _, err := ix.Query(context.Background(), mustQuery(t, "staffing", query.Filters{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Error("stale terms of replaced document still match")
	}

	results, _, err = ix.Query(context.Background(), mustQuery(t, "workshop", query.Filters{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ids(results); len(got) != 1 || got[0] != "d2" {
		t.Errorf("ids = %v, want [d2]", got)
	}
}

func TestRemove_DropsDocument(t *testing.T) {
	ix := testIndex()
	ix.Remove("d1")
	if ix.Len() != 3 {
		t.Errorf("Len() = %d, want 3", ix.Len())
	}
	results, _, err := ix.Query(context.Background(), mustQuery(t, "aws", query.Filters{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ids(results); len(got) != 1 || got[0] != "d3" {
		t.Errorf("ids = %v, want [d3]", got)
	}
}

func TestRemove_UnknownIDIsNoop(t *testing.T) {
	ix := testIndex()
	ix.Remove("missing")
	if ix.Len() != 4 {
		t.Errorf("Len() = %d, want 4", ix.Len())
	}
}

func TestRebuild_ReplacesState(t *testing.T) {
	ix := testIndex()
	ix.Rebuild([]document.Document{
		doc("n1", "", "fresh corpus", "NewCo", time.Time{}, ""),
	})
	if ix.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", ix.Len())
	}
	results, _, err := ix.Query(context.Background(), mustQuery(t, "aws", query.Filters{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Error("old corpus still queryable after rebuild")
	}
}
