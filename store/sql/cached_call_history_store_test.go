package sqlstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-callkit/core"
	repositorycache "github.com/goliatone/go-repository-cache/cache"
)

type stubCallHistoryBackend struct {
	mu          sync.Mutex
	records     []core.CallRecord
	listCalls   int
	appendCalls int
	listErr     error
	appendErr   error
}

func (s *stubCallHistoryBackend) Append(_ context.Context, record core.CallRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendCalls++
	if s.appendErr != nil {
		return s.appendErr
	}
	s.records = append(s.records, record)
	return nil
}

func (s *stubCallHistoryBackend) List(_ context.Context, filter core.CallHistoryFilter) ([]core.CallRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := []core.CallRecord{}
	for _, record := range s.records {
		if filter.CallID != "" && record.CallID != filter.CallID {
			continue
		}
		if filter.Outcome != "" && record.Outcome != filter.Outcome {
			continue
		}
		out = append(out, record)
	}
	return out, nil
}

func TestCachedCallHistoryStore_List_MissFetchThenHit(t *testing.T) {
	cacheService := newTestCallHistoryCacheService(t)
	base := &stubCallHistoryBackend{
		records: []core.CallRecord{{
			CallID:  "call-cache-1",
			Outcome: core.CallOutcomeAnswered,
			EndedAt: time.Now().UTC(),
		}},
	}

	store, err := NewCachedCallHistoryStore(base, cacheService)
	if err != nil {
		t.Fatalf("new cached history store: %v", err)
	}

	filter := core.CallHistoryFilter{CallID: "call-cache-1"}
	if _, err := store.List(context.Background(), filter); err != nil {
		t.Fatalf("first list: %v", err)
	}
	if base.listCalls != 1 {
		t.Fatalf("expected first list to fetch base store once, got %d", base.listCalls)
	}

	records, err := store.List(context.Background(), filter)
	if err != nil {
		t.Fatalf("second list: %v", err)
	}
	if base.listCalls != 1 {
		t.Fatalf("expected second list to be cache hit, base list calls=%d", base.listCalls)
	}
	if len(records) != 1 || records[0].CallID != "call-cache-1" {
		t.Fatalf("unexpected cached records %+v", records)
	}
}

func TestCachedCallHistoryStore_Append_InvalidatesCachedCall(t *testing.T) {
	cacheService := newTestCallHistoryCacheService(t)
	base := &stubCallHistoryBackend{
		records: []core.CallRecord{{
			CallID:  "call-cache-2",
			Outcome: core.CallOutcomeMissed,
			EndedAt: time.Now().UTC(),
		}},
	}

	store, err := NewCachedCallHistoryStore(base, cacheService)
	if err != nil {
		t.Fatalf("new cached history store: %v", err)
	}

	filter := core.CallHistoryFilter{CallID: "call-cache-2"}
	if _, err := store.List(context.Background(), filter); err != nil {
		t.Fatalf("prime cache with list: %v", err)
	}
	if base.listCalls != 1 {
		t.Fatalf("expected one base read after cache prime, got %d", base.listCalls)
	}

	if err := store.Append(context.Background(), core.CallRecord{
		CallID:  "call-cache-2",
		Outcome: core.CallOutcomeAnswered,
		EndedAt: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("append through cached store: %v", err)
	}
	if base.appendCalls != 1 {
		t.Fatalf("expected base append call count=1, got %d", base.appendCalls)
	}

	records, err := store.List(context.Background(), filter)
	if err != nil {
		t.Fatalf("list after append invalidation: %v", err)
	}
	if base.listCalls != 2 {
		t.Fatalf("expected invalidated call to force second base read, got %d", base.listCalls)
	}
	if len(records) != 2 {
		t.Fatalf("expected refreshed journal with 2 records, got %d", len(records))
	}
}

func TestCachedCallHistoryStore_FilteredListsBypassCache(t *testing.T) {
	cacheService := newTestCallHistoryCacheService(t)
	base := &stubCallHistoryBackend{
		records: []core.CallRecord{{
			CallID:  "call-cache-3",
			Outcome: core.CallOutcomeDeclined,
			EndedAt: time.Now().UTC(),
		}},
	}

	store, err := NewCachedCallHistoryStore(base, cacheService)
	if err != nil {
		t.Fatalf("new cached history store: %v", err)
	}

	outcomeFilter := core.CallHistoryFilter{CallID: "call-cache-3", Outcome: core.CallOutcomeDeclined}
	for i := 0; i < 2; i++ {
		if _, err := store.List(context.Background(), outcomeFilter); err != nil {
			t.Fatalf("filtered list %d: %v", i, err)
		}
	}
	if base.listCalls != 2 {
		t.Fatalf("expected outcome-filtered lists to bypass cache, base list calls=%d", base.listCalls)
	}

	limitFilter := core.CallHistoryFilter{CallID: "call-cache-3", Limit: 5}
	if _, err := store.List(context.Background(), limitFilter); err != nil {
		t.Fatalf("limited list: %v", err)
	}
	if base.listCalls != 3 {
		t.Fatalf("expected limited list to bypass cache, base list calls=%d", base.listCalls)
	}
}

func TestCachedCallHistoryStore_CachedRecordsAreIsolated(t *testing.T) {
	cacheService := newTestCallHistoryCacheService(t)
	base := &stubCallHistoryBackend{
		records: []core.CallRecord{{
			CallID:  "call-cache-4",
			Outcome: core.CallOutcomeAnswered,
			EndedAt: time.Now().UTC(),
			Payload: map[string]any{"sessionId": "call-cache-4"},
		}},
	}

	store, err := NewCachedCallHistoryStore(base, cacheService)
	if err != nil {
		t.Fatalf("new cached history store: %v", err)
	}

	filter := core.CallHistoryFilter{CallID: "call-cache-4"}
	first, err := store.List(context.Background(), filter)
	if err != nil {
		t.Fatalf("first list: %v", err)
	}
	first[0].Payload["sessionId"] = "mutated"

	second, err := store.List(context.Background(), filter)
	if err != nil {
		t.Fatalf("second list: %v", err)
	}
	if second[0].Payload["sessionId"] != "call-cache-4" {
		t.Fatalf("expected cached payload isolation, got %v", second[0].Payload)
	}
}

func TestCallHistoryCacheKey_Contract(t *testing.T) {
	key, err := CallHistoryCacheKey(" call/one ")
	if err != nil {
		t.Fatalf("build cache key: %v", err)
	}

	const expected = "go-callkit::call_history::v1::call%2Fone"
	if key != expected {
		t.Fatalf("unexpected cache key contract: got %q want %q", key, expected)
	}

	if _, err := CallHistoryCacheKey("  "); err == nil {
		t.Fatalf("expected blank call id to fail")
	}
}

func TestCachedCallHistoryStore_PropagatesBaseErrors(t *testing.T) {
	cacheService := newTestCallHistoryCacheService(t)
	wantErr := errors.New("journal offline")
	base := &stubCallHistoryBackend{listErr: wantErr}

	store, err := NewCachedCallHistoryStore(base, cacheService)
	if err != nil {
		t.Fatalf("new cached history store: %v", err)
	}

	_, err = store.List(context.Background(), core.CallHistoryFilter{CallID: "call-cache-err"})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected base error propagation, got %v", err)
	}
}

func newTestCallHistoryCacheService(t *testing.T) repositorycache.CacheService {
	t.Helper()
	config := repositorycache.DefaultConfig()
	config.TTL = time.Minute
	service, err := repositorycache.NewCacheService(config)
	if err != nil {
		t.Fatalf("new cache service: %v", err)
	}
	return service
}
