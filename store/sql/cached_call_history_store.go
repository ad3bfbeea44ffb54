package sqlstore

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-callkit/core"
	repositorycache "github.com/goliatone/go-repository-cache/cache"
)

const callHistoryCacheKeyPrefix = "go-callkit::call_history::v1"

// CallHistoryBackend is the read/write journal a cached store wraps.
type CallHistoryBackend interface {
	core.HistoryStore
	core.HistoryReader
}

// CachedCallHistoryStore layers a read cache over a base call journal. Only
// per-call reads are cached; filtered listings always hit the base store.
// Appending a record invalidates the cached entry for that call id.
type CachedCallHistoryStore struct {
	base  CallHistoryBackend
	cache repositorycache.CacheService
}

func NewCachedCallHistoryStore(
	base CallHistoryBackend,
	cacheService repositorycache.CacheService,
) (*CachedCallHistoryStore, error) {
	if base == nil {
		return nil, fmt.Errorf("sqlstore: base call history store is required")
	}
	if cacheService == nil {
		return nil, fmt.Errorf("sqlstore: call history cache service is required")
	}
	return &CachedCallHistoryStore{base: base, cache: cacheService}, nil
}

// CallHistoryCacheKey returns the deterministic cache key contract for
// per-call journal reads: go-callkit::call_history::v1::<call_id> with the
// call id URL-path escaped.
func CallHistoryCacheKey(callID string) (string, error) {
	callID = strings.TrimSpace(callID)
	if callID == "" {
		return "", fmt.Errorf("sqlstore: call id is required")
	}
	return callHistoryCacheKeyPrefix + "::" + url.PathEscape(callID), nil
}

func (s *CachedCallHistoryStore) Append(ctx context.Context, record core.CallRecord) error {
	if s == nil || s.base == nil || s.cache == nil {
		return fmt.Errorf("sqlstore: cached call history store is not configured")
	}
	if err := s.base.Append(ctx, record); err != nil {
		return err
	}

	cacheKey, err := CallHistoryCacheKey(record.CallID)
	if err != nil {
		return err
	}
	if err := s.cache.Delete(ctx, cacheKey); err != nil {
		return err
	}
	return nil
}

func (s *CachedCallHistoryStore) List(ctx context.Context, filter core.CallHistoryFilter) ([]core.CallRecord, error) {
	if s == nil || s.base == nil || s.cache == nil {
		return nil, fmt.Errorf("sqlstore: cached call history store is not configured")
	}
	callID := strings.TrimSpace(filter.CallID)
	if callID == "" || strings.TrimSpace(filter.Outcome) != "" || filter.Limit > 0 {
		return s.base.List(ctx, filter)
	}

	cacheKey, err := CallHistoryCacheKey(callID)
	if err != nil {
		return nil, err
	}
	records, err := repositorycache.GetOrFetch(ctx, s.cache, cacheKey, func(ctx context.Context) ([]core.CallRecord, error) {
		return s.base.List(ctx, filter)
	})
	if err != nil {
		return nil, err
	}
	return cloneCallRecords(records), nil
}

func cloneCallRecords(records []core.CallRecord) []core.CallRecord {
	if len(records) == 0 {
		return []core.CallRecord{}
	}
	out := make([]core.CallRecord, len(records))
	for i, record := range records {
		record.Payload = copyAnyMap(record.Payload)
		out[i] = record
	}
	return out
}

var (
	_ core.HistoryStore  = (*CachedCallHistoryStore)(nil)
	_ core.HistoryReader = (*CachedCallHistoryStore)(nil)
)
