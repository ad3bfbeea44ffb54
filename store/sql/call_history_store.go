package sqlstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-callkit/core"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const defaultHistoryListLimit = 100

// CallHistoryStore journals ended calls in the call_records table.
type CallHistoryStore struct {
	db   *bun.DB
	repo repository.Repository[*callRecordModel]
}

func NewCallHistoryStore(db *bun.DB) (*CallHistoryStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	repo := repository.NewRepository[*callRecordModel](db, callRecordHandlers())
	if validator, ok := repo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("sqlstore: invalid call record repository wiring: %w", err)
		}
	}
	return &CallHistoryStore{
		db:   db,
		repo: repo,
	}, nil
}

func (s *CallHistoryStore) Append(ctx context.Context, record core.CallRecord) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: call history store is not configured")
	}
	record.CallID = strings.TrimSpace(record.CallID)
	if record.CallID == "" {
		return fmt.Errorf("sqlstore: call id is required")
	}
	if strings.TrimSpace(record.Outcome) == "" {
		return fmt.Errorf("sqlstore: outcome is required")
	}

	model := newCallRecordModel(record)
	if _, err := s.db.NewInsert().Model(model).Exec(ctx); err != nil {
		return fmt.Errorf("sqlstore: append call record: %w", err)
	}
	return nil
}

func (s *CallHistoryStore) List(ctx context.Context, filter core.CallHistoryFilter) ([]core.CallRecord, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("sqlstore: call history store is not configured")
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultHistoryListLimit
	}

	models := []*callRecordModel{}
	query := s.db.NewSelect().
		Model(&models).
		OrderExpr("?TableAlias.ended_at DESC").
		Limit(limit)
	if callID := strings.TrimSpace(filter.CallID); callID != "" {
		query = query.Where("?TableAlias.call_id = ?", callID)
	}
	if outcome := strings.TrimSpace(filter.Outcome); outcome != "" {
		query = query.Where("?TableAlias.outcome = ?", outcome)
	}
	if err := query.Scan(ctx); err != nil {
		return nil, fmt.Errorf("sqlstore: list call records: %w", err)
	}

	out := make([]core.CallRecord, 0, len(models))
	for _, model := range models {
		out = append(out, model.toDomain())
	}
	return out, nil
}

func newCallRecordModel(record core.CallRecord) *callRecordModel {
	id := strings.TrimSpace(record.ID)
	if id == "" {
		id = uuid.NewString()
	}
	endedAt := record.EndedAt
	if endedAt.IsZero() {
		endedAt = time.Now().UTC()
	}
	return &callRecordModel{
		ID:         id,
		CallID:     record.CallID,
		CallerName: record.CallerName,
		CallType:   string(record.CallType),
		Outcome:    record.Outcome,
		Reason:     string(record.Reason),
		Payload:    copyAnyMap(record.Payload),
		RingingAt:  record.RingingAt.UTC(),
		EndedAt:    endedAt.UTC(),
	}
}

func (m *callRecordModel) toDomain() core.CallRecord {
	if m == nil {
		return core.CallRecord{}
	}
	return core.CallRecord{
		ID:         m.ID,
		CallID:     m.CallID,
		CallerName: m.CallerName,
		CallType:   core.ParseCallType(m.CallType),
		Outcome:    m.Outcome,
		Reason:     core.EndedReason(m.Reason),
		RingingAt:  m.RingingAt,
		EndedAt:    m.EndedAt,
		Payload:    copyAnyMap(m.Payload),
	}
}

func copyAnyMap(in map[string]any) map[string]any {
	if len(in) == 0 {
		return map[string]any{}
	}
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
