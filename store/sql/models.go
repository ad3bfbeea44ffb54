package sqlstore

import (
	"time"

	"github.com/uptrace/bun"
)

type callRecordModel struct {
	bun.BaseModel `bun:"table:call_records,alias:cr"`

	ID         string         `bun:"id,pk"`
	CallID     string         `bun:"call_id,notnull"`
	CallerName string         `bun:"caller_name"`
	CallType   string         `bun:"call_type,notnull"`
	Outcome    string         `bun:"outcome,notnull"`
	Reason     string         `bun:"reason,notnull"`
	Payload    map[string]any `bun:"payload,type:jsonb,notnull"`
	RingingAt  time.Time      `bun:"ringing_at,nullzero,notnull"`
	EndedAt    time.Time      `bun:"ended_at,nullzero,notnull"`
	CreatedAt  time.Time      `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}
