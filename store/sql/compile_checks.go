package sqlstore

import "github.com/goliatone/go-callkit/core"

var (
	_ core.HistoryStore  = (*CallHistoryStore)(nil)
	_ core.HistoryReader = (*CallHistoryStore)(nil)
)
