package query

import (
	"github.com/goliatone/go-callkit/core"
	gocmd "github.com/goliatone/go-command"
)

var (
	_ gocmd.Querier[GetPushTokenMessage, core.PushTokenStatus] = (*GetPushTokenQuery)(nil)
	_ gocmd.Querier[ListSessionsMessage, []core.CallSession]   = (*ListSessionsQuery)(nil)
	_ gocmd.Querier[GetLatestInviteMessage, core.CallInvite]   = (*GetLatestInviteQuery)(nil)
	_ gocmd.Querier[ListCallHistoryMessage, []core.CallRecord] = (*ListCallHistoryQuery)(nil)
)
