package query

import (
	"fmt"

	"github.com/goliatone/go-callkit/core"
)

const (
	TypeGetPushToken    = "callkit.query.token.get"
	TypeListSessions    = "callkit.query.sessions.list"
	TypeGetLatestInvite = "callkit.query.invite.latest"
	TypeListCallHistory = "callkit.query.history.list"
)

type GetPushTokenMessage struct {
	Kind string
}

func (GetPushTokenMessage) Type() string { return TypeGetPushToken }

func (m GetPushTokenMessage) Validate() error {
	if _, ok := core.ParseTokenKind(m.Kind); !ok {
		return fmt.Errorf("query: unknown token kind %q", m.Kind)
	}
	return nil
}

type ListSessionsMessage struct{}

func (ListSessionsMessage) Type() string { return TypeListSessions }

func (ListSessionsMessage) Validate() error { return nil }

type GetLatestInviteMessage struct{}

func (GetLatestInviteMessage) Type() string { return TypeGetLatestInvite }

func (GetLatestInviteMessage) Validate() error { return nil }

type ListCallHistoryMessage struct {
	Filter core.CallHistoryFilter
}

func (ListCallHistoryMessage) Type() string { return TypeListCallHistory }

func (m ListCallHistoryMessage) Validate() error {
	if m.Filter.Limit < 0 {
		return fmt.Errorf("query: limit must be >= 0")
	}
	return nil
}
