package query

import (
	"context"

	"github.com/goliatone/go-callkit/core"
)

// TokenReader exposes the current push-routing tokens. Implemented by
// core.Coordinator.
type TokenReader interface {
	PushToken(kind core.TokenKind) (string, bool)
}

// SessionReader exposes the live session set and the retained invite.
// Implemented by core.Coordinator.
type SessionReader interface {
	Sessions() []core.CallSession
	LatestInvite() (core.CallInvite, bool)
}

type GetPushTokenQuery struct {
	reader TokenReader
}

func NewGetPushTokenQuery(reader TokenReader) *GetPushTokenQuery {
	return &GetPushTokenQuery{reader: reader}
}

func (q *GetPushTokenQuery) Query(ctx context.Context, msg GetPushTokenMessage) (core.PushTokenStatus, error) {
	if q == nil || q.reader == nil {
		return core.PushTokenStatus{}, queryDependencyError("query: token reader is required")
	}
	kind, ok := core.ParseTokenKind(msg.Kind)
	if !ok {
		return core.PushTokenStatus{}, queryInvalidInputError("query: unknown token kind")
	}
	value, registered := q.reader.PushToken(kind)
	return core.PushTokenStatus{Kind: kind, Value: value, Registered: registered}, nil
}

type ListSessionsQuery struct {
	reader SessionReader
}

func NewListSessionsQuery(reader SessionReader) *ListSessionsQuery {
	return &ListSessionsQuery{reader: reader}
}

func (q *ListSessionsQuery) Query(ctx context.Context, msg ListSessionsMessage) ([]core.CallSession, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: session reader is required")
	}
	return q.reader.Sessions(), nil
}

type GetLatestInviteQuery struct {
	reader SessionReader
}

func NewGetLatestInviteQuery(reader SessionReader) *GetLatestInviteQuery {
	return &GetLatestInviteQuery{reader: reader}
}

func (q *GetLatestInviteQuery) Query(ctx context.Context, msg GetLatestInviteMessage) (core.CallInvite, error) {
	if q == nil || q.reader == nil {
		return core.CallInvite{}, queryDependencyError("query: session reader is required")
	}
	invite, ok := q.reader.LatestInvite()
	if !ok {
		return core.CallInvite{}, queryNotFoundError("query: no call invite retained")
	}
	return invite, nil
}

type ListCallHistoryQuery struct {
	reader core.HistoryReader
}

func NewListCallHistoryQuery(reader core.HistoryReader) *ListCallHistoryQuery {
	return &ListCallHistoryQuery{reader: reader}
}

func (q *ListCallHistoryQuery) Query(ctx context.Context, msg ListCallHistoryMessage) ([]core.CallRecord, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: call history reader is required")
	}
	return q.reader.List(ctx, msg.Filter)
}
