package callkit

import (
	"fmt"

	callkitcommand "github.com/goliatone/go-callkit/command"
	"github.com/goliatone/go-callkit/core"
	callkitquery "github.com/goliatone/go-callkit/query"
)

// CommandQueryService is the combined surface the facade wires into the
// dispatch layer. Implemented by core.Coordinator.
type CommandQueryService interface {
	callkitcommand.CallDispatchService
	callkitquery.TokenReader
	callkitquery.SessionReader
}

type Commands struct {
	HandleIncomingPush  *callkitcommand.HandleIncomingPushCommand
	SubmitCallAction    *callkitcommand.SubmitCallActionCommand
	HandleCallAction    *callkitcommand.HandleCallActionCommand
	SetCallKeys         *callkitcommand.SetCallKeysCommand
	SetPushToken        *callkitcommand.SetPushTokenCommand
	InvalidatePushToken *callkitcommand.InvalidatePushTokenCommand
	ShowBanner          *callkitcommand.ShowBannerCommand
	DismissBanner       *callkitcommand.DismissBannerCommand
	ClearAll            *callkitcommand.ClearAllCommand
}

type Queries struct {
	GetPushToken    *callkitquery.GetPushTokenQuery
	ListSessions    *callkitquery.ListSessionsQuery
	GetLatestInvite *callkitquery.GetLatestInviteQuery
	ListCallHistory *callkitquery.ListCallHistoryQuery
}

type Facade struct {
	service  CommandQueryService
	commands Commands
	queries  Queries
}

type FacadeOption func(*facadeOptions)

type facadeOptions struct {
	historyReader core.HistoryReader
}

// WithFacadeHistoryReader supplies the journal read side. Without it the
// history query is built unwired and returns a dependency error when used.
func WithFacadeHistoryReader(reader core.HistoryReader) FacadeOption {
	return func(options *facadeOptions) {
		options.historyReader = reader
	}
}

func NewFacade(service CommandQueryService, opts ...FacadeOption) (*Facade, error) {
	if service == nil {
		return nil, fmt.Errorf("callkit: command/query service is required")
	}
	cfg := facadeOptions{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	reader := cfg.historyReader
	if reader == nil {
		reader = resolveHistoryReader(service)
	}

	facade := &Facade{service: service}
	facade.commands = Commands{
		HandleIncomingPush:  callkitcommand.NewHandleIncomingPushCommand(service),
		SubmitCallAction:    callkitcommand.NewSubmitCallActionCommand(service),
		HandleCallAction:    callkitcommand.NewHandleCallActionCommand(service),
		SetCallKeys:         callkitcommand.NewSetCallKeysCommand(service),
		SetPushToken:        callkitcommand.NewSetPushTokenCommand(service),
		InvalidatePushToken: callkitcommand.NewInvalidatePushTokenCommand(service),
		ShowBanner:          callkitcommand.NewShowBannerCommand(service),
		DismissBanner:       callkitcommand.NewDismissBannerCommand(service),
		ClearAll:            callkitcommand.NewClearAllCommand(service),
	}
	facade.queries = Queries{
		GetPushToken:    callkitquery.NewGetPushTokenQuery(service),
		ListSessions:    callkitquery.NewListSessionsQuery(service),
		GetLatestInvite: callkitquery.NewGetLatestInviteQuery(service),
		ListCallHistory: callkitquery.NewListCallHistoryQuery(reader),
	}

	return facade, nil
}

func (f *Facade) Commands() Commands {
	if f == nil {
		return Commands{}
	}
	return f.commands
}

func (f *Facade) Queries() Queries {
	if f == nil {
		return Queries{}
	}
	return f.queries
}

func (f *Facade) Service() CommandQueryService {
	if f == nil {
		return nil
	}
	return f.service
}

func resolveHistoryReader(service CommandQueryService) core.HistoryReader {
	if reader, ok := service.(core.HistoryReader); ok {
		return reader
	}
	provider, ok := service.(interface{ HistoryReader() core.HistoryReader })
	if !ok {
		return nil
	}
	return provider.HistoryReader()
}
