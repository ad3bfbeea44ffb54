package command

import (
	"context"

	"github.com/goliatone/go-callkit/core"
	gocmd "github.com/goliatone/go-command"
)

// CallDispatchService is the mutating surface the command layer drives.
// Implemented by core.Coordinator.
type CallDispatchService interface {
	HandleIncomingPush(ctx context.Context, payload map[string]any) core.SubmitResult
	HandleCallAction(ctx context.Context, enabled bool, keys core.PayloadKeysConfig, action string) core.SubmitResult
	SubmitCallAction(ctx context.Context, action string, invite *core.CallInvite) core.SubmitResult
	SetCallKeys(keys core.PayloadKeysConfig)
	SetPushToken(kind core.TokenKind, value string)
	InvalidatePushToken(kind core.TokenKind)
	ShowBanner(ctx context.Context, req core.BannerRequest)
	DismissBanner()
	ClearAll(ctx context.Context)
}

type HandleIncomingPushCommand struct {
	service CallDispatchService
}

func NewHandleIncomingPushCommand(service CallDispatchService) *HandleIncomingPushCommand {
	return &HandleIncomingPushCommand{service: service}
}

func (c *HandleIncomingPushCommand) Execute(ctx context.Context, msg HandleIncomingPushMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: call dispatch service is required")
	}
	out := c.service.HandleIncomingPush(ctx, msg.Payload)
	storeResult(ctx, out)
	return nil
}

type SubmitCallActionCommand struct {
	service CallDispatchService
}

func NewSubmitCallActionCommand(service CallDispatchService) *SubmitCallActionCommand {
	return &SubmitCallActionCommand{service: service}
}

func (c *SubmitCallActionCommand) Execute(ctx context.Context, msg SubmitCallActionMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: call dispatch service is required")
	}
	out := c.service.SubmitCallAction(ctx, msg.Action, msg.Invite)
	storeResult(ctx, out)
	return nil
}

type HandleCallActionCommand struct {
	service CallDispatchService
}

func NewHandleCallActionCommand(service CallDispatchService) *HandleCallActionCommand {
	return &HandleCallActionCommand{service: service}
}

func (c *HandleCallActionCommand) Execute(ctx context.Context, msg HandleCallActionMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: call dispatch service is required")
	}
	out := c.service.HandleCallAction(ctx, msg.Enabled, msg.Keys, msg.Action)
	storeResult(ctx, out)
	return nil
}

type SetCallKeysCommand struct {
	service CallDispatchService
}

func NewSetCallKeysCommand(service CallDispatchService) *SetCallKeysCommand {
	return &SetCallKeysCommand{service: service}
}

func (c *SetCallKeysCommand) Execute(ctx context.Context, msg SetCallKeysMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: call dispatch service is required")
	}
	c.service.SetCallKeys(msg.Keys)
	return nil
}

type SetPushTokenCommand struct {
	service CallDispatchService
}

func NewSetPushTokenCommand(service CallDispatchService) *SetPushTokenCommand {
	return &SetPushTokenCommand{service: service}
}

func (c *SetPushTokenCommand) Execute(ctx context.Context, msg SetPushTokenMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: call dispatch service is required")
	}
	kind, ok := core.ParseTokenKind(msg.Kind)
	if !ok {
		return commandInvalidInputError("command: unknown token kind")
	}
	c.service.SetPushToken(kind, msg.Value)
	return nil
}

type InvalidatePushTokenCommand struct {
	service CallDispatchService
}

func NewInvalidatePushTokenCommand(service CallDispatchService) *InvalidatePushTokenCommand {
	return &InvalidatePushTokenCommand{service: service}
}

func (c *InvalidatePushTokenCommand) Execute(ctx context.Context, msg InvalidatePushTokenMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: call dispatch service is required")
	}
	kind, ok := core.ParseTokenKind(msg.Kind)
	if !ok {
		return commandInvalidInputError("command: unknown token kind")
	}
	c.service.InvalidatePushToken(kind)
	return nil
}

type ShowBannerCommand struct {
	service CallDispatchService
}

func NewShowBannerCommand(service CallDispatchService) *ShowBannerCommand {
	return &ShowBannerCommand{service: service}
}

func (c *ShowBannerCommand) Execute(ctx context.Context, msg ShowBannerMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: call dispatch service is required")
	}
	c.service.ShowBanner(ctx, msg.Request)
	return nil
}

type DismissBannerCommand struct {
	service CallDispatchService
}

func NewDismissBannerCommand(service CallDispatchService) *DismissBannerCommand {
	return &DismissBannerCommand{service: service}
}

func (c *DismissBannerCommand) Execute(ctx context.Context, msg DismissBannerMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: call dispatch service is required")
	}
	c.service.DismissBanner()
	return nil
}

type ClearAllCommand struct {
	service CallDispatchService
}

func NewClearAllCommand(service CallDispatchService) *ClearAllCommand {
	return &ClearAllCommand{service: service}
}

func (c *ClearAllCommand) Execute(ctx context.Context, msg ClearAllMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: call dispatch service is required")
	}
	c.service.ClearAll(ctx)
	return nil
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
