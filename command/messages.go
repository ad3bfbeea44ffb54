package command

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-callkit/core"
)

const (
	TypeHandleIncomingPush  = "callkit.command.push.handle"
	TypeSubmitCallAction    = "callkit.command.call.submit"
	TypeHandleCallAction    = "callkit.command.call.handle_action"
	TypeSetCallKeys         = "callkit.command.keys.set"
	TypeSetPushToken        = "callkit.command.token.set"
	TypeInvalidatePushToken = "callkit.command.token.invalidate"
	TypeShowBanner          = "callkit.command.banner.show"
	TypeDismissBanner       = "callkit.command.banner.dismiss"
	TypeClearAll            = "callkit.command.clear_all"
)

type HandleIncomingPushMessage struct {
	Payload map[string]any
}

func (HandleIncomingPushMessage) Type() string { return TypeHandleIncomingPush }

func (m HandleIncomingPushMessage) Validate() error {
	if len(m.Payload) == 0 {
		return fmt.Errorf("command: push payload is required")
	}
	return nil
}

type SubmitCallActionMessage struct {
	Action string
	Invite *core.CallInvite
}

func (SubmitCallActionMessage) Type() string { return TypeSubmitCallAction }

func (m SubmitCallActionMessage) Validate() error {
	if strings.TrimSpace(m.Action) == "" {
		return fmt.Errorf("command: call action is required")
	}
	return nil
}

type HandleCallActionMessage struct {
	Enabled bool
	Keys    core.PayloadKeysConfig
	Action  string
}

func (HandleCallActionMessage) Type() string { return TypeHandleCallAction }

func (m HandleCallActionMessage) Validate() error {
	if strings.TrimSpace(m.Action) == "" {
		return fmt.Errorf("command: call action is required")
	}
	return nil
}

type SetCallKeysMessage struct {
	Keys core.PayloadKeysConfig
}

func (SetCallKeysMessage) Type() string { return TypeSetCallKeys }

func (SetCallKeysMessage) Validate() error { return nil }

type SetPushTokenMessage struct {
	Kind  string
	Value string
}

func (SetPushTokenMessage) Type() string { return TypeSetPushToken }

func (m SetPushTokenMessage) Validate() error {
	if err := validateTokenKind(m.Kind); err != nil {
		return err
	}
	if strings.TrimSpace(m.Value) == "" {
		return fmt.Errorf("command: token value is required")
	}
	return nil
}

type InvalidatePushTokenMessage struct {
	Kind string
}

func (InvalidatePushTokenMessage) Type() string { return TypeInvalidatePushToken }

func (m InvalidatePushTokenMessage) Validate() error {
	return validateTokenKind(m.Kind)
}

type ShowBannerMessage struct {
	Request core.BannerRequest
}

func (ShowBannerMessage) Type() string { return TypeShowBanner }

func (m ShowBannerMessage) Validate() error {
	if strings.TrimSpace(m.Request.Title) == "" && strings.TrimSpace(m.Request.Body) == "" {
		return fmt.Errorf("command: banner title or body is required")
	}
	return nil
}

type DismissBannerMessage struct{}

func (DismissBannerMessage) Type() string { return TypeDismissBanner }

func (DismissBannerMessage) Validate() error { return nil }

type ClearAllMessage struct{}

func (ClearAllMessage) Type() string { return TypeClearAll }

func (ClearAllMessage) Validate() error { return nil }

func validateTokenKind(raw string) error {
	if _, ok := core.ParseTokenKind(raw); !ok {
		return fmt.Errorf("command: unknown token kind %q", raw)
	}
	return nil
}
