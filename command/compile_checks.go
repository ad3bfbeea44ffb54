package command

import gocmd "github.com/goliatone/go-command"

var (
	_ gocmd.Commander[HandleIncomingPushMessage]  = (*HandleIncomingPushCommand)(nil)
	_ gocmd.Commander[SubmitCallActionMessage]    = (*SubmitCallActionCommand)(nil)
	_ gocmd.Commander[HandleCallActionMessage]    = (*HandleCallActionCommand)(nil)
	_ gocmd.Commander[SetCallKeysMessage]         = (*SetCallKeysCommand)(nil)
	_ gocmd.Commander[SetPushTokenMessage]        = (*SetPushTokenCommand)(nil)
	_ gocmd.Commander[InvalidatePushTokenMessage] = (*InvalidatePushTokenCommand)(nil)
	_ gocmd.Commander[ShowBannerMessage]          = (*ShowBannerCommand)(nil)
	_ gocmd.Commander[DismissBannerMessage]       = (*DismissBannerCommand)(nil)
	_ gocmd.Commander[ClearAllMessage]            = (*ClearAllCommand)(nil)
)
