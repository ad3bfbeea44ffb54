package callkit

import "github.com/goliatone/go-callkit/core"

type Config = core.Config

type PayloadKeysConfig = core.PayloadKeysConfig

type Option = core.Option

type Coordinator = core.Coordinator

type BannerManager = core.BannerManager

type CallInvite = core.CallInvite
type CallSession = core.CallSession
type CallEvent = core.CallEvent
type CallRecord = core.CallRecord
type BannerRequest = core.BannerRequest
type SubmitResult = core.SubmitResult

type CallUI = core.CallUI
type NotificationCenter = core.NotificationCenter
type BannerSurface = core.BannerSurface
type HistoryStore = core.HistoryStore
type HistoryReader = core.HistoryReader

type TokenKind = core.TokenKind

const (
	TokenVoIP   = core.TokenVoIP
	TokenRemote = core.TokenRemote
)

var (
	WithLogger             = core.WithLogger
	WithLoggerProvider     = core.WithLoggerProvider
	WithMetricsRecorder    = core.WithMetricsRecorder
	WithErrorFactory       = core.WithErrorFactory
	WithErrorMapper        = core.WithErrorMapper
	WithConfigProvider     = core.WithConfigProvider
	WithOptionsResolver    = core.WithOptionsResolver
	WithCallUI             = core.WithCallUI
	WithNotificationCenter = core.WithNotificationCenter
	WithBannerSurface      = core.WithBannerSurface
	WithHistoryStore       = core.WithHistoryStore
)

func DefaultConfig() Config {
	return core.DefaultConfig()
}

func NewCoordinator(cfg Config, opts ...Option) (*Coordinator, error) {
	return core.NewCoordinator(cfg, opts...)
}
