package core

import (
	"context"

	glog "github.com/goliatone/go-logger/glog"
	"github.com/google/uuid"
)

// CallUI is the boundary to the host platform's call-management service.
// Calls are fire-and-forget from the coordinator's point of view: a returned
// error is logged and never advances or rewinds session state. Implementations
// must deliver user actions back through Coordinator.OnUserAnswered,
// OnUserDeclined, and OnProviderReset.
type CallUI interface {
	// ReportIncomingCall asks the platform to present its incoming-call
	// screen for the allocated handle.
	ReportIncomingCall(ctx context.Context, handle uuid.UUID, callerName string, hasVideo bool) error
	// ReportCallEnded tells the platform the call identified by handle is
	// over, with the mapped termination reason.
	ReportCallEnded(ctx context.Context, handle uuid.UUID, reason EndedReason) error
}

// NotificationCenter clears platform notifications; consumed by ClearAll.
type NotificationCenter interface {
	ClearDelivered(ctx context.Context) error
	ClearPending(ctx context.Context) error
}

// BannerSurface renders the in-app banner. Present may fail (the rich
// presentation path); PresentMinimal is the degraded fallback and must not
// fail. Dismiss hides whatever the surface currently shows and is idempotent.
type BannerSurface interface {
	Present(req BannerRequest) error
	PresentMinimal(title string, body string)
	Dismiss()
}

// HistoryStore journals ended calls. Optional: a nil store disables
// journaling. Append failures are logged by the coordinator and never block
// the call path.
type HistoryStore interface {
	Append(ctx context.Context, record CallRecord) error
}

// HistoryReader is the read side of the call journal.
type HistoryReader interface {
	List(ctx context.Context, filter CallHistoryFilter) ([]CallRecord, error)
}

// CallHistoryFilter narrows a call-journal read.
type CallHistoryFilter struct {
	CallID  string
	Outcome string
	Limit   int
}

// CallEventListener receives call-action events (accept/decline). Single
// slot: registering a listener replaces the previous one.
type CallEventListener func(CallEvent)

// TapListener receives the data map of a tapped banner. Single slot.
type TapListener func(map[string]any)

type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger

type ConfigProvider interface {
	Load(ctx context.Context, defaults Config) (Config, error)
}

type RawConfigLoader interface {
	LoadRaw(ctx context.Context) (map[string]any, error)
}

type OptionsResolver interface {
	Resolve(defaults Config, loaded Config, runtime Config) (Config, error)
}
