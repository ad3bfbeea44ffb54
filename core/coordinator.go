package core

import (
	"context"
	"sync"
	"time"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
	"github.com/google/uuid"
)

// Coordinator owns the call-session state machine. Inbound push actions,
// native UI callbacks, and application requests can all arrive concurrently;
// the coordinator mutex serializes every session mutation and every
// latest-invite replacement, so the registry is only ever touched from inside
// a critical section.
type Coordinator struct {
	config          Config
	logger          Logger
	loggerProvider  LoggerProvider
	metricsRecorder MetricsRecorder
	errorMapper     ErrorMapper

	callUI      CallUI
	notifCenter NotificationCenter
	history     HistoryStore

	registry *SessionRegistry
	decoder  *PayloadDecoder
	bridge   *EventBridge
	tokens   *TokenStore
	banner   *BannerManager

	mu            sync.Mutex
	latestInvite  *CallInvite
	latestPayload map[string]any
	ringTimers    map[string]*time.Timer
}

func NewCoordinator(cfg Config, opts ...Option) (*Coordinator, error) {
	builder := defaultCoordinatorBuilder(cfg)
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&builder)
	}

	provider, logger := glog.Resolve("callkit", builder.loggerProvider, builder.logger)
	logger = glog.Ensure(logger)
	if provider != nil {
		if named := provider.GetLogger("callkit"); named != nil {
			logger = glog.Ensure(named)
		}
	}

	if builder.metricsRecorder == nil {
		builder.metricsRecorder = NopMetricsRecorder{}
	}
	if builder.errorFactory == nil {
		builder.errorFactory = goerrors.New
	}
	if builder.errorMapper == nil {
		builder.errorMapper = defaultErrorMapper
	}
	if builder.configProvider == nil {
		builder.configProvider = NewCfgxConfigProvider(nil)
	}
	if builder.optionsResolver == nil {
		builder.optionsResolver = GoOptionsResolver{}
	}
	if builder.callUI == nil {
		return nil, builder.errorMapper(builder.errorFactory(
			"core: call ui adapter is required",
			goerrors.CategoryInternal,
		))
	}

	defaults := DefaultConfig()
	loaded, err := builder.configProvider.Load(context.Background(), defaults)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}
	finalConfig, err := builder.optionsResolver.Resolve(defaults, loaded, builder.runtimeConfig)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}

	bridge := NewEventBridge()
	coordinator := &Coordinator{
		config:          finalConfig,
		logger:          logger,
		loggerProvider:  provider,
		metricsRecorder: builder.metricsRecorder,
		errorMapper:     builder.errorMapper,
		callUI:          builder.callUI,
		notifCenter:     builder.notifCenter,
		history:         builder.history,
		registry:        NewSessionRegistry(),
		decoder:         NewPayloadDecoder(finalConfig.Keys),
		bridge:          bridge,
		tokens:          NewTokenStore(),
		ringTimers:      make(map[string]*time.Timer),
	}
	if builder.bannerSurface != nil {
		coordinator.banner = NewBannerManager(
			builder.bannerSurface,
			bridge,
			logger,
			finalConfig.Banner.AutoDismiss(),
		)
	}
	return coordinator, nil
}

func mapBuildError(mapper ErrorMapper, err error) error {
	if err == nil {
		return nil
	}
	if mapper == nil {
		return err
	}
	return mapper(err)
}

func (c *Coordinator) Config() Config {
	if c == nil {
		return Config{}
	}
	return c.config
}

// ---- listener registration (event bridge passthrough) ----

// OnCallEvent installs the single call-action listener. Replaces any previous
// listener; nil clears the slot.
func (c *Coordinator) OnCallEvent(listener CallEventListener) {
	if c == nil {
		return
	}
	c.bridge.SetCallListener(listener)
}

// OnNotificationTap installs the single banner-tap listener.
func (c *Coordinator) OnNotificationTap(listener TapListener) {
	if c == nil {
		return
	}
	c.bridge.SetTapListener(listener)
}

// ---- token store ----

func (c *Coordinator) SetPushToken(kind TokenKind, value string) {
	if c == nil {
		return
	}
	c.tokens.Set(kind, value)
	c.logInfo(context.Background(), "push token updated", map[string]any{"kind": string(kind)})
}

func (c *Coordinator) InvalidatePushToken(kind TokenKind) {
	if c == nil {
		return
	}
	c.tokens.Invalidate(kind)
	c.logInfo(context.Background(), "push token invalidated", map[string]any{"kind": string(kind)})
}

func (c *Coordinator) PushToken(kind TokenKind) (string, bool) {
	if c == nil {
		return "", false
	}
	return c.tokens.Get(kind)
}

// ---- payload keys ----

func (c *Coordinator) SetCallKeys(keys PayloadKeysConfig) {
	if c == nil {
		return
	}
	c.decoder.SetKeys(keys)
}

func (c *Coordinator) CallKeys() PayloadKeysConfig {
	if c == nil {
		return PayloadKeysConfig{}.Normalize()
	}
	return c.decoder.Keys()
}

// ---- push path ----

// HandleIncomingPush caches the raw payload as the latest delivery, decodes
// it with the current keys, and feeds the embedded call action to the state
// machine. Malformed payloads are logged and swallowed: push delivery cannot
// be retried by rejecting it.
func (c *Coordinator) HandleIncomingPush(ctx context.Context, payload map[string]any) SubmitResult {
	if c == nil {
		return SubmitResult{Outcome: OutcomeIgnored}
	}
	startedAt := time.Now()

	payload = cloneAnyMap(payload)
	c.mu.Lock()
	c.latestPayload = payload
	c.mu.Unlock()

	action := CallAction(payload)
	invite, err := c.decoder.Decode(payload)
	if err != nil {
		c.observeOperation(ctx, startedAt, "push_decode", err, map[string]any{"action": action})
		return SubmitResult{Outcome: OutcomeIgnored}
	}
	return c.SubmitCallAction(ctx, action, &invite)
}

// HandleCallAction re-decodes the latest cached payload with the supplied
// keys and feeds the given action to the state machine. This is the
// application-originated path: the keys may differ from the configured set.
func (c *Coordinator) HandleCallAction(
	ctx context.Context,
	enabled bool,
	keys PayloadKeysConfig,
	callAction string,
) SubmitResult {
	if c == nil {
		return SubmitResult{Outcome: OutcomeIgnored}
	}
	if !enabled {
		return SubmitResult{Outcome: OutcomeDisabled}
	}
	startedAt := time.Now()

	c.mu.Lock()
	payload := c.latestPayload
	c.mu.Unlock()
	if len(payload) == 0 {
		c.logInfo(ctx, "no cached push payload for call action", map[string]any{
			"action": NormalizeCallAction(callAction),
		})
		return SubmitResult{Outcome: OutcomeIgnored}
	}

	invite, err := c.decoder.DecodeWithKeys(payload, keys)
	if err != nil {
		c.observeOperation(ctx, startedAt, "call_action_decode", err, map[string]any{
			"action": NormalizeCallAction(callAction),
		})
		return SubmitResult{Outcome: OutcomeIgnored}
	}
	return c.SubmitCallAction(ctx, callAction, &invite)
}

// SubmitCallAction drives the state machine with one inbound action.
// Unrecognized actions are a no-op; start actions are idempotent per live
// call id; end actions with no live session are a no-op.
func (c *Coordinator) SubmitCallAction(ctx context.Context, action string, invite *CallInvite) SubmitResult {
	if c == nil {
		return SubmitResult{Outcome: OutcomeIgnored}
	}
	action = NormalizeCallAction(action)

	switch {
	case IsStartAction(action):
		if invite == nil {
			c.logInfo(ctx, "start action without invite ignored", map[string]any{"action": action})
			return SubmitResult{Outcome: OutcomeIgnored}
		}
		return c.startCall(ctx, *invite)
	case IsEndAction(action):
		callID := ""
		if invite != nil {
			callID = invite.CallID
		}
		reason, _ := EndedReasonForAction(action)
		return c.endCall(ctx, callID, action, reason)
	default:
		c.logInfo(ctx, "unrecognized call action ignored", map[string]any{"action": action})
		return SubmitResult{Outcome: OutcomeIgnored}
	}
}

func (c *Coordinator) startCall(ctx context.Context, invite CallInvite) SubmitResult {
	startedAt := time.Now()
	fields := map[string]any{
		"action":  ActionInitiated,
		"call_id": invite.CallID,
	}

	c.mu.Lock()
	if _, exists := c.registry.Get(invite.CallID); exists {
		c.mu.Unlock()
		// Duplicate start for a live call: never show a second native UI.
		c.logInfo(ctx, "duplicate start action ignored", fields)
		return SubmitResult{Outcome: OutcomeIgnored, CallID: invite.CallID}
	}
	handle := uuid.New()
	session, created := c.registry.Create(invite.CallID, handle, startedAt)
	if !created {
		c.mu.Unlock()
		c.logInfo(ctx, "session appeared concurrently, keeping existing", fields)
		return SubmitResult{Outcome: OutcomeIgnored, CallID: invite.CallID}
	}
	c.latestInvite = &invite
	c.mu.Unlock()

	// The adapter runs outside the mutex so a surface that calls straight
	// back into the coordinator cannot deadlock. The session is reserved
	// first and rolled back if the native UI never appears.
	if err := c.callUI.ReportIncomingCall(ctx, handle, invite.CallerName, invite.CallType.HasVideo()); err != nil {
		c.mu.Lock()
		c.registry.Remove(invite.CallID)
		c.clearInviteForLocked(invite.CallID)
		c.mu.Unlock()
		c.observeOperation(ctx, startedAt, "report_incoming_call", err, fields)
		return SubmitResult{Outcome: OutcomeIgnored, CallID: invite.CallID}
	}

	c.mu.Lock()
	if _, live := c.registry.Get(session.CallID); live {
		c.scheduleRingTimeoutLocked(session.CallID)
	}
	c.mu.Unlock()

	c.observeOperation(ctx, startedAt, "call_started", nil, fields)
	return SubmitResult{Outcome: OutcomeStarted, CallID: invite.CallID}
}

func (c *Coordinator) endCall(ctx context.Context, callID string, action string, reason EndedReason) SubmitResult {
	startedAt := time.Now()
	fields := map[string]any{
		"action":  action,
		"call_id": callID,
		"reason":  reason,
	}

	c.mu.Lock()
	session, ok := c.registry.Remove(callID)
	if !ok {
		c.mu.Unlock()
		c.logInfo(ctx, "end action for unknown call ignored", fields)
		return SubmitResult{Outcome: OutcomeNoSession, CallID: callID}
	}
	record := c.takeEndedLocked(session, reason)
	c.mu.Unlock()

	return c.reportEnded(ctx, startedAt, session, reason, record, fields)
}

// takeEndedLocked tears down the bookkeeping for a session already removed
// from the registry: ring timer, journal record, latest-invite slot.
func (c *Coordinator) takeEndedLocked(session CallSession, reason EndedReason) CallRecord {
	c.cancelRingTimeoutLocked(session.CallID)
	record := c.buildRecordLocked(session, reason, OutcomeForReason(reason))
	c.clearInviteForLocked(session.CallID)
	return record
}

// reportEnded runs the adapter and journal tail of an end, outside the mutex.
// Fire-and-forget: the platform reports completion through its own callbacks,
// never back into this path.
func (c *Coordinator) reportEnded(
	ctx context.Context,
	startedAt time.Time,
	session CallSession,
	reason EndedReason,
	record CallRecord,
	fields map[string]any,
) SubmitResult {
	if err := c.callUI.ReportCallEnded(ctx, session.Handle, reason); err != nil {
		c.observeOperation(ctx, startedAt, "report_call_ended", err, fields)
	} else {
		c.observeOperation(ctx, startedAt, "call_ended", nil, fields)
	}
	c.appendHistory(ctx, record)
	return SubmitResult{Outcome: OutcomeEnded, CallID: session.CallID}
}

// ---- native UI callbacks ----

// OnUserAnswered reacts to the user accepting on the native call screen.
// Unknown handles (stale, post-reset) are a no-op.
func (c *Coordinator) OnUserAnswered(ctx context.Context, handle uuid.UUID) {
	if c == nil {
		return
	}
	startedAt := time.Now()

	c.mu.Lock()
	session, ok := c.registry.ResolveHandle(handle)
	if !ok {
		c.mu.Unlock()
		c.logInfo(ctx, "answer callback for unknown handle ignored", map[string]any{
			"handle": handle.String(),
		})
		return
	}
	if _, ok := c.registry.MarkActive(session.CallID); !ok {
		c.mu.Unlock()
		return
	}
	c.cancelRingTimeoutLocked(session.CallID)
	payload := c.latestPayloadForLocked(session.CallID)
	c.mu.Unlock()

	c.bridge.EmitCallEvent(CallEvent{
		Action:  CallEventAccept,
		CallID:  session.CallID,
		Payload: payload,
	})
	c.observeOperation(ctx, startedAt, "call_answered", nil, map[string]any{
		"call_id": session.CallID,
	})
}

// OnUserDeclined reacts to the user declining on the native call screen: the
// session is removed and a decline event is emitted. Unknown handles are a
// no-op.
func (c *Coordinator) OnUserDeclined(ctx context.Context, handle uuid.UUID) {
	if c == nil {
		return
	}
	startedAt := time.Now()

	c.mu.Lock()
	session, ok := c.registry.ResolveHandle(handle)
	if !ok {
		c.mu.Unlock()
		c.logInfo(ctx, "decline callback for unknown handle ignored", map[string]any{
			"handle": handle.String(),
		})
		return
	}
	c.registry.Remove(session.CallID)
	c.cancelRingTimeoutLocked(session.CallID)
	payload := c.latestPayloadForLocked(session.CallID)
	record := c.buildRecordLocked(session, ReasonDeclined, CallOutcomeDeclined)
	c.clearInviteForLocked(session.CallID)
	c.mu.Unlock()

	c.bridge.EmitCallEvent(CallEvent{
		Action:  CallEventDecline,
		CallID:  session.CallID,
		Payload: payload,
	})
	c.appendHistory(ctx, record)
	c.observeOperation(ctx, startedAt, "call_declined", nil, map[string]any{
		"call_id": session.CallID,
	})
}

// OnProviderReset is the platform's bulk invalidation: every session and the
// latest-invite cache are cleared unconditionally.
func (c *Coordinator) OnProviderReset(ctx context.Context) {
	if c == nil {
		return
	}
	c.mu.Lock()
	cleared := c.registry.Reset()
	for callID, timer := range c.ringTimers {
		timer.Stop()
		delete(c.ringTimers, callID)
	}
	c.latestInvite = nil
	c.latestPayload = nil
	c.mu.Unlock()

	c.logInfo(ctx, "provider reset cleared sessions", map[string]any{
		"session_count": len(cleared),
	})
}

// ---- ring timeout ----

func (c *Coordinator) scheduleRingTimeoutLocked(callID string) {
	timeout := c.config.Ring.Timeout()
	if timeout <= 0 {
		return
	}
	c.ringTimers[callID] = time.AfterFunc(timeout, func() {
		c.ringTimedOut(callID)
	})
}

func (c *Coordinator) cancelRingTimeoutLocked(callID string) {
	if timer, ok := c.ringTimers[callID]; ok {
		timer.Stop()
		delete(c.ringTimers, callID)
	}
}

// ringTimedOut ends a session that is still ringing after the configured
// timeout, with the same termination as a push "unanswered" action. The state
// check and the removal share one critical section so an answer racing the
// timer can never have its call torn down as unanswered.
func (c *Coordinator) ringTimedOut(callID string) {
	ctx := context.Background()
	startedAt := time.Now()

	c.mu.Lock()
	delete(c.ringTimers, callID)
	session, ok := c.registry.Get(callID)
	if !ok || session.State != CallStateRinging {
		c.mu.Unlock()
		return
	}
	c.registry.Remove(callID)
	record := c.takeEndedLocked(session, ReasonUnanswered)
	c.mu.Unlock()

	c.logInfo(ctx, "ring timeout reached", map[string]any{"call_id": callID})
	c.reportEnded(ctx, startedAt, session, ReasonUnanswered, record, map[string]any{
		"action":  ActionUnanswered,
		"call_id": callID,
		"reason":  ReasonUnanswered,
	})
}

// ---- banner ----

// ShowBanner presents an in-app banner through the banner manager. A
// coordinator built without a banner surface ignores the request.
func (c *Coordinator) ShowBanner(ctx context.Context, req BannerRequest) {
	if c == nil || c.banner == nil {
		return
	}
	startedAt := time.Now()
	c.banner.Present(req)
	c.observeOperation(ctx, startedAt, "banner_shown", nil, map[string]any{
		"title": req.Title,
	})
}

func (c *Coordinator) DismissBanner() {
	if c == nil || c.banner == nil {
		return
	}
	c.banner.Dismiss()
}

// Banner exposes the manager so the platform surface can route tap/close
// callbacks.
func (c *Coordinator) Banner() *BannerManager {
	if c == nil {
		return nil
	}
	return c.banner
}

// ClearAll dismisses the active banner and clears delivered and pending
// platform notifications. Notification-center failures are logged; the banner
// dismissal always happens.
func (c *Coordinator) ClearAll(ctx context.Context) {
	if c == nil {
		return
	}
	startedAt := time.Now()
	c.DismissBanner()

	var clearErr error
	if c.notifCenter != nil {
		if err := c.notifCenter.ClearDelivered(ctx); err != nil {
			clearErr = err
		}
		if err := c.notifCenter.ClearPending(ctx); err != nil && clearErr == nil {
			clearErr = err
		}
	}
	c.observeOperation(ctx, startedAt, "clear_all", clearErr, nil)
}

// ---- read side ----

// Sessions lists the live sessions in deterministic order.
func (c *Coordinator) Sessions() []CallSession {
	if c == nil {
		return nil
	}
	return c.registry.List()
}

// LatestInvite returns the most recently decoded invite, if a call is still
// holding one.
func (c *Coordinator) LatestInvite() (CallInvite, bool) {
	if c == nil {
		return CallInvite{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.latestInvite == nil {
		return CallInvite{}, false
	}
	invite := *c.latestInvite
	invite.RawPayload = cloneAnyMap(invite.RawPayload)
	return invite, true
}

// HistoryReader exposes the journal read side when the configured store
// supports reads.
func (c *Coordinator) HistoryReader() HistoryReader {
	if c == nil {
		return nil
	}
	if reader, ok := c.history.(HistoryReader); ok {
		return reader
	}
	return nil
}

// ---- internal helpers (coordinator mutex held) ----

// latestPayloadForLocked returns the retained invite payload when it belongs
// to callID, or an empty map. Native callbacks only carry a handle, so this
// is how the original payload reaches the event bridge.
func (c *Coordinator) latestPayloadForLocked(callID string) map[string]any {
	if c.latestInvite != nil && c.latestInvite.CallID == callID {
		return cloneAnyMap(c.latestInvite.RawPayload)
	}
	return map[string]any{}
}

func (c *Coordinator) clearInviteForLocked(callID string) {
	if c.latestInvite != nil && c.latestInvite.CallID == callID {
		c.latestInvite = nil
	}
}

func (c *Coordinator) buildRecordLocked(session CallSession, reason EndedReason, outcome string) CallRecord {
	record := CallRecord{
		ID:        uuid.NewString(),
		CallID:    session.CallID,
		Outcome:   outcome,
		Reason:    reason,
		RingingAt: session.StartedAt,
		EndedAt:   time.Now().UTC(),
	}
	if session.State == CallStateActive {
		record.Outcome = CallOutcomeAnswered
	}
	if c.latestInvite != nil && c.latestInvite.CallID == session.CallID {
		record.CallerName = c.latestInvite.CallerName
		record.CallType = c.latestInvite.CallType
		record.Payload = cloneAnyMap(c.latestInvite.RawPayload)
	}
	return record
}

func (c *Coordinator) appendHistory(ctx context.Context, record CallRecord) {
	if c == nil || c.history == nil {
		return
	}
	if err := c.history.Append(ctx, record); err != nil {
		c.logError(ctx, "call journal append failed", map[string]any{
			"call_id": record.CallID,
			"error":   err.Error(),
		})
	}
}
