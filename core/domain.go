package core

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type CallType string

const (
	CallTypeAudio CallType = "audio"
	CallTypeVideo CallType = "video"
)

// ParseCallType maps a payload call-type value to a CallType. Anything that is
// not "video" (case-insensitive) is treated as an audio call.
func ParseCallType(value string) CallType {
	if strings.EqualFold(strings.TrimSpace(value), string(CallTypeVideo)) {
		return CallTypeVideo
	}
	return CallTypeAudio
}

func (t CallType) HasVideo() bool {
	return t == CallTypeVideo
}

type CallState string

const (
	CallStateRinging CallState = "ringing"
	CallStateActive  CallState = "active"
	CallStateEnded   CallState = "ended"
)

// Call actions recognized on the push path. The start group contains only
// "initiated"; everything else in this list terminates a session. Unknown
// actions are ignored.
const (
	ActionInitiated  = "initiated"
	ActionUnanswered = "unanswered"
	ActionRejected   = "rejected"
	ActionCancelled  = "cancelled"
	ActionBusy       = "busy"
	ActionEnded      = "ended"
)

// NormalizeCallAction lowercases and trims an inbound action string.
func NormalizeCallAction(action string) string {
	return strings.ToLower(strings.TrimSpace(action))
}

func IsStartAction(action string) bool {
	return NormalizeCallAction(action) == ActionInitiated
}

func IsEndAction(action string) bool {
	switch NormalizeCallAction(action) {
	case ActionUnanswered, ActionRejected, ActionCancelled, ActionBusy, ActionEnded:
		return true
	}
	return false
}

// EndedReason is the termination reason reported to the native call UI.
type EndedReason string

const (
	ReasonUnanswered  EndedReason = "unanswered"
	ReasonRemoteEnded EndedReason = "remote-ended"
	ReasonFailed      EndedReason = "failed"
	ReasonDeclined    EndedReason = "declined"
)

// EndedReasonForAction maps an end-group action to the native termination
// reason. The second return is false for actions outside the end group.
func EndedReasonForAction(action string) (EndedReason, bool) {
	switch NormalizeCallAction(action) {
	case ActionUnanswered:
		return ReasonUnanswered, true
	case ActionRejected, ActionCancelled, ActionEnded:
		return ReasonRemoteEnded, true
	case ActionBusy:
		return ReasonFailed, true
	}
	return "", false
}

// CallInvite is a decoded push payload. Immutable once created; the
// coordinator retains the most recent invite so native UI callbacks, which
// only carry a handle, can recover the original payload.
type CallInvite struct {
	CallID     string
	CallerName string
	CallType   CallType
	RawPayload map[string]any
}

// CallSession tracks one live native call. Sessions are owned exclusively by
// the session registry; CallID is unique among live sessions.
type CallSession struct {
	CallID    string
	Handle    uuid.UUID
	State     CallState
	StartedAt time.Time
}

// CallEvent is the uniform shape emitted on the call-action channel whenever
// the user acts on the native call UI.
type CallEvent struct {
	Action  string
	CallID  string
	Payload map[string]any
}

const (
	CallEventAccept  = "accept"
	CallEventDecline = "decline"
)

// BannerRequest describes one in-app banner. At most one banner is active
// system-wide; a new request replaces the previous one.
type BannerRequest struct {
	Title    string
	Body     string
	Data     map[string]any
	ImageURL string
}

type TokenKind string

const (
	// TokenVoIP routes high-priority call pushes.
	TokenVoIP TokenKind = "voip"
	// TokenRemote routes standard remote notifications.
	TokenRemote TokenKind = "remote"
)

// ParseTokenKind normalizes a raw token kind. Unknown kinds are rejected so a
// typo cannot create an orphan token slot.
func ParseTokenKind(raw string) (TokenKind, bool) {
	switch TokenKind(strings.ToLower(strings.TrimSpace(raw))) {
	case TokenVoIP:
		return TokenVoIP, true
	case TokenRemote:
		return TokenRemote, true
	}
	return "", false
}

// PushTokenStatus is the read-side view of one token slot. An unregistered
// slot is a normal state, not an error.
type PushTokenStatus struct {
	Kind       TokenKind
	Value      string
	Registered bool
}

// Outcome reports what a mutating call operation actually did.
type Outcome string

const (
	OutcomeStarted   Outcome = "started"
	OutcomeEnded     Outcome = "ended"
	OutcomeIgnored   Outcome = "ignored"
	OutcomeNoSession Outcome = "no_session"
	OutcomeDisabled  Outcome = "disabled"
)

// SubmitResult is returned by the mutating call surface so the dispatch layer
// can acknowledge what happened without inspecting coordinator state.
type SubmitResult struct {
	Outcome Outcome
	CallID  string
}

// CallRecord is one journaled call, written when a session ends.
type CallRecord struct {
	ID         string
	CallID     string
	CallerName string
	CallType   CallType
	Outcome    string
	Reason     EndedReason
	RingingAt  time.Time
	EndedAt    time.Time
	Payload    map[string]any
}

const (
	CallOutcomeAnswered = "answered"
	CallOutcomeDeclined = "declined"
	CallOutcomeMissed   = "missed"
	CallOutcomeRemote   = "remote_ended"
	CallOutcomeFailed   = "failed"
)

// OutcomeForReason derives the journaled outcome from a termination reason.
func OutcomeForReason(reason EndedReason) string {
	switch reason {
	case ReasonUnanswered:
		return CallOutcomeMissed
	case ReasonDeclined:
		return CallOutcomeDeclined
	case ReasonFailed:
		return CallOutcomeFailed
	default:
		return CallOutcomeRemote
	}
}

func cloneAnyMap(in map[string]any) map[string]any {
	if len(in) == 0 {
		return map[string]any{}
	}
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
