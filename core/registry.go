package core

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionRegistry is the single source of truth for live call sessions. It
// maps application call ids to sessions and native handles back to call ids.
// All mutation is mutex-guarded; callers receive copies, never the stored
// session.
type SessionRegistry struct {
	mu       sync.RWMutex
	byCallID map[string]*CallSession
	byHandle map[uuid.UUID]string
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		byCallID: make(map[string]*CallSession),
		byHandle: make(map[uuid.UUID]string),
	}
}

// Create registers a new ringing session. Returns false when a live session
// already exists for callID; the existing session is left untouched.
func (r *SessionRegistry) Create(callID string, handle uuid.UUID, now time.Time) (CallSession, bool) {
	if r == nil || callID == "" {
		return CallSession{}, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byCallID[callID]; exists {
		return CallSession{}, false
	}
	session := &CallSession{
		CallID:    callID,
		Handle:    handle,
		State:     CallStateRinging,
		StartedAt: now,
	}
	r.byCallID[callID] = session
	r.byHandle[handle] = callID
	return *session, true
}

func (r *SessionRegistry) Get(callID string) (CallSession, bool) {
	if r == nil {
		return CallSession{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.byCallID[callID]
	if !ok {
		return CallSession{}, false
	}
	return *session, true
}

// ResolveHandle finds the session owning a native handle. Handles from before
// a provider reset resolve to nothing.
func (r *SessionRegistry) ResolveHandle(handle uuid.UUID) (CallSession, bool) {
	if r == nil {
		return CallSession{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	callID, ok := r.byHandle[handle]
	if !ok {
		return CallSession{}, false
	}
	session, ok := r.byCallID[callID]
	if !ok {
		return CallSession{}, false
	}
	return *session, true
}

// MarkActive transitions a ringing session to active. Returns false when the
// session is missing or not ringing.
func (r *SessionRegistry) MarkActive(callID string) (CallSession, bool) {
	if r == nil {
		return CallSession{}, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.byCallID[callID]
	if !ok || session.State != CallStateRinging {
		return CallSession{}, false
	}
	session.State = CallStateActive
	return *session, true
}

// Remove deletes the session for callID and returns it with state Ended.
// Removing an unknown callID is a no-op.
func (r *SessionRegistry) Remove(callID string) (CallSession, bool) {
	if r == nil {
		return CallSession{}, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.byCallID[callID]
	if !ok {
		return CallSession{}, false
	}
	delete(r.byCallID, callID)
	delete(r.byHandle, session.Handle)
	ended := *session
	ended.State = CallStateEnded
	return ended, true
}

// Reset drops every live session. Returns the sessions that were cleared.
func (r *SessionRegistry) Reset() []CallSession {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cleared := make([]CallSession, 0, len(r.byCallID))
	for _, session := range r.byCallID {
		cleared = append(cleared, *session)
	}
	r.byCallID = make(map[string]*CallSession)
	r.byHandle = make(map[uuid.UUID]string)
	sort.Slice(cleared, func(i, j int) bool { return cleared[i].CallID < cleared[j].CallID })
	return cleared
}

func (r *SessionRegistry) Len() int {
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byCallID)
}

// List returns the live sessions in deterministic call-id order.
func (r *SessionRegistry) List() []CallSession {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	sessions := make([]CallSession, 0, len(r.byCallID))
	for _, session := range r.byCallID {
		sessions = append(sessions, *session)
	}
	r.mu.RUnlock()
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].CallID < sessions[j].CallID })
	return sessions
}
