package core

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestSessionRegistry_CreateRejectsDuplicateCallID(t *testing.T) {
	registry := NewSessionRegistry()
	now := time.Now().UTC()

	session, created := registry.Create("call-1", uuid.New(), now)
	if !created {
		t.Fatalf("expected first create to succeed")
	}
	if session.State != CallStateRinging {
		t.Fatalf("expected new session to be ringing, got %q", session.State)
	}

	if _, created := registry.Create("call-1", uuid.New(), now); created {
		t.Fatalf("expected duplicate create to be rejected")
	}
	if registry.Len() != 1 {
		t.Fatalf("expected one live session, got %d", registry.Len())
	}
}

func TestSessionRegistry_ResolveHandle(t *testing.T) {
	registry := NewSessionRegistry()
	handle := uuid.New()
	registry.Create("call-1", handle, time.Now().UTC())

	session, ok := registry.ResolveHandle(handle)
	if !ok {
		t.Fatalf("expected handle to resolve")
	}
	if session.CallID != "call-1" {
		t.Fatalf("expected call-1, got %q", session.CallID)
	}

	if _, ok := registry.ResolveHandle(uuid.New()); ok {
		t.Fatalf("expected unknown handle to resolve to nothing")
	}
}

func TestSessionRegistry_MarkActiveOnlyFromRinging(t *testing.T) {
	registry := NewSessionRegistry()
	registry.Create("call-1", uuid.New(), time.Now().UTC())

	session, ok := registry.MarkActive("call-1")
	if !ok {
		t.Fatalf("expected ringing session to transition")
	}
	if session.State != CallStateActive {
		t.Fatalf("expected active state, got %q", session.State)
	}

	if _, ok := registry.MarkActive("call-1"); ok {
		t.Fatalf("expected second transition to be rejected")
	}
	if _, ok := registry.MarkActive("missing"); ok {
		t.Fatalf("expected unknown session transition to be rejected")
	}
}

func TestSessionRegistry_RemoveReturnsEndedCopyAndFreesHandle(t *testing.T) {
	registry := NewSessionRegistry()
	handle := uuid.New()
	registry.Create("call-1", handle, time.Now().UTC())

	session, ok := registry.Remove("call-1")
	if !ok {
		t.Fatalf("expected remove to find the session")
	}
	if session.State != CallStateEnded {
		t.Fatalf("expected ended state, got %q", session.State)
	}
	if _, ok := registry.ResolveHandle(handle); ok {
		t.Fatalf("expected handle mapping to be removed")
	}
	if _, ok := registry.Remove("call-1"); ok {
		t.Fatalf("expected second remove to be a no-op")
	}
}

func TestSessionRegistry_ResetClearsEverything(t *testing.T) {
	registry := NewSessionRegistry()
	now := time.Now().UTC()
	registry.Create("call-b", uuid.New(), now)
	registry.Create("call-a", uuid.New(), now)

	cleared := registry.Reset()
	if len(cleared) != 2 {
		t.Fatalf("expected two cleared sessions, got %d", len(cleared))
	}
	if cleared[0].CallID != "call-a" || cleared[1].CallID != "call-b" {
		t.Fatalf("expected deterministic call-id order, got %q then %q", cleared[0].CallID, cleared[1].CallID)
	}
	if registry.Len() != 0 {
		t.Fatalf("expected empty registry after reset, got %d", registry.Len())
	}
}

func TestSessionRegistry_ListIsSortedAndCopied(t *testing.T) {
	registry := NewSessionRegistry()
	now := time.Now().UTC()
	registry.Create("call-2", uuid.New(), now)
	registry.Create("call-1", uuid.New(), now)

	sessions := registry.List()
	if len(sessions) != 2 {
		t.Fatalf("expected two sessions, got %d", len(sessions))
	}
	if sessions[0].CallID != "call-1" {
		t.Fatalf("expected call-1 first, got %q", sessions[0].CallID)
	}

	sessions[0].State = CallStateEnded
	if stored, _ := registry.Get("call-1"); stored.State != CallStateRinging {
		t.Fatalf("expected stored session to be unaffected by caller mutation")
	}
}
