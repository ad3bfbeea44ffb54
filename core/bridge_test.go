package core

import "testing"

func TestEventBridge_DropsWithoutListener(t *testing.T) {
	bridge := NewEventBridge()

	if delivered := bridge.EmitCallEvent(CallEvent{Action: CallEventAccept, CallID: "call-1"}); delivered {
		t.Fatalf("expected emit without listener to report drop")
	}
	if delivered := bridge.EmitTap(map[string]any{"k": "v"}); delivered {
		t.Fatalf("expected tap emit without listener to report drop")
	}
}

func TestEventBridge_ReplaceOnRegister(t *testing.T) {
	bridge := NewEventBridge()

	var first, second int
	bridge.SetCallListener(func(CallEvent) { first++ })
	bridge.SetCallListener(func(CallEvent) { second++ })

	if !bridge.EmitCallEvent(CallEvent{Action: CallEventAccept, CallID: "call-1"}) {
		t.Fatalf("expected delivery to registered listener")
	}
	if first != 0 {
		t.Fatalf("expected replaced listener to receive nothing, got %d", first)
	}
	if second != 1 {
		t.Fatalf("expected current listener to receive one event, got %d", second)
	}
}

func TestEventBridge_NilListenerClearsSlot(t *testing.T) {
	bridge := NewEventBridge()
	bridge.SetTapListener(func(map[string]any) { t.Fatalf("cleared listener must not fire") })
	bridge.SetTapListener(nil)

	if bridge.EmitTap(map[string]any{"k": "v"}) {
		t.Fatalf("expected cleared slot to drop the event")
	}
}

func TestEventBridge_PayloadIsCopied(t *testing.T) {
	bridge := NewEventBridge()

	var received map[string]any
	bridge.SetCallListener(func(event CallEvent) { received = event.Payload })

	original := map[string]any{"sessionId": "call-1"}
	bridge.EmitCallEvent(CallEvent{Action: CallEventAccept, CallID: "call-1", Payload: original})

	received["sessionId"] = "mutated"
	if original["sessionId"] != "call-1" {
		t.Fatalf("expected emitted payload to be a copy")
	}
}
