package core

import "sync"

// EventBridge carries events from the coordinator back to the application
// layer over two independent channels: call-UI actions and banner taps. Each
// channel holds at most one listener; registering replaces the previous one,
// and emitting with no listener drops the event. Delivery is best-effort and
// unbuffered.
type EventBridge struct {
	mu           sync.RWMutex
	callListener CallEventListener
	tapListener  TapListener
}

func NewEventBridge() *EventBridge {
	return &EventBridge{}
}

// SetCallListener installs the call-action listener. A nil listener clears
// the slot.
func (b *EventBridge) SetCallListener(listener CallEventListener) {
	if b == nil {
		return
	}
	b.mu.Lock()
	b.callListener = listener
	b.mu.Unlock()
}

// SetTapListener installs the notification-tap listener. A nil listener
// clears the slot.
func (b *EventBridge) SetTapListener(listener TapListener) {
	if b == nil {
		return
	}
	b.mu.Lock()
	b.tapListener = listener
	b.mu.Unlock()
}

// EmitCallEvent delivers event to the call-action listener. Reports whether a
// listener was present.
func (b *EventBridge) EmitCallEvent(event CallEvent) bool {
	if b == nil {
		return false
	}
	b.mu.RLock()
	listener := b.callListener
	b.mu.RUnlock()
	if listener == nil {
		return false
	}
	event.Payload = cloneAnyMap(event.Payload)
	listener(event)
	return true
}

// EmitTap delivers a banner's data map to the notification-tap listener.
// Reports whether a listener was present.
func (b *EventBridge) EmitTap(data map[string]any) bool {
	if b == nil {
		return false
	}
	b.mu.RLock()
	listener := b.tapListener
	b.mu.RUnlock()
	if listener == nil {
		return false
	}
	listener(cloneAnyMap(data))
	return true
}
