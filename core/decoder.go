package core

import (
	"fmt"
	"strings"
	"sync"

	goerrors "github.com/goliatone/go-errors"
)

// PayloadDecoder maps a raw push payload onto a CallInvite using the three
// application-configurable field names. Key replacement is concurrency-safe:
// push delivery and SetKeys can race.
type PayloadDecoder struct {
	mu   sync.RWMutex
	keys PayloadKeysConfig
}

func NewPayloadDecoder(keys PayloadKeysConfig) *PayloadDecoder {
	return &PayloadDecoder{keys: keys.Normalize()}
}

func (d *PayloadDecoder) SetKeys(keys PayloadKeysConfig) {
	if d == nil {
		return
	}
	normalized := keys.Normalize()
	d.mu.Lock()
	d.keys = normalized
	d.mu.Unlock()
}

func (d *PayloadDecoder) Keys() PayloadKeysConfig {
	if d == nil {
		return PayloadKeysConfig{}.Normalize()
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.keys
}

// Decode builds a CallInvite from payload using the decoder's current keys.
func (d *PayloadDecoder) Decode(payload map[string]any) (CallInvite, error) {
	return d.DecodeWithKeys(payload, d.Keys())
}

// DecodeWithKeys builds a CallInvite using caller-supplied keys, without
// touching the decoder's configured set. Used when the application re-decodes
// the cached payload with updated key names.
func (d *PayloadDecoder) DecodeWithKeys(payload map[string]any, keys PayloadKeysConfig) (CallInvite, error) {
	keys = keys.Normalize()
	if len(payload) == 0 {
		return CallInvite{}, goerrors.New("core: push payload is empty", goerrors.CategoryBadInput).
			WithTextCode(CallKitErrorBadPayload)
	}

	callerName, ok := stringField(payload, keys.NameKey)
	if !ok {
		return CallInvite{}, missingPayloadField(keys.NameKey)
	}
	callID, ok := stringField(payload, keys.IDKey)
	if !ok {
		return CallInvite{}, missingPayloadField(keys.IDKey)
	}
	callType, ok := stringField(payload, keys.TypeKey)
	if !ok {
		return CallInvite{}, missingPayloadField(keys.TypeKey)
	}

	return CallInvite{
		CallID:     callID,
		CallerName: callerName,
		CallType:   ParseCallType(callType),
		RawPayload: cloneAnyMap(payload),
	}, nil
}

// CallAction extracts the fixed callAction field. Returns "" when absent.
func CallAction(payload map[string]any) string {
	action, _ := stringField(payload, CallActionKey)
	return NormalizeCallAction(action)
}

func stringField(payload map[string]any, key string) (string, bool) {
	raw, ok := payload[key]
	if !ok {
		return "", false
	}
	value, ok := raw.(string)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	return value, true
}

func missingPayloadField(key string) error {
	return goerrors.New(
		fmt.Sprintf("core: push payload is missing required field %q", key),
		goerrors.CategoryBadInput,
	).WithTextCode(CallKitErrorBadPayload)
}
