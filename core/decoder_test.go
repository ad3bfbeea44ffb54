package core

import (
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

func TestPayloadDecoder_DecodeWithDefaultKeys(t *testing.T) {
	decoder := NewPayloadDecoder(PayloadKeysConfig{})

	invite, err := decoder.Decode(map[string]any{
		"receiverName": "Ada",
		"sessionId":    "call-1",
		"callType":     "video",
		"extra":        "kept",
	})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if invite.CallID != "call-1" {
		t.Fatalf("expected call-1, got %q", invite.CallID)
	}
	if invite.CallerName != "Ada" {
		t.Fatalf("expected Ada, got %q", invite.CallerName)
	}
	if !invite.CallType.HasVideo() {
		t.Fatalf("expected video call type")
	}
	if invite.RawPayload["extra"] != "kept" {
		t.Fatalf("expected raw payload to be retained")
	}
}

func TestPayloadDecoder_CustomKeys(t *testing.T) {
	decoder := NewPayloadDecoder(PayloadKeysConfig{
		NameKey: "from",
		IDKey:   "roomId",
		TypeKey: "mediaKind",
	})

	invite, err := decoder.Decode(map[string]any{
		"from":      "Grace",
		"roomId":    "room-7",
		"mediaKind": "audio",
	})
	if err != nil {
		t.Fatalf("decode with custom keys: %v", err)
	}
	if invite.CallID != "room-7" || invite.CallerName != "Grace" {
		t.Fatalf("unexpected invite: %+v", invite)
	}
	if invite.CallType != CallTypeAudio {
		t.Fatalf("expected audio, got %q", invite.CallType)
	}
}

func TestPayloadDecoder_MissingFieldIsBadInput(t *testing.T) {
	decoder := NewPayloadDecoder(PayloadKeysConfig{})

	_, err := decoder.Decode(map[string]any{
		"receiverName": "Ada",
		"callType":     "audio",
	})
	if err == nil {
		t.Fatalf("expected missing session id to fail")
	}
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		t.Fatalf("expected rich error, got %T", err)
	}
	if richErr.Category != goerrors.CategoryBadInput {
		t.Fatalf("expected bad input category, got %v", richErr.Category)
	}
	if richErr.TextCode != CallKitErrorBadPayload {
		t.Fatalf("expected %q text code, got %q", CallKitErrorBadPayload, richErr.TextCode)
	}
}

func TestPayloadDecoder_EmptyPayloadFails(t *testing.T) {
	decoder := NewPayloadDecoder(PayloadKeysConfig{})
	if _, err := decoder.Decode(nil); err == nil {
		t.Fatalf("expected empty payload to fail")
	}
}

func TestPayloadDecoder_DecodeWithKeysDoesNotMutateConfigured(t *testing.T) {
	decoder := NewPayloadDecoder(PayloadKeysConfig{})

	_, err := decoder.DecodeWithKeys(map[string]any{
		"from":   "Ada",
		"roomId": "call-1",
		"kind":   "audio",
	}, PayloadKeysConfig{NameKey: "from", IDKey: "roomId", TypeKey: "kind"})
	if err != nil {
		t.Fatalf("decode with override keys: %v", err)
	}

	if keys := decoder.Keys(); keys.IDKey != DefaultIDKey {
		t.Fatalf("expected configured keys untouched, got %q", keys.IDKey)
	}
}

func TestPayloadDecoder_NonStringAndBlankFieldsAreMissing(t *testing.T) {
	decoder := NewPayloadDecoder(PayloadKeysConfig{})
	if _, err := decoder.Decode(map[string]any{
		"receiverName": 42,
		"sessionId":    "call-1",
		"callType":     "audio",
	}); err == nil {
		t.Fatalf("expected non-string caller name to fail")
	}
	if _, err := decoder.Decode(map[string]any{
		"receiverName": "Ada",
		"sessionId":    "   ",
		"callType":     "audio",
	}); err == nil {
		t.Fatalf("expected blank session id to fail")
	}
}

func TestCallAction_ExtractsFixedKey(t *testing.T) {
	if action := CallAction(map[string]any{"callAction": " Initiated "}); action != ActionInitiated {
		t.Fatalf("expected normalized initiated, got %q", action)
	}
	if action := CallAction(map[string]any{}); action != "" {
		t.Fatalf("expected empty action for absent key, got %q", action)
	}
}
