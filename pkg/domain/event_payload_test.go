package domain

import (
	"encoding/json"
	"testing"
)

func TestEventPayloadFromValue(t *testing.T) {
	note := Note{ID: "n1", Text: "careful", Category: "warning"}
	payload, err := NewEventPayloadFromValue(note)
	if err != nil {
		t.Fatalf("from value: %v", err)
	}
	if !payload.Defined() || payload.IsEmpty() {
		t.Fatalf("payload must be defined and non-empty")
	}
	var decoded Note
	if err := json.Unmarshal(payload.Raw(), &decoded); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if decoded != note {
		t.Fatalf("round trip mismatch: %+v", decoded)
	}
}

func TestEventPayloadRawIsDetached(t *testing.T) {
	payload := NewEventPayload(json.RawMessage(`{"id":"x"}`))
	raw := payload.Raw()
	raw[0] = '!'
	if string(payload.Raw()) != `{"id":"x"}` {
		t.Fatalf("mutating the returned bytes must not corrupt the payload")
	}
}

func TestUndefinedEventPayload(t *testing.T) {
	payload := UndefinedEventPayload()
	if payload.Defined() || !payload.IsEmpty() || payload.Raw() != nil {
		t.Fatalf("undefined payload must be empty: defined=%v", payload.Defined())
	}
}

func TestNewEventPayloadNilIsDefinedButEmpty(t *testing.T) {
	payload := NewEventPayload(nil)
	if !payload.Defined() || !payload.IsEmpty() {
		t.Fatalf("nil raw must yield a defined empty payload")
	}
}
