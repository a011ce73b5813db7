package domain

import "encoding/json"

// EventPayload wraps a JSON snapshot of the record handed to the event
// recorder. Callers should unmarshal the raw bytes into typed structures as
// needed.
type EventPayload struct {
	defined bool
	raw     json.RawMessage
}

// NewEventPayload builds a payload wrapper from raw JSON. The bytes are cloned
// to prevent callers from mutating shared state. Passing a nil slice yields a
// defined but empty payload; use UndefinedEventPayload for "not set".
func NewEventPayload(raw json.RawMessage) EventPayload {
	payload := EventPayload{defined: true}
	if raw != nil {
		payload.raw = cloneRawMessage(raw)
	}
	return payload
}

// NewEventPayloadFromValue marshals a typed record into an EventPayload.
func NewEventPayloadFromValue[T any](value T) (EventPayload, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return EventPayload{}, err
	}
	return NewEventPayload(raw), nil
}

// UndefinedEventPayload returns an uninitialized payload wrapper.
func UndefinedEventPayload() EventPayload {
	return EventPayload{}
}

// Defined reports whether the payload has been initialized.
func (p EventPayload) Defined() bool {
	return p.defined
}

// IsEmpty reports whether the payload contains no bytes.
func (p EventPayload) IsEmpty() bool {
	if !p.defined {
		return true
	}
	return len(p.raw) == 0
}

// Raw returns a cloned copy of the underlying JSON bytes. Nil is returned when
// the payload is undefined or empty.
func (p EventPayload) Raw() json.RawMessage {
	if !p.defined || len(p.raw) == 0 {
		return nil
	}
	return cloneRawMessage(p.raw)
}

func cloneRawMessage(raw json.RawMessage) json.RawMessage {
	if raw == nil {
		return nil
	}
	cloned := make(json.RawMessage, len(raw))
	copy(cloned, raw)
	return cloned
}
