package api

import (
	"bytes"
	"encoding/json"
	"errors"
)

// decode unmarshals a response body into out. Exactly two envelope shapes
// are accepted: the bare value, or the value wrapped as {"data": value}.
// Anything else is a DecodeError.
func decode[T any](op string, body []byte, out *T) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return &DecodeError{Op: op, Err: errors.New("empty body")}
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return &DecodeError{Op: op, Err: err}
		}
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &DecodeError{Op: op, Err: err}
	}
	return nil
}
