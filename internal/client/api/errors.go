package api

import "fmt"

// DecodeError reports a response body that matches none of the accepted
// envelope shapes (a bare JSON value or {"data": value}). Decoding fails
// loudly instead of silently defaulting to an empty value, so backend
// drift surfaces immediately.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: undecodable response: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
