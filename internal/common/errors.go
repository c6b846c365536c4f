// Package common contains shared constants and sentinel errors used across
// Evently client components.
package common

import "errors"

var (
	// ErrAuthRequired is returned locally, before any network activity, when
	// an operation needs a stored credential and none is present.
	ErrAuthRequired = errors.New("authentication required")

	// ErrUnauthorized maps a server 401: the credential is expired or
	// invalid. Only the session controller reacts to it; the stored
	// credential itself is cleared exclusively by an explicit logout.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden maps a server 403: authenticated but not permitted.
	ErrForbidden = errors.New("forbidden")

	ErrNotFound = errors.New("not found")

	// ErrValidation marks client-detected bad input. It never reaches the
	// network layer.
	ErrValidation = errors.New("validation error")

	// ErrNoConnection means the request never produced a server response.
	ErrNoConnection = errors.New("server unreachable")

	ErrServer = errors.New("server error")
)
