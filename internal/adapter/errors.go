package adapter

import "errors"

// Sentinel errors mapped from HTTP status codes by mapHTTPError, plus
// transport-level conditions surfaced by the circuit breaker.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("internal server error")

	// ErrRemoteUnavailable is returned while the circuit breaker is open:
	// requests are rejected locally without touching the network.
	ErrRemoteUnavailable = errors.New("remote store unavailable")
)
