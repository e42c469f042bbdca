package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrSyncAlreadyRunning is returned by RunSync when another pass holds
	// the syncing flag. Callers treat it as "try again later", not a
	// failure.
	ErrSyncAlreadyRunning = errors.New("sync pass already running")

	ErrEmptyDeviceID           = errors.New("empty device id")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
