package models

import "time"

// DeviceRegistration is the request body for registering a device with the
// remote store. DeviceID is the stable per-device UUID generated by the
// client on first run.
type DeviceRegistration struct {
	DeviceID string `json:"device_id"`
}

// DeviceToken is the server's answer to a device registration: a signed
// bearer token the device presents on every subsequent request.
type DeviceToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Device is a registered device record as persisted by the server.
type Device struct {
	ID           string    `json:"id"`
	RegisteredAt time.Time `json:"registered_at"`
	LastSeenAt   time.Time `json:"last_seen_at"`
}
