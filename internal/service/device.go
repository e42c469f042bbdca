package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/oyugijr/EchoTask/internal/adapter"
	"github.com/oyugijr/EchoTask/internal/logger"
	"github.com/oyugijr/EchoTask/internal/store"
	"github.com/oyugijr/EchoTask/internal/utils"
)

type deviceIdentity struct {
	meta   store.SyncMetadataRepository
	remote adapter.RemoteStore
	uuid   *utils.UUIDGenerator
	logger *logger.Logger
}

// NewDeviceIdentity constructs the identity manager. The device ID and its
// bearer token live in the sync metadata table so they survive restarts.
func NewDeviceIdentity(
	meta store.SyncMetadataRepository,
	remote adapter.RemoteStore,
	logger *logger.Logger,
) DeviceIdentity {
	return &deviceIdentity{
		meta:   meta,
		remote: remote,
		uuid:   utils.NewUUIDGenerator(),
		logger: logger,
	}
}

// EnsureDevice implements DeviceIdentity. The ID is generated exactly once
// per installation; reinstalling produces a new device.
func (d *deviceIdentity) EnsureDevice(ctx context.Context) (string, error) {
	deviceID, err := d.meta.Get(ctx, store.MetaDeviceID)
	if err == nil && deviceID != "" {
		return deviceID, nil
	}
	if err != nil && !errors.Is(err, store.ErrMetadataNotFound) {
		return "", fmt.Errorf("load device id: %w", err)
	}

	deviceID = d.uuid.Generate()
	if err := d.meta.Set(ctx, store.MetaDeviceID, deviceID); err != nil {
		return "", fmt.Errorf("store device id: %w", err)
	}

	logger.FromContext(ctx).Info().
		Str("func", "deviceIdentity.EnsureDevice").
		Str("device_id", deviceID).
		Msg("generated new device identity")

	return deviceID, nil
}

// EnsureToken implements DeviceIdentity. A persisted token is reused as-is;
// the server rejects an expired one with 401 and the caller re-registers.
func (d *deviceIdentity) EnsureToken(ctx context.Context) (string, error) {
	token, err := d.meta.Get(ctx, store.MetaDeviceToken)
	if err == nil && token != "" {
		d.remote.SetToken(token)
		return token, nil
	}
	if err != nil && !errors.Is(err, store.ErrMetadataNotFound) {
		return "", fmt.Errorf("load device token: %w", err)
	}

	return d.register(ctx)
}

func (d *deviceIdentity) register(ctx context.Context) (string, error) {
	deviceID, err := d.EnsureDevice(ctx)
	if err != nil {
		return "", err
	}

	deviceToken, err := d.remote.RegisterDevice(ctx, deviceID)
	if err != nil {
		return "", fmt.Errorf("register device: %w", err)
	}

	if err := d.meta.Set(ctx, store.MetaDeviceToken, deviceToken.Token); err != nil {
		return "", fmt.Errorf("store device token: %w", err)
	}

	logger.FromContext(ctx).Info().
		Str("func", "deviceIdentity.register").
		Str("device_id", deviceID).
		Time("expires_at", deviceToken.ExpiresAt).
		Msg("registered device with remote store")

	return deviceToken.Token, nil
}
