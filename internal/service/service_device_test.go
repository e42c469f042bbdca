// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"testing"
	"time"

	"github.com/oyugijr/EchoTask/internal/config"
	"github.com/oyugijr/EchoTask/internal/logger"
	"github.com/oyugijr/EchoTask/internal/mock"
	"github.com/oyugijr/EchoTask/internal/store"
	"github.com/oyugijr/EchoTask/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var deviceSvcCfg = config.App{
	TokenSignKey:  "test-sign-key",
	TokenIssuer:   "echotask-test",
	TokenDuration: time.Hour,
}

func newTestDeviceSvc(t *testing.T, ctrl *gomock.Controller) (*deviceService, *mock.MockDeviceRepository) {
	t.Helper()

	repo := mock.NewMockDeviceRepository(ctrl)
	svc := NewDeviceService(repo, deviceSvcCfg, logger.Nop()).(*deviceService)
	svc.now = func() time.Time { return serverNow }

	return svc, repo
}

// ── Register ─────────────────────────────────────────────────────────────────

func TestDeviceService_Register_NewDevice(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo := newTestDeviceSvc(t, ctrl)
	ctx := context.Background()

	repo.EXPECT().RegisterDevice(ctx, "device-a", serverNow).
		Return(models.Device{ID: "device-a", RegisteredAt: serverNow}, nil)

	got, err := svc.Register(ctx, "device-a")
	require.NoError(t, err)
	assert.NotEmpty(t, got.Token)
	assert.True(t, got.ExpiresAt.After(serverNow))
}

func TestDeviceService_Register_KnownDeviceGetsFreshToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo := newTestDeviceSvc(t, ctrl)
	ctx := context.Background()

	repo.EXPECT().RegisterDevice(ctx, "device-a", serverNow).
		Return(models.Device{}, store.ErrDeviceAlreadyRegistered)
	repo.EXPECT().TouchDevice(ctx, "device-a", serverNow).Return(nil)

	got, err := svc.Register(ctx, "device-a")
	require.NoError(t, err)
	assert.NotEmpty(t, got.Token)
}

func TestDeviceService_Register_EmptyDeviceID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestDeviceSvc(t, ctrl)

	_, err := svc.Register(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyDeviceID)
}

func TestDeviceService_Register_RepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo := newTestDeviceSvc(t, ctrl)
	ctx := context.Background()

	repo.EXPECT().RegisterDevice(ctx, "device-a", serverNow).
		Return(models.Device{}, assert.AnError)

	_, err := svc.Register(ctx, "device-a")
	assert.ErrorIs(t, err, assert.AnError)
}

// ── ParseToken ───────────────────────────────────────────────────────────────

func TestDeviceService_ParseToken_RoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo := newTestDeviceSvc(t, ctrl)
	ctx := context.Background()

	repo.EXPECT().RegisterDevice(ctx, "device-a", serverNow).
		Return(models.Device{ID: "device-a"}, nil)

	issued, err := svc.Register(ctx, "device-a")
	require.NoError(t, err)

	token, err := svc.ParseToken(ctx, issued.Token)
	require.NoError(t, err)
	assert.Equal(t, "device-a", token.DeviceID)
}

func TestDeviceService_ParseToken_Garbage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestDeviceSvc(t, ctrl)

	_, err := svc.ParseToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestDeviceService_ParseToken_WrongIssuer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo := newTestDeviceSvc(t, ctrl)
	ctx := context.Background()

	repo.EXPECT().RegisterDevice(ctx, "device-a", serverNow).
		Return(models.Device{ID: "device-a"}, nil)

	issued, err := svc.Register(ctx, "device-a")
	require.NoError(t, err)

	otherCfg := deviceSvcCfg
	otherCfg.TokenIssuer = "someone-else"
	other := NewDeviceService(mock.NewMockDeviceRepository(ctrl), otherCfg, logger.Nop())

	_, err = other.ParseToken(ctx, issued.Token)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

// ── Touch ────────────────────────────────────────────────────────────────────

func TestDeviceService_Touch_SwallowsErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo := newTestDeviceSvc(t, ctrl)
	ctx := context.Background()

	repo.EXPECT().TouchDevice(ctx, "device-a", serverNow).Return(assert.AnError)

	assert.NotPanics(t, func() { svc.Touch(ctx, "device-a") })
}

func TestDeviceService_Touch_EmptyIDIsNoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestDeviceSvc(t, ctrl)

	svc.Touch(context.Background(), "")
}
