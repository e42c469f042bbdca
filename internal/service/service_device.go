package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oyugijr/EchoTask/internal/config"
	"github.com/oyugijr/EchoTask/internal/logger"
	"github.com/oyugijr/EchoTask/internal/store"
	"github.com/oyugijr/EchoTask/internal/utils"
	"github.com/oyugijr/EchoTask/models"
)

// deviceService is the concrete implementation of DeviceService. It handles
// device enrollment and the JWT token lifecycle using a DeviceRepository for
// persistence.
type deviceService struct {
	deviceRepository store.DeviceRepository

	// tokenSignKey is the HMAC secret used to sign and verify device tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued token. Tokens
	// whose issuer does not match are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued token remains valid.
	tokenDuration time.Duration

	now    func() time.Time
	logger *logger.Logger
}

// NewDeviceService constructs a DeviceService wired to the given repository
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewDeviceService(deviceRepository store.DeviceRepository, cfg config.App, logger *logger.Logger) DeviceService {
	return &deviceService{
		deviceRepository: deviceRepository,
		tokenSignKey:     cfg.TokenSignKey,
		tokenIssuer:      cfg.TokenIssuer,
		tokenDuration:    cfg.TokenDuration,
		now:              time.Now,
		logger:           logger,
	}
}

// Register implements DeviceService. Enrollment is idempotent: a device that
// lost its token re-registers with the same ID and receives a fresh one.
func (s *deviceService) Register(ctx context.Context, deviceID string) (models.DeviceToken, error) {
	log := logger.FromContext(ctx)

	if deviceID == "" {
		log.Error().Msg("device registration without device id")
		return models.DeviceToken{}, ErrEmptyDeviceID
	}

	now := s.now()

	_, err := s.deviceRepository.RegisterDevice(ctx, deviceID, now)
	switch {
	case err == nil:
		log.Info().Str("device_id", deviceID).Msg("registered new device")

	case errors.Is(err, store.ErrDeviceAlreadyRegistered):
		if touchErr := s.deviceRepository.TouchDevice(ctx, deviceID, now); touchErr != nil {
			log.Warn().
				Err(touchErr).
				Str("device_id", deviceID).
				Msg("failed to touch re-registering device")
		}

	default:
		log.Err(err).Str("device_id", deviceID).Msg("device registration failed")
		return models.DeviceToken{}, fmt.Errorf("device registration failed: %w", err)
	}

	token, err := utils.GenerateJWTToken(s.tokenIssuer, deviceID, s.tokenDuration, s.tokenSignKey)
	if err != nil {
		return models.DeviceToken{}, fmt.Errorf("token creation failed: %w", err)
	}

	return models.DeviceToken{
		Token:     token.SignedString,
		ExpiresAt: token.ExpiresAt.Time,
	}, nil
}

// ParseToken implements DeviceService. Any validation failure (expired,
// wrong issuer, malformed) is normalised to ErrTokenIsExpiredOrInvalid so
// callers do not inspect low-level JWT errors.
func (s *deviceService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, s.tokenSignKey, s.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// Touch implements DeviceService. Failures are logged, not surfaced: the
// last-seen stamp is advisory and must never fail a data request.
func (s *deviceService) Touch(ctx context.Context, deviceID string) {
	if deviceID == "" {
		return
	}

	if err := s.deviceRepository.TouchDevice(ctx, deviceID, s.now()); err != nil {
		logger.FromContext(ctx).Warn().
			Err(err).
			Str("device_id", deviceID).
			Msg("failed to update device last-seen stamp")
	}
}
