package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/oyugijr/EchoTask/internal/logger"
	"github.com/oyugijr/EchoTask/models"
)

// deviceRepository is the PostgreSQL-backed implementation of
// [DeviceRepository]. It handles device registration and lookup against the
// "devices" table.
type deviceRepository struct {
	*DB
	logger  *logger.Logger
	builder sq.StatementBuilderType
}

// NewDeviceRepository constructs a [DeviceRepository] backed by the provided
// database connection and logger.
func NewDeviceRepository(db *DB, logger *logger.Logger) DeviceRepository {
	logger.Debug().Msg("creating device repository")
	return &deviceRepository{
		DB:      db,
		logger:  logger,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// RegisterDevice persists a new device record.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrDeviceAlreadyRegistered].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *deviceRepository) RegisterDevice(ctx context.Context, deviceID string, registeredAt time.Time) (models.Device, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Insert("devices").
		Columns("id", "registered_at", "last_seen_at").
		Values(deviceID, registeredAt, registeredAt).
		ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "deviceRepository.RegisterDevice").
			Str("device_id", deviceID).
			Msg("failed to build insert query")
		return models.Device{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "deviceRepository.RegisterDevice").
			Str("device_id", deviceID).
			Msg("failed to execute insert for device")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Device{}, ErrDeviceAlreadyRegistered
		default:
			return models.Device{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return models.Device{ID: deviceID, RegisteredAt: registeredAt, LastSeenAt: registeredAt}, nil
}

// GetDevice returns the device record or [ErrDeviceNotFound].
func (r *deviceRepository) GetDevice(ctx context.Context, deviceID string) (models.Device, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Select("id", "registered_at", "last_seen_at").
		From("devices").
		Where(sq.Eq{"id": deviceID}).
		ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "deviceRepository.GetDevice").
			Str("device_id", deviceID).
			Msg("failed to build select query")
		return models.Device{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var device models.Device
	err = r.DB.QueryRowContext(ctx, query, args...).Scan(&device.ID, &device.RegisteredAt, &device.LastSeenAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Device{}, ErrDeviceNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "deviceRepository.GetDevice").
			Str("device_id", deviceID).
			Msg("failed to scan device row")
		return models.Device{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return device, nil
}

// TouchDevice updates the device's last-seen stamp. Missing devices map to
// [ErrDeviceNotFound].
func (r *deviceRepository) TouchDevice(ctx context.Context, deviceID string, seenAt time.Time) error {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Update("devices").
		Set("last_seen_at", seenAt).
		Where(sq.Eq{"id": deviceID}).
		ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "deviceRepository.TouchDevice").
			Str("device_id", deviceID).
			Msg("failed to build update query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "deviceRepository.TouchDevice").
			Str("device_id", deviceID).
			Msg("failed to execute update for device")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected (device_id=%s): %w", deviceID, err)
	}
	if rowsAffected == 0 {
		return ErrDeviceNotFound
	}

	return nil
}
