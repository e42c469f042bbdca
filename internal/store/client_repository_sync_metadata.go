package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/oyugijr/EchoTask/internal/logger"
)

type syncMetadataRepository struct {
	*DB
	logger *logger.Logger
}

func NewSyncMetadataRepository(db *DB, logger *logger.Logger) SyncMetadataRepository {
	return &syncMetadataRepository{
		DB:     db,
		logger: logger,
	}
}

func (s *syncMetadataRepository) Get(ctx context.Context, key string) (string, error) {
	log := logger.FromContext(ctx)

	var value string
	err := s.DB.QueryRowContext(ctx, getMetadataValue, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrMetadataNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "syncMetadataRepository.Get").
			Str("key", key).
			Msg("failed to read sync metadata")
		return "", fmt.Errorf("failed to read sync metadata (key=%s): %w", key, err)
	}

	return value, nil
}

func (s *syncMetadataRepository) Set(ctx context.Context, key, value string) error {
	log := logger.FromContext(ctx)

	if _, err := s.DB.ExecContext(ctx, setMetadataValue, key, value); err != nil {
		log.Err(err).
			Str("func", "syncMetadataRepository.Set").
			Str("key", key).
			Msg("failed to write sync metadata")
		return fmt.Errorf("failed to write sync metadata (key=%s): %w", key, err)
	}

	return nil
}
