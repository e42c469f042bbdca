package store

import (
	"context"
	"fmt"

	"github.com/oyugijr/EchoTask/internal/config"
	"github.com/oyugijr/EchoTask/internal/logger"
)

// Storages groups the server-side repositories into a single value passed to
// the service layer.
type Storages struct {
	NoteRepository   NoteRepository
	DeviceRepository DeviceRepository
}

// NewStorages connects to PostgreSQL, runs pending migrations and wires up
// the server repositories.
func NewStorages(cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectPostgres(context.Background(), cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		NoteRepository:   NewNoteRepository(db, logger),
		DeviceRepository: NewDeviceRepository(db, logger),
	}, nil
}
