package service

import (
	"github.com/oyugijr/EchoTask/internal/config"
	"github.com/oyugijr/EchoTask/internal/logger"
	"github.com/oyugijr/EchoTask/internal/store"
)

type Services struct {
	NoteService    NoteService
	DeviceService  DeviceService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, cfg config.ServerConfig, logger *logger.Logger) (*Services, error) {
	appInfoSvc, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		NoteService:    NewNoteService(storages.NoteRepository, logger),
		DeviceService:  NewDeviceService(storages.DeviceRepository, cfg.App, logger),
		AppInfoService: appInfoSvc,
	}, nil
}
