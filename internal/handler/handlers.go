package handler

import (
	"github.com/oyugijr/EchoTask/internal/handler/http"
	"github.com/oyugijr/EchoTask/internal/logger"
	"github.com/oyugijr/EchoTask/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if services == nil {
		return nil, errNoServicesProvided
	}

	return &Handlers{
		HTTP: http.NewHandler(services, logger),
	}, nil
}
