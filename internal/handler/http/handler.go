// Package http implements the HTTP transport layer of the sync server.
// It provides middleware, route handlers, and the websocket change feed
// for the REST API. Authentication, logging and tracing concerns are all
// handled at this layer before requests are forwarded to the service layer.
package http

import (
	"github.com/oyugijr/EchoTask/internal/logger"
	"github.com/oyugijr/EchoTask/internal/service"
)

type Handler struct {
	services *service.Services

	// hub fans pushed note revisions out to every subscribed device.
	hub *hub

	logger *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		hub:      newHub(logger),
		logger:   logger,
	}
}
