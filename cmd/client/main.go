package main

import (
	"context"
	"fmt"

	"github.com/oyugijr/EchoTask/internal/adapter"
	"github.com/oyugijr/EchoTask/internal/client"
	"github.com/oyugijr/EchoTask/internal/config"
	"github.com/oyugijr/EchoTask/internal/logger"
	"github.com/oyugijr/EchoTask/internal/service"
	"github.com/oyugijr/EchoTask/internal/store"
	"github.com/oyugijr/EchoTask/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("echotask-agent")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	remote, err := adapter.NewHTTPRemoteStore(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create remote adapter")
	}

	localStorage, err := store.NewClientStorages(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}

	identity := service.NewDeviceIdentity(localStorage.SyncMetadataRepository, remote, log)
	deviceID, err := identity.EnsureDevice(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("resolve device identity")
	}

	services := service.NewClientServices(localStorage, remote, deviceID, cfg.Sync.PullPageSize, log)

	app, err := client.NewApp(services, cfg.Sync, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func printBuildInfo() {
	info := models.NewBuildInfo(buildVersion, buildDate, buildCommit)

	fmt.Printf("Build version: %s\n", info.Version())
	fmt.Printf("Build date: %s\n", info.Date())
	fmt.Printf("Build commit: %s\n", info.Commit())
}
