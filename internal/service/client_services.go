package service

import (
	"github.com/oyugijr/EchoTask/internal/adapter"
	"github.com/oyugijr/EchoTask/internal/logger"
	"github.com/oyugijr/EchoTask/internal/store"
)

// ClientServices bundles every client-side service behind one constructor so
// the application wires a single value.
type ClientServices struct {
	NoteService ClientNoteService
	Resolver    ConflictResolver
	Engine      SyncEngine
	Status      StatusService
	SyncJob     ClientSyncJob
	Listener    RealtimeListener
	Identity    DeviceIdentity
}

// NewClientServices wires the client service graph on top of the local
// storages and the remote adapter. deviceID is the persisted per-device
// identifier; the caller resolves it via DeviceIdentity before wiring so the
// mutation path can stamp it on every write.
func NewClientServices(
	storages *store.ClientStorages,
	remote adapter.RemoteStore,
	deviceID string,
	pullPageSize int,
	logger *logger.Logger,
) *ClientServices {
	resolver := NewConflictResolver()
	status := NewStatusService(storages.NoteRepository, logger)
	engine := NewSyncEngine(storages.NoteRepository, storages.SyncMetadataRepository, remote, resolver, status, pullPageSize, logger)
	syncJob := NewClientSyncJob(engine, logger)
	listener := NewRealtimeListener(remote, engine, status, logger)
	identity := NewDeviceIdentity(storages.SyncMetadataRepository, remote, logger)
	noteSvc := NewClientNoteService(storages.NoteRepository, deviceID, syncJob.Trigger, logger)

	return &ClientServices{
		NoteService: noteSvc,
		Resolver:    resolver,
		Engine:      engine,
		Status:      status,
		SyncJob:     syncJob,
		Listener:    listener,
		Identity:    identity,
	}
}
