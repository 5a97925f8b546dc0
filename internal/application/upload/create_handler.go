package upload

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/mutugading/catalog-service/internal/domain/event"
	"github.com/mutugading/catalog-service/internal/domain/shared"
	"github.com/mutugading/catalog-service/internal/domain/upload"
	"github.com/mutugading/catalog-service/internal/infrastructure/audit"
)

// CreateCommand represents the create upload command.
type CreateCommand struct {
	Filename    string
	ContentType string
	Data        []byte
	ActorID     string
	ActorName   string
}

// CreateHandler handles the create upload command.
type CreateHandler struct {
	repo    upload.Repository
	uow     shared.UnitOfWork
	storage shared.ObjectStorage
	auditor audit.Logger
	bus     event.Bus
}

// NewCreateHandler creates a new CreateHandler.
func NewCreateHandler(repo upload.Repository, uow shared.UnitOfWork, storage shared.ObjectStorage, auditor audit.Logger, bus event.Bus) *CreateHandler {
	return &CreateHandler{repo: repo, uow: uow, storage: storage, auditor: auditor, bus: bus}
}

// Handle executes the create upload command: the blob goes to object
// storage first, then the record is written transactionally. If the
// transaction fails, the freshly-stored blob is deleted again.
func (h *CreateHandler) Handle(ctx context.Context, cmd CreateCommand) (*UploadDTO, error) {
	key := h.storage.BuildKey(folder, cmd.Filename)

	u, err := upload.New(cmd.Filename, key, cmd.ContentType, int64(len(cmd.Data)))
	if err != nil {
		return nil, err
	}

	if err := h.storage.Upload(ctx, key, cmd.Data, cmd.ContentType); err != nil {
		return nil, err
	}

	err = h.uow.Do(ctx, func(ctx context.Context) error {
		if err := h.repo.Create(ctx, u); err != nil {
			return err
		}
		return h.auditor.LogCreate(ctx, "upload", u.ID(), u.Snapshot(), cmd.ActorID, cmd.ActorName)
	})
	if err != nil {
		if delErr := h.storage.Delete(ctx, key); delErr != nil {
			log.Warn().Err(delErr).Str("key", key).Msg("failed to delete object storage key")
		}
		return nil, err
	}

	h.bus.Publish(ctx, event.NewMessage(event.Source, "upload", event.MethodCreate, u.ID(), nil))
	return toDTO(u, h.storage), nil
}
