package upload

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/mutugading/catalog-service/internal/domain/event"
	"github.com/mutugading/catalog-service/internal/domain/shared"
	"github.com/mutugading/catalog-service/internal/domain/upload"
	"github.com/mutugading/catalog-service/internal/infrastructure/audit"
)

// DeleteCommand represents the delete upload command.
type DeleteCommand struct {
	ID        int64
	ActorID   string
	ActorName string
}

// DeleteHandler handles the delete upload command.
type DeleteHandler struct {
	repo    upload.Repository
	uow     shared.UnitOfWork
	storage shared.ObjectStorage
	auditor audit.Logger
	bus     event.Bus
}

// NewDeleteHandler creates a new DeleteHandler.
func NewDeleteHandler(repo upload.Repository, uow shared.UnitOfWork, storage shared.ObjectStorage, auditor audit.Logger, bus event.Bus) *DeleteHandler {
	return &DeleteHandler{repo: repo, uow: uow, storage: storage, auditor: auditor, bus: bus}
}

// Handle executes the delete upload command. The row is removed first —
// an upload still referenced by a catalog image fails with ErrInUse and
// keeps its blob. Blob deletion runs only after the commit.
func (h *DeleteHandler) Handle(ctx context.Context, cmd DeleteCommand) error {
	var key string
	err := h.uow.Do(ctx, func(ctx context.Context) error {
		u, err := h.repo.GetByID(ctx, cmd.ID)
		if err != nil {
			return err
		}
		key = u.Key()

		if err := h.repo.Delete(ctx, u.ID()); err != nil {
			return err
		}
		return h.auditor.LogDelete(ctx, "upload", u.ID(), u.Snapshot(), cmd.ActorID, cmd.ActorName)
	})
	if err != nil {
		return err
	}

	if err := h.storage.Delete(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to delete object storage key")
	}
	h.bus.Publish(ctx, event.NewMessage(event.Source, "upload", event.MethodDelete, cmd.ID, nil))
	return nil
}
