package category

import (
	"context"

	"github.com/mutugading/catalog-service/internal/domain/category"
	"github.com/mutugading/catalog-service/internal/domain/event"
	"github.com/mutugading/catalog-service/internal/domain/shared"
	"github.com/mutugading/catalog-service/internal/infrastructure/audit"
)

// DeleteCommand represents the delete category command.
type DeleteCommand struct {
	ID        int64
	ActorID   string
	ActorName string
}

// DeleteHandler handles the delete category command.
type DeleteHandler struct {
	repo    category.Repository
	uow     shared.UnitOfWork
	storage shared.ObjectStorage
	auditor audit.Logger
	bus     event.Bus
}

// NewDeleteHandler creates a new DeleteHandler.
func NewDeleteHandler(repo category.Repository, uow shared.UnitOfWork, storage shared.ObjectStorage, auditor audit.Logger, bus event.Bus) *DeleteHandler {
	return &DeleteHandler{repo: repo, uow: uow, storage: storage, auditor: auditor, bus: bus}
}

// Handle executes the delete category command. Image blob deletion runs
// only after the transaction commits; the relational delete is
// authoritative and a failed blob cleanup leaves orphans, never errors.
func (h *DeleteHandler) Handle(ctx context.Context, cmd DeleteCommand) error {
	var imageKeys []string
	err := h.uow.Do(ctx, func(ctx context.Context) error {
		c, err := h.repo.GetByID(ctx, cmd.ID)
		if err != nil {
			return err
		}

		oldSnap := c.Snapshot()
		imageKeys = c.ImageKeys()

		if err := h.repo.Delete(ctx, c.ID()); err != nil {
			return err
		}
		return h.auditor.LogDelete(ctx, "category", c.ID(), oldSnap, cmd.ActorID, cmd.ActorName)
	})
	if err != nil {
		return err
	}

	deleteKeys(ctx, h.storage, imageKeys)
	h.bus.Publish(ctx, event.NewMessage(event.Source, "category", event.MethodDelete, cmd.ID, nil))
	return nil
}
