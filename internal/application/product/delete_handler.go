package product

import (
	"context"

	"github.com/mutugading/catalog-service/internal/domain/event"
	"github.com/mutugading/catalog-service/internal/domain/product"
	"github.com/mutugading/catalog-service/internal/domain/shared"
	"github.com/mutugading/catalog-service/internal/infrastructure/audit"
)

// DeleteCommand represents the delete product command.
type DeleteCommand struct {
	ID        int64
	ActorID   string
	ActorName string
}

// DeleteHandler handles the delete product command.
type DeleteHandler struct {
	repo    product.Repository
	uow     shared.UnitOfWork
	storage shared.ObjectStorage
	auditor audit.Logger
	bus     event.Bus
}

// NewDeleteHandler creates a new DeleteHandler.
func NewDeleteHandler(repo product.Repository, uow shared.UnitOfWork, storage shared.ObjectStorage, auditor audit.Logger, bus event.Bus) *DeleteHandler {
	return &DeleteHandler{repo: repo, uow: uow, storage: storage, auditor: auditor, bus: bus}
}

// Handle executes the delete product command. Blob cleanup runs only
// after the transaction commits.
func (h *DeleteHandler) Handle(ctx context.Context, cmd DeleteCommand) error {
	var imageKeys []string
	err := h.uow.Do(ctx, func(ctx context.Context) error {
		p, err := h.repo.GetByID(ctx, cmd.ID)
		if err != nil {
			return err
		}

		oldSnap := p.Snapshot()
		imageKeys = p.ImageKeys()

		if err := h.repo.Delete(ctx, p.ID()); err != nil {
			return err
		}
		return h.auditor.LogDelete(ctx, "product", p.ID(), oldSnap, cmd.ActorID, cmd.ActorName)
	})
	if err != nil {
		return err
	}

	deleteKeys(ctx, h.storage, imageKeys)
	h.bus.Publish(ctx, event.NewMessage(event.Source, "product", event.MethodDelete, cmd.ID, nil))
	return nil
}
