package supplier

import (
	"context"

	"github.com/mutugading/catalog-service/internal/domain/event"
	"github.com/mutugading/catalog-service/internal/domain/shared"
	"github.com/mutugading/catalog-service/internal/domain/supplier"
	"github.com/mutugading/catalog-service/internal/infrastructure/audit"
)

// DeleteCommand represents the delete supplier command.
type DeleteCommand struct {
	ID        int64
	ActorID   string
	ActorName string
}

// DeleteHandler handles the delete supplier command.
type DeleteHandler struct {
	repo    supplier.Repository
	uow     shared.UnitOfWork
	auditor audit.Logger
	bus     event.Bus
}

// NewDeleteHandler creates a new DeleteHandler.
func NewDeleteHandler(repo supplier.Repository, uow shared.UnitOfWork, auditor audit.Logger, bus event.Bus) *DeleteHandler {
	return &DeleteHandler{repo: repo, uow: uow, auditor: auditor, bus: bus}
}

// Handle executes the delete supplier command.
func (h *DeleteHandler) Handle(ctx context.Context, cmd DeleteCommand) error {
	err := h.uow.Do(ctx, func(ctx context.Context) error {
		s, err := h.repo.GetByID(ctx, cmd.ID)
		if err != nil {
			return err
		}
		if err := h.repo.Delete(ctx, s.ID()); err != nil {
			return err
		}
		return h.auditor.LogDelete(ctx, "supplier", s.ID(), s.Snapshot(), cmd.ActorID, cmd.ActorName)
	})
	if err != nil {
		return err
	}

	h.bus.Publish(ctx, event.NewMessage(event.Source, "supplier", event.MethodDelete, cmd.ID, nil))
	return nil
}
