package manufacturer

import (
	"context"

	"github.com/mutugading/catalog-service/internal/domain/event"
	"github.com/mutugading/catalog-service/internal/domain/manufacturer"
	"github.com/mutugading/catalog-service/internal/domain/shared"
	"github.com/mutugading/catalog-service/internal/infrastructure/audit"
)

// DeleteCommand represents the delete manufacturer command.
type DeleteCommand struct {
	ID        int64
	ActorID   string
	ActorName string
}

// DeleteHandler handles the delete manufacturer command.
type DeleteHandler struct {
	repo    manufacturer.Repository
	uow     shared.UnitOfWork
	auditor audit.Logger
	bus     event.Bus
}

// NewDeleteHandler creates a new DeleteHandler.
func NewDeleteHandler(repo manufacturer.Repository, uow shared.UnitOfWork, auditor audit.Logger, bus event.Bus) *DeleteHandler {
	return &DeleteHandler{repo: repo, uow: uow, auditor: auditor, bus: bus}
}

// Handle executes the delete manufacturer command.
func (h *DeleteHandler) Handle(ctx context.Context, cmd DeleteCommand) error {
	err := h.uow.Do(ctx, func(ctx context.Context) error {
		m, err := h.repo.GetByID(ctx, cmd.ID)
		if err != nil {
			return err
		}
		if err := h.repo.Delete(ctx, m.ID()); err != nil {
			return err
		}
		return h.auditor.LogDelete(ctx, "manufacturer", m.ID(), m.Snapshot(), cmd.ActorID, cmd.ActorName)
	})
	if err != nil {
		return err
	}

	h.bus.Publish(ctx, event.NewMessage(event.Source, "manufacturer", event.MethodDelete, cmd.ID, nil))
	return nil
}
