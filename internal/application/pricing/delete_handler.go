package pricing

import (
	"context"

	"github.com/mutugading/catalog-service/internal/domain/event"
	"github.com/mutugading/catalog-service/internal/domain/pricing"
	"github.com/mutugading/catalog-service/internal/domain/shared"
	"github.com/mutugading/catalog-service/internal/infrastructure/audit"
)

// DeleteCommand represents the delete pricing policy command.
type DeleteCommand struct {
	ID        int64
	ActorID   string
	ActorName string
}

// DeleteHandler handles the delete pricing policy command.
type DeleteHandler struct {
	repo    pricing.Repository
	uow     shared.UnitOfWork
	auditor audit.Logger
	bus     event.Bus
}

// NewDeleteHandler creates a new DeleteHandler.
func NewDeleteHandler(repo pricing.Repository, uow shared.UnitOfWork, auditor audit.Logger, bus event.Bus) *DeleteHandler {
	return &DeleteHandler{repo: repo, uow: uow, auditor: auditor, bus: bus}
}

// Handle executes the delete pricing policy command.
func (h *DeleteHandler) Handle(ctx context.Context, cmd DeleteCommand) error {
	err := h.uow.Do(ctx, func(ctx context.Context) error {
		p, err := h.repo.GetByID(ctx, cmd.ID)
		if err != nil {
			return err
		}
		if err := h.repo.Delete(ctx, p.ID()); err != nil {
			return err
		}
		return h.auditor.LogDelete(ctx, "category_pricing_policy", p.ID(), p.Snapshot(), cmd.ActorID, cmd.ActorName)
	})
	if err != nil {
		return err
	}

	h.bus.Publish(ctx, event.NewMessage(event.Source, "category_pricing_policy", event.MethodDelete, cmd.ID, nil))
	return nil
}
