package supplier

import (
	"context"

	"github.com/mutugading/catalog-service/internal/domain/event"
	"github.com/mutugading/catalog-service/internal/domain/shared"
	"github.com/mutugading/catalog-service/internal/domain/supplier"
	"github.com/mutugading/catalog-service/internal/infrastructure/audit"
)

// UpdateCommand represents the update supplier command. Nil pointers
// leave the field untouched.
type UpdateCommand struct {
	ID          int64
	Name        *string
	Email       *string
	Phone       *string
	Description *string
	ActorID     string
	ActorName   string
}

// UpdateHandler handles the update supplier command.
type UpdateHandler struct {
	repo    supplier.Repository
	uow     shared.UnitOfWork
	auditor audit.Logger
	bus     event.Bus
}

// NewUpdateHandler creates a new UpdateHandler.
func NewUpdateHandler(repo supplier.Repository, uow shared.UnitOfWork, auditor audit.Logger, bus event.Bus) *UpdateHandler {
	return &UpdateHandler{repo: repo, uow: uow, auditor: auditor, bus: bus}
}

// Handle executes the update supplier command. A no-op update writes no
// audit entry and publishes no event.
func (h *UpdateHandler) Handle(ctx context.Context, cmd UpdateCommand) (*SupplierDTO, error) {
	var (
		entity        *supplier.Supplier
		changedFields []string
	)
	err := h.uow.Do(ctx, func(ctx context.Context) error {
		s, err := h.repo.GetByID(ctx, cmd.ID)
		if err != nil {
			return err
		}

		oldSnap := s.Snapshot()

		if cmd.Name != nil {
			if err := s.SetName(*cmd.Name); err != nil {
				return err
			}
		}
		if cmd.Email != nil {
			if err := s.SetEmail(*cmd.Email); err != nil {
				return err
			}
		}
		if cmd.Phone != nil {
			s.SetPhone(*cmd.Phone)
		}
		if cmd.Description != nil {
			s.SetDescription(*cmd.Description)
		}

		if err := h.repo.Update(ctx, s); err != nil {
			return err
		}

		newSnap := s.Snapshot()
		if !audit.SnapshotsEqual(oldSnap, newSnap) {
			if err := h.auditor.LogUpdate(ctx, "supplier", s.ID(), oldSnap, newSnap, cmd.ActorID, cmd.ActorName); err != nil {
				return err
			}
			changedFields = audit.ChangedFields(oldSnap, newSnap)
		}

		entity = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(changedFields) > 0 {
		h.bus.Publish(ctx, event.NewMessage(event.Source, "supplier", event.MethodUpdate, entity.ID(), map[string]interface{}{
			"changed_fields": changedFields,
		}))
	}
	return toDTO(entity), nil
}
