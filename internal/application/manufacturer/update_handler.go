package manufacturer

import (
	"context"

	"github.com/mutugading/catalog-service/internal/domain/event"
	"github.com/mutugading/catalog-service/internal/domain/manufacturer"
	"github.com/mutugading/catalog-service/internal/domain/shared"
	"github.com/mutugading/catalog-service/internal/infrastructure/audit"
)

// UpdateCommand represents the update manufacturer command. Nil pointers
// leave the field untouched.
type UpdateCommand struct {
	ID          int64
	Name        *string
	Country     *string
	Description *string
	ActorID     string
	ActorName   string
}

// UpdateHandler handles the update manufacturer command.
type UpdateHandler struct {
	repo    manufacturer.Repository
	uow     shared.UnitOfWork
	auditor audit.Logger
	bus     event.Bus
}

// NewUpdateHandler creates a new UpdateHandler.
func NewUpdateHandler(repo manufacturer.Repository, uow shared.UnitOfWork, auditor audit.Logger, bus event.Bus) *UpdateHandler {
	return &UpdateHandler{repo: repo, uow: uow, auditor: auditor, bus: bus}
}

// Handle executes the update manufacturer command. A no-op update writes
// no audit entry and publishes no event.
func (h *UpdateHandler) Handle(ctx context.Context, cmd UpdateCommand) (*ManufacturerDTO, error) {
	var (
		entity        *manufacturer.Manufacturer
		changedFields []string
	)
	err := h.uow.Do(ctx, func(ctx context.Context) error {
		m, err := h.repo.GetByID(ctx, cmd.ID)
		if err != nil {
			return err
		}

		oldSnap := m.Snapshot()

		if cmd.Name != nil {
			if err := m.SetName(*cmd.Name); err != nil {
				return err
			}
		}
		if cmd.Country != nil {
			m.SetCountry(*cmd.Country)
		}
		if cmd.Description != nil {
			m.SetDescription(*cmd.Description)
		}

		if err := h.repo.Update(ctx, m); err != nil {
			return err
		}

		newSnap := m.Snapshot()
		if !audit.SnapshotsEqual(oldSnap, newSnap) {
			if err := h.auditor.LogUpdate(ctx, "manufacturer", m.ID(), oldSnap, newSnap, cmd.ActorID, cmd.ActorName); err != nil {
				return err
			}
			changedFields = audit.ChangedFields(oldSnap, newSnap)
		}

		entity = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(changedFields) > 0 {
		h.bus.Publish(ctx, event.NewMessage(event.Source, "manufacturer", event.MethodUpdate, entity.ID(), map[string]interface{}{
			"changed_fields": changedFields,
		}))
	}
	return toDTO(entity), nil
}
