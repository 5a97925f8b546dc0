package manufacturer

import (
	"context"

	"github.com/mutugading/catalog-service/internal/domain/event"
	"github.com/mutugading/catalog-service/internal/domain/manufacturer"
	"github.com/mutugading/catalog-service/internal/domain/shared"
	"github.com/mutugading/catalog-service/internal/infrastructure/audit"
)

// CreateCommand represents the create manufacturer command.
type CreateCommand struct {
	Name        string
	Country     string
	Description string
	ActorID     string
	ActorName   string
}

// CreateHandler handles the create manufacturer command.
type CreateHandler struct {
	repo    manufacturer.Repository
	uow     shared.UnitOfWork
	auditor audit.Logger
	bus     event.Bus
}

// NewCreateHandler creates a new CreateHandler.
func NewCreateHandler(repo manufacturer.Repository, uow shared.UnitOfWork, auditor audit.Logger, bus event.Bus) *CreateHandler {
	return &CreateHandler{repo: repo, uow: uow, auditor: auditor, bus: bus}
}

// Handle executes the create manufacturer command.
func (h *CreateHandler) Handle(ctx context.Context, cmd CreateCommand) (*ManufacturerDTO, error) {
	var entity *manufacturer.Manufacturer
	err := h.uow.Do(ctx, func(ctx context.Context) error {
		m, err := manufacturer.New(cmd.Name, cmd.Country, cmd.Description)
		if err != nil {
			return err
		}
		if err := h.repo.Create(ctx, m); err != nil {
			return err
		}
		if err := h.auditor.LogCreate(ctx, "manufacturer", m.ID(), m.Snapshot(), cmd.ActorID, cmd.ActorName); err != nil {
			return err
		}
		entity = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	h.bus.Publish(ctx, event.NewMessage(event.Source, "manufacturer", event.MethodCreate, entity.ID(), nil))
	return toDTO(entity), nil
}
