package supplier

import (
	"context"

	"github.com/mutugading/catalog-service/internal/domain/event"
	"github.com/mutugading/catalog-service/internal/domain/shared"
	"github.com/mutugading/catalog-service/internal/domain/supplier"
	"github.com/mutugading/catalog-service/internal/infrastructure/audit"
)

// CreateCommand represents the create supplier command.
type CreateCommand struct {
	Name        string
	Email       string
	Phone       string
	Description string
	ActorID     string
	ActorName   string
}

// CreateHandler handles the create supplier command.
type CreateHandler struct {
	repo    supplier.Repository
	uow     shared.UnitOfWork
	auditor audit.Logger
	bus     event.Bus
}

// NewCreateHandler creates a new CreateHandler.
func NewCreateHandler(repo supplier.Repository, uow shared.UnitOfWork, auditor audit.Logger, bus event.Bus) *CreateHandler {
	return &CreateHandler{repo: repo, uow: uow, auditor: auditor, bus: bus}
}

// Handle executes the create supplier command.
func (h *CreateHandler) Handle(ctx context.Context, cmd CreateCommand) (*SupplierDTO, error) {
	var entity *supplier.Supplier
	err := h.uow.Do(ctx, func(ctx context.Context) error {
		s, err := supplier.New(cmd.Name, cmd.Email, cmd.Phone, cmd.Description)
		if err != nil {
			return err
		}
		if err := h.repo.Create(ctx, s); err != nil {
			return err
		}
		if err := h.auditor.LogCreate(ctx, "supplier", s.ID(), s.Snapshot(), cmd.ActorID, cmd.ActorName); err != nil {
			return err
		}
		entity = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	h.bus.Publish(ctx, event.NewMessage(event.Source, "supplier", event.MethodCreate, entity.ID(), nil))
	return toDTO(entity), nil
}
