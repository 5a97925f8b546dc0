package pricing

import (
	"context"
	"strconv"

	"github.com/mutugading/catalog-service/internal/domain/category"
	"github.com/mutugading/catalog-service/internal/domain/event"
	"github.com/mutugading/catalog-service/internal/domain/pricing"
	"github.com/mutugading/catalog-service/internal/domain/shared"
	"github.com/mutugading/catalog-service/internal/infrastructure/audit"
)

// CreateCommand represents the create pricing policy command.
type CreateCommand struct {
	CategoryID        int64
	MarkupPercent     float64
	CommissionPercent float64
	DiscountPercent   float64
	TaxRate           float64
	ActorID           string
	ActorName         string
}

// CreateHandler handles the create pricing policy command.
type CreateHandler struct {
	repo       pricing.Repository
	categories category.Repository
	uow        shared.UnitOfWork
	auditor    audit.Logger
	bus        event.Bus
}

// NewCreateHandler creates a new CreateHandler.
func NewCreateHandler(repo pricing.Repository, categories category.Repository, uow shared.UnitOfWork, auditor audit.Logger, bus event.Bus) *CreateHandler {
	return &CreateHandler{repo: repo, categories: categories, uow: uow, auditor: auditor, bus: bus}
}

// Handle executes the create pricing policy command. The referenced
// category must exist; the repository maps the one-policy-per-category
// unique index onto ErrAlreadyExists.
func (h *CreateHandler) Handle(ctx context.Context, cmd CreateCommand) (*PolicyDTO, error) {
	var entity *pricing.Policy
	err := h.uow.Do(ctx, func(ctx context.Context) error {
		exists, err := h.categories.ExistsByID(ctx, cmd.CategoryID)
		if err != nil {
			return err
		}
		if !exists {
			return pricing.ErrCategoryNotFound.WithDetails(map[string]string{
				"category_id": strconv.FormatInt(cmd.CategoryID, 10),
			})
		}

		p, err := pricing.New(cmd.CategoryID, cmd.MarkupPercent, cmd.CommissionPercent, cmd.DiscountPercent, cmd.TaxRate)
		if err != nil {
			return err
		}
		if err := h.repo.Create(ctx, p); err != nil {
			return err
		}
		if err := h.auditor.LogCreate(ctx, "category_pricing_policy", p.ID(), p.Snapshot(), cmd.ActorID, cmd.ActorName); err != nil {
			return err
		}
		entity = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	h.bus.Publish(ctx, event.NewMessage(event.Source, "category_pricing_policy", event.MethodCreate, entity.ID(), nil))
	return toDTO(entity), nil
}
