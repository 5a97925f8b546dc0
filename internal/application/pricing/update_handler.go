package pricing

import (
	"context"

	"github.com/mutugading/catalog-service/internal/domain/event"
	"github.com/mutugading/catalog-service/internal/domain/pricing"
	"github.com/mutugading/catalog-service/internal/domain/shared"
	"github.com/mutugading/catalog-service/internal/infrastructure/audit"
)

// UpdateCommand represents the update pricing policy command. Nil pointers
// leave the rate untouched. The owning category can never change.
type UpdateCommand struct {
	ID                int64
	MarkupPercent     *float64
	CommissionPercent *float64
	DiscountPercent   *float64
	TaxRate           *float64
	ActorID           string
	ActorName         string
}

// UpdateHandler handles the update pricing policy command.
type UpdateHandler struct {
	repo    pricing.Repository
	uow     shared.UnitOfWork
	auditor audit.Logger
	bus     event.Bus
}

// NewUpdateHandler creates a new UpdateHandler.
func NewUpdateHandler(repo pricing.Repository, uow shared.UnitOfWork, auditor audit.Logger, bus event.Bus) *UpdateHandler {
	return &UpdateHandler{repo: repo, uow: uow, auditor: auditor, bus: bus}
}

// Handle executes the update pricing policy command. A no-op update
// writes no audit entry and publishes no event.
func (h *UpdateHandler) Handle(ctx context.Context, cmd UpdateCommand) (*PolicyDTO, error) {
	var (
		entity        *pricing.Policy
		changedFields []string
	)
	err := h.uow.Do(ctx, func(ctx context.Context) error {
		p, err := h.repo.GetByID(ctx, cmd.ID)
		if err != nil {
			return err
		}

		oldSnap := p.Snapshot()

		if cmd.MarkupPercent != nil {
			if err := p.SetMarkupPercent(*cmd.MarkupPercent); err != nil {
				return err
			}
		}
		if cmd.CommissionPercent != nil {
			if err := p.SetCommissionPercent(*cmd.CommissionPercent); err != nil {
				return err
			}
		}
		if cmd.DiscountPercent != nil {
			if err := p.SetDiscountPercent(*cmd.DiscountPercent); err != nil {
				return err
			}
		}
		if cmd.TaxRate != nil {
			if err := p.SetTaxRate(*cmd.TaxRate); err != nil {
				return err
			}
		}

		if err := h.repo.Update(ctx, p); err != nil {
			return err
		}

		newSnap := p.Snapshot()
		if !audit.SnapshotsEqual(oldSnap, newSnap) {
			if err := h.auditor.LogUpdate(ctx, "category_pricing_policy", p.ID(), oldSnap, newSnap, cmd.ActorID, cmd.ActorName); err != nil {
				return err
			}
			changedFields = audit.ChangedFields(oldSnap, newSnap)
		}

		entity = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(changedFields) > 0 {
		h.bus.Publish(ctx, event.NewMessage(event.Source, "category_pricing_policy", event.MethodUpdate, entity.ID(), map[string]interface{}{
			"changed_fields": changedFields,
		}))
	}
	return toDTO(entity), nil
}
