package product

import (
	"context"

	"github.com/mutugading/catalog-service/internal/domain/event"
	"github.com/mutugading/catalog-service/internal/domain/manufacturer"
	"github.com/mutugading/catalog-service/internal/domain/product"
	"github.com/mutugading/catalog-service/internal/domain/shared"
	"github.com/mutugading/catalog-service/internal/domain/supplier"
	"github.com/mutugading/catalog-service/internal/domain/upload"
	"github.com/mutugading/catalog-service/internal/infrastructure/audit"
)

// CreateCommand represents the create product command.
type CreateCommand struct {
	SKU            string
	Name           string
	Description    string
	CategoryID     int64
	ManufacturerID *int64
	SupplierID     *int64
	Price          float64
	Attributes     []AttributeInput
	Images         []ImageInput
	ActorID        string
	ActorName      string
}

// CreateHandler handles the create product command.
type CreateHandler struct {
	repo          product.Repository
	categories    categoryChecker
	manufacturers manufacturer.Repository
	suppliers     supplier.Repository
	uploads       upload.Repository
	uow           shared.UnitOfWork
	storage       shared.ObjectStorage
	auditor       audit.Logger
	bus           event.Bus
}

// NewCreateHandler creates a new CreateHandler.
func NewCreateHandler(repo product.Repository, categories categoryChecker, manufacturers manufacturer.Repository, suppliers supplier.Repository, uploads upload.Repository, uow shared.UnitOfWork, storage shared.ObjectStorage, auditor audit.Logger, bus event.Bus) *CreateHandler {
	return &CreateHandler{
		repo:          repo,
		categories:    categories,
		manufacturers: manufacturers,
		suppliers:     suppliers,
		uploads:       uploads,
		uow:           uow,
		storage:       storage,
		auditor:       auditor,
		bus:           bus,
	}
}

// Handle executes the create product command.
func (h *CreateHandler) Handle(ctx context.Context, cmd CreateCommand) (*ProductDTO, error) {
	// Validate value objects before touching storage.
	sku, err := product.NewSKU(cmd.SKU)
	if err != nil {
		return nil, err
	}
	attributes, err := toAttributes(cmd.Attributes)
	if err != nil {
		return nil, err
	}

	pending, uploadedKeys, err := uploadNewImages(ctx, h.storage, cmd.Images)
	if err != nil {
		deleteKeys(ctx, h.storage, uploadedKeys)
		return nil, err
	}

	var entity *product.Product
	err = h.uow.Do(ctx, func(ctx context.Context) error {
		if err := checkReferences(ctx, h.categories, h.manufacturers, h.suppliers, cmd.CategoryID, cmd.ManufacturerID, cmd.SupplierID); err != nil {
			return err
		}

		images := make([]product.Image, 0, len(pending))
		for _, p := range pending {
			img, err := resolveImage(ctx, h.uploads, p)
			if err != nil {
				return err
			}
			images = append(images, img)
		}

		p, err := product.New(sku, cmd.Name, cmd.Description, cmd.CategoryID, cmd.ManufacturerID, cmd.SupplierID, cmd.Price, attributes, images)
		if err != nil {
			return err
		}
		if err := h.repo.Create(ctx, p); err != nil {
			return err
		}
		if err := h.auditor.LogCreate(ctx, "product", p.ID(), p.Snapshot(), cmd.ActorID, cmd.ActorName); err != nil {
			return err
		}
		entity = p
		return nil
	})
	if err != nil {
		deleteKeys(ctx, h.storage, uploadedKeys)
		return nil, err
	}

	h.bus.Publish(ctx, event.NewMessage(event.Source, "product", event.MethodCreate, entity.ID(), nil))
	return toDTO(entity, h.storage), nil
}
