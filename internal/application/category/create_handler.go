package category

import (
	"context"

	"github.com/mutugading/catalog-service/internal/domain/category"
	"github.com/mutugading/catalog-service/internal/domain/event"
	"github.com/mutugading/catalog-service/internal/domain/shared"
	"github.com/mutugading/catalog-service/internal/domain/upload"
	"github.com/mutugading/catalog-service/internal/infrastructure/audit"
)

// CreateCommand represents the create category command.
type CreateCommand struct {
	Name        string
	Description string
	Images      []ImageInput
	ActorID     string
	ActorName   string
}

// CreateHandler handles the create category command.
type CreateHandler struct {
	repo    category.Repository
	uploads upload.Repository
	uow     shared.UnitOfWork
	storage shared.ObjectStorage
	auditor audit.Logger
	bus     event.Bus
}

// NewCreateHandler creates a new CreateHandler.
func NewCreateHandler(repo category.Repository, uploads upload.Repository, uow shared.UnitOfWork, storage shared.ObjectStorage, auditor audit.Logger, bus event.Bus) *CreateHandler {
	return &CreateHandler{repo: repo, uploads: uploads, uow: uow, storage: storage, auditor: auditor, bus: bus}
}

// Handle executes the create category command. New image bytes go to
// object storage before the transaction opens; if anything afterwards
// fails, every freshly-uploaded key is deleted again and no row survives.
func (h *CreateHandler) Handle(ctx context.Context, cmd CreateCommand) (*CategoryDTO, error) {
	pending, uploadedKeys, err := uploadNewImages(ctx, h.storage, cmd.Images)
	if err != nil {
		deleteKeys(ctx, h.storage, uploadedKeys)
		return nil, err
	}

	var entity *category.Category
	err = h.uow.Do(ctx, func(ctx context.Context) error {
		images := make([]category.Image, 0, len(pending))
		for _, p := range pending {
			img, err := resolveImage(ctx, h.uploads, p)
			if err != nil {
				return err
			}
			images = append(images, img)
		}

		c, err := category.New(cmd.Name, cmd.Description, images)
		if err != nil {
			return err
		}
		if err := h.repo.Create(ctx, c); err != nil {
			return err
		}
		if err := h.auditor.LogCreate(ctx, "category", c.ID(), c.Snapshot(), cmd.ActorID, cmd.ActorName); err != nil {
			return err
		}
		entity = c
		return nil
	})
	if err != nil {
		deleteKeys(ctx, h.storage, uploadedKeys)
		return nil, err
	}

	h.bus.Publish(ctx, event.NewMessage(event.Source, "category", event.MethodCreate, entity.ID(), nil))
	return toDTO(entity, h.storage), nil
}
