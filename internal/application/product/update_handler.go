package product

import (
	"context"
	"strconv"

	"github.com/mutugading/catalog-service/internal/domain/event"
	"github.com/mutugading/catalog-service/internal/domain/manufacturer"
	"github.com/mutugading/catalog-service/internal/domain/product"
	"github.com/mutugading/catalog-service/internal/domain/shared"
	"github.com/mutugading/catalog-service/internal/domain/supplier"
	"github.com/mutugading/catalog-service/internal/domain/upload"
	"github.com/mutugading/catalog-service/internal/infrastructure/audit"
)

// UpdateCommand represents the update product command. Nil pointers leave
// the field untouched; nil Attributes and ImageOps lists leave those
// collections untouched entirely.
type UpdateCommand struct {
	ID             int64
	Name           *string
	Description    *string
	CategoryID     *int64
	ManufacturerID *int64
	SupplierID     *int64
	Price          *float64
	Attributes     []AttributeInput
	ImageOps       []ImageOp
	ActorID        string
	ActorName      string
}

// UpdateHandler handles the update product command.
type UpdateHandler struct {
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

// NewUpdateHandler creates a new UpdateHandler.
func NewUpdateHandler(repo product.Repository, categories categoryChecker, manufacturers manufacturer.Repository, suppliers supplier.Repository, uploads upload.Repository, uow shared.UnitOfWork, storage shared.ObjectStorage, auditor audit.Logger, bus event.Bus) *UpdateHandler {
	return &UpdateHandler{
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

// normalizedOp is an image operation with its action resolved to the
// canonical set and the pre-transaction upload (if any) attached.
type normalizedOp struct {
	action  shared.ImageAction
	op      ImageOp
	pending pendingImage
}

// Handle executes the update product command following the same three
// phases as the category update: storage uploads, transactional core,
// compensation or cleanup plus events.
func (h *UpdateHandler) Handle(ctx context.Context, cmd UpdateCommand) (*ProductDTO, error) {
	ops, err := normalizeOps(cmd.ImageOps)
	if err != nil {
		return nil, err
	}

	var attributes []product.Attribute
	if cmd.Attributes != nil {
		attributes, err = toAttributes(cmd.Attributes)
		if err != nil {
			return nil, err
		}
	}

	var uploadedKeys []string
	for i := range ops {
		ops[i].pending = pendingImage{input: ImageInput{
			UploadID:    ops[i].op.UploadID,
			Data:        ops[i].op.Data,
			Filename:    ops[i].op.Filename,
			ContentType: ops[i].op.ContentType,
			IsMain:      ops[i].op.IsMain,
			Position:    ops[i].op.Position,
		}}
		needsBytes := ops[i].action == shared.ImageActionCreate || ops[i].action == shared.ImageActionUpdate
		if needsBytes && len(ops[i].op.Data) > 0 {
			key := h.storage.BuildKey(imageFolder, ops[i].op.Filename)
			if err := h.storage.Upload(ctx, key, ops[i].op.Data, ops[i].op.ContentType); err != nil {
				deleteKeys(ctx, h.storage, uploadedKeys)
				return nil, err
			}
			ops[i].pending.key = key
			uploadedKeys = append(uploadedKeys, key)
		}
	}

	var (
		entity        *product.Product
		changedFields []string
		oldKeys       []string
		currentKeys   []string
	)
	err = h.uow.Do(ctx, func(ctx context.Context) error {
		p, err := h.repo.GetByID(ctx, cmd.ID)
		if err != nil {
			return err
		}

		oldSnap := p.Snapshot()
		oldKeys = p.ImageKeys()

		if cmd.Name != nil {
			if err := p.SetName(*cmd.Name); err != nil {
				return err
			}
		}
		if cmd.Description != nil {
			p.SetDescription(*cmd.Description)
		}
		if cmd.Price != nil {
			if err := p.SetPrice(*cmd.Price); err != nil {
				return err
			}
		}

		categoryID := p.CategoryID()
		if cmd.CategoryID != nil {
			categoryID = *cmd.CategoryID
		}
		manufacturerID := p.ManufacturerID()
		if cmd.ManufacturerID != nil {
			manufacturerID = cmd.ManufacturerID
		}
		supplierID := p.SupplierID()
		if cmd.SupplierID != nil {
			supplierID = cmd.SupplierID
		}
		if err := checkReferences(ctx, h.categories, h.manufacturers, h.suppliers, categoryID, manufacturerID, supplierID); err != nil {
			return err
		}
		p.SetCategoryID(categoryID)
		p.SetManufacturerID(manufacturerID)
		p.SetSupplierID(supplierID)

		if cmd.Attributes != nil {
			p.ReplaceAttributes(attributes)
		}
		if cmd.ImageOps != nil {
			images, err := h.reconcileImages(ctx, p, ops)
			if err != nil {
				return err
			}
			p.ReplaceImages(images)
		}

		if err := h.repo.Update(ctx, p); err != nil {
			return err
		}

		newSnap := p.Snapshot()
		if !audit.SnapshotsEqual(oldSnap, newSnap) {
			if err := h.auditor.LogUpdate(ctx, "product", p.ID(), oldSnap, newSnap, cmd.ActorID, cmd.ActorName); err != nil {
				return err
			}
			changedFields = audit.ChangedFields(oldSnap, newSnap)
		}

		currentKeys = p.ImageKeys()
		entity = p
		return nil
	})
	if err != nil {
		deleteKeys(ctx, h.storage, uploadedKeys)
		return nil, err
	}

	deleteKeys(ctx, h.storage, orphanedKeys(oldKeys, currentKeys))

	if len(changedFields) > 0 {
		h.bus.Publish(ctx, event.NewMessage(event.Source, "product", event.MethodUpdate, entity.ID(), map[string]interface{}{
			"changed_fields": changedFields,
		}))
	}

	return toDTO(entity, h.storage), nil
}

// normalizeOps resolves every action tag (including legacy aliases) up
// front so an unknown tag fails before any storage upload happens.
func normalizeOps(ops []ImageOp) ([]normalizedOp, error) {
	out := make([]normalizedOp, 0, len(ops))
	for _, op := range ops {
		action, ok := shared.NormalizeImageAction(op.Action)
		if !ok {
			return nil, product.ErrInvalidImageAction.WithDetails(map[string]string{"action": op.Action})
		}
		out = append(out, normalizedOp{action: action, op: op})
	}
	return out, nil
}

// reconcileImages builds the final image collection from the operation
// list. ReplaceImages re-applies the single-main-image invariant after
// substitution.
func (h *UpdateHandler) reconcileImages(ctx context.Context, p *product.Product, ops []normalizedOp) ([]product.Image, error) {
	oldByUpload := make(map[int64]product.Image)
	for _, img := range p.Images() {
		oldByUpload[img.UploadID()] = img
	}

	var images []product.Image
	for _, op := range ops {
		switch op.action {
		case shared.ImageActionPass:
			old, ok := oldByUpload[op.op.UploadID]
			if !ok {
				return nil, product.ErrImageUploadNotFound.WithDetails(map[string]string{
					"upload_id": strconv.FormatInt(op.op.UploadID, 10),
				})
			}
			img, err := product.NewImage(old.UploadID(), op.op.IsMain, op.op.Position, old.Key())
			if err != nil {
				return nil, err
			}
			images = append(images, img)

		case shared.ImageActionDelete:
			continue

		case shared.ImageActionCreate, shared.ImageActionUpdate:
			img, err := resolveImage(ctx, h.uploads, op.pending)
			if err != nil {
				return nil, err
			}
			images = append(images, img)
		}
	}
	return images, nil
}
