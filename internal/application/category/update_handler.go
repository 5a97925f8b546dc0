package category

import (
	"context"
	"strconv"

	"github.com/mutugading/catalog-service/internal/domain/category"
	"github.com/mutugading/catalog-service/internal/domain/event"
	"github.com/mutugading/catalog-service/internal/domain/shared"
	"github.com/mutugading/catalog-service/internal/domain/upload"
	"github.com/mutugading/catalog-service/internal/infrastructure/audit"
)

// UpdateCommand represents the update category command. Nil pointers leave
// the field untouched; a nil ImageOps list leaves the image collection
// untouched entirely.
type UpdateCommand struct {
	ID          int64
	Name        *string
	Description *string
	ImageOps    []ImageOp
	ActorID     string
	ActorName   string
}

// UpdateHandler handles the update category command.
type UpdateHandler struct {
	repo    category.Repository
	uploads upload.Repository
	uow     shared.UnitOfWork
	storage shared.ObjectStorage
	auditor audit.Logger
	bus     event.Bus
}

// NewUpdateHandler creates a new UpdateHandler.
func NewUpdateHandler(repo category.Repository, uploads upload.Repository, uow shared.UnitOfWork, storage shared.ObjectStorage, auditor audit.Logger, bus event.Bus) *UpdateHandler {
	return &UpdateHandler{repo: repo, uploads: uploads, uow: uow, storage: storage, auditor: auditor, bus: bus}
}

// normalizedOp is an image operation with its action resolved to the
// canonical set and the pre-transaction upload (if any) attached.
type normalizedOp struct {
	action  shared.ImageAction
	op      ImageOp
	pending pendingImage
}

// Handle executes the update category command.
//
// Phase 1 uploads new image bytes to object storage. Phase 2 runs the
// transaction: load, snapshot old state, mutate, persist, snapshot new
// state, audit only when something actually changed. Phase 3 compensates
// (deletes new keys) on failure, or cleans up orphaned old keys and
// publishes events on success.
func (h *UpdateHandler) Handle(ctx context.Context, cmd UpdateCommand) (*CategoryDTO, error) {
	ops, err := normalizeOps(cmd.ImageOps)
	if err != nil {
		return nil, err
	}

	var uploadedKeys []string
	for i := range ops {
		ops[i].pending = pendingImage{input: ImageInput{
			UploadID:    ops[i].op.UploadID,
			Data:        ops[i].op.Data,
			Filename:    ops[i].op.Filename,
			ContentType: ops[i].op.ContentType,
			Ordering:    ops[i].op.Ordering,
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
		entity        *category.Category
		changedFields []string
		oldKeys       []string
		currentKeys   []string
	)
	err = h.uow.Do(ctx, func(ctx context.Context) error {
		c, err := h.repo.GetByID(ctx, cmd.ID)
		if err != nil {
			return err
		}

		oldSnap := c.Snapshot()
		oldKeys = c.ImageKeys()

		if cmd.Name != nil {
			if err := c.SetName(*cmd.Name); err != nil {
				return err
			}
		}
		if cmd.Description != nil {
			c.SetDescription(*cmd.Description)
		}
		if cmd.ImageOps != nil {
			images, err := h.reconcileImages(ctx, c, ops)
			if err != nil {
				return err
			}
			c.ReplaceImages(images)
		}

		if err := h.repo.Update(ctx, c); err != nil {
			return err
		}

		newSnap := c.Snapshot()
		if !audit.SnapshotsEqual(oldSnap, newSnap) {
			if err := h.auditor.LogUpdate(ctx, "category", c.ID(), oldSnap, newSnap, cmd.ActorID, cmd.ActorName); err != nil {
				return err
			}
			changedFields = audit.ChangedFields(oldSnap, newSnap)
		}

		currentKeys = c.ImageKeys()
		entity = c
		return nil
	})
	if err != nil {
		deleteKeys(ctx, h.storage, uploadedKeys)
		return nil, err
	}

	deleteKeys(ctx, h.storage, orphanedKeys(oldKeys, currentKeys))

	if len(changedFields) > 0 {
		h.bus.Publish(ctx, event.NewMessage(event.Source, "category", event.MethodUpdate, entity.ID(), map[string]interface{}{
			"changed_fields": changedFields,
		}))
		for _, f := range changedFields {
			if f == "images" {
				h.bus.Publish(ctx, event.NewMessage(event.Source, "category", event.MethodImagesUpdated, entity.ID(), nil))
				break
			}
		}
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
			return nil, category.ErrInvalidImageAction.WithDetails(map[string]string{"action": op.Action})
		}
		out = append(out, normalizedOp{action: action, op: op})
	}
	return out, nil
}

// reconcileImages builds the final image collection from the operation
// list: pass retains an existing image, delete drops it, create and update
// attach newly-resolved associations. Old images not referenced by any
// pass or update op simply fall out of the collection.
func (h *UpdateHandler) reconcileImages(ctx context.Context, c *category.Category, ops []normalizedOp) ([]category.Image, error) {
	oldByUpload := make(map[int64]category.Image)
	for _, img := range c.Images() {
		oldByUpload[img.UploadID()] = img
	}

	var images []category.Image
	for _, op := range ops {
		switch op.action {
		case shared.ImageActionPass:
			old, ok := oldByUpload[op.op.UploadID]
			if !ok {
				return nil, category.ErrImageUploadNotFound.WithDetails(map[string]string{
					"upload_id": strconv.FormatInt(op.op.UploadID, 10),
				})
			}
			img, err := category.NewImage(old.UploadID(), op.op.Ordering, old.Key())
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
