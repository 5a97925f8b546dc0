package product

import (
	"context"
	"errors"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/mutugading/catalog-service/internal/domain/manufacturer"
	"github.com/mutugading/catalog-service/internal/domain/product"
	"github.com/mutugading/catalog-service/internal/domain/shared"
	"github.com/mutugading/catalog-service/internal/domain/supplier"
	"github.com/mutugading/catalog-service/internal/domain/upload"
)

// pendingImage is an image input after the pre-transaction storage phase:
// key is set when new bytes were uploaded, empty when the input references
// an existing upload record.
type pendingImage struct {
	input ImageInput
	key   string
}

// uploadNewImages runs the pre-transaction phase: every raw-bytes input is
// stored under a fresh key. Returns the pending set and the keys uploaded
// so far; on error the caller must compensate with deleteKeys.
func uploadNewImages(ctx context.Context, storage shared.ObjectStorage, inputs []ImageInput) ([]pendingImage, []string, error) {
	pending := make([]pendingImage, 0, len(inputs))
	var uploaded []string
	for _, in := range inputs {
		p := pendingImage{input: in}
		if len(in.Data) > 0 {
			key := storage.BuildKey(imageFolder, in.Filename)
			if err := storage.Upload(ctx, key, in.Data, in.ContentType); err != nil {
				return nil, uploaded, err
			}
			p.key = key
			uploaded = append(uploaded, key)
		}
		pending = append(pending, p)
	}
	return pending, uploaded, nil
}

// resolveImage materializes one pending image inside the transaction.
func resolveImage(ctx context.Context, uploads upload.Repository, p pendingImage) (product.Image, error) {
	if p.key != "" {
		u, err := upload.New(p.input.Filename, p.key, p.input.ContentType, int64(len(p.input.Data)))
		if err != nil {
			return product.Image{}, err
		}
		if err := uploads.Create(ctx, u); err != nil {
			return product.Image{}, err
		}
		return product.NewImage(u.ID(), p.input.IsMain, p.input.Position, p.key)
	}

	u, err := uploads.GetByID(ctx, p.input.UploadID)
	if errors.Is(err, upload.ErrNotFound) {
		return product.Image{}, product.ErrImageUploadNotFound.WithDetails(map[string]string{
			"upload_id": strconv.FormatInt(p.input.UploadID, 10),
		})
	}
	if err != nil {
		return product.Image{}, err
	}
	return product.NewImage(u.ID(), p.input.IsMain, p.input.Position, u.Key())
}

// checkReferences verifies the category and the optional manufacturer and
// supplier references exist before the aggregate is persisted.
func checkReferences(ctx context.Context, categories categoryChecker, manufacturers manufacturer.Repository, suppliers supplier.Repository, categoryID int64, manufacturerID, supplierID *int64) error {
	exists, err := categories.ExistsByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if !exists {
		return product.ErrCategoryNotFound.WithDetails(map[string]string{
			"category_id": strconv.FormatInt(categoryID, 10),
		})
	}

	if manufacturerID != nil {
		exists, err := manufacturers.ExistsByID(ctx, *manufacturerID)
		if err != nil {
			return err
		}
		if !exists {
			return product.ErrManufacturerNotFound.WithDetails(map[string]string{
				"manufacturer_id": strconv.FormatInt(*manufacturerID, 10),
			})
		}
	}

	if supplierID != nil {
		exists, err := suppliers.ExistsByID(ctx, *supplierID)
		if err != nil {
			return err
		}
		if !exists {
			return product.ErrSupplierNotFound.WithDetails(map[string]string{
				"supplier_id": strconv.FormatInt(*supplierID, 10),
			})
		}
	}
	return nil
}

// categoryChecker is the slice of the category repository product commands
// actually need.
type categoryChecker interface {
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

// deleteKeys removes object-storage keys best-effort. Failures are logged,
// never surfaced.
func deleteKeys(ctx context.Context, storage shared.ObjectStorage, keys []string) {
	for _, key := range keys {
		if err := storage.Delete(ctx, key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to delete object storage key")
		}
	}
}

// orphanedKeys returns the keys present in old but absent from current.
func orphanedKeys(old, current []string) []string {
	kept := make(map[string]struct{}, len(current))
	for _, k := range current {
		kept[k] = struct{}{}
	}
	var orphans []string
	for _, k := range old {
		if _, ok := kept[k]; !ok {
			orphans = append(orphans, k)
		}
	}
	return orphans
}
