package category

import (
	"context"
	"errors"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/mutugading/catalog-service/internal/domain/category"
	"github.com/mutugading/catalog-service/internal/domain/shared"
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

// resolveImage materializes one pending image inside the transaction:
// freshly-uploaded bytes get a new upload record, references are checked
// against the upload table.
func resolveImage(ctx context.Context, uploads upload.Repository, p pendingImage) (category.Image, error) {
	if p.key != "" {
		u, err := upload.New(p.input.Filename, p.key, p.input.ContentType, int64(len(p.input.Data)))
		if err != nil {
			return category.Image{}, err
		}
		if err := uploads.Create(ctx, u); err != nil {
			return category.Image{}, err
		}
		return category.NewImage(u.ID(), p.input.Ordering, p.key)
	}

	u, err := uploads.GetByID(ctx, p.input.UploadID)
	if errors.Is(err, upload.ErrNotFound) {
		return category.Image{}, category.ErrImageUploadNotFound.WithDetails(map[string]string{
			"upload_id": strconv.FormatInt(p.input.UploadID, 10),
		})
	}
	if err != nil {
		return category.Image{}, err
	}
	return category.NewImage(u.ID(), p.input.Ordering, u.Key())
}

// deleteKeys removes object-storage keys best-effort. Used both for
// compensation after a failed transaction and for orphan cleanup after a
// successful one; failures are logged, never surfaced.
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
