package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mutugading/catalog-service/internal/domain/upload"
)

// UploadRepository implements upload.Repository using PostgreSQL.
type UploadRepository struct {
	db *DB
}

// NewUploadRepository creates a new UploadRepository instance.
func NewUploadRepository(db *DB) *UploadRepository {
	return &UploadRepository{db: db}
}

var _ upload.Repository = (*UploadRepository)(nil)

// Create persists a new upload record.
func (r *UploadRepository) Create(ctx context.Context, u *upload.Upload) error {
	query := `
		INSERT INTO cat_upload (filename, object_key, content_type, size_bytes, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING upload_id
	`

	var id int64
	err := r.db.q(ctx).QueryRowContext(ctx, query, u.Filename(), u.Key(), u.ContentType(), u.Size(), u.CreatedAt()).Scan(&id)
	if err != nil {
		return fmt.Errorf("failed to create upload: %w", err)
	}
	u.SetID(id)
	return nil
}

// GetByID retrieves an upload record.
func (r *UploadRepository) GetByID(ctx context.Context, id int64) (*upload.Upload, error) {
	query := `
		SELECT upload_id, filename, object_key, content_type, size_bytes, created_at
		FROM cat_upload
		WHERE upload_id = $1
	`

	var (
		filename, key, contentType string
		size                       int64
		createdAt                  time.Time
	)
	err := r.db.q(ctx).QueryRowContext(ctx, query, id).Scan(&id, &filename, &key, &contentType, &size, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, upload.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan upload: %w", err)
	}
	return upload.Reconstruct(id, filename, key, contentType, size, createdAt), nil
}

// List retrieves upload records with pagination.
func (r *UploadRepository) List(ctx context.Context, filter upload.ListFilter) ([]*upload.Upload, int64, error) {
	filter.Validate()

	baseQuery := `FROM cat_upload WHERE TRUE`
	args := []interface{}{}
	argIndex := 1

	if filter.Search != "" {
		baseQuery += fmt.Sprintf(` AND filename ILIKE $%d`, argIndex)
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}

	var total int64
	if err := r.db.q(ctx).QueryRowContext(ctx, `SELECT COUNT(*) `+baseQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count uploads: %w", err)
	}

	selectQuery := `
		SELECT upload_id, filename, object_key, content_type, size_bytes, created_at
	` + baseQuery + fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, argIndex, argIndex+1)
	args = append(args, filter.PageSize, filter.Offset())

	rows, err := r.db.q(ctx).QueryContext(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list uploads: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var uploads []*upload.Upload
	for rows.Next() {
		var (
			id                         int64
			filename, key, contentType string
			size                       int64
			createdAt                  time.Time
		)
		if err := rows.Scan(&id, &filename, &key, &contentType, &size, &createdAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan upload row: %w", err)
		}
		uploads = append(uploads, upload.Reconstruct(id, filename, key, contentType, size, createdAt))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating upload rows: %w", err)
	}

	return uploads, total, nil
}

// Delete removes an upload record. A foreign key violation means a catalog
// image still references the upload.
func (r *UploadRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.q(ctx).ExecContext(ctx, `DELETE FROM cat_upload WHERE upload_id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return upload.ErrInUse
		}
		return fmt.Errorf("failed to delete upload: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return upload.ErrNotFound
	}
	return nil
}
