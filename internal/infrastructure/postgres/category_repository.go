package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mutugading/catalog-service/internal/domain/category"
)

// CategoryRepository implements category.Repository using PostgreSQL.
type CategoryRepository struct {
	db *DB
}

// NewCategoryRepository creates a new CategoryRepository instance.
func NewCategoryRepository(db *DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Verify interface implementation at compile time.
var _ category.Repository = (*CategoryRepository)(nil)

// Create persists a new category and its image rows.
func (r *CategoryRepository) Create(ctx context.Context, c *category.Category) error {
	query := `
		INSERT INTO cat_category (category_name, description, created_at)
		VALUES ($1, $2, $3)
		RETURNING category_id
	`

	var id int64
	err := r.db.q(ctx).QueryRowContext(ctx, query, c.Name(), c.Description(), c.CreatedAt()).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return category.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create category: %w", err)
	}
	c.SetID(id)

	return r.insertImages(ctx, id, c.Images())
}

// GetByID retrieves a category with its images.
func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*category.Category, error) {
	query := `
		SELECT category_id, category_name, description, created_at, updated_at
		FROM cat_category
		WHERE category_id = $1
	`

	c, err := r.scanCategory(ctx, r.db.q(ctx).QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	return c, nil
}

// List retrieves categories with filtering and pagination.
func (r *CategoryRepository) List(ctx context.Context, filter category.ListFilter) ([]*category.Category, int64, error) {
	filter.Validate()

	baseQuery := `FROM cat_category WHERE TRUE`
	args := []interface{}{}
	argIndex := 1

	if filter.Search != "" {
		baseQuery += fmt.Sprintf(` AND (category_name ILIKE $%d OR description ILIKE $%d)`, argIndex, argIndex)
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}

	var total int64
	countQuery := `SELECT COUNT(*) ` + baseQuery
	if err := r.db.q(ctx).QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count categories: %w", err)
	}

	orderColumn := "category_name"
	if filter.SortBy == "created_at" {
		orderColumn = "created_at"
	}
	orderDir := "ASC"
	if strings.ToUpper(filter.SortOrder) == "DESC" {
		orderDir = "DESC"
	}

	selectQuery := `
		SELECT category_id, category_name, description, created_at, updated_at
	` + baseQuery + fmt.Sprintf(` ORDER BY %s %s LIMIT $%d OFFSET $%d`, orderColumn, orderDir, argIndex, argIndex+1)
	args = append(args, filter.PageSize, filter.Offset())

	categories, err := r.queryCategories(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	return categories, total, nil
}

// ListAll retrieves every category (for export).
func (r *CategoryRepository) ListAll(ctx context.Context) ([]*category.Category, error) {
	query := `
		SELECT category_id, category_name, description, created_at, updated_at
		FROM cat_category
		ORDER BY category_name ASC
	`
	return r.queryCategories(ctx, query)
}

// Update persists changes to an existing category and rewrites its image rows.
func (r *CategoryRepository) Update(ctx context.Context, c *category.Category) error {
	query := `
		UPDATE cat_category SET
			category_name = $2,
			description = $3,
			updated_at = $4
		WHERE category_id = $1
	`

	result, err := r.db.q(ctx).ExecContext(ctx, query, c.ID(), c.Name(), c.Description(), c.UpdatedAt())
	if err != nil {
		if isUniqueViolation(err) {
			return category.ErrAlreadyExists
		}
		return fmt.Errorf("failed to update category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return category.ErrNotFound
	}

	if _, err := r.db.q(ctx).ExecContext(ctx, `DELETE FROM cat_category_image WHERE category_id = $1`, c.ID()); err != nil {
		return fmt.Errorf("failed to clear category images: %w", err)
	}
	return r.insertImages(ctx, c.ID(), c.Images())
}

// Delete removes a category; image rows cascade at the storage layer.
func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.q(ctx).ExecContext(ctx, `DELETE FROM cat_category WHERE category_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return category.ErrNotFound
	}
	return nil
}

// ExistsByID checks whether a category exists.
func (r *CategoryRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM cat_category WHERE category_id = $1)`
	if err := r.db.q(ctx).QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check category existence: %w", err)
	}
	return exists, nil
}

// =============================================================================
// Helper functions
// =============================================================================

func (r *CategoryRepository) insertImages(ctx context.Context, categoryID int64, images []category.Image) error {
	for _, img := range images {
		query := `
			INSERT INTO cat_category_image (category_id, upload_id, ordering, object_key)
			VALUES ($1, $2, $3, $4)
		`
		if _, err := r.db.q(ctx).ExecContext(ctx, query, categoryID, img.UploadID(), img.Ordering(), img.Key()); err != nil {
			return fmt.Errorf("failed to insert category image: %w", err)
		}
	}
	return nil
}

func (r *CategoryRepository) loadImages(ctx context.Context, categoryID int64) ([]category.Image, error) {
	query := `
		SELECT upload_id, ordering, object_key
		FROM cat_category_image
		WHERE category_id = $1
		ORDER BY ordering ASC
	`

	rows, err := r.db.q(ctx).QueryContext(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load category images: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var images []category.Image
	for rows.Next() {
		var uploadID int64
		var ordering int
		var key string
		if err := rows.Scan(&uploadID, &ordering, &key); err != nil {
			return nil, fmt.Errorf("failed to scan category image: %w", err)
		}
		img, err := category.NewImage(uploadID, ordering, key)
		if err != nil {
			return nil, fmt.Errorf("invalid category image from db: %w", err)
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category image rows: %w", err)
	}
	return images, nil
}

type categoryRow struct {
	ID          int64
	Name        string
	Description sql.NullString
	CreatedAt   time.Time
	UpdatedAt   sql.NullTime
}

func (r *CategoryRepository) scanCategory(ctx context.Context, row *sql.Row) (*category.Category, error) {
	var dto categoryRow
	err := row.Scan(&dto.ID, &dto.Name, &dto.Description, &dto.CreatedAt, &dto.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, category.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan category: %w", err)
	}

	images, err := r.loadImages(ctx, dto.ID)
	if err != nil {
		return nil, err
	}
	return dto.toEntity(images), nil
}

func (r *CategoryRepository) queryCategories(ctx context.Context, query string, args ...interface{}) ([]*category.Category, error) {
	rows, err := r.db.q(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var dtos []categoryRow
	for rows.Next() {
		var dto categoryRow
		if err := rows.Scan(&dto.ID, &dto.Name, &dto.Description, &dto.CreatedAt, &dto.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		dtos = append(dtos, dto)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", err)
	}

	categories := make([]*category.Category, 0, len(dtos))
	for _, dto := range dtos {
		images, err := r.loadImages(ctx, dto.ID)
		if err != nil {
			return nil, err
		}
		categories = append(categories, dto.toEntity(images))
	}
	return categories, nil
}

func (d *categoryRow) toEntity(images []category.Image) *category.Category {
	var description string
	if d.Description.Valid {
		description = d.Description.String
	}
	var updatedAt *time.Time
	if d.UpdatedAt.Valid {
		updatedAt = &d.UpdatedAt.Time
	}
	return category.Reconstruct(d.ID, d.Name, description, images, d.CreatedAt, updatedAt)
}
