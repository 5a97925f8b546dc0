package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mutugading/catalog-service/internal/domain/manufacturer"
)

// ManufacturerRepository implements manufacturer.Repository using PostgreSQL.
type ManufacturerRepository struct {
	db *DB
}

// NewManufacturerRepository creates a new ManufacturerRepository instance.
func NewManufacturerRepository(db *DB) *ManufacturerRepository {
	return &ManufacturerRepository{db: db}
}

var _ manufacturer.Repository = (*ManufacturerRepository)(nil)

// Create persists a new manufacturer.
func (r *ManufacturerRepository) Create(ctx context.Context, m *manufacturer.Manufacturer) error {
	query := `
		INSERT INTO cat_manufacturer (manufacturer_name, country, description, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING manufacturer_id
	`

	var id int64
	err := r.db.q(ctx).QueryRowContext(ctx, query, m.Name(), m.Country(), m.Description(), m.CreatedAt()).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return manufacturer.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create manufacturer: %w", err)
	}
	m.SetID(id)
	return nil
}

// GetByID retrieves a manufacturer by its ID.
func (r *ManufacturerRepository) GetByID(ctx context.Context, id int64) (*manufacturer.Manufacturer, error) {
	query := `
		SELECT manufacturer_id, manufacturer_name, country, description, created_at, updated_at
		FROM cat_manufacturer
		WHERE manufacturer_id = $1
	`

	var (
		name        string
		country     sql.NullString
		description sql.NullString
		createdAt   time.Time
		updatedAt   sql.NullTime
	)
	err := r.db.q(ctx).QueryRowContext(ctx, query, id).Scan(&id, &name, &country, &description, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, manufacturer.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan manufacturer: %w", err)
	}

	var updated *time.Time
	if updatedAt.Valid {
		updated = &updatedAt.Time
	}
	return manufacturer.Reconstruct(id, name, country.String, description.String, createdAt, updated), nil
}

// List retrieves manufacturers with filtering and pagination.
func (r *ManufacturerRepository) List(ctx context.Context, filter manufacturer.ListFilter) ([]*manufacturer.Manufacturer, int64, error) {
	filter.Validate()

	baseQuery := `FROM cat_manufacturer WHERE TRUE`
	args := []interface{}{}
	argIndex := 1

	if filter.Search != "" {
		baseQuery += fmt.Sprintf(` AND (manufacturer_name ILIKE $%d OR description ILIKE $%d)`, argIndex, argIndex)
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}
	if filter.Country != "" {
		baseQuery += fmt.Sprintf(` AND country = $%d`, argIndex)
		args = append(args, filter.Country)
		argIndex++
	}

	var total int64
	if err := r.db.q(ctx).QueryRowContext(ctx, `SELECT COUNT(*) `+baseQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count manufacturers: %w", err)
	}

	selectQuery := `
		SELECT manufacturer_id, manufacturer_name, country, description, created_at, updated_at
	` + baseQuery + fmt.Sprintf(` ORDER BY manufacturer_name ASC LIMIT $%d OFFSET $%d`, argIndex, argIndex+1)
	args = append(args, filter.PageSize, filter.Offset())

	rows, err := r.db.q(ctx).QueryContext(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list manufacturers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var manufacturers []*manufacturer.Manufacturer
	for rows.Next() {
		var (
			id          int64
			name        string
			country     sql.NullString
			description sql.NullString
			createdAt   time.Time
			updatedAt   sql.NullTime
		)
		if err := rows.Scan(&id, &name, &country, &description, &createdAt, &updatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan manufacturer row: %w", err)
		}
		var updated *time.Time
		if updatedAt.Valid {
			updated = &updatedAt.Time
		}
		manufacturers = append(manufacturers, manufacturer.Reconstruct(id, name, country.String, description.String, createdAt, updated))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating manufacturer rows: %w", err)
	}

	return manufacturers, total, nil
}

// Update persists changes to an existing manufacturer.
func (r *ManufacturerRepository) Update(ctx context.Context, m *manufacturer.Manufacturer) error {
	query := `
		UPDATE cat_manufacturer SET
			manufacturer_name = $2,
			country = $3,
			description = $4,
			updated_at = $5
		WHERE manufacturer_id = $1
	`

	result, err := r.db.q(ctx).ExecContext(ctx, query, m.ID(), m.Name(), m.Country(), m.Description(), m.UpdatedAt())
	if err != nil {
		if isUniqueViolation(err) {
			return manufacturer.ErrAlreadyExists
		}
		return fmt.Errorf("failed to update manufacturer: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return manufacturer.ErrNotFound
	}
	return nil
}

// Delete removes a manufacturer.
func (r *ManufacturerRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.q(ctx).ExecContext(ctx, `DELETE FROM cat_manufacturer WHERE manufacturer_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete manufacturer: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return manufacturer.ErrNotFound
	}
	return nil
}

// ExistsByID checks whether a manufacturer exists.
func (r *ManufacturerRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM cat_manufacturer WHERE manufacturer_id = $1)`
	if err := r.db.q(ctx).QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check manufacturer existence: %w", err)
	}
	return exists, nil
}
