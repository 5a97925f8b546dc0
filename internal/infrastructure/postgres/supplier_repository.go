package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mutugading/catalog-service/internal/domain/supplier"
)

// SupplierRepository implements supplier.Repository using PostgreSQL.
type SupplierRepository struct {
	db *DB
}

// NewSupplierRepository creates a new SupplierRepository instance.
func NewSupplierRepository(db *DB) *SupplierRepository {
	return &SupplierRepository{db: db}
}

var _ supplier.Repository = (*SupplierRepository)(nil)

// Create persists a new supplier.
func (r *SupplierRepository) Create(ctx context.Context, s *supplier.Supplier) error {
	query := `
		INSERT INTO cat_supplier (supplier_name, email, phone, description, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING supplier_id
	`

	var id int64
	err := r.db.q(ctx).QueryRowContext(ctx, query, s.Name(), s.Email(), s.Phone(), s.Description(), s.CreatedAt()).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return supplier.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create supplier: %w", err)
	}
	s.SetID(id)
	return nil
}

// GetByID retrieves a supplier by its ID.
func (r *SupplierRepository) GetByID(ctx context.Context, id int64) (*supplier.Supplier, error) {
	query := `
		SELECT supplier_id, supplier_name, email, phone, description, created_at, updated_at
		FROM cat_supplier
		WHERE supplier_id = $1
	`

	var (
		name        string
		email       sql.NullString
		phone       sql.NullString
		description sql.NullString
		createdAt   time.Time
		updatedAt   sql.NullTime
	)
	err := r.db.q(ctx).QueryRowContext(ctx, query, id).Scan(&id, &name, &email, &phone, &description, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, supplier.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan supplier: %w", err)
	}

	var updated *time.Time
	if updatedAt.Valid {
		updated = &updatedAt.Time
	}
	return supplier.Reconstruct(id, name, email.String, phone.String, description.String, createdAt, updated), nil
}

// List retrieves suppliers with filtering and pagination.
func (r *SupplierRepository) List(ctx context.Context, filter supplier.ListFilter) ([]*supplier.Supplier, int64, error) {
	filter.Validate()

	baseQuery := `FROM cat_supplier WHERE TRUE`
	args := []interface{}{}
	argIndex := 1

	if filter.Search != "" {
		baseQuery += fmt.Sprintf(` AND (supplier_name ILIKE $%d OR email ILIKE $%d OR description ILIKE $%d)`, argIndex, argIndex, argIndex)
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}

	var total int64
	if err := r.db.q(ctx).QueryRowContext(ctx, `SELECT COUNT(*) `+baseQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count suppliers: %w", err)
	}

	selectQuery := `
		SELECT supplier_id, supplier_name, email, phone, description, created_at, updated_at
	` + baseQuery + fmt.Sprintf(` ORDER BY supplier_name ASC LIMIT $%d OFFSET $%d`, argIndex, argIndex+1)
	args = append(args, filter.PageSize, filter.Offset())

	rows, err := r.db.q(ctx).QueryContext(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list suppliers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var suppliers []*supplier.Supplier
	for rows.Next() {
		var (
			id          int64
			name        string
			email       sql.NullString
			phone       sql.NullString
			description sql.NullString
			createdAt   time.Time
			updatedAt   sql.NullTime
		)
		if err := rows.Scan(&id, &name, &email, &phone, &description, &createdAt, &updatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan supplier row: %w", err)
		}
		var updated *time.Time
		if updatedAt.Valid {
			updated = &updatedAt.Time
		}
		suppliers = append(suppliers, supplier.Reconstruct(id, name, email.String, phone.String, description.String, createdAt, updated))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating supplier rows: %w", err)
	}

	return suppliers, total, nil
}

// Update persists changes to an existing supplier.
func (r *SupplierRepository) Update(ctx context.Context, s *supplier.Supplier) error {
	query := `
		UPDATE cat_supplier SET
			supplier_name = $2,
			email = $3,
			phone = $4,
			description = $5,
			updated_at = $6
		WHERE supplier_id = $1
	`

	result, err := r.db.q(ctx).ExecContext(ctx, query, s.ID(), s.Name(), s.Email(), s.Phone(), s.Description(), s.UpdatedAt())
	if err != nil {
		if isUniqueViolation(err) {
			return supplier.ErrAlreadyExists
		}
		return fmt.Errorf("failed to update supplier: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return supplier.ErrNotFound
	}
	return nil
}

// Delete removes a supplier.
func (r *SupplierRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.q(ctx).ExecContext(ctx, `DELETE FROM cat_supplier WHERE supplier_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete supplier: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return supplier.ErrNotFound
	}
	return nil
}

// ExistsByID checks whether a supplier exists.
func (r *SupplierRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM cat_supplier WHERE supplier_id = $1)`
	if err := r.db.q(ctx).QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check supplier existence: %w", err)
	}
	return exists, nil
}
