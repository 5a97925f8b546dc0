package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mutugading/catalog-service/internal/domain/pricing"
)

// PricingRepository implements pricing.Repository using PostgreSQL. The
// one-policy-per-category rule is backed by a unique index on category_id
// and surfaced as pricing.ErrAlreadyExists.
type PricingRepository struct {
	db *DB
}

// NewPricingRepository creates a new PricingRepository instance.
func NewPricingRepository(db *DB) *PricingRepository {
	return &PricingRepository{db: db}
}

var _ pricing.Repository = (*PricingRepository)(nil)

// Create persists a new pricing policy.
func (r *PricingRepository) Create(ctx context.Context, p *pricing.Policy) error {
	query := `
		INSERT INTO cat_category_pricing_policy (
			category_id, markup_percent, commission_percent,
			discount_percent, tax_rate, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING policy_id
	`

	var id int64
	err := r.db.q(ctx).QueryRowContext(ctx, query,
		p.CategoryID(),
		p.MarkupPercent(),
		p.CommissionPercent(),
		p.DiscountPercent(),
		p.TaxRate(),
		p.CreatedAt(),
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return pricing.ErrAlreadyExists
		}
		if isForeignKeyViolation(err) {
			return pricing.ErrCategoryNotFound
		}
		return fmt.Errorf("failed to create pricing policy: %w", err)
	}
	p.SetID(id)
	return nil
}

// GetByID retrieves a pricing policy by its ID.
func (r *PricingRepository) GetByID(ctx context.Context, id int64) (*pricing.Policy, error) {
	query := `
		SELECT policy_id, category_id, markup_percent, commission_percent,
			   discount_percent, tax_rate, created_at, updated_at
		FROM cat_category_pricing_policy
		WHERE policy_id = $1
	`
	return r.scanPolicy(r.db.q(ctx).QueryRowContext(ctx, query, id))
}

// GetByCategoryID retrieves the policy owned by a category.
func (r *PricingRepository) GetByCategoryID(ctx context.Context, categoryID int64) (*pricing.Policy, error) {
	query := `
		SELECT policy_id, category_id, markup_percent, commission_percent,
			   discount_percent, tax_rate, created_at, updated_at
		FROM cat_category_pricing_policy
		WHERE category_id = $1
	`
	return r.scanPolicy(r.db.q(ctx).QueryRowContext(ctx, query, categoryID))
}

// List retrieves pricing policies with filtering and pagination.
func (r *PricingRepository) List(ctx context.Context, filter pricing.ListFilter) ([]*pricing.Policy, int64, error) {
	filter.Validate()

	baseQuery := `FROM cat_category_pricing_policy WHERE TRUE`
	args := []interface{}{}
	argIndex := 1

	if filter.CategoryID != nil {
		baseQuery += fmt.Sprintf(` AND category_id = $%d`, argIndex)
		args = append(args, *filter.CategoryID)
		argIndex++
	}

	var total int64
	if err := r.db.q(ctx).QueryRowContext(ctx, `SELECT COUNT(*) `+baseQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count pricing policies: %w", err)
	}

	selectQuery := `
		SELECT policy_id, category_id, markup_percent, commission_percent,
			   discount_percent, tax_rate, created_at, updated_at
	` + baseQuery + fmt.Sprintf(` ORDER BY category_id ASC LIMIT $%d OFFSET $%d`, argIndex, argIndex+1)
	args = append(args, filter.PageSize, filter.Offset())

	rows, err := r.db.q(ctx).QueryContext(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list pricing policies: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var policies []*pricing.Policy
	for rows.Next() {
		p, err := r.scanPolicyFromRows(rows)
		if err != nil {
			return nil, 0, err
		}
		policies = append(policies, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating pricing policy rows: %w", err)
	}

	return policies, total, nil
}

// Update persists changes to an existing pricing policy.
func (r *PricingRepository) Update(ctx context.Context, p *pricing.Policy) error {
	query := `
		UPDATE cat_category_pricing_policy SET
			markup_percent = $2,
			commission_percent = $3,
			discount_percent = $4,
			tax_rate = $5,
			updated_at = $6
		WHERE policy_id = $1
	`

	result, err := r.db.q(ctx).ExecContext(ctx, query,
		p.ID(),
		p.MarkupPercent(),
		p.CommissionPercent(),
		p.DiscountPercent(),
		p.TaxRate(),
		p.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to update pricing policy: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return pricing.ErrNotFound
	}
	return nil
}

// Delete removes a pricing policy.
func (r *PricingRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.q(ctx).ExecContext(ctx, `DELETE FROM cat_category_pricing_policy WHERE policy_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete pricing policy: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return pricing.ErrNotFound
	}
	return nil
}

func (r *PricingRepository) scanPolicy(row *sql.Row) (*pricing.Policy, error) {
	var (
		id, categoryID                          int64
		markup, commission, discount, taxRate   float64
		createdAt                               time.Time
		updatedAt                               sql.NullTime
	)
	err := row.Scan(&id, &categoryID, &markup, &commission, &discount, &taxRate, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pricing.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan pricing policy: %w", err)
	}

	var updated *time.Time
	if updatedAt.Valid {
		updated = &updatedAt.Time
	}
	return pricing.Reconstruct(id, categoryID, markup, commission, discount, taxRate, createdAt, updated), nil
}

func (r *PricingRepository) scanPolicyFromRows(rows *sql.Rows) (*pricing.Policy, error) {
	var (
		id, categoryID                          int64
		markup, commission, discount, taxRate   float64
		createdAt                               time.Time
		updatedAt                               sql.NullTime
	)
	if err := rows.Scan(&id, &categoryID, &markup, &commission, &discount, &taxRate, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("failed to scan pricing policy row: %w", err)
	}

	var updated *time.Time
	if updatedAt.Valid {
		updated = &updatedAt.Time
	}
	return pricing.Reconstruct(id, categoryID, markup, commission, discount, taxRate, createdAt, updated), nil
}
