package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mutugading/catalog-service/internal/domain/product"
)

// ProductRepository implements product.Repository using PostgreSQL.
type ProductRepository struct {
	db *DB
}

// NewProductRepository creates a new ProductRepository instance.
func NewProductRepository(db *DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Verify interface implementation at compile time.
var _ product.Repository = (*ProductRepository)(nil)

// Create persists a new product with its attribute and image rows.
func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	query := `
		INSERT INTO cat_product (
			sku, product_name, description, category_id,
			manufacturer_id, supplier_id, price, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING product_id
	`

	var id int64
	err := r.db.q(ctx).QueryRowContext(ctx, query,
		p.SKU().String(),
		p.Name(),
		p.Description(),
		p.CategoryID(),
		p.ManufacturerID(),
		p.SupplierID(),
		p.Price(),
		p.CreatedAt(),
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return product.ErrAlreadyExists
		}
		if isForeignKeyViolation(err) {
			return product.ErrCategoryNotFound
		}
		return fmt.Errorf("failed to create product: %w", err)
	}
	p.SetID(id)

	if err := r.insertAttributes(ctx, id, p.Attributes()); err != nil {
		return err
	}
	return r.insertImages(ctx, id, p.Images())
}

// GetByID retrieves a product with attributes and images.
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	query := `
		SELECT product_id, sku, product_name, description, category_id,
			   manufacturer_id, supplier_id, price, created_at, updated_at
		FROM cat_product
		WHERE product_id = $1
	`

	var dto productRow
	err := r.db.q(ctx).QueryRowContext(ctx, query, id).Scan(
		&dto.ID, &dto.SKU, &dto.Name, &dto.Description, &dto.CategoryID,
		&dto.ManufacturerID, &dto.SupplierID, &dto.Price, &dto.CreatedAt, &dto.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, product.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}

	return r.hydrate(ctx, &dto)
}

// List retrieves products with filtering and pagination.
func (r *ProductRepository) List(ctx context.Context, filter product.ListFilter) ([]*product.Product, int64, error) {
	filter.Validate()

	baseQuery := `FROM cat_product WHERE TRUE`
	args := []interface{}{}
	argIndex := 1

	if filter.Search != "" {
		baseQuery += fmt.Sprintf(` AND (
			sku ILIKE $%d OR
			product_name ILIKE $%d OR
			description ILIKE $%d
		)`, argIndex, argIndex, argIndex)
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}

	if filter.CategoryID != nil {
		baseQuery += fmt.Sprintf(` AND category_id = $%d`, argIndex)
		args = append(args, *filter.CategoryID)
		argIndex++
	}

	var total int64
	countQuery := `SELECT COUNT(*) ` + baseQuery
	if err := r.db.q(ctx).QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	orderColumn := "product_name"
	switch filter.SortBy {
	case "sku":
		orderColumn = "sku"
	case "price":
		orderColumn = "price"
	case "created_at":
		orderColumn = "created_at"
	}
	orderDir := "ASC"
	if strings.ToUpper(filter.SortOrder) == "DESC" {
		orderDir = "DESC"
	}

	selectQuery := `
		SELECT product_id, sku, product_name, description, category_id,
			   manufacturer_id, supplier_id, price, created_at, updated_at
	` + baseQuery + fmt.Sprintf(` ORDER BY %s %s LIMIT $%d OFFSET $%d`, orderColumn, orderDir, argIndex, argIndex+1)
	args = append(args, filter.PageSize, filter.Offset())

	products, err := r.queryProducts(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// ListAll retrieves every product (for export).
func (r *ProductRepository) ListAll(ctx context.Context) ([]*product.Product, error) {
	query := `
		SELECT product_id, sku, product_name, description, category_id,
			   manufacturer_id, supplier_id, price, created_at, updated_at
		FROM cat_product
		ORDER BY sku ASC
	`
	return r.queryProducts(ctx, query)
}

// Update persists changes to a product and rewrites its attribute and image rows.
func (r *ProductRepository) Update(ctx context.Context, p *product.Product) error {
	query := `
		UPDATE cat_product SET
			sku = $2,
			product_name = $3,
			description = $4,
			category_id = $5,
			manufacturer_id = $6,
			supplier_id = $7,
			price = $8,
			updated_at = $9
		WHERE product_id = $1
	`

	result, err := r.db.q(ctx).ExecContext(ctx, query,
		p.ID(),
		p.SKU().String(),
		p.Name(),
		p.Description(),
		p.CategoryID(),
		p.ManufacturerID(),
		p.SupplierID(),
		p.Price(),
		p.UpdatedAt(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return product.ErrAlreadyExists
		}
		if isForeignKeyViolation(err) {
			return product.ErrCategoryNotFound
		}
		return fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return product.ErrNotFound
	}

	if _, err := r.db.q(ctx).ExecContext(ctx, `DELETE FROM cat_product_attribute WHERE product_id = $1`, p.ID()); err != nil {
		return fmt.Errorf("failed to clear product attributes: %w", err)
	}
	if err := r.insertAttributes(ctx, p.ID(), p.Attributes()); err != nil {
		return err
	}

	if _, err := r.db.q(ctx).ExecContext(ctx, `DELETE FROM cat_product_image WHERE product_id = $1`, p.ID()); err != nil {
		return fmt.Errorf("failed to clear product images: %w", err)
	}
	return r.insertImages(ctx, p.ID(), p.Images())
}

// Delete removes a product; attribute and image rows cascade.
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.q(ctx).ExecContext(ctx, `DELETE FROM cat_product WHERE product_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return product.ErrNotFound
	}
	return nil
}

// ExistsByID checks whether a product exists.
func (r *ProductRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM cat_product WHERE product_id = $1)`
	if err := r.db.q(ctx).QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check product existence: %w", err)
	}
	return exists, nil
}

// =============================================================================
// Helper functions
// =============================================================================

func (r *ProductRepository) insertAttributes(ctx context.Context, productID int64, attributes []product.Attribute) error {
	for _, attr := range attributes {
		query := `
			INSERT INTO cat_product_attribute (product_id, attr_name, attr_value)
			VALUES ($1, $2, $3)
		`
		if _, err := r.db.q(ctx).ExecContext(ctx, query, productID, attr.Name(), attr.Value()); err != nil {
			return fmt.Errorf("failed to insert product attribute: %w", err)
		}
	}
	return nil
}

func (r *ProductRepository) insertImages(ctx context.Context, productID int64, images []product.Image) error {
	for _, img := range images {
		query := `
			INSERT INTO cat_product_image (product_id, upload_id, is_main, position, object_key)
			VALUES ($1, $2, $3, $4, $5)
		`
		if _, err := r.db.q(ctx).ExecContext(ctx, query, productID, img.UploadID(), img.IsMain(), img.Position(), img.Key()); err != nil {
			return fmt.Errorf("failed to insert product image: %w", err)
		}
	}
	return nil
}

func (r *ProductRepository) loadAttributes(ctx context.Context, productID int64) ([]product.Attribute, error) {
	query := `
		SELECT attr_name, attr_value
		FROM cat_product_attribute
		WHERE product_id = $1
		ORDER BY attr_name ASC
	`

	rows, err := r.db.q(ctx).QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to load product attributes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var attrs []product.Attribute
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("failed to scan product attribute: %w", err)
		}
		attr, err := product.NewAttribute(name, value)
		if err != nil {
			return nil, fmt.Errorf("invalid product attribute from db: %w", err)
		}
		attrs = append(attrs, attr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product attribute rows: %w", err)
	}
	return attrs, nil
}

func (r *ProductRepository) loadImages(ctx context.Context, productID int64) ([]product.Image, error) {
	query := `
		SELECT upload_id, is_main, position, object_key
		FROM cat_product_image
		WHERE product_id = $1
		ORDER BY position ASC
	`

	rows, err := r.db.q(ctx).QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to load product images: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var images []product.Image
	for rows.Next() {
		var uploadID int64
		var isMain bool
		var position int
		var key string
		if err := rows.Scan(&uploadID, &isMain, &position, &key); err != nil {
			return nil, fmt.Errorf("failed to scan product image: %w", err)
		}
		img, err := product.NewImage(uploadID, isMain, position, key)
		if err != nil {
			return nil, fmt.Errorf("invalid product image from db: %w", err)
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product image rows: %w", err)
	}
	return images, nil
}

type productRow struct {
	ID             int64
	SKU            string
	Name           string
	Description    sql.NullString
	CategoryID     int64
	ManufacturerID sql.NullInt64
	SupplierID     sql.NullInt64
	Price          float64
	CreatedAt      time.Time
	UpdatedAt      sql.NullTime
}

func (r *ProductRepository) queryProducts(ctx context.Context, query string, args ...interface{}) ([]*product.Product, error) {
	rows, err := r.db.q(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var dtos []productRow
	for rows.Next() {
		var dto productRow
		err := rows.Scan(
			&dto.ID, &dto.SKU, &dto.Name, &dto.Description, &dto.CategoryID,
			&dto.ManufacturerID, &dto.SupplierID, &dto.Price, &dto.CreatedAt, &dto.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		dtos = append(dtos, dto)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", err)
	}

	products := make([]*product.Product, 0, len(dtos))
	for i := range dtos {
		p, err := r.hydrate(ctx, &dtos[i])
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

func (r *ProductRepository) hydrate(ctx context.Context, dto *productRow) (*product.Product, error) {
	attrs, err := r.loadAttributes(ctx, dto.ID)
	if err != nil {
		return nil, err
	}
	images, err := r.loadImages(ctx, dto.ID)
	if err != nil {
		return nil, err
	}

	sku, err := product.NewSKU(dto.SKU)
	if err != nil {
		return nil, fmt.Errorf("invalid sku from db: %w", err)
	}

	var description string
	if dto.Description.Valid {
		description = dto.Description.String
	}
	var manufacturerID *int64
	if dto.ManufacturerID.Valid {
		manufacturerID = &dto.ManufacturerID.Int64
	}
	var supplierID *int64
	if dto.SupplierID.Valid {
		supplierID = &dto.SupplierID.Int64
	}
	var updatedAt *time.Time
	if dto.UpdatedAt.Valid {
		updatedAt = &dto.UpdatedAt.Time
	}

	return product.Reconstruct(
		dto.ID, sku, dto.Name, description, dto.CategoryID,
		manufacturerID, supplierID, dto.Price,
		attrs, images, dto.CreatedAt, updatedAt,
	), nil
}
